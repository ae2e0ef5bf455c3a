// Package geometry builds the outline of a tip balloon and positions its
// text for a given orientation.
//
// The outline starts at the anchor (0,0), runs diagonally along the flag to
// the body, and closes around a rectangle of the measured content size plus
// padding on every side.
package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/tipmark/pkg/tip/anchor"
)

// Point is a vertex of the outline, relative to the anchor.
type Point struct {
	X, Y float64
}

// signs returns the growth direction of the body for o: +1 right/down,
// -1 left/up.
func signs(o anchor.Orientation) (sx, sy float64) {
	switch o {
	case anchor.TopLeft:
		return 1, 1
	case anchor.TopRight:
		return -1, 1
	case anchor.BottomLeft:
		return 1, -1
	case anchor.BottomRight:
		return -1, -1
	}
	panic(fmt.Sprintf("geometry: unresolved orientation %v", o))
}

// Outline returns the closed polygon of the balloon: the anchor, the end of
// the flag, and the three remaining body corners. The body is
// (width+2·padding) × (height+2·padding).
func Outline(o anchor.Orientation, flag, padding, width, height float64) []Point {
	sx, sy := signs(o)
	w := width + padding*2
	h := height + padding*2
	return []Point{
		{0, 0},
		{sx * flag, sy * flag},
		{sx * w, sy * flag},
		{sx * w, sy * (flag + h)},
		{0, sy * (flag + h)},
	}
}

// Path returns the SVG path data for the outline, e.g.
// "M0,0l12,12h44v36h-56z" for a top-left 40×20 box.
func Path(o anchor.Orientation, flag, padding, width, height float64) string {
	sx, sy := signs(o)
	w := width + padding*2
	h := height + padding*2
	var b strings.Builder
	b.WriteString("M0,0l")
	b.WriteString(Number(sx * flag))
	b.WriteByte(',')
	b.WriteString(Number(sy * flag))
	b.WriteByte('h')
	b.WriteString(Number(sx * (w - flag)))
	b.WriteByte('v')
	b.WriteString(Number(sy * h))
	b.WriteByte('h')
	b.WriteString(Number(-sx * w))
	b.WriteByte('z')
	return b.String()
}

// TextTransform returns the translation of the text block: inset by padding
// from the body edge on the anchor side, and pushed past the flag vertically.
func TextTransform(o anchor.Orientation, flag, padding, width float64) (dx, dy float64) {
	sx, sy := signs(o)
	dx = padding
	if sx < 0 {
		dx = -width - padding
	}
	return dx, sy * (flag + padding)
}

// Translate formats a translation as an SVG transform attribute.
func Translate(dx, dy float64) string {
	return "translate(" + Number(dx) + "," + Number(dy) + ")"
}

const (
	topBaseline    = 0.94
	bottomBaseline = -0.29
)

// LineOffset returns the y offset, in em, of the text element so that its
// lines (each advancing by lineHeight em) start just past the flag for
// "top-*" orientations and end just before it for "bottom-*" ones.
//
// Like the other helpers here, it panics on an unresolved orientation.
func LineOffset(o anchor.Orientation, lines int, lineHeight float64) float64 {
	if _, sy := signs(o); sy > 0 {
		return topBaseline - lineHeight
	}
	return bottomBaseline - float64(lines)*lineHeight
}

// Em formats an em length rounded to six decimals, e.g. "-3.29em".
func Em(v float64) string {
	return Number(math.Round(v*1e6)/1e6) + "em"
}

// Number formats v in the shortest form that round-trips.
func Number(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
