// Package surface provides measurement surfaces for tip render passes.
//
// [Estimate] measures without a browser: text boxes are computed from the
// emitted lines with a width measurer. The chrome subpackage measures in
// headless Chrome.
package surface

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/matzehuels/tipmark/pkg/tip"
	"github.com/matzehuels/tipmark/pkg/tip/metrics"
)

// DefaultFontSize is the font size in pixels assumed when no ancestor sets
// one.
const DefaultFontSize = 10

// Vertical extent of a line box in em, above and below the baseline.
const (
	ascent  = 0.94
	descent = 0.29
)

// Estimate is a surface that is always connected and estimates text boxes.
// Widths from Regular and Bold are in hundredths of an em.
type Estimate struct {
	Regular  metrics.Measurer
	Bold     metrics.Measurer
	FontSize float64
}

// NewEstimate returns an estimate surface for fixed-pitch or proportional
// text.
func NewEstimate(monospace bool) *Estimate {
	if monospace {
		m := metrics.NewMonospace()
		return &Estimate{Regular: m, Bold: m, FontSize: DefaultFontSize}
	}
	return &Estimate{
		Regular:  metrics.NewProportional(),
		Bold:     metrics.ProportionalBold(),
		FontSize: DefaultFontSize,
	}
}

// Connected always reports true.
func (e *Estimate) Connected() bool { return true }

// BBox measures an svg root by its width and height attributes and any
// other element by the text element it contains.
func (e *Estimate) BBox(el *etree.Element) (tip.Box, bool) {
	if el == nil {
		return tip.Box{}, false
	}
	if el.Tag == "svg" {
		w, okW := length(el.SelectAttrValue("width", ""))
		h, okH := length(el.SelectAttrValue("height", ""))
		return tip.Box{Width: w, Height: h}, okW && okH
	}
	text := el
	if el.Tag != "text" {
		if text = el.SelectElement("text"); text == nil {
			return tip.Box{}, false
		}
	}
	size := e.fontSize(text)

	var width, height float64
	lines := text.SelectElements("tspan")
	for i, line := range lines {
		if w := e.lineWidth(line); w > width {
			width = w
		}
		if i > 0 {
			dy, ok := em(line.SelectAttrValue("dy", ""))
			if !ok {
				dy = 1
			}
			height += dy
		}
	}
	if len(lines) > 0 {
		height += ascent + descent
	}
	return tip.Box{
		Y:      -ascent * size,
		Width:  width * size / metrics.BudgetScale,
		Height: height * size,
	}, true
}

// lineWidth sums the line's bold name span and plain text, skipping titles.
func (e *Estimate) lineWidth(line *etree.Element) float64 {
	var w float64
	for _, tok := range line.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			w += e.Regular.Width(t.Data)
		case *etree.Element:
			if t.Tag == "tspan" {
				w += e.Bold.Width(t.Text())
			}
		}
	}
	return w
}

// fontSize returns the nearest font-size set on el or its ancestors.
func (e *Estimate) fontSize(el *etree.Element) float64 {
	for ; el != nil; el = el.Parent() {
		if v, ok := length(el.SelectAttrValue("font-size", "")); ok && v > 0 {
			return v
		}
	}
	if e.FontSize > 0 {
		return e.FontSize
	}
	return DefaultFontSize
}

func length(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "px"), 64)
	return v, err == nil
}

func em(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, "em") {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "em"), 64)
	return v, err == nil
}
