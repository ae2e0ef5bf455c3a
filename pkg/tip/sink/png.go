package sink

import (
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/colornames"

	"github.com/matzehuels/tipmark/pkg/errors"
	"github.com/matzehuels/tipmark/pkg/fonts"
	"github.com/matzehuels/tipmark/pkg/tip"
	"github.com/matzehuels/tipmark/pkg/tip/anchor"
	"github.com/matzehuels/tipmark/pkg/tip/geometry"
	"github.com/matzehuels/tipmark/pkg/tip/metrics"
)

// Balloon is one finalized tip in canvas coordinates.
type Balloon struct {
	X, Y        float64
	Orientation anchor.Orientation
	Box         tip.Box
	Lines       []metrics.Line
	Fill        string
	Stroke      string
}

// Balloons collects the measured items of a pass, shifted by the pass's
// facet offset. Unmeasured items are left out.
func Balloons(p *tip.Pass) []Balloon {
	opts := p.Mark().Options()
	ox, oy := p.Offset()
	var out []Balloon
	for _, it := range p.Items() {
		if !it.Measured {
			continue
		}
		stroke := it.Stroke
		if stroke == "" {
			stroke = opts.Stroke
		}
		out = append(out, Balloon{
			X:           it.X + ox,
			Y:           it.Y + oy,
			Orientation: it.Orientation,
			Box:         it.Box,
			Lines:       it.Lines,
			Fill:        opts.Fill,
			Stroke:      stroke,
		})
	}
	return out
}

// PNGOptions configures raster output.
type PNGOptions struct {
	Width, Height float64
	Scale         float64 // device pixels per unit; 0 means 1
	Background    string  // "" or "none" for transparent
	Monospace     bool
	FontSize      float64 // 0 means 10
	LineHeight    float64 // 0 means 1
}

// RenderPNG draws balloons and writes a PNG to w.
func RenderPNG(w io.Writer, balloons []Balloon, opts PNGOptions) error {
	k := opts.Scale
	if k <= 0 {
		k = 1
	}
	size := opts.FontSize
	if size <= 0 {
		size = 10
	}
	lh := opts.LineHeight
	if lh <= 0 {
		lh = 1
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "png size must be positive, got %gx%g", opts.Width, opts.Height)
	}

	regularStyle, boldStyle := fonts.Styles(opts.Monospace)
	regular, err := fonts.Face(regularStyle, size*k)
	if err != nil {
		return err
	}
	defer regular.Close()
	bold, err := fonts.Face(boldStyle, size*k)
	if err != nil {
		return err
	}
	defer bold.Close()

	dc := gg.NewContext(int(opts.Width*k+0.5), int(opts.Height*k+0.5))
	if bg, ok := parseColor(opts.Background); ok {
		dc.SetColor(bg)
		dc.Clear()
	}

	for _, b := range balloons {
		if !b.Orientation.Valid() {
			continue
		}
		stroke, ok := parseColor(b.Stroke)
		if !ok {
			stroke = color.Black
		}

		dc.Push()
		dc.Translate(b.X*k, b.Y*k)
		for i, pt := range geometry.Outline(b.Orientation, tip.FlagSize, tip.Padding, b.Box.Width, b.Box.Height) {
			if i == 0 {
				dc.MoveTo(pt.X*k, pt.Y*k)
			} else {
				dc.LineTo(pt.X*k, pt.Y*k)
			}
		}
		dc.ClosePath()
		if fill, ok := parseColor(b.Fill); ok {
			dc.SetColor(fill)
			dc.FillPreserve()
		}
		dc.SetColor(stroke)
		dc.SetLineWidth(k)
		dc.Stroke()

		dx, dy := geometry.TextTransform(b.Orientation, tip.FlagSize, tip.Padding, b.Box.Width)
		y0 := geometry.LineOffset(b.Orientation, len(b.Lines), lh)
		for i, l := range b.Lines {
			x := dx * k
			y := (dy + (y0+float64(i+1)*lh)*size) * k
			dc.SetFontFace(bold)
			dc.DrawString(l.Name, x, y)
			nameWidth, _ := dc.MeasureString(l.Name)
			dc.SetFontFace(regular)
			dc.DrawString(strings.ReplaceAll(l.Value, "\u200b", ""), x+nameWidth, y)
		}
		dc.Pop()
	}

	if err := dc.EncodePNG(w); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to encode png")
	}
	return nil
}

// parseColor understands hex colors, CSS color keywords and currentColor
// (drawn black). It returns false for "", "none" and anything else.
func parseColor(s string) (color.Color, bool) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "none", "transparent":
		return nil, false
	case "currentcolor":
		return color.Black, true
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	c, ok := colornames.Map[strings.ToLower(s)]
	return c, ok
}

func parseHex(h string) (color.Color, bool) {
	if len(h) == 3 || len(h) == 4 {
		var b strings.Builder
		for _, r := range h {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		h = b.String()
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return nil, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return nil, false
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
}
