package config

import "github.com/matzehuels/tipmark/pkg/tip"

// Tip holds the tip mark options of a document. Unset numbers keep their
// defaults; an explicit zero is honored.
type Tip struct {
	X  string `toml:"x" json:"x,omitempty"`
	Y  string `toml:"y" json:"y,omitempty"`
	X1 string `toml:"x1" json:"x1,omitempty"`
	Y1 string `toml:"y1" json:"y1,omitempty"`
	X2 string `toml:"x2" json:"x2,omitempty"`
	Y2 string `toml:"y2" json:"y2,omitempty"`

	Anchor      string `toml:"anchor" json:"anchor,omitempty"`
	FrameAnchor string `toml:"frame_anchor" json:"frame_anchor,omitempty"`

	Monospace   bool    `toml:"monospace" json:"monospace,omitempty"`
	FontFamily  string  `toml:"font_family" json:"font_family,omitempty"`
	FontSize    float64 `toml:"font_size" json:"font_size,omitempty"`
	FontStyle   string  `toml:"font_style" json:"font_style,omitempty"`
	FontVariant string  `toml:"font_variant" json:"font_variant,omitempty"`
	FontWeight  string  `toml:"font_weight" json:"font_weight,omitempty"`

	LineHeight *float64 `toml:"line_height" json:"line_height,omitempty"`
	LineWidth  *float64 `toml:"line_width" json:"line_width,omitempty"`

	Fill   string `toml:"fill" json:"fill,omitempty"`
	Stroke string `toml:"stroke" json:"stroke,omitempty"`
}

// Options converts t to mark options on top of tip.DefaultOptions.
func (t Tip) Options() tip.Options {
	o := tip.DefaultOptions()
	o.X, o.Y = t.X, t.Y
	o.X1, o.Y1, o.X2, o.Y2 = t.X1, t.Y1, t.X2, t.Y2
	o.Anchor = t.Anchor
	o.FrameAnchor = t.FrameAnchor
	o.Monospace = t.Monospace
	o.FontFamily = t.FontFamily
	o.FontSize = t.FontSize
	o.FontStyle = t.FontStyle
	o.FontVariant = t.FontVariant
	o.FontWeight = t.FontWeight
	if t.LineHeight != nil {
		o.LineHeight = *t.LineHeight
	}
	if t.LineWidth != nil {
		o.LineWidth = *t.LineWidth
	}
	if t.Fill != "" {
		o.Fill = t.Fill
	}
	if t.Stroke != "" {
		o.Stroke = t.Stroke
	}
	return o
}
