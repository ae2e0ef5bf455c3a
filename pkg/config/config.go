// Package config decodes plot documents.
//
// A document describes a frame, its scales and facets, the records to plot,
// how record fields bind to channels, and the tip mark options. Documents
// are TOML files on the command line and TOML or JSON bodies over HTTP:
//
//	width = 640
//	height = 400
//
//	[tip]
//	x = "x"
//	y = "y"
//	line_width = 12
//
//	[scales.x]
//	type = "linear"
//	label = "Flipper length (mm)"
//
//	[[channels]]
//	key = "x"
//	field = "flipper"
//	scale = "x"
//
//	[[data]]
//	flipper = 181
//	mass = 3750
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tipmark/pkg/channel"
	"github.com/matzehuels/tipmark/pkg/errors"
)

// Document formats.
const (
	FormatTOML = "toml"
	FormatJSON = "json"
)

// Frame defaults, matching common chart defaults.
const (
	DefaultWidth  = 640.0
	DefaultHeight = 400.0
)

// Document is a decoded plot document.
type Document struct {
	Width    float64           `toml:"width" json:"width,omitempty"`
	Height   float64           `toml:"height" json:"height,omitempty"`
	Margin   Margin            `toml:"margin" json:"margin,omitempty"`
	Scales   map[string]Scale  `toml:"scales" json:"scales,omitempty"`
	Facet    Facet             `toml:"facet" json:"facet,omitempty"`
	Tip      Tip               `toml:"tip" json:"tip,omitempty"`
	Channels []channel.Binding `toml:"channels" json:"channels,omitempty"`
	Data     []map[string]any  `toml:"data" json:"data,omitempty"`
}

// Margin is the space between the frame edge and the plot area.
type Margin struct {
	Top    float64 `toml:"top" json:"top,omitempty"`
	Right  float64 `toml:"right" json:"right,omitempty"`
	Bottom float64 `toml:"bottom" json:"bottom,omitempty"`
	Left   float64 `toml:"left" json:"left,omitempty"`
}

// Scale types.
const (
	ScaleLinear = "linear"
	ScaleBand   = "band"
)

// Scale describes one named scale. Empty domains are inferred from the
// data; empty ranges default to the plot area for the x, y, fx and fy
// scales.
type Scale struct {
	Type    string    `toml:"type" json:"type,omitempty"`
	Label   string    `toml:"label" json:"label,omitempty"`
	Domain  []any     `toml:"domain" json:"domain,omitempty"`
	Range   []float64 `toml:"range" json:"range,omitempty"`
	Padding float64   `toml:"padding" json:"padding,omitempty"`
}

// Facet names the record fields that split the plot into panels. Panels are
// positioned by the "fx" and "fy" band scales.
type Facet struct {
	X string `toml:"x" json:"x,omitempty"`
	Y string `toml:"y" json:"y,omitempty"`
}

// Load reads a document from path. Files ending in .json are decoded as
// JSON, everything else as TOML.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "plot document not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	format := FormatTOML
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = FormatJSON
	}
	return Parse(data, format)
}

// Parse decodes and validates a document. Unknown keys are rejected.
func Parse(data []byte, format string) (*Document, error) {
	var d Document
	switch format {
	case FormatTOML:
		meta, err := toml.Decode(string(data), &d)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid toml")
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown keys: %s", strings.Join(keys, ", "))
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported document format: %q", format)
	}
	if err := d.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return &d, nil
}

// ValidateAndSetDefaults checks the document and fills in the frame size.
func (d *Document) ValidateAndSetDefaults() error {
	if d.Width == 0 {
		d.Width = DefaultWidth
	}
	if d.Height == 0 {
		d.Height = DefaultHeight
	}
	for _, v := range []struct {
		name string
		v    float64
	}{
		{"width", d.Width}, {"height", d.Height},
		{"margin.top", d.Margin.Top}, {"margin.right", d.Margin.Right},
		{"margin.bottom", d.Margin.Bottom}, {"margin.left", d.Margin.Left},
	} {
		if err := errors.ValidateNonNegative(v.name, v.v); err != nil {
			return err
		}
	}
	if d.Margin.Left+d.Margin.Right >= d.Width || d.Margin.Top+d.Margin.Bottom >= d.Height {
		return errors.New(errors.ErrCodeInvalidOption, "margins leave no room in a %gx%g frame", d.Width, d.Height)
	}

	for name, s := range d.Scales {
		switch s.Type {
		case "":
			s.Type = ScaleLinear
			d.Scales[name] = s
		case ScaleLinear, ScaleBand:
		default:
			return errors.New(errors.ErrCodeInvalidScale, "scale %q: unknown type %q", name, s.Type)
		}
		if len(s.Range) != 0 && len(s.Range) != 2 {
			return errors.New(errors.ErrCodeInvalidScale, "scale %q: range needs two values", name)
		}
		if s.Type == ScaleLinear && len(s.Domain) != 0 && len(s.Domain) != 2 {
			return errors.New(errors.ErrCodeInvalidScale, "scale %q: linear domain needs two values", name)
		}
		if s.Padding < 0 || s.Padding >= 1 {
			return errors.New(errors.ErrCodeInvalidScale, "scale %q: padding must be in [0, 1)", name)
		}
	}

	seen := make(map[string]bool)
	for _, b := range d.Channels {
		if b.Key == "" || b.Field == "" {
			return errors.New(errors.ErrCodeInvalidChannel, "channel binding needs key and field")
		}
		if seen[b.Key] {
			return errors.New(errors.ErrCodeInvalidChannel, "channel %q bound twice", b.Key)
		}
		seen[b.Key] = true
		if b.Scale != "" {
			if _, ok := d.Scales[b.Scale]; !ok {
				return errors.New(errors.ErrCodeInvalidScale, "channel %q uses undefined scale %q", b.Key, b.Scale)
			}
		}
	}
	return nil
}
