package pipeline

import (
	"math"

	"github.com/matzehuels/tipmark/pkg/channel"
	"github.com/matzehuels/tipmark/pkg/config"
	"github.com/matzehuels/tipmark/pkg/errors"
	"github.com/matzehuels/tipmark/pkg/scale"
	"github.com/matzehuels/tipmark/pkg/tip"
)

// Facet scale names.
const (
	ScaleFX = "fx"
	ScaleFY = "fy"
)

// Plot is a document resolved into what a tip render needs.
type Plot struct {
	Dimensions tip.Dimensions
	Scales     map[string]scale.Scale
	FX, FY     scale.Scale
	Channels   *channel.Set
	Panels     []Panel
	Options    tip.Options
	Records    int
}

// Panel is one facet cell and the records it shows.
type Panel struct {
	Facet tip.Facet
	// Index lists the panel's records; nil means all of them.
	Index []int
}

// Build resolves scales, channels and facet panels of d.
func Build(d *config.Document) (*Plot, error) {
	p := &Plot{
		Dimensions: tip.Dimensions{
			Width:        d.Width,
			Height:       d.Height,
			MarginTop:    d.Margin.Top,
			MarginRight:  d.Margin.Right,
			MarginBottom: d.Margin.Bottom,
			MarginLeft:   d.Margin.Left,
		},
		Scales:  make(map[string]scale.Scale),
		Options: d.Tip.Options(),
		Records: len(d.Data),
	}

	specs := make(map[string]config.Scale, len(d.Scales)+2)
	for name, s := range d.Scales {
		specs[name] = s
	}
	if _, ok := specs[ScaleFX]; d.Facet.X != "" && !ok {
		specs[ScaleFX] = config.Scale{Type: config.ScaleBand}
	}
	if _, ok := specs[ScaleFY]; d.Facet.Y != "" && !ok {
		specs[ScaleFY] = config.Scale{Type: config.ScaleBand}
	}
	for _, name := range []string{ScaleFX, ScaleFY} {
		if spec, ok := specs[name]; ok && spec.Type != config.ScaleBand && facetField(name, d) != "" {
			return nil, errors.New(errors.ErrCodeInvalidScale, "facet scale %q must be a band scale", name)
		}
	}
	for name, spec := range specs {
		s, err := buildScale(name, spec, d)
		if err != nil {
			return nil, err
		}
		switch {
		case name == ScaleFX && facetField(name, d) != "":
			p.FX = s
		case name == ScaleFY && facetField(name, d) != "":
			p.FY = s
		default:
			p.Scales[name] = s
		}
	}

	set, err := channel.Bind(d.Data, d.Channels)
	if err != nil {
		return nil, err
	}
	p.Channels = set
	p.Panels = panels(d, p.FX, p.FY)
	return p, nil
}

// fields lists the record fields whose values a scale must cover.
func fields(name string, d *config.Document) []string {
	var out []string
	for _, b := range d.Channels {
		if b.Scale == name {
			out = append(out, b.Field)
		}
	}
	if f := facetField(name, d); f != "" {
		out = append(out, f)
	}
	return out
}

// facetField returns the record field a facet scale splits on.
func facetField(name string, d *config.Document) string {
	switch name {
	case ScaleFX:
		return d.Facet.X
	case ScaleFY:
		return d.Facet.Y
	}
	return ""
}

// defaultRange spans the plot area for the positional scales.
func defaultRange(name string, d *config.Document) ([2]float64, bool) {
	m := d.Margin
	switch name {
	case "x", ScaleFX:
		return [2]float64{m.Left, d.Width - m.Right}, true
	case "y":
		return [2]float64{d.Height - m.Bottom, m.Top}, true
	case ScaleFY:
		return [2]float64{m.Top, d.Height - m.Bottom}, true
	}
	return [2]float64{}, false
}

func buildScale(name string, spec config.Scale, d *config.Document) (scale.Scale, error) {
	rng, ok := defaultRange(name, d)
	if len(spec.Range) == 2 {
		rng, ok = [2]float64{spec.Range[0], spec.Range[1]}, true
	}
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidScale, "scale %q needs a range", name)
	}

	switch spec.Type {
	case config.ScaleBand:
		domain := make([]string, 0, len(spec.Domain))
		for _, v := range spec.Domain {
			domain = append(domain, scale.Key(v))
		}
		if len(domain) == 0 {
			domain = distinct(d.Data, fields(name, d))
		}
		return scale.Band{Domain: domain, Range: rng, Padding: spec.Padding, Name: spec.Label}, nil

	default:
		var domain [2]float64
		if len(spec.Domain) == 2 {
			for i, v := range spec.Domain {
				f, ok := scale.ToFloat(v)
				if !ok {
					return nil, errors.New(errors.ErrCodeInvalidScale, "scale %q: domain value %v is not a number", name, v)
				}
				domain[i] = f
			}
		} else {
			domain = extent(d.Data, fields(name, d))
		}
		return scale.Linear{Domain: domain, Range: rng, Name: spec.Label}, nil
	}
}

// extent returns the numeric extent of the given fields, or [0, 1] if
// there are no numbers.
func extent(records []map[string]any, fields []string) [2]float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range records {
		for _, f := range fields {
			if v, ok := scale.ToFloat(r[f]); ok && !math.IsNaN(v) {
				lo = math.Min(lo, v)
				hi = math.Max(hi, v)
			}
		}
	}
	if lo > hi {
		return [2]float64{0, 1}
	}
	return [2]float64{lo, hi}
}

// distinct returns the keys of the given fields in first-seen order.
func distinct(records []map[string]any, fields []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		for _, f := range fields {
			v, ok := r[f]
			if !ok || v == nil {
				continue
			}
			if k := scale.Key(v); !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	return out
}

// panels splits the records into facet cells, rows first. Empty cells are
// dropped. Without facets there is one panel showing every record.
func panels(d *config.Document, fx, fy scale.Scale) []Panel {
	if fx == nil && fy == nil {
		return []Panel{{}}
	}
	xs, ys := []any{nil}, []any{nil}
	if b, ok := fx.(scale.Band); ok {
		xs = keys(b.Domain)
	}
	if b, ok := fy.(scale.Band); ok {
		ys = keys(b.Domain)
	}

	var out []Panel
	for _, y := range ys {
		for _, x := range xs {
			index := []int{}
			for i, r := range d.Data {
				if matches(r, d.Facet.X, x) && matches(r, d.Facet.Y, y) {
					index = append(index, i)
				}
			}
			if len(index) > 0 {
				out = append(out, Panel{Facet: tip.Facet{X: x, Y: y}, Index: index})
			}
		}
	}
	return out
}

func keys(domain []string) []any {
	out := make([]any, len(domain))
	for i, k := range domain {
		out[i] = k
	}
	return out
}

func matches(r map[string]any, field string, key any) bool {
	if field == "" || key == nil {
		return true
	}
	return scale.Key(r[field]) == key
}
