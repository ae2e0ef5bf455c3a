package tip

import (
	"context"
	"io"
	"math"
	"strconv"

	"github.com/beevik/etree"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/tipmark/pkg/channel"
	"github.com/matzehuels/tipmark/pkg/errors"
	"github.com/matzehuels/tipmark/pkg/format"
	"github.com/matzehuels/tipmark/pkg/observability"
	"github.com/matzehuels/tipmark/pkg/scale"
	"github.com/matzehuels/tipmark/pkg/tip/anchor"
	"github.com/matzehuels/tipmark/pkg/tip/geometry"
	"github.com/matzehuels/tipmark/pkg/tip/metrics"
	"github.com/matzehuels/tipmark/pkg/tip/schedule"
)

const (
	ariaLabel  = "tip"
	dropShadow = "drop-shadow(0 3px 4px rgba(0,0,0,0.2))"

	// StrokeChannel is the channel key carrying a per-item stroke color.
	StrokeChannel = "stroke"

	// AttrLayer identifies a rendered tip layer; AttrItem one of its items.
	AttrLayer = "data-tip"
	AttrItem  = "data-tip-item"
)

// Dimensions describes the frame a mark is rendered into.
type Dimensions struct {
	Width, Height float64
	MarginTop     float64
	MarginRight   float64
	MarginBottom  float64
	MarginLeft    float64
}

// Scales are the scales available to a render, keyed by name. FX and FY are
// the facet scales, nil when not faceted.
type Scales struct {
	ByName map[string]scale.Scale
	FX, FY scale.Scale
}

// Facet is the facet key of the panel being rendered.
type Facet struct {
	X, Y any
}

// Input is the data of one render call.
type Input struct {
	// Index selects records to render; nil renders all of them.
	Index      []int
	Channels   *channel.Set
	Scales     Scales
	Facet      Facet
	Dimensions Dimensions
}

// Env is where a render call draws and how it is continued.
type Env struct {
	Parent    *etree.Element
	Surface   Surface
	Scheduler schedule.Scheduler
	Logger    *log.Logger
	// Memory overrides the mark's orientation memory for this call.
	Memory *anchor.Memory
}

// Render emits one placeholder per record under env.Parent and schedules
// the measurement pass. Configuration errors (unbound or short anchor
// channels, unknown scales, missing collaborators) are reported before
// anything is emitted.
func (m *Mark) Render(ctx context.Context, in Input, env Env) (*Pass, error) {
	if env.Parent == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "render needs a parent element")
	}
	if env.Surface == nil || env.Scheduler == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "render needs a surface and a scheduler")
	}
	logger := env.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	memory := env.Memory
	if memory == nil {
		memory = m.memory
	}

	xs, err := m.positions(in, m.opts.X, m.opts.X1, m.opts.X2)
	if err != nil {
		return nil, err
	}
	ys, err := m.positions(in, m.opts.Y, m.opts.Y1, m.opts.Y2)
	if err != nil {
		return nil, err
	}
	fx, fy := m.frameAnchor(in.Dimensions)

	index := in.Index
	if index == nil {
		n := in.Channels.Len()
		index = make([]int, n)
		for i := range index {
			index[i] = i
		}
	}
	if err := checkIndex(index, xs, "x"); err != nil {
		return nil, err
	}
	if err := checkIndex(index, ys, "y"); err != nil {
		return nil, err
	}

	p := &Pass{
		mark:    m,
		ctx:     ctx,
		env:     env,
		logger:  logger,
		memory:  memory,
		dims:    in.Dimensions,
		facet:   in.Facet,
		id:      uuid.NewString(),
		offsetX: facetOffset(in.Scales.FX, in.Facet.X, in.Dimensions.MarginLeft),
		offsetY: facetOffset(in.Scales.FY, in.Facet.Y, in.Dimensions.MarginTop),
	}
	p.layer = m.layer(env.Parent, p.id)

	facetLines := m.facetLines(in)
	for _, i := range index {
		x, y := fx, fy
		if xs != nil {
			x = xs[i]
		}
		if ys != nil {
			y = ys[i]
		}
		if math.IsNaN(x) || math.IsNaN(y) {
			logger.Debug("tip skipped: undefined position", "index", i)
			continue
		}
		lines := append(m.channelLines(in, i), facetLines...)
		item := &Item{Index: i, X: x, Y: y, Lines: lines, Stroke: strokeOf(in.Channels, i)}
		item.Group = m.placeholder(p.layer, p.id, len(p.items), item)
		p.items = append(p.items, item)
	}
	logger.Debug("tip placeholders emitted", "layer", p.id, "items", len(p.items))
	observability.Tip().OnRender(ctx, len(p.items))

	switch {
	case env.Surface.Connected():
		logger.Debug("tip measurement queued as microtask", "layer", p.id)
		env.Scheduler.QueueMicrotask(p.finalize)
	case env.Scheduler.RequestFrame(p.finalize):
		logger.Debug("tip measurement deferred to next frame", "layer", p.id)
	default:
		logger.Debug("tip measurement not scheduled: no frame clock", "layer", p.id)
	}
	return p, nil
}

// positions resolves one axis to pixel coordinates. It returns nil when the
// axis is not bound, in which case the frame anchor applies.
func (m *Mark) positions(in Input, point, lo, hi string) ([]float64, error) {
	switch {
	case point != "":
		return m.scaled(in, point)
	case lo != "":
		a, err := m.scaled(in, lo)
		if err != nil {
			return nil, err
		}
		b, err := m.scaled(in, hi)
		if err != nil {
			return nil, err
		}
		if len(a) != len(b) {
			return nil, errors.New(errors.ErrCodeInvalidChannel,
				"range channels %q and %q differ in length (%d, %d)", lo, hi, len(a), len(b))
		}
		for i := range a {
			a[i] = (a[i] + b[i]) / 2
		}
		return a, nil
	}
	return nil, nil
}

// checkIndex reports records the resolved positions of an axis do not cover.
// A nil pos is the frame anchor and covers everything.
func checkIndex(index []int, pos []float64, axis string) error {
	if pos == nil {
		return nil
	}
	for _, i := range index {
		if i < 0 || i >= len(pos) {
			return errors.New(errors.ErrCodeInvalidChannel,
				"record %d is outside the %s channel (%d values)", i, axis, len(pos))
		}
	}
	return nil
}

// scaled applies the channel's scale; unscaled values are taken as pixels.
// Values that cannot be mapped yield NaN.
func (m *Mark) scaled(in Input, key string) ([]float64, error) {
	ch := in.Channels.Get(key)
	if ch == nil {
		return nil, errors.New(errors.ErrCodeInvalidChannel, "anchor channel %q is not bound", key)
	}
	apply := scale.ToFloat
	if ch.Scale != "" {
		s, ok := in.Scales.ByName[ch.Scale]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidScale, "channel %q uses unknown scale %q", key, ch.Scale)
		}
		apply = s.Apply
	}
	out := make([]float64, len(ch.Values))
	for i, v := range ch.Values {
		f, ok := apply(v)
		if !ok {
			f = math.NaN()
		}
		out[i] = f
	}
	return out, nil
}

// frameAnchor returns the fallback anchor inside the frame minus margins.
func (m *Mark) frameAnchor(d Dimensions) (x, y float64) {
	return m.frame.Point(d.MarginLeft, d.MarginTop, d.Width-d.MarginRight, d.Height-d.MarginBottom)
}

// facetOffset is the panel's position relative to the frame's left or top
// margin. It is zero when the axis is not faceted.
func facetOffset(s scale.Scale, key any, margin float64) float64 {
	if s == nil {
		return 0
	}
	v, ok := s.Apply(key)
	if !ok {
		return 0
	}
	return v - margin
}

// channelLines lists one line per displayable channel, named by the scale
// label when there is one.
func (m *Mark) channelLines(in Input, i int) []metrics.Line {
	var lines []metrics.Line
	for _, key := range in.Channels.Keys() {
		src := in.Channels.Source(key)
		if src == nil || i >= len(src.Values) {
			continue
		}
		name := key
		if s, ok := in.Scales.ByName[src.Scale]; ok && s.Label() != "" {
			name = s.Label()
		}
		lines = append(lines, m.Line(name, format.Default(src.Values[i])))
	}
	return lines
}

// facetLines lists the panel's facet values; they are the same for every
// item of the call.
func (m *Mark) facetLines(in Input) []metrics.Line {
	var lines []metrics.Line
	for _, f := range []struct {
		s   scale.Scale
		key any
		def string
	}{{in.Scales.FX, in.Facet.X, "fx"}, {in.Scales.FY, in.Facet.Y, "fy"}} {
		if f.s == nil {
			continue
		}
		name := f.s.Label()
		if name == "" {
			name = f.def
		}
		lines = append(lines, m.Line(name, format.InferTickFormat(f.s)(f.key)))
	}
	return lines
}

func strokeOf(set *channel.Set, i int) string {
	ch := set.Get(StrokeChannel)
	if ch == nil || i >= len(ch.Values) || ch.Values[i] == nil {
		return ""
	}
	return format.Default(ch.Values[i])
}

// layer creates the group holding every tip of a render call.
func (m *Mark) layer(parent *etree.Element, id string) *etree.Element {
	g := parent.CreateElement("g")
	g.CreateAttr("aria-label", ariaLabel)
	g.CreateAttr(AttrLayer, id)
	setAttr(g, "fill", m.opts.Fill)
	setAttr(g, "stroke", m.opts.Stroke)
	setAttr(g, "font-family", m.opts.FontFamily)
	if m.opts.FontSize > 0 {
		g.CreateAttr("font-size", geometry.Number(m.opts.FontSize))
	}
	setAttr(g, "font-style", m.opts.FontStyle)
	setAttr(g, "font-variant", m.opts.FontVariant)
	setAttr(g, "font-weight", m.opts.FontWeight)
	return g
}

// placeholder emits one item group: an outline path without geometry and
// the text lines.
func (m *Mark) placeholder(layer *etree.Element, id string, n int, item *Item) *etree.Element {
	g := layer.CreateElement("g")
	g.CreateAttr(AttrItem, id+"-"+strconv.Itoa(n))
	g.CreateAttr("transform", geometry.Translate(item.X, item.Y))
	setAttr(g, "stroke", item.Stroke)

	path := g.CreateElement("path")
	path.CreateAttr("filter", dropShadow)

	text := g.CreateElement("text")
	fill := item.Stroke
	if fill == "" {
		fill = m.opts.Stroke
	}
	setAttr(text, "fill", fill)
	text.CreateAttr("stroke", "none")

	dy := geometry.Em(m.opts.LineHeight)
	for _, l := range item.Lines {
		line := text.CreateElement("tspan")
		line.CreateAttr("x", "0")
		line.CreateAttr("dy", dy)
		name := line.CreateElement("tspan")
		name.CreateAttr("font-weight", "bold")
		name.SetText(l.Name)
		if l.Value != "" {
			line.CreateText(l.Value)
		}
		if l.Title != "" {
			line.CreateElement("title").SetText(l.Title)
		}
	}
	return g
}

func setAttr(el *etree.Element, key, value string) {
	if value != "" {
		el.CreateAttr(key, value)
	}
}

// outermostSVG returns the root svg element above el, or nil.
func outermostSVG(el *etree.Element) *etree.Element {
	var svg *etree.Element
	for e := el; e != nil; e = e.Parent() {
		if e.Tag == "svg" {
			svg = e
		}
	}
	return svg
}
