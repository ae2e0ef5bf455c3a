package tip

import (
	"context"
	"time"

	"github.com/beevik/etree"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/tipmark/pkg/observability"
	"github.com/matzehuels/tipmark/pkg/tip/anchor"
	"github.com/matzehuels/tipmark/pkg/tip/geometry"
	"github.com/matzehuels/tipmark/pkg/tip/metrics"
)

// State is the phase of a render pass.
type State uint8

const (
	// Placeholder: elements are emitted but have no geometry yet.
	Placeholder State = iota
	// Attached: the measurement pass is running against a live surface.
	Attached
	// Finalized: every measurable item has its outline and text position.
	Finalized
)

func (s State) String() string {
	switch s {
	case Placeholder:
		return "placeholder"
	case Attached:
		return "attached"
	case Finalized:
		return "finalized"
	}
	return "invalid"
}

// Item is one rendered tip.
type Item struct {
	Index int
	// X and Y are the anchor in the coordinates of the item's panel.
	X, Y   float64
	Lines  []metrics.Line
	Stroke string
	Group  *etree.Element

	// Set by the measurement pass.
	Measured    bool
	Box         Box
	Orientation anchor.Orientation
}

// Pass is the result of one render call.
type Pass struct {
	mark   *Mark
	ctx    context.Context
	env    Env
	logger *log.Logger
	memory *anchor.Memory
	dims   Dimensions
	facet  Facet

	id               string
	layer            *etree.Element
	items            []*Item
	offsetX, offsetY float64
	state            State
}

// ID returns the value of the layer's data-tip attribute.
func (p *Pass) ID() string { return p.id }

// Mark returns the mark that rendered the pass.
func (p *Pass) Mark() *Mark { return p.mark }

// Layer returns the group holding the pass's items.
func (p *Pass) Layer() *etree.Element { return p.layer }

// State returns the current phase.
func (p *Pass) State() State { return p.state }

// Facet returns the facet key the pass was rendered for.
func (p *Pass) Facet() Facet { return p.facet }

// Offset returns the facet panel's offset from the frame margins.
func (p *Pass) Offset() (x, y float64) { return p.offsetX, p.offsetY }

// Items returns the rendered items in enumeration order.
func (p *Pass) Items() []Item {
	out := make([]Item, len(p.items))
	for i, it := range p.items {
		out[i] = *it
	}
	return out
}

// finalize is the scheduled continuation. It runs once; if the surface is
// not connected by then the pass stays a placeholder.
func (p *Pass) finalize() {
	if p.state != Placeholder {
		return
	}
	surface := p.env.Surface
	if !surface.Connected() {
		p.logger.Debug("tip surface not connected; placeholders left unpositioned", "layer", p.id)
		return
	}
	p.state = Attached
	start := time.Now()

	canvas := p.canvas()
	opts := p.mark.opts
	hooks := observability.Tip()
	for _, it := range p.items {
		box, ok := surface.BBox(it.Group)
		if !ok {
			p.logger.Debug("tip item not measurable", "layer", p.id, "index", it.Index)
			continue
		}
		prev := p.memory.Last()
		o := anchor.Resolve(p.memory, anchor.Request{
			Fixed:        p.mark.anchor,
			X:            it.X + p.offsetX,
			Y:            it.Y + p.offsetY,
			Width:        box.Width,
			Height:       box.Height,
			CanvasWidth:  canvas.Width,
			CanvasHeight: canvas.Height,
			Flag:         FlagSize,
			Padding:      Padding,
		})
		if p.mark.anchor == anchor.Auto && prev != o {
			p.logger.Debug("tip orientation changed", "from", prev, "to", o, "index", it.Index)
			hooks.OnOrientation(p.ctx, prev.String(), o.String())
		}

		path := it.Group.SelectElement("path")
		path.CreateAttr("d", geometry.Path(o, FlagSize, Padding, box.Width, box.Height))
		text := it.Group.SelectElement("text")
		text.CreateAttr("y", geometry.Em(geometry.LineOffset(o, len(it.Lines), opts.LineHeight)))
		dx, dy := geometry.TextTransform(o, FlagSize, Padding, box.Width)
		text.CreateAttr("transform", geometry.Translate(dx, dy))

		it.Measured = true
		it.Box = box
		it.Orientation = o
	}

	p.state = Finalized
	elapsed := time.Since(start)
	p.logger.Debug("tip layer finalized", "layer", p.id, "items", len(p.items), "elapsed", elapsed)
	hooks.OnFinalize(p.ctx, len(p.items), elapsed)
}

// canvas measures the outermost svg, falling back to the frame size.
func (p *Pass) canvas() Box {
	if svg := outermostSVG(p.layer); svg != nil {
		if b, ok := p.env.Surface.BBox(svg); ok {
			return b
		}
	}
	return Box{Width: p.dims.Width, Height: p.dims.Height}
}
