package tip

import (
	"github.com/beevik/etree"

	"github.com/matzehuels/tipmark/pkg/tip/anchor"
	"github.com/matzehuels/tipmark/pkg/tip/metrics"
)

// Box is a measured bounding box in pixels.
type Box struct {
	X, Y, Width, Height float64
}

// Surface is a live rendering surface that can measure elements of the tree
// a tip was rendered into.
type Surface interface {
	// Connected reports whether the document is attached and measurable.
	Connected() bool
	// BBox returns the rendered bounding box of el, or false if el cannot
	// be measured.
	BBox(el *etree.Element) (Box, bool)
}

// Mark is a configured tip mark. A Mark owns its orientation memory and may
// be rendered any number of times, but not concurrently.
type Mark struct {
	opts   Options
	anchor anchor.Orientation
	frame  anchor.Frame
	memory *anchor.Memory
}

// New validates opts and returns a mark. Invalid anchors, frame anchors,
// channel pairings and option values are rejected.
func New(opts Options) (*Mark, error) {
	a, err := anchor.Parse(opts.Anchor)
	if err != nil {
		return nil, err
	}
	f, err := anchor.ParseFrame(opts.FrameAnchor)
	if err != nil {
		return nil, err
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	mem := opts.Memory
	if mem == nil {
		mem = anchor.NewMemory()
	}
	return &Mark{opts: opts, anchor: a, frame: f, memory: mem}, nil
}

// Options returns the effective options, defaults included.
func (m *Mark) Options() Options { return m.opts }

// Anchor returns the fixed orientation, or anchor.Auto.
func (m *Mark) Anchor() anchor.Orientation { return m.anchor }

// Memory returns the mark's orientation memory.
func (m *Mark) Memory() *anchor.Memory { return m.memory }

// Line lays out one tip line with the mark's width budget and measurer.
func (m *Mark) Line(name, value string) metrics.Line {
	return metrics.NewLine(name, value, m.opts.LineWidth, m.opts.Measurer)
}
