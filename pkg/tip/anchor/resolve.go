package anchor

// Memory remembers the last auto-resolved orientation. One Memory is
// typically owned by one mark and shared by every item and render call of
// that mark; callers wanting per-facet isolation give each panel its own.
//
// Memory is not safe for concurrent use. Writes are last-write-wins in item
// order, which is deterministic on a single layout goroutine.
type Memory struct {
	last Orientation
}

// NewMemory returns an empty memory.
func NewMemory() *Memory { return &Memory{} }

// Last returns the most recently resolved orientation, or [Auto] if none.
func (m *Memory) Last() Orientation {
	if m == nil {
		return Auto
	}
	return m.last
}

// Reset forgets the remembered orientation.
func (m *Memory) Reset() {
	if m != nil {
		m.last = Auto
	}
}

// Request describes one item to orient. Coordinates are in canvas pixels.
type Request struct {
	Fixed         Orientation // non-Auto disables resolution
	X, Y          float64     // anchor point
	Width, Height float64     // measured content box
	CanvasWidth   float64
	CanvasHeight  float64
	Flag          float64 // flag (connector) size
	Padding       float64
}

// Fit holds the four space tests for a request. Left means there is room
// for a body extending right of the anchor (orientation "*-left"), Top means
// room for a body below the anchor (orientation "top-*").
type Fit struct {
	Left, Right, Top, Bottom bool
}

// extraBottom is extra room required below the anchor for "top-*" bodies,
// which sit under the text baseline of the last line.
const extraBottom = 7

// Fits computes the space tests for r against the canvas bounds.
func Fits(r Request) Fit {
	return Fit{
		Left:   r.X+r.Width+r.Padding*2 < r.CanvasWidth,
		Right:  r.X-r.Width-r.Padding*2 > 0,
		Top:    r.Y+r.Height+r.Flag+r.Padding*2+extraBottom < r.CanvasHeight,
		Bottom: r.Y-r.Height-r.Flag-r.Padding*2 > 0,
	}
}

// Resolve returns the orientation for r.
//
// A fixed orientation is returned as is and mem is left untouched. Otherwise
// each axis keeps the previous side from mem while it still fits (or while
// the other side does not fit either), and switches only when the previous
// side no longer fits and the other one does. Without a previous side the
// balloon goes right of and above the anchor unless only the opposite side
// fits. The result is stored in mem; mem may be nil.
func Resolve(mem *Memory, r Request) Orientation {
	if r.Fixed != Auto {
		return r.Fixed
	}
	prev := mem.Last()
	fit := Fits(r)

	var left, top bool
	if prev.Left() {
		left = fit.Left || !fit.Right
	} else {
		left = fit.Left && !fit.Right
	}
	if prev.Top() {
		top = fit.Top || !fit.Bottom
	} else {
		top = fit.Top && !fit.Bottom
	}

	o := Of(top, left)
	if mem != nil {
		mem.last = o
	}
	return o
}
