// Package schedule defers work until a rendering surface can be measured.
//
// A [Scheduler] offers two kinds of deferral: a microtask, which runs once
// the current synchronous pass has finished, and a frame callback, which
// runs on the next paint of the surface. [Loop] is a cooperative,
// single-goroutine implementation driven explicitly by its owner.
package schedule

// Scheduler queues deferred callbacks.
type Scheduler interface {
	// QueueMicrotask runs fn after the current synchronous work completes.
	QueueMicrotask(fn func())
	// RequestFrame runs fn on the next frame. It returns false if the host
	// has no frame clock, in which case fn will never run.
	RequestFrame(fn func()) bool
}

// Loop is a cooperative task queue. Nothing runs until the owner calls
// [Loop.Flush] or [Loop.Frame]; callbacks run in the order they were queued.
// A Loop must only be used from one goroutine.
type Loop struct {
	micro    []func()
	frames   []func()
	noFrames bool
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithoutFrames models a host without a frame clock: RequestFrame refuses
// every callback.
func WithoutFrames() LoopOption {
	return func(l *Loop) { l.noFrames = true }
}

// NewLoop creates an empty loop.
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// QueueMicrotask implements Scheduler.
func (l *Loop) QueueMicrotask(fn func()) {
	l.micro = append(l.micro, fn)
}

// RequestFrame implements Scheduler.
func (l *Loop) RequestFrame(fn func()) bool {
	if l.noFrames {
		return false
	}
	l.frames = append(l.frames, fn)
	return true
}

// Flush runs queued microtasks until the queue is empty, including
// microtasks queued while flushing. It returns the number run.
func (l *Loop) Flush() int {
	n := 0
	for len(l.micro) > 0 {
		fn := l.micro[0]
		l.micro = l.micro[1:]
		fn()
		n++
	}
	return n
}

// Frame runs the frame callbacks requested before the call, then flushes
// microtasks. Callbacks requested during the frame wait for the next one.
// It returns the number of frame callbacks run.
func (l *Loop) Frame() int {
	frames := l.frames
	l.frames = nil
	for _, fn := range frames {
		fn()
		l.Flush()
	}
	l.Flush()
	return len(frames)
}

// Pending returns the number of queued microtasks and frame callbacks.
func (l *Loop) Pending() (micro, frames int) {
	return len(l.micro), len(l.frames)
}

var _ Scheduler = (*Loop)(nil)
