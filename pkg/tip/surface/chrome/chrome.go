// Package chrome measures tip layers in headless Chrome.
//
// A [Surface] starts detached. [Surface.Attach] serializes the document,
// loads it as an SVG page and reads getBBox() of the root and of every tip
// item in a single evaluation; afterwards the surface is connected and
// answers BBox from those results. Items are matched by their data-tip-item
// attribute, so the document must not be re-rendered between Attach and the
// measurement pass.
package chrome

import (
	"context"
	"encoding/base64"
	stderrors "errors"
	"io"
	"time"

	"github.com/beevik/etree"
	"github.com/charmbracelet/log"
	"github.com/chromedp/chromedp"

	"github.com/matzehuels/tipmark/pkg/errors"
	"github.com/matzehuels/tipmark/pkg/observability"
	"github.com/matzehuels/tipmark/pkg/tip"
)

// DefaultTimeout bounds browser startup, page load and measurement.
const DefaultTimeout = 30 * time.Second

const measureScript = `(() => {
  const box = (el) => {
    const b = el.getBBox();
    return {x: b.x, y: b.y, width: b.width, height: b.height};
  };
  const items = {};
  for (const el of document.querySelectorAll("[` + tip.AttrItem + `]")) {
    items[el.getAttribute("` + tip.AttrItem + `")] = box(el);
  }
  return {canvas: box(document.documentElement), items};
})()`

type box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (b box) tip() tip.Box { return tip.Box{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height} }

type measurement struct {
	Canvas box            `json:"canvas"`
	Items  map[string]box `json:"items"`
}

// Surface is a tip.Surface backed by headless Chrome.
type Surface struct {
	allocOpts []chromedp.ExecAllocatorOption
	timeout   time.Duration
	logger    *log.Logger

	connected bool
	canvas    tip.Box
	items     map[string]tip.Box
}

// Option configures a Surface.
type Option func(*Surface)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Surface) { s.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Surface) { s.logger = l }
}

// WithAllocatorOptions appends Chrome allocator options, e.g.
// chromedp.NoSandbox in containers.
func WithAllocatorOptions(opts ...chromedp.ExecAllocatorOption) Option {
	return func(s *Surface) { s.allocOpts = append(s.allocOpts, opts...) }
}

// New returns a detached surface.
func New(opts ...Option) *Surface {
	s := &Surface{
		allocOpts: append(chromedp.DefaultExecAllocatorOptions[:], chromedp.Headless),
		timeout:   DefaultTimeout,
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connected reports whether Attach has succeeded.
func (s *Surface) Connected() bool { return s.connected }

// BBox returns the measured box of the svg root or of a tip item.
func (s *Surface) BBox(el *etree.Element) (tip.Box, bool) {
	if !s.connected || el == nil {
		return tip.Box{}, false
	}
	if el.Tag == "svg" {
		return s.canvas, true
	}
	b, ok := s.items[el.SelectAttrValue(tip.AttrItem, "")]
	return b, ok
}

// Attach loads doc in a fresh headless browser and measures it. The root
// element must be an svg element with the SVG namespace.
func (s *Surface) Attach(ctx context.Context, doc *etree.Document) (err error) {
	start := time.Now()
	var m measurement
	defer func() {
		observability.Surface().OnAttach(ctx, "chrome", len(m.Items), time.Since(start), err)
	}()

	root := doc.Root()
	if root == nil || root.Tag != "svg" {
		return errors.New(errors.ErrCodeInvalidInput, "chrome surface needs an svg document")
	}
	data, err := doc.WriteToBytes()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to serialize document")
	}
	uri := "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(data)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, s.allocOpts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()
	runCtx, cancel := context.WithTimeout(browserCtx, s.timeout)
	defer cancel()

	s.logger.Debug("loading document in headless chrome", "bytes", len(data))
	err = chromedp.Run(runCtx,
		chromedp.Navigate(uri),
		chromedp.WaitReady("svg", chromedp.ByQuery),
		chromedp.Evaluate(measureScript, &m),
	)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return errors.Wrap(errors.ErrCodeTimeout, err, "chrome measurement timed out after %s", s.timeout)
		}
		return errors.Wrap(errors.ErrCodeUnsupported, err, "chrome measurement failed")
	}

	s.canvas = m.Canvas.tip()
	s.items = make(map[string]tip.Box, len(m.Items))
	for id, b := range m.Items {
		s.items[id] = b.tip()
	}
	s.connected = true
	s.logger.Debug("chrome measured document", "items", len(s.items), "elapsed", time.Since(start))
	return nil
}

// Detach forgets the measurements.
func (s *Surface) Detach() {
	s.connected = false
	s.canvas = tip.Box{}
	s.items = nil
}

var _ tip.Surface = (*Surface)(nil)
