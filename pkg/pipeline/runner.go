package pipeline

import (
	"context"
	"time"

	"github.com/beevik/etree"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/tipmark/pkg/cache"
	"github.com/matzehuels/tipmark/pkg/config"
	"github.com/matzehuels/tipmark/pkg/tip"
	"github.com/matzehuels/tipmark/pkg/tip/anchor"
	"github.com/matzehuels/tipmark/pkg/tip/geometry"
	"github.com/matzehuels/tipmark/pkg/tip/schedule"
	"github.com/matzehuels/tipmark/pkg/tip/surface"
	"github.com/matzehuels/tipmark/pkg/tip/surface/chrome"
)

// SVG root defaults, matching common chart styling.
const (
	svgNamespace  = "http://www.w3.org/2000/svg"
	rootFont      = "system-ui, sans-serif"
	rootFontSize  = "10"
	dotRadius     = 2.5
	dotAriaLabel  = "dot"
	panelAriaRole = "facet"
)

// Result contains the outputs of a pipeline run.
type Result struct {
	// Plot is the resolved document.
	Plot *Plot

	// Document is the rendered SVG tree, finalized in place.
	Document *etree.Document

	// Passes holds one render pass per facet panel.
	Passes []*tip.Pass

	// Items lists every tip in panel order.
	Items []ItemResult

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records     int
	Panels      int
	Items       int
	Measured    int
	BuildTime   time.Duration
	RenderTime  time.Duration
	MeasureTime time.Duration
	EncodeTime  time.Duration
}

// attacher is a surface that must load the document before it can measure.
type attacher interface {
	Attach(ctx context.Context, doc *etree.Document) error
}

// Runner executes the pipeline. It holds no per-run state and may be shared
// between goroutines.
type Runner struct {
	Logger *log.Logger

	// NewSurface overrides surface construction, mainly for tests.
	NewSurface func(opts Options, p *Plot) tip.Surface

	// Cache holds artifacts for [Runner.ExecuteCached]. Nil disables caching.
	Cache cache.Cache
}

// NewRunner creates a runner. A nil logger uses the default logger.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs build → render → measure → encode.
func (r *Runner) Execute(ctx context.Context, d *config.Document, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: Build
	buildStart := time.Now()
	p, err := Build(d)
	if err != nil {
		return nil, err
	}
	result.Plot = p
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Records = p.Records
	result.Stats.Panels = len(p.Panels)

	r.Logger.Debug("built plot",
		"records", p.Records,
		"panels", len(p.Panels),
		"duration", result.Stats.BuildTime)

	// Stage 2: Render placeholders
	renderStart := time.Now()
	mark, err := tip.New(p.Options)
	if err != nil {
		return nil, err
	}
	doc, svg := newDocument(p)
	result.Document = doc

	surf := r.surface(opts, p)
	loop := schedule.NewLoop()
	for _, panel := range p.Panels {
		g := svg.CreateElement("g")
		if p.FX != nil || p.FY != nil {
			g.CreateAttr("aria-label", panelAriaRole)
		}
		env := tip.Env{Parent: g, Surface: surf, Scheduler: loop, Logger: opts.Logger}
		if opts.Memory == MemoryFacet {
			env.Memory = anchor.NewMemory()
		}
		pass, err := mark.Render(ctx, tip.Input{
			Index:      panel.Index,
			Channels:   p.Channels,
			Scales:     tip.Scales{ByName: p.Scales, FX: p.FX, FY: p.FY},
			Facet:      panel.Facet,
			Dimensions: p.Dimensions,
		}, env)
		if err != nil {
			return nil, err
		}
		if ox, oy := pass.Offset(); ox != 0 || oy != 0 {
			g.CreateAttr("transform", geometry.Translate(ox, oy))
		}
		result.Passes = append(result.Passes, pass)
	}
	result.Stats.RenderTime = time.Since(renderStart)

	// Stage 3: Measure
	measureStart := time.Now()
	if err := r.measure(ctx, doc, surf, loop); err != nil {
		return nil, err
	}
	result.Stats.MeasureTime = time.Since(measureStart)

	if !opts.HideDots {
		for _, pass := range result.Passes {
			addDots(pass)
		}
	}
	result.Items = items(result.Passes)
	result.Stats.Items = len(result.Items)
	for _, it := range result.Items {
		if it.Measured {
			result.Stats.Measured++
		}
	}

	r.Logger.Info("rendered tips",
		"items", result.Stats.Items,
		"measured", result.Stats.Measured,
		"surface", opts.Surface,
		"duration", result.Stats.RenderTime+result.Stats.MeasureTime)

	// Stage 4: Encode
	encodeStart := time.Now()
	artifacts, err := Render(result, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.EncodeTime = time.Since(encodeStart)

	r.Logger.Debug("encoded outputs",
		"formats", opts.Formats,
		"duration", result.Stats.EncodeTime)

	return result, nil
}

func (r *Runner) surface(opts Options, p *Plot) tip.Surface {
	if r.NewSurface != nil {
		return r.NewSurface(opts, p)
	}
	if opts.Surface == SurfaceChrome {
		chromeOpts := []chrome.Option{chrome.WithLogger(opts.Logger)}
		if opts.Timeout > 0 {
			chromeOpts = append(chromeOpts, chrome.WithTimeout(opts.Timeout))
		}
		return chrome.New(chromeOpts...)
	}
	return surface.NewEstimate(p.Options.Monospace)
}

// measure runs the deferred passes. Connected surfaces already queued
// microtasks; detached ones requested a frame and are attached first.
func (r *Runner) measure(ctx context.Context, doc *etree.Document, surf tip.Surface, loop *schedule.Loop) error {
	loop.Flush()
	if _, frames := loop.Pending(); frames == 0 {
		return nil
	}
	if a, ok := surf.(attacher); ok && !surf.Connected() {
		if err := a.Attach(ctx, doc); err != nil {
			return err
		}
	}
	if !surf.Connected() {
		r.Logger.Warn("measurement surface never connected; tips left unpositioned")
	}
	loop.Frame()
	return nil
}

func newDocument(p *Plot) (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", svgNamespace)
	svg.CreateAttr("width", geometry.Number(p.Dimensions.Width))
	svg.CreateAttr("height", geometry.Number(p.Dimensions.Height))
	svg.CreateAttr("viewBox", "0 0 "+geometry.Number(p.Dimensions.Width)+" "+geometry.Number(p.Dimensions.Height))
	svg.CreateAttr("font-family", rootFont)
	svg.CreateAttr("font-size", rootFontSize)
	return doc, svg
}

// addDots marks each anchor with a dot drawn beneath the tips.
func addDots(pass *tip.Pass) {
	layer := pass.Layer()
	parent := layer.Parent()
	if parent == nil {
		return
	}
	g := etree.NewElement("g")
	g.CreateAttr("aria-label", dotAriaLabel)
	g.CreateAttr("fill", "currentColor")
	for _, it := range pass.Items() {
		c := g.CreateElement("circle")
		c.CreateAttr("cx", geometry.Number(it.X))
		c.CreateAttr("cy", geometry.Number(it.Y))
		c.CreateAttr("r", geometry.Number(dotRadius))
		if it.Stroke != "" {
			c.CreateAttr("fill", it.Stroke)
		}
	}
	parent.InsertChildAt(layer.Index(), g)
}
