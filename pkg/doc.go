// Package pkg provides the libraries behind tipmark, a layout engine for
// chart annotation tips.
//
// # Overview
//
// A tip is a small balloon with a pointer, anchored at a data point, that
// lists the point's channel values as "name value" lines. Tipmark places one
// tip per record, truncates long lines, and chooses the corner the balloon
// hangs from so it stays on the canvas. Orientation is sticky: a tip keeps
// the previous side while it still fits, so neighbouring balloons do not
// flip back and forth.
//
// # Architecture
//
// The typical data flow:
//
//	TOML/JSON plot document
//	         ↓
//	    [config] (decode + validate)
//	         ↓
//	    [pipeline] Build (scales, channels, facet panels)
//	         ↓
//	    [tip] Render (placeholder SVG per record)
//	         ↓
//	    surface measurement (font metrics or headless Chrome)
//	         ↓
//	    [tip] finalize (orientation, balloon path, text offsets)
//	         ↓
//	    SVG/PNG/JSON output
//
// Rendering is two-phase: the placeholder pass appends text without
// geometry, and finalization runs once the text can be measured. The
// measurement runs on a [schedule] loop so a live surface can load the
// document first.
//
// # Main Packages
//
// [tip] - The tip mark: options, rendering, passes and finalization.
//
//   - [tip/anchor]: Orientations, frame anchors and hysteresis memory
//   - [tip/metrics]: Text width estimates and line truncation
//   - [tip/geometry]: Balloon outline and text placement
//   - [tip/schedule]: Microtask and frame queues
//   - [tip/surface]: Measurement surfaces (estimate, chrome)
//   - [tip/sink]: SVG and PNG encoders
//
// [channel] - Per-record value arrays bound from document fields.
//
// [scale] - Linear and band scales, including facet scales.
//
// [format] - Default value and tick formatting.
//
// [fonts] - Embedded Go fonts for raster output.
//
// [cache] - Rendered artifact cache (file, Redis, MongoDB).
//
// [observability] - Hooks for render and surface events.
//
// [errors] - Structured error codes shared by the CLI and HTTP endpoint.
//
// # Quick Start
//
//	doc, _ := config.Load("penguins.toml")
//	result, _ := pipeline.NewRunner(nil).Execute(ctx, doc, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	os.WriteFile("penguins.svg", result.Artifacts[pipeline.FormatSVG], 0o644)
//
// [tip]: https://pkg.go.dev/github.com/matzehuels/tipmark/pkg/tip
// [tip/anchor]: https://pkg.go.dev/github.com/matzehuels/tipmark/pkg/tip/anchor
// [tip/metrics]: https://pkg.go.dev/github.com/matzehuels/tipmark/pkg/tip/metrics
// [tip/geometry]: https://pkg.go.dev/github.com/matzehuels/tipmark/pkg/tip/geometry
// [tip/schedule]: https://pkg.go.dev/github.com/matzehuels/tipmark/pkg/tip/schedule
// [tip/surface]: https://pkg.go.dev/github.com/matzehuels/tipmark/pkg/tip/surface
// [tip/sink]: https://pkg.go.dev/github.com/matzehuels/tipmark/pkg/tip/sink
// [schedule]: https://pkg.go.dev/github.com/matzehuels/tipmark/pkg/tip/schedule
// [channel]: https://pkg.go.dev/github.com/matzehuels/tipmark/pkg/channel
// [scale]: https://pkg.go.dev/github.com/matzehuels/tipmark/pkg/scale
// [format]: https://pkg.go.dev/github.com/matzehuels/tipmark/pkg/format
// [fonts]: https://pkg.go.dev/github.com/matzehuels/tipmark/pkg/fonts
// [cache]: https://pkg.go.dev/github.com/matzehuels/tipmark/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/tipmark/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/tipmark/pkg/errors
//
// [config]: https://pkg.go.dev/github.com/matzehuels/tipmark/pkg/config
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/tipmark/pkg/pipeline
package pkg
