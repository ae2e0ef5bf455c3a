// Package pipeline turns plot documents into rendered tip documents.
//
// The pipeline is shared by the render and inspect commands and the HTTP
// preview server, so every entry point resolves scales, facets and options
// the same way.
//
// # Architecture
//
// A run has four stages:
//
//  1. Build: resolve the document's scales, channels and facet panels
//  2. Render: emit the tip placeholders of every panel into one SVG tree
//  3. Measure: attach the measurement surface and run the deferred pass
//  4. Encode: write the requested formats (SVG, PNG, JSON)
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	doc, err := config.Load("plot.toml")
//	...
//	result, err := runner.Execute(ctx, doc, pipeline.Options{Formats: []string{"svg"}})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tipmark/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultScale is the device pixel ratio of PNG output.
	DefaultScale = 2.0

	// DefaultSurface measures without a browser.
	DefaultSurface = SurfaceEstimate

	// DefaultMemory shares one orientation memory across all panels.
	DefaultMemory = MemoryShared
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// Measurement surfaces.
const (
	SurfaceEstimate = "estimate"
	SurfaceChrome   = "chrome"
)

// Orientation memory policies.
const (
	MemoryShared = "shared"
	MemoryFacet  = "facet"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// ValidSurfaces is the set of supported measurement surfaces.
var ValidSurfaces = map[string]bool{
	SurfaceEstimate: true,
	SurfaceChrome:   true,
}

// ValidMemories is the set of supported memory policies.
var ValidMemories = map[string]bool{
	MemoryShared: true,
	MemoryFacet:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run. It supports JSON for server requests.
type Options struct {
	Formats  []string `json:"formats,omitempty"`
	Surface  string   `json:"surface,omitempty"`
	Memory   string   `json:"memory,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	HideDots bool     `json:"hide_dots,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	// Timeout bounds browser measurement; zero uses the surface default.
	Timeout time.Duration `json:"-"`

	validated bool
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidOption, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSurface checks that a surface name is valid.
func ValidateSurface(surface string) error {
	if !ValidSurfaces[surface] {
		return errors.New(errors.ErrCodeInvalidOption, "invalid surface: %q (must be one of: estimate, chrome)", surface)
	}
	return nil
}

// ValidateMemory checks that a memory policy is valid.
func ValidateMemory(memory string) error {
	if !ValidMemories[memory] {
		return errors.New(errors.ErrCodeInvalidOption, "invalid memory policy: %q (must be one of: shared, facet)", memory)
	}
	return nil
}

// ValidateAndSetDefaults checks the options and applies defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Surface == "" {
		o.Surface = DefaultSurface
	}
	if o.Memory == "" {
		o.Memory = DefaultMemory
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateSurface(o.Surface); err != nil {
		return err
	}
	if err := ValidateMemory(o.Memory); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("scale", o.Scale); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// HasFormat reports whether format was requested.
func (o *Options) HasFormat(format string) bool {
	for _, f := range o.Formats {
		if f == format {
			return true
		}
	}
	return false
}
