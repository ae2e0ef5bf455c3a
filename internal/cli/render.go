package cli

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tipmark/pkg/config"
	"github.com/matzehuels/tipmark/pkg/errors"
	"github.com/matzehuels/tipmark/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string        // output file (one format) or base path (several)
	formats  []string      // svg, png, json
	surface  string        // estimate or chrome
	memory   string        // shared or facet
	scale    float64       // PNG pixel ratio
	hideDots bool          // omit the anchor dots beneath the tips
	timeout  time.Duration // chrome measurement deadline
	noCache  bool          // bypass the artifact cache
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		surface: pipeline.DefaultSurface,
		memory:  pipeline.DefaultMemory,
		scale:   pipeline.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render the tips of a plot document",
		Long: `Render lays out one tip per record of a TOML or JSON plot document and
writes the result as SVG, PNG or JSON.

The estimate surface measures text from font metrics. The chrome surface
loads the SVG into a headless browser and measures real glyph boxes.`,
		Example: `  tipmark render penguins.toml
  tipmark render penguins.toml -f svg,png -o out/penguins
  tipmark render facets.toml --surface chrome --memory facet`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().StringVar(&opts.surface, "surface", opts.surface, "measurement surface: estimate, chrome")
	cmd.Flags().StringVar(&opts.memory, "memory", opts.memory, "orientation memory: shared, facet")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG pixel ratio")
	cmd.Flags().BoolVar(&opts.hideDots, "hide-dots", false, "do not draw anchor dots")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "chrome measurement timeout (0 uses the surface default)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "always render, bypassing the artifact cache")

	return cmd
}

// runRender executes the pipeline on input and writes one file per format.
func (c *CLI) runRender(ctx context.Context, cmd *cobra.Command, input string, opts *renderOpts) error {
	c.Logger.Infof("Rendering %s", input)
	prog := newProgress(c.Logger)

	doc, err := config.Load(input)
	if err != nil {
		return err
	}

	var spin *spinner
	if opts.surface == pipeline.SurfaceChrome {
		spin = startSpinner(ctx, cmd.ErrOrStderr(), "Measuring in headless Chrome...", 100*time.Millisecond)
	}
	runner := c.newRunner()
	if !opts.noCache {
		if fc, err := c.openCache(); err != nil {
			c.Logger.Warn("cache unavailable", "error", err)
		} else {
			runner.Cache = fc
		}
	}
	result, hit, err := runner.ExecuteCached(ctx, doc, pipeline.Options{
		Formats:  opts.formats,
		Surface:  opts.surface,
		Memory:   opts.memory,
		Scale:    opts.scale,
		HideDots: opts.hideDots,
		Timeout:  opts.timeout,
		Logger:   c.Logger,
	})
	spin.stop()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !hit && result.Stats.Measured < result.Stats.Items {
		printWarning(out, "%d of %d tips were not measured", result.Stats.Items-result.Stats.Measured, result.Stats.Items)
	}

	paths := outputPaths(input, opts.output, opts.formats)
	formats := make([]string, 0, len(paths))
	for f := range paths {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	for _, f := range formats {
		if err := os.MkdirAll(filepath.Dir(paths[f]), 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "create %s", filepath.Dir(paths[f]))
		}
		if err := os.WriteFile(paths[f], result.Artifacts[f], 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", paths[f])
		}
	}

	prog.done("Rendered tips")
	if hit {
		printSuccess(out, "Loaded %d file(s) from cache", len(formats))
	} else {
		printSuccess(out, "Rendered %d tips in %d panel(s)", result.Stats.Items, result.Stats.Panels)
	}
	for _, f := range formats {
		printFile(out, paths[f])
	}
	return nil
}
