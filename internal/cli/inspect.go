package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tipmark/pkg/config"
	"github.com/matzehuels/tipmark/pkg/pipeline"
)

// zwsp trails every rendered value so the text never collapses to nothing.
const zwsp = "​"

type inspectOpts struct {
	surface string
	memory  string
}

// inspectCommand creates the inspect command, which prints the tip layout
// instead of writing files.
func (c *CLI) inspectCommand() *cobra.Command {
	opts := inspectOpts{
		surface: pipeline.DefaultSurface,
		memory:  pipeline.DefaultMemory,
	}

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print the tips of a plot document as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.surface, "surface", opts.surface, "measurement surface: estimate, chrome")
	cmd.Flags().StringVar(&opts.memory, "memory", opts.memory, "orientation memory: shared, facet")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, w io.Writer, input string, opts inspectOpts) error {
	doc, err := config.Load(input)
	if err != nil {
		return err
	}
	result, err := c.newRunner().Execute(ctx, doc, pipeline.Options{
		Formats:  []string{pipeline.FormatJSON},
		Surface:  opts.surface,
		Memory:   opts.memory,
		HideDots: true,
		Logger:   c.Logger,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(w, StyleTitle.Render(input))
	fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("%d records, %d panel(s), %d tips",
		result.Stats.Records, result.Stats.Panels, result.Stats.Items)))
	fmt.Fprintln(w)
	if len(result.Items) == 0 {
		printWarning(w, "no tips to show")
		return nil
	}
	fmt.Fprintln(w, itemTable(result.Items).Render())
	return nil
}

// itemTable lays out one row per tip.
func itemTable(items []pipeline.ItemResult) *table.Table {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			strconv.Itoa(it.Index),
			facetLabel(it.FX, it.FY),
			fmt.Sprintf("%s, %s", coord(it.X), coord(it.Y)),
			orientationLabel(it),
			sizeLabel(it),
			linesLabel(it.Lines),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("#", "FACET", "ANCHOR", "ORIENTATION", "SIZE", "LINES").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			if col == 0 {
				return StyleDim.Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		})
}

func facetLabel(fx, fy any) string {
	var parts []string
	if fx != nil {
		parts = append(parts, fmt.Sprint(fx))
	}
	if fy != nil {
		parts = append(parts, fmt.Sprint(fy))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "/")
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orientationLabel(it pipeline.ItemResult) string {
	if !it.Measured {
		return "pending"
	}
	return it.Orientation.String()
}

func sizeLabel(it pipeline.ItemResult) string {
	if !it.Measured {
		return "-"
	}
	return fmt.Sprintf("%.0f×%.0f", it.Width, it.Height)
}

func linesLabel(lines []pipeline.LineResult) string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = styleName.Render(l.Name) + strings.TrimSuffix(l.Value, zwsp)
	}
	return strings.Join(out, "\n")
}
