package metrics

import "github.com/mattn/go-runewidth"

const (
	defaultCell       = 62
	defaultPictograph = 126
)

// Monospace measures text as a fixed-pitch font: every character cell has
// the same width. East Asian wide characters take two cells, zero-width
// characters none.
type Monospace struct {
	Cell       float64 // width of one cell
	Pictograph float64 // width of an emoji cluster; 0 means two cells
}

// NewMonospace returns the default fixed-pitch measurer, matching the
// advance of common ui-monospace faces.
func NewMonospace() Monospace {
	return Monospace{Cell: defaultCell, Pictograph: defaultPictograph}
}

// Width implements Measurer.
func (m Monospace) Width(text string) float64 {
	var sum float64
	eachCluster(text, func(_ int, cluster string) {
		if pictographic(cluster) {
			if m.Pictograph > 0 {
				sum += m.Pictograph
			} else {
				sum += 2 * m.Cell
			}
			return
		}
		sum += float64(runewidth.StringWidth(cluster)) * m.Cell
	})
	return sum
}
