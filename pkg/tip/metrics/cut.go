package metrics

import (
	"strings"
	"unicode"
)

// Ellipsis is appended to truncated text.
const Ellipsis = "…"

// Cut finds where text must be cut so that the kept prefix plus inset (the
// width of the ellipsis) fits within width. It returns the byte offset of the
// cut, or -1 if the whole text fits without an ellipsis, along with the
// width left over.
//
// The kept prefix is never empty: when not even the first grapheme cluster
// fits next to the inset, the cut falls right after it.
func Cut(text string, width float64, m Measurer, inset float64) (int, float64) {
	var (
		starts []int
		widths []float64
		w      float64
		cut    = -1
		over   bool
	)
	eachCluster(text, func(offset int, cluster string) {
		if over {
			return
		}
		l := m.Width(cluster)
		if w+l > width {
			over = true
			if len(starts) == 0 {
				cut = len(cluster)
				w = l + inset
				return
			}
			cut = offset
			w += inset
			for w > width && len(starts) > 1 {
				n := len(starts) - 1
				cut = starts[n]
				w -= widths[n]
				starts, widths = starts[:n], widths[:n]
			}
			return
		}
		w += l
		starts = append(starts, offset)
		widths = append(widths, l)
	})
	return cut, width - w
}

// Truncate shortens text to fit width using the measurer, replacing the
// removed tail with an ellipsis. Trailing whitespace before the ellipsis is
// trimmed. It reports whether truncation happened.
func Truncate(text string, width float64, m Measurer) (string, bool) {
	j, _ := Cut(text, width, m, m.Width(Ellipsis))
	if j < 0 {
		return text, false
	}
	return trimEnd(text[:j]) + Ellipsis, true
}

func trimEnd(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
