package metrics

import "github.com/rivo/uniseg"

// Measurer reports the width of a string in hundredths of an em.
type Measurer interface {
	Width(text string) float64
}

// MeasurerFunc adapts a function to the Measurer interface.
type MeasurerFunc func(text string) float64

// Width calls f(text).
func (f MeasurerFunc) Width(text string) float64 { return f(text) }

// eachCluster calls fn for every grapheme cluster of text, with its byte
// offset.
func eachCluster(text string, fn func(offset int, cluster string)) {
	state := -1
	offset := 0
	for text != "" {
		var cluster string
		cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
		fn(offset, cluster)
		offset += len(cluster)
	}
}

// pictographic reports whether the cluster starts with an emoji-like rune.
func pictographic(cluster string) bool {
	for _, r := range cluster {
		switch {
		case r >= 0x1F000 && r <= 0x1FAFF,
			r >= 0x2600 && r <= 0x27BF,
			r >= 0x2B00 && r <= 0x2BFF,
			r == 0x00A9, r == 0x00AE, r == 0x203C, r == 0x2049, r == 0x2122:
			return true
		}
		return false
	}
	return false
}
