package metrics

// helvetica holds average advances of a Helvetica-like sans-serif face in
// hundredths of an em.
var helvetica = map[rune]float64{
	' ': 27.8, '!': 27.8, '"': 35.5, '#': 55.6, '$': 55.6, '%': 88.9, '&': 66.7, '\'': 19.1,
	'(': 33.3, ')': 33.3, '*': 38.9, '+': 58.4, ',': 27.8, '-': 33.3, '.': 27.8, '/': 27.8,
	'0': 55.6, '1': 55.6, '2': 55.6, '3': 55.6, '4': 55.6, '5': 55.6, '6': 55.6, '7': 55.6,
	'8': 55.6, '9': 55.6, ':': 27.8, ';': 27.8, '<': 58.4, '=': 58.4, '>': 58.4, '?': 55.6,
	'@': 101.5,
	'A': 66.7, 'B': 66.7, 'C': 72.2, 'D': 72.2, 'E': 66.7, 'F': 61.1, 'G': 77.8, 'H': 72.2,
	'I': 27.8, 'J': 50.0, 'K': 66.7, 'L': 55.6, 'M': 83.3, 'N': 72.2, 'O': 77.8, 'P': 66.7,
	'Q': 77.8, 'R': 72.2, 'S': 66.7, 'T': 61.1, 'U': 72.2, 'V': 66.7, 'W': 94.4, 'X': 66.7,
	'Y': 66.7, 'Z': 61.1,
	'[': 27.8, '\\': 27.8, ']': 27.8, '^': 46.9, '_': 55.6, '`': 33.3,
	'a': 55.6, 'b': 55.6, 'c': 50.0, 'd': 55.6, 'e': 55.6, 'f': 27.8, 'g': 55.6, 'h': 55.6,
	'i': 22.2, 'j': 22.2, 'k': 50.0, 'l': 22.2, 'm': 83.3, 'n': 55.6, 'o': 55.6, 'p': 55.6,
	'q': 55.6, 'r': 33.3, 's': 50.0, 't': 27.8, 'u': 55.6, 'v': 50.0, 'w': 72.2, 'x': 50.0,
	'y': 50.0, 'z': 50.0,
	'{': 33.4, '|': 26.0, '}': 33.4, '~': 58.4,
	'…': 100, '–': 55.6, '—': 100, '·': 27.8, '°': 40.0,
	'\u200b': 0, '\u200c': 0, '\u200d': 0, '\ufeff': 0,
}

const (
	fallbackGlyph      = 'e'
	proportionalPicto  = 120
	proportionalBoldUp = 1.1
)

// Proportional measures text with a per-character average-width table.
// Unknown characters count as an "e"; emoji clusters as a wide square.
type Proportional struct {
	// Scale multiplies every width; 0 means 1. Use [ProportionalBold] for an
	// approximation of a bold face.
	Scale float64
}

// NewProportional returns the default proportional measurer.
func NewProportional() Proportional { return Proportional{Scale: 1} }

// ProportionalBold approximates a bold face as slightly wider glyphs.
func ProportionalBold() Proportional { return Proportional{Scale: proportionalBoldUp} }

// Width implements Measurer.
func (p Proportional) Width(text string) float64 {
	scale := p.Scale
	if scale == 0 {
		scale = 1
	}
	var sum float64
	eachCluster(text, func(_ int, cluster string) {
		if pictographic(cluster) {
			sum += proportionalPicto
			return
		}
		r := []rune(cluster)[0]
		w, ok := helvetica[r]
		if !ok {
			w = helvetica[fallbackGlyph]
		}
		sum += w * scale
	})
	return sum
}
