// Package fonts provides the Go font family for text measurement and raster
// output.
//
// The fonts ship with golang.org/x/image, so they are available without any
// font files on the host. Parsed fonts are cached after first use; faces are
// created per caller because a font.Face is not safe for concurrent use.
package fonts

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/tipmark/pkg/errors"
)

// Style selects one of the embedded faces.
type Style int

const (
	Regular Style = iota
	Bold
	Mono
	MonoBold
)

// FontFamily is the CSS font-family used when no family is configured.
const FontFamily = "system-ui, sans-serif"

// MonospaceFamily is the CSS font-family used for monospace tips.
const MonospaceFamily = "ui-monospace, monospace"

var ttf = map[Style][]byte{
	Regular:  goregular.TTF,
	Bold:     gobold.TTF,
	Mono:     gomono.TTF,
	MonoBold: gomonobold.TTF,
}

var (
	parsed   = map[Style]*opentype.Font{}
	parsedMu sync.Mutex
)

// Font returns the parsed font for style. The result is cached.
func Font(style Style) (*opentype.Font, error) {
	parsedMu.Lock()
	defer parsedMu.Unlock()
	if f, ok := parsed[style]; ok {
		return f, nil
	}
	data, ok := ttf[style]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidOption, "unknown font style %d", style)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse embedded font")
	}
	parsed[style] = f
	return f, nil
}

// Face opens a new face of style at size pixels (72 DPI).
func Face(style Style, size float64) (font.Face, error) {
	f, err := Font(style)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open font face")
	}
	return face, nil
}

// Styles returns the regular and bold styles for a tip.
func Styles(monospace bool) (regular, bold Style) {
	if monospace {
		return Mono, MonoBold
	}
	return Regular, Bold
}
