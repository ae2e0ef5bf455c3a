package metrics

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/tipmark/pkg/errors"
)

// faceSize is the size at which faces are opened; with DPI 72 an advance in
// pixels equals an advance in hundredths of an em.
const faceSize = 100

// Face measures text with the glyph advances of an OpenType font, including
// kerning. A Face is not safe for concurrent use.
type Face struct {
	face font.Face
}

// NewFace parses an OpenType or TrueType font and returns a measurer for it.
func NewFace(data []byte) (*Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse font")
	}
	return NewFaceFromFont(f)
}

// NewFaceFromFont returns a measurer for an already parsed font.
func NewFaceFromFont(f *opentype.Font) (*Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    faceSize,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open font face")
	}
	return &Face{face: face}, nil
}

// Width implements Measurer.
func (f *Face) Width(text string) float64 {
	adv := font.MeasureString(f.face, text)
	return float64(adv) / 64
}

// Close releases the underlying face.
func (f *Face) Close() error { return f.face.Close() }
