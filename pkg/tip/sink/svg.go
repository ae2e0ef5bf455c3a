// Package sink writes finalized tip documents as SVG or PNG.
package sink

import (
	"io"

	"github.com/beevik/etree"

	"github.com/matzehuels/tipmark/pkg/errors"
)

// RenderSVG serializes doc. Output is not indented: tip lines are mixed
// content and indentation would change their text.
func RenderSVG(doc *etree.Document) ([]byte, error) {
	b, err := doc.WriteToBytes()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to serialize svg")
	}
	return b, nil
}

// WriteSVG writes doc to w.
func WriteSVG(w io.Writer, doc *etree.Document) error {
	if _, err := doc.WriteTo(w); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to write svg")
	}
	return nil
}
