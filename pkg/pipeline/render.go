package pipeline

import (
	"bytes"
	"encoding/json"

	"github.com/matzehuels/tipmark/pkg/errors"
	"github.com/matzehuels/tipmark/pkg/tip"
	"github.com/matzehuels/tipmark/pkg/tip/anchor"
	"github.com/matzehuels/tipmark/pkg/tip/sink"
)

// ItemResult is the JSON form of one tip.
type ItemResult struct {
	FX          any                `json:"fx,omitempty"`
	FY          any                `json:"fy,omitempty"`
	Index       int                `json:"index"`
	X           float64            `json:"x"`
	Y           float64            `json:"y"`
	Measured    bool               `json:"measured"`
	Orientation anchor.Orientation `json:"orientation"`
	Width       float64            `json:"width,omitempty"`
	Height      float64            `json:"height,omitempty"`
	Lines       []LineResult       `json:"lines"`
}

// LineResult is the JSON form of one tip line.
type LineResult struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
	Title string `json:"title,omitempty"`
}

// items flattens passes into canvas-coordinate results.
func items(passes []*tip.Pass) []ItemResult {
	var out []ItemResult
	for _, pass := range passes {
		ox, oy := pass.Offset()
		facet := pass.Facet()
		for _, it := range pass.Items() {
			r := ItemResult{
				FX:          facet.X,
				FY:          facet.Y,
				Index:       it.Index,
				X:           it.X + ox,
				Y:           it.Y + oy,
				Measured:    it.Measured,
				Orientation: it.Orientation,
				Width:       it.Box.Width,
				Height:      it.Box.Height,
			}
			for _, l := range it.Lines {
				r.Lines = append(r.Lines, LineResult{Name: l.Name, Value: l.Value, Title: l.Title})
			}
			out = append(out, r)
		}
	}
	return out
}

// Render encodes a finalized result in the requested formats.
func Render(result *Result, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = sink.RenderSVG(result.Document)
		case FormatPNG:
			data, err = renderPNG(result, opts)
		case FormatJSON:
			data, err = json.MarshalIndent(result.Items, "", "  ")
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
		}

		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return nil, errors.Wrap(code, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderPNG(result *Result, opts Options) ([]byte, error) {
	var balloons []sink.Balloon
	for _, pass := range result.Passes {
		balloons = append(balloons, sink.Balloons(pass)...)
	}
	p := result.Plot
	var buf bytes.Buffer
	err := sink.RenderPNG(&buf, balloons, sink.PNGOptions{
		Width:      p.Dimensions.Width,
		Height:     p.Dimensions.Height,
		Scale:      opts.Scale,
		Background: "white",
		Monospace:  p.Options.Monospace,
		FontSize:   p.Options.FontSize,
		LineHeight: p.Options.LineHeight,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
