package surface

import (
	"math"
	"testing"

	"github.com/beevik/etree"
)

func tipGroup(fontSize string, lines ...[2]string) *etree.Element {
	doc := etree.NewDocument()
	layer := doc.CreateElement("g")
	if fontSize != "" {
		layer.CreateAttr("font-size", fontSize)
	}
	g := layer.CreateElement("g")
	g.CreateElement("path")
	text := g.CreateElement("text")
	for _, l := range lines {
		line := text.CreateElement("tspan")
		line.CreateAttr("x", "0")
		line.CreateAttr("dy", "1em")
		line.CreateElement("tspan").SetText(l[0])
		line.CreateText(l[1])
		line.CreateElement("title").SetText("ignored by measurement")
	}
	return g
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestEstimateSVG(t *testing.T) {
	svg := etree.NewDocument().CreateElement("svg")
	svg.CreateAttr("width", "640")
	svg.CreateAttr("height", "400px")
	b, ok := NewEstimate(false).BBox(svg)
	if !ok || b.Width != 640 || b.Height != 400 {
		t.Errorf("BBox(svg) = %+v, %v", b, ok)
	}

	bare := etree.NewDocument().CreateElement("svg")
	if _, ok := NewEstimate(false).BBox(bare); ok {
		t.Error("BBox(svg without size) ok = true")
	}
}

func TestEstimateText(t *testing.T) {
	e := NewEstimate(true)

	tests := []struct {
		name       string
		group      *etree.Element
		wantWidth  float64
		wantHeight float64
	}{
		{
			name:       "one line",
			group:      tipGroup("", [2]string{"ab", " c"}),
			wantWidth:  24.8,
			wantHeight: 12.3,
		},
		{
			name:       "widest line wins",
			group:      tipGroup("", [2]string{"a", " b"}, [2]string{"abc", " defg"}),
			wantWidth:  49.6,
			wantHeight: 22.3,
		},
		{
			name:       "inherited font size",
			group:      tipGroup("20px", [2]string{"ab", " c"}),
			wantWidth:  49.6,
			wantHeight: 24.6,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := e.BBox(tt.group)
			if !ok {
				t.Fatal("BBox() ok = false")
			}
			if !near(b.Width, tt.wantWidth) || !near(b.Height, tt.wantHeight) {
				t.Errorf("BBox() = %gx%g, want %gx%g", b.Width, b.Height, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestEstimateUnmeasurable(t *testing.T) {
	g := etree.NewDocument().CreateElement("g")
	g.CreateElement("path")
	if _, ok := NewEstimate(false).BBox(g); ok {
		t.Error("BBox(group without text) ok = true")
	}
	if _, ok := NewEstimate(false).BBox(nil); ok {
		t.Error("BBox(nil) ok = true")
	}
	if !NewEstimate(false).Connected() {
		t.Error("Connected() = false")
	}
}
