package chrome

import (
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/beevik/etree"

	"github.com/matzehuels/tipmark/pkg/errors"
	"github.com/matzehuels/tipmark/pkg/tip"
)

func TestDetachedSurface(t *testing.T) {
	s := New()
	if s.Connected() {
		t.Fatal("new surface is connected")
	}
	svg := etree.NewDocument().CreateElement("svg")
	if _, ok := s.BBox(svg); ok {
		t.Error("BBox() ok = true before Attach")
	}
}

func TestAttachRejectsNonSVG(t *testing.T) {
	doc := etree.NewDocument()
	doc.CreateElement("html")
	err := New().Attach(context.Background(), doc)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Attach() error = %v, want invalid input", err)
	}
}

func TestMeasureScriptSelectsItems(t *testing.T) {
	if !strings.Contains(measureScript, `querySelectorAll("[`+tip.AttrItem+`]")`) {
		t.Errorf("script does not select tip items:\n%s", measureScript)
	}
}

func TestAttachMeasures(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	if !haveChrome() {
		t.Skip("no chrome binary found")
	}

	doc := etree.NewDocument()
	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	svg.CreateAttr("width", "200")
	svg.CreateAttr("height", "100")
	g := svg.CreateElement("g")
	g.CreateAttr(tip.AttrItem, "t-0")
	text := g.CreateElement("text")
	text.CreateAttr("y", "20")
	text.SetText("hello")

	s := New(WithAllocatorOptions())
	if err := s.Attach(context.Background(), doc); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if !s.Connected() {
		t.Fatal("not connected after Attach")
	}
	b, ok := s.BBox(g)
	if !ok || b.Width <= 0 || b.Height <= 0 {
		t.Errorf("BBox(item) = %+v, %v", b, ok)
	}
	s.Detach()
	if s.Connected() {
		t.Error("connected after Detach")
	}
}

func haveChrome() bool {
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser", "headless-shell"} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}
