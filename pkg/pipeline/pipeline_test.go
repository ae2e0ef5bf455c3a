package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/beevik/etree"

	"github.com/matzehuels/tipmark/pkg/config"
	"github.com/matzehuels/tipmark/pkg/errors"
	"github.com/matzehuels/tipmark/pkg/scale"
	"github.com/matzehuels/tipmark/pkg/tip"
	"github.com/matzehuels/tipmark/pkg/tip/anchor"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"json", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if !opts.HasFormat(FormatSVG) || opts.Surface != SurfaceEstimate || opts.Memory != MemoryShared || opts.Scale != DefaultScale {
		t.Errorf("defaults = %+v", opts)
	}
	if opts.Logger == nil {
		t.Error("Logger not defaulted")
	}

	for _, bad := range []Options{
		{Surface: "firefox"},
		{Memory: "global"},
		{Formats: []string{"pdf"}},
		{Scale: -1},
	} {
		if err := bad.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidOption) {
			t.Errorf("ValidateAndSetDefaults(%+v) error = %v, want invalid option", bad, err)
		}
	}
}

func facetDoc(t *testing.T) *config.Document {
	t.Helper()
	d, err := config.Parse([]byte(`
width = 400.0
height = 200.0

[tip]
x = "x"
y = "y"

[facet]
x = "g"

[[channels]]
key = "x"
field = "x"

[[channels]]
key = "y"
field = "y"

[[data]]
g = "a"
x = 10.0
y = 100.0

[[data]]
g = "b"
x = 0.0
y = 100.0
`), config.FormatTOML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return d
}

func TestBuild(t *testing.T) {
	p, err := Build(facetDoc(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	band, ok := p.FX.(scale.Band)
	if !ok {
		t.Fatalf("FX = %T, want band", p.FX)
	}
	if strings.Join(band.Domain, ",") != "a,b" || band.Range != [2]float64{0, 400} {
		t.Errorf("FX = %+v", band)
	}
	if len(p.Panels) != 2 {
		t.Fatalf("panels = %+v", p.Panels)
	}
	if p.Panels[1].Facet.X != "b" || len(p.Panels[1].Index) != 1 || p.Panels[1].Index[0] != 1 {
		t.Errorf("panel b = %+v", p.Panels[1])
	}
	if _, ok := p.Scales[ScaleFX]; ok {
		t.Error("facet scale listed among channel scales")
	}
}

func TestBuildInfersLinearDomain(t *testing.T) {
	d, err := config.Parse([]byte(`
width = 110.0
height = 100.0
[margin]
left = 10.0
[scales.x]
label = "Mass"
[[channels]]
key = "x"
field = "m"
scale = "x"
[[data]]
m = 2.0
[[data]]
m = 6.0
`), config.FormatTOML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p, err := Build(d)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	x := p.Scales["x"]
	if got, _ := x.Apply(4.0); got != 60 {
		t.Errorf("x(4) = %v, want 60", got)
	}
	if x.Label() != "Mass" {
		t.Errorf("label = %q", x.Label())
	}
	if len(p.Panels) != 1 || p.Panels[0].Index != nil {
		t.Errorf("panels = %+v, want one unfaceted panel", p.Panels)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{"facet scale not band", "[facet]\nx = \"g\"\n[scales.fx]\ntype = \"linear\"", errors.ErrCodeInvalidScale},
		{"no range", "[scales.size]\ntype = \"linear\"", errors.ErrCodeInvalidScale},
		{"bad domain", "[scales.x]\ndomain = [\"a\", \"b\"]", errors.ErrCodeInvalidScale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := config.Parse([]byte(tt.doc), config.FormatTOML)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if _, err := Build(d); !errors.Is(err, tt.code) {
				t.Errorf("Build() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil)
	res, err := r.Execute(context.Background(), facetDoc(t), Options{Formats: []string{"svg", "json", "png"}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Stats.Items != 2 || res.Stats.Measured != 2 || res.Stats.Panels != 2 {
		t.Errorf("stats = %+v", res.Stats)
	}
	for _, pass := range res.Passes {
		if pass.State() != tip.Finalized {
			t.Errorf("pass %s state = %v", pass.ID(), pass.State())
		}
	}

	svg := string(res.Artifacts[FormatSVG])
	for _, want := range []string{`xmlns="http://www.w3.org/2000/svg"`, `aria-label="tip"`, `d="M0,0l`, `transform="translate(200,0)"`} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %s", want)
		}
	}
	if dot, tipLayer := strings.Index(svg, `aria-label="dot"`), strings.Index(svg, `aria-label="tip"`); dot < 0 || dot > tipLayer {
		t.Error("dots are not drawn beneath the tips")
	}

	var items []ItemResult
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &items); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(items) != 2 || items[1].X != 200 || items[1].FX != "b" {
		t.Errorf("items = %+v", items)
	}
	if len(res.Artifacts[FormatPNG]) == 0 {
		t.Error("empty png")
	}
}

func TestExecuteMemoryPolicy(t *testing.T) {
	tests := []struct {
		memory string
		want   anchor.Orientation
	}{
		// Panel a forces a left balloon; panel b fits both sides.
		{MemoryShared, anchor.BottomLeft},
		{MemoryFacet, anchor.BottomRight},
	}
	for _, tt := range tests {
		t.Run(tt.memory, func(t *testing.T) {
			res, err := NewRunner(nil).Execute(context.Background(), facetDoc(t), Options{Memory: tt.memory})
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if got := res.Items[0].Orientation; got != anchor.BottomLeft {
				t.Errorf("panel a = %v, want bottom-left", got)
			}
			if got := res.Items[1].Orientation; got != tt.want {
				t.Errorf("panel b = %v, want %v", got, tt.want)
			}
		})
	}
}

type attachingSurface struct {
	attached bool
	never    bool
}

func (s *attachingSurface) Connected() bool { return s.attached }

func (s *attachingSurface) BBox(el *etree.Element) (tip.Box, bool) {
	if el.Tag == "svg" {
		return tip.Box{Width: 400, Height: 200}, true
	}
	return tip.Box{Width: 30, Height: 20}, true
}

func (s *attachingSurface) Attach(context.Context, *etree.Document) error {
	s.attached = !s.never
	return nil
}

func TestExecuteAttachesDetachedSurface(t *testing.T) {
	surf := &attachingSurface{}
	r := NewRunner(nil)
	r.NewSurface = func(Options, *Plot) tip.Surface { return surf }

	res, err := r.Execute(context.Background(), facetDoc(t), Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !surf.attached {
		t.Error("surface was not attached")
	}
	if res.Stats.Measured != 2 {
		t.Errorf("measured = %d, want 2", res.Stats.Measured)
	}
}

func TestExecuteSurfaceNeverConnects(t *testing.T) {
	r := NewRunner(nil)
	r.NewSurface = func(Options, *Plot) tip.Surface { return &attachingSurface{never: true} }

	res, err := r.Execute(context.Background(), facetDoc(t), Options{Formats: []string{"svg", "png"}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Stats.Measured != 0 {
		t.Errorf("measured = %d, want 0", res.Stats.Measured)
	}
	for _, pass := range res.Passes {
		if pass.State() != tip.Placeholder {
			t.Errorf("state = %v, want placeholder", pass.State())
		}
	}
	if strings.Contains(string(res.Artifacts[FormatSVG]), ` d="`) {
		t.Error("unmeasured tips have geometry")
	}
}
