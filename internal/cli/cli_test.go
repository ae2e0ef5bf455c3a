package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

const penguins = `
width = 640.0
height = 400.0

[scales.x]
domain = [0.0, 100.0]
range = [0.0, 640.0]

[scales.y]
domain = [0.0, 100.0]
range = [400.0, 0.0]

[tip]
x = "x"
y = "y"

[[channels]]
key = "x"
field = "x"
scale = "x"

[[channels]]
key = "y"
field = "y"
scale = "y"

[[channels]]
key = "species"
field = "species"

[[data]]
x = 10.0
y = 20.0
species = "Adelie"

[[data]]
x = 90.0
y = 80.0
species = "Gentoo"
`

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func newTestCLI() *CLI {
	return New(io.Discard, log.InfoLevel)
}

func writeDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "penguins.toml")
	if err := os.WriteFile(path, []byte(penguins), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandSubcommands(t *testing.T) {
	root := newTestCLI().RootCommand()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"cache", "completion", "inspect", "render", "serve"} {
		found := false
		for _, n := range names {
			if n == want {
				found = true
			}
		}
		if !found {
			t.Errorf("missing subcommand %q in %v", want, names)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"png", []string{"png"}},
		{"svg, png,json", []string{"svg", "png", "json"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		output  string
		formats []string
		want    map[string]string
	}{
		{"derived", "plots/a.toml", "", []string{"svg"}, map[string]string{"svg": "plots/a.svg"}},
		{"explicit single", "a.toml", "out.svg", []string{"svg"}, map[string]string{"svg": "out.svg"}},
		{"base path", "a.toml", "out/b", []string{"svg", "png"}, map[string]string{"svg": "out/b.svg", "png": "out/b.png"}},
		{"base with format ext", "a.toml", "b.svg", []string{"svg", "json"}, map[string]string{"svg": "b.svg", "json": "b.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPaths(tt.input, tt.output, tt.formats); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("outputPaths() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	path := writeDoc(t)
	base := strings.TrimSuffix(path, ".toml")

	root := newTestCLI().RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"render", path, "-f", "svg,json"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("render: %v", err)
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte(`aria-label="tip"`)) {
		t.Error("svg has no tip layer")
	}
	if _, err := os.Stat(base + ".json"); err != nil {
		t.Error(err)
	}
	if !strings.Contains(out.String(), "Rendered 2 tips") {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	root = newTestCLI().RootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"render", path, "-f", "svg,json"})
	if err := root.Execute(); err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !strings.Contains(out.String(), "Loaded 2 file(s) from cache") {
		t.Errorf("second render output = %q", out.String())
	}

	out.Reset()
	root = newTestCLI().RootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"render", path, "--no-cache"})
	if err := root.Execute(); err != nil {
		t.Fatalf("uncached render: %v", err)
	}
	if !strings.Contains(out.String(), "Rendered 2 tips") {
		t.Errorf("uncached output = %q", out.String())
	}
}

func TestCacheCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	root := newTestCLI().RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if got, want := strings.TrimSpace(out.String()), filepath.Join(dir, "tipmark"); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}

	root = newTestCLI().RootCommand()
	out.Reset()
	root.SetOut(&out)
	root.SetArgs([]string{"cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Cleared 0 cached artifact(s)") {
		t.Errorf("cache clear output = %q", out.String())
	}
}

func TestRenderCommandRejectsFormat(t *testing.T) {
	root := newTestCLI().RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"render", writeDoc(t), "-f", "pdf"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected an error for pdf")
	}
}

func TestInspectCommand(t *testing.T) {
	root := newTestCLI().RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"inspect", writeDoc(t)})
	if err := root.Execute(); err != nil {
		t.Fatalf("inspect: %v", err)
	}

	got := out.String()
	for _, want := range []string{"2 records, 1 panel(s), 2 tips", "ORIENTATION", "Adelie", "Gentoo", "64, 320"} {
		if !strings.Contains(got, want) {
			t.Errorf("inspect output missing %q:\n%s", want, got)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	root := newTestCLI().RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"completion", "bash"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "tipmark") {
		t.Error("bash completion does not mention tipmark")
	}
}

func TestSpinnerStop(t *testing.T) {
	var buf syncBuffer
	s := startSpinner(context.Background(), &buf, "working", time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	s.stop()
	s.stop()

	var nilSpinner *spinner
	nilSpinner.stop()
}
