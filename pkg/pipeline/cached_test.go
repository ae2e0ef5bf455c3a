package pipeline

import (
	"bytes"
	"context"
	"testing"

	"github.com/matzehuels/tipmark/pkg/cache"
	"github.com/matzehuels/tipmark/pkg/tip"
	"github.com/matzehuels/tipmark/pkg/tip/surface"
)

func TestExecuteCached(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runs := 0
	r := NewRunner(nil)
	r.Cache = fc
	r.NewSurface = func(Options, *Plot) tip.Surface {
		runs++
		return surface.NewEstimate(false)
	}
	ctx := context.Background()
	opts := Options{Formats: []string{FormatSVG, FormatJSON}}

	first, hit, err := r.ExecuteCached(ctx, facetDoc(t), opts)
	if err != nil || hit {
		t.Fatalf("first run: hit=%v err=%v", hit, err)
	}
	second, hit, err := r.ExecuteCached(ctx, facetDoc(t), opts)
	if err != nil || !hit {
		t.Fatalf("second run: hit=%v err=%v", hit, err)
	}
	if runs != 1 {
		t.Errorf("pipeline ran %d times, want 1", runs)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from the rendered one")
	}

	// A format missing from the cache renders again.
	if _, hit, _ := r.ExecuteCached(ctx, facetDoc(t), Options{Formats: []string{FormatSVG, FormatPNG}}); hit {
		t.Error("partial cache reported a hit")
	}
	if runs != 2 {
		t.Errorf("pipeline ran %d times, want 2", runs)
	}
}

func TestExecuteCachedWithoutCache(t *testing.T) {
	r := NewRunner(nil)
	out, hit, err := r.ExecuteCached(context.Background(), facetDoc(t), Options{})
	if err != nil || hit {
		t.Fatalf("hit=%v err=%v", hit, err)
	}
	if len(out.Artifacts[FormatSVG]) == 0 || out.Stats.Items != 2 {
		t.Error("no svg")
	}
	if _, _, err := r.ExecuteCached(context.Background(), facetDoc(t), Options{Formats: []string{"pdf"}}); err == nil {
		t.Error("expected an error for pdf")
	}
}
