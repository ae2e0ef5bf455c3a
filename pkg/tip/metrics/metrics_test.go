package metrics

import (
	"testing"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

func TestMonospaceWidth(t *testing.T) {
	m := Monospace{Cell: 6}
	tests := []struct {
		text string
		want float64
	}{
		{"", 0},
		{"species", 42},
		{"Adelie Penguin", 84},
		{"e\u0301", 6}, // combining acute stays one cell
		{"\u200b", 0},  // zero-width space
		{"漢字", 24},     // wide characters take two cells
		{"🐧", 12},      // pictograph defaults to two cells
		{Ellipsis, 6},
	}

	for _, tt := range tests {
		if got := m.Width(tt.text); got != tt.want {
			t.Errorf("Width(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}

	if got := NewMonospace().Width("🐧a"); got != defaultPictograph+defaultCell {
		t.Errorf("NewMonospace().Width() = %v", got)
	}
}

func TestProportionalWidth(t *testing.T) {
	p := NewProportional()
	if got := p.Width("ii"); got != 44.4 {
		t.Errorf("Width(ii) = %v, want 44.4", got)
	}
	if p.Width("m") <= p.Width("i") {
		t.Error("m should be wider than i")
	}
	// Unknown glyphs fall back to the width of "e".
	if got, want := p.Width("ж"), p.Width("e"); got != want {
		t.Errorf("Width(ж) = %v, want %v", got, want)
	}
	if got := p.Width("🐧"); got != proportionalPicto {
		t.Errorf("Width(🐧) = %v, want %v", got, proportionalPicto)
	}
	if ProportionalBold().Width("abc") <= p.Width("abc") {
		t.Error("bold should be wider")
	}
	if (Proportional{}).Width("abc") != p.Width("abc") {
		t.Error("zero scale should mean 1")
	}
}

func TestFaceWidth(t *testing.T) {
	regular, err := NewFace(goregular.TTF)
	if err != nil {
		t.Fatalf("NewFace() error = %v", err)
	}
	defer regular.Close()

	if got := regular.Width(""); got != 0 {
		t.Errorf("Width(\"\") = %v", got)
	}
	if regular.Width("mmm") <= regular.Width("iii") {
		t.Error("proportional face: mmm should be wider than iii")
	}

	mono, err := NewFace(gomono.TTF)
	if err != nil {
		t.Fatalf("NewFace() error = %v", err)
	}
	defer mono.Close()
	if mono.Width("mmm") != mono.Width("iii") {
		t.Errorf("monospace face: %v != %v", mono.Width("mmm"), mono.Width("iii"))
	}
	// Go Mono advances are 0.6em.
	if w := mono.Width("a"); w < 55 || w > 65 {
		t.Errorf("mono advance = %v, want about 60", w)
	}

	if _, err := NewFace([]byte("not a font")); err == nil {
		t.Error("NewFace(garbage) should fail")
	}
}
