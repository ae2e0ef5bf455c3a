package metrics

import "testing"

func TestCut(t *testing.T) {
	m := Monospace{Cell: 10}
	tests := []struct {
		name  string
		text  string
		width float64
		inset float64
		want  int
	}{
		{"fits", "abc", 30, 10, -1},
		{"empty", "", 0, 10, -1},
		{"one too many", "abcd", 30, 10, 2},
		{"long", "abcdefghij", 55, 10, 4},
		{"first cluster alone overflows", "abc", 5, 10, 1},
		{"first cluster plus inset overflows", "abc", 15, 10, 1},
		{"keeps whole cluster", "e\u0301e\u0301e\u0301", 25, 10, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, _ := Cut(tt.text, tt.width, m, tt.inset); got != tt.want {
				t.Errorf("Cut(%q, %v) = %d, want %d", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	m := Monospace{Cell: 10}
	tests := []struct {
		text      string
		width     float64
		want      string
		truncated bool
	}{
		{"hello", 50, "hello", false},
		{"hello world", 60, "hello…", true},
		{"hello world", 70, "hello…", true}, // trailing space trimmed
		{"hello", 5, "h…", true},
	}

	for _, tt := range tests {
		got, truncated := Truncate(tt.text, tt.width, m)
		if got != tt.want || truncated != tt.truncated {
			t.Errorf("Truncate(%q, %v) = %q, %v; want %q, %v", tt.text, tt.width, got, truncated, tt.want, tt.truncated)
		}
	}
}

func TestTruncateFitsBudget(t *testing.T) {
	measurers := map[string]Measurer{
		"monospace":    NewMonospace(),
		"proportional": NewProportional(),
	}
	texts := []string{
		"Adelie Penguin",
		"culmen_length_mm",
		"The quick brown fox jumps over the lazy dog",
		"naïve café — déjà vu",
		"🐧 penguins 🐧 everywhere",
		"   spaced   out   ",
	}
	widths := []float64{250, 400, 700, 1000, 2000}

	for name, m := range measurers {
		for _, text := range texts {
			for _, w := range widths {
				got, truncated := Truncate(text, w, m)
				if m.Width(text) <= w && truncated {
					t.Errorf("%s: Truncate(%q, %v) truncated text that fits", name, text, w)
				}
				if gw := m.Width(got); gw > w {
					t.Errorf("%s: Truncate(%q, %v) = %q with width %v", name, text, w, got, gw)
				}
				again, _ := Truncate(got, w, m)
				if again != got {
					t.Errorf("%s: Truncate not idempotent: %q -> %q", name, got, again)
				}
			}
		}
	}
}
