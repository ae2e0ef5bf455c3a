package scale

import (
	"testing"
	"time"
)

func TestLinear(t *testing.T) {
	s := Linear{Domain: [2]float64{0, 100}, Range: [2]float64{20, 620}, Name: "Length (mm)"}
	tests := []struct {
		v    any
		want float64
		ok   bool
	}{
		{0, 20, true},
		{50.0, 320, true},
		{100, 620, true},
		{"25", 170, true},
		{"n/a", 0, false},
		{nil, 0, false},
	}

	for _, tt := range tests {
		got, ok := s.Apply(tt.v)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Apply(%v) = %v, %v; want %v, %v", tt.v, got, ok, tt.want, tt.ok)
		}
	}
	if s.Label() != "Length (mm)" {
		t.Errorf("Label() = %q", s.Label())
	}
}

func TestLinearInverted(t *testing.T) {
	s := Linear{Domain: [2]float64{0, 10}, Range: [2]float64{400, 0}}
	if got, _ := s.Apply(10); got != 0 {
		t.Errorf("Apply(10) = %v, want 0", got)
	}
	flat := Linear{Domain: [2]float64{5, 5}, Range: [2]float64{0, 100}}
	if got, _ := flat.Apply(5); got != 50 {
		t.Errorf("degenerate domain Apply() = %v, want 50", got)
	}
}

func TestBand(t *testing.T) {
	s := Band{Domain: []string{"Adelie", "Chinstrap", "Gentoo"}, Range: [2]float64{0, 600}}
	tests := []struct {
		v    any
		want float64
		ok   bool
	}{
		{"Adelie", 0, true},
		{"Chinstrap", 200, true},
		{"Gentoo", 400, true},
		{"Emperor", 0, false},
	}
	for _, tt := range tests {
		got, ok := s.Apply(tt.v)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Apply(%v) = %v, %v; want %v, %v", tt.v, got, ok, tt.want, tt.ok)
		}
	}
	if s.Bandwidth() != 200 {
		t.Errorf("Bandwidth() = %v", s.Bandwidth())
	}

	padded := Band{Domain: []string{"a", "b"}, Range: [2]float64{0, 200}, Padding: 0.5}
	if got, _ := padded.Apply("b"); got != 125 {
		t.Errorf("padded Apply(b) = %v, want 125", got)
	}
	if padded.Bandwidth() != 50 {
		t.Errorf("padded Bandwidth() = %v, want 50", padded.Bandwidth())
	}
}

func TestToFloatTime(t *testing.T) {
	ts := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	got, ok := ToFloat(ts)
	if !ok || got != float64(ts.UnixMilli()) {
		t.Errorf("ToFloat(time) = %v, %v", got, ok)
	}
}
