package channel

import (
	"slices"
	"testing"

	"github.com/matzehuels/tipmark/pkg/errors"
)

func TestSetOrder(t *testing.T) {
	s := NewSet()
	s.Add("y", &Channel{})
	s.Add("x", &Channel{})
	s.Add("y", &Channel{Scale: "y"})

	if got, want := s.Keys(), []string{"y", "x"}; !slices.Equal(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if s.Get("y").Scale != "y" {
		t.Error("re-adding did not replace the channel")
	}
}

func TestSource(t *testing.T) {
	raw := &Channel{Values: []any{1.0}, Scale: "y"}
	synthetic := &Channel{NoSource: true}

	s := NewSet()
	s.Add("y", &Channel{Source: raw})
	s.Add("dodge", &Channel{Source: synthetic})
	s.Add("plain", raw)

	if got := s.Source("y"); got != raw {
		t.Errorf("Source(y) = %v, want raw channel", got)
	}
	if got := s.Source("dodge"); got != nil {
		t.Errorf("Source(dodge) = %v, want nil", got)
	}
	if got := s.Source("plain"); got != raw {
		t.Errorf("Source(plain) = %v", got)
	}
	if got := s.Source("missing"); got != nil {
		t.Errorf("Source(missing) = %v", got)
	}

	var empty *Set
	if empty.Source("x") != nil || empty.Keys() != nil {
		t.Error("nil set should behave as empty")
	}
}

func TestBind(t *testing.T) {
	records := []map[string]any{
		{"species": "Adelie", "culmen": 39.1},
		{"species": "Gentoo"},
	}
	s, err := Bind(records, []Binding{
		{Key: "x", Field: "culmen", Scale: "x"},
		{Key: "stroke", Field: "species"},
	})
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d", s.Len())
	}
	x := s.Get("x")
	if x.Scale != "x" || x.Values[0] != 39.1 || x.Values[1] != nil {
		t.Errorf("x = %+v", x)
	}

	if _, err := Bind(records, []Binding{{Key: "x"}}); !errors.Is(err, errors.ErrCodeInvalidChannel) {
		t.Errorf("Bind(missing field) error = %v", err)
	}
	if _, err := Bind(records, []Binding{{Key: "x", Field: "a"}, {Key: "x", Field: "b"}}); err == nil {
		t.Error("Bind(duplicate key) should fail")
	}
}
