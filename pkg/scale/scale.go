// Package scale maps data values to pixel positions.
//
// Only what tips need is provided: a continuous [Linear] scale for x/y
// channels and a categorical [Band] scale for facets.
package scale

import (
	"strconv"
	"time"
)

// Scale maps a data value to a pixel coordinate.
type Scale interface {
	// Apply returns the pixel position of v, or false if v is outside the
	// scale's domain type.
	Apply(v any) (float64, bool)
	// Label returns the axis label, or "" if none is set.
	Label() string
}

// Linear maps a numeric (or time) domain to a pixel range.
type Linear struct {
	Domain [2]float64
	Range  [2]float64
	Name   string
}

// Apply implements Scale.
func (s Linear) Apply(v any) (float64, bool) {
	f, ok := ToFloat(v)
	if !ok {
		return 0, false
	}
	d := s.Domain[1] - s.Domain[0]
	if d == 0 {
		return (s.Range[0] + s.Range[1]) / 2, true
	}
	t := (f - s.Domain[0]) / d
	return s.Range[0] + t*(s.Range[1]-s.Range[0]), true
}

// Label implements Scale.
func (s Linear) Label() string { return s.Name }

// Band maps discrete values to evenly spaced bands. Apply returns the start
// of the band.
type Band struct {
	Domain  []string
	Range   [2]float64
	Padding float64 // fraction of the step left empty between bands, in [0,1)
	Name    string
}

// Apply implements Scale.
func (s Band) Apply(v any) (float64, bool) {
	key := Key(v)
	for i, d := range s.Domain {
		if d == key {
			step := s.step()
			return s.Range[0] + step*float64(i) + step*s.Padding/2, true
		}
	}
	return 0, false
}

// Bandwidth returns the width of one band.
func (s Band) Bandwidth() float64 { return s.step() * (1 - s.Padding) }

func (s Band) step() float64 {
	if len(s.Domain) == 0 {
		return 0
	}
	return (s.Range[1] - s.Range[0]) / float64(len(s.Domain))
}

// Label implements Scale.
func (s Band) Label() string { return s.Name }

// ToFloat converts numeric and time values to float64. Times become
// milliseconds since the Unix epoch.
func ToFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case time.Time:
		return float64(v.UnixMilli()), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
	return 0, false
}

// Key converts a categorical value to its domain key.
func Key(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	}
	if s, ok := v.(interface{ String() string }); ok {
		return s.String()
	}
	return ""
}
