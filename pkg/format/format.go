// Package format turns channel values into display strings.
package format

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/matzehuels/tipmark/pkg/scale"
)

// maxFractionDigits matches the precision of en-US locale number formatting.
const maxFractionDigits = 3

// Default formats v for display: numbers with en-US digit grouping and at
// most three fraction digits, times as ISO 8601 (date only at UTC
// midnight), nil as the empty string.
func Default(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return Number(v)
	case float32:
		return Number(float64(v))
	case int:
		return Number(float64(v))
	case int64:
		return Number(float64(v))
	case int32:
		return Number(float64(v))
	case uint:
		return Number(float64(v))
	case uint64:
		return Number(float64(v))
	case bool:
		return fmt.Sprint(v)
	case time.Time:
		return ISODate(v)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(v)
}

// Number formats f like 1,234.568.
func Number(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "∞"
	case math.IsInf(f, -1):
		return "-∞"
	}
	p := message.NewPrinter(language.English)
	return p.Sprint(number.Decimal(f, number.MaxFractionDigits(maxFractionDigits)))
}

// ISODate formats t in UTC, dropping the parts that are zero.
func ISODate(t time.Time) string {
	t = t.UTC()
	switch {
	case t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0:
		return t.Format("2006-01-02")
	case t.Second() == 0 && t.Nanosecond() == 0:
		return t.Format("2006-01-02T15:04Z")
	case t.Nanosecond()/int(time.Millisecond) == 0:
		return t.Format("2006-01-02T15:04:05Z")
	}
	return t.Format("2006-01-02T15:04:05.000Z")
}

// Func formats one value.
type Func func(v any) string

// TickFormatter is implemented by scales with their own tick format.
type TickFormatter interface {
	TickFormat() Func
}

// InferTickFormat returns the formatter for values of s: the scale's own
// tick format if it has one, the domain key for band scales, and [Default]
// otherwise.
func InferTickFormat(s scale.Scale) Func {
	switch s := s.(type) {
	case TickFormatter:
		return s.TickFormat()
	case scale.Band, *scale.Band:
		return scale.Key
	}
	return Default
}
