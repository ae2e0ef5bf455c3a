package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// ValidateFontFamily validates a CSS font-family list.
// An empty value is allowed and means "inherit". The value ends up inside an
// SVG attribute, so control characters and markup delimiters are rejected.
func ValidateFontFamily(family string) error {
	if len(family) > 256 {
		return New(ErrCodeInvalidOption, "font family too long (max 256 characters)")
	}
	for _, r := range family {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidOption, "font family contains invalid control characters")
		}
	}
	if strings.ContainsAny(family, "<>&") {
		return New(ErrCodeInvalidOption, "font family contains invalid characters: %q", family)
	}
	return nil
}

// colorPattern accepts CSS hex colors and plain keywords/functions such as
// "currentColor", "steelblue" or "rgb(0, 0, 0)".
var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]+|(rgb|rgba|hsl|hsla)\([0-9.,%\s]+\))$`)

// ValidateColor validates a fill or stroke value.
// An empty value is allowed and means "use the default".
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}
	if !colorPattern.MatchString(color) {
		return New(ErrCodeInvalidOption, "invalid color: %q", color)
	}
	return nil
}

// ValidateNonNegative validates that a numeric option is finite and >= 0.
func ValidateNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidOption, "%s must be finite, got %v", name, v)
	}
	if v < 0 {
		return New(ErrCodeInvalidOption, "%s must be >= 0, got %v", name, v)
	}
	return nil
}
