package tip

import (
	"github.com/matzehuels/tipmark/pkg/errors"
	"github.com/matzehuels/tipmark/pkg/fonts"
	"github.com/matzehuels/tipmark/pkg/tip/anchor"
	"github.com/matzehuels/tipmark/pkg/tip/metrics"
)

const (
	// Padding is the space between the balloon edge and its text.
	Padding = 8
	// FlagSize is the length of the flag connecting anchor and body.
	FlagSize = 12

	DefaultLineHeight = 1
	DefaultLineWidth  = 20
	DefaultFill       = "white"
	DefaultStroke     = "currentColor"
)

// Options configures a tip mark. Start from [DefaultOptions]; zero values
// are meaningful (a LineWidth of 0 truncates every line).
type Options struct {
	// Point anchor channels, or range anchor channels. A range pair must be
	// complete and excludes the point channel on the same axis.
	X, Y           string
	X1, Y1, X2, Y2 string

	// Anchor fixes the orientation ("top-left", ...); empty means automatic.
	Anchor string
	// FrameAnchor places tips on an axis without a bound channel.
	FrameAnchor string

	Monospace   bool
	FontFamily  string
	FontSize    float64 // pixels; 0 inherits
	FontStyle   string
	FontVariant string
	FontWeight  string

	LineHeight float64 // em
	LineWidth  float64 // roughly characters per line

	Fill   string
	Stroke string

	// Measurer estimates text widths for truncation. Nil selects a
	// fixed-pitch or proportional estimate from Monospace.
	Measurer metrics.Measurer
	// Memory carries orientation hysteresis. Nil gives the mark its own.
	Memory *anchor.Memory
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		LineHeight: DefaultLineHeight,
		LineWidth:  DefaultLineWidth,
		Fill:       DefaultFill,
		Stroke:     DefaultStroke,
	}
}

// validate checks channel pairing and option ranges.
func (o Options) validate() error {
	if err := pairing("x", o.X, o.X1, o.X2); err != nil {
		return err
	}
	if err := pairing("y", o.Y, o.Y1, o.Y2); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("lineHeight", o.LineHeight); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("lineWidth", o.LineWidth); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("fontSize", o.FontSize); err != nil {
		return err
	}
	if err := errors.ValidateFontFamily(o.FontFamily); err != nil {
		return err
	}
	if err := errors.ValidateColor(o.Fill); err != nil {
		return err
	}
	return errors.ValidateColor(o.Stroke)
}

func pairing(axis, point, lo, hi string) error {
	if (lo == "") != (hi == "") {
		return errors.New(errors.ErrCodeInvalidChannel,
			"%s1 and %s2 must be given together", axis, axis)
	}
	if point != "" && lo != "" {
		return errors.New(errors.ErrCodeInvalidChannel,
			"%s conflicts with %s1/%s2: use a point or a range anchor", axis, axis, axis)
	}
	return nil
}

// withDefaults fills in derived defaults.
func (o Options) withDefaults() Options {
	if o.Monospace && o.FontFamily == "" {
		o.FontFamily = fonts.MonospaceFamily
	}
	if o.Measurer == nil {
		if o.Monospace {
			o.Measurer = metrics.NewMonospace()
		} else {
			o.Measurer = metrics.NewProportional()
		}
	}
	return o
}
