package anchor

import (
	"github.com/matzehuels/tipmark/pkg/errors"
)

// Orientation is one of the four balloon corners. The zero value, [Auto],
// means no fixed orientation: it is resolved per item.
type Orientation uint8

const (
	Auto Orientation = iota
	TopLeft
	TopRight
	BottomLeft
	BottomRight
)

var orientationNames = [...]string{
	Auto:        "",
	TopLeft:     "top-left",
	TopRight:    "top-right",
	BottomLeft:  "bottom-left",
	BottomRight: "bottom-right",
}

// Orientations lists the four concrete orientations.
var Orientations = []Orientation{TopLeft, TopRight, BottomLeft, BottomRight}

// Parse converts a keyword such as "bottom-right" into an Orientation.
// The empty string and "auto" yield [Auto].
func Parse(s string) (Orientation, error) {
	switch s {
	case "", "auto":
		return Auto, nil
	case "top-left":
		return TopLeft, nil
	case "top-right":
		return TopRight, nil
	case "bottom-left":
		return BottomLeft, nil
	case "bottom-right":
		return BottomRight, nil
	}
	return Auto, errors.New(errors.ErrCodeInvalidAnchor,
		"invalid anchor: %q (must be top-left, top-right, bottom-left or bottom-right)", s)
}

// Of builds the orientation for the given vertical and horizontal sides.
func Of(top, left bool) Orientation {
	switch {
	case top && left:
		return TopLeft
	case top:
		return TopRight
	case left:
		return BottomLeft
	default:
		return BottomRight
	}
}

// String returns the keyword form, or "auto" for [Auto].
func (o Orientation) String() string {
	if o == Auto {
		return "auto"
	}
	if int(o) < len(orientationNames) {
		return orientationNames[o]
	}
	return "invalid"
}

// Valid reports whether o is one of the four concrete orientations.
func (o Orientation) Valid() bool { return o >= TopLeft && o <= BottomRight }

// Left reports whether the balloon body extends to the left-hand corner side,
// i.e. the anchor is at the body's left edge.
func (o Orientation) Left() bool { return o == TopLeft || o == BottomLeft }

// Top reports whether the anchor is at the body's top edge.
func (o Orientation) Top() bool { return o == TopLeft || o == TopRight }

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	if o == Auto {
		return []byte{}, nil
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}
