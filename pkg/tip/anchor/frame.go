package anchor

import "github.com/matzehuels/tipmark/pkg/errors"

// Frame is a position within the plot frame, used to place tips whose x or y
// channel is not bound. The zero value is [Middle].
type Frame uint8

const (
	Middle Frame = iota
	FrameTop
	FrameTopRight
	FrameRight
	FrameBottomRight
	FrameBottom
	FrameBottomLeft
	FrameLeft
	FrameTopLeft
)

var frameNames = [...]string{
	Middle:           "middle",
	FrameTop:         "top",
	FrameTopRight:    "top-right",
	FrameRight:       "right",
	FrameBottomRight: "bottom-right",
	FrameBottom:      "bottom",
	FrameBottomLeft:  "bottom-left",
	FrameLeft:        "left",
	FrameTopLeft:     "top-left",
}

// ParseFrame converts a frame anchor keyword. The empty string yields [Middle].
func ParseFrame(s string) (Frame, error) {
	if s == "" {
		return Middle, nil
	}
	for f, name := range frameNames {
		if name == s {
			return Frame(f), nil
		}
	}
	return Middle, errors.New(errors.ErrCodeInvalidFrameAnchor, "invalid frame anchor: %q", s)
}

func (f Frame) String() string {
	if int(f) < len(frameNames) {
		return frameNames[f]
	}
	return "invalid"
}

// Point returns the frame anchor's coordinates inside the rectangle bounded
// by left, top, right and bottom.
func (f Frame) Point(left, top, right, bottom float64) (x, y float64) {
	x = (left + right) / 2
	y = (top + bottom) / 2
	switch f {
	case FrameLeft, FrameTopLeft, FrameBottomLeft:
		x = left
	case FrameRight, FrameTopRight, FrameBottomRight:
		x = right
	}
	switch f {
	case FrameTop, FrameTopLeft, FrameTopRight:
		y = top
	case FrameBottom, FrameBottomLeft, FrameBottomRight:
		y = bottom
	}
	return x, y
}
