// Package anchor decides which corner of a tip balloon touches its anchor
// point.
//
// An [Orientation] names the corner: "top-left" means the anchor sits at the
// balloon's top-left corner, so the body extends right of and below the point
// in SVG coordinates. [Resolve] picks an orientation from the measured box
// and the canvas, preferring the previous one kept in a [Memory] so balloons
// do not flip back and forth when an anchor hovers near the middle of the
// canvas.
//
// [Frame] is the fallback position used when no coordinate channel is bound.
package anchor
