// Package metrics estimates text widths and truncates tip lines to a width
// budget.
//
// Widths are expressed in hundredths of an em, so a [Measurer] is independent
// of the rendered font size. Three measurers are provided:
//   - [Monospace]: a fixed width per character cell
//   - [Proportional]: an average-width table for a sans-serif face
//   - [Face]: real glyph advances from an OpenType font
//
// [Cut] and [Truncate] operate on grapheme clusters, never splitting a
// combining sequence or an emoji.
package metrics
