package metrics

import "strings"

// BudgetScale converts a line width option (roughly a count of characters)
// into measurer units.
const BudgetScale = 100

// zwsp ends every value so that double-clicking the value does not also
// select the name.
const zwsp = "\u200b"

// Line is one "name value" row of a tip.
type Line struct {
	Name           string // possibly truncated, ending in Ellipsis
	Value          string // leading space and trailing zero-width space included; empty if the name was truncated
	TruncatedName  bool
	TruncatedValue bool
	Title          string // non-empty whenever something was truncated
}

// Truncated reports whether either part of the line was truncated.
func (l Line) Truncated() bool { return l.TruncatedName || l.TruncatedValue }

// Text returns the visible text of the line.
func (l Line) Text() string { return l.Name + l.Value }

// NewLine lays out one tip line within lineWidth×BudgetScale units.
//
// The name is fitted first against the whole budget; if it must be
// truncated the value is dropped and the title carries the truncated name.
// Otherwise the value is fitted against what the name leaves, and the title
// carries the truncated value.
func NewLine(name, value string, lineWidth float64, m Measurer) Line {
	budget := lineWidth * BudgetScale
	ee := m.Width(Ellipsis)

	if j, _ := Cut(name, budget, m, ee); j >= 0 {
		name = trimEnd(name[:j]) + Ellipsis
		return Line{
			Name:          name,
			TruncatedName: true,
			Title:         strings.TrimSpace(name),
		}
	}

	line := Line{Name: name, Value: " " + value + zwsp}
	if k, _ := Cut(line.Value, budget-m.Width(name), m, ee); k >= 0 {
		line.Value = trimEnd(line.Value[:k]) + Ellipsis
		line.TruncatedValue = true
		line.Title = strings.TrimSpace(line.Value)
	}
	return line
}
