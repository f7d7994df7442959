package resort

import "strings"

// Fixed presentation mappings. Each switch covers every variant of its
// closed enum; ParseStatus and friends guarantee no other value can be
// constructed from input.

// Color is the marker fill for a status.
func (s Status) Color() string {
	switch s {
	case StatusOpen:
		return "#2e7d32" // green
	case StatusClosed:
		return "#c62828" // red
	case StatusHold:
		return "#f9a825" // amber
	default:
		return "#9e9e9e"
	}
}

// Badge is the display text for a status badge.
func (s Status) Badge() string {
	return strings.ToUpper(string(s))
}

// Dashed reports whether the lift's line renders with a dashed stroke.
// Only closed lifts dash, independent of selection.
func (s Status) Dashed() bool {
	return s == StatusClosed
}

// Glyph is the marker icon for a lift type.
func (t Type) Glyph() string {
	switch t {
	case TypeExpress:
		return "⬆" // upward arrow
	case TypeQuad:
		return "◈" // diamond
	case TypeMagicCarpet:
		return "▬" // bar
	default:
		return "?"
	}
}

// Color is the badge color for a difficulty, following piste
// conventions: green circle, blue square, black diamond.
func (d Difficulty) Color() string {
	switch d {
	case DifficultyBeginner:
		return "#388e3c"
	case DifficultyIntermediate:
		return "#1976d2"
	case DifficultyAdvanced:
		return "#212121"
	default:
		return "#9e9e9e"
	}
}

// Badge is the display text for a difficulty badge.
func (d Difficulty) Badge() string {
	return strings.ToUpper(string(d))
}
