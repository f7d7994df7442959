package resort

import (
	"errors"
	"fmt"
)

var ErrUnknownLift = errors.New("unknown lift id")

// Status is the operational state of a lift.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
	StatusHold   Status = "hold"
)

var AllStatuses = []Status{StatusOpen, StatusClosed, StatusHold}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOpen, StatusClosed, StatusHold:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown lift status %q", s)
	}
}

// Type is the kind of transport unit.
type Type string

const (
	TypeExpress     Type = "express"
	TypeQuad        Type = "quad"
	TypeMagicCarpet Type = "magic-carpet"
)

var AllTypes = []Type{TypeExpress, TypeQuad, TypeMagicCarpet}

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeExpress, TypeQuad, TypeMagicCarpet:
		return Type(s), nil
	default:
		return "", fmt.Errorf("unknown lift type %q", s)
	}
}

// Difficulty rates the terrain the lift serves.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

var AllDifficulties = []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}

func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return Difficulty(s), nil
	default:
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
}

// Point is a position in map-pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Lift is a single mountain transport unit with a fixed route.
// Path holds the route in map-pixel coordinates; Path[0] anchors the
// marker.
type Lift struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Status      Status     `json:"status"`
	Type        Type       `json:"type"`
	Difficulty  Difficulty `json:"difficulty"`
	Path        []Point    `json:"path"`
	WaitTime    int        `json:"wait_time"`
	Capacity    int        `json:"capacity"`
	CurrentLoad int        `json:"current_load"`
	Description string     `json:"description,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	WebcamURL   string     `json:"webcam_url,omitempty"`
}

// Anchor is the marker position for this lift.
func (l Lift) Anchor() Point {
	return l.Path[0]
}

func (l Lift) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("lift %q: empty id", l.Name)
	}
	if len(l.Path) == 0 {
		return fmt.Errorf("lift %s: empty path", l.ID)
	}
	if l.WaitTime < 0 {
		return fmt.Errorf("lift %s: negative wait time %d", l.ID, l.WaitTime)
	}
	if _, err := ParseStatus(string(l.Status)); err != nil {
		return fmt.Errorf("lift %s: %w", l.ID, err)
	}
	if _, err := ParseType(string(l.Type)); err != nil {
		return fmt.Errorf("lift %s: %w", l.ID, err)
	}
	if _, err := ParseDifficulty(string(l.Difficulty)); err != nil {
		return fmt.Errorf("lift %s: %w", l.ID, err)
	}
	return nil
}

// ValidateCollection checks the whole-collection invariants: every
// lift valid on its own, ids unique.
func ValidateCollection(lifts []Lift) error {
	seen := make(map[string]bool, len(lifts))
	for _, l := range lifts {
		if err := l.Validate(); err != nil {
			return err
		}
		if seen[l.ID] {
			return fmt.Errorf("duplicate lift id %s", l.ID)
		}
		seen[l.ID] = true
	}
	return nil
}
