package store

import (
	"context"

	"alpenworks.io/resort-services/internal/resort"
)

// Store serves the lift collection. Implementations must return
// collections that already satisfy resort.ValidateCollection; callers
// treat a violation as a configuration defect, not a runtime error.
type Store interface {
	// Lifts returns every lift, in stable display order.
	Lifts(ctx context.Context) ([]resort.Lift, error)

	// Lift returns a single lift by id, or resort.ErrUnknownLift.
	Lift(ctx context.Context, id string) (resort.Lift, error)
}
