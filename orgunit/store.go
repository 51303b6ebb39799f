package orgunit

import (
	"context"

	"github.com/portier-io/portier/id"
)

// Store defines persistence operations for organizational units.
type Store interface {
	// CreateUnit persists a new unit. Implementations must reject a
	// direction or service whose parent does not exist or is of the
	// wrong tier.
	CreateUnit(ctx context.Context, u *Unit) error

	// GetUnit retrieves a unit by ID.
	GetUnit(ctx context.Context, unitID id.ID) (*Unit, error)

	// UpdateUnit updates an existing unit.
	UpdateUnit(ctx context.Context, u *Unit) error

	// DeleteUnit removes a unit by ID. Deleting a unit does not cascade;
	// callers are expected to clean up descendants and assignments.
	DeleteUnit(ctx context.Context, unitID id.ID) error

	// ListUnits returns units matching the filter, ordered by name.
	ListUnits(ctx context.Context, filter *ListFilter) ([]*Unit, error)

	// CountUnits returns the number of units matching the filter.
	CountUnits(ctx context.Context, filter *ListFilter) (int64, error)

	// ListChildren returns the direct children of a unit, ordered by name.
	ListChildren(ctx context.Context, parentID id.ID) ([]*Unit, error)

	// ListAllUnits returns every unit in the hierarchy. This is the
	// snapshot read backing tree construction.
	ListAllUnits(ctx context.Context) ([]*Unit, error)
}
