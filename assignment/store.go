package assignment

import (
	"context"

	"github.com/portier-io/portier/id"
)

// Store defines persistence operations for direct and path assignments.
type Store interface {
	// CreateDirectAssignment persists a new direct assignment.
	CreateDirectAssignment(ctx context.Context, a *Direct) error

	// GetDirectAssignment retrieves a direct assignment by ID.
	GetDirectAssignment(ctx context.Context, asgID id.DirectAssignmentID) (*Direct, error)

	// DeleteDirectAssignment removes a direct assignment by ID.
	DeleteDirectAssignment(ctx context.Context, asgID id.DirectAssignmentID) error

	// ListDirectAssignments returns direct assignments matching the filter.
	ListDirectAssignments(ctx context.Context, filter *ListFilter) ([]*Direct, error)

	// CountDirectAssignments returns the number of direct assignments
	// matching the filter.
	CountDirectAssignments(ctx context.Context, filter *ListFilter) (int64, error)

	// CreatePathAssignment persists a new path assignment.
	CreatePathAssignment(ctx context.Context, p *Path) error

	// GetPathAssignment retrieves a path assignment by ID.
	GetPathAssignment(ctx context.Context, asgID id.PathAssignmentID) (*Path, error)

	// DeletePathAssignment removes a path assignment by ID.
	DeletePathAssignment(ctx context.Context, asgID id.PathAssignmentID) error

	// ListPathAssignments returns path assignments matching the filter.
	ListPathAssignments(ctx context.Context, filter *ListFilter) ([]*Path, error)

	// CountPathAssignments returns the number of path assignments
	// matching the filter.
	CountPathAssignments(ctx context.Context, filter *ListFilter) (int64, error)

	// LoadSnapshot returns all of a user's grants in one read.
	// A pass-through: no transformation, empty lists are valid.
	LoadSnapshot(ctx context.Context, userID id.UserID) (*Snapshot, error)

	// DeleteAssignmentsByUser removes all grants held by a user.
	DeleteAssignmentsByUser(ctx context.Context, userID id.UserID) error

	// DeleteAssignmentsByUnit removes all grants referencing a unit.
	// Used for cleanup when an organizational unit is deleted.
	DeleteAssignmentsByUnit(ctx context.Context, unitID id.ID) error
}
