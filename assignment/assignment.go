// Package assignment defines the org-scoping grants a user can hold:
// direct assignments (one unit, no descendants) and path assignments
// (one unit plus its full subtree).
package assignment

import (
	"time"

	"github.com/portier-io/portier/id"
	"github.com/portier-io/portier/orgunit"
)

// Direct grants a user access to exactly one organizational unit.
// It never implies access to the unit's descendants.
type Direct struct {
	ID        id.DirectAssignmentID `json:"id" db:"id"`
	UserID    id.UserID             `json:"user_id" db:"user_id"`
	UnitKind  orgunit.Kind          `json:"unit_kind" db:"unit_kind"`
	UnitID    id.ID                 `json:"unit_id" db:"unit_id"`
	GrantedBy id.UserID             `json:"granted_by,omitempty" db:"granted_by"`
	CreatedAt time.Time             `json:"created_at" db:"created_at"`
}

// Path grants a user access to a unit and everything beneath it.
// The most specific non-nil component wins: a path naming only a pole
// covers the pole's whole subtree; pole+direction covers the direction
// and its services; all three cover exactly that service.
type Path struct {
	ID          id.PathAssignmentID `json:"id" db:"id"`
	UserID      id.UserID           `json:"user_id" db:"user_id"`
	PoleID      id.PoleID           `json:"pole_id" db:"pole_id"`
	DirectionID id.DirectionID      `json:"direction_id,omitempty" db:"direction_id"`
	ServiceID   id.ServiceID        `json:"service_id,omitempty" db:"service_id"`
	GrantedBy   id.UserID           `json:"granted_by,omitempty" db:"granted_by"`
	CreatedAt   time.Time           `json:"created_at" db:"created_at"`
}

// MostSpecific returns the deepest unit named by the path.
func (p *Path) MostSpecific() orgunit.Ref {
	if !p.ServiceID.IsNil() {
		return orgunit.Ref{Kind: orgunit.KindService, ID: p.ServiceID}
	}
	if !p.DirectionID.IsNil() {
		return orgunit.Ref{Kind: orgunit.KindDirection, ID: p.DirectionID}
	}
	return orgunit.Ref{Kind: orgunit.KindPole, ID: p.PoleID}
}

// Snapshot is the full set of a user's grants at a point in time.
// Empty lists are valid: the user then has role-only visibility.
type Snapshot struct {
	Direct []*Direct `json:"direct"`
	Paths  []*Path   `json:"paths"`
}

// ListFilter contains filters for listing assignments of either kind.
type ListFilter struct {
	UserID   *id.UserID   `json:"user_id,omitempty"`
	UnitKind orgunit.Kind `json:"unit_kind,omitempty"`
	UnitID   *id.ID       `json:"unit_id,omitempty"`
	Limit    int          `json:"limit,omitempty"`
	Offset   int          `json:"offset,omitempty"`
}
