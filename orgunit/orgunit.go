// Package orgunit defines the organizational unit entity and its store
// interface. Units form a strict three-tier hierarchy: Pole → Direction →
// Service. A pole has no parent, a direction's parent is a pole, and a
// service's parent is a direction.
package orgunit

import (
	"time"

	"github.com/portier-io/portier/id"
)

// Kind identifies the tier an organizational unit belongs to.
type Kind string

const (
	// KindPole is the top tier (broad division).
	KindPole Kind = "pole"

	// KindDirection is the middle tier (sub-division).
	KindDirection Kind = "direction"

	// KindService is the bottom tier (team).
	KindService Kind = "service"
)

// Valid reports whether k is one of the three known tiers.
func (k Kind) Valid() bool {
	return k == KindPole || k == KindDirection || k == KindService
}

// ParentKind returns the tier a unit of kind k must be parented under,
// or "" for poles.
func (k Kind) ParentKind() Kind {
	switch k {
	case KindDirection:
		return KindPole
	case KindService:
		return KindDirection
	default:
		return ""
	}
}

// Unit is a single node of the organizational hierarchy.
type Unit struct {
	ID        id.ID     `json:"id" db:"id"`
	Kind      Kind      `json:"kind" db:"kind"`
	Name      string    `json:"name" db:"name"`
	ParentID  id.ID     `json:"parent_id,omitempty" db:"parent_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Ref names a unit by tier and identifier without carrying the full record.
type Ref struct {
	Kind Kind  `json:"kind"`
	ID   id.ID `json:"id"`
}

// ListFilter contains filters for listing units.
type ListFilter struct {
	Kind     Kind   `json:"kind,omitempty"`
	ParentID *id.ID `json:"parent_id,omitempty"`
	Search   string `json:"search,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}
