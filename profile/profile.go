// Package profile defines the user profile entity and the role labels a
// user holds. Role semantics (precedence, capability flags) live in the
// root package; this package is pure identity and storage.
package profile

import (
	"time"

	"github.com/portier-io/portier/id"
)

// Profile is a user account known to the platform.
type Profile struct {
	ID          id.UserID `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	DisplayName string    `json:"display_name,omitempty" db:"display_name"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ListFilter contains filters for listing profiles.
type ListFilter struct {
	Search string `json:"search,omitempty"`
	Role   string `json:"role,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}
