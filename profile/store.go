package profile

import (
	"context"

	"github.com/portier-io/portier/id"
)

// Store defines persistence operations for profiles and role labels.
type Store interface {
	// CreateProfile persists a new profile.
	CreateProfile(ctx context.Context, p *Profile) error

	// GetProfile retrieves a profile by ID.
	GetProfile(ctx context.Context, userID id.UserID) (*Profile, error)

	// GetProfileByEmail retrieves a profile by email address.
	GetProfileByEmail(ctx context.Context, email string) (*Profile, error)

	// UpdateProfile updates an existing profile.
	UpdateProfile(ctx context.Context, p *Profile) error

	// DeleteProfile removes a profile and its role grants.
	DeleteProfile(ctx context.Context, userID id.UserID) error

	// ListProfiles returns profiles matching the filter.
	ListProfiles(ctx context.Context, filter *ListFilter) ([]*Profile, error)

	// ListRoleLabels returns the raw role label set held by a user.
	// An unknown user yields an empty set, not an error.
	ListRoleLabels(ctx context.Context, userID id.UserID) ([]string, error)

	// GrantRole adds a role label to a user. Granting a label the user
	// already holds is a no-op.
	GrantRole(ctx context.Context, userID id.UserID, label string) error

	// RevokeRole removes a role label from a user.
	RevokeRole(ctx context.Context, userID id.UserID, label string) error
}
