// Package plugin defines the plugin system for Portier.
// Plugins are notified of lifecycle events (decision evaluated, unit
// created, assignment granted, etc.) and can react — logging, metrics,
// tracing, cache busting.
//
// Each lifecycle hook is a separate interface so plugins opt in only
// to the events they care about.
package plugin

import (
	"context"

	"github.com/portier-io/portier/assignment"
	"github.com/portier-io/portier/id"
	"github.com/portier-io/portier/orgunit"
)

// Plugin is the base interface all plugins must implement.
type Plugin interface {
	// Name returns a unique human-readable name for the plugin.
	Name() string
}

// ──────────────────────────────────────────────────
// Decision lifecycle hooks
// ──────────────────────────────────────────────────

// BeforeCheck is called before a project permission evaluation.
type BeforeCheck interface {
	OnBeforeCheck(ctx context.Context, userID id.UserID, projectID id.ProjectID) error
}

// AfterCheck is called after a project permission evaluation completes.
// The dec parameter is *portier.ProjectDecision (passed as any to avoid
// an import cycle).
type AfterCheck interface {
	OnAfterCheck(ctx context.Context, dec any) error
}

// ──────────────────────────────────────────────────
// Org unit lifecycle hooks
// ──────────────────────────────────────────────────

// UnitCreated is called after an organizational unit is created.
type UnitCreated interface {
	OnUnitCreated(ctx context.Context, u *orgunit.Unit) error
}

// UnitUpdated is called after an organizational unit is updated.
type UnitUpdated interface {
	OnUnitUpdated(ctx context.Context, u *orgunit.Unit) error
}

// UnitDeleted is called after an organizational unit is deleted.
type UnitDeleted interface {
	OnUnitDeleted(ctx context.Context, unitID id.ID) error
}

// ──────────────────────────────────────────────────
// Assignment lifecycle hooks
// ──────────────────────────────────────────────────

// DirectGranted is called after a direct assignment is created.
type DirectGranted interface {
	OnDirectGranted(ctx context.Context, a *assignment.Direct) error
}

// DirectRevoked is called after a direct assignment is deleted.
type DirectRevoked interface {
	OnDirectRevoked(ctx context.Context, asgID id.DirectAssignmentID) error
}

// PathGranted is called after a path assignment is created.
type PathGranted interface {
	OnPathGranted(ctx context.Context, p *assignment.Path) error
}

// PathRevoked is called after a path assignment is deleted.
type PathRevoked interface {
	OnPathRevoked(ctx context.Context, asgID id.PathAssignmentID) error
}

// ──────────────────────────────────────────────────
// Role lifecycle hooks
// ──────────────────────────────────────────────────

// RoleGranted is called after a role label is granted to a user.
type RoleGranted interface {
	OnRoleGranted(ctx context.Context, userID id.UserID, label string) error
}

// RoleRevoked is called after a role label is revoked from a user.
type RoleRevoked interface {
	OnRoleRevoked(ctx context.Context, userID id.UserID, label string) error
}

// ──────────────────────────────────────────────────
// Shutdown hook
// ──────────────────────────────────────────────────

// Shutdown is called when the engine stops.
type Shutdown interface {
	OnShutdown(ctx context.Context) error
}
