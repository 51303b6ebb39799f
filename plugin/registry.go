package plugin

import (
	"context"
	"log/slog"

	"github.com/portier-io/portier/assignment"
	"github.com/portier-io/portier/id"
	"github.com/portier-io/portier/orgunit"
)

// Named entry types pair a hook with the plugin name for logging.

type beforeCheckEntry struct {
	name string
	hook BeforeCheck
}
type afterCheckEntry struct {
	name string
	hook AfterCheck
}
type unitCreatedEntry struct {
	name string
	hook UnitCreated
}
type unitUpdatedEntry struct {
	name string
	hook UnitUpdated
}
type unitDeletedEntry struct {
	name string
	hook UnitDeleted
}
type directGrantedEntry struct {
	name string
	hook DirectGranted
}
type directRevokedEntry struct {
	name string
	hook DirectRevoked
}
type pathGrantedEntry struct {
	name string
	hook PathGranted
}
type pathRevokedEntry struct {
	name string
	hook PathRevoked
}
type roleGrantedEntry struct {
	name string
	hook RoleGranted
}
type roleRevokedEntry struct {
	name string
	hook RoleRevoked
}
type shutdownEntry struct {
	name string
	hook Shutdown
}

// Registry holds registered plugins and dispatches lifecycle events.
// It type-caches plugins at registration time so emit calls iterate
// only over plugins implementing the relevant hook.
type Registry struct {
	plugins []Plugin
	logger  *slog.Logger

	beforeCheck   []beforeCheckEntry
	afterCheck    []afterCheckEntry
	unitCreated   []unitCreatedEntry
	unitUpdated   []unitUpdatedEntry
	unitDeleted   []unitDeletedEntry
	directGranted []directGrantedEntry
	directRevoked []directRevokedEntry
	pathGranted   []pathGrantedEntry
	pathRevoked   []pathRevokedEntry
	roleGranted   []roleGrantedEntry
	roleRevoked   []roleRevokedEntry
	shutdown      []shutdownEntry
}

// NewRegistry creates a plugin registry with the given logger.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{logger: logger}
}

// Register adds a plugin and type-asserts it into all applicable
// hook caches. Plugins are notified in registration order.
func (r *Registry) Register(p Plugin) {
	r.plugins = append(r.plugins, p)
	name := p.Name()

	if h, ok := p.(BeforeCheck); ok {
		r.beforeCheck = append(r.beforeCheck, beforeCheckEntry{name, h})
	}
	if h, ok := p.(AfterCheck); ok {
		r.afterCheck = append(r.afterCheck, afterCheckEntry{name, h})
	}
	if h, ok := p.(UnitCreated); ok {
		r.unitCreated = append(r.unitCreated, unitCreatedEntry{name, h})
	}
	if h, ok := p.(UnitUpdated); ok {
		r.unitUpdated = append(r.unitUpdated, unitUpdatedEntry{name, h})
	}
	if h, ok := p.(UnitDeleted); ok {
		r.unitDeleted = append(r.unitDeleted, unitDeletedEntry{name, h})
	}
	if h, ok := p.(DirectGranted); ok {
		r.directGranted = append(r.directGranted, directGrantedEntry{name, h})
	}
	if h, ok := p.(DirectRevoked); ok {
		r.directRevoked = append(r.directRevoked, directRevokedEntry{name, h})
	}
	if h, ok := p.(PathGranted); ok {
		r.pathGranted = append(r.pathGranted, pathGrantedEntry{name, h})
	}
	if h, ok := p.(PathRevoked); ok {
		r.pathRevoked = append(r.pathRevoked, pathRevokedEntry{name, h})
	}
	if h, ok := p.(RoleGranted); ok {
		r.roleGranted = append(r.roleGranted, roleGrantedEntry{name, h})
	}
	if h, ok := p.(RoleRevoked); ok {
		r.roleRevoked = append(r.roleRevoked, roleRevokedEntry{name, h})
	}
	if h, ok := p.(Shutdown); ok {
		r.shutdown = append(r.shutdown, shutdownEntry{name, h})
	}
}

// Plugins returns all registered plugins.
func (r *Registry) Plugins() []Plugin { return r.plugins }

// ──────────────────────────────────────────────────
// Decision event emitters
// ──────────────────────────────────────────────────

// EmitBeforeCheck notifies all plugins that implement BeforeCheck.
func (r *Registry) EmitBeforeCheck(ctx context.Context, userID id.UserID, projectID id.ProjectID) {
	for _, e := range r.beforeCheck {
		if err := e.hook.OnBeforeCheck(ctx, userID, projectID); err != nil {
			r.logHookError("OnBeforeCheck", e.name, err)
		}
	}
}

// EmitAfterCheck notifies all plugins that implement AfterCheck.
func (r *Registry) EmitAfterCheck(ctx context.Context, dec any) {
	for _, e := range r.afterCheck {
		if err := e.hook.OnAfterCheck(ctx, dec); err != nil {
			r.logHookError("OnAfterCheck", e.name, err)
		}
	}
}

// ──────────────────────────────────────────────────
// Org unit event emitters
// ──────────────────────────────────────────────────

// EmitUnitCreated notifies all plugins that implement UnitCreated.
func (r *Registry) EmitUnitCreated(ctx context.Context, u *orgunit.Unit) {
	for _, e := range r.unitCreated {
		if err := e.hook.OnUnitCreated(ctx, u); err != nil {
			r.logHookError("OnUnitCreated", e.name, err)
		}
	}
}

// EmitUnitUpdated notifies all plugins that implement UnitUpdated.
func (r *Registry) EmitUnitUpdated(ctx context.Context, u *orgunit.Unit) {
	for _, e := range r.unitUpdated {
		if err := e.hook.OnUnitUpdated(ctx, u); err != nil {
			r.logHookError("OnUnitUpdated", e.name, err)
		}
	}
}

// EmitUnitDeleted notifies all plugins that implement UnitDeleted.
func (r *Registry) EmitUnitDeleted(ctx context.Context, unitID id.ID) {
	for _, e := range r.unitDeleted {
		if err := e.hook.OnUnitDeleted(ctx, unitID); err != nil {
			r.logHookError("OnUnitDeleted", e.name, err)
		}
	}
}

// ──────────────────────────────────────────────────
// Assignment event emitters
// ──────────────────────────────────────────────────

// EmitDirectGranted notifies all plugins that implement DirectGranted.
func (r *Registry) EmitDirectGranted(ctx context.Context, a *assignment.Direct) {
	for _, e := range r.directGranted {
		if err := e.hook.OnDirectGranted(ctx, a); err != nil {
			r.logHookError("OnDirectGranted", e.name, err)
		}
	}
}

// EmitDirectRevoked notifies all plugins that implement DirectRevoked.
func (r *Registry) EmitDirectRevoked(ctx context.Context, asgID id.DirectAssignmentID) {
	for _, e := range r.directRevoked {
		if err := e.hook.OnDirectRevoked(ctx, asgID); err != nil {
			r.logHookError("OnDirectRevoked", e.name, err)
		}
	}
}

// EmitPathGranted notifies all plugins that implement PathGranted.
func (r *Registry) EmitPathGranted(ctx context.Context, p *assignment.Path) {
	for _, e := range r.pathGranted {
		if err := e.hook.OnPathGranted(ctx, p); err != nil {
			r.logHookError("OnPathGranted", e.name, err)
		}
	}
}

// EmitPathRevoked notifies all plugins that implement PathRevoked.
func (r *Registry) EmitPathRevoked(ctx context.Context, asgID id.PathAssignmentID) {
	for _, e := range r.pathRevoked {
		if err := e.hook.OnPathRevoked(ctx, asgID); err != nil {
			r.logHookError("OnPathRevoked", e.name, err)
		}
	}
}

// ──────────────────────────────────────────────────
// Role event emitters
// ──────────────────────────────────────────────────

// EmitRoleGranted notifies all plugins that implement RoleGranted.
func (r *Registry) EmitRoleGranted(ctx context.Context, userID id.UserID, label string) {
	for _, e := range r.roleGranted {
		if err := e.hook.OnRoleGranted(ctx, userID, label); err != nil {
			r.logHookError("OnRoleGranted", e.name, err)
		}
	}
}

// EmitRoleRevoked notifies all plugins that implement RoleRevoked.
func (r *Registry) EmitRoleRevoked(ctx context.Context, userID id.UserID, label string) {
	for _, e := range r.roleRevoked {
		if err := e.hook.OnRoleRevoked(ctx, userID, label); err != nil {
			r.logHookError("OnRoleRevoked", e.name, err)
		}
	}
}

// ──────────────────────────────────────────────────
// Shutdown emitter
// ──────────────────────────────────────────────────

// EmitShutdown notifies all plugins that implement Shutdown.
func (r *Registry) EmitShutdown(ctx context.Context) {
	for _, e := range r.shutdown {
		if err := e.hook.OnShutdown(ctx); err != nil {
			r.logHookError("OnShutdown", e.name, err)
		}
	}
}

// logHookError logs a warning when a lifecycle hook returns an error.
// Errors from hooks are never propagated — they must not block the pipeline.
func (r *Registry) logHookError(hook, pluginName string, err error) {
	r.logger.Warn("plugin hook error",
		slog.String("hook", hook),
		slog.String("plugin", pluginName),
		slog.String("error", err.Error()),
	)
}
