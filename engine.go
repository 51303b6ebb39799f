package portier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/portier-io/portier/assignment"
	"github.com/portier-io/portier/decisionlog"
	"github.com/portier-io/portier/id"
	"github.com/portier-io/portier/plugin"
	"github.com/portier-io/portier/profile"
	"github.com/portier-io/portier/project"
	"github.com/portier-io/portier/store"
)

// Engine wraps the pure evaluation core with snapshot loading from the
// store. Every decision reads fresh snapshots; the engine holds no
// mutable state of its own and is safe for concurrent use. The optional
// cache is the only cross-request memory and is invalidated by the API
// layer on assignment and role mutation.
type Engine struct {
	store   store.Store
	cache   Cache
	plugins *plugin.Registry
	logger  *slog.Logger
	config  Config
}

// NewEngine creates a new Portier engine with the given options.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		logger: slog.Default(),
		config: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		return nil, errors.New("portier: store is required")
	}
	return e, nil
}

// Store returns the underlying composite store.
func (e *Engine) Store() store.Store { return e.store }

// Plugins returns the plugin registry (may be nil).
func (e *Engine) Plugins() *plugin.Registry { return e.plugins }

// Cache returns the configured decision cache (may be nil).
func (e *Engine) Cache() Cache { return e.cache }

// Start performs any startup initialization.
func (e *Engine) Start(_ context.Context) error { return nil }

// Stop performs graceful shutdown.
func (e *Engine) Stop(ctx context.Context) error {
	if e.plugins != nil {
		e.plugins.EmitShutdown(ctx)
	}
	return nil
}

// Roles loads and resolves the user's role label set.
func (e *Engine) Roles(ctx context.Context, userID id.UserID) (ResolvedRole, error) {
	labels, err := e.store.ListRoleLabels(ctx, userID)
	if err != nil {
		return ResolvedRole{}, fmt.Errorf("portier: load role labels: %w", err)
	}
	return ResolveRoles(labels), nil
}

// Tree fetches every organizational unit and builds a fresh hierarchy
// snapshot. The snapshot is immutable; callers wanting to observe later
// edits must call Tree again.
func (e *Engine) Tree(ctx context.Context) (*Tree, error) {
	units, err := e.store.ListAllUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("portier: load org units: %w", err)
	}
	tree, err := NewTree(units)
	if err != nil {
		return nil, fmt.Errorf("portier: build tree: %w", err)
	}
	return tree, nil
}

// AccessibleEntities computes the set of organizational units the user
// can access, from fresh role, assignment, and tree snapshots.
func (e *Engine) AccessibleEntities(ctx context.Context, userID id.UserID) (AccessSet, error) {
	role, snap, tree, err := e.loadScope(ctx, userID)
	if err != nil {
		return AccessSet{}, err
	}
	return AccessibleEntities(role, snap, tree), nil
}

// CanAccessOrg answers whether the user can see a project placed at the
// given org, through the org tree alone. A placement with no tiers set
// resolves to false: callers fall back to ownership and membership.
func (e *Engine) CanAccessOrg(ctx context.Context, userID id.UserID, org ProjectOrg) (bool, error) {
	role, snap, tree, err := e.loadScope(ctx, userID)
	if err != nil {
		return false, err
	}
	return CanAccessProjectOrg(role, snap, tree, org), nil
}

// ProjectCapabilities computes the user's capability flags on a project.
// This is the hot path: cache lookup, fresh snapshot loads, pure
// evaluation, optional decision logging.
func (e *Engine) ProjectCapabilities(ctx context.Context, userID id.UserID, projectID id.ProjectID) (*ProjectDecision, error) {
	start := time.Now()

	if e.cache != nil {
		if cached, ok := e.cache.Get(ctx, userID, projectID); ok {
			// Stamp a copy; the cached entry is shared across requests.
			dec := *cached
			dec.EvalTimeNs = time.Since(start).Nanoseconds()
			return &dec, nil
		}
	}

	if e.plugins != nil {
		e.plugins.EmitBeforeCheck(ctx, userID, projectID)
	}

	in, err := e.loadEvalInput(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	caps := EvaluateProject(in)
	decision, reason := classifyDecision(in, caps)

	dec := &ProjectDecision{
		UserID:       userID,
		ProjectID:    projectID,
		Capabilities: caps,
		Decision:     decision,
		Reason:       reason,
		EvalTimeNs:   time.Since(start).Nanoseconds(),
	}

	if e.config.LogDecisions {
		e.logDecision(ctx, string(ActionView), dec)
	}
	if e.cache != nil {
		e.cache.Set(ctx, userID, projectID, dec)
	}
	if e.plugins != nil {
		e.plugins.EmitAfterCheck(ctx, dec)
	}

	return dec, nil
}

// CanEditTask applies the per-task edit rule for a task assigned to
// assigneeID within the given project.
func (e *Engine) CanEditTask(ctx context.Context, userID id.UserID, projectID id.ProjectID, assigneeID id.UserID) (bool, error) {
	in, err := e.loadEvalInput(ctx, userID, projectID)
	if err != nil {
		return false, err
	}
	return CanEditTask(in, assigneeID), nil
}

// Enforce returns ErrAccessDenied if the user lacks the capability named
// by the action on the project.
func (e *Engine) Enforce(ctx context.Context, userID id.UserID, projectID id.ProjectID, action Action) error {
	dec, err := e.ProjectCapabilities(ctx, userID, projectID)
	if err != nil {
		return fmt.Errorf("portier: capabilities: %w", err)
	}
	allowed, err := dec.Capabilities.Allows(action)
	if err != nil {
		return err
	}
	if e.config.LogDecisions && action != ActionView {
		actionDec := *dec
		if !allowed {
			actionDec.Decision = DecisionDenyDefault
			actionDec.Reason = fmt.Sprintf("capability %q not granted", action)
		}
		e.logDecision(ctx, string(action), &actionDec)
	}
	if !allowed {
		return fmt.Errorf("%w: user %s may not %s project %s", ErrAccessDenied, userID, action, projectID)
	}
	return nil
}

// loadScope fetches the three snapshots org-level resolution needs.
func (e *Engine) loadScope(ctx context.Context, userID id.UserID) (ResolvedRole, *assignment.Snapshot, *Tree, error) {
	role, err := e.Roles(ctx, userID)
	if err != nil {
		return ResolvedRole{}, nil, nil, err
	}
	snap, err := e.store.LoadSnapshot(ctx, userID)
	if err != nil {
		return ResolvedRole{}, nil, nil, fmt.Errorf("portier: load assignments: %w", err)
	}
	tree, err := e.Tree(ctx)
	if err != nil {
		return ResolvedRole{}, nil, nil, err
	}
	return role, snap, tree, nil
}

// loadEvalInput assembles everything project evaluation needs. Orphaned
// org placements degrade to ownership-only evaluation rather than
// failing: the zero placement never intersects anything.
func (e *Engine) loadEvalInput(ctx context.Context, userID id.UserID, projectID id.ProjectID) (ProjectEvalInput, error) {
	proj, err := e.store.GetProject(ctx, projectID)
	if err != nil {
		return ProjectEvalInput{}, fmt.Errorf("portier: load project: %w", err)
	}

	role, snap, tree, err := e.loadScope(ctx, userID)
	if err != nil {
		return ProjectEvalInput{}, err
	}

	var user *profile.Profile
	user, err = e.store.GetProfile(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrProfileNotFound) {
			return ProjectEvalInput{}, fmt.Errorf("portier: load profile: %w", err)
		}
		user = nil
	}

	org, err := tree.Ancestors(projectOrgOf(proj))
	if err != nil {
		// Orphaned placement: the project references units deleted from
		// the snapshot. Grants nothing; ownership rules still apply.
		e.logger.Warn("project references orphaned org units",
			slog.String("project_id", projectID.String()),
			slog.String("error", err.Error()),
		)
		org = ProjectOrg{}
	}

	isMember, err := e.store.IsProjectMember(ctx, projectID, userID)
	if err != nil {
		return ProjectEvalInput{}, fmt.Errorf("portier: load membership: %w", err)
	}

	return ProjectEvalInput{
		User:       user,
		Role:       role,
		Accessible: AccessibleEntities(role, snap, tree),
		Org:        org,
		Project:    proj,
		IsMember:   isMember,
	}, nil
}

func projectOrgOf(p *project.Project) ProjectOrg {
	return ProjectOrg{
		PoleID:      p.PoleID,
		DirectionID: p.DirectionID,
		ServiceID:   p.ServiceID,
	}
}

// classifyDecision picks the most informative outcome label, keyed off
// the view capability.
func classifyDecision(in ProjectEvalInput, caps Capabilities) (Decision, string) {
	if caps.CanView {
		return DecisionAllow, ""
	}
	switch {
	case in.Role.Highest == "":
		return DecisionDenyNoRoles, "user holds no role and no identity fact matched"
	case in.Role.IsManager():
		return DecisionDenyOutOfScope, "project org is outside the manager's assignments"
	case in.Role.IsMember():
		return DecisionDenyNotMember, "user is not a member of the project team"
	default:
		return DecisionDenyDefault, "no rule grants view access"
	}
}

func (e *Engine) logDecision(ctx context.Context, action string, dec *ProjectDecision) {
	entry := &decisionlog.Entry{
		ID:         id.NewDecisionLogID(),
		UserID:     dec.UserID,
		Action:     action,
		ProjectID:  dec.ProjectID,
		Decision:   string(dec.Decision),
		Reason:     dec.Reason,
		EvalTimeNs: dec.EvalTimeNs,
		RequestIP:  requestIPFromContext(ctx),
		CreatedAt:  time.Now().UTC(),
	}
	if err := e.store.CreateDecisionLog(ctx, entry); err != nil {
		e.logger.Warn("decision log write failed",
			slog.String("user_id", dec.UserID.String()),
			slog.String("project_id", dec.ProjectID.String()),
			slog.String("error", err.Error()),
		)
	}
}
