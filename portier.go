// Package portier is the access-control engine of a project-portfolio
// platform. It resolves, for a given user, which organizational units
// (Pole → Direction → Service) and therefore which projects the user may
// view, edit, or manage.
//
// The evaluation core is pure: it operates on immutable snapshots of the
// organizational tree, the user's assignments, and project facts, and
// shares no mutable state between invocations. The Engine wraps the core
// with snapshot loading from a pluggable store.
//
//	eng, err := portier.NewEngine(
//	    portier.WithStore(memStore),
//	)
//	dec, err := eng.ProjectCapabilities(ctx, userID, projectID)
//	if dec.Capabilities.CanEdit { ... }
package portier

import (
	"sort"

	"github.com/portier-io/portier/id"
)

// ProjectOrg is a project's organizational placement. Typically only the
// most specific tier is set; ancestors are implied and filled in by
// Tree.Ancestors. The zero value means the project has no placement and
// access falls back to ownership and membership facts.
type ProjectOrg struct {
	PoleID      id.PoleID      `json:"pole_id,omitempty"`
	DirectionID id.DirectionID `json:"direction_id,omitempty"`
	ServiceID   id.ServiceID   `json:"service_id,omitempty"`
}

// IsZero reports whether no tier is set.
func (o ProjectOrg) IsZero() bool {
	return o.PoleID.IsNil() && o.DirectionID.IsNil() && o.ServiceID.IsNil()
}

// AccessSet is the closed set of organizational units a user can access,
// one ID set per tier. Visibility is not transitively upward: a service
// in the set does not imply its parent direction or pole.
type AccessSet struct {
	Poles      map[string]struct{} `json:"-"`
	Directions map[string]struct{} `json:"-"`
	Services   map[string]struct{} `json:"-"`
}

// NewAccessSet returns an empty AccessSet with all tiers allocated.
func NewAccessSet() AccessSet {
	return AccessSet{
		Poles:      make(map[string]struct{}),
		Directions: make(map[string]struct{}),
		Services:   make(map[string]struct{}),
	}
}

// ContainsPole reports whether the pole is in the set.
func (s AccessSet) ContainsPole(poleID id.PoleID) bool {
	_, ok := s.Poles[poleID.String()]
	return ok
}

// ContainsDirection reports whether the direction is in the set.
func (s AccessSet) ContainsDirection(dirID id.DirectionID) bool {
	_, ok := s.Directions[dirID.String()]
	return ok
}

// ContainsService reports whether the service is in the set.
func (s AccessSet) ContainsService(svcID id.ServiceID) bool {
	_, ok := s.Services[svcID.String()]
	return ok
}

// Merge unions another set into this one. Idempotent: merging the same
// grant twice yields the same set as merging it once.
func (s AccessSet) Merge(other AccessSet) {
	for k := range other.Poles {
		s.Poles[k] = struct{}{}
	}
	for k := range other.Directions {
		s.Directions[k] = struct{}{}
	}
	for k := range other.Services {
		s.Services[k] = struct{}{}
	}
}

// Len returns the total number of units across all tiers.
func (s AccessSet) Len() int {
	return len(s.Poles) + len(s.Directions) + len(s.Services)
}

// PoleIDs returns the pole IDs sorted lexicographically.
func (s AccessSet) PoleIDs() []string { return sortedKeys(s.Poles) }

// DirectionIDs returns the direction IDs sorted lexicographically.
func (s AccessSet) DirectionIDs() []string { return sortedKeys(s.Directions) }

// ServiceIDs returns the service IDs sorted lexicographically.
func (s AccessSet) ServiceIDs() []string { return sortedKeys(s.Services) }

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Capabilities are the per-project boolean rights of a user.
type Capabilities struct {
	CanView          bool `json:"can_view"`
	CanEdit          bool `json:"can_edit"`
	CanDelete        bool `json:"can_delete"`
	CanManageMembers bool `json:"can_manage_members"`
	CanManageTasks   bool `json:"can_manage_tasks"`
	CanManageRisks   bool `json:"can_manage_risks"`
	CanCreateReview  bool `json:"can_create_review"`
}

// Action names a project capability for enforcement and decision logging.
type Action string

const (
	ActionView          Action = "view"
	ActionEdit          Action = "edit"
	ActionDelete        Action = "delete"
	ActionManageMembers Action = "manage_members"
	ActionManageTasks   Action = "manage_tasks"
	ActionManageRisks   Action = "manage_risks"
	ActionCreateReview  Action = "create_review"
)

// Allows reports whether the capability named by the action is granted.
// Returns ErrUnknownAction for unrecognized actions.
func (c Capabilities) Allows(a Action) (bool, error) {
	switch a {
	case ActionView:
		return c.CanView, nil
	case ActionEdit:
		return c.CanEdit, nil
	case ActionDelete:
		return c.CanDelete, nil
	case ActionManageMembers:
		return c.CanManageMembers, nil
	case ActionManageTasks:
		return c.CanManageTasks, nil
	case ActionManageRisks:
		return c.CanManageRisks, nil
	case ActionCreateReview:
		return c.CanCreateReview, nil
	default:
		return false, ErrUnknownAction
	}
}

// Decision is the outcome classification of a permission evaluation,
// keyed off the view capability.
type Decision string

const (
	// DecisionAllow means the user can at least view the project.
	DecisionAllow Decision = "allow"

	// DecisionDenyNoRoles means the user holds no roles and no identity
	// fact (manager, owner, membership) matched.
	DecisionDenyNoRoles Decision = "deny_no_roles"

	// DecisionDenyOutOfScope means a manager's assignments do not cover
	// the project's organizational placement.
	DecisionDenyOutOfScope Decision = "deny_out_of_scope"

	// DecisionDenyNotMember means a member is not on the project team.
	DecisionDenyNotMember Decision = "deny_not_member"

	// DecisionDenyDefault means no rule granted view access.
	DecisionDenyDefault Decision = "deny_default"
)

// ProjectDecision is the full outcome of a project permission evaluation.
type ProjectDecision struct {
	UserID       id.UserID    `json:"user_id"`
	ProjectID    id.ProjectID `json:"project_id"`
	Capabilities Capabilities `json:"capabilities"`
	Decision     Decision     `json:"decision"`
	Reason       string       `json:"reason,omitempty"`
	EvalTimeNs   int64        `json:"eval_time_ns"`
}
