package portier

// Role is one of the closed set of role labels a user can hold.
type Role string

const (
	// RoleAdmin bypasses all organizational scoping.
	RoleAdmin Role = "admin"

	// RoleManager has org-scoped visibility driven by assignments.
	RoleManager Role = "manager"

	// RoleProjectLead sees projects they are recorded as managing.
	RoleProjectLead Role = "project_lead"

	// RoleMember sees projects they are a team member of.
	RoleMember Role = "member"

	// Auxiliary labels. They never participate in the highest-role
	// computation but Has reports them truthfully.
	RoleTimeTracker      Role = "time_tracker"
	RolePortfolioManager Role = "portfolio_manager"
	RoleQualityManager   Role = "quality_manager"
)

// rolePrecedence is the fixed total order for the highest-role
// computation. Membership in this list is itself the tie-break; labels
// outside it never win.
var rolePrecedence = []Role{RoleAdmin, RoleManager, RoleProjectLead, RoleMember}

// ResolvedRole is the outcome of collapsing a user's role label set into
// a single highest-precedence role plus capability flags.
type ResolvedRole struct {
	// Highest is the first role in precedence order present in the label
	// set, or "" when none of the ordered roles is held.
	Highest Role

	labels map[Role]struct{}
}

// ResolveRoles collapses a raw label set into a ResolvedRole. Unknown
// labels are retained for Has and otherwise ignored. An empty or nil
// label set is valid: Highest is "" and every flag is false.
func ResolveRoles(labels []string) ResolvedRole {
	r := ResolvedRole{labels: make(map[Role]struct{}, len(labels))}
	for _, l := range labels {
		r.labels[Role(l)] = struct{}{}
	}
	for _, role := range rolePrecedence {
		if _, ok := r.labels[role]; ok {
			r.Highest = role
			break
		}
	}
	return r
}

// Has reports whether the user holds the given label, auxiliary labels
// included.
func (r ResolvedRole) Has(role Role) bool {
	_, ok := r.labels[role]
	return ok
}

// AtLeast reports whether the user's highest role ranks at or above the
// given role in precedence order: an admin satisfies AtLeast(RoleManager).
// Roles outside the precedence order never satisfy a threshold; use Has
// for plain label checks.
func (r ResolvedRole) AtLeast(role Role) bool {
	need := precedenceIndex(role)
	have := precedenceIndex(r.Highest)
	if need < 0 || have < 0 {
		return false
	}
	return have <= need
}

func precedenceIndex(role Role) int {
	for i, p := range rolePrecedence {
		if p == role {
			return i
		}
	}
	return -1
}

// IsAdmin reports whether the user holds the admin role.
func (r ResolvedRole) IsAdmin() bool { return r.Has(RoleAdmin) }

// IsManager reports whether the user holds the manager role.
func (r ResolvedRole) IsManager() bool { return r.Has(RoleManager) }

// IsProjectLead reports whether the user holds the project_lead role.
func (r ResolvedRole) IsProjectLead() bool { return r.Has(RoleProjectLead) }

// IsMember reports whether the user holds the member role.
func (r ResolvedRole) IsMember() bool { return r.Has(RoleMember) }
