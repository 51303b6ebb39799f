package portier

import (
	"strings"

	"github.com/portier-io/portier/id"
	"github.com/portier-io/portier/profile"
	"github.com/portier-io/portier/project"
)

// ProjectEvalInput is everything project permission evaluation needs,
// already loaded. Evaluation itself performs no I/O and never fails;
// load failures upstream must be surfaced by the caller as no access,
// never reach the evaluator as partial state.
type ProjectEvalInput struct {
	// User is the requesting user's profile. May be nil (unknown user);
	// identity-based rules then never match.
	User *profile.Profile

	// Role is the user's resolved role set.
	Role ResolvedRole

	// Accessible is the user's org-unit visibility, from AccessibleEntities.
	Accessible AccessSet

	// Org is the project's ancestor-resolved placement. Zero when the
	// project has no placement or the placement is orphaned.
	Org ProjectOrg

	// Project carries ownership and manager facts. Required.
	Project *project.Project

	// IsMember reports whether the user is a recorded project member.
	IsMember bool
}

// EvaluateProject computes the per-project capability flags. Pure.
//
// The recorded project manager gains manager-equivalent rights on that
// one project regardless of their role set: identity beats role. Delete
// stays admin/manager-identity only — an org-scoped manager can edit a
// project it covers but never delete it. Members-management likewise
// excludes org-scoped managers; tasks and risks include them.
func EvaluateProject(in ProjectEvalInput) Capabilities {
	admin := in.Role.IsAdmin()
	pm := isProjectManager(in.User, in.Project)
	owner := isProjectOwner(in.User, in.Project)
	managerInScope := in.Role.IsManager() && orgIntersects(in.Accessible, in.Org)
	memberOnTeam := in.Role.IsMember() && in.IsMember

	return Capabilities{
		CanView:          admin || pm || owner || managerInScope || memberOnTeam,
		CanEdit:          admin || pm || managerInScope,
		CanDelete:        admin || pm,
		CanManageMembers: admin || pm,
		CanManageTasks:   admin || pm || managerInScope,
		CanManageRisks:   admin || pm || managerInScope,
		CanCreateReview:  admin || pm || managerInScope || memberOnTeam,
	}
}

// CanEditTask is the narrower per-task rule: admins, the recorded
// project manager, and managers may edit any task; a plain member may
// edit only tasks assigned to themselves.
func CanEditTask(in ProjectEvalInput, assigneeID id.UserID) bool {
	if in.Role.IsAdmin() || in.Role.IsManager() || isProjectManager(in.User, in.Project) {
		return true
	}
	if in.Role.IsMember() && in.User != nil && !assigneeID.IsNil() {
		return assigneeID.String() == in.User.ID.String()
	}
	return false
}

// isProjectManager is an identity match on the project's recorded
// manager, not a role: by manager ID when set, otherwise by the
// free-text manager field against the user's email or display name.
func isProjectManager(user *profile.Profile, p *project.Project) bool {
	if user == nil || p == nil {
		return false
	}
	if !p.ManagerID.IsNil() {
		return p.ManagerID.String() == user.ID.String()
	}
	name := strings.TrimSpace(p.ProjectManager)
	if name == "" {
		return false
	}
	return strings.EqualFold(name, user.Email) || strings.EqualFold(name, user.DisplayName)
}

func isProjectOwner(user *profile.Profile, p *project.Project) bool {
	if user == nil || p == nil || p.OwnerID.IsNil() {
		return false
	}
	return p.OwnerID.String() == user.ID.String()
}

func orgIntersects(set AccessSet, org ProjectOrg) bool {
	if org.IsZero() {
		return false
	}
	if !org.PoleID.IsNil() && set.ContainsPole(org.PoleID) {
		return true
	}
	if !org.DirectionID.IsNil() && set.ContainsDirection(org.DirectionID) {
		return true
	}
	if !org.ServiceID.IsNil() && set.ContainsService(org.ServiceID) {
		return true
	}
	return false
}
