package portier

import (
	"testing"

	"github.com/portier-io/portier/assignment"
	"github.com/portier-io/portier/id"
	"github.com/portier-io/portier/profile"
	"github.com/portier-io/portier/project"
)

func TestEvaluateProjectAdmin(t *testing.T) {
	caps := EvaluateProject(ProjectEvalInput{
		Role:    ResolveRoles([]string{"admin"}),
		Project: &project.Project{ID: id.NewProjectID()},
	})
	if !caps.CanView || !caps.CanEdit || !caps.CanDelete || !caps.CanManageMembers ||
		!caps.CanManageTasks || !caps.CanManageRisks || !caps.CanCreateReview {
		t.Fatalf("admin should hold every capability: %+v", caps)
	}
}

func TestEvaluateProjectManagerInScope(t *testing.T) {
	f := newFixture()
	tree := f.tree(t)
	role := ResolveRoles([]string{"manager"})
	snap := &assignment.Snapshot{Paths: []*assignment.Path{{PoleID: f.p1.ID}}}

	org, err := tree.Ancestors(ProjectOrg{ServiceID: f.s1.ID})
	if err != nil {
		t.Fatal(err)
	}

	caps := EvaluateProject(ProjectEvalInput{
		Role:       role,
		Accessible: AccessibleEntities(role, snap, tree),
		Org:        org,
		Project:    &project.Project{ID: id.NewProjectID(), ServiceID: f.s1.ID},
	})

	if !caps.CanView || !caps.CanEdit || !caps.CanManageTasks || !caps.CanManageRisks || !caps.CanCreateReview {
		t.Fatalf("in-scope manager capabilities wrong: %+v", caps)
	}
	// Scope never grants delete or member management.
	if caps.CanDelete || caps.CanManageMembers {
		t.Fatalf("org-scoped manager must not delete or manage members: %+v", caps)
	}
}

func TestEvaluateProjectManagerOutOfScope(t *testing.T) {
	f := newFixture()
	tree := f.tree(t)
	role := ResolveRoles([]string{"manager"})
	snap := &assignment.Snapshot{Paths: []*assignment.Path{{PoleID: f.p2.ID}}}

	org, err := tree.Ancestors(ProjectOrg{ServiceID: f.s1.ID})
	if err != nil {
		t.Fatal(err)
	}

	caps := EvaluateProject(ProjectEvalInput{
		Role:       role,
		Accessible: AccessibleEntities(role, snap, tree),
		Org:        org,
		Project:    &project.Project{ID: id.NewProjectID(), ServiceID: f.s1.ID},
	})

	if caps.CanView || caps.CanEdit {
		t.Fatalf("out-of-scope manager should hold nothing: %+v", caps)
	}
}

func TestEvaluateProjectManagerIdentityOverride(t *testing.T) {
	user := &profile.Profile{ID: id.NewUserID(), Email: "claire@example.com", DisplayName: "Claire Martin"}

	// Recorded by manager ID: full project control regardless of roles.
	p := &project.Project{ID: id.NewProjectID(), ManagerID: user.ID}
	caps := EvaluateProject(ProjectEvalInput{User: user, Project: p})
	if !caps.CanView || !caps.CanEdit || !caps.CanDelete || !caps.CanManageMembers {
		t.Fatalf("recorded manager with no roles should control the project: %+v", caps)
	}

	// Recorded by free-text email, case-insensitive.
	p = &project.Project{ID: id.NewProjectID(), ProjectManager: "CLAIRE@example.COM"}
	caps = EvaluateProject(ProjectEvalInput{User: user, Role: ResolveRoles([]string{"member"}), Project: p})
	if !caps.CanEdit || !caps.CanDelete {
		t.Fatalf("free-text email match should grant manager rights: %+v", caps)
	}

	// Recorded by display name.
	p = &project.Project{ID: id.NewProjectID(), ProjectManager: "claire martin"}
	caps = EvaluateProject(ProjectEvalInput{User: user, Project: p})
	if !caps.CanEdit {
		t.Fatalf("display name match should grant manager rights: %+v", caps)
	}

	// A set manager ID beats the free-text field: no fallback matching.
	p = &project.Project{ID: id.NewProjectID(), ManagerID: id.NewUserID(), ProjectManager: "claire@example.com"}
	caps = EvaluateProject(ProjectEvalInput{User: user, Project: p})
	if caps.CanEdit {
		t.Fatalf("manager ID mismatch should not fall back to free text: %+v", caps)
	}
}

func TestEvaluateProjectOwner(t *testing.T) {
	user := &profile.Profile{ID: id.NewUserID(), Email: "o@example.com"}
	p := &project.Project{ID: id.NewProjectID(), OwnerID: user.ID}

	caps := EvaluateProject(ProjectEvalInput{User: user, Project: p})
	if !caps.CanView {
		t.Fatal("owner should at least view the project")
	}
	if caps.CanEdit || caps.CanDelete {
		t.Fatalf("ownership alone should not grant edit or delete: %+v", caps)
	}
}

func TestEvaluateProjectMember(t *testing.T) {
	user := &profile.Profile{ID: id.NewUserID()}
	p := &project.Project{ID: id.NewProjectID()}
	role := ResolveRoles([]string{"member"})

	// On the team.
	caps := EvaluateProject(ProjectEvalInput{User: user, Role: role, Project: p, IsMember: true})
	if !caps.CanView || !caps.CanCreateReview {
		t.Fatalf("team member should view and create reviews: %+v", caps)
	}
	if caps.CanEdit || caps.CanDelete || caps.CanManageMembers || caps.CanManageTasks {
		t.Fatalf("team member should not edit or manage: %+v", caps)
	}

	// Not on the team.
	caps = EvaluateProject(ProjectEvalInput{User: user, Role: role, Project: p, IsMember: false})
	if caps.CanView {
		t.Fatalf("member off the team should see nothing: %+v", caps)
	}
}

func TestEvaluateProjectNoRoles(t *testing.T) {
	caps := EvaluateProject(ProjectEvalInput{
		User:    &profile.Profile{ID: id.NewUserID()},
		Project: &project.Project{ID: id.NewProjectID()},
	})
	if caps != (Capabilities{}) {
		t.Fatalf("no roles and no identity facts should grant nothing: %+v", caps)
	}
}

func TestCanEditTask(t *testing.T) {
	user := &profile.Profile{ID: id.NewUserID()}
	p := &project.Project{ID: id.NewProjectID()}
	other := id.NewUserID()

	// Admins and managers edit any task.
	if !CanEditTask(ProjectEvalInput{User: user, Role: ResolveRoles([]string{"admin"}), Project: p}, other) {
		t.Fatal("admin should edit any task")
	}
	if !CanEditTask(ProjectEvalInput{User: user, Role: ResolveRoles([]string{"manager"}), Project: p}, other) {
		t.Fatal("manager should edit any task")
	}

	// The recorded project manager edits any task.
	pm := &project.Project{ID: id.NewProjectID(), ManagerID: user.ID}
	if !CanEditTask(ProjectEvalInput{User: user, Project: pm}, other) {
		t.Fatal("recorded manager should edit any task")
	}

	// A plain member edits only their own tasks.
	memberIn := ProjectEvalInput{User: user, Role: ResolveRoles([]string{"member"}), Project: p, IsMember: true}
	if !CanEditTask(memberIn, user.ID) {
		t.Fatal("member should edit their own task")
	}
	if CanEditTask(memberIn, other) {
		t.Fatal("member should not edit another user's task")
	}
	if CanEditTask(memberIn, id.Nil) {
		t.Fatal("unassigned tasks are not self-editable")
	}
}

func TestCapabilitiesAllows(t *testing.T) {
	caps := Capabilities{CanView: true, CanManageRisks: true}

	allowed, err := caps.Allows(ActionView)
	if err != nil || !allowed {
		t.Fatalf("view: allowed=%v err=%v", allowed, err)
	}
	allowed, err = caps.Allows(ActionDelete)
	if err != nil || allowed {
		t.Fatalf("delete: allowed=%v err=%v", allowed, err)
	}
	if _, err = caps.Allows(Action("transmogrify")); err == nil {
		t.Fatal("expected ErrUnknownAction")
	}
}
