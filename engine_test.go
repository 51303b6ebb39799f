package portier_test

import (
	"context"
	"errors"
	"testing"

	"github.com/portier-io/portier"
	"github.com/portier-io/portier/assignment"
	"github.com/portier-io/portier/cache"
	"github.com/portier-io/portier/decisionlog"
	"github.com/portier-io/portier/id"
	"github.com/portier-io/portier/orgunit"
	"github.com/portier-io/portier/profile"
	"github.com/portier-io/portier/project"
	"github.com/portier-io/portier/store/memory"
)

func newTestEngine(t *testing.T, opts ...portier.Option) (*portier.Engine, *memory.Store) {
	t.Helper()
	s := memory.New()
	eng, err := portier.NewEngine(append([]portier.Option{portier.WithStore(s)}, opts...)...)
	if err != nil {
		t.Fatal(err)
	}
	return eng, s
}

// seedHierarchy creates pole → direction → service and returns the three
// units.
func seedHierarchy(t *testing.T, s *memory.Store) (pole, dir, svc *orgunit.Unit) {
	t.Helper()
	ctx := context.Background()

	pole = &orgunit.Unit{ID: id.NewPoleID(), Kind: orgunit.KindPole, Name: "Operations"}
	if err := s.CreateUnit(ctx, pole); err != nil {
		t.Fatal(err)
	}
	dir = &orgunit.Unit{ID: id.NewDirectionID(), Kind: orgunit.KindDirection, Name: "Logistics", ParentID: pole.ID}
	if err := s.CreateUnit(ctx, dir); err != nil {
		t.Fatal(err)
	}
	svc = &orgunit.Unit{ID: id.NewServiceID(), Kind: orgunit.KindService, Name: "Fleet", ParentID: dir.ID}
	if err := s.CreateUnit(ctx, svc); err != nil {
		t.Fatal(err)
	}
	return pole, dir, svc
}

func seedUser(t *testing.T, s *memory.Store, email string, labels ...string) id.UserID {
	t.Helper()
	ctx := context.Background()

	p := &profile.Profile{ID: id.NewUserID(), Email: email}
	if err := s.CreateProfile(ctx, p); err != nil {
		t.Fatal(err)
	}
	for _, l := range labels {
		if err := s.GrantRole(ctx, p.ID, l); err != nil {
			t.Fatal(err)
		}
	}
	return p.ID
}

func TestNewEngineRequiresStore(t *testing.T) {
	if _, err := portier.NewEngine(); err == nil {
		t.Fatal("expected error when store is nil")
	}
}

func TestEngineManagerFlow(t *testing.T) {
	ctx := context.Background()
	eng, s := newTestEngine(t)
	pole, _, svc := seedHierarchy(t, s)

	userID := seedUser(t, s, "manager@example.com", "manager")
	if err := s.CreatePathAssignment(ctx, &assignment.Path{
		ID:     id.NewPathAssignmentID(),
		UserID: userID,
		PoleID: pole.ID,
	}); err != nil {
		t.Fatal(err)
	}

	proj := &project.Project{ID: id.NewProjectID(), Name: "Routing", ServiceID: svc.ID, Status: project.StatusActive}
	if err := s.CreateProject(ctx, proj); err != nil {
		t.Fatal(err)
	}

	// The pole path covers the service through ancestor resolution.
	set, err := eng.AccessibleEntities(ctx, userID)
	if err != nil {
		t.Fatal(err)
	}
	if !set.ContainsService(svc.ID) {
		t.Fatal("expected service in the manager's accessible set")
	}

	dec, err := eng.ProjectCapabilities(ctx, userID, proj.ID)
	if err != nil {
		t.Fatal(err)
	}
	if dec.Decision != portier.DecisionAllow {
		t.Fatalf("expected allow, got %s (%s)", dec.Decision, dec.Reason)
	}
	if !dec.Capabilities.CanEdit || dec.Capabilities.CanDelete {
		t.Fatalf("manager capabilities wrong: %+v", dec.Capabilities)
	}

	if err := eng.Enforce(ctx, userID, proj.ID, portier.ActionEdit); err != nil {
		t.Fatal(err)
	}
	err = eng.Enforce(ctx, userID, proj.ID, portier.ActionDelete)
	if !errors.Is(err, portier.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestEngineMemberFlow(t *testing.T) {
	ctx := context.Background()
	eng, s := newTestEngine(t)
	_, _, svc := seedHierarchy(t, s)

	userID := seedUser(t, s, "member@example.com", "member")
	proj := &project.Project{ID: id.NewProjectID(), Name: "Routing", ServiceID: svc.ID}
	if err := s.CreateProject(ctx, proj); err != nil {
		t.Fatal(err)
	}

	dec, err := eng.ProjectCapabilities(ctx, userID, proj.ID)
	if err != nil {
		t.Fatal(err)
	}
	if dec.Decision != portier.DecisionDenyNotMember {
		t.Fatalf("expected deny_not_member, got %s", dec.Decision)
	}

	if err := s.AddProjectMember(ctx, &project.Member{ProjectID: proj.ID, UserID: userID}); err != nil {
		t.Fatal(err)
	}

	dec, err = eng.ProjectCapabilities(ctx, userID, proj.ID)
	if err != nil {
		t.Fatal(err)
	}
	if dec.Decision != portier.DecisionAllow || dec.Capabilities.CanEdit {
		t.Fatalf("team member should view but not edit: %s %+v", dec.Decision, dec.Capabilities)
	}
}

func TestEngineUnknownUser(t *testing.T) {
	ctx := context.Background()
	eng, s := newTestEngine(t)
	_, _, svc := seedHierarchy(t, s)

	proj := &project.Project{ID: id.NewProjectID(), Name: "Routing", ServiceID: svc.ID}
	if err := s.CreateProject(ctx, proj); err != nil {
		t.Fatal(err)
	}

	dec, err := eng.ProjectCapabilities(ctx, id.NewUserID(), proj.ID)
	if err != nil {
		t.Fatal(err)
	}
	if dec.Decision != portier.DecisionDenyNoRoles {
		t.Fatalf("expected deny_no_roles, got %s", dec.Decision)
	}
}

func TestEngineProjectManagerIdentity(t *testing.T) {
	ctx := context.Background()
	eng, s := newTestEngine(t)

	userID := seedUser(t, s, "pm@example.com")
	proj := &project.Project{ID: id.NewProjectID(), Name: "Unplaced", ProjectManager: "pm@example.com"}
	if err := s.CreateProject(ctx, proj); err != nil {
		t.Fatal(err)
	}

	// No roles, no placement: the recorded manager still controls the
	// project.
	dec, err := eng.ProjectCapabilities(ctx, userID, proj.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !dec.Capabilities.CanDelete || !dec.Capabilities.CanManageMembers {
		t.Fatalf("recorded manager should control the project: %+v", dec.Capabilities)
	}
}

func TestEngineCanEditTask(t *testing.T) {
	ctx := context.Background()
	eng, s := newTestEngine(t)
	_, _, svc := seedHierarchy(t, s)

	userID := seedUser(t, s, "member@example.com", "member")
	proj := &project.Project{ID: id.NewProjectID(), Name: "Routing", ServiceID: svc.ID}
	if err := s.CreateProject(ctx, proj); err != nil {
		t.Fatal(err)
	}
	if err := s.AddProjectMember(ctx, &project.Member{ProjectID: proj.ID, UserID: userID}); err != nil {
		t.Fatal(err)
	}

	ok, err := eng.CanEditTask(ctx, userID, proj.ID, userID)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("member should edit their own task")
	}

	ok, err = eng.CanEditTask(ctx, userID, proj.ID, id.NewUserID())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("member should not edit another user's task")
	}
}

func TestEngineFreshTreeSnapshot(t *testing.T) {
	ctx := context.Background()
	eng, s := newTestEngine(t)
	pole, _, _ := seedHierarchy(t, s)

	userID := seedUser(t, s, "manager@example.com", "manager")
	if err := s.CreatePathAssignment(ctx, &assignment.Path{
		ID:     id.NewPathAssignmentID(),
		UserID: userID,
		PoleID: pole.ID,
	}); err != nil {
		t.Fatal(err)
	}

	set, err := eng.AccessibleEntities(ctx, userID)
	if err != nil {
		t.Fatal(err)
	}
	before := set.Len()

	// A direction created after the grant appears on the next query:
	// every call rebuilds the tree from the store.
	newDir := &orgunit.Unit{ID: id.NewDirectionID(), Kind: orgunit.KindDirection, Name: "Procurement", ParentID: pole.ID}
	if err := s.CreateUnit(ctx, newDir); err != nil {
		t.Fatal(err)
	}

	set, err = eng.AccessibleEntities(ctx, userID)
	if err != nil {
		t.Fatal(err)
	}
	if set.Len() != before+1 || !set.ContainsDirection(newDir.ID) {
		t.Fatalf("expected the new direction to be visible, got %d units", set.Len())
	}
}

func TestEngineMissingProject(t *testing.T) {
	ctx := context.Background()
	eng, s := newTestEngine(t)
	userID := seedUser(t, s, "u@example.com", "admin")

	_, err := eng.ProjectCapabilities(ctx, userID, id.NewProjectID())
	if !errors.Is(err, portier.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestEngineCaching(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemory()
	eng, s := newTestEngine(t, portier.WithCache(c))
	userID := seedUser(t, s, "admin@example.com", "admin")

	proj := &project.Project{ID: id.NewProjectID(), Name: "Unplaced"}
	if err := s.CreateProject(ctx, proj); err != nil {
		t.Fatal(err)
	}

	first, err := eng.ProjectCapabilities(ctx, userID, proj.ID)
	if err != nil {
		t.Fatal(err)
	}

	// Revoke the role behind the cache's back: the stale decision is
	// served until the entry is invalidated.
	if err := s.RevokeRole(ctx, userID, "admin"); err != nil {
		t.Fatal(err)
	}

	second, err := eng.ProjectCapabilities(ctx, userID, proj.ID)
	if err != nil {
		t.Fatal(err)
	}
	if second.Capabilities != first.Capabilities {
		t.Fatal("expected the cached decision to be served")
	}

	c.InvalidateUser(ctx, userID)

	third, err := eng.ProjectCapabilities(ctx, userID, proj.ID)
	if err != nil {
		t.Fatal(err)
	}
	if third.Capabilities.CanView {
		t.Fatal("expected re-evaluation after invalidation")
	}
}

func TestEngineCacheHitReturnsCopy(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemory()
	eng, s := newTestEngine(t, portier.WithCache(c))
	userID := seedUser(t, s, "admin@example.com", "admin")

	proj := &project.Project{ID: id.NewProjectID(), Name: "Unplaced"}
	if err := s.CreateProject(ctx, proj); err != nil {
		t.Fatal(err)
	}

	if _, err := eng.ProjectCapabilities(ctx, userID, proj.ID); err != nil {
		t.Fatal(err)
	}
	stored, ok := c.Get(ctx, userID, proj.ID)
	if !ok {
		t.Fatal("expected the decision to be cached")
	}
	storedEvalTime := stored.EvalTimeNs

	// A hit must not stamp timing through the shared cached pointer.
	hit, err := eng.ProjectCapabilities(ctx, userID, proj.ID)
	if err != nil {
		t.Fatal(err)
	}
	if hit == stored {
		t.Fatal("cache hit should return a copy, not the stored entry")
	}
	if stored.EvalTimeNs != storedEvalTime {
		t.Fatal("cache hit mutated the stored entry")
	}
}

func TestEngineDecisionLogging(t *testing.T) {
	ctx := context.Background()
	eng, s := newTestEngine(t, portier.WithConfig(portier.Config{LogDecisions: true}))
	userID := seedUser(t, s, "admin@example.com", "admin")

	proj := &project.Project{ID: id.NewProjectID(), Name: "Unplaced"}
	if err := s.CreateProject(ctx, proj); err != nil {
		t.Fatal(err)
	}

	if _, err := eng.ProjectCapabilities(ctx, userID, proj.ID); err != nil {
		t.Fatal(err)
	}

	entries, err := s.ListDecisionLogs(ctx, &decisionlog.QueryFilter{UserID: &userID})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 decision log entry, got %d", len(entries))
	}
	if entries[0].Decision != string(portier.DecisionAllow) {
		t.Fatalf("expected an allow entry, got %s", entries[0].Decision)
	}
}

func TestEngineStaleAssignmentAfterUnitDelete(t *testing.T) {
	ctx := context.Background()
	eng, s := newTestEngine(t)
	_, _, svc := seedHierarchy(t, s)

	userID := seedUser(t, s, "manager@example.com", "manager")
	if err := s.CreateDirectAssignment(ctx, &assignment.Direct{
		ID:       id.NewDirectAssignmentID(),
		UserID:   userID,
		UnitKind: orgunit.KindService,
		UnitID:   svc.ID,
	}); err != nil {
		t.Fatal(err)
	}

	set, err := eng.AccessibleEntities(ctx, userID)
	if err != nil {
		t.Fatal(err)
	}
	if !set.ContainsService(svc.ID) {
		t.Fatal("expected the granted service to be visible")
	}

	// Delete the unit but leave the assignment in place: the dangling
	// grant contributes nothing to the fresh snapshot.
	if err := s.DeleteUnit(ctx, svc.ID); err != nil {
		t.Fatal(err)
	}

	set, err = eng.AccessibleEntities(ctx, userID)
	if err != nil {
		t.Fatal(err)
	}
	if set.Len() != 0 {
		t.Fatalf("dangling grant should be ignored, got %d units", set.Len())
	}
}
