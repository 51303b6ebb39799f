package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/portier-io/portier"
	"github.com/portier-io/portier/assignment"
	"github.com/portier-io/portier/decisionlog"
	"github.com/portier-io/portier/id"
	"github.com/portier-io/portier/orgunit"
	"github.com/portier-io/portier/profile"
	"github.com/portier-io/portier/project"
	"github.com/portier-io/portier/store"
)

// Compile-time check that *Store implements store.Store.
var _ store.Store = (*Store)(nil)

func TestUnitCRUD(t *testing.T) {
	ctx := context.Background()
	s := New()

	pole := &orgunit.Unit{
		ID:   id.NewPoleID(),
		Kind: orgunit.KindPole,
		Name: "Operations",
	}

	// Create
	if err := s.CreateUnit(ctx, pole); err != nil {
		t.Fatal(err)
	}

	// Get
	got, err := s.GetUnit(ctx, pole.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Operations" {
		t.Fatalf("expected Operations, got %s", got.Name)
	}

	// Update
	pole.Name = "Field Operations"
	if err := s.UpdateUnit(ctx, pole); err != nil {
		t.Fatal(err)
	}
	got, _ = s.GetUnit(ctx, pole.ID)
	if got.Name != "Field Operations" {
		t.Fatal("update failed")
	}

	// List
	list, _ := s.ListUnits(ctx, &orgunit.ListFilter{Kind: orgunit.KindPole})
	if len(list) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(list))
	}

	// Count
	count, _ := s.CountUnits(ctx, &orgunit.ListFilter{Kind: orgunit.KindPole})
	if count != 1 {
		t.Fatalf("expected count 1, got %d", count)
	}

	// Delete
	if err := s.DeleteUnit(ctx, pole.ID); err != nil {
		t.Fatal(err)
	}
	_, err = s.GetUnit(ctx, pole.ID)
	if !errors.Is(err, portier.ErrUnitNotFound) {
		t.Fatalf("expected ErrUnitNotFound after delete, got %v", err)
	}
}

func TestUnitParentValidation(t *testing.T) {
	ctx := context.Background()
	s := New()

	pole := &orgunit.Unit{ID: id.NewPoleID(), Kind: orgunit.KindPole, Name: "P"}
	if err := s.CreateUnit(ctx, pole); err != nil {
		t.Fatal(err)
	}

	// A direction parented under a missing unit is rejected.
	orphan := &orgunit.Unit{
		ID:       id.NewDirectionID(),
		Kind:     orgunit.KindDirection,
		Name:     "D",
		ParentID: id.NewPoleID(),
	}
	if err := s.CreateUnit(ctx, orphan); !errors.Is(err, portier.ErrInvalidParent) {
		t.Fatalf("expected ErrInvalidParent, got %v", err)
	}

	// A service parented under a pole is the wrong tier.
	wrongTier := &orgunit.Unit{
		ID:       id.NewServiceID(),
		Kind:     orgunit.KindService,
		Name:     "S",
		ParentID: pole.ID,
	}
	if err := s.CreateUnit(ctx, wrongTier); !errors.Is(err, portier.ErrInvalidParent) {
		t.Fatalf("expected ErrInvalidParent, got %v", err)
	}

	dir := &orgunit.Unit{
		ID:       id.NewDirectionID(),
		Kind:     orgunit.KindDirection,
		Name:     "D",
		ParentID: pole.ID,
	}
	if err := s.CreateUnit(ctx, dir); err != nil {
		t.Fatal(err)
	}

	children, _ := s.ListChildren(ctx, pole.ID)
	if len(children) != 1 || children[0].ID != dir.ID {
		t.Fatalf("expected the direction as sole child, got %d", len(children))
	}
}

func TestAssignmentStore(t *testing.T) {
	ctx := context.Background()
	s := New()

	pole := &orgunit.Unit{ID: id.NewPoleID(), Kind: orgunit.KindPole, Name: "P"}
	if err := s.CreateUnit(ctx, pole); err != nil {
		t.Fatal(err)
	}

	userID := id.NewUserID()
	direct := &assignment.Direct{
		ID:       id.NewDirectAssignmentID(),
		UserID:   userID,
		UnitKind: orgunit.KindPole,
		UnitID:   pole.ID,
	}
	if err := s.CreateDirectAssignment(ctx, direct); err != nil {
		t.Fatal(err)
	}

	// Same user, same unit is a duplicate.
	dup := &assignment.Direct{
		ID:       id.NewDirectAssignmentID(),
		UserID:   userID,
		UnitKind: orgunit.KindPole,
		UnitID:   pole.ID,
	}
	if err := s.CreateDirectAssignment(ctx, dup); !errors.Is(err, portier.ErrDuplicateAssignment) {
		t.Fatalf("expected ErrDuplicateAssignment, got %v", err)
	}

	path := &assignment.Path{
		ID:     id.NewPathAssignmentID(),
		UserID: userID,
		PoleID: pole.ID,
	}
	if err := s.CreatePathAssignment(ctx, path); err != nil {
		t.Fatal(err)
	}

	snap, err := s.LoadSnapshot(ctx, userID)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Direct) != 1 || len(snap.Paths) != 1 {
		t.Fatalf("expected 1 direct and 1 path, got %d/%d", len(snap.Direct), len(snap.Paths))
	}

	// Snapshot of an unknown user is empty, not an error.
	empty, err := s.LoadSnapshot(ctx, id.NewUserID())
	if err != nil {
		t.Fatal(err)
	}
	if len(empty.Direct) != 0 || len(empty.Paths) != 0 {
		t.Fatal("expected empty snapshot for unknown user")
	}

	// Deleting the unit's assignments clears both kinds.
	if err := s.DeleteAssignmentsByUnit(ctx, pole.ID); err != nil {
		t.Fatal(err)
	}
	snap, _ = s.LoadSnapshot(ctx, userID)
	if len(snap.Direct) != 0 || len(snap.Paths) != 0 {
		t.Fatal("expected assignments gone after unit cleanup")
	}
}

func TestProjectStore(t *testing.T) {
	ctx := context.Background()
	s := New()

	owner := id.NewUserID()
	p := &project.Project{
		ID:      id.NewProjectID(),
		Name:    "Migration",
		OwnerID: owner,
		Status:  project.StatusActive,
	}
	if err := s.CreateProject(ctx, p); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetProject(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Migration" {
		t.Fatal("mismatch")
	}

	member := id.NewUserID()
	if err := s.AddProjectMember(ctx, &project.Member{ProjectID: p.ID, UserID: member}); err != nil {
		t.Fatal(err)
	}
	if err := s.AddProjectMember(ctx, &project.Member{ProjectID: p.ID, UserID: member}); !errors.Is(err, portier.ErrDuplicateMember) {
		t.Fatalf("expected ErrDuplicateMember, got %v", err)
	}

	ok, err := s.IsProjectMember(ctx, p.ID, member)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected membership")
	}

	projects, _ := s.ListProjectsForMember(ctx, member)
	if len(projects) != 1 || projects[0] != p.ID {
		t.Fatal("member project lookup mismatch")
	}

	list, _ := s.ListProjects(ctx, &project.ListFilter{OwnerID: &owner})
	if len(list) != 1 {
		t.Fatalf("expected 1 project, got %d", len(list))
	}

	// Deleting the project drops its membership records too.
	if err := s.DeleteProject(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	ok, _ = s.IsProjectMember(ctx, p.ID, member)
	if ok {
		t.Fatal("expected membership gone after project delete")
	}
}

func TestProfileStore(t *testing.T) {
	ctx := context.Background()
	s := New()

	p := &profile.Profile{
		ID:          id.NewUserID(),
		Email:       "marie@example.com",
		DisplayName: "Marie Dupont",
	}
	if err := s.CreateProfile(ctx, p); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetProfileByEmail(ctx, "MARIE@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != p.ID {
		t.Fatal("email lookup mismatch")
	}

	if err := s.GrantRole(ctx, p.ID, "manager"); err != nil {
		t.Fatal(err)
	}
	// Granting an already-held label is a no-op.
	if err := s.GrantRole(ctx, p.ID, "manager"); err != nil {
		t.Fatal(err)
	}
	if err := s.GrantRole(ctx, p.ID, "member"); err != nil {
		t.Fatal(err)
	}

	labels, err := s.ListRoleLabels(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(labels) != 2 {
		t.Fatalf("expected 2 labels, got %d", len(labels))
	}

	// Labels for an unknown user are empty, not an error.
	labels, err = s.ListRoleLabels(ctx, id.NewUserID())
	if err != nil {
		t.Fatal(err)
	}
	if len(labels) != 0 {
		t.Fatal("expected no labels for unknown user")
	}

	if err := s.RevokeRole(ctx, p.ID, "manager"); err != nil {
		t.Fatal(err)
	}
	labels, _ = s.ListRoleLabels(ctx, p.ID)
	if len(labels) != 1 || labels[0] != "member" {
		t.Fatalf("expected only member left, got %v", labels)
	}

	filtered, _ := s.ListProfiles(ctx, &profile.ListFilter{Role: "member"})
	if len(filtered) != 1 {
		t.Fatalf("expected 1 profile with member label, got %d", len(filtered))
	}

	if err := s.DeleteProfile(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	_, err = s.GetProfile(ctx, p.ID)
	if !errors.Is(err, portier.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestDecisionLogStore(t *testing.T) {
	ctx := context.Background()
	s := New()

	userID := id.NewUserID()
	old := &decisionlog.Entry{
		ID:        id.NewDecisionLogID(),
		UserID:    userID,
		Action:    "view",
		Decision:  "allow",
		CreatedAt: time.Now().Add(-48 * time.Hour),
	}
	recent := &decisionlog.Entry{
		ID:        id.NewDecisionLogID(),
		UserID:    userID,
		Action:    "delete",
		Decision:  "deny_default",
		CreatedAt: time.Now(),
	}
	if err := s.CreateDecisionLog(ctx, old); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateDecisionLog(ctx, recent); err != nil {
		t.Fatal(err)
	}

	list, err := s.ListDecisionLogs(ctx, &decisionlog.QueryFilter{UserID: &userID})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(list))
	}
	if list[0].ID != recent.ID {
		t.Fatal("expected newest entry first")
	}

	denied, _ := s.ListDecisionLogs(ctx, &decisionlog.QueryFilter{Decision: "deny_default"})
	if len(denied) != 1 {
		t.Fatalf("expected 1 denied entry, got %d", len(denied))
	}

	purged, err := s.PurgeDecisionLogs(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if purged != 1 {
		t.Fatalf("expected 1 purged entry, got %d", purged)
	}
	count, _ := s.CountDecisionLogs(ctx, nil)
	if count != 1 {
		t.Fatalf("expected 1 remaining entry, got %d", count)
	}
}
