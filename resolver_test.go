package portier

import (
	"testing"

	"github.com/portier-io/portier/assignment"
	"github.com/portier-io/portier/id"
	"github.com/portier-io/portier/orgunit"
)

func TestAccessibleEntitiesAdmin(t *testing.T) {
	f := newFixture()
	tree := f.tree(t)

	set := AccessibleEntities(ResolveRoles([]string{"admin"}), &assignment.Snapshot{}, tree)
	if set.Len() != tree.Len() {
		t.Fatalf("admin should see the whole tree: %d != %d", set.Len(), tree.Len())
	}
}

func TestAccessibleEntitiesNonManager(t *testing.T) {
	f := newFixture()
	tree := f.tree(t)

	snap := &assignment.Snapshot{
		Paths: []*assignment.Path{{UserID: id.NewUserID(), PoleID: f.p1.ID}},
	}

	for _, labels := range [][]string{nil, {"member"}, {"project_lead"}, {"time_tracker"}} {
		set := AccessibleEntities(ResolveRoles(labels), snap, tree)
		if set.Len() != 0 {
			t.Fatalf("labels %v should resolve to an empty set, got %d units", labels, set.Len())
		}
	}
}

func TestAccessibleEntitiesDirect(t *testing.T) {
	f := newFixture()
	tree := f.tree(t)
	role := ResolveRoles([]string{"manager"})

	// A direct service grant covers exactly that service.
	snap := &assignment.Snapshot{
		Direct: []*assignment.Direct{
			{UnitKind: orgunit.KindService, UnitID: f.s1.ID},
		},
	}
	set := AccessibleEntities(role, snap, tree)
	if set.Len() != 1 || !set.ContainsService(f.s1.ID) {
		t.Fatalf("direct service grant: expected exactly s1, got %d units", set.Len())
	}

	// A direct pole grant does not expand to descendants.
	snap = &assignment.Snapshot{
		Direct: []*assignment.Direct{
			{UnitKind: orgunit.KindPole, UnitID: f.p1.ID},
		},
	}
	set = AccessibleEntities(role, snap, tree)
	if set.Len() != 1 || !set.ContainsPole(f.p1.ID) {
		t.Fatalf("direct pole grant: expected exactly p1, got %d units", set.Len())
	}

	// A dangling direct grant contributes nothing.
	snap = &assignment.Snapshot{
		Direct: []*assignment.Direct{
			{UnitKind: orgunit.KindService, UnitID: id.NewServiceID()},
		},
	}
	set = AccessibleEntities(role, snap, tree)
	if set.Len() != 0 {
		t.Fatalf("dangling direct grant: expected empty set, got %d units", set.Len())
	}
}

func TestAccessibleEntitiesPath(t *testing.T) {
	f := newFixture()
	tree := f.tree(t)
	role := ResolveRoles([]string{"manager"})

	// A pole-only path covers the whole subtree.
	snap := &assignment.Snapshot{
		Paths: []*assignment.Path{{PoleID: f.p1.ID}},
	}
	set := AccessibleEntities(role, snap, tree)
	if !set.ContainsPole(f.p1.ID) || !set.ContainsDirection(f.d2.ID) || !set.ContainsService(f.s3.ID) {
		t.Fatal("pole path should cover every descendant")
	}
	if set.ContainsPole(f.p2.ID) || set.ContainsDirection(f.d3.ID) {
		t.Fatal("pole path should not leak into a sibling pole")
	}

	// Pole plus direction narrows to the direction's subtree.
	snap = &assignment.Snapshot{
		Paths: []*assignment.Path{{PoleID: f.p1.ID, DirectionID: f.d1.ID}},
	}
	set = AccessibleEntities(role, snap, tree)
	if set.ContainsPole(f.p1.ID) {
		t.Fatal("direction path should not include the pole itself")
	}
	if !set.ContainsService(f.s1.ID) || !set.ContainsService(f.s2.ID) {
		t.Fatal("direction path should include its services")
	}
	if set.ContainsService(f.s3.ID) {
		t.Fatal("direction path should not include a sibling direction's service")
	}

	// All three components narrow to exactly the service.
	snap = &assignment.Snapshot{
		Paths: []*assignment.Path{{PoleID: f.p1.ID, DirectionID: f.d1.ID, ServiceID: f.s2.ID}},
	}
	set = AccessibleEntities(role, snap, tree)
	if set.Len() != 1 || !set.ContainsService(f.s2.ID) {
		t.Fatalf("service path: expected exactly s2, got %d units", set.Len())
	}
}

func TestAccessibleEntitiesMergesGrants(t *testing.T) {
	f := newFixture()
	tree := f.tree(t)
	role := ResolveRoles([]string{"manager"})

	snap := &assignment.Snapshot{
		Direct: []*assignment.Direct{
			{UnitKind: orgunit.KindDirection, UnitID: f.d3.ID},
		},
		Paths: []*assignment.Path{
			{PoleID: f.p1.ID, DirectionID: f.d1.ID},
			{PoleID: f.p1.ID, DirectionID: f.d1.ID},
		},
	}
	set := AccessibleEntities(role, snap, tree)
	if !set.ContainsDirection(f.d3.ID) || !set.ContainsDirection(f.d1.ID) {
		t.Fatal("expected union of direct and path grants")
	}
	// Repeating a grant changes nothing.
	if len(set.Directions) != 2 || len(set.Services) != 2 {
		t.Fatalf("expected 2 directions and 2 services, got %d/%d", len(set.Directions), len(set.Services))
	}
}

func TestCanAccessProjectOrg(t *testing.T) {
	f := newFixture()
	tree := f.tree(t)

	manager := ResolveRoles([]string{"manager"})
	snap := &assignment.Snapshot{
		Paths: []*assignment.Path{{PoleID: f.p1.ID}},
	}

	// A project placed at s1 resolves ancestors d1 and p1; the pole grant
	// covers it.
	if !CanAccessProjectOrg(manager, snap, tree, ProjectOrg{ServiceID: f.s1.ID}) {
		t.Fatal("pole-scoped manager should reach a service under the pole")
	}

	// A sibling pole's subtree stays out of reach.
	if CanAccessProjectOrg(manager, snap, tree, ProjectOrg{DirectionID: f.d3.ID}) {
		t.Fatal("manager should not reach a sibling pole's direction")
	}

	// A zero placement is never resolvable through the tree.
	if CanAccessProjectOrg(manager, snap, tree, ProjectOrg{}) {
		t.Fatal("unplaced projects are out of org-tree scope")
	}

	// An orphaned placement grants nothing.
	if CanAccessProjectOrg(manager, snap, tree, ProjectOrg{ServiceID: id.NewServiceID()}) {
		t.Fatal("orphaned placement should be denied")
	}

	// Admins pass regardless of placement and assignments.
	admin := ResolveRoles([]string{"admin"})
	if !CanAccessProjectOrg(admin, nil, tree, ProjectOrg{}) {
		t.Fatal("admin should always pass")
	}
}
