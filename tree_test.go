package portier

import (
	"errors"
	"testing"

	"github.com/portier-io/portier/id"
	"github.com/portier-io/portier/orgunit"
)

// fixture is a small two-pole hierarchy used across tree and resolver
// tests:
//
//	p1 ── d1 ── s1, s2
//	   └─ d2 ── s3
//	p2 ── d3
type fixture struct {
	p1, p2, d1, d2, d3, s1, s2, s3 *orgunit.Unit
}

func newFixture() *fixture {
	f := &fixture{}
	f.p1 = &orgunit.Unit{ID: id.NewPoleID(), Kind: orgunit.KindPole, Name: "Operations"}
	f.p2 = &orgunit.Unit{ID: id.NewPoleID(), Kind: orgunit.KindPole, Name: "Technology"}
	f.d1 = &orgunit.Unit{ID: id.NewDirectionID(), Kind: orgunit.KindDirection, Name: "Logistics", ParentID: f.p1.ID}
	f.d2 = &orgunit.Unit{ID: id.NewDirectionID(), Kind: orgunit.KindDirection, Name: "Facilities", ParentID: f.p1.ID}
	f.d3 = &orgunit.Unit{ID: id.NewDirectionID(), Kind: orgunit.KindDirection, Name: "Platform", ParentID: f.p2.ID}
	f.s1 = &orgunit.Unit{ID: id.NewServiceID(), Kind: orgunit.KindService, Name: "Fleet", ParentID: f.d1.ID}
	f.s2 = &orgunit.Unit{ID: id.NewServiceID(), Kind: orgunit.KindService, Name: "Warehouse", ParentID: f.d1.ID}
	f.s3 = &orgunit.Unit{ID: id.NewServiceID(), Kind: orgunit.KindService, Name: "Maintenance", ParentID: f.d2.ID}
	return f
}

func (f *fixture) units() []*orgunit.Unit {
	return []*orgunit.Unit{f.p1, f.p2, f.d1, f.d2, f.d3, f.s1, f.s2, f.s3}
}

func (f *fixture) tree(t *testing.T) *Tree {
	t.Helper()
	tree, err := NewTree(f.units())
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

func TestNewTree(t *testing.T) {
	f := newFixture()
	tree := f.tree(t)

	if tree.Len() != 8 {
		t.Fatalf("expected 8 units, got %d", tree.Len())
	}
	if tree.Unit(orgunit.KindPole, f.p1.ID) == nil {
		t.Fatal("expected p1 in tree")
	}
	if tree.Unit(orgunit.KindService, f.s3.ID) == nil {
		t.Fatal("expected s3 in tree")
	}
	if tree.Unit(orgunit.KindPole, f.s3.ID) != nil {
		t.Fatal("service ID should not resolve as a pole")
	}
}

func TestNewTreeMalformed(t *testing.T) {
	f := newFixture()

	// Direction referencing a pole absent from the unit list.
	orphanDir := &orgunit.Unit{ID: id.NewDirectionID(), Kind: orgunit.KindDirection, Name: "Lost", ParentID: id.NewPoleID()}
	_, err := NewTree(append(f.units(), orphanDir))
	if !errors.Is(err, ErrMalformedHierarchy) {
		t.Fatalf("expected ErrMalformedHierarchy, got %v", err)
	}

	// Service parented under a pole instead of a direction.
	badSvc := &orgunit.Unit{ID: id.NewServiceID(), Kind: orgunit.KindService, Name: "Bad", ParentID: f.p1.ID}
	_, err = NewTree(append(f.units(), badSvc))
	if !errors.Is(err, ErrMalformedHierarchy) {
		t.Fatalf("expected ErrMalformedHierarchy, got %v", err)
	}

	// Unknown tier.
	weird := &orgunit.Unit{ID: id.New("pole"), Kind: orgunit.Kind("division"), Name: "Weird"}
	_, err = NewTree(append(f.units(), weird))
	if !errors.Is(err, ErrMalformedHierarchy) {
		t.Fatalf("expected ErrMalformedHierarchy, got %v", err)
	}
}

func TestTreeDescendants(t *testing.T) {
	f := newFixture()
	tree := f.tree(t)

	// Pole expands to its whole subtree.
	set := tree.Descendants(orgunit.KindPole, f.p1.ID)
	if len(set.Poles) != 1 || len(set.Directions) != 2 || len(set.Services) != 3 {
		t.Fatalf("p1 subtree: got %d/%d/%d", len(set.Poles), len(set.Directions), len(set.Services))
	}
	if !set.ContainsService(f.s3.ID) {
		t.Fatal("expected s3 under p1")
	}

	// Direction expands to itself plus its services.
	set = tree.Descendants(orgunit.KindDirection, f.d1.ID)
	if len(set.Directions) != 1 || len(set.Services) != 2 {
		t.Fatalf("d1 subtree: got %d directions, %d services", len(set.Directions), len(set.Services))
	}
	if set.ContainsService(f.s3.ID) {
		t.Fatal("s3 belongs to d2, not d1")
	}

	// Service is just itself.
	set = tree.Descendants(orgunit.KindService, f.s1.ID)
	if set.Len() != 1 || !set.ContainsService(f.s1.ID) {
		t.Fatalf("s1 subtree: got %d units", set.Len())
	}

	// Dangling reference yields an empty set.
	set = tree.Descendants(orgunit.KindPole, id.NewPoleID())
	if set.Len() != 0 {
		t.Fatalf("dangling pole: expected empty set, got %d units", set.Len())
	}
}

func TestTreeAncestors(t *testing.T) {
	f := newFixture()
	tree := f.tree(t)

	// A service implies its direction and pole.
	resolved, err := tree.Ancestors(ProjectOrg{ServiceID: f.s1.ID})
	if err != nil {
		t.Fatal(err)
	}
	if resolved.DirectionID.String() != f.d1.ID.String() {
		t.Fatalf("expected direction %s, got %s", f.d1.ID, resolved.DirectionID)
	}
	if resolved.PoleID.String() != f.p1.ID.String() {
		t.Fatalf("expected pole %s, got %s", f.p1.ID, resolved.PoleID)
	}

	// A direction implies its pole.
	resolved, err = tree.Ancestors(ProjectOrg{DirectionID: f.d3.ID})
	if err != nil {
		t.Fatal(err)
	}
	if resolved.PoleID.String() != f.p2.ID.String() {
		t.Fatalf("expected pole %s, got %s", f.p2.ID, resolved.PoleID)
	}

	// The zero placement passes through.
	resolved, err = tree.Ancestors(ProjectOrg{})
	if err != nil {
		t.Fatal(err)
	}
	if !resolved.IsZero() {
		t.Fatal("zero placement should stay zero")
	}

	// A deleted unit yields ErrOrphanedEntity.
	_, err = tree.Ancestors(ProjectOrg{ServiceID: id.NewServiceID()})
	if !errors.Is(err, ErrOrphanedEntity) {
		t.Fatalf("expected ErrOrphanedEntity, got %v", err)
	}
}

func TestTreeAll(t *testing.T) {
	f := newFixture()
	tree := f.tree(t)

	set := tree.All()
	if len(set.Poles) != 2 || len(set.Directions) != 3 || len(set.Services) != 3 {
		t.Fatalf("got %d/%d/%d", len(set.Poles), len(set.Directions), len(set.Services))
	}
}

func TestAccessSetMergeIdempotent(t *testing.T) {
	f := newFixture()
	tree := f.tree(t)

	set := NewAccessSet()
	sub := tree.Descendants(orgunit.KindPole, f.p1.ID)
	set.Merge(sub)
	before := set.Len()
	set.Merge(sub)
	if set.Len() != before {
		t.Fatalf("merge is not idempotent: %d != %d", set.Len(), before)
	}
}
