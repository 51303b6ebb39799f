package portier

import (
	"github.com/portier-io/portier/assignment"
	"github.com/portier-io/portier/orgunit"
)

// AccessibleEntities computes the closed set of organizational units a
// user can access, given their resolved role, assignment snapshot, and a
// tree snapshot. Pure: no I/O, no shared state, safe to call
// concurrently with different snapshots.
//
// Admins see the whole tree regardless of assignments. Managers are the
// only role whose org-level visibility is assignment-driven; every other
// role gets empty sets (project-lead and member visibility is decided
// per-project by the evaluator, not through the org tree).
func AccessibleEntities(role ResolvedRole, snap *assignment.Snapshot, tree *Tree) AccessSet {
	if role.IsAdmin() {
		return tree.All()
	}
	if !role.IsManager() {
		return NewAccessSet()
	}

	set := NewAccessSet()

	if snap == nil {
		return set
	}

	// Direct assignments name exactly one unit, no descendant expansion.
	// A dangling reference contributes nothing: the named unit is absent
	// from the snapshot, so lookups against the set can never match it.
	for _, d := range snap.Direct {
		if tree.Unit(d.UnitKind, d.UnitID) == nil {
			continue
		}
		key := d.UnitID.String()
		switch d.UnitKind {
		case orgunit.KindPole:
			set.Poles[key] = struct{}{}
		case orgunit.KindDirection:
			set.Directions[key] = struct{}{}
		case orgunit.KindService:
			set.Services[key] = struct{}{}
		}
	}

	// Path assignments expand to the full subtree of their most specific
	// level. Descendants of a dangling reference is the empty set.
	for _, p := range snap.Paths {
		ref := p.MostSpecific()
		set.Merge(tree.Descendants(ref.Kind, ref.ID))
	}

	return set
}

// CanAccessProjectOrg answers the point query: can this user see a
// project placed at org? The placement is ancestor-resolved first, then
// intersected per tier with the accessible set. Admins always pass.
//
// A placement with all tiers nil is not resolvable through the org tree;
// the caller must fall back to ownership and membership checks — this
// returns false, not an error. An orphaned placement
// (referencing units deleted from the snapshot) likewise grants nothing.
func CanAccessProjectOrg(role ResolvedRole, snap *assignment.Snapshot, tree *Tree, org ProjectOrg) bool {
	if role.IsAdmin() {
		return true
	}
	if org.IsZero() {
		return false
	}

	resolved, err := tree.Ancestors(org)
	if err != nil {
		return false
	}

	set := AccessibleEntities(role, snap, tree)
	if !resolved.PoleID.IsNil() && set.ContainsPole(resolved.PoleID) {
		return true
	}
	if !resolved.DirectionID.IsNil() && set.ContainsDirection(resolved.DirectionID) {
		return true
	}
	if !resolved.ServiceID.IsNil() && set.ContainsService(resolved.ServiceID) {
		return true
	}
	return false
}
