package portier

import (
	"fmt"

	"github.com/portier-io/portier/id"
	"github.com/portier-io/portier/orgunit"
)

// Tree is an immutable in-memory snapshot of the Pole → Direction →
// Service hierarchy. It is built once from a flat unit list and never
// mutated; concurrent readers are safe. Staleness is bounded by how
// often the caller rebuilds from a fresh fetch.
type Tree struct {
	poles      map[string]*orgunit.Unit
	directions map[string]*orgunit.Unit
	services   map[string]*orgunit.Unit

	directionsByPole    map[string][]*orgunit.Unit
	servicesByDirection map[string][]*orgunit.Unit
}

// NewTree builds a hierarchy snapshot from a flat unit list. It fails
// with ErrMalformedHierarchy if any direction or service references a
// parent that is missing or of the wrong tier; a malformed unit must
// abort the build, never be silently dropped.
func NewTree(units []*orgunit.Unit) (*Tree, error) {
	t := &Tree{
		poles:               make(map[string]*orgunit.Unit),
		directions:          make(map[string]*orgunit.Unit),
		services:            make(map[string]*orgunit.Unit),
		directionsByPole:    make(map[string][]*orgunit.Unit),
		servicesByDirection: make(map[string][]*orgunit.Unit),
	}

	for _, u := range units {
		switch u.Kind {
		case orgunit.KindPole:
			t.poles[u.ID.String()] = u
		case orgunit.KindDirection:
			t.directions[u.ID.String()] = u
		case orgunit.KindService:
			t.services[u.ID.String()] = u
		default:
			return nil, fmt.Errorf("unit %s has unknown kind %q: %w", u.ID, u.Kind, ErrMalformedHierarchy)
		}
	}

	for _, d := range t.directions {
		if _, ok := t.poles[d.ParentID.String()]; !ok {
			return nil, fmt.Errorf("direction %s references missing pole %s: %w", d.ID, d.ParentID, ErrMalformedHierarchy)
		}
		t.directionsByPole[d.ParentID.String()] = append(t.directionsByPole[d.ParentID.String()], d)
	}
	for _, s := range t.services {
		if _, ok := t.directions[s.ParentID.String()]; !ok {
			return nil, fmt.Errorf("service %s references missing direction %s: %w", s.ID, s.ParentID, ErrMalformedHierarchy)
		}
		t.servicesByDirection[s.ParentID.String()] = append(t.servicesByDirection[s.ParentID.String()], s)
	}

	return t, nil
}

// Len returns the total number of units in the snapshot.
func (t *Tree) Len() int {
	return len(t.poles) + len(t.directions) + len(t.services)
}

// Unit looks up a unit of the given tier, or nil if absent.
func (t *Tree) Unit(kind orgunit.Kind, unitID id.ID) *orgunit.Unit {
	switch kind {
	case orgunit.KindPole:
		return t.poles[unitID.String()]
	case orgunit.KindDirection:
		return t.directions[unitID.String()]
	case orgunit.KindService:
		return t.services[unitID.String()]
	default:
		return nil
	}
}

// Descendants returns the unit itself plus every unit transitively
// beneath it. A service returns just itself. A dangling reference (the
// unit is absent from this snapshot) returns an empty set rather than
// failing: assignments pointing at deleted units silently grant nothing.
func (t *Tree) Descendants(kind orgunit.Kind, unitID id.ID) AccessSet {
	set := NewAccessSet()
	key := unitID.String()

	switch kind {
	case orgunit.KindPole:
		if _, ok := t.poles[key]; !ok {
			return set
		}
		set.Poles[key] = struct{}{}
		for _, d := range t.directionsByPole[key] {
			set.Directions[d.ID.String()] = struct{}{}
			for _, s := range t.servicesByDirection[d.ID.String()] {
				set.Services[s.ID.String()] = struct{}{}
			}
		}
	case orgunit.KindDirection:
		if _, ok := t.directions[key]; !ok {
			return set
		}
		set.Directions[key] = struct{}{}
		for _, s := range t.servicesByDirection[key] {
			set.Services[s.ID.String()] = struct{}{}
		}
	case orgunit.KindService:
		if _, ok := t.services[key]; !ok {
			return set
		}
		set.Services[key] = struct{}{}
	}

	return set
}

// All returns every unit in the snapshot as an AccessSet.
func (t *Tree) All() AccessSet {
	set := NewAccessSet()
	for k := range t.poles {
		set.Poles[k] = struct{}{}
	}
	for k := range t.directions {
		set.Directions[k] = struct{}{}
	}
	for k := range t.services {
		set.Services[k] = struct{}{}
	}
	return set
}

// Ancestors fills in a placement's implied ancestors from its most
// specific tier: a service implies its direction and pole, a direction
// implies its pole. Explicitly set tiers are validated against the
// snapshot. A referenced unit absent from the snapshot yields
// ErrOrphanedEntity. The zero placement passes through unchanged —
// resolution of a project with no placement is the caller's ownership
// fallback, not an error.
func (t *Tree) Ancestors(org ProjectOrg) (ProjectOrg, error) {
	if org.IsZero() {
		return org, nil
	}

	resolved := org

	if !resolved.ServiceID.IsNil() {
		svc, ok := t.services[resolved.ServiceID.String()]
		if !ok {
			return ProjectOrg{}, fmt.Errorf("service %s: %w", resolved.ServiceID, ErrOrphanedEntity)
		}
		if resolved.DirectionID.IsNil() {
			resolved.DirectionID = svc.ParentID
		}
	}

	if !resolved.DirectionID.IsNil() {
		dir, ok := t.directions[resolved.DirectionID.String()]
		if !ok {
			return ProjectOrg{}, fmt.Errorf("direction %s: %w", resolved.DirectionID, ErrOrphanedEntity)
		}
		if resolved.PoleID.IsNil() {
			resolved.PoleID = dir.ParentID
		}
	}

	if !resolved.PoleID.IsNil() {
		if _, ok := t.poles[resolved.PoleID.String()]; !ok {
			return ProjectOrg{}, fmt.Errorf("pole %s: %w", resolved.PoleID, ErrOrphanedEntity)
		}
	}

	return resolved, nil
}
