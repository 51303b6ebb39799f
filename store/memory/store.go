// Package memory provides an in-memory implementation of the Portier
// composite store. It is intended for testing and development.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/portier-io/portier"
	"github.com/portier-io/portier/assignment"
	"github.com/portier-io/portier/decisionlog"
	"github.com/portier-io/portier/id"
	"github.com/portier-io/portier/orgunit"
	"github.com/portier-io/portier/profile"
	"github.com/portier-io/portier/project"
)

// Compile-time interface checks.
var (
	_ orgunit.Store     = (*Store)(nil)
	_ assignment.Store  = (*Store)(nil)
	_ project.Store     = (*Store)(nil)
	_ profile.Store     = (*Store)(nil)
	_ decisionlog.Store = (*Store)(nil)
)

// Store is a thread-safe in-memory store for all Portier entities.
type Store struct {
	mu sync.RWMutex

	units        map[string]*orgunit.Unit
	directs      map[string]*assignment.Direct
	paths        map[string]*assignment.Path
	projects     map[string]*project.Project
	members      map[string]map[string]*project.Member // projectID -> userID -> member
	profiles     map[string]*profile.Profile
	roleLabels   map[string]map[string]struct{} // userID -> set of labels
	decisionLogs map[string]*decisionlog.Entry
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		units:        make(map[string]*orgunit.Unit),
		directs:      make(map[string]*assignment.Direct),
		paths:        make(map[string]*assignment.Path),
		projects:     make(map[string]*project.Project),
		members:      make(map[string]map[string]*project.Member),
		profiles:     make(map[string]*profile.Profile),
		roleLabels:   make(map[string]map[string]struct{}),
		decisionLogs: make(map[string]*decisionlog.Entry),
	}
}

// Migrate is a no-op for the memory store.
func (s *Store) Migrate(_ context.Context) error { return nil }

// Ping is a no-op for the memory store.
func (s *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op for the memory store.
func (s *Store) Close() error { return nil }

// ──────────────────────────────────────────────────
// OrgUnit Store
// ──────────────────────────────────────────────────

func (s *Store) CreateUnit(_ context.Context, u *orgunit.Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkParent(u); err != nil {
		return err
	}
	s.units[u.ID.String()] = copyUnit(u)
	return nil
}

func (s *Store) GetUnit(_ context.Context, unitID id.ID) (*orgunit.Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.units[unitID.String()]
	if !ok {
		return nil, fmt.Errorf("unit %s: %w", unitID, portier.ErrUnitNotFound)
	}
	return copyUnit(u), nil
}

func (s *Store) UpdateUnit(_ context.Context, u *orgunit.Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.units[u.ID.String()]; !ok {
		return fmt.Errorf("unit %s: %w", u.ID, portier.ErrUnitNotFound)
	}
	if err := s.checkParent(u); err != nil {
		return err
	}
	s.units[u.ID.String()] = copyUnit(u)
	return nil
}

func (s *Store) DeleteUnit(_ context.Context, unitID id.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.units, unitID.String())
	return nil
}

func (s *Store) ListUnits(_ context.Context, filter *orgunit.ListFilter) ([]*orgunit.Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*orgunit.Unit, 0, len(s.units))
	for _, u := range s.units {
		if filter != nil {
			if filter.Kind != "" && u.Kind != filter.Kind {
				continue
			}
			if filter.ParentID != nil && u.ParentID.String() != filter.ParentID.String() {
				continue
			}
			if filter.Search != "" && !strings.Contains(strings.ToLower(u.Name), strings.ToLower(filter.Search)) {
				continue
			}
		}
		result = append(result, copyUnit(u))
	}
	sortUnitsByName(result)
	return applyPagination(result, paginationOpts(filter)), nil
}

func (s *Store) CountUnits(ctx context.Context, filter *orgunit.ListFilter) (int64, error) {
	list, err := s.ListUnits(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(list)), nil
}

func (s *Store) ListChildren(_ context.Context, parentID id.ID) ([]*orgunit.Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pid := parentID.String()
	var result []*orgunit.Unit
	for _, u := range s.units {
		if !u.ParentID.IsNil() && u.ParentID.String() == pid {
			result = append(result, copyUnit(u))
		}
	}
	sortUnitsByName(result)
	return result, nil
}

func (s *Store) ListAllUnits(_ context.Context) ([]*orgunit.Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*orgunit.Unit, 0, len(s.units))
	for _, u := range s.units {
		result = append(result, copyUnit(u))
	}
	return result, nil
}

// checkParent validates the tier of a unit's parent. Caller holds the lock.
func (s *Store) checkParent(u *orgunit.Unit) error {
	want := u.Kind.ParentKind()
	if want == "" {
		if !u.ParentID.IsNil() {
			return fmt.Errorf("pole %s must not have a parent: %w", u.ID, portier.ErrInvalidParent)
		}
		return nil
	}
	parent, ok := s.units[u.ParentID.String()]
	if !ok {
		return fmt.Errorf("parent %s of %s %s: %w", u.ParentID, u.Kind, u.ID, portier.ErrInvalidParent)
	}
	if parent.Kind != want {
		return fmt.Errorf("parent of %s %s is a %s, want %s: %w", u.Kind, u.ID, parent.Kind, want, portier.ErrInvalidParent)
	}
	return nil
}

// ──────────────────────────────────────────────────
// Assignment Store
// ──────────────────────────────────────────────────

func (s *Store) CreateDirectAssignment(_ context.Context, a *assignment.Direct) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.directs {
		if e.UserID.String() == a.UserID.String() && e.UnitID.String() == a.UnitID.String() {
			return fmt.Errorf("user %s on unit %s: %w", a.UserID, a.UnitID, portier.ErrDuplicateAssignment)
		}
	}
	s.directs[a.ID.String()] = copyDirect(a)
	return nil
}

func (s *Store) GetDirectAssignment(_ context.Context, asgID id.DirectAssignmentID) (*assignment.Direct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.directs[asgID.String()]
	if !ok {
		return nil, fmt.Errorf("direct assignment %s: %w", asgID, portier.ErrAssignmentNotFound)
	}
	return copyDirect(a), nil
}

func (s *Store) DeleteDirectAssignment(_ context.Context, asgID id.DirectAssignmentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.directs, asgID.String())
	return nil
}

func (s *Store) ListDirectAssignments(_ context.Context, filter *assignment.ListFilter) ([]*assignment.Direct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*assignment.Direct, 0, len(s.directs))
	for _, a := range s.directs {
		if filter != nil {
			if filter.UserID != nil && a.UserID.String() != filter.UserID.String() {
				continue
			}
			if filter.UnitKind != "" && a.UnitKind != filter.UnitKind {
				continue
			}
			if filter.UnitID != nil && a.UnitID.String() != filter.UnitID.String() {
				continue
			}
		}
		result = append(result, copyDirect(a))
	}
	return applyPagination(result, paginationOptsAssign(filter)), nil
}

func (s *Store) CountDirectAssignments(ctx context.Context, filter *assignment.ListFilter) (int64, error) {
	list, err := s.ListDirectAssignments(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(list)), nil
}

func (s *Store) CreatePathAssignment(_ context.Context, p *assignment.Path) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.paths {
		if e.UserID.String() == p.UserID.String() && samePath(e, p) {
			return fmt.Errorf("user %s on path: %w", p.UserID, portier.ErrDuplicateAssignment)
		}
	}
	s.paths[p.ID.String()] = copyPath(p)
	return nil
}

func (s *Store) GetPathAssignment(_ context.Context, asgID id.PathAssignmentID) (*assignment.Path, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.paths[asgID.String()]
	if !ok {
		return nil, fmt.Errorf("path assignment %s: %w", asgID, portier.ErrAssignmentNotFound)
	}
	return copyPath(p), nil
}

func (s *Store) DeletePathAssignment(_ context.Context, asgID id.PathAssignmentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.paths, asgID.String())
	return nil
}

func (s *Store) ListPathAssignments(_ context.Context, filter *assignment.ListFilter) ([]*assignment.Path, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*assignment.Path, 0, len(s.paths))
	for _, p := range s.paths {
		if filter != nil {
			if filter.UserID != nil && p.UserID.String() != filter.UserID.String() {
				continue
			}
			if filter.UnitID != nil && !pathReferences(p, *filter.UnitID) {
				continue
			}
			if filter.UnitKind != "" && p.MostSpecific().Kind != filter.UnitKind {
				continue
			}
		}
		result = append(result, copyPath(p))
	}
	return applyPagination(result, paginationOptsAssign(filter)), nil
}

func (s *Store) CountPathAssignments(ctx context.Context, filter *assignment.ListFilter) (int64, error) {
	list, err := s.ListPathAssignments(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(list)), nil
}

func (s *Store) LoadSnapshot(_ context.Context, userID id.UserID) (*assignment.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	uid := userID.String()
	snap := &assignment.Snapshot{}
	for _, a := range s.directs {
		if a.UserID.String() == uid {
			snap.Direct = append(snap.Direct, copyDirect(a))
		}
	}
	for _, p := range s.paths {
		if p.UserID.String() == uid {
			snap.Paths = append(snap.Paths, copyPath(p))
		}
	}
	return snap, nil
}

func (s *Store) DeleteAssignmentsByUser(_ context.Context, userID id.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	uid := userID.String()
	for k, a := range s.directs {
		if a.UserID.String() == uid {
			delete(s.directs, k)
		}
	}
	for k, p := range s.paths {
		if p.UserID.String() == uid {
			delete(s.paths, k)
		}
	}
	return nil
}

func (s *Store) DeleteAssignmentsByUnit(_ context.Context, unitID id.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, a := range s.directs {
		if a.UnitID.String() == unitID.String() {
			delete(s.directs, k)
		}
	}
	for k, p := range s.paths {
		if pathReferences(p, unitID) {
			delete(s.paths, k)
		}
	}
	return nil
}

func samePath(a, b *assignment.Path) bool {
	return a.PoleID.String() == b.PoleID.String() &&
		a.DirectionID.String() == b.DirectionID.String() &&
		a.ServiceID.String() == b.ServiceID.String()
}

func pathReferences(p *assignment.Path, unitID id.ID) bool {
	uid := unitID.String()
	return p.PoleID.String() == uid || p.DirectionID.String() == uid || p.ServiceID.String() == uid
}

// ──────────────────────────────────────────────────
// Project Store
// ──────────────────────────────────────────────────

func (s *Store) CreateProject(_ context.Context, p *project.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[p.ID.String()] = copyProject(p)
	return nil
}

func (s *Store) GetProject(_ context.Context, projectID id.ProjectID) (*project.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[projectID.String()]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", projectID, portier.ErrProjectNotFound)
	}
	return copyProject(p), nil
}

func (s *Store) UpdateProject(_ context.Context, p *project.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[p.ID.String()]; !ok {
		return fmt.Errorf("project %s: %w", p.ID, portier.ErrProjectNotFound)
	}
	s.projects[p.ID.String()] = copyProject(p)
	return nil
}

func (s *Store) DeleteProject(_ context.Context, projectID id.ProjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.projects, projectID.String())
	delete(s.members, projectID.String())
	return nil
}

func (s *Store) ListProjects(_ context.Context, filter *project.ListFilter) ([]*project.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*project.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if filter != nil {
			if filter.PoleID != nil && p.PoleID.String() != filter.PoleID.String() {
				continue
			}
			if filter.DirectionID != nil && p.DirectionID.String() != filter.DirectionID.String() {
				continue
			}
			if filter.ServiceID != nil && p.ServiceID.String() != filter.ServiceID.String() {
				continue
			}
			if filter.OwnerID != nil && p.OwnerID.String() != filter.OwnerID.String() {
				continue
			}
			if filter.ManagerID != nil && p.ManagerID.String() != filter.ManagerID.String() {
				continue
			}
			if filter.Status != "" && p.Status != filter.Status {
				continue
			}
			if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
				continue
			}
		}
		result = append(result, copyProject(p))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return applyPagination(result, paginationOptsProj(filter)), nil
}

func (s *Store) CountProjects(ctx context.Context, filter *project.ListFilter) (int64, error) {
	list, err := s.ListProjects(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(list)), nil
}

func (s *Store) AddProjectMember(_ context.Context, m *project.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pk := m.ProjectID.String()
	if s.members[pk] == nil {
		s.members[pk] = make(map[string]*project.Member)
	}
	if _, ok := s.members[pk][m.UserID.String()]; ok {
		return fmt.Errorf("user %s on project %s: %w", m.UserID, m.ProjectID, portier.ErrDuplicateMember)
	}
	s.members[pk][m.UserID.String()] = copyMember(m)
	return nil
}

func (s *Store) RemoveProjectMember(_ context.Context, projectID id.ProjectID, userID id.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if team, ok := s.members[projectID.String()]; ok {
		delete(team, userID.String())
	}
	return nil
}

func (s *Store) IsProjectMember(_ context.Context, projectID id.ProjectID, userID id.UserID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	team, ok := s.members[projectID.String()]
	if !ok {
		return false, nil
	}
	_, ok = team[userID.String()]
	return ok, nil
}

func (s *Store) ListProjectMembers(_ context.Context, projectID id.ProjectID) ([]*project.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	team := s.members[projectID.String()]
	result := make([]*project.Member, 0, len(team))
	for _, m := range team {
		result = append(result, copyMember(m))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID.String() < result[j].UserID.String() })
	return result, nil
}

func (s *Store) ListProjectsForMember(_ context.Context, userID id.UserID) ([]id.ProjectID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	uid := userID.String()
	var result []id.ProjectID
	for pk, team := range s.members {
		if _, ok := team[uid]; ok {
			parsed, err := id.ParseProjectID(pk)
			if err == nil {
				result = append(result, parsed)
			}
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].String() < result[j].String() })
	return result, nil
}

// ──────────────────────────────────────────────────
// Profile Store
// ──────────────────────────────────────────────────

func (s *Store) CreateProfile(_ context.Context, p *profile.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.ID.String()] = copyProfile(p)
	return nil
}

func (s *Store) GetProfile(_ context.Context, userID id.UserID) (*profile.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID.String()]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", userID, portier.ErrProfileNotFound)
	}
	return copyProfile(p), nil
}

func (s *Store) GetProfileByEmail(_ context.Context, email string) (*profile.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.profiles {
		if strings.EqualFold(p.Email, email) {
			return copyProfile(p), nil
		}
	}
	return nil, fmt.Errorf("profile email %q: %w", email, portier.ErrProfileNotFound)
}

func (s *Store) UpdateProfile(_ context.Context, p *profile.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[p.ID.String()]; !ok {
		return fmt.Errorf("profile %s: %w", p.ID, portier.ErrProfileNotFound)
	}
	s.profiles[p.ID.String()] = copyProfile(p)
	return nil
}

func (s *Store) DeleteProfile(_ context.Context, userID id.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, userID.String())
	delete(s.roleLabels, userID.String())
	return nil
}

func (s *Store) ListProfiles(_ context.Context, filter *profile.ListFilter) ([]*profile.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*profile.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		if filter != nil {
			if filter.Search != "" {
				q := strings.ToLower(filter.Search)
				if !strings.Contains(strings.ToLower(p.Email), q) && !strings.Contains(strings.ToLower(p.DisplayName), q) {
					continue
				}
			}
			if filter.Role != "" {
				labels := s.roleLabels[p.ID.String()]
				if _, ok := labels[filter.Role]; !ok {
					continue
				}
			}
		}
		result = append(result, copyProfile(p))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Email < result[j].Email })
	return applyPagination(result, paginationOptsProf(filter)), nil
}

func (s *Store) ListRoleLabels(_ context.Context, userID id.UserID) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	labels, ok := s.roleLabels[userID.String()]
	if !ok {
		return nil, nil
	}
	result := make([]string, 0, len(labels))
	for l := range labels {
		result = append(result, l)
	}
	sort.Strings(result)
	return result, nil
}

func (s *Store) GrantRole(_ context.Context, userID id.UserID, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	uk := userID.String()
	if s.roleLabels[uk] == nil {
		s.roleLabels[uk] = make(map[string]struct{})
	}
	s.roleLabels[uk][label] = struct{}{}
	return nil
}

func (s *Store) RevokeRole(_ context.Context, userID id.UserID, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if labels, ok := s.roleLabels[userID.String()]; ok {
		delete(labels, label)
	}
	return nil
}

// ──────────────────────────────────────────────────
// DecisionLog Store
// ──────────────────────────────────────────────────

func (s *Store) CreateDecisionLog(_ context.Context, e *decisionlog.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decisionLogs[e.ID.String()] = copyLog(e)
	return nil
}

func (s *Store) GetDecisionLog(_ context.Context, logID id.DecisionLogID) (*decisionlog.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.decisionLogs[logID.String()]
	if !ok {
		return nil, fmt.Errorf("decision log %s: not found", logID)
	}
	return copyLog(e), nil
}

func (s *Store) ListDecisionLogs(_ context.Context, filter *decisionlog.QueryFilter) ([]*decisionlog.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*decisionlog.Entry, 0, len(s.decisionLogs))
	for _, e := range s.decisionLogs {
		if filter != nil {
			if filter.UserID != nil && e.UserID.String() != filter.UserID.String() {
				continue
			}
			if filter.ProjectID != nil && e.ProjectID.String() != filter.ProjectID.String() {
				continue
			}
			if filter.Action != "" && e.Action != filter.Action {
				continue
			}
			if filter.Decision != "" && e.Decision != filter.Decision {
				continue
			}
			if filter.After != nil && !e.CreatedAt.After(*filter.After) {
				continue
			}
			if filter.Before != nil && !e.CreatedAt.Before(*filter.Before) {
				continue
			}
		}
		result = append(result, copyLog(e))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return applyPagination(result, paginationOptsLog(filter)), nil
}

func (s *Store) CountDecisionLogs(ctx context.Context, filter *decisionlog.QueryFilter) (int64, error) {
	list, err := s.ListDecisionLogs(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(list)), nil
}

func (s *Store) PurgeDecisionLogs(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for k, e := range s.decisionLogs {
		if e.CreatedAt.Before(before) {
			delete(s.decisionLogs, k)
			count++
		}
	}
	return count, nil
}

// ──────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────

// Copy helpers return shallow copies so callers cannot mutate stored state.

func copyUnit(u *orgunit.Unit) *orgunit.Unit {
	c := *u
	return &c
}

func copyDirect(a *assignment.Direct) *assignment.Direct {
	c := *a
	return &c
}

func copyPath(p *assignment.Path) *assignment.Path {
	c := *p
	return &c
}

func copyProject(p *project.Project) *project.Project {
	c := *p
	return &c
}

func copyMember(m *project.Member) *project.Member {
	c := *m
	return &c
}

func copyProfile(p *profile.Profile) *profile.Profile {
	c := *p
	return &c
}

func copyLog(e *decisionlog.Entry) *decisionlog.Entry {
	c := *e
	return &c
}

func sortUnitsByName(units []*orgunit.Unit) {
	sort.Slice(units, func(i, j int) bool { return units[i].Name < units[j].Name })
}

// Pagination helpers for each entity type.
type pagOpts struct{ limit, offset int }

func paginationOpts(f *orgunit.ListFilter) pagOpts {
	if f == nil {
		return pagOpts{}
	}
	return pagOpts{limit: f.Limit, offset: f.Offset}
}

func applyPagination[T any](items []*T, p pagOpts) []*T {
	if p.offset > 0 && p.offset < len(items) {
		items = items[p.offset:]
	} else if p.offset >= len(items) && p.offset > 0 {
		return nil
	}
	if p.limit > 0 && p.limit < len(items) {
		items = items[:p.limit]
	}
	return items
}

func paginationOptsAssign(f *assignment.ListFilter) pagOpts {
	if f == nil {
		return pagOpts{}
	}
	return pagOpts{limit: f.Limit, offset: f.Offset}
}

func paginationOptsProj(f *project.ListFilter) pagOpts {
	if f == nil {
		return pagOpts{}
	}
	return pagOpts{limit: f.Limit, offset: f.Offset}
}

func paginationOptsProf(f *profile.ListFilter) pagOpts {
	if f == nil {
		return pagOpts{}
	}
	return pagOpts{limit: f.Limit, offset: f.Offset}
}

func paginationOptsLog(f *decisionlog.QueryFilter) pagOpts {
	if f == nil {
		return pagOpts{}
	}
	return pagOpts{limit: f.Limit, offset: f.Offset}
}
