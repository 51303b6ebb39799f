// Package postgres provides a PostgreSQL implementation of the Portier
// composite store using grove ORM with Go-based migrations.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/pgdriver"
	"github.com/xraph/grove/migrate"

	"github.com/portier-io/portier"
	"github.com/portier-io/portier/assignment"
	"github.com/portier-io/portier/decisionlog"
	"github.com/portier-io/portier/id"
	"github.com/portier-io/portier/orgunit"
	"github.com/portier-io/portier/profile"
	"github.com/portier-io/portier/project"
	"github.com/portier-io/portier/store"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// Store is a PostgreSQL implementation of the composite Portier store.
type Store struct {
	db   *grove.DB
	pgdb *pgdriver.PgDB
}

// New creates a new PostgreSQL store.
func New(db *grove.DB) *Store {
	return &Store{
		db:   db,
		pgdb: pgdriver.Unwrap(db),
	}
}

// Migrate runs programmatic migrations via the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.pgdb)
	if err != nil {
		return fmt.Errorf("portier: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("portier: migration failed: %w", err)
	}
	return nil
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ──────────────────────────────────────────────────
// OrgUnit operations
// ──────────────────────────────────────────────────

func (s *Store) CreateUnit(ctx context.Context, u *orgunit.Unit) error {
	if err := s.checkParent(ctx, u); err != nil {
		return err
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	m := unitToModel(u)
	_, err := s.pgdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("portier: create unit: %w", err)
	}
	return nil
}

func (s *Store) GetUnit(ctx context.Context, unitID id.ID) (*orgunit.Unit, error) {
	m := new(unitModel)
	err := s.pgdb.NewSelect(m).Where("id = ?", unitID.String()).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("unit %s: %w", unitID, portier.ErrUnitNotFound)
		}
		return nil, fmt.Errorf("portier: get unit: %w", err)
	}
	return unitFromModel(m), nil
}

func (s *Store) UpdateUnit(ctx context.Context, u *orgunit.Unit) error {
	if err := s.checkParent(ctx, u); err != nil {
		return err
	}
	u.UpdatedAt = time.Now().UTC()
	m := unitToModel(u)
	res, err := s.pgdb.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("portier: update unit: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("unit %s: %w", u.ID, portier.ErrUnitNotFound)
	}
	return nil
}

func (s *Store) DeleteUnit(ctx context.Context, unitID id.ID) error {
	_, err := s.pgdb.NewDelete((*unitModel)(nil)).
		Where("id = ?", unitID.String()).Exec(ctx)
	if err != nil {
		return fmt.Errorf("portier: delete unit: %w", err)
	}
	return nil
}

func (s *Store) ListUnits(ctx context.Context, filter *orgunit.ListFilter) ([]*orgunit.Unit, error) {
	var models []unitModel
	q := s.pgdb.NewSelect(&models).OrderExpr("name ASC")
	if filter != nil {
		if filter.Kind != "" {
			q = q.Where("kind = ?", string(filter.Kind))
		}
		if filter.ParentID != nil {
			q = q.Where("parent_id = ?", filter.ParentID.String())
		}
		if filter.Search != "" {
			q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("portier: list units: %w", err)
	}
	result := make([]*orgunit.Unit, len(models))
	for i := range models {
		result[i] = unitFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) CountUnits(ctx context.Context, filter *orgunit.ListFilter) (int64, error) {
	q := s.pgdb.NewSelect((*unitModel)(nil))
	if filter != nil {
		if filter.Kind != "" {
			q = q.Where("kind = ?", string(filter.Kind))
		}
		if filter.ParentID != nil {
			q = q.Where("parent_id = ?", filter.ParentID.String())
		}
		if filter.Search != "" {
			q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
		}
	}
	count, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("portier: count units: %w", err)
	}
	return count, nil
}

func (s *Store) ListChildren(ctx context.Context, parentID id.ID) ([]*orgunit.Unit, error) {
	var models []unitModel
	err := s.pgdb.NewSelect(&models).
		Where("parent_id = ?", parentID.String()).
		OrderExpr("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("portier: list children: %w", err)
	}
	result := make([]*orgunit.Unit, len(models))
	for i := range models {
		result[i] = unitFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) ListAllUnits(ctx context.Context) ([]*orgunit.Unit, error) {
	var models []unitModel
	if err := s.pgdb.NewSelect(&models).Scan(ctx); err != nil {
		return nil, fmt.Errorf("portier: list all units: %w", err)
	}
	result := make([]*orgunit.Unit, len(models))
	for i := range models {
		result[i] = unitFromModel(&models[i])
	}
	return result, nil
}

// checkParent validates the tier of a unit's parent before a write.
func (s *Store) checkParent(ctx context.Context, u *orgunit.Unit) error {
	want := u.Kind.ParentKind()
	if want == "" {
		if !u.ParentID.IsNil() {
			return fmt.Errorf("pole %s must not have a parent: %w", u.ID, portier.ErrInvalidParent)
		}
		return nil
	}
	parent, err := s.GetUnit(ctx, u.ParentID)
	if err != nil {
		if errors.Is(err, portier.ErrUnitNotFound) {
			return fmt.Errorf("parent %s of %s %s: %w", u.ParentID, u.Kind, u.ID, portier.ErrInvalidParent)
		}
		return err
	}
	if parent.Kind != want {
		return fmt.Errorf("parent of %s %s is a %s, want %s: %w", u.Kind, u.ID, parent.Kind, want, portier.ErrInvalidParent)
	}
	return nil
}

// ──────────────────────────────────────────────────
// Assignment operations
// ──────────────────────────────────────────────────

func (s *Store) CreateDirectAssignment(ctx context.Context, a *assignment.Direct) error {
	a.CreatedAt = time.Now().UTC()
	m := directToModel(a)
	res, err := s.pgdb.NewInsert(m).
		OnConflict("(user_id, unit_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("portier: create direct assignment: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("user %s on unit %s: %w", a.UserID, a.UnitID, portier.ErrDuplicateAssignment)
	}
	return nil
}

func (s *Store) GetDirectAssignment(ctx context.Context, asgID id.DirectAssignmentID) (*assignment.Direct, error) {
	m := new(directModel)
	err := s.pgdb.NewSelect(m).Where("id = ?", asgID.String()).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("direct assignment %s: %w", asgID, portier.ErrAssignmentNotFound)
		}
		return nil, fmt.Errorf("portier: get direct assignment: %w", err)
	}
	return directFromModel(m), nil
}

func (s *Store) DeleteDirectAssignment(ctx context.Context, asgID id.DirectAssignmentID) error {
	_, err := s.pgdb.NewDelete((*directModel)(nil)).
		Where("id = ?", asgID.String()).Exec(ctx)
	if err != nil {
		return fmt.Errorf("portier: delete direct assignment: %w", err)
	}
	return nil
}

func (s *Store) ListDirectAssignments(ctx context.Context, filter *assignment.ListFilter) ([]*assignment.Direct, error) {
	var models []directModel
	q := s.pgdb.NewSelect(&models).OrderExpr("created_at ASC")
	if filter != nil {
		if filter.UserID != nil {
			q = q.Where("user_id = ?", filter.UserID.String())
		}
		if filter.UnitKind != "" {
			q = q.Where("unit_kind = ?", string(filter.UnitKind))
		}
		if filter.UnitID != nil {
			q = q.Where("unit_id = ?", filter.UnitID.String())
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("portier: list direct assignments: %w", err)
	}
	result := make([]*assignment.Direct, len(models))
	for i := range models {
		result[i] = directFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) CountDirectAssignments(ctx context.Context, filter *assignment.ListFilter) (int64, error) {
	q := s.pgdb.NewSelect((*directModel)(nil))
	if filter != nil {
		if filter.UserID != nil {
			q = q.Where("user_id = ?", filter.UserID.String())
		}
		if filter.UnitKind != "" {
			q = q.Where("unit_kind = ?", string(filter.UnitKind))
		}
		if filter.UnitID != nil {
			q = q.Where("unit_id = ?", filter.UnitID.String())
		}
	}
	count, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("portier: count direct assignments: %w", err)
	}
	return count, nil
}

func (s *Store) CreatePathAssignment(ctx context.Context, p *assignment.Path) error {
	p.CreatedAt = time.Now().UTC()
	m := pathToModel(p)
	res, err := s.pgdb.NewInsert(m).
		OnConflict("(user_id, pole_id, direction_id, service_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("portier: create path assignment: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("user %s on path: %w", p.UserID, portier.ErrDuplicateAssignment)
	}
	return nil
}

func (s *Store) GetPathAssignment(ctx context.Context, asgID id.PathAssignmentID) (*assignment.Path, error) {
	m := new(pathModel)
	err := s.pgdb.NewSelect(m).Where("id = ?", asgID.String()).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("path assignment %s: %w", asgID, portier.ErrAssignmentNotFound)
		}
		return nil, fmt.Errorf("portier: get path assignment: %w", err)
	}
	return pathFromModel(m), nil
}

func (s *Store) DeletePathAssignment(ctx context.Context, asgID id.PathAssignmentID) error {
	_, err := s.pgdb.NewDelete((*pathModel)(nil)).
		Where("id = ?", asgID.String()).Exec(ctx)
	if err != nil {
		return fmt.Errorf("portier: delete path assignment: %w", err)
	}
	return nil
}

func (s *Store) ListPathAssignments(ctx context.Context, filter *assignment.ListFilter) ([]*assignment.Path, error) {
	var models []pathModel
	q := s.pgdb.NewSelect(&models).OrderExpr("created_at ASC")
	if filter != nil {
		if filter.UserID != nil {
			q = q.Where("user_id = ?", filter.UserID.String())
		}
		if filter.UnitID != nil {
			uid := filter.UnitID.String()
			q = q.Where("(pole_id = ? OR direction_id = ? OR service_id = ?)", uid, uid, uid)
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("portier: list path assignments: %w", err)
	}
	result := make([]*assignment.Path, len(models))
	for i := range models {
		result[i] = pathFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) CountPathAssignments(ctx context.Context, filter *assignment.ListFilter) (int64, error) {
	q := s.pgdb.NewSelect((*pathModel)(nil))
	if filter != nil {
		if filter.UserID != nil {
			q = q.Where("user_id = ?", filter.UserID.String())
		}
		if filter.UnitID != nil {
			uid := filter.UnitID.String()
			q = q.Where("(pole_id = ? OR direction_id = ? OR service_id = ?)", uid, uid, uid)
		}
	}
	count, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("portier: count path assignments: %w", err)
	}
	return count, nil
}

func (s *Store) LoadSnapshot(ctx context.Context, userID id.UserID) (*assignment.Snapshot, error) {
	uid := userID.String()
	snap := &assignment.Snapshot{}

	var directs []directModel
	err := s.pgdb.NewSelect(&directs).Where("user_id = ?", uid).Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("portier: load snapshot directs: %w", err)
	}
	for i := range directs {
		snap.Direct = append(snap.Direct, directFromModel(&directs[i]))
	}

	var paths []pathModel
	err = s.pgdb.NewSelect(&paths).Where("user_id = ?", uid).Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("portier: load snapshot paths: %w", err)
	}
	for i := range paths {
		snap.Paths = append(snap.Paths, pathFromModel(&paths[i]))
	}
	return snap, nil
}

func (s *Store) DeleteAssignmentsByUser(ctx context.Context, userID id.UserID) error {
	uid := userID.String()
	if _, err := s.pgdb.NewDelete((*directModel)(nil)).Where("user_id = ?", uid).Exec(ctx); err != nil {
		return fmt.Errorf("portier: delete direct assignments by user: %w", err)
	}
	if _, err := s.pgdb.NewDelete((*pathModel)(nil)).Where("user_id = ?", uid).Exec(ctx); err != nil {
		return fmt.Errorf("portier: delete path assignments by user: %w", err)
	}
	return nil
}

func (s *Store) DeleteAssignmentsByUnit(ctx context.Context, unitID id.ID) error {
	uid := unitID.String()
	if _, err := s.pgdb.NewDelete((*directModel)(nil)).Where("unit_id = ?", uid).Exec(ctx); err != nil {
		return fmt.Errorf("portier: delete direct assignments by unit: %w", err)
	}
	_, err := s.pgdb.NewDelete((*pathModel)(nil)).
		Where("(pole_id = ? OR direction_id = ? OR service_id = ?)", uid, uid, uid).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("portier: delete path assignments by unit: %w", err)
	}
	return nil
}

// ──────────────────────────────────────────────────
// Project operations
// ──────────────────────────────────────────────────

func (s *Store) CreateProject(ctx context.Context, p *project.Project) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = project.StatusActive
	}
	m := projectToModel(p)
	_, err := s.pgdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("portier: create project: %w", err)
	}
	return nil
}

func (s *Store) GetProject(ctx context.Context, projectID id.ProjectID) (*project.Project, error) {
	m := new(projectModel)
	err := s.pgdb.NewSelect(m).Where("id = ?", projectID.String()).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", projectID, portier.ErrProjectNotFound)
		}
		return nil, fmt.Errorf("portier: get project: %w", err)
	}
	return projectFromModel(m), nil
}

func (s *Store) UpdateProject(ctx context.Context, p *project.Project) error {
	p.UpdatedAt = time.Now().UTC()
	m := projectToModel(p)
	res, err := s.pgdb.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("portier: update project: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("project %s: %w", p.ID, portier.ErrProjectNotFound)
	}
	return nil
}

func (s *Store) DeleteProject(ctx context.Context, projectID id.ProjectID) error {
	pid := projectID.String()
	if _, err := s.pgdb.NewDelete((*memberModel)(nil)).Where("project_id = ?", pid).Exec(ctx); err != nil {
		return fmt.Errorf("portier: delete project members: %w", err)
	}
	if _, err := s.pgdb.NewDelete((*projectModel)(nil)).Where("id = ?", pid).Exec(ctx); err != nil {
		return fmt.Errorf("portier: delete project: %w", err)
	}
	return nil
}

func (s *Store) ListProjects(ctx context.Context, filter *project.ListFilter) ([]*project.Project, error) {
	var models []projectModel
	q := s.pgdb.NewSelect(&models).OrderExpr("name ASC")
	if filter != nil {
		if filter.PoleID != nil {
			q = q.Where("pole_id = ?", filter.PoleID.String())
		}
		if filter.DirectionID != nil {
			q = q.Where("direction_id = ?", filter.DirectionID.String())
		}
		if filter.ServiceID != nil {
			q = q.Where("service_id = ?", filter.ServiceID.String())
		}
		if filter.OwnerID != nil {
			q = q.Where("owner_id = ?", filter.OwnerID.String())
		}
		if filter.ManagerID != nil {
			q = q.Where("manager_id = ?", filter.ManagerID.String())
		}
		if filter.Status != "" {
			q = q.Where("status = ?", string(filter.Status))
		}
		if filter.Search != "" {
			q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("portier: list projects: %w", err)
	}
	result := make([]*project.Project, len(models))
	for i := range models {
		result[i] = projectFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) CountProjects(ctx context.Context, filter *project.ListFilter) (int64, error) {
	q := s.pgdb.NewSelect((*projectModel)(nil))
	if filter != nil {
		if filter.PoleID != nil {
			q = q.Where("pole_id = ?", filter.PoleID.String())
		}
		if filter.DirectionID != nil {
			q = q.Where("direction_id = ?", filter.DirectionID.String())
		}
		if filter.ServiceID != nil {
			q = q.Where("service_id = ?", filter.ServiceID.String())
		}
		if filter.OwnerID != nil {
			q = q.Where("owner_id = ?", filter.OwnerID.String())
		}
		if filter.ManagerID != nil {
			q = q.Where("manager_id = ?", filter.ManagerID.String())
		}
		if filter.Status != "" {
			q = q.Where("status = ?", string(filter.Status))
		}
		if filter.Search != "" {
			q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
		}
	}
	count, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("portier: count projects: %w", err)
	}
	return count, nil
}

func (s *Store) AddProjectMember(ctx context.Context, m *project.Member) error {
	m.CreatedAt = time.Now().UTC()
	mm := memberToModel(m)
	res, err := s.pgdb.NewInsert(mm).
		OnConflict("(project_id, user_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("portier: add project member: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("user %s on project %s: %w", m.UserID, m.ProjectID, portier.ErrDuplicateMember)
	}
	return nil
}

func (s *Store) RemoveProjectMember(ctx context.Context, projectID id.ProjectID, userID id.UserID) error {
	_, err := s.pgdb.NewDelete((*memberModel)(nil)).
		Where("project_id = ?", projectID.String()).
		Where("user_id = ?", userID.String()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("portier: remove project member: %w", err)
	}
	return nil
}

func (s *Store) IsProjectMember(ctx context.Context, projectID id.ProjectID, userID id.UserID) (bool, error) {
	count, err := s.pgdb.NewSelect((*memberModel)(nil)).
		Where("project_id = ?", projectID.String()).
		Where("user_id = ?", userID.String()).
		Count(ctx)
	if err != nil {
		return false, fmt.Errorf("portier: check project member: %w", err)
	}
	return count > 0, nil
}

func (s *Store) ListProjectMembers(ctx context.Context, projectID id.ProjectID) ([]*project.Member, error) {
	var models []memberModel
	err := s.pgdb.NewSelect(&models).
		Where("project_id = ?", projectID.String()).
		OrderExpr("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("portier: list project members: %w", err)
	}
	result := make([]*project.Member, len(models))
	for i := range models {
		result[i] = memberFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) ListProjectsForMember(ctx context.Context, userID id.UserID) ([]id.ProjectID, error) {
	var models []memberModel
	err := s.pgdb.NewSelect(&models).
		Where("user_id = ?", userID.String()).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("portier: list projects for member: %w", err)
	}
	result := make([]id.ProjectID, 0, len(models))
	for _, m := range models {
		pid, err := id.ParseProjectID(m.ProjectID)
		if err == nil {
			result = append(result, pid)
		}
	}
	return result, nil
}

// ──────────────────────────────────────────────────
// Profile operations
// ──────────────────────────────────────────────────

func (s *Store) CreateProfile(ctx context.Context, p *profile.Profile) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	m := profileToModel(p)
	_, err := s.pgdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("portier: create profile: %w", err)
	}
	return nil
}

func (s *Store) GetProfile(ctx context.Context, userID id.UserID) (*profile.Profile, error) {
	m := new(profileModel)
	err := s.pgdb.NewSelect(m).Where("id = ?", userID.String()).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile %s: %w", userID, portier.ErrProfileNotFound)
		}
		return nil, fmt.Errorf("portier: get profile: %w", err)
	}
	return profileFromModel(m), nil
}

func (s *Store) GetProfileByEmail(ctx context.Context, email string) (*profile.Profile, error) {
	m := new(profileModel)
	err := s.pgdb.NewSelect(m).Where("LOWER(email) = LOWER(?)", email).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile email %q: %w", email, portier.ErrProfileNotFound)
		}
		return nil, fmt.Errorf("portier: get profile by email: %w", err)
	}
	return profileFromModel(m), nil
}

func (s *Store) UpdateProfile(ctx context.Context, p *profile.Profile) error {
	p.UpdatedAt = time.Now().UTC()
	m := profileToModel(p)
	res, err := s.pgdb.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("portier: update profile: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("profile %s: %w", p.ID, portier.ErrProfileNotFound)
	}
	return nil
}

func (s *Store) DeleteProfile(ctx context.Context, userID id.UserID) error {
	uid := userID.String()
	if _, err := s.pgdb.NewDelete((*roleGrantModel)(nil)).Where("user_id = ?", uid).Exec(ctx); err != nil {
		return fmt.Errorf("portier: delete role grants: %w", err)
	}
	if _, err := s.pgdb.NewDelete((*profileModel)(nil)).Where("id = ?", uid).Exec(ctx); err != nil {
		return fmt.Errorf("portier: delete profile: %w", err)
	}
	return nil
}

func (s *Store) ListProfiles(ctx context.Context, filter *profile.ListFilter) ([]*profile.Profile, error) {
	var models []profileModel
	q := s.pgdb.NewSelect(&models).OrderExpr("email ASC")
	if filter != nil {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			q = q.Where("(LOWER(email) LIKE LOWER(?) OR LOWER(display_name) LIKE LOWER(?))", pat, pat)
		}
		if filter.Role != "" {
			q = q.Where("id IN (SELECT user_id FROM portier_role_grants WHERE label = ?)", filter.Role)
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("portier: list profiles: %w", err)
	}
	result := make([]*profile.Profile, len(models))
	for i := range models {
		result[i] = profileFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) ListRoleLabels(ctx context.Context, userID id.UserID) ([]string, error) {
	var models []roleGrantModel
	err := s.pgdb.NewSelect(&models).
		Where("user_id = ?", userID.String()).
		OrderExpr("label ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("portier: list role labels: %w", err)
	}
	result := make([]string, 0, len(models))
	for _, m := range models {
		result = append(result, m.Label)
	}
	return result, nil
}

func (s *Store) GrantRole(ctx context.Context, userID id.UserID, label string) error {
	m := &roleGrantModel{
		UserID: userID.String(),
		Label:  label,
	}
	_, err := s.pgdb.NewInsert(m).
		OnConflict("(user_id, label) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("portier: grant role: %w", err)
	}
	return nil
}

func (s *Store) RevokeRole(ctx context.Context, userID id.UserID, label string) error {
	_, err := s.pgdb.NewDelete((*roleGrantModel)(nil)).
		Where("user_id = ?", userID.String()).
		Where("label = ?", label).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("portier: revoke role: %w", err)
	}
	return nil
}

// ──────────────────────────────────────────────────
// DecisionLog operations
// ──────────────────────────────────────────────────

func (s *Store) CreateDecisionLog(ctx context.Context, e *decisionlog.Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	m := decisionLogToModel(e)
	_, err := s.pgdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("portier: create decision log: %w", err)
	}
	return nil
}

func (s *Store) GetDecisionLog(ctx context.Context, logID id.DecisionLogID) (*decisionlog.Entry, error) {
	m := new(decisionLogModel)
	err := s.pgdb.NewSelect(m).Where("id = ?", logID.String()).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("decision log %s: not found", logID)
		}
		return nil, fmt.Errorf("portier: get decision log: %w", err)
	}
	return decisionLogFromModel(m), nil
}

func (s *Store) ListDecisionLogs(ctx context.Context, filter *decisionlog.QueryFilter) ([]*decisionlog.Entry, error) {
	var models []decisionLogModel
	q := s.pgdb.NewSelect(&models).OrderExpr("created_at DESC")
	if filter != nil {
		if filter.UserID != nil {
			q = q.Where("user_id = ?", filter.UserID.String())
		}
		if filter.ProjectID != nil {
			q = q.Where("project_id = ?", filter.ProjectID.String())
		}
		if filter.Action != "" {
			q = q.Where("action = ?", filter.Action)
		}
		if filter.Decision != "" {
			q = q.Where("decision = ?", filter.Decision)
		}
		if filter.After != nil {
			q = q.Where("created_at > ?", *filter.After)
		}
		if filter.Before != nil {
			q = q.Where("created_at < ?", *filter.Before)
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("portier: list decision logs: %w", err)
	}
	result := make([]*decisionlog.Entry, len(models))
	for i := range models {
		result[i] = decisionLogFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) CountDecisionLogs(ctx context.Context, filter *decisionlog.QueryFilter) (int64, error) {
	q := s.pgdb.NewSelect((*decisionLogModel)(nil))
	if filter != nil {
		if filter.UserID != nil {
			q = q.Where("user_id = ?", filter.UserID.String())
		}
		if filter.ProjectID != nil {
			q = q.Where("project_id = ?", filter.ProjectID.String())
		}
		if filter.Action != "" {
			q = q.Where("action = ?", filter.Action)
		}
		if filter.Decision != "" {
			q = q.Where("decision = ?", filter.Decision)
		}
		if filter.After != nil {
			q = q.Where("created_at > ?", *filter.After)
		}
		if filter.Before != nil {
			q = q.Where("created_at < ?", *filter.Before)
		}
	}
	count, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("portier: count decision logs: %w", err)
	}
	return count, nil
}

func (s *Store) PurgeDecisionLogs(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.pgdb.NewDelete((*decisionLogModel)(nil)).
		Where("created_at < ?", before).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("portier: purge decision logs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return n, nil
}
