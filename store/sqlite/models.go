package sqlite

import (
	"time"

	"github.com/xraph/grove"

	"github.com/portier-io/portier/assignment"
	"github.com/portier-io/portier/decisionlog"
	"github.com/portier-io/portier/id"
	"github.com/portier-io/portier/orgunit"
	"github.com/portier-io/portier/profile"
	"github.com/portier-io/portier/project"
)

// ──────────────────────────────────────────────────
// OrgUnit model
// ──────────────────────────────────────────────────

type unitModel struct {
	grove.BaseModel `grove:"table:portier_org_units"`
	ID              string    `grove:"id,pk"`
	Kind            string    `grove:"kind,notnull"`
	Name            string    `grove:"name,notnull"`
	ParentID        *string   `grove:"parent_id"`
	CreatedAt       time.Time `grove:"created_at,notnull"`
	UpdatedAt       time.Time `grove:"updated_at,notnull"`
}

func unitToModel(u *orgunit.Unit) *unitModel {
	m := &unitModel{
		ID:        u.ID.String(),
		Kind:      string(u.Kind),
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if !u.ParentID.IsNil() {
		s := u.ParentID.String()
		m.ParentID = &s
	}
	return m
}

func unitFromModel(m *unitModel) *orgunit.Unit {
	uid, _ := id.Parse(m.ID) //nolint:errcheck // stored IDs are always valid
	u := &orgunit.Unit{
		ID:        uid,
		Kind:      orgunit.Kind(m.Kind),
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.ParentID != nil {
		pid, err := id.Parse(*m.ParentID)
		if err == nil {
			u.ParentID = pid
		}
	}
	return u
}

// ──────────────────────────────────────────────────
// Assignment models
// ──────────────────────────────────────────────────

type directModel struct {
	grove.BaseModel `grove:"table:portier_direct_assignments"`
	ID              string    `grove:"id,pk"`
	UserID          string    `grove:"user_id,notnull"`
	UnitKind        string    `grove:"unit_kind,notnull"`
	UnitID          string    `grove:"unit_id,notnull"`
	GrantedBy       *string   `grove:"granted_by"`
	CreatedAt       time.Time `grove:"created_at,notnull"`
}

func directToModel(a *assignment.Direct) *directModel {
	m := &directModel{
		ID:        a.ID.String(),
		UserID:    a.UserID.String(),
		UnitKind:  string(a.UnitKind),
		UnitID:    a.UnitID.String(),
		CreatedAt: a.CreatedAt,
	}
	if !a.GrantedBy.IsNil() {
		s := a.GrantedBy.String()
		m.GrantedBy = &s
	}
	return m
}

func directFromModel(m *directModel) *assignment.Direct {
	aid, _ := id.ParseDirectAssignmentID(m.ID) //nolint:errcheck // stored IDs are always valid
	uid, _ := id.ParseUserID(m.UserID)         //nolint:errcheck
	unitID, _ := id.Parse(m.UnitID)            //nolint:errcheck
	a := &assignment.Direct{
		ID:        aid,
		UserID:    uid,
		UnitKind:  orgunit.Kind(m.UnitKind),
		UnitID:    unitID,
		CreatedAt: m.CreatedAt,
	}
	if m.GrantedBy != nil {
		gb, err := id.ParseUserID(*m.GrantedBy)
		if err == nil {
			a.GrantedBy = gb
		}
	}
	return a
}

type pathModel struct {
	grove.BaseModel `grove:"table:portier_path_assignments"`
	ID              string    `grove:"id,pk"`
	UserID          string    `grove:"user_id,notnull"`
	PoleID          string    `grove:"pole_id,notnull"`
	DirectionID     *string   `grove:"direction_id"`
	ServiceID       *string   `grove:"service_id"`
	GrantedBy       *string   `grove:"granted_by"`
	CreatedAt       time.Time `grove:"created_at,notnull"`
}

func pathToModel(p *assignment.Path) *pathModel {
	m := &pathModel{
		ID:        p.ID.String(),
		UserID:    p.UserID.String(),
		PoleID:    p.PoleID.String(),
		CreatedAt: p.CreatedAt,
	}
	if !p.DirectionID.IsNil() {
		s := p.DirectionID.String()
		m.DirectionID = &s
	}
	if !p.ServiceID.IsNil() {
		s := p.ServiceID.String()
		m.ServiceID = &s
	}
	if !p.GrantedBy.IsNil() {
		s := p.GrantedBy.String()
		m.GrantedBy = &s
	}
	return m
}

func pathFromModel(m *pathModel) *assignment.Path {
	aid, _ := id.ParsePathAssignmentID(m.ID) //nolint:errcheck // stored IDs are always valid
	uid, _ := id.ParseUserID(m.UserID)       //nolint:errcheck
	poleID, _ := id.ParsePoleID(m.PoleID)    //nolint:errcheck
	p := &assignment.Path{
		ID:        aid,
		UserID:    uid,
		PoleID:    poleID,
		CreatedAt: m.CreatedAt,
	}
	if m.DirectionID != nil {
		did, err := id.ParseDirectionID(*m.DirectionID)
		if err == nil {
			p.DirectionID = did
		}
	}
	if m.ServiceID != nil {
		sid, err := id.ParseServiceID(*m.ServiceID)
		if err == nil {
			p.ServiceID = sid
		}
	}
	if m.GrantedBy != nil {
		gb, err := id.ParseUserID(*m.GrantedBy)
		if err == nil {
			p.GrantedBy = gb
		}
	}
	return p
}

// ──────────────────────────────────────────────────
// Project models
// ──────────────────────────────────────────────────

type projectModel struct {
	grove.BaseModel `grove:"table:portier_projects"`
	ID              string    `grove:"id,pk"`
	Name            string    `grove:"name,notnull"`
	PoleID          *string   `grove:"pole_id"`
	DirectionID     *string   `grove:"direction_id"`
	ServiceID       *string   `grove:"service_id"`
	OwnerID         *string   `grove:"owner_id"`
	ProjectManager  string    `grove:"project_manager"`
	ManagerID       *string   `grove:"manager_id"`
	Status          string    `grove:"status,notnull"`
	CreatedAt       time.Time `grove:"created_at,notnull"`
	UpdatedAt       time.Time `grove:"updated_at,notnull"`
}

func projectToModel(p *project.Project) *projectModel {
	m := &projectModel{
		ID:             p.ID.String(),
		Name:           p.Name,
		ProjectManager: p.ProjectManager,
		Status:         string(p.Status),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if !p.PoleID.IsNil() {
		s := p.PoleID.String()
		m.PoleID = &s
	}
	if !p.DirectionID.IsNil() {
		s := p.DirectionID.String()
		m.DirectionID = &s
	}
	if !p.ServiceID.IsNil() {
		s := p.ServiceID.String()
		m.ServiceID = &s
	}
	if !p.OwnerID.IsNil() {
		s := p.OwnerID.String()
		m.OwnerID = &s
	}
	if !p.ManagerID.IsNil() {
		s := p.ManagerID.String()
		m.ManagerID = &s
	}
	return m
}

func projectFromModel(m *projectModel) *project.Project {
	pid, _ := id.ParseProjectID(m.ID) //nolint:errcheck // stored IDs are always valid
	p := &project.Project{
		ID:             pid,
		Name:           m.Name,
		ProjectManager: m.ProjectManager,
		Status:         project.Status(m.Status),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.PoleID != nil {
		v, err := id.ParsePoleID(*m.PoleID)
		if err == nil {
			p.PoleID = v
		}
	}
	if m.DirectionID != nil {
		v, err := id.ParseDirectionID(*m.DirectionID)
		if err == nil {
			p.DirectionID = v
		}
	}
	if m.ServiceID != nil {
		v, err := id.ParseServiceID(*m.ServiceID)
		if err == nil {
			p.ServiceID = v
		}
	}
	if m.OwnerID != nil {
		v, err := id.ParseUserID(*m.OwnerID)
		if err == nil {
			p.OwnerID = v
		}
	}
	if m.ManagerID != nil {
		v, err := id.ParseUserID(*m.ManagerID)
		if err == nil {
			p.ManagerID = v
		}
	}
	return p
}

type memberModel struct {
	grove.BaseModel `grove:"table:portier_project_members"`
	ProjectID       string    `grove:"project_id,pk"`
	UserID          string    `grove:"user_id,pk"`
	AddedBy         *string   `grove:"added_by"`
	CreatedAt       time.Time `grove:"created_at,notnull"`
}

func memberToModel(m *project.Member) *memberModel {
	mm := &memberModel{
		ProjectID: m.ProjectID.String(),
		UserID:    m.UserID.String(),
		CreatedAt: m.CreatedAt,
	}
	if !m.AddedBy.IsNil() {
		s := m.AddedBy.String()
		mm.AddedBy = &s
	}
	return mm
}

func memberFromModel(m *memberModel) *project.Member {
	pid, _ := id.ParseProjectID(m.ProjectID) //nolint:errcheck // stored IDs are always valid
	uid, _ := id.ParseUserID(m.UserID)       //nolint:errcheck
	mem := &project.Member{
		ProjectID: pid,
		UserID:    uid,
		CreatedAt: m.CreatedAt,
	}
	if m.AddedBy != nil {
		ab, err := id.ParseUserID(*m.AddedBy)
		if err == nil {
			mem.AddedBy = ab
		}
	}
	return mem
}

// ──────────────────────────────────────────────────
// Profile models
// ──────────────────────────────────────────────────

type profileModel struct {
	grove.BaseModel `grove:"table:portier_profiles"`
	ID              string    `grove:"id,pk"`
	Email           string    `grove:"email,notnull"`
	DisplayName     string    `grove:"display_name"`
	CreatedAt       time.Time `grove:"created_at,notnull"`
	UpdatedAt       time.Time `grove:"updated_at,notnull"`
}

func profileToModel(p *profile.Profile) *profileModel {
	return &profileModel{
		ID:          p.ID.String(),
		Email:       p.Email,
		DisplayName: p.DisplayName,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func profileFromModel(m *profileModel) *profile.Profile {
	uid, _ := id.ParseUserID(m.ID) //nolint:errcheck // stored IDs are always valid
	return &profile.Profile{
		ID:          uid,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type roleGrantModel struct {
	grove.BaseModel `grove:"table:portier_role_grants"`
	UserID          string `grove:"user_id,pk"`
	Label           string `grove:"label,pk"`
}

// ──────────────────────────────────────────────────
// DecisionLog model
// ──────────────────────────────────────────────────

type decisionLogModel struct {
	grove.BaseModel `grove:"table:portier_decision_logs"`
	ID              string    `grove:"id,pk"`
	UserID          string    `grove:"user_id,notnull"`
	Action          string    `grove:"action,notnull"`
	ProjectID       *string   `grove:"project_id"`
	Decision        string    `grove:"decision,notnull"`
	Reason          string    `grove:"reason"`
	EvalTimeNs      int64     `grove:"eval_time_ns,notnull"`
	RequestIP       string    `grove:"request_ip"`
	CreatedAt       time.Time `grove:"created_at,notnull"`
}

func decisionLogToModel(e *decisionlog.Entry) *decisionLogModel {
	m := &decisionLogModel{
		ID:         e.ID.String(),
		UserID:     e.UserID.String(),
		Action:     e.Action,
		Decision:   e.Decision,
		Reason:     e.Reason,
		EvalTimeNs: e.EvalTimeNs,
		RequestIP:  e.RequestIP,
		CreatedAt:  e.CreatedAt,
	}
	if !e.ProjectID.IsNil() {
		s := e.ProjectID.String()
		m.ProjectID = &s
	}
	return m
}

func decisionLogFromModel(m *decisionLogModel) *decisionlog.Entry {
	lid, _ := id.ParseDecisionLogID(m.ID) //nolint:errcheck // stored IDs are always valid
	uid, _ := id.ParseUserID(m.UserID)    //nolint:errcheck
	e := &decisionlog.Entry{
		ID:         lid,
		UserID:     uid,
		Action:     m.Action,
		Decision:   m.Decision,
		Reason:     m.Reason,
		EvalTimeNs: m.EvalTimeNs,
		RequestIP:  m.RequestIP,
		CreatedAt:  m.CreatedAt,
	}
	if m.ProjectID != nil {
		pid, err := id.ParseProjectID(*m.ProjectID)
		if err == nil {
			e.ProjectID = pid
		}
	}
	return e
}
