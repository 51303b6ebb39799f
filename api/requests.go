package api

// ──────────────────────────────────────────────────
// Access check requests
// ──────────────────────────────────────────────────

// AccessCheckRequest is the request body for a project access check.
type AccessCheckRequest struct {
	UserID    string `json:"user_id" description:"User ID"`
	ProjectID string `json:"project_id" description:"Project ID"`
	Action    string `json:"action,omitempty" description:"Capability to check (view, edit, delete, manage_members, manage_tasks, manage_risks, create_review)"`
}

// BatchAccessCheckRequest contains multiple access checks.
type BatchAccessCheckRequest struct {
	Checks []AccessCheckRequest `json:"checks" description:"List of access checks"`
}

// OrgCheckRequest asks whether a user can see a point of the hierarchy.
type OrgCheckRequest struct {
	UserID      string `json:"user_id" description:"User ID"`
	PoleID      string `json:"pole_id,omitempty" description:"Pole ID"`
	DirectionID string `json:"direction_id,omitempty" description:"Direction ID"`
	ServiceID   string `json:"service_id,omitempty" description:"Service ID"`
}

// TaskEditCheckRequest asks whether a user can edit a task on a project.
type TaskEditCheckRequest struct {
	UserID     string `json:"user_id" description:"User performing the edit"`
	ProjectID  string `json:"project_id" description:"Project ID"`
	AssigneeID string `json:"assignee_id,omitempty" description:"User the task is assigned to"`
}

// GetAccessibleEntitiesRequest holds the query for resolving a user's
// visible slice of the hierarchy.
type GetAccessibleEntitiesRequest struct {
	UserID string `query:"user_id" description:"User ID"`
}

// ──────────────────────────────────────────────────
// Org unit requests
// ──────────────────────────────────────────────────

// CreateUnitRequest is the body for creating an organizational unit.
type CreateUnitRequest struct {
	Kind     string `json:"kind" description:"Unit tier (pole, direction, service)"`
	Name     string `json:"name" description:"Unit name"`
	ParentID string `json:"parent_id,omitempty" description:"Parent unit ID (required for directions and services)"`
}

// UpdateUnitRequest is the body for updating a unit.
type UpdateUnitRequest struct {
	Name string `json:"name,omitempty" description:"Unit name"`
}

// GetUnitRequest is the path parameter for getting a unit.
type GetUnitRequest struct {
	UnitID string `path:"unitId" description:"Unit ID"`
}

// ListUnitsRequest holds query parameters for listing units.
type ListUnitsRequest struct {
	Kind     string `query:"kind" description:"Filter by tier"`
	ParentID string `query:"parent_id" description:"Filter by parent unit"`
	Search   string `query:"search" description:"Search by name"`
	Limit    int    `query:"limit" description:"Maximum results (default: 50)"`
	Offset   int    `query:"offset" description:"Results to skip"`
}

// ──────────────────────────────────────────────────
// Assignment requests
// ──────────────────────────────────────────────────

// GrantDirectRequest is the body for granting a direct assignment.
type GrantDirectRequest struct {
	UserID    string `json:"user_id" description:"User to grant access to"`
	UnitID    string `json:"unit_id" description:"Unit the grant covers (no descendants)"`
	GrantedBy string `json:"granted_by,omitempty" description:"Granting user ID"`
}

// GrantPathRequest is the body for granting a path assignment.
type GrantPathRequest struct {
	UserID      string `json:"user_id" description:"User to grant access to"`
	PoleID      string `json:"pole_id" description:"Pole ID (required)"`
	DirectionID string `json:"direction_id,omitempty" description:"Direction ID"`
	ServiceID   string `json:"service_id,omitempty" description:"Service ID"`
	GrantedBy   string `json:"granted_by,omitempty" description:"Granting user ID"`
}

// GetAssignmentRequest is the path parameter for getting an assignment.
type GetAssignmentRequest struct {
	AssignmentID string `path:"assignmentId" description:"Assignment ID"`
}

// ListAssignmentsRequest holds query parameters.
type ListAssignmentsRequest struct {
	UserID string `query:"user_id" description:"Filter by user"`
	UnitID string `query:"unit_id" description:"Filter by referenced unit"`
	Limit  int    `query:"limit" description:"Maximum results"`
	Offset int    `query:"offset" description:"Results to skip"`
}

// GetUserAssignmentsRequest is the path parameter for a user's snapshot.
type GetUserAssignmentsRequest struct {
	UserID string `path:"userId" description:"User ID"`
}

// ──────────────────────────────────────────────────
// Project requests
// ──────────────────────────────────────────────────

// CreateProjectRequest is the body for creating a project.
type CreateProjectRequest struct {
	Name           string `json:"name" description:"Project name"`
	PoleID         string `json:"pole_id,omitempty" description:"Pole ID"`
	DirectionID    string `json:"direction_id,omitempty" description:"Direction ID"`
	ServiceID      string `json:"service_id,omitempty" description:"Service ID (most specific tier)"`
	OwnerID        string `json:"owner_id,omitempty" description:"Owning user ID"`
	ProjectManager string `json:"project_manager,omitempty" description:"Free-text manager name or email"`
	ManagerID      string `json:"manager_id,omitempty" description:"Manager profile ID"`
	Status         string `json:"status,omitempty" description:"Lifecycle status (default: active)"`
}

// UpdateProjectRequest is the body for updating a project.
type UpdateProjectRequest struct {
	Name           string  `json:"name,omitempty" description:"Project name"`
	PoleID         *string `json:"pole_id,omitempty" description:"Pole ID"`
	DirectionID    *string `json:"direction_id,omitempty" description:"Direction ID"`
	ServiceID      *string `json:"service_id,omitempty" description:"Service ID"`
	OwnerID        *string `json:"owner_id,omitempty" description:"Owning user ID"`
	ProjectManager *string `json:"project_manager,omitempty" description:"Free-text manager name or email"`
	ManagerID      *string `json:"manager_id,omitempty" description:"Manager profile ID"`
	Status         string  `json:"status,omitempty" description:"Lifecycle status"`
}

// GetProjectRequest is the path parameter for getting a project.
type GetProjectRequest struct {
	ProjectID string `path:"projectId" description:"Project ID"`
}

// ListProjectsRequest holds query parameters for listing projects.
type ListProjectsRequest struct {
	PoleID      string `query:"pole_id" description:"Filter by pole"`
	DirectionID string `query:"direction_id" description:"Filter by direction"`
	ServiceID   string `query:"service_id" description:"Filter by service"`
	OwnerID     string `query:"owner_id" description:"Filter by owner"`
	Status      string `query:"status" description:"Filter by status"`
	Search      string `query:"search" description:"Search by name"`
	Limit       int    `query:"limit" description:"Maximum results"`
	Offset      int    `query:"offset" description:"Results to skip"`
}

// AddMemberRequest is the body for adding a project member.
type AddMemberRequest struct {
	UserID  string `json:"user_id" description:"User to add"`
	AddedBy string `json:"added_by,omitempty" description:"Adding user ID"`
}

// ──────────────────────────────────────────────────
// Profile requests
// ──────────────────────────────────────────────────

// CreateProfileRequest is the body for creating a profile.
type CreateProfileRequest struct {
	ID          string `json:"id,omitempty" description:"Profile ID (generated when omitted)"`
	Email       string `json:"email" description:"Email address"`
	DisplayName string `json:"display_name,omitempty" description:"Display name"`
}

// UpdateProfileRequest is the body for updating a profile.
type UpdateProfileRequest struct {
	Email       string `json:"email,omitempty" description:"Email address"`
	DisplayName string `json:"display_name,omitempty" description:"Display name"`
}

// GetProfileRequest is the path parameter for getting a profile.
type GetProfileRequest struct {
	UserID string `path:"userId" description:"Profile ID"`
}

// ListProfilesRequest holds query parameters for listing profiles.
type ListProfilesRequest struct {
	Search string `query:"search" description:"Search by email or display name"`
	Role   string `query:"role" description:"Filter by held role label"`
	Limit  int    `query:"limit" description:"Maximum results"`
	Offset int    `query:"offset" description:"Results to skip"`
}

// GrantRoleRequest is the body for granting a role label.
type GrantRoleRequest struct {
	Label string `json:"label" description:"Role label to grant"`
}

// ──────────────────────────────────────────────────
// Decision log requests
// ──────────────────────────────────────────────────

// ListDecisionLogsRequest holds query parameters for querying decision logs.
type ListDecisionLogsRequest struct {
	UserID    string `query:"user_id" description:"Filter by user"`
	ProjectID string `query:"project_id" description:"Filter by project"`
	Action    string `query:"action" description:"Filter by action"`
	Decision  string `query:"decision" description:"Filter by decision"`
	After     string `query:"after" description:"After timestamp (RFC3339)"`
	Before    string `query:"before" description:"Before timestamp (RFC3339)"`
	Limit     int    `query:"limit" description:"Maximum results"`
	Offset    int    `query:"offset" description:"Results to skip"`
}

// PurgeDecisionLogsRequest is the body for purging old decision logs.
type PurgeDecisionLogsRequest struct {
	Before string `json:"before" description:"Remove entries older than this timestamp (RFC3339)"`
}
