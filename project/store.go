package project

import (
	"context"

	"github.com/portier-io/portier/id"
)

// Store defines persistence operations for projects and memberships.
type Store interface {
	// CreateProject persists a new project.
	CreateProject(ctx context.Context, p *Project) error

	// GetProject retrieves a project by ID.
	GetProject(ctx context.Context, projectID id.ProjectID) (*Project, error)

	// UpdateProject updates an existing project.
	UpdateProject(ctx context.Context, p *Project) error

	// DeleteProject removes a project and its membership records.
	DeleteProject(ctx context.Context, projectID id.ProjectID) error

	// ListProjects returns projects matching the filter, ordered by name.
	ListProjects(ctx context.Context, filter *ListFilter) ([]*Project, error)

	// CountProjects returns the number of projects matching the filter.
	CountProjects(ctx context.Context, filter *ListFilter) (int64, error)

	// AddProjectMember records a user as a member of a project.
	AddProjectMember(ctx context.Context, m *Member) error

	// RemoveProjectMember removes a user from a project's team.
	RemoveProjectMember(ctx context.Context, projectID id.ProjectID, userID id.UserID) error

	// IsProjectMember reports whether a user is a recorded project member.
	IsProjectMember(ctx context.Context, projectID id.ProjectID, userID id.UserID) (bool, error)

	// ListProjectMembers returns a project's membership records.
	ListProjectMembers(ctx context.Context, projectID id.ProjectID) ([]*Member, error)

	// ListProjectsForMember returns the IDs of projects a user belongs to.
	ListProjectsForMember(ctx context.Context, userID id.UserID) ([]id.ProjectID, error)
}
