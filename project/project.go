// Package project defines the project entity and membership records
// consumed by permission evaluation.
package project

import (
	"time"

	"github.com/portier-io/portier/id"
)

// Status is the lifecycle state of a project.
type Status string

const (
	StatusActive   Status = "active"
	StatusOnHold   Status = "on_hold"
	StatusClosed   Status = "closed"
	StatusArchived Status = "archived"
)

// Project carries the facts permission evaluation needs: organizational
// placement (typically only the most specific tier is set, ancestors are
// implied), ownership, and the recorded project manager. The manager may
// be referenced by profile ID or, for people without an account, by
// free-text name or email.
type Project struct {
	ID             id.ProjectID   `json:"id" db:"id"`
	Name           string         `json:"name" db:"name"`
	PoleID         id.PoleID      `json:"pole_id,omitempty" db:"pole_id"`
	DirectionID    id.DirectionID `json:"direction_id,omitempty" db:"direction_id"`
	ServiceID      id.ServiceID   `json:"service_id,omitempty" db:"service_id"`
	OwnerID        id.UserID      `json:"owner_id,omitempty" db:"owner_id"`
	ProjectManager string         `json:"project_manager,omitempty" db:"project_manager"`
	ManagerID      id.UserID      `json:"manager_id,omitempty" db:"manager_id"`
	Status         Status         `json:"status" db:"status"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
}

// Member records that a user belongs to a project's team.
type Member struct {
	ProjectID id.ProjectID `json:"project_id" db:"project_id"`
	UserID    id.UserID    `json:"user_id" db:"user_id"`
	AddedBy   id.UserID    `json:"added_by,omitempty" db:"added_by"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}

// ListFilter contains filters for listing projects.
type ListFilter struct {
	PoleID      *id.PoleID      `json:"pole_id,omitempty"`
	DirectionID *id.DirectionID `json:"direction_id,omitempty"`
	ServiceID   *id.ServiceID   `json:"service_id,omitempty"`
	OwnerID     *id.UserID      `json:"owner_id,omitempty"`
	ManagerID   *id.UserID      `json:"manager_id,omitempty"`
	Status      Status          `json:"status,omitempty"`
	Search      string          `json:"search,omitempty"`
	Limit       int             `json:"limit,omitempty"`
	Offset      int             `json:"offset,omitempty"`
}
