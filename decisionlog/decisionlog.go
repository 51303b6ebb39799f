// Package decisionlog defines the permission decision log Entry entity.
// Recording is optional and disabled by default; entries are diagnostic
// records of what the engine decided and why.
package decisionlog

import (
	"time"

	"github.com/portier-io/portier/id"
)

// Entry is a single permission decision record.
type Entry struct {
	ID         id.DecisionLogID `json:"id" db:"id"`
	UserID     id.UserID        `json:"user_id" db:"user_id"`
	Action     string           `json:"action" db:"action"`
	ProjectID  id.ProjectID     `json:"project_id,omitempty" db:"project_id"`
	Decision   string           `json:"decision" db:"decision"`
	Reason     string           `json:"reason,omitempty" db:"reason"`
	EvalTimeNs int64            `json:"eval_time_ns" db:"eval_time_ns"`
	RequestIP  string           `json:"request_ip,omitempty" db:"request_ip"`
	CreatedAt  time.Time        `json:"created_at" db:"created_at"`
}

// QueryFilter contains filters for querying decision logs.
type QueryFilter struct {
	UserID    *id.UserID    `json:"user_id,omitempty"`
	ProjectID *id.ProjectID `json:"project_id,omitempty"`
	Action    string        `json:"action,omitempty"`
	Decision  string        `json:"decision,omitempty"`
	After     *time.Time    `json:"after,omitempty"`
	Before    *time.Time    `json:"before,omitempty"`
	Limit     int           `json:"limit,omitempty"`
	Offset    int           `json:"offset,omitempty"`
}
