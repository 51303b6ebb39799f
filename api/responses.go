package api

import "github.com/portier-io/portier"

// AccessCheckResponse is the response for a project access check.
type AccessCheckResponse struct {
	Allowed      bool                 `json:"allowed" description:"Whether the checked action is allowed"`
	Decision     string               `json:"decision" description:"Decision code"`
	Reason       string               `json:"reason,omitempty" description:"Human-readable reason"`
	Capabilities portier.Capabilities `json:"capabilities" description:"Full capability set"`
	EvalTimeNs   int64                `json:"eval_time_ns" description:"Evaluation time in nanoseconds"`
}

// BatchAccessCheckResponse contains results for multiple checks.
type BatchAccessCheckResponse struct {
	Results []AccessCheckResponse `json:"results" description:"Check results in order"`
}

// AccessibleEntitiesResponse lists the unit IDs a user can see, per tier.
type AccessibleEntitiesResponse struct {
	Poles      []string `json:"poles" description:"Visible pole IDs"`
	Directions []string `json:"directions" description:"Visible direction IDs"`
	Services   []string `json:"services" description:"Visible service IDs"`
}

// AllowedResponse is a bare allow/deny answer.
type AllowedResponse struct {
	Allowed bool `json:"allowed" description:"Whether the request is allowed"`
}

// RolesResponse reports a user's resolved role.
type RolesResponse struct {
	Highest string   `json:"highest" description:"Highest-precedence role"`
	Labels  []string `json:"labels" description:"Raw role labels held"`
}

// PurgeDecisionLogsResponse reports how many entries a purge removed.
type PurgeDecisionLogsResponse struct {
	Removed int64 `json:"removed" description:"Number of entries removed"`
}

// ListResponse wraps a list of items with pagination metadata.
type ListResponse[T any] struct {
	Items  []T   `json:"items" description:"List of items"`
	Total  int64 `json:"total" description:"Total count"`
	Limit  int   `json:"limit" description:"Page size"`
	Offset int   `json:"offset" description:"Page offset"`
}
