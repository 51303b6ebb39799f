package portier

import (
	"context"

	"github.com/portier-io/portier/id"
)

// Cache provides caching for project permission decisions. Cached
// entries go stale the moment an assignment or role is edited elsewhere;
// mutation paths must invalidate.
type Cache interface {
	// Get returns a cached decision, if available.
	Get(ctx context.Context, userID id.UserID, projectID id.ProjectID) (*ProjectDecision, bool)

	// Set stores a decision in the cache.
	Set(ctx context.Context, userID id.UserID, projectID id.ProjectID, dec *ProjectDecision)

	// InvalidateUser removes all cached decisions for a user.
	InvalidateUser(ctx context.Context, userID id.UserID)

	// InvalidateProject removes all cached decisions for a project.
	InvalidateProject(ctx context.Context, projectID id.ProjectID)

	// InvalidateAll removes every cached decision.
	InvalidateAll(ctx context.Context)
}
