package cache

import (
	"context"
	"testing"
	"time"

	"github.com/portier-io/portier"
	"github.com/portier-io/portier/id"
)

func TestMemoryCacheHitMiss(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(WithTTL(time.Minute))

	userID := id.NewUserID()
	projectID := id.NewProjectID()
	dec := &portier.ProjectDecision{
		UserID:    userID,
		ProjectID: projectID,
		Decision:  portier.DecisionAllow,
	}

	// Miss
	_, ok := c.Get(ctx, userID, projectID)
	if ok {
		t.Fatal("expected cache miss")
	}

	// Set + Hit
	c.Set(ctx, userID, projectID, dec)
	got, ok := c.Get(ctx, userID, projectID)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.Decision != portier.DecisionAllow {
		t.Fatal("expected allow decision")
	}
}

func TestMemoryCacheTTLExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(WithTTL(1 * time.Millisecond))

	userID := id.NewUserID()
	projectID := id.NewProjectID()

	c.Set(ctx, userID, projectID, &portier.ProjectDecision{Decision: portier.DecisionAllow})
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get(ctx, userID, projectID)
	if ok {
		t.Fatal("expected cache miss after TTL expiry")
	}
}

func TestMemoryCacheInvalidateUser(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	u1 := id.NewUserID()
	u2 := id.NewUserID()
	p1 := id.NewProjectID()
	p2 := id.NewProjectID()

	c.Set(ctx, u1, p1, &portier.ProjectDecision{Decision: portier.DecisionAllow})
	c.Set(ctx, u1, p2, &portier.ProjectDecision{Decision: portier.DecisionDenyDefault})
	c.Set(ctx, u2, p1, &portier.ProjectDecision{Decision: portier.DecisionAllow})

	c.InvalidateUser(ctx, u1)

	if _, ok := c.Get(ctx, u1, p1); ok {
		t.Fatal("u1/p1 should be invalidated")
	}
	if _, ok := c.Get(ctx, u1, p2); ok {
		t.Fatal("u1/p2 should be invalidated")
	}
	if _, ok := c.Get(ctx, u2, p1); !ok {
		t.Fatal("u2/p1 should still be cached")
	}
}

func TestMemoryCacheInvalidateProject(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	u1 := id.NewUserID()
	u2 := id.NewUserID()
	p1 := id.NewProjectID()
	p2 := id.NewProjectID()

	c.Set(ctx, u1, p1, &portier.ProjectDecision{Decision: portier.DecisionAllow})
	c.Set(ctx, u2, p1, &portier.ProjectDecision{Decision: portier.DecisionAllow})
	c.Set(ctx, u1, p2, &portier.ProjectDecision{Decision: portier.DecisionAllow})

	c.InvalidateProject(ctx, p1)

	if _, ok := c.Get(ctx, u1, p1); ok {
		t.Fatal("u1/p1 should be invalidated")
	}
	if _, ok := c.Get(ctx, u2, p1); ok {
		t.Fatal("u2/p1 should be invalidated")
	}
	if _, ok := c.Get(ctx, u1, p2); !ok {
		t.Fatal("u1/p2 should still be cached")
	}
}

func TestMemoryCacheInvalidateAll(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	u1 := id.NewUserID()
	p1 := id.NewProjectID()

	c.Set(ctx, u1, p1, &portier.ProjectDecision{Decision: portier.DecisionAllow})
	c.InvalidateAll(ctx)

	if _, ok := c.Get(ctx, u1, p1); ok {
		t.Fatal("expected empty cache after InvalidateAll")
	}
}

func TestMemoryCacheMaxSize(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(WithMaxSize(2))

	userID := id.NewUserID()
	for i := 0; i < 5; i++ {
		c.Set(ctx, userID, id.NewProjectID(), &portier.ProjectDecision{Decision: portier.DecisionAllow})
	}

	c.mu.RLock()
	size := len(c.entries)
	c.mu.RUnlock()
	if size > 2 {
		t.Fatalf("expected max 2 entries, got %d", size)
	}
}
