// Package cache provides caching implementations for Portier permission
// decisions.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/portier-io/portier"
	"github.com/portier-io/portier/id"
)

// Compile-time interface check.
var _ portier.Cache = (*Memory)(nil)

// Memory is an in-memory cache with TTL-based expiration.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]*entry
	ttl     time.Duration
	maxSize int
}

type entry struct {
	dec       *portier.ProjectDecision
	expiresAt time.Time
}

// MemoryOption configures the memory cache.
type MemoryOption func(*Memory)

// WithTTL sets the cache entry time-to-live.
func WithTTL(ttl time.Duration) MemoryOption {
	return func(m *Memory) { m.ttl = ttl }
}

// WithMaxSize sets the maximum number of cache entries.
func WithMaxSize(n int) MemoryOption {
	return func(m *Memory) { m.maxSize = n }
}

// NewMemory creates a new in-memory cache.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		entries: make(map[string]*entry),
		ttl:     5 * time.Minute,
		maxSize: 10000,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns a cached decision.
func (m *Memory) Get(_ context.Context, userID id.UserID, projectID id.ProjectID) (*portier.ProjectDecision, bool) {
	key := cacheKey(userID, projectID)
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false
	}
	return e.dec, true
}

// Set stores a decision in the cache.
func (m *Memory) Set(_ context.Context, userID id.UserID, projectID id.ProjectID, dec *portier.ProjectDecision) {
	key := cacheKey(userID, projectID)
	m.mu.Lock()
	defer m.mu.Unlock()

	// Evict if at capacity.
	if len(m.entries) >= m.maxSize {
		m.evictExpired()
		if len(m.entries) >= m.maxSize {
			// Evict one arbitrary entry.
			m.evictOne()
		}
	}

	m.entries[key] = &entry{
		dec:       dec,
		expiresAt: time.Now().Add(m.ttl),
	}
}

// InvalidateUser removes all cached decisions for a user.
func (m *Memory) InvalidateUser(_ context.Context, userID id.UserID) {
	prefix := userID.String() + ":"
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.entries {
		if strings.HasPrefix(k, prefix) {
			delete(m.entries, k)
		}
	}
}

// InvalidateProject removes all cached decisions for a project.
func (m *Memory) InvalidateProject(_ context.Context, projectID id.ProjectID) {
	suffix := ":" + projectID.String()
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.entries {
		if strings.HasSuffix(k, suffix) {
			delete(m.entries, k)
		}
	}
}

// InvalidateAll removes every cached decision.
func (m *Memory) InvalidateAll(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]*entry)
}

func cacheKey(userID id.UserID, projectID id.ProjectID) string {
	return userID.String() + ":" + projectID.String()
}

// evictExpired removes all expired entries. Must hold write lock.
func (m *Memory) evictExpired() {
	now := time.Now()
	for k, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, k)
		}
	}
}

// evictOne removes one arbitrary entry. Must hold write lock.
func (m *Memory) evictOne() {
	for k := range m.entries {
		delete(m.entries, k)
		return
	}
}
