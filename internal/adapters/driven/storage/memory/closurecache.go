package memory

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/custodia-labs/exclint/internal/core/domain"
	"github.com/custodia-labs/exclint/internal/core/ports/driven"
)

// DefaultClosureCacheSize bounds the number of closures kept in memory.
const DefaultClosureCacheSize = 1024

// Ensure ClosureCache implements the interface.
var _ driven.ClosureCache = (*ClosureCache)(nil)

// ClosureCache is an LRU-bounded in-memory implementation of driven.ClosureCache.
type ClosureCache struct {
	entries *lru.Cache[string, []domain.ArtifactVersion]
}

// NewClosureCache creates a cache holding at most size closures.
// Non-positive sizes use DefaultClosureCacheSize.
func NewClosureCache(size int) (*ClosureCache, error) {
	if size <= 0 {
		size = DefaultClosureCacheSize
	}
	entries, err := lru.New[string, []domain.ArtifactVersion](size)
	if err != nil {
		return nil, fmt.Errorf("create closure cache: %w", err)
	}
	return &ClosureCache{entries: entries}, nil
}

// Get returns a copy of the cached closure, or domain.ErrNotFound.
func (c *ClosureCache) Get(_ context.Context, key string) ([]domain.ArtifactVersion, error) {
	closure, ok := c.entries.Get(key)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]domain.ArtifactVersion(nil), closure...), nil
}

// Put stores a copy of closure.
func (c *ClosureCache) Put(_ context.Context, key string, closure []domain.ArtifactVersion) error {
	c.entries.Add(key, append([]domain.ArtifactVersion(nil), closure...))
	return nil
}

// Clear removes all entries.
func (c *ClosureCache) Clear(_ context.Context) (int, error) {
	n := c.entries.Len()
	c.entries.Purge()
	return n, nil
}

// Len returns the number of cached closures.
func (c *ClosureCache) Len() int {
	return c.entries.Len()
}
