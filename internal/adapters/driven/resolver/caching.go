// Package resolver provides decorators over driven.ClosureResolver.
package resolver

import (
	"context"
	"errors"

	"github.com/custodia-labs/exclint/internal/core/domain"
	"github.com/custodia-labs/exclint/internal/core/ports/driven"
	"github.com/custodia-labs/exclint/internal/logger"
)

// Ensure Caching implements the interface.
var _ driven.ClosureResolver = (*Caching)(nil)

// Caching serves closures from a cache and stores successful resolutions.
// Failures are never cached. Cache errors are logged and otherwise ignored,
// so a broken cache only costs a remote resolution.
type Caching struct {
	next  driven.ClosureResolver
	cache driven.ClosureCache
}

// NewCaching wraps next with cache.
func NewCaching(next driven.ClosureResolver, cache driven.ClosureCache) *Caching {
	return &Caching{next: next, cache: cache}
}

// CacheKey returns the cache key of dep.
func CacheKey(dep domain.Dependency) string {
	return dep.ArtifactVersion.String()
}

// ResolveClosure returns the cached closure of dep, resolving it on a miss.
func (c *Caching) ResolveClosure(ctx context.Context, dep domain.Dependency) ([]domain.ArtifactVersion, error) {
	key := CacheKey(dep)

	closure, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		logger.Debug("Closure of %s served from cache", key)
		return closure, nil
	case !errors.Is(err, domain.ErrNotFound):
		logger.Warn("Closure cache read failed for %s: %v", key, err)
	}

	closure, err = c.next.ResolveClosure(ctx, dep)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Put(ctx, key, closure); err != nil {
		logger.Warn("Closure cache write failed for %s: %v", key, err)
	}
	return closure, nil
}
