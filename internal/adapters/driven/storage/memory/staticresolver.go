package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/exclint/internal/core/domain"
	"github.com/custodia-labs/exclint/internal/core/ports/driven"
)

// Ensure StaticResolver implements the interface.
var _ driven.ClosureResolver = (*StaticResolver)(nil)

// StaticResolver serves closures from a fixed table keyed by the dependency's
// display string ("g:a:v"). It backs offline analysis of manifests.
type StaticResolver struct {
	mu       sync.RWMutex
	closures map[string][]domain.ArtifactVersion
}

// NewStaticResolver creates a resolver over closures. The map is copied.
func NewStaticResolver(closures map[string][]domain.ArtifactVersion) *StaticResolver {
	r := &StaticResolver{closures: make(map[string][]domain.ArtifactVersion, len(closures))}
	for k, v := range closures {
		r.closures[k] = append([]domain.ArtifactVersion(nil), v...)
	}
	return r
}

// Set registers the closure of key.
func (r *StaticResolver) Set(key string, closure []domain.ArtifactVersion) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closures[key] = append([]domain.ArtifactVersion(nil), closure...)
}

// ResolveClosure returns the registered closure of dep.
// Unknown dependencies fail with domain.ErrClosureResolution.
func (r *StaticResolver) ResolveClosure(_ context.Context, dep domain.Dependency) ([]domain.ArtifactVersion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	closure, ok := r.closures[dep.String()]
	if !ok {
		return nil, fmt.Errorf("%w: no closure recorded for %s: %w", domain.ErrClosureResolution, dep, domain.ErrNotFound)
	}
	return append([]domain.ArtifactVersion(nil), closure...), nil
}
