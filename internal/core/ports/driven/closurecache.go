package driven

import (
	"context"

	"github.com/custodia-labs/exclint/internal/core/domain"
)

// ClosureCache persists resolved closures keyed by dependency.
type ClosureCache interface {
	// Get returns the cached closure for key.
	// Returns domain.ErrNotFound on a miss or an expired entry.
	Get(ctx context.Context, key string) ([]domain.ArtifactVersion, error)

	// Put stores a closure for key, replacing any previous entry.
	Put(ctx context.Context, key string, closure []domain.ArtifactVersion) error

	// Clear removes all entries and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}
