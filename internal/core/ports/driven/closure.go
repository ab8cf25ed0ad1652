package driven

import (
	"context"

	"github.com/custodia-labs/exclint/internal/core/domain"
)

// ClosureResolver resolves what a dependency would pull in if none of its
// declared exclusions were applied.
type ClosureResolver interface {
	// ResolveClosure returns the compile and runtime transitive closure of dep.
	// The dependency's own exclusions must NOT be applied. Scope filtering is the
	// resolver's responsibility. Failures are returned as errors wrapping
	// domain.ErrClosureResolution; the caller degrades them to an empty closure.
	ResolveClosure(ctx context.Context, dep domain.Dependency) ([]domain.ArtifactVersion, error)
}

// ClosureResolverFunc adapts a function to ClosureResolver.
type ClosureResolverFunc func(ctx context.Context, dep domain.Dependency) ([]domain.ArtifactVersion, error)

// ResolveClosure calls f(ctx, dep).
func (f ClosureResolverFunc) ResolveClosure(ctx context.Context, dep domain.Dependency) ([]domain.ArtifactVersion, error) {
	return f(ctx, dep)
}
