package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/exclint/internal/core/domain"
	"github.com/custodia-labs/exclint/internal/core/ports/driven"
)

// Ensure Chain implements the interface.
var _ driven.ClosureResolver = (Chain)(nil)

// Chain tries resolvers in order. A resolver that does not know a dependency
// (an error wrapping domain.ErrNotFound) hands over to the next one; any
// other outcome is final.
type Chain []driven.ClosureResolver

// ResolveClosure returns the first definitive answer of the chain.
func (c Chain) ResolveClosure(ctx context.Context, dep domain.Dependency) ([]domain.ArtifactVersion, error) {
	if len(c) == 0 {
		return nil, fmt.Errorf("%w: no resolver configured for %s", domain.ErrClosureResolution, dep)
	}
	var err error
	for _, r := range c {
		var closure []domain.ArtifactVersion
		closure, err = r.ResolveClosure(ctx, dep)
		if err == nil || !errors.Is(err, domain.ErrNotFound) {
			return closure, err
		}
	}
	return nil, err
}
