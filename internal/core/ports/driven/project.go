package driven

import (
	"context"

	"github.com/custodia-labs/exclint/internal/core/domain"
)

// ProjectSource loads the input of an analysis run.
type ProjectSource interface {
	// Load returns the declared dependencies and the resolved artifact set.
	// Structurally invalid coordinates are reported as domain.ErrInvalidCoordinate.
	Load(ctx context.Context) (*domain.Project, error)

	// Paths returns the files the project is read from, for watching.
	Paths() []string
}
