package driving

import (
	"context"
	"errors"

	"github.com/custodia-labs/exclint/internal/core/domain"
)

// ErrInvalidProjectFiles indicates a run request that names no usable input.
var ErrInvalidProjectFiles = errors.New("either a manifest or a pom and bom are required")

// ProjectFiles names the files a project is read from.
// Either Manifest is set, or POM and BOM both are.
type ProjectFiles struct {
	Manifest string
	POM      string
	BOM      string
}

// Validate ensures exactly one input form is used.
func (f ProjectFiles) Validate() error {
	switch {
	case f.Manifest != "" && (f.POM != "" || f.BOM != ""):
		return ErrInvalidProjectFiles
	case f.Manifest != "":
		return nil
	case f.POM != "" && f.BOM != "":
		return nil
	default:
		return ErrInvalidProjectFiles
	}
}

// RunRequest is the input of a file-based analysis run.
type RunRequest struct {
	Files ProjectFiles

	// Suppressions are added to the configured ones.
	Suppressions []domain.SuppressionRule

	// Offline restricts closure resolution to closures recorded in the manifest.
	Offline bool
}

// AnalysisRunner loads a project from files and analyses it.
type AnalysisRunner interface {
	Run(ctx context.Context, req RunRequest) (*domain.Report, error)
}
