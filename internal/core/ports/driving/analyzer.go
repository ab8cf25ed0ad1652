package driving

import (
	"context"

	"github.com/custodia-labs/exclint/internal/core/domain"
)

// ExclusionAnalyzer classifies every declared exclusion of a project.
type ExclusionAnalyzer interface {
	// Analyze runs one analysis pass and returns its report.
	// Only cancellation and structurally invalid input are returned as errors;
	// redundant exclusions are reported through the Report.
	Analyze(ctx context.Context, req AnalyzeRequest) (*domain.Report, error)
}

// AnalyzeRequest is the input of one analysis run.
type AnalyzeRequest struct {
	// Project holds the declared dependencies and the resolved set.
	Project *domain.Project

	// Suppressions exempt matching (dependency, exclusion) pairs.
	Suppressions []domain.SuppressionRule
}
