package mcp

import (
	"context"

	"github.com/custodia-labs/exclint/internal/core/domain"
	"github.com/custodia-labs/exclint/internal/core/ports/driving"
)

// mockRunner is a mock implementation of driving.AnalysisRunner.
type mockRunner struct {
	report *domain.Report
	err    error

	requests []driving.RunRequest
}

func (m *mockRunner) Run(_ context.Context, req driving.RunRequest) (*domain.Report, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	if m.report == nil {
		return domain.NewReport("run-0"), nil
	}
	return m.report, nil
}
