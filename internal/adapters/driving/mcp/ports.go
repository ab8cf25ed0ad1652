package mcp

import (
	"github.com/custodia-labs/exclint/internal/core/domain"
	"github.com/custodia-labs/exclint/internal/core/ports/driving"
)

// Ports aggregates everything the MCP server needs.
type Ports struct {
	// Runner loads projects from files and analyses them.
	Runner driving.AnalysisRunner

	// Suppressions are the configured rules, exposed as a resource.
	Suppressions []domain.SuppressionRule

	// Version is the server version reported to clients.
	Version string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Runner == nil {
		return ErrMissingRunner
	}
	return nil
}
