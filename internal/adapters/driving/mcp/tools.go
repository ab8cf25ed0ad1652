package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/exclint/internal/core/domain"
	"github.com/custodia-labs/exclint/internal/core/ports/driving"
)

// AnalyzeInput is the input schema for the analyze_exclusions tool.
type AnalyzeInput struct {
	Manifest     string             `json:"manifest,omitempty" jsonschema:"path to a TOML project manifest"`
	POM          string             `json:"pom,omitempty" jsonschema:"path to the project pom.xml, used with bom"`
	BOM          string             `json:"bom,omitempty" jsonschema:"path to a CycloneDX BOM of the resolved dependencies, used with pom"`
	Suppressions []SuppressionInput `json:"suppressions,omitempty" jsonschema:"extra suppression rules for this run"`
	Offline      bool               `json:"offline,omitempty" jsonschema:"only use closures recorded in the manifest"`
}

// SuppressionInput is one suppression rule. Use "*" to match any value.
type SuppressionInput struct {
	DependencyGroupID    string `json:"dependency_group_id" jsonschema:"group id of the dependency, or *"`
	DependencyArtifactID string `json:"dependency_artifact_id" jsonschema:"artifact id of the dependency, or *"`
	ExclusionGroupID     string `json:"exclusion_group_id" jsonschema:"group id of the exclusion, or *"`
	ExclusionArtifactID  string `json:"exclusion_artifact_id" jsonschema:"artifact id of the exclusion, or *"`
}

// AnalyzeOutput is the output schema for the analyze_exclusions tool.
type AnalyzeOutput struct {
	RunID     string          `json:"run_id"`
	Messages  []string        `json:"messages"`
	Warnings  []string        `json:"warnings"`
	HasErrors bool            `json:"has_errors"`
	Findings  []FindingOutput `json:"findings"`
}

// FindingOutput is the classification of one declared exclusion.
type FindingOutput struct {
	Kind             string   `json:"kind"`
	Dependency       string   `json:"dependency"`
	Exclusion        string   `json:"exclusion"`
	Reason           string   `json:"reason,omitempty"`
	ClosureVersion   string   `json:"closure_version,omitempty"`
	ClashingVersions []string `json:"clashing_versions,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_exclusions",
		Description: "Find redundant dependency exclusions in a Maven project",
	}, s.handleAnalyze)
}

// handleAnalyze handles the analyze_exclusions tool invocation.
func (s *Server) handleAnalyze(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, AnalyzeOutput, error) {
	req := driving.RunRequest{
		Files: driving.ProjectFiles{
			Manifest: input.Manifest,
			POM:      input.POM,
			BOM:      input.BOM,
		},
		Offline: input.Offline,
	}
	if err := req.Files.Validate(); err != nil {
		return nil, AnalyzeOutput{}, err
	}

	for i, in := range input.Suppressions {
		rule := domain.SuppressionRule{
			DependencyGroupID:    in.DependencyGroupID,
			DependencyArtifactID: in.DependencyArtifactID,
			ExclusionGroupID:     in.ExclusionGroupID,
			ExclusionArtifactID:  in.ExclusionArtifactID,
		}
		if err := rule.Validate(); err != nil {
			return nil, AnalyzeOutput{}, fmt.Errorf("suppressions[%d]: %w", i, err)
		}
		req.Suppressions = append(req.Suppressions, rule)
	}

	report, err := s.ports.Runner.Run(ctx, req)
	if err != nil {
		return nil, AnalyzeOutput{}, err
	}

	messages, hasErrors := report.Finalize()
	findings := report.Findings()

	output := AnalyzeOutput{
		RunID:     report.RunID,
		Messages:  messages,
		Warnings:  report.Warnings(),
		HasErrors: hasErrors,
		Findings:  make([]FindingOutput, len(findings)),
	}
	for i, f := range findings {
		output.Findings[i] = FindingOutput{
			Kind:             f.Kind.String(),
			Dependency:       f.Dependency.String(),
			Exclusion:        f.Exclusion.String(),
			Reason:           f.Reason,
			ClosureVersion:   f.ClosureVersion,
			ClashingVersions: f.ClashingVersions,
		}
	}

	return nil, output, nil
}
