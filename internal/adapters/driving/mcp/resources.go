package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const uriScheme = "exclint://"

// SuppressionsURI is the resource listing the configured suppression rules.
const SuppressionsURI = uriScheme + "suppressions"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         SuppressionsURI,
		Name:        "suppressions",
		Description: "Suppression rules applied to every analysis",
		MIMEType:    "application/json",
	}, s.handleSuppressionsResource)
}

// handleSuppressionsResource returns the configured suppression rules.
func (s *Server) handleSuppressionsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	rules := make([]SuppressionInput, len(s.ports.Suppressions))
	for i, r := range s.ports.Suppressions {
		rules[i] = SuppressionInput{
			DependencyGroupID:    r.DependencyGroupID,
			DependencyArtifactID: r.DependencyArtifactID,
			ExclusionGroupID:     r.ExclusionGroupID,
			ExclusionArtifactID:  r.ExclusionArtifactID,
		}
	}

	data, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling suppressions: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
