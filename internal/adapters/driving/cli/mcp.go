package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/exclint/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.
It exposes the analyze_exclusions tool and the configured suppression rules.

By default, the server communicates over stdio using JSON-RPC.
Use --port to start a streamable HTTP server instead.

Examples:
  # Stdio mode (default)
  exclint mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  exclint mcp serve --port 8080`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().Bool("no-cache", false, "bypass the persistent closure cache")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("getting no-cache flag: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rules, err := cfg.SuppressionRules()
	if err != nil {
		return err
	}
	r, err := newRunner(cfg, runnerOptions{NoCache: noCache})
	if err != nil {
		return err
	}
	defer r.Close() //nolint:errcheck

	server, err := mcp.NewServer(&mcp.Ports{
		Runner:       r,
		Suppressions: rules,
		Version:      version,
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
