// Package mcp provides an MCP (Model Context Protocol) server adapter for exclint.
// It lets AI assistants run exclusion analyses on local Maven projects.
package mcp

import "errors"

// ErrMissingRunner is returned when the analysis runner is not provided.
var ErrMissingRunner = errors.New("mcp: analysis runner is required")
