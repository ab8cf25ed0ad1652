package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPCmd_Use(t *testing.T) {
	assert.Equal(t, "mcp", mcpCmd.Use)
	assert.Equal(t, "serve", mcpServeCmd.Use)
}

func TestMCPServeCmd_Flags(t *testing.T) {
	port := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, port)
	assert.Equal(t, "p", port.Shorthand)
	assert.Equal(t, "0", port.DefValue)

	assert.NotNil(t, mcpServeCmd.Flags().Lookup("no-cache"))
}

func TestMCPServeCmd_InvalidConfig(t *testing.T) {
	config := writeFile(t, t.TempDir(), ".exclint.toml", "[analysis]\nworkers = -1\n")

	_, err := executeCommand(t, "mcp", "serve", "--config", config)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis.workers must not be negative")
}
