package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/exclint/internal/adapters/driven/config/file"
)

func TestInitCmd_Use(t *testing.T) {
	assert.Equal(t, "init", initCmd.Use)
	flag := initCmd.Flags().Lookup("force")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}

func TestInitCmd_WritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".exclint.toml")

	out, err := executeCommand(t, "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	cfg, err := file.Load(path)
	require.NoError(t, err)
	defaults := file.Default()
	assert.Equal(t, defaults.Maven.Repositories, cfg.Maven.Repositories)
	assert.Equal(t, defaults.Analysis.Workers, cfg.Analysis.Workers)
	assert.Equal(t, defaults.Cache, cfg.Cache)
	assert.Empty(t, cfg.Suppressions)
}

func TestInitCmd_KeepsExistingFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), ".exclint.toml", "[analysis]\nworkers = 2\n")

	_, err := executeCommand(t, "init", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	cfg, err := file.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Analysis.Workers)

	_, err = executeCommand(t, "init", "--config", path, "--force")
	require.NoError(t, err)

	cfg, err = file.Load(path)
	require.NoError(t, err)
	assert.Equal(t, file.DefaultWorkers, cfg.Analysis.Workers)
}
