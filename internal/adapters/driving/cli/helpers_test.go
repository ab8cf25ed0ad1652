package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/exclint/internal/adapters/driven/config/file"
	"github.com/custodia-labs/exclint/internal/logger"
)

// testManifest declares one unnecessary, one invalid and one necessary exclusion.
const testManifest = `name = "acme-app"
resolved = [
  "com.google.guava:guava:32.1.3-jre",
  "com.google.code.findbugs:jsr305:3.0.2",
  "org.slf4j:slf4j-api:2.0.9",
]

[[dependencies]]
artifact = "com.google.guava:guava:32.1.3-jre"
exclusions = ["com.google.code.findbugs:jsr305", "org.checkerframework:checker-qual"]

[[dependencies]]
artifact = "com.acme:legacy:2.1"
exclusions = ["org.slf4j:slf4j-api"]

[closures]
"com.google.guava:guava:32.1.3-jre" = [
  "com.google.guava:failureaccess:1.0.1",
  "com.google.code.findbugs:jsr305:3.0.2",
]
"com.acme:legacy:2.1" = ["org.slf4j:slf4j-api:1.7.36"]
`

const (
	unnecessaryMessage = "Dependency com.google.code.findbugs:jsr305 is excluded from " +
		"com.google.guava:guava:32.1.3-jre but it would not clash with any other dependency"
	invalidMessage = "Dependency org.checkerframework:checker-qual is excluded from " +
		"com.google.guava:guava:32.1.3-jre but is not one of its dependencies"
)

// writeFile writes content to name inside dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// executeCommand runs the root command with args and returns its output.
// Package-level flag values are restored afterwards.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags()
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags() {
	configPath = file.DefaultFileName
	verbose = false
	analyzePOM = ""
	analyzeBOM = ""
	analyzeManifest = ""
	analyzeFormat = formatText
	analyzeWorkers = 0
	analyzeOffline = false
	analyzeNoCache = false
	analyzeRepositories = nil
	initForce = false
	logger.SetVerbose(false)
}
