package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/exclint/internal/core/ports/driving"
)

var (
	analyzePOM          string
	analyzeBOM          string
	analyzeManifest     string
	analyzeFormat       string
	analyzeWorkers      int
	analyzeOffline      bool
	analyzeNoCache      bool
	analyzeRepositories []string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Report redundant dependency exclusions",
	Long: `Analyses every exclusion declared on the direct dependencies of a project.

An exclusion is reported when the excluded artifact is not part of the
dependency's transitive closure, or when excluding it avoids no version
clash with the resolved dependency set. The command fails when at least
one exclusion is reported.

The project is read either from a pom.xml with a CycloneDX BOM of the
resolved dependencies, or from a TOML manifest.

Examples:
  exclint analyze --pom pom.xml --bom target/bom.json
  exclint analyze --manifest exclint-project.toml --offline
  exclint analyze --pom pom.xml --bom bom.xml --format json`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	addProjectFlags(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", formatText, "output format: text, json or yaml")
	rootCmd.AddCommand(analyzeCmd)
}

// addProjectFlags registers the flags shared by analyze and watch.
func addProjectFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&analyzePOM, "pom", "", "project pom.xml")
	cmd.Flags().StringVar(&analyzeBOM, "bom", "", "CycloneDX BOM of the resolved dependencies (JSON or XML)")
	cmd.Flags().StringVar(&analyzeManifest, "manifest", "", "TOML project manifest")
	cmd.Flags().IntVarP(&analyzeWorkers, "workers", "w", 0, "closures resolved in parallel (0 = configured value)")
	cmd.Flags().BoolVar(&analyzeOffline, "offline", false, "only use closures recorded in the manifest")
	cmd.Flags().BoolVar(&analyzeNoCache, "no-cache", false, "bypass the persistent closure cache")
	cmd.Flags().StringSliceVar(&analyzeRepositories, "repository", nil, "Maven repository URL (repeatable, replaces configured ones)")
}

func projectFiles() driving.ProjectFiles {
	return driving.ProjectFiles{
		Manifest: analyzeManifest,
		POM:      analyzePOM,
		BOM:      analyzeBOM,
	}
}

// prepareRun validates the flags and builds the runner they describe.
func prepareRun() (*runner, driving.RunRequest, error) {
	req := driving.RunRequest{Files: projectFiles(), Offline: analyzeOffline}
	if err := req.Files.Validate(); err != nil {
		return nil, req, err
	}
	if analyzeWorkers < 0 {
		return nil, req, errors.New("--workers must not be negative")
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, req, err
	}
	r, err := newRunner(cfg, runnerOptions{
		Workers:      analyzeWorkers,
		Repositories: analyzeRepositories,
		NoCache:      analyzeNoCache,
		Offline:      analyzeOffline,
	})
	if err != nil {
		return nil, req, err
	}
	return r, req, nil
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if !validFormat(analyzeFormat) {
		return fmt.Errorf("unknown format %q (want text, json or yaml)", analyzeFormat)
	}

	r, req, err := prepareRun()
	if err != nil {
		return err
	}
	defer r.Close() //nolint:errcheck

	report, err := r.Run(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if err := renderReport(cmd.OutOrStdout(), report, analyzeFormat); err != nil {
		return err
	}
	return report.Err()
}
