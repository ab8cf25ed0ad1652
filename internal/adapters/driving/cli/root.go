// Package cli provides the cobra command tree of exclint.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/exclint/internal/adapters/driven/config/file"
	"github.com/custodia-labs/exclint/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "exclint",
	Short: "Find redundant Maven dependency exclusions",
	Long: `exclint checks every exclusion declared on the direct dependencies of a
Maven project and reports the ones that have no effect: exclusions of
artifacts the dependency never pulls in, and exclusions that prevent no
version clash with the resolved dependency set.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", file.DefaultFileName, "configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command. Interrupts cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// loadConfig reads the configuration named by --config.
func loadConfig() (*file.Config, error) {
	return file.Load(configPath)
}
