package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/exclint/internal/adapters/driven/config/file"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Writes the default configuration to the file named by --config
(.exclint.toml by default). An existing file is kept unless --force is set.
The repository token is never written; set EXCLINT_MAVEN_TOKEN instead.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	if _, err := os.Stat(configPath); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", configPath, err)
	}

	if err := file.Default().Save(configPath); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}
	cmd.Printf("Wrote %s\n", configPath)
	return nil
}
