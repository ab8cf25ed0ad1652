package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/exclint/internal/adapters/driven/storage/sqlite"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the closure cache",
	Long: `Resolved transitive closures are kept in a local SQLite database so
repeated runs do not fetch the same POMs again.`,
}

var cachePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the location of the closure cache",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dir, err := cacheDir(cfg)
		if err != nil {
			return err
		}
		cmd.Println(filepath.Join(dir, sqlite.DatabaseFile))
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached closure",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cachePathCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir, err := cacheDir(cfg)
	if err != nil {
		return err
	}

	store, err := sqlite.NewStore(dir, cfg.CacheTTL())
	if err != nil {
		return fmt.Errorf("opening closure cache: %w", err)
	}
	defer store.Close() //nolint:errcheck

	n, err := store.ClosureCache().Clear(cmd.Context())
	if err != nil {
		return fmt.Errorf("clearing closure cache: %w", err)
	}
	cmd.Printf("Removed %d cached closures\n", n)
	return nil
}
