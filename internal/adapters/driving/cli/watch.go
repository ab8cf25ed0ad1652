package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/exclint/internal/logger"
)

// watchDebounce is the quiet period after the last change before re-running.
var watchDebounce = time.Second

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the analysis whenever the project changes",
	Long: `Runs the analysis once, then again every time one of the project files
or the configuration file changes. Rapid successive changes trigger a
single run. Closures stay cached in memory between runs.

Press Ctrl+C to stop.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	addProjectFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	r, req, err := prepareRun()
	if err != nil {
		return err
	}
	defer r.Close() //nolint:errcheck

	source, _, err := openSource(req.Files, nil)
	if err != nil {
		return err
	}
	paths := append(source.Paths(), configPath)

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	analyze := func() {
		if cfg, err := loadConfig(); err != nil {
			logger.Error("Reloading configuration: %v", err)
		} else {
			r.cfg = cfg
		}
		report, err := r.Run(ctx, req)
		if err != nil {
			logger.Error("Analysis failed: %v", err)
			return
		}
		if err := renderReport(out, report, formatText); err != nil {
			logger.Error("Rendering report: %v", err)
		}
	}

	analyze()
	cmd.Printf("Watching %s for changes. Press Ctrl+C to stop.\n", strings.Join(paths, ", "))

	return watchFiles(ctx, paths, watchDebounce, func(changed string) {
		cmd.Printf("\nDetected change to %s\n", filepath.Base(changed))
		analyze()
	})
}

// watchFiles calls onChange after writes to any of paths have settled for delay.
// The parent directories are watched so files replaced on save are still seen.
// Calls to onChange never overlap. It returns when ctx is done, after any
// call in progress has finished; no call starts afterwards.
func watchFiles(ctx context.Context, paths []string, delay time.Duration, onChange func(path string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}

	var (
		mu       sync.Mutex
		debounce *time.Timer

		// running serialises onChange calls and guards stopped.
		running sync.Mutex
		stopped bool
	)
	defer func() {
		mu.Lock()
		if debounce != nil {
			debounce.Stop()
		}
		mu.Unlock()

		running.Lock()
		stopped = true
		running.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !watched[name] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("Change event %s", event)

			mu.Lock()
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(delay, func() {
				running.Lock()
				defer running.Unlock()
				if stopped || ctx.Err() != nil {
					return
				}
				onChange(name)
			})
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}
