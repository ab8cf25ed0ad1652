package cli

import (
	"context"
	"fmt"

	"github.com/custodia-labs/exclint/internal/adapters/driven/config/file"
	"github.com/custodia-labs/exclint/internal/adapters/driven/maven"
	"github.com/custodia-labs/exclint/internal/adapters/driven/project"
	"github.com/custodia-labs/exclint/internal/adapters/driven/resolver"
	"github.com/custodia-labs/exclint/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/exclint/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/exclint/internal/core/domain"
	"github.com/custodia-labs/exclint/internal/core/ports/driven"
	"github.com/custodia-labs/exclint/internal/core/ports/driving"
	"github.com/custodia-labs/exclint/internal/core/services"
	"github.com/custodia-labs/exclint/internal/logger"
)

// Ensure runner implements the interface.
var _ driving.AnalysisRunner = (*runner)(nil)

// runnerOptions are the command-line overrides of the configuration.
type runnerOptions struct {
	Workers      int
	Repositories []string
	NoCache      bool
	Offline      bool
}

// runner wires the configured adapters into an analyzer per run.
type runner struct {
	cfg     *file.Config
	workers int

	// client and remote reach the Maven repositories; nil when offline.
	client *maven.Client
	remote driven.ClosureResolver
	store  *sqlite.Store
}

// newRunner builds the remote resolver stack:
// memory cache, then sqlite cache, then the Maven repositories.
func newRunner(cfg *file.Config, opts runnerOptions) (*runner, error) {
	r := &runner{cfg: cfg, workers: cfg.Analysis.Workers}
	if opts.Workers > 0 {
		r.workers = opts.Workers
	}
	if opts.Offline {
		return r, nil
	}

	repos := cfg.Maven.Repositories
	if len(opts.Repositories) > 0 {
		repos = opts.Repositories
	}
	client, err := maven.NewClient(maven.Options{
		Repositories:      repos,
		Token:             cfg.Maven.Token,
		RequestsPerSecond: cfg.Maven.RequestsPerSecond,
		Timeout:           cfg.Timeout(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating maven client: %w", err)
	}
	r.client = client
	var remote driven.ClosureResolver = maven.NewResolver(client)

	if cfg.Cache.Enabled && !opts.NoCache {
		dir, err := cacheDir(cfg)
		if err != nil {
			return nil, err
		}
		store, err := sqlite.NewStore(dir, cfg.CacheTTL())
		if err != nil {
			return nil, fmt.Errorf("opening closure cache: %w", err)
		}
		logger.Debug("Using closure cache at %s", store.Path())
		r.store = store
		remote = resolver.NewCaching(remote, store.ClosureCache())
	}

	mem, err := memory.NewClosureCache(memory.DefaultClosureCacheSize)
	if err != nil {
		r.Close() //nolint:errcheck
		return nil, err
	}
	r.remote = resolver.NewCaching(remote, mem)
	return r, nil
}

// Close releases the persistent cache.
func (r *runner) Close() error {
	if r.store == nil {
		return nil
	}
	return r.store.Close()
}

// Run loads the project named by req and analyses it.
// Closures recorded in a manifest take precedence over remote resolution.
func (r *runner) Run(ctx context.Context, req driving.RunRequest) (*domain.Report, error) {
	if err := req.Files.Validate(); err != nil {
		return nil, err
	}

	rules, err := r.cfg.SuppressionRules()
	if err != nil {
		return nil, err
	}
	rules = append(rules, req.Suppressions...)

	client := r.client
	if req.Offline {
		client = nil
	}
	source, recorded, err := openSource(req.Files, client)
	if err != nil {
		return nil, err
	}
	p, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded %s: %d dependencies, %d exclusions, %d resolved artifacts",
		projectName(p), len(p.Dependencies), p.ExclusionCount(), p.Resolved.Len())

	var chain resolver.Chain
	if len(recorded) > 0 {
		chain = append(chain, memory.NewStaticResolver(recorded))
	}
	if !req.Offline && r.remote != nil {
		chain = append(chain, r.remote)
	}

	analyzer := services.NewAnalyzer(chain, r.workers)
	return analyzer.Analyze(ctx, driving.AnalyzeRequest{
		Project:      p,
		Suppressions: rules,
	})
}

// openSource returns the project source for files and the closures it records.
// client fetches parent POMs missing from the source tree and may be nil.
func openSource(files driving.ProjectFiles, client *maven.Client) (driven.ProjectSource, map[string][]domain.ArtifactVersion, error) {
	if files.Manifest == "" {
		return project.NewPOMSource(files.POM, files.BOM, client), nil, nil
	}
	source := project.NewManifestSource(files.Manifest)
	closures, err := source.Closures()
	if err != nil {
		return nil, nil, err
	}
	return source, closures, nil
}

// cacheDir returns the configured cache directory or the default one.
func cacheDir(cfg *file.Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	dir, err := sqlite.DefaultDir()
	if err != nil {
		return "", fmt.Errorf("resolving cache directory: %w", err)
	}
	return dir, nil
}

func projectName(p *domain.Project) string {
	if p.Name == "" {
		return "project"
	}
	return p.Name
}
