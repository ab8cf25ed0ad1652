package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/exclint/internal/core/domain"
	"github.com/custodia-labs/exclint/internal/core/ports/driven"
	"github.com/custodia-labs/exclint/internal/core/ports/driving"
	"github.com/custodia-labs/exclint/internal/logger"
)

// Ensure Analyzer implements the interface.
var _ driving.ExclusionAnalyzer = (*Analyzer)(nil)

// DefaultWorkers is the number of closures resolved concurrently when unset.
const DefaultWorkers = 4

// closureResult holds the outcome of resolving one dependency.
type closureResult struct {
	artifacts []domain.ArtifactVersion
	err       error
	resolved  bool
}

// Analyzer classifies declared exclusions as invalid, unnecessary or necessary.
type Analyzer struct {
	resolver driven.ClosureResolver
	workers  int
	newRunID func() string
}

// NewAnalyzer creates an analyzer backed by the given closure resolver.
// Workers bounds concurrent closure resolution; values below 1 use DefaultWorkers.
func NewAnalyzer(resolver driven.ClosureResolver, workers int) *Analyzer {
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Analyzer{
		resolver: resolver,
		workers:  workers,
		newRunID: uuid.NewString,
	}
}

// Analyze classifies every exclusion of req.Project, in declaration order.
//
// Closures are resolved at most once per dependency, possibly in parallel, but
// findings are always recorded in declaration order. A closure that fails to
// resolve degrades to an empty closure and a report warning.
func (a *Analyzer) Analyze(ctx context.Context, req driving.AnalyzeRequest) (*domain.Report, error) {
	if req.Project == nil {
		return nil, errors.New("analyze: project is required")
	}
	if a.resolver == nil {
		return nil, errors.New("analyze: closure resolver not configured")
	}
	if err := validateProject(req.Project); err != nil {
		return nil, err
	}

	deps := req.Project.Dependencies
	report := domain.NewReport(a.newRunID())

	logger.Section("Analysis")
	logger.Info("Ignoring %d patterns", len(req.Suppressions))

	closures := a.resolveClosures(ctx, deps, req.Suppressions)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i := range deps {
		res := closures[i]
		if res.resolved && res.err != nil {
			logger.Warn("Could not fetch details for %s: %v", deps[i].Coordinate, res.err)
			report.Warn(fmt.Sprintf("Could not fetch details for %s", deps[i].Coordinate))
		}
	}

	for i := range deps {
		dep := deps[i]
		for _, excl := range dep.Exclusions {
			var finding domain.Finding
			if domain.IsSuppressed(dep, excl, req.Suppressions) {
				finding = domain.Finding{Kind: domain.FindingSuppressed, Dependency: dep, Exclusion: excl}
			} else {
				finding = classify(dep, excl, closures[i].artifacts, req.Project.Resolved)
			}
			logger.Debug("%s excluded from %s: %s", excl, dep, finding.Kind)
			report.Record(finding)
		}
	}

	return report, nil
}

// resolveClosures resolves, with bounded parallelism, the closure of every
// dependency that has at least one non-suppressed exclusion.
// Each worker writes its own slot, so results need no locking.
func (a *Analyzer) resolveClosures(
	ctx context.Context,
	deps []domain.Dependency,
	suppressions []domain.SuppressionRule,
) []closureResult {
	results := make([]closureResult, len(deps))

	var g errgroup.Group
	g.SetLimit(a.workers)

	for i := range deps {
		if !needsClosure(deps[i], suppressions) {
			continue
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				results[i] = closureResult{err: ctx.Err(), resolved: true}
				return nil
			}
			logger.Debug("Resolving closure of %s", deps[i])
			artifacts, err := a.resolver.ResolveClosure(ctx, deps[i])
			if err != nil {
				artifacts = nil
			}
			results[i] = closureResult{artifacts: artifacts, err: err, resolved: true}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures are kept per dependency

	return results
}

// classify decides the finding of a non-suppressed pair.
func classify(
	dep domain.Dependency,
	excl domain.Exclusion,
	closure []domain.ArtifactVersion,
	resolved domain.ResolvedSet,
) domain.Finding {
	finding := domain.Finding{Dependency: dep, Exclusion: excl}

	version, found := closureVersion(closure, excl.Coordinate)
	if !found {
		finding.Kind = domain.FindingInvalid
		finding.Reason = domain.ReasonNotADependency
		return finding
	}

	finding.ClosureVersion = version
	if clashing := resolved.VersionsOtherThan(excl.Coordinate, version); len(clashing) > 0 {
		finding.Kind = domain.FindingNecessary
		finding.ClashingVersions = clashing
		return finding
	}

	finding.Kind = domain.FindingUnnecessary
	return finding
}

// closureVersion returns the version of the first closure entry matching coord.
func closureVersion(closure []domain.ArtifactVersion, coord domain.Coordinate) (string, bool) {
	for i := range closure {
		if closure[i].Coordinate == coord {
			return closure[i].Version, true
		}
	}
	return "", false
}

func needsClosure(dep domain.Dependency, suppressions []domain.SuppressionRule) bool {
	for _, excl := range dep.Exclusions {
		if !domain.IsSuppressed(dep, excl, suppressions) {
			return true
		}
	}
	return false
}

// validateProject rejects structurally broken identity data before any work starts.
func validateProject(p *domain.Project) error {
	for i := range p.Dependencies {
		dep := p.Dependencies[i]
		if _, err := domain.NewCoordinate(dep.GroupID, dep.ArtifactID); err != nil {
			return fmt.Errorf("dependency #%d: %w", i+1, err)
		}
		for j, excl := range dep.Exclusions {
			if _, err := domain.NewCoordinate(excl.GroupID, excl.ArtifactID); err != nil {
				return fmt.Errorf("dependency %s, exclusion #%d: %w", dep, j+1, err)
			}
		}
	}
	return nil
}
