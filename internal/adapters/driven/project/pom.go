package project

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/exclint/internal/adapters/driven/maven"
	"github.com/custodia-labs/exclint/internal/core/domain"
	"github.com/custodia-labs/exclint/internal/core/ports/driven"
	"github.com/custodia-labs/exclint/internal/logger"
)

// Ensure POMSource implements the interface.
var _ driven.ProjectSource = (*POMSource)(nil)

// POMSource reads declared dependencies from a pom.xml and the resolved set
// from a CycloneDX BOM of the same build.
type POMSource struct {
	POMPath string
	BOMPath string

	// Client fetches parents and imported BOMs that are not in the source
	// tree. Nil restricts the model to local parents.
	Client *maven.Client
}

// NewPOMSource creates a source over the given files.
func NewPOMSource(pomPath, bomPath string, client *maven.Client) *POMSource {
	return &POMSource{POMPath: pomPath, BOMPath: bomPath, Client: client}
}

// Paths returns the pom and BOM paths.
func (s *POMSource) Paths() []string {
	return []string{s.POMPath, s.BOMPath}
}

// Load parses both files. Dependencies and managed exclusions inherited from
// parent POMs are included. A dependency version the model leaves unresolved
// (an unavailable parent, or an unknown property) is taken from the BOM entry
// of the same coordinate.
func (s *POMSource) Load(ctx context.Context) (*domain.Project, error) {
	if s.POMPath == "" || s.BOMPath == "" {
		return nil, fmt.Errorf("pom and bom paths are required")
	}

	model, err := maven.ProjectModel(ctx, s.POMPath, s.Client)
	if err != nil {
		return nil, err
	}
	resolved, err := ReadBOM(s.BOMPath)
	if err != nil {
		return nil, err
	}
	set := domain.NewResolvedSet(resolved...)

	deps := make([]domain.Dependency, 0, len(model.Dependencies))
	for _, d := range model.Dependencies {
		dep, err := declaredDependency(d, set)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.POMPath, err)
		}
		deps = append(deps, dep)
	}

	name := model.Name
	if name == "" {
		name = model.GroupID + ":" + model.ArtifactID
	}
	logger.Debug("Loaded %d dependencies and %d resolved artifacts from %s", len(deps), set.Len(), s.POMPath)

	return &domain.Project{Name: name, Dependencies: deps, Resolved: set}, nil
}

func declaredDependency(d maven.Dependency, resolved domain.ResolvedSet) (domain.Dependency, error) {
	coord, err := domain.NewCoordinate(d.GroupID, d.ArtifactID)
	if err != nil {
		return domain.Dependency{}, err
	}

	version := d.Version
	if version == "" || strings.Contains(version, "${") {
		if matches := resolved.Lookup(coord); len(matches) > 0 {
			version = matches[0].Version
		} else {
			logger.Warn("Version of %s could not be determined", coord)
		}
	}

	artifact, err := domain.NewArtifactVersion(coord, version, d.Classifier, d.Type)
	if err != nil {
		return domain.Dependency{}, err
	}

	exclusions := make([]domain.Exclusion, 0, len(d.Exclusions))
	for _, e := range d.Exclusions {
		excl, err := domain.NewExclusion(e.GroupID, e.ArtifactID)
		if err != nil {
			return domain.Dependency{}, fmt.Errorf("exclusion on %s: %w", coord, err)
		}
		exclusions = append(exclusions, excl)
	}

	dep := domain.NewDependency(artifact, exclusions...)
	dep.Scope = d.EffectiveScope()
	return dep, nil
}
