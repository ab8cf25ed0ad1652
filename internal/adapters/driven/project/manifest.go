package project

import (
	"context"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/exclint/internal/core/domain"
	"github.com/custodia-labs/exclint/internal/core/ports/driven"
)

// Ensure ManifestSource implements the interface.
var _ driven.ProjectSource = (*ManifestSource)(nil)

// Manifest is the TOML project description.
//
//	name = "my-app"
//	resolved = ["org.slf4j:slf4j-api:2.0.9"]
//
//	[[dependencies]]
//	artifact = "com.acme:lib:1.0"
//	exclusions = ["org.slf4j:slf4j-api"]
//
//	[closures]
//	"com.acme:lib:1.0" = ["org.slf4j:slf4j-api:1.7.36"]
type Manifest struct {
	Name         string               `toml:"name"`
	Dependencies []ManifestDependency `toml:"dependencies"`
	Resolved     []string             `toml:"resolved"`
	Closures     map[string][]string  `toml:"closures"`
}

// ManifestDependency is one declared dependency of a manifest.
type ManifestDependency struct {
	Artifact   string   `toml:"artifact"`
	Scope      string   `toml:"scope,omitempty"`
	Exclusions []string `toml:"exclusions"`
}

// ManifestSource loads a project from a TOML manifest.
type ManifestSource struct {
	Path string
}

// NewManifestSource creates a source over the manifest at path.
func NewManifestSource(path string) *ManifestSource {
	return &ManifestSource{Path: path}
}

// Paths returns the manifest path.
func (s *ManifestSource) Paths() []string {
	return []string{s.Path}
}

// Load parses the manifest into a project.
func (s *ManifestSource) Load(_ context.Context) (*domain.Project, error) {
	m, err := ReadManifest(s.Path)
	if err != nil {
		return nil, err
	}
	p, err := m.Project()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return p, nil
}

// Closures returns the closures recorded in the manifest, keyed by the
// display string of the dependency.
func (s *ManifestSource) Closures() (map[string][]domain.ArtifactVersion, error) {
	m, err := ReadManifest(s.Path)
	if err != nil {
		return nil, err
	}
	closures, err := m.ParsedClosures()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return closures, nil
}

// ReadManifest decodes the manifest file at path.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}

// Project converts the manifest into a domain project.
func (m *Manifest) Project() (*domain.Project, error) {
	deps := make([]domain.Dependency, 0, len(m.Dependencies))
	for i, md := range m.Dependencies {
		artifact, err := domain.ParseArtifact(md.Artifact)
		if err != nil {
			return nil, fmt.Errorf("dependency #%d: %w", i+1, err)
		}
		exclusions := make([]domain.Exclusion, 0, len(md.Exclusions))
		for _, e := range md.Exclusions {
			coord, err := domain.ParseCoordinate(e)
			if err != nil {
				return nil, fmt.Errorf("dependency %s: %w", artifact, err)
			}
			exclusions = append(exclusions, domain.Exclusion{Coordinate: coord})
		}
		dep := domain.NewDependency(artifact, exclusions...)
		dep.Scope = md.Scope
		deps = append(deps, dep)
	}

	resolved, err := parseArtifacts(m.Resolved)
	if err != nil {
		return nil, fmt.Errorf("resolved: %w", err)
	}

	return &domain.Project{
		Name:         m.Name,
		Dependencies: deps,
		Resolved:     domain.NewResolvedSet(resolved...),
	}, nil
}

// ParsedClosures parses the [closures] table. Keys are normalised to the
// display form of the dependency.
func (m *Manifest) ParsedClosures() (map[string][]domain.ArtifactVersion, error) {
	closures := make(map[string][]domain.ArtifactVersion, len(m.Closures))
	for key, entries := range m.Closures {
		dep, err := domain.ParseArtifact(key)
		if err != nil {
			return nil, fmt.Errorf("closure key: %w", err)
		}
		artifacts, err := parseArtifacts(entries)
		if err != nil {
			return nil, fmt.Errorf("closure of %s: %w", key, err)
		}
		closures[dep.String()] = artifacts
	}
	return closures, nil
}

func parseArtifacts(specs []string) ([]domain.ArtifactVersion, error) {
	out := make([]domain.ArtifactVersion, 0, len(specs))
	for _, s := range specs {
		a, err := domain.ParseArtifact(s)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
