package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cdx "github.com/CycloneDX/cyclonedx-go"

	"github.com/custodia-labs/exclint/internal/core/domain"
	"github.com/custodia-labs/exclint/internal/logger"
)

// ReadBOM returns the resolved artifacts listed in a CycloneDX BOM.
// The format is chosen by extension: .xml is XML, anything else JSON.
func ReadBOM(path string) ([]domain.ArtifactVersion, error) {
	format := cdx.BOMFileFormatJSON
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		format = cdx.BOMFileFormatXML
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bom: %w", err)
	}
	defer f.Close()

	bom := new(cdx.BOM)
	if err := cdx.NewBOMDecoder(f, format).Decode(bom); err != nil {
		return nil, fmt.Errorf("decode bom %s: %w", path, err)
	}

	var rootRef string
	if bom.Metadata != nil && bom.Metadata.Component != nil {
		rootRef = bom.Metadata.Component.BOMRef
	}

	var artifacts []domain.ArtifactVersion
	if err := collectComponents(bom.Components, rootRef, &artifacts); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return artifacts, nil
}

// collectComponents flattens nested components depth-first.
func collectComponents(components *[]cdx.Component, rootRef string, out *[]domain.ArtifactVersion) error {
	if components == nil {
		return nil
	}
	for _, c := range *components {
		if rootRef != "" && c.BOMRef == rootRef {
			continue
		}
		if c.Scope != cdx.ScopeExcluded {
			artifact, ok, err := componentArtifact(c)
			if err != nil {
				return err
			}
			if ok {
				*out = append(*out, artifact)
			}
		}
		if err := collectComponents(c.Components, rootRef, out); err != nil {
			return err
		}
	}
	return nil
}

// componentArtifact maps a Maven component to an artifact. Components of other
// ecosystems are skipped.
func componentArtifact(c cdx.Component) (domain.ArtifactVersion, bool, error) {
	if c.PackageURL != "" {
		purl, err := parsePackageURL(c.PackageURL)
		if err != nil {
			return domain.ArtifactVersion{}, false, fmt.Errorf("%w: %v", domain.ErrInvalidCoordinate, err)
		}
		if purl.Type != "maven" {
			logger.Debug("Skipping non-maven component %s", c.PackageURL)
			return domain.ArtifactVersion{}, false, nil
		}
		version := purl.Version
		if version == "" {
			version = c.Version
		}
		artifact, err := domain.NewArtifactVersion(
			domain.Coordinate{GroupID: purl.Namespace, ArtifactID: purl.Name},
			version, purl.Qualifiers.Get("classifier"), purl.Qualifiers.Get("type"))
		return artifact, err == nil, err
	}

	if c.Group == "" {
		logger.Debug("Skipping component %q without group", c.Name)
		return domain.ArtifactVersion{}, false, nil
	}
	artifact, err := domain.NewArtifactVersion(
		domain.Coordinate{GroupID: c.Group, ArtifactID: c.Name}, c.Version, "", "")
	return artifact, err == nil, err
}
