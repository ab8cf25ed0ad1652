package maven

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/custodia-labs/exclint/internal/logger"
)

const (
	// maxModelDepth bounds parent and import chains.
	maxModelDepth = 32

	// maxInterpolationPasses bounds nested property references.
	maxInterpolationPasses = 10
)

var propertyRef = regexp.MustCompile(`\$\{([^}]+)\}`)

// Model is the effective model of a POM: inheritance applied, properties
// interpolated, imported BOMs merged and dependency management applied.
type Model struct {
	GroupID    string
	ArtifactID string
	Version    string
	Packaging  string
	Name       string

	Properties map[string]string

	// Management holds managed dependencies, in declaration order.
	Management []Dependency

	// Dependencies holds declared and inherited dependencies, in declaration order.
	Dependencies []Dependency

	parentGroupID string
	parentVersion string
}

// ProjectModel builds the effective model of a pom.xml in a source tree.
// Each parent is read from its relativePath when the POM found there has the
// referenced coordinates, and fetched through c otherwise. With a nil c only
// local parents are read and imported BOMs are left unmerged.
func ProjectModel(ctx context.Context, path string, c *Client) (*Model, error) {
	pom, err := ReadProjectFile(path)
	if err != nil {
		return nil, err
	}
	m, err := projectRawModel(ctx, path, pom, c, 0)
	if err != nil {
		return nil, err
	}
	m.interpolate()
	if c != nil {
		if err := c.importBOMs(ctx, m, 0); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	m.applyManagement()
	return m, nil
}

func projectRawModel(ctx context.Context, path string, pom *POM, c *Client, depth int) (*Model, error) {
	if depth > maxModelDepth {
		return nil, fmt.Errorf("%w: %s", ErrModelTooDeep, path)
	}
	p := pom.Parent
	if p == nil || p.GroupID == "" || p.ArtifactID == "" || p.Version == "" {
		return inherit(pom, nil), nil
	}
	ref := p.GroupID + ":" + p.ArtifactID + ":" + p.Version

	var parent *Model
	if parentPath, parentPOM, ok := localParent(path, p); ok {
		logger.Debug("Parent %s of %s read from %s", ref, path, parentPath)
		m, err := projectRawModel(ctx, parentPath, parentPOM, c, depth+1)
		if err != nil {
			return nil, err
		}
		parent = m
	} else if c != nil {
		m, err := c.rawModel(ctx, p.GroupID, p.ArtifactID, p.Version, depth+1)
		if err != nil && !IsNotFound(err) {
			return nil, fmt.Errorf("parent %s of %s: %w", ref, path, err)
		}
		parent = m
	}

	if parent == nil {
		logger.Warn("Parent %s of %s not found; its dependencies and dependency management are ignored", ref, path)
	}
	return inherit(pom, parent), nil
}

// localParent reads the POM at the parent's relative path. It reports false
// when the lookup is disabled, the file is missing or it is another project.
func localParent(childPath string, p *Parent) (string, *POM, bool) {
	rel := "../pom.xml"
	if p.RelativePath != nil {
		rel = *p.RelativePath
	}
	if rel == "" {
		return "", nil, false
	}

	path := filepath.Join(filepath.Dir(childPath), filepath.FromSlash(rel))
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, "pom.xml")
	}
	pom, err := ReadProjectFile(path)
	if err != nil {
		logger.Debug("No local parent at %s: %v", path, err)
		return "", nil, false
	}

	groupID, version := pom.GroupID, pom.Version
	if pom.Parent != nil {
		if groupID == "" {
			groupID = pom.Parent.GroupID
		}
		if version == "" {
			version = pom.Parent.Version
		}
	}
	if groupID != p.GroupID || pom.ArtifactID != p.ArtifactID || version != p.Version {
		logger.Debug("%s is not %s:%s:%s", path, p.GroupID, p.ArtifactID, p.Version)
		return "", nil, false
	}
	return path, pom, true
}

// EffectiveModel fetches a POM and builds its effective model.
func (c *Client) EffectiveModel(ctx context.Context, groupID, artifactID, version string) (*Model, error) {
	return c.effectiveModel(ctx, groupID, artifactID, version, 0)
}

func (c *Client) effectiveModel(ctx context.Context, groupID, artifactID, version string, depth int) (*Model, error) {
	m, err := c.rawModel(ctx, groupID, artifactID, version, depth)
	if err != nil {
		return nil, err
	}
	m.interpolate()
	if err := c.importBOMs(ctx, m, depth); err != nil {
		return nil, err
	}
	m.applyManagement()
	return m, nil
}

// rawModel applies the parent chain without interpolating, so that child
// properties override parent ones wherever they are referenced.
func (c *Client) rawModel(ctx context.Context, groupID, artifactID, version string, depth int) (*Model, error) {
	if depth > maxModelDepth {
		return nil, fmt.Errorf("%w: %s:%s:%s", ErrModelTooDeep, groupID, artifactID, version)
	}

	pom, err := c.FetchPOM(ctx, groupID, artifactID, version)
	if err != nil {
		return nil, err
	}

	var parent *Model
	if p := pom.Parent; p != nil && p.GroupID != "" && p.ArtifactID != "" && p.Version != "" {
		parent, err = c.rawModel(ctx, p.GroupID, p.ArtifactID, p.Version, depth+1)
		if err != nil {
			return nil, fmt.Errorf("parent of %s:%s:%s: %w", groupID, artifactID, version, err)
		}
	}
	return inherit(pom, parent), nil
}

// importBOMs replaces import-scoped managed entries by the management of the
// referenced POMs. Explicitly managed entries win over imported ones.
func (c *Client) importBOMs(ctx context.Context, m *Model, depth int) error {
	var own, imported []Dependency
	for _, d := range m.Management {
		if d.Scope != ScopeImport || d.Type != "pom" {
			own = append(own, d)
			continue
		}
		bom, err := c.effectiveModel(ctx, d.GroupID, d.ArtifactID, d.Version, depth+1)
		if err != nil {
			return fmt.Errorf("import %s:%s:%s: %w", d.GroupID, d.ArtifactID, d.Version, err)
		}
		imported = append(imported, bom.Management...)
	}
	m.Management = appendMissing(own, imported)
	return nil
}

func inherit(pom *POM, parent *Model) *Model {
	m := &Model{
		GroupID:    pom.GroupID,
		ArtifactID: pom.ArtifactID,
		Version:    pom.Version,
		Packaging:  pom.Packaging,
		Name:       pom.Name,
		Properties: make(map[string]string),
	}

	switch {
	case parent != nil:
		m.parentGroupID = parent.GroupID
		m.parentVersion = parent.Version
		maps.Copy(m.Properties, parent.Properties)
		m.Management = append(m.Management, parent.Management...)
		m.Dependencies = append(m.Dependencies, parent.Dependencies...)
	case pom.Parent != nil:
		m.parentGroupID = pom.Parent.GroupID
		m.parentVersion = pom.Parent.Version
	}
	if m.GroupID == "" {
		m.GroupID = m.parentGroupID
	}
	if m.Version == "" {
		m.Version = m.parentVersion
	}
	if m.Packaging == "" {
		m.Packaging = "jar"
	}

	maps.Copy(m.Properties, pom.Properties)
	m.Management = mergeDependencies(m.Management, pom.DependencyManagement.Dependencies)
	m.Dependencies = mergeDependencies(m.Dependencies, pom.Dependencies)
	return m
}

func (m *Model) interpolate() {
	props := maps.Clone(m.Properties)
	builtins := map[string]string{
		"groupId":        m.GroupID,
		"artifactId":     m.ArtifactID,
		"version":        m.Version,
		"packaging":      m.Packaging,
		"parent.groupId": m.parentGroupID,
		"parent.version": m.parentVersion,
	}
	for name, value := range builtins {
		props["project."+name] = value
		props["pom."+name] = value
	}
	if _, ok := props["version"]; !ok {
		props["version"] = m.Version
	}

	expand := func(s string) string { return expandProperties(s, props) }

	m.GroupID = expand(m.GroupID)
	m.Version = expand(m.Version)
	for i := range m.Management {
		m.Management[i] = m.Management[i].expand(expand)
	}
	for i := range m.Dependencies {
		m.Dependencies[i] = m.Dependencies[i].expand(expand)
	}
}

func (m *Model) applyManagement() {
	for i := range m.Dependencies {
		m.Dependencies[i] = m.manage(m.Dependencies[i], true)
	}
}

// manage fills the version and scope of d from dependency management.
// For transitive dependencies (declared false) managed values replace declared ones.
func (m *Model) manage(d Dependency, declared bool) Dependency {
	managed, ok := m.managedFor(d)
	if !ok {
		return d
	}
	if d.Version == "" || !declared && managed.Version != "" {
		d.Version = managed.Version
	}
	if d.Scope == "" || !declared && managed.Scope != "" {
		d.Scope = managed.Scope
	}
	if len(managed.Exclusions) > 0 {
		d.Exclusions = append(append([]Exclusion(nil), d.Exclusions...), managed.Exclusions...)
	}
	return d
}

func (m *Model) managedFor(d Dependency) (Dependency, bool) {
	key := d.Key()
	for _, managed := range m.Management {
		if managed.Key() == key {
			return managed, true
		}
	}
	return Dependency{}, false
}

func (d Dependency) expand(expand func(string) string) Dependency {
	d.GroupID = expand(d.GroupID)
	d.ArtifactID = expand(d.ArtifactID)
	d.Version = expand(d.Version)
	d.Type = expand(d.Type)
	d.Classifier = expand(d.Classifier)
	d.Scope = expand(d.Scope)
	d.Optional = expand(d.Optional)
	if len(d.Exclusions) > 0 {
		exclusions := make([]Exclusion, len(d.Exclusions))
		for i, e := range d.Exclusions {
			exclusions[i] = Exclusion{GroupID: expand(e.GroupID), ArtifactID: expand(e.ArtifactID)}
		}
		d.Exclusions = exclusions
	}
	return d
}

// expandProperties substitutes ${name} references. Unknown references are kept.
func expandProperties(s string, props map[string]string) string {
	for range maxInterpolationPasses {
		if !strings.Contains(s, "${") {
			return s
		}
		next := propertyRef.ReplaceAllStringFunc(s, func(ref string) string {
			if v, ok := props[ref[2:len(ref)-1]]; ok {
				return v
			}
			return ref
		})
		if next == s {
			return s
		}
		s = next
	}
	return s
}

// mergeDependencies returns base with overrides applied by key. Overrides of an
// existing key keep its position; new keys are appended.
func mergeDependencies(base, overrides []Dependency) []Dependency {
	out := append([]Dependency(nil), base...)
	index := make(map[string]int, len(out))
	for i, d := range out {
		index[d.Key()] = i
	}
	for _, d := range overrides {
		if i, ok := index[d.Key()]; ok {
			out[i] = d
			continue
		}
		index[d.Key()] = len(out)
		out = append(out, d)
	}
	return out
}

// appendMissing appends the entries of extra whose key is not yet in base.
func appendMissing(base, extra []Dependency) []Dependency {
	seen := make(map[string]bool, len(base))
	for _, d := range base {
		seen[d.Key()] = true
	}
	for _, d := range extra {
		if !seen[d.Key()] {
			seen[d.Key()] = true
			base = append(base, d)
		}
	}
	return base
}
