package maven

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/custodia-labs/exclint/internal/core/domain"
)

// Dependency scopes.
const (
	ScopeCompile  = "compile"
	ScopeRuntime  = "runtime"
	ScopeProvided = "provided"
	ScopeTest     = "test"
	ScopeSystem   = "system"
	ScopeImport   = "import"
)

// POM is the subset of a Maven project descriptor used for resolution.
type POM struct {
	XMLName              xml.Name             `xml:"project"`
	Parent               *Parent              `xml:"parent"`
	GroupID              string               `xml:"groupId"`
	ArtifactID           string               `xml:"artifactId"`
	Version              string               `xml:"version"`
	Packaging            string               `xml:"packaging"`
	Name                 string               `xml:"name"`
	Properties           Properties           `xml:"properties"`
	DependencyManagement DependencyManagement `xml:"dependencyManagement"`
	Dependencies         []Dependency         `xml:"dependencies>dependency"`
}

// Parent references the POM a project inherits from.
type Parent struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`

	// RelativePath locates the parent in a source tree. Nil means the
	// default ../pom.xml; an empty value disables the local lookup.
	RelativePath *string `xml:"relativePath"`
}

// DependencyManagement holds managed dependency versions and scopes.
type DependencyManagement struct {
	Dependencies []Dependency `xml:"dependencies>dependency"`
}

// Dependency is a dependency as declared in a POM.
type Dependency struct {
	GroupID    string      `xml:"groupId"`
	ArtifactID string      `xml:"artifactId"`
	Version    string      `xml:"version"`
	Type       string      `xml:"type"`
	Classifier string      `xml:"classifier"`
	Scope      string      `xml:"scope"`
	Optional   string      `xml:"optional"`
	Exclusions []Exclusion `xml:"exclusions>exclusion"`
}

// Exclusion is an exclusion as declared in a POM. Either field may be "*".
type Exclusion struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
}

// Properties holds the <properties> element as a flat map.
type Properties map[string]string

// UnmarshalXML decodes arbitrary child elements into name/value pairs.
func (p *Properties) UnmarshalXML(d *xml.Decoder, _ xml.StartElement) error {
	props := make(Properties)
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var value string
			if err := d.DecodeElement(&value, &t); err != nil {
				return err
			}
			props[t.Name.Local] = strings.TrimSpace(value)
		case xml.EndElement:
			*p = props
			return nil
		}
	}
}

// ParsePOM decodes a POM document.
func ParsePOM(r io.Reader) (*POM, error) {
	dec := xml.NewDecoder(r)
	// Non UTF-8 POMs are ASCII in practice; decode them as-is.
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	var pom POM
	if err := dec.Decode(&pom); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPOM, err)
	}
	pom.normalise()
	return &pom, nil
}

// ReadProjectFile parses a local pom.xml.
func ReadProjectFile(path string) (*POM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pom: %w", err)
	}
	defer f.Close()

	pom, err := ParsePOM(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pom, nil
}

func (p *POM) normalise() {
	trim(&p.GroupID, &p.ArtifactID, &p.Version, &p.Packaging, &p.Name)
	if p.Parent != nil {
		trim(&p.Parent.GroupID, &p.Parent.ArtifactID, &p.Parent.Version)
		if p.Parent.RelativePath != nil {
			trim(p.Parent.RelativePath)
		}
	}
	for i := range p.Dependencies {
		p.Dependencies[i].normalise()
	}
	for i := range p.DependencyManagement.Dependencies {
		p.DependencyManagement.Dependencies[i].normalise()
	}
}

func (d *Dependency) normalise() {
	trim(&d.GroupID, &d.ArtifactID, &d.Version, &d.Type, &d.Classifier, &d.Scope, &d.Optional)
	for i := range d.Exclusions {
		trim(&d.Exclusions[i].GroupID, &d.Exclusions[i].ArtifactID)
	}
}

func trim(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

// Key identifies the dependency for merging and management lookups.
func (d Dependency) Key() string {
	typ := d.Type
	if typ == "" {
		typ = domain.DefaultType
	}
	return d.GroupID + ":" + d.ArtifactID + ":" + typ + ":" + d.Classifier
}

// EffectiveScope returns the scope, defaulting to compile.
func (d Dependency) EffectiveScope() string {
	if d.Scope == "" {
		return ScopeCompile
	}
	return d.Scope
}

// IsOptional reports whether the dependency is declared optional.
func (d Dependency) IsOptional() bool {
	return strings.EqualFold(d.Optional, "true")
}

// OnClasspath reports whether the scope contributes to a compile or runtime classpath.
func (d Dependency) OnClasspath() bool {
	switch d.EffectiveScope() {
	case ScopeCompile, ScopeRuntime:
		return true
	default:
		return false
	}
}

// Coordinate returns the dependency's group and artifact.
func (d Dependency) Coordinate() domain.Coordinate {
	return domain.Coordinate{GroupID: d.GroupID, ArtifactID: d.ArtifactID}
}

// Matches reports whether the exclusion covers coord. "*" matches any id.
func (e Exclusion) Matches(coord domain.Coordinate) bool {
	return (e.GroupID == domain.Wildcard || e.GroupID == coord.GroupID) &&
		(e.ArtifactID == domain.Wildcard || e.ArtifactID == coord.ArtifactID)
}

func excludedBy(exclusions []Exclusion, coord domain.Coordinate) bool {
	for _, e := range exclusions {
		if e.Matches(coord) {
			return true
		}
	}
	return false
}
