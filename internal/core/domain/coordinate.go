package domain

import (
	"fmt"
	"strings"
)

// DefaultType is the conventional artifact type. It is omitted from display strings.
const DefaultType = "jar"

// Coordinate identifies an artifact irrespective of its version.
// Equality is exact and case-sensitive on both fields.
type Coordinate struct {
	// GroupID is the artifact group (e.g., "com.acme").
	GroupID string

	// ArtifactID is the artifact name within the group.
	ArtifactID string
}

// NewCoordinate creates a Coordinate, rejecting empty identity fields.
func NewCoordinate(groupID, artifactID string) (Coordinate, error) {
	if groupID == "" || artifactID == "" {
		return Coordinate{}, fmt.Errorf("%w: group and artifact are required (got %q:%q)",
			ErrInvalidCoordinate, groupID, artifactID)
	}
	return Coordinate{GroupID: groupID, ArtifactID: artifactID}, nil
}

// ParseCoordinate parses the "group:artifact" form.
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return Coordinate{}, fmt.Errorf("%w: expected group:artifact, got %q", ErrInvalidCoordinate, s)
	}
	return NewCoordinate(parts[0], parts[1])
}

// String returns the "group:artifact" display form.
func (c Coordinate) String() string {
	return c.GroupID + ":" + c.ArtifactID
}

// ArtifactVersion is a versioned artifact, used for declared dependencies
// and for resolved artifacts alike. Versions are opaque strings.
type ArtifactVersion struct {
	Coordinate

	// Version is compared by exact string equality, never parsed.
	Version string

	// Classifier is optional (e.g., "sources", "linux-x86_64").
	Classifier string

	// Type is the packaging type. Empty means DefaultType.
	Type string
}

// NewArtifactVersion creates an ArtifactVersion. An empty type defaults to DefaultType.
func NewArtifactVersion(coord Coordinate, version, classifier, typ string) (ArtifactVersion, error) {
	if coord.GroupID == "" || coord.ArtifactID == "" {
		return ArtifactVersion{}, fmt.Errorf("%w: group and artifact are required (got %q)",
			ErrInvalidCoordinate, coord.String())
	}
	if typ == "" {
		typ = DefaultType
	}
	return ArtifactVersion{
		Coordinate: coord,
		Version:    version,
		Classifier: classifier,
		Type:       typ,
	}, nil
}

// ParseArtifact parses "group:artifact:version[:classifier][:type]".
// Four segments are read as a classifier; use "g:a:v::type" for a type without classifier.
func ParseArtifact(s string) (ArtifactVersion, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 3 || len(parts) > 5 {
		return ArtifactVersion{}, fmt.Errorf("%w: expected group:artifact:version[:classifier][:type], got %q",
			ErrInvalidCoordinate, s)
	}

	coord, err := NewCoordinate(parts[0], parts[1])
	if err != nil {
		return ArtifactVersion{}, err
	}

	var classifier, typ string
	if len(parts) > 3 {
		classifier = parts[3]
	}
	if len(parts) > 4 {
		typ = parts[4]
	}
	return NewArtifactVersion(coord, parts[2], classifier, typ)
}

// EffectiveType returns the type, substituting DefaultType when empty.
func (a ArtifactVersion) EffectiveType() string {
	if a.Type == "" {
		return DefaultType
	}
	return a.Type
}

// String returns "group:artifact:version[:classifier][:type]".
// The classifier appears only when set and the type only when it is not DefaultType.
func (a ArtifactVersion) String() string {
	var sb strings.Builder
	sb.WriteString(a.GroupID)
	sb.WriteByte(':')
	sb.WriteString(a.ArtifactID)
	sb.WriteByte(':')
	sb.WriteString(a.Version)
	if a.Classifier != "" {
		sb.WriteByte(':')
		sb.WriteString(a.Classifier)
	}
	if t := a.EffectiveType(); t != DefaultType {
		sb.WriteByte(':')
		sb.WriteString(t)
	}
	return sb.String()
}

// Exclusion names an artifact to omit from one dependency's transitive closure.
// Exclusions never carry a version.
type Exclusion struct {
	Coordinate
}

// NewExclusion creates an Exclusion, rejecting empty identity fields.
func NewExclusion(groupID, artifactID string) (Exclusion, error) {
	coord, err := NewCoordinate(groupID, artifactID)
	if err != nil {
		return Exclusion{}, err
	}
	return Exclusion{Coordinate: coord}, nil
}

// Dependency is a declared direct dependency of the project.
type Dependency struct {
	ArtifactVersion

	// Scope is the declared scope (compile, runtime, test...). Informational.
	Scope string

	// Exclusions are kept in declaration order.
	Exclusions []Exclusion
}

// NewDependency creates a Dependency with the given exclusions.
func NewDependency(artifact ArtifactVersion, exclusions ...Exclusion) Dependency {
	return Dependency{
		ArtifactVersion: artifact,
		Exclusions:      exclusions,
	}
}
