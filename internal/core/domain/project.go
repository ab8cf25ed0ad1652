package domain

// ResolvedSet is the project's final, conflict-resolved artifact set.
// It is built once and only queried afterwards.
type ResolvedSet struct {
	artifacts []ArtifactVersion
	index     map[Coordinate][]int
}

// NewResolvedSet indexes the given artifacts by coordinate.
func NewResolvedSet(artifacts ...ArtifactVersion) ResolvedSet {
	s := ResolvedSet{
		artifacts: make([]ArtifactVersion, len(artifacts)),
		index:     make(map[Coordinate][]int, len(artifacts)),
	}
	copy(s.artifacts, artifacts)
	for i, a := range s.artifacts {
		s.index[a.Coordinate] = append(s.index[a.Coordinate], i)
	}
	return s
}

// Len returns the number of artifacts in the set.
func (s ResolvedSet) Len() int {
	return len(s.artifacts)
}

// Artifacts returns a copy of the artifacts in insertion order.
func (s ResolvedSet) Artifacts() []ArtifactVersion {
	out := make([]ArtifactVersion, len(s.artifacts))
	copy(out, s.artifacts)
	return out
}

// Lookup returns every resolved artifact with the given coordinate.
func (s ResolvedSet) Lookup(coord Coordinate) []ArtifactVersion {
	idx := s.index[coord]
	if len(idx) == 0 {
		return nil
	}
	out := make([]ArtifactVersion, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.artifacts[i])
	}
	return out
}

// VersionsOtherThan returns the resolved versions of coord that differ from version.
func (s ResolvedSet) VersionsOtherThan(coord Coordinate, version string) []string {
	var out []string
	for _, i := range s.index[coord] {
		if v := s.artifacts[i].Version; v != version {
			out = append(out, v)
		}
	}
	return out
}

// Project is the input of an analysis run.
type Project struct {
	// Name identifies the project in reports. May be empty.
	Name string

	// Dependencies are the declared direct dependencies, in declaration order.
	Dependencies []Dependency

	// Resolved is the conflict-resolved artifact set.
	Resolved ResolvedSet
}

// ExclusionCount returns the total number of declared exclusions.
func (p *Project) ExclusionCount() int {
	n := 0
	for i := range p.Dependencies {
		n += len(p.Dependencies[i].Exclusions)
	}
	return n
}
