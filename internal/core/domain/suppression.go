package domain

import "fmt"

// Wildcard matches any value in a suppression rule field.
const Wildcard = "*"

// SuppressionRule marks (dependency, exclusion) pairs as intentionally ignored.
// Each field is either an exact id or Wildcard; partial wildcards are not supported.
type SuppressionRule struct {
	DependencyGroupID    string
	DependencyArtifactID string
	ExclusionGroupID     string
	ExclusionArtifactID  string
}

// Validate ensures all four fields are set.
func (r SuppressionRule) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"dependency_group_id", r.DependencyGroupID},
		{"dependency_artifact_id", r.DependencyArtifactID},
		{"exclusion_group_id", r.ExclusionGroupID},
		{"exclusion_artifact_id", r.ExclusionArtifactID},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidSuppression, f.name)
		}
	}
	return nil
}

// Matches reports whether the rule matches the pair field by field.
func (r SuppressionRule) Matches(dep Dependency, excl Exclusion) bool {
	return matchField(r.DependencyGroupID, dep.GroupID) &&
		matchField(r.DependencyArtifactID, dep.ArtifactID) &&
		matchField(r.ExclusionGroupID, excl.GroupID) &&
		matchField(r.ExclusionArtifactID, excl.ArtifactID)
}

// String returns "depGroup:depArtifact/exclGroup:exclArtifact".
func (r SuppressionRule) String() string {
	return fmt.Sprintf("%s:%s/%s:%s",
		r.DependencyGroupID, r.DependencyArtifactID, r.ExclusionGroupID, r.ExclusionArtifactID)
}

// IsSuppressed reports whether any rule matches the pair. Rule order is irrelevant.
func IsSuppressed(dep Dependency, excl Exclusion, rules []SuppressionRule) bool {
	for i := range rules {
		if rules[i].Matches(dep, excl) {
			return true
		}
	}
	return false
}

func matchField(pattern, id string) bool {
	return pattern == Wildcard || pattern == id
}
