package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustArtifact(t *testing.T, s string) ArtifactVersion {
	t.Helper()
	a, err := ParseArtifact(s)
	require.NoError(t, err)
	return a
}

func TestNewCoordinate(t *testing.T) {
	tests := []struct {
		name     string
		group    string
		artifact string
		wantErr  bool
	}{
		{name: "valid", group: "com.acme", artifact: "lib"},
		{name: "empty group", group: "", artifact: "lib", wantErr: true},
		{name: "empty artifact", group: "com.acme", artifact: "", wantErr: true},
		{name: "both empty", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCoordinate(tt.group, tt.artifact)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidCoordinate))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "com.acme:lib", c.String())
		})
	}
}

func TestCoordinate_EqualityIsCaseSensitive(t *testing.T) {
	a := Coordinate{GroupID: "com.acme", ArtifactID: "lib"}
	b := Coordinate{GroupID: "com.ACME", ArtifactID: "lib"}
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, Coordinate{GroupID: "com.acme", ArtifactID: "lib"})
}

func TestParseCoordinate(t *testing.T) {
	c, err := ParseCoordinate(" com.other:util ")
	require.NoError(t, err)
	assert.Equal(t, Coordinate{GroupID: "com.other", ArtifactID: "util"}, c)

	for _, bad := range []string{"", "com.other", "a:b:c", ":util", "com.other:"} {
		_, err := ParseCoordinate(bad)
		assert.ErrorIs(t, err, ErrInvalidCoordinate, bad)
	}
}

func TestNewArtifactVersion_DefaultsType(t *testing.T) {
	a, err := NewArtifactVersion(Coordinate{GroupID: "g", ArtifactID: "a"}, "1.0", "", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultType, a.Type)

	_, err = NewArtifactVersion(Coordinate{GroupID: "g"}, "1.0", "", "")
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
}

func TestArtifactVersion_String(t *testing.T) {
	coord := Coordinate{GroupID: "com.acme", ArtifactID: "lib"}
	tests := []struct {
		name     string
		artifact ArtifactVersion
		expected string
	}{
		{
			name:     "default type is hidden",
			artifact: ArtifactVersion{Coordinate: coord, Version: "1.0", Type: "jar"},
			expected: "com.acme:lib:1.0",
		},
		{
			name:     "empty type is hidden",
			artifact: ArtifactVersion{Coordinate: coord, Version: "1.0"},
			expected: "com.acme:lib:1.0",
		},
		{
			name:     "classifier shown",
			artifact: ArtifactVersion{Coordinate: coord, Version: "1.0", Classifier: "sources", Type: "jar"},
			expected: "com.acme:lib:1.0:sources",
		},
		{
			name:     "non default type shown",
			artifact: ArtifactVersion{Coordinate: coord, Version: "1.0", Type: "pom"},
			expected: "com.acme:lib:1.0:pom",
		},
		{
			name:     "classifier then type",
			artifact: ArtifactVersion{Coordinate: coord, Version: "1.0", Classifier: "linux", Type: "zip"},
			expected: "com.acme:lib:1.0:linux:zip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.artifact.String())
		})
	}
}

func TestParseArtifact(t *testing.T) {
	a := mustArtifact(t, "com.acme:lib:1.0")
	assert.Equal(t, "1.0", a.Version)
	assert.Equal(t, "", a.Classifier)
	assert.Equal(t, DefaultType, a.Type)

	a = mustArtifact(t, "com.acme:lib:1.0:sources")
	assert.Equal(t, "sources", a.Classifier)
	assert.Equal(t, DefaultType, a.Type)

	a = mustArtifact(t, "com.acme:lib:1.0::pom")
	assert.Equal(t, "", a.Classifier)
	assert.Equal(t, "pom", a.Type)
	assert.Equal(t, "com.acme:lib:1.0:pom", a.String())

	for _, bad := range []string{"com.acme:lib", "com.acme", "a:b:c:d:e:f", ":lib:1.0"} {
		_, err := ParseArtifact(bad)
		assert.ErrorIs(t, err, ErrInvalidCoordinate, bad)
	}
}

func TestExclusion_String(t *testing.T) {
	e, err := NewExclusion("com.other", "util")
	require.NoError(t, err)
	assert.Equal(t, "com.other:util", e.String())

	_, err = NewExclusion("", "util")
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
}

func TestDependency_StringHasNoExclusions(t *testing.T) {
	e, _ := NewExclusion("com.other", "util")
	d := NewDependency(mustArtifact(t, "com.acme:lib:1.0"), e)
	assert.Equal(t, "com.acme:lib:1.0", d.String())
	assert.Len(t, d.Exclusions, 1)
}
