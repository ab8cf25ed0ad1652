package maven

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/exclint/internal/core/domain"
)

const samplePOM = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
  <parent>
    <groupId>com.acme</groupId>
    <artifactId>acme-parent</artifactId>
    <version>7</version>
  </parent>
  <artifactId>app</artifactId>
  <version>1.0.0</version>
  <properties>
    <guava.version> 32.1.3-jre </guava.version>
    <project.build.sourceEncoding>UTF-8</project.build.sourceEncoding>
  </properties>
  <dependencyManagement>
    <dependencies>
      <dependency>
        <groupId>org.slf4j</groupId>
        <artifactId>slf4j-api</artifactId>
        <version>2.0.9</version>
      </dependency>
    </dependencies>
  </dependencyManagement>
  <dependencies>
    <dependency>
      <groupId>com.google.guava</groupId>
      <artifactId>guava</artifactId>
      <version>${guava.version}</version>
      <exclusions>
        <exclusion>
          <groupId>com.google.code.findbugs</groupId>
          <artifactId>jsr305</artifactId>
        </exclusion>
      </exclusions>
    </dependency>
    <dependency>
      <groupId>org.slf4j</groupId>
      <artifactId>slf4j-api</artifactId>
    </dependency>
    <dependency>
      <groupId>junit</groupId>
      <artifactId>junit</artifactId>
      <version>4.13.2</version>
      <scope>test</scope>
      <optional>true</optional>
    </dependency>
  </dependencies>
</project>`

func TestParsePOM(t *testing.T) {
	pom, err := ParsePOM(strings.NewReader(samplePOM))
	require.NoError(t, err)

	assert.Equal(t, "app", pom.ArtifactID)
	assert.Empty(t, pom.GroupID)
	require.NotNil(t, pom.Parent)
	assert.Equal(t, "acme-parent", pom.Parent.ArtifactID)
	assert.Equal(t, "32.1.3-jre", pom.Properties["guava.version"])
	assert.Equal(t, "UTF-8", pom.Properties["project.build.sourceEncoding"])
	require.Len(t, pom.DependencyManagement.Dependencies, 1)
	require.Len(t, pom.Dependencies, 3)

	guava := pom.Dependencies[0]
	assert.Equal(t, "${guava.version}", guava.Version)
	require.Len(t, guava.Exclusions, 1)
	assert.Equal(t, "jsr305", guava.Exclusions[0].ArtifactID)

	junit := pom.Dependencies[2]
	assert.True(t, junit.IsOptional())
	assert.False(t, junit.OnClasspath())
}

func TestParsePOM_Invalid(t *testing.T) {
	_, err := ParsePOM(strings.NewReader("<project><dependencies>"))
	assert.ErrorIs(t, err, ErrInvalidPOM)

	_, err = ParsePOM(strings.NewReader("<settings/>"))
	assert.ErrorIs(t, err, ErrInvalidPOM)
}

func TestParsePOM_Latin1Declaration(t *testing.T) {
	pom, err := ParsePOM(strings.NewReader(`<?xml version="1.0" encoding="ISO-8859-1"?>
<project><groupId>g</groupId><artifactId>a</artifactId><version>1</version></project>`))
	require.NoError(t, err)
	assert.Equal(t, "g", pom.GroupID)
}

func TestReadProjectFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pom.xml")
	require.NoError(t, os.WriteFile(path, []byte(samplePOM), 0o600))

	pom, err := ReadProjectFile(path)
	require.NoError(t, err)
	assert.Equal(t, "app", pom.ArtifactID)

	_, err = ReadProjectFile(filepath.Join(t.TempDir(), "missing.xml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestProjectModel_Standalone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pom.xml")
	require.NoError(t, os.WriteFile(path, []byte(samplePOM), 0o600))

	m, err := ProjectModel(context.Background(), path, nil)
	require.NoError(t, err)

	assert.Equal(t, "com.acme", m.GroupID, "group inherited from parent reference")
	assert.Equal(t, "1.0.0", m.Version)
	assert.Equal(t, "jar", m.Packaging)
	require.Len(t, m.Dependencies, 3)
	assert.Equal(t, "32.1.3-jre", m.Dependencies[0].Version)
	assert.Equal(t, "2.0.9", m.Dependencies[1].Version, "version from dependency management")
}

func TestParsePOM_RelativePath(t *testing.T) {
	pom, err := ParsePOM(strings.NewReader(samplePOM))
	require.NoError(t, err)
	assert.Nil(t, pom.Parent.RelativePath)

	pom, err = ParsePOM(strings.NewReader(`<project><parent>
  <groupId>g</groupId><artifactId>p</artifactId><version>1</version><relativePath/>
</parent><artifactId>a</artifactId></project>`))
	require.NoError(t, err)
	require.NotNil(t, pom.Parent.RelativePath)
	assert.Empty(t, *pom.Parent.RelativePath)
}

func TestDependency_Helpers(t *testing.T) {
	tests := []struct {
		name        string
		dep         Dependency
		key         string
		scope       string
		onClasspath bool
	}{
		{"defaults", Dependency{GroupID: "g", ArtifactID: "a"}, "g:a:jar:", "compile", true},
		{"runtime", Dependency{GroupID: "g", ArtifactID: "a", Scope: "runtime"}, "g:a:jar:", "runtime", true},
		{"provided", Dependency{GroupID: "g", ArtifactID: "a", Scope: "provided"}, "g:a:jar:", "provided", false},
		{"system", Dependency{GroupID: "g", ArtifactID: "a", Scope: "system"}, "g:a:jar:", "system", false},
		{"classified pom", Dependency{GroupID: "g", ArtifactID: "a", Type: "pom", Classifier: "x"}, "g:a:pom:x", "compile", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.key, tt.dep.Key())
			assert.Equal(t, tt.scope, tt.dep.EffectiveScope())
			assert.Equal(t, tt.onClasspath, tt.dep.OnClasspath())
		})
	}
}

func TestExclusion_Matches(t *testing.T) {
	coord := domain.Coordinate{GroupID: "org.slf4j", ArtifactID: "slf4j-api"}

	assert.True(t, Exclusion{GroupID: "org.slf4j", ArtifactID: "slf4j-api"}.Matches(coord))
	assert.True(t, Exclusion{GroupID: "*", ArtifactID: "slf4j-api"}.Matches(coord))
	assert.True(t, Exclusion{GroupID: "org.slf4j", ArtifactID: "*"}.Matches(coord))
	assert.True(t, Exclusion{GroupID: "*", ArtifactID: "*"}.Matches(coord))
	assert.False(t, Exclusion{GroupID: "org.slf4j", ArtifactID: "slf4j-simple"}.Matches(coord))
	assert.False(t, Exclusion{GroupID: "org.*", ArtifactID: "slf4j-api"}.Matches(coord))
}

func TestPomPath(t *testing.T) {
	assert.Equal(t, "com/google/guava/guava/32.1.3-jre/guava-32.1.3-jre.pom",
		pomPath("com.google.guava", "guava", "32.1.3-jre"))
}

func TestExpandProperties(t *testing.T) {
	props := map[string]string{
		"a":      "${b}",
		"b":      "value",
		"loop":   "${loop}",
		"prefix": "x",
	}

	assert.Equal(t, "value", expandProperties("${a}", props))
	assert.Equal(t, "x-value", expandProperties("${prefix}-${b}", props))
	assert.Equal(t, "${unknown}", expandProperties("${unknown}", props))
	assert.Equal(t, "${loop}", expandProperties("${loop}", props))
	assert.Equal(t, "plain", expandProperties("plain", props))
}
