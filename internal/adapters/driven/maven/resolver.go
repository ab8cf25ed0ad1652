package maven

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/exclint/internal/core/domain"
	"github.com/custodia-labs/exclint/internal/core/ports/driven"
	"github.com/custodia-labs/exclint/internal/logger"
)

// Ensure Resolver implements the interface.
var _ driven.ClosureResolver = (*Resolver)(nil)

// Resolver computes compile and runtime closures from repository POMs.
type Resolver struct {
	client *Client
}

// NewResolver creates a closure resolver backed by client.
func NewResolver(client *Client) *Resolver {
	return &Resolver{client: client}
}

// node is a pending dependency in the traversal.
type node struct {
	dep Dependency

	// exclusions accumulated along the path from the root.
	exclusions []Exclusion
}

// ResolveClosure returns the transitive closure of dep, nearest first.
// Versions are selected nearest-wins; the root's dependency management pins
// the versions of deeper dependencies. The declared exclusions of dep are not
// applied.
//
// dep itself is not part of the result, unlike Maven's own collection which
// includes the root. An exclusion naming the dependency it is declared on is
// therefore reported as invalid rather than compared by version.
func (r *Resolver) ResolveClosure(ctx context.Context, dep domain.Dependency) ([]domain.ArtifactVersion, error) {
	closure, err := r.resolve(ctx, dep)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrClosureResolution, dep, err)
	}
	return closure, nil
}

func (r *Resolver) resolve(ctx context.Context, dep domain.Dependency) ([]domain.ArtifactVersion, error) {
	version, err := pinVersion(dep.Version)
	if err != nil {
		return nil, err
	}
	root, err := r.client.EffectiveModel(ctx, dep.GroupID, dep.ArtifactID, version)
	if err != nil {
		return nil, err
	}

	seen := map[domain.Coordinate]bool{dep.Coordinate: true}
	queue := children(root, root, nil)
	var closure []domain.ArtifactVersion

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next := queue[0]
		queue = queue[1:]

		coord := next.dep.Coordinate()
		if seen[coord] {
			continue
		}
		seen[coord] = true

		if next.dep.Version == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingVersion, coord)
		}
		version, err := pinVersion(next.dep.Version)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", coord, err)
		}

		artifact, err := domain.NewArtifactVersion(coord, version, next.dep.Classifier, next.dep.Type)
		if err != nil {
			return nil, err
		}
		closure = append(closure, artifact)

		model, err := r.client.EffectiveModel(ctx, coord.GroupID, coord.ArtifactID, version)
		if err != nil {
			return nil, err
		}
		queue = append(queue, children(model, root, next.exclusions)...)
	}

	logger.Debug("Closure of %s has %d artifacts", dep, len(closure))
	return closure, nil
}

// children returns the classpath dependencies of model not excluded along the path.
func children(model, root *Model, inherited []Exclusion) []node {
	var out []node
	for _, d := range model.Dependencies {
		if model != root {
			d = root.manage(d, false)
		}
		if !d.OnClasspath() || d.IsOptional() || excludedBy(inherited, d.Coordinate()) {
			continue
		}
		exclusions := inherited
		if len(d.Exclusions) > 0 {
			exclusions = append(append([]Exclusion(nil), inherited...), d.Exclusions...)
		}
		out = append(out, node{dep: d, exclusions: exclusions})
	}
	return out
}

// pinVersion accepts plain versions and hard requirements like "[1.2]".
func pinVersion(v string) (string, error) {
	if !strings.ContainsAny(v, "[](),") {
		return v, nil
	}
	if strings.HasPrefix(v, "[") && strings.HasSuffix(v, "]") && !strings.Contains(v, ",") {
		return strings.TrimSpace(v[1 : len(v)-1]), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedVersion, v)
}
