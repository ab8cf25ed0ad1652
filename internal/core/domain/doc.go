// Package domain defines the core entities for exclint.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Coordinate: group and artifact identity, irrespective of version
//   - ArtifactVersion: a versioned artifact (declared or resolved)
//   - Dependency: a declared direct dependency with its exclusions
//   - SuppressionRule: a wildcard pattern exempting exclusions from analysis
//   - Finding and Report: the outcome of an analysis run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
