// Package project provides implementations of driven.ProjectSource.
//
// Sources:
//   - POMSource: declared dependencies from a pom.xml, resolved set from a
//     CycloneDX BOM (JSON or XML) produced by the build
//   - ManifestSource: a self-contained TOML manifest, optionally carrying
//     recorded closures for offline analysis
package project
