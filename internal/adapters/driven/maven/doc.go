// Package maven resolves transitive dependency closures against Maven 2 layout
// repositories.
//
// # Architecture
//
// The package implements the [driven.ClosureResolver] port. It comprises the
// following components:
//
//   - Client: fetches and parses POM files with rate limiting and an LRU memo
//   - Model: the effective model of a POM (parent chain, properties, imports)
//   - Resolver: breadth-first closure traversal with nearest-wins selection
//
// # Repositories
//
// Repositories are tried in order. A 404 from one repository falls through to
// the next; any other failure aborts the fetch. Repository URLs with the
// file:// scheme are read from the local filesystem, which makes a local
// ~/.m2/repository usable as an offline mirror.
//
// # Authentication
//
// When a token is configured every request carries it as a bearer token, which
// covers hosted private repositories (GitHub Packages, Artifactory, Nexus).
//
// # Scope
//
// Closures contain compile and runtime dependencies only. Test, provided and
// system scoped dependencies are dropped, as are optional ones. Exclusions
// declared inside transitive POMs are honoured; exclusions declared on the root
// dependency by the analysed project are not.
package maven
