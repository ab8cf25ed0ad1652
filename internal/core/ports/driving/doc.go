// Package driving defines interfaces that external actors (CLI, MCP) use
// to interact with core services. These are the "driving" ports in hexagonal
// architecture terminology - they drive the application.
//
// ExclusionAnalyzer is implemented in internal/core/services. AnalysisRunner
// is assembled by the CLI from the driven adapters, since it chooses how
// projects are loaded and closures resolved.
package driving
