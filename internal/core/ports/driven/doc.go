// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - ClosureResolver: Resolves a dependency's unfiltered transitive closure
//   - ProjectSource: Loads declared dependencies and the resolved artifact set
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ClosureCache: Memoises resolved closures across runs. Without it every
//     closure is resolved remotely.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
