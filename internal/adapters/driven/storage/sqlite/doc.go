// Package sqlite provides a SQLite-backed implementation of driven.ClosureCache.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.exclint/cache/closures.db
//
// # Expiry
//
// Closures of released artifacts rarely change, but snapshot versions and
// repository fixes do. Entries older than the configured TTL are treated as
// misses and overwritten on the next resolution.
package sqlite
