package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/exclint/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/exclint/internal/core/domain"
	"github.com/custodia-labs/exclint/internal/core/ports/driven"
)

// DatabaseFile is the cache database file name inside the data directory.
const DatabaseFile = "closures.db"

// Store is a SQLite-backed closure cache.
type Store struct {
	db   *sql.DB
	path string
	ttl  time.Duration
	now  func() time.Time
}

// DefaultDir returns ~/.exclint/cache.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".exclint", "cache"), nil
}

// NewStore opens or creates the cache database in dataDir.
// If dataDir is empty, defaults to DefaultDir. A non-positive ttl never expires entries.
func NewStore(dataDir string, ttl time.Duration) (*Store, error) {
	if dataDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dataDir = dir
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// WAL lets parallel analyses share the cache
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
		ttl:  ttl,
		now:  time.Now,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ClosureCache returns a ClosureCache interface backed by this store.
func (s *Store) ClosureCache() driven.ClosureCache {
	return &closureCache{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_closure_cache.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Closure Cache ====================

// closureCache implements driven.ClosureCache.
type closureCache struct {
	store *Store
}

var _ driven.ClosureCache = (*closureCache)(nil)

// artifactRecord is the stored form of one closure entry.
type artifactRecord struct {
	GroupID    string `json:"group_id"`
	ArtifactID string `json:"artifact_id"`
	Version    string `json:"version"`
	Classifier string `json:"classifier,omitempty"`
	Type       string `json:"type,omitempty"`
}

// Get returns the cached closure for key, or domain.ErrNotFound.
func (c *closureCache) Get(ctx context.Context, key string) ([]domain.ArtifactVersion, error) {
	var (
		artifactsJSON string
		resolvedAt    int64
	)
	err := c.store.db.QueryRowContext(ctx,
		"SELECT artifacts, resolved_at FROM closures WHERE dependency = ?", key,
	).Scan(&artifactsJSON, &resolvedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying closure: %w", err)
	}

	if ttl := c.store.ttl; ttl > 0 && c.store.now().Sub(time.Unix(resolvedAt, 0)) > ttl {
		return nil, domain.ErrNotFound
	}

	var records []artifactRecord
	if err := json.Unmarshal([]byte(artifactsJSON), &records); err != nil {
		return nil, fmt.Errorf("unmarshalling closure: %w", err)
	}

	closure := make([]domain.ArtifactVersion, 0, len(records))
	for _, r := range records {
		a, err := domain.NewArtifactVersion(
			domain.Coordinate{GroupID: r.GroupID, ArtifactID: r.ArtifactID}, r.Version, r.Classifier, r.Type)
		if err != nil {
			return nil, fmt.Errorf("decoding closure of %s: %w", key, err)
		}
		closure = append(closure, a)
	}
	return closure, nil
}

// Put stores or replaces the closure for key.
func (c *closureCache) Put(ctx context.Context, key string, closure []domain.ArtifactVersion) error {
	records := make([]artifactRecord, 0, len(closure))
	for _, a := range closure {
		records = append(records, artifactRecord{
			GroupID:    a.GroupID,
			ArtifactID: a.ArtifactID,
			Version:    a.Version,
			Classifier: a.Classifier,
			Type:       a.Type,
		})
	}
	artifactsJSON, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshalling closure: %w", err)
	}

	_, err = c.store.db.ExecContext(ctx, `
		INSERT INTO closures (dependency, artifacts, resolved_at)
		VALUES (?, ?, ?)
		ON CONFLICT(dependency) DO UPDATE SET
			artifacts = excluded.artifacts,
			resolved_at = excluded.resolved_at
	`, key, string(artifactsJSON), c.store.now().Unix())
	if err != nil {
		return fmt.Errorf("saving closure: %w", err)
	}
	return nil
}

// Clear removes all cached closures.
func (c *closureCache) Clear(ctx context.Context) (int, error) {
	result, err := c.store.db.ExecContext(ctx, "DELETE FROM closures")
	if err != nil {
		return 0, fmt.Errorf("clearing closures: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting cleared closures: %w", err)
	}
	return int(n), nil
}
