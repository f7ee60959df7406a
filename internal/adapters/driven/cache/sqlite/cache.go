// Package sqlite provides a SQLite-backed image byte cache that
// survives process restarts. Serve mode uses it so repeated exports of
// the same file skip redundant downloads.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/slidevault-labs/slidevault-cli/internal/adapters/driven/cache/sqlite/migrations"
	"github.com/slidevault-labs/slidevault-cli/internal/core/domain"
	"github.com/slidevault-labs/slidevault-cli/internal/core/ports/driven"
)

// DefaultTTL is how long cached image bytes stay valid. Figma's signed
// S3 URLs rotate, but the bytes behind a stable image ref do not.
const DefaultTTL = 24 * time.Hour

// Ensure Cache implements the interface.
var _ driven.ByteCache = (*Cache)(nil)

// Cache is a SQLite-based implementation of driven.ByteCache.
type Cache struct {
	db   *sql.DB
	path string
	ttl  time.Duration
}

// NewCache creates a SQLite image cache at the specified data directory.
// If dataDir is empty, defaults to ~/.slidevault/data/imagecache.db.
// A ttl of zero means DefaultTTL.
func NewCache(dataDir string, ttl time.Duration) (*Cache, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".slidevault", "data")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "imagecache.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	c := &Cache{
		db:   db,
		path: dbPath,
		ttl:  ttl,
	}

	// Run migrations
	if err := c.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return c, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Path returns the database file path.
func (c *Cache) Path() string {
	return c.path
}

// Get retrieves cached image bytes, honouring expiry.
func (c *Cache) Get(ctx context.Context, fileID string, key domain.ImageKey) (*domain.ImageBlob, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT content_type, data, stored_at
		FROM image_cache
		WHERE file_id = ? AND image_key = ? AND expires_at > ?
	`, fileID, key.String(), time.Now().UTC())

	var blob domain.ImageBlob
	if err := row.Scan(&blob.ContentType, &blob.Data, &blob.StoredAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning cached image: %w", err)
	}

	return &blob, nil
}

// Put stores image bytes, replacing any existing entry for the key.
func (c *Cache) Put(ctx context.Context, fileID string, key domain.ImageKey, blob domain.ImageBlob) error {
	now := time.Now().UTC()
	storedAt := blob.StoredAt
	if storedAt.IsZero() {
		storedAt = now
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO image_cache (file_id, image_key, content_type, data, stored_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(file_id, image_key) DO UPDATE SET
			content_type = excluded.content_type,
			data = excluded.data,
			stored_at = excluded.stored_at,
			expires_at = excluded.expires_at
	`, fileID, key.String(), blob.ContentType, blob.Data, storedAt, now.Add(c.ttl))

	if err != nil {
		return fmt.Errorf("saving cached image: %w", err)
	}
	return nil
}

// CleanupExpired removes expired entries and reports how many were deleted.
func (c *Cache) CleanupExpired(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx, "DELETE FROM image_cache WHERE expires_at <= ?", time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("deleting expired images: %w", err)
	}
	return res.RowsAffected()
}

// migrate runs all pending migrations.
func (c *Cache) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := c.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_image_cache.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := c.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := c.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
