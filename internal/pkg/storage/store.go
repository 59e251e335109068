// Package storage persists snapshots, the normalized market model, and the
// entity/alias identity subsystem. One Store type serves two backends:
// a file-backed SQLite database (the default; the CLI takes its path) and
// PostgreSQL behind a DSN. All upserts are idempotent by natural key, so a
// refresh interrupted mid-cycle is healed by the next successful one.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Store wraps a SQL database holding the odds model. Writes are expected
// from one refresh cycle at a time; the store does no cross-refresh locking.
type Store struct {
	db        *sql.DB
	retainRaw bool
}

// OpenSQLite opens or creates the SQLite database at path. Parent
// directories are created as needed; ":memory:" is accepted for tests.
func OpenSQLite(path string, retainRaw bool) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if dir := filepath.Dir(path); path != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1) // single writer; WAL allows concurrent readers
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys=ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	s := &Store{db: db, retainRaw: retainRaw}
	if err := s.initSchema(sqliteSchema); err != nil {
		db.Close()
		return nil, err
	}
	slog.Info("sqlite store ready", "path", path)
	return s, nil
}

// OpenPostgres connects to PostgreSQL with the given DSN and ensures the
// schema exists.
func OpenPostgres(ctx context.Context, dsn string, retainRaw bool) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	s := &Store{db: db, retainRaw: retainRaw}
	if err := s.initSchema(postgresSchema); err != nil {
		db.Close()
		return nil, err
	}
	slog.Info("postgres store ready")
	return s, nil
}

func (s *Store) initSchema(stmts []string) error {
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("initialize schema: %w", err)
		}
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
