// ABOUTME: SQLite-backed Store using modernc.org/sqlite
// ABOUTME: Pure Go, WAL mode, shared by one-shot CLI invocations
package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harper/vegra/internal/models"
	_ "modernc.org/sqlite"
)

// SQLiteStore wraps a SQLite database connection
type SQLiteStore struct {
	conn *sql.DB
	path string
}

// OpenSQLite opens or creates a SQLite database at the given path
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return initSQLite(conn, path)
}

// OpenSQLiteInMemory creates an in-memory SQLite database (for testing)
func OpenSQLiteInMemory() (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	// each connection to :memory: is a separate database
	conn.SetMaxOpenConns(1)
	return initSQLite(conn, ":memory:")
}

func initSQLite(conn *sql.DB, path string) (*SQLiteStore, error) {
	if _, err := conn.Exec(Schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLiteStore{conn: conn, path: path}, nil
}

// Path returns the database file path
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (Session, error) {
	var (
		tag     string
		updated time.Time
	)
	err := s.conn.QueryRowContext(ctx,
		`SELECT last_tag, updated_at FROM sessions WHERE id = ?`, id,
	).Scan(&tag, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to get session: %w", err)
	}
	return Session{ID: id, Tag: models.Tag(tag), UpdatedAt: updated.UTC()}, nil
}

func (s *SQLiteStore) Set(ctx context.Context, id string, tag models.Tag) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO sessions (id, last_tag, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET last_tag = excluded.last_tag, updated_at = excluded.updated_at`,
		id, string(tag), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Session, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT id, last_tag, updated_at FROM sessions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Session
	for rows.Next() {
		var (
			sess Session
			tag  string
		)
		if err := rows.Scan(&sess.ID, &tag, &sess.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sess.Tag = models.Tag(tag)
		sess.UpdatedAt = sess.UpdatedAt.UTC()
		out = append(out, sess)
	}
	return out, rows.Err()
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
