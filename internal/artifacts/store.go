// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package artifacts keeps a SQLite ledger of render attempts: which source
// file was compiled, where the PDF landed, and what the engine printed.
// Generated files themselves are never deleted.
package artifacts

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// DefaultLedgerFile is the database name inside the render output directory.
const DefaultLedgerFile = "renders.db"

const defaultListLimit = 20

// timeLayout is fixed-width so created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store manages the render ledger database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the ledger at path, creating its parent directory
// and the schema if needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS renders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			tex_path TEXT NOT NULL,
			pdf_path TEXT,
			status TEXT NOT NULL,
			output TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_renders_created_at ON renders(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_renders_status ON renders(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one render attempt. A zero CreatedAt is set to now.
func (s *Store) Record(ctx context.Context, rec types.RenderRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO renders (created_at, tex_path, pdf_path, status, output) VALUES (?, ?, ?, ?, ?)`,
		rec.CreatedAt.UTC().Format(timeLayout), rec.TexPath, rec.PDFPath, string(rec.Status), rec.Output,
	)
	if err != nil {
		return fmt.Errorf("inserting render record: %w", err)
	}
	return nil
}

// ListFilter narrows List results.
type ListFilter struct {
	// Status keeps only records with this status when non-empty.
	Status types.RenderStatus
	// Limit caps the number of records (default 20).
	Limit int
}

// List returns render records newest first.
func (s *Store) List(ctx context.Context, f ListFilter) ([]types.RenderRecord, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `SELECT id, created_at, tex_path, COALESCE(pdf_path, ''), status, COALESCE(output, '') FROM renders`
	var args []any
	if f.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(f.Status))
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying renders: %w", err)
	}
	defer rows.Close()

	var records []types.RenderRecord
	for rows.Next() {
		var (
			rec     types.RenderRecord
			created string
			status  string
		)
		if err := rows.Scan(&rec.ID, &created, &rec.TexPath, &rec.PDFPath, &status, &rec.Output); err != nil {
			return nil, fmt.Errorf("scanning render: %w", err)
		}
		t, err := time.Parse(timeLayout, created)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at %q: %w", created, err)
		}
		rec.CreatedAt = t
		rec.Status = types.RenderStatus(status)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Latest returns the most recent successful render, or sql.ErrNoRows when
// none exists.
func (s *Store) Latest(ctx context.Context) (types.RenderRecord, error) {
	recs, err := s.List(ctx, ListFilter{Status: types.RenderSucceeded, Limit: 1})
	if err != nil {
		return types.RenderRecord{}, err
	}
	if len(recs) == 0 {
		return types.RenderRecord{}, sql.ErrNoRows
	}
	return recs[0], nil
}
