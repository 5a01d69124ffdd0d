// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package registry maintains a SQLite catalog of Space configuration cards
// discovered under a directory tree, with full-text search over the fields
// the listing page shows.
package registry

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/spacecard/pkg/types"
)

const dbFile = "spaces.db"

// Store manages the Space catalog database.
type Store struct {
	db         *sql.DB
	catalogDir string
	maxResults int
}

// Entry is one cataloged Space: its card plus index bookkeeping.
type Entry struct {
	// ID is the Space directory path relative to the scanned root.
	ID        string     `json:"id" yaml:"id"`
	Card      types.Card `json:"card" yaml:"card"`
	Errors    int        `json:"errors" yaml:"errors"`
	Warnings  int        `json:"warnings" yaml:"warnings"`
	IndexedAt time.Time  `json:"indexed_at" yaml:"indexed_at"`
}

// NewStore opens or creates the catalog database at catalogDir/spaces.db,
// creating the schema if it does not exist.
func NewStore(cfg types.RegistryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.CatalogDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(cfg.CatalogDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, catalogDir: cfg.CatalogDir, maxResults: maxResults}
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
		`CREATE TABLE IF NOT EXISTS spaces (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT,
			emoji TEXT,
			color_from TEXT,
			color_to TEXT,
			sdk TEXT,
			app_file TEXT,
			pinned INTEGER NOT NULL DEFAULT 0,
			sdk_version TEXT,
			python_version TEXT,
			license TEXT,
			short_description TEXT,
			tags TEXT,
			errors INTEGER NOT NULL DEFAULT 0,
			warnings INTEGER NOT NULL DEFAULT 0,
			indexed_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_spaces_sdk ON spaces(sdk)`,
		`CREATE INDEX IF NOT EXISTS idx_spaces_pinned ON spaces(pinned)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync. Needs go-sqlite3 compiled
	// with the sqlite_fts5 build tag; the mage Build and Test targets set it.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='spaces_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE spaces_fts USING fts5(title, short_description, tags, content=spaces, content_rowid=rowid)`,
			`CREATE TRIGGER spaces_ai AFTER INSERT ON spaces BEGIN
				INSERT INTO spaces_fts(rowid, title, short_description, tags) VALUES (new.rowid, new.title, new.short_description, new.tags);
			END`,
			`CREATE TRIGGER spaces_ad AFTER DELETE ON spaces BEGIN
				INSERT INTO spaces_fts(spaces_fts, rowid, title, short_description, tags) VALUES('delete', old.rowid, old.title, old.short_description, old.tags);
			END`,
			`CREATE TRIGGER spaces_au AFTER UPDATE ON spaces BEGIN
				INSERT INTO spaces_fts(spaces_fts, rowid, title, short_description, tags) VALUES('delete', old.rowid, old.title, old.short_description, old.tags);
				INSERT INTO spaces_fts(rowid, title, short_description, tags) VALUES (new.rowid, new.title, new.short_description, new.tags);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Upsert inserts or replaces the entry keyed by its ID.
func (s *Store) Upsert(ctx context.Context, e Entry) error {
	tagsJSON, err := json.Marshal(e.Card.Tags)
	if err != nil {
		return fmt.Errorf("marshaling tags: %w", err)
	}

	indexedAt := e.IndexedAt
	if indexedAt.IsZero() {
		indexedAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO spaces (id, title, emoji, color_from, color_to, sdk, app_file, pinned,
			sdk_version, python_version, license, short_description, tags, errors, warnings, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, emoji=excluded.emoji,
			color_from=excluded.color_from, color_to=excluded.color_to,
			sdk=excluded.sdk, app_file=excluded.app_file, pinned=excluded.pinned,
			sdk_version=excluded.sdk_version, python_version=excluded.python_version,
			license=excluded.license, short_description=excluded.short_description,
			tags=excluded.tags, errors=excluded.errors, warnings=excluded.warnings,
			indexed_at=excluded.indexed_at`,
		e.ID, e.Card.Title, e.Card.Emoji, string(e.Card.ColorFrom), string(e.Card.ColorTo),
		string(e.Card.SDK), e.Card.AppFile, boolToInt(e.Card.Pinned),
		e.Card.SDKVersion, e.Card.PythonVersion, e.Card.License, e.Card.ShortDescription,
		string(tagsJSON), e.Errors, e.Warnings, indexedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting %s: %w", e.ID, err)
	}
	return nil
}

// QueryOptions holds catalog query parameters.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over title,
	// short_description, and tags.
	Query string

	// SDK filters by runtime.
	SDK types.SDK

	// PinnedOnly restricts results to pinned Spaces.
	PinnedOnly bool

	// FailingOnly restricts results to Spaces with validation errors.
	FailingOnly bool

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.SDK == "" && !q.PinnedOnly && !q.FailingOnly
}

// List queries the catalog. Full-text queries are ranked by relevance;
// filter-only queries come back pinned-first, then by ID.
func (s *Store) List(ctx context.Context, opts QueryOptions) ([]Entry, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	qb.WriteString(`SELECT s.id, s.title, s.emoji, s.color_from, s.color_to, s.sdk, s.app_file,
		s.pinned, s.sdk_version, s.python_version, s.license, s.short_description, s.tags,
		s.errors, s.warnings, s.indexed_at FROM spaces s`)

	var where []string
	if useFTS {
		qb.WriteString(` JOIN spaces_fts f ON f.rowid = s.rowid`)
		where = append(where, `spaces_fts MATCH ?`)
		args = append(args, opts.Query)
	}
	if opts.SDK != "" {
		where = append(where, `s.sdk = ?`)
		args = append(args, string(opts.SDK))
	}
	if opts.PinnedOnly {
		where = append(where, `s.pinned = 1`)
	}
	if opts.FailingOnly {
		where = append(where, `s.errors > 0`)
	}
	if len(where) > 0 {
		qb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}

	if useFTS {
		qb.WriteString(` ORDER BY f.rank`)
	} else {
		qb.WriteString(` ORDER BY s.pinned DESC, s.id`)
	}
	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get fetches one entry by ID. Missing entries return sql.ErrNoRows.
func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, title, emoji, color_from, color_to, sdk, app_file,
		pinned, sdk_version, python_version, license, short_description, tags,
		errors, warnings, indexed_at FROM spaces WHERE id = ?`, id)
	return scanEntry(row)
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(r rowScanner) (Entry, error) {
	var (
		e         Entry
		pinned    int
		tagsJSON  string
		indexedAt string
		colorFrom string
		colorTo   string
		sdk       string
	)
	err := r.Scan(&e.ID, &e.Card.Title, &e.Card.Emoji, &colorFrom, &colorTo, &sdk,
		&e.Card.AppFile, &pinned, &e.Card.SDKVersion, &e.Card.PythonVersion,
		&e.Card.License, &e.Card.ShortDescription, &tagsJSON,
		&e.Errors, &e.Warnings, &indexedAt)
	if err != nil {
		return Entry{}, err
	}

	e.Card.ColorFrom = types.Color(colorFrom)
	e.Card.ColorTo = types.Color(colorTo)
	e.Card.SDK = types.SDK(sdk)
	e.Card.Pinned = pinned != 0

	if tagsJSON != "" && tagsJSON != "null" {
		if err := json.Unmarshal([]byte(tagsJSON), &e.Card.Tags); err != nil {
			return Entry{}, fmt.Errorf("unmarshaling tags for %s: %w", e.ID, err)
		}
	}
	if indexedAt != "" {
		if ts, err := time.Parse(time.RFC3339, indexedAt); err == nil {
			e.IndexedAt = ts
		}
	}
	return e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
