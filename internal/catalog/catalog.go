// Package catalog records conversion runs in a SQLite database so that a
// batch can be audited later: which source produced which JSON file, with
// what options and content hashes.
package catalog

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/treebank/core/errors"
	"github.com/FocuswithJustin/treebank/core/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS conversions (
	run_id     TEXT PRIMARY KEY,
	source     TEXT NOT NULL,
	output     TEXT NOT NULL,
	sha256     TEXT NOT NULL,
	blake3     TEXT NOT NULL,
	language   TEXT NOT NULL,
	mode       TEXT NOT NULL,
	sentences  INTEGER NOT NULL,
	words      INTEGER NOT NULL,
	urn        TEXT NOT NULL DEFAULT '',
	author     TEXT NOT NULL DEFAULT '',
	title      TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_conversions_sha256 ON conversions(sha256);
`

const columns = `run_id, source, output, sha256, blake3, language, mode,
	sentences, words, urn, author, title, created_at`

// Entry is one recorded conversion.
type Entry struct {
	RunID     string    `json:"run_id"`
	Source    string    `json:"source"`
	Output    string    `json:"output"`
	SHA256    string    `json:"sha256"`
	BLAKE3    string    `json:"blake3"`
	Language  string    `json:"language"`
	Mode      string    `json:"mode"`
	Sentences int       `json:"sentences"`
	Words     int       `json:"words"`
	URN       string    `json:"urn,omitempty"`
	Author    string    `json:"author,omitempty"`
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Catalog is an open catalog database.
type Catalog struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open opens or creates the catalog at path.
func Open(path string) (*Catalog, error) {
	if path == "" {
		return nil, errors.NewValidation("catalog", "path is empty")
	}
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.NewIO("initialize", path, err)
	}
	return &Catalog{db: db, path: path, now: time.Now}, nil
}

// Path returns the database path.
func (c *Catalog) Path() string {
	return c.path
}

// Close closes the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Record stores e. An empty RunID is replaced by a new UUID and a zero
// CreatedAt by the current time; the stored entry is returned.
func (c *Catalog) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.Source == "" {
		return Entry{}, errors.NewValidation("source", "is empty")
	}
	if e.RunID == "" {
		e.RunID = uuid.New().String()
	} else if _, err := uuid.Parse(e.RunID); err != nil {
		return Entry{}, &errors.ValidationError{Field: "run_id", Value: e.RunID, Message: "not a UUID", Err: err}
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = c.now()
	}
	e.CreatedAt = e.CreatedAt.UTC().Truncate(time.Second)

	_, err := c.db.ExecContext(ctx,
		`INSERT INTO conversions (`+columns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Source, e.Output, e.SHA256, e.BLAKE3, e.Language, e.Mode,
		e.Sentences, e.Words, e.URN, e.Author, e.Title, e.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return Entry{}, errors.NewIO("write", c.path, err)
	}
	return e, nil
}

// List returns every entry, oldest first.
func (c *Catalog) List(ctx context.Context) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT `+columns+` FROM conversions ORDER BY created_at, rowid`)
	if err != nil {
		return nil, errors.NewIO("read", c.path, err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scan(rows)
		if err != nil {
			return nil, errors.NewIO("read", c.path, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewIO("read", c.path, err)
	}
	return out, nil
}

// FindBySource returns the most recent entry whose source content has the
// given SHA-256 hash.
func (c *Catalog) FindBySource(ctx context.Context, sha256 string) (Entry, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT `+columns+` FROM conversions WHERE sha256 = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		sha256)
	e, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, &errors.NotFoundError{Resource: "catalog entry", ID: sha256}
	}
	if err != nil {
		return Entry{}, errors.NewIO("read", c.path, err)
	}
	return e, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (Entry, error) {
	var (
		e       Entry
		created string
	)
	err := s.Scan(&e.RunID, &e.Source, &e.Output, &e.SHA256, &e.BLAKE3, &e.Language, &e.Mode,
		&e.Sentences, &e.Words, &e.URN, &e.Author, &e.Title, &created)
	if err != nil {
		return Entry{}, err
	}
	e.CreatedAt, err = time.Parse(time.RFC3339, created)
	if err != nil {
		return Entry{}, err
	}
	return e, nil
}
