// Package store records search runs and their cliques in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Run describes one completed search.
type Run struct {
	StartedAt  time.Time
	WordFile   string
	Mode       string
	Words      int
	LetterSets int
	Edges      int
	Duration   time.Duration
}

// Store manages the SQLite connection and schema.
type Store struct {
	db *sql.DB
}

// NewStore opens the database at path, enables WAL and creates the schema.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Store{db: db}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("schema migration failed: %w", err)
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at DATETIME NOT NULL,
		word_file TEXT NOT NULL,
		mode TEXT NOT NULL,
		words INTEGER NOT NULL,
		letter_sets INTEGER NOT NULL,
		edges INTEGER NOT NULL,
		cliques INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS cliques (
		run_id INTEGER NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		line TEXT NOT NULL,
		PRIMARY KEY (run_id, position)
	);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// SaveRun stores run and its result lines in one transaction and returns the
// new run id.
func (s *Store) SaveRun(ctx context.Context, run Run, lines []string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (started_at, word_file, mode, words, letter_sets, edges, cliques, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC(), run.WordFile, run.Mode, run.Words, run.LetterSets, run.Edges,
		len(lines), run.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO cliques (run_id, position, line) VALUES (?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare clique insert: %w", err)
	}
	defer stmt.Close()

	for i, line := range lines {
		if _, err := stmt.ExecContext(ctx, runID, i, line); err != nil {
			return 0, fmt.Errorf("failed to insert clique %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

// Cliques returns the lines stored for runID in their original order.
func (s *Store) Cliques(ctx context.Context, runID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT line FROM cliques WHERE run_id = ? ORDER BY position", runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cliques: %w", err)
	}
	defer rows.Close()

	lines := make([]string, 0)
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("failed to scan clique: %w", err)
		}

		lines = append(lines, line)
	}

	return lines, rows.Err()
}

// CliqueCount returns the clique count recorded for runID.
func (s *Store) CliqueCount(ctx context.Context, runID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT cliques FROM runs WHERE run_id = ?", runID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to read run %d: %w", runID, err)
	}

	return n, nil
}
