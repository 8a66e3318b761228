package flow

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const checkpointSchema = `
CREATE TABLE IF NOT EXISTS checkpoints (
	run_id     TEXT PRIMARY KEY,
	step       TEXT NOT NULL,
	next       TEXT NOT NULL,
	retries    INTEGER NOT NULL DEFAULT 0,
	state      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
`

// SQLiteSaver is a durable Checkpointer backed by SQLite. One row per
// run; Save upserts, so the latest checkpoint always supersedes the
// previous one atomically. State is stored as JSON, so S must be
// JSON-serializable.
type SQLiteSaver[S any] struct {
	db *sql.DB
}

// NewSQLiteSaver opens (creating if needed) the checkpoint database at
// path. Use ":memory:" for an ephemeral store in tests.
func NewSQLiteSaver[S any](path string) (*SQLiteSaver[S], error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open checkpoint db: %w", err)
	}
	// Single writer; SQLite serializes same-key upserts for us.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(checkpointSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init checkpoint schema: %w", err)
	}
	return &SQLiteSaver[S]{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteSaver[S]) Close() error {
	return s.db.Close()
}

// Save implements Checkpointer.
func (s *SQLiteSaver[S]) Save(ctx context.Context, cp Checkpoint[S]) error {
	state, err := json.Marshal(cp.State)
	if err != nil {
		return fmt.Errorf("marshal state for %s: %w", cp.RunID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO checkpoints (run_id, step, next, retries, state, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			step = excluded.step,
			next = excluded.next,
			retries = excluded.retries,
			state = excluded.state,
			updated_at = excluded.updated_at`,
		cp.RunID, cp.Step, cp.Next, cp.Retries, string(state), cp.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("save checkpoint %s: %w", cp.RunID, err)
	}
	return nil
}

// Load implements Checkpointer.
func (s *SQLiteSaver[S]) Load(ctx context.Context, runID string) (Checkpoint[S], error) {
	var (
		cp        Checkpoint[S]
		state     string
		updatedAt time.Time
	)
	row := s.db.QueryRowContext(ctx, `
		SELECT run_id, step, next, retries, state, updated_at
		FROM checkpoints WHERE run_id = ?`, runID)
	if err := row.Scan(&cp.RunID, &cp.Step, &cp.Next, &cp.Retries, &state, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cp, ErrNotFound
		}
		return cp, fmt.Errorf("load checkpoint %s: %w", runID, err)
	}
	if err := json.Unmarshal([]byte(state), &cp.State); err != nil {
		return cp, fmt.Errorf("unmarshal state for %s: %w", runID, err)
	}
	cp.UpdatedAt = updatedAt
	return cp, nil
}

// List returns all stored checkpoints, most recently updated first.
// Used by the CLI status command.
func (s *SQLiteSaver[S]) List(ctx context.Context) ([]Checkpoint[S], error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, step, next, retries, state, updated_at
		FROM checkpoints ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list checkpoints: %w", err)
	}
	defer rows.Close()

	var out []Checkpoint[S]
	for rows.Next() {
		var (
			cp    Checkpoint[S]
			state string
		)
		if err := rows.Scan(&cp.RunID, &cp.Step, &cp.Next, &cp.Retries, &state, &cp.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan checkpoint: %w", err)
		}
		if err := json.Unmarshal([]byte(state), &cp.State); err != nil {
			return nil, fmt.Errorf("unmarshal state for %s: %w", cp.RunID, err)
		}
		out = append(out, cp)
	}
	return out, rows.Err()
}
