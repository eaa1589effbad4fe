package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const placementColumns = "id, run_id, mode, source, destination, arc, kind, replaced, created_at, undone_at"

// Record inserts p and returns it with ID and CreatedAt assigned.
func (s *Store) Record(ctx context.Context, p Placement) (Placement, error) {
	ctx = ensureContext(ctx)
	if strings.TrimSpace(p.RunID) == "" {
		return Placement{}, errors.New("record placement: run id required")
	}
	if p.Source == "" || p.Destination == "" {
		return Placement{}, errors.New("record placement: source and destination required")
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.CreatedAt = p.CreatedAt.UTC()

	var res sql.Result
	err := retryOnBusy(ctx, func() error {
		var execErr error
		res, execErr = s.db.ExecContext(ctx,
			`INSERT INTO placements (run_id, mode, source, destination, arc, kind, replaced, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.RunID, p.Mode, p.Source, p.Destination, p.Arc, p.Kind, boolToInt(p.Replaced),
			p.CreatedAt.Format(time.RFC3339Nano))
		return execErr
	})
	if err != nil {
		return Placement{}, fmt.Errorf("insert placement: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Placement{}, fmt.Errorf("placement id: %w", err)
	}
	p.ID = id
	return p, nil
}

// List returns the most recent placements, newest first. A limit <= 0 returns
// every row.
func (s *Store) List(ctx context.Context, limit int) ([]Placement, error) {
	ctx = ensureContext(ctx)
	query := "SELECT " + placementColumns + " FROM placements ORDER BY id DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return s.query(ctx, query, args...)
}

// Run returns the placements of runID in the order they were applied.
func (s *Store) Run(ctx context.Context, runID string) ([]Placement, error) {
	ctx = ensureContext(ctx)
	rows, err := s.query(ctx, "SELECT "+placementColumns+" FROM placements WHERE run_id = ? ORDER BY id ASC", runID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("run %q: %w", runID, ErrNotFound)
	}
	return rows, nil
}

// LastRunID returns the run id of the newest placement that has not been undone.
func (s *Store) LastRunID(ctx context.Context) (string, error) {
	ctx = ensureContext(ctx)
	var runID string
	err := s.db.QueryRowContext(ctx,
		"SELECT run_id FROM placements WHERE undone_at IS NULL ORDER BY id DESC LIMIT 1",
	).Scan(&runID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("last run: %w", ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("query last run: %w", err)
	}
	return runID, nil
}

// MarkUndone stamps the placement as reversed.
func (s *Store) MarkUndone(ctx context.Context, id int64) error {
	ctx = ensureContext(ctx)
	var res sql.Result
	err := retryOnBusy(ctx, func() error {
		var execErr error
		res, execErr = s.db.ExecContext(ctx,
			"UPDATE placements SET undone_at = ? WHERE id = ? AND undone_at IS NULL",
			time.Now().UTC().Format(time.RFC3339Nano), id)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("mark placement %d undone: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark placement %d undone: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("placement %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]Placement, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query placements: %w", err)
	}
	defer rows.Close()

	var out []Placement
	for rows.Next() {
		p, err := scanPlacement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate placements: %w", err)
	}
	return out, nil
}

func scanPlacement(scanner interface{ Scan(dest ...any) error }) (Placement, error) {
	var (
		p         Placement
		replaced  int
		createdAt string
		undoneAt  sql.NullString
	)
	if err := scanner.Scan(&p.ID, &p.RunID, &p.Mode, &p.Source, &p.Destination, &p.Arc, &p.Kind,
		&replaced, &createdAt, &undoneAt); err != nil {
		return Placement{}, fmt.Errorf("scan placement: %w", err)
	}
	p.Replaced = replaced != 0
	if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		p.CreatedAt = ts
	}
	if undoneAt.Valid {
		if ts, err := time.Parse(time.RFC3339Nano, undoneAt.String); err == nil {
			p.UndoneAt = &ts
		}
	}
	return p, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
