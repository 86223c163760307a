// Package store keeps a catalogue of settlement-time runs in SQLite so
// that finite element curves and their Barron predictions can be listed,
// compared and plotted together later.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/alexiusacademia/geocons/internal/consolidation"
)

// ErrNotFound is returned when no run matches an ID.
var ErrNotFound = errors.New("run not found")

// Params records the inputs a run was computed with.
type Params struct {
	Drain      consolidation.Drain            `json:"drain"`
	Ultimate   float64                        `json:"ultimate"` // S∞ (m)
	Settlement *consolidation.SettlementInput `json:"settlement,omitempty"`
	Source     string                         `json:"source,omitempty"`
}

// Point is one time of a run. Measured is nil when the run has no finite
// element curve.
type Point struct {
	Time     float64  // days
	Measured *float64 // m
	Barron   float64  // m
}

// Run is a stored settlement-time curve.
type Run struct {
	ID        string
	Name      string
	CreatedAt time.Time
	Params    Params
	Points    []Point
}

// Summary is a run without its points.
type Summary struct {
	ID        string
	Name      string
	CreatedAt time.Time
	Points    int
}

// Store is the run catalogue.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

// Open opens or creates the catalogue at path.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, logger: logger, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Debug("run catalogue opened", zap.String("path", path))
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	PRAGMA foreign_keys = ON;

	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL,
		params TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_points (
		run_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		time REAL NOT NULL,
		measured REAL,
		barron REAL NOT NULL,
		PRIMARY KEY (run_id, seq),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRun stores a run under a new ID and returns it.
func (s *Store) SaveRun(ctx context.Context, name string, params Params, points []Point) (*Run, error) {
	if name == "" {
		return nil, fmt.Errorf("run name is required")
	}
	data, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode params: %w", err)
	}

	run := &Run{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: s.now().UTC(),
		Params:    params,
		Points:    points,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, name, created_at, params) VALUES (?, ?, ?, ?)`,
		run.ID, run.Name, run.CreatedAt.Format(time.RFC3339Nano), string(data)); err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_points (run_id, seq, time, measured, barron) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range points {
		var measured sql.NullFloat64
		if p.Measured != nil {
			measured = sql.NullFloat64{Float64: *p.Measured, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, run.ID, i, p.Time, measured, p.Barron); err != nil {
			return nil, fmt.Errorf("failed to insert point %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit run: %w", err)
	}
	s.logger.Info("run saved",
		zap.String("id", run.ID),
		zap.String("name", name),
		zap.Int("points", len(points)))
	return run, nil
}

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.name, r.created_at, COUNT(p.seq)
		FROM runs r LEFT JOIN run_points p ON p.run_id = r.id
		GROUP BY r.id
		ORDER BY r.created_at DESC, r.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum     Summary
			created string
		)
		if err := rows.Scan(&sum.ID, &sum.Name, &created, &sum.Points); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if sum.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("run %s: bad timestamp: %w", sum.ID, err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Resolve expands an ID or a unique ID prefix to a full run ID.
func (s *Store) Resolve(ctx context.Context, prefix string) (string, error) {
	if prefix == "" {
		return "", ErrNotFound
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM runs WHERE substr(id, 1, ?) = ? LIMIT 2`, len(prefix), prefix)
	if err != nil {
		return "", fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("failed to scan run: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, prefix)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("run prefix %s is ambiguous", prefix)
	}
}

// GetRun loads a run with its points. id may be a unique prefix.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	id, err := s.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	var (
		run     = &Run{ID: id}
		created string
		params  string
	)
	err = s.db.QueryRowContext(ctx,
		`SELECT name, created_at, params FROM runs WHERE id = ?`, id).
		Scan(&run.Name, &created, &params)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}
	if run.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("run %s: bad timestamp: %w", id, err)
	}
	if err := json.Unmarshal([]byte(params), &run.Params); err != nil {
		return nil, fmt.Errorf("run %s: failed to decode params: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT time, measured, barron FROM run_points WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query points: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			p        Point
			measured sql.NullFloat64
		)
		if err := rows.Scan(&p.Time, &measured, &p.Barron); err != nil {
			return nil, fmt.Errorf("failed to scan point: %w", err)
		}
		if measured.Valid {
			v := measured.Float64
			p.Measured = &v
		}
		run.Points = append(run.Points, p)
	}
	return run, rows.Err()
}

// DeleteRun removes a run and its points. id may be a unique prefix.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	id, err := s.Resolve(ctx, id)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM run_points WHERE run_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete points: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	s.logger.Info("run deleted", zap.String("id", id))
	return nil
}
