package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Run statuses.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Record is one row of run history.
type Record struct {
	ID              int64
	RunID           string
	Source          string
	Mode            string
	Status          string
	FrameCount      int
	DurationSeconds float64
	TrackPath       string
	SpritePath      string
	TilesDir        string
	ErrorMessage    string
	ElapsedMS       int64
	CreatedAt       time.Time
}

// RecordRun appends one run to the history and returns its row ID.
func (s *Store) RecordRun(ctx context.Context, rec Record) (int64, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	res, err := s.execWithRetry(ctx, `
		INSERT INTO runs (run_id, source, mode, status, frame_count, duration_seconds,
			track_path, sprite_path, tiles_dir, error, elapsed_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.Source, rec.Mode, rec.Status, rec.FrameCount, rec.DurationSeconds,
		rec.TrackPath, rec.SpritePath, rec.TilesDir, rec.ErrorMessage, rec.ElapsedMS,
		rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("record run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("record run id: %w", err)
	}
	return id, nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, selectRuns+" ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// RunsForSource returns every recorded run for one source, newest first.
func (s *Store) RunsForSource(ctx context.Context, source string) ([]Record, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, selectRuns+" WHERE source = ? ORDER BY id DESC", source)
	if err != nil {
		return nil, fmt.Errorf("list runs for source: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Clear removes every recorded run.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.execWithRetry(ctx, "DELETE FROM runs"); err != nil {
		return fmt.Errorf("clear runs: %w", err)
	}
	return nil
}

const selectRuns = `
	SELECT id, run_id, source, mode, status, frame_count, duration_seconds,
		track_path, sprite_path, tiles_dir, error, elapsed_ms, created_at
	FROM runs`

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var (
			rec       Record
			createdAt string
		)
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.Source, &rec.Mode, &rec.Status,
			&rec.FrameCount, &rec.DurationSeconds, &rec.TrackPath, &rec.SpritePath,
			&rec.TilesDir, &rec.ErrorMessage, &rec.ElapsedMS, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse run timestamp %q: %w", createdAt, err)
		}
		rec.CreatedAt = parsed
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return records, nil
}
