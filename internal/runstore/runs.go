package runstore

import (
	"context"
	"fmt"
	"time"
)

// Run modes.
const (
	ModeLearn = "learn"
	ModeApply = "apply"
)

// Run statuses.
const (
	RunRunning   = "running"
	RunCompleted = "completed"
	RunFailed    = "failed"
)

// Recording outcomes.
const (
	RecordingCompleted = "completed"
	RecordingSkipped   = "skipped"
	RecordingFailed    = "failed"
)

// Run is one learn or apply invocation.
type Run struct {
	ID             string
	Mode           string
	StyleName      string
	ProfileVersion int
	Status         string
	Error          string
	StartedAt      time.Time
	FinishedAt     time.Time
}

// Recording is one source file processed during a run.
type Recording struct {
	RunID      string
	SourcePath string
	OutputPath string
	Status     string
	Reason     string
	OriginalMS int64
	FinalMS    int64
	CutCount   int
}

// ReductionPercent returns how much shorter the final recording is, as a
// percentage of the original duration.
func (r Recording) ReductionPercent() float64 {
	if r.OriginalMS <= 0 || r.FinalMS <= 0 {
		return 0
	}
	return 100 * float64(r.OriginalMS-r.FinalMS) / float64(r.OriginalMS)
}

// StartRun records the beginning of a run.
func (s *Store) StartRun(ctx context.Context, id, mode, styleName string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	err := s.execWithRetry(ctx,
		`INSERT INTO runs (id, mode, style_name, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		id, mode, styleName, RunRunning, now,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// FinishRun marks a run completed or failed. profileVersion is the version
// written by a learn run, zero otherwise.
func (s *Store) FinishRun(ctx context.Context, id, status, errMsg string, profileVersion int) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	err := s.execWithRetry(ctx,
		`UPDATE runs SET status = ?, error = ?, profile_version = ?, finished_at = ? WHERE id = ?`,
		status, errMsg, profileVersion, now, id,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// AddRecording records the outcome of one recording within a run.
func (s *Store) AddRecording(ctx context.Context, rec Recording) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	err := s.execWithRetry(ctx,
		`INSERT INTO recordings (run_id, source_path, output_path, status, reason, original_ms, final_ms, cut_count, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.SourcePath, rec.OutputPath, rec.Status, rec.Reason,
		rec.OriginalMS, rec.FinalMS, rec.CutCount, now,
	)
	if err != nil {
		return fmt.Errorf("insert recording: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mode, style_name, profile_version, status, error, started_at, finished_at
         FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished string
		if err := rows.Scan(&run.ID, &run.Mode, &run.StyleName, &run.ProfileVersion,
			&run.Status, &run.Error, &started, &finished); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt = parseTime(started)
		run.FinishedAt = parseTime(finished)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// FindRun resolves a run by full ID or unique ID prefix.
func (s *Store) FindRun(ctx context.Context, id string) (Run, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mode, style_name, profile_version, status, error, started_at, finished_at
         FROM runs WHERE id LIKE ? || '%' ORDER BY started_at DESC LIMIT 2`, id)
	if err != nil {
		return Run{}, fmt.Errorf("find run: %w", err)
	}
	defer rows.Close()

	var matches []Run
	for rows.Next() {
		var run Run
		var started, finished string
		if err := rows.Scan(&run.ID, &run.Mode, &run.StyleName, &run.ProfileVersion,
			&run.Status, &run.Error, &started, &finished); err != nil {
			return Run{}, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt = parseTime(started)
		run.FinishedAt = parseTime(finished)
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return Run{}, err
	}
	switch len(matches) {
	case 0:
		return Run{}, fmt.Errorf("no run matches %q", id)
	case 1:
		return matches[0], nil
	default:
		return Run{}, fmt.Errorf("run id %q is ambiguous", id)
	}
}

// ListRecordings returns the recordings of a run in insertion order.
func (s *Store) ListRecordings(ctx context.Context, runID string) ([]Recording, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, source_path, output_path, status, reason, original_ms, final_ms, cut_count
         FROM recordings WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("list recordings: %w", err)
	}
	defer rows.Close()

	var recs []Recording
	for rows.Next() {
		var rec Recording
		if err := rows.Scan(&rec.RunID, &rec.SourcePath, &rec.OutputPath, &rec.Status,
			&rec.Reason, &rec.OriginalMS, &rec.FinalMS, &rec.CutCount); err != nil {
			return nil, fmt.Errorf("scan recording: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// SkippedRecordings returns the recordings a run skipped, with reasons.
func (s *Store) SkippedRecordings(ctx context.Context, runID string) ([]Recording, error) {
	recs, err := s.ListRecordings(ctx, runID)
	if err != nil {
		return nil, err
	}
	var skipped []Recording
	for _, rec := range recs {
		if rec.Status == RecordingSkipped {
			skipped = append(skipped, rec)
		}
	}
	return skipped, nil
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
