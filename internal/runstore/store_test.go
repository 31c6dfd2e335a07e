package runstore

import (
	"context"
	"math"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "autocut.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRunLifecycle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.StartRun(ctx, "run-1", ModeLearn, "telugu_news"); err != nil {
		t.Fatalf("start run: %v", err)
	}
	if err := store.FinishRun(ctx, "run-1", RunCompleted, "", 3); err != nil {
		t.Fatalf("finish run: %v", err)
	}

	runs, err := store.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	run := runs[0]
	if run.ID != "run-1" || run.Mode != ModeLearn || run.StyleName != "telugu_news" {
		t.Fatalf("unexpected run %+v", run)
	}
	if run.Status != RunCompleted || run.ProfileVersion != 3 {
		t.Fatalf("unexpected run outcome %+v", run)
	}
	if run.StartedAt.IsZero() || run.FinishedAt.IsZero() {
		t.Fatalf("expected timestamps, got %+v", run)
	}
}

func TestRecordingsAndSkips(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.StartRun(ctx, "run-2", ModeApply, "telugu_news"); err != nil {
		t.Fatalf("start run: %v", err)
	}
	recs := []Recording{
		{RunID: "run-2", SourcePath: "/in/a.mp4", OutputPath: "/out/a.mp4", Status: RecordingCompleted, OriginalMS: 60000, FinalMS: 45000, CutCount: 12},
		{RunID: "run-2", SourcePath: "/in/b.mp4", Status: RecordingSkipped, Reason: "edited transcript is not a subset of raw"},
	}
	for _, rec := range recs {
		if err := store.AddRecording(ctx, rec); err != nil {
			t.Fatalf("add recording: %v", err)
		}
	}

	all, err := store.ListRecordings(ctx, "run-2")
	if err != nil {
		t.Fatalf("list recordings: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 recordings, got %d", len(all))
	}
	if got := all[0].ReductionPercent(); math.Abs(got-25.0) > 1e-9 {
		t.Fatalf("expected 25%% reduction, got %v", got)
	}

	skipped, err := store.SkippedRecordings(ctx, "run-2")
	if err != nil {
		t.Fatalf("skipped recordings: %v", err)
	}
	if len(skipped) != 1 || skipped[0].SourcePath != "/in/b.mp4" {
		t.Fatalf("unexpected skipped %+v", skipped)
	}
	if skipped[0].Reason == "" {
		t.Fatal("expected a skip reason")
	}
}

func TestListRunsOrder(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"run-a", "run-b", "run-c"} {
		if err := store.StartRun(ctx, id, ModeApply, "style"); err != nil {
			t.Fatalf("start %s: %v", id, err)
		}
	}

	runs, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected limit applied, got %d", len(runs))
	}
}

func TestReopenKeepsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autocut.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.StartRun(context.Background(), "run-1", ModeLearn, "style"); err != nil {
		t.Fatalf("start run: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	runs, err := reopened.ListRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected persisted run, got %d", len(runs))
	}
}
