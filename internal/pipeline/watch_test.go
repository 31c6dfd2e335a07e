package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"autocut/internal/logging"
	"autocut/internal/media"
	"autocut/internal/profile"
	"autocut/internal/testsupport"
	"autocut/internal/timeline"
	"autocut/internal/transcript"
)

// fakeMedia serves one scripted transcript for every recording.
type fakeMedia struct {
	tr *transcript.Transcript
}

func (m *fakeMedia) ExtractAudio(ctx context.Context, source, dest string) error { return nil }

func (m *fakeMedia) Transcribe(ctx context.Context, audioPath, language string) (*transcript.Transcript, error) {
	return m.tr, nil
}

func (m *fakeMedia) Inspect(ctx context.Context, path string) (media.Probe, error) {
	return media.Probe{DurationMS: 10_000, AudioStream: true}, nil
}

func (m *fakeMedia) ProbePCM(ctx context.Context, path string) ([]byte, error) {
	return nil, errors.New("no pcm")
}

func (m *fakeMedia) Cut(ctx context.Context, input string, tl timeline.Timeline, output string) error {
	return os.WriteFile(output, []byte("edited"), 0o644)
}

func watchTranscript(t *testing.T) *transcript.Transcript {
	t.Helper()
	return testsupport.Words(t,
		"hello", 0, 500,
		"um", 1000, 1300,
		"world", 2000, 2500,
	)
}

func waitForFile(t *testing.T, path string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(path); err == nil {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("file never appeared: %s", path)
}

func TestWatcherProcessesNewAndExistingRecordings(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := profile.NewStore(cfg.Paths.StylesDir)
	if err != nil {
		t.Fatalf("profile.NewStore: %v", err)
	}
	prof := profile.Default()
	prof.Name = cfg.Workflow.StyleName
	prof.Fillers.Words = []string{"um"}
	if _, err := store.Save(prof); err != nil {
		t.Fatalf("store.Save: %v", err)
	}

	testsupport.WriteFile(t, filepath.Join(cfg.Paths.InputDir, "existing.mp4"), 64)

	applier := NewApplier(cfg, &fakeMedia{tr: watchTranscript(t)}, store, nil, logging.NewNop())
	watcher := NewWatcher(cfg, applier, "", logging.NewNop())
	watcher.settle = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()

	waitForFile(t, filepath.Join(cfg.Paths.OutputDir, "existing_edited.mp4"))

	testsupport.WriteFile(t, filepath.Join(cfg.Paths.InputDir, "incoming.mkv"), 64)
	waitForFile(t, filepath.Join(cfg.Paths.OutputDir, "incoming_edited.mp4"))

	// Non-media files are ignored.
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.InputDir, "notes.txt"), 8)

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}

	if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, "notes_edited.mp4")); err == nil {
		t.Fatal("non-media file was processed")
	}
}

func TestWatcherRequiresProfile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := profile.NewStore(cfg.Paths.StylesDir)
	if err != nil {
		t.Fatalf("profile.NewStore: %v", err)
	}

	applier := NewApplier(cfg, &fakeMedia{tr: watchTranscript(t)}, store, nil, logging.NewNop())
	watcher := NewWatcher(cfg, applier, "", logging.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := watcher.Run(ctx); err == nil {
		t.Fatal("expected error without a stored style")
	}
}

func TestWatcherClaimsEachPathOnce(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	applier := NewApplier(cfg, &fakeMedia{}, nil, nil, logging.NewNop())
	watcher := NewWatcher(cfg, applier, "", logging.NewNop())

	path := fmt.Sprintf("%s/one.mp4", cfg.Paths.InputDir)
	if !watcher.claim(path) {
		t.Fatal("first claim refused")
	}
	if watcher.claim(path) {
		t.Fatal("second claim accepted")
	}
}
