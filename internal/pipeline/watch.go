package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"autocut/internal/config"
	"autocut/internal/fileutil"
	"autocut/internal/logging"
	"autocut/internal/profile"
	"autocut/internal/services"
)

// Watcher edits recordings as they land in the input directory.
type Watcher struct {
	cfg         *config.Config
	applier     *Applier
	logger      *slog.Logger
	profilePath string

	settle time.Duration

	mu   sync.Mutex
	seen map[string]struct{}
}

// NewWatcher wires a watcher around an applier. profilePath pins a
// specific profile file; empty means latest for the configured style.
func NewWatcher(cfg *config.Config, applier *Applier, profilePath string, logger *slog.Logger) *Watcher {
	settle := time.Duration(cfg.Workflow.WatchSettleSeconds) * time.Second
	if settle <= 0 {
		settle = 2 * time.Second
	}
	return &Watcher{
		cfg:         cfg,
		applier:     applier,
		logger:      logging.NewComponentLogger(logger, "watch"),
		profilePath: profilePath,
		settle:      settle,
		seen:        make(map[string]struct{}),
	}
}

// Run watches the input directory until ctx is cancelled. Recordings
// already present at startup are processed first. Each recording is
// copied into the work directory once its size stops changing, so a
// recorder still flushing the file never feeds a partial read into the
// edit.
func (w *Watcher) Run(ctx context.Context) error {
	if _, _, err := w.resolveProfile(); err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return services.Wrap(services.ErrCollaborator, "watch", "init", "", err)
	}
	defer fw.Close()

	if err := fw.Add(w.cfg.Paths.InputDir); err != nil {
		return services.Wrap(services.ErrInput, "watch", "input", w.cfg.Paths.InputDir, err)
	}

	sem := make(chan struct{}, w.cfg.Workflow.MaxParallel)
	var wg sync.WaitGroup

	dispatch := func(path string) {
		if !fileutil.IsMediaFile(path) || !w.claim(path) {
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			w.process(ctx, path)
		}()
	}

	existing, err := fileutil.ScanMedia(w.cfg.Paths.InputDir)
	if err != nil {
		return services.Wrap(services.ErrInput, "watch", "input", w.cfg.Paths.InputDir, err)
	}
	for _, path := range existing {
		dispatch(path)
	}

	w.logger.Info("watching for recordings", slog.String("dir", w.cfg.Paths.InputDir))
	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				wg.Wait()
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				dispatch(event.Name)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				wg.Wait()
				return nil
			}
			w.logger.Warn("watch error", logging.Error(err))
		}
	}
}

func (w *Watcher) resolveProfile() (profile.Profile, string, error) {
	return w.applier.resolveProfile(w.profilePath)
}

// claim marks a path as in flight so repeated write events do not
// trigger duplicate edits.
func (w *Watcher) claim(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.seen[path]; ok {
		return false
	}
	w.seen[path] = struct{}{}
	return true
}

// process waits for the recording to settle, snapshots it into the work
// directory, and runs a single-file apply against the snapshot.
func (w *Watcher) process(ctx context.Context, path string) {
	log := w.logger.With(slog.String(logging.FieldRecording, path))

	if err := w.waitSettled(ctx, path); err != nil {
		log.Warn("recording never settled", logging.Error(err))
		return
	}

	snapshot := filepath.Join(w.cfg.Paths.WorkDir, "incoming", filepath.Base(path))
	if err := fileutil.CopyFileVerified(path, snapshot); err != nil {
		log.Warn("snapshot failed", logging.Error(err))
		return
	}
	defer os.Remove(snapshot)

	report, err := w.applier.Run(ctx, snapshot, w.profilePath)
	if err != nil {
		log.Error("apply failed", logging.Error(err))
		return
	}
	for _, res := range report.Recordings {
		if res.Skipped {
			log.Warn("recording skipped", slog.String("reason", res.Reason))
			continue
		}
		log.Info("recording edited",
			slog.String("output", res.Output),
			slog.Float64("reduction_pct", res.ReductionPercent()),
		)
	}
}

// waitSettled polls until two consecutive sizes match, so a file still
// being written is not picked up mid-flush.
func (w *Watcher) waitSettled(ctx context.Context, path string) error {
	var lastSize int64 = -1
	ticker := time.NewTicker(w.settle)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("stat %s: %w", path, err)
			}
			if info.Size() > 0 && info.Size() == lastSize {
				return nil
			}
			lastSize = info.Size()
		}
	}
}
