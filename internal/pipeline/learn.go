package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"autocut/internal/align"
	"autocut/internal/classify"
	"autocut/internal/config"
	"autocut/internal/embed"
	"autocut/internal/fileutil"
	"autocut/internal/logging"
	"autocut/internal/media"
	"autocut/internal/profile"
	"autocut/internal/rules"
	"autocut/internal/runstore"
	"autocut/internal/services"
)

// Learner distills a style profile from raw/edited recording pairs.
type Learner struct {
	cfg      *config.Config
	media    Media
	store    *profile.Store
	runs     *runstore.Store
	embedder embed.Embedder
	logger   *slog.Logger
}

// NewLearner wires a learner. runs may be nil to skip history recording.
func NewLearner(cfg *config.Config, m Media, store *profile.Store, runs *runstore.Store, logger *slog.Logger) *Learner {
	return &Learner{
		cfg:      cfg,
		media:    m,
		store:    store,
		runs:     runs,
		embedder: embed.NewFingerprintEmbedder(),
		logger:   logging.NewComponentLogger(logger, "learn"),
	}
}

// PairOutcome reports what happened to one training pair.
type PairOutcome struct {
	Raw      string
	Edited   string
	Removals int
	Skipped  bool
	Reason   string
}

// LearnReport summarizes a learning run.
type LearnReport struct {
	RunID       string
	Profile     profile.Profile
	ProfilePath string
	Pairs       []PairOutcome
}

// Run scans the raw and edited directories, learns from every matched
// pair, and writes the next profile version. A pair whose edited
// transcript is not a subset of its raw transcript is skipped; the run
// fails only when no pair could be used.
func (l *Learner) Run(ctx context.Context) (LearnReport, error) {
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	log := logging.WithContext(ctx, l.logger)
	report := LearnReport{RunID: runID}

	l.startRun(ctx, runID)

	rawFiles, err := fileutil.ScanMedia(l.cfg.Paths.RawDir)
	if err != nil {
		return report, l.fail(ctx, runID, services.Wrap(services.ErrInput, "learn", "scan raw", l.cfg.Paths.RawDir, err))
	}
	editedFiles, err := fileutil.ScanMedia(l.cfg.Paths.EditedDir)
	if err != nil {
		return report, l.fail(ctx, runID, services.Wrap(services.ErrInput, "learn", "scan edited", l.cfg.Paths.EditedDir, err))
	}
	if len(rawFiles) == 0 {
		return report, l.fail(ctx, runID, services.Wrap(services.ErrInput, "learn", "scan raw",
			fmt.Sprintf("no supported recordings in %s", l.cfg.Paths.RawDir), nil))
	}
	if len(editedFiles) == 0 {
		return report, l.fail(ctx, runID, services.Wrap(services.ErrInput, "learn", "scan edited",
			fmt.Sprintf("no supported recordings in %s", l.cfg.Paths.EditedDir), nil))
	}

	pairs, unmatched := fileutil.PairByStem(rawFiles, editedFiles)
	for _, raw := range unmatched {
		outcome := PairOutcome{Raw: raw, Skipped: true, Reason: "no edited counterpart"}
		report.Pairs = append(report.Pairs, outcome)
		l.recordSkip(ctx, runID, raw, outcome.Reason)
		log.Warn("skipping recording without edited counterpart", slog.String("raw", raw))
	}

	var removals []classify.Removal
	usable := 0
	for _, pair := range pairs {
		pairRemovals, err := l.learnPair(ctx, pair)
		if err != nil {
			if services.Fatal(err) {
				return report, l.fail(ctx, runID, err)
			}
			outcome := PairOutcome{Raw: pair.Raw, Edited: pair.Edited, Skipped: true, Reason: err.Error()}
			report.Pairs = append(report.Pairs, outcome)
			l.recordSkip(ctx, runID, pair.Raw, skipReason(err))
			log.Warn("skipping training pair",
				slog.String("raw", pair.Raw),
				logging.Error(err),
			)
			continue
		}
		usable++
		removals = append(removals, pairRemovals...)
		report.Pairs = append(report.Pairs, PairOutcome{
			Raw:      pair.Raw,
			Edited:   pair.Edited,
			Removals: len(pairRemovals),
		})
		if l.runs != nil {
			_ = l.runs.AddRecording(ctx, runstore.Recording{
				RunID:      runID,
				SourcePath: pair.Raw,
				Status:     runstore.RecordingCompleted,
				CutCount:   len(pairRemovals),
			})
		}
	}

	if usable == 0 {
		return report, l.fail(ctx, runID, services.Wrap(services.ErrInput, "learn", "pairs",
			"no usable training pairs produced a profile", nil))
	}

	prof := rules.Extract(l.cfg.Workflow.StyleName, removals)
	path, err := l.store.Save(prof)
	if err != nil {
		return report, l.fail(ctx, runID, err)
	}
	saved, err := profile.Load(path)
	if err != nil {
		return report, l.fail(ctx, runID, err)
	}
	report.Profile = saved
	report.ProfilePath = path

	if l.runs != nil {
		_ = l.runs.FinishRun(ctx, runID, runstore.RunCompleted, "", saved.Version)
	}
	log.Info("profile learned",
		slog.String("style", saved.Name),
		slog.Int("version", saved.Version),
		slog.Int("pairs", usable),
		slog.Int("removals", len(removals)),
		slog.String("path", path),
	)
	return report, nil
}

// learnPair aligns one raw/edited pair and classifies its removals.
func (l *Learner) learnPair(ctx context.Context, pair fileutil.Pair) ([]classify.Removal, error) {
	ctx = services.WithRecording(ctx, pair.Raw)
	log := logging.WithContext(ctx, l.logger)

	stem := fileutil.Stem(pair.Raw)
	rawAudio := filepath.Join(l.cfg.Paths.WorkDir, stem+"_raw.wav")
	editedAudio := filepath.Join(l.cfg.Paths.WorkDir, stem+"_edited.wav")

	if err := l.media.ExtractAudio(ctx, pair.Raw, rawAudio); err != nil {
		return nil, err
	}
	if err := l.media.ExtractAudio(ctx, pair.Edited, editedAudio); err != nil {
		return nil, err
	}

	sttCtx, cancel := sttContext(ctx, l.cfg)
	defer cancel()
	rawTr, err := l.media.Transcribe(sttCtx, rawAudio, l.cfg.STT.Language)
	if err != nil {
		return nil, err
	}
	editedTr, err := l.media.Transcribe(sttCtx, editedAudio, l.cfg.STT.Language)
	if err != nil {
		return nil, err
	}

	segments, err := align.Align(rawTr, editedTr)
	if err != nil {
		return nil, err
	}

	var energy classify.EnergyFunc
	if pcm, err := l.media.ProbePCM(ctx, rawAudio); err != nil {
		// Fall back to the wordless-span heuristic.
		log.Warn("energy probe unavailable", logging.Error(err))
	} else {
		energy = media.WindowEnergy(media.EnergyWindows(pcm, media.SampleRate))
	}

	classifier := classify.New(classify.DefaultProvisional(), energy, l.embedder)
	return classifier.Classify(ctx, segments)
}

func (l *Learner) startRun(ctx context.Context, runID string) {
	if l.runs == nil {
		return
	}
	if err := l.runs.StartRun(ctx, runID, runstore.ModeLearn, l.cfg.Workflow.StyleName); err != nil {
		l.logger.Warn("run history unavailable", logging.Error(err))
	}
}

func (l *Learner) fail(ctx context.Context, runID string, err error) error {
	if l.runs != nil {
		_ = l.runs.FinishRun(ctx, runID, runstore.RunFailed, err.Error(), 0)
	}
	return err
}

func (l *Learner) recordSkip(ctx context.Context, runID, source, reason string) {
	if l.runs == nil {
		return
	}
	_ = l.runs.AddRecording(ctx, runstore.Recording{
		RunID:      runID,
		SourcePath: source,
		Status:     runstore.RecordingSkipped,
		Reason:     reason,
	})
}

func skipReason(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
