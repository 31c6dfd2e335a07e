package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"autocut/internal/config"
	"autocut/internal/embed"
	"autocut/internal/fileutil"
	"autocut/internal/filler"
	"autocut/internal/logging"
	"autocut/internal/media"
	"autocut/internal/profile"
	"autocut/internal/retake"
	"autocut/internal/runstore"
	"autocut/internal/services"
	"autocut/internal/silence"
	"autocut/internal/timeline"
)

// Applier edits new recordings under a frozen style profile.
type Applier struct {
	cfg      *config.Config
	media    Media
	store    *profile.Store
	runs     *runstore.Store
	embedder embed.Embedder
	logger   *slog.Logger
}

// NewApplier wires an applier. runs may be nil to skip history recording.
func NewApplier(cfg *config.Config, m Media, store *profile.Store, runs *runstore.Store, logger *slog.Logger) *Applier {
	return &Applier{
		cfg:      cfg,
		media:    m,
		store:    store,
		runs:     runs,
		embedder: embed.NewFingerprintEmbedder(),
		logger:   logging.NewComponentLogger(logger, "apply"),
	}
}

// RecordingResult reports the outcome for one recording.
type RecordingResult struct {
	Source     string
	Output     string
	OriginalMS int64
	FinalMS    int64
	CutCount   int
	Skipped    bool
	Reason     string
}

// ReductionPercent returns how much shorter the edited recording is.
func (r RecordingResult) ReductionPercent() float64 {
	if r.OriginalMS <= 0 || r.FinalMS <= 0 {
		return 0
	}
	return 100 * float64(r.OriginalMS-r.FinalMS) / float64(r.OriginalMS)
}

// ApplyReport summarizes an apply run.
type ApplyReport struct {
	RunID       string
	Profile     profile.Profile
	ProfilePath string
	Recordings  []RecordingResult
}

// Run edits the recording at input, or the first supported recording in
// the input directory, using the profile at profilePath or the latest
// stored version for the configured style name when profilePath is empty.
func (a *Applier) Run(ctx context.Context, input, profilePath string) (ApplyReport, error) {
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	log := logging.WithContext(ctx, a.logger)
	report := ApplyReport{RunID: runID}

	prof, resolvedPath, err := a.resolveProfile(profilePath)
	if err != nil {
		return report, err
	}
	report.Profile = prof
	report.ProfilePath = resolvedPath

	inputs, err := a.resolveInputs(input)
	if err != nil {
		return report, err
	}

	a.startRun(ctx, runID)
	log.Info("applying style",
		slog.String(logging.FieldProfile, fmt.Sprintf("%s_v%d", prof.Name, prof.Version)),
		slog.String("recording", inputs[0]),
	)

	results := make([]RecordingResult, 0, len(inputs))
	for _, source := range inputs {
		results = append(results, a.applyOne(ctx, prof, source))
	}

	for _, res := range results {
		a.recordResult(ctx, runID, res)
	}
	report.Recordings = results

	if a.runs != nil {
		_ = a.runs.FinishRun(ctx, runID, runstore.RunCompleted, "", prof.Version)
	}
	return report, nil
}

// resolveProfile loads an explicit profile file or the latest stored
// version for the configured style name.
func (a *Applier) resolveProfile(profilePath string) (profile.Profile, string, error) {
	if profilePath != "" {
		prof, err := profile.Load(profilePath)
		return prof, profilePath, err
	}
	return a.store.Latest(a.cfg.Workflow.StyleName)
}

func (a *Applier) resolveInputs(input string) ([]string, error) {
	if input == "" {
		input = a.cfg.Paths.InputDir
	}
	info, err := os.Stat(input)
	if err != nil {
		return nil, services.Wrap(services.ErrInput, "apply", "input", input, err)
	}
	if !info.IsDir() {
		if !fileutil.IsMediaFile(input) {
			return nil, services.Wrap(services.ErrInput, "apply", "input",
				fmt.Sprintf("unsupported media file: %s", input), nil)
		}
		return []string{input}, nil
	}
	files, err := fileutil.ScanMedia(input)
	if err != nil {
		return nil, services.Wrap(services.ErrInput, "apply", "input", input, err)
	}
	if len(files) == 0 {
		return nil, services.Wrap(services.ErrInput, "apply", "input",
			fmt.Sprintf("no supported recordings in %s", input), nil)
	}
	// A directory selects its first supported recording; stems sort
	// lexically, so the choice is stable across runs.
	return files[:1], nil
}

// applyOne runs the full detector chain for a single recording.
func (a *Applier) applyOne(ctx context.Context, prof profile.Profile, source string) RecordingResult {
	ctx = services.WithRecording(ctx, source)
	log := logging.WithContext(ctx, a.logger)
	res := RecordingResult{Source: source}

	skip := func(reason string, err error) RecordingResult {
		res.Skipped = true
		res.Reason = reason
		if err != nil {
			res.Reason = reason + ": " + err.Error()
		}
		log.Warn("skipping recording", slog.String("reason", res.Reason))
		return res
	}

	probe, err := a.media.Inspect(ctx, source)
	if err != nil {
		return skip("inspect failed", err)
	}
	if !probe.AudioStream {
		return skip("no audio stream", nil)
	}
	if probe.DurationMS <= 0 {
		return skip("unknown duration", nil)
	}
	res.OriginalMS = probe.DurationMS

	stem := fileutil.Stem(source)
	audioPath := filepath.Join(a.cfg.Paths.WorkDir, stem+".wav")
	if err := a.media.ExtractAudio(ctx, source, audioPath); err != nil {
		return skip("audio extraction failed", err)
	}

	sttCtx, cancel := sttContext(ctx, a.cfg)
	defer cancel()
	tr, err := a.media.Transcribe(sttCtx, audioPath, a.cfg.STT.Language)
	if err != nil {
		return skip("transcription failed", err)
	}

	var cuts []timeline.Cut
	if pcm, err := a.media.ProbePCM(ctx, audioPath); err != nil {
		log.Warn("energy probe unavailable, silence detection skipped", logging.Error(err))
	} else {
		windows := media.EnergyWindows(pcm, media.SampleRate)
		cuts = append(cuts, silence.Detect(windows, prof.Silence)...)
	}
	cuts = append(cuts, filler.Detect(tr, prof.Fillers)...)

	detector := retake.New(a.embedder,
		retake.WithUtteranceGap(a.cfg.Segmentation.UtteranceGapMS),
		retake.WithRetryPolicy(services.RetryPolicy{
			Attempts: a.cfg.Workflow.RetryAttempts,
			Delay:    time.Duration(a.cfg.Workflow.RetryDelaySeconds) * time.Second,
		}),
	)
	retakeCuts, err := detector.Detect(ctx, tr, prof.Retakes)
	if err != nil {
		return skip("retake detection failed", err)
	}
	cuts = append(cuts, retakeCuts...)

	tl := timeline.Build(cuts, prof.Cuts, probe.DurationMS)
	if len(tl.Segments) == 0 {
		return skip("timeline keeps nothing", nil)
	}
	res.CutCount = len(tl.Cuts)
	res.FinalMS = tl.Duration()

	output := filepath.Join(a.cfg.Paths.OutputDir, stem+"_edited.mp4")
	if err := a.media.Cut(ctx, source, tl, output); err != nil {
		return skip("render failed", err)
	}
	res.Output = output

	log.Info("recording edited",
		slog.String("output", output),
		slog.Int64("original_ms", res.OriginalMS),
		slog.Int64("final_ms", res.FinalMS),
		slog.Int("cuts", res.CutCount),
		slog.Float64("reduction_pct", res.ReductionPercent()),
	)
	return res
}

func (a *Applier) startRun(ctx context.Context, runID string) {
	if a.runs == nil {
		return
	}
	if err := a.runs.StartRun(ctx, runID, runstore.ModeApply, a.cfg.Workflow.StyleName); err != nil {
		a.logger.Warn("run history unavailable", logging.Error(err))
	}
}

func (a *Applier) recordResult(ctx context.Context, runID string, res RecordingResult) {
	if a.runs == nil {
		return
	}
	status := runstore.RecordingCompleted
	if res.Skipped {
		status = runstore.RecordingSkipped
	}
	_ = a.runs.AddRecording(ctx, runstore.Recording{
		RunID:      runID,
		SourcePath: res.Source,
		OutputPath: res.Output,
		Status:     status,
		Reason:     res.Reason,
		OriginalMS: res.OriginalMS,
		FinalMS:    res.FinalMS,
		CutCount:   res.CutCount,
	})
}
