package pipeline

import (
	"context"
	"time"

	"autocut/internal/config"
	"autocut/internal/media"
	"autocut/internal/timeline"
	"autocut/internal/transcript"
)

// Media is the collaborator surface the pipelines need from the media
// service. media.Service satisfies it; tests substitute stubs.
type Media interface {
	ExtractAudio(ctx context.Context, source, dest string) error
	Transcribe(ctx context.Context, audioPath, language string) (*transcript.Transcript, error)
	Inspect(ctx context.Context, path string) (media.Probe, error)
	ProbePCM(ctx context.Context, path string) ([]byte, error)
	Cut(ctx context.Context, input string, tl timeline.Timeline, output string) error
}

// sttContext bounds a transcription call by the configured timeout.
func sttContext(ctx context.Context, cfg *config.Config) (context.Context, context.CancelFunc) {
	if cfg.STT.TimeoutSeconds <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, time.Duration(cfg.STT.TimeoutSeconds)*time.Second)
}
