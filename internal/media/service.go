package media

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

const (
	// FFmpegCommand is the default ffmpeg binary name.
	FFmpegCommand = "ffmpeg"
	// FFprobeCommand is the default ffprobe binary name.
	FFprobeCommand = "ffprobe"
	// WhisperCommand is the default whisper CLI binary name.
	WhisperCommand = "whisper"
	// DefaultWhisperModel balances accuracy and runtime for Telugu and
	// English speech.
	DefaultWhisperModel = "medium"

	// SampleRate is the rate all extracted audio is resampled to.
	SampleRate = 16000
	// EnergyWindowMS is the RMS measurement window length.
	EnergyWindowMS = 10
)

// CommandRunner executes an external binary and returns its stdout.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Service invokes the external media collaborators.
type Service struct {
	ffmpegBinary  string
	ffprobeBinary string
	whisperBinary string
	whisperModel  string
	cacheDir      string
	run           CommandRunner
}

// Option adjusts service construction.
type Option func(*Service)

// WithBinaries overrides the collaborator binary paths. Empty values keep
// the defaults.
func WithBinaries(ffmpeg, ffprobe, whisper string) Option {
	return func(s *Service) {
		if strings.TrimSpace(ffmpeg) != "" {
			s.ffmpegBinary = ffmpeg
		}
		if strings.TrimSpace(ffprobe) != "" {
			s.ffprobeBinary = ffprobe
		}
		if strings.TrimSpace(whisper) != "" {
			s.whisperBinary = whisper
		}
	}
}

// WithWhisperModel overrides the whisper model size.
func WithWhisperModel(model string) Option {
	return func(s *Service) {
		if strings.TrimSpace(model) != "" {
			s.whisperModel = model
		}
	}
}

// WithCacheDir sets the directory for cached transcription JSON.
func WithCacheDir(dir string) Option {
	return func(s *Service) { s.cacheDir = dir }
}

// WithCommandRunner sets a custom command runner (for testing).
func WithCommandRunner(runner CommandRunner) Option {
	return func(s *Service) { s.run = runner }
}

// NewService creates a media service with the given options.
func NewService(opts ...Option) *Service {
	s := &Service{
		ffmpegBinary:  FFmpegCommand,
		ffprobeBinary: FFprobeCommand,
		whisperBinary: WhisperCommand,
		whisperModel:  DefaultWhisperModel,
		run:           runCommand,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// runCommand executes a binary, capturing stdout and folding stderr into
// the returned error.
func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
