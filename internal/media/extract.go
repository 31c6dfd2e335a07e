package media

import (
	"context"
	"os"
	"path/filepath"

	"autocut/internal/services"
)

// ExtractAudio extracts the full audio stream from a source recording as a
// mono 16kHz PCM WAV file, the format the whisper CLI and the energy probe
// both expect.
func (s *Service) ExtractAudio(ctx context.Context, source, dest string) error {
	if source == "" {
		return services.Wrap(services.ErrInput, "media", "extract audio", "source path required", nil)
	}
	if dest == "" {
		return services.Wrap(services.ErrInput, "media", "extract audio", "destination path required", nil)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return services.Wrap(services.ErrCollaborator, "media", "extract audio", "ensure destination dir", err)
	}

	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
	if _, err := s.run(ctx, s.ffmpegBinary, args...); err != nil {
		return services.Wrap(services.ErrCollaborator, "media", "extract audio", "", err)
	}
	return nil
}
