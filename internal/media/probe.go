package media

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"autocut/internal/services"
)

// probeResult mirrors the ffprobe JSON fields the pipelines consume.
type probeResult struct {
	Streams []probeStream `json:"streams"`
	Format  probeFormat   `json:"format"`
}

type probeStream struct {
	Index     int    `json:"index"`
	CodecType string `json:"codec_type"`
}

type probeFormat struct {
	Duration string `json:"duration"`
}

// Probe holds the container facts the pipelines need.
type Probe struct {
	DurationMS  int64
	AudioStream bool
}

// Inspect runs ffprobe against the path and returns the container duration
// and whether an audio stream is present.
func (s *Service) Inspect(ctx context.Context, path string) (Probe, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Probe{}, services.Wrap(services.ErrInput, "media", "inspect", "empty path", nil)
	}

	args := []string{
		"-v", "error",
		"-hide_banner",
		"-show_format",
		"-show_streams",
		"-of", "json",
		"--", path,
	}
	output, err := s.run(ctx, s.ffprobeBinary, args...)
	if err != nil {
		return Probe{}, services.Wrap(services.ErrCollaborator, "media", "inspect", "", err)
	}

	var result probeResult
	if err := json.Unmarshal(output, &result); err != nil {
		return Probe{}, services.Wrap(services.ErrCollaborator, "media", "inspect", "parse ffprobe json", err)
	}

	probe := Probe{DurationMS: durationMS(result.Format.Duration)}
	for _, stream := range result.Streams {
		if strings.EqualFold(stream.CodecType, "audio") {
			probe.AudioStream = true
			break
		}
	}
	return probe, nil
}

func durationMS(value string) int64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(parsed) || parsed < 0 {
		return 0
	}
	return int64(math.Round(parsed * 1000))
}
