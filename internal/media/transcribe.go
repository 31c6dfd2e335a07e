package media

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"

	"autocut/internal/services"
	"autocut/internal/transcript"
)

// whisperWord is a single timed word from whisper's JSON output.
type whisperWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type whisperSegment struct {
	Words []whisperWord `json:"words"`
}

type whisperPayload struct {
	Segments []whisperSegment `json:"segments"`
}

// Transcribe produces a word-level transcript for an extracted audio file.
// Results are cached as JSON keyed by the audio file's stem; a cached file
// is reused without rerunning the model. language may be empty for
// auto-detection.
func (s *Service) Transcribe(ctx context.Context, audioPath, language string) (*transcript.Transcript, error) {
	if audioPath == "" {
		return nil, services.Wrap(services.ErrInput, "media", "transcribe", "audio path required", nil)
	}
	cacheDir := s.cacheDir
	if cacheDir == "" {
		cacheDir = filepath.Dir(audioPath)
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrCollaborator, "media", "transcribe", "ensure cache dir", err)
	}

	stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	jsonPath := filepath.Join(cacheDir, stem+".json")

	if _, err := os.Stat(jsonPath); err != nil {
		args := []string{
			audioPath,
			"--model", s.whisperModel,
			"--output_dir", cacheDir,
			"--output_format", "json",
			"--word_timestamps", "True",
			"--verbose", "False",
		}
		if language != "" {
			args = append(args, "--language", language)
		}
		if _, err := s.run(ctx, s.whisperBinary, args...); err != nil {
			return nil, services.Wrap(services.ErrCollaborator, "media", "transcribe", "", err)
		}
	}

	return loadTranscript(jsonPath)
}

// loadTranscript parses a whisper JSON file into a transcript, inserting a
// pause token for every gap between consecutive words.
func loadTranscript(jsonPath string) (*transcript.Transcript, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, services.Wrap(services.ErrCollaborator, "media", "transcribe", "read transcript json", err)
	}
	var payload whisperPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, services.Wrap(services.ErrCollaborator, "media", "transcribe", "parse transcript json", err)
	}

	var tokens []transcript.Token
	var prevEnd int64
	for _, seg := range payload.Segments {
		for _, w := range seg.Words {
			text := strings.TrimSpace(w.Word)
			if text == "" {
				continue
			}
			startMS := int64(math.Round(w.Start * 1000))
			endMS := int64(math.Round(w.End * 1000))
			// Whisper occasionally emits zero-length or slightly
			// overlapping words; nudge them onto the grid.
			if startMS < prevEnd {
				startMS = prevEnd
			}
			if endMS <= startMS {
				endMS = startMS + 1
			}
			if gap := startMS - prevEnd; gap > 0 && len(tokens) > 0 {
				tokens = append(tokens, transcript.Token{
					StartMS: prevEnd,
					EndMS:   startMS,
					Kind:    transcript.TokenPause,
				})
			}
			tokens = append(tokens, transcript.Token{
				Text:    text,
				StartMS: startMS,
				EndMS:   endMS,
				Kind:    transcript.TokenWord,
			})
			prevEnd = endMS
		}
	}

	tr, err := transcript.New(tokens)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "media", "transcribe", "invalid transcript", err)
	}
	return tr, nil
}
