// Package media wraps the external collaborators the pipelines depend on:
// ffmpeg for audio extraction, energy probing, and the final cut, ffprobe
// for container inspection, and the whisper CLI for word-level transcripts.
//
// This package handles:
//   - Mono 16kHz WAV extraction from source recordings
//   - Raw PCM energy probing and fixed-window RMS measurement
//   - Whisper transcription with a per-stem JSON cache
//   - Timeline rendering through an ffmpeg filter_complex graph
//
// All invocations go through an injectable command runner so tests can
// exercise argument construction without the binaries installed.
package media
