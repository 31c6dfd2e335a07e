package media

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"

	"autocut/internal/services"
	"autocut/internal/silence"
	"autocut/internal/transcript"
)

// digital silence floor for 16-bit PCM.
const silenceFloorDB = -96.0

// ProbePCM decodes the recording's primary audio as mono 16kHz signed
// 16-bit little-endian samples streamed over ffmpeg's stdout.
func (s *Service) ProbePCM(ctx context.Context, path string) ([]byte, error) {
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", path,
		"-vn",
		"-ac", "1",
		"-ar", fmt.Sprintf("%d", SampleRate),
		"-f", "s16le",
		"-",
	}
	pcm, err := s.run(ctx, s.ffmpegBinary, args...)
	if err != nil {
		return nil, services.Wrap(services.ErrCollaborator, "media", "probe pcm", "", err)
	}
	return pcm, nil
}

// EnergyWindows measures RMS energy over fixed windows of raw s16le
// samples. Amplitudes are normalized against the recording's peak, so a
// window's RMS is comparable across recordings with different gain.
func EnergyWindows(pcm []byte, sampleRateHz int) []silence.Window {
	if sampleRateHz <= 0 {
		sampleRateHz = SampleRate
	}
	sampleCount := len(pcm) / 2
	if sampleCount == 0 {
		return nil
	}

	samples := make([]float64, sampleCount)
	var peak float64
	for i := 0; i < sampleCount; i++ {
		v := float64(int16(binary.LittleEndian.Uint16(pcm[2*i:])))
		samples[i] = v
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak > 0 {
		for i := range samples {
			samples[i] /= peak
		}
	}

	windowSamples := sampleRateHz * EnergyWindowMS / 1000
	if windowSamples <= 0 {
		windowSamples = 1
	}

	windows := make([]silence.Window, 0, sampleCount/windowSamples+1)
	for off := 0; off < sampleCount; off += windowSamples {
		end := off + windowSamples
		if end > sampleCount {
			end = sampleCount
		}
		var sum float64
		for _, v := range samples[off:end] {
			sum += v * v
		}
		rms := math.Sqrt(sum / float64(end-off))
		windows = append(windows, silence.Window{
			Span: transcript.Span{
				StartMS: int64(off) * 1000 / int64(sampleRateHz),
				EndMS:   int64(end) * 1000 / int64(sampleRateHz),
			},
			RMS: rms,
		})
	}
	return windows
}

// WindowEnergy adapts energy windows into a span probe reporting mean
// audible energy in dBFS. The probe reports false for spans no window
// overlaps.
func WindowEnergy(windows []silence.Window) func(span transcript.Span) (float64, bool) {
	return func(span transcript.Span) (float64, bool) {
		var sum float64
		var count int
		for _, w := range windows {
			if w.Span.Overlaps(span) {
				sum += w.RMS
				count++
			}
		}
		if count == 0 {
			return 0, false
		}
		mean := sum / float64(count)
		if mean <= 0 {
			return silenceFloorDB, true
		}
		db := 20 * math.Log10(mean)
		if db < silenceFloorDB {
			db = silenceFloorDB
		}
		return db, true
	}
}
