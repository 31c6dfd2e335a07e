// Package silence finds cuttable quiet regions in a recording from its
// audio energy series.
package silence

import (
	"math"

	"autocut/internal/profile"
	"autocut/internal/timeline"
	"autocut/internal/transcript"
)

// Window is one fixed-size RMS energy measurement. RMS is normalized to
// [0,1] against the recording's peak amplitude.
type Window struct {
	Span transcript.Span
	RMS  float64
}

// Detect scans consecutive energy windows and emits a cut for every quiet
// run at least rules.MinMS long. The threshold is the profile's dBFS value
// converted to linear amplitude.
func Detect(windows []Window, rules profile.Silence) []timeline.Cut {
	threshold := math.Pow(10, rules.ThresholdDB/20)

	var cuts []timeline.Cut
	var current *transcript.Span
	flush := func(end int64) {
		if current == nil {
			return
		}
		span := transcript.Span{StartMS: current.StartMS, EndMS: end}
		if span.Duration() >= rules.MinMS {
			cuts = append(cuts, timeline.Cut{Span: span, Reason: timeline.ReasonSilence})
		}
		current = nil
	}

	for _, w := range windows {
		if w.RMS < threshold {
			if current == nil {
				span := w.Span
				current = &span
			}
			current.EndMS = w.Span.EndMS
			continue
		}
		flush(w.Span.StartMS)
	}
	if current != nil {
		flush(current.EndMS)
	}
	return cuts
}
