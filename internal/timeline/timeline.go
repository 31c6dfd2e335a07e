package timeline

import (
	"sort"

	"autocut/internal/profile"
	"autocut/internal/transcript"
)

// Reason attributes a cut to the detector that produced it.
type Reason string

const (
	ReasonSilence        Reason = "silence"
	ReasonFiller         Reason = "filler"
	ReasonRetake         Reason = "retake"
	ReasonManualExcluded Reason = "manual-excluded"
)

// reasonRank orders detectors by application order so that fully
// coinciding spans from different detectors resolve first-applied-wins.
func reasonRank(r Reason) int {
	switch r {
	case ReasonSilence:
		return 0
	case ReasonFiller:
		return 1
	case ReasonRetake:
		return 2
	default:
		return 3
	}
}

// Cut is a single candidate or resolved cut span.
type Cut struct {
	Span   transcript.Span `json:"span"`
	Reason Reason          `json:"reason"`
}

// Segment is one KEEP range with optional crossfade durations at its
// boundaries.
type Segment struct {
	Span      transcript.Span `json:"span"`
	FadeInMS  int64           `json:"fade_in_ms,omitempty"`
	FadeOutMS int64           `json:"fade_out_ms,omitempty"`
}

// Timeline is the final ordered, non-overlapping KEEP sequence plus the
// resolved cuts for audit.
type Timeline struct {
	Segments []Segment `json:"segments"`
	Cuts     []Cut     `json:"cuts"`
}

// Duration returns the total kept duration in milliseconds.
func (t Timeline) Duration() int64 {
	var total int64
	for _, seg := range t.Segments {
		total += seg.Span.Duration()
	}
	return total
}

// Build resolves all candidate cuts into the final timeline for a
// recording of the given duration. The result is independent of the input
// cut ordering.
func Build(cuts []Cut, rules profile.Cuts, durationMS int64) Timeline {
	if durationMS <= 0 {
		return Timeline{}
	}

	merged := MergeCuts(clampCuts(cuts, durationMS))
	padded := MergeCuts(pad(merged, rules.PaddingMS, durationMS))
	keeps := invert(padded, durationMS)
	keeps, padded = foldShortSegments(keeps, padded, rules.MinSegmentMS, durationMS)
	segments := assignCrossfades(keeps, rules.CrossfadeMS, durationMS)

	return Timeline{Segments: segments, Cuts: padded}
}

func clampCuts(cuts []Cut, durationMS int64) []Cut {
	out := make([]Cut, 0, len(cuts))
	for _, c := range cuts {
		span := c.Span.Clamp(durationMS)
		if !span.Valid() {
			continue
		}
		out = append(out, Cut{Span: span, Reason: c.Reason})
	}
	return out
}

// MergeCuts collapses overlapping or touching cut spans into their union.
// The merged result is order-independent; when spans from different
// detectors merge, the earliest-starting span's reason wins, with detector
// application order breaking exact ties.
func MergeCuts(cuts []Cut) []Cut {
	if len(cuts) == 0 {
		return nil
	}
	sorted := make([]Cut, len(cuts))
	copy(sorted, cuts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Span.StartMS != sorted[j].Span.StartMS {
			return sorted[i].Span.StartMS < sorted[j].Span.StartMS
		}
		if ri, rj := reasonRank(sorted[i].Reason), reasonRank(sorted[j].Reason); ri != rj {
			return ri < rj
		}
		return sorted[i].Span.EndMS < sorted[j].Span.EndMS
	})

	out := []Cut{sorted[0]}
	for _, c := range sorted[1:] {
		last := &out[len(out)-1]
		if c.Span.Touches(last.Span) {
			last.Span = last.Span.Union(c.Span)
			continue
		}
		out = append(out, c)
	}
	return out
}

func pad(cuts []Cut, paddingMS, durationMS int64) []Cut {
	if paddingMS <= 0 {
		return cuts
	}
	out := make([]Cut, 0, len(cuts))
	for _, c := range cuts {
		span := transcript.Span{
			StartMS: c.Span.StartMS - paddingMS,
			EndMS:   c.Span.EndMS + paddingMS,
		}.Clamp(durationMS)
		if !span.Valid() {
			continue
		}
		out = append(out, Cut{Span: span, Reason: c.Reason})
	}
	return out
}

func invert(cuts []Cut, durationMS int64) []transcript.Span {
	var keeps []transcript.Span
	cursor := int64(0)
	for _, c := range cuts {
		if c.Span.StartMS > cursor {
			keeps = append(keeps, transcript.Span{StartMS: cursor, EndMS: c.Span.StartMS})
		}
		if c.Span.EndMS > cursor {
			cursor = c.Span.EndMS
		}
	}
	if cursor < durationMS {
		keeps = append(keeps, transcript.Span{StartMS: cursor, EndMS: durationMS})
	}
	return keeps
}

// foldShortSegments folds KEEP segments shorter than minSegmentMS into an
// adjacent cut, preferring the larger neighboring cut, and repeats until
// stable since folding can create new adjacencies.
func foldShortSegments(keeps []transcript.Span, cuts []Cut, minSegmentMS, durationMS int64) ([]transcript.Span, []Cut) {
	if minSegmentMS <= 0 {
		return keeps, cuts
	}
	for {
		short := -1
		for i, k := range keeps {
			if k.Duration() < minSegmentMS {
				short = i
				break
			}
		}
		if short == -1 {
			return keeps, cuts
		}
		keep := keeps[short]

		var left, right *Cut
		for i := range cuts {
			if cuts[i].Span.EndMS == keep.StartMS {
				left = &cuts[i]
			}
			if cuts[i].Span.StartMS == keep.EndMS {
				right = &cuts[i]
			}
		}
		switch {
		case left != nil && right != nil:
			// Tie-break: fold into the larger neighboring cut.
			if left.Span.Duration() >= right.Span.Duration() {
				left.Span.EndMS = keep.EndMS
			} else {
				right.Span.StartMS = keep.StartMS
			}
		case left != nil:
			left.Span.EndMS = keep.EndMS
		case right != nil:
			right.Span.StartMS = keep.StartMS
		default:
			// A short keep with no adjacent cut is the whole recording;
			// nothing to fold into.
			return keeps, cuts
		}

		cuts = MergeCuts(cuts)
		keeps = invert(cuts, durationMS)
	}
}

// assignCrossfades sets symmetric fades at every boundary that touches a
// cut. A segment too short for both fades has them shrunk proportionally
// so adjacent crossfades never overlap.
func assignCrossfades(keeps []transcript.Span, crossfadeMS, durationMS int64) []Segment {
	segments := make([]Segment, 0, len(keeps))
	for _, k := range keeps {
		seg := Segment{Span: k}
		if crossfadeMS > 0 {
			if k.StartMS > 0 {
				seg.FadeInMS = crossfadeMS
			}
			if k.EndMS < durationMS {
				seg.FadeOutMS = crossfadeMS
			}
			if total := seg.FadeInMS + seg.FadeOutMS; total > k.Duration() {
				scale := float64(k.Duration()) / float64(total)
				seg.FadeInMS = int64(float64(seg.FadeInMS) * scale)
				seg.FadeOutMS = int64(float64(seg.FadeOutMS) * scale)
			}
		}
		segments = append(segments, seg)
	}
	return segments
}
