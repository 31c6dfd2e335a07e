package transcript

import "fmt"

// Span is a half-open [StartMS, EndMS) range on a recording's timeline.
type Span struct {
	StartMS int64 `json:"start_ms"`
	EndMS   int64 `json:"end_ms"`
}

// Duration returns the span length in milliseconds.
func (s Span) Duration() int64 {
	return s.EndMS - s.StartMS
}

// Valid reports whether the span has positive duration and a non-negative
// start. Zero-duration spans are invalid.
func (s Span) Valid() bool {
	return s.StartMS >= 0 && s.EndMS > s.StartMS
}

// Overlaps reports whether the two half-open spans share any time.
func (s Span) Overlaps(other Span) bool {
	return s.StartMS < other.EndMS && other.StartMS < s.EndMS
}

// Touches reports whether the spans overlap or are directly adjacent.
func (s Span) Touches(other Span) bool {
	return s.StartMS <= other.EndMS && other.StartMS <= s.EndMS
}

// Union returns the smallest span covering both inputs.
func (s Span) Union(other Span) Span {
	out := s
	if other.StartMS < out.StartMS {
		out.StartMS = other.StartMS
	}
	if other.EndMS > out.EndMS {
		out.EndMS = other.EndMS
	}
	return out
}

// Clamp restricts the span to [0, limitMS). The result may be invalid if
// the span lies entirely outside the range.
func (s Span) Clamp(limitMS int64) Span {
	out := s
	if out.StartMS < 0 {
		out.StartMS = 0
	}
	if out.EndMS > limitMS {
		out.EndMS = limitMS
	}
	return out
}

func (s Span) String() string {
	return fmt.Sprintf("[%dms,%dms)", s.StartMS, s.EndMS)
}
