package align

import (
	"fmt"
	"math"
	"strings"

	"autocut/internal/services"
	"autocut/internal/transcript"
)

// Kind labels an alignment segment.
type Kind string

const (
	// SegmentMatch covers raw speech the editor kept.
	SegmentMatch Kind = "match"
	// SegmentRemoved covers raw speech with no counterpart in the edit.
	SegmentRemoved Kind = "removed"
)

// contextWords is how many matched words of surrounding context a removed
// segment carries for classification.
const contextWords = 3

// Segment is one element of the alignment result. Segments are ordered and
// jointly cover the raw recording's timeline.
type Segment struct {
	Kind   Kind
	Raw    transcript.Span
	Edited transcript.Span    // valid only for SegmentMatch
	Tokens []transcript.Token // raw tokens inside the segment

	// Matched context around a removed segment, up to contextWords each.
	Prev []transcript.Token
	Next []transcript.Token
}

// Duration returns the raw-timeline length of the segment.
func (s Segment) Duration() int64 {
	return s.Raw.Duration()
}

// Text joins the segment's raw word texts.
func (s Segment) Text() string {
	return transcript.JoinText(s.Tokens)
}

// Align matches the edited transcript against the raw transcript and
// returns ordered match/removed segments covering the raw timeline.
// It fails with an error tagged services.ErrAlignment when the edited
// transcript contains words absent from the raw sequence.
func Align(raw, edited *transcript.Transcript) ([]Segment, error) {
	rawWords := raw.Words()
	editedWords := edited.Words()

	matched, err := embed(rawWords, editedWords)
	if err != nil {
		return nil, err
	}

	return buildSegments(raw, rawWords, editedWords, matched), nil
}

// embed finds, among all embeddings of edited into raw as a subsequence,
// the one maximizing total matched raw word duration. It returns, per
// raw word index, the edited word index it matched or -1.
func embed(rawWords, editedWords []transcript.Token) ([]int, error) {
	n := len(rawWords)
	m := len(editedWords)

	matched := make([]int, n)
	for i := range matched {
		matched[i] = -1
	}
	if m == 0 {
		return matched, nil
	}
	if m > n {
		return nil, alignmentError(rawWords, editedWords)
	}

	const negInf = math.MinInt64 / 2
	prev := make([]int64, m+1)
	cur := make([]int64, m+1)
	for j := 1; j <= m; j++ {
		prev[j] = negInf
	}

	// One bit per (raw, edited) cell: set when the optimal score at that
	// cell pairs the two words.
	diag := make([]uint64, ((n+1)*(m+1)+63)/64)
	setBit := func(i, j int) { idx := i*(m+1) + j; diag[idx/64] |= 1 << (idx % 64) }
	bit := func(i, j int) bool { idx := i*(m+1) + j; return diag[idx/64]&(1<<(idx%64)) != 0 }

	for i := 1; i <= n; i++ {
		cur[0] = 0
		for j := 1; j <= m; j++ {
			best := prev[j]
			if prev[j-1] > negInf && sameText(rawWords[i-1], editedWords[j-1]) {
				if cand := prev[j-1] + rawWords[i-1].Duration(); cand > best {
					best = cand
					setBit(i, j)
				}
			}
			cur[j] = best
		}
		prev, cur = cur, prev
	}
	if prev[m] <= negInf/2 {
		return nil, alignmentError(rawWords, editedWords)
	}

	for i, j := n, m; i > 0; i-- {
		if j > 0 && bit(i, j) {
			matched[i-1] = j - 1
			j--
		}
	}
	return matched, nil
}

func sameText(a, b transcript.Token) bool {
	return strings.TrimSpace(a.Text) == strings.TrimSpace(b.Text)
}

// alignmentError locates the first edited word that cannot be embedded and
// reports it. A greedy subsequence scan suffices for diagnosis.
func alignmentError(rawWords, editedWords []transcript.Token) error {
	i := 0
	for j, ew := range editedWords {
		for i < len(rawWords) && !sameText(rawWords[i], ew) {
			i++
		}
		if i == len(rawWords) {
			return services.Wrap(services.ErrAlignment, "align", "match",
				fmt.Sprintf("edited word %d %q has no remaining match in raw transcript (non-subtractive edit)", j, ew.Text), nil)
		}
		i++
	}
	return services.Wrap(services.ErrAlignment, "align", "match", "edited transcript is not a subsequence of raw", nil)
}

// buildSegments converts per-word match assignments into ordered segments
// covering the raw timeline. Gaps and pause tokens adjacent to removed
// words belong to the removed segment, since the editor cut those too.
func buildSegments(raw *transcript.Transcript, rawWords, editedWords []transcript.Token, matched []int) []Segment {
	duration := raw.Duration()
	if duration == 0 {
		return nil
	}

	// Index matched state by position in the full token sequence.
	wordIdx := 0
	states := make([]tokenState, 0, len(raw.Tokens))
	for _, tok := range raw.Tokens {
		st := tokenState{tok: tok, matchedTo: -1}
		if tok.Kind == transcript.TokenWord {
			st.matchedTo = matched[wordIdx]
			wordIdx++
		}
		states = append(states, st)
	}

	// A pause token counts as matched when it sits between two matched
	// words; everything else in a removed run is removed.
	isMatched := func(i int) bool {
		if states[i].matchedTo >= 0 {
			return true
		}
		if states[i].tok.Kind != transcript.TokenPause {
			return false
		}
		prevMatched := false
		for j := i - 1; j >= 0; j-- {
			if states[j].tok.Kind == transcript.TokenWord {
				prevMatched = states[j].matchedTo >= 0
				break
			}
		}
		nextMatched := false
		for j := i + 1; j < len(states); j++ {
			if states[j].tok.Kind == transcript.TokenWord {
				nextMatched = states[j].matchedTo >= 0
				break
			}
		}
		return prevMatched && nextMatched
	}

	var segments []Segment
	i := 0
	for i < len(states) {
		start := i
		kind := SegmentRemoved
		if isMatched(i) {
			kind = SegmentMatch
		}
		for i < len(states) {
			k := SegmentRemoved
			if isMatched(i) {
				k = SegmentMatch
			}
			if k != kind {
				break
			}
			i++
		}
		seg := Segment{Kind: kind}
		for _, st := range states[start:i] {
			seg.Tokens = append(seg.Tokens, st.tok)
		}
		seg.Raw = transcript.Span{
			StartMS: states[start].tok.StartMS,
			EndMS:   states[i-1].tok.EndMS,
		}
		if kind == SegmentMatch {
			seg.Edited = editedSpan(states[start:i], editedWords)
		}
		segments = append(segments, seg)
	}

	stretchBoundaries(segments, duration)
	attachContext(segments)
	return segments
}

type tokenState struct {
	tok       transcript.Token
	matchedTo int // edited word index, -1 for removed words and pauses
}

func editedSpan(states []tokenState, editedWords []transcript.Token) transcript.Span {
	first, last := -1, -1
	for _, st := range states {
		if st.matchedTo < 0 {
			continue
		}
		if first == -1 {
			first = st.matchedTo
		}
		last = st.matchedTo
	}
	if first == -1 {
		return transcript.Span{}
	}
	return transcript.Span{
		StartMS: editedWords[first].StartMS,
		EndMS:   editedWords[last].EndMS,
	}
}

// stretchBoundaries makes consecutive segments cover the raw timeline with
// no holes: inter-segment gaps attach to the removed side, and the first
// and last segments absorb the recording's leading and trailing slack.
func stretchBoundaries(segments []Segment, duration int64) {
	for i := 1; i < len(segments); i++ {
		prev := &segments[i-1]
		cur := &segments[i]
		if cur.Raw.StartMS <= prev.Raw.EndMS {
			continue
		}
		if cur.Kind == SegmentRemoved {
			cur.Raw.StartMS = prev.Raw.EndMS
		} else {
			prev.Raw.EndMS = cur.Raw.StartMS
		}
	}
	if len(segments) > 0 {
		segments[0].Raw.StartMS = 0
		segments[len(segments)-1].Raw.EndMS = duration
	}
}

func attachContext(segments []Segment) {
	for i := range segments {
		if segments[i].Kind != SegmentRemoved {
			continue
		}
		if i > 0 {
			segments[i].Prev = lastWords(segments[i-1].Tokens, contextWords)
		}
		if i+1 < len(segments) {
			segments[i].Next = firstWords(segments[i+1].Tokens, contextWords)
		}
	}
}

func firstWords(tokens []transcript.Token, n int) []transcript.Token {
	var out []transcript.Token
	for _, tok := range tokens {
		if tok.Kind != transcript.TokenWord {
			continue
		}
		out = append(out, tok)
		if len(out) == n {
			break
		}
	}
	return out
}

func lastWords(tokens []transcript.Token, n int) []transcript.Token {
	var out []transcript.Token
	for i := len(tokens) - 1; i >= 0 && len(out) < n; i-- {
		if tokens[i].Kind != transcript.TokenWord {
			continue
		}
		out = append([]transcript.Token{tokens[i]}, out...)
	}
	return out
}
