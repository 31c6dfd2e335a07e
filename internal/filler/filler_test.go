package filler

import (
	"testing"

	"autocut/internal/profile"
	"autocut/internal/transcript"
)

func word(text string, start, end int64) transcript.Token {
	return transcript.Token{Text: text, StartMS: start, EndMS: end, Kind: transcript.TokenWord}
}

func mustTranscript(t *testing.T, tokens ...transcript.Token) *transcript.Transcript {
	t.Helper()
	tr, err := transcript.New(tokens)
	if err != nil {
		t.Fatalf("transcript.New: %v", err)
	}
	return tr
}

func rules() profile.Fillers {
	return profile.Fillers{
		Words:         []string{"అంటే", "um"},
		MinPauseMS:    280,
		MaxDurationMS: 2000,
	}
}

func TestFillerFollowedByPauseIsCut(t *testing.T) {
	tr := mustTranscript(t,
		word("వార్త", 4000, 4990),
		word("అంటే", 5000, 5300),
		word("తరువాత", 5650, 6200), // 350ms pause after the filler
	)
	cuts := Detect(tr, rules())
	if len(cuts) != 1 {
		t.Fatalf("cuts = %+v", cuts)
	}
	if cuts[0].Span != (transcript.Span{StartMS: 5000, EndMS: 5300}) {
		t.Fatalf("span = %v", cuts[0].Span)
	}
}

func TestFillerWithoutPauseIsKept(t *testing.T) {
	tr := mustTranscript(t,
		word("వార్త", 4800, 4990),
		word("అంటే", 5000, 5300),
		word("తరువాత", 5400, 6000), // only 100ms after, 10ms before
	)
	if cuts := Detect(tr, rules()); len(cuts) != 0 {
		t.Fatalf("cuts = %+v, want none", cuts)
	}
}

func TestFillerPrecededByPauseIsCut(t *testing.T) {
	tr := mustTranscript(t,
		word("intro", 0, 500),
		word("um", 900, 1100), // 400ms pause before, tight after
		word("next", 1150, 1600),
	)
	cuts := Detect(tr, rules())
	if len(cuts) != 1 {
		t.Fatalf("cuts = %+v", cuts)
	}
}

func TestFillerCaseNormalized(t *testing.T) {
	tr := mustTranscript(t,
		word("Um", 0, 200),
		word("so", 600, 900),
	)
	cuts := Detect(tr, rules())
	if len(cuts) != 1 {
		t.Fatalf("cuts = %+v", cuts)
	}
}

func TestLongFillerNotCut(t *testing.T) {
	r := rules()
	r.MaxDurationMS = 250
	tr := mustTranscript(t,
		word("um", 0, 400), // longer than the cap
		word("next", 900, 1200),
	)
	if cuts := Detect(tr, r); len(cuts) != 0 {
		t.Fatalf("cuts = %+v, want none", cuts)
	}
}

func TestNonFillerWordsUntouched(t *testing.T) {
	tr := mustTranscript(t,
		word("regular", 0, 400),
		word("speech", 900, 1300),
	)
	if cuts := Detect(tr, rules()); len(cuts) != 0 {
		t.Fatalf("cuts = %+v, want none", cuts)
	}
}
