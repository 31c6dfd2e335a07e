package testsupport

import (
	"testing"

	"autocut/internal/transcript"
)

// Words builds a transcript from (text, startMS, endMS) triples. Tests
// describe token timing inline without repeating validation boilerplate.
func Words(t testing.TB, triples ...any) *transcript.Transcript {
	t.Helper()

	if len(triples)%3 != 0 {
		t.Fatalf("Words wants (text, start, end) triples, got %d values", len(triples))
	}
	tokens := make([]transcript.Token, 0, len(triples)/3)
	for i := 0; i < len(triples); i += 3 {
		text, ok := triples[i].(string)
		if !ok {
			t.Fatalf("Words triple %d: text must be a string", i/3)
		}
		tokens = append(tokens, transcript.Token{
			Text:    text,
			StartMS: toMS(t, triples[i+1]),
			EndMS:   toMS(t, triples[i+2]),
			Kind:    transcript.TokenWord,
		})
	}
	tr, err := transcript.New(tokens)
	if err != nil {
		t.Fatalf("transcript.New: %v", err)
	}
	return tr
}

func toMS(t testing.TB, v any) int64 {
	t.Helper()
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	}
	t.Fatalf("timestamp must be an integer, got %T", v)
	return 0
}
