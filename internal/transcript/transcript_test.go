package transcript

import "testing"

func word(text string, start, end int64) Token {
	return Token{Text: text, StartMS: start, EndMS: end, Kind: TokenWord}
}

func TestNewRejectsInvalidTokens(t *testing.T) {
	tests := []struct {
		name   string
		tokens []Token
	}{
		{"zero duration", []Token{word("a", 100, 100)}},
		{"negative start", []Token{word("a", -5, 100)}},
		{"decreasing start", []Token{word("a", 500, 700), word("b", 200, 400)}},
		{"overlap", []Token{word("a", 0, 300), word("b", 200, 400)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.tokens); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestWordsSkipsPauses(t *testing.T) {
	tr, err := New([]Token{
		word("hello", 0, 400),
		{StartMS: 400, EndMS: 900, Kind: TokenPause},
		word("world", 900, 1300),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	words := tr.Words()
	if len(words) != 2 {
		t.Fatalf("got %d words, want 2", len(words))
	}
	if tr.Text() != "hello world" {
		t.Fatalf("Text() = %q", tr.Text())
	}
	if tr.Duration() != 1300 {
		t.Fatalf("Duration() = %d, want 1300", tr.Duration())
	}
}

func TestUtterancesSplitOnLongGaps(t *testing.T) {
	tr, err := New([]Token{
		word("take", 0, 300),
		word("one", 350, 600),
		word("take", 1400, 1700), // 800ms gap: new utterance
		word("two", 1750, 2000),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	utts := tr.Utterances(500)
	if len(utts) != 2 {
		t.Fatalf("got %d utterances, want 2", len(utts))
	}
	if utts[0].Text() != "take one" || utts[1].Text() != "take two" {
		t.Fatalf("unexpected texts: %q / %q", utts[0].Text(), utts[1].Text())
	}
	if utts[0].Span != (Span{StartMS: 0, EndMS: 600}) {
		t.Fatalf("first span = %v", utts[0].Span)
	}
	if utts[1].Span != (Span{StartMS: 1400, EndMS: 2000}) {
		t.Fatalf("second span = %v", utts[1].Span)
	}
}

func TestUtterancesSingleGroupWithinGap(t *testing.T) {
	tr, err := New([]Token{
		word("a", 0, 200),
		word("b", 600, 800),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := len(tr.Utterances(500)); got != 1 {
		t.Fatalf("got %d utterances, want 1", got)
	}
}

func TestSpanArithmetic(t *testing.T) {
	a := Span{StartMS: 100, EndMS: 300}
	b := Span{StartMS: 300, EndMS: 500}
	c := Span{StartMS: 250, EndMS: 400}

	if a.Overlaps(b) {
		t.Error("adjacent half-open spans should not overlap")
	}
	if !a.Touches(b) {
		t.Error("adjacent spans should touch")
	}
	if !a.Overlaps(c) {
		t.Error("expected overlap")
	}
	if got := a.Union(c); got != (Span{StartMS: 100, EndMS: 400}) {
		t.Errorf("Union = %v", got)
	}
	if got := (Span{StartMS: -50, EndMS: 900}).Clamp(700); got != (Span{StartMS: 0, EndMS: 700}) {
		t.Errorf("Clamp = %v", got)
	}
	if (Span{StartMS: 100, EndMS: 100}).Valid() {
		t.Error("zero-duration span must be invalid")
	}
}
