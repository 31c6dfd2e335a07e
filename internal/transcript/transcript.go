package transcript

import (
	"fmt"
	"strings"
)

// TokenKind distinguishes spoken words from detected pauses.
type TokenKind string

const (
	TokenWord  TokenKind = "word"
	TokenPause TokenKind = "pause"
)

// Token is a single timestamped transcript element.
type Token struct {
	Text    string    `json:"text"`
	StartMS int64     `json:"start_ms"`
	EndMS   int64     `json:"end_ms"`
	Kind    TokenKind `json:"kind"`
}

// Duration returns the token length in milliseconds.
func (t Token) Duration() int64 {
	return t.EndMS - t.StartMS
}

// Span returns the token's time range.
func (t Token) Span() Span {
	return Span{StartMS: t.StartMS, EndMS: t.EndMS}
}

// Transcript is an immutable ordered token sequence covering one recording.
type Transcript struct {
	Tokens []Token `json:"tokens"`
}

// New validates the token ordering invariants and returns a transcript.
// Tokens must have positive duration, non-decreasing start times, and no
// overlap between consecutive tokens.
func New(tokens []Token) (*Transcript, error) {
	for i, tok := range tokens {
		if tok.EndMS <= tok.StartMS {
			return nil, fmt.Errorf("token %d %q: end %dms not after start %dms", i, tok.Text, tok.EndMS, tok.StartMS)
		}
		if tok.StartMS < 0 {
			return nil, fmt.Errorf("token %d %q: negative start %dms", i, tok.Text, tok.StartMS)
		}
		if i > 0 {
			prev := tokens[i-1]
			if tok.StartMS < prev.StartMS {
				return nil, fmt.Errorf("token %d %q: start %dms before previous start %dms", i, tok.Text, tok.StartMS, prev.StartMS)
			}
			if tok.StartMS < prev.EndMS {
				return nil, fmt.Errorf("token %d %q: overlaps previous token ending at %dms", i, tok.Text, prev.EndMS)
			}
		}
	}
	return &Transcript{Tokens: tokens}, nil
}

// Words returns the word tokens in order, skipping pauses.
func (tr *Transcript) Words() []Token {
	if tr == nil {
		return nil
	}
	words := make([]Token, 0, len(tr.Tokens))
	for _, tok := range tr.Tokens {
		if tok.Kind == TokenWord {
			words = append(words, tok)
		}
	}
	return words
}

// Text joins all word token texts with single spaces.
func (tr *Transcript) Text() string {
	words := tr.Words()
	parts := make([]string, 0, len(words))
	for _, w := range words {
		parts = append(parts, w.Text)
	}
	return strings.Join(parts, " ")
}

// Duration returns the end timestamp of the final token, or zero for an
// empty transcript.
func (tr *Transcript) Duration() int64 {
	if tr == nil || len(tr.Tokens) == 0 {
		return 0
	}
	return tr.Tokens[len(tr.Tokens)-1].EndMS
}

// JoinText joins the texts of the provided word tokens.
func JoinText(tokens []Token) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind != TokenWord {
			continue
		}
		parts = append(parts, tok.Text)
	}
	return strings.Join(parts, " ")
}
