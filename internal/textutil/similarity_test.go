package textutil

import "testing"

func TestCosineSimilarityNil(t *testing.T) {
	tests := []struct {
		name string
		a    *Fingerprint
		b    *Fingerprint
	}{
		{"both nil", nil, nil},
		{"a nil", nil, NewFingerprint("hello world")},
		{"b nil", NewFingerprint("hello world"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CosineSimilarity(tt.a, tt.b); got != 0 {
				t.Errorf("CosineSimilarity() = %v, want 0", got)
			}
		})
	}
}

func TestCosineSimilarityIdentical(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	if got := CosineSimilarity(NewFingerprint(text), NewFingerprint(text)); got != 1.0 {
		t.Errorf("CosineSimilarity(identical) = %v, want 1.0", got)
	}
}

func TestCosineSimilarityDisjoint(t *testing.T) {
	a := NewFingerprint("apple banana cherry")
	b := NewFingerprint("dog elephant frog")
	if got := CosineSimilarity(a, b); got != 0 {
		t.Errorf("CosineSimilarity(disjoint) = %v, want 0", got)
	}
}

func TestCosineSimilarityPartialOverlap(t *testing.T) {
	a := NewFingerprint("the quick brown fox")
	b := NewFingerprint("the slow brown cat")
	got := CosineSimilarity(a, b)
	if got <= 0 || got >= 1 {
		t.Errorf("CosineSimilarity(partial) = %v, want between 0 and 1", got)
	}
	if ba := CosineSimilarity(b, a); ba != got {
		t.Errorf("not symmetric: %v vs %v", got, ba)
	}
}

func TestCosineSimilarityNonLatin(t *testing.T) {
	a := NewFingerprint("నమస్కారం అందరికీ స్వాగతం")
	b := NewFingerprint("నమస్కారం అందరికీ స్వాగతం")
	if got := CosineSimilarity(a, b); got != 1.0 {
		t.Errorf("CosineSimilarity(identical telugu) = %v, want 1.0", got)
	}
}

func TestNewFingerprintEmpty(t *testing.T) {
	if fp := NewFingerprint(""); fp != nil {
		t.Error("expected nil for empty text")
	}
	if fp := NewFingerprint("  ... !!"); fp != nil {
		t.Error("expected nil for punctuation-only text")
	}
}

func TestTokenizeKeepsShortNonLatinTokens(t *testing.T) {
	got := Tokenize("So, అదే thing")
	want := []string{"so", "అదే", "thing"}
	if len(got) != len(want) {
		t.Fatalf("Tokenize = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tokenize[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
