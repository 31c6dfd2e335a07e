package textutil

import "testing"

func TestNormalizeWord(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello", "hello"},
		{"  Um  ", "um"},
		{"Café", "cafe"},
		{"naïve", "naive"},
		{"SO", "so"},
		{"అంటే", "అంటే"}, // non-Latin scripts keep their marks
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeWord(tt.in); got != tt.want {
			t.Errorf("NormalizeWord(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeWordIdempotent(t *testing.T) {
	for _, in := range []string{"Café", "అదే", "You Know"} {
		once := NormalizeWord(in)
		if twice := NormalizeWord(once); twice != once {
			t.Errorf("NormalizeWord not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}
