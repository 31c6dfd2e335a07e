package language

import "testing"

func TestToISO2(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"te", "te"},
		{"tel", "te"},
		{"Telugu", "te"},
		{"TELUGU", "te"},
		{"english", "en"},
		{"fre", "fr"},
		{"fra", "fr"},
		{"xx", "xx"}, // unknown 2-letter hints pass through
		{"klingon", ""},
		{"", ""},
		{"  hi  ", "hi"},
	}
	for _, tc := range cases {
		if got := ToISO2(tc.in); got != tc.want {
			t.Errorf("ToISO2(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("te"); got != "Telugu" {
		t.Errorf("DisplayName(te) = %q", got)
	}
	if got := DisplayName("mystery"); got != "mystery" {
		t.Errorf("DisplayName falls back to input, got %q", got)
	}
}
