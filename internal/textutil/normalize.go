package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var caseFolder = cases.Fold()

// latinStripper removes combining marks left over after NFD decomposition.
// Applied only to Latin-script text; stripping marks from scripts such as
// Telugu would destroy vowel signs.
var latinStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeWord canonicalizes a word for filler-list matching: compatibility
// normalization, case folding, and diacritic removal for Latin-script words.
func NormalizeWord(word string) string {
	word = strings.TrimSpace(word)
	if word == "" {
		return ""
	}
	word = norm.NFKC.String(word)
	word = caseFolder.String(word)
	if isLatin(word) {
		if stripped, _, err := transform.String(latinStripper, word); err == nil {
			word = stripped
		}
	}
	return strings.TrimSpace(word)
}

func isLatin(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) && !unicode.In(r, unicode.Latin) {
			return false
		}
	}
	return true
}
