// Package language normalizes language hints to the ISO 639-1 codes the
// speech-to-text collaborator expects. Configuration accepts 2-letter
// codes, 3-letter codes, and English names interchangeably; everything
// downstream sees one canonical form.
package language

import "strings"

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	code3   string   // ISO 639-2 primary (3-letter)
	alt3    string   // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display string   // Human-readable name
	words   []string // Full word forms (e.g. "telugu")
}

var languages = []entry{
	{"te", "tel", "", "Telugu", []string{"telugu"}},
	{"hi", "hin", "", "Hindi", []string{"hindi"}},
	{"ta", "tam", "", "Tamil", []string{"tamil"}},
	{"kn", "kan", "", "Kannada", []string{"kannada"}},
	{"ml", "mal", "", "Malayalam", []string{"malayalam"}},
	{"bn", "ben", "", "Bengali", []string{"bengali"}},
	{"mr", "mar", "", "Marathi", []string{"marathi"}},
	{"ur", "urd", "", "Urdu", []string{"urdu"}},
	{"en", "eng", "", "English", []string{"english"}},
	{"es", "spa", "", "Spanish", []string{"spanish"}},
	{"fr", "fra", "fre", "French", []string{"french"}},
	{"de", "deu", "ger", "German", []string{"german"}},
	{"it", "ita", "", "Italian", []string{"italian"}},
	{"pt", "por", "", "Portuguese", []string{"portuguese"}},
	{"ja", "jpn", "", "Japanese", []string{"japanese"}},
	{"ko", "kor", "", "Korean", []string{"korean"}},
	{"zh", "zho", "chi", "Chinese", []string{"chinese"}},
	{"ru", "rus", "", "Russian", []string{"russian"}},
	{"ar", "ara", "", "Arabic", []string{"arabic"}},
}

var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(hint string) *entry {
	hint = strings.ToLower(strings.TrimSpace(hint))
	if hint == "" {
		return nil
	}
	if e, ok := byCode2[hint]; ok {
		return e
	}
	if e, ok := byCode3[hint]; ok {
		return e
	}
	if e, ok := byWord[hint]; ok {
		return e
	}
	return nil
}

// ToISO2 converts any recognized language hint to ISO 639-1. An already
// 2-letter hint passes through even when unknown, so uncommon whisper
// languages keep working. Everything else comes back empty.
func ToISO2(hint string) string {
	hint = strings.ToLower(strings.TrimSpace(hint))
	if hint == "" {
		return ""
	}
	if e := lookup(hint); e != nil {
		return e.code2
	}
	if len(hint) == 2 {
		return hint
	}
	return ""
}

// DisplayName returns the human-readable name for a recognized hint, or
// the hint itself when unknown.
func DisplayName(hint string) string {
	if e := lookup(hint); e != nil {
		return e.display
	}
	return strings.TrimSpace(hint)
}
