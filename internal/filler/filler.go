// Package filler finds removable filler words in a transcript under a
// frozen style profile.
package filler

import (
	"autocut/internal/profile"
	"autocut/internal/textutil"
	"autocut/internal/timeline"
	"autocut/internal/transcript"
)

// Detect returns a cut for every word in the profile's filler list that
// is short enough and stands alone: followed by a pause of at least
// MinPauseMS, or preceded by one.
func Detect(tr *transcript.Transcript, rules profile.Fillers) []timeline.Cut {
	fillers := make(map[string]struct{}, len(rules.Words))
	for _, w := range rules.Words {
		if n := textutil.NormalizeWord(w); n != "" {
			fillers[n] = struct{}{}
		}
	}
	if len(fillers) == 0 {
		return nil
	}

	words := tr.Words()
	var cuts []timeline.Cut
	for i, word := range words {
		if _, ok := fillers[textutil.NormalizeWord(word.Text)]; !ok {
			continue
		}
		if word.Duration() > rules.MaxDurationMS {
			continue
		}

		pauseAfter := int64(0)
		if i < len(words)-1 {
			pauseAfter = words[i+1].StartMS - word.EndMS
		}
		pauseBefore := int64(0)
		if i > 0 {
			pauseBefore = word.StartMS - words[i-1].EndMS
		}
		if pauseAfter >= rules.MinPauseMS || pauseBefore >= rules.MinPauseMS {
			cuts = append(cuts, timeline.Cut{Span: word.Span(), Reason: timeline.ReasonFiller})
		}
	}
	return cuts
}
