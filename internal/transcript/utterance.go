package transcript

// DefaultUtteranceGapMS is the pause length that terminates an utterance.
const DefaultUtteranceGapMS int64 = 500

// Utterance is a pause-bounded run of word tokens.
type Utterance struct {
	Span   Span
	Tokens []Token
}

// Text joins the utterance's word texts.
func (u Utterance) Text() string {
	return JoinText(u.Tokens)
}

// Utterances groups the transcript's word tokens into utterances, starting
// a new group whenever the gap between consecutive words exceeds gapMS.
// A gapMS of zero or less falls back to DefaultUtteranceGapMS.
func (tr *Transcript) Utterances(gapMS int64) []Utterance {
	if gapMS <= 0 {
		gapMS = DefaultUtteranceGapMS
	}
	words := tr.Words()
	if len(words) == 0 {
		return nil
	}

	var out []Utterance
	current := Utterance{
		Span:   words[0].Span(),
		Tokens: []Token{words[0]},
	}
	for _, word := range words[1:] {
		if word.StartMS-current.Span.EndMS > gapMS {
			out = append(out, current)
			current = Utterance{Span: word.Span(), Tokens: []Token{word}}
			continue
		}
		current.Tokens = append(current.Tokens, word)
		current.Span.EndMS = word.EndMS
	}
	return append(out, current)
}
