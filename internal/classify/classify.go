package classify

import (
	"context"

	"autocut/internal/align"
	"autocut/internal/embed"
	"autocut/internal/textutil"
	"autocut/internal/transcript"
)

// Label is the semantic category of a removal.
type Label string

const (
	LabelSilence Label = "silence"
	LabelFiller  Label = "filler"
	LabelRetake  Label = "retake"
	LabelOther   Label = "other"
)

// Evidence carries the label-specific observation that satisfied a rule.
type Evidence struct {
	// Silence
	EnergyDB float64 `json:"energy_db,omitempty"`
	// Filler
	FillerWord      string `json:"filler_word,omitempty"`
	TrailingPauseMS int64  `json:"trailing_pause_ms,omitempty"`
	// Retake
	Similarity float64         `json:"similarity,omitempty"`
	SimilarTo  transcript.Span `json:"similar_to,omitempty"`
}

// Removal is one classified removed span.
type Removal struct {
	Segment  align.Segment
	Label    Label
	Evidence Evidence
}

// Provisional holds the exploratory thresholds used during learning.
// They are deliberately permissive; the rule extractor tightens them into
// the frozen profile afterwards.
type Provisional struct {
	SilenceThresholdDB  float64
	SilenceMinMS        int64
	FillerWords         []string
	FillerMinPauseMS    int64
	FillerMaxDurationMS int64
	RetakeSimilarity    float64
	RetakeMaxGapMS      int64
}

// seedFillerWords are common candidates across the supported languages;
// the learning corpus extends this set.
var seedFillerWords = []string{
	"అంటే", "అదే", "అవును", "అలాగే", "అంతే",
	"so", "um", "uh", "like", "actually",
}

// DefaultProvisional returns the exploratory starting thresholds.
func DefaultProvisional() Provisional {
	return Provisional{
		SilenceThresholdDB:  -35.0,
		SilenceMinMS:        300,
		FillerWords:         seedFillerWords,
		FillerMinPauseMS:    200,
		FillerMaxDurationMS: 2000,
		RetakeSimilarity:    0.80,
		RetakeMaxGapMS:      10_000,
	}
}

// EnergyFunc reports the mean audible energy of a span in dBFS. The
// second return is false when no measurement is available for the span.
type EnergyFunc func(span transcript.Span) (float64, bool)

// Classifier applies the ordered rule chain to removed segments.
type Classifier struct {
	prov     Provisional
	energy   EnergyFunc
	embedder embed.Embedder
	fillers  map[string]struct{}
}

// New builds a classifier. energy may be nil; spans containing no word
// tokens are then treated as silent. embedder must not be nil.
func New(prov Provisional, energy EnergyFunc, embedder embed.Embedder) *Classifier {
	fillers := make(map[string]struct{}, len(prov.FillerWords))
	for _, w := range prov.FillerWords {
		if n := textutil.NormalizeWord(w); n != "" {
			fillers[n] = struct{}{}
		}
	}
	return &Classifier{prov: prov, energy: energy, embedder: embedder, fillers: fillers}
}

// Classify labels every removed segment in the alignment, in order.
// Match segments pass through untouched as context for the retake rule.
func (c *Classifier) Classify(ctx context.Context, segments []align.Segment) ([]Removal, error) {
	var out []Removal
	for i, seg := range segments {
		if seg.Kind != align.SegmentRemoved {
			continue
		}
		removal := Removal{Segment: seg, Label: LabelOther}
		if ev, ok := c.isSilence(seg); ok {
			removal.Label, removal.Evidence = LabelSilence, ev
		} else if ev, ok := c.isFiller(seg); ok {
			removal.Label, removal.Evidence = LabelFiller, ev
		} else {
			ev, ok, err := c.isRetake(ctx, seg, segments[i+1:])
			if err != nil {
				return nil, err
			}
			if ok {
				removal.Label, removal.Evidence = LabelRetake, ev
			}
		}
		out = append(out, removal)
	}
	return out, nil
}

func (c *Classifier) isSilence(seg align.Segment) (Evidence, bool) {
	if seg.Duration() < c.prov.SilenceMinMS {
		return Evidence{}, false
	}
	if c.energy != nil {
		db, ok := c.energy(seg.Raw)
		if !ok {
			return Evidence{}, false
		}
		if db < c.prov.SilenceThresholdDB {
			return Evidence{EnergyDB: db}, true
		}
		return Evidence{}, false
	}
	// No energy probe: a removal with no spoken words is silence.
	for _, tok := range seg.Tokens {
		if tok.Kind == transcript.TokenWord {
			return Evidence{}, false
		}
	}
	return Evidence{EnergyDB: c.prov.SilenceThresholdDB}, true
}

func (c *Classifier) isFiller(seg align.Segment) (Evidence, bool) {
	words := removedWords(seg)
	if len(words) == 0 {
		return Evidence{}, false
	}
	if seg.Duration() > c.prov.FillerMaxDurationMS {
		return Evidence{}, false
	}
	var matched string
	for _, w := range words {
		n := textutil.NormalizeWord(w.Text)
		if _, ok := c.fillers[n]; !ok {
			return Evidence{}, false
		}
		matched = n
	}
	pause := trailingPause(seg)
	if pause < c.prov.FillerMinPauseMS {
		return Evidence{}, false
	}
	return Evidence{FillerWord: matched, TrailingPauseMS: pause}, true
}

func (c *Classifier) isRetake(ctx context.Context, seg align.Segment, later []align.Segment) (Evidence, bool, error) {
	text := seg.Text()
	if text == "" {
		return Evidence{}, false, nil
	}
	// The removed span is stretched over adjacent gaps, so the retake
	// window is measured from where the removed speech actually ends.
	words := removedWords(seg)
	speechEnd := seg.Raw.EndMS
	if len(words) > 0 {
		speechEnd = words[len(words)-1].EndMS
	}
	best := Evidence{}
	for _, cand := range later {
		if cand.Kind != align.SegmentMatch {
			continue
		}
		if cand.Raw.StartMS-speechEnd > c.prov.RetakeMaxGapMS {
			break
		}
		sim, err := c.embedder.Similarity(ctx, text, cand.Text())
		if err != nil {
			return Evidence{}, false, err
		}
		if sim > best.Similarity {
			best = Evidence{Similarity: sim, SimilarTo: cand.Raw}
		}
	}
	return best, best.Similarity >= c.prov.RetakeSimilarity, nil
}

func removedWords(seg align.Segment) []transcript.Token {
	var out []transcript.Token
	for _, tok := range seg.Tokens {
		if tok.Kind == transcript.TokenWord {
			out = append(out, tok)
		}
	}
	return out
}

// trailingPause is the gap between the last removed word and the next
// kept word. The editor's cut often swallows the pause itself, so the
// pause is measured from token timestamps, not from the stretched span.
func trailingPause(seg align.Segment) int64 {
	words := removedWords(seg)
	if len(words) == 0 || len(seg.Next) == 0 {
		return 0
	}
	return seg.Next[0].StartMS - words[len(words)-1].EndMS
}
