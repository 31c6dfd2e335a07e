package profile

import (
	"errors"
	"fmt"
	"time"
)

// Strategy selects the surviving take within a retake cluster.
type Strategy string

const (
	KeepLast              Strategy = "keep_last"
	KeepFirst             Strategy = "keep_first"
	KeepHighestSimilarity Strategy = "keep_highest_similarity"
)

// Silence holds the frozen silence-cut rules.
type Silence struct {
	MinMS       int64   `json:"min_ms"`
	ThresholdDB float64 `json:"threshold_db"`
}

// Fillers holds the frozen filler-word rules.
type Fillers struct {
	Words         []string `json:"words"`
	MinPauseMS    int64    `json:"min_pause_ms"`
	MaxDurationMS int64    `json:"max_duration_ms"`
}

// Retakes holds the frozen retake-detection rules.
type Retakes struct {
	Strategy            Strategy `json:"strategy"`
	SimilarityThreshold float64  `json:"similarity_threshold"`
	MaxGapSeconds       float64  `json:"max_gap_seconds"`
}

// MaxGapMS returns the retake search window in milliseconds.
func (r Retakes) MaxGapMS() int64 {
	return int64(r.MaxGapSeconds * 1000)
}

// Cuts holds the frozen timeline-resolution rules.
type Cuts struct {
	PaddingMS    int64 `json:"padding_ms"`
	CrossfadeMS  int64 `json:"crossfade_ms"`
	MinSegmentMS int64 `json:"min_segment_ms"`
}

// Profile is the complete frozen rule set produced by one learning run.
// Every apply-time decision must trace back to a value in this record.
type Profile struct {
	Name      string    `json:"name"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	Silence   Silence   `json:"silence"`
	Fillers   Fillers   `json:"fillers"`
	Retakes   Retakes   `json:"retakes"`
	Cuts      Cuts      `json:"cuts"`
}

// Default returns the profile values used when a rule group has no
// learning signal.
func Default() Profile {
	return Profile{
		Silence: Silence{MinMS: 400, ThresholdDB: -35.0},
		Fillers: Fillers{MinPauseMS: 280, MaxDurationMS: 2000},
		Retakes: Retakes{Strategy: KeepLast, SimilarityThreshold: 0.85, MaxGapSeconds: 10.0},
		Cuts:    Cuts{PaddingMS: 90, CrossfadeMS: 80, MinSegmentMS: 100},
	}
}

// Validate checks the frozen values are usable for an apply run.
func (p *Profile) Validate() error {
	if p.Silence.MinMS <= 0 {
		return fmt.Errorf("silence.min_ms must be positive, got %d", p.Silence.MinMS)
	}
	if p.Fillers.MinPauseMS < 0 {
		return fmt.Errorf("fillers.min_pause_ms must not be negative, got %d", p.Fillers.MinPauseMS)
	}
	if p.Fillers.MaxDurationMS <= 0 {
		return fmt.Errorf("fillers.max_duration_ms must be positive, got %d", p.Fillers.MaxDurationMS)
	}
	switch p.Retakes.Strategy {
	case KeepLast, KeepFirst, KeepHighestSimilarity:
	default:
		return fmt.Errorf("retakes.strategy %q is not one of keep_last, keep_first, keep_highest_similarity", p.Retakes.Strategy)
	}
	if p.Retakes.SimilarityThreshold < 0 || p.Retakes.SimilarityThreshold > 1 {
		return fmt.Errorf("retakes.similarity_threshold must be in [0,1], got %v", p.Retakes.SimilarityThreshold)
	}
	if p.Retakes.MaxGapSeconds <= 0 {
		return fmt.Errorf("retakes.max_gap_seconds must be positive, got %v", p.Retakes.MaxGapSeconds)
	}
	if p.Cuts.PaddingMS < 0 {
		return errors.New("cuts.padding_ms must not be negative")
	}
	if p.Cuts.CrossfadeMS < 0 {
		return errors.New("cuts.crossfade_ms must not be negative")
	}
	if p.Cuts.MinSegmentMS < 0 {
		return errors.New("cuts.min_segment_ms must not be negative")
	}
	return nil
}
