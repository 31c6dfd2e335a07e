package rules

import (
	"math"
	"sort"

	"autocut/internal/classify"
	"autocut/internal/profile"
	"autocut/internal/textutil"
)

// Clamps keeping learned thresholds inside sane operating ranges.
const (
	minSilenceMS      = 200
	maxSilenceMS      = 2000
	minFillerPauseMS  = 160
	maxFillerPauseMS  = 600
	fillerDurationCap = 2000
	similarityFloor   = 0.80
	maxGapFloorSec    = 5.0
	maxGapCapSec      = 30.0
	energyMarginDB    = 2.0
)

// Extract aggregates classified removals into a frozen profile named
// name. Rule groups with no observations keep the default values.
func Extract(name string, removals []classify.Removal) profile.Profile {
	p := profile.Default()
	p.Name = name

	extractSilence(&p, removals)
	extractFillers(&p, removals)
	extractRetakes(&p, removals)
	// The cuts group has no observable signal in a removal list; the
	// padding, crossfade, and minimum-segment defaults stand.
	return p
}

func extractSilence(p *profile.Profile, removals []classify.Removal) {
	var durations []int64
	var energies []float64
	for _, r := range removals {
		if r.Label != classify.LabelSilence {
			continue
		}
		durations = append(durations, r.Segment.Duration())
		if r.Evidence.EnergyDB != 0 {
			energies = append(energies, r.Evidence.EnergyDB)
		}
	}
	if len(durations) == 0 {
		return
	}
	// The editor removed silences this short; cutting anything shorter
	// than the 25th percentile risks cutting pauses the editor kept.
	p.Silence.MinMS = clampInt64(percentile(durations, 25), minSilenceMS, maxSilenceMS)
	if len(energies) > 0 {
		loudest := energies[0]
		for _, e := range energies[1:] {
			if e > loudest {
				loudest = e
			}
		}
		p.Silence.ThresholdDB = clampFloat(loudest+energyMarginDB, -60, -20)
	}
}

func extractFillers(p *profile.Profile, removals []classify.Removal) {
	wordSet := make(map[string]struct{})
	var pauses []int64
	var durations []int64
	for _, r := range removals {
		if r.Label != classify.LabelFiller {
			continue
		}
		for _, tok := range r.Segment.Tokens {
			if n := textutil.NormalizeWord(tok.Text); n != "" {
				wordSet[n] = struct{}{}
			}
		}
		if r.Evidence.TrailingPauseMS > 0 {
			pauses = append(pauses, r.Evidence.TrailingPauseMS)
		}
		durations = append(durations, r.Segment.Duration())
	}
	if len(wordSet) == 0 {
		return
	}
	words := make([]string, 0, len(wordSet))
	for w := range wordSet {
		words = append(words, w)
	}
	sort.Strings(words)
	p.Fillers.Words = words

	if len(pauses) > 0 {
		p.Fillers.MinPauseMS = clampInt64(percentile(pauses, 50), minFillerPauseMS, maxFillerPauseMS)
	}
	if d := maxInt64(durations); d > 0 {
		p.Fillers.MaxDurationMS = clampInt64(d, 1, fillerDurationCap)
	}
}

func extractRetakes(p *profile.Profile, removals []classify.Removal) {
	var sims []float64
	var gapsMS []int64
	for _, r := range removals {
		if r.Label != classify.LabelRetake {
			continue
		}
		if r.Evidence.Similarity > 0 {
			sims = append(sims, r.Evidence.Similarity)
		}
		if gap := r.Evidence.SimilarTo.StartMS - r.Segment.Raw.EndMS; gap > 0 {
			gapsMS = append(gapsMS, gap)
		}
	}
	if len(sims) == 0 {
		return
	}
	// Median similarity of true retakes, floored so a corpus of barely
	// similar retakes cannot push the apply threshold into over-cutting.
	sim := clampFloat(median(sims), similarityFloor, 1)
	p.Retakes.SimilarityThreshold = math.Round(sim*100) / 100
	p.Retakes.Strategy = profile.KeepLast

	if len(gapsMS) > 0 {
		gapSec := math.Ceil(float64(maxInt64(gapsMS)) / 1000)
		p.Retakes.MaxGapSeconds = clampFloat(gapSec, maxGapFloorSec, maxGapCapSec)
	}
}
