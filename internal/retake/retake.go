// Package retake finds re-recorded utterances in a new transcript under a
// frozen style profile.
//
// The transcript is segmented into pause-bounded utterances; every pair
// within the profile's gap window is scored by the embedding collaborator,
// pairs at or above the similarity threshold are unioned, and one survivor
// per connected component is selected by the profile's strategy. Every
// other member of the cluster becomes a retake cut.
package retake

import (
	"context"
	"sort"

	"autocut/internal/embed"
	"autocut/internal/profile"
	"autocut/internal/services"
	"autocut/internal/timeline"
	"autocut/internal/transcript"
)

// Detector scores utterance similarity through the embedding collaborator.
type Detector struct {
	embedder     embed.Embedder
	utteranceGap int64
	retries      services.RetryPolicy
}

// Option adjusts detector construction.
type Option func(*Detector)

// WithUtteranceGap overrides the pause length that bounds utterances.
func WithUtteranceGap(gapMS int64) Option {
	return func(d *Detector) { d.utteranceGap = gapMS }
}

// WithRetryPolicy overrides the collaborator retry policy.
func WithRetryPolicy(policy services.RetryPolicy) Option {
	return func(d *Detector) { d.retries = policy }
}

// New builds a detector around the given embedder.
func New(embedder embed.Embedder, opts ...Option) *Detector {
	d := &Detector{
		embedder:     embedder,
		utteranceGap: transcript.DefaultUtteranceGapMS,
		retries:      services.DefaultRetryPolicy,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect returns retake cuts for all non-surviving cluster members.
func (d *Detector) Detect(ctx context.Context, tr *transcript.Transcript, rules profile.Retakes) ([]timeline.Cut, error) {
	utterances := tr.Utterances(d.utteranceGap)
	if len(utterances) < 2 {
		return nil, nil
	}

	uf := newUnionFind(len(utterances))
	maxGapMS := rules.MaxGapMS()
	for i := 0; i < len(utterances)-1; i++ {
		for j := i + 1; j < len(utterances); j++ {
			gap := utterances[j].Span.StartMS - utterances[i].Span.EndMS
			if gap > maxGapMS {
				break
			}
			sim, err := d.similarity(ctx, utterances[i].Text(), utterances[j].Text())
			if err != nil {
				return nil, services.Wrap(services.ErrCollaborator, "retake", "similarity", "", err)
			}
			if sim >= rules.SimilarityThreshold {
				uf.union(i, j)
			}
		}
	}

	clusters := make(map[int][]int)
	for i := range utterances {
		root := uf.find(i)
		clusters[root] = append(clusters[root], i)
	}

	roots := make([]int, 0, len(clusters))
	for root, members := range clusters {
		if len(members) > 1 {
			roots = append(roots, root)
		}
	}
	sort.Ints(roots)

	var cuts []timeline.Cut
	for _, root := range roots {
		members := clusters[root]
		sort.Ints(members)
		survivor, err := d.pickSurvivor(ctx, utterances, members, rules.Strategy)
		if err != nil {
			return nil, err
		}
		for _, m := range members {
			if m == survivor {
				continue
			}
			cuts = append(cuts, timeline.Cut{
				Span:   utterances[m].Span,
				Reason: timeline.ReasonRetake,
			})
		}
	}
	return cuts, nil
}

func (d *Detector) similarity(ctx context.Context, a, b string) (float64, error) {
	var sim float64
	err := services.Retry(ctx, d.retries, func() error {
		var err error
		sim, err = d.embedder.Similarity(ctx, a, b)
		return err
	})
	return sim, err
}

// pickSurvivor selects the cluster member to keep. Members are sorted by
// utterance index.
func (d *Detector) pickSurvivor(ctx context.Context, utterances []transcript.Utterance, members []int, strategy profile.Strategy) (int, error) {
	switch strategy {
	case profile.KeepFirst:
		return members[0], nil
	case profile.KeepHighestSimilarity:
		return d.pickByContext(ctx, utterances, members)
	default:
		// keep_last: the editor re-recorded until satisfied.
		return members[len(members)-1], nil
	}
}

// pickByContext keeps the member most similar to the speech surrounding
// the cluster, breaking ties toward the later take.
func (d *Detector) pickByContext(ctx context.Context, utterances []transcript.Utterance, members []int) (int, error) {
	first, last := members[0], members[len(members)-1]
	var contextText string
	if first > 0 {
		contextText = utterances[first-1].Text()
	}
	if last < len(utterances)-1 {
		if contextText != "" {
			contextText += " "
		}
		contextText += utterances[last+1].Text()
	}
	if contextText == "" {
		return last, nil
	}

	best, bestSim := last, -1.0
	for _, m := range members {
		sim, err := d.similarity(ctx, utterances[m].Text(), contextText)
		if err != nil {
			return 0, services.Wrap(services.ErrCollaborator, "retake", "similarity", "", err)
		}
		if sim > bestSim || (sim == bestSim && m > best) {
			best, bestSim = m, sim
		}
	}
	return best, nil
}
