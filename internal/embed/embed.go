// Package embed defines the text-similarity collaborator boundary.
//
// The pipeline only ever asks for a similarity score between two text
// spans; how the score is produced is the collaborator's business. Scores
// must be deterministic for identical input text, since apply mode admits
// no run-to-run drift.
package embed

import "context"

// Embedder scores the semantic similarity of two text spans in [0,1].
type Embedder interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
}
