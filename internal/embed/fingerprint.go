package embed

import (
	"context"

	"autocut/internal/textutil"
)

// FingerprintEmbedder scores similarity with term-frequency fingerprints
// and cosine similarity. It is fully deterministic and needs no model or
// network, which makes it the default collaborator.
type FingerprintEmbedder struct{}

// NewFingerprintEmbedder returns the default deterministic embedder.
func NewFingerprintEmbedder() *FingerprintEmbedder {
	return &FingerprintEmbedder{}
}

// Similarity implements Embedder.
func (*FingerprintEmbedder) Similarity(_ context.Context, a, b string) (float64, error) {
	return textutil.CosineSimilarity(textutil.NewFingerprint(a), textutil.NewFingerprint(b)), nil
}
