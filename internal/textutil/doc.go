// Package textutil provides text normalization, fingerprinting, and
// similarity utilities for transcript comparison.
//
// The primary use cases are:
//   - Normalizing filler-word candidates so learned word lists match at
//     apply time regardless of case or Latin diacritics
//   - Creating token-based fingerprints from utterance text
//   - Computing cosine similarity between fingerprints
//
// Fingerprints use term frequency vectors with precomputed norms. The
// tokenizer is script-agnostic: it splits on any non-letter, non-digit
// rune so that non-Latin transcripts fingerprint correctly.
package textutil
