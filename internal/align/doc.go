// Package align discovers what an editor removed by aligning a raw
// transcript against its edited counterpart.
//
// Editors subtract: the edited word sequence must be an exact subsequence
// of the raw word sequence. Alignment is dynamic programming over word
// tokens using text equality, choosing among optimal embeddings the one
// that maximizes matched speech duration (equivalently, minimizes removed
// duration). Edited text absent from the raw transcript is a modeling
// violation and surfaces as an alignment error rather than being ignored.
package align
