// Package transcript defines the timestamped token model shared by every
// pipeline component.
//
// A Transcript is an ordered sequence of word and pause tokens with
// millisecond timestamps, produced once per recording by the speech-to-text
// collaborator and immutable afterward. The package also provides Span
// arithmetic and pause-bounded utterance segmentation, which the retake
// detector builds on.
package transcript
