// Package pipeline orchestrates the two autocut workflows.
//
// The learn pipeline pairs raw recordings with their hand-edited
// counterparts, aligns the transcripts to find what the editor removed,
// classifies each removal, and distills the observed thresholds into the
// next version of a frozen style profile.
//
// The apply pipeline loads a profile and deterministically edits new
// recordings: silence, filler, and retake detectors emit cut spans, the
// timeline builder resolves them into keep segments, and ffmpeg renders
// the final file. Applying the same profile to the same recording always
// produces the same timeline.
//
// Both pipelines record their outcome in the run history store.
package pipeline
