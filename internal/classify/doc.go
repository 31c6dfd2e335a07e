// Package classify labels removed spans discovered by alignment.
//
// Classification is a single ordered rule chain (silence, filler,
// retake, other) where the first satisfied rule wins. The thresholds
// used here are provisional, calibrated per learning corpus; the final
// frozen thresholds live in the style profile produced afterwards by the
// rule extractor.
package classify
