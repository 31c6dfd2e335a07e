// Package rules distills classified removals from one or more learning
// pairs into a frozen style profile.
//
// Threshold selection is precision-biased: irreversible over-cutting is
// worse than a missed edit, so thresholds are chosen and clamped so that
// apply runs cut no more aggressively than the editor demonstrably did.
// Removals labeled "other" are excluded from induction entirely.
package rules
