// Package timeline resolves candidate cut spans from all detectors into
// the final ordered list of segments to keep.
//
// Resolution is deterministic: cuts are interval-merged with the earliest
// applied detector owning a merged span's reason, padded outward and
// re-merged, KEEP segments shorter than the minimum are folded into the
// larger neighboring cut, and crossfades are assigned symmetrically at the
// surviving boundaries, shrunk proportionally where a short segment would
// otherwise have overlapping fades.
package timeline
