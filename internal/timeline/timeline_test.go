package timeline

import (
	"math/rand"
	"reflect"
	"testing"

	"autocut/internal/profile"
	"autocut/internal/transcript"
)

func span(start, end int64) transcript.Span {
	return transcript.Span{StartMS: start, EndMS: end}
}

func rules(padding, crossfade, minSegment int64) profile.Cuts {
	return profile.Cuts{PaddingMS: padding, CrossfadeMS: crossfade, MinSegmentMS: minSegment}
}

func TestBuildNoCutsKeepsEverything(t *testing.T) {
	tl := Build(nil, rules(90, 80, 100), 10_000)
	if len(tl.Segments) != 1 {
		t.Fatalf("segments = %+v", tl.Segments)
	}
	seg := tl.Segments[0]
	if seg.Span != span(0, 10_000) {
		t.Fatalf("span = %v", seg.Span)
	}
	if seg.FadeInMS != 0 || seg.FadeOutMS != 0 {
		t.Fatal("boundary fades assigned without cuts")
	}
}

func TestMergeCutsOrderIndependent(t *testing.T) {
	cuts := []Cut{
		{Span: span(1000, 2000), Reason: ReasonSilence},
		{Span: span(1500, 2500), Reason: ReasonFiller},
		{Span: span(4000, 4500), Reason: ReasonRetake},
		{Span: span(2500, 3000), Reason: ReasonRetake}, // touches the merged block
	}
	want := MergeCuts(cuts)

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		shuffled := make([]Cut, len(cuts))
		copy(shuffled, cuts)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		got := MergeCuts(shuffled)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("merge depends on input order:\n got %+v\nwant %+v", got, want)
		}
	}

	if len(want) != 2 {
		t.Fatalf("merged = %+v", want)
	}
	if want[0].Span != span(1000, 3000) || want[0].Reason != ReasonSilence {
		t.Fatalf("merged[0] = %+v", want[0])
	}
}

func TestMergeCutsEveryInputContained(t *testing.T) {
	cuts := []Cut{
		{Span: span(0, 100), Reason: ReasonSilence},
		{Span: span(90, 150), Reason: ReasonFiller},
		{Span: span(300, 400), Reason: ReasonRetake},
	}
	merged := MergeCuts(cuts)
	for _, c := range cuts {
		contained := 0
		for _, m := range merged {
			if m.Span.StartMS <= c.Span.StartMS && c.Span.EndMS <= m.Span.EndMS {
				contained++
			}
		}
		if contained != 1 {
			t.Fatalf("cut %v contained in %d merged spans", c.Span, contained)
		}
	}
}

func TestCoincidingSpansFirstAppliedWins(t *testing.T) {
	cuts := []Cut{
		{Span: span(1000, 2000), Reason: ReasonRetake},
		{Span: span(1000, 2000), Reason: ReasonSilence},
		{Span: span(1000, 2000), Reason: ReasonFiller},
	}
	merged := MergeCuts(cuts)
	if len(merged) != 1 {
		t.Fatalf("merged = %+v", merged)
	}
	if merged[0].Reason != ReasonSilence {
		t.Fatalf("reason = %v, want silence (first applied)", merged[0].Reason)
	}
}

func TestBuildIdempotentAndDeterministic(t *testing.T) {
	cuts := []Cut{
		{Span: span(1000, 1600), Reason: ReasonSilence},
		{Span: span(5000, 5300), Reason: ReasonFiller},
		{Span: span(8000, 9500), Reason: ReasonRetake},
	}
	first := Build(cuts, rules(90, 80, 100), 20_000)
	second := Build(cuts, rules(90, 80, 100), 20_000)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("Build is not deterministic for identical input")
	}
}

func TestPaddingJoinsAdjacentCuts(t *testing.T) {
	// Two cuts 150ms apart, each padded by 90ms: padded regions touch and
	// must merge into one cut, not two overlapping ones.
	cuts := []Cut{
		{Span: span(1000, 2000), Reason: ReasonSilence},
		{Span: span(2150, 3000), Reason: ReasonSilence},
	}
	tl := Build(cuts, rules(90, 0, 0), 10_000)
	if len(tl.Cuts) != 1 {
		t.Fatalf("cuts = %+v", tl.Cuts)
	}
	if tl.Cuts[0].Span != span(910, 3090) {
		t.Fatalf("cut span = %v", tl.Cuts[0].Span)
	}
	if len(tl.Segments) != 2 {
		t.Fatalf("segments = %+v", tl.Segments)
	}
}

func TestPaddingClampedToRecording(t *testing.T) {
	cuts := []Cut{
		{Span: span(0, 500), Reason: ReasonSilence},
		{Span: span(9700, 10_000), Reason: ReasonSilence},
	}
	tl := Build(cuts, rules(200, 0, 0), 10_000)
	for _, c := range tl.Cuts {
		if c.Span.StartMS < 0 || c.Span.EndMS > 10_000 {
			t.Fatalf("cut outside recording: %v", c.Span)
		}
	}
	if len(tl.Segments) != 1 || tl.Segments[0].Span != span(700, 9500) {
		t.Fatalf("segments = %+v", tl.Segments)
	}
}

func TestShortKeepFoldsIntoLargerCut(t *testing.T) {
	// 80ms keep between a 1000ms cut and a 300ms cut; folded into the
	// larger left cut, then the whole region merges.
	cuts := []Cut{
		{Span: span(1000, 2000), Reason: ReasonSilence},
		{Span: span(2080, 2380), Reason: ReasonFiller},
	}
	tl := Build(cuts, rules(0, 0, 100), 10_000)
	if len(tl.Cuts) != 1 {
		t.Fatalf("cuts = %+v", tl.Cuts)
	}
	if tl.Cuts[0].Span != span(1000, 2380) {
		t.Fatalf("cut span = %v", tl.Cuts[0].Span)
	}
	if tl.Cuts[0].Reason != ReasonSilence {
		t.Fatalf("reason = %v", tl.Cuts[0].Reason)
	}
	for _, seg := range tl.Segments {
		if seg.Span.Duration() < 100 {
			t.Fatalf("short segment survived: %v", seg.Span)
		}
	}
}

func TestKeepSegmentsOrderedNonOverlapping(t *testing.T) {
	cuts := []Cut{
		{Span: span(500, 900), Reason: ReasonSilence},
		{Span: span(3000, 3200), Reason: ReasonFiller},
		{Span: span(3100, 4000), Reason: ReasonRetake},
		{Span: span(7000, 7600), Reason: ReasonSilence},
	}
	tl := Build(cuts, rules(90, 80, 100), 10_000)
	var total int64
	for i, seg := range tl.Segments {
		total += seg.Span.Duration()
		if !seg.Span.Valid() {
			t.Fatalf("invalid segment %v", seg.Span)
		}
		if i > 0 && seg.Span.StartMS < tl.Segments[i-1].Span.EndMS {
			t.Fatalf("segments overlap: %v then %v", tl.Segments[i-1].Span, seg.Span)
		}
	}
	if total > 10_000 {
		t.Fatalf("kept duration %d exceeds recording", total)
	}
	if tl.Duration() != total {
		t.Fatalf("Duration() = %d, want %d", tl.Duration(), total)
	}
}

func TestCrossfadesShrinkProportionally(t *testing.T) {
	// Middle keep of 120ms with 80ms fades on both sides would need
	// 160ms; both shrink by the same factor.
	cuts := []Cut{
		{Span: span(1000, 2000), Reason: ReasonSilence},
		{Span: span(2120, 3000), Reason: ReasonSilence},
	}
	tl := Build(cuts, rules(0, 80, 0), 10_000)
	if len(tl.Segments) != 3 {
		t.Fatalf("segments = %+v", tl.Segments)
	}
	mid := tl.Segments[1]
	if mid.Span != span(2000, 2120) {
		t.Fatalf("middle span = %v", mid.Span)
	}
	if mid.FadeInMS+mid.FadeOutMS > mid.Span.Duration() {
		t.Fatalf("fades %d+%d exceed segment %d", mid.FadeInMS, mid.FadeOutMS, mid.Span.Duration())
	}
	if mid.FadeInMS != 60 || mid.FadeOutMS != 60 {
		t.Fatalf("fades = %d/%d, want proportional 60/60", mid.FadeInMS, mid.FadeOutMS)
	}
	// Outer boundaries of the recording never fade.
	if tl.Segments[0].FadeInMS != 0 || tl.Segments[2].FadeOutMS != 0 {
		t.Fatal("recording edges must not fade")
	}
}

func TestBuildDropsInvalidAndOutOfRangeCuts(t *testing.T) {
	cuts := []Cut{
		{Span: span(500, 500), Reason: ReasonSilence},     // zero duration
		{Span: span(12_000, 13_000), Reason: ReasonFiller}, // beyond recording
		{Span: span(1000, 1500), Reason: ReasonRetake},
	}
	tl := Build(cuts, rules(0, 0, 0), 10_000)
	if len(tl.Cuts) != 1 || tl.Cuts[0].Span != span(1000, 1500) {
		t.Fatalf("cuts = %+v", tl.Cuts)
	}
}
