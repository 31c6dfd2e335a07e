package embed

import (
	"context"
	"testing"
)

func TestFingerprintEmbedderDeterministic(t *testing.T) {
	e := NewFingerprintEmbedder()
	ctx := context.Background()

	a := "today we are going to talk about the budget"
	b := "today we will talk about the budget"

	first, err := e.Similarity(ctx, a, b)
	if err != nil {
		t.Fatalf("Similarity: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := e.Similarity(ctx, a, b)
		if err != nil {
			t.Fatalf("Similarity: %v", err)
		}
		if again != first {
			t.Fatalf("similarity drifted: %v vs %v", again, first)
		}
	}
	if first <= 0 || first > 1 {
		t.Fatalf("similarity = %v, want (0,1]", first)
	}
}

func TestFingerprintEmbedderBounds(t *testing.T) {
	e := NewFingerprintEmbedder()
	ctx := context.Background()

	same, err := e.Similarity(ctx, "one two three", "one two three")
	if err != nil || same != 1 {
		t.Fatalf("identical = %v, %v", same, err)
	}
	none, err := e.Similarity(ctx, "one two three", "four five six")
	if err != nil || none != 0 {
		t.Fatalf("disjoint = %v, %v", none, err)
	}
	empty, err := e.Similarity(ctx, "", "anything")
	if err != nil || empty != 0 {
		t.Fatalf("empty = %v, %v", empty, err)
	}
}
