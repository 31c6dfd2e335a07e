package services

import (
	"context"
	"testing"
)

func TestContextAnnotations(t *testing.T) {
	ctx := context.Background()
	ctx = WithRunID(ctx, "run-1")
	ctx = WithRecording(ctx, "/input/a.mp4")
	ctx = WithComponent(ctx, "retake")

	if v, ok := RunIDFromContext(ctx); !ok || v != "run-1" {
		t.Errorf("run id = %q, %v", v, ok)
	}
	if v, ok := RecordingFromContext(ctx); !ok || v != "/input/a.mp4" {
		t.Errorf("recording = %q, %v", v, ok)
	}
	if v, ok := ComponentFromContext(ctx); !ok || v != "retake" {
		t.Errorf("component = %q, %v", v, ok)
	}
}

func TestContextEmptyValuesIgnored(t *testing.T) {
	ctx := WithRunID(context.Background(), "")
	if _, ok := RunIDFromContext(ctx); ok {
		t.Error("empty run id should not be stored")
	}
}
