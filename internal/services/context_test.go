package services

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")
	id, ok := RequestIDFromContext(ctx)
	if !ok || id != "req-123" {
		t.Fatalf("expected request id to round trip, got %q ok=%v", id, ok)
	}
}

func TestRequestIDEmptyIgnored(t *testing.T) {
	ctx := WithRequestID(context.Background(), "")
	if _, ok := RequestIDFromContext(ctx); ok {
		t.Fatal("empty request id should not be stored")
	}
}
