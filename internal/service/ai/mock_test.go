package ai

import (
	"context"
	"testing"

	"github.com/quickbites/support-backend/internal/analysis/intent"
)

func TestMockProviderIsDeterministic(t *testing.T) {
	p := NewMockProvider()
	ctx := context.Background()

	first, err := p.GenerateResponse(ctx, "my order is late", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := p.GenerateResponse(ctx, "my order is late", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical responses, got %q and %q", first, second)
	}
}

func TestMockProviderAnswersByIntent(t *testing.T) {
	p := NewMockProvider()

	got, err := p.GenerateResponse(context.Background(), "I need a refund", "ignored context")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, canned := range mockResponses[intent.RefundRequest] {
		if got == canned {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected a refund response, got %q", got)
	}
}

func TestMockProviderFallsBackForUnknownIntent(t *testing.T) {
	p := NewMockProvider()

	got, err := p.GenerateResponse(context.Background(), "good evening", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, canned := range mockFallbackResponses {
		if got == canned {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected a fallback response, got %q", got)
	}
}
