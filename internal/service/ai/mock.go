package ai

import (
	"context"
	"hash/fnv"

	"github.com/quickbites/support-backend/internal/analysis/intent"
)

// MockProvider answers with canned text keyed by detected intent. The
// response choice is a stable function of the message so replies are
// reproducible across runs; tests and the upstream-failure fallback depend
// on that determinism.
type MockProvider struct{}

// NewMockProvider returns the deterministic mock.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

var mockResponses = map[string][]string{
	intent.DeliveryDelay: {
		"I apologize for the delay with your order. I can help you get a refund or free delivery credit for your next order.",
		"Sorry about the late delivery. Let me track your order and provide you with a solution - either a refund or compensation.",
		"I understand your frustration with the delayed order. Let me check the status and offer you appropriate compensation.",
	},
	intent.RefundRequest: {
		"I can process your refund right away. It will be credited to your account within 3-5 business days.",
		"No problem with the refund. Let me initiate the process for you immediately.",
		"I'll help you get your money back. Refunds typically take 3-5 business days to appear in your account.",
	},
	intent.OrderTracking: {
		"Your order is on the way and will arrive in 15-20 minutes. You can track it live in the app.",
		"Your food is ready and the delivery person has left. It should arrive shortly.",
		"Let me check your order status. It looks like your order is being prepared and will be delivered soon.",
	},
	intent.Cancellation: {
		"I can help you cancel your order if it hasn't started preparation yet. Let me check the status.",
		"Cancellation is possible within the first few minutes. Let me see if we can still cancel your order.",
		"I'll check if your order can be cancelled. If not, I can arrange a refund for you.",
	},
	intent.PaymentIssue: {
		"I can help resolve any payment issues. What specific problem are you experiencing?",
		"Payment problems can usually be fixed quickly. Let me assist you with that.",
		"Don't worry about payment issues - I'm here to help sort that out for you.",
	},
}

var mockFallbackResponses = []string{
	"Hello! I'm here to help you with your food delivery questions. You can ask about orders, refunds, tracking, or any other concerns.",
	"Welcome! I'm your customer support assistant. How can I help you today?",
	"Hi there! I can help you with order issues, refunds, delivery questions, and more. What do you need assistance with?",
	"I'm here to assist you with any food delivery related questions or concerns. What can I help you with?",
}

// GenerateResponse ignores the context string; the mock has no memory.
func (p *MockProvider) GenerateResponse(_ context.Context, prompt, _ string) (string, error) {
	responses, ok := mockResponses[intent.Detect(prompt)]
	if !ok {
		responses = mockFallbackResponses
	}

	h := fnv.New32a()
	h.Write([]byte(prompt))
	return responses[int(h.Sum32())%len(responses)], nil
}
