// Package ai holds the model-provider collaborators: thin HTTP clients for
// the hosted providers plus a deterministic mock used for development and
// as the last-resort fallback. Callers must treat provider failures as
// recoverable and substitute the mock's reply.
package ai

import (
	"context"

	"go.uber.org/zap"

	"github.com/quickbites/support-backend/internal/config"
	"github.com/quickbites/support-backend/internal/logging"
)

// Provider generates a support reply for a user message. contextString is
// the assembled memory/FAQ blob injected ahead of the user turn; it may be
// empty.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt, contextString string) (string, error)
}

// systemPrompt frames every hosted-provider call.
const systemPrompt = `You are a helpful customer support assistant for a food delivery service. You should:

1. Be friendly, empathetic, and professional
2. Respond only in English
3. Remember previous conversations with the same user
4. Provide helpful solutions for common food delivery issues
5. Escalate complex issues when necessary

Common issues you can help with:
- Order delays and tracking
- Refunds and cancellations
- Menu questions
- Delivery address changes
- Payment issues
- Restaurant availability

If you remember previous conversations with this user, acknowledge them naturally and build upon that context.

Always respond in clear, professional English.`

// NewProvider selects a provider from configuration. Missing credentials
// fall back to the mock so a reply is always available; the health endpoint
// is the place where that misconfiguration becomes visible.
func NewProvider(cfg config.AIConfig) Provider {
	switch {
	case cfg.Provider == config.ProviderMock:
		logging.Logger.Info("AI_PROVIDER=mock, using deterministic mock provider")
		return NewMockProvider()
	case cfg.Provider == config.ProviderAnthropic && cfg.AnthropicKey != "":
		return NewAnthropicProvider(cfg)
	case cfg.Provider == config.ProviderOpenAI && cfg.OpenAIKey != "":
		return NewOpenAIProvider(cfg)
	default:
		logging.Logger.Warn("provider credentials missing, falling back to mock",
			zap.String("provider", cfg.Provider))
		return NewMockProvider()
	}
}
