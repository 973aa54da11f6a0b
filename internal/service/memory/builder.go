package memory

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/quickbites/support-backend/internal/analysis/intent"
	"github.com/quickbites/support-backend/internal/logging"
	chatservice "github.com/quickbites/support-backend/internal/service/chat"
)

const (
	recentLimit   = 10
	lookbackLimit = 50
)

// Builder assembles the per-request conversation context from the
// persistence collaborator.
type Builder struct {
	store chatservice.Store
	now   func() time.Time
}

// NewBuilder returns a Builder over the supplied store.
func NewBuilder(store chatservice.Store) *Builder {
	return &Builder{store: store, now: time.Now}
}

// Build fetches the session's recent turns plus a broader user history and
// derives profile, summary and relevant past exchanges. A history-fetch
// failure never propagates: the caller gets a minimal valid context and the
// conversation proceeds without memory.
func (b *Builder) Build(ctx context.Context, userID, sessionID, message string) ConversationContext {
	recent, err := b.store.History(ctx, userID, sessionID, recentLimit)
	if err != nil {
		logging.Logger.Warn("history fetch failed, continuing without memory",
			zap.String("userId", userID), zap.Error(err))
		return emptyContext(userID)
	}

	lookback, err := b.store.History(ctx, userID, "", lookbackLimit)
	if err != nil {
		logging.Logger.Warn("lookback fetch failed, continuing without memory",
			zap.String("userId", userID), zap.Error(err))
		return emptyContext(userID)
	}

	return ConversationContext{
		RecentMessages:      recent,
		UserProfile:         buildProfile(userID, lookback),
		ConversationSummary: summarize(recent),
		RelevantHistory:     rankHistory(message, intent.Detect(message), lookback, b.now()),
	}
}
