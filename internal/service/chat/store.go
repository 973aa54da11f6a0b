package chat

import (
	"context"
	"errors"

	model "github.com/quickbites/support-backend/internal/model/chat"
)

var (
	ErrUserRequired    = errors.New("user id is required")
	ErrSessionRequired = errors.New("session id is required")
)

// Store is the persistence collaborator behind sessions and messages. The
// context pipeline treats it as an opaque append log: implementations may
// fail, and callers are expected to degrade rather than block a reply.
type Store interface {
	// SaveMessage appends one exchange and returns it with ID and
	// timestamp assigned.
	SaveMessage(ctx context.Context, msg model.Message) (model.Message, error)

	// History returns messages for a user ordered newest first. An empty
	// sessionID spans all of the user's sessions. limit caps the result.
	History(ctx context.Context, userID, sessionID string, limit int) ([]model.Message, error)

	// UpsertSession creates the session on first sight and bumps
	// LastActivity afterwards, merging metadata.
	UpsertSession(ctx context.Context, userID, sessionID string, metadata map[string]string) (model.Session, error)

	// UserSessions lists a user's sessions ordered by most recent activity.
	UserSessions(ctx context.Context, userID string) ([]model.Session, error)

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}
