package chat

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	model "github.com/quickbites/support-backend/internal/model/chat"
)

// MemoryStore implements Store with mutex-guarded slices. It backs local
// development and tests when no database is configured, and doubles as the
// degraded-mode stand-in selected by configuration.
type MemoryStore struct {
	mu       sync.RWMutex
	messages []model.Message
	sessions []model.Session
}

// NewMemoryStore bootstraps an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		messages: make([]model.Message, 0, 64),
		sessions: make([]model.Session, 0, 8),
	}
}

// SaveMessage appends the exchange, assigning an ID and timestamp when
// absent.
func (s *MemoryStore) SaveMessage(_ context.Context, msg model.Message) (model.Message, error) {
	if msg.UserID == "" {
		return model.Message{}, ErrUserRequired
	}
	if msg.SessionID == "" {
		return model.Message{}, ErrSessionRequired
	}

	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()

	return msg, nil
}

// History filters by user and optional session, newest first.
func (s *MemoryStore) History(_ context.Context, userID, sessionID string, limit int) ([]model.Message, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}

	s.mu.RLock()
	filtered := make([]model.Message, 0, limit)
	for _, msg := range s.messages {
		if msg.UserID != userID {
			continue
		}
		if sessionID != "" && msg.SessionID != sessionID {
			continue
		}
		filtered = append(filtered, msg)
	}
	s.mu.RUnlock()

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Timestamp.After(filtered[j].Timestamp)
	})

	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

// UpsertSession creates or refreshes the session record.
func (s *MemoryStore) UpsertSession(_ context.Context, userID, sessionID string, metadata map[string]string) (model.Session, error) {
	if userID == "" {
		return model.Session{}, ErrUserRequired
	}
	if sessionID == "" {
		return model.Session{}, ErrSessionRequired
	}

	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.sessions {
		if s.sessions[i].SessionID != sessionID {
			continue
		}
		s.sessions[i].LastActivity = now
		if len(metadata) > 0 {
			if s.sessions[i].Metadata == nil {
				s.sessions[i].Metadata = make(map[string]string, len(metadata))
			}
			for k, v := range metadata {
				s.sessions[i].Metadata[k] = v
			}
		}
		return s.sessions[i], nil
	}

	session := model.Session{
		ID:           uuid.NewString(),
		UserID:       userID,
		SessionID:    sessionID,
		CreatedAt:    now,
		LastActivity: now,
		Metadata:     metadata,
	}
	s.sessions = append(s.sessions, session)
	return session, nil
}

// UserSessions lists sessions for a user, most recently active first.
func (s *MemoryStore) UserSessions(_ context.Context, userID string) ([]model.Session, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}

	s.mu.RLock()
	filtered := make([]model.Session, 0, 4)
	for _, session := range s.sessions {
		if session.UserID == userID {
			filtered = append(filtered, session)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].LastActivity.After(filtered[j].LastActivity)
	})
	return filtered, nil
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping(context.Context) error { return nil }

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }
