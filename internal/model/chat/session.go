package chat

import "time"

// Session correlates a sequence of exchanges for one user. The caller
// supplies the session key; LastActivity is bumped on every exchange.
type Session struct {
	ID           string            `json:"id"`
	UserID       string            `json:"userId"`
	SessionID    string            `json:"sessionId"`
	CreatedAt    time.Time         `json:"createdAt"`
	LastActivity time.Time         `json:"lastActivity"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}
