package chat

import "time"

// Metadata carries per-exchange annotations produced by the analysis
// pipeline. All fields are optional.
type Metadata struct {
	Intent    string `json:"intent,omitempty"`
	Language  string `json:"language,omitempty"`
	Sentiment string `json:"sentiment,omitempty"`
}

// Message records one user/assistant exchange. Messages are immutable once
// persisted; the response is stored alongside the user text so history can
// be replayed without joins.
type Message struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	SessionID string    `json:"sessionId"`
	Text      string    `json:"message"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  *Metadata `json:"metadata,omitempty"`
}
