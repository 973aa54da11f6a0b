package chat

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	model "github.com/quickbites/support-backend/internal/model/chat"
)

// Compile-time check that SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS conversations (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	session_id TEXT NOT NULL,
	message    TEXT NOT NULL,
	response   TEXT NOT NULL,
	timestamp  TEXT NOT NULL,
	metadata   TEXT
);
CREATE INDEX IF NOT EXISTS idx_conversations_user ON conversations(user_id, timestamp);
CREATE INDEX IF NOT EXISTS idx_conversations_session ON conversations(session_id, timestamp);

CREATE TABLE IF NOT EXISTS sessions (
	id            TEXT PRIMARY KEY,
	user_id       TEXT NOT NULL,
	session_id    TEXT NOT NULL UNIQUE,
	created_at    TEXT NOT NULL,
	last_activity TEXT NOT NULL,
	metadata      TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id, last_activity);
`

// SQLiteStore persists conversations in SQLite through database/sql. The
// pure-Go driver keeps the binary portable; no cgo required.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and bootstraps the
// schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	// modernc.org/sqlite serializes writes internally; a single connection
	// avoids SQLITE_BUSY on concurrent handlers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrapping schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// SaveMessage inserts one exchange.
func (s *SQLiteStore) SaveMessage(ctx context.Context, msg model.Message) (model.Message, error) {
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

	var metadata any
	if msg.Metadata != nil {
		encoded, err := json.Marshal(msg.Metadata)
		if err != nil {
			return model.Message{}, fmt.Errorf("encoding metadata: %w", err)
		}
		metadata = string(encoded)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversations (id, user_id, session_id, message, response, timestamp, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.UserID, msg.SessionID, msg.Text, msg.Response,
		msg.Timestamp.Format(time.RFC3339Nano), metadata)
	if err != nil {
		return model.Message{}, fmt.Errorf("inserting conversation: %w", err)
	}
	return msg, nil
}

// History returns messages for a user newest first, optionally scoped to a
// session.
func (s *SQLiteStore) History(ctx context.Context, userID, sessionID string, limit int) ([]model.Message, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, user_id, session_id, message, response, timestamp, metadata
		FROM conversations WHERE user_id = ?`
	args := []any{userID}
	if sessionID != "" {
		query += ` AND session_id = ?`
		args = append(args, sessionID)
	}
	query += ` ORDER BY timestamp DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying conversations: %w", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func scanMessage(rows *sql.Rows) (model.Message, error) {
	var (
		msg      model.Message
		ts       string
		metadata sql.NullString
	)
	if err := rows.Scan(&msg.ID, &msg.UserID, &msg.SessionID, &msg.Text, &msg.Response, &ts, &metadata); err != nil {
		return model.Message{}, fmt.Errorf("scanning conversation row: %w", err)
	}

	parsed, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return model.Message{}, fmt.Errorf("parsing timestamp %q: %w", ts, err)
	}
	msg.Timestamp = parsed

	if metadata.Valid && metadata.String != "" {
		var meta model.Metadata
		if err := json.Unmarshal([]byte(metadata.String), &meta); err != nil {
			return model.Message{}, fmt.Errorf("decoding metadata: %w", err)
		}
		msg.Metadata = &meta
	}
	return msg, nil
}

// UpsertSession creates the session on first sight, otherwise bumps
// last_activity and merges metadata.
func (s *SQLiteStore) UpsertSession(ctx context.Context, userID, sessionID string, metadata map[string]string) (model.Session, error) {
	if userID == "" {
		return model.Session{}, ErrUserRequired
	}
	if sessionID == "" {
		return model.Session{}, ErrSessionRequired
	}

	now := time.Now().UTC()

	existing, err := s.findSession(ctx, sessionID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return model.Session{}, err
	}

	if errors.Is(err, sql.ErrNoRows) {
		session := model.Session{
			ID:           uuid.NewString(),
			UserID:       userID,
			SessionID:    sessionID,
			CreatedAt:    now,
			LastActivity: now,
			Metadata:     metadata,
		}
		encoded, mErr := encodeSessionMetadata(session.Metadata)
		if mErr != nil {
			return model.Session{}, mErr
		}
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO sessions (id, user_id, session_id, created_at, last_activity, metadata)
			VALUES (?, ?, ?, ?, ?, ?)`,
			session.ID, session.UserID, session.SessionID,
			session.CreatedAt.Format(time.RFC3339Nano),
			session.LastActivity.Format(time.RFC3339Nano), encoded)
		if err != nil {
			return model.Session{}, fmt.Errorf("inserting session: %w", err)
		}
		return session, nil
	}

	existing.LastActivity = now
	if len(metadata) > 0 {
		if existing.Metadata == nil {
			existing.Metadata = make(map[string]string, len(metadata))
		}
		for k, v := range metadata {
			existing.Metadata[k] = v
		}
	}
	encoded, err := encodeSessionMetadata(existing.Metadata)
	if err != nil {
		return model.Session{}, err
	}
	_, err = s.db.ExecContext(ctx, `
		UPDATE sessions SET last_activity = ?, metadata = ? WHERE session_id = ?`,
		existing.LastActivity.Format(time.RFC3339Nano), encoded, sessionID)
	if err != nil {
		return model.Session{}, fmt.Errorf("updating session: %w", err)
	}
	return existing, nil
}

func encodeSessionMetadata(metadata map[string]string) (any, error) {
	if len(metadata) == 0 {
		return nil, nil
	}
	encoded, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("encoding session metadata: %w", err)
	}
	return string(encoded), nil
}

func (s *SQLiteStore) findSession(ctx context.Context, sessionID string) (model.Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, session_id, created_at, last_activity, metadata
		FROM sessions WHERE session_id = ?`, sessionID)
	return scanSessionRow(row.Scan)
}

// UserSessions lists a user's sessions, most recently active first.
func (s *SQLiteStore) UserSessions(ctx context.Context, userID string) ([]model.Session, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, session_id, created_at, last_activity, metadata
		FROM sessions WHERE user_id = ? ORDER BY last_activity DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		session, err := scanSessionRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func scanSessionRow(scan func(dest ...any) error) (model.Session, error) {
	var (
		session   model.Session
		createdAt string
		lastSeen  string
		metadata  sql.NullString
	)
	if err := scan(&session.ID, &session.UserID, &session.SessionID, &createdAt, &lastSeen, &metadata); err != nil {
		return model.Session{}, err
	}

	var err error
	if session.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return model.Session{}, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	if session.LastActivity, err = time.Parse(time.RFC3339Nano, lastSeen); err != nil {
		return model.Session{}, fmt.Errorf("parsing last_activity %q: %w", lastSeen, err)
	}
	if metadata.Valid && metadata.String != "" {
		if err := json.Unmarshal([]byte(metadata.String), &session.Metadata); err != nil {
			return model.Session{}, fmt.Errorf("decoding session metadata: %w", err)
		}
	}
	return session, nil
}

// Ping verifies database reachability.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
