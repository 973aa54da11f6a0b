// Package validation sanitizes and validates the HTTP request surface.
// Failures are reported as plain errors with human-readable reasons;
// handlers map them to 400 responses.
package validation

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const maxMessageLength = 1000

var (
	ErrMessageRequired = errors.New("message is required")
	ErrMessageEmpty    = errors.New("message cannot be empty")
	ErrMessageTooLong  = errors.New("message is too long (max 1000 characters)")
	ErrMessageHarmful  = errors.New("message contains potentially harmful content")
	ErrUserIDRequired  = errors.New("user ID is required")
	ErrUserIDFormat    = errors.New("invalid user ID format")
	ErrSessionIDFormat = errors.New("invalid session ID format")
	ErrLimitRange      = errors.New("limit must be a number between 1 and 100")
)

// harmfulPatterns reject obvious injection payloads before any further
// processing.
var harmfulPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script\b.*?</script>`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)on\w+\s*=`),
	regexp.MustCompile(`(?i)data:text/html`),
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Message validates and sanitizes a chat message: trims, rejects empty,
// over-length and harmful input, strips angle brackets and collapses
// whitespace.
func Message(message string) (string, error) {
	if message == "" {
		return "", ErrMessageRequired
	}

	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return "", ErrMessageEmpty
	}
	if len(trimmed) > maxMessageLength {
		return "", ErrMessageTooLong
	}

	for _, pattern := range harmfulPatterns {
		if pattern.MatchString(trimmed) {
			return "", ErrMessageHarmful
		}
	}

	sanitized := strings.NewReplacer("<", "", ">", "").Replace(trimmed)
	sanitized = whitespaceRun.ReplaceAllString(sanitized, " ")
	return strings.TrimSpace(sanitized), nil
}

// UserID validates a required UUID.
func UserID(userID string) (string, error) {
	trimmed := strings.TrimSpace(userID)
	if trimmed == "" {
		return "", ErrUserIDRequired
	}
	if !isUUID(trimmed) {
		return "", ErrUserIDFormat
	}
	return trimmed, nil
}

// SessionID validates an optional UUID; empty input is allowed and yields
// an empty string.
func SessionID(sessionID string) (string, error) {
	trimmed := strings.TrimSpace(sessionID)
	if trimmed == "" {
		return "", nil
	}
	if !isUUID(trimmed) {
		return "", ErrSessionIDFormat
	}
	return trimmed, nil
}

// Limit parses an optional result cap in [1, 100], defaulting to 20.
func Limit(raw string) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return 20, nil
	}
	limit, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || limit < 1 || limit > 100 {
		return 0, ErrLimitRange
	}
	return limit, nil
}

// isUUID requires the canonical hyphenated form.
func isUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
