// Package memory builds the conversational context handed to the response
// generator: a per-request profile of the user, a summary of the active
// session and the most relevant historical turns. Everything here is a pure
// function of the fetched history; nothing is cached between requests.
package memory

import (
	"fmt"
	"strings"
	"time"

	"github.com/quickbites/support-backend/internal/model/chat"
)

// UserProfile aggregates a user's history into coarse preferences. It is
// recomputed on every request and never persisted.
type UserProfile struct {
	UserID             string     `json:"userId"`
	PreferredLanguage  string     `json:"preferredLanguage,omitempty"`
	CommonIssues       []string   `json:"commonIssues"`
	LastOrderDate      *time.Time `json:"lastOrderDate,omitempty"`
	TotalConversations int        `json:"totalConversations"`
}

// ConversationContext is the assembled per-request view consumed once by
// the prompt formatter and then discarded.
type ConversationContext struct {
	RecentMessages      []chat.Message `json:"recentMessages"`
	UserProfile         UserProfile    `json:"userProfile"`
	ConversationSummary string         `json:"conversationSummary"`
	RelevantHistory     []chat.Message `json:"relevantHistory"`
}

// newConversationSummary is the fixed sentence emitted when the session has
// no messages yet, including the degraded mode taken on history-fetch
// failure.
const newConversationSummary = "This is a new conversation."

// emptyContext is the minimal valid context returned when history cannot be
// fetched, so callers can always proceed without memory.
func emptyContext(userID string) ConversationContext {
	return ConversationContext{
		RecentMessages: []chat.Message{},
		UserProfile: UserProfile{
			UserID:       userID,
			CommonIssues: []string{},
		},
		ConversationSummary: newConversationSummary,
		RelevantHistory:     []chat.Message{},
	}
}

// FormatForPrompt renders the context as one string safe to prepend to a
// model prompt. Sections appear in a fixed order and empty sections are
// omitted; the caller is responsible for any hard prompt-length limit.
func FormatForPrompt(c ConversationContext) string {
	var b strings.Builder

	if c.UserProfile.TotalConversations > 0 {
		fmt.Fprintf(&b, "User Profile: This user has had %d previous conversations. ", c.UserProfile.TotalConversations)
		if c.UserProfile.PreferredLanguage != "" {
			fmt.Fprintf(&b, "Preferred language: %s. ", c.UserProfile.PreferredLanguage)
		}
		if len(c.UserProfile.CommonIssues) > 0 {
			fmt.Fprintf(&b, "Common issues: %s. ", strings.Join(c.UserProfile.CommonIssues, ", "))
		}
	}

	if c.ConversationSummary != "" {
		b.WriteString("\n\n")
		b.WriteString(c.ConversationSummary)
	}

	if len(c.RelevantHistory) > 0 {
		b.WriteString("\n\nRelevant past conversations:\n")
		writeTurns(&b, c.RelevantHistory)
	}

	if len(c.RecentMessages) > 0 {
		b.WriteString("\n\nRecent conversation in this session:\n")
		// Recent messages arrive newest first; replay them chronologically.
		chronological := make([]chat.Message, len(c.RecentMessages))
		for i, msg := range c.RecentMessages {
			chronological[len(c.RecentMessages)-1-i] = msg
		}
		writeTurns(&b, chronological)
	}

	return b.String()
}

func writeTurns(b *strings.Builder, messages []chat.Message) {
	for i, msg := range messages {
		fmt.Fprintf(b, "%d. User: \"%s\" → Assistant: \"%s\"\n", i+1, msg.Text, msg.Response)
	}
}
