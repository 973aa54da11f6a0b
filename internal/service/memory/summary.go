package memory

import (
	"fmt"
	"strings"

	"github.com/quickbites/support-backend/internal/analysis/keyword"
	"github.com/quickbites/support-backend/internal/model/chat"
)

const (
	summaryWindow    = 5
	topicsPerMessage = 3
)

// summarize produces one sentence naming the intents and keyword topics of
// the most recent session turns. messages arrive newest first; an empty
// session yields the fixed new-conversation sentence.
func summarize(messages []chat.Message) string {
	if len(messages) == 0 {
		return newConversationSummary
	}

	window := messages
	if len(window) > summaryWindow {
		window = window[:summaryWindow]
	}

	issues := newOrderedSet()
	topics := newOrderedSet()
	for _, msg := range window {
		if msg.Metadata != nil && msg.Metadata.Intent != "" {
			issues.add(msg.Metadata.Intent)
		}

		keywords := keyword.Extract(msg.Text)
		if len(keywords) > topicsPerMessage {
			keywords = keywords[:topicsPerMessage]
		}
		for _, kw := range keywords {
			topics.add(kw)
		}
	}

	var b strings.Builder
	b.WriteString("Recent conversation context: ")
	if issues.len() > 0 {
		fmt.Fprintf(&b, "User has discussed: %s. ", strings.Join(issues.values(), ", "))
	}
	if topics.len() > 0 {
		fmt.Fprintf(&b, "Key topics mentioned: %s. ", strings.Join(topics.values(), ", "))
	}
	fmt.Fprintf(&b, "Total messages in this session: %d.", len(messages))

	return b.String()
}

// orderedSet deduplicates strings while preserving insertion order.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) add(v string) {
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

func (s *orderedSet) len() int         { return len(s.items) }
func (s *orderedSet) values() []string { return s.items }
