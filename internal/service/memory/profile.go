package memory

import (
	"sort"
	"strings"
	"time"

	"github.com/quickbites/support-backend/internal/model/chat"
)

const topIssues = 3

// counter tallies string frequencies while remembering first-encounter
// order, so ties resolve the same way on every run regardless of map
// iteration order.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// max returns the single most frequent key. Ties go to the key encountered
// first during the scan.
func (c *counter) max() string {
	var best string
	bestCount := 0
	for _, key := range c.order {
		if c.counts[key] > bestCount {
			best = key
			bestCount = c.counts[key]
		}
	}
	return best
}

// top returns up to k keys by descending frequency, ties in
// first-encountered order.
func (c *counter) top(k int) []string {
	ranked := append([]string(nil), c.order...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return c.counts[ranked[i]] > c.counts[ranked[j]]
	})
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

// buildProfile derives the user profile from history in a single linear
// scan. lastOrderDate keeps the timestamp of the last message in scan order
// mentioning both "order" and "today".
func buildProfile(userID string, history []chat.Message) UserProfile {
	languages := newCounter()
	issues := newCounter()
	var lastOrderDate *time.Time

	for _, msg := range history {
		if msg.Metadata != nil {
			if msg.Metadata.Language != "" {
				languages.add(msg.Metadata.Language)
			}
			if msg.Metadata.Intent != "" {
				issues.add(msg.Metadata.Intent)
			}
		}

		lowered := strings.ToLower(msg.Text)
		if strings.Contains(lowered, "order") && strings.Contains(lowered, "today") {
			ts := msg.Timestamp
			lastOrderDate = &ts
		}
	}

	return UserProfile{
		UserID:             userID,
		PreferredLanguage:  languages.max(),
		CommonIssues:       issues.top(topIssues),
		LastOrderDate:      lastOrderDate,
		TotalConversations: len(history),
	}
}
