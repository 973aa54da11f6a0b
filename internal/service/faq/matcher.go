package faq

import (
	"fmt"
	"strings"

	"github.com/quickbites/support-backend/internal/analysis/rank"
	"github.com/quickbites/support-backend/internal/model/faq"
)

const (
	topMatches     = 3
	keywordWeight  = 3.0
	questionWeight = 1.0
	answerWeight   = 0.5
	minQuestionLen = 3 // question words must be longer than this
	minAnswerLen   = 4 // answer words must be longer than this
)

// Matcher scores the static knowledge base against user messages and
// renders the winning entries as a prompt context block.
type Matcher struct {
	store faq.Store
}

// NewMatcher returns a Matcher over the supplied knowledge base.
func NewMatcher(store faq.Store) *Matcher {
	return &Matcher{store: store}
}

// Match returns the top three knowledge-base entries relevant to the
// message, ordered by descending score. Ties keep knowledge-base order.
// Entries that score zero are excluded entirely.
func (m *Matcher) Match(message string) []faq.Entry {
	lowered := strings.ToLower(message)
	return rank.TopK(m.store.List(), topMatches, func(e faq.Entry) float64 {
		return scoreEntry(lowered, e)
	})
}

// scoreEntry weighs explicit keyword hits highest, then question-word
// overlap, then answer-word overlap. All tests are substring matches
// against the lowercased message.
func scoreEntry(lowered string, e faq.Entry) float64 {
	var score float64

	for _, kw := range e.Keywords {
		if strings.Contains(lowered, strings.ToLower(kw)) {
			score += keywordWeight
		}
	}

	for _, word := range strings.Fields(strings.ToLower(e.Question)) {
		if len(word) > minQuestionLen && strings.Contains(lowered, word) {
			score += questionWeight
		}
	}

	for _, word := range strings.Fields(strings.ToLower(e.Answer)) {
		if len(word) > minAnswerLen && strings.Contains(lowered, word) {
			score += answerWeight
		}
	}

	return score
}

// ContextBlock formats matched entries for verbatim injection ahead of the
// user turn in the model prompt. No matches yields an empty string so the
// caller can concatenate unconditionally.
func (m *Matcher) ContextBlock(entries []faq.Entry) string {
	if len(entries) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\nRelevant FAQ Information:\n")
	for i, e := range entries {
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, strings.ToUpper(e.Category), e.Answer)
	}
	return b.String()
}
