package memory

import (
	"strings"
	"time"

	"github.com/quickbites/support-backend/internal/analysis/keyword"
	"github.com/quickbites/support-backend/internal/analysis/rank"
	"github.com/quickbites/support-backend/internal/model/chat"
)

const (
	topRelevant = 3

	textMatchWeight     = 2.0
	responseMatchWeight = 1.0
	intentMatchWeight   = 3.0
	weekRecencyBonus    = 2.0
	monthRecencyBonus   = 1.0
)

// rankHistory scores past exchanges for relevance to the current message
// and returns the top three. Scoring weighs keyword overlap with the stored
// text and response, an intent match and recency. Ties keep the input
// (chronological) order.
func rankHistory(message, currentIntent string, history []chat.Message, now time.Time) []chat.Message {
	keywords := keyword.Extract(message)

	return rank.TopK(history, topRelevant, func(msg chat.Message) float64 {
		var score float64

		loweredText := strings.ToLower(msg.Text)
		loweredResponse := strings.ToLower(msg.Response)
		for _, kw := range keywords {
			if strings.Contains(loweredText, kw) {
				score += textMatchWeight
			}
			if strings.Contains(loweredResponse, kw) {
				score += responseMatchWeight
			}
		}

		if msg.Metadata != nil && msg.Metadata.Intent == currentIntent {
			score += intentMatchWeight
		}

		switch age := now.Sub(msg.Timestamp); {
		case age < 7*24*time.Hour:
			score += weekRecencyBonus
		case age < 30*24*time.Hour:
			score += monthRecencyBonus
		}

		return score
	})
}
