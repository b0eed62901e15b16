package intent

import "strings"

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

var (
	positiveWords = []string{"great", "good", "excited", "happy", "love"}
	negativeWords = []string{"stressed", "frustrated", "confused", "stuck"}
)

// AnalyzeSentiment scans for a small fixed word list. A message carrying
// both polarities, or neither, reads as neutral.
func AnalyzeSentiment(message string) string {
	lower := strings.ToLower(message)

	positive := containsAny(lower, positiveWords)
	negative := containsAny(lower, negativeWords)

	switch {
	case positive && !negative:
		return SentimentPositive
	case negative && !positive:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
