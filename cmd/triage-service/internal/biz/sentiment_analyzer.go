package biz

import (
	"strings"

	"clinictriage/cmd/triage-service/internal/domain"
)

// SentimentAnalyzer scores a message against three fixed lexicons. Words
// are matched by substring containment, not tokenized equality, so a
// lexicon word embedded in a longer word still counts. The worked clinic
// dialogues rely on this, so it stays.
type SentimentAnalyzer struct {
	lib *PatternLibrary
}

func NewSentimentAnalyzer(lib *PatternLibrary) *SentimentAnalyzer {
	return &SentimentAnalyzer{lib: lib}
}

// Analyze returns the coarse sentiment category. Any urgent word dominates
// polarity entirely; the positive/negative branches require a margin of
// two so near-tied counts stay neutral.
func (a *SentimentAnalyzer) Analyze(text string) domain.SentimentCategory {
	lowered := strings.ToLower(text)

	positive := countContained(lowered, a.lib.PositiveWords)
	negative := countContained(lowered, a.lib.NegativeWords)
	urgent := countContained(lowered, a.lib.UrgentWords)

	switch {
	case urgent > 0:
		return domain.SentimentVeryNegative
	case negative > positive+1:
		return domain.SentimentNegative
	case positive > negative+1:
		return domain.SentimentPositive
	default:
		return domain.SentimentNeutral
	}
}

func countContained(text string, words []string) int {
	count := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			count++
		}
	}
	return count
}
