package biz

import (
	"strings"

	"go.uber.org/zap"

	"clinictriage/cmd/triage-service/internal/domain"
)

// IntentClassifier assigns one of the closed intent categories to a
// message by walking the pattern library's rules in declaration order and
// returning on the first pattern that matches.
type IntentClassifier struct {
	lib    *PatternLibrary
	logger *zap.Logger
}

func NewIntentClassifier(lib *PatternLibrary, logger *zap.Logger) *IntentClassifier {
	return &IntentClassifier{lib: lib, logger: logger}
}

// Classify returns the first matching category with a position-derived
// confidence. Text is lowercased defensively; empty text falls through to
// the unknown intent, never an error.
func (c *IntentClassifier) Classify(text string, lang domain.Language) domain.IntentResult {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return domain.NewUnknownIntent(text)
	}

	for _, rule := range c.lib.IntentRules {
		for _, pattern := range rule.Patterns {
			loc := pattern.FindStringIndex(lowered)
			if loc == nil {
				continue
			}

			confidence := scoreMatch(loc, len(lowered))
			c.logger.Debug("intent matched",
				zap.String("intent", string(rule.Category)),
				zap.Float64("confidence", confidence),
				zap.String("language", string(lang)),
			)
			return domain.IntentResult{
				Intent:       rule.Category,
				Confidence:   confidence,
				OriginalText: text,
			}
		}
	}

	return domain.NewUnknownIntent(text)
}

// scoreMatch derives confidence from where and how much of the text the
// pattern matched: base 0.7, +0.2 when the match starts within the first
// 20% of the text, +0.1 when it spans the whole text, clamped to 1.0.
func scoreMatch(loc []int, textLen int) float64 {
	confidence := domain.ConfidenceBase

	if float64(loc[0]) <= 0.2*float64(textLen) {
		confidence += domain.ConfidenceLeadBonus
	}
	if loc[1]-loc[0] == textLen {
		confidence += domain.ConfidenceFullSpanBonus
	}
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}
