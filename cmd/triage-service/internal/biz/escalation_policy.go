package biz

import (
	"strings"

	"go.uber.org/zap"

	"clinictriage/cmd/triage-service/internal/domain"
)

// failedAttemptsThreshold is how many failed turns in a row pull a human
// in regardless of message content.
const failedAttemptsThreshold = 2

// complexityThreshold is the keyword-coverage ratio above which a medical
// query is considered too complex for automated replies.
const complexityThreshold = 0.7

// EscalationPolicy decides whether a human must take over and at what
// tier. Escalation is a safety gate, so the rules form an ordered cascade
// where the first satisfied rule wins: a single unambiguous trigger must
// never be diluted by averaging against calmer signals elsewhere in the
// message.
type EscalationPolicy struct {
	lib    *PatternLibrary
	logger *zap.Logger
}

func NewEscalationPolicy(lib *PatternLibrary, logger *zap.Logger) *EscalationPolicy {
	return &EscalationPolicy{lib: lib, logger: logger}
}

// Decide evaluates the cascade over the message plus the combined analyzer
// outputs. A nil session context skips the failed-attempts rule; it is
// never an error.
func (p *EscalationPolicy) Decide(message string, analysis domain.AnalysisResult, session *domain.SessionContext) domain.EscalationVerdict {
	lowered := strings.ToLower(message)

	// 1. Hard emergency: keyword in the raw message or emergency intent.
	if containsAny(lowered, p.lib.EmergencyKeywords) || analysis.Intent.IsEmergency() {
		return p.verdict(domain.ReasonEmergencyMedical, domain.EscalationEmergency)
	}

	// 2. Urgent wording on a medical topic.
	if containsAny(lowered, p.lib.UrgencyKeywords) && analysis.Medical.IsMedical {
		return p.verdict(domain.ReasonUrgentMedicalInquiry, domain.EscalationL2Supervisor)
	}

	// 3. Very negative sentiment on a medical topic.
	if analysis.Sentiment == domain.SentimentVeryNegative && analysis.Medical.IsMedical {
		return p.verdict(domain.ReasonNegativeSentimentMed, domain.EscalationL1Agent)
	}

	// 4. Medical query too complex for canned answers.
	if analysis.Medical.IsMedical && analysis.Medical.Complexity > complexityThreshold {
		return p.verdict(domain.ReasonComplexMedicalQuery, domain.EscalationL3Manager)
	}

	// 5. The bot keeps failing this user.
	if session != nil && session.FailedAttempts >= failedAttemptsThreshold {
		return p.verdict(domain.ReasonMultipleFailedAttempts, domain.EscalationL1Agent)
	}

	return domain.NoEscalation()
}

func (p *EscalationPolicy) verdict(reason string, level domain.EscalationLevel) domain.EscalationVerdict {
	p.logger.Info("escalation triggered",
		zap.String("reason", reason),
		zap.String("level", string(level)),
	)
	return domain.Escalate(reason, level)
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
