package biz

import (
	"strings"

	"clinictriage/cmd/triage-service/internal/domain"
)

// MedicalAnalyzer reads a message for medical content. Its urgency chain
// and specialty hints are heuristics kept as replaceable rule tables, not
// a medical ontology.
type MedicalAnalyzer struct {
	lib *PatternLibrary
}

func NewMedicalAnalyzer(lib *PatternLibrary) *MedicalAnalyzer {
	return &MedicalAnalyzer{lib: lib}
}

// AnalyzeContext scans the fixed medical keyword list. Complexity is the
// matched fraction of the full list, so it is monotone in the number of
// distinct matched keywords and always within [0,1]. Urgency is an ordered
// if-chain where the first true branch wins.
func (a *MedicalAnalyzer) AnalyzeContext(text string) domain.MedicalContext {
	lowered := strings.ToLower(text)

	matched := make([]string, 0)
	for _, kw := range a.lib.MedicalKeywords {
		if strings.Contains(lowered, kw) {
			matched = append(matched, kw)
		}
	}

	ctx := domain.MedicalContext{
		IsMedical:  len(matched) > 0,
		Urgency:    urgencyOf(lowered),
		Complexity: float64(len(matched)) / float64(len(a.lib.MedicalKeywords)),
		Keywords:   matched,
	}
	ctx.Specialty = specialtyOf(lowered)
	return ctx
}

func urgencyOf(lowered string) domain.UrgencyLevel {
	switch {
	case strings.Contains(lowered, "emergency") || strings.Contains(lowered, "urgent"):
		return domain.UrgencyCritical
	case strings.Contains(lowered, "pain") || strings.Contains(lowered, "fever"):
		return domain.UrgencyHigh
	case strings.Contains(lowered, "check up") || strings.Contains(lowered, "screening"):
		return domain.UrgencyLow
	default:
		return domain.UrgencyLow
	}
}

func specialtyOf(lowered string) string {
	switch {
	case strings.Contains(lowered, "heart") || strings.Contains(lowered, "chest"):
		return "cardiology"
	case strings.Contains(lowered, "skin") || strings.Contains(lowered, "dermatology"):
		return "dermatology"
	default:
		return ""
	}
}
