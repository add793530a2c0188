package domain

// IntentCategory is the closed set of things a patient message can ask for.
type IntentCategory string

const (
	IntentGreeting    IntentCategory = "greeting"
	IntentAppointment IntentCategory = "appointment"
	IntentEmergency   IntentCategory = "emergency"
	IntentInformation IntentCategory = "information"
	IntentComplaint   IntentCategory = "complaint"
	IntentUnknown     IntentCategory = "unknown"
)

// Confidence scoring constants for the rule classifier.
const (
	// ConfidenceBase is awarded for any pattern match.
	ConfidenceBase = 0.7
	// ConfidenceLeadBonus is added when the match starts within the first
	// 20% of the text, signalling the user led with their intent.
	ConfidenceLeadBonus = 0.2
	// ConfidenceFullSpanBonus is added when the match covers the whole text.
	ConfidenceFullSpanBonus = 0.1
	// ConfidenceUnknown is the fixed score for unmatched messages.
	ConfidenceUnknown = 0.3
)

// IntentResult is the classifier output for one message.
type IntentResult struct {
	Intent       IntentCategory `json:"intent"`
	Confidence   float64        `json:"confidence"`
	OriginalText string         `json:"original_text"`
}

// NewUnknownIntent returns the fixed low-confidence result for text no
// pattern matched.
func NewUnknownIntent(text string) IntentResult {
	return IntentResult{
		Intent:       IntentUnknown,
		Confidence:   ConfidenceUnknown,
		OriginalText: text,
	}
}

// IsEmergency reports whether the classified intent is the emergency
// category.
func (r IntentResult) IsEmergency() bool {
	return r.Intent == IntentEmergency
}
