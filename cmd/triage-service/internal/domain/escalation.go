package domain

// EscalationLevel identifies who owns an escalated conversation.
type EscalationLevel string

const (
	EscalationL1Agent      EscalationLevel = "l1_agent"
	EscalationL2Supervisor EscalationLevel = "l2_supervisor"
	EscalationL3Manager    EscalationLevel = "l3_manager"
	EscalationEmergency    EscalationLevel = "emergency"
)

// Machine-readable escalation reason codes.
const (
	ReasonEmergencyMedical       = "emergency_medical_situation"
	ReasonUrgentMedicalInquiry   = "urgent_medical_inquiry"
	ReasonNegativeSentimentMed   = "negative_sentiment_medical"
	ReasonComplexMedicalQuery    = "complex_medical_query"
	ReasonMultipleFailedAttempts = "multiple_failed_attempts"
	ReasonComplaint              = "complaint"
	ReasonEmergency              = "emergency"
	ReasonProcessingError        = "processing_error"
)

// EscalationVerdict is the single escalate/no-escalate decision for one
// message. Exactly one verdict is produced per triage call.
type EscalationVerdict struct {
	ShouldEscalate bool            `json:"should_escalate"`
	Reason         string          `json:"reason,omitempty"`
	Level          EscalationLevel `json:"level,omitempty"`
}

// NoEscalation is the verdict when no cascade rule fired.
func NoEscalation() EscalationVerdict {
	return EscalationVerdict{}
}

// Escalate builds a positive verdict.
func Escalate(reason string, level EscalationLevel) EscalationVerdict {
	return EscalationVerdict{ShouldEscalate: true, Reason: reason, Level: level}
}

// AnalysisResult threads all four analyzer outputs into the escalation
// policy so the dependency is visible in the type signature instead of
// being inferred from call order.
type AnalysisResult struct {
	Intent    IntentResult
	Entities  *EntityBag
	Sentiment SentimentCategory
	Medical   MedicalContext
}
