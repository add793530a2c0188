package domain

// UrgencyLevel grades how quickly a medical concern needs attention.
type UrgencyLevel string

const (
	UrgencyLow      UrgencyLevel = "low"
	UrgencyMedium   UrgencyLevel = "medium"
	UrgencyHigh     UrgencyLevel = "high"
	UrgencyCritical UrgencyLevel = "critical"
)

// MedicalContext is the medical reading of one message. Complexity is the
// fraction of the keyword set found in the text, always within [0,1]. It is
// a coverage ratio, not a calibrated clinical score.
type MedicalContext struct {
	IsMedical  bool         `json:"is_medical"`
	Specialty  string       `json:"specialty,omitempty"`
	Urgency    UrgencyLevel `json:"urgency"`
	Complexity float64      `json:"complexity"`
	Keywords   []string     `json:"keywords"`
}
