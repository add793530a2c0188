package domain

import "time"

// Language is a supported conversation locale.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageChinese Language = "zh"
	LanguageMalay   Language = "ms"
	LanguageTamil   Language = "ta"
)

// DefaultLanguage is used when detection finds no marker words.
const DefaultLanguage = LanguageEnglish

// NormalizedMessage is the preprocessed form of one inbound message.
// It is built once per triage call and shared read-only by all analyzers.
type NormalizedMessage struct {
	Text     string   // trimmed, internal whitespace collapsed
	Tokens   []string // lowercase whitespace tokens
	Language Language // detected or caller-overridden locale
}

// HistoryEntry is one prior turn of the conversation.
type HistoryEntry struct {
	Role    string `json:"role"` // user/assistant/system
	Content string `json:"content"`
}

// SessionContext is caller-owned conversation state. The engine only reads
// it; incrementing FailedAttempts after a fallback is the caller's job.
type SessionContext struct {
	ClinicID       string         `json:"clinic_id"`
	DoctorID       string         `json:"doctor_id,omitempty"`
	ServiceID      string         `json:"service_id,omitempty"`
	Language       Language       `json:"language,omitempty"`
	History        []HistoryEntry `json:"history,omitempty"`
	FailedAttempts int            `json:"failed_attempts"`
	CustomerID     string         `json:"customer_id,omitempty"`
}

// ProcessingOptions tune a single triage call. This is not a wire type;
// the API layer owns the JSON form and its unit conversions.
type ProcessingOptions struct {
	// MaxResponseTime is a soft per-call deadline. Zero means the engine
	// default applies.
	MaxResponseTime time.Duration

	// EnableEscalation, when false, suppresses escalationRequired in the
	// response while the escalation policy still runs (UI preview mode).
	EnableEscalation bool

	// Language overrides auto-detection when non-empty.
	Language Language

	// CustomIntents is reserved for future pattern-set extension. Empty
	// slices are a no-op.
	CustomIntents []string
}

// DefaultProcessingOptions returns the options used when the caller passes
// none.
func DefaultProcessingOptions() ProcessingOptions {
	return ProcessingOptions{EnableEscalation: true}
}
