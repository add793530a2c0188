package domain

// StrategyType is the closed set of response strategies.
type StrategyType string

const (
	StrategyEmergency   StrategyType = "emergency"
	StrategyBooking     StrategyType = "booking"
	StrategyInformation StrategyType = "information"
	StrategyComplaint   StrategyType = "complaint"
	StrategyGreeting    StrategyType = "greeting"
	StrategyGeneral     StrategyType = "general"
)

// StrategyPriority ranks how quickly a strategy's reply should move through
// downstream queues.
type StrategyPriority string

const (
	PriorityLow      StrategyPriority = "low"
	PriorityNormal   StrategyPriority = "normal"
	PriorityHigh     StrategyPriority = "high"
	PriorityCritical StrategyPriority = "critical"
)

// ResponseStrategy pairs a strategy with its priority. It is a pure
// function of the intent result and carries no state.
type ResponseStrategy struct {
	Type     StrategyType     `json:"type"`
	Priority StrategyPriority `json:"priority"`
}

// ResponseType mirrors the strategy set in the outward-facing response,
// plus the fallback type used when the pipeline faults.
type ResponseType string

const (
	ResponseEmergency   ResponseType = "emergency"
	ResponseBooking     ResponseType = "booking"
	ResponseInformation ResponseType = "information"
	ResponseComplaint   ResponseType = "complaint"
	ResponseGreeting    ResponseType = "greeting"
	ResponseGeneral     ResponseType = "general"
	ResponseFallback    ResponseType = "fallback"
)

// Action types the engine can surface to callers. Callers dispatch on the
// type and must ignore unknown values.
const (
	ActionEscalate                 = "escalate"
	ActionCheckAvailability        = "check_availability"
	ActionShowDoctors              = "show_doctors"
	ActionShowServices             = "show_services"
	ActionShowLocations            = "show_locations"
	ActionShowDetailedPricing      = "show_detailed_pricing"
	ActionProvideEmergencyContacts = "provide_emergency_contacts"
	ActionShowMenu                 = "show_menu"
	ActionShowOptions              = "show_options"
)

// Action is one caller-dispatched instruction attached to a response.
type Action struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

// TriageResponse is the only externally observed artifact of a triage call.
// Every intermediate type is transient and owned by the call that made it.
type TriageResponse struct {
	Content            string         `json:"content"`
	Type               ResponseType   `json:"type"`
	Confidence         float64        `json:"confidence"`
	EscalationRequired bool           `json:"escalation_required"`
	Actions            []Action       `json:"actions"`
	Metadata           map[string]any `json:"metadata"`
}
