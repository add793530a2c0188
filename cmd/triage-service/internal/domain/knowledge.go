package domain

// FAQEntry is one question with per-locale answers.
type FAQEntry struct {
	Question string              `json:"question" mapstructure:"question"`
	Answers  map[Language]string `json:"answers" mapstructure:"answers"`
}

// ClinicService is one bookable service.
type ClinicService struct {
	Name            string  `json:"name" mapstructure:"name"`
	Category        string  `json:"category" mapstructure:"category"`
	Price           float64 `json:"price" mapstructure:"price"`
	DurationMinutes int     `json:"duration_minutes" mapstructure:"duration_minutes"`
}

// ClinicLocation is one physical clinic branch.
type ClinicLocation struct {
	Name       string `json:"name" mapstructure:"name"`
	Address    string `json:"address" mapstructure:"address"`
	PostalCode string `json:"postal_code" mapstructure:"postal_code"`
}

// OperatingHours describes when the clinic is open.
type OperatingHours struct {
	Weekdays string `json:"weekdays" mapstructure:"weekdays"`
	Saturday string `json:"saturday" mapstructure:"saturday"`
	Sunday   string `json:"sunday" mapstructure:"sunday"`
}

// InsuranceInfo summarizes accepted insurance and payment schemes.
type InsuranceInfo struct {
	AcceptedPlans []string `json:"accepted_plans" mapstructure:"accepted_plans"`
	Notes         string   `json:"notes" mapstructure:"notes"`
}

// KnowledgeBase is the read-only static content collaborator. The engine
// never writes through this interface.
type KnowledgeBase interface {
	ClinicName() string
	EmergencyNumber() string
	GetFAQ() []FAQEntry
	GetServices() []ClinicService
	GetLocations() []ClinicLocation
	GetOperatingHours() OperatingHours
	GetInsuranceInfo() InsuranceInfo
}
