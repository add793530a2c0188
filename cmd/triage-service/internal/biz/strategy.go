package biz

import (
	"fmt"
	"strings"
	"time"

	"clinictriage/cmd/triage-service/internal/domain"
)

// SelectStrategy maps an intent result to its response strategy. Pure and
// total: anything outside the known intents gets the general strategy.
func SelectStrategy(intent domain.IntentResult) domain.ResponseStrategy {
	switch intent.Intent {
	case domain.IntentEmergency:
		return domain.ResponseStrategy{Type: domain.StrategyEmergency, Priority: domain.PriorityCritical}
	case domain.IntentAppointment:
		return domain.ResponseStrategy{Type: domain.StrategyBooking, Priority: domain.PriorityHigh}
	case domain.IntentInformation:
		return domain.ResponseStrategy{Type: domain.StrategyInformation, Priority: domain.PriorityNormal}
	case domain.IntentComplaint:
		return domain.ResponseStrategy{Type: domain.StrategyComplaint, Priority: domain.PriorityHigh}
	case domain.IntentGreeting:
		return domain.ResponseStrategy{Type: domain.StrategyGreeting, Priority: domain.PriorityLow}
	default:
		return domain.ResponseStrategy{Type: domain.StrategyGeneral, Priority: domain.PriorityNormal}
	}
}

// ResponseGenerator renders the final structured reply for a selected
// strategy, pulling display content from the static knowledge base.
type ResponseGenerator struct {
	knowledge domain.KnowledgeBase

	// now is injectable for the time-of-day greeting.
	now func() time.Time
}

func NewResponseGenerator(knowledge domain.KnowledgeBase) *ResponseGenerator {
	return &ResponseGenerator{knowledge: knowledge, now: time.Now}
}

// Generate dispatches on the strategy type. Every branch is total; an
// unrecognized type renders the general reply rather than erroring.
func (g *ResponseGenerator) Generate(strategy domain.ResponseStrategy, analysis domain.AnalysisResult, session *domain.SessionContext) *domain.TriageResponse {
	switch strategy.Type {
	case domain.StrategyEmergency:
		return g.emergencyResponse()
	case domain.StrategyBooking:
		return g.bookingResponse(analysis.Entities)
	case domain.StrategyInformation:
		return g.informationResponse(analysis.Entities)
	case domain.StrategyComplaint:
		return g.complaintResponse()
	case domain.StrategyGreeting:
		return g.greetingResponse()
	default:
		return g.generalResponse()
	}
}

func (g *ResponseGenerator) emergencyResponse() *domain.TriageResponse {
	return &domain.TriageResponse{
		Content: fmt.Sprintf(
			"This sounds like a medical emergency. Please call %s immediately or go to the nearest A&E department. A member of our team has been alerted and will follow up with you.",
			g.knowledge.EmergencyNumber(),
		),
		Type:               domain.ResponseEmergency,
		Confidence:         0.95,
		EscalationRequired: true,
		Actions: []domain.Action{
			{Type: domain.ActionEscalate, Data: map[string]any{"reason": domain.ReasonEmergency}},
			{Type: domain.ActionProvideEmergencyContacts},
		},
	}
}

func (g *ResponseGenerator) bookingResponse(entities *domain.EntityBag) *domain.TriageResponse {
	switch {
	case entities.HasDoctor() && entities.HasService():
		doctor := entities.Doctors[0].Name
		service := entities.Services[0].Name
		return &domain.TriageResponse{
			Content: fmt.Sprintf(
				"I can help you book a %s with Dr %s. Let me check the available slots for you.",
				strings.ToLower(service), doctor,
			),
			Type:       domain.ResponseBooking,
			Confidence: 0.9,
			Actions: []domain.Action{
				{Type: domain.ActionCheckAvailability, Data: map[string]any{
					"doctor_name":    doctor,
					"service_name":   service,
					"preferred_date": entities.FirstDate(),
					"preferred_time": entities.FirstTime(),
				}},
			},
		}

	case entities.HasService():
		service := entities.Services[0].Name
		return &domain.TriageResponse{
			Content: fmt.Sprintf(
				"We offer %s at our clinic. Here are the doctors available for this service.",
				strings.ToLower(service),
			),
			Type:       domain.ResponseBooking,
			Confidence: 0.8,
			Actions: []domain.Action{
				{Type: domain.ActionShowDoctors, Data: map[string]any{"service_name": service}},
			},
		}

	default:
		return &domain.TriageResponse{
			Content:    "I'd be happy to help you book an appointment. Which of our services would you like to book?",
			Type:       domain.ResponseBooking,
			Confidence: 0.7,
			Actions:    []domain.Action{{Type: domain.ActionShowServices}},
		}
	}
}

func (g *ResponseGenerator) informationResponse(entities *domain.EntityBag) *domain.TriageResponse {
	if len(entities.Locations) > 0 {
		hours := g.knowledge.GetOperatingHours()
		names := make([]string, 0, len(g.knowledge.GetLocations()))
		for _, loc := range g.knowledge.GetLocations() {
			names = append(names, loc.Name)
		}
		return &domain.TriageResponse{
			Content: fmt.Sprintf(
				"Our clinics are at %s. We are open weekdays %s, Saturdays %s and Sundays %s.",
				strings.Join(names, ", "), hours.Weekdays, hours.Saturday, hours.Sunday,
			),
			Type:       domain.ResponseInformation,
			Confidence: 0.9,
			Actions:    []domain.Action{{Type: domain.ActionShowLocations}},
		}
	}

	insurance := g.knowledge.GetInsuranceInfo()
	return &domain.TriageResponse{
		Content: fmt.Sprintf(
			"Consultation fees start from $%.0f. We accept %s. %s",
			g.lowestConsultationFee(), strings.Join(insurance.AcceptedPlans, ", "), insurance.Notes,
		),
		Type:       domain.ResponseInformation,
		Confidence: 0.8,
		Actions:    []domain.Action{{Type: domain.ActionShowDetailedPricing}},
	}
}

func (g *ResponseGenerator) lowestConsultationFee() float64 {
	lowest := 0.0
	for _, svc := range g.knowledge.GetServices() {
		if lowest == 0 || svc.Price < lowest {
			lowest = svc.Price
		}
	}
	return lowest
}

func (g *ResponseGenerator) complaintResponse() *domain.TriageResponse {
	return &domain.TriageResponse{
		Content:            "I'm very sorry to hear about your experience. Your feedback matters to us and I've escalated this to our team. A member of staff will reach out to you shortly.",
		Type:               domain.ResponseComplaint,
		Confidence:         0.8,
		EscalationRequired: true,
		Actions: []domain.Action{
			{Type: domain.ActionEscalate, Data: map[string]any{"reason": domain.ReasonComplaint}},
		},
	}
}

func (g *ResponseGenerator) greetingResponse() *domain.TriageResponse {
	return &domain.TriageResponse{
		Content: fmt.Sprintf(
			"%s! Welcome to %s. How can I help you today?",
			salutation(g.now().Hour()), g.knowledge.ClinicName(),
		),
		Type:       domain.ResponseGreeting,
		Confidence: 0.9,
		Actions:    []domain.Action{{Type: domain.ActionShowMenu}},
	}
}

// salutation thresholds are local hours 12 and 18.
func salutation(hour int) string {
	switch {
	case hour < 12:
		return "Good morning"
	case hour < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

func (g *ResponseGenerator) generalResponse() *domain.TriageResponse {
	return &domain.TriageResponse{
		Content:    "I can help you with appointments, clinic information, pricing and general enquiries. What would you like to do?",
		Type:       domain.ResponseGeneral,
		Confidence: 0.6,
		Actions:    []domain.Action{{Type: domain.ActionShowOptions}},
	}
}
