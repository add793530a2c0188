package data

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clinictriage/cmd/triage-service/internal/domain"
)

func TestStaticKnowledgeBase_Defaults(t *testing.T) {
	kb := NewStaticKnowledgeBase(KnowledgeConfig{})

	assert.Equal(t, "My Family Clinic", kb.ClinicName())
	assert.Equal(t, "995", kb.EmergencyNumber())
	assert.Equal(t, "8am-9pm", kb.GetOperatingHours().Weekdays)
	assert.Equal(t, "9am-1pm", kb.GetOperatingHours().Sunday)
	assert.Empty(t, kb.GetServices())
	assert.Empty(t, kb.GetFAQ())
}

func TestStaticKnowledgeBase_ConfigWins(t *testing.T) {
	kb := NewStaticKnowledgeBase(KnowledgeConfig{
		ClinicName:      "Sunrise Medical",
		EmergencyNumber: "999",
		OperatingHours:  domain.OperatingHours{Weekdays: "9am-6pm", Saturday: "9am-1pm", Sunday: "closed"},
		Services: []domain.ClinicService{
			{Name: "Consultation", Price: 40},
		},
		Insurance: domain.InsuranceInfo{AcceptedPlans: []string{"CHAS"}},
	})

	assert.Equal(t, "Sunrise Medical", kb.ClinicName())
	assert.Equal(t, "999", kb.EmergencyNumber())
	assert.Equal(t, "9am-6pm", kb.GetOperatingHours().Weekdays)
	assert.Len(t, kb.GetServices(), 1)
	assert.Equal(t, []string{"CHAS"}, kb.GetInsuranceInfo().AcceptedPlans)
}
