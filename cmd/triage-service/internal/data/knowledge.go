package data

import (
	"clinictriage/cmd/triage-service/internal/domain"
)

// KnowledgeConfig is the static clinic content loaded from configuration
// at startup. It is read-only reference data for the response generator.
type KnowledgeConfig struct {
	ClinicName      string                  `mapstructure:"clinic_name"`
	EmergencyNumber string                  `mapstructure:"emergency_number"`
	FAQ             []domain.FAQEntry       `mapstructure:"faq"`
	Services        []domain.ClinicService  `mapstructure:"services"`
	Locations       []domain.ClinicLocation `mapstructure:"locations"`
	OperatingHours  domain.OperatingHours   `mapstructure:"operating_hours"`
	Insurance       domain.InsuranceInfo    `mapstructure:"insurance"`
}

// StaticKnowledgeBase serves config-loaded clinic content. Loaded once per
// process and never mutated, so it is safe for concurrent reads.
type StaticKnowledgeBase struct {
	cfg KnowledgeConfig
}

// NewStaticKnowledgeBase builds the knowledge base, filling the fields the
// generator cannot do without.
func NewStaticKnowledgeBase(cfg KnowledgeConfig) *StaticKnowledgeBase {
	if cfg.ClinicName == "" {
		cfg.ClinicName = "My Family Clinic"
	}
	if cfg.EmergencyNumber == "" {
		cfg.EmergencyNumber = "995"
	}
	if cfg.OperatingHours.Weekdays == "" {
		cfg.OperatingHours = domain.OperatingHours{
			Weekdays: "8am-9pm",
			Saturday: "8am-5pm",
			Sunday:   "9am-1pm",
		}
	}
	return &StaticKnowledgeBase{cfg: cfg}
}

func (k *StaticKnowledgeBase) ClinicName() string      { return k.cfg.ClinicName }
func (k *StaticKnowledgeBase) EmergencyNumber() string { return k.cfg.EmergencyNumber }

func (k *StaticKnowledgeBase) GetFAQ() []domain.FAQEntry { return k.cfg.FAQ }

func (k *StaticKnowledgeBase) GetServices() []domain.ClinicService { return k.cfg.Services }

func (k *StaticKnowledgeBase) GetLocations() []domain.ClinicLocation { return k.cfg.Locations }

func (k *StaticKnowledgeBase) GetOperatingHours() domain.OperatingHours {
	return k.cfg.OperatingHours
}

func (k *StaticKnowledgeBase) GetInsuranceInfo() domain.InsuranceInfo { return k.cfg.Insurance }
