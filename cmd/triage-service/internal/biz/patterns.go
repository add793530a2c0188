package biz

import (
	"regexp"
	"sync"

	"clinictriage/cmd/triage-service/internal/domain"
)

// intentRule is one intent category with its ordered pattern list. The
// first pattern that matches decides the category.
type intentRule struct {
	Category domain.IntentCategory
	Patterns []*regexp.Regexp
}

// entityRule is one entity category with its ordered pattern list. Every
// pattern runs; captures are collected per the category's merge mode.
type entityRule struct {
	Name     string
	Patterns []*regexp.Regexp
}

// PatternLibrary is the immutable matcher collection shared by all triage
// calls. It is compiled once per process and never mutated afterwards.
type PatternLibrary struct {
	// Intent rules in fixed declaration order. The evaluation order is a
	// compatibility contract: Greeting and Appointment are checked before
	// Emergency, so a message matching both short-circuits to the earlier
	// category. Do not reorder without a product decision.
	IntentRules []intentRule

	DoctorPatterns     []*regexp.Regexp
	ServicePatterns    []*regexp.Regexp
	DatePatterns       []*regexp.Regexp
	TimePatterns       []*regexp.Regexp
	SymptomPatterns    []*regexp.Regexp
	LocationPatterns   []*regexp.Regexp
	MedicationPatterns []*regexp.Regexp

	PositiveWords []string
	NegativeWords []string
	UrgentWords   []string

	MedicalKeywords []string

	// Escalation keyword sets, matched against the raw lowercased message.
	EmergencyKeywords []string
	UrgencyKeywords   []string

	// Language marker words for detection, checked in declaration order.
	LanguageMarkers map[domain.Language][]string
}

var (
	libraryOnce sync.Once
	library     *PatternLibrary
)

// DefaultPatternLibrary compiles the built-in pattern set exactly once per
// process and returns the shared instance.
func DefaultPatternLibrary() *PatternLibrary {
	libraryOnce.Do(func() {
		library = newPatternLibrary()
	})
	return library
}

func newPatternLibrary() *PatternLibrary {
	return &PatternLibrary{
		IntentRules: []intentRule{
			{
				Category: domain.IntentGreeting,
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)^(hello|hi|hey|good\s+(morning|afternoon|evening))[\s!.,]*$`),
					regexp.MustCompile(`(?i)^(hello|hi|hey)\b`),
					regexp.MustCompile(`(?i)\b(how are you|greetings)\b`),
					regexp.MustCompile(`你好|您好|早上好`),
					regexp.MustCompile(`(?i)\bselamat\s+(pagi|petang|malam)\b`),
				},
			},
			{
				Category: domain.IntentAppointment,
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)\b(book|schedule|arrange|make)\b.{0,40}\b(appointment|consultation|visit|slot|checkup|check-up)\b`),
					regexp.MustCompile(`(?i)\b(appointment|reschedule|cancel my booking)\b`),
					regexp.MustCompile(`(?i)\b(see|meet|consult)\s+(a\s+|the\s+)?(doctor|dr)\b`),
					regexp.MustCompile(`(?i)\b(available slots?|any slots?)\b`),
					regexp.MustCompile(`预约|挂号`),
				},
			},
			{
				Category: domain.IntentEmergency,
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)\b(chest pains?|heart attack|stroke|seizure|choking|overdose)\b`),
					regexp.MustCompile(`(?i)\b(can'?t|cannot|difficulty|unable to)\s+breathe?(ing)?\b`),
					regexp.MustCompile(`(?i)\b(severe (bleeding|pain)|bleeding (heavily|a lot)|unconscious|collapsed?)\b`),
					regexp.MustCompile(`(?i)\bemergency\b`),
				},
			},
			{
				Category: domain.IntentInformation,
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)\b(opening|operating|closing)\s+(hours?|times?)\b`),
					regexp.MustCompile(`(?i)\b(what time.{0,20}(open|close)|are you open)\b`),
					regexp.MustCompile(`(?i)\b(price|pricing|cost|fees?|charges?|how much)\b`),
					regexp.MustCompile(`(?i)\b(where (is|are)|location|address|directions)\b`),
					regexp.MustCompile(`(?i)\b(insurance|medisave|chas|payment methods?)\b`),
				},
			},
			{
				Category: domain.IntentComplaint,
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)\b(complain(t|ts|ing)?|terrible|horrible|awful|unacceptable|worst)\b`),
					regexp.MustCompile(`(?i)\b(frustrated|disappointed|angry|upset|fed up)\b`),
					regexp.MustCompile(`(?i)\b(rude|unprofessional|waited (too|so) long)\b`),
				},
			},
		},

		DoctorPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bdr\.?\s+([A-Za-z]+)`),
			regexp.MustCompile(`(?i)\bdoctor\s+([A-Za-z]+)`),
		},
		ServicePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(consultation|health screening|vaccination|blood test|x-ray|ultrasound|physiotherapy|dental cleaning)\b`),
			regexp.MustCompile(`(?i)\b(checkup|check-up|follow-up)\b`),
		},
		DatePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(today|tomorrow|day after tomorrow)\b`),
			regexp.MustCompile(`(?i)\b(next\s+(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday|week|month))\b`),
			regexp.MustCompile(`\b(\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?)\b`),
			regexp.MustCompile(`(?i)\b(\d{1,2}(?:st|nd|rd|th)?\s+(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*)\b`),
		},
		TimePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(\d{1,2}(?::\d{2})?\s*(?:am|pm))\b`),
			regexp.MustCompile(`\b(\d{1,2}:\d{2})\b`),
			regexp.MustCompile(`(?i)\b(morning|afternoon|evening|noon|lunchtime)\b`),
		},
		SymptomPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(fever|cough|headache|migraine|rash|sore throat|runny nose|flu|cold)\b`),
			regexp.MustCompile(`(?i)\b(pain|dizziness|dizzy|nausea|vomiting|diarrhoea|diarrhea|fatigue)\b`),
		},
		LocationPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(tampines|jurong|woodlands|bedok|clementi|orchard|punggol|yishun)\b`),
			regexp.MustCompile(`(?i)\b(location|address|branch|outlet|nearest clinic)\b`),
		},
		MedicationPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(paracetamol|panadol|ibuprofen|aspirin|antibiotics?|antihistamine|insulin)\b`),
		},

		// Sentiment lexicons are matched by substring containment, not
		// tokenized equality. A word embedded in a longer word still
		// counts; the worked scenarios depend on this.
		PositiveWords: []string{
			"good", "great", "excellent", "wonderful", "helpful",
			"thank", "appreciate", "happy", "pleased", "bagus", "terima kasih",
		},
		NegativeWords: []string{
			"bad", "terrible", "horrible", "awful", "frustrated",
			"angry", "disappointed", "upset", "worst", "annoyed", "unhappy",
		},
		UrgentWords: []string{
			"urgent", "emergency", "immediately", "asap", "right now",
			"cannot wait", "can't wait",
		},

		MedicalKeywords: []string{
			"pain", "fever", "symptom", "medicine", "medication",
			"treatment", "diagnosis", "prescription", "allergy", "infection",
			"injury", "blood", "heart", "chest", "skin",
			"headache", "cough", "flu", "breathe", "dizzy",
			"emergency", "urgent", "check up", "screening", "dermatology",
		},

		EmergencyKeywords: []string{
			"chest pain", "severe bleeding", "can't breathe", "cannot breathe",
			"difficulty breathing", "heart attack", "stroke", "unconscious",
			"seizure", "choking", "overdose", "suicidal",
		},
		UrgencyKeywords: []string{
			"urgent", "asap", "immediately", "right now", "getting worse",
		},

		LanguageMarkers: map[domain.Language][]string{
			domain.LanguageChinese: {"你好", "您好", "预约", "医生", "请问"},
			domain.LanguageMalay:   {"selamat", "saya", "boleh", "doktor", "terima"},
			domain.LanguageTamil:   {"வணக்கம்", "மருத்துவர்", "நான்"},
		},
	}
}
