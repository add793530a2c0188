package biz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"clinictriage/cmd/triage-service/internal/domain"
)

func newTestClassifier() *IntentClassifier {
	return NewIntentClassifier(DefaultPatternLibrary(), zap.NewNop())
}

func TestIntentClassifier_Categories(t *testing.T) {
	classifier := newTestClassifier()

	testCases := []struct {
		name    string
		message string
		want    domain.IntentCategory
	}{
		{name: "plain greeting", message: "Hello", want: domain.IntentGreeting},
		{name: "greeting with time of day", message: "good morning", want: domain.IntentGreeting},
		{name: "booking request", message: "Can I book an appointment with Dr Lim for a consultation tomorrow?", want: domain.IntentAppointment},
		{name: "see a doctor", message: "I want to see a doctor today", want: domain.IntentAppointment},
		{name: "chest pain", message: "I have chest pain and can't breathe", want: domain.IntentEmergency},
		{name: "severe bleeding", message: "my father has severe bleeding from a cut", want: domain.IntentEmergency},
		{name: "opening hours", message: "what are your opening hours?", want: domain.IntentInformation},
		{name: "pricing", message: "how much does a health screening cost?", want: domain.IntentInformation},
		{name: "complaint", message: "This is terrible, I am so frustrated with your service", want: domain.IntentComplaint},
		{name: "gibberish", message: "qwerty zxcvb", want: domain.IntentUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := classifier.Classify(tc.message, domain.LanguageEnglish)
			assert.Equal(t, tc.want, result.Intent)
			assert.Equal(t, tc.message, result.OriginalText)
		})
	}
}

func TestIntentClassifier_ConfidenceBounds(t *testing.T) {
	classifier := newTestClassifier()

	messages := []string{
		"Hello",
		"book an appointment please",
		"I have chest pain",
		"how much is a consultation",
		"terrible service",
		"random words with no intent",
		"",
	}

	for _, message := range messages {
		result := classifier.Classify(message, domain.LanguageEnglish)
		assert.GreaterOrEqual(t, result.Confidence, 0.1, "message %q", message)
		assert.LessOrEqual(t, result.Confidence, 1.0, "message %q", message)
	}
}

func TestIntentClassifier_UnknownConfidenceFixed(t *testing.T) {
	classifier := newTestClassifier()

	for _, message := range []string{"", "zzz", "lorem ipsum dolor"} {
		result := classifier.Classify(message, domain.LanguageEnglish)
		assert.Equal(t, domain.IntentUnknown, result.Intent)
		assert.Equal(t, domain.ConfidenceUnknown, result.Confidence)
	}
}

func TestIntentClassifier_ConfidenceHeuristics(t *testing.T) {
	classifier := newTestClassifier()

	t.Run("full span match scores 1.0", func(t *testing.T) {
		result := classifier.Classify("Hello", domain.LanguageEnglish)
		assert.InDelta(t, 1.0, result.Confidence, 1e-9)
	})

	t.Run("leading match gains position bonus", func(t *testing.T) {
		result := classifier.Classify("Can I book an appointment with Dr Lim for a consultation tomorrow?", domain.LanguageEnglish)
		assert.InDelta(t, 0.9, result.Confidence, 1e-9)
	})

	t.Run("late match keeps base confidence", func(t *testing.T) {
		result := classifier.Classify("I was wondering whether it would be possible for me to get an appointment", domain.LanguageEnglish)
		assert.Equal(t, domain.IntentAppointment, result.Intent)
		assert.InDelta(t, 0.7, result.Confidence, 1e-9)
	})
}

// The category evaluation order is a compatibility contract: a message
// matching both a greeting pattern and emergency wording resolves to the
// earlier-declared greeting category.
func TestIntentClassifier_DeclarationOrderWins(t *testing.T) {
	classifier := newTestClassifier()

	result := classifier.Classify("Hello, I have chest pain", domain.LanguageEnglish)
	assert.Equal(t, domain.IntentGreeting, result.Intent)
}
