package biz

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clinictriage/cmd/triage-service/internal/domain"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(stubKnowledge{}, DefaultEngineConfig(), zap.NewNop())
	t.Cleanup(e.Close)
	return e
}

func TestEngine_EmergencyScenario(t *testing.T) {
	e := newTestEngine(t)

	resp := e.Triage(context.Background(), "I have chest pain and can't breathe", nil, domain.DefaultProcessingOptions())

	assert.Equal(t, domain.ResponseEmergency, resp.Type)
	assert.True(t, resp.EscalationRequired)
	assert.Contains(t, resp.Content, "995")

	assert.Equal(t, string(domain.IntentEmergency), resp.Metadata["intent"])
	assert.Equal(t, true, resp.Metadata["escalationTriggered"])
	assert.Equal(t, domain.ReasonEmergencyMedical, resp.Metadata["escalationReason"])
	assert.Equal(t, string(domain.EscalationEmergency), resp.Metadata["escalationLevel"])
}

func TestEngine_BookingScenario(t *testing.T) {
	e := newTestEngine(t)

	resp := e.Triage(context.Background(), "Can I book an appointment with Dr Lim for a consultation tomorrow?", nil, domain.DefaultProcessingOptions())

	assert.Equal(t, domain.ResponseBooking, resp.Type)
	assert.InDelta(t, 0.9, resp.Confidence, 1e-9)
	assert.False(t, resp.EscalationRequired)

	require.Len(t, resp.Actions, 1)
	assert.Equal(t, domain.ActionCheckAvailability, resp.Actions[0].Type)
	assert.Equal(t, "Lim", resp.Actions[0].Data["doctor_name"])
	assert.Equal(t, "consultation", resp.Actions[0].Data["service_name"])
	assert.Equal(t, "tomorrow", resp.Actions[0].Data["preferred_date"])
}

func TestEngine_GreetingScenario(t *testing.T) {
	e := newTestEngine(t)
	e.generator.now = func() time.Time {
		return time.Date(2026, 8, 24, 9, 0, 0, 0, time.Local)
	}

	resp := e.Triage(context.Background(), "Hello", nil, domain.DefaultProcessingOptions())

	assert.Equal(t, domain.ResponseGreeting, resp.Type)
	assert.False(t, resp.EscalationRequired)
	assert.Contains(t, resp.Content, "Good morning! Welcome to My Family Clinic.")
	assert.Equal(t, string(domain.IntentGreeting), resp.Metadata["intent"])
}

func TestEngine_ComplaintScenario(t *testing.T) {
	e := newTestEngine(t)

	resp := e.Triage(context.Background(), "This is terrible, I am so frustrated with your service", nil, domain.DefaultProcessingOptions())

	assert.Equal(t, domain.ResponseComplaint, resp.Type)
	assert.True(t, resp.EscalationRequired)
	assert.Equal(t, string(domain.SentimentNegative), resp.Metadata["sentiment"])

	require.Len(t, resp.Actions, 1)
	assert.Equal(t, domain.ActionEscalate, resp.Actions[0].Type)
	assert.Equal(t, domain.ReasonComplaint, resp.Actions[0].Data["reason"])
}

// A neutral message escalates anyway once the session has accumulated
// enough failed attempts.
func TestEngine_FailedAttemptsScenario(t *testing.T) {
	e := newTestEngine(t)

	session := &domain.SessionContext{ClinicID: "clinic-1", FailedAttempts: 2}
	resp := e.Triage(context.Background(), "okay then", session, domain.DefaultProcessingOptions())

	assert.True(t, resp.EscalationRequired)
	assert.Equal(t, domain.ReasonMultipleFailedAttempts, resp.Metadata["escalationReason"])
	assert.Equal(t, string(domain.EscalationL1Agent), resp.Metadata["escalationLevel"])
}

func TestEngine_MetadataIsComplete(t *testing.T) {
	e := newTestEngine(t)

	resp := e.Triage(context.Background(), "what are your opening hours?", nil, domain.DefaultProcessingOptions())

	for _, key := range []string{
		"intent", "confidence", "sentiment", "entities", "medicalContext",
		"processingTimeMs", "escalationTriggered", "responseType", "language",
	} {
		assert.Contains(t, resp.Metadata, key)
	}
}

type panickingSentiment struct{}

func (panickingSentiment) Analyze(string) domain.SentimentCategory {
	panic("sentiment analyzer exploded")
}

type panickingExtractor struct{}

func (panickingExtractor) Extract(string, string) *domain.EntityBag {
	panic("entity extractor exploded")
}

// A fault in any single analyzer yields the well-formed fallback response
// instead of a raised error.
func TestEngine_FallbackOnAnalyzerFault(t *testing.T) {
	t.Run("sentiment fault", func(t *testing.T) {
		e := newTestEngine(t)
		e.sentiment = panickingSentiment{}

		resp := e.Triage(context.Background(), "Hello", nil, domain.DefaultProcessingOptions())

		assert.Equal(t, domain.ResponseFallback, resp.Type)
		assert.InDelta(t, 0.3, resp.Confidence, 1e-9)
		assert.True(t, resp.EscalationRequired)
		require.Len(t, resp.Actions, 1)
		assert.Equal(t, domain.ActionEscalate, resp.Actions[0].Type)
		assert.Equal(t, domain.ReasonProcessingError, resp.Actions[0].Data["reason"])
		assert.Contains(t, resp.Metadata, "processingTimeMs")
	})

	t.Run("extractor fault", func(t *testing.T) {
		e := newTestEngine(t)
		e.extractor = panickingExtractor{}

		resp := e.Triage(context.Background(), "book an appointment", nil, domain.DefaultProcessingOptions())
		assert.Equal(t, domain.ResponseFallback, resp.Type)
	})
}

type laggingExtractor struct {
	delay time.Duration
}

func (x laggingExtractor) Extract(string, string) *domain.EntityBag {
	time.Sleep(x.delay)
	return domain.NewEntityBag()
}

// One analyzer faulting while a sibling is still mid-flight must wait for
// the sibling to finish before the result struct is touched. Run with
// -race; the fallback must come back clean.
func TestEngine_FaultWithLaggingSibling(t *testing.T) {
	e := newTestEngine(t)
	e.sentiment = panickingSentiment{}
	e.extractor = laggingExtractor{delay: 50 * time.Millisecond}

	resp := e.Triage(context.Background(), "Hello", nil, domain.DefaultProcessingOptions())

	assert.Equal(t, domain.ResponseFallback, resp.Type)
	assert.True(t, resp.EscalationRequired)
}

type slowMedical struct{}

func (slowMedical) AnalyzeContext(string) domain.MedicalContext {
	time.Sleep(200 * time.Millisecond)
	return domain.MedicalContext{}
}

// Overrunning the per-call deadline returns the fallback rather than
// hanging the chat loop.
func TestEngine_DeadlineYieldsFallback(t *testing.T) {
	e := newTestEngine(t)
	e.medical = slowMedical{}

	opts := domain.DefaultProcessingOptions()
	opts.MaxResponseTime = 20 * time.Millisecond

	start := time.Now()
	resp := e.Triage(context.Background(), "Hello", nil, opts)

	assert.Equal(t, domain.ResponseFallback, resp.Type)
	assert.Less(t, time.Since(start), 150*time.Millisecond)
}

// Preview mode keeps the verdict in metadata but never demands a human.
func TestEngine_EscalationSuppressed(t *testing.T) {
	e := newTestEngine(t)

	opts := domain.DefaultProcessingOptions()
	opts.EnableEscalation = false

	resp := e.Triage(context.Background(), "I have chest pain and can't breathe", nil, opts)

	assert.False(t, resp.EscalationRequired)
	assert.Equal(t, true, resp.Metadata["escalationTriggered"])
	assert.Equal(t, domain.ReasonEmergencyMedical, resp.Metadata["escalationReason"])
}

func TestEngine_LanguageOverride(t *testing.T) {
	e := newTestEngine(t)

	opts := domain.DefaultProcessingOptions()
	opts.Language = domain.LanguageChinese

	resp := e.Triage(context.Background(), "Hello", nil, opts)
	assert.Equal(t, string(domain.LanguageChinese), resp.Metadata["language"])
}

// Repeated identical calls are stable: the intent cache must not change
// the outcome.
func TestEngine_RepeatCallsStable(t *testing.T) {
	e := newTestEngine(t)

	first := e.Triage(context.Background(), "how much does a consultation cost?", nil, domain.DefaultProcessingOptions())
	second := e.Triage(context.Background(), "how much does a consultation cost?", nil, domain.DefaultProcessingOptions())

	assert.Equal(t, first.Type, second.Type)
	assert.Equal(t, first.Content, second.Content)
	assert.Equal(t, first.Metadata["intent"], second.Metadata["intent"])
	assert.Equal(t, first.Metadata["confidence"], second.Metadata["confidence"])
}
