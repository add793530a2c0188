package biz

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"clinictriage/cmd/triage-service/internal/domain"
)

// Analyzer interfaces let tests substitute faulting implementations to
// exercise the fallback contract.
type intentClassifier interface {
	Classify(text string, lang domain.Language) domain.IntentResult
}

type entityExtractor interface {
	Extract(text, clinicID string) *domain.EntityBag
}

type sentimentAnalyzer interface {
	Analyze(text string) domain.SentimentCategory
}

type medicalAnalyzer interface {
	AnalyzeContext(text string) domain.MedicalContext
}

// EngineConfig tunes one engine instance.
type EngineConfig struct {
	// MaxResponseTime is the per-call deadline applied when the caller
	// passes none.
	MaxResponseTime time.Duration

	CacheEnabled bool
	CacheTTL     time.Duration
	CacheSize    int
}

// DefaultEngineConfig returns the production defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MaxResponseTime: 2 * time.Second,
		CacheEnabled:    true,
		CacheTTL:        10 * time.Minute,
		CacheSize:       1024,
	}
}

// Engine is the triage entry point. It owns no per-request state: the
// pattern library and knowledge base are immutable after construction, so
// any number of conversations can run through one engine concurrently.
type Engine struct {
	pre        *Preprocessor
	classifier intentClassifier
	extractor  entityExtractor
	sentiment  sentimentAnalyzer
	medical    medicalAnalyzer
	policy     *EscalationPolicy
	generator  *ResponseGenerator
	cache      *IntentCache
	config     EngineConfig
	logger     *zap.Logger
}

// NewEngine wires the default pipeline over the shared pattern library.
func NewEngine(knowledge domain.KnowledgeBase, config EngineConfig, logger *zap.Logger) *Engine {
	lib := DefaultPatternLibrary()

	e := &Engine{
		pre:        NewPreprocessor(lib),
		classifier: NewIntentClassifier(lib, logger),
		extractor:  NewEntityExtractor(lib),
		sentiment:  NewSentimentAnalyzer(lib),
		medical:    NewMedicalAnalyzer(lib),
		policy:     NewEscalationPolicy(lib, logger),
		generator:  NewResponseGenerator(knowledge),
		config:     config,
		logger:     logger,
	}
	if config.CacheEnabled {
		e.cache = NewIntentCache(config.CacheSize, config.CacheTTL)
	}
	return e
}

// Close stops the engine's background work. Safe to call more than once.
func (e *Engine) Close() {
	if e.cache != nil {
		e.cache.Close()
	}
}

// Triage runs the full decision pipeline for one message. It never returns
// an error: any pipeline fault, panic or deadline overrun is converted
// into the fixed fallback response so the chat loop always has something
// coherent to show the user.
func (e *Engine) Triage(ctx context.Context, rawMessage string, session *domain.SessionContext, opts domain.ProcessingOptions) *domain.TriageResponse {
	start := time.Now()

	deadline := opts.MaxResponseTime
	if deadline <= 0 {
		deadline = e.config.MaxResponseTime
	}
	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	resp, err := e.process(ctx, rawMessage, session, opts)
	if err != nil {
		e.logger.Error("triage pipeline fault, returning fallback",
			zap.Error(err),
			zap.Duration("elapsed", time.Since(start)),
		)
		FallbacksTotal.Inc()
		resp = FallbackResponse()
	}

	resp.Metadata["processingTimeMs"] = time.Since(start).Milliseconds()

	TriageTotal.WithLabelValues(metaString(resp.Metadata, "intent"), string(resp.Type)).Inc()
	TriageDuration.WithLabelValues(string(resp.Type)).Observe(time.Since(start).Seconds())

	return resp
}

// process runs the pipeline proper. It converts its own panics to errors
// so Triage has a single failure path.
func (e *Engine) process(ctx context.Context, rawMessage string, session *domain.SessionContext, opts domain.ProcessingOptions) (resp *domain.TriageResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp, err = nil, fmt.Errorf("triage panic: %v", r)
		}
	}()

	msg := e.pre.Normalize(rawMessage, e.sessionLanguage(session, opts))

	analysis, err := e.analyze(ctx, msg, session)
	if err != nil {
		return nil, err
	}

	verdict := e.policy.Decide(msg.Text, analysis, session)
	if verdict.ShouldEscalate {
		EscalationsTotal.WithLabelValues(verdict.Reason, string(verdict.Level)).Inc()
	}

	strategy := SelectStrategy(analysis.Intent)
	resp = e.generator.Generate(strategy, analysis, session)
	resp.EscalationRequired = resp.EscalationRequired || verdict.ShouldEscalate
	if !opts.EnableEscalation {
		// Preview mode: the policy still ran and its verdict is kept in
		// the metadata, but the response must not demand a human.
		resp.EscalationRequired = false
	}

	TriageConfidence.Observe(analysis.Intent.Confidence)

	resp.Metadata = map[string]any{
		"intent":              string(analysis.Intent.Intent),
		"confidence":          analysis.Intent.Confidence,
		"sentiment":           string(analysis.Sentiment),
		"entities":            analysis.Entities,
		"medicalContext":      analysis.Medical,
		"escalationTriggered": verdict.ShouldEscalate,
		"escalationReason":    verdict.Reason,
		"escalationLevel":     string(verdict.Level),
		"responseType":        string(resp.Type),
		"language":            string(msg.Language),
	}
	return resp, nil
}

// analyze fans the four independent analyzers out as goroutines over the
// same normalized text and joins them before the escalation step. Each
// goroutine converts its own panic to an error so one faulting analyzer
// cannot take the process down.
func (e *Engine) analyze(ctx context.Context, msg domain.NormalizedMessage, session *domain.SessionContext) (domain.AnalysisResult, error) {
	var analysis domain.AnalysisResult

	clinicID := ""
	if session != nil {
		clinicID = session.ClinicID
	}

	errs := make(chan error, 4)
	run := func(name string, fn func()) {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					errs <- fmt.Errorf("%s analyzer panic: %v", name, r)
					return
				}
				errs <- nil
			}()
			fn()
		}()
	}

	run("intent", func() { analysis.Intent = e.classifyWithCache(msg) })
	run("entity", func() { analysis.Entities = e.extractor.Extract(msg.Text, clinicID) })
	run("sentiment", func() { analysis.Sentiment = e.sentiment.Analyze(msg.Text) })
	run("medical", func() { analysis.Medical = e.medical.AnalyzeContext(msg.Text) })

	// The shared struct may only be read after all four goroutines have
	// reported in, so a fault keeps draining instead of returning early.
	var firstErr error
	for done := 0; done < 4; done++ {
		select {
		case err := <-errs:
			if err != nil && firstErr == nil {
				firstErr = err
			}
		case <-ctx.Done():
			// Lagging goroutines may still be writing into analysis;
			// hand back a zero result so those slots are never read.
			return domain.AnalysisResult{}, fmt.Errorf("triage deadline exceeded: %w", ctx.Err())
		}
	}
	if firstErr != nil {
		return domain.AnalysisResult{}, firstErr
	}
	return analysis, nil
}

// classifyWithCache consults the intent cache when enabled. The cache key
// is the normalized text plus language, both inputs of the pure
// classification function.
func (e *Engine) classifyWithCache(msg domain.NormalizedMessage) domain.IntentResult {
	if e.cache == nil {
		return e.classifier.Classify(msg.Text, msg.Language)
	}

	key := string(msg.Language) + "|" + msg.Text
	if result, ok := e.cache.Get(key); ok {
		return result
	}
	result := e.classifier.Classify(msg.Text, msg.Language)
	e.cache.Set(key, result)
	return result
}

func (e *Engine) sessionLanguage(session *domain.SessionContext, opts domain.ProcessingOptions) domain.Language {
	if opts.Language != "" {
		return opts.Language
	}
	if session != nil && session.Language != "" {
		return session.Language
	}
	return ""
}

// FallbackResponse is the fixed safe reply for any pipeline fault. Triage
// failures are themselves escalations.
func FallbackResponse() *domain.TriageResponse {
	return &domain.TriageResponse{
		Content:            "I'm sorry, I'm having trouble processing your message right now. A member of our team will follow up with you shortly.",
		Type:               domain.ResponseFallback,
		Confidence:         0.3,
		EscalationRequired: true,
		Actions: []domain.Action{
			{Type: domain.ActionEscalate, Data: map[string]any{"reason": domain.ReasonProcessingError}},
		},
		Metadata: map[string]any{
			"responseType":        string(domain.ResponseFallback),
			"escalationTriggered": true,
			"escalationReason":    domain.ReasonProcessingError,
		},
	}
}

func metaString(meta map[string]any, key string) string {
	if v, ok := meta[key].(string); ok {
		return v
	}
	return "unknown"
}
