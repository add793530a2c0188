package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"clinictriage/cmd/triage-service/internal/biz"
	"clinictriage/cmd/triage-service/internal/data"
	"clinictriage/cmd/triage-service/internal/domain"
)

// TriageRequest is the inbound API payload.
type TriageRequest struct {
	Message string                 `json:"message" binding:"required"`
	Context *domain.SessionContext `json:"context,omitempty"`
	Options *TriageOptions         `json:"options,omitempty"`
}

// TriageOptions is the wire form of ProcessingOptions. EnableEscalation is
// a pointer so an absent field defaults to true rather than silently
// suppressing escalations.
type TriageOptions struct {
	MaxResponseTimeMs int64           `json:"max_response_time_ms,omitempty"`
	EnableEscalation  *bool           `json:"enable_escalation,omitempty"`
	Language          domain.Language `json:"language,omitempty"`
	CustomIntents     []string        `json:"custom_intents,omitempty"`
}

func (o *TriageOptions) toDomain() domain.ProcessingOptions {
	opts := domain.DefaultProcessingOptions()
	if o == nil {
		return opts
	}
	if o.MaxResponseTimeMs > 0 {
		opts.MaxResponseTime = time.Duration(o.MaxResponseTimeMs) * time.Millisecond
	}
	if o.EnableEscalation != nil {
		opts.EnableEscalation = *o.EnableEscalation
	}
	opts.Language = o.Language
	opts.CustomIntents = o.CustomIntents
	return opts
}

// TriageService composes the engine with its collaborators: the record
// store and the field encryptor. The engine decides; this layer persists
// and serves.
type TriageService struct {
	engine *biz.Engine
	store  *data.RedisTriageStore
	logger *zap.Logger

	// persistence can be switched off entirely in config.
	persistEnabled bool
}

func NewTriageService(engine *biz.Engine, store *data.RedisTriageStore, persistEnabled bool, logger *zap.Logger) *TriageService {
	return &TriageService{
		engine:         engine,
		store:          store,
		persistEnabled: persistEnabled,
		logger:         logger,
	}
}

// Triage runs one message through the engine and persists the encrypted
// result metadata. Persistence happens after the response is final and its
// failure only logs: the user-facing reply is never blocked on storage.
func (s *TriageService) Triage(ctx context.Context, req *TriageRequest) *domain.TriageResponse {
	resp := s.engine.Triage(ctx, req.Message, req.Context, req.Options.toDomain())

	if s.persistEnabled && s.store != nil {
		s.persist(ctx, req.Context, resp)
	}
	return resp
}

func (s *TriageService) persist(ctx context.Context, session *domain.SessionContext, resp *domain.TriageResponse) {
	payload, err := s.store.EncryptMetadata(resp.Metadata)
	if err != nil {
		s.logger.Error("encrypt triage metadata", zap.Error(err))
		return
	}

	record := &domain.TriageRecord{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Payload:   payload,
	}
	if session != nil {
		record.ClinicID = session.ClinicID
		record.CustomerID = session.CustomerID
	}

	// Bounded so a wedged store cannot hold the handler open.
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()

	if err := s.store.Save(saveCtx, record); err != nil {
		s.logger.Error("persist triage record",
			zap.String("record_id", record.ID),
			zap.Error(err),
		)
	}
}
