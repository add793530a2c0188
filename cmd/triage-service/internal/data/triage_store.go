package data

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"clinictriage/cmd/triage-service/internal/domain"
)

// StoreConfig tunes the redis-backed triage record store.
type StoreConfig struct {
	Addr      string        `mapstructure:"addr"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	KeyPrefix string        `mapstructure:"key_prefix"`
	RecordTTL time.Duration `mapstructure:"record_ttl"`
}

// RedisTriageStore persists encrypted triage records in redis with a TTL,
// behind a circuit breaker so a struggling redis cannot slow the chat
// loop down. Records are encrypted before they leave this process; the
// store never sees key material.
type RedisTriageStore struct {
	client    *redis.Client
	encryptor domain.FieldEncryptor
	breaker   *gobreaker.CircuitBreaker
	keyPrefix string
	recordTTL time.Duration
	logger    *zap.Logger
}

func NewRedisTriageStore(cfg StoreConfig, encryptor domain.FieldEncryptor, logger *zap.Logger) *RedisTriageStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "triage"
	}
	ttl := cfg.RecordTTL
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "triage-record-store",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("triage store breaker state change",
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &RedisTriageStore{
		client:    client,
		encryptor: encryptor,
		breaker:   breaker,
		keyPrefix: prefix,
		recordTTL: ttl,
		logger:    logger,
	}
}

func (s *RedisTriageStore) key(id string) string {
	return fmt.Sprintf("%s:record:%s", s.keyPrefix, id)
}

// Save writes one record. The payload is expected to be encrypted already
// by the caller via the field encryptor.
func (s *RedisTriageStore) Save(ctx context.Context, record *domain.TriageRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal triage record: %w", err)
	}

	_, err = s.breaker.Execute(func() (any, error) {
		return nil, s.client.Set(ctx, s.key(record.ID), data, s.recordTTL).Err()
	})
	if err != nil {
		return fmt.Errorf("save triage record %s: %w", record.ID, err)
	}
	return nil
}

// Get loads one record by ID. Returns redis.Nil wrapped when missing.
func (s *RedisTriageStore) Get(ctx context.Context, id string) (*domain.TriageRecord, error) {
	raw, err := s.breaker.Execute(func() (any, error) {
		return s.client.Get(ctx, s.key(id)).Bytes()
	})
	if err != nil {
		return nil, fmt.Errorf("load triage record %s: %w", id, err)
	}

	var record domain.TriageRecord
	if err := json.Unmarshal(raw.([]byte), &record); err != nil {
		return nil, fmt.Errorf("unmarshal triage record %s: %w", id, err)
	}
	return &record, nil
}

// EncryptMetadata serializes and encrypts response metadata for storage.
func (s *RedisTriageStore) EncryptMetadata(metadata map[string]any) ([]byte, error) {
	plain, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}
	return s.encryptor.Encrypt(plain)
}
