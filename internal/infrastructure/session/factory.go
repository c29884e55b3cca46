package session

import (
	"fmt"

	"go.uber.org/zap"
)

// DraftStoreFactory creates the draft store from configuration,
// preferring Redis and optionally falling back to in-memory.
type DraftStoreFactory struct {
	redisConfig           RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// DraftStoreFactoryOption configures the factory
type DraftStoreFactoryOption func(*DraftStoreFactory)

// WithLogger sets the factory logger
func WithLogger(logger *zap.Logger) DraftStoreFactoryOption {
	return func(f *DraftStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls the fallback when Redis is unavailable.
// Default is true.
func WithInMemoryFallback(allow bool) DraftStoreFactoryOption {
	return func(f *DraftStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewDraftStoreFactory creates a factory
func NewDraftStoreFactory(cfg RedisConfig, opts ...DraftStoreFactoryOption) *DraftStoreFactory {
	f := &DraftStoreFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateStore tries Redis first and falls back to in-memory when
// allowed. Drafts in the in-memory store do not survive restarts and
// are not shared across instances.
func (f *DraftStoreFactory) CreateStore() (DraftStore, error) {
	store, err := NewRedisDraftStore(f.redisConfig)
	if err == nil {
		f.logger.Info("using Redis quote draft store")
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for quote drafts but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory quote draft store",
		zap.Error(err))
	return NewInMemoryDraftStore(), nil
}
