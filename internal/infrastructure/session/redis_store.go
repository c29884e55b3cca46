package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/baogia/backend/internal/domain/quote"
	"github.com/baogia/backend/internal/domain/shared"
)

const defaultKeyPrefix = "quote:draft:"

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisDraftStore keeps quote drafts in Redis so any instance can serve
// the editing session.
type RedisDraftStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisDraftStore connects to Redis and verifies the connection
func NewRedisDraftStore(cfg RedisConfig) (*RedisDraftStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisDraftStore{client: client, keyPrefix: defaultKeyPrefix}, nil
}

// NewRedisDraftStoreWithClient wraps an existing client, useful for
// tests and for sharing one client across components.
func NewRedisDraftStoreWithClient(client *redis.Client, keyPrefix string) *RedisDraftStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisDraftStore{client: client, keyPrefix: keyPrefix}
}

// SaveDraft stores the draft as JSON under the owner's key
func (s *RedisDraftStore) SaveDraft(ctx context.Context, ownerID uuid.UUID, draft *quote.Quote, ttl time.Duration) error {
	if draft == nil {
		return shared.NewDomainError("INVALID_INPUT", "Draft cannot be nil")
	}
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to serialize draft: %w", err)
	}
	if err := s.client.Set(ctx, s.key(ownerID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// LoadDraft fetches and deserializes the owner's draft
func (s *RedisDraftStore) LoadDraft(ctx context.Context, ownerID uuid.UUID) (*quote.Quote, error) {
	data, err := s.client.Get(ctx, s.key(ownerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	var draft quote.Quote
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to deserialize draft: %w", err)
	}
	return &draft, nil
}

// ClearDraft removes the owner's draft
func (s *RedisDraftStore) ClearDraft(ctx context.Context, ownerID uuid.UUID) error {
	if err := s.client.Del(ctx, s.key(ownerID)).Err(); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisDraftStore) Close() error {
	return s.client.Close()
}

func (s *RedisDraftStore) key(ownerID uuid.UUID) string {
	return s.keyPrefix + ownerID.String()
}

var _ DraftStore = (*RedisDraftStore)(nil)
