// Package cache holds the idempotency key stores.
package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/tourdesk/backend/internal/domain/shared"
	"github.com/tourdesk/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Backend names accepted in configuration
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// IdempotencyStoreFactory creates idempotency stores from configuration
type IdempotencyStoreFactory struct {
	idempotency           config.IdempotencyConfig
	redis                 config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// IdempotencyStoreFactoryOption configures the factory
type IdempotencyStoreFactoryOption func(*IdempotencyStoreFactory)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) IdempotencyStoreFactoryOption {
	return func(f *IdempotencyStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis degrades to the
// in-memory store. Default true.
func WithInMemoryFallback(allow bool) IdempotencyStoreFactoryOption {
	return func(f *IdempotencyStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewIdempotencyStoreFactory creates a factory
func NewIdempotencyStoreFactory(idem config.IdempotencyConfig, redisCfg config.RedisConfig, opts ...IdempotencyStoreFactoryOption) *IdempotencyStoreFactory {
	f := &IdempotencyStoreFactory{
		idempotency:           idem,
		redis:                 redisCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateInMemoryStore creates an in-memory store. State is not shared across
// instances.
func (f *IdempotencyStoreFactory) CreateInMemoryStore() *InMemoryIdempotencyStore {
	return NewInMemoryIdempotencyStore(f.idempotency.CleanupInterval)
}

// CreateRedisStore connects to the configured Redis
func (f *IdempotencyStoreFactory) CreateRedisStore(ctx context.Context) (*RedisIdempotencyStore, error) {
	store, err := NewRedisIdempotencyStore(ctx, &redis.Options{
		Addr:     f.redis.Addr(),
		Password: f.redis.Password,
		DB:       f.redis.DB,
	}, f.idempotency.KeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis idempotency store: %w", err)
	}
	return store, nil
}

// CreateStore builds the configured backend. A redis backend that cannot be
// reached falls back to memory when allowed.
func (f *IdempotencyStoreFactory) CreateStore(ctx context.Context) (shared.IdempotencyStore, error) {
	switch f.idempotency.Backend {
	case BackendMemory, "":
		f.logger.Info("Using in-memory idempotency store")
		return f.CreateInMemoryStore(), nil
	case BackendRedis:
	default:
		return nil, fmt.Errorf("unknown idempotency backend %q", f.idempotency.Backend)
	}

	store, err := f.CreateRedisStore(ctx)
	if err == nil {
		f.logger.Info("Using Redis idempotency store", zap.String("addr", f.redis.Addr()))
		return store, nil
	}
	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for idempotency but unavailable: %w", err)
	}
	f.logger.Warn("Redis unavailable, falling back to in-memory idempotency store", zap.Error(err))
	return f.CreateInMemoryStore(), nil
}
