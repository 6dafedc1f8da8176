package cache

import (
	"fmt"

	"github.com/posalpro/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// StatsCacheFactory creates stats caches based on configuration
type StatsCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// StatsCacheFactoryOption is a functional option for configuring the factory
type StatsCacheFactoryOption func(*StatsCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) StatsCacheFactoryOption {
	return func(f *StatsCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory
// cache when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) StatsCacheFactoryOption {
	return func(f *StatsCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewStatsCacheFactory creates a new factory
func NewStatsCacheFactory(cfg config.RedisConfig, opts ...StatsCacheFactoryOption) *StatsCacheFactory {
	f := &StatsCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateCache creates a stats cache. It tries Redis first and falls
// back to in-memory when Redis is unavailable and fallback is allowed.
func (f *StatsCacheFactory) CreateCache() (StatsCache, error) {
	cache, err := NewRedisStatsCache(f.redisConfig)
	if err == nil {
		f.logger.Info("using Redis stats cache")
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for stats cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory stats cache. "+
		"Cached aggregates will not be shared across instances.",
		zap.Error(err),
	)
	return NewInMemoryStatsCache(), nil
}
