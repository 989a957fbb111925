// Package cache is a thin read-through accelerator in front of the portfolio
// valuator. It is never a source of truth: every failure degrades to a miss so
// callers fall back to direct computation.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Service wraps a Redis client. A nil client disables caching entirely.
type Service struct {
	Rdb        *redis.Client
	DefaultTTL time.Duration
}

// New builds a cache service from a Redis URL. Connection failure is logged
// and caching is disabled, never fatal.
func New(redisURL string, ttl time.Duration) *Service {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Msg("Redis URL invalid, caching disabled")
		return &Service{DefaultTTL: ttl}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Warn().Err(err).Msg("Redis connection failed, caching disabled")
		return &Service{DefaultTTL: ttl}
	}
	return &Service{Rdb: rdb, DefaultTTL: ttl}
}

// Get loads the JSON value at key into dest. Returns false on miss, disabled
// cache, or any Redis/decode error.
func (s *Service) Get(ctx context.Context, key string, dest interface{}) bool {
	if s == nil || s.Rdb == nil {
		return false
	}
	b, err := s.Rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache get error")
		return false
	}
	if err := json.Unmarshal(b, dest); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache decode error")
		return false
	}
	return true
}

// Set stores value as JSON under key with the default TTL.
func (s *Service) Set(ctx context.Context, key string, value interface{}) {
	if s == nil || s.Rdb == nil {
		return
	}
	b, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache encode error")
		return
	}
	if err := s.Rdb.Set(ctx, key, b, s.DefaultTTL).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache set error")
	}
}

// Invalidate deletes all keys matching pattern. Supports the trailing-wildcard
// form ("portfolio:*") as well as exact keys.
func (s *Service) Invalidate(ctx context.Context, pattern string) {
	if s == nil || s.Rdb == nil {
		return
	}
	keys, err := s.Rdb.Keys(ctx, pattern).Result()
	if err != nil {
		log.Warn().Err(err).Str("pattern", pattern).Msg("Cache invalidate error")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.Rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Str("pattern", pattern).Msg("Cache invalidate error")
	}
}

// PortfolioKey is the cache key for a user's valuation.
func PortfolioKey(userID string) string {
	return "portfolio:" + userID
}
