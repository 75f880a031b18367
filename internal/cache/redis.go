package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store is a best-effort JSON cache on top of Redis. It is an optimization,
// not a source of truth: a broken cached value reads as a miss and a failed
// write never fails the request that produced the value.
type Store struct {
	rdb    *redis.Client
	logger *zap.Logger

	// OnDroppedWrite is invoked with the key whenever a cache write fails.
	// Wired to observability by the caller; nil is fine.
	OnDroppedWrite func(key string)
}

func NewStore(rdb *redis.Client, logger *zap.Logger) *Store {
	return &Store{rdb: rdb, logger: logger}
}

// Connect parses a redis URL and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}

// GetJSON loads the value under key into dest. Any failure, including a
// payload that no longer unmarshals, is reported as a miss.
func (s *Store) GetJSON(ctx context.Context, key string, dest any) bool {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.Warn("cached value is not valid json, treating as miss",
			zap.String("key", key), zap.Error(err))
		return false
	}

	return true
}

// SetJSON stores value under key with the given TTL. Failures are logged and
// swallowed.
func (s *Store) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		s.dropWrite(key, err)
		return
	}

	if err := s.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		s.dropWrite(key, err)
	}
}

func (s *Store) dropWrite(key string, err error) {
	s.logger.Warn("cache write dropped", zap.String("key", key), zap.Error(err))
	if s.OnDroppedWrite != nil {
		s.OnDroppedWrite(key)
	}
}
