package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonathan/docwriter/internal/report"
)

const keyPrefix = "docwriter:session:"

// DefaultTTL is how long a session's reports live in Redis.
const DefaultTTL = 24 * time.Hour

// NewRedisClient creates a Redis client with production connection limits.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})
}

// RedisStore is a Store backed by Redis, for deployments with more than one
// serving process. Report batches are stored as JSON with a TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps an existing client. ttl <= 0 selects DefaultTTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) ([]*report.Report, error) {
	data, err := s.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, &NotFoundError{SessionID: sessionID}
	}
	if err != nil {
		return nil, fmt.Errorf("session %q: %w", sessionID, err)
	}

	var reports []*report.Report
	if err := json.Unmarshal(data, &reports); err != nil {
		return nil, fmt.Errorf("session %q: decode: %w", sessionID, err)
	}
	return reports, nil
}

func (s *RedisStore) Put(ctx context.Context, sessionID string, reports []*report.Report) error {
	data, err := json.Marshal(reports)
	if err != nil {
		return fmt.Errorf("session %q: encode: %w", sessionID, err)
	}
	if err := s.client.Set(ctx, keyPrefix+sessionID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("session %q: %w", sessionID, err)
	}
	return nil
}

// Ping tests the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
