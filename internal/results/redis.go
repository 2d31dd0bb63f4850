package results

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rizzcalc/rizz-web/internal/models"
)

const keyPrefix = "rizz:result:"

// RedisClient defines the subset of the Redis client the store needs
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisStore keeps results as JSON values with a TTL.
type RedisStore struct {
	client RedisClient
	ttl    time.Duration
}

func NewRedisStore(client RedisClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Put(ctx context.Context, result models.AnalysisResult) (*models.StoredResult, error) {
	stored := newStored(result, time.Now())

	data, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+stored.ID, data, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("store result: %w", err)
	}
	return stored, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*models.StoredResult, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	data, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load result: %w", err)
	}

	var stored models.StoredResult
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return &stored, nil
}
