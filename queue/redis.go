package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"

	"cliplabel/types"
)

// RedisRecord keeps the queue record as a single JSON value under one
// Redis key. It follows the same one-record shape as the Postgres row.
type RedisRecord struct {
	client *redis.Client
	key    string
}

// NewRedisRecordFromEnv creates a Redis-backed queue record using
// REDIS_ADDR, REDIS_PASS, and QUEUE_KEY (optional).
func NewRedisRecordFromEnv(ctx context.Context) (*RedisRecord, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	key := os.Getenv("QUEUE_KEY")
	if key == "" {
		key = "review:queue"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASS"),
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return &RedisRecord{client: client, key: key}, nil
}

func (r *RedisRecord) Read(ctx context.Context) (types.Queue, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return types.EmptyQueue(), nil
	}
	if err != nil {
		return types.Queue{}, fmt.Errorf("read queue key: %w", err)
	}
	var q types.Queue
	if err := json.Unmarshal(data, &q); err != nil {
		return types.Queue{}, fmt.Errorf("decode queue key: %w", err)
	}
	if q.Videos == nil {
		q.Videos = []types.VideoDescriptor{}
	}
	return q, nil
}

func (r *RedisRecord) Write(ctx context.Context, q types.Queue) error {
	data, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("encode queue: %w", err)
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("write queue key: %w", err)
	}
	return nil
}
