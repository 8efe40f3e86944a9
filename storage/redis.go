package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/radosmm6/task-app-rodion-samokhvalov-68614/board"
)

// RedisStore keeps session states in Redis so several front end instances
// can serve the same browser.
type RedisStore struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisStore creates a Redis-backed store. A non-positive ttl keeps
// sessions until they are deleted.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if client == nil {
		panic("storage.NewRedisStore: redis client is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &RedisStore{redis: client, ttl: ttl}
}

func (r *RedisStore) Load(ctx context.Context, id string) (*board.State, error) {
	data, err := r.redis.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	st, err := decodeState(data)
	if err != nil {
		// A corrupt entry is dropped so the session starts over.
		_ = r.redis.Del(ctx, sessionKey(id)).Err()
		return nil, fmt.Errorf("decode session %s: %w", id, ErrNotFound)
	}
	return st, nil
}

func (r *RedisStore) Save(ctx context.Context, id string, st *board.State) error {
	data, err := encodeState(st)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", id, err)
	}
	if err := r.redis.Set(ctx, sessionKey(id), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", id, err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.redis.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}
