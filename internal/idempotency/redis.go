package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func Connect(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func key(scope, k string) string {
	return "idemp:map:" + scope + ":" + k
}

func (s *RedisStore) Remember(ctx context.Context, scope, k, value string) error {
	return s.rdb.Set(ctx, key(scope, k), value, s.ttl).Err()
}

func (s *RedisStore) Recall(ctx context.Context, scope, k string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, key(scope, k)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}
