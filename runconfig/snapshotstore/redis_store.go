package snapshotstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/launchdarkly/test-run-config/framework/opt"
	"github.com/launchdarkly/test-run-config/runconfig"
)

// RedisStore keeps each snapshot as a string value under "<prefix>:<key>".
type RedisStore struct {
	redis  *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{redis: client, prefix: prefix}
}

func (r *RedisStore) DSN() string {
	return fmt.Sprintf("redis://%s", r.redis.Options().Addr)
}

func (r *RedisStore) redisKey(key string) string {
	return r.prefix + ":" + key
}

func (r *RedisStore) Put(ctx context.Context, key string, snapshot runconfig.Snapshot) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	data, err := snapshot.MarshalJSON()
	if err != nil {
		return err
	}
	return r.redis.Set(ctx, r.redisKey(key), data, 0).Err()
}

func (r *RedisStore) Get(ctx context.Context, key string) (opt.Maybe[runconfig.Snapshot], error) {
	if err := ValidateKey(key); err != nil {
		return opt.None[runconfig.Snapshot](), err
	}
	data, err := r.redis.Get(ctx, r.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return opt.None[runconfig.Snapshot](), nil
	}
	if err != nil {
		return opt.None[runconfig.Snapshot](), err
	}
	return decodeSnapshot(key, data)
}

// Close releases the store's Redis client.
func (r *RedisStore) Close() error {
	return r.redis.Close()
}

// Delete removes a snapshot. Deleting a missing key is not an error.
func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return r.redis.Del(ctx, r.redisKey(key)).Err()
}
