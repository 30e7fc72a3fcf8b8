package redisad

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"petasare/internal/domain"
)

// KV persists bookmark state in redis, one device per key namespace.
type KV struct {
	c      *redis.Client
	prefix string
}

// NewKV scopes keys under device so several installations can share a server.
func NewKV(c *redis.Client, device string) *KV {
	if device == "" {
		device = "default"
	}
	return &KV{c: c, prefix: "petasare:kv:" + device + ":"}
}

func (k *KV) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := k.c.Get(ctx, k.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	return v, err
}

// Put stores value without expiry.
func (k *KV) Put(ctx context.Context, key string, value []byte) error {
	return k.c.Set(ctx, k.prefix+key, value, 0).Err()
}
