// Package cache keeps recent transcripts in Redis so a repeated request for
// the same audio object and language skips the Whisper round trip.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Transcripts is a transcript cache keyed by user, audio key and language.
type Transcripts interface {
	Get(ctx context.Context, userID, audioKey, language string) (string, bool, error)
	Set(ctx context.Context, userID, audioKey, language, text string) error
}

// Redis implements Transcripts on a go-redis client.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedis connects using a redis:// URL.
func NewRedis(ctx context.Context, url string, ttl time.Duration) (*Redis, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Redis{rdb: rdb, ttl: ttl}, nil
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(rdb *redis.Client, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, ttl: ttl}
}

func key(userID, audioKey, language string) string {
	return "transcript:" + userID + ":" + language + ":" + audioKey
}

func (r *Redis) Get(ctx context.Context, userID, audioKey, language string) (string, bool, error) {
	v, err := r.rdb.Get(ctx, key(userID, audioKey, language)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *Redis) Set(ctx context.Context, userID, audioKey, language, text string) error {
	return r.rdb.Set(ctx, key(userID, audioKey, language), text, r.ttl).Err()
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}

// Nop never hits; used when no Redis URL is configured.
type Nop struct{}

func (Nop) Get(context.Context, string, string, string) (string, bool, error) { return "", false, nil }
func (Nop) Set(context.Context, string, string, string, string) error         { return nil }
