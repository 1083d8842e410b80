package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/BerylCAtieno/scheme-recommender/internal/models"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "schemes:session:"

// Redis is a Store backed by Redis. Profiles are stored as JSON with an idle
// TTL; the pending flag is a SETNX key expiring after the same TTL so a
// crashed server cannot leave a session locked forever.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient mirrors the pool settings used for the other Redis clients
// in this codebase.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Ping tests the Redis connection.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func profileKey(id string) string { return keyPrefix + id + ":profile" }
func pendingKey(id string) string { return keyPrefix + id + ":pending" }

func (r *Redis) Load(ctx context.Context, id string) (models.Profile, error) {
	var p models.Profile

	data, err := r.client.GetEx(ctx, profileKey(id), r.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("load session %s: %w", id, err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("decode session %s: %w", id, err)
	}
	return p, nil
}

func (r *Redis) Save(ctx context.Context, id string, p models.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", id, err)
	}
	if err := r.client.Set(ctx, profileKey(id), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", id, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, profileKey(id)).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

func (r *Redis) TryAcquire(ctx context.Context, id string) (bool, error) {
	ok, err := r.client.SetNX(ctx, pendingKey(id), 1, r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire pending %s: %w", id, err)
	}
	return ok, nil
}

func (r *Redis) Release(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, pendingKey(id)).Err(); err != nil {
		return fmt.Errorf("release pending %s: %w", id, err)
	}
	return nil
}

func (r *Redis) Pending(ctx context.Context, id string) (bool, error) {
	n, err := r.client.Exists(ctx, pendingKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("check pending %s: %w", id, err)
	}
	return n > 0, nil
}
