package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	goredis "github.com/go-redis/redis/v8"
)

// Redis is the production Store backed by a Redis server.
type Redis struct {
	client *goredis.Client
}

// RedisConfig configures the Redis cache connection.
type RedisConfig struct {
	Addr     string // e.g. "localhost:6379"
	Password string
	DB       int
}

// NewRedis connects to Redis and pings it; an unreachable server is an
// error so callers can fall back to the in-memory store.
func NewRedis(cfg RedisConfig) (*Redis, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Printf("[cache] redis connected at %s", cfg.Addr)
	return &Redis{client: client}, nil
}

// Client returns the underlying Redis client for health checks.
func (r *Redis) Client() *goredis.Client { return r.client }

func (r *Redis) Get(ctx context.Context, key string, dest any) bool {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Printf("[cache] corrupt entry for %q dropped: %v", key, err)
		r.client.Del(ctx, key)
		return false
	}
	return true
}

func (r *Redis) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Printf("[cache] set %q failed: %v", key, err)
	}
}

func (r *Redis) Delete(ctx context.Context, key string) {
	r.client.Del(ctx, key)
}

// Close releases the Redis connection.
func (r *Redis) Close() error { return r.client.Close() }
