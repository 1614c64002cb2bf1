package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultPrefix namespaces every entry the cache writes.
	DefaultPrefix = "war:ranking:"
	// GenerationKey holds the generation counter. It sits outside the entry
	// prefix so Invalidate never deletes it.
	GenerationKey = "war:ranking-generation"
)

var _ Cache = (*Redis)(nil)

// Redis is a Cache backed by a Redis server.
type Redis struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// Options configures NewRedis.
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedis connects to Redis and checks the connection with a PING.
func NewRedis(ctx context.Context, opts Options) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}
	log.Info("Connected to Redis", "addr", opts.Addr, "ttl", opts.TTL)
	return NewRedisWithClient(rdb, opts.TTL), nil
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(rdb *redis.Client, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, prefix: DefaultPrefix, ttl: ttl}
}

func (r *Redis) Generation(ctx context.Context) (int64, error) {
	gen, err := r.rdb.Get(ctx, GenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cache generation: %w", err)
	}
	return gen, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}
	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.rdb.Set(ctx, r.prefix+key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Invalidate(ctx context.Context) error {
	if err := r.rdb.Incr(ctx, GenerationKey).Err(); err != nil {
		return fmt.Errorf("failed to bump cache generation: %w", err)
	}
	// Entries of older generations are unreachable now; deleting them only frees memory.
	var keys []string
	iter := r.rdb.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}
	log.Debug("Invalidated ranking cache", "keys", len(keys))
	return nil
}

// Close releases the connection pool.
func (r *Redis) Close() error {
	return r.rdb.Close()
}
