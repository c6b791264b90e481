// Package cache memoises search results keyed by the exact input, so a word
// list that has already been searched is answered without re-running the
// enumeration.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wisepythagoras/wordcliques/internal/clique"
	"github.com/wisepythagoras/wordcliques/internal/config"
)

// Cache stores result lines. A stored empty result is a hit.
type Cache interface {
	Get(ctx context.Context, key string) ([]string, bool, error)
	Set(ctx context.Context, key string, lines []string) error
}

// Key identifies a run by search mode and the ordered input words.
func Key(mode clique.Mode, words []string) string {
	h := sha256.New()
	h.Write([]byte(mode))

	var n [8]byte

	for _, w := range words {
		binary.LittleEndian.PutUint64(n[:], uint64(len(w)))
		h.Write(n[:])
		h.Write([]byte(w))
	}

	return hex.EncodeToString(h.Sum(nil))
}

// RedisCache keeps results as newline-joined strings under prefix+key.
type RedisCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis connects and verifies the connection with a PING.
func NewRedis(cfg config.CacheConfig) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()

		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisCache{rdb: rdb, prefix: cfg.Prefix, ttl: cfg.TTL}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]string, bool, error) {
	val, err := c.rdb.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}

	return decode(val), true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, lines []string) error {
	if err := c.rdb.Set(ctx, c.prefix+key, encode(lines), c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}

	return nil
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}

func encode(lines []string) string {
	return strings.Join(lines, "\n")
}

func decode(val string) []string {
	if val == "" {
		return []string{}
	}

	return strings.Split(val, "\n")
}
