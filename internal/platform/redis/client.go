// Package redis opens the Redis connection behind the person read cache.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"govinda/internal/platform/config"
)

// Client is the shared go-redis client plus the cache settings it was opened with.
type Client struct {
	*redis.Client
	cacheTTL time.Duration
}

// New opens a pool for cfg.URL and verifies it with a bounded ping. An empty
// URL means the cache is disabled and yields a nil client without error.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Client{Client: client, cacheTTL: cfg.CacheTTL}, nil
}

// CacheTTL is the configured person cache lifetime; zero selects the cache default.
func (c *Client) CacheTTL() time.Duration {
	return c.cacheTTL
}

// Health is registered as the "redis" readiness check.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}
