package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewClient builds a redis client with conservative timeouts. Returns nil
// when no address is configured; a nil client disables caching.
func NewClient(cfg Config) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

// Ping checks redis connectivity for readiness probes.
func Ping(ctx context.Context, client *redis.Client) error {
	if client == nil {
		return nil
	}

	return client.Ping(ctx).Err()
}
