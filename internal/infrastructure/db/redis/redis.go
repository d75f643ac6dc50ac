package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultTimeout = 5 * time.Second
	clientName     = "isms-api"
)

// Config holds the connection settings. Password may be empty.
type Config struct {
	Addr     string
	Password string
	DB       int
	Timeout  time.Duration
}

// Connect opens the client shared by the inbox, dedup and lock stores and
// pings it once. Timeout defaults to five seconds.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:       cfg.Addr,
		Password:   cfg.Password,
		DB:         cfg.DB,
		ClientName: clientName,
	})

	if err := ping(ctx, rdb, timeout); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// Readiness returns the /health/ready probe for rdb.
func Readiness(rdb *redis.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		return ping(ctx, rdb, defaultTimeout)
	}
}

func ping(ctx context.Context, rdb *redis.Client, timeout time.Duration) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis ping %s: %w", rdb.Options().Addr, err)
	}
	return nil
}
