package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/nnsolutions/isms/internal/core/domain"
)

const (
	lockRetryInterval = 100 * time.Millisecond
	lockRetries       = 20
)

// Locker serialises critical sections across server instances.
type Locker struct {
	client *redislock.Client
}

func NewLocker(client *redis.Client) *Locker {
	return &Locker{client: redislock.New(client)}
}

// WithLock runs fn while holding key. It waits up to about two seconds for
// a busy lock before giving up with domain.ErrLockNotObtained.
func (l *Locker) WithLock(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) error {
	lock, err := l.client.Obtain(ctx, key, ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(lockRetryInterval), lockRetries),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return domain.ErrLockNotObtained
	}
	if err != nil {
		return fmt.Errorf("obtain lock %s: %w", key, err)
	}
	defer func() {
		_ = lock.Release(context.WithoutCancel(ctx))
	}()

	return fn(ctx)
}
