package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// DedupChecker provides idempotency checks for agent samples backed by Redis.
// Key format: dedup:activity:<username>:<action>:<client_timestamp>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// FirstSeen marks the sample (expires after dedupTTL) and reports whether
// it had not been marked before.
func (d *DedupChecker) FirstSeen(ctx context.Context, username, action, timestamp string) (bool, error) {
	ok, err := d.client.SetNX(ctx, d.key(username, action, timestamp), "1", dedupTTL).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return ok, nil
}

func (d *DedupChecker) key(username, action, timestamp string) string {
	return fmt.Sprintf("dedup:activity:%s:%s:%s", username, action, timestamp)
}
