package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/nnsolutions/isms/internal/core/domain"
)

const (
	inboxKey = "isms:notifications:super-admin"
	inboxCap = 500
)

// Inbox is the super admin notification list, newest first and capped at
// inboxCap entries.
type Inbox struct {
	client *redis.Client
}

func NewInbox(client *redis.Client) *Inbox {
	return &Inbox{client: client}
}

func (i *Inbox) Push(ctx context.Context, n domain.Notification) error {
	b, err := json.Marshal(n)
	if err != nil {
		return err
	}
	pipe := i.client.TxPipeline()
	pipe.LPush(ctx, inboxKey, b)
	pipe.LTrim(ctx, inboxKey, 0, inboxCap-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push notification: %w", err)
	}
	return nil
}

func (i *Inbox) List(ctx context.Context, limit int64) ([]domain.Notification, error) {
	raw, err := i.client.LRange(ctx, inboxKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	out := make([]domain.Notification, 0, len(raw))
	for _, s := range raw {
		var n domain.Notification
		if err := json.Unmarshal([]byte(s), &n); err != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}
