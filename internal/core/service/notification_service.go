package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nnsolutions/isms/internal/core/domain"
	"github.com/nnsolutions/isms/internal/core/ports"
)

const defaultInboxLimit = 50

type notificationService struct {
	store ports.NotificationStore
	now   func() time.Time
}

// NewNotificationService returns a NotificationService implementation.
func NewNotificationService(store ports.NotificationStore) ports.NotificationService {
	return &notificationService{store: store, now: time.Now}
}

func (s *notificationService) Notify(ctx context.Context, taskID, message string) (*domain.Notification, error) {
	n := domain.Notification{
		ID:        uuid.NewString(),
		TaskID:    strings.TrimSpace(taskID),
		Message:   strings.TrimSpace(message),
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Push(ctx, n); err != nil {
		return nil, fmt.Errorf("notify super admin: %w", err)
	}
	return &n, nil
}

func (s *notificationService) List(ctx context.Context, limit int64) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = defaultInboxLimit
	}
	return s.store.List(ctx, limit)
}
