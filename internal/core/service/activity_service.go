package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nnsolutions/isms/internal/core/domain"
	"github.com/nnsolutions/isms/internal/core/ports"
)

type activityService struct {
	activities  ports.ActivityRepository
	logs        ports.LogRepository
	screenshots ports.ScreenshotStore
	dedup       ports.DedupChecker
	now         func() time.Time
	log         zerolog.Logger
}

// NewActivityService returns an ActivityService implementation.
func NewActivityService(
	activities ports.ActivityRepository,
	logs ports.LogRepository,
	screenshots ports.ScreenshotStore,
	dedup ports.DedupChecker,
	log zerolog.Logger,
) ports.ActivityService {
	return &activityService{
		activities:  activities,
		logs:        logs,
		screenshots: screenshots,
		dedup:       dedup,
		now:         time.Now,
		log:         log,
	}
}

// Record stores one agent sample: the screenshot (if any), an audit entry
// and the activity row.
func (s *activityService) Record(ctx context.Context, in ports.ActivityInput) error {
	// 1. Samples carrying a client timestamp are idempotent on
	// (username, action, timestamp).
	if in.Timestamp != "" {
		first, err := s.dedup.FirstSeen(ctx, in.Username, in.Action, in.Timestamp)
		if err != nil {
			s.log.Warn().Err(err).Str("username", in.Username).Msg("dedup check failed, recording anyway")
		} else if !first {
			s.log.Debug().Str("username", in.Username).Str("action", in.Action).Msg("duplicate activity skipped")
			return nil
		}
	}

	now := s.now()

	// 2. Screenshot.
	var path string
	if in.Screenshot != "" {
		image, err := decodeDataURL(in.Screenshot)
		if err != nil {
			return fmt.Errorf("record activity: %w", err)
		}
		path, err = s.screenshots.Save(ctx, in.Username, image, now)
		if err != nil {
			return fmt.Errorf("record activity: save screenshot: %w", err)
		}
	}

	// 3. Audit entry.
	entry := &domain.LogEntry{
		Username:  in.Username,
		LoginTime: domain.Timestamp(now),
		Email:     orDefault(in.Email, "system@gmail.com"),
		Domain:    orDefault(in.AppURL, "Application"),
		Role:      domain.RoleUser,
		Action:    in.Action,
	}
	if _, err := s.logs.Create(ctx, entry); err != nil {
		return fmt.Errorf("record activity: log: %w", err)
	}

	// 4. Activity row.
	activity := &domain.Activity{
		Username:       in.Username,
		Action:         in.Action,
		IdleTime:       in.IdleTime,
		ScreenshotPath: path,
		AppURL:         in.AppURL,
		CreatedAt:      now.UTC(),
	}
	switch in.Action {
	case "login":
		activity.LoginTime = &now
	case "logout":
		activity.LogoutTime = &now
	}
	if in.Timestamp != "" {
		meta, _ := json.Marshal(map[string]string{"timestamp": in.Timestamp})
		activity.Metadata = string(meta)
	}
	if err := s.activities.Insert(ctx, activity); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}

	s.log.Info().
		Str("username", in.Username).
		Str("action", in.Action).
		Bool("screenshot", path != "").
		Msg("activity recorded")

	return nil
}

// decodeDataURL extracts the payload of "data:image/png;base64,<data>".
// A bare base64 string is accepted too.
func decodeDataURL(s string) ([]byte, error) {
	if _, payload, ok := strings.Cut(s, ","); ok {
		s = payload
	}
	b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil || len(b) == 0 {
		return nil, domain.ErrInvalidScreenshot
	}
	return b, nil
}
