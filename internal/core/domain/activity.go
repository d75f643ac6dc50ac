package domain

import "time"

// Activity is a desktop-agent sample: a login/logout marker, an idle report
// or a screenshot.
type Activity struct {
	ID             int64      `json:"id"`
	Username       string     `json:"username"`
	Action         string     `json:"action"`
	LoginTime      *time.Time `json:"login_time"`
	LogoutTime     *time.Time `json:"logout_time"`
	IdleTime       *int       `json:"idle_time"`
	ScreenshotPath string     `json:"screenshot_path,omitempty"`
	AppURL         string     `json:"app_url"`
	Metadata       string     `json:"metadata,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
