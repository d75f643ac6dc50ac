package domain

import (
	"encoding/json"
	"time"
)

// Audit actions written by the server.
const (
	ActionLoggedIn         = "User Logged In"
	ActionSessionCompleted = "User Session Completed"
)

const timestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp formats t the way log and task times are stored.
func Timestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// LogEntry is one line of the audit trail. Times are ISO-8601 strings as the
// legacy clients expect.
type LogEntry struct {
	ID          int64
	Username    string
	LoginTime   string
	LogoutTime  string
	Email       string
	Domain      string
	Role        string
	Designation string
	Action      string
}

// MarshalJSON mirrors login_time into "timestamp", the field the console
// sorts and displays.
func (l LogEntry) MarshalJSON() ([]byte, error) {
	var logout *string
	if l.LogoutTime != "" {
		logout = &l.LogoutTime
	}
	return json.Marshal(struct {
		ID          int64   `json:"id"`
		Username    string  `json:"username"`
		LoginTime   string  `json:"login_time"`
		LogoutTime  *string `json:"logout_time"`
		Timestamp   string  `json:"timestamp"`
		Email       string  `json:"email"`
		Domain      string  `json:"domain"`
		Role        string  `json:"role"`
		Designation string  `json:"designation"`
		Action      string  `json:"action"`
	}{
		ID:          l.ID,
		Username:    l.Username,
		LoginTime:   l.LoginTime,
		LogoutTime:  logout,
		Timestamp:   l.LoginTime,
		Email:       l.Email,
		Domain:      l.Domain,
		Role:        l.Role,
		Designation: l.Designation,
		Action:      l.Action,
	})
}
