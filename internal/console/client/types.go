package client

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ID accepts both numeric and string identifiers from the backend.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Int returns the numeric value of the id, or 0 when it is not numeric.
func (id ID) Int() int64 {
	n, _ := strconv.ParseInt(string(id), 10, 64)
	return n
}

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
	StatusOffline  = "Offline"
)

// UserRecord is a staff or admin account as returned by the backend.
// Department resolves the legacy "domain" key.
type UserRecord struct {
	ID          ID     `json:"id"`
	CustomID    string `json:"custom_id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
	Role        string `json:"role"`
	Status      string `json:"status"`
}

func (u *UserRecord) UnmarshalJSON(b []byte) error {
	type plain UserRecord
	var aux struct {
		plain
		Domain string `json:"domain"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*u = UserRecord(aux.plain)
	if u.Department == "" {
		u.Department = aux.Domain
	}
	return nil
}

func (u UserRecord) MarshalJSON() ([]byte, error) {
	type plain UserRecord
	return json.Marshal(struct {
		plain
		Domain string `json:"domain"`
	}{plain(u), u.Department})
}

// IsActive reports whether the account is currently active.
func (u UserRecord) IsActive() bool {
	return strings.EqualFold(u.Status, StatusActive)
}

// UserInput is the create/update payload for /api/users and /api/admins.
// Empty fields are omitted so that updates stay partial.
type UserInput struct {
	FullName    string `json:"fullName,omitempty"`
	UserID      string `json:"userId,omitempty"`
	AdminID     string `json:"adminId,omitempty"`
	Email       string `json:"email,omitempty"`
	Password    string `json:"password,omitempty"`
	Domain      string `json:"Domain,omitempty"`
	Designation string `json:"designation,omitempty"`
	Role        string `json:"role,omitempty"`
	Status      string `json:"status,omitempty"`
}

// LogEntry is one audit record.
type LogEntry struct {
	ID          ID     `json:"id"`
	Timestamp   string `json:"timestamp"`
	LogoutTime  string `json:"logout_time,omitempty"`
	Username    string `json:"username"`
	Designation string `json:"designation"`
	Email       string `json:"email"`
	Domain      string `json:"domain"`
	Role        string `json:"role"`
	Action      string `json:"action"`
}

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
	PriorityUrgent = "Urgent"
)

// Task is a mentor-assigned unit of work.
type Task struct {
	ID          ID     `json:"id,omitempty"`
	Title       string `json:"title"`
	Domain      string `json:"domain"`
	AssignedTo  string `json:"assignedTo"`
	UserID      string `json:"userId"`
	Deadline    string `json:"deadline"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt,omitempty"`
	IsChecked   bool   `json:"isChecked"`
}

// TaskUpdate carries the mutable task fields; nil pointers are left untouched.
type TaskUpdate struct {
	Title     *string `json:"title,omitempty"`
	Status    *string `json:"status,omitempty"`
	IsChecked *bool   `json:"isChecked,omitempty"`
	Priority  *string `json:"priority,omitempty"`
	Deadline  *string `json:"deadline,omitempty"`
}

// MentorPerformance is one row of the mentor leaderboard.
type MentorPerformance struct {
	ID         ID     `json:"id"`
	Name       string `json:"name"`
	Activity   int    `json:"activity"`
	AvatarSeed string `json:"avatarSeed"`
}

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginResult is the successful login response.
type LoginResult struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Token   string     `json:"token"`
	User    UserRecord `json:"user"`
}

// Activity is a fire-and-forget usage record.
type Activity struct {
	Username string `json:"username"`
	Action   string `json:"action"`
	AppURL   string `json:"app_url"`
}

// Notification is sent to the supervisory role.
type Notification struct {
	TaskID  ID     `json:"taskId"`
	Message string `json:"message"`
}
