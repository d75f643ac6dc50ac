package domain

import "time"

// Notification is a message for the super admin inbox.
type Notification struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// MentorPerformance ranks a mentor by audit activity.
type MentorPerformance struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Activity   int64  `json:"activity"`
	AvatarSeed string `json:"avatarSeed"`
}
