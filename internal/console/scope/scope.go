// Package scope narrows a fetched user list to what a role's views display.
//
// These filters only decide what is shown. They are not an access control
// layer: the backend authorizes every request on its own, and a client that
// skips these filters gains nothing it could not already fetch.
package scope

import (
	"strings"

	"github.com/nnsolutions/isms/internal/console/client"
)

// IsMentor reports whether role names a mentor, ignoring case and
// surrounding whitespace.
func IsMentor(role string) bool {
	return strings.Contains(strings.ToLower(strings.TrimSpace(role)), "mentor")
}

// IsSuperAdmin reports whether role names a super admin.
func IsSuperAdmin(role string) bool {
	return strings.Contains(strings.ToLower(role), "super")
}

// IsAdmin reports whether role names any admin, super admins included.
func IsAdmin(role string) bool {
	return strings.Contains(strings.ToLower(role), "admin")
}

// Mentors keeps users whose role is a mentor role.
func Mentors(users []client.UserRecord) []client.UserRecord {
	return filter(users, func(u client.UserRecord) bool { return IsMentor(u.Role) })
}

// InDomain keeps users whose department equals domain, preserving order.
func InDomain(users []client.UserRecord, domain string) []client.UserRecord {
	return filter(users, func(u client.UserRecord) bool { return u.Department == domain })
}

// Active keeps users with status Active.
func Active(users []client.UserRecord) []client.UserRecord {
	return filter(users, func(u client.UserRecord) bool { return u.IsActive() })
}

// Peers returns the other users sharing self's department.
func Peers(users []client.UserRecord, self client.UserRecord) []client.UserRecord {
	return filter(users, func(u client.UserRecord) bool {
		return u.Department == self.Department && u.ID != self.ID
	})
}

// Domains lists the distinct non-empty departments in first-seen order.
func Domains(users []client.UserRecord) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, u := range users {
		if u.Department == "" {
			continue
		}
		if _, ok := seen[u.Department]; ok {
			continue
		}
		seen[u.Department] = struct{}{}
		out = append(out, u.Department)
	}
	return out
}

// TasksInDomain keeps tasks assigned within domain.
func TasksInDomain(tasks []client.Task, domain string) []client.Task {
	out := make([]client.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Domain == domain {
			out = append(out, t)
		}
	}
	return out
}

func filter(users []client.UserRecord, keep func(client.UserRecord) bool) []client.UserRecord {
	out := make([]client.UserRecord, 0, len(users))
	for _, u := range users {
		if keep(u) {
			out = append(out, u)
		}
	}
	return out
}
