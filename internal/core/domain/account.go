package domain

import (
	"fmt"
	"strings"
	"time"
)

// Roles as stored. Staff accounts keep the capitalised "User" the legacy
// clients send.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleMentor     = "mentor"
	RoleUser       = "User"
)

const (
	StatusActive  = "Active"
	StatusOffline = "Offline"
)

// DefaultPassword is assigned when an account is created without one.
const DefaultPassword = "123"

// AccountKind selects the collection an account lives in: privileged
// accounts (superadmin, admin, mentor) or staff.
type AccountKind string

const (
	KindAdmin AccountKind = "admin"
	KindUser  AccountKind = "user"
)

// Account is a console login, privileged or staff.
type Account struct {
	ID           int64     `json:"id"`
	CustomID     string    `json:"custom_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Domain       string    `json:"domain"`
	Designation  string    `json:"designation"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"-"`
}

// SameRole compares roles case-insensitively.
func SameRole(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// IDPrefix is the custom ID prefix for role.
func IDPrefix(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case RoleSuperAdmin:
		return "SA"
	case RoleMentor:
		return "MT"
	case "user":
		return "US"
	default:
		return "AD"
	}
}

// CustomID formats the n-th ID issued for prefix in the year of now,
// e.g. "US/IN/26/0007".
func CustomID(prefix string, now time.Time, n int64) string {
	return fmt.Sprintf("%s/IN/%s/%04d", prefix, now.Format("06"), n)
}

// Actor is the authenticated caller of a request.
type Actor struct {
	Username string
	Role     string
	Domain   string
	Email    string
}
