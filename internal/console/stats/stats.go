// Package stats derives the dashboard figures from the latest user snapshot.
// Every function is pure and tolerates empty input.
package stats

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/nnsolutions/isms/internal/console/client"
	"github.com/nnsolutions/isms/internal/console/scope"
)

// Placeholder is shown before the first successful load.
const Placeholder = "--"

// Productivity returns round(active/total*100). An empty list yields 0.
func Productivity(users []client.UserRecord) int {
	if len(users) == 0 {
		return 0
	}
	active := 0
	for _, u := range users {
		if u.IsActive() {
			active++
		}
	}
	return int(math.Round(float64(active) / float64(len(users)) * 100))
}

// Percent formats a percentage for display.
func Percent(p int) string {
	return strconv.Itoa(p) + "%"
}

// AdminStats backs the admin dashboard cards.
type AdminStats struct {
	DailyProductivity string
	WeeklyActivity    string
}

func Admin(users []client.UserRecord) AdminStats {
	p := Percent(Productivity(users))
	return AdminStats{DailyProductivity: p, WeeklyActivity: p}
}

// EmptyAdmin is the admin card state before any data arrived.
func EmptyAdmin() AdminStats {
	return AdminStats{DailyProductivity: Placeholder, WeeklyActivity: Placeholder}
}

// MentorStats backs the mentor dashboard's domain card.
type MentorStats struct {
	ActiveUsers int
	Activity    string
}

// MentorDomain summarises the users whose department equals domain.
func MentorDomain(users []client.UserRecord, domain string) MentorStats {
	inDomain := scope.InDomain(users, domain)
	return MentorStats{
		ActiveUsers: len(scope.Active(inDomain)),
		Activity:    Percent(Productivity(inDomain)),
	}
}

const (
	ProductivityGood    = "Good"
	ProductivityPending = "Pending"
)

// SuperAdminStats backs the super admin overview.
type SuperAdminStats struct {
	TotalUsers          int
	TotalAdmins         int
	AverageActivity     string
	TopDomain           string
	OverallProductivity string
	MonthYear           string
}

func SuperAdmin(admins, users []client.UserRecord, now time.Time) SuperAdminStats {
	overall := ProductivityPending
	if len(scope.Active(users)) > 0 {
		overall = ProductivityGood
	}
	return SuperAdminStats{
		TotalUsers:          len(users),
		TotalAdmins:         len(admins),
		AverageActivity:     Percent(Productivity(users)),
		TopDomain:           TopDomain(users),
		OverallProductivity: overall,
		MonthYear:           now.Format("January 2006"),
	}
}

// TopDomain returns the alphabetically greatest department name, compared
// case-insensitively. Users without a department are ignored.
func TopDomain(users []client.UserRecord) string {
	top := ""
	for _, u := range users {
		d := strings.TrimSpace(u.Department)
		if d == "" {
			continue
		}
		if top == "" || departmentLess(top, d) {
			top = d
		}
	}
	if top == "" {
		return Placeholder
	}
	return top
}

func departmentLess(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

// LogKind classifies an audit action for display.
type LogKind string

const (
	LogLogin  LogKind = "login"
	LogLogout LogKind = "logout"
	LogOther  LogKind = "other"
)

func ClassifyAction(action string) LogKind {
	a := strings.ToLower(action)
	switch {
	case strings.Contains(a, "log in"), strings.Contains(a, "logged in"):
		return LogLogin
	case strings.Contains(a, "log out"), strings.Contains(a, "logged out"):
		return LogLogout
	default:
		return LogOther
	}
}

// LogCounts tallies logins and logouts in entries.
func LogCounts(entries []client.LogEntry) (logins, logouts int) {
	for _, e := range entries {
		switch ClassifyAction(e.Action) {
		case LogLogin:
			logins++
		case LogLogout:
			logouts++
		}
	}
	return logins, logouts
}
