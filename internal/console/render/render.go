// Package render prints dashboard snapshots as plain-text tables.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/nnsolutions/isms/internal/console/client"
	"github.com/nnsolutions/isms/internal/console/dashboard"
	"github.com/nnsolutions/isms/internal/console/reportform"
	"github.com/nnsolutions/isms/internal/console/stats"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	good    = color.New(color.FgGreen)
	bad     = color.New(color.FgRed)
	muted   = color.New(color.FgYellow)
)

// Dashboard prints the active view of d.
func Dashboard(w io.Writer, d dashboard.Dashboard) {
	switch v := d.(type) {
	case *dashboard.SuperAdmin:
		SuperAdmin(w, v.Snapshot())
	case *dashboard.Admin:
		Admin(w, v.Snapshot())
	case *dashboard.Mentor:
		Mentor(w, v.Snapshot())
	case *dashboard.User:
		title(w, "Dashboard")
		fmt.Fprintln(w, v.Greeting())
	}
}

func SuperAdmin(w io.Writer, s dashboard.SuperAdminState) {
	loadError(w, s.LoadError)
	switch s.View {
	case dashboard.SuperViewAdmins:
		title(w, "Admins")
		Users(w, s.Admins)
	case dashboard.SuperViewUsers:
		title(w, "Users")
		Users(w, s.Users)
	case dashboard.SuperDailyReports, dashboard.SuperWeeklyReports:
		Reports(w, s.Reports)
	case dashboard.SuperLogsAudit:
		title(w, "Audit Logs")
		Logs(w, s.Logs)
	case dashboard.SuperCreateAdmin:
		title(w, "Admin Form")
		editing(w, s.EditingAdmin)
	case dashboard.SuperCreateUser:
		title(w, "User Form")
		editing(w, s.EditingUser)
	case dashboard.SuperSystemSettings:
		title(w, "System Settings")
	default:
		title(w, "Overview "+s.Stats.MonthYear)
		card(w, [][2]string{
			{"Total users", count(s.Stats.TotalUsers, s.StatsReady)},
			{"Total admins", count(s.Stats.TotalAdmins, s.StatsReady)},
			{"Average activity", s.Stats.AverageActivity},
			{"Top domain", s.Stats.TopDomain},
			{"Overall productivity", s.Stats.OverallProductivity},
		})
		title(w, "Recent activity")
		Logs(w, s.Logs)
	}
}

func Admin(w io.Writer, s dashboard.AdminState) {
	loadError(w, s.LoadError)
	switch s.View {
	case dashboard.AdminUsers:
		title(w, "Users")
		Users(w, s.Users)
	case dashboard.AdminCreateUser:
		title(w, "User Form")
		editing(w, s.Editing)
	case dashboard.AdminDailyReports, dashboard.AdminWeeklyReports:
		Reports(w, s.Reports)
	case dashboard.AdminDomains:
		title(w, "Domains")
		for _, d := range s.Domains {
			fmt.Fprintln(w, "  "+d)
		}
	case dashboard.AdminMentors:
		title(w, "Mentors")
		Users(w, s.Mentors)
	case dashboard.AdminMonitoring:
		title(w, "Monitoring")
		Users(w, s.Users)
	case dashboard.AdminLogs:
		title(w, "Logs")
		Logs(w, s.Logs)
	default:
		title(w, "Overview")
		card(w, [][2]string{
			{"Daily productivity", s.Stats.DailyProductivity},
			{"Weekly activity", s.Stats.WeeklyActivity},
			{"Staff", strconv.Itoa(len(s.Users))},
			{"Daily reports", strconv.Itoa(len(s.Reports.Daily))},
		})
		title(w, "Top mentors")
		Leaders(w, s.Leaders)
	}
}

func Mentor(w io.Writer, s dashboard.MentorState) {
	loadError(w, s.LoadError)
	if s.Error != "" {
		bad.Fprintln(w, s.Error)
	}
	switch s.View {
	case dashboard.MentorUsers:
		title(w, "Users in "+s.Domain)
		Users(w, s.DomainUsers)
	case dashboard.MentorDailyReports, dashboard.MentorWeeklyReports:
		Reports(w, s.Reports)
	case dashboard.MentorTasks:
		title(w, "Assigned Tasks")
		Tasks(w, s.Tasks)
	case dashboard.MentorAssignTask:
		title(w, "Assign Task")
		fmt.Fprintf(w, "Domain: %s\n", s.Domain)
	case dashboard.MentorCredentials:
		title(w, "Credentials")
	default:
		title(w, "Domain "+s.Domain)
		active, activity := stats.Placeholder, stats.Placeholder
		if s.StatsReady {
			active, activity = strconv.Itoa(s.Stats.ActiveUsers), s.Stats.Activity
		}
		card(w, [][2]string{
			{"Active users", active},
			{"Activity", activity},
		})
	}
}

// Users prints an account table.
func Users(w io.Writer, users []client.UserRecord) {
	if len(users) == 0 {
		empty(w)
		return
	}
	tw := table(w)
	fmt.Fprintln(tw, "ID\tCUSTOM ID\tUSERNAME\tEMAIL\tDOMAIN\tDESIGNATION\tROLE\tSTATUS")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			u.ID, u.CustomID, u.Username, u.Email, u.Department, u.Designation, u.Role, status(u))
	}
	tw.Flush()
}

// Reports prints the active report board.
func Reports(w io.Writer, s dashboard.ReportsState) {
	if s.Error != "" {
		bad.Fprintln(w, s.Error)
	}
	if s.Mode == dashboard.ModeForm {
		Form(w, s.Form)
		return
	}
	title(w, "Daily Reports")
	reportTable(w, s.Daily)
	if len(s.Weekly) > 0 {
		title(w, "Weekly Reports")
		reportTable(w, s.Weekly)
	}
}

func reportTable(w io.Writer, reports []client.Report) {
	if len(reports) == 0 {
		empty(w)
		return
	}
	tw := table(w)
	fmt.Fprintln(tw, "ID\tDATE\tDAY\tTITLE\tBY\tDESIGNATION\tSTATUS")
	for _, r := range reports {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Date, r.Day, r.Title, r.CreatedBy, r.Designation, r.Status)
	}
	tw.Flush()
}

// Form prints a report draft.
func Form(w io.Writer, f reportform.Form) {
	title(w, "New "+f.Kind.Label()+" Report")
	rows := [][2]string{
		{"Name", f.Name},
		{"Date", f.Date},
		{"Day", f.Day},
		{"Designation", f.Designation},
		{"Project", f.ProjectName},
		{"Mobile", f.MobileNumber},
		{"Email", f.Email},
		{"Attachment", f.AttachmentName},
		{"Content", f.ReportContent},
	}
	if f.Kind == client.Weekly {
		rows = append(rows, [2]string{"Weekly summary", f.WeeklySummary})
	}
	card(w, rows)
}

// Logs prints audit entries.
func Logs(w io.Writer, logs []client.LogEntry) {
	if len(logs) == 0 {
		empty(w)
		return
	}
	logins, logouts := stats.LogCounts(logs)
	fmt.Fprintf(w, "%d logins, %d logouts\n", logins, logouts)
	tw := table(w)
	fmt.Fprintln(tw, "TIME\tUSER\tROLE\tDOMAIN\tACTION")
	for _, l := range logs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", l.Timestamp, l.Username, l.Role, l.Domain, l.Action)
	}
	tw.Flush()
}

// Tasks prints the task board.
func Tasks(w io.Writer, tasks []client.Task) {
	if len(tasks) == 0 {
		empty(w)
		return
	}
	tw := table(w)
	fmt.Fprintln(tw, "ID\tTITLE\tASSIGNED TO\tDEADLINE\tPRIORITY\tSTATUS\tCHECKED")
	for _, t := range tasks {
		checked := ""
		if t.IsChecked {
			checked = good.Sprint("yes")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Title, t.AssignedTo, t.Deadline, t.Priority, t.Status, checked)
	}
	tw.Flush()
}

// Leaders prints mentor performance.
func Leaders(w io.Writer, leaders []client.MentorPerformance) {
	if len(leaders) == 0 {
		empty(w)
		return
	}
	tw := table(w)
	fmt.Fprintln(tw, "MENTOR\tACTIVITY")
	for _, l := range leaders {
		fmt.Fprintf(tw, "%s\t%d\n", l.Name, l.Activity)
	}
	tw.Flush()
}

func editing(w io.Writer, u *client.UserRecord) {
	if u == nil {
		fmt.Fprintln(w, "Creating a new account.")
		return
	}
	fmt.Fprintf(w, "Editing %s (%s)\n", u.Username, u.ID)
}

func card(w io.Writer, rows [][2]string) {
	tw := table(w)
	for _, r := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", r[0], r[1])
	}
	tw.Flush()
}

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func title(w io.Writer, s string) {
	heading.Fprintln(w, s)
	fmt.Fprintln(w, strings.Repeat("-", len(s)))
}

func empty(w io.Writer) {
	muted.Fprintln(w, "(none)")
}

func loadError(w io.Writer, msg string) {
	if msg != "" {
		bad.Fprintln(w, msg)
	}
}

// status is last in its row so color codes do not skew column widths.
func status(u client.UserRecord) string {
	if u.IsActive() {
		return good.Sprint(u.Status)
	}
	return bad.Sprint(u.Status)
}

func count(n int, ready bool) string {
	if !ready {
		return stats.Placeholder
	}
	return strconv.Itoa(n)
}
