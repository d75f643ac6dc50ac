package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/nnsolutions/isms/internal/console/app"
	"github.com/nnsolutions/isms/internal/console/client"
	"github.com/nnsolutions/isms/internal/console/dashboard"
	"github.com/nnsolutions/isms/internal/console/render"
	"github.com/nnsolutions/isms/internal/console/reportform"
)

var errQuit = errors.New("quit")

// readPasswordFunc reads a password without echo. Replaced in tests.
var readPasswordFunc = term.ReadPassword

type command struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

type repl struct {
	shell    *app.Shell
	in       *bufio.Scanner
	out      io.Writer
	terminal int
	commands map[string]command
}

func newREPL(shell *app.Shell, in io.Reader, out io.Writer) *repl {
	r := &repl{
		shell:    shell,
		in:       bufio.NewScanner(in),
		out:      out,
		terminal: -1,
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		r.terminal = int(f.Fd())
	}
	r.commands = map[string]command{
		"help":          {"help", r.help},
		"login":         {"login <username> [role]", r.login},
		"logout":        {"logout", r.logout},
		"go":            {"go <path>", r.navigate},
		"show":          {"show", r.show},
		"whoami":        {"whoami", r.whoami},
		"report":        {"report <field> <value>", r.editReport},
		"report-date":   {"report-date <YYYY-MM-DD>", r.reportDate},
		"report-submit": {"report-submit", r.submitReport},
		"delete-report": {"delete-report <daily|weekly> <id>", r.deleteReport},
		"delete-admin":  {"delete-admin <id>", r.deleteAdmin},
		"delete-user":   {"delete-user <id>", r.deleteUser},
		"clear-logs":    {"clear-logs", r.clearLogs},
		"check-task":    {"check-task <id>", r.checkTask},
		"quit":          {"quit", func(context.Context, []string) error { return errQuit }},
	}
	return r
}

func (r *repl) run(ctx context.Context) error {
	color.New(color.FgCyan, color.Bold).Fprintln(r.out, "ISMS console. Type 'help' for commands.")
	for {
		fmt.Fprintf(r.out, "%s> ", r.shell.Path())
		if !r.in.Scan() {
			return r.in.Err()
		}
		if err := r.exec(ctx, r.in.Text()); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			color.New(color.FgRed).Fprintf(r.out, "error: %v\n", err)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (r *repl) exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name := strings.ToLower(fields[0])
	if name == "exit" {
		name = "quit"
	}
	cmd, ok := r.commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q", fields[0])
	}
	return cmd.run(ctx, fields[1:])
}

func (r *repl) help(context.Context, []string) error {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(r.out, "  %s\n", r.commands[name].usage)
	}
	return nil
}

func (r *repl) password() (string, error) {
	fmt.Fprint(r.out, "Password: ")
	if r.terminal >= 0 {
		b, err := readPasswordFunc(r.terminal)
		fmt.Fprintln(r.out)
		return string(b), err
	}
	if !r.in.Scan() {
		return "", io.ErrUnexpectedEOF
	}
	return r.in.Text(), nil
}

func (r *repl) login(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: login <username> [role]")
	}
	creds := client.Credentials{Username: args[0]}
	if len(args) == 2 {
		creds.Role = args[1]
	}
	pw, err := r.password()
	if err != nil {
		return err
	}
	creds.Password = pw

	sess, err := r.shell.Login(ctx, creds)
	if err != nil {
		var le *app.LoginError
		if errors.As(err, &le) {
			return errors.New(le.Message)
		}
		return err
	}
	color.New(color.FgGreen).Fprintf(r.out, "Welcome, %s (%s)\n", sess.Username, sess.Role)
	return r.show(ctx, nil)
}

func (r *repl) logout(ctx context.Context, _ []string) error {
	if err := r.shell.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(r.out, "Logged out.")
	return nil
}

func (r *repl) navigate(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: go <path>")
	}
	r.shell.Navigate(args[0])
	return r.show(ctx, nil)
}

func (r *repl) show(context.Context, []string) error {
	d := r.shell.Dashboard()
	if d == nil {
		fmt.Fprintln(r.out, "Not signed in. Use: login <username>")
		return nil
	}
	render.Dashboard(r.out, d)
	return nil
}

func (r *repl) whoami(context.Context, []string) error {
	sess := r.shell.Session()
	if sess == nil {
		fmt.Fprintln(r.out, "Not signed in.")
		return nil
	}
	fmt.Fprintf(r.out, "%s  role=%s  domain=%s  id=%s\n", sess.Username, sess.Role, sess.Domain, sess.CustomID)
	return nil
}

func (r *repl) superAdmin() (*dashboard.SuperAdmin, error) {
	sa, ok := r.shell.Dashboard().(*dashboard.SuperAdmin)
	if !ok {
		return nil, errors.New("only available on the super admin dashboard")
	}
	return sa, nil
}

// reportFields maps report command field names to draft setters.
var reportFields = map[string]func(f *reportform.Form, v string){
	"name":        func(f *reportform.Form, v string) { f.Name = v },
	"content":     func(f *reportform.Form, v string) { f.ReportContent = v },
	"project":     func(f *reportform.Form, v string) { f.ProjectName = v },
	"designation": func(f *reportform.Form, v string) { f.Designation = v },
	"mobile":      func(f *reportform.Form, v string) { f.MobileNumber = v },
	"email":       func(f *reportform.Form, v string) { f.Email = v },
	"summary":     func(f *reportform.Form, v string) { f.WeeklySummary = v },
	"attachment":  func(f *reportform.Form, v string) { f.AttachmentName = v },
}

func (r *repl) editReport(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: report <field> <value>")
	}
	set, ok := reportFields[strings.ToLower(args[0])]
	if !ok {
		return fmt.Errorf("unknown report field %q", args[0])
	}
	sa, err := r.superAdmin()
	if err != nil {
		return err
	}
	value := strings.Join(args[1:], " ")
	sa.EditReport(func(f *reportform.Form) { set(f, value) })
	return r.show(ctx, nil)
}

func (r *repl) reportDate(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: report-date <YYYY-MM-DD>")
	}
	sa, err := r.superAdmin()
	if err != nil {
		return err
	}
	return sa.SetReportDate(args[0])
}

func (r *repl) submitReport(context.Context, []string) error {
	sa, err := r.superAdmin()
	if err != nil {
		return err
	}
	return sa.SubmitReport()
}

func (r *repl) deleteReport(_ context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: delete-report <daily|weekly> <id>")
	}
	sa, err := r.superAdmin()
	if err != nil {
		return err
	}
	return sa.DeleteReport(client.ReportKind(strings.ToLower(args[0])), args[1])
}

func (r *repl) deleteAdmin(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: delete-admin <id>")
	}
	sa, err := r.superAdmin()
	if err != nil {
		return err
	}
	return sa.DeleteAdmin(client.ID(args[0]))
}

func (r *repl) deleteUser(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: delete-user <id>")
	}
	sa, err := r.superAdmin()
	if err != nil {
		return err
	}
	return sa.DeleteUser(client.ID(args[0]))
}

func (r *repl) clearLogs(context.Context, []string) error {
	sa, err := r.superAdmin()
	if err != nil {
		return err
	}
	return sa.ClearLogs()
}

func (r *repl) checkTask(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: check-task <id>")
	}
	m, ok := r.shell.Dashboard().(*dashboard.Mentor)
	if !ok {
		return errors.New("only available on the mentor dashboard")
	}
	m.CheckTask(client.ID(args[0]))
	return nil
}
