package client

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/login", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context, username string) error {
	return c.do(ctx, http.MethodPost, "/api/logout", map[string]string{"username": username}, nil)
}

func (c *Client) RecordActivity(ctx context.Context, a Activity) error {
	return c.do(ctx, http.MethodPost, "/activity", a, nil)
}

// ListUsers returns staff accounts. A non-empty role filters server-side.
func (c *Client) ListUsers(ctx context.Context, role string) ([]UserRecord, error) {
	path := "/api/users"
	if role != "" {
		path += "?role=" + url.QueryEscape(role)
	}
	var out []UserRecord
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateUser(ctx context.Context, in UserInput) (*UserRecord, error) {
	var out UserRecord
	if err := c.do(ctx, http.MethodPost, "/api/users", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id ID, in UserInput) (*UserRecord, error) {
	var out UserRecord
	if err := c.do(ctx, http.MethodPut, "/api/users/"+url.PathEscape(id.String()), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id ID) error {
	return c.do(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(id.String()), nil, nil)
}

func (c *Client) ListAdmins(ctx context.Context) ([]UserRecord, error) {
	var out []UserRecord
	if err := c.do(ctx, http.MethodGet, "/api/admins", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAdmin(ctx context.Context, in UserInput) (*UserRecord, error) {
	var out UserRecord
	if err := c.do(ctx, http.MethodPost, "/api/admins", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAdmin(ctx context.Context, id ID, in UserInput) (*UserRecord, error) {
	var out UserRecord
	if err := c.do(ctx, http.MethodPut, "/api/admins/"+url.PathEscape(id.String()), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAdmin(ctx context.Context, id ID) error {
	return c.do(ctx, http.MethodDelete, "/api/admins/"+url.PathEscape(id.String()), nil, nil)
}

func (c *Client) ListReports(ctx context.Context, kind ReportKind) ([]Report, error) {
	var out []Report
	if err := c.do(ctx, http.MethodGet, kind.path(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateReport returns the report as stored by the server.
func (c *Client) CreateReport(ctx context.Context, kind ReportKind, r Report) (*Report, error) {
	var out Report
	if err := c.do(ctx, http.MethodPost, kind.path(), r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteReport(ctx context.Context, kind ReportKind, id string) error {
	return c.do(ctx, http.MethodDelete, kind.path()+"/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListLogs(ctx context.Context) ([]LogEntry, error) {
	var out []LogEntry
	if err := c.do(ctx, http.MethodGet, "/api/logs", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ClearLogs(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/logs/clear", nil, nil)
}

func (c *Client) MentorPerformance(ctx context.Context) ([]MentorPerformance, error) {
	var out []MentorPerformance
	if err := c.do(ctx, http.MethodGet, "/api/mentors/performance", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	var out []Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTask(ctx context.Context, t Task) (*Task, error) {
	var out Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", t, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTask(ctx context.Context, id ID, in TaskUpdate) (*Task, error) {
	var out Task
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(id.String()), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) NotifySuperAdmin(ctx context.Context, n Notification) error {
	return c.do(ctx, http.MethodPost, "/api/notifications/super-admin", n, nil)
}
