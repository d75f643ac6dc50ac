package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/nnsolutions/isms/internal/core/domain"
	"github.com/nnsolutions/isms/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Accounts
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	notFound  error
	byID      map[int64]*domain.Account
	nextID    int64
	createErr error
	updates   []ports.AccountPatch
}

func newStubAccountRepo(notFound error) *stubAccountRepo {
	return &stubAccountRepo{notFound: notFound, byID: make(map[int64]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) seed(a *domain.Account) *domain.Account {
	r.nextID++
	a.ID = r.nextID
	r.byID[a.ID] = cloneAccount(a)
	return a
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.byID {
		if existing.Username == a.Username {
			return nil, domain.ErrUserExists
		}
	}
	return cloneAccount(r.seed(cloneAccount(a))), nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id int64) (*domain.Account, error) {
	if a, ok := r.byID[id]; ok {
		return cloneAccount(a), nil
	}
	return nil, r.notFound
}

func (r *stubAccountRepo) FindByLogin(_ context.Context, identifier string) (*domain.Account, error) {
	for _, a := range r.byID {
		if a.Username == identifier || a.Email == identifier {
			return cloneAccount(a), nil
		}
	}
	return nil, r.notFound
}

func (r *stubAccountRepo) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	for _, a := range r.byID {
		if a.Username == username {
			return cloneAccount(a), nil
		}
	}
	return nil, r.notFound
}

func (r *stubAccountRepo) List(_ context.Context, roleFilter string) ([]*domain.Account, error) {
	var out []*domain.Account
	for _, a := range r.byID {
		if strings.Contains(strings.ToLower(a.Role), strings.ToLower(roleFilter)) {
			out = append(out, cloneAccount(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubAccountRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var n int64
	for _, a := range r.byID {
		if role == "" || domain.SameRole(a.Role, role) {
			n++
		}
	}
	return n, nil
}

func (r *stubAccountRepo) Update(_ context.Context, id int64, p ports.AccountPatch) (*domain.Account, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, r.notFound
	}
	r.updates = append(r.updates, p)
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&a.CustomID, p.CustomID)
	set(&a.Username, p.Username)
	set(&a.Email, p.Email)
	set(&a.PasswordHash, p.PasswordHash)
	set(&a.Role, p.Role)
	set(&a.Domain, p.Domain)
	set(&a.Designation, p.Designation)
	set(&a.Status, p.Status)
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) Delete(_ context.Context, id int64) (*domain.Account, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, r.notFound
	}
	delete(r.byID, id)
	return a, nil
}

// ---------------------------------------------------------------------------
// Audit trail
// ---------------------------------------------------------------------------

type stubLogRepo struct {
	entries   []*domain.LogEntry
	createErr error
	closed    []string
	openFound bool
	counts    map[string]int64
	cleared   int64
}

func (r *stubLogRepo) List(_ context.Context, _ int64) ([]*domain.LogEntry, error) {
	return r.entries, nil
}

func (r *stubLogRepo) Create(_ context.Context, e *domain.LogEntry) (*domain.LogEntry, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	e.ID = int64(len(r.entries) + 1)
	r.entries = append(r.entries, e)
	return e, nil
}

func (r *stubLogRepo) CloseLatest(_ context.Context, username string, _ time.Time, action string) (bool, error) {
	r.closed = append(r.closed, username+":"+action)
	return r.openFound, nil
}

func (r *stubLogRepo) CountByUsername(_ context.Context, username string) (int64, error) {
	return r.counts[username], nil
}

func (r *stubLogRepo) Clear(_ context.Context) (int64, error) {
	n := int64(len(r.entries))
	r.entries = nil
	r.cleared += n
	return n, nil
}

func (r *stubLogRepo) last() *domain.LogEntry {
	if len(r.entries) == 0 {
		return nil
	}
	return r.entries[len(r.entries)-1]
}

// ---------------------------------------------------------------------------
// Infrastructure
// ---------------------------------------------------------------------------

type stubLocker struct {
	keys []string
	err  error
}

func (l *stubLocker) WithLock(ctx context.Context, key string, _ time.Duration, fn func(ctx context.Context) error) error {
	if l.err != nil {
		return l.err
	}
	l.keys = append(l.keys, key)
	return fn(ctx)
}

type stubDedup struct {
	seen map[string]bool
	err  error
}

func (d *stubDedup) FirstSeen(_ context.Context, username, action, timestamp string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	if d.seen == nil {
		d.seen = make(map[string]bool)
	}
	key := username + ":" + action + ":" + timestamp
	if d.seen[key] {
		return false, nil
	}
	d.seen[key] = true
	return true, nil
}

type stubScreenshots struct {
	saved map[string][]byte
}

func (s *stubScreenshots) Save(_ context.Context, username string, image []byte, at time.Time) (string, error) {
	if s.saved == nil {
		s.saved = make(map[string][]byte)
	}
	path := "shots/" + username + ".png"
	s.saved[path] = image
	return path, nil
}

type stubActivityRepo struct {
	inserted []*domain.Activity
	err      error
}

func (r *stubActivityRepo) Insert(_ context.Context, a *domain.Activity) error {
	if r.err != nil {
		return r.err
	}
	r.inserted = append(r.inserted, a)
	return nil
}

type stubReportRepo struct {
	reports map[domain.ReportKind][]*domain.Report
}

func (r *stubReportRepo) List(_ context.Context, kind domain.ReportKind) ([]*domain.Report, error) {
	return r.reports[kind], nil
}

func (r *stubReportRepo) Create(_ context.Context, rep *domain.Report) error {
	if r.reports == nil {
		r.reports = make(map[domain.ReportKind][]*domain.Report)
	}
	r.reports[rep.Kind] = append(r.reports[rep.Kind], rep)
	return nil
}

func (r *stubReportRepo) Delete(_ context.Context, kind domain.ReportKind, id string) error {
	list := r.reports[kind]
	for i, rep := range list {
		if rep.ID == id {
			r.reports[kind] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return domain.ErrReportNotFound
}

type stubExporter struct {
	kind  domain.ReportKind
	count int
}

func (e *stubExporter) Reports(kind domain.ReportKind, reports []*domain.Report) ([]byte, error) {
	e.kind = kind
	e.count = len(reports)
	return []byte("xlsx"), nil
}

type stubInbox struct {
	pushed []domain.Notification
	limit  int64
}

func (s *stubInbox) Push(_ context.Context, n domain.Notification) error {
	s.pushed = append(s.pushed, n)
	return nil
}

func (s *stubInbox) List(_ context.Context, limit int64) ([]domain.Notification, error) {
	s.limit = limit
	return s.pushed, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
