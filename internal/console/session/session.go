// Package session holds the signed-in console user.
//
// The session is read once when a dashboard is mounted and is written only by
// the login and logout flows. Dashboards receive the loaded *Session through
// their constructors instead of reaching into the store themselves.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleMentor     = "mentor"
	RoleUser       = "user"
)

// Session is the persisted current-user record.
type Session struct {
	Username    string `json:"username"`
	Role        string `json:"role"`
	Domain      string `json:"domain"`
	Designation string `json:"designation"`
	CustomID    string `json:"custom_id"`
	Token       string `json:"token,omitempty"`
}

// NormalizedRole returns the role lower-cased, the form used for routing.
func (s *Session) NormalizedRole() string {
	if s == nil {
		return ""
	}
	return strings.ToLower(s.Role)
}

// Store persists at most one Session.
type Store interface {
	// Load returns nil, nil when nobody is signed in.
	Load() (*Session, error)
	Save(s *Session) error
	Clear() error
}

// FileStore keeps the session as a JSON document on local disk.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load() (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session: %w", err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, nil
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.Username == "" {
		return nil, nil
	}
	return &s, nil
}

func (f *FileStore) Save(s *Session) error {
	if s == nil {
		return f.Clear()
	}
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(f.path, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the stored session. Clearing an empty store is not an error.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu      sync.Mutex
	current *Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil, nil
	}
	clone := *m.current
	return &clone, nil
}

func (m *MemoryStore) Save(s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s == nil {
		m.current = nil
		return nil
	}
	clone := *s
	m.current = &clone
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
	return nil
}
