// Package storage keeps agent screenshots on local disk.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ScreenshotDir saves screenshots as <dir>/<username>_<unix>.png.
type ScreenshotDir struct {
	dir string
}

func NewScreenshotDir(dir string) *ScreenshotDir {
	return &ScreenshotDir{dir: dir}
}

func (s *ScreenshotDir) Save(_ context.Context, username string, image []byte, at time.Time) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create screenshot dir: %w", err)
	}
	name := fmt.Sprintf("%s_%d.png", safeName(username), at.Unix())
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, image, 0o644); err != nil {
		return "", fmt.Errorf("write screenshot: %w", err)
	}
	return path, nil
}

// safeName keeps the file inside dir whatever the agent sends as username.
func safeName(username string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.', r == '@':
			return r
		}
		return '_'
	}, username)
	name = strings.TrimLeft(name, ".")
	if name == "" {
		return "unknown"
	}
	return name
}
