package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RoutePrefix is where the HTTP server exposes the local store.
const RoutePrefix = "/files"

// Local writes objects below Dir and serves them from BaseURL + RoutePrefix.
type Local struct {
	Dir     string
	BaseURL string
}

func NewLocal(dir, baseURL string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("blob: create %s: %w", dir, err)
	}
	return &Local{Dir: dir, BaseURL: baseURL}, nil
}

func (l *Local) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("blob: invalid key %q", key)
	}
	full := filepath.Join(l.Dir, clean)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("blob: mkdir for %s: %w", key, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("blob: write %s: %w", key, err)
	}
	return joinURL(l.BaseURL+RoutePrefix, key), nil
}
