// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local stores uploaded files on the filesystem. The directory is created
// at startup; the router serves it statically under /uploads/.
type Local struct {
	dir string
}

// NewLocal creates the upload directory if needed and returns a Local store.
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &Local{dir: dir}, nil
}

// Dir returns the directory files are written to. The router needs it for
// the static file server.
func (l *Local) Dir() string {
	return l.dir
}

// Save writes the blob to <dir>/<key>. A partial write is removed so a
// failed upload never leaves a truncated file behind.
func (l *Local) Save(ctx context.Context, key, contentType string, r io.Reader, size int64) error {
	path := filepath.Join(l.dir, key)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create upload file %s: %w", key, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write upload file %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close upload file %s: %w", key, err)
	}
	return nil
}

// PublicPath returns the relative path stored on content records, matching
// the static mount point in the router.
func (l *Local) PublicPath(key string) string {
	return "/uploads/" + key
}
