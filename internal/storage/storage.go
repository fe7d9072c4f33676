// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage provides blob storage for uploaded files. Two backends
// exist: local disk (default, served statically under /uploads/) and an
// S3-compatible object store. Files are write-once: replacing or clearing
// a record's image never removes the previously stored blob.
package storage

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
)

// Storage is the interface both backends implement.
type Storage interface {
	// Save persists the blob under key. The write is synchronous; the
	// request that triggered it is not complete until Save returns.
	Save(ctx context.Context, key, contentType string, r io.Reader, size int64) error

	// PublicPath returns the reference stored on the content record and
	// handed to clients (a relative path for local storage, a URL for S3).
	PublicPath(key string) string
}

// unsafeKeyChars matches filename characters that need replacing before
// the name can be used as a storage key or URL path segment.
var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// UploadKey builds a collision-resistant storage key from the original
// filename: unix-millisecond timestamp plus the sanitized name.
func UploadKey(originalName string) string {
	name := strings.TrimSpace(originalName)
	name = unsafeKeyChars.ReplaceAllString(name, "_")
	if name == "" || name == "." || name == ".." {
		name = "file"
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), name)
}
