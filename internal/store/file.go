// Copyright (c) 2026 FinSight Labs <oss@finsight.dev>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists each key as a file beneath the finctl cache directory.
// The filename is the hashed key. The zero value is ready to use.
type FileStore struct{}

// Dir resolves the base cache directory.
// Precedence:
//  1. FINCTL_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/finctl
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("FINCTL_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "finctl"), true
	}
	return "", false
}

// Enabled returns true unless FINCTL_CACHE explicitly disables it ("0"/"false").
func Enabled() bool {
	enabled, _ := os.LookupEnv("FINCTL_CACHE")
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// EnsureBaseDir creates the base cache directory if caching is enabled and
// a base path can be resolved. Returns the path, whether it is usable, and an
// error if creation failed.
func EnsureBaseDir() (string, bool, error) {
	if !Enabled() {
		return "", false, nil
	}
	base, ok := Dir()
	if !ok {
		return "", false, nil
	}
	if err := os.MkdirAll(base, 0o755); err != nil { //nolint:mnd
		return base, false, fmt.Errorf("failed to create cache base directory: %w", err)
	}
	return base, true, nil
}

// Get reads the value stored for key. A disabled cache, an unresolvable base
// dir and a missing file all report a miss.
func (s *FileStore) Get(key string) (string, bool) {
	if !Enabled() {
		return "", false
	}
	base, ok := Dir()
	if !ok {
		return "", false
	}
	b, err := os.ReadFile(filepath.Join(base, encodeKey(key)))
	if err != nil {
		return "", false
	}
	b = bytes.TrimSpace(b)
	return string(b), true
}

// Set stores value for key. Creates the cache directory as needed. A disabled
// cache is a silent no-op.
func (s *FileStore) Set(key string, value string) error {
	if !Enabled() {
		return nil // treat as disabled.
	}
	base, ok := Dir()
	if !ok {
		return nil // treat as disabled.
	}
	if err := os.MkdirAll(base, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	p := filepath.Join(base, encodeKey(key))
	if err := os.WriteFile(p, []byte(value), os.FileMode(0o600)); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

// Remove deletes the file for key, if any. A disabled cache must not touch
// files on disk; whatever is persisted stays for when caching is re-enabled.
func (s *FileStore) Remove(key string) {
	if !Enabled() {
		return
	}
	base, ok := Dir()
	if !ok {
		return
	}
	_ = os.Remove(filepath.Join(base, encodeKey(key)))
}

// encodeKey hashes k with MD5 and returns the hex string.
func encodeKey(k string) string {
	h := md5.New()
	_, _ = h.Write([]byte(k))
	return hex.EncodeToString(h.Sum(nil))
}
