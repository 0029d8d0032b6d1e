// Copyright (c) 2026 FinSight Labs <oss@finsight.dev>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("FINCTL_CACHE_DIR", dir)
	t.Setenv("FINCTL_CACHE", "")
	return dir
}

func TestFileStore_RoundTrip(t *testing.T) {
	setupTestDir(t)
	s := &FileStore{}

	_, ok := s.Get("portfolio_data")
	assert.False(t, ok, "empty store should miss")

	require.NoError(t, s.Set("portfolio_data", `{"holdings":[]}`))

	v, ok := s.Get("portfolio_data")
	assert.True(t, ok)
	assert.Equal(t, `{"holdings":[]}`, v)

	s.Remove("portfolio_data")
	_, ok = s.Get("portfolio_data")
	assert.False(t, ok)
}

func TestFileStore_HashedFilenames(t *testing.T) {
	dir := setupTestDir(t)
	s := &FileStore{}

	require.NoError(t, s.Set("portfolio_timestamp", "1700000000000"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	// Filename is the MD5 hex of the key, not the clear key.
	assert.NotEqual(t, "portfolio_timestamp", entries[0].Name())
	assert.Len(t, entries[0].Name(), 32)
}

func TestFileStore_Disabled(t *testing.T) {
	dir := setupTestDir(t)
	s := &FileStore{}

	// Seed persisted state while caching is enabled.
	require.NoError(t, s.Set("portfolio_data", `{"holdings":[]}`))
	require.NoError(t, s.Set("portfolio_timestamp", "1700000000000"))

	t.Setenv("FINCTL_CACHE", "0")

	assert.NoError(t, s.Set("k", "v"), "disabled set is a no-op")
	_, ok := s.Get("k")
	assert.False(t, ok, "disabled get is a miss")
	_, ok = s.Get("portfolio_data")
	assert.False(t, ok, "disabled get misses even for persisted keys")

	// Remove must not reach the disk either; the persisted snapshot has to
	// survive the disabled window.
	s.Remove("portfolio_data")
	s.Remove("portfolio_timestamp")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "disabled remove leaves persisted files intact")

	t.Setenv("FINCTL_CACHE", "")
	v, ok := s.Get("portfolio_data")
	assert.True(t, ok, "re-enabling brings the persisted value back")
	assert.Equal(t, `{"holdings":[]}`, v)
}

func TestDir_Precedence(t *testing.T) {
	t.Setenv("FINCTL_CACHE_DIR", "/tmp/finctl-test-cache")
	dir, ok := Dir()
	assert.True(t, ok)
	assert.Equal(t, "/tmp/finctl-test-cache", dir)
}

func TestEnsureBaseDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "cache")
	t.Setenv("FINCTL_CACHE_DIR", base)
	t.Setenv("FINCTL_CACHE", "")

	dir, ok, err := EnsureBaseDir()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, base, dir)
	assert.DirExists(t, base)
}

func TestEnsureBaseDir_CreateFailure(t *testing.T) {
	// Point the base dir beneath a regular file so MkdirAll must fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	t.Setenv("FINCTL_CACHE_DIR", filepath.Join(blocker, "cache"))
	t.Setenv("FINCTL_CACHE", "")

	_, ok, err := EnsureBaseDir()
	require.Error(t, err)
	assert.False(t, ok, "a failed create never reports the dir as usable")
}

func TestPurge_RemovesOldFiles(t *testing.T) {
	dir := setupTestDir(t)
	s := &FileStore{}

	require.NoError(t, s.Set("old", "x"))
	require.NoError(t, s.Set("new", "y"))

	// Age the "old" entry past the purge window.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	old := filepath.Join(dir, entries[0].Name())
	stale := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(old, stale, stale))

	require.NoError(t, Purge(24))

	entries, err = os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPurge_DisabledForZeroHours(t *testing.T) {
	dir := setupTestDir(t)
	s := &FileStore{}
	require.NoError(t, s.Set("k", "v"))

	require.NoError(t, Purge(0))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "purge with hours<=0 is a no-op")
}

func TestClear(t *testing.T) {
	dir := setupTestDir(t)
	s := &FileStore{}
	require.NoError(t, s.Set("a", "1"))
	require.NoError(t, s.Set("b", "2"))

	require.NoError(t, Clear())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStatus_ResolvesWellKnownKeys(t *testing.T) {
	setupTestDir(t)
	s := &FileStore{}
	RegisterKey("portfolio_data")
	require.NoError(t, s.Set("portfolio_data", `{}`))

	entries, err := Status()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "portfolio_data", entries[0].Key)
	assert.Equal(t, int64(2), entries[0].Size)
}

func TestMemStore(t *testing.T) {
	s := NewMemStore()

	_, ok := s.Get("k")
	assert.False(t, ok)

	assert.NoError(t, s.Set("k", "v"))
	v, ok := s.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	s.Remove("k")
	_, ok = s.Get("k")
	assert.False(t, ok)

	s.FailSets = true
	assert.Error(t, s.Set("k", "v"))
}
