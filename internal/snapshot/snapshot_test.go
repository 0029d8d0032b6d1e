// Copyright (c) 2026 FinSight Labs <oss@finsight.dev>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsightlabs/finctl/internal/store"
)

// fakeClock is an adjustable time source.
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time {
	return f.t
}

func (f *fakeClock) advance(d time.Duration) {
	f.t = f.t.Add(d)
}

func newTestCache(fetch FetchFunc) (*Cache, *store.MemStore, *fakeClock) {
	s := store.NewMemStore()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	return New(s, fetch, WithClock(clock.now)), s, clock
}

func noFetch(t *testing.T) FetchFunc {
	return func(context.Context) (json.RawMessage, error) {
		t.Fatal("remote fetch must not be invoked")
		return nil, nil
	}
}

func TestIsValid_FreshSnapshot(t *testing.T) {
	c, _, clock := newTestCache(nil)

	c.Write(json.RawMessage(`{"a":1}`))
	assert.True(t, c.IsValid(), "freshly written snapshot is valid")

	clock.advance(23*time.Hour + 59*time.Minute)
	assert.True(t, c.IsValid(), "still valid just inside the window")

	clock.advance(time.Minute)
	assert.False(t, c.IsValid(), "invalid at exactly 24h")
}

func TestIsValid_AbsentOrGarbageTimestamp(t *testing.T) {
	c, s, _ := newTestCache(nil)

	assert.False(t, c.IsValid(), "no timestamp means invalid")

	require.NoError(t, s.Set(TimestampKey, "not-a-number"))
	assert.False(t, c.IsValid(), "unparsable timestamp means invalid")
}

func TestRead_ExpiryClearsBothKeys(t *testing.T) {
	c, s, clock := newTestCache(nil)

	c.Write(json.RawMessage(`{"a":1}`))

	clock.advance(23*time.Hour + 59*time.Minute)
	snap := c.Read()
	require.NotNil(t, snap)
	assert.JSONEq(t, `{"a":1}`, string(snap.Payload))

	clock.advance(2 * time.Minute) // now at 24h01m
	assert.Nil(t, c.Read())

	_, ok := s.Get(DataKey)
	assert.False(t, ok, "payload key must be gone after expiry")
	_, ok = s.Get(TimestampKey)
	assert.False(t, ok, "timestamp key must be gone after expiry")
}

func TestRead_MissingPayload(t *testing.T) {
	c, s, clock := newTestCache(nil)

	require.NoError(t, s.Set(TimestampKey, strconv.FormatInt(clock.t.UnixMilli(), 10)))
	assert.Nil(t, c.Read(), "valid timestamp without payload reads as nil")
}

func TestRead_CorruptPayloadSelfHeals(t *testing.T) {
	c, s, clock := newTestCache(nil)

	require.NoError(t, s.Set(DataKey, `{"holdings": [`))
	require.NoError(t, s.Set(TimestampKey, strconv.FormatInt(clock.t.UnixMilli(), 10)))

	assert.Nil(t, c.Read())

	_, ok := s.Get(DataKey)
	assert.False(t, ok, "corrupt payload key cleared")
	_, ok = s.Get(TimestampKey)
	assert.False(t, ok, "timestamp key cleared alongside")
}

func TestWrite_SwallowsPersistFailure(t *testing.T) {
	c, s, _ := newTestCache(nil)
	s.FailSets = true

	// Must not panic or surface the error.
	c.Write(json.RawMessage(`{"a":1}`))

	assert.Empty(t, s.Values)
}

func TestWrite_OverwritesWholesale(t *testing.T) {
	c, _, clock := newTestCache(nil)

	c.Write(json.RawMessage(`{"a":1}`))
	clock.advance(time.Hour)
	c.Write(json.RawMessage(`{"b":2}`))

	snap := c.Read()
	require.NotNil(t, snap)
	assert.JSONEq(t, `{"b":2}`, string(snap.Payload))
	assert.True(t, snap.CreatedAt.Equal(clock.t), "timestamp reflects the overwrite time")
}

func TestAge(t *testing.T) {
	c, _, clock := newTestCache(nil)

	_, ok := c.Age()
	assert.False(t, ok)

	c.Write(json.RawMessage(`{}`))
	clock.advance(3 * time.Hour)

	age, ok := c.Age()
	assert.True(t, ok)
	assert.Equal(t, 3*time.Hour, age)
}

func TestFetchWithPolicy_CacheHitSkipsRemote(t *testing.T) {
	c, _, _ := newTestCache(nil)
	c.Write(json.RawMessage(`{"a":1}`))
	c.fetch = noFetch(t)

	st := c.FetchWithPolicy(context.Background(), false)

	assert.Equal(t, PhaseReady, st.Phase)
	assert.True(t, st.FromCache)
	assert.JSONEq(t, `{"a":1}`, string(st.Data))
	assert.Equal(t, st, c.State())
}

func TestFetchWithPolicy_ForceAlwaysFetches(t *testing.T) {
	calls := 0
	c, _, _ := newTestCache(func(context.Context) (json.RawMessage, error) {
		calls++
		return json.RawMessage(`{"live":true}`), nil
	})
	c.Write(json.RawMessage(`{"a":1}`))

	st := c.FetchWithPolicy(context.Background(), true)

	assert.Equal(t, 1, calls, "forceRefresh must hit the remote despite a valid cache")
	assert.Equal(t, PhaseReady, st.Phase)
	assert.False(t, st.FromCache)
	assert.JSONEq(t, `{"live":true}`, string(st.Data))
}

func TestFetchWithPolicy_SuccessWritesBack(t *testing.T) {
	c, s, _ := newTestCache(func(context.Context) (json.RawMessage, error) {
		return json.RawMessage(`{"live":true}`), nil
	})

	st := c.FetchWithPolicy(context.Background(), false)

	assert.Equal(t, PhaseReady, st.Phase)
	assert.False(t, st.FromCache)

	payload, ok := s.Get(DataKey)
	require.True(t, ok, "successful fetch is written back")
	assert.JSONEq(t, `{"live":true}`, payload)
	_, ok = s.Get(TimestampKey)
	assert.True(t, ok)
}

func TestFetchWithPolicy_FailureWithFallback(t *testing.T) {
	c, _, _ := newTestCache(func(context.Context) (json.RawMessage, error) {
		return nil, errors.New("backend unreachable")
	})
	c.Write(json.RawMessage(`{"a":1}`))

	st := c.FetchWithPolicy(context.Background(), true)

	assert.Equal(t, PhaseError, st.Phase)
	assert.Error(t, st.Err)
	require.NotNil(t, st.Fallback, "valid snapshot is exposed as fallback data")
	assert.JSONEq(t, `{"a":1}`, string(st.Fallback.Payload))
}

func TestFetchWithPolicy_FailureWithoutCache(t *testing.T) {
	c, _, _ := newTestCache(func(context.Context) (json.RawMessage, error) {
		return nil, errors.New("backend unreachable")
	})

	st := c.FetchWithPolicy(context.Background(), false)

	assert.Equal(t, PhaseError, st.Phase)
	assert.Error(t, st.Err)
	assert.Nil(t, st.Fallback)
}

func TestFetchWithPolicy_FallbackHonorsValidityRule(t *testing.T) {
	c, _, clock := newTestCache(func(context.Context) (json.RawMessage, error) {
		return nil, errors.New("backend unreachable")
	})
	c.Write(json.RawMessage(`{"a":1}`))
	clock.advance(25 * time.Hour)

	st := c.FetchWithPolicy(context.Background(), false)

	// The fallback read applies the same 24h rule; an expired snapshot is
	// not resurrected during an outage.
	assert.Equal(t, PhaseError, st.Phase)
	assert.Nil(t, st.Fallback)
}

func TestFetchWithPolicy_PanicClearsLoading(t *testing.T) {
	c, _, _ := newTestCache(func(context.Context) (json.RawMessage, error) {
		panic("boom")
	})

	assert.Panics(t, func() {
		c.FetchWithPolicy(context.Background(), false)
	})

	assert.NotEqual(t, PhaseLoading, c.State().Phase, "loading is cleared on every exit path")
}

func TestFetchWithPolicy_ExpiredCacheFallsThroughToRemote(t *testing.T) {
	calls := 0
	c, _, clock := newTestCache(func(context.Context) (json.RawMessage, error) {
		calls++
		return json.RawMessage(`{"live":true}`), nil
	})
	c.Write(json.RawMessage(`{"a":1}`))
	clock.advance(TTL + time.Minute)

	st := c.FetchWithPolicy(context.Background(), false)

	assert.Equal(t, 1, calls)
	assert.Equal(t, PhaseReady, st.Phase)
	assert.False(t, st.FromCache)
}

func TestRead_DisabledStoreLeavesFilesAlone(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FINCTL_CACHE_DIR", dir)
	t.Setenv("FINCTL_CACHE", "")

	fs := &store.FileStore{}
	c := New(fs, nil, WithClock(time.Now))
	c.Write(json.RawMessage(`{"a":1}`))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// With caching disabled, every Get misses, so Read sees an invalid
	// snapshot. That must not clear the files still on disk.
	t.Setenv("FINCTL_CACHE", "0")
	assert.Nil(t, c.Read())

	entries, err = os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "disabled cache must not erase the persisted snapshot")

	t.Setenv("FINCTL_CACHE", "")
	snap := c.Read()
	require.NotNil(t, snap, "snapshot is served again once re-enabled")
	assert.JSONEq(t, `{"a":1}`, string(snap.Payload))
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "loading", PhaseLoading.String())
	assert.Equal(t, "ready", PhaseReady.String())
	assert.Equal(t, "error", PhaseError.String())
	assert.Equal(t, "unknown", Phase(99).String())
}
