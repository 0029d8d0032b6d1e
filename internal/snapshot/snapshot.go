// Copyright (c) 2026 FinSight Labs <oss@finsight.dev>.
// SPDX-License-Identifier: Apache-2.0

// Package snapshot caches the portfolio holdings document in a local
// key-value store with a fixed freshness window, and serves the stale copy
// when a live fetch fails.
package snapshot

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"

	"github.com/finsightlabs/finctl/internal/store"
)

const (
	// DataKey holds the serialized holdings payload.
	DataKey = "portfolio_data"
	// TimestampKey holds the capture time as an epoch-milliseconds string.
	TimestampKey = "portfolio_timestamp"

	// TTL is the freshness window. A snapshot older than this is discarded.
	TTL = 24 * time.Hour
)

func init() {
	store.RegisterKey(DataKey)
	store.RegisterKey(TimestampKey)
}

// Snapshot is a cached copy of the holdings payload plus its capture time.
type Snapshot struct {
	Payload   json.RawMessage
	CreatedAt time.Time
}

// FetchFunc performs the live holdings fetch.
type FetchFunc func(ctx context.Context) (json.RawMessage, error)

// Cache wraps a remote fetch with the time-boxed local snapshot. It carries
// no locking; a second concurrent FetchWithPolicy may race and the last
// write wins in the store.
type Cache struct {
	store store.Store
	fetch FetchFunc
	now   func() time.Time
	state State
}

// Option customizes a Cache.
type Option func(*Cache)

// WithClock overrides the time source. Tests use this to cross the TTL
// boundary without sleeping.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

func New(s store.Store, fetch FetchFunc, opts ...Option) *Cache {
	c := &Cache{
		store: s,
		fetch: fetch,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsValid reports whether a stored snapshot exists and is younger than TTL.
// An absent or unparsable timestamp is invalid.
func (c *Cache) IsValid() bool {
	raw, ok := c.store.Get(TimestampKey)
	if !ok {
		return false
	}
	ms, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return false
	}
	return c.now().Sub(time.UnixMilli(ms)) < TTL
}

// Read returns the stored snapshot, or nil when there is none to serve.
// An expired snapshot and a corrupt payload are both cleared on the way out,
// so the store never accumulates residue.
func (c *Cache) Read() *Snapshot {
	if !c.IsValid() {
		c.Clear()
		return nil
	}

	payload, ok := c.store.Get(DataKey)
	if !ok {
		return nil
	}

	// Corruption is treated identically to absence.
	if !json.Valid([]byte(payload)) {
		log.Debug("cached snapshot payload is not valid JSON, clearing")
		c.Clear()
		return nil
	}

	// The timestamp parsed during IsValid; a miss here cannot happen short of
	// an interleaved Remove, in which case zero time is good enough.
	var created time.Time
	if raw, ok := c.store.Get(TimestampKey); ok {
		if ms, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
			created = time.UnixMilli(ms)
		}
	}

	return &Snapshot{
		Payload:   json.RawMessage(payload),
		CreatedAt: created,
	}
}

// Write stores the payload and the current timestamp. Persistence failures
// (quota, permissions) are logged and swallowed; the caller already has the
// live data in hand.
func (c *Cache) Write(payload json.RawMessage) {
	if err := c.store.Set(DataKey, string(payload)); err != nil {
		log.WithError(err).Warn("failed to persist snapshot payload")
		return
	}
	ts := strconv.FormatInt(c.now().UnixMilli(), 10)
	if err := c.store.Set(TimestampKey, ts); err != nil {
		log.WithError(err).Warn("failed to persist snapshot timestamp")
	}
}

// Clear removes both snapshot keys. The two removes are independent;
// partial state between them is an accepted risk.
func (c *Cache) Clear() {
	c.store.Remove(DataKey)
	c.store.Remove(TimestampKey)
}

// Age returns how old the stored snapshot is, and false when there is none.
func (c *Cache) Age() (time.Duration, bool) {
	raw, ok := c.store.Get(TimestampKey)
	if !ok {
		return 0, false
	}
	ms, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, false
	}
	return c.now().Sub(time.UnixMilli(ms)), true
}
