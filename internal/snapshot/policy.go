// Copyright (c) 2026 FinSight Labs <oss@finsight.dev>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/apex/log"
)

// Phase is the tag of the fetch state machine. Modeling it as a single
// value rules out combinations like loading with an error attached.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	}
	return "unknown"
}

// State is the outcome of a fetch attempt.
//   - Ready carries the payload and whether it came from the local snapshot.
//   - Error carries the cause and, when a still-valid snapshot exists, that
//     snapshot as fallback data so the caller can render something.
type State struct {
	Phase     Phase
	Data      json.RawMessage
	FromCache bool
	Err       error
	Fallback  *Snapshot
}

// State returns the most recent fetch state.
func (c *Cache) State() State {
	return c.state
}

// FetchWithPolicy resolves the holdings document per the cache policy:
//
//  1. Enter loading.
//  2. Unless forceRefresh, a valid snapshot short-circuits the remote call.
//  3. Otherwise fetch; success goes ready and is written back, failure
//     re-reads the store (same validity rule, no staleness exemption) and
//     surfaces whatever it finds as fallback data.
//
// Loading is cleared on every exit path. There are no retries, no backoff
// and no concurrency guard.
func (c *Cache) FetchWithPolicy(ctx context.Context, forceRefresh bool) State {
	c.state = State{Phase: PhaseLoading}
	defer func() {
		// Runs even when the fetch panics: never leave the cache stuck in
		// loading.
		if c.state.Phase == PhaseLoading {
			c.state = State{Phase: PhaseError, Err: errors.New("fetch aborted")}
		}
	}()

	if !forceRefresh {
		if snap := c.Read(); snap != nil {
			log.Debugf("serving snapshot from cache, age %s", c.now().Sub(snap.CreatedAt))
			c.state = State{Phase: PhaseReady, Data: snap.Payload, FromCache: true}
			return c.state
		}
	}

	payload, err := c.fetch(ctx)
	if err != nil {
		log.WithError(err).Debug("live fetch failed, trying snapshot fallback")
		st := State{Phase: PhaseError, Err: err}
		if snap := c.Read(); snap != nil {
			st.Fallback = snap
		}
		c.state = st
		return c.state
	}

	c.state = State{Phase: PhaseReady, Data: payload}
	c.Write(payload)
	return c.state
}
