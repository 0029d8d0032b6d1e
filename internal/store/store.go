// Copyright (c) 2026 FinSight Labs <oss@finsight.dev>.
// SPDX-License-Identifier: Apache-2.0

// Package store provides the persistent key-value capability the snapshot
// cache writes through, with a file-backed implementation for real use and a
// map-backed one for tests.
package store

// Store is the minimal get/set/remove surface the cache logic depends on.
// Implementations are not transactional across keys.
type Store interface {
	Get(key string) (value string, ok bool)
	Set(key string, value string) error
	Remove(key string)
}
