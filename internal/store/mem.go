// Copyright (c) 2026 FinSight Labs <oss@finsight.dev>.
// SPDX-License-Identifier: Apache-2.0

package store

import "errors"

// MemStore is a map-backed Store used by tests and by commands that want a
// scratch store without touching the filesystem. FailSets makes every Set
// return an error, to exercise write-failure swallowing.
type MemStore struct {
	Values   map[string]string
	FailSets bool
}

func NewMemStore() *MemStore {
	return &MemStore{Values: map[string]string{}}
}

func (s *MemStore) Get(key string) (string, bool) {
	v, ok := s.Values[key]
	return v, ok
}

func (s *MemStore) Set(key string, value string) error {
	if s.FailSets {
		return errors.New("store quota exceeded")
	}
	if s.Values == nil {
		s.Values = map[string]string{}
	}
	s.Values[key] = value
	return nil
}

func (s *MemStore) Remove(key string) {
	delete(s.Values, key)
}
