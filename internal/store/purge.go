// Copyright (c) 2026 FinSight Labs <oss@finsight.dev>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/apex/log"
)

// Entry describes one cached artifact on disk for the cache status listing.
// Key is the clear-text key when it is one of the well-known finctl keys,
// otherwise the hashed filename.
type Entry struct {
	Key     string
	Path    string
	Size    int64
	ModTime time.Time
}

// wellKnown maps hashed filenames back to the clear keys finctl itself
// writes, so the status listing stays readable.
var wellKnown = map[string]string{}

// RegisterKey records a clear key so Status can resolve its hashed filename.
func RegisterKey(clear string) {
	wellKnown[encodeKey(clear)] = clear
}

// Purge removes files older than the provided number of hours.
// If hours <= 0 or the cache dir cannot be resolved, it is a no-op.
func Purge(hours int) error {
	if hours <= 0 {
		log.Debug("cache cleaning disabled")
		return nil
	}
	base, ok := Dir()
	if !ok {
		return nil
	}
	maxAge := time.Duration(hours) * time.Hour
	if err := filepath.Walk(base, func(path string, info os.FileInfo, _ error) error {
		if info != nil && !info.IsDir() && time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err == nil {
				log.Debugf("removed cache file %s", path)
			} else {
				log.WithError(err).Warnf("failed to remove cache file %s", path)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

// Clear removes every file in the cache directory.
func Clear() error {
	base, ok := Dir()
	if !ok {
		return nil
	}
	entries, err := os.ReadDir(base)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read cache directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(base, e.Name())); err != nil {
			log.WithError(err).Warnf("failed to remove cache file %s", e.Name())
		}
	}
	return nil
}

// Status enumerates the current cache entries.
func Status() ([]Entry, error) {
	base, ok := Dir()
	if !ok {
		return nil, nil
	}
	dirEntries, err := os.ReadDir(base)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		key := de.Name()
		if clear, ok := wellKnown[key]; ok {
			key = clear
		}
		entries = append(entries, Entry{
			Key:     key,
			Path:    filepath.Join(base, de.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return entries, nil
}
