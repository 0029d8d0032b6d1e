// Copyright (c) 2026 FinSight Labs <oss@finsight.dev>.
// SPDX-License-Identifier: MIT

// Package driller extracts values from holdings and score documents by
// dotted path, papering over the single-element-array wrappers the backend
// is fond of.
package driller

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Driller resolves path against the raw JSON document. Paths are dotted
// keys with optional [n] indexes. A lookup that lands on a single-element
// array drills into the element, so "holdings.symbol" works whether the
// backend wraps the row or not; a multi-element array is returned as-is.
func Driller(raw string, path string) gjson.Result {
	// Normalize bracket indexes into dotted segments: tags[0] -> tags.0
	path = strings.ReplaceAll(path, "[", ".")
	path = strings.ReplaceAll(path, "]", "")

	current := gjson.Parse(raw)
	for _, seg := range strings.Split(path, ".") {
		if seg == "" {
			continue
		}

		next := current.Get(seg)
		if !next.Exists() && current.IsArray() {
			if arr := current.Array(); len(arr) == 1 {
				next = arr[0].Get(seg)
			}
		}
		current = next
	}

	// A single-element array result collapses to its element.
	if current.IsArray() {
		if arr := current.Array(); len(arr) == 1 {
			return arr[0]
		}
	}

	return current
}
