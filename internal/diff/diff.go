// Copyright (c) 2026 FinSight Labs <oss@finsight.dev>.
// SPDX-License-Identifier: Apache-2.0

// Package diff renders the drift between a cached snapshot and a live
// document as a unified, human readable report.
package diff

import (
	"encoding/json"
	"fmt"

	gojsondiff "github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// Report compares two JSON documents and returns an ASCII rendering of the
// differences. An empty string means the documents are identical. Both
// documents must be JSON objects.
func Report(cached, live []byte, color bool) (string, error) {
	differ := gojsondiff.New()
	d, err := differ.Compare(cached, live)
	if err != nil {
		return "", fmt.Errorf("diff failed: %w", err)
	}

	if !d.Modified() {
		return "", nil
	}

	// The ASCII formatter wants the left-hand document unmarshaled so it can
	// print unchanged context lines around the deltas.
	var left map[string]interface{}
	if err := json.Unmarshal(cached, &left); err != nil {
		return "", fmt.Errorf("diff failed: %w", err)
	}

	f := formatter.NewAsciiFormatter(left, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       color,
	})
	out, err := f.Format(d)
	if err != nil {
		return "", fmt.Errorf("diff failed: %w", err)
	}

	return out, nil
}
