// Copyright (c) 2026 FinSight Labs <oss@finsight.dev>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"testing"
)

func TestDriller(t *testing.T) {
	tests := []struct {
		name        string
		json        string
		path        string
		expectedStr string
		isNil       bool
		isArray     bool
	}{
		// Simple key tests
		{
			name:        "simple string key",
			json:        `{"symbol": "VWCE"}`,
			path:        "symbol",
			expectedStr: "VWCE",
		},
		{
			name:        "simple number key",
			json:        `{"quantity": 42}`,
			path:        "quantity",
			expectedStr: "42",
		},
		{
			name:        "simple boolean key",
			json:        `{"fractional": true}`,
			path:        "fractional",
			expectedStr: "true",
		},
		{
			name:  "simple null key",
			json:  `{"sector": null}`,
			path:  "sector",
			isNil: true,
		},
		// Nested object tests
		{
			name:        "nested single level",
			json:        `{"account": {"plan": "pro"}}`,
			path:        "account.plan",
			expectedStr: "pro",
		},
		{
			name:        "nested multiple levels",
			json:        `{"score": {"breakdown": {"savings": "31"}}}`,
			path:        "score.breakdown.savings",
			expectedStr: "31",
		},
		// Array access tests - single element array
		{
			name:        "single element array returns element",
			json:        `{"holdings": ["VWCE"]}`,
			path:        "holdings",
			expectedStr: "VWCE",
		},
		{
			name:        "single element array of objects drills through",
			json:        `{"holdings": [{"symbol": "VWCE"}]}`,
			path:        "holdings.symbol",
			expectedStr: "VWCE",
		},
		// Array access tests - multi element array (returns array)
		{
			name:    "multi element array returns array",
			json:    `{"holdings": ["VWCE", "CSPX"]}`,
			path:    "holdings",
			isArray: true,
		},
		// Array access tests - explicit index
		{
			name:        "array with explicit index 0",
			json:        `{"holdings": ["VWCE", "CSPX", "AGGH"]}`,
			path:        "holdings[0]",
			expectedStr: "VWCE",
		},
		{
			name:        "array with explicit index 2",
			json:        `{"holdings": ["VWCE", "CSPX", "AGGH"]}`,
			path:        "holdings[2]",
			expectedStr: "AGGH",
		},
		// Array inside nested objects
		{
			name:        "nested object with array access explicit index",
			json:        `{"profile": {"tags": ["retail", "beta"]}}`,
			path:        "profile.tags[0]",
			expectedStr: "retail",
		},
		{
			name:        "nested array of objects drill-through chain",
			json:        `{"portfolio": [{"holdings": [{"symbol": "CSPX"}]}]}`,
			path:        "portfolio.holdings.symbol",
			expectedStr: "CSPX",
		},
		// Missing keys
		{
			name:  "missing key",
			json:  `{"symbol": "VWCE"}`,
			path:  "name",
			isNil: true,
		},
		{
			name:  "missing nested key",
			json:  `{"account": {"plan": "pro"}}`,
			path:  "account.tier",
			isNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Driller(tt.json, tt.path)

			if tt.isNil {
				if result.Exists() && result.Type.String() != "Null" {
					t.Errorf("expected nil result, got %q", result.String())
				}
				return
			}

			if tt.isArray {
				if !result.IsArray() {
					t.Errorf("expected array result, got %q", result.String())
				}
				return
			}

			if result.String() != tt.expectedStr {
				t.Errorf("Driller(%q, %q) = %q, want %q", tt.json, tt.path, result.String(), tt.expectedStr)
			}
		})
	}
}
