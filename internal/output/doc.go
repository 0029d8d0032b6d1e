// Copyright (c) 2026 FinSight Labs <oss@finsight.dev>.
// SPDX-License-Identifier: MIT

// Package output provides sorting, filtering, and emission utilities used by
// commands to present results in various formats.
package output
