// Copyright (c) 2026 FinSight Labs <oss@finsight.dev>.
// SPDX-License-Identifier: Apache-2.0

// Package version holds the finctl release version string.
package version

// Version is overridden at build time via -ldflags.
var Version = "0.0.0-dev"
