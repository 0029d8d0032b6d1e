// Copyright (c) 2026 FinSight Labs <oss@finsight.dev>.
// SPDX-License-Identifier: MIT

// finctl is the main package for the finctl command line tool. It wires the
// CLI, delegates to internal packages, and serves as the entry point.
package main
