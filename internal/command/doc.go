// Copyright (c) 2026 FinSight Labs <oss@finsight.dev>.
// SPDX-License-Identifier: MIT

// Package command defines the CLI command set for finctl. It wires flags,
// validators, actions, and shell completion for subcommands.
package command
