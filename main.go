// Copyright (c) 2026 FinSight Labs <oss@finsight.dev>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/finsightlabs/finctl/internal/command"
	mylog "github.com/finsightlabs/finctl/internal/log"
	"github.com/finsightlabs/finctl/internal/store"
	"github.com/finsightlabs/finctl/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	// Pick up FINCTL_* values from a local .env if one exists. Best-effort;
	// a missing file is the normal case.
	_ = godotenv.Load()

	mylog.InitLogger()

	args := os.Args

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	// Best-effort: pre-create the cache directory when caching is enabled.
	if _, _, err := store.EnsureBaseDir(); err != nil {
		// Non-fatal: print to stderr and continue.
		fmt.Fprintln(os.Stderr, err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}
