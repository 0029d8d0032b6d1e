// Copyright (c) 2026 FinSight Labs <oss@finsight.dev>.
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/finsightlabs/finctl/internal/config"
	"github.com/finsightlabs/finctl/internal/meta"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {

	sd, _ := os.Getwd()

	// The arg[1] immediately following the binary (arg[0]) is the finctl
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, _ := config.Load(ns)
	m := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:  "finctl",
		Usage: "FinSight Control",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "finctl version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		AqCommandBuilder(app, m),
		CacheCommandBuilder(app, m),
		CompletionCommandBuilder(app, m),
		HqCommandBuilder(app, m),
		PqCommandBuilder(app, m),
		SqCommandBuilder(app, m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
