// Copyright (c) 2026 FinSight Labs <oss@finsight.dev>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/finsightlabs/finctl/internal/meta"
	"github.com/finsightlabs/finctl/internal/store"
)

// CacheCommandAction is the action handler for the "cache" subcommand. It
// reports on or prunes the local snapshot store.
func CacheCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "cache") {
		return nil
	}

	switch {
	case cmd.Bool("clear"):
		return store.Clear()
	case cmd.IsSet("purge"):
		return store.Purge(int(cmd.Int("purge")))
	default:
		return cacheStatus()
	}
}

// cacheStatus prints one line per cache entry.
func cacheStatus() error {
	entries, err := store.Status()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("cache is empty")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%-24s %10s  %s\n",
			e.Key,
			humanize.Bytes(uint64(e.Size)),
			humanize.Time(e.ModTime))
	}
	return nil
}

// CacheCommandBuilder constructs the cli.Command for "cache".
func CacheCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "cache",
		Usage:     "inspect or prune the local snapshot store",
		UsageText: `finctl cache [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "clear",
				Usage:       "remove every cache entry",
				HideDefault: true,
			},
			&cli.IntFlag{
				Name:        "purge",
				Usage:       "remove entries older than the given number of hours",
				HideDefault: true,
			},
			tldrFlag,
		},
		Action: CacheCommandAction,
	}
}
