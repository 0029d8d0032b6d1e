// Copyright (c) 2026 FinSight Labs <oss@finsight.dev>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/finsightlabs/finctl/internal/api"
	"github.com/finsightlabs/finctl/internal/config"
	"github.com/finsightlabs/finctl/internal/diff"
	"github.com/finsightlabs/finctl/internal/meta"
	"github.com/finsightlabs/finctl/internal/picker"
	"github.com/finsightlabs/finctl/internal/snapshot"
	"github.com/finsightlabs/finctl/internal/store"
)

// HqCommandAction is the action handler for the "hq" subcommand. It resolves
// the holdings document through the local snapshot cache, supports --tldr
// short-circuit, and emits results per common flags.
func HqCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "hq") {
		return nil
	}

	config.Config.Namespace = "hq"

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	portfolioID := cmd.String("portfolio")
	if cmd.Bool("pick") {
		portfolios, listErr := client.Portfolios(ctx)
		if listErr != nil {
			return listErr
		}
		chosen, pickErr := picker.Pick(portfolios)
		if pickErr != nil {
			return pickErr
		}
		portfolioID = chosen.ID
	}

	al := BuildAttrs(cmd, "symbol", "name", "quantity:qty", "market_value:value", "currency")
	log.Debugf("attrs: %v", al)

	cache := snapshot.New(&store.FileStore{}, func(ctx context.Context) (json.RawMessage, error) {
		return client.Holdings(ctx, portfolioID)
	})

	// Short circuit --cached mode: serve the snapshot or nothing.
	if cmd.Bool("cached") {
		snap := cache.Read()
		if snap == nil {
			return errors.New("no valid cached snapshot, run 'finctl hq' first")
		}
		EmitDocument(snap.Payload, al, cmd, "holdings")
		return nil
	}

	// Short circuit --diff mode: drift between the snapshot and live data.
	if cmd.Bool("diff") {
		return diffAgainstLive(ctx, cmd, client, cache, portfolioID)
	}

	// Named portfolios bypass the snapshot. The cache holds exactly one
	// snapshot, the account default, so a one-off query must not poison it.
	if portfolioID != "" {
		doc, fetchErr := client.Holdings(ctx, portfolioID)
		if fetchErr != nil {
			return fetchErr
		}
		EmitDocument(doc, al, cmd, "holdings")
		return nil
	}

	state := cache.FetchWithPolicy(ctx, cmd.Bool("refresh"))
	if state.Phase == snapshot.PhaseError {
		if state.Fallback == nil {
			return state.Err
		}
		fmt.Fprintf(os.Stderr, "warning: %v, serving snapshot from %s\n",
			state.Err, humanize.Time(state.Fallback.CreatedAt))
		EmitDocument(state.Fallback.Payload, al, cmd, "holdings")
		return nil
	}

	EmitDocument(state.Data, al, cmd, "holdings")
	return nil
}

// diffAgainstLive reports the drift between the cached snapshot and a fresh
// fetch. The snapshot is left untouched so the next hq behaves the same.
func diffAgainstLive(ctx context.Context, cmd *cli.Command, client *api.Client, cache *snapshot.Cache, portfolioID string) error {
	snap := cache.Read()
	if snap == nil {
		return errors.New("no valid cached snapshot to diff against")
	}

	live, err := client.Holdings(ctx, portfolioID)
	if err != nil {
		return err
	}

	report, err := diff.Report(snap.Payload, live, cmd.Bool("color"))
	if err != nil {
		return err
	}
	if report == "" {
		fmt.Println("cached and live holdings are identical")
		return nil
	}

	fmt.Fprintf(os.Stderr, "snapshot captured %s\n", humanize.Time(snap.CreatedAt))
	fmt.Print(report)
	return nil
}

// HqCommandBuilder constructs the cli.Command for "hq", wiring metadata,
// flags, and action/validator handlers.
func HqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "hq",
		Usage:     "holdings query",
		UsageText: `finctl hq [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "cached",
				Usage: "serve only from the local snapshot, never fetch",
				Value: false,
			},
			&cli.BoolFlag{
				Name:  "diff",
				Usage: "show drift between the cached snapshot and live data",
				Value: false,
			},
			&cli.BoolFlag{
				Name:  "pick",
				Usage: "pick the portfolio interactively",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("hq.pick", altsrc.StringSourcer(meta.Config.Source)),
				),
				Value: false,
			},
			&cli.BoolFlag{
				Name:    "refresh",
				Aliases: []string{"r"},
				Usage:   "bypass the snapshot and fetch live data",
				Value:   false,
			},
			NewAPIFlag("hq", meta.Config.Source),
			portfolioFlag,
			tldrFlag,
		}, NewGlobalFlags("hq")...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := HqCommandValidator(ctx, cmd); err != nil {
				return err
			}
			return HqCommandAction(ctx, cmd)
		},
	}
}

// HqCommandValidator performs validation for "hq" and delegates to
// GlobalFlagsValidator.
func HqCommandValidator(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("cached") && cmd.Bool("refresh") {
		return errors.New("--cached and --refresh are mutually exclusive")
	}
	if cmd.Bool("cached") && cmd.Bool("diff") {
		return errors.New("--cached and --diff are mutually exclusive")
	}
	return GlobalFlagsValidator(ctx, cmd)
}
