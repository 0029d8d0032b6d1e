// Copyright (c) 2026 FinSight Labs <oss@finsight.dev>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/finsightlabs/finctl/internal/config"
	"github.com/finsightlabs/finctl/internal/meta"
)

// PqCommandAction is the action handler for the "pq" subcommand. It fetches
// the pricing plan catalog and emits results per common flags.
func PqCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "pq") {
		return nil
	}

	config.Config.Namespace = "pq"

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	al := BuildAttrs(cmd, "name", "price", "currency", "interval")
	log.Debugf("attrs: %v", al)

	doc, err := client.Plans(ctx)
	if err != nil {
		return err
	}

	EmitDocument(doc, al, cmd, "plans")
	return nil
}

// PqCommandBuilder constructs the cli.Command for "pq", wiring metadata,
// flags, and action handlers.
func PqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "pq",
		Usage:     "plan query",
		UsageText: `finctl pq [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			NewAPIFlag("pq", meta.Config.Source),
			tldrFlag,
		}, NewGlobalFlags("pq")...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: PqCommandAction,
	}
}
