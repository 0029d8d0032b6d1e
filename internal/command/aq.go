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

// AqCommandAction is the action handler for the "aq" subcommand. It fetches
// the account profile and emits it per common flags.
func AqCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "aq") {
		return nil
	}

	config.Config.Namespace = "aq"

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	al := BuildAttrs(cmd, "email", "name", "plan", "member_since")
	log.Debugf("attrs: %v", al)

	doc, err := client.Profile(ctx)
	if err != nil {
		return err
	}

	EmitDocument(doc, al, cmd, "")
	return nil
}

// AqCommandBuilder constructs the cli.Command for "aq", wiring metadata,
// flags, and action handlers.
func AqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "aq",
		Usage:     "account query",
		UsageText: `finctl aq [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			NewAPIFlag("aq", meta.Config.Source),
			tldrFlag,
		}, NewGlobalFlags("aq")...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: AqCommandAction,
	}
}
