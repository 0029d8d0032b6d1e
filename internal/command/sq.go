// Copyright (c) 2026 FinSight Labs <oss@finsight.dev>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/finsightlabs/finctl/internal/config"
	"github.com/finsightlabs/finctl/internal/meta"
)

// SqCommandAction is the action handler for the "sq" subcommand. It fetches
// the analysis score document, or the reverse-score projection when --reverse
// is given, and emits results per common flags.
func SqCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "sq") {
		return nil
	}

	config.Config.Namespace = "sq"

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	if cmd.Bool("reverse") {
		al := BuildAttrs(cmd, "factor", "current", "required", "delta")
		log.Debugf("attrs: %v", al)

		doc, err := client.ReverseScore(ctx, cmd.Float("target"))
		if err != nil {
			return err
		}
		EmitDocument(doc, al, cmd, "factors")
		return nil
	}

	al := BuildAttrs(cmd, "grade", "value:score", "as_of")
	log.Debugf("attrs: %v", al)

	doc, err := client.Score(ctx)
	if err != nil {
		return err
	}
	EmitDocument(doc, al, cmd, "")
	return nil
}

// SqCommandBuilder constructs the cli.Command for "sq", wiring metadata,
// flags, and action/validator handlers.
func SqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "sq",
		Usage:     "score query",
		UsageText: `finctl sq [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "reverse",
				Usage: "project the inputs needed to reach --target",
				Value: false,
			},
			&cli.FloatFlag{
				Name:        "target",
				Usage:       "target score for --reverse",
				HideDefault: true,
			},
			NewAPIFlag("sq", meta.Config.Source),
			tldrFlag,
		}, NewGlobalFlags("sq")...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := SqCommandValidator(ctx, cmd); err != nil {
				return err
			}
			return SqCommandAction(ctx, cmd)
		},
	}
}

// SqCommandValidator performs validation for "sq" and delegates to
// GlobalFlagsValidator.
func SqCommandValidator(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("reverse") && !cmd.IsSet("target") {
		return errors.New("--reverse requires --target")
	}
	if !cmd.Bool("reverse") && cmd.IsSet("target") {
		return errors.New("--target only applies with --reverse")
	}
	return GlobalFlagsValidator(ctx, cmd)
}
