// Copyright (c) 2026 FinSight Labs <oss@finsight.dev>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"

	"github.com/urfave/cli/v3"

	"github.com/finsightlabs/finctl/internal/api"
	"github.com/finsightlabs/finctl/internal/attrs"
	"github.com/finsightlabs/finctl/internal/meta"
	"github.com/finsightlabs/finctl/internal/output"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr finctl <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "finctl", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList) {
	//nolint:errcheck
	{
		for _, d := range defaults {
			al.Set(d)
		}
		if extras := cmd.String("attrs"); extras != "" {
			al.Set(extras)
		}
		al.SetGlobalTransformSpec()
	}
	return
}

// EmitDocument passes an API document to the common output routine. parent
// names the key under which the rows live; empty means the document itself.
func EmitDocument(doc json.RawMessage, al attrs.AttrList, cmd *cli.Command, parent string) {
	var raw bytes.Buffer
	raw.Write(doc)
	output.SliceDiceSpit(raw, al, cmd, parent, os.Stdout, nil)
}

// NewClient builds the API client from the --api flag and the resolved token.
func NewClient(cmd *cli.Command) (*api.Client, error) {
	token, err := api.ResolveToken()
	if err != nil {
		return nil, err
	}
	return api.New(cmd.String("api"), token), nil
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}
