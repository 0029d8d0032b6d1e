// Copyright (c) 2026 FinSight Labs <oss@finsight.dev>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/finsightlabs/finctl/internal/api"
	"github.com/finsightlabs/finctl/internal/config"
)

func init() {
	cfg, _ = config.Load("")
}

var (
	cfg config.Type

	tldrFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}

	portfolioFlag *cli.StringFlag = &cli.StringFlag{
		Name:    "portfolio",
		Aliases: []string{"p"},
		Usage:   "portfolio to query. Overrides the account default",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("FINCTL_PORTFOLIO"),
		),
		Value: "",
		Validator: func(value string) error {
			return FlagValidators(value, JammedFlagValidator)
		},
	}
)

func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"color", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("color", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.BoolFlag{
			Name:  "local",
			Usage: "render timestamps in the configured timezone",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"local", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("local", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"output", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("output", altsrc.StringSourcer(cfg.Source)),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"sort", altsrc.StringSourcer(cfg.Source)),
			),
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"titles", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("titles", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
	}

	return
}

// NewAPIFlag constructs a cli.StringFlag for the "api" base URL flag,
// optionally namespaced to a command and config file. params[1] is the config
// file.
func NewAPIFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:  "api",
		Usage: "FinSight API base URL",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("FINCTL_API"),
		),
		Value: api.DefaultBaseURL,
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// pathHas checks if the given executable exists on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
