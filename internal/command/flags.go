// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/rcbeam/rcbeam/internal/config"
)

var (
	schemaFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "schema",
		Usage:       "list the attributes available to --attrs, --filter and --sort",
		HideDefault: true,
	}

	tldrFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
)

// NewGlobalFlags returns the output shaping flags shared by the row
// producing commands. ns is the command name; when a settings file is loaded
// the output and padding flags also take their defaults from it, namespaced
// key first.
func NewGlobalFlags(ns string) (flags []cli.Flag) {
	output := &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format (text, json, yaml, raw)",
		Value:   "text",
		Sources: cli.NewValueSourceChain(cli.EnvVar("RCBEAM_OUTPUT")),
		Validator: func(value string) error {
			return FlagValidators(value, OutputValidator)
		},
	}
	padding := &cli.IntFlag{
		Name:    "padding",
		Usage:   "spaces between text columns",
		Value:   2,
		Sources: cli.NewValueSourceChain(),
	}

	if path := config.Config.Source; path != "" {
		output.Sources.Chain = append(output.Sources.Chain, nameSpacedSources(ns, output.Name, path)...)
		padding.Sources.Chain = append(padding.Sources.Chain, nameSpacedSources(ns, padding.Name, path)...)
	}

	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "color text output (default: when writing to a terminal)",
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		output,
		padding,
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	return
}

// NewFormatFlag constructs the --format flag that overrides format
// detection from the file extension. It is the only way to read YAML, JSON
// or HCL from stdin.
func NewFormatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "format",
		Usage: "input format (auto, toml, yaml, json, hcl)",
		Value: "auto",
		Validator: func(value string) error {
			return FlagValidators(value, FormatValidator)
		},
	}
}

// nameSpacedSources returns the namespaced and global settings file sources
// for a flag.
func nameSpacedSources(ns string, name string, path string) []cli.ValueSource {
	return []cli.ValueSource{
		yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)),
		yaml.YAML(name, altsrc.StringSourcer(path)),
	}
}

// pathHas reports whether target is an executable on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
