// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/rcbeam/rcbeam/internal/differ"
	"github.com/rcbeam/rcbeam/internal/meta"
	"github.com/rcbeam/rcbeam/internal/output"
	"github.com/rcbeam/rcbeam/internal/util"
)

// selectCandidates is the interactive picker, replaceable in tests.
var selectCandidates = func(items []differ.Candidate) ([]differ.Candidate, error) {
	return differ.SelectCandidates(items)
}

// diffCommandAction compares two resolved configs. With fewer than two
// arguments the pair is picked interactively from a directory.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "diff") {
		return nil
	}

	pair, err := diffPair(cmd.Args().Slice())
	if err != nil {
		return err
	}

	left, err := LoadOne(ctx, cmd, pair[0])
	if err != nil {
		return err
	}
	right, err := LoadOne(ctx, cmd, pair[1])
	if err != nil {
		return err
	}

	var ignore []string
	if spec := cmd.String("ignore"); spec != "" {
		ignore = strings.Split(spec, ",")
	}

	w := Writer(cmd)
	_, err = differ.Configs(w, left.Config, right.Config, differ.Options{
		Ignore:   ignore,
		Coloring: output.ColorEnabled(cmd, w),
	})
	return err
}

// diffPair returns the two locations to compare.
func diffPair(args []string) ([]string, error) {
	switch len(args) {
	case 2:
		return args, nil
	case 0, 1:
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		return pickPair(dir)
	default:
		return nil, fmt.Errorf("diff takes two configs or one directory, got %d arguments", len(args))
	}
}

// pickPair offers the configs in dir to the picker.
func pickPair(dir string) ([]string, error) {
	dir, err := util.ResolveDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	files, err := util.ConfigFiles(dir)
	if err != nil {
		return nil, err
	}

	items := make([]differ.Candidate, 0, len(files))
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			continue
		}
		items = append(items, differ.Candidate{Location: f, ModTime: info.ModTime()})
	}

	selected, err := selectCandidates(items)
	if err != nil {
		return nil, err
	}
	return []string{selected[0].Location, selected[1].Location}, nil
}

// diffCommandBuilder constructs the "diff" subcommand.
func diffCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "compare two resolved beam configs",
		UsageText: "rcbeam diff [flags] [<config> <config> | <dir>]",
		Metadata:  map[string]any{"meta": meta},
		Flags: []cli.Flag{
			tldrFlag,
			NewFormatFlag(),
			&cli.BoolFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "color the diff (default: when writing to a terminal)",
			},
			&cli.StringFlag{
				Name:  "ignore",
				Usage: "comma-separated list of keys to leave out of the comparison",
			},
		},
		Action: diffCommandAction,
	}
}
