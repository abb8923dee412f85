// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/rcbeam/rcbeam/internal/attrs"
	"github.com/rcbeam/rcbeam/internal/meta"
)

// showDefaultAttrs specifies the default columns displayed for each config.
var showDefaultAttrs = []string{
	"file", "height", "width", "dia", "gap", "cover",
	"top_1", "top_2", "top_3", "bottom_1", "bottom_2", "bottom_3",
	"concrete", "rebar",
}

// showCommandAction resolves each config named on the command line and
// renders one row per config.
func showCommandAction(ctx context.Context, cmd *cli.Command, al attrs.AttrList) error {
	locations, err := Locations(cmd)
	if err != nil {
		return err
	}

	loaded, err := LoadAll(ctx, cmd, locations)
	if err != nil {
		return err
	}

	return EmitRows(loaded, al, cmd)
}

// showCommandBuilder constructs the "show" subcommand.
func showCommandBuilder(meta meta.Meta) *cli.Command {
	return (&RowCommandBuilder{
		Name:      "show",
		Usage:     "show resolved beam configs",
		UsageText: "rcbeam show [flags] [config|dir|s3://bucket/key|-]...",
		Meta:      meta,
		Flags: []cli.Flag{
			schemaFlag,
			NewFormatFlag(),
		},
		Action: NewRowActionRunner("show", showDefaultAttrs, showCommandAction).Run,
	}).Build()
}
