// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/rcbeam/rcbeam/internal/meta"
)

// RowCommandBuilder constructs a cli.Command for subcommands that render
// config rows (show, schema, watch) using a consistent pattern. The builder
// wires metadata, adds the tldr and global output flags, and sets up
// validators.
type RowCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (rcb *RowCommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      rcb.Name,
		Usage:     rcb.Usage,
		UsageText: rcb.UsageText,
		Metadata: map[string]any{
			"meta": rcb.Meta,
		},
		Flags: append(rcb.Flags, append([]cli.Flag{
			tldrFlag,
		}, NewGlobalFlags(rcb.Name)...)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: rcb.Action,
	}
}
