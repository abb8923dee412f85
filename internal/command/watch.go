// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/rcbeam/rcbeam/internal/attrs"
	"github.com/rcbeam/rcbeam/internal/meta"
	"github.com/rcbeam/rcbeam/internal/source"
	"github.com/rcbeam/rcbeam/internal/watcher"
)

// watchCommandAction prints the row of each config and prints it again
// whenever its file changes, until interrupted. Load failures are reported
// and watching continues.
func watchCommandAction(ctx context.Context, cmd *cli.Command, al attrs.AttrList) error {
	locations, err := Locations(cmd)
	if err != nil {
		return err
	}
	for _, location := range locations {
		if location == source.Stdin || source.IsS3(location) {
			return fmt.Errorf("cannot watch %s: only local files can be watched", location)
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watcher.New(locations)
	if err != nil {
		return err
	}

	show := func(location string) {
		loaded, err := LoadOne(ctx, cmd, location)
		if err != nil {
			fmt.Fprintln(ErrWriter(cmd), failureLine(location, err))
			return
		}
		if err := EmitRows([]Loaded{loaded}, al, cmd); err != nil {
			fmt.Fprintln(ErrWriter(cmd), err)
		}
	}

	for _, location := range locations {
		show(location)
	}

	return w.Run(ctx, show)
}

// watchCommandBuilder constructs the "watch" subcommand.
func watchCommandBuilder(meta meta.Meta) *cli.Command {
	return (&RowCommandBuilder{
		Name:      "watch",
		Usage:     "show beam configs again whenever they change",
		UsageText: "rcbeam watch [flags] [config|dir]...",
		Meta:      meta,
		Flags: []cli.Flag{
			NewFormatFlag(),
		},
		Action: NewRowActionRunner("watch", showDefaultAttrs, watchCommandAction).Run,
	}).Build()
}
