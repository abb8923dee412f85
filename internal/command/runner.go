// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/rcbeam/rcbeam/internal/attrs"
)

// RowActionRunner encapsulates the common action pattern of the row
// commands. It handles meta lookup, the tldr and schema short circuits and
// attr building, with the work itself provided by RunFn.
type RowActionRunner struct {
	CommandName  string
	DefaultAttrs []string
	RunFn        func(context.Context, *cli.Command, attrs.AttrList) error
}

// Run executes the action with the provided context and command.
func (rar *RowActionRunner) Run(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, rar.CommandName) {
		return nil
	}
	if DumpSchemaIfRequested(cmd) {
		return nil
	}

	al, err := BuildAttrs(cmd, rar.DefaultAttrs...)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %v", al.String())

	return rar.RunFn(ctx, cmd, al)
}

// NewRowActionRunner creates a RowActionRunner with the provided
// configuration.
func NewRowActionRunner(
	commandName string,
	defaultAttrs []string,
	runFn func(context.Context, *cli.Command, attrs.AttrList) error,
) *RowActionRunner {
	return &RowActionRunner{
		CommandName:  commandName,
		DefaultAttrs: defaultAttrs,
		RunFn:        runFn,
	}
}
