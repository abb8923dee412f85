// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/rcbeam/rcbeam/internal/beam"
	"github.com/rcbeam/rcbeam/internal/meta"
)

// checkCommandAction resolves every config and reports each one. The first
// failure is returned, wrapped, so the exit code reflects its kind.
func checkCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "check") {
		return nil
	}

	locations, err := Locations(cmd)
	if err != nil {
		return err
	}

	w := Writer(cmd)
	quiet := cmd.Bool("quiet")

	var first error
	failed := 0
	for _, location := range locations {
		_, err := LoadOne(ctx, cmd, location)
		if err != nil {
			failed++
			if first == nil {
				first = err
			}
			fmt.Fprintln(w, failureLine(location, err))
			continue
		}
		if !quiet {
			fmt.Fprintf(w, "%-5s %s\n", "ok", location)
		}
	}

	if first != nil {
		return fmt.Errorf("%d of %d configs failed: %w", failed, len(locations), first)
	}
	return nil
}

// failureLine reports a failed location once: typed errors already name it,
// so only their detail follows the location.
func failureLine(location string, err error) string {
	return fmt.Sprintf("%-5s %s: %s", errorKind(err), location, failureDetail(err))
}

func failureDetail(err error) string {
	var ioErr *beam.IOError
	var parseErr *beam.ParseError

	switch {
	case errors.As(err, &ioErr):
		var pathErr *fs.PathError
		if errors.As(ioErr.Err, &pathErr) {
			return pathErr.Op + ": " + pathErr.Err.Error()
		}
		return ioErr.Err.Error()
	case errors.As(err, &parseErr):
		detail := *parseErr
		detail.Path = ""
		return strings.TrimPrefix(detail.Error(), "parse ")
	default:
		return err.Error()
	}
}

// errorKind names the class of a load failure.
func errorKind(err error) string {
	switch {
	case beam.IsIOError(err):
		return "io"
	case beam.IsParseError(err):
		return "parse"
	default:
		return "error"
	}
}

// checkCommandBuilder constructs the "check" subcommand.
func checkCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "validate beam configs",
		UsageText: "rcbeam check [flags] [config|dir|s3://bucket/key|-]...",
		Metadata:  map[string]any{"meta": meta},
		Flags: []cli.Flag{
			tldrFlag,
			NewFormatFlag(),
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "only report failures",
			},
		},
		Action: checkCommandAction,
	}
}
