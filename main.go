// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/rcbeam/rcbeam/internal/beam"
	"github.com/rcbeam/rcbeam/internal/cacheutil"
	"github.com/rcbeam/rcbeam/internal/command"
	"github.com/rcbeam/rcbeam/internal/config"
	"github.com/rcbeam/rcbeam/internal/log"
	"github.com/rcbeam/rcbeam/internal/version"
)

// Exit codes.
const (
	exitOK = iota
	exitSetup
	exitFailed
	exitIO
	exitParse
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string, w io.Writer) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Fprintln(w, version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		// Short-circuit completion: pass args directly.
		return args
	}

	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)
	return args
}

// processSetOnly handles the @set logic for all commands, expanding set
// arguments at the @set position. Without an explicit @set the "defaults"
// set, if configured, is expanded right after the command.
func processSetOnly(args []string) []string {
	if len(args) < 2 {
		return args
	}

	const idx = 2
	set := "defaults"
	insertIdx := idx
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") {
			set = a[1:]
			insertIdx = idx + i
			// Remove the @set argument.
			args = append(args[:insertIdx:insertIdx], args[insertIdx+1:]...)
			break
		}
	}

	entries, _ := config.GetStringSlice(args[1] + "." + set)
	return injectConfigSet(args, entries, insertIdx)
}

// injectConfigSet splits each configured entry into fields and inserts them
// at insertIdx.
func injectConfigSet(args []string, entries []string, insertIdx int) []string {
	if len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	result := make([]string, 0, len(args)+len(expanded))
	result = append(result, args[:insertIdx]...)
	result = append(result, expanded...)
	return append(result, args[insertIdx:]...)
}

// flagUse is one occurrence of a flag in the argument list.
type flagUse struct {
	name  string
	at    int
	value bool // the following argument may be this flag's value
	takes bool // the flag takes a value, inline or following
}

// deduplicateFlags drops all but the last occurrence of each flag so that a
// flag given on the command line beats the same flag injected from a set.
// isBool reports flags that never take a separate value; when it is nil, or
// does not know a flag, the value of an earlier occurrence is dropped only
// when the last occurrence takes one as well.
func deduplicateFlags(args []string, isBool ...func(string) bool) []string {
	if len(args) <= 2 {
		return args
	}

	boolFlag := func(string) bool { return false }
	if len(isBool) > 0 && isBool[0] != nil {
		boolFlag = isBool[0]
	}

	var uses []flagUse
	last := map[string]int{}
	for i := 2; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			break
		}
		if a == "-" || !strings.HasPrefix(a, "-") {
			continue
		}

		name, _, inline := strings.Cut(strings.TrimLeft(a, "-"), "=")
		use := flagUse{name: name, at: i, takes: inline}
		if !inline && !boolFlag(name) && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			use.value = true
			use.takes = true
		}
		last[name] = len(uses)
		uses = append(uses, use)
	}

	drop := map[int]bool{}
	for n, use := range uses {
		final := uses[last[use.name]]
		if last[use.name] == n {
			continue
		}
		drop[use.at] = true
		if use.value && final.takes {
			drop[use.at+1] = true
		}
	}

	result := make([]string, 0, len(args))
	for i, a := range args {
		if !drop[i] {
			result = append(result, a)
		}
	}
	return result
}

// boolFlags returns a lookup of the boolean flags of the subcommand named in
// args.
func boolFlags(app *cli.Command, args []string) func(string) bool {
	if len(args) < 2 {
		return nil
	}
	sub := app.Command(args[1])
	if sub == nil {
		return nil
	}

	names := map[string]bool{}
	for _, f := range append(sub.Flags, app.Flags...) {
		if _, ok := f.(*cli.BoolFlag); ok {
			for _, n := range f.Names() {
				names[n] = true
			}
		}
	}
	return func(name string) bool { return names[name] }
}

// exitCode maps a command failure onto the process exit code.
func exitCode(err error) int {
	var ioErr *beam.IOError
	var parseErr *beam.ParseError

	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &ioErr):
		return exitIO
	case errors.As(err, &parseErr):
		return exitParse
	default:
		return exitFailed
	}
}

// ensureCache pre-creates the cache directory when caching is enabled. A
// failure is reported to w and the run continues uncached.
func ensureCache(w io.Writer) {
	if _, _, err := cacheutil.EnsureBaseDir(); err != nil {
		fmt.Fprintln(w, err)
		log.Debugf("cache ensure err: err=%v", err)
	}
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	ensureCache(os.Stderr)

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return exitSetup
	}

	args = deduplicateFlags(args, boolFlags(app, args))
	log.Debugf("args deduplicated: args=%v", args)

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return exitCode(err)
	}

	return exitOK
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args, os.Stdout) {
		return exitOK
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI
	// handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}
