// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"reflect"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/rcbeam/rcbeam/internal/attrs"
	"github.com/rcbeam/rcbeam/internal/beam"
	"github.com/rcbeam/rcbeam/internal/meta"
	"github.com/rcbeam/rcbeam/internal/output"
	"github.com/rcbeam/rcbeam/internal/source"
	"github.com/rcbeam/rcbeam/internal/util"
)

// rowExtras are the keys every config row carries besides the resolved
// document.
var rowExtras = []string{"file", "modified", "total"}

// newFetcher builds the document fetcher used by every command.
var newFetcher = source.New

// Loaded is a config document after fetching and resolution.
type Loaded struct {
	Location string
	ModTime  time.Time
	Config   beam.Config
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList, err error) {
	for _, d := range defaults {
		if err = al.Set(d); err != nil {
			return nil, err
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err = al.Set(extras); err != nil {
			return nil, fmt.Errorf("--attrs: %w", err)
		}
	}
	err = al.SetGlobalTransformSpec()
	return
}

// DumpSchemaIfRequested writes the attribute list for config rows when
// --schema is set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(reflect.TypeOf(beam.Values{}), rowExtras, attrs.Aliases, Writer(cmd))
		return true
	}
	return false
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

// Writer returns where command output goes, the root command's Writer.
func Writer(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}

// ErrWriter returns where diagnostics go, the root command's ErrWriter.
func ErrWriter(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.ErrWriter != nil {
		return root.ErrWriter
	}
	return os.Stderr
}

// FormatOverride returns the --format flag as a beam.Format. Commands without
// the flag get FormatAuto.
func FormatOverride(cmd *cli.Command) beam.Format {
	f, err := beam.ParseFormat(cmd.String("format"))
	if err != nil {
		return beam.FormatAuto
	}
	return f
}

// Locations expands the positional arguments into config locations.
// Directories expand to the documents inside them. No arguments means the
// working directory.
func Locations(cmd *cli.Command) ([]string, error) {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		args = []string{"."}
	}

	locations, err := util.ExpandLocations(args)
	if err != nil {
		return nil, err
	}
	if len(locations) == 0 {
		return nil, fmt.Errorf("no config documents found in %v", args)
	}
	return locations, nil
}

// LoadOne fetches and resolves a single location.
func LoadOne(ctx context.Context, cmd *cli.Command, location string) (Loaded, error) {
	blob, err := newFetcher().Fetch(ctx, location)
	if err != nil {
		return Loaded{}, err
	}
	cfg, err := blob.Resolve(FormatOverride(cmd))
	if err != nil {
		return Loaded{}, err
	}
	return Loaded{Location: location, ModTime: blob.ModTime, Config: cfg}, nil
}

// LoadAll resolves every location, stopping at the first failure.
func LoadAll(ctx context.Context, cmd *cli.Command, locations []string) ([]Loaded, error) {
	loaded := make([]Loaded, 0, len(locations))
	for _, location := range locations {
		l, err := LoadOne(ctx, cmd, location)
		if err != nil {
			return nil, err
		}
		loaded = append(loaded, l)
	}
	return loaded, nil
}

// Row flattens a loaded config into the row shape used by the output
// package: the resolved document plus file, modified and total.
func (l Loaded) Row() (map[string]interface{}, error) {
	doc, err := json.Marshal(l.Config.Values())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	row := map[string]interface{}{}
	if err := json.Unmarshal(doc, &row); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	row["file"] = l.Location
	row["modified"] = l.ModTime.UTC().Format(time.RFC3339)
	row["total"] = l.Config.NumRebar().Total()

	return row, nil
}

// EmitRows marshals the rows of loaded configs and passes them to the common
// output routine.
func EmitRows(loaded []Loaded, al attrs.AttrList, cmd *cli.Command) error {
	rows := make([]map[string]interface{}, 0, len(loaded))
	for _, l := range loaded {
		row, err := l.Row()
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}
	return EmitSlice(rows, al, cmd)
}

// EmitSlice marshals a slice as JSON and passes it to the common output
// routine.
func EmitSlice(results any, al attrs.AttrList, cmd *cli.Command) error {
	var raw bytes.Buffer
	if err := json.NewEncoder(&raw).Encode(results); err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	return output.SliceDiceSpit(raw, al, cmd, Writer(cmd))
}

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr rcbeam <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "rcbeam", subcmd)
			c.Stdout = Writer(cmd)
			c.Stderr = ErrWriter(cmd)
			_ = c.Run()
		}
		return true
	}
	return false
}
