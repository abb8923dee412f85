// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/rcbeam/rcbeam/internal/beam"
	"github.com/rcbeam/rcbeam/internal/meta"
)

// resolveCommandAction writes the fully resolved document, with every
// default filled in, for the drawing generator.
func resolveCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "resolve") {
		return nil
	}

	args := cmd.Args().Slice()
	if len(args) != 1 {
		return fmt.Errorf("resolve takes exactly one config, got %d", len(args))
	}

	loaded, err := LoadOne(ctx, cmd, args[0])
	if err != nil {
		return err
	}

	doc, err := EncodeValues(loaded.Config.Values(), cmd.String("to"))
	if err != nil {
		return err
	}

	if out := cmd.String("out"); out != "" {
		if err := os.WriteFile(out, doc, 0o644); err != nil { //nolint:gosec
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		log.Debugf("resolved document written: out=%s", out)
		return nil
	}

	_, err = Writer(cmd).Write(doc)
	return err
}

// EncodeValues serializes a resolved document as toml, json or yaml.
func EncodeValues(v beam.Values, to string) ([]byte, error) {
	var buf bytes.Buffer

	switch to {
	case "toml", "":
		if err := toml.NewEncoder(&buf).Encode(v); err != nil {
			return nil, fmt.Errorf("toml encode: %w", err)
		}
	case "json":
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("json encode: %w", err)
		}
	case "yaml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("yaml encode: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("yaml encode: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown document format %q", to)
	}

	return buf.Bytes(), nil
}

// resolveCommandBuilder constructs the "resolve" subcommand.
func resolveCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "write the fully resolved config document",
		UsageText: "rcbeam resolve [flags] <config|s3://bucket/key|->",
		Metadata:  map[string]any{"meta": meta},
		Flags: []cli.Flag{
			tldrFlag,
			NewFormatFlag(),
			&cli.StringFlag{
				Name:  "out",
				Usage: "write the document to this file instead of stdout",
			},
			&cli.StringFlag{
				Name:  "to",
				Usage: "document format (toml, json, yaml)",
				Value: "toml",
				Validator: func(value string) error {
					return FlagValidators(value, DocumentValidator)
				},
			},
		},
		Action: resolveCommandAction,
	}
}
