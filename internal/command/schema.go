// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/rcbeam/rcbeam/internal/attrs"
	"github.com/rcbeam/rcbeam/internal/beam"
	"github.com/rcbeam/rcbeam/internal/meta"
	"github.com/rcbeam/rcbeam/internal/output"
)

var schemaDefaultAttrs = []string{"key", "type", "required", "default"}

// schemaCommandAction lists every document key with its type, whether it is
// required and the default used when it is absent.
func schemaCommandAction(_ context.Context, cmd *cli.Command, al attrs.AttrList) error {
	return EmitSlice(output.SchemaRows(reflect.TypeOf(beam.Values{})), al, cmd)
}

// schemaCommandBuilder constructs the "schema" subcommand.
func schemaCommandBuilder(meta meta.Meta) *cli.Command {
	return (&RowCommandBuilder{
		Name:      "schema",
		Usage:     "describe the config document keys",
		UsageText: "rcbeam schema [flags]",
		Meta:      meta,
		Action:    NewRowActionRunner("schema", schemaDefaultAttrs, schemaCommandAction).Run,
	}).Build()
}
