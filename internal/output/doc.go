// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output shapes rows of resolved beam configurations for display.
// It filters, transforms and sorts rows, then emits them as a table, JSON or
// YAML. It also describes the document schema for the schema command and
// the --schema flag.
package output
