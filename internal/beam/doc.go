// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package beam loads reinforced-concrete beam configuration documents and
// resolves them into a fully defaulted Config for the drawing generator.
//
// Loading happens in two steps. Decode turns document text (TOML, YAML, JSON
// or HCL) into a Document whose optional fields are nil when absent. Resolve
// then fills every absent optional field with its fixed default:
//   - gap_between_rebar: 80.0
//   - cover_depth: 70.0
//   - num_rebar.*: 0
//   - layer_name.concrete / layer_name.rebar: DefaultConcreteLayer / DefaultRebarLayer
//
// beam_height, beam_width, rebar_diameter and the num_rebar table are
// required; their absence is a *ParseError. Failing to read the document is
// an *IOError.
package beam
