// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package beam

import (
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// decodeHCL reads an HCL body into the same tree shape the TOML and YAML
// decoders produce. Nested tables may be written either as blocks
//
//	num_rebar {
//	  top_1 = 3
//	}
//
// or as object attributes (num_rebar = { top_1 = 3 }). Expressions are
// evaluated without variables or functions, so only literals are accepted.
func decodeHCL(data []byte) (map[string]any, error) {
	file, diags := hclsyntax.ParseConfig(data, "", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diagError(diags)
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, &ParseError{Msg: "unexpected HCL body type"}
	}
	return hclBodyTree(body, "")
}

func hclBodyTree(body *hclsyntax.Body, prefix string) (map[string]any, error) {
	tree := make(map[string]any, len(body.Attributes)+len(body.Blocks))

	for name, attr := range body.Attributes {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			perr := diagError(diags)
			perr.Key = prefix + name
			return nil, perr
		}
		goVal, err := ctyToGo(val)
		if err != nil {
			rng := attr.SrcRange
			return nil, &ParseError{Key: prefix + name, Line: rng.Start.Line, Column: rng.Start.Column, Msg: err.Error()}
		}
		tree[name] = goVal
	}

	for _, block := range body.Blocks {
		key := prefix + block.Type
		rng := block.TypeRange
		if len(block.Labels) > 0 {
			return nil, &ParseError{Key: key, Line: rng.Start.Line, Column: rng.Start.Column, Msg: "block must not have labels"}
		}
		if _, dup := tree[block.Type]; dup {
			return nil, &ParseError{Key: key, Line: rng.Start.Line, Column: rng.Start.Column, Msg: "duplicate key"}
		}
		sub, err := hclBodyTree(block.Body, key+".")
		if err != nil {
			return nil, err
		}
		tree[block.Type] = sub
	}

	return tree, nil
}

// ctyToGo converts a known cty value into plain Go values. Whole numbers
// become int64 so count fields accept them; other numbers become float64.
func ctyToGo(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("value is not known")
	}

	t := v.Type()
	switch {
	case t == cty.String:
		return v.AsString(), nil
	case t == cty.Bool:
		return v.True(), nil
	case t == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return i, nil
			}
		}
		f, _ := bf.Float64()
		return f, nil
	case t.IsObjectType() || t.IsMapType():
		m := make(map[string]any)
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			gv, err := ctyToGo(ev)
			if err != nil {
				return nil, err
			}
			m[k.AsString()] = gv
		}
		return m, nil
	case t.IsTupleType() || t.IsListType() || t.IsSetType():
		var s []any
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			gv, err := ctyToGo(ev)
			if err != nil {
				return nil, err
			}
			s = append(s, gv)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", t.FriendlyName())
	}
}

func diagError(diags hcl.Diagnostics) *ParseError {
	perr := &ParseError{Err: diags}
	for _, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		perr.Msg = d.Summary
		if d.Detail != "" {
			perr.Msg += ": " + d.Detail
		}
		if d.Subject != nil {
			perr.Line = d.Subject.Start.Line
			perr.Column = d.Subject.Start.Column
		}
		break
	}
	return perr
}
