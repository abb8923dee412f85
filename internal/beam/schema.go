// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package beam

import (
	"fmt"
	"math"
	"sort"

	"github.com/rcbeam/rcbeam/internal/log"
)

// Key names used in configuration documents.
const (
	KeyBeamHeight      = "beam_height"
	KeyBeamWidth       = "beam_width"
	KeyRebarDiameter   = "rebar_diameter"
	KeyGapBetweenRebar = "gap_between_rebar"
	KeyCoverDepth      = "cover_depth"
	KeyNumRebar        = "num_rebar"
	KeyLayerName       = "layer_name"
)

var (
	topLevelKeys = []string{KeyBeamHeight, KeyBeamWidth, KeyRebarDiameter,
		KeyGapBetweenRebar, KeyCoverDepth, KeyNumRebar, KeyLayerName}
	rebarKeys = []string{"top_1", "top_2", "top_3", "bottom_1", "bottom_2", "bottom_3"}
	layerKeys = []string{"concrete", "rebar"}
)

// fromTree maps a decoded document tree onto a Document, enforcing required
// keys and value types. Unknown keys are ignored.
func fromTree(tree map[string]any) (*Document, error) {
	doc := &Document{}

	required := []struct {
		key string
		dst **float64
	}{
		{KeyBeamHeight, &doc.BeamHeight},
		{KeyBeamWidth, &doc.BeamWidth},
		{KeyRebarDiameter, &doc.RebarDiameter},
	}
	for _, r := range required {
		v, ok := lookup(tree, r.key)
		if !ok {
			return nil, missingKey(r.key)
		}
		f, err := asFloat(r.key, v)
		if err != nil {
			return nil, err
		}
		*r.dst = &f
	}

	var err error
	if doc.GapBetweenRebar, err = optionalFloat(tree, KeyGapBetweenRebar); err != nil {
		return nil, err
	}
	if doc.CoverDepth, err = optionalFloat(tree, KeyCoverDepth); err != nil {
		return nil, err
	}

	v, ok := lookup(tree, KeyNumRebar)
	if !ok {
		return nil, missingKey(KeyNumRebar)
	}
	if doc.NumRebar, err = rebarFromTree(v); err != nil {
		return nil, err
	}

	if v, ok := lookup(tree, KeyLayerName); ok {
		if doc.LayerName, err = layerFromTree(v); err != nil {
			return nil, err
		}
	}

	logUnknown(tree, "", topLevelKeys)
	return doc, nil
}

func rebarFromTree(v any) (*RebarDocument, error) {
	tbl, err := asTable(KeyNumRebar, v)
	if err != nil {
		return nil, err
	}

	r := &RebarDocument{}
	dst := []**uint32{&r.Top1, &r.Top2, &r.Top3, &r.Bottom1, &r.Bottom2, &r.Bottom3}
	for i, k := range rebarKeys {
		v, ok := lookup(tbl, k)
		if !ok {
			continue
		}
		n, err := asCount(KeyNumRebar+"."+k, v)
		if err != nil {
			return nil, err
		}
		*dst[i] = &n
	}

	logUnknown(tbl, KeyNumRebar+".", rebarKeys)
	return r, nil
}

func layerFromTree(v any) (*LayerDocument, error) {
	tbl, err := asTable(KeyLayerName, v)
	if err != nil {
		return nil, err
	}

	l := &LayerDocument{}
	dst := []**string{&l.Concrete, &l.Rebar}
	for i, k := range layerKeys {
		v, ok := lookup(tbl, k)
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return nil, wrongType(KeyLayerName+"."+k, "string", v)
		}
		*dst[i] = &s
	}

	logUnknown(tbl, KeyLayerName+".", layerKeys)
	return l, nil
}

// lookup treats an explicit null (possible in YAML, JSON and HCL) the same as
// an absent key.
func lookup(tree map[string]any, key string) (any, bool) {
	v, ok := tree[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func optionalFloat(tree map[string]any, key string) (*float64, error) {
	v, ok := lookup(tree, key)
	if !ok {
		return nil, nil
	}
	f, err := asFloat(key, v)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// asFloat accepts integer literals as well as floats.
func asFloat(key string, v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, wrongType(key, "float", v)
	}
}

// asCount accepts integer literals in the uint32 range.
func asCount(key string, v any) (uint32, error) {
	var n int64
	switch t := v.(type) {
	case int:
		n = int64(t)
	case int64:
		n = t
	case uint64:
		if t > math.MaxUint32 {
			return 0, &ParseError{Key: key, Msg: fmt.Sprintf("%d is out of range for an unsigned 32-bit count", t)}
		}
		n = int64(t)
	default:
		return 0, wrongType(key, "unsigned integer", v)
	}
	if n < 0 || n > math.MaxUint32 {
		return 0, &ParseError{Key: key, Msg: fmt.Sprintf("%d is out of range for an unsigned 32-bit count", n)}
	}
	return uint32(n), nil
}

func asTable(key string, v any) (map[string]any, error) {
	tbl, ok := v.(map[string]any)
	if !ok {
		return nil, wrongType(key, "table", v)
	}
	return tbl, nil
}

func logUnknown(tree map[string]any, prefix string, known []string) {
	var unknown []string
	for k := range tree {
		found := false
		for _, kk := range known {
			if k == kk {
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, prefix+k)
		}
	}
	if len(unknown) == 0 {
		return
	}
	sort.Strings(unknown)
	log.Debugf("ignoring unknown keys: keys=%v", unknown)
}
