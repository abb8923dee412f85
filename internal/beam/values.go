// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package beam

import (
	"bytes"
	"encoding/json"
	"math"
)

// Values is a serializable snapshot of a resolved Config. It is the canonical
// document handed to the drawing generator: every field is present.
//
// The schema tags (required, default) describe the source document and are
// read by the schema command.
type Values struct {
	BeamHeight      float64     `toml:"beam_height" json:"beam_height" yaml:"beam_height" required:"true"`
	BeamWidth       float64     `toml:"beam_width" json:"beam_width" yaml:"beam_width" required:"true"`
	RebarDiameter   float64     `toml:"rebar_diameter" json:"rebar_diameter" yaml:"rebar_diameter" required:"true"`
	GapBetweenRebar float64     `toml:"gap_between_rebar" json:"gap_between_rebar" yaml:"gap_between_rebar" default:"80.0"`
	CoverDepth      float64     `toml:"cover_depth" json:"cover_depth" yaml:"cover_depth" default:"70.0"`
	NumRebar        RebarValues `toml:"num_rebar" json:"num_rebar" yaml:"num_rebar" required:"true"`
	LayerName       LayerValues `toml:"layer_name" json:"layer_name" yaml:"layer_name"`
}

// RebarValues is the serializable form of RebarCounts.
type RebarValues struct {
	Top1    uint32 `toml:"top_1" json:"top_1" yaml:"top_1" default:"0"`
	Top2    uint32 `toml:"top_2" json:"top_2" yaml:"top_2" default:"0"`
	Top3    uint32 `toml:"top_3" json:"top_3" yaml:"top_3" default:"0"`
	Bottom1 uint32 `toml:"bottom_1" json:"bottom_1" yaml:"bottom_1" default:"0"`
	Bottom2 uint32 `toml:"bottom_2" json:"bottom_2" yaml:"bottom_2" default:"0"`
	Bottom3 uint32 `toml:"bottom_3" json:"bottom_3" yaml:"bottom_3" default:"0"`
}

// LayerValues is the serializable form of LayerLabels.
type LayerValues struct {
	Concrete string `toml:"concrete" json:"concrete" yaml:"concrete" default:"RC大梁"`
	Rebar    string `toml:"rebar" json:"rebar" yaml:"rebar" default:"RC鉄筋"`
}

// MarshalJSON writes the dimensions as numbers, except that infinities and
// NaN, which JSON cannot carry, are written as the strings "inf", "-inf" and
// "nan".
func (v Values) MarshalJSON() ([]byte, error) {
	wire := struct {
		BeamHeight      any         `json:"beam_height"`
		BeamWidth       any         `json:"beam_width"`
		RebarDiameter   any         `json:"rebar_diameter"`
		GapBetweenRebar any         `json:"gap_between_rebar"`
		CoverDepth      any         `json:"cover_depth"`
		NumRebar        RebarValues `json:"num_rebar"`
		LayerName       LayerValues `json:"layer_name"`
	}{
		BeamHeight:      jsonFloat(v.BeamHeight),
		BeamWidth:       jsonFloat(v.BeamWidth),
		RebarDiameter:   jsonFloat(v.RebarDiameter),
		GapBetweenRebar: jsonFloat(v.GapBetweenRebar),
		CoverDepth:      jsonFloat(v.CoverDepth),
		NumRebar:        v.NumRebar,
		LayerName:       v.LayerName,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(wire); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func jsonFloat(f float64) any {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return f
}

// Values returns the snapshot of c.
func (c Config) Values() Values {
	n, l := c.NumRebar(), c.LayerName()
	return Values{
		BeamHeight:      c.BeamHeight(),
		BeamWidth:       c.BeamWidth(),
		RebarDiameter:   c.RebarDiameter(),
		GapBetweenRebar: c.GapBetweenRebar(),
		CoverDepth:      c.CoverDepth(),
		NumRebar: RebarValues{
			Top1:    n.Top1(),
			Top2:    n.Top2(),
			Top3:    n.Top3(),
			Bottom1: n.Bottom1(),
			Bottom2: n.Bottom2(),
			Bottom3: n.Bottom3(),
		},
		LayerName: LayerValues{
			Concrete: l.Concrete(),
			Rebar:    l.Rebar(),
		},
	}
}
