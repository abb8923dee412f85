// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package beam

// Document is a decoded configuration before defaults are applied. A nil
// pointer means the key was absent from the source. Documents returned by
// Decode always carry the required fields.
type Document struct {
	BeamHeight      *float64
	BeamWidth       *float64
	RebarDiameter   *float64
	GapBetweenRebar *float64
	CoverDepth      *float64
	NumRebar        *RebarDocument
	LayerName       *LayerDocument
}

// RebarDocument is the raw num_rebar table.
type RebarDocument struct {
	Top1    *uint32
	Top2    *uint32
	Top3    *uint32
	Bottom1 *uint32
	Bottom2 *uint32
	Bottom3 *uint32
}

// LayerDocument is the raw layer_name table.
type LayerDocument struct {
	Concrete *string
	Rebar    *string
}

// Resolve returns the Config with every absent optional field replaced by its
// default. It reads d without modifying it, so repeated calls yield equal
// results.
func (d *Document) Resolve() Config {
	return Config{
		beamHeight:      floatOr(d.BeamHeight, 0),
		beamWidth:       floatOr(d.BeamWidth, 0),
		rebarDiameter:   floatOr(d.RebarDiameter, 0),
		gapBetweenRebar: floatOr(d.GapBetweenRebar, DefaultGapBetweenRebar),
		coverDepth:      floatOr(d.CoverDepth, DefaultCoverDepth),
		numRebar:        d.NumRebar.Resolve(),
		layerName:       d.LayerName.Resolve(),
	}
}

// Resolve returns the counts with absent positions set to zero. A nil
// receiver resolves to all zeros.
func (r *RebarDocument) Resolve() RebarCounts {
	if r == nil {
		return RebarCounts{}
	}
	return RebarCounts{
		top1:    countOr(r.Top1),
		top2:    countOr(r.Top2),
		top3:    countOr(r.Top3),
		bottom1: countOr(r.Bottom1),
		bottom2: countOr(r.Bottom2),
		bottom3: countOr(r.Bottom3),
	}
}

// Resolve returns the labels with absent names set to the default layers. A
// nil receiver is treated as an empty table.
func (l *LayerDocument) Resolve() LayerLabels {
	var concrete, rebar *string
	if l != nil {
		concrete, rebar = l.Concrete, l.Rebar
	}
	return LayerLabels{
		concrete: stringOr(concrete, DefaultConcreteLayer),
		rebar:    stringOr(rebar, DefaultRebarLayer),
	}
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func countOr(v *uint32) uint32 {
	if v == nil {
		return 0
	}
	return *v
}

func stringOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}
