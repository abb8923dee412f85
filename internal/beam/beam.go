// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package beam

const (
	// DefaultGapBetweenRebar is used when gap_between_rebar is absent.
	DefaultGapBetweenRebar = 80.0
	// DefaultCoverDepth is used when cover_depth is absent.
	DefaultCoverDepth = 70.0
	// DefaultConcreteLayer names the layer holding the beam outline.
	DefaultConcreteLayer = "RC大梁"
	// DefaultRebarLayer names the layer holding the rebar.
	DefaultRebarLayer = "RC鉄筋"
)

// Config is a fully resolved beam configuration. Every accessor returns a
// concrete value. A Config is never modified after Resolve builds it, so it
// can be copied or shared between goroutines freely.
type Config struct {
	beamHeight      float64
	beamWidth       float64
	rebarDiameter   float64
	gapBetweenRebar float64
	coverDepth      float64
	numRebar        RebarCounts
	layerName       LayerLabels
}

func (c Config) BeamHeight() float64      { return c.beamHeight }
func (c Config) BeamWidth() float64       { return c.beamWidth }
func (c Config) RebarDiameter() float64   { return c.rebarDiameter }
func (c Config) GapBetweenRebar() float64 { return c.gapBetweenRebar }
func (c Config) CoverDepth() float64      { return c.coverDepth }
func (c Config) NumRebar() RebarCounts    { return c.numRebar }
func (c Config) LayerName() LayerLabels   { return c.layerName }

// RebarCounts holds the number of bars at the three top and three bottom
// positions.
type RebarCounts struct {
	top1, top2, top3          uint32
	bottom1, bottom2, bottom3 uint32
}

func (r RebarCounts) Top1() uint32    { return r.top1 }
func (r RebarCounts) Top2() uint32    { return r.top2 }
func (r RebarCounts) Top3() uint32    { return r.top3 }
func (r RebarCounts) Bottom1() uint32 { return r.bottom1 }
func (r RebarCounts) Bottom2() uint32 { return r.bottom2 }
func (r RebarCounts) Bottom3() uint32 { return r.bottom3 }

// Total returns the number of bars across all six positions.
func (r RebarCounts) Total() uint64 {
	return uint64(r.top1) + uint64(r.top2) + uint64(r.top3) +
		uint64(r.bottom1) + uint64(r.bottom2) + uint64(r.bottom3)
}

// LayerLabels names the drawing layers for the concrete outline and the
// rebar.
type LayerLabels struct {
	concrete string
	rebar    string
}

func (l LayerLabels) Concrete() string { return l.concrete }
func (l LayerLabels) Rebar() string    { return l.rebar }

// DefaultLayerLabels returns the labels used when layer_name is absent. It is
// the resolution of an empty layer_name table, which keeps the block-level
// and field-level defaults identical.
func DefaultLayerLabels() LayerLabels {
	return (*LayerDocument)(nil).Resolve()
}
