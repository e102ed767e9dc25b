// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package river

import (
	"sync"

	"github.com/SoftbearStudios/regiongen/region/geom"
)

// NoDrain marks an edge that drains into the ocean.
const NoDrain = -1

// Edge is one segment of a river network, flowing from Source to Drain.
// Edges live in an arena slice owned by one region; the drain is an index into that arena
// and never implies ownership.
type Edge struct {
	Source          geom.Vec2f `json:"source"`
	Drain           geom.Vec2f `json:"drain"`
	Width           int32      `json:"width"`
	DownstreamWidth int32      `json:"downstreamWidth"`
	IsSource        bool       `json:"isSource"`
	Feather         float32    `json:"feather"`

	drain    int32
	seed     int64
	geometry *lazyFractal
}

type lazyFractal struct {
	once    sync.Once
	fractal *Fractal
}

// NewEdge creates an unlinked edge.
func NewEdge(source, drain geom.Vec2f, feather float32, seed int64) Edge {
	return Edge{
		Source:   source,
		Drain:    drain,
		Feather:  feather,
		drain:    NoDrain,
		seed:     seed,
		geometry: new(lazyFractal),
	}
}

// DrainIndex returns the arena index of the downstream edge or NoDrain.
func (e *Edge) DrainIndex() int {
	return int(e.drain)
}

// Fractal returns the edge's curve, building it on first use.
// Safe for concurrent use once the owning region is complete.
func (e *Edge) Fractal() *Fractal {
	g := e.geometry
	g.once.Do(func() {
		g.fractal = NewFractal(e.Source, e.Drain, e.Feather, FractalDepth, e.seed)
	})
	return g.fractal
}

// Midpoint of the straight segment.
func (e *Edge) Midpoint() geom.Vec2f {
	return e.Source.Lerp(e.Drain, 0.5)
}

// Length of the straight segment.
func (e *Edge) Length() float32 {
	return e.Source.Distance(e.Drain)
}

// AffectBox is the box around the midpoint in which this edge can affect terrain.
func (e *Edge) AffectBox(distance float32) geom.AABB {
	return geom.AABBAround(e.Midpoint(), distance)
}

// WidthAt interpolates width from source (t = 0) to drain (t = 1).
func (e *Edge) WidthAt(t float32) float32 {
	return geom.Lerp(float32(e.Width), float32(e.DownstreamWidth), t)
}

// Downstream returns the edge e drains into, or nil.
func Downstream(edges []Edge, e *Edge) *Edge {
	if e.drain == NoDrain {
		return nil
	}
	return &edges[e.drain]
}

// Link connects every edge to the edge whose source is its drain vertex, and marks edges
// without any upstream edge as sources.
func Link(edges []Edge) {
	sources := make(map[geom.Vec2f]int32, len(edges))
	for i := range edges {
		sources[edges[i].Source] = int32(i)
	}

	upstream := make([]bool, len(edges))
	for i := range edges {
		e := &edges[i]
		e.drain = NoDrain
		if j, ok := sources[e.Drain]; ok && int(j) != i {
			e.drain = j
			upstream[j] = true
		}
	}

	for i := range edges {
		edges[i].IsSource = !upstream[i]
	}
}

// PropagateWidths walks downstream from every source edge, widening by step per edge up to max.
// An edge keeps the widest value any walk gives it.
func PropagateWidths(edges []Edge, start, step, max int32) {
	for i := range edges {
		edges[i].Width = 0
	}

	for i := range edges {
		if !edges[i].IsSource {
			continue
		}
		width := start
		for j := int32(i); j != NoDrain; j = edges[j].drain {
			if edges[j].Width >= width {
				// An earlier walk already widened everything below here at least as much.
				break
			}
			edges[j].Width = width
			width += step
			if width > max {
				width = max
			}
		}
	}

	for i := range edges {
		e := &edges[i]
		e.DownstreamWidth = e.Width
		if e.drain != NoDrain {
			e.DownstreamWidth = edges[e.drain].Width
		}
	}
}
