// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package river

import (
	"math/rand"

	"github.com/SoftbearStudios/regiongen/region/geom"
)

// FractalDepth is the number of midpoint subdivisions of every edge.
const FractalDepth = 4

// maxBranches is how many extra children one vertex may grow.
const maxBranches = 2

// maxHeading is the furthest an edge may point from its river's initial direction, so rivers
// never wind back toward their own coast.
const maxHeading = geom.Pi / 2

// Terrain is what the builder needs to know about the land rivers grow through.
type Terrain interface {
	// InlandDistance returns the distance to ocean of a grid coordinate, and false if it
	// is absent or not land.
	InlandDistance(x, z int) (int, bool)
}

// Config controls growth.
type Config struct {
	GrowthAttempts   int     // Extensions tried per tip per round
	BranchChance     int     // 1 in BranchChance successful tips also branch
	VertexSeparation float32 // Minimum distance between any two vertices
	Spread           float32 // Maximum turn per edge, in radians
}

// Source is a candidate river mouth.
type Source struct {
	Mouth   geom.Vec2f
	Angle   geom.Angle // Initial direction, pointing inland
	Length  float32    // Edge length
	Depth   int        // Maximum number of edges from the mouth
	Feather float32
}

type tip struct {
	source    int
	pos       geom.Vec2f
	angle     geom.Angle
	distance  int
	travelled float32
	depth     int
	branches  int
}

// Builder grows many rivers together so they compete for space.
type Builder struct {
	terrain Terrain
	random  *rand.Rand
	config  Config

	sources  []Source
	edges    []Edge
	vertices map[[2]int][]geom.Vec2f
}

// NewBuilder creates a Builder. random must be the caller's own seeded source.
func NewBuilder(terrain Terrain, random *rand.Rand, config Config) *Builder {
	return &Builder{
		terrain:  terrain,
		random:   random,
		config:   config,
		vertices: make(map[[2]int][]geom.Vec2f),
	}
}

// AddSource adds a candidate mouth. It is rejected if it is too close to an existing vertex.
func (b *Builder) AddSource(source Source) bool {
	if !b.separated(source.Mouth) {
		return false
	}
	b.addVertex(source.Mouth)
	b.sources = append(b.sources, source)
	return true
}

// Build grows all sources and returns the linked edges.
// Edges are unwidened; see PropagateWidths.
func (b *Builder) Build() []Edge {
	active := make([]tip, 0, len(b.sources))
	for i, s := range b.sources {
		active = append(active, tip{source: i, pos: s.Mouth, angle: s.Angle})
	}

	for len(active) > 0 {
		next := make([]tip, 0, len(active)+len(active)/2)
		for i := range active {
			t := &active[i]
			if t.depth >= b.sources[t.source].Depth {
				continue
			}

			child, ok := b.grow(t)
			if !ok {
				continue
			}
			next = append(next, child)

			if t.branches < maxBranches && b.config.BranchChance > 0 && b.random.Intn(b.config.BranchChance) == 0 {
				t.branches++
				next = append(next, *t)
			}
		}
		active = next
	}

	Link(b.edges)
	return b.edges
}

// grow tries to extend a tip by one edge.
func (b *Builder) grow(t *tip) (tip, bool) {
	s := &b.sources[t.source]

	for attempt := 0; attempt < b.config.GrowthAttempts; attempt++ {
		angle := t.angle + geom.Angle((b.random.Float32()*2-1)*b.config.Spread)
		if heading := angle.Diff(s.Angle); heading > maxHeading || heading < -maxHeading {
			continue
		}
		pos := t.pos.AddScaled(angle.Vec2f(), s.Length)

		distance, ok := b.terrain.InlandDistance(pos.Grid())
		if !ok || distance < t.distance {
			continue
		}

		// Rivers may not head inland faster than half the distance they have travelled.
		travelled := t.travelled + s.Length
		if float32(distance) > 1+0.5*travelled {
			continue
		}

		if _, ok := b.terrain.InlandDistance(t.pos.Lerp(pos, 0.5).Grid()); !ok {
			continue
		}

		if !b.separated(pos) {
			continue
		}

		b.addVertex(pos)
		b.edges = append(b.edges, NewEdge(pos, t.pos, s.Feather, b.random.Int63()))

		return tip{
			source:    t.source,
			pos:       pos,
			angle:     angle,
			distance:  distance,
			travelled: travelled,
			depth:     t.depth + 1,
		}, true
	}

	return tip{}, false
}

func (b *Builder) vertexKey(p geom.Vec2f) [2]int {
	s := b.config.VertexSeparation
	f := p.Mul(1 / s).Floor()
	return [2]int{int(f.X), int(f.Y)}
}

func (b *Builder) addVertex(p geom.Vec2f) {
	key := b.vertexKey(p)
	b.vertices[key] = append(b.vertices[key], p)
}

// separated tests if p keeps VertexSeparation from every vertex.
func (b *Builder) separated(p geom.Vec2f) bool {
	key := b.vertexKey(p)
	s2 := b.config.VertexSeparation * b.config.VertexSeparation

	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			for _, v := range b.vertices[[2]int{key[0] + dx, key[1] + dz}] {
				if v.DistanceSquared(p) < s2 {
					return false
				}
			}
		}
	}
	return true
}
