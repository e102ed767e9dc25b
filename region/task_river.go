// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package region

import (
	"math"

	"github.com/SoftbearStudios/regiongen/region/geom"
	"github.com/SoftbearStudios/regiongen/region/noise"
	"github.com/SoftbearStudios/regiongen/region/river"
)

const (
	// directionJitter is the most a river's initial direction is turned, in radians.
	directionJitter = 0.2
	// riverMarkStep is how finely edges are walked to flag river Points.
	riverMarkStep = 0.25
)

// addRiversAndLakes grows rivers inland from the shore, widens them toward the sea and
// places lakes along them.
func addRiversAndLakes(ctx *taskContext) {
	r := ctx.region
	s := ctx.settings

	builder := river.NewBuilder(r, ctx.random, river.Config{
		GrowthAttempts:   s.RiverGrowthAttempts,
		BranchChance:     s.RiverBranchChance,
		VertexSeparation: s.RiverVertexSeparation,
		Spread:           s.RiverSpread,
	})

	r.ForEach(func(x, z int, p *Point) {
		if !r.coastal(x, z) {
			return
		}
		angle, ok := inlandDirection(ctx, x, z)
		if !ok {
			return
		}
		builder.AddSource(river.Source{
			Mouth:   geom.Vec2f{X: float32(x) + 0.5, Y: float32(z) + 0.5},
			Angle:   angle,
			Length:  s.RiverEdgeLength,
			Depth:   s.RiverMaxDepth,
			Feather: s.RiverFeather,
		})
	})

	edges := builder.Build()
	river.PropagateWidths(edges, s.RiverStartWidth, s.RiverWidthStep, s.RiverMaxWidth)

	for i := range edges {
		markRiver(r, &edges[i])
	}

	for i := range edges {
		e := &edges[i]
		if e.IsSource || s.LakeChance == 0 || ctx.random.Intn(s.LakeChance) != 0 {
			continue
		}
		placeLake(ctx, e)
	}

	r.Rivers = edges
}

// inlandDirection returns the direction from (x, z) to the farthest from the ocean of the
// 8 compass points RiverDirectionStride away, preferring axis aligned directions. Every
// candidate direction is jittered. It returns false if no direction leads further inland.
func inlandDirection(ctx *taskContext, x, z int) (geom.Angle, bool) {
	r := ctx.region
	stride := ctx.settings.RiverDirectionStride
	here, _ := r.InlandDistance(x, z)

	best := float32(math.Inf(-1))
	var candidates [len(neighbors8)]geom.Angle
	n := 0

	for _, o := range neighbors8 {
		distance, ok := r.InlandDistance(x+o.x*stride, z+o.z*stride)
		if !ok || distance <= here {
			continue
		}

		score := float32(distance)
		if o.x == 0 || o.z == 0 {
			score += 0.5
		}

		angle := geom.Vec2f{X: float32(o.x), Y: float32(o.z)}.Angle()
		angle += geom.Angle((ctx.random.Float32()*2 - 1) * directionJitter)

		if score > best {
			best = score
			n = 0
		}
		if score == best {
			candidates[n] = angle
			n++
		}
	}

	if n == 0 {
		return 0, false
	}
	return candidates[ctx.random.Intn(n)], true
}

// markRiver flags every Point the straight segment of e crosses.
func markRiver(r *Region, e *river.Edge) {
	steps := int(math.Ceil(float64(e.Length() / riverMarkStep)))
	for i := 0; i <= steps; i++ {
		t := float32(i) / float32(maxInt(steps, 1))
		if p := r.MaybeAt(e.Source.Lerp(e.Drain, t).Grid()); p != nil {
			p.set(flagRiver, true)
		}
	}
}

// placeLake puts a lake on the first suitable diagonal neighbor of e's source.
// It returns false if none is suitable.
func placeLake(ctx *taskContext, e *river.Edge) bool {
	r := ctx.region
	s := ctx.settings
	x, z := e.Source.Grid()

	for _, o := range diagonals {
		p := r.MaybeAt(x+o.x, z+o.z)
		if p == nil || !p.Land() ||
			int(p.DistanceToOcean) < s.LakeMinDistanceToOcean ||
			int(p.DistanceToEdge) < s.LakeMinDistanceToEdge ||
			!p.Biome.LakeEligible() {
			continue
		}

		p.Biome = p.Biome.LakeVariant()
		p.set(flagLake, true)

		for dz := -1; dz <= 1; dz++ {
			for dx := -1; dx <= 1; dx++ {
				if n := r.MaybeAt(x+o.x+dx, z+o.z+dz); n != nil {
					n.Rainfall = clamp(n.Rainfall+s.LakeRainfallBonus, noise.MinRainfall, noise.MaxRainfall)
				}
			}
		}
		return true
	}
	return false
}
