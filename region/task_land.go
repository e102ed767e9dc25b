// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package region

import (
	"math"

	"github.com/SoftbearStudios/regiongen/region/units"
)

// initRegion allocates the Points of the coordinates that belong to the region's cell.
func initRegion(ctx *taskContext) {
	r := ctx.region
	cell := r.Cell

	const radius = units.CellScanRadiusInGrid
	const side = radius*2 + 1
	cx := int(math.Floor(float64(cell.CenterX)))
	cz := int(math.Floor(float64(cell.CenterZ)))

	owned := make([]bool, side*side)
	minX, minZ := math.MaxInt32, math.MaxInt32
	maxX, maxZ := math.MinInt32, math.MinInt32
	count := 0

	for j := 0; j < side; j++ {
		z := cz - radius + j
		for i := 0; i < side; i++ {
			x := cx - radius + i
			if sampleCell(ctx.cellular, x, z).CellKey != cell.CellKey {
				continue
			}
			owned[j*side+i] = true
			count++
			minX, maxX = minInt(minX, x), maxInt(maxX, x)
			minZ, maxZ = minInt(minZ, z), maxInt(maxZ, z)
		}
	}

	if debug && count == 0 {
		panic("empty cell")
	}

	r.MinX, r.MinZ, r.MaxX, r.MaxZ = minX, minZ, maxX, maxZ
	r.Points = make([]*Point, r.Width()*r.Height())

	// One allocation for every Point.
	slab := make([]Point, count)
	for j := 0; j < side; j++ {
		for i := 0; i < side; i++ {
			if !owned[j*side+i] {
				continue
			}
			p := &slab[0]
			slab = slab[1:]
			p.DistanceToOcean = Ocean
			p.DistanceToEdge = Unbounded

			index, _ := r.Index(cx-radius+i, cz-radius+j)
			r.Points[index] = p
		}
	}
}

// addContinents makes land where continent noise, biased per cell, is positive.
func addContinents(ctx *taskContext) {
	s := ctx.settings
	bias := s.ContinentBias + (float64(ctx.region.Cell.Noise)-0.5)*s.CellNoiseBias

	ctx.region.ForEach(func(x, z int, p *Point) {
		if ctx.fields.Continent(float64(x), float64(z))+bias > 0 {
			p.set(flagLand, true)
		}
	})
}

// floodFillSmallOceans turns enclosed oceans smaller than SmallOceanSize into land.
// Oceans touching the region's edge may continue in another region, so they are kept.
func floodFillSmallOceans(ctx *taskContext) {
	r := ctx.region
	visited := make([]bool, len(r.Points))
	var component, queue []int

	for start, p := range r.Points {
		if p == nil || p.Land() || visited[start] {
			continue
		}

		component = component[:0]
		queue = append(queue[:0], start)
		visited[start] = true
		touchesEdge := false

		for len(queue) > 0 {
			i := queue[0]
			queue = queue[1:]
			component = append(component, i)

			if r.Points[i].DistanceToEdge == 0 {
				touchesEdge = true
			}

			x, z := r.MinX+i%r.Width(), r.MinZ+i/r.Width()
			for _, o := range neighbors4 {
				j, ok := r.Index(x+o.x, z+o.z)
				if !ok || visited[j] {
					continue
				}
				if n := r.Points[j]; n != nil && !n.Land() {
					visited[j] = true
					queue = append(queue, j)
				}
			}
		}

		if !touchesEdge && len(component) < ctx.settings.SmallOceanSize {
			for _, i := range component {
				r.Points[i].set(flagLand, true)
			}
		}
	}
}

// addIslands raises islands out of the open ocean, away from the region's edge.
func addIslands(ctx *taskContext) {
	const minDistanceToEdge = 3

	ctx.region.ForEach(func(x, z int, p *Point) {
		if p.Land() || p.DistanceToEdge < minDistanceToEdge {
			return
		}
		fx, fz := float64(x), float64(z)
		if ctx.fields.Island(fx, fz) > ctx.settings.IslandThreshold && ctx.fields.Continent(fx, fz) < 0 {
			p.set(flagLand|flagIsland, true)
		}
	})
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clampInt(n, min, max int) int {
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
