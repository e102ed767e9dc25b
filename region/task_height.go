// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package region

import "math"

const (
	islandMaxHeight = 3
	maxAltitude     = 3
)

// annotateBaseLandHeight rises inland, varied by height noise. Islands stay low.
func annotateBaseLandHeight(ctx *taskContext) {
	s := ctx.settings

	ctx.region.ForEach(func(x, z int, p *Point) {
		if !p.Land() {
			return
		}
		variation := int(math.Round(2 * ctx.fields.Height(float64(x), float64(z))))
		height := 1 + int(p.DistanceToOcean)/3 + variation

		max := s.MaxLandHeight
		if p.Island() {
			max = islandMaxHeight
		}
		p.BaseLandHeight = int8(clampInt(height, 1, max))
	})
}

// addMountains grows up to MountainRanges ranges from random land origins. A range is only
// kept if it exceeds MountainMinSize.
func addMountains(ctx *taskContext) {
	r := ctx.region
	s := ctx.settings

	var origins []coord
	r.ForEach(func(x, z int, p *Point) {
		if p.Land() {
			origins = append(origins, coord{x: x, z: z})
		}
	})
	if len(origins) == 0 {
		return
	}

	ranges := 0
	for attempt := 0; attempt < s.MountainAttempts && ranges < s.MountainRanges; attempt++ {
		origin := origins[ctx.random.Intn(len(origins))]
		if r.At(origin.x, origin.z).Mountain() {
			continue
		}

		target := s.MountainTargetSize + ctx.random.Intn(s.MountainTargetSpread+1)
		grown := growMountainRange(r, origin, target)
		if len(grown) <= s.MountainMinSize {
			continue
		}

		coastal := false
		for _, i := range grown {
			if int(r.Points[i].DistanceToOcean) <= s.CoastalMountainDistance {
				coastal = true
				break
			}
		}

		for _, i := range grown {
			p := r.Points[i]
			p.set(flagMountain, true)
			p.set(flagCoastalMountain, coastal)
		}
		ranges++
	}
}

// growMountainRange returns the indices of up to target connected land Points whose
// BaseLandHeight is within 1 of the origin's. Steps to an equal height are explored
// breadth first and steps that change height depth first, so ranges follow contours.
func growMountainRange(r *Region, origin coord, target int) []int {
	height := int(r.At(origin.x, origin.z).BaseLandHeight)
	start, _ := r.Index(origin.x, origin.z)

	visited := make([]bool, len(r.Points))
	visited[start] = true

	// A deque: front is a stack popped before back, which is a queue.
	var front []int
	back := []int{start}
	grown := make([]int, 0, target)

	for len(grown) < target {
		var i int
		if n := len(front); n > 0 {
			i = front[n-1]
			front = front[:n-1]
		} else if len(back) > 0 {
			i = back[0]
			back = back[1:]
		} else {
			break
		}
		grown = append(grown, i)

		p := r.Points[i]
		x, z := r.MinX+i%r.Width(), r.MinZ+i/r.Width()
		for _, o := range neighbors4 {
			j, ok := r.Index(x+o.x, z+o.z)
			if !ok || visited[j] {
				continue
			}
			n := r.Points[j]
			if n == nil || !n.Land() || n.Mountain() || absInt(int(n.BaseLandHeight)-height) > 1 {
				continue
			}
			visited[j] = true

			if n.BaseLandHeight == p.BaseLandHeight {
				back = append(back, j)
			} else {
				front = append(front, j)
			}
		}
	}

	return grown
}

// annotateBiomeAltitude falls off from mountains, then raises high land that is far from them.
func annotateBiomeAltitude(ctx *taskContext) {
	r := ctx.region
	score := ctx.settings.MountainAltitudeScore

	var seeds []coord
	r.ForEach(func(x, z int, p *Point) {
		if p.Mountain() {
			p.BiomeAltitude = altitudeTier(score)
			seeds = append(seeds, coord{x: x, z: z})
		}
	})

	f := fill{region: r, random: ctx.random, offsets: neighbors8[:]}
	f.run(seeds, isLand, func(p *Point, distance int) {
		p.BiomeAltitude = altitudeTier(score - distance)
	})

	maxHeight := ctx.settings.MaxLandHeight
	r.ForEach(func(_, _ int, p *Point) {
		if !p.Land() {
			return
		}
		if tier := int8(int(p.BaseLandHeight) * (maxAltitude + 1) / (maxHeight + 1)); tier > p.BiomeAltitude {
			p.BiomeAltitude = tier
		}
	})
}

func altitudeTier(score int) int8 {
	if score < 0 {
		score = 0
	}
	return int8(minInt(maxAltitude, (score+1)/2))
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
