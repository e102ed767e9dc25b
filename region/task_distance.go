// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package region

// westCoastSteps never head west.
var westCoastSteps = []coord{{1, 0}, {0, 1}, {0, -1}}

// annotateDistanceToCellEdge fills DistanceToEdge from Points next to absent Points.
func annotateDistanceToCellEdge(ctx *taskContext) {
	r := ctx.region

	var seeds []coord
	r.ForEach(func(x, z int, p *Point) {
		for _, o := range neighbors8 {
			if !r.Contains(x+o.x, z+o.z) {
				p.DistanceToEdge = 0
				seeds = append(seeds, coord{x: x, z: z})
				return
			}
		}
	})

	f := fill{region: r, random: ctx.random, skip: ctx.settings.EdgeSkipChance, offsets: neighbors8[:]}
	f.run(seeds, always, func(p *Point, distance int) {
		p.DistanceToEdge = int16(distance)
	})
}

// annotateDistanceToOcean fills DistanceToOcean of land from the ocean, marks shores,
// and fills BaseOceanDepth of ocean from the shore.
func annotateDistanceToOcean(ctx *taskContext) {
	r := ctx.region
	s := ctx.settings

	var oceans, shores []coord
	r.ForEach(func(x, z int, p *Point) {
		if p.Land() {
			p.DistanceToOcean = 0
			return
		}
		c := coord{x: x, z: z}
		oceans = append(oceans, c)
		p.DistanceToOcean = Ocean
		for _, o := range neighbors8 {
			if n := r.MaybeAt(x+o.x, z+o.z); n != nil && n.Land() {
				p.DistanceToOcean = Shore
				shores = append(shores, c)
				break
			}
		}
	})

	f := fill{region: r, random: ctx.random, skip: s.OceanSkipChance, offsets: neighbors8[:]}
	f.run(oceans, isLand, func(p *Point, distance int) {
		p.DistanceToOcean = int16(distance)
	})

	// Land out of reach of this region's ocean is at least CoastalDistance inland of
	// the edge, so it never reads as shore.
	inland := int16(s.CoastalDistance) + 1
	r.ForEach(func(_, _ int, p *Point) {
		if p.Land() && p.DistanceToOcean == 0 {
			p.DistanceToOcean = p.DistanceToEdge + inland
		}
	})

	maxDepth := s.MaxOceanDepth
	r.ForEach(func(_, _ int, p *Point) {
		if p.DistanceToOcean == Ocean {
			p.BaseOceanDepth = int8(maxDepth)
		}
	})
	f.run(shores, isOcean, func(p *Point, distance int) {
		p.BaseOceanDepth = int8(minInt(distance, maxDepth))
	})
}

// annotateDistanceToWestCoast fills DistanceToWestCoast eastward from the westmost Point of
// every row and from the ocean.
func annotateDistanceToWestCoast(ctx *taskContext) {
	r := ctx.region

	var seeds []coord
	r.ForEach(func(x, z int, p *Point) {
		if !p.Land() || !r.Contains(x-1, z) {
			p.DistanceToWestCoast = 0
			seeds = append(seeds, coord{x: x, z: z})
		}
	})

	f := fill{region: r, random: ctx.random, skip: ctx.settings.WestCoastSkipChance, offsets: westCoastSteps}
	f.run(seeds, isLand, func(p *Point, distance int) {
		p.DistanceToWestCoast = int16(distance)
	})
}
