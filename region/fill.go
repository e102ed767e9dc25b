// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package region

import "math/rand"

// fill is a multi source breadth first search over the Points of a region.
// Absent Points are never entered.
type fill struct {
	region  *Region
	random  *rand.Rand
	skip    int // 1 in skip steps keep the current distance, 0 disables
	offsets []coord
}

// run fills outward from seeds, which have distance 0. enter reports if a Point may be entered;
// set is called once for every entered Point with its distance. Points that are never reached
// are left alone.
func (f *fill) run(seeds []coord, enter func(p *Point) bool, set func(p *Point, distance int)) {
	r := f.region
	visited := make([]bool, len(r.Points))
	for _, s := range seeds {
		i, _ := r.Index(s.x, s.z)
		visited[i] = true
	}

	current := seeds
	var next []coord

	for distance := 0; len(current) > 0; distance++ {
		// current grows while it is iterated when steps are skipped.
		for i := 0; i < len(current); i++ {
			c := current[i]
			for _, o := range f.offsets {
				n := coord{x: c.x + o.x, z: c.z + o.z}
				j, ok := r.Index(n.x, n.z)
				if !ok || visited[j] {
					continue
				}
				p := r.Points[j]
				if p == nil || !enter(p) {
					continue
				}
				visited[j] = true

				// The first ring is never skipped so seeds stay unique.
				if distance > 0 && f.skip > 0 && f.random.Intn(f.skip) == 0 {
					set(p, distance)
					current = append(current, n)
				} else {
					set(p, distance+1)
					next = append(next, n)
				}
			}
		}
		current, next = next, current[:0]
	}
}

func always(*Point) bool {
	return true
}

func isLand(p *Point) bool {
	return p.Land()
}

func isOcean(p *Point) bool {
	return !p.Land()
}
