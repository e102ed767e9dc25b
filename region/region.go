// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package region assigns large scale geography (land, mountains, climate, biomes, rocks and
// rivers) to an infinite grid, one cellular partition cell at a time.
package region

import (
	"fmt"

	"github.com/SoftbearStudios/regiongen/region/noise"
	"github.com/SoftbearStudios/regiongen/region/river"
)

// Region is the Points of one cell of the cellular partition.
// Once returned by a Generator, a Region is never modified.
type Region struct {
	Cell noise.Cell

	// Inclusive bounds in grid space.
	MinX, MinZ, MaxX, MaxZ int

	// Points in row major order. Nil where the coordinate belongs to another cell.
	Points []*Point

	// Rivers whose source is in this region. Drain indices refer to this slice.
	Rivers []river.Edge
}

type coord struct {
	x, z int
}

var (
	neighbors4 = [...]coord{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	neighbors8 = [...]coord{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	diagonals  = [...]coord{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
)

// Width is the number of columns of Points.
func (r *Region) Width() int {
	return r.MaxX - r.MinX + 1
}

// Height is the number of rows of Points.
func (r *Region) Height() int {
	return r.MaxZ - r.MinZ + 1
}

// Index returns the index of (x, z) in Points, and false if it is out of bounds.
func (r *Region) Index(x, z int) (int, bool) {
	if x < r.MinX || x > r.MaxX || z < r.MinZ || z > r.MaxZ {
		return 0, false
	}
	return (z-r.MinZ)*r.Width() + (x - r.MinX), true
}

// Contains is true if (x, z) belongs to the region.
func (r *Region) Contains(x, z int) bool {
	return r.MaybeAt(x, z) != nil
}

// MaybeAt returns the Point at (x, z) or nil if it doesn't belong to the region.
func (r *Region) MaybeAt(x, z int) *Point {
	i, ok := r.Index(x, z)
	if !ok {
		return nil
	}
	return r.Points[i]
}

// At returns the Point at (x, z), which must belong to the region.
func (r *Region) At(x, z int) *Point {
	p := r.MaybeAt(x, z)
	if debug && p == nil {
		panic(fmt.Sprintf("(%d, %d) is not in region %v", x, z, r.Cell.CellKey))
	}
	return p
}

// ForEach calls fn with every Point of the region in row major order.
func (r *Region) ForEach(fn func(x, z int, p *Point)) {
	width := r.Width()
	for i, p := range r.Points {
		if p != nil {
			fn(r.MinX+i%width, r.MinZ+i/width, p)
		}
	}
}

// InlandDistance implements river.Terrain.
func (r *Region) InlandDistance(x, z int) (int, bool) {
	p := r.MaybeAt(x, z)
	if p == nil || !p.Land() {
		return 0, false
	}
	return int(p.DistanceToOcean), true
}

// coastal reports if (x, z) is land with an ocean Point among its 8 neighbors.
// Skipped fill steps mean DistanceToOcean == 1 alone doesn't imply this.
func (r *Region) coastal(x, z int) bool {
	if p := r.MaybeAt(x, z); p == nil || !p.Land() {
		return false
	}
	for _, o := range neighbors8 {
		if n := r.MaybeAt(x+o.x, z+o.z); n != nil && !n.Land() {
			return true
		}
	}
	return false
}

// Summary counts Points by kind.
type Summary struct {
	Points    int `json:"points"`
	Land      int `json:"land"`
	Islands   int `json:"islands"`
	Mountains int `json:"mountains"`
	Lakes     int `json:"lakes"`
	Rivers    int `json:"rivers"`
}

// Summarize counts the Points of the region.
func (r *Region) Summarize() (s Summary) {
	r.ForEach(func(_, _ int, p *Point) {
		s.Points++
		if p.Land() {
			s.Land++
		}
		if p.Island() {
			s.Islands++
		}
		if p.Mountain() {
			s.Mountains++
		}
		if p.Lake() {
			s.Lakes++
		}
	})
	s.Rivers = len(r.Rivers)
	return
}

// Debug prints debug info to os.Stdout.
func (r *Region) Debug() {
	s := r.Summarize()
	fmt.Printf("region %v: bounds: (%d, %d)-(%d, %d), points: %d, land: %d, islands: %d, mountains: %d, lakes: %d, rivers: %d\n",
		r.Cell.CellKey, r.MinX, r.MinZ, r.MaxX, r.MaxZ, s.Points, s.Land, s.Islands, s.Mountains, s.Lakes, s.Rivers)
}
