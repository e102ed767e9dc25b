// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package region

import (
	"fmt"
	"math"
	"sort"

	"github.com/SoftbearStudios/regiongen/region/geom"
	"github.com/SoftbearStudios/regiongen/region/noise"
	"github.com/SoftbearStudios/regiongen/region/river"
	"github.com/SoftbearStudios/regiongen/region/units"
)

const bucketsPerPartition = units.BucketsPerPartition

// PartitionKey identifies a partition by its position in partition space.
type PartitionKey struct {
	X, Z int32
}

// partitionKeyOf returns the key of the partition containing a grid coordinate.
func partitionKeyOf(gridX, gridZ int) PartitionKey {
	return PartitionKey{X: int32(units.GridToPartition(gridX)), Z: int32(units.GridToPartition(gridZ))}
}

// bucketID is a bucket's position within its partition.
type bucketID struct {
	x, z int
}

func (id bucketID) index() int {
	return id.x + id.z*bucketsPerPartition
}

// Partition buckets the river edges that can affect each part of a square of grid space.
// Edges are owned by their regions; a Partition only refers to them.
type Partition struct {
	Key     PartitionKey
	Buckets [bucketsPerPartition * bucketsPerPartition][]*river.Edge
	Regions []noise.CellKey // Regions whose edges were considered, in key order
}

// Bounds returns the inclusive grid bounds of the partition.
func (p *Partition) Bounds() (minX, minZ, maxX, maxZ int) {
	minX = units.PartitionToGrid(int(p.Key.X))
	minZ = units.PartitionToGrid(int(p.Key.Z))
	return minX, minZ, minX + units.PartitionWidthInGrid - 1, minZ + units.PartitionWidthInGrid - 1
}

// Box returns the area of the partition in grid space.
func (p *Partition) Box() geom.AABB {
	minX, minZ, _, _ := p.Bounds()
	return geom.AABBFrom(float32(minX), float32(minZ), units.PartitionWidthInGrid, units.PartitionWidthInGrid)
}

// Bucket returns the edges that can affect a grid coordinate inside the partition.
func (p *Partition) Bucket(gridX, gridZ int) []*river.Edge {
	if debug && partitionKeyOf(gridX, gridZ) != p.Key {
		panic(fmt.Sprintf("(%d, %d) is not in partition %v", gridX, gridZ, p.Key))
	}
	return p.Buckets[bucketID{x: units.GridToBucket(gridX), z: units.GridToBucket(gridZ)}.index()]
}

// forBucketsInBox iterates the buckets that box overlaps.
func (p *Partition) forBucketsInBox(box geom.AABB, callback func(id bucketID)) {
	if !p.Box().Intersects(box) {
		return
	}

	minX, minZ, maxX, maxZ := p.Bounds()
	x0, z0, x1, z1 := box.GridBounds()
	x0, z0 = maxInt(x0, minX), maxInt(z0, minZ)
	x1, z1 = minInt(x1, maxX), minInt(z1, maxZ)
	if x0 > x1 || z0 > z1 {
		// Only touches the far edge.
		return
	}

	for bz := units.GridToBucket(z0); bz <= units.GridToBucket(z1); bz++ {
		for bx := units.GridToBucket(x0); bx <= units.GridToBucket(x1); bx++ {
			callback(bucketID{x: bx, z: bz})
		}
	}
}

// Debug prints debug info to os.Stdout.
func (p *Partition) Debug() {
	edges, largest := 0, 0
	for _, bucket := range p.Buckets {
		edges += len(bucket)
		largest = maxInt(largest, len(bucket))
	}
	fmt.Printf("partition %v: regions: %d, edge refs: %d, largest bucket: %d\n", p.Key, len(p.Regions), edges, largest)
}

// buildPartition gathers every region owning a coordinate within AffectDistance of the
// partition and buckets their edges. It never modifies a region.
func (g *Generator) buildPartition(key PartitionKey) *Partition {
	p := &Partition{Key: key}
	minX, minZ, maxX, maxZ := p.Bounds()
	margin := int(math.Ceil(float64(g.settings.AffectDistance)))

	cells := make(map[noise.CellKey]noise.Cell)
	for z := minZ - margin; z <= maxZ+margin; z++ {
		for x := minX - margin; x <= maxX+margin; x++ {
			cell := g.SampleCell(x, z)
			if _, ok := cells[cell.CellKey]; !ok {
				cells[cell.CellKey] = cell
			}
		}
	}

	for k := range cells {
		p.Regions = append(p.Regions, k)
	}
	sort.Slice(p.Regions, func(i, j int) bool {
		a, b := p.Regions[i], p.Regions[j]
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		return a.X < b.X
	})

	for _, k := range p.Regions {
		r := g.region(cells[k])
		for i := range r.Rivers {
			e := &r.Rivers[i]
			p.forBucketsInBox(e.AffectBox(g.settings.AffectDistance), func(id bucketID) {
				p.Buckets[id.index()] = append(p.Buckets[id.index()], e)
			})
		}
	}

	return p
}
