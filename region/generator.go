// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package region

import (
	"fmt"
	"log"

	"github.com/SoftbearStudios/regiongen/region/cache"
	"github.com/SoftbearStudios/regiongen/region/geom"
	"github.com/SoftbearStudios/regiongen/region/noise"
	"github.com/SoftbearStudios/regiongen/region/river"
	"github.com/SoftbearStudios/regiongen/region/units"
)

// Generator is the entry point to region generation.
// All of its methods can be called concurrently. Regions and Partitions are cached; two
// goroutines missing the same entry may both build it, which is wasted work but gives
// identical results.
type Generator struct {
	seed     int64
	settings Settings

	cellular   *noise.Cellular
	fields     *noise.Fields
	biomeAreas *noise.Areas
	rockAreas  *noise.Areas

	regions    *cache.Cache[noise.CellKey, *Region]
	partitions *cache.Cache[PartitionKey, *Partition]
}

// Stats are the counters of a Generator's caches.
type Stats struct {
	Regions    cache.Stats `json:"regions"`
	Partitions cache.Stats `json:"partitions"`
}

// New creates a Generator for a seed.
func New(seed int64, settings Settings) (*Generator, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return &Generator{
		seed:       seed,
		settings:   settings,
		cellular:   noise.NewCellular(seed, units.CellWidthInGrid),
		fields:     noise.NewFields(seed),
		biomeAreas: noise.NewAreas(seed+23, settings.AreaSpacing, settings.AreaWarp),
		rockAreas:  noise.NewAreas(seed+29, settings.AreaSpacing*1.5, settings.AreaWarp),
		regions:    cache.New[noise.CellKey, *Region](settings.RegionCacheSize, hashCellKey),
		partitions: cache.New[PartitionKey, *Partition](settings.PartitionCacheSize, hashPartitionKey),
	}, nil
}

// Seed returns the seed the Generator was created with.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Settings returns a copy of the Generator's settings.
func (g *Generator) Settings() Settings {
	return g.settings
}

// SampleCell returns the cell that owns a grid coordinate.
func (g *Generator) SampleCell(gridX, gridZ int) noise.Cell {
	return sampleCell(g.cellular, gridX, gridZ)
}

// sampleCell samples the center of the grid coordinate.
func sampleCell(cellular *noise.Cellular, gridX, gridZ int) noise.Cell {
	return cellular.Sample(float64(gridX)+0.5, float64(gridZ)+0.5)
}

// GetOrCreateRegion returns the Region that owns a grid coordinate.
func (g *Generator) GetOrCreateRegion(gridX, gridZ int) *Region {
	return g.region(g.SampleCell(gridX, gridZ))
}

// GetOrCreateRegionPoint returns the Point at a grid coordinate.
func (g *Generator) GetOrCreateRegionPoint(gridX, gridZ int) Point {
	return *g.GetOrCreateRegion(gridX, gridZ).At(gridX, gridZ)
}

// GetOrCreatePartition returns the Partition containing a grid coordinate.
func (g *Generator) GetOrCreatePartition(gridX, gridZ int) *Partition {
	key := partitionKeyOf(gridX, gridZ)
	return g.partitions.GetOrCreate(key, func() *Partition {
		return g.buildPartition(key)
	})
}

// GetOrCreatePartitionPoint returns the river edges that can affect a grid coordinate.
// The result must not be modified.
func (g *Generator) GetOrCreatePartitionPoint(gridX, gridZ int) []*river.Edge {
	return g.GetOrCreatePartition(gridX, gridZ).Bucket(gridX, gridZ)
}

// ForRiversInRadius iterates the edges that can affect any grid coordinate within radius of
// position and returns if stopped early. An edge may be iterated more than once.
func (g *Generator) ForRiversInRadius(position geom.Vec2f, radius float32, callback func(e *river.Edge) (stop bool)) bool {
	box := geom.AABBAround(position, radius)
	minX, minZ, maxX, maxZ := box.GridBounds()

	// Iterate z in outer for better locality of reference
	for pz := units.GridToPartition(minZ); pz <= units.GridToPartition(maxZ); pz++ {
		for px := units.GridToPartition(minX); px <= units.GridToPartition(maxX); px++ {
			p := g.GetOrCreatePartition(units.PartitionToGrid(px), units.PartitionToGrid(pz))

			stopped := false
			p.forBucketsInBox(box, func(id bucketID) {
				if stopped {
					return
				}
				for _, e := range p.Buckets[id.index()] {
					if callback(e) {
						stopped = true
						return
					}
				}
			})
			if stopped {
				return true
			}
		}
	}
	return false
}

// VisualizeRegion builds the Region that owns a grid coordinate from scratch, calling
// observer after every Task. The Region must not be modified or retained by observer
// unless it is the last Task. The result is not cached.
func (g *Generator) VisualizeRegion(gridX, gridZ int, observer func(task Task, r *Region)) *Region {
	return g.build(g.SampleCell(gridX, gridZ), observer)
}

// Stats returns the counters of the caches.
func (g *Generator) Stats() Stats {
	return Stats{
		Regions:    g.regions.Stats(),
		Partitions: g.partitions.Stats(),
	}
}

// Debug prints debug info to the log.
func (g *Generator) Debug() {
	stats := g.Stats()
	log.Printf("seed: %d, regions: %s, partitions: %s", g.seed, stats.Regions, stats.Partitions)
}

func (g *Generator) region(cell noise.Cell) *Region {
	return g.regions.GetOrCreate(cell.CellKey, func() *Region {
		return g.build(cell, nil)
	})
}

// build runs every Task in order.
func (g *Generator) build(cell noise.Cell, observer func(Task, *Region)) *Region {
	ctx := g.newTaskContext(cell)
	for task := Task(0); task < taskCount; task++ {
		task.run(ctx)
		if observer != nil {
			observer(task, ctx.region)
		}
	}
	return ctx.region
}

func hashCellKey(key noise.CellKey) uint64 {
	return noise.Hash2(0, int(key.X), int(key.Z))
}

func hashPartitionKey(key PartitionKey) uint64 {
	return noise.Hash2(1, int(key.X), int(key.Z))
}
