// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package region

import (
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/SoftbearStudios/regiongen/region/river"
	"github.com/SoftbearStudios/regiongen/region/units"
)

const testSeed = 56

var testCoords = [][2]int{{0, 0}, {37, -12}, {-80, 45}, {130, 130}, {-5, -170}, {210, -60}}

func newTestGenerator(t testing.TB) *Generator {
	g, err := New(testSeed, DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// testRegions returns the regions that own testCoords.
func testRegions(g *Generator) []*Region {
	regions := make([]*Region, len(testCoords))
	for i, c := range testCoords {
		regions[i] = g.GetOrCreateRegion(c[0], c[1])
	}
	return regions
}

func TestGenerator_Determinism(t *testing.T) {
	a := newTestGenerator(t)
	b := newTestGenerator(t)

	// Warm b's cache with other coordinates, in the opposite order.
	for i := len(testCoords) - 1; i >= 0; i-- {
		b.GetOrCreatePartition(testCoords[i][0]+units.PartitionWidthInGrid, testCoords[i][1])
	}

	for _, c := range testCoords {
		for dz := -3; dz <= 3; dz++ {
			for dx := -3; dx <= 3; dx++ {
				x, z := c[0]+dx*7, c[1]+dz*7
				cold := a.GetOrCreateRegionPoint(x, z)
				warm := a.GetOrCreateRegionPoint(x, z)
				other := b.GetOrCreateRegionPoint(x, z)
				if cold != warm || cold != other {
					t.Fatalf("(%d, %d) points differ:\n%+v\n%+v\n%+v", x, z, cold, warm, other)
				}
			}
		}
	}

	// A region built from scratch matches the cached one, rivers included.
	for _, c := range testCoords {
		cached := a.GetOrCreateRegion(c[0], c[1])
		fresh := b.VisualizeRegion(c[0], c[1], nil)
		if len(cached.Rivers) != len(fresh.Rivers) {
			t.Fatalf("rivers expected %d got %d", len(cached.Rivers), len(fresh.Rivers))
		}
		for i := range cached.Rivers {
			e, f := &cached.Rivers[i], &fresh.Rivers[i]
			if e.Source != f.Source || e.Drain != f.Drain || e.Width != f.Width || e.DrainIndex() != f.DrainIndex() {
				t.Fatalf("river %d differs: %+v %+v", i, e, f)
			}
		}
	}
}

func TestGenerator_Concurrent(t *testing.T) {
	g := newTestGenerator(t)
	want := make([]Point, len(testCoords))
	for i, c := range testCoords {
		want[i] = newTestGenerator(t).GetOrCreateRegionPoint(c[0], c[1])
	}

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for j := range testCoords {
				i := (j + w) % len(testCoords)
				c := testCoords[i]
				g.GetOrCreatePartitionPoint(c[0], c[1])
				if got := g.GetOrCreateRegionPoint(c[0], c[1]); got != want[i] {
					t.Errorf("(%d, %d) expected %+v got %+v", c[0], c[1], want[i], got)
				}
			}
		}(w)
	}
	wg.Wait()

	if stats := g.Stats(); stats.Regions.Hits == 0 {
		t.Error("expected region cache hits", stats)
	}
}

func TestRegion_Coverage(t *testing.T) {
	g := newTestGenerator(t)

	for _, r := range testRegions(g) {
		r.ForEach(func(x, z int, p *Point) {
			if cell := g.SampleCell(x, z); cell.CellKey != r.Cell.CellKey {
				t.Fatalf("(%d, %d) belongs to %v but is in region %v", x, z, cell.CellKey, r.Cell.CellKey)
			}
		})
	}

	// Every coordinate is in exactly one of the regions around it.
	for _, c := range testCoords {
		for z := c[1] - 10; z <= c[1]+10; z++ {
			for x := c[0] - 10; x <= c[0]+10; x++ {
				owner := g.GetOrCreateRegion(x, z)
				if !owner.Contains(x, z) {
					t.Fatalf("(%d, %d) not in its own region", x, z)
				}
				for _, other := range testRegions(g) {
					if other.Cell.CellKey != owner.Cell.CellKey && other.Contains(x, z) {
						t.Fatalf("(%d, %d) in two regions", x, z)
					}
				}
			}
		}
	}
}

// minNeighbor returns the smallest value of the present neighbors of (x, z).
func minNeighbor(r *Region, x, z int, offsets []coord, value func(p *Point) int) (int, bool) {
	min, ok := 0, false
	for _, o := range offsets {
		if n := r.MaybeAt(x+o.x, z+o.z); n != nil {
			if v := value(n); !ok || v < min {
				min, ok = v, true
			}
		}
	}
	return min, ok
}

func TestRegion_DistanceMonotonic(t *testing.T) {
	g := newTestGenerator(t)

	toOcean := func(p *Point) int {
		if !p.Land() {
			return 0
		}
		return int(p.DistanceToOcean)
	}
	toWestCoast := func(p *Point) int {
		return int(p.DistanceToWestCoast)
	}
	toEdge := func(p *Point) int {
		return int(p.DistanceToEdge)
	}

	for _, r := range testRegions(g) {
		r.ForEach(func(x, z int, p *Point) {
			if p.DistanceToEdge < 0 {
				t.Fatalf("(%d, %d) edge distance not annotated", x, z)
			}
			if p.DistanceToEdge > 0 {
				m, _ := minNeighbor(r, x, z, neighbors8[:], toEdge)
				if d := int(p.DistanceToEdge) - m; d < 0 || d > 1 {
					t.Errorf("(%d, %d) edge distance %d, min neighbor %d", x, z, p.DistanceToEdge, m)
				}
			}

			if !p.Land() {
				if p.DistanceToOcean != Ocean && p.DistanceToOcean != Shore {
					t.Errorf("(%d, %d) ocean has distance %d", x, z, p.DistanceToOcean)
				}
				return
			}

			if p.DistanceToOcean < 1 {
				t.Errorf("(%d, %d) land has distance to ocean %d", x, z, p.DistanceToOcean)
			}
			if m, ok := minNeighbor(r, x, z, neighbors8[:], toOcean); ok && int(p.DistanceToOcean)-m > 1 {
				t.Errorf("(%d, %d) ocean distance %d, min neighbor %d", x, z, p.DistanceToOcean, m)
			}

			// West coast distance only flows east, north and south.
			if r.Contains(x-1, z) {
				from := []coord{{-1, 0}, {0, -1}, {0, 1}}
				m, _ := minNeighbor(r, x, z, from, toWestCoast)
				if d := int(p.DistanceToWestCoast) - m; d < 0 || d > 1 {
					t.Errorf("(%d, %d) west coast distance %d, min predecessor %d", x, z, p.DistanceToWestCoast, m)
				}
			}
		})
	}
}

// checkShores reports beaches and river mouths that aren't next to the ocean.
func checkShores(t *testing.T, r *Region) {
	t.Helper()
	r.ForEach(func(x, z int, p *Point) {
		if p.Biome == BiomeBeach && !r.coastal(x, z) {
			t.Errorf("region %v: beach at (%d, %d) isn't next to the ocean", r.Cell.CellKey, x, z)
		}
	})
	for i := range r.Rivers {
		e := &r.Rivers[i]
		if e.DrainIndex() != river.NoDrain {
			continue
		}
		if x, z := e.Drain.Grid(); !r.coastal(x, z) {
			t.Errorf("region %v: river mouth at (%d, %d) isn't next to the ocean", r.Cell.CellKey, x, z)
		}
	}
}

func TestRegion_Shores(t *testing.T) {
	g := newTestGenerator(t)
	for _, r := range testRegions(g) {
		checkShores(t, r)
	}
}

func TestRegion_Inland(t *testing.T) {
	if testing.Short() {
		t.Skip("scans many regions")
	}

	g := newTestGenerator(t)
	step := units.CellWidthInGrid / 2
	seen := make(map[[2]int32]bool)
	inland := 0

	for z := -12 * units.CellWidthInGrid; z < -8*units.CellWidthInGrid; z += step {
		for x := -10 * units.CellWidthInGrid; x < -6*units.CellWidthInGrid; x += step {
			r := g.GetOrCreateRegion(x, z)
			key := [2]int32{r.Cell.X, r.Cell.Z}
			if seen[key] {
				continue
			}
			seen[key] = true

			checkShores(t, r)

			if s := r.Summarize(); s.Land != s.Points {
				continue
			}
			inland++
			r.ForEach(func(x, z int, p *Point) {
				if p.DistanceToOcean <= 1 {
					t.Errorf("region %v: inland (%d, %d) has distance to ocean %d", key, x, z, p.DistanceToOcean)
				}
			})
			if len(r.Rivers) != 0 {
				t.Errorf("region %v: %d rivers without an ocean", key, len(r.Rivers))
			}
		}
	}
	t.Logf("%d regions, %d without ocean", len(seen), inland)
}

func TestRegion_SmallOceans(t *testing.T) {
	g := newTestGenerator(t)
	min := g.Settings().SmallOceanSize

	for _, c := range testCoords {
		g.VisualizeRegion(c[0], c[1], func(task Task, r *Region) {
			if task != FloodFillSmallOceans {
				return
			}

			visited := make([]bool, len(r.Points))
			for start, p := range r.Points {
				if p == nil || p.Land() || visited[start] {
					continue
				}
				size, touchesEdge := 0, false
				queue := []int{start}
				visited[start] = true
				for len(queue) > 0 {
					i := queue[0]
					queue = queue[1:]
					size++
					touchesEdge = touchesEdge || r.Points[i].DistanceToEdge == 0
					x, z := r.MinX+i%r.Width(), r.MinZ+i/r.Width()
					for _, o := range neighbors4 {
						if j, ok := r.Index(x+o.x, z+o.z); ok && !visited[j] && r.Points[j] != nil && !r.Points[j].Land() {
							visited[j] = true
							queue = append(queue, j)
						}
					}
				}
				if !touchesEdge && size < min {
					t.Errorf("region %v has enclosed ocean of %d points", r.Cell.CellKey, size)
				}
			}
		})
	}
}

func TestRegion_Rivers(t *testing.T) {
	g := newTestGenerator(t)
	s := g.Settings()

	for _, r := range testRegions(g) {
		for i := range r.Rivers {
			e := &r.Rivers[i]
			if !r.Contains(e.Source.Grid()) {
				t.Errorf("river source %v outside of region", e.Source)
			}

			width := e.Width
			steps := 0
			for d := river.Downstream(r.Rivers, e); d != nil; d = river.Downstream(r.Rivers, d) {
				if d.Width < width {
					t.Fatalf("width decreased from %d to %d", width, d.Width)
				}
				width = d.Width
				if steps++; steps > len(r.Rivers) {
					t.Fatal("river cycle")
				}
			}
			if e.Width > s.RiverMaxWidth || e.Width < s.RiverStartWidth {
				t.Errorf("width %d out of range", e.Width)
			}
		}
	}
}

func TestVisualizeRegion(t *testing.T) {
	g := newTestGenerator(t)

	var tasks []Task
	r := g.VisualizeRegion(0, 0, func(task Task, r *Region) {
		tasks = append(tasks, task)
		if len(r.Points) == 0 {
			t.Errorf("%s: no points", task)
		}
	})

	if len(tasks) != int(taskCount) {
		t.Fatal("expected", taskCount, "tasks got", len(tasks))
	}
	for i, task := range tasks {
		if task != Task(i) {
			t.Errorf("task %d expected %s got %s", i, Task(i), task)
		}
	}
	if !r.Contains(0, 0) {
		t.Error("expected region to contain origin")
	}
}

func TestPartition(t *testing.T) {
	g := newTestGenerator(t)
	margin := g.Settings().AffectDistance

	// overlaps is true if box touches grid columns [min, min+width).
	overlaps := func(boxMin, boxMax float32, min, width int) bool {
		return int(math.Floor(float64(boxMin))) < min+width && int(math.Floor(float64(boxMax))) >= min
	}

	for _, r := range testRegions(g) {
		// The partition of any of the region's points must include the region.
		var px, pz int
		for i, point := range r.Points {
			if point != nil {
				px, pz = r.MinX+i%r.Width(), r.MinZ+i/r.Width()
				break
			}
		}

		p := g.GetOrCreatePartition(px, pz)
		minX, minZ, maxX, maxZ := p.Bounds()
		if px < minX || px > maxX || pz < minZ || pz > maxZ {
			t.Fatalf("(%d, %d) outside of partition %v", px, pz, p.Key)
		}

		found := false
		for _, k := range p.Regions {
			found = found || k == r.Cell.CellKey
		}
		if !found {
			t.Fatalf("partition %v is missing region %v", p.Key, r.Cell.CellKey)
		}

		for z := minZ; z <= maxZ; z++ {
			for x := minX; x <= maxX; x++ {
				bx := minX + units.GridToBucket(x)*units.BucketWidthInGrid
				bz := minZ + units.GridToBucket(z)*units.BucketWidthInGrid
				for _, e := range g.GetOrCreatePartitionPoint(x, z) {
					box := e.AffectBox(margin)
					if !overlaps(box.X, box.X+box.Width, bx, units.BucketWidthInGrid) || !overlaps(box.Y, box.Y+box.Height, bz, units.BucketWidthInGrid) {
						t.Fatalf("(%d, %d) bucket has unrelated edge %v", x, z, e.Midpoint())
					}
				}
			}
		}

		// Every edge of the region that can affect the partition is in the bucket of the
		// partition coordinate closest to its midpoint.
		for i := range r.Rivers {
			e := &r.Rivers[i]
			box := e.AffectBox(margin)
			if !overlaps(box.X, box.X+box.Width, minX, units.PartitionWidthInGrid) || !overlaps(box.Y, box.Y+box.Height, minZ, units.PartitionWidthInGrid) {
				continue
			}
			mx, mz := e.Midpoint().Grid()
			x, z := clampInt(mx, minX, maxX), clampInt(mz, minZ, maxZ)

			found := false
			for _, other := range g.GetOrCreatePartitionPoint(x, z) {
				found = found || (other.Source == e.Source && other.Drain == e.Drain)
			}
			if !found {
				t.Errorf("edge %v missing from bucket of (%d, %d)", e.Midpoint(), x, z)
			}
		}
	}
}

func TestGenerator_ForRiversInRadius(t *testing.T) {
	g := newTestGenerator(t)

	for _, r := range testRegions(g) {
		for i := range r.Rivers {
			e := &r.Rivers[i]
			found := false
			g.ForRiversInRadius(e.Midpoint(), 1, func(other *river.Edge) bool {
				found = other.Source == e.Source && other.Drain == e.Drain
				return found
			})
			if !found {
				t.Errorf("edge %v not found near its midpoint", e.Midpoint())
			}
		}
	}
}

func TestLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("small_ocean_size: 99\nlake_chance: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	if settings.SmallOceanSize != 99 || settings.LakeChance != 2 {
		t.Error("expected overridden values", settings.SmallOceanSize, settings.LakeChance)
	}
	if settings.OceanSkipChance != DefaultSettings().OceanSkipChance {
		t.Error("expected default ocean skip chance")
	}

	if err := os.WriteFile(path, []byte("river_vertex_separation: 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSettings(path); err == nil {
		t.Error("expected invalid settings")
	}

	if _, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected missing file error")
	}
}

func BenchmarkGenerator_GetOrCreateRegion(b *testing.B) {
	g := newTestGenerator(b)
	for i := 0; i < b.N; i++ {
		g.VisualizeRegion(i*units.CellWidthInGrid, 0, nil)
	}
}
