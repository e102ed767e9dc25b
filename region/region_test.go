// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package region

import (
	"math/rand"
	"testing"

	"github.com/SoftbearStudios/regiongen/region/compressed"
	"github.com/SoftbearStudios/regiongen/region/geom"
	"github.com/SoftbearStudios/regiongen/region/noise"
	"github.com/SoftbearStudios/regiongen/region/river"
)

// newTestRegion creates a width by height region of ocean at the origin with every Point present.
func newTestRegion(width, height int) *Region {
	r := &Region{MaxX: width - 1, MaxZ: height - 1, Points: make([]*Point, width*height)}
	for i := range r.Points {
		r.Points[i] = &Point{DistanceToOcean: Ocean, DistanceToEdge: Unbounded}
	}
	return r
}

func newTestContext(r *Region) *taskContext {
	settings := DefaultSettings()
	return &taskContext{
		seed:     1,
		settings: &settings,
		region:   r,
		random:   rand.New(rand.NewSource(1)),
	}
}

func TestRegion_At(t *testing.T) {
	r := newTestRegion(4, 3)
	r.MinX, r.MinZ, r.MaxX, r.MaxZ = -2, 5, 1, 7
	r.Points[r.Width()+1] = nil

	if r.Width() != 4 || r.Height() != 3 {
		t.Fatal("expected 4x3 got", r.Width(), r.Height())
	}

	if !r.Contains(-2, 5) || !r.Contains(1, 7) {
		t.Error("expected corners to be present")
	}
	if r.Contains(-1, 6) {
		t.Error("expected (-1, 6) to be absent")
	}
	if r.MaybeAt(2, 5) != nil || r.MaybeAt(-2, 4) != nil {
		t.Error("expected out of bounds to be absent")
	}

	count := 0
	r.ForEach(func(x, z int, p *Point) {
		if r.At(x, z) != p {
			t.Errorf("ForEach (%d, %d) doesn't match At", x, z)
		}
		count++
	})
	if count != 11 {
		t.Error("ForEach expected 11 got", count)
	}
}

func TestPoint_Flags(t *testing.T) {
	var p Point
	p.set(flagLand|flagMountain, true)
	p.set(flagCoastalMountain, true)
	p.set(flagMountain, false)

	if !p.Land() || p.Mountain() || !p.CoastalMountain() || p.Island() || p.River() || p.Lake() {
		t.Errorf("unexpected flags %08b", p.flags)
	}
}

func TestTask_String(t *testing.T) {
	tasks := Tasks()
	if len(tasks) != int(taskCount) || tasks[0] != Init || tasks[len(tasks)-1] != AddRiversAndLakes {
		t.Fatal("unexpected tasks", tasks)
	}

	for _, task := range tasks {
		text, _ := task.MarshalText()
		var parsed Task
		if err := parsed.UnmarshalText(text); err != nil || parsed != task {
			t.Errorf("%s round trip got %s (%v)", task, parsed, err)
		}
	}

	if Task(200).String() != "invalid" {
		t.Error("expected invalid")
	}
}

func TestBiome_LakeVariant(t *testing.T) {
	for b := Biome(0); b < biomeCount; b++ {
		if b.LakeEligible() && !b.LakeVariant().IsLake() {
			t.Errorf("%s lake variant %s is not a lake", b, b.LakeVariant())
		}
		if b.IsLake() && b.LakeEligible() {
			t.Errorf("lake %s is lake eligible", b)
		}
	}

	if ParseBiome("taiga").LakeVariant() != BiomeFrozenLake {
		t.Error("expected frozen lake")
	}
	if BiomeBadlands.LakeEligible() {
		t.Error("badlands should not be lake eligible")
	}
}

func TestBiome_Substitute(t *testing.T) {
	th := climateThresholds{dry: 100, wet: 400, cold: 0}

	tests := []struct {
		biome       Biome
		temperature float32
		rainfall    float32
		want        Biome
	}{
		{BiomeSwamp, 20, 50, BiomePlains},
		{BiomeSwamp, 20, 300, BiomeSwamp},
		{BiomeBadlands, 20, 450, BiomeForest},
		{BiomeJungle, 20, 50, BiomeSavanna},
		{BiomeForest, -5, 300, BiomeTaiga},
		{BiomeMountains, -5, 300, BiomeSnowyMountains},
	}

	for _, test := range tests {
		if got := test.biome.substitute(test.temperature, test.rainfall, th); got != test.want {
			t.Errorf("%s at %g, %g expected %s got %s", test.biome, test.temperature, test.rainfall, test.want, got)
		}
	}
}

func TestFill_Skip(t *testing.T) {
	r := newTestRegion(40, 40)
	f := fill{region: r, random: rand.New(rand.NewSource(3)), skip: 2, offsets: neighbors8[:]}

	distances := make(map[*Point]int)
	f.run([]coord{{0, 0}}, always, func(p *Point, distance int) {
		distances[p] = distance
	})

	if len(distances) != len(r.Points)-1 {
		t.Fatal("expected every point to be reached, got", len(distances))
	}

	// With skips, some points must be closer than their Chebyshev distance.
	closer := false
	r.ForEach(func(x, z int, p *Point) {
		if d, ok := distances[p]; ok && d < maxInt(x, z) {
			closer = true
		}
	})
	if !closer {
		t.Error("expected skipped steps")
	}
	if d := distances[r.At(1, 1)]; d != 1 {
		t.Error("first ring expected 1 got", d)
	}
}

func TestFloodFillSmallOceans(t *testing.T) {
	r := newTestRegion(30, 30)
	ocean := func(x, z int) bool {
		switch {
		case x >= 2 && x <= 16 && z >= 2 && z <= 16:
			return true // 225 points
		case x >= 20 && x <= 24 && z >= 20 && z <= 24:
			return true // 25 points
		case x <= 3 && z >= 25:
			return true // Touches the edge
		}
		return false
	}
	r.ForEach(func(x, z int, p *Point) {
		p.set(flagLand, !ocean(x, z))
	})

	ctx := newTestContext(r)
	annotateDistanceToCellEdge(ctx)
	floodFillSmallOceans(ctx)

	if r.At(10, 10).Land() {
		t.Error("expected large ocean to remain")
	}
	if !r.At(22, 22).Land() {
		t.Error("expected small ocean to be filled")
	}
	if r.At(1, 28).Land() {
		t.Error("expected ocean touching edge to remain")
	}
}

func TestGrowMountainRange(t *testing.T) {
	r := newTestRegion(20, 20)
	contour := func(x, z int) bool {
		return x >= 5 && x <= 14 && z >= 5 && z <= 10
	}
	r.ForEach(func(x, z int, p *Point) {
		p.set(flagLand, true)
		switch {
		case contour(x, z):
			p.BaseLandHeight = int8((x+z)%3 + 5)
		case (x+z)%2 == 0:
			p.BaseLandHeight = 1
		default:
			p.BaseLandHeight = 20
		}
	})

	if h := r.At(5, 5).BaseLandHeight; h != 6 {
		t.Fatal("origin height expected 6 got", h)
	}

	grown := growMountainRange(r, coord{x: 5, z: 5}, 1000)
	if len(grown) != 60 {
		t.Fatal("expected 60 got", len(grown))
	}
	for _, i := range grown {
		x, z := r.MinX+i%r.Width(), r.MinZ+i/r.Width()
		if !contour(x, z) {
			t.Errorf("(%d, %d) is outside of contour", x, z)
		}
	}

	if limited := growMountainRange(r, coord{x: 5, z: 5}, 10); len(limited) != 10 {
		t.Error("expected 10 got", len(limited))
	}
}

func TestAddMountains(t *testing.T) {
	r := newTestRegion(20, 20)
	contour := func(x, z int) bool {
		return x >= 5 && x <= 14 && z >= 5 && z <= 10
	}
	r.ForEach(func(x, z int, p *Point) {
		if contour(x, z) {
			p.set(flagLand, true)
			p.BaseLandHeight = 6
			p.DistanceToOcean = 5
		}
	})

	addMountains(newTestContext(r))

	r.ForEach(func(x, z int, p *Point) {
		if p.Mountain() != contour(x, z) {
			t.Errorf("(%d, %d) mountain expected %t", x, z, contour(x, z))
		}
		if p.CoastalMountain() {
			t.Errorf("(%d, %d) unexpected coastal mountain", x, z)
		}
	})
}

func TestAddMountains_ExactlyMinSize(t *testing.T) {
	r := newTestRegion(20, 20)
	r.ForEach(func(x, z int, p *Point) {
		if x < 9 && z < 5 {
			p.set(flagLand, true)
			p.BaseLandHeight = 6
		}
	})
	if settings := DefaultSettings(); settings.MountainMinSize != 45 {
		t.Fatal("expected min size 45, got", settings.MountainMinSize)
	}

	addMountains(newTestContext(r))

	r.ForEach(func(x, z int, p *Point) {
		if p.Mountain() {
			t.Fatalf("(%d, %d) range of exactly 45 points should not be committed", x, z)
		}
	})
}

func TestAddMountains_TooSmall(t *testing.T) {
	r := newTestRegion(20, 20)
	r.ForEach(func(x, z int, p *Point) {
		if x < 5 && z < 5 {
			p.set(flagLand, true)
			p.BaseLandHeight = 6
		}
	})

	addMountains(newTestContext(r))

	r.ForEach(func(x, z int, p *Point) {
		if p.Mountain() {
			t.Fatalf("(%d, %d) range of 25 points should not be committed", x, z)
		}
	})
}

func TestPlaceLake(t *testing.T) {
	r := newTestRegion(12, 12)
	r.ForEach(func(x, z int, p *Point) {
		p.set(flagLand, true)
		p.DistanceToOcean = 10
		p.DistanceToEdge = 10
		p.Biome = BiomePlains
		p.Rainfall = 100
	})
	// The first diagonal isn't eligible.
	r.At(7, 7).Biome = BiomeBadlands

	e := river.NewEdge(geom.Vec2f{X: 6.5, Y: 6.5}, geom.Vec2f{X: 6.5, Y: 9.5}, 0.3, 1)
	if !placeLake(newTestContext(r), &e) {
		t.Fatal("expected lake")
	}

	lakes := 0
	r.ForEach(func(x, z int, p *Point) {
		if p.Lake() {
			lakes++
			if !p.Biome.IsLake() {
				t.Errorf("(%d, %d) lake has biome %s", x, z, p.Biome)
			}
			if p.Rainfall <= 100 {
				t.Errorf("(%d, %d) expected rainfall to increase, got %g", x, z, p.Rainfall)
			}
		}
	})
	if lakes != 1 {
		t.Error("expected 1 lake got", lakes)
	}
	if r.At(5, 7).Rainfall <= 100 {
		t.Error("expected neighbor rainfall to increase")
	}
	if r.At(0, 0).Rainfall != 100 {
		t.Error("expected far rainfall to be unchanged")
	}
}

func TestPlaceLake_Unsuitable(t *testing.T) {
	r := newTestRegion(12, 12)
	r.ForEach(func(x, z int, p *Point) {
		p.set(flagLand, true)
		p.DistanceToOcean = 2 // Too close to the ocean
		p.DistanceToEdge = 10
		p.Biome = BiomeForest
	})

	e := river.NewEdge(geom.Vec2f{X: 6.5, Y: 6.5}, geom.Vec2f{X: 6.5, Y: 9.5}, 0.3, 1)
	if placeLake(newTestContext(r), &e) {
		t.Error("expected no lake")
	}
}

func TestSettings_Validate(t *testing.T) {
	settings := DefaultSettings()
	if err := settings.Validate(); err != nil {
		t.Fatal(err)
	}

	settings.RiverVertexSeparation = settings.RiverEdgeLength
	if settings.Validate() == nil {
		t.Error("expected separation error")
	}

	settings = DefaultSettings()
	settings.AffectDistance = 1000
	if settings.Validate() == nil {
		t.Error("expected affect distance error")
	}

	if _, err := New(1, Settings{}); err == nil {
		t.Error("expected zero settings to be invalid")
	}
}

func TestBiome_FitsLayer(t *testing.T) {
	if biomeCount > compressed.MaxValue+1 {
		t.Errorf("%d biomes don't fit in a compressed.Layer", biomeCount)
	}
	if len(biomeEnum.strings) != int(biomeCount) {
		t.Errorf("expected %d biome names, got %d", biomeCount, len(biomeEnum.strings))
	}
}

func TestCoastal(t *testing.T) {
	r := newTestRegion(6, 6)
	r.ForEach(func(x, z int, p *Point) {
		if x >= 2 {
			p.set(flagLand, true)
		}
	})
	r.Points[r.Width()*5+5] = nil

	if !r.coastal(2, 3) || !r.coastal(2, 0) {
		t.Error("expected land next to ocean to be coastal")
	}
	if r.coastal(3, 3) || r.coastal(1, 3) {
		t.Error("expected inland and ocean not to be coastal")
	}
	if r.coastal(4, 4) {
		t.Error("expected an absent neighbor not to count as ocean")
	}
}

func TestAllLandRegion(t *testing.T) {
	r := newTestRegion(30, 30)
	r.ForEach(func(_, _ int, p *Point) {
		p.set(flagLand, true)
	})

	ctx := newTestContext(r)
	ctx.biomes = noise.NewAreas(1, ctx.settings.AreaSpacing, ctx.settings.AreaWarp).Sampler()

	annotateDistanceToCellEdge(ctx)
	annotateDistanceToOcean(ctx)
	chooseBiomes(ctx)
	addRiversAndLakes(ctx)

	r.ForEach(func(x, z int, p *Point) {
		if int(p.DistanceToOcean) <= ctx.settings.CoastalDistance {
			t.Errorf("(%d, %d) distance to ocean %d without any ocean", x, z, p.DistanceToOcean)
		}
		if p.Biome == BiomeBeach {
			t.Errorf("(%d, %d) beach without any ocean", x, z)
		}
	})
	if len(r.Rivers) != 0 {
		t.Errorf("expected no rivers without an ocean, got %d", len(r.Rivers))
	}
}
