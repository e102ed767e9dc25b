// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package region

import (
	"github.com/SoftbearStudios/regiongen/region/geom"
	"github.com/SoftbearStudios/regiongen/region/noise"
)

// Hash salts. Area ids are hashed with the world seed so that regions sharing an area agree.
const (
	biomeSalt     = 13
	thresholdSalt = 17
	rockSalt      = 19
)

// annotateClimate samples the climate fields and pulls coastal points toward a mild, wet
// climate around the region's own. The pull fades out at the region's edge, so neighboring
// regions meet at the unbiased fields.
func annotateClimate(ctx *taskContext) {
	r := ctx.region
	s := ctx.settings
	f := ctx.fields

	cx, cz := float64(r.Cell.CenterX), float64(r.Cell.CenterZ)
	targetTemperature := geom.Lerp(f.Temperature(cx, cz), s.MildTemperature, 0.5)
	targetRainfall := geom.Lerp(f.Rainfall(cx, cz), s.WetRainfall, 0.5)

	r.ForEach(func(x, z int, p *Point) {
		fx, fz := float64(x), float64(z)

		edge := ramp(int(p.DistanceToEdge), s.EdgeBlendDistance)
		coast := float32(1)
		if p.Land() {
			coast = 1 - ramp(int(p.DistanceToOcean)-1, s.CoastalDistance)
		}
		bias := s.CoastalBias * coast * edge

		p.Temperature = geom.Lerp(f.Temperature(fx, fz), targetTemperature, bias)
		p.Rainfall = clamp(geom.Lerp(f.Rainfall(fx, fz), targetRainfall, bias), noise.MinRainfall, noise.MaxRainfall)

		west := 1 - ramp(int(p.DistanceToWestCoast), s.WestCoastDistance)
		variance := geom.Lerp(f.RainfallVariance(fx, fz), s.WestCoastVariance, west*edge)
		p.RainfallVariance = variance * edge
	})
}

// chooseBiomes picks a biome per area from candidates for the Point's kind, then
// swaps biomes that don't fit the climate.
func chooseBiomes(ctx *taskContext) {
	ctx.region.ForEach(func(x, z int, p *Point) {
		switch {
		case !p.Land():
			p.Biome = BiomeOcean
			return
		case !p.Mountain() && ctx.region.coastal(x, z):
			p.Biome = BiomeBeach
			return
		}

		var candidates []Biome
		table := int(p.BiomeAltitude)
		switch {
		case p.Mountain():
			candidates = mountainBiomes
			table = 4
		case p.Island():
			candidates = islandBiomes
			table = 5
		default:
			candidates = lowlandBiomes[p.BiomeAltitude]
		}

		area := int(ctx.biomes.At(x, z))
		biome := candidates[noise.Hash2(ctx.seed+biomeSalt, area, table)%uint64(len(candidates))]
		p.Biome = biome.substitute(p.Temperature, p.Rainfall, thresholds(ctx, area))
	})
}

func thresholds(ctx *taskContext, area int) climateThresholds {
	s := ctx.settings
	jitter := float32(noise.Unit(noise.Hash2(ctx.seed+thresholdSalt, area, 0))*2-1) * s.ThresholdJitter
	return climateThresholds{
		dry:  s.DryRainfall * (1 + jitter),
		wet:  s.SoakedRainfall * (1 + jitter),
		cold: s.FreezingTemperature + jitter*10,
	}
}

// chooseRocks picks a rock per area from candidates for the Point's kind.
func chooseRocks(ctx *taskContext) {
	ctx.region.ForEach(func(x, z int, p *Point) {
		var candidates []Rock
		var table int
		switch {
		case p.CoastalMountain():
			candidates, table = coastalRocks, 0
		case p.Mountain():
			candidates, table = mountainRocks, 1
		case p.Island():
			candidates, table = islandRocks, 2
		case p.BiomeAltitude >= 2:
			candidates, table = highlandRocks, 3
		default:
			candidates, table = lowlandRocks, 4
		}

		area := int(ctx.rocks.At(x, z))
		p.Rock = candidates[noise.Hash2(ctx.seed+rockSalt, area, table)%uint64(len(candidates))]
	})
}

// ramp is 0 at distance 0 and rises to 1 at width.
func ramp(distance, width int) float32 {
	return float32(clampInt(distance, 0, width)) / float32(width)
}

func clamp(f, min, max float32) float32 {
	if f < min {
		return min
	}
	if f > max {
		return max
	}
	return f
}
