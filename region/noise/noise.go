// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import "github.com/aquilax/go-perlin"

// Frequencies in grid space.
const (
	continentFrequency   = 1.0 / 60
	islandFrequency      = 1.0 / 6
	heightFrequency      = 1.0 / 12
	temperatureFrequency = 1.0 / 220
	rainfallFrequency    = 1.0 / 160
	varianceFrequency    = 1.0 / 90

	// Perlin noise is zero on its lattice, so sample slightly off of it.
	latticeOffset = 0.37
	// Raw perlin output rarely leaves [-0.6, 0.6]; stretch it to roughly [-1, 1].
	stretch = 1.6
)

// Climate ranges.
const (
	MinTemperature = -20
	MaxTemperature = 30
	MinRainfall    = 0
	MaxRainfall    = 500
)

// Fields are the large scale noise fields shared by every region.
// All methods are read only and safe for concurrent use.
type Fields struct {
	// Land/ocean shape
	continent *perlin.Perlin
	islands   *perlin.Perlin
	height    *perlin.Perlin

	// Climate
	temperature *perlin.Perlin
	rainfall    *perlin.Perlin
	variance    *perlin.Perlin
}

// NewFields creates the noise fields for a seed.
func NewFields(seed int64) *Fields {
	return &Fields{
		continent:   perlin.NewPerlin(2.0, 2.0, 4, seed),
		islands:     perlin.NewPerlin(1.5, 2.0, 3, seed+1),
		height:      perlin.NewPerlin(2.0, 2.0, 3, seed+2),
		temperature: perlin.NewPerlin(2.0, 2.0, 3, seed+3),
		rainfall:    perlin.NewPerlin(2.0, 2.0, 3, seed+4),
		variance:    perlin.NewPerlin(2.5, 2.0, 3, seed+5),
	}
}

// Continent returns roughly [-1, 1]; positive values favor land.
func (f *Fields) Continent(x, z float64) float64 {
	return sample(f.continent, x, z, continentFrequency)
}

// Island returns roughly [-1, 1]; high values grow islands in the open ocean.
func (f *Fields) Island(x, z float64) float64 {
	return sample(f.islands, x, z, islandFrequency)
}

// Height returns roughly [-1, 1] of local land height variation.
func (f *Fields) Height(x, z float64) float64 {
	return sample(f.height, x, z, heightFrequency)
}

// Temperature returns the unbiased temperature in [MinTemperature, MaxTemperature].
func (f *Fields) Temperature(x, z float64) float32 {
	t := sample(f.temperature, x, z, temperatureFrequency)
	return float32(MinTemperature + (t+1)*0.5*(MaxTemperature-MinTemperature))
}

// Rainfall returns the unbiased rainfall in [MinRainfall, MaxRainfall].
func (f *Fields) Rainfall(x, z float64) float32 {
	r := sample(f.rainfall, x, z, rainfallFrequency)
	return float32(MinRainfall + (r+1)*0.5*(MaxRainfall-MinRainfall))
}

// RainfallVariance returns the unbiased seasonal rainfall variance in [-1, 1].
func (f *Fields) RainfallVariance(x, z float64) float32 {
	return float32(sample(f.variance, x, z, varianceFrequency))
}

func sample(p *perlin.Perlin, x, z, frequency float64) float64 {
	return clamp(p.Noise2D((x+latticeOffset)*frequency, (z+latticeOffset)*frequency)*stretch, -1, 1)
}
