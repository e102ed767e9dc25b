// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"fmt"

	"github.com/SoftbearStudios/regiongen/region"
	"github.com/SoftbearStudios/regiongen/region/compressed"
	"github.com/SoftbearStudios/regiongen/region/noise"
)

// Layer is one attribute of a Point, quantized to fit a compressed.Layer.
type Layer uint8

const (
	LayerBiome Layer = iota
	LayerRock
	LayerFeatures
	LayerAltitude
	LayerHeight
	LayerOcean
	LayerEdge
	LayerWestCoast
	LayerTemperature
	LayerRainfall
	LayerVariance
	layerCount
)

var layerNames = [layerCount]string{
	"biome",
	"rock",
	"features",
	"altitude",
	"height",
	"ocean",
	"edge",
	"westCoast",
	"temperature",
	"rainfall",
	"variance",
}

// Layers returns every Layer.
func Layers() []Layer {
	layers := make([]Layer, layerCount)
	for i := range layers {
		layers[i] = Layer(i)
	}
	return layers
}

func ParseLayer(s string) (Layer, error) {
	for i, name := range layerNames {
		if name == s {
			return Layer(i), nil
		}
	}
	return 0, fmt.Errorf("invalid layer: %s", s)
}

func (layer Layer) String() string {
	if layer >= layerCount {
		return "invalid"
	}
	return layerNames[layer]
}

// Feature values.
const (
	featureOcean = iota
	featureShore
	featureLand
	featureIsland
	featureMountain
	featureCoastalMountain
	featureRiver
	featureLake
)

// Value quantizes an attribute of p to [0, compressed.MaxValue].
func (layer Layer) Value(p *region.Point) byte {
	const max = compressed.MaxValue

	switch layer {
	case LayerBiome:
		return byte(p.Biome)
	case LayerRock:
		return byte(p.Rock)
	case LayerFeatures:
		switch {
		case p.Lake():
			return featureLake
		case p.River():
			return featureRiver
		case p.CoastalMountain():
			return featureCoastalMountain
		case p.Mountain():
			return featureMountain
		case p.Island():
			return featureIsland
		case p.Land():
			return featureLand
		case p.Shore():
			return featureShore
		}
		return featureOcean
	case LayerAltitude:
		return byte(p.BiomeAltitude)
	case LayerHeight:
		return quantizeInt(int(p.BaseLandHeight), 1)
	case LayerOcean:
		if !p.Land() {
			return max - quantizeInt(int(p.BaseOceanDepth), 2)
		}
		return quantizeInt(int(p.DistanceToOcean), 1)
	case LayerEdge:
		return quantizeInt(int(p.DistanceToEdge), 1)
	case LayerWestCoast:
		return quantizeInt(int(p.DistanceToWestCoast), 4)
	case LayerTemperature:
		return quantize(p.Temperature, noise.MinTemperature, noise.MaxTemperature)
	case LayerRainfall:
		return quantize(p.Rainfall, noise.MinRainfall, noise.MaxRainfall)
	case LayerVariance:
		return quantize(p.RainfallVariance, -1, 1)
	}
	return 0
}

// Values returns the values of every coordinate of r's bounds in row major order.
// Absent Points are 0.
func Values(r *region.Region, layer Layer) []byte {
	values := make([]byte, len(r.Points))
	for i, p := range r.Points {
		if p != nil {
			values[i] = layer.Value(p)
		}
	}
	return values
}

// Compress returns a layer of r.
func Compress(r *region.Region, layer Layer) *compressed.Layer {
	return compressed.NewLayer(layer.String(), r.MinX, r.MinZ, r.Width(), Values(r, layer))
}

func quantizeInt(n, divisor int) byte {
	n /= divisor
	if n < 0 {
		return 0
	}
	if n > compressed.MaxValue {
		return compressed.MaxValue
	}
	return byte(n)
}

func quantize(f, min, max float32) byte {
	return byte(clamp((f-min)/(max-min))*compressed.MaxValue + 0.5)
}
