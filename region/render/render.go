// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render draws regions as images for debugging.
package render

import (
	"image"
	"image/color"

	"github.com/SoftbearStudios/regiongen/region"
	"github.com/SoftbearStudios/regiongen/region/compressed"
	"github.com/SoftbearStudios/regiongen/region/geom"
)

// Indexed by region.Biome.
var biomeColors = [...]ColorVec{
	RGB(0, 50, 115),    // ocean
	RGB(194, 178, 128), // beach
	RGB(120, 180, 60),  // plains
	RGB(40, 120, 40),   // forest
	RGB(50, 90, 70),    // taiga
	RGB(200, 210, 210), // tundra
	RGB(225, 200, 120), // desert
	RGB(170, 170, 70),  // savanna
	RGB(20, 150, 50),   // jungle
	RGB(70, 100, 70),   // swamp
	RGB(190, 100, 50),  // badlands
	RGB(105, 110, 115), // mountains
	Gray(235),          // snowy mountains
	RGB(40, 110, 190),  // lake
	RGB(160, 200, 230), // frozen lake
	RGB(60, 120, 120),  // marsh lake
}

// Indexed by region.Rock.
var rockColors = [...]ColorVec{
	RGB(150, 140, 140), // granite
	RGB(210, 205, 180), // limestone
	RGB(210, 170, 110), // sandstone
	RGB(60, 60, 70),    // basalt
	RGB(90, 100, 110),  // slate
	Gray(240),          // marble
}

var featureColors = [...]ColorVec{
	RGB(0, 50, 115),    // ocean
	RGB(0, 75, 130),    // shore
	RGB(90, 180, 30),   // land
	RGB(194, 178, 128), // island
	RGB(105, 110, 115), // mountain
	RGB(140, 120, 110), // coastal mountain
	RGB(40, 110, 190),  // river
	RGB(20, 70, 160),   // lake
}

var (
	gradientLow  = RGB(0, 50, 115)
	gradientHigh = Gray(220)
	coldColor    = RGB(50, 80, 200)
	hotColor     = RGB(220, 60, 30)
	dryColor     = RGB(225, 200, 120)
	wetColor     = RGB(20, 90, 40)
	riverColor   = RGB(40, 110, 190)
	absentColor  = color.RGBA{}
)

// Color returns the color of a value of the layer.
func (layer Layer) Color(v byte) color.RGBA {
	var c ColorVec
	f := float32(v) / compressed.MaxValue

	switch layer {
	case LayerBiome:
		c = palette(biomeColors[:], v)
	case LayerRock:
		c = palette(rockColors[:], v)
	case LayerFeatures:
		c = palette(featureColors[:], v)
	case LayerAltitude:
		c = gradientLow.Lerp(gradientHigh, float32(v)/3)
	case LayerTemperature:
		c = coldColor.Lerp(hotColor, f)
	case LayerRainfall, LayerVariance:
		c = dryColor.Lerp(wetColor, f)
	default:
		c = gradientLow.Lerp(gradientHigh, f)
	}

	return c.Color()
}

func palette(colors []ColorVec, v byte) ColorVec {
	if int(v) >= len(colors) {
		return Gray(0)
	}
	return colors[v]
}

// RenderRegion draws one pixel per grid coordinate of r's bounds. Absent Points are transparent.
func RenderRegion(r *region.Region, layer Layer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width(), r.Height()))

	for j := 0; j < r.Height(); j++ {
		for i := 0; i < r.Width(); i++ {
			c := absentColor
			if p := r.MaybeAt(r.MinX+i, r.MinZ+j); p != nil {
				c = layer.Color(layer.Value(p))
			}
			img.SetRGBA(i, j, c)
		}
	}

	return img
}

// RenderRow draws one row of grid coordinates into img at row j, with rivers on top.
// Rows may be drawn concurrently.
func RenderRow(g *region.Generator, layer Layer, img *image.RGBA, minX, z, j int) {
	for i := 0; i < img.Rect.Dx(); i++ {
		x := minX + i
		p := g.GetOrCreateRegionPoint(x, z)
		c := layer.Color(layer.Value(&p))
		if p.Land() && onRiver(g, x, z) {
			c = riverColor.Color()
		}
		img.SetRGBA(i, j, c)
	}
}

// Render draws width by height grid coordinates starting at (minX, minZ).
func Render(g *region.Generator, layer Layer, minX, minZ, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for j := 0; j < height; j++ {
		RenderRow(g, layer, img, minX, minZ+j, j)
	}
	return img
}

// onRiver is true if the center of (x, z) is within half a river's width of its curve.
func onRiver(g *region.Generator, x, z int) bool {
	// River widths are in blocks; scale them to grid space.
	const widthScale = 1.0 / 32

	center := geom.Vec2f{X: float32(x) + 0.5, Y: float32(z) + 0.5}
	for _, e := range g.GetOrCreatePartitionPoint(x, z) {
		f := e.Fractal()
		radius := 0.3 + e.WidthAt(f.Nearest(center))*widthScale
		if f.DistanceSquared(center) < radius*radius {
			return true
		}
	}
	return false
}
