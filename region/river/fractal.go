// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package river

import (
	"math/rand"

	"github.com/SoftbearStudios/regiongen/region/geom"
)

// Fractal is a midpoint displacement curve between two vertices.
type Fractal struct {
	Points []geom.Vec2f `json:"points"`
}

// NewFractal subdivides source-drain depth times. Each new midpoint is displaced along the
// segment normal by up to feather times the segment length.
func NewFractal(source, drain geom.Vec2f, feather float32, depth int, seed int64) *Fractal {
	r := rand.New(rand.NewSource(seed))

	points := make([]geom.Vec2f, 0, 1<<depth+1)
	points = append(points, source, drain)

	for i := 0; i < depth; i++ {
		next := make([]geom.Vec2f, 0, len(points)*2-1)
		for j := 0; j < len(points)-1; j++ {
			a, b := points[j], points[j+1]
			normal := b.Sub(a).Rot90()
			offset := (r.Float32()*2 - 1) * feather
			next = append(next, a, a.Lerp(b, 0.5).AddScaled(normal, offset))
		}
		points = append(next, points[len(points)-1])
	}

	return &Fractal{Points: points}
}

// DistanceSquared returns the squared distance from p to the curve.
func (f *Fractal) DistanceSquared(p geom.Vec2f) float32 {
	best := p.DistanceSquared(f.Points[0])
	for i := 0; i < len(f.Points)-1; i++ {
		if d := p.DistanceSquaredToSegment(f.Points[i], f.Points[i+1]); d < best {
			best = d
		}
	}
	return best
}

// Nearest returns the parameter in [0, 1] along the curve of the vertex closest to p.
func (f *Fractal) Nearest(p geom.Vec2f) float32 {
	best := 0
	bestDistance := p.DistanceSquared(f.Points[0])
	for i := 1; i < len(f.Points); i++ {
		if d := p.DistanceSquared(f.Points[i]); d < bestDistance {
			best = i
			bestDistance = d
		}
	}
	return float32(best) / float32(len(f.Points)-1)
}

// Box returns the bounding box of the curve.
func (f *Fractal) Box() geom.AABB {
	box := geom.AABB{Vec2f: f.Points[0]}
	for _, p := range f.Points[1:] {
		box = box.Union(geom.AABB{Vec2f: p})
	}
	return box
}
