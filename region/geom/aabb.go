// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package geom

import "github.com/chewxy/math32"

// AABB is an axis aligned box anchored at its minimum corner.
type AABB struct {
	Vec2f
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

func AABBFrom(x, y, width, height float32) AABB {
	return AABB{
		Vec2f:  Vec2f{X: x, Y: y},
		Width:  width,
		Height: height,
	}
}

// AABBAround returns the box of the given radius around center.
func AABBAround(center Vec2f, radius float32) AABB {
	return AABBFrom(center.X-radius, center.Y-radius, radius*2, radius*2)
}

// Intersects a and b are intersecting
func (a AABB) Intersects(b AABB) bool {
	return a.X+a.Width >= b.X && a.X <= b.X+b.Width && a.Y+a.Height >= b.Y && a.Y <= b.Height+b.Y
}

// Contains a fully contains b
func (a AABB) Contains(b AABB) bool {
	return a.X <= b.X && a.Y <= b.Y && a.X+a.Width >= b.X+b.Width && a.Y+a.Height >= b.Y+b.Height
}

// Union the smallest box containing a and b
func (a AABB) Union(b AABB) AABB {
	minX := math32.Min(a.X, b.X)
	minY := math32.Min(a.Y, b.Y)
	maxX := math32.Max(a.X+a.Width, b.X+b.Width)
	maxY := math32.Max(a.Y+a.Height, b.Y+b.Height)
	return AABBFrom(minX, minY, maxX-minX, maxY-minY)
}

// GridBounds returns the inclusive range of grid coordinates a touches.
func (a AABB) GridBounds() (minX, minZ, maxX, maxZ int) {
	min := a.Vec2f.Floor()
	max := Vec2f{X: a.X + a.Width, Y: a.Y + a.Height}.Floor()
	return int(min.X), int(min.Y), int(max.X), int(max.Y)
}
