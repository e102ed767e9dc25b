// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import "math"

const (
	// Feature points are kept away from lattice borders so cells stay reasonably round.
	jitterMin   = 0.15
	jitterRange = 0.7
)

// CellKey identifies a cell by its feature lattice coordinate.
type CellKey struct {
	X, Z int32
}

// Cell is one cell of the cellular partition.
type Cell struct {
	CellKey
	CenterX float32 `json:"centerX"` // Feature point in grid space.
	CenterZ float32 `json:"centerZ"`
	Noise   float32 `json:"noise"` // Stable value in [0, 1).
}

// Cellular is a Worley style partition of the plane into cells.
// It is a pure function of its seed, so it can be shared by any number of goroutines.
type Cellular struct {
	seed    int64
	spacing float64
}

// NewCellular creates a Cellular whose feature lattice has the given spacing.
func NewCellular(seed int64, spacing float64) *Cellular {
	return &Cellular{seed: seed, spacing: spacing}
}

// Sample returns the cell containing (x, z).
func (c *Cellular) Sample(x, z float64) Cell {
	cx, cz, px, pz := nearest(x/c.spacing, z/c.spacing, c.feature)
	return Cell{
		CellKey: CellKey{X: int32(cx), Z: int32(cz)},
		CenterX: float32(px * c.spacing),
		CenterZ: float32(pz * c.spacing),
		Noise:   float32(Unit(Hash2(c.seed+2, cx, cz))),
	}
}

// feature returns the feature point of a lattice cell in lattice space.
func (c *Cellular) feature(cx, cz int) (float64, float64) {
	return featurePoint(c.seed, cx, cz)
}

func featurePoint(seed int64, cx, cz int) (float64, float64) {
	jx := jitterMin + jitterRange*Unit(Hash2(seed, cx, cz))
	jz := jitterMin + jitterRange*Unit(Hash2(seed+1, cx, cz))
	return float64(cx) + jx, float64(cz) + jz
}

// nearest finds the closest feature point in the 3x3 lattice neighborhood of (x, z), in lattice space.
// Ties go to the first candidate in row major order, so the result is stable.
func nearest(x, z float64, feature func(cx, cz int) (float64, float64)) (bestX, bestZ int, px, pz float64) {
	ix := int(math.Floor(x))
	iz := int(math.Floor(z))

	best := math.MaxFloat64
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			cx, cz := ix+dx, iz+dz
			fx, fz := feature(cx, cz)
			d := (fx-x)*(fx-x) + (fz-z)*(fz-z)
			if d < best {
				best = d
				bestX, bestZ = cx, cz
				px, pz = fx, fz
			}
		}
	}
	return
}
