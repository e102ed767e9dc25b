// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import opensimplex "github.com/ojrac/opensimplex-go"

const warpFrequency = 0.11

// Areas is a blob shaped partition used to give neighboring points a shared identity.
// The same coordinate always has the same area id, no matter which region asks.
type Areas struct {
	seed    int64
	spacing float64
	warp    float64
	simplex opensimplex.Noise // read only
}

// NewAreas creates Areas with a feature spacing and a warp amplitude, both in grid space.
func NewAreas(seed int64, spacing, warp float64) *Areas {
	return &Areas{
		seed:    seed,
		spacing: spacing,
		warp:    warp,
		simplex: opensimplex.New(seed),
	}
}

// Sampler returns a new AreaSampler. AreaSamplers are not safe for concurrent use;
// create one per region construction.
func (a *Areas) Sampler() *AreaSampler {
	return &AreaSampler{
		areas:    a,
		features: make(map[CellKey][2]float64, 64),
	}
}

// AreaSampler evaluates area ids and memoizes the feature points it visits.
type AreaSampler struct {
	areas    *Areas
	features map[CellKey][2]float64
}

// At returns the area id of a grid coordinate.
func (s *AreaSampler) At(x, z int) uint32 {
	a := s.areas
	fx, fz := float64(x), float64(z)
	wx := fx + a.warp*a.simplex.Eval2(fx*warpFrequency, fz*warpFrequency)
	wz := fz + a.warp*a.simplex.Eval2(fx*warpFrequency+31.7, fz*warpFrequency-17.3)

	cx, cz, _, _ := nearest(wx/a.spacing, wz/a.spacing, s.feature)
	return uint32(Hash2(a.seed+7, cx, cz))
}

func (s *AreaSampler) feature(cx, cz int) (float64, float64) {
	key := CellKey{X: int32(cx), Z: int32(cz)}
	if p, ok := s.features[key]; ok {
		return p[0], p[1]
	}
	px, pz := featurePoint(s.areas.seed, cx, cz)
	s.features[key] = [2]float64{px, pz}
	return px, pz
}
