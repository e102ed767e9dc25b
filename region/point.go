// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package region

// DistanceToOcean sentinels.
const (
	// Ocean is the DistanceToOcean of ocean that does not touch land.
	Ocean = -1
	// Shore is the DistanceToOcean of ocean next to land.
	Shore = -2
)

// Unbounded is the DistanceToEdge of a point before edges are annotated.
const Unbounded = -1

type flags uint8

const (
	flagLand flags = 1 << iota
	flagIsland
	flagRiver
	flagLake
	flagMountain
	flagCoastalMountain
)

// Point is the geography of one grid coordinate.
// Fields are written by the tasks in Tasks order and never change after a Region is complete.
type Point struct {
	flags flags

	DistanceToOcean     int16 `json:"distanceToOcean"` // Land >= 1, otherwise Ocean or Shore
	DistanceToEdge      int16 `json:"distanceToEdge"`
	DistanceToWestCoast int16 `json:"distanceToWestCoast"`
	BaseOceanDepth      int8  `json:"baseOceanDepth"`
	BaseLandHeight      int8  `json:"baseLandHeight"`
	BiomeAltitude       int8  `json:"biomeAltitude"` // 0 (lowland) to 3 (alpine)

	Temperature      float32 `json:"temperature"`
	Rainfall         float32 `json:"rainfall"`
	RainfallVariance float32 `json:"rainfallVariance"`

	Biome Biome `json:"biome"`
	Rock  Rock  `json:"rock"`
}

func (p *Point) Land() bool {
	return p.flags&flagLand != 0
}

func (p *Point) Island() bool {
	return p.flags&flagIsland != 0
}

func (p *Point) River() bool {
	return p.flags&flagRiver != 0
}

func (p *Point) Lake() bool {
	return p.flags&flagLake != 0
}

func (p *Point) Mountain() bool {
	return p.flags&flagMountain != 0
}

// CoastalMountain is true for mountains in a range that reaches the coast.
func (p *Point) CoastalMountain() bool {
	return p.flags&flagCoastalMountain != 0
}

// Shore is true for ocean next to land.
func (p *Point) Shore() bool {
	return p.DistanceToOcean == Shore
}

func (p *Point) set(f flags, value bool) {
	if value {
		p.flags |= f
	} else {
		p.flags &^= f
	}
}
