// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package units converts between the coordinate scales used by region generation.
//
// Block space is the world's native resolution. Grid space is one Point per
// GridWidthInBlock blocks. Cells are the irregular regions of the cellular
// partition, whose feature lattice has a spacing of CellWidthInGrid. Partitions
// group grid coordinates for river lookups and are split into buckets.
//
// Any collaborator converting world coordinates into grid space must use these
// factors, or lookups silently target the wrong region.
package units

const (
	// GridBits is log2(GridWidthInBlock).
	GridBits = 7
	// GridWidthInBlock blocks per grid point.
	GridWidthInBlock = 1 << GridBits

	// CellWidthInGrid is the spacing of the cellular partition's feature lattice.
	CellWidthInGrid = 40
	// CellScanRadiusInGrid bounds how far a cell's points can be from its center.
	// Must exceed CellWidthInGrid * sqrt(2).
	CellScanRadiusInGrid = 60

	// PartitionWidthInGrid is the width of one partition (a cell group).
	PartitionWidthInGrid = CellWidthInGrid
	// BucketWidthInGrid is the width of one partition bucket.
	BucketWidthInGrid = 2
	// BucketsPerPartition is the number of buckets along one side of a partition.
	BucketsPerPartition = PartitionWidthInGrid / BucketWidthInGrid
)

// BlockToGrid converts a block coordinate to the grid coordinate containing it.
func BlockToGrid(block int) int {
	return block >> GridBits
}

// GridToBlock returns the minimum block coordinate of a grid coordinate.
func GridToBlock(grid int) int {
	return grid << GridBits
}

// GridToCell returns the feature lattice coordinate containing a grid coordinate.
// The cell that owns a grid coordinate is not necessarily this one; see noise.Cellular.
func GridToCell(grid int) int {
	return FloorDiv(grid, CellWidthInGrid)
}

// GridToPartition returns the partition containing a grid coordinate.
func GridToPartition(grid int) int {
	return FloorDiv(grid, PartitionWidthInGrid)
}

// PartitionToGrid returns the minimum grid coordinate of a partition.
func PartitionToGrid(partition int) int {
	return partition * PartitionWidthInGrid
}

// GridToBucket returns the bucket index within its partition.
func GridToBucket(grid int) int {
	return Mod(grid, PartitionWidthInGrid) / BucketWidthInGrid
}

// FloorDiv divides rounding towards negative infinity. b must be positive.
func FloorDiv(a, b int) int {
	q := a / b
	if r := a % b; r < 0 {
		q--
	}
	return q
}

// Mod returns a non-negative remainder. b must be positive.
func Mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
