// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package units

import (
	"math/rand"
	"testing"
)

func TestFloorDiv(t *testing.T) {
	tests := []struct {
		a, b, q, m int
	}{
		{0, 40, 0, 0},
		{39, 40, 0, 39},
		{40, 40, 1, 0},
		{-1, 40, -1, 39},
		{-40, 40, -1, 0},
		{-41, 40, -2, 39},
	}

	for _, test := range tests {
		if q := FloorDiv(test.a, test.b); q != test.q {
			t.Errorf("FloorDiv(%d, %d) expected %d got %d", test.a, test.b, test.q, q)
		}
		if m := Mod(test.a, test.b); m != test.m {
			t.Errorf("Mod(%d, %d) expected %d got %d", test.a, test.b, test.m, m)
		}
	}
}

func TestBlockToGrid(t *testing.T) {
	for i := 0; i < 1000; i++ {
		block := rand.Intn(1<<20) - 1<<19
		grid := BlockToGrid(block)
		min := GridToBlock(grid)
		if block < min || block >= min+GridWidthInBlock {
			t.Fatalf("block %d not inside grid %d [%d, %d)", block, grid, min, min+GridWidthInBlock)
		}
	}
}

func TestGridToBucket(t *testing.T) {
	for grid := -200; grid < 200; grid++ {
		p := GridToPartition(grid)
		b := GridToBucket(grid)
		if b < 0 || b >= BucketsPerPartition {
			t.Fatalf("GridToBucket(%d) out of range: %d", grid, b)
		}
		start := PartitionToGrid(p) + b*BucketWidthInGrid
		if grid < start || grid >= start+BucketWidthInGrid {
			t.Errorf("grid %d not inside bucket %d of partition %d", grid, b, p)
		}
	}
}
