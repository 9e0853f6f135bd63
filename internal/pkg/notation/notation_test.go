//
// Copyright (c) 2020, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package notation

import (
	"testing"
)

func TestCompressIntArray(t *testing.T) {
	tests := []struct {
		array           []int
		expectedResults string
	}{
		{
			array:           []int{0, 1, 2, 3, 4, 5, 6, 8, 9, 10, 42},
			expectedResults: "0-6,8-10,42",
		},
		{
			array:           []int{3},
			expectedResults: "3",
		},
		{
			array:           nil,
			expectedResults: "",
		},
	}

	for _, tt := range tests {
		str := CompressIntArray(tt.array)
		if tt.expectedResults != str {
			t.Fatalf("Test failed: got %s instead of %s", str, tt.expectedResults)
		}
	}
}

func TestGroupByValue(t *testing.T) {
	threads := []int{4, 4, 4, 2, 4, -1}
	expected := map[int]string{
		4:  "0-2,4",
		2:  "3",
		-1: "5",
	}

	groups := GroupByValue(threads)
	if len(groups) != len(expected) {
		t.Fatalf("GroupByValue() returned %d groups instead of %d", len(groups), len(expected))
	}
	for v, ranks := range expected {
		if groups[v] != ranks {
			t.Fatalf("ranks with value %d are %s instead of %s", v, groups[v], ranks)
		}
	}
}
