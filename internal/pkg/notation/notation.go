//
// Copyright (c) 2020, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package notation

import (
	"sort"
	"strconv"
	"strings"
)

// CompressIntArray returns a compact representation of a sorted list of integers, e.g., "0-6,8-10,42"
func CompressIntArray(array []int) string {
	var parts []string
	for i := 0; i < len(array); i++ {
		start := i
		for i+1 < len(array) && array[i]+1 == array[i+1] {
			i++
		}
		if i != start {
			parts = append(parts, strconv.Itoa(array[start])+"-"+strconv.Itoa(array[i]))
		} else {
			parts = append(parts, strconv.Itoa(array[i]))
		}
	}
	return strings.Join(parts, ",")
}

// GroupByValue groups the ranks by value, e.g., the thread count of each rank.
// The key of the returned map is the value and the value the compact list of ranks.
func GroupByValue(values []int) map[int]string {
	ranks := make(map[int][]int)
	for rank, v := range values {
		ranks[v] = append(ranks[v], rank)
	}

	groups := make(map[int]string)
	for v, list := range ranks {
		sort.Ints(list)
		groups[v] = CompressIntArray(list)
	}
	return groups
}
