//
// Copyright (c) 2020, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package timings

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// Stats gathers the summary statistics of a set of timings
type Stats struct {
	Mean float64
	Min  float64
	Max  float64
}

// Summarize computes the mean, min and max of a set of values.
// An empty set of values yields NaN for all statistics.
func Summarize(values []float64) Stats {
	var s Stats
	if len(values) == 0 {
		return Stats{Mean: math.NaN(), Min: math.NaN(), Max: math.NaN()}
	}
	s.Min, s.Max = stats.Bounds(values)
	s.Mean = stats.Mean(values)
	return s
}

// SortedRegions returns the region names of a summary in alphabetical order
func SortedRegions(summary map[string]Stats) []string {
	var regions []string
	for name := range summary {
		regions = append(regions, name)
	}
	sort.Strings(regions)
	return regions
}
