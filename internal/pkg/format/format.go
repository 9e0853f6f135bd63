//
// Copyright (c) 2020-2021, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package format

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/RobWatersMet/VernierParser/internal/pkg/timings"
	"github.com/RobWatersMet/VernierParser/internal/pkg/vernier"
)

const (
	// DefaultSummaryFilename is the name of the CSV file generated when no path is specified
	DefaultSummaryFilename = "vernier-summary.csv"
)

var (
	summaryHeader          = []string{"region", "mean", "min", "max"}
	allFieldsSummaryHeader = []string{"region", "field", "mean", "min", "max"}
)

// FormatFloat returns the shortest representation of a value that parses back to the same value
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func statsColumns(s timings.Stats) []string {
	return []string{FormatFloat(s.Mean), FormatFloat(s.Min), FormatFloat(s.Max)}
}

func writeRecords(path string, records [][]string) error {
	fd, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer fd.Close()

	w := csv.NewWriter(fd)
	err = w.WriteAll(records)
	if err != nil {
		return err
	}

	return fd.Close()
}

// WriteCSV saves the summary of a field, one line per region in alphabetical order
func WriteCSV(path string, summary map[string]timings.Stats) error {
	records := [][]string{summaryHeader}
	for _, region := range timings.SortedRegions(summary) {
		records = append(records, append([]string{region}, statsColumns(summary[region])...))
	}
	return writeRecords(path, records)
}

// WriteAllFieldsCSV saves the summaries of multiple fields in a single file.
// Lines are ordered by region and then by field, in the order of the columns of vernier outputs.
func WriteAllFieldsCSV(path string, summaries map[vernier.Field]map[string]timings.Stats) error {
	regions := make(map[string]timings.Stats)
	for _, summary := range summaries {
		for region := range summary {
			regions[region] = timings.Stats{}
		}
	}

	records := [][]string{allFieldsSummaryHeader}
	for _, region := range timings.SortedRegions(regions) {
		for _, field := range vernier.Fields {
			summary, ok := summaries[field]
			if !ok {
				continue
			}
			s, ok := summary[region]
			if !ok {
				continue
			}
			records = append(records, append([]string{region, string(field)}, statsColumns(s)...))
		}
	}
	return writeRecords(path, records)
}
