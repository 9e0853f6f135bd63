//
// Copyright (c) 2020-2021, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/RobWatersMet/VernierParser/internal/pkg/format"
	"github.com/RobWatersMet/VernierParser/internal/pkg/hash"
	"github.com/RobWatersMet/VernierParser/internal/pkg/notation"
	"github.com/RobWatersMet/VernierParser/internal/pkg/series"
	"github.com/RobWatersMet/VernierParser/internal/pkg/timings"
	"github.com/RobWatersMet/VernierParser/internal/pkg/vernier"
)

const (
	title = "Vernier summary"
)

// Info gathers the details about a run that are displayed along with a summary
type Info struct {
	RunPath   string
	Threads   []int    // one entry per rank
	Checksums []string // SHA-256 of the output file of each rank
}

// GetInfo gathers the details of a loaded series
func GetInfo(s *series.Series) (*Info, error) {
	threads, err := s.Threads()
	if err != nil {
		return nil, err
	}

	info := new(Info)
	info.RunPath = s.RunPath
	info.Threads = threads
	for rank := 0; rank < s.NumRanks; rank++ {
		sum, err := hash.File(series.RankFilePath(s.RunPath, rank))
		if err != nil {
			return nil, err
		}
		info.Checksums = append(info.Checksums, sum)
	}
	return info, nil
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func threadsSummary(threads []int) string {
	groups := notation.GroupByValue(threads)
	var values []int
	for v := range groups {
		values = append(values, v)
	}
	sort.Ints(values)

	var parts []string
	for _, v := range values {
		count := "unknown"
		if v != vernier.UnknownThreads {
			count = fmt.Sprintf("%d", v)
		}
		parts = append(parts, fmt.Sprintf("%s (ranks %s)", count, groups[v]))
	}
	return strings.Join(parts, "; ")
}

// Markdown returns the summary of a field as a markdown document
func Markdown(info *Info, field vernier.Field, summary map[string]timings.Stats) []byte {
	var buf bytes.Buffer

	numRanks := len(info.Threads)
	var ranks []int
	for i := 0; i < numRanks; i++ {
		ranks = append(ranks, i)
	}

	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "* Run: `%s`\n", info.RunPath)
	fmt.Fprintf(&buf, "* Ranks: %d (%s)\n", numRanks, notation.CompressIntArray(ranks))
	fmt.Fprintf(&buf, "* Threads: %s\n", threadsSummary(info.Threads))
	fmt.Fprintf(&buf, "* Field: %s\n\n", field)

	buf.WriteString("| Region | Mean | Min | Max |\n")
	buf.WriteString("|---|---:|---:|---:|\n")
	for _, region := range timings.SortedRegions(summary) {
		s := summary[region]
		fmt.Fprintf(&buf, "| %s | %s | %s | %s |\n", escape(region), format.FormatFloat(s.Mean), format.FormatFloat(s.Min), format.FormatFloat(s.Max))
	}

	if len(info.Checksums) > 0 {
		buf.WriteString("\n## Input files\n\n")
		buf.WriteString("| Rank | File | SHA-256 |\n")
		buf.WriteString("|---:|---|---|\n")
		for rank, sum := range info.Checksums {
			fmt.Fprintf(&buf, "| %d | %s | `%s` |\n", rank, filepath.Base(series.RankFilePath(info.RunPath, rank)), hash.Short(sum))
		}
	}

	return buf.Bytes()
}

// HTML converts the markdown summary to a standalone HTML page
func HTML(info *Info, field vernier.Field, summary map[string]timings.Stats) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: title,
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.ToHTML(Markdown(info, field, summary), p, renderer)
}

// WriteMarkdown saves the markdown summary of a field
func WriteMarkdown(path string, info *Info, field vernier.Field, summary map[string]timings.Stats) error {
	return os.WriteFile(path, Markdown(info, field, summary), 0644)
}

// WriteHTML saves the HTML summary of a field
func WriteHTML(path string, info *Info, field vernier.Field, summary map[string]timings.Stats) error {
	return os.WriteFile(path, HTML(info, field, summary), 0644)
}
