//
// Copyright (c) 2020-2021, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package series

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/gvallee/go_util/pkg/util"
	"golang.org/x/sync/errgroup"

	"github.com/RobWatersMet/VernierParser/internal/pkg/progress"
	"github.com/RobWatersMet/VernierParser/internal/pkg/timings"
	"github.com/RobWatersMet/VernierParser/internal/pkg/vernier"
	"github.com/RobWatersMet/VernierParser/pkg/errors"
)

const (
	// FilePrefix is the prefix used for all vernier output files
	FilePrefix = "vernier-output"

	runDirPrefix = "run"
)

// ErrRecordsNotLoaded is returned when data is requested before the series is loaded
var ErrRecordsNotLoaded = stderrors.New("records not loaded, Load() must be called first")

// MissingRankFileError is returned when the output file of a rank cannot be found
type MissingRankFileError struct {
	Rank int
	Path string
}

func (e *MissingRankFileError) Error() string {
	return fmt.Sprintf("output file of rank %d is missing (%s)", e.Rank, e.Path)
}

// MissingRegionError is returned when a region is not reported by all ranks
type MissingRegionError struct {
	Region string
	Rank   int
}

func (e *MissingRegionError) Error() string {
	return fmt.Sprintf("the following region was missing from mpi rank %d: %s", e.Rank, e.Region)
}

// Series represents all the vernier data of a single run, one file per MPI rank
type Series struct {
	RunPath  string
	NumRanks int

	// Progress, when set, is where the progress of the load is displayed
	Progress io.Writer

	ranks   []*vernier.Data
	regions []string
}

// RunPath returns the path of the directory of a run for a given configuration
func RunPath(config string, runNum string) string {
	return filepath.Join(config, runDirPrefix+runNum)
}

// RankFilePath returns the path to the vernier output file of a rank
func RankFilePath(dir string, rank int) string {
	return filepath.Join(dir, FilePrefix+"-"+strconv.Itoa(rank))
}

// New creates a series for the run stored in runPath and checks that an output file is
// available for every rank.
func New(runPath string) (*Series, error) {
	if !util.PathExists(runPath) {
		return nil, errors.New(errors.ErrConfiguration, fmt.Errorf("%s does not exist", runPath))
	}

	s := new(Series)
	s.RunPath = runPath
	err := s.determineRanks()
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Series) determineRanks() error {
	log.Printf("Looking for vernier output files in %s\n", s.RunPath)

	files, err := filepath.Glob(filepath.Join(s.RunPath, FilePrefix+"*"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New(errors.ErrDiscovery, fmt.Errorf("no %s file in %s", FilePrefix, s.RunPath))
	}

	// Files matching the prefix are counted first but the rank files must then be contiguous
	for rank := 0; rank < len(files); rank++ {
		path := RankFilePath(s.RunPath, rank)
		if !util.FileExists(path) {
			return errors.New(errors.ErrDiscovery, &MissingRankFileError{Rank: rank, Path: path})
		}
	}
	s.NumRanks = len(files)
	log.Printf("-> Found %d ranks\n", s.NumRanks)

	return nil
}

func (s *Series) reset() {
	s.ranks = nil
	s.regions = nil
}

// Load parses the output file of every rank, one after the other, and checks
// that all ranks report the same regions. On failure, the series is left unloaded.
func (s *Series) Load() error {
	s.reset()

	b := progress.NewBar(s.Progress, s.NumRanks, "Parsing rank files")
	defer progress.EndBar(b)

	ranks := make([]*vernier.Data, s.NumRanks)
	for rank := 0; rank < s.NumRanks; rank++ {
		path := RankFilePath(s.RunPath, rank)
		log.Printf("-> Parsing %s\n", path)
		d, err := vernier.ParseFile(path)
		if err != nil {
			return fmt.Errorf("unable to parse data of rank %d: %w", rank, err)
		}
		ranks[rank] = d
		b.Increment(1)
	}

	return s.setRanks(ranks)
}

// LoadConcurrently has the same semantics as Load but parses up to workers
// files at the same time. The first failure cancels the parsing of the
// files that are not yet started.
func (s *Series) LoadConcurrently(ctx context.Context, workers int) error {
	s.reset()
	if workers <= 0 {
		workers = 1
	}

	b := progress.NewBar(s.Progress, s.NumRanks, "Parsing rank files")
	defer progress.EndBar(b)

	ranks := make([]*vernier.Data, s.NumRanks)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for rank := 0; rank < s.NumRanks; rank++ {
		rank := rank
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path := RankFilePath(s.RunPath, rank)
			log.Printf("-> Parsing %s\n", path)
			d, err := vernier.ParseFile(path)
			if err != nil {
				return fmt.Errorf("unable to parse data of rank %d: %w", rank, err)
			}
			ranks[rank] = d
			b.Increment(1)
			return nil
		})
	}
	err := g.Wait()
	if err != nil {
		return err
	}

	return s.setRanks(ranks)
}

func (s *Series) setRanks(ranks []*vernier.Data) error {
	regions, err := checkRegions(ranks)
	if err != nil {
		return err
	}
	s.ranks = ranks
	s.regions = regions
	return nil
}

// checkRegions makes sure that all the ranks report the same set of regions and
// returns that set in alphabetical order.
func checkRegions(ranks []*vernier.Data) ([]string, error) {
	union := make(map[string]bool)
	for _, d := range ranks {
		for region := range d.Timings {
			union[region] = true
		}
	}
	var regions []string
	for region := range union {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	for rank, d := range ranks {
		for _, region := range regions {
			if _, ok := d.Timings[region]; !ok {
				return nil, errors.New(errors.ErrConsistency, &MissingRegionError{Region: region, Rank: rank})
			}
		}
	}

	return regions, nil
}

func (s *Series) loaded() error {
	if s.ranks == nil {
		return errors.New(errors.ErrPrecondition, ErrRecordsNotLoaded)
	}
	return nil
}

// Regions returns the names of the regions reported by all ranks, in alphabetical order
func (s *Series) Regions() ([]string, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return append([]string(nil), s.regions...), nil
}

// Rank returns the data parsed from the output file of a rank
func (s *Series) Rank(rank int) (*vernier.Data, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	if rank < 0 || rank >= len(s.ranks) {
		return nil, fmt.Errorf("invalid rank %d, the run has %d ranks", rank, len(s.ranks))
	}
	return s.ranks[rank], nil
}

// Threads returns the thread count of every rank, vernier.UnknownThreads when a file does not specify it
func (s *Series) Threads() ([]int, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	var threads []int
	for _, d := range s.ranks {
		threads = append(threads, d.Threads)
	}
	return threads, nil
}

// Summarise computes for every region the mean, min and max of a field across all ranks
func (s *Series) Summarise(field vernier.Field) (map[string]timings.Stats, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}

	results := make(map[string]timings.Stats)
	for _, region := range s.regions {
		values := make([]float64, 0, len(s.ranks))
		for _, d := range s.ranks {
			v, err := d.Timings[region].Value(field)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		results[region] = timings.Summarize(values)
	}

	return results, nil
}

// SummariseSelfPerCall summarises the self time per call of all the regions
func (s *Series) SummariseSelfPerCall() (map[string]timings.Stats, error) {
	return s.Summarise(vernier.FieldSelfPerCall)
}
