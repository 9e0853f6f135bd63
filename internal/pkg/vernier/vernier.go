//
// Copyright (c) 2020, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package vernier

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/RobWatersMet/VernierParser/pkg/errors"
)

const (
	// RecordLen is the number of tokens of a timing line
	RecordLen = 9

	// UnknownThreads is the thread count of a file without a profiling header
	UnknownThreads = -1

	profilingToken = "Profiling"
	threadsIndex   = 2
)

// TimingRecord gathers the timings of a single region, as reported by one rank
type TimingRecord struct {
	Time         float64
	Cumulative   float64
	Self         float64
	Total        float64
	NumCalls     int
	SelfPerCall  float64
	TotalPerCall float64
}

// Data represents the content of a vernier output file
type Data struct {
	Path    string
	Threads int

	// Timings is the list of timings, the key is the region name
	Timings map[string]*TimingRecord
}

// DuplicateRegionError is returned when a file has two records for the same region
type DuplicateRegionError struct {
	Path   string
	Region string
}

func (e *DuplicateRegionError) Error() string {
	return fmt.Sprintf("two records found for %s in %s", e.Region, e.Path)
}

func parseFloat(path string, lineNum int, field Field, token string) (float64, error) {
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, errors.New(errors.ErrParse, fmt.Errorf("%s:%d: invalid %s value %q: %w", path, lineNum, field, token, err))
	}
	return v, nil
}

func parseTimingLine(path string, lineNum int, tokens []string) (*TimingRecord, error) {
	var err error
	r := new(TimingRecord)

	floats := []struct {
		field Field
		token string
		dst   *float64
	}{
		{FieldTime, tokens[1], &r.Time},
		{FieldCumulative, tokens[2], &r.Cumulative},
		{FieldSelf, tokens[3], &r.Self},
		{FieldTotal, tokens[4], &r.Total},
		{FieldSelfPerCall, tokens[6], &r.SelfPerCall},
		{FieldTotalPerCall, tokens[7], &r.TotalPerCall},
	}
	for _, f := range floats {
		*f.dst, err = parseFloat(path, lineNum, f.field, f.token)
		if err != nil {
			return nil, err
		}
	}

	r.NumCalls, err = strconv.Atoi(tokens[5])
	if err != nil {
		return nil, errors.New(errors.ErrParse, fmt.Errorf("%s:%d: invalid %s value %q: %w", path, lineNum, FieldNumCalls, tokens[5], err))
	}

	return r, nil
}

func (d *Data) parseThreadCount(lineNum int, tokens []string) error {
	if len(tokens) <= threadsIndex {
		return errors.New(errors.ErrParse, fmt.Errorf("%s:%d: profiling header without thread count", d.Path, lineNum))
	}
	threads, err := strconv.Atoi(tokens[threadsIndex])
	if err != nil {
		return errors.New(errors.ErrParse, fmt.Errorf("%s:%d: invalid thread count %q: %w", d.Path, lineNum, tokens[threadsIndex], err))
	}
	d.Threads = threads
	return nil
}

func (d *Data) addTimingLine(lineNum int, tokens []string) error {
	region := tokens[RecordLen-1]
	if _, ok := d.Timings[region]; ok {
		return errors.New(errors.ErrParse, &DuplicateRegionError{Path: d.Path, Region: region})
	}

	r, err := parseTimingLine(d.Path, lineNum, tokens)
	if err != nil {
		return err
	}
	d.Timings[region] = r
	return nil
}

// Parse reads the content of a vernier output file through a reader.
// The path is only used to identify the data and in error messages.
func Parse(reader io.Reader, path string) (*Data, error) {
	d := new(Data)
	d.Path = path
	d.Threads = UnknownThreads
	d.Timings = make(map[string]*TimingRecord)

	r := bufio.NewReader(reader)
	lineNum := 0
	for {
		line, readerErr := r.ReadString('\n')
		if readerErr != nil && readerErr != io.EOF {
			return nil, readerErr
		}
		if line == "" && readerErr == io.EOF {
			break
		}
		lineNum++

		tokens := strings.Fields(line)
		if len(tokens) > 0 && tokens[0] == profilingToken {
			err := d.parseThreadCount(lineNum, tokens)
			if err != nil {
				return nil, err
			}
		} else if len(tokens) == RecordLen {
			// The first column is an index, lines that do not start with an integer are not data
			if _, err := strconv.Atoi(tokens[0]); err != nil {
				log.Printf("%s:%d: skipping line %v\n", path, lineNum, tokens)
			} else {
				err = d.addTimingLine(lineNum, tokens)
				if err != nil {
					return nil, err
				}
			}
		}

		if readerErr == io.EOF {
			break
		}
	}

	return d, nil
}

// ParseFile parses a vernier output file
func ParseFile(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f, path)
}

// Regions returns the names of all the regions of the file
func (d *Data) Regions() []string {
	var regions []string
	for name := range d.Timings {
		regions = append(regions, name)
	}
	return regions
}
