//
// Copyright (c) 2020, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package vernier

import (
	stderrors "errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/RobWatersMet/VernierParser/pkg/errors"
)

func TestParseFile(t *testing.T) {
	_, filename, _, _ := runtime.Caller(0)
	path := filepath.Join(filepath.Dir(filename), "testData", "vernier-output-0")

	d, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() failed: %s", err)
	}
	if d.Threads != 4 {
		t.Fatalf("ParseFile() returned %d threads instead of 4", d.Threads)
	}
	if len(d.Regions()) != 3 {
		t.Fatalf("ParseFile() returned %d regions instead of 3", len(d.Regions()))
	}

	expected := TimingRecord{
		Time:         30.0,
		Cumulative:   0.75,
		Self:         0.3,
		Total:        0.55,
		NumCalls:     10,
		SelfPerCall:  30.0,
		TotalPerCall: 55.0,
	}
	r, ok := d.Timings["solver@0"]
	if !ok {
		t.Fatalf("ParseFile() did not return solver@0")
	}
	if *r != expected {
		t.Fatalf("ParseFile() returned %+v instead of %+v", *r, expected)
	}
}

func TestParseDataLines(t *testing.T) {
	tests := []struct {
		name            string
		content         string
		expectedRecords map[string]TimingRecord
	}{
		{
			name:    "data only",
			content: "1 0.5 0.5 0.5 1.0 2 0.25 0.5 kernel\n2 1.5 2.0 1.5 1.5 3 0.5 0.5 solver",
			expectedRecords: map[string]TimingRecord{
				"kernel": {0.5, 0.5, 0.5, 1.0, 2, 0.25, 0.5},
				"solver": {1.5, 2.0, 1.5, 1.5, 3, 0.5, 0.5},
			},
		},
		{
			name: "narrative lines",
			content: "some text\n\n" +
				"1 0.5 0.5 0.5 1.0 2 0.25 0.5 kernel\n" +
				"this line has exactly nine tokens in it here\n" +
				"3 too short\n" +
				"   \t  \n" +
				"2 1.5 2.0 1.5 1.5 3 0.5 0.5 solver\n" +
				"1 0.5 0.5 0.5 1.0 2 0.25 0.5 kernel extra\n",
			expectedRecords: map[string]TimingRecord{
				"kernel": {0.5, 0.5, 0.5, 1.0, 2, 0.25, 0.5},
				"solver": {1.5, 2.0, 1.5, 1.5, 3, 0.5, 0.5},
			},
		},
		{
			name:            "empty",
			content:         "",
			expectedRecords: map[string]TimingRecord{},
		},
	}

	for _, tt := range tests {
		d, err := Parse(strings.NewReader(tt.content), tt.name)
		if err != nil {
			t.Fatalf("%s: Parse() failed: %s", tt.name, err)
		}
		if len(d.Timings) != len(tt.expectedRecords) {
			t.Fatalf("%s: Parse() returned %d records instead of %d", tt.name, len(d.Timings), len(tt.expectedRecords))
		}
		for region, expected := range tt.expectedRecords {
			r, ok := d.Timings[region]
			if !ok {
				t.Fatalf("%s: region %s is missing", tt.name, region)
			}
			if *r != expected {
				t.Fatalf("%s: region %s is %+v instead of %+v", tt.name, region, *r, expected)
			}
		}
		if d.Threads != UnknownThreads {
			t.Fatalf("%s: thread count is %d without a profiling header", tt.name, d.Threads)
		}
	}
}

func TestParseThreadCount(t *testing.T) {
	tests := []struct {
		content         string
		expectedThreads int
	}{
		{
			content:         "Profiling threads 4 ...\n",
			expectedThreads: 4,
		},
		{
			content:         "  Profiling on 16 thread(s).\n1 0.5 0.5 0.5 1.0 2 0.25 0.5 kernel\n",
			expectedThreads: 16,
		},
		{
			content:         "1 0.5 0.5 0.5 1.0 2 0.25 0.5 kernel\n",
			expectedThreads: UnknownThreads,
		},
	}

	for _, tt := range tests {
		d, err := Parse(strings.NewReader(tt.content), "threads")
		if err != nil {
			t.Fatalf("Parse() failed: %s", err)
		}
		if d.Threads != tt.expectedThreads {
			t.Fatalf("Parse() returned %d threads instead of %d", d.Threads, tt.expectedThreads)
		}
	}
}

func TestParseDuplicateRegion(t *testing.T) {
	contents := []string{
		"1 0.5 0.5 0.5 1.0 2 0.25 0.5 kernel\n1 0.5 0.5 0.5 1.0 2 0.25 0.5 kernel\n",
		"1 0.5 0.5 0.5 1.0 2 0.25 0.5 kernel\ntext\n2 1.5 2.0 1.5 1.5 3 0.5 0.5 solver\n3 0.1 0.1 0.1 0.1 1 0.1 0.1 kernel",
	}

	for _, content := range contents {
		_, err := Parse(strings.NewReader(content), "dup")
		if err == nil {
			t.Fatalf("Parse() succeeded with a duplicated region")
		}
		var dupErr *DuplicateRegionError
		if !stderrors.As(err, &dupErr) {
			t.Fatalf("Parse() returned %s instead of a DuplicateRegionError", err)
		}
		if dupErr.Region != "kernel" {
			t.Fatalf("DuplicateRegionError is for %s instead of kernel", dupErr.Region)
		}
		if !stderrors.Is(err, errors.ErrParse) {
			t.Fatalf("DuplicateRegionError is not a parse error")
		}
	}
}

func TestParseMalformedRecord(t *testing.T) {
	contents := []string{
		"1 0.5 0.5 abc 1.0 2 0.25 0.5 kernel\n",
		"1 0.5 0.5 0.5 1.0 2.5 0.25 0.5 kernel\n",
		"Profiling on many thread(s)\n",
		"Profiling\n",
	}

	for _, content := range contents {
		_, err := Parse(strings.NewReader(content), "malformed")
		if err == nil {
			t.Fatalf("Parse() succeeded with %q", content)
		}
		if !stderrors.Is(err, errors.ErrParse) {
			t.Fatalf("Parse() returned %s which is not a parse error", err)
		}
	}
}

func TestParseField(t *testing.T) {
	r := TimingRecord{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name          string
		expectedValue float64
	}{
		{"time", 1},
		{"cumulative_time", 2},
		{"cumul", 2},
		{"self_time", 3},
		{"self", 3},
		{"total_time", 4},
		{"total", 4},
		{"num_calls", 5},
		{"self_per_call", 6},
		{"total_per_call", 7},
	}

	for _, tt := range tests {
		f, err := ParseField(tt.name)
		if err != nil {
			t.Fatalf("ParseField() failed: %s", err)
		}
		v, err := r.Value(f)
		if err != nil {
			t.Fatalf("Value() failed: %s", err)
		}
		if v != tt.expectedValue {
			t.Fatalf("Value(%s) returned %f instead of %f", f, v, tt.expectedValue)
		}
	}

	if _, err := ParseField("routine"); err == nil {
		t.Fatalf("ParseField() succeeded with an invalid field")
	}
}
