//
// Copyright (c) 2020, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package hash

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFile(t *testing.T) {
	content := "Profiling on 4 thread(s).\n"
	expected, err := Reader(strings.NewReader(content))
	if err != nil {
		t.Fatalf("Reader() failed: %s", err)
	}

	path := filepath.Join(t.TempDir(), "vernier-output-0")
	err = os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		t.Fatalf("unable to create %s: %s", path, err)
	}
	sum, err := File(path)
	if err != nil {
		t.Fatalf("File() failed: %s", err)
	}
	if sum != expected {
		t.Fatalf("File() returned %s instead of %s", sum, expected)
	}
	if len(sum) != 64 {
		t.Fatalf("checksum has %d characters instead of 64", len(sum))
	}
}

func TestShort(t *testing.T) {
	empty, err := Reader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Reader() failed: %s", err)
	}
	if empty != "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855" {
		t.Fatalf("Reader() returned %s for an empty input", empty)
	}
	if Short(empty) != "e3b0c44298fc" {
		t.Fatalf("Short() returned %s", Short(empty))
	}
	if Short("abc") != "abc" {
		t.Fatalf("Short() modified a short checksum")
	}
}
