//
// Copyright (c) 2020, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// File returns the SHA-256 checksum of a file
func File(path string) (string, error) {
	fd, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer fd.Close()
	return Reader(fd)
}

// Reader returns the SHA-256 checksum of everything that can be read from r
func Reader(r io.Reader) (string, error) {
	hasher := sha256.New()
	_, err := io.Copy(hasher, r)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Short returns the first characters of a checksum, as displayed in reports
func Short(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}
