//
// Copyright (c) 2020, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package progress

import (
	"fmt"
	"io"
	"sync"
)

// Bar displays how many steps out of max have been completed
type Bar struct {
	lock    sync.Mutex
	out     io.Writer
	label   string
	current int
	max     int
}

func (b *Bar) display() {
	label := b.label
	if label == "" {
		label = "Progress"
	}
	fmt.Fprintf(b.out, "\r%s: %d/%d", label, b.current, b.max)
}

// NewBar creates a bar writing to out. A nil writer disables the display.
func NewBar(out io.Writer, max int, label string) *Bar {
	if out == nil {
		out = io.Discard
	}
	b := new(Bar)
	b.out = out
	b.max = max
	b.label = label
	b.display()
	return b
}

// Increment is safe to call from concurrent goroutines
func (b *Bar) Increment(val int) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.current += val
	b.display()
}

func (b *Bar) Current() int {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.current
}

func EndBar(b *Bar) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.display()
	fmt.Fprintf(b.out, "\n")
}
