// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/dsnet/huffpack/internal/tool/bench"
	"github.com/stretchr/testify/assert"
)

func TestPrintResults(t *testing.T) {
	results := [][]bench.Result{
		{{R: 1.5, D: 1}, {R: 3, D: 2}},
		{{R: 2, D: 1}, {R: math.NaN(), D: math.NaN()}},
	}
	var bb bytes.Buffer
	printResults(&bb, results, []string{"a.txt:1e4", "a.txt:1e5"}, []string{"hp", "xz"}, "ratio", "x")

	lines := strings.Split(strings.TrimRight(bb.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"\tbenchmark      hp ratio  delta      xz ratio  delta",
		"\ta.txt:1e4         1.50x  1.00x         3.00x  2.00x",
		"\ta.txt:1e5         2.00x  1.00x                     ",
	}, lines)
}

func TestDefaultTests(t *testing.T) {
	assert.Equal(t, "encRate,decRate,ratio", defaultTests())
}
