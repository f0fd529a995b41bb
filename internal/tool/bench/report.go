// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"io"
	"math"

	"github.com/gocarina/gocsv"
)

// Record is a single cell of a benchmark result table.
type Record struct {
	Test      string  `csv:"test"`
	Benchmark string  `csv:"benchmark"`
	Codec     string  `csv:"codec"`
	Value     float64 `csv:"value"`
	Delta     float64 `csv:"delta"`
}

// Records flattens a result table into one Record per benchmark and codec.
// Cells that failed to produce a finite value are omitted.
func Records(test string, results [][]Result, names, codecs []string) []*Record {
	var rs []*Record
	for j, row := range results {
		for i, r := range row {
			if r.R == 0 || math.IsNaN(r.R) || math.IsInf(r.R, 0) {
				continue
			}
			d := r.D
			if math.IsNaN(d) || math.IsInf(d, 0) {
				d = 0
			}
			rs = append(rs, &Record{
				Test:      test,
				Benchmark: names[j],
				Codec:     codecs[i],
				Value:     r.R,
				Delta:     d,
			})
		}
	}
	return rs
}

// WriteCSV writes the records with a header row.
func WriteCSV(w io.Writer, rs []*Record) error {
	return gocsv.Marshal(rs, w)
}
