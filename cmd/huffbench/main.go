// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Benchmark tool to compare the huffman codec against other compression
// implementations. Individual implementations are referred to as codecs.
//
// Example usage:
//
//	$ go build -o huffbench ./cmd/huffbench
//	$ ./huffbench \
//		--tests  ratio,encRate \
//		--codecs hp,kp,xz      \
//		--files  gettysburg.txt \
//		--sizes  1e4,1e5,1e6
//
//	BENCHMARK: ratio
//		benchmark              hp ratio  delta      kp ratio  delta      xz ratio  delta
//		gettysburg.txt:1e4        1.78x  1.00x         1.75x  0.98x        17.40x  9.78x
//		gettysburg.txt:1e5        1.78x  1.00x         1.75x  0.98x       153.85x 86.43x
//		gettysburg.txt:1e6        1.78x  1.00x         1.75x  0.98x      1282.05x 720.25x
//
//	RUNTIME: 9.107204148s
package main

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	strconv "github.com/dsnet/golib/unitconv"
	"github.com/dsnet/huffpack/internal/tool/bench"
	"github.com/urfave/cli/v2"
)

const (
	defaultPaths = "testdata"
	defaultFiles = "gettysburg.txt"
	defaultSizes = "1e4,1e5,1e6"
)

var (
	testToEnum = map[string]int{
		"encRate": bench.TestEncodeRate,
		"decRate": bench.TestDecodeRate,
		"ratio":   bench.TestCompressRatio,
	}
	enumToTest = map[int]string{
		bench.TestEncodeRate:    "encRate",
		bench.TestDecodeRate:    "decRate",
		bench.TestCompressRatio: "ratio",
	}
)

func defaultTests() string {
	var d []int
	for k := range enumToTest {
		d = append(d, k)
	}
	sort.Ints(d)
	var s []string
	for _, v := range d {
		s = append(s, enumToTest[v])
	}
	return strings.Join(s, ",")
}

func main() {
	app := cli.App{
		Name:  "huffbench",
		Usage: "Compare the huffman codec against other compressors",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "tests", Value: defaultTests(), Usage: "List of different benchmark tests"},
			&cli.StringFlag{Name: "codecs", Value: strings.Join(bench.CodecNames(bench.Primary), ","), Usage: "List of codecs to benchmark"},
			&cli.StringFlag{Name: "paths", Value: defaultPaths, Usage: "List of paths to search for test files"},
			&cli.StringFlag{Name: "files", Value: defaultFiles, Usage: "List of input files to benchmark"},
			&cli.StringFlag{Name: "sizes", Value: defaultSizes, Usage: "List of input sizes to benchmark"},
			&cli.StringFlag{Name: "csv", Usage: "Also write all results as CSV to this file"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func run(c *cli.Context) error {
	// Parse the flag arguments.
	var sep = regexp.MustCompile("[,:]")
	var tests, sizes []int
	codecs := sep.Split(c.String("codecs"), -1)
	paths := sep.Split(c.String("paths"), -1)
	files := sep.Split(c.String("files"), -1)
	for _, s := range codecs {
		if _, ok := bench.Codecs[s]; !ok {
			return fmt.Errorf("invalid codec: %q", s)
		}
	}
	for _, s := range sep.Split(c.String("tests"), -1) {
		if _, ok := testToEnum[s]; !ok {
			return fmt.Errorf("invalid test: %q", s)
		}
		tests = append(tests, testToEnum[s])
	}
	for _, s := range sep.Split(c.String("sizes"), -1) {
		nf, err := strconv.ParsePrefix(s, strconv.AutoParse)
		if err != nil || nf <= 0 {
			return fmt.Errorf("invalid size: %q", s)
		}
		sizes = append(sizes, int(nf))
	}

	ts := time.Now()
	bench.Paths = paths
	records := runBenchmarks(os.Stdout, files, codecs, tests, sizes)
	te := time.Now()
	fmt.Printf("RUNTIME: %v\n", te.Sub(ts))

	if name := c.String("csv"); name != "" {
		f, err := os.Create(name)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := bench.WriteCSV(f, records); err != nil {
			return err
		}
		return f.Close()
	}
	return nil
}

func runBenchmarks(w io.Writer, files, codecs []string, tests, sizes []int) (records []*bench.Record) {
	for _, t := range tests {
		var results [][]bench.Result
		var names []string
		var title, suffix string

		fmt.Fprintf(w, "BENCHMARK: %s\n", enumToTest[t])

		// Progress ticker.
		var cnt int
		tick := func() {
			total := len(codecs) * len(files) * len(sizes)
			pct := 100.0 * float64(cnt) / float64(total)
			fmt.Fprintf(w, "\t[%6.2f%%] %d of %d\r", pct, cnt, total)
			cnt++
		}

		// Perform the bench. This may take some time.
		switch t {
		case bench.TestEncodeRate:
			title, suffix = "MB/s", ""
			results, names = bench.BenchmarkEncoderSuite(codecs, files, sizes, tick)
		case bench.TestDecodeRate:
			title, suffix = "MB/s", ""
			results, names = bench.BenchmarkDecoderSuite(codecs, files, sizes, tick)
		case bench.TestCompressRatio:
			title, suffix = "ratio", "x"
			results, names = bench.BenchmarkRatioSuite(codecs, files, sizes, tick)
		default:
			panic("unknown test")
		}

		// Print all of the results.
		printResults(w, results, names, codecs, title, suffix)
		fmt.Fprintln(w)
		records = append(records, bench.Records(enumToTest[t], results, names, codecs)...)
	}
	return records
}

func printResults(w io.Writer, results [][]bench.Result, names, codecs []string, title, suffix string) {
	// Allocate result table.
	cells := make([][]string, 1+len(names))
	for i := range cells {
		cells[i] = make([]string, 1+2*len(codecs))
	}

	// Label the first row.
	cells[0][0] = "benchmark"
	for i, c := range codecs {
		cells[0][1+2*i] = c + " " + title
		cells[0][2+2*i] = "delta"
	}

	// Insert all rows.
	for j, row := range results {
		cells[1+j][0] = names[j]
		for i, r := range row {
			if r.R != 0 && !math.IsNaN(r.R) && !math.IsInf(r.R, 0) {
				cells[1+j][1+2*i] = fmt.Sprintf("%.2f", r.R) + suffix
			}
			if r.D != 0 && !math.IsNaN(r.D) && !math.IsInf(r.D, 0) {
				cells[1+j][2+2*i] = fmt.Sprintf("%.2f", r.D) + "x"
			}
		}
	}

	// Compute the maximum lengths.
	maxLens := make([]int, 1+2*len(codecs))
	for _, row := range cells {
		for i, s := range row {
			if maxLens[i] < len(s) {
				maxLens[i] = len(s)
			}
		}
	}

	// Print padded versions of all cells.
	for _, row := range cells {
		fmt.Fprint(w, "\t")
		for i, s := range row {
			switch {
			case i == 0: // Column 0
				row[i] = s + strings.Repeat(" ", maxLens[i]-len(s))
			case i%2 == 1: // Column 1, 3, 5, 7, ...
				row[i] = strings.Repeat(" ", 6+maxLens[i]-len(s)) + s
			case i%2 == 0: // Column 2, 4, 6, 8, ...
				row[i] = strings.Repeat(" ", 2+maxLens[i]-len(s)) + s
			}
			fmt.Fprint(w, row[i])
		}
		fmt.Fprintln(w)
	}
}
