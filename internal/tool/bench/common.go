// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bench compares the huffman codec against other compression
// implementations with respect to encode speed, decode speed, and ratio.
package bench

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"testing"

	strconv "github.com/dsnet/golib/unitconv"
	"github.com/dsnet/huffpack/internal/testutil"
)

const (
	TestEncodeRate = iota
	TestDecodeRate
	TestCompressRatio
)

type Encoder func(io.Writer) io.WriteCloser
type Decoder func(io.Reader) io.ReadCloser

// Codec pairs the encoder and decoder of a single compressed format.
type Codec struct {
	Encoder Encoder
	Decoder Decoder
}

var (
	Codecs map[string]Codec

	// List of search paths for test files.
	Paths []string
)

// RegisterCodec makes a codec available under the given name.
func RegisterCodec(name string, enc Encoder, dec Decoder) {
	if Codecs == nil {
		Codecs = make(map[string]Codec)
	}
	Codecs[name] = Codec{enc, dec}
}

// CodecNames returns the registered codec names with primary first and the
// remainder sorted.
func CodecNames(primary string) []string {
	var s []string
	for k := range Codecs {
		if k != primary {
			s = append(s, k)
		}
	}
	sort.Strings(s)
	if _, ok := Codecs[primary]; ok {
		s = append([]string{primary}, s...)
	}
	return s
}

// BenchmarkEncoder benchmarks a single encoder on the given input data and
// reports the result.
func BenchmarkEncoder(input []byte, enc Encoder) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		if enc == nil {
			b.Fatalf("unexpected error: nil Encoder")
		}
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			wr := enc(ioutil.Discard)
			_, err := io.Copy(wr, bytes.NewBuffer(input))
			if err := wr.Close(); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(int64(len(input)))
		}
	})
}

type Result struct {
	R float64 // Rate (MB/s) or ratio (rawSize/compSize)
	D float64 // Delta ratio relative to primary benchmark
}

// BenchmarkEncoderSuite runs multiple benchmarks across all codecs, files,
// and sizes.
//
// The values returned have the following structure:
//
//	results: [len(files)*len(sizes)][len(codecs)]Result
//	names:   [len(files)*len(sizes)]string
func BenchmarkEncoderSuite(codecs, files []string, sizes []int, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(codecs, files, sizes, tick,
		func(input []byte, codec string) Result {
			result := BenchmarkEncoder(input, Codecs[codec].Encoder)
			return rateOf(result)
		})
}

// BenchmarkDecoder benchmarks a single decoder on the given pre-compressed
// input data and reports the result.
func BenchmarkDecoder(input []byte, dec Decoder) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		if dec == nil {
			b.Fatalf("unexpected error: nil Decoder")
		}
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			rd := dec(bufio.NewReader(bytes.NewBuffer(input)))
			cnt, err := io.Copy(ioutil.Discard, rd)
			if err := rd.Close(); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(int64(cnt))
		}
	})
}

// BenchmarkDecoderSuite runs multiple benchmarks across all codecs, files,
// and sizes. Each decoder is fed data produced by the encoder of the same
// codec.
//
// The values returned have the following structure:
//
//	results: [len(files)*len(sizes)][len(codecs)]Result
//	names:   [len(files)*len(sizes)]string
func BenchmarkDecoderSuite(codecs, files []string, sizes []int, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(codecs, files, sizes, tick,
		func(input []byte, codec string) Result {
			output, err := Encode(Codecs[codec].Encoder, input)
			if err != nil {
				return Result{}
			}
			result := BenchmarkDecoder(output, Codecs[codec].Decoder)
			return rateOf(result)
		})
}

// BenchmarkRatioSuite computes the compression ratio of every codec across
// all files and sizes.
//
// The values returned have the following structure:
//
//	results: [len(files)*len(sizes)][len(codecs)]Result
//	names:   [len(files)*len(sizes)]string
func BenchmarkRatioSuite(codecs, files []string, sizes []int, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(codecs, files, sizes, tick,
		func(input []byte, codec string) Result {
			output, err := Encode(Codecs[codec].Encoder, input)
			if err != nil || len(output) == 0 {
				return Result{}
			}
			ratio := float64(len(input)) / float64(len(output))
			return Result{R: ratio}
		})
}

// Encode compresses input with a single encoder.
func Encode(enc Encoder, input []byte) ([]byte, error) {
	buf := new(bytes.Buffer)
	wr := enc(buf)
	if _, err := io.Copy(wr, bytes.NewReader(input)); err != nil {
		return nil, err
	}
	if err := wr.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func rateOf(result testing.BenchmarkResult) Result {
	if result.N == 0 {
		return Result{}
	}
	us := (float64(result.T.Nanoseconds()) / 1e3) / float64(result.N)
	return Result{R: float64(result.Bytes) / us}
}

type benchFunc func(input []byte, codec string) Result

func benchmarkSuite(codecs, files []string, sizes []int, tick func(), run benchFunc) ([][]Result, []string) {
	// Allocate buffers for the result.
	d0 := len(files) * len(sizes)
	d1 := len(codecs)
	results := make([][]Result, d0)
	for i := range results {
		results[i] = make([]Result, d1)
	}
	names := make([]string, d0)

	// Run the benchmark for every codec, file, and size.
	var i int
	for _, f := range files {
		for _, n := range sizes {
			b, err := testutil.LoadFile(getPath(f), n)
			name := getName(f, len(b))
			for j, c := range codecs {
				if tick != nil {
					tick()
				}
				names[i] = name
				if err == nil {
					results[i][j] = run(b, c)
				}
				results[i][j].D = results[i][j].R / results[i][0].R
			}
			i++
		}
	}
	return results, names
}

func getPath(file string) string {
	if path.IsAbs(file) {
		return file
	}
	for _, p := range Paths {
		p = path.Join(p, file)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return file
}

func getName(f string, n int) string {
	var sn string
	switch n {
	case 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10, 1e11, 1e12:
		s := fmt.Sprintf("%e", float64(n))
		re := regexp.MustCompile("\\.0*e\\+0*")
		sn = re.ReplaceAllString(s, "e")
	default:
		s := strconv.FormatPrefix(float64(n), strconv.Base1024, 2)
		sn = strings.Replace(s, ".00", "", -1)
	}
	return fmt.Sprintf("%s:%s", path.Base(f), sn)
}
