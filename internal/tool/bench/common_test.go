// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetName(t *testing.T) {
	vectors := []struct {
		file string
		size int
		want string
	}{
		{"gettysburg.txt", 1e4, "gettysburg.txt:1e4"},
		{"/tmp/data/gettysburg.txt", 1e6, "gettysburg.txt:1e6"},
		{"random.bin", 1 << 16, "random.bin:64Ki"},
	}
	for _, v := range vectors {
		assert.Equal(t, v.want, getName(v.file, v.size))
	}
}

func TestCodecNames(t *testing.T) {
	names := CodecNames(Primary)
	require.NotEmpty(t, names)
	assert.Equal(t, Primary, names[0])
	assert.ElementsMatch(t, []string{"hp", "std", "kp", "bz2", "xz"}, names)
}

func TestRatioSuite(t *testing.T) {
	Paths = []string{"../../../testdata"}
	defer func() { Paths = nil }()

	var ticks int
	codecs := []string{Primary, "kp"}
	results, names := BenchmarkRatioSuite(codecs, []string{"gettysburg.txt"}, []int{1e4, 1e5}, func() { ticks++ })
	assert.Equal(t, 4, ticks)
	require.Len(t, results, 2)
	assert.Equal(t, []string{"gettysburg.txt:1e4", "gettysburg.txt:1e5"}, names)
	for _, row := range results {
		require.Len(t, row, 2)
		assert.Greater(t, row[0].R, 1.0, "text must compress")
		assert.Equal(t, 1.0, row[0].D)
	}

	var bb bytes.Buffer
	require.NoError(t, WriteCSV(&bb, Records("ratio", results, names, codecs)))
	lines := bytes.Split(bytes.TrimSpace(bb.Bytes()), []byte("\n"))
	assert.Len(t, lines, 5)
	assert.Equal(t, "test,benchmark,codec,value,delta", string(lines[0]))
	assert.Contains(t, string(lines[1]), "ratio,gettysburg.txt:1e4,hp,")
}

func TestRecordsSkipsFailures(t *testing.T) {
	results := [][]Result{{{R: 2, D: 1}, {R: 0, D: 0}}}
	rs := Records("ratio", results, []string{"x"}, []string{"a", "b"})
	require.Len(t, rs, 1)
	assert.Equal(t, Record{Test: "ratio", Benchmark: "x", Codec: "a", Value: 2, Delta: 1}, *rs[0])
}
