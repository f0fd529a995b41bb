// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	stdflate "compress/flate"
	"io"
	"io/ioutil"

	"github.com/dsnet/compress/bzip2"
	"github.com/dsnet/huffpack/huffman"
	kpflate "github.com/klauspost/compress/flate"
	"github.com/ulikunitz/xz"
)

// Primary is the codec that every other codec is compared against.
const Primary = "hp"

func init() {
	RegisterCodec(Primary,
		func(w io.Writer) io.WriteCloser {
			return huffman.NewWriter(w)
		},
		func(r io.Reader) io.ReadCloser {
			return huffman.NewReader(r)
		})

	// Huffman-only DEFLATE is the closest relative of the static format.
	RegisterCodec("std",
		func(w io.Writer) io.WriteCloser {
			zw, err := stdflate.NewWriter(w, stdflate.HuffmanOnly)
			if err != nil {
				panic(err)
			}
			return zw
		},
		func(r io.Reader) io.ReadCloser {
			return stdflate.NewReader(r)
		})
	RegisterCodec("kp",
		func(w io.Writer) io.WriteCloser {
			zw, err := kpflate.NewWriter(w, kpflate.HuffmanOnly)
			if err != nil {
				panic(err)
			}
			return zw
		},
		func(r io.Reader) io.ReadCloser {
			return kpflate.NewReader(r)
		})

	RegisterCodec("bz2",
		func(w io.Writer) io.WriteCloser {
			zw, err := bzip2.NewWriter(w, &bzip2.WriterConfig{Level: bzip2.DefaultCompression})
			if err != nil {
				panic(err)
			}
			return zw
		},
		func(r io.Reader) io.ReadCloser {
			zr, err := bzip2.NewReader(r, nil)
			if err != nil {
				panic(err)
			}
			return zr
		})
	RegisterCodec("xz",
		func(w io.Writer) io.WriteCloser {
			zw, err := xz.NewWriter(w)
			if err != nil {
				panic(err)
			}
			return zw
		},
		func(r io.Reader) io.ReadCloser {
			zr, err := xz.NewReader(r)
			if err != nil {
				return errReader{err}
			}
			return ioutil.NopCloser(zr)
		})
}

// errReader reports a decoder construction error on the first Read.
type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }
func (r errReader) Close() error             { return r.err }
