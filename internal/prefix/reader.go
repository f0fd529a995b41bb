// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"bytes"

	"github.com/dsnet/huffpack/internal/errors"
	"github.com/icza/bitio"
)

var errTruncated = errorf(errors.Corrupted, "bit stream is truncated")

// Reader implements a prefix decoder over an in-memory buffer. Bits are read
// most-significant bit first and the reader never yields more than the
// number of valid bits it was initialized with.
type Reader struct {
	br    *bitio.Reader
	nbits int64 // Number of valid bits in the buffer
	pos   int64 // Number of bits consumed
}

// NewReader returns a Reader over the first nbits of buf.
// If nbits exceeds the size of buf, it is clamped to 8*len(buf).
func NewReader(buf []byte, nbits int64) *Reader {
	pr := new(Reader)
	pr.Init(buf, nbits)
	return pr
}

// Init resets the Reader to read from buf.
func (pr *Reader) Init(buf []byte, nbits int64) {
	if limit := 8 * int64(len(buf)); nbits > limit {
		nbits = limit
	}
	pr.br = bitio.NewReader(bytes.NewReader(buf))
	pr.nbits, pr.pos = nbits, 0
}

// BitsRead reports the number of bits consumed so far.
func (pr *Reader) BitsRead() int64 { return pr.pos }

// BitsRemaining reports the number of valid bits not yet consumed.
func (pr *Reader) BitsRemaining() int64 { return pr.nbits - pr.pos }

// ReadBit reads a single bit.
// This function panics if the valid bits are exhausted.
func (pr *Reader) ReadBit() bool {
	if pr.pos >= pr.nbits {
		errors.Panic(errTruncated)
	}
	b, err := pr.br.ReadBool()
	if err != nil {
		errors.Panic(errTruncated)
	}
	pr.pos++
	return b
}

// ReadBits reads n bits and returns them MSB-first in the low bits of the
// result. This function panics if fewer than n valid bits remain.
func (pr *Reader) ReadBits(n uint) uint64 {
	if n == 0 {
		return 0
	}
	if n > 64 {
		errors.Panic(errorf(errors.Internal, "invalid bit read"))
	}
	if pr.pos+int64(n) > pr.nbits {
		errors.Panic(errTruncated)
	}
	v, err := pr.br.ReadBits(uint8(n))
	if err != nil {
		errors.Panic(errTruncated)
	}
	pr.pos += int64(n)
	return v
}
