// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"bytes"

	"github.com/dsnet/huffpack/internal/errors"
	"github.com/icza/bitio"
)

// Writer implements a prefix encoder that packs bits into an in-memory
// buffer, most-significant bit first. The final byte is zero padded.
// The zero value of Writer is not valid; use NewWriter or Init.
type Writer struct {
	bb     bytes.Buffer
	bw     *bitio.Writer
	nbits  int64
	closed bool
}

// NewWriter returns a Writer with an empty buffer.
func NewWriter() *Writer {
	pw := new(Writer)
	pw.Init(0)
	return pw
}

// Init resets the Writer and preallocates room for about n bytes.
func (pw *Writer) Init(n int) {
	pw.bb.Reset()
	pw.bb.Grow(n)
	pw.bw = bitio.NewWriter(&pw.bb)
	pw.nbits, pw.closed = 0, false
}

// BitsWritten reports the total number of bits written, excluding padding.
func (pw *Writer) BitsWritten() int64 {
	return pw.nbits
}

// WriteBits writes the low n bits of v, most-significant first.
// This function panics if an error occurs.
func (pw *Writer) WriteBits(v uint64, n uint) {
	if n == 0 {
		return
	}
	if n > 64 || pw.closed {
		errors.Panic(errorf(errors.Internal, "invalid bit write"))
	}
	if n < 64 {
		v &= 1<<n - 1
	}
	if err := pw.bw.WriteBits(v, uint8(n)); err != nil {
		errors.Panic(err)
	}
	pw.nbits += int64(n)
}

// WriteBit writes a single bit.
// This function panics if an error occurs.
func (pw *Writer) WriteBit(b bool) {
	if pw.closed {
		errors.Panic(errorf(errors.Internal, "invalid bit write"))
	}
	if err := pw.bw.WriteBool(b); err != nil {
		errors.Panic(err)
	}
	pw.nbits++
}

// WriteCode writes the bits of the given prefix code.
func (pw *Writer) WriteCode(c PrefixCode) {
	pw.WriteBits(c.Val, uint(c.Len))
}

// Bytes pads the stream to a byte boundary with zero bits and returns the
// packed buffer. No further bits may be written afterwards.
// This function panics if an error occurs.
func (pw *Writer) Bytes() []byte {
	if !pw.closed {
		if _, err := pw.bw.Align(); err != nil {
			errors.Panic(err)
		}
		pw.closed = true
	}
	return pw.bb.Bytes()
}
