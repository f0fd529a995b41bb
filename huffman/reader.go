// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/dsnet/huffpack/internal/errors"
	"github.com/dsnet/huffpack/internal/prefix"
)

// Decode reconstructs the original input from the container.
//
// The payload is decoded one bit at a time by walking the tree from the root
// and emitting a symbol at every leaf. Decoding stops exactly after NumBits
// bits; running out of bits in the middle of a code is an error. No partial
// output is returned alongside an error.
func (c *Container) Decode() (out []byte, err error) {
	defer errors.Recover(&err)
	c.validate()

	t := &c.Tree
	switch {
	case t.Root < 0:
		return []byte{}, nil
	case c.IsRepeat():
		return bytes.Repeat([]byte{t.Nodes[t.Root].Sym}, int(c.NumBits)), nil
	}

	pr := prefix.NewReader(c.Payload, int64(c.NumBits))
	out = make([]byte, 0, 2*len(c.Payload))
	for pr.BitsRemaining() > 0 {
		idx := t.Root
		for !t.Nodes[idx].IsLeaf() {
			if pr.BitsRemaining() == 0 {
				return nil, errorf(errors.Corrupted, "bit stream ends in the middle of a code")
			}
			if pr.ReadBit() {
				idx = t.Nodes[idx].Right
			} else {
				idx = t.Nodes[idx].Left
			}
		}
		out = append(out, t.Nodes[idx].Sym)
	}
	return out, nil
}

// Decompress parses a serialized container and returns the original input.
// Every structural inconsistency in src is reported as a corrupted error.
func Decompress(src []byte) ([]byte, error) {
	var c Container
	if err := c.UnmarshalBinary(src); err != nil {
		return nil, err
	}
	return c.Decode()
}

// Reader is an io.ReadCloser that decompresses a container read from an
// underlying io.Reader. The entire container is consumed on the first call to
// Read before any output is produced.
type Reader struct {
	InputOffset  int64 // Total number of bytes read from underlying io.Reader
	OutputOffset int64 // Total number of bytes emitted from Read

	rd  io.Reader
	buf []byte
	err error
}

// NewReader creates a new Reader reading from the given reader.
func NewReader(r io.Reader) *Reader {
	zr := new(Reader)
	zr.Reset(r)
	return zr
}

// Reset discards the Reader's state and makes it equivalent to the result of
// a call to NewReader, but reading from r instead.
func (zr *Reader) Reset(r io.Reader) {
	*zr = Reader{rd: r}
}

func (zr *Reader) Read(buf []byte) (int, error) {
	if zr.err != nil {
		return 0, zr.err
	}
	if zr.rd != nil {
		src, err := ioutil.ReadAll(zr.rd)
		zr.InputOffset += int64(len(src))
		if err != nil {
			zr.err = err
			return 0, err
		}
		if zr.buf, err = Decompress(src); err != nil {
			zr.err = err
			return 0, err
		}
		zr.rd = nil // Release reference to underlying Reader
	}

	n := copy(buf, zr.buf)
	zr.buf = zr.buf[n:]
	zr.OutputOffset += int64(n)
	if len(zr.buf) == 0 {
		zr.err = io.EOF
		if n > 0 {
			return n, nil
		}
	}
	return n, zr.err
}

// Close ends the decompression stream.
func (zr *Reader) Close() error {
	if zr.err == errClosed || zr.err == io.EOF {
		zr.err = errClosed
		return nil
	}
	err := zr.err
	zr.rd, zr.buf, zr.err = nil, nil, errClosed
	return err
}
