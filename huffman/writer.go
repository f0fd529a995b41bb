// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"bytes"
	"io"

	"github.com/dsnet/huffpack/internal/errors"
	"github.com/dsnet/huffpack/internal/prefix"
)

// Encode builds the container for src.
//
// Encoding succeeds for every input that the format can describe. It only
// fails with an invalid error if src is longer than 4GiB-1 bytes or if the
// encoded payload exceeds 4Gib-1 bits.
func Encode(src []byte) (c *Container, err error) {
	defer errors.Recover(&err)

	if int64(len(src)) > maxLength {
		return nil, errTooLarge
	}

	var ft prefix.FrequencyTable
	ft.Count(src)
	c = &Container{Tree: prefix.BuildTree(&ft)}
	switch ft.Distinct() {
	case 0:
		return c, nil
	case 1:
		c.NumBits = uint32(len(src))
		return c, nil
	}

	codes, err := c.Tree.Codes()
	if err != nil {
		return nil, err
	}
	nbits := codes.Length()
	if nbits > maxLength {
		return nil, errTooLarge
	}

	lut := codes.Lookup()
	var pw prefix.Writer
	pw.Init(int(numBytes(nbits)))
	for _, b := range src {
		pw.WriteCode(lut[b])
	}
	c.NumBits = uint32(pw.BitsWritten())
	c.Payload = pw.Bytes()
	return c, nil
}

// Compress encodes src and returns the serialized container.
func Compress(src []byte) ([]byte, error) {
	c, err := Encode(src)
	if err != nil {
		return nil, err
	}
	return c.MarshalBinary()
}

// Writer is an io.WriteCloser that compresses everything written to it.
// Since the format needs the frequencies of the whole input, all data is
// buffered in memory and the container is only emitted by Close.
type Writer struct {
	InputOffset  int64 // Total number of bytes issued to Write
	OutputOffset int64 // Total number of bytes written to underlying io.Writer

	wr  io.Writer
	buf bytes.Buffer
	err error
}

// NewWriter creates a new Writer writing to the given writer.
func NewWriter(w io.Writer) *Writer {
	zw := new(Writer)
	zw.Reset(w)
	return zw
}

// Reset discards the Writer's state and makes it equivalent to the result of
// a call to NewWriter, but writing to w instead.
func (zw *Writer) Reset(w io.Writer) {
	zw.InputOffset, zw.OutputOffset = 0, 0
	zw.wr, zw.err = w, nil
	zw.buf.Reset()
}

func (zw *Writer) Write(buf []byte) (int, error) {
	if zw.err != nil {
		return 0, zw.err
	}
	if int64(zw.buf.Len()+len(buf)) > maxLength {
		zw.err = errTooLarge
		return 0, zw.err
	}
	n, _ := zw.buf.Write(buf)
	zw.InputOffset += int64(n)
	return n, nil
}

// Close compresses the buffered input and writes the container to the
// underlying io.Writer. It does not close the underlying io.Writer.
func (zw *Writer) Close() error {
	if zw.err == errClosed {
		return nil
	}
	if zw.err != nil {
		return zw.err
	}

	b, err := Compress(zw.buf.Bytes())
	if err != nil {
		zw.err = err
		return err
	}
	n, err := zw.wr.Write(b)
	zw.OutputOffset += int64(n)
	if err == nil && n < len(b) {
		err = io.ErrShortWrite
	}
	if err != nil {
		zw.err = err
		return err
	}
	zw.buf.Reset()
	zw.err = errClosed
	return nil
}
