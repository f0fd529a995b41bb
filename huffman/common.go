// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package huffman implements a static Huffman compressed data format.
//
// The whole input is analyzed at once: symbol frequencies are counted, an
// optimal prefix tree is built, and every byte is replaced by its code. The
// output is a self-describing container holding the tree and the bit-packed
// payload, so that a decoder needs no external knowledge:
//
//	uint32   length of the tree description in bytes (big-endian)
//	[]byte   tree description
//	uint32   number of valid payload bits (big-endian)
//	[]byte   payload, most-significant bit first, zero padded
//
// The tree description is a pre-order walk of the tree, left child before
// right child. Every node begins with a flag bit: 1 for a leaf, which is then
// followed by its 8-bit symbol, and 0 for an internal node. The description is
// zero padded to a byte boundary.
//
// Two inputs are special. An empty input produces an empty tree description
// and a zero bit count. An input made of a single repeated byte produces a
// tree description with one leaf; the bit count field then holds the number
// of repetitions and the payload is empty.
package huffman

import (
	"fmt"
	"math"

	"github.com/dsnet/huffpack/internal/errors"
)

const (
	headerSize = 4 // Size of each of the two length fields
	maxLength  = math.MaxUint32

	// The deepest leaf of a tree with 256 leaves has a depth of 255.
	maxDepth = 255
)

func errorf(c int, f string, a ...interface{}) error {
	return errors.Error{Code: c, Pkg: "huffman", Msg: fmt.Sprintf(f, a...)}
}

var (
	errClosed   = errorf(errors.Closed, "")
	errTooLarge = errorf(errors.Invalid, "input exceeds the format size limits")
)

// numBytes reports the number of bytes needed to hold n bits.
func numBytes(n int64) int64 {
	return (n + 7) / 8
}
