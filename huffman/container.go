// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"encoding/binary"

	"github.com/boljen/go-bitmap"
	"github.com/dsnet/huffpack/internal/errors"
	"github.com/dsnet/huffpack/internal/prefix"
	"github.com/noxer/bytewriter"
)

// Container is the decoded form of a compressed buffer.
//
// The zero value is not a valid Container; an empty container has a Tree
// with a Root of -1.
type Container struct {
	// Tree is the prefix tree used to encode the payload.
	// Leaf weights are only known to the encoder and are zero after parsing.
	Tree prefix.Tree

	// NumBits is the number of valid bits in Payload.
	// If Tree is a single leaf, it is instead the number of times the symbol
	// of that leaf is repeated.
	NumBits uint32

	// Payload is the packed stream of codes.
	Payload []byte
}

// NumSymbols reports the number of distinct symbols in the tree.
func (c *Container) NumSymbols() int {
	return c.Tree.NumLeaves()
}

// IsRepeat reports whether the container describes a single repeated symbol.
func (c *Container) IsRepeat() bool {
	return c.Tree.Root >= 0 && c.Tree.Nodes[c.Tree.Root].IsLeaf()
}

// TreeSize reports the size in bytes of the serialized tree description.
func (c *Container) TreeSize() int {
	if c.Tree.Root < 0 {
		return 0
	}
	n := int64(len(c.Tree.Nodes) + 8*c.Tree.NumLeaves())
	return int(numBytes(n))
}

// Size reports the size in bytes of the serialized container.
func (c *Container) Size() int {
	return 2*headerSize + c.TreeSize() + len(c.Payload)
}

// validate checks that the metadata agrees with the payload.
// This function panics if an error occurs.
func (c *Container) validate() {
	switch {
	case c.Tree.Root < 0:
		if c.NumBits != 0 || len(c.Payload) != 0 {
			errors.Panic(errorf(errors.Corrupted, "empty tree with non-empty payload"))
		}
	case c.IsRepeat():
		if c.NumBits == 0 {
			errors.Panic(errorf(errors.Corrupted, "zero repeat count"))
		}
		if len(c.Payload) != 0 {
			errors.Panic(errorf(errors.Corrupted, "unexpected payload for repeated symbol"))
		}
	default:
		n := int64(c.NumBits)
		if n == 0 {
			errors.Panic(errorf(errors.Corrupted, "empty payload for %d symbols", c.NumSymbols()))
		}
		if got := int64(len(c.Payload)); got < numBytes(n) {
			errors.Panic(errorf(errors.Corrupted, "payload has %d bytes, need %d for %d bits", got, numBytes(n), n))
		} else if got > numBytes(n) {
			errors.Panic(errorf(errors.Corrupted, "payload has %d trailing bytes", got-numBytes(n)))
		}
		if pads := uint(-n & 7); pads > 0 {
			if c.Payload[len(c.Payload)-1]&(1<<pads-1) != 0 {
				errors.Panic(errorf(errors.Corrupted, "non-zero padding bits"))
			}
		}
	}
}

// MarshalBinary encodes the container into its binary form.
func (c *Container) MarshalBinary() (b []byte, err error) {
	defer errors.Recover(&err)
	c.validate()

	desc := encodeTree(&c.Tree)
	b = make([]byte, 2*headerSize+len(desc)+len(c.Payload))
	wr := bytewriter.New(b)
	write := func(buf []byte) {
		if len(buf) == 0 {
			return
		}
		if _, err := wr.Write(buf); err != nil {
			errors.Panic(errorf(errors.Internal, "%v", err))
		}
	}
	putUint32 := func(v uint32) {
		if err := binary.Write(wr, binary.BigEndian, v); err != nil {
			errors.Panic(errorf(errors.Internal, "%v", err))
		}
	}
	putUint32(uint32(len(desc)))
	write(desc)
	putUint32(c.NumBits)
	write(c.Payload)
	return b, nil
}

// UnmarshalBinary decodes the container from its binary form.
// The container is not modified if an error is returned.
func (c *Container) UnmarshalBinary(b []byte) (err error) {
	defer errors.Recover(&err)

	if len(b) < headerSize {
		return errorf(errors.Corrupted, "truncated tree length")
	}
	n := int64(binary.BigEndian.Uint32(b))
	b = b[headerSize:]
	if int64(len(b)) < n {
		return errorf(errors.Corrupted, "truncated tree description")
	}
	tree := decodeTree(b[:n])
	b = b[n:]
	if len(b) < headerSize {
		return errorf(errors.Corrupted, "truncated payload length")
	}
	nc := Container{
		Tree:    tree,
		NumBits: binary.BigEndian.Uint32(b),
		Payload: b[headerSize:],
	}
	nc.validate()
	*c = nc
	return nil
}

// encodeTree serializes the tree structure in pre-order.
func encodeTree(t *prefix.Tree) []byte {
	if t.Root < 0 {
		return nil
	}
	pw := prefix.NewWriter()
	stack := []int32{t.Root}
	for len(stack) > 0 {
		nd := t.Nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		if nd.IsLeaf() {
			pw.WriteBit(true)
			pw.WriteBits(uint64(nd.Sym), 8)
			continue
		}
		pw.WriteBit(false)
		stack = append(stack, nd.Right, nd.Left)
	}
	return pw.Bytes()
}

type treeDecoder struct {
	pr   *prefix.Reader
	t    prefix.Tree
	seen bitmap.Bitmap // Symbols already assigned to a leaf
}

// decodeTree parses a tree description. An empty description is the empty
// tree. This function panics if the description is malformed.
func decodeTree(desc []byte) prefix.Tree {
	if len(desc) == 0 {
		return prefix.Tree{Root: -1}
	}
	td := treeDecoder{
		pr:   prefix.NewReader(desc, 8*int64(len(desc))),
		t:    prefix.Tree{Root: -1, Nodes: make([]prefix.Node, 0, 2*prefix.NumSymbols-1)},
		seen: bitmap.New(prefix.NumSymbols),
	}
	td.t.Root = td.node(0)

	// Only zero padding up to the next byte boundary may follow.
	rem := td.pr.BitsRemaining()
	if rem >= 8 {
		errors.Panic(errorf(errors.Corrupted, "tree description has trailing data"))
	}
	if td.pr.ReadBits(uint(rem)) != 0 {
		errors.Panic(errorf(errors.Corrupted, "non-zero tree padding bits"))
	}
	return td.t
}

func (td *treeDecoder) node(depth int) int32 {
	if td.pr.BitsRemaining() == 0 {
		errors.Panic(errorf(errors.Corrupted, "truncated tree description"))
	}
	if td.pr.ReadBit() {
		if td.pr.BitsRemaining() < 8 {
			errors.Panic(errorf(errors.Corrupted, "truncated leaf symbol"))
		}
		sym := int(td.pr.ReadBits(8))
		if td.seen.Get(sym) {
			errors.Panic(errorf(errors.Corrupted, "duplicate leaf for symbol %d", sym))
		}
		td.seen.Set(sym, true)
		return td.t.AddLeaf(uint8(sym), 0)
	}
	if depth >= maxDepth {
		errors.Panic(errorf(errors.Corrupted, "tree is too deep"))
	}
	left := td.node(depth + 1)
	right := td.node(depth + 1)
	return td.t.AddNode(left, right)
}
