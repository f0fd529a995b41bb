// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"container/heap"

	"github.com/dsnet/huffpack/internal/errors"
)

// Node is a single entry of a Tree arena. A leaf has negative child indexes
// and owns a symbol; an internal node owns exactly two children and its
// weight is the sum of theirs.
type Node struct {
	Weight int
	Left   int32 // Index of the left child, or -1 for a leaf
	Right  int32 // Index of the right child, or -1 for a leaf
	Sym    uint8 // Only valid for leaves
}

func (n Node) IsLeaf() bool { return n.Left < 0 }

// Tree is a binary prefix tree stored as an arena of nodes.
// The zero value is not an empty tree; use Tree{Root: -1} or BuildTree.
type Tree struct {
	Nodes []Node
	Root  int32 // Index of the root node, or -1 if the tree is empty
}

// AddLeaf appends a leaf to the arena and returns its index.
func (t *Tree) AddLeaf(sym uint8, weight int) int32 {
	t.Nodes = append(t.Nodes, Node{Weight: weight, Left: -1, Right: -1, Sym: sym})
	return int32(len(t.Nodes) - 1)
}

// AddNode appends an internal node joining left and right and returns its
// index.
func (t *Tree) AddNode(left, right int32) int32 {
	w := t.Nodes[left].Weight + t.Nodes[right].Weight
	t.Nodes = append(t.Nodes, Node{Weight: w, Left: left, Right: right})
	return int32(len(t.Nodes) - 1)
}

// NumLeaves reports the number of leaves (distinct symbols) in the tree.
func (t *Tree) NumLeaves() (n int) {
	for _, nd := range t.Nodes {
		if nd.IsLeaf() {
			n++
		}
	}
	return n
}

// BuildTree constructs an optimal prefix tree for the symbols present in ft.
//
// Nodes are merged lowest weight first. Ties are broken by arena index:
// leaves are inserted in ascending symbol order and every merged node takes
// the next free index, so the smaller index wins. The first node removed from
// the queue becomes the left child and the second becomes the right child.
// This makes the resulting tree a pure function of ft.
//
// If ft contains a single symbol, the tree consists of a lone leaf.
// If ft is empty, the returned tree has a Root of -1.
func BuildTree(ft *FrequencyTable) Tree {
	n := ft.Distinct()
	t := Tree{Root: -1}
	if n == 0 {
		return t
	}
	t.Nodes = make([]Node, 0, 2*n-1)

	q := nodeQueue{t: &t}
	for sym, cnt := range ft {
		if cnt > 0 {
			q.idxs = append(q.idxs, t.AddLeaf(uint8(sym), cnt))
		}
	}
	heap.Init(&q)
	for q.Len() > 1 {
		left := heap.Pop(&q).(int32)
		right := heap.Pop(&q).(int32)
		heap.Push(&q, t.AddNode(left, right))
	}
	t.Root = q.idxs[0]
	return t
}

// nodeQueue is a min-heap of arena indexes ordered by (weight, index).
type nodeQueue struct {
	t    *Tree
	idxs []int32
}

func (q *nodeQueue) Len() int { return len(q.idxs) }
func (q *nodeQueue) Less(i, j int) bool {
	a, b := q.idxs[i], q.idxs[j]
	wa, wb := q.t.Nodes[a].Weight, q.t.Nodes[b].Weight
	return wa < wb || (wa == wb && a < b)
}
func (q *nodeQueue) Swap(i, j int)      { q.idxs[i], q.idxs[j] = q.idxs[j], q.idxs[i] }
func (q *nodeQueue) Push(x interface{}) { q.idxs = append(q.idxs, x.(int32)) }
func (q *nodeQueue) Pop() interface{} {
	x := q.idxs[len(q.idxs)-1]
	q.idxs = q.idxs[:len(q.idxs)-1]
	return x
}

// Codes derives the prefix code of every leaf by walking the tree depth-first,
// left before right, appending a 0 bit for each left edge and a 1 bit for each
// right edge. The result is sorted by symbol and the Cnt fields hold the leaf
// weights.
//
// A tree made of a single leaf has no edges; its symbol is assigned the 1-bit
// code "0". An empty tree yields no codes.
func (t *Tree) Codes() (PrefixCodes, error) {
	if t.Root < 0 {
		return nil, nil
	}
	if root := t.Nodes[t.Root]; root.IsLeaf() {
		return PrefixCodes{{Sym: uint32(root.Sym), Cnt: root.Weight, Len: 1, Val: 0}}, nil
	}

	type frame struct {
		idx int32
		len uint32
		val uint64
	}
	var codes PrefixCodes
	stack := []frame{{idx: t.Root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		nd := t.Nodes[f.idx]
		if nd.IsLeaf() {
			codes = append(codes, PrefixCode{Sym: uint32(nd.Sym), Cnt: nd.Weight, Len: f.len, Val: f.val})
			continue
		}
		if f.len >= MaxCodeLen {
			return nil, errorf(errors.Invalid, "code length exceeds 64 bits")
		}
		// Push right first so that the left subtree is visited first.
		stack = append(stack,
			frame{nd.Right, f.len + 1, f.val<<1 | 1},
			frame{nd.Left, f.len + 1, f.val << 1},
		)
	}
	codes.SortBySymbol()
	return codes, nil
}
