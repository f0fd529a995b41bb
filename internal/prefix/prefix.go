// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package prefix implements bit readers and writers that use prefix encoding,
// along with the frequency analysis and tree construction needed to derive
// an optimal static prefix code for a byte alphabet.
//
// Bits are always packed most-significant-bit first within each byte.
package prefix

import (
	"sort"

	"github.com/dsnet/huffpack/internal/errors"
)

const (
	NumSymbols = 256 // Size of the byte alphabet
	MaxCodeLen = 64  // Longest code that fits in PrefixCode.Val
)

func errorf(c int, msg string) error {
	return errors.Error{Code: c, Pkg: "prefix", Msg: msg}
}

// PrefixCode is a representation of a prefix code, which is conceptually a
// mapping from some arbitrary symbol to some bit-string.
//
// The Sym and Cnt fields are typically provided by the user,
// while the Len and Val fields are generated by the tree.
type PrefixCode struct {
	Sym uint32 // The symbol being mapped
	Cnt int    // The number times this symbol is used
	Len uint32 // Bit-length of the prefix code
	Val uint64 // Value of the prefix code (MSB-first, low Len bits)
}

type PrefixCodes []PrefixCode

type prefixCodesBySymbol []PrefixCode

func (c prefixCodesBySymbol) Len() int           { return len(c) }
func (c prefixCodesBySymbol) Less(i, j int) bool { return c[i].Sym < c[j].Sym }
func (c prefixCodesBySymbol) Swap(i, j int)      { c[i], c[j] = c[j], c[i] }

type prefixCodesByCount []PrefixCode

func (c prefixCodesByCount) Len() int { return len(c) }
func (c prefixCodesByCount) Less(i, j int) bool {
	return c[i].Cnt < c[j].Cnt || (c[i].Cnt == c[j].Cnt && c[i].Sym < c[j].Sym)
}
func (c prefixCodesByCount) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

func (pc PrefixCodes) SortBySymbol() { sort.Sort(prefixCodesBySymbol(pc)) }
func (pc PrefixCodes) SortByCount()  { sort.Sort(prefixCodesByCount(pc)) }

// Length computes the total bit-length using the Len and Cnt fields.
func (pc PrefixCodes) Length() (nb int64) {
	for _, c := range pc {
		nb += int64(c.Len) * int64(c.Cnt)
	}
	return nb
}

// IsPrefixFree reports whether no code in pc is a prefix of another code.
// The check is quadratic in the number of codes, which is at most 256.
func (pc PrefixCodes) IsPrefixFree() bool {
	for i, a := range pc {
		for j, b := range pc {
			if i == j || a.Len > b.Len {
				continue
			}
			if b.Val>>(b.Len-a.Len) == a.Val {
				return false
			}
		}
	}
	return true
}

// Lookup returns a table indexed by symbol. Symbols absent from pc have a
// zero-length entry.
func (pc PrefixCodes) Lookup() (t [NumSymbols]PrefixCode) {
	for _, c := range pc {
		t[uint8(c.Sym)] = c
	}
	return t
}
