// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/dsnet/huffpack/internal/errors"
	"github.com/dsnet/huffpack/internal/testutil"
)

func makeTable(m map[byte]int) *FrequencyTable {
	ft := new(FrequencyTable)
	for sym, cnt := range m {
		ft[sym] = cnt
	}
	return ft
}

// optimalLength computes the minimum weighted path length of a binary prefix
// code for the given counts. Every internal node contributes its weight once
// per level below it, so the cost is the sum of all merged weights.
func optimalLength(cnts []int) (total int64) {
	ws := append([]int(nil), cnts...)
	for len(ws) > 1 {
		sort.Ints(ws)
		w := ws[0] + ws[1]
		total += int64(w)
		ws = append(ws[2:], w)
	}
	return total
}

func TestFrequencyTable(t *testing.T) {
	var ft FrequencyTable
	if ft.Distinct() != 0 || ft.Total() != 0 || len(ft.Codes()) != 0 {
		t.Fatalf("empty table is not empty")
	}

	ft.Count([]byte("abracadabra"))
	if got, want := ft.Distinct(), 5; got != want {
		t.Errorf("Distinct() = %d, want %d", got, want)
	}
	if got, want := ft.Total(), 11; got != want {
		t.Errorf("Total() = %d, want %d", got, want)
	}
	want := PrefixCodes{
		{Sym: 'a', Cnt: 5}, {Sym: 'b', Cnt: 2}, {Sym: 'c', Cnt: 1},
		{Sym: 'd', Cnt: 1}, {Sym: 'r', Cnt: 2},
	}
	if got := ft.Codes(); !reflect.DeepEqual(got, want) {
		t.Errorf("Codes() mismatch:\ngot  %v\nwant %v", got, want)
	}
}

func TestBuildTree(t *testing.T) {
	vectors := []struct {
		desc  string
		freqs map[byte]int
		codes map[byte]string
	}{{
		desc:  "textbook example",
		freqs: map[byte]int{'a': 5, 'b': 9, 'c': 12, 'd': 13, 'e': 16, 'f': 45},
		codes: map[byte]string{
			'a': "1100", 'b': "1101", 'c': "100", 'd': "101", 'e': "111", 'f': "0",
		},
	}, {
		desc:  "equal weights break ties by insertion order",
		freqs: map[byte]int{'w': 1, 'x': 1, 'y': 1, 'z': 1},
		codes: map[byte]string{'w': "00", 'x': "01", 'y': "10", 'z': "11"},
	}, {
		desc:  "merged node loses tie against earlier leaf",
		freqs: map[byte]int{0: 1, 1: 1, 2: 2},
		codes: map[byte]string{0: "10", 1: "11", 2: "0"},
	}, {
		desc:  "two symbols",
		freqs: map[byte]int{0xff: 7, 0x00: 1},
		codes: map[byte]string{0x00: "0", 0xff: "1"},
	}, {
		desc:  "single symbol",
		freqs: map[byte]int{'A': 1000},
		codes: map[byte]string{'A': "0"},
	}}

	for _, v := range vectors {
		t.Run(v.desc, func(t *testing.T) {
			tree := BuildTree(makeTable(v.freqs))
			codes, err := tree.Codes()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(codes) != len(v.codes) {
				t.Fatalf("got %d codes, want %d", len(codes), len(v.codes))
			}
			for _, c := range codes {
				if got, want := FormatCode(c), v.codes[uint8(c.Sym)]; got != want {
					t.Errorf("code for %q = %s, want %s", rune(c.Sym), got, want)
				}
				if c.Cnt != v.freqs[uint8(c.Sym)] {
					t.Errorf("count for %q = %d, want %d", rune(c.Sym), c.Cnt, v.freqs[uint8(c.Sym)])
				}
			}
			if !codes.IsPrefixFree() {
				t.Errorf("codes are not prefix-free:\n%v", codes)
			}
		})
	}
}

func TestBuildTreeTextbookLength(t *testing.T) {
	ft := makeTable(map[byte]int{'a': 5, 'b': 9, 'c': 12, 'd': 13, 'e': 16, 'f': 45})
	tree := BuildTree(ft)
	codes, err := tree.Codes()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := codes.Length(), int64(224); got != want {
		t.Errorf("Length() = %d, want %d", got, want)
	}
	if got, want := tree.Nodes[tree.Root].Weight, 100; got != want {
		t.Errorf("root weight = %d, want %d", got, want)
	}
	if got, want := len(tree.Nodes), 11; got != want {
		t.Errorf("arena size = %d, want %d", got, want)
	}
}

func TestBuildTreeEmpty(t *testing.T) {
	tree := BuildTree(new(FrequencyTable))
	if tree.Root != -1 || len(tree.Nodes) != 0 {
		t.Fatalf("BuildTree(empty) = %v, want empty tree", tree)
	}
	codes, err := tree.Codes()
	if err != nil || len(codes) != 0 {
		t.Errorf("Codes() = (%v, %v), want (nil, nil)", codes, err)
	}
}

func TestBuildTreeRandom(t *testing.T) {
	r := testutil.NewRand(0)
	for i := 0; i < 200; i++ {
		ft := new(FrequencyTable)
		n := 2 + r.Intn(NumSymbols-1)
		for _, sym := range r.Perm(NumSymbols)[:n] {
			switch r.Intn(3) {
			case 0:
				ft[sym] = 1 + r.Intn(4) // Many ties
			case 1:
				ft[sym] = 1 + r.Intn(1000)
			default:
				ft[sym] = 1 << uint(r.Intn(20)) // Skewed
			}
		}

		tree := BuildTree(ft)
		codes, err := tree.Codes()
		if err != nil {
			t.Fatalf("test %d, unexpected error: %v", i, err)
		}
		if len(codes) != n || tree.NumLeaves() != n {
			t.Fatalf("test %d, got %d codes and %d leaves, want %d", i, len(codes), tree.NumLeaves(), n)
		}
		if len(tree.Nodes) != 2*n-1 {
			t.Errorf("test %d, arena size = %d, want %d", i, len(tree.Nodes), 2*n-1)
		}
		if !codes.IsPrefixFree() {
			t.Errorf("test %d, codes are not prefix-free", i)
		}

		var cnts []int
		for _, c := range ft.Codes() {
			cnts = append(cnts, c.Cnt)
		}
		if got, want := codes.Length(), optimalLength(cnts); got != want {
			t.Errorf("test %d, Length() = %d, want %d", i, got, want)
		}

		// Rebuilding from the same table must produce the identical tree.
		if again := BuildTree(ft); !reflect.DeepEqual(again, tree) {
			t.Errorf("test %d, tree is not deterministic", i)
		}
	}
}

func TestCodesTooDeep(t *testing.T) {
	// A degenerate chain deeper than MaxCodeLen cannot be represented.
	tree := Tree{Root: -1}
	last := tree.AddLeaf(0, 1)
	for i := 1; i <= MaxCodeLen+1; i++ {
		last = tree.AddNode(tree.AddLeaf(uint8(i), 1), last)
	}
	tree.Root = last
	if _, err := tree.Codes(); !errors.IsInvalid(err) {
		t.Errorf("Codes() error = %v, want invalid error", err)
	}
}

func TestIsPrefixFree(t *testing.T) {
	vectors := []struct {
		codes PrefixCodes
		want  bool
	}{
		{PrefixCodes{}, true},
		{PrefixCodes{{Sym: 0, Len: 1, Val: 0}}, true},
		{PrefixCodes{{Sym: 0, Len: 1, Val: 0}, {Sym: 1, Len: 1, Val: 1}}, true},
		{PrefixCodes{{Sym: 0, Len: 1, Val: 0}, {Sym: 1, Len: 2, Val: 1}}, false},
		{PrefixCodes{{Sym: 0, Len: 2, Val: 2}, {Sym: 1, Len: 3, Val: 5}}, false},
		{PrefixCodes{{Sym: 0, Len: 2, Val: 2}, {Sym: 1, Len: 3, Val: 6}}, true},
		{PrefixCodes{{Sym: 0, Len: 3, Val: 6}, {Sym: 1, Len: 3, Val: 6}}, false},
	}
	for i, v := range vectors {
		if got := v.codes.IsPrefixFree(); got != v.want {
			t.Errorf("test %d, IsPrefixFree() = %v, want %v", i, got, v.want)
		}
	}
}

func TestString(t *testing.T) {
	tree := BuildTree(makeTable(map[byte]int{'a': 1, 'b': 3}))
	codes, _ := tree.Codes()

	s := codes.String()
	for _, want := range []string{"97:  0,", "98:  1,", "|###"} {
		if !strings.Contains(s, want) {
			t.Errorf("PrefixCodes.String() missing %q:\n%s", want, s)
		}
	}
	s = tree.String()
	for _, want := range []string{"*2:  {left: 0, right: 1, weight: 4}", "{sym:  98, weight: 3}"} {
		if !strings.Contains(s, want) {
			t.Errorf("Tree.String() missing %q:\n%s", want, s)
		}
	}
}
