// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

// FrequencyTable counts the occurrences of each byte value.
// A symbol is considered present only if its count is non-zero.
type FrequencyTable [NumSymbols]int

// Count adds the symbols of buf to the table.
func (ft *FrequencyTable) Count(buf []byte) {
	for _, b := range buf {
		ft[b]++
	}
}

// Distinct reports the number of symbols with a non-zero count.
func (ft *FrequencyTable) Distinct() (n int) {
	for _, c := range ft {
		if c > 0 {
			n++
		}
	}
	return n
}

// Total reports the sum of all counts.
func (ft *FrequencyTable) Total() (n int) {
	for _, c := range ft {
		n += c
	}
	return n
}

// Codes returns a PrefixCode for every present symbol in ascending symbol
// order with only the Sym and Cnt fields populated.
func (ft *FrequencyTable) Codes() PrefixCodes {
	var codes PrefixCodes
	for sym, cnt := range ft {
		if cnt > 0 {
			codes = append(codes, PrefixCode{Sym: uint32(sym), Cnt: cnt})
		}
	}
	return codes
}
