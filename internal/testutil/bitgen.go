// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"bytes"
	"encoding/hex"
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var (
	reBin = regexp.MustCompile("^[01]{1,64}$")
	reNum = regexp.MustCompile("^([DH])([0-9]+):([0-9a-fA-F]+)$")
	reRaw = regexp.MustCompile("^X:[0-9a-fA-F]+$")
	reQnt = regexp.MustCompile("^(.+)[*]([0-9]+)$")
)

// DecodeBitGen decodes a BitGen formatted string into a bit stream packed
// most-significant bit first, the order used by huffman containers.
//
// The input is a list of tokens separated by white space. A '#' starts a
// comment running to the end of the line. The tokens are:
//
//	[01]{1,64}       bits written left to right (e.g. 1101)
//	D<n>:<decimal>   an n-bit unsigned value written MSB-first (e.g. D32:5)
//	H<n>:<hex>       the same with a hexadecimal value (e.g. H8:61)
//	X:<hex>          literal bytes; the stream must be byte-aligned
//
// Any token may carry a trailing "*<count>" quantifier that repeats it.
// The stream is zero padded up to the next byte boundary.
//
// Example BitGen input:
//
//	D32:3                  # Tree description length: 3 bytes
//	0 1 D8:97 1 D8:98 0*5  # Internal, leaf 'a', leaf 'b', padding
//	D32:5                  # Payload: 5 valid bits
//	0 1 1 0 1 000          # "abbab", padding
//
// Generated output stream (in hexadecimal):
//
//	"00000003586c400000000568"
func DecodeBitGen(str string) ([]byte, error) {
	var bw bitBuffer
	for _, line := range strings.Split(str, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		for _, t := range strings.Fields(line) {
			if err := bw.writeToken(t); err != nil {
				return nil, err
			}
		}
	}
	return bw.b, nil
}

func (bw *bitBuffer) writeToken(t string) error {
	rep := 1
	if m := reQnt.FindStringSubmatch(t); m != nil {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return errors.New("testutil: invalid quantified token: " + t)
		}
		t, rep = m[1], n
	}

	switch {
	case reBin.MatchString(t):
		v, _ := strconv.ParseUint(t, 2, 64)
		for i := 0; i < rep; i++ {
			bw.WriteBits(v, uint(len(t)))
		}
	case reNum.MatchString(t):
		m := reNum.FindStringSubmatch(t)
		base := 10
		if m[1] == "H" {
			base = 16
		}
		n, err1 := strconv.Atoi(m[2])
		v, err2 := strconv.ParseUint(m[3], base, 64)
		if err1 != nil || err2 != nil || n > 64 {
			return errors.New("testutil: invalid numeric token: " + t)
		}
		if n < 64 && v>>uint(n) != 0 {
			return errors.New("testutil: integer overflow on token: " + t)
		}
		for i := 0; i < rep; i++ {
			bw.WriteBits(v, uint(n))
		}
	case reRaw.MatchString(t):
		b, err := hex.DecodeString(t[2:])
		if err != nil {
			return errors.New("testutil: invalid raw bytes token: " + t)
		}
		if bw.n != 0 {
			return errors.New("testutil: unaligned raw bytes token: " + t)
		}
		bw.b = append(bw.b, bytes.Repeat(b, rep)...)
	default:
		return errors.New("testutil: invalid token: " + t)
	}
	return nil
}

// bitBuffer is a minimal MSB-first bit packer. The prefix package is not used
// here so that its own tests may depend on testutil.
type bitBuffer struct {
	b []byte
	n uint // Number of bits used in the last byte
}

// WriteBits appends the low n bits of v, most-significant first.
func (bw *bitBuffer) WriteBits(v uint64, n uint) {
	for i := n; i > 0; i-- {
		if bw.n == 0 {
			bw.b = append(bw.b, 0x00)
		}
		if v&(1<<(i-1)) != 0 {
			bw.b[len(bw.b)-1] |= 0x80 >> bw.n
		}
		bw.n = (bw.n + 1) % 8
	}
}
