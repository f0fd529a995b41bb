// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build go1.18
// +build go1.18

package huffman

import (
	"bytes"
	"testing"

	"github.com/dsnet/huffpack/internal/errors"
	"github.com/dsnet/huffpack/internal/testutil"
)

func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("AAAA"))
	f.Add([]byte("abbab"))
	f.Add(testutil.MustLoadFile("../testdata/gettysburg.txt"))
	f.Fuzz(func(t *testing.T, input []byte) {
		enc, err := Compress(input)
		if err != nil {
			t.Fatalf("Compress error: %v", err)
		}
		output, err := Decompress(enc)
		if err != nil {
			t.Fatalf("Decompress error: %v", err)
		}
		if !bytes.Equal(output, input) {
			t.Fatalf("output mismatch:\ngot  %x\nwant %x", output, input)
		}
	})
}

// maxFuzzRepeat bounds the output of repeat containers decoded while fuzzing.
// A valid 10-byte container may declare up to 4GiB-1 repetitions.
const maxFuzzRepeat = 1 << 20

func FuzzDecompress(f *testing.F) {
	f.Add(testutil.MustDecodeHex("0000000000000000"))
	f.Add(testutil.MustDecodeHex("00000002a08000000004"))
	f.Add(testutil.MustDecodeHex("00000003586c400000000568"))
	f.Add(testutil.MustDecodeHex("0000000458562b18000000075e"))
	f.Add(testutil.MustDecodeHex("00000002a0807a007204"))
	f.Fuzz(func(t *testing.T, input []byte) {
		var c Container
		if err := c.UnmarshalBinary(input); err != nil {
			if !errors.IsCorrupted(err) {
				t.Fatalf("unexpected error type: %v", err)
			}
			return
		}
		if c.IsRepeat() && c.NumBits > maxFuzzRepeat {
			t.Skipf("repeat count %d exceeds fuzzing limit", c.NumBits)
		}
		output, err := c.Decode()
		if err != nil {
			if !errors.IsCorrupted(err) {
				t.Fatalf("unexpected error type: %v", err)
			}
			return
		}

		// Every accepted container must be canonical up to tree shape.
		b, err := c.MarshalBinary()
		if err != nil {
			t.Fatalf("MarshalBinary error: %v", err)
		}
		if !bytes.Equal(b, input) {
			t.Fatalf("re-marshaled container mismatch:\ngot  %x\nwant %x", b, input)
		}
		if c.IsRepeat() && len(output) != int(c.NumBits) {
			t.Fatalf("repeat count mismatch: got %d, want %d", len(output), c.NumBits)
		}
	})
}
