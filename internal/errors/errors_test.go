// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package errors

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	vectors := []struct {
		err  Error
		want string
	}{
		{Error{}, "unknown error"},
		{Error{Code: Corrupted, Pkg: "huffman"}, "huffman: corrupted input"},
		{Error{Code: Invalid, Pkg: "huffman", Msg: "too large"}, "huffman: invalid argument: too large"},
		{Error{Code: Closed, Msg: "done"}, "closed handler: done"},
	}
	for _, v := range vectors {
		assert.Equal(t, v.want, v.err.Error())
	}
}

func TestPredicates(t *testing.T) {
	err := error(Error{Code: Corrupted})
	assert.True(t, IsCorrupted(err))
	assert.False(t, IsInvalid(err))
	assert.False(t, IsInternal(err))
	assert.False(t, IsClosed(err))
	assert.False(t, IsCorrupted(io.EOF))
	assert.False(t, IsCorrupted(nil))
}

func TestRecover(t *testing.T) {
	want := Error{Code: Invalid, Msg: "whoopsie"}
	got := func() (err error) {
		defer Recover(&err)
		Panic(want)
		return nil
	}()
	assert.Equal(t, error(want), got)

	// Foreign panics are not swallowed.
	assert.Panics(t, func() {
		var err error
		defer Recover(&err)
		panic("boom")
	})
}
