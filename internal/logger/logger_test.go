// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	var bb bytes.Buffer
	l := NewWriter(&bb)
	l.Infof("compressed %s", "a.txt")
	l.Errorf("failed %d files", 2)

	out := bb.String()
	assert.Contains(t, out, "[INFO] compressed a.txt\n")
	assert.Contains(t, out, "[ERROR] failed 2 files\n")
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() {
		Discard().Infof("ignored %v", 1)
		Discard().Errorf("ignored %v", 2)
	})
}
