// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package huffpack is a collection of static Huffman compression tools.
//
// The codec itself lives in the huffman sub-package. It operates on whole
// in-memory buffers and never performs file I/O; the huffpack command and the
// internal batch package provide the file handling shell around it.
package huffpack

// Error is the interface that all errors returned by packages in this
// module implement. Checking for this interface allows callers to distinguish
// errors that arose from the compressed data itself from I/O errors.
type Error interface {
	error
	CompressError()

	// IsInvalid reports whether the input was rejected because the codec
	// cannot represent it (for example, it is too large).
	IsInvalid() bool

	// IsCorrupted reports whether the compressed input was malformed.
	IsCorrupted() bool
}
