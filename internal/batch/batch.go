// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package batch compresses and decompresses sets of files concurrently.
//
// Every file is an independent unit of work handed to the huffman package as
// a whole buffer. The Runner only deals with naming, file I/O, progress
// reporting, and error aggregation.
package batch

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/dsnet/huffpack/huffman"
	"github.com/dsnet/huffpack/internal/logger"
	"github.com/hashicorp/go-multierror"
)

const (
	// DefaultSuffix is appended to the name of compressed files.
	DefaultSuffix = ".huff"

	// fallbackSuffix is appended to decompressed files whose name does not
	// carry the compressed suffix.
	fallbackSuffix = ".out"
)

type Mode int

const (
	Compress Mode = iota
	Decompress
)

func (m Mode) String() string {
	switch m {
	case Compress:
		return "compress"
	case Decompress:
		return "decompress"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

type Options struct {
	Workers int    // Maximum number of files processed at once; GOMAXPROCS if <= 0
	Suffix  string // Suffix of compressed files; DefaultSuffix if empty
	Force   bool   // Overwrite existing output files

	// Progress, if set, is called after each file completes with the number
	// of completed files and the total. Calls are serialized and done is
	// strictly increasing.
	Progress func(done, total int)

	// Logger receives one line per file; logger.Discard() if nil.
	Logger logger.Logger
}

// Result describes a single processed file.
type Result struct {
	Input   string
	Output  string
	InSize  int64
	OutSize int64
}

// Runner processes files according to its Options.
type Runner struct {
	opts Options
}

func NewRunner(opts Options) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Suffix == "" {
		opts.Suffix = DefaultSuffix
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	return &Runner{opts: opts}
}

// OutputName reports the name of the file produced by processing name.
// Compression appends the suffix. Decompression strips it, or appends ".out"
// when name does not end with the suffix.
func (r *Runner) OutputName(m Mode, name string) string {
	if m == Compress {
		return name + r.opts.Suffix
	}
	if strings.HasSuffix(name, r.opts.Suffix) && filepath.Base(name) != r.opts.Suffix {
		return strings.TrimSuffix(name, r.opts.Suffix)
	}
	return name + fallbackSuffix
}

// Run processes every file in files and returns the results of those that
// succeeded, in input order.
//
// Failures of individual files do not stop the others; they are aggregated
// into the returned error, each prefixed with its file name. Cancelling ctx
// stops dispatching new files, but files already in progress are completed.
func (r *Runner) Run(ctx context.Context, m Mode, files []string) ([]Result, error) {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		done    int
		results = make([]Result, len(files))
		errs    = make([]error, len(files))
		ok      = make([]bool, len(files))
		sem     = make(chan struct{}, r.opts.Workers)
	)

	var ctxErr error
dispatch:
	for i, name := range files {
		if ctxErr = ctx.Err(); ctxErr != nil {
			break
		}
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break dispatch
		}

		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			defer func() { <-sem }()

			res, err := r.process(m, name)
			results[i], errs[i], ok[i] = res, err, err == nil

			mu.Lock()
			defer mu.Unlock()
			done++
			if err != nil {
				r.opts.Logger.Errorf("%s %s: %v", m, name, err)
			} else {
				r.opts.Logger.Infof("%s %s -> %s (%d -> %d bytes)", m, name, res.Output, res.InSize, res.OutSize)
			}
			if r.opts.Progress != nil {
				r.opts.Progress(done, len(files))
			}
		}(i, name)
	}
	wg.Wait()

	var merr *multierror.Error
	var out []Result
	for i, name := range files {
		switch {
		case ok[i]:
			out = append(out, results[i])
		case errs[i] != nil:
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", name, errs[i]))
		}
	}
	if ctxErr != nil {
		merr = multierror.Append(merr, ctxErr)
	}
	return out, merr.ErrorOrNil()
}

func (r *Runner) process(m Mode, name string) (Result, error) {
	if m == Compress {
		return r.CompressFile(name)
	}
	return r.DecompressFile(name)
}

// CompressFile compresses a single file next to the original.
func (r *Runner) CompressFile(name string) (Result, error) {
	return r.transform(name, r.OutputName(Compress, name), huffman.Compress)
}

// DecompressFile decompresses a single file next to the original.
func (r *Runner) DecompressFile(name string) (Result, error) {
	return r.transform(name, r.OutputName(Decompress, name), huffman.Decompress)
}

// transform never creates the output file if the codec fails.
func (r *Runner) transform(in, out string, codec func([]byte) ([]byte, error)) (Result, error) {
	fi, err := os.Stat(in)
	if err != nil {
		return Result{}, err
	}
	if !fi.Mode().IsRegular() {
		return Result{}, fmt.Errorf("not a regular file")
	}
	src, err := ioutil.ReadFile(in)
	if err != nil {
		return Result{}, err
	}
	dst, err := codec(src)
	if err != nil {
		return Result{}, err
	}
	if err := r.writeFile(out, dst, fi.Mode().Perm()); err != nil {
		return Result{}, err
	}
	return Result{Input: in, Output: out, InSize: int64(len(src)), OutSize: int64(len(dst))}, nil
}

func (r *Runner) writeFile(name string, b []byte, perm os.FileMode) error {
	flag := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if r.opts.Force {
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(name, flag, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		os.Remove(name)
		return err
	}
	return f.Close()
}
