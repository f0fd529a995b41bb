// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"errors"
	"fmt"
	"io/ioutil"
	"strings"

	strconv "github.com/dsnet/golib/unitconv"
	"github.com/dsnet/huffpack/huffman"
	"github.com/dsnet/huffpack/internal/batch"
	"github.com/dsnet/huffpack/internal/logger"
	"github.com/dsnet/huffpack/internal/prefix"
	"github.com/gocarina/gocsv"
	"github.com/urfave/cli/v2"
)

func formatSize(n int64) string {
	s := strconv.FormatPrefix(float64(n), strconv.Base1024, 2)
	return strings.Replace(s, ".00", "", -1) + "B"
}

func formatRatio(in, out int64) string {
	if out == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.2fx", float64(in)/float64(out))
}

func runBatch(m batch.Mode) cli.ActionFunc {
	return func(c *cli.Context) error {
		files := c.Args().Slice()
		if len(files) == 0 {
			return errors.New("no input files")
		}

		opts := batch.Options{
			Workers: c.Int("workers"),
			Suffix:  c.String("suffix"),
			Force:   c.Bool("force"),
			Logger:  logger.Discard(),
		}
		if !c.Bool("quiet") {
			opts.Logger = logger.NewWriter(c.App.ErrWriter)
			opts.Progress = func(done, total int) {
				pct := 100.0 * float64(done) / float64(total)
				fmt.Fprintf(c.App.ErrWriter, "[%6.2f%%] %d of %d\n", pct, done, total)
			}
		}

		results, err := batch.NewRunner(opts).Run(c.Context, m, files)
		for _, r := range results {
			orig, comp := r.InSize, r.OutSize
			if m == batch.Decompress {
				orig, comp = comp, orig
			}
			fmt.Fprintf(c.App.Writer, "%s -> %s\t%s -> %s\t%s\n",
				r.Input, r.Output, formatSize(r.InSize), formatSize(r.OutSize),
				formatRatio(orig, comp))
		}
		return err
	}
}

func inspectFile(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("expected exactly one file")
	}
	b, err := ioutil.ReadFile(c.Args().First())
	if err != nil {
		return err
	}
	var hc huffman.Container
	if err := hc.UnmarshalBinary(b); err != nil {
		return err
	}
	out, err := hc.Decode()
	if err != nil {
		return err
	}

	kind := "coded"
	switch {
	case hc.Tree.Root < 0:
		kind = "empty"
	case hc.IsRepeat():
		kind = "repeat"
	}
	w := c.App.Writer
	fmt.Fprintf(w, "kind:          %s\n", kind)
	fmt.Fprintf(w, "symbols:       %d\n", hc.NumSymbols())
	fmt.Fprintf(w, "tree size:     %d bytes\n", hc.TreeSize())
	if kind == "repeat" {
		fmt.Fprintf(w, "repeat count:  %d\n", hc.NumBits)
	} else {
		fmt.Fprintf(w, "payload:       %d bits in %d bytes\n", hc.NumBits, len(hc.Payload))
	}
	fmt.Fprintf(w, "container:     %s\n", formatSize(int64(len(b))))
	fmt.Fprintf(w, "original:      %s\n", formatSize(int64(len(out))))
	fmt.Fprintf(w, "ratio:         %s\n", formatRatio(int64(len(out)), int64(len(b))))
	return nil
}

// codeRow is a single line of the code table in CSV form.
type codeRow struct {
	Symbol int    `csv:"symbol"`
	Count  int    `csv:"count"`
	Length uint32 `csv:"length"`
	Code   string `csv:"code"`
}

func printCodes(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("expected exactly one file")
	}
	b, err := ioutil.ReadFile(c.Args().First())
	if err != nil {
		return err
	}

	var ft prefix.FrequencyTable
	ft.Count(b)
	t := prefix.BuildTree(&ft)
	codes, err := t.Codes()
	if err != nil {
		return err
	}

	if !c.Bool("csv") {
		fmt.Fprintln(c.App.Writer, codes.String())
		switch len(codes) {
		case 0:
			fmt.Fprintln(c.App.Writer, "empty: no payload")
		case 1:
			// A lone symbol is stored as a repeat count without payload bits.
			fmt.Fprintf(c.App.Writer, "repeat: %d of symbol %d, no payload\n", ft.Total(), codes[0].Sym)
		default:
			fmt.Fprintf(c.App.Writer, "payload: %d bits for %d symbols\n", codes.Length(), ft.Total())
		}
		return nil
	}
	rows := make([]*codeRow, 0, len(codes))
	for _, pc := range codes {
		rows = append(rows, &codeRow{
			Symbol: int(pc.Sym),
			Count:  pc.Cnt,
			Length: pc.Len,
			Code:   prefix.FormatCode(pc),
		})
	}
	return gocsv.Marshal(rows, c.App.Writer)
}
