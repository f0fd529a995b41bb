// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command huffpack compresses and decompresses files with static Huffman
// coding.
//
// Example usage:
//
//	$ huffpack compress notes.txt data.bin
//	$ huffpack inspect notes.txt.huff
//	$ huffpack decompress notes.txt.huff
//	$ huffpack codes --csv notes.txt
package main

import (
	"io"
	"log"
	"os"
	"runtime"

	"github.com/dsnet/huffpack/internal/batch"
	"github.com/urfave/cli/v2"
)

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "huffpack",
		Usage:     "Compress files with static Huffman coding",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "workers",
				Usage:   "Maximum number of files processed at once",
				EnvVars: []string{"HUFFPACK_WORKERS"},
				Value:   runtime.GOMAXPROCS(0),
			},
			&cli.StringFlag{
				Name:    "suffix",
				Usage:   "Suffix of compressed files",
				EnvVars: []string{"HUFFPACK_SUFFIX"},
				Value:   batch.DefaultSuffix,
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite existing output files",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Suppress progress and per-file messages",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "compress",
				Aliases:   []string{"c"},
				Usage:     "Compress files next to the originals",
				ArgsUsage: "FILE...",
				Action:    runBatch(batch.Compress),
			},
			{
				Name:      "decompress",
				Aliases:   []string{"d"},
				Usage:     "Decompress files next to the originals",
				ArgsUsage: "FILE...",
				Action:    runBatch(batch.Decompress),
			},
			{
				Name:      "inspect",
				Usage:     "Describe the structure of a compressed file",
				ArgsUsage: "FILE",
				Action:    inspectFile,
			},
			{
				Name:      "codes",
				Usage:     "Print the code table that would be used for a file",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "csv", Usage: "Print the table as CSV"},
				},
				Action: printCodes,
			},
		},
	}
}
