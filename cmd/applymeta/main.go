// Copyright 2025 The applymeta authors
// SPDX-License-Identifier: MIT

// Command applymeta applies ordered JSON metadata records to ordered
// media files with ffmpeg, preserving or attaching cover art.
//
// Usage:
//
//	applymeta -outdir out [flags] metadata.json [file ...]
//
// The JSON file must hold an array of objects; entries pair with the
// input files in order. Explicit file arguments keep their given
// order, -dir lists a directory in natural name order. A record's
// "image" field names explicit artwork; without one, -cover applies,
// and failing that an MP3 input's embedded picture is carried over.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"applymeta/internal/apply"
)

func main() {
	log.SetFlags(0)

	var (
		dir       = flag.String("dir", "", "directory containing media files to process (sorted by name)")
		outDir    = flag.String("outdir", "", "output directory (required)")
		suffix    = flag.String("suffix", "", "optional suffix before the extension, e.g. _tagged")
		cover     = flag.String("cover", "", "default cover image used when an entry has no image field")
		dryRun    = flag.Bool("dry-run", false, "print ffmpeg commands but do not run them")
		overwrite = flag.Bool("y", false, "overwrite outputs if they exist")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"usage: applymeta -outdir DIR [flags] metadata.json [file ...]\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(2)
	}
	if *outDir == "" {
		log.Fatal("applymeta: -outdir is required")
	}
	files := args[1:]
	if len(files) == 0 && *dir == "" {
		log.Fatal("applymeta: provide input files or -dir")
	}

	err := apply.Run(apply.Options{
		RecordsPath: args[0],
		Files:       files,
		Dir:         *dir,
		OutDir:      *outDir,
		Suffix:      *suffix,
		Cover:       *cover,
		DryRun:      *dryRun,
		Overwrite:   *overwrite,
	})
	if err != nil {
		log.Fatalf("applymeta: %v", err)
	}
}
