// Copyright 2025 The applymeta authors
// SPDX-License-Identifier: MIT

// Package apply pairs ordered JSON metadata records with ordered media
// files and remuxes each pair through ffmpeg, carrying over or
// attaching cover art along the way.
package apply

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"applymeta/id3"
)

// Options configure one Run.
type Options struct {
	// RecordsPath is the JSON file holding the metadata array.
	RecordsPath string

	// Files are explicit inputs, in the order given. When empty, Dir
	// is listed instead.
	Files []string
	Dir   string

	// OutDir receives the outputs, named stem+Suffix+ext.
	OutDir string
	Suffix string

	// Cover is the default artwork used when a record has no image
	// field and the input carries no embedded picture.
	Cover string

	// DryRun prints the ffmpeg commands without executing them.
	DryRun bool

	// Overwrite passes -y instead of -n to ffmpeg.
	Overwrite bool

	// Printf receives progress output; defaults to stdout.
	Printf func(format string, args ...any)
}

// Run executes the whole pairing workflow. The first fatal condition
// aborts the run; missing artwork never does.
func Run(opts Options) error {
	if opts.Printf == nil {
		opts.Printf = func(format string, args ...any) {
			fmt.Printf(format, args...)
		}
	}

	recordsPath, err := filepath.Abs(opts.RecordsPath)
	if err != nil {
		return err
	}
	recs, err := LoadRecords(recordsPath)
	if err != nil {
		return err
	}
	jsonBase := filepath.Dir(recordsPath)

	if opts.Cover != "" {
		if _, err := os.Stat(opts.Cover); err != nil {
			return fmt.Errorf("global cover not found: %s", opts.Cover)
		}
	}

	inputs, err := gatherInputs(opts)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no input files found")
	}

	n := len(inputs)
	if len(recs) < n {
		n = len(recs)
	}
	if len(inputs) != len(recs) {
		opts.Printf("WARNING: files=%d metadata_entries=%d; applying first %d pairs in order.\n",
			len(inputs), len(recs), n)
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		if err := applyOne(opts, i, n, inputs[i], recs[i], jsonBase); err != nil {
			return err
		}
	}

	opts.Printf("Done.\n")
	return nil
}

// applyOne processes a single input/record pair, owning the lifecycle
// of any temporary cover file it creates.
func applyOne(opts Options, i, n int, in string, rec Record, jsonBase string) error {
	cover, err := resolveCover(rec, jsonBase, opts.Cover)
	if err != nil {
		return err
	}

	// With no explicit artwork, try to carry over the input's own
	// embedded picture.
	tempCover := ""
	if cover == "" && strings.EqualFold(filepath.Ext(in), ".mp3") {
		tempCover, err = extractCoverToTemp(in)
		if err != nil {
			return err
		}
		cover = tempCover
	}
	defer func() {
		if tempCover != "" {
			os.Remove(tempCover)
		}
	}()

	ext := filepath.Ext(in)
	stem := strings.TrimSuffix(filepath.Base(in), ext)
	out := filepath.Join(opts.OutDir, stem+opts.Suffix+ext)

	args := FFmpegArgs(in, out, rec.Fields(), cover, opts.Overwrite)

	if opts.DryRun {
		opts.Printf("%s\n", QuoteCommand(args))
		return nil
	}

	artLabel := ""
	switch {
	case tempCover != "":
		artLabel = " (art: existing)"
	case cover != "":
		artLabel = fmt.Sprintf(" (art: %s)", filepath.Base(cover))
	}
	opts.Printf("[%d/%d] %s -> %s%s\n", i+1, n, filepath.Base(in), filepath.Base(out), artLabel)

	if err := RunFFmpeg(args); err != nil {
		return fmt.Errorf("remux of %s failed: %w", in, err)
	}
	return nil
}

// gatherInputs returns the explicit file list filtered to regular
// files, or the natural-sorted media listing of Dir.
func gatherInputs(opts Options) ([]string, error) {
	if len(opts.Files) > 0 {
		var inputs []string
		for _, f := range opts.Files {
			info, err := os.Stat(f)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			inputs = append(inputs, f)
		}
		return inputs, nil
	}
	if opts.Dir != "" {
		return MediaFiles(opts.Dir)
	}
	return nil, fmt.Errorf("provide input files or a directory")
}

// resolveCover returns the artwork path for one record: its explicit
// image resolved against the JSON file's directory, or the global
// default. An explicit path that does not exist is a hard error; the
// record asked for specific artwork and silently dropping it would be
// worse than stopping.
func resolveCover(rec Record, jsonBase, globalCover string) (string, error) {
	img, ok := rec.Image()
	if !ok {
		return globalCover, nil
	}
	p := img
	if !filepath.IsAbs(p) {
		p = filepath.Join(jsonBase, p)
	}
	if _, err := os.Stat(p); err != nil {
		return "", fmt.Errorf("artwork image not found: %s", p)
	}
	return p, nil
}

// extractCoverToTemp pulls the embedded picture out of an MP3, if any,
// and persists it to a temporary file with the sniffed extension. The
// empty string means the file has no usable picture. Failing to open
// the input is treated the same way; a later stage will surface real
// I/O problems.
func extractCoverToTemp(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil
	}
	defer f.Close()

	pic, ok := id3.ExtractCover(f)
	if !ok {
		return "", nil
	}

	tmp, err := os.CreateTemp("", "applymeta-cover-*"+pic.Ext)
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write(pic.Data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}
