// Copyright 2025 The applymeta authors
// SPDX-License-Identifier: MIT

package apply

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Output containers where -movflags use_metadata_tags applies; other
// muxers ignore the flag, so it is only emitted where it matters.
var movExts = map[string]bool{
	".m4a": true,
	".mp4": true,
	".mov": true,
}

// FFmpegArgs builds the argument vector, program name included, for
// one remux that copies audio untouched, applies metadata fields, and
// optionally attaches cover art with a front-cover disposition.
func FFmpegArgs(in, out string, fields []string, cover string, overwrite bool) []string {
	args := []string{"ffmpeg", "-hide_banner"}
	if overwrite {
		args = append(args, "-y")
	} else {
		args = append(args, "-n")
	}
	args = append(args, "-i", in)

	if cover != "" {
		args = append(args, "-i", cover)
		// Audio from the first input, artwork from the second.
		args = append(args, "-map", "0:a", "-map", "1")
		args = append(args, "-c", "copy")
		// Mark the artwork stream as an attached picture.
		args = append(args, "-disposition:v:0", "attached_pic")
	} else {
		args = append(args, "-map", "0:a", "-c", "copy")
	}

	// Keep existing metadata; the -metadata flags below override
	// individual fields.
	args = append(args, "-map_metadata", "0")
	for _, f := range fields {
		args = append(args, "-metadata", f)
	}

	if movExts[strings.ToLower(filepath.Ext(out))] {
		args = append(args, "-movflags", "use_metadata_tags")
	}

	return append(args, out)
}

// RunFFmpeg executes args, surfacing the program's stderr in the
// returned error on a non-zero exit.
func RunFFmpeg(args []string) error {
	cmd := exec.Command(args[0], args[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w\n%s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// QuoteCommand renders args the way a POSIX shell would accept them,
// for dry-run output.
func QuoteCommand(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = shellQuote(a)
	}
	return strings.Join(quoted, " ")
}

const shellSafe = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789@%+=:,./-_"

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	safe := true
	for _, r := range s {
		if !strings.ContainsRune(shellSafe, r) {
			safe = false
			break
		}
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
