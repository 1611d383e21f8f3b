// Copyright 2025 The applymeta authors
// SPDX-License-Identifier: MIT

// Package id3 extracts attached pictures from ID3v2 tags.
//
// The parser reads only the tag prefixed to a media file and never
// touches the audio stream. It is deliberately forgiving: an absent,
// truncated or malformed tag degrades to "no picture found", never to
// an error or an out-of-bounds read.
//
// See https://id3.org/id3v2.4.0-structure for the container layout.
package id3

import (
	"bytes"
	"encoding/binary"
	"io"
)

// headerLen is the size of both the tag header and each frame header.
const headerLen = 10

var tagMagic = []byte("ID3")

// sizeEncoding selects how a 4-byte size field is decoded. The tag
// size and ID3v2.4 frame sizes are syncsafe (only the low 7 bits of
// each byte are significant); v2.3 frame sizes are plain big-endian.
// It is resolved once per tag from the major version, so the frame
// loop carries no version checks.
type sizeEncoding int

const (
	sizeSyncsafe sizeEncoding = iota
	sizeBigEndian
)

func (e sizeEncoding) decode(b []byte) int {
	if e == sizeSyncsafe {
		return int(b[0]&0x7f)<<21 | int(b[1]&0x7f)<<14 | int(b[2]&0x7f)<<7 | int(b[3]&0x7f)
	}
	return int(binary.BigEndian.Uint32(b))
}

// Tag holds the body of one ID3v2 tag, ready for frame scanning.
type Tag struct {
	// Version is the major version byte from the tag header.
	Version uint8

	body      []byte
	frameSize sizeEncoding
}

// ReadTag reads the ID3v2 tag at the start of r. ok is false when r
// does not begin with one; many valid media files simply carry no tag,
// so absence is a normal outcome rather than an error. A body shorter
// than the declared tag size is kept as-is.
func ReadTag(r io.Reader) (t *Tag, ok bool) {
	var hdr [headerLen]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, false
	}
	if !bytes.Equal(hdr[:3], tagMagic) {
		return nil, false
	}
	version := hdr[3]

	// The tag size at offsets 6-9 is syncsafe in every version and
	// excludes the header itself.
	size := sizeSyncsafe.decode(hdr[6:10])
	body, _ := io.ReadAll(io.LimitReader(r, int64(size)))

	frameSize := sizeBigEndian
	if version == 4 {
		frameSize = sizeSyncsafe
	}

	return &Tag{Version: version, body: body, frameSize: frameSize}, true
}

// ExtractCover reads the ID3v2 tag at the start of r, if any, and
// returns its first decodable attached picture.
func ExtractCover(r io.Reader) (Picture, bool) {
	t, ok := ReadTag(r)
	if !ok {
		return Picture{}, false
	}
	return t.Picture()
}
