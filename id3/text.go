// Copyright 2025 The applymeta authors
// SPDX-License-Identifier: MIT

package id3

import (
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Text encoding markers, ID3v2.4 section 4.
const (
	encLatin1  = 0
	encUTF16   = 1 // UTF-16 with BOM
	encUTF16BE = 2
	encUTF8    = 3
)

// terminatorWidth returns the byte width of the string terminator for
// an encoding marker. Unknown markers fall through to single-byte
// termination to stay maximally permissive.
func terminatorWidth(enc byte) int {
	if enc == encUTF16 || enc == encUTF16BE {
		return 2
	}
	return 1
}

func decodeLatin1(b []byte) string {
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}

// decodeText decodes a frame string according to its encoding marker.
// Fresh decoders are built per call; x/text transformers carry state
// and must not be shared across concurrent extractions.
func decodeText(b []byte, enc byte) string {
	if len(b) == 0 {
		return ""
	}
	switch enc {
	case encUTF16:
		s, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder().Bytes(b)
		if err != nil {
			return string(b)
		}
		return string(s)
	case encUTF16BE:
		s, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder().Bytes(b)
		if err != nil {
			return string(b)
		}
		return string(s)
	case encUTF8:
		return string(b)
	default:
		return decodeLatin1(b)
	}
}
