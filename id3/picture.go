package id3

import "bytes"

// pictureFrameID identifies the attached-picture frame.
const pictureFrameID = "APIC"

var pngMagic = []byte("\x89PNG")

// Picture is a decoded attached-picture frame.
type Picture struct {
	// MIMEType is the type declared inside the frame. It is
	// informational only; Ext is derived from the image bytes instead,
	// since real-world tags routinely declare the wrong type.
	MIMEType string

	// PictureType is the picture-type code (0x03 is "front cover").
	PictureType byte

	Description string

	// Data holds the raw image bytes.
	Data []byte

	// Ext is ".png" when Data starts with the PNG signature and ".jpg"
	// otherwise. No further sniffing is performed.
	Ext string
}

// Picture returns the first decodable attached picture in the tag.
//
// Frames are scanned in order until the body runs out of room for a
// frame header or a null identifier byte marks the padding. A frame
// whose declared size overruns the body is clamped to what remains.
// An attached-picture frame that cannot be decoded is skipped; the
// scan keeps looking for another one.
func (t *Tag) Picture() (Picture, bool) {
	body := t.body
	for pos := 0; pos+headerLen <= len(body); {
		id := body[pos : pos+4]
		if id[0] == 0 {
			break
		}
		size := t.frameSize.decode(body[pos+4 : pos+8])

		start := pos + headerLen
		end := start + size
		if end > len(body) || end < start {
			end = len(body)
		}
		payload := body[start:end]

		if string(id) == pictureFrameID && len(payload) > 4 {
			if pic, ok := decodePicture(payload); ok {
				return pic, true
			}
		}

		pos += headerLen + size
	}
	return Picture{}, false
}

// decodePicture parses the internal layout of an APIC payload:
// encoding marker, null-terminated MIME string, picture-type byte,
// description, image bytes.
func decodePicture(payload []byte) (Picture, bool) {
	enc := payload[0]

	// The MIME string is always Latin-1 and runs to the first null.
	// Without a terminator the frame layout is unrecoverable.
	rel := bytes.IndexByte(payload[1:], 0)
	if rel < 0 {
		return Picture{}, false
	}
	mimeEnd := 1 + rel

	typePos := mimeEnd + 1
	descStart := mimeEnd + 2

	width := terminatorWidth(enc)
	term, found := findTerminator(payload, descStart, width)
	if !found {
		// Presume the terminator at the description's start offset:
		// the description decodes as empty and the image follows one
		// terminator width later. Documented permissive fallback.
		term = descStart
	}
	imgStart := term + width

	var picType byte
	if typePos < len(payload) {
		picType = payload[typePos]
	}
	var desc []byte
	if term <= len(payload) && descStart <= term {
		desc = payload[descStart:term]
	}
	if imgStart >= len(payload) || len(payload)-imgStart < 4 {
		return Picture{}, false
	}
	img := payload[imgStart:]

	return Picture{
		MIMEType:    decodeLatin1(payload[1:mimeEnd]),
		PictureType: picType,
		Description: decodeText(desc, enc),
		Data:        img,
		Ext:         sniffExt(img),
	}, true
}

// findTerminator returns the offset of the first string terminator at
// or after start: a single zero byte for width 1, or a zero pair
// scanned at stride 2 for width 2. Pair alignment is relative to
// start, not to the payload. Returns (len(b), false) when no
// terminator exists.
func findTerminator(b []byte, start, width int) (int, bool) {
	if width == 2 {
		for i := start; i >= 0 && i+1 < len(b); i += 2 {
			if b[i] == 0 && b[i+1] == 0 {
				return i, true
			}
		}
		return len(b), false
	}
	for i := start; i >= 0 && i < len(b); i++ {
		if b[i] == 0 {
			return i, true
		}
	}
	return len(b), false
}

// sniffExt classifies the image by magic number. The declared MIME
// type is never consulted.
func sniffExt(b []byte) string {
	if bytes.HasPrefix(b, pngMagic) {
		return ".png"
	}
	return ".jpg"
}
