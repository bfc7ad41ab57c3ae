// Package jpeg locates the metadata blocks embedded in a JPEG byte stream.
package jpeg

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/fedragon/jpeg-metadata/bytereader"
)

const (
	MarkerPrefix = 0xFF
	MarkerSOI    = 0xD8
	MarkerAPP1   = 0xE1
	MarkerAPP13  = 0xED
	MarkerSOS    = 0xDA
	MarkerEOI    = 0xD9
)

var (
	// ErrNotAJpeg means the buffer does not start with the Start-Of-Image marker.
	ErrNotAJpeg = errors.New("not a valid jpeg")
	// ErrMalformedMarker means a byte expected to start a marker segment is not 0xFF.
	ErrMalformedMarker = errors.New("not a valid marker")

	ErrNoExif = errors.New("no exif segment")
	ErrNoIPTC = errors.New("no iptc block")
	ErrNoXMP  = errors.New("no xmp packet")
)

// iptcSignature is a Photoshop "8BIM" resource of type 0x0404 (IPTC-NAA record).
var iptcSignature = []byte{0x38, 0x42, 0x49, 0x4D, 0x04, 0x04}

// xmpAnchor is looked for anywhere in the buffer: it starts the namespace URI that opens an XMP APP1 payload.
var xmpAnchor = []byte("http")

// Segment is a byte range of the buffer holding one metadata block.
// Marker is the JPEG marker of the enclosing segment when it is known, zero otherwise.
type Segment struct {
	Marker byte
	Start  int
	Length int
}

// End returns the offset right after the segment.
func (s Segment) End() int {
	return s.Start + s.Length
}

// CheckSOI verifies that the buffer starts with FF D8.
func CheckSOI(r *bytereader.Reader) error {
	soi, err := r.Bytes(0, 2)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotAJpeg, err)
	}
	if soi[0] != MarkerPrefix || soi[1] != MarkerSOI {
		return fmt.Errorf("%w: starts with 0x%02X%02X", ErrNotAJpeg, soi[0], soi[1])
	}
	return nil
}

// FindExif walks the marker segments after SOI and returns the payload of the first APP1 segment.
// The payload is not checked for the "Exif" signature.
func FindExif(r *bytereader.Reader) (Segment, error) {
	if err := CheckSOI(r); err != nil {
		return Segment{}, err
	}

	offset := 2
	for offset < r.Len() {
		prefix, err := r.Uint8(offset)
		if err != nil {
			return Segment{}, err
		}
		if prefix != MarkerPrefix {
			return Segment{}, fmt.Errorf("%w: 0x%02X at offset %d", ErrMalformedMarker, prefix, offset)
		}

		marker, err := r.Uint8(offset + 1)
		if err != nil {
			return Segment{}, fmt.Errorf("%w: %w", ErrMalformedMarker, err)
		}
		// application segments all come before the image data
		if marker == MarkerSOS || marker == MarkerEOI {
			break
		}

		length, err := r.Uint16(binary.BigEndian, offset+2)
		if err != nil {
			return Segment{}, fmt.Errorf("%w: %w", ErrMalformedMarker, err)
		}

		if marker == MarkerAPP1 {
			if length < 2 {
				return Segment{}, fmt.Errorf("%w: APP1 length %d at offset %d", ErrMalformedMarker, length, offset)
			}
			return Segment{Marker: marker, Start: offset + 4, Length: int(length) - 2}, nil
		}

		offset += 2 + int(length)
	}

	return Segment{}, ErrNoExif
}

// FindIPTC searches the buffer byte by byte for an 8BIM IPTC resource and returns its data.
func FindIPTC(r *bytereader.Reader) (Segment, error) {
	if err := CheckSOI(r); err != nil {
		return Segment{}, err
	}

	offset := indexFrom(r, 2, iptcSignature)
	if offset < 0 {
		return Segment{}, ErrNoIPTC
	}

	// the resource name is a Pascal string padded to an even length; old Photoshop versions always use 4 bytes
	nameLength, err := r.Uint8(offset + 7)
	if err != nil {
		return Segment{}, fmt.Errorf("reading 8BIM name length: %w", err)
	}
	padded := int(nameLength)
	if padded%2 != 0 {
		padded++
	}
	if padded == 0 {
		padded = 4
	}

	sectionLength, err := r.Uint16(binary.BigEndian, offset+6+padded)
	if err != nil {
		return Segment{}, fmt.Errorf("reading 8BIM section length: %w", err)
	}

	return Segment{Start: offset + 8 + padded, Length: int(sectionLength)}, nil
}

// FindXMP looks for the first "http" in the buffer and returns the window of the APP1 payload it belongs to,
// assuming the two bytes before it are the segment length.
// Only the first match is considered.
func FindXMP(r *bytereader.Reader) (Segment, error) {
	if err := CheckSOI(r); err != nil {
		return Segment{}, err
	}

	offset := indexFrom(r, 2, xmpAnchor)
	if offset < 0 || offset >= r.Len()-len(xmpAnchor) {
		return Segment{}, ErrNoXMP
	}

	length, err := r.Uint16(binary.BigEndian, offset-2)
	if err != nil {
		return Segment{}, fmt.Errorf("reading xmp segment length: %w", err)
	}

	seg := Segment{Start: offset - 1, Length: int(length) - 1}
	if marker, err := r.Uint8(offset - 3); err == nil {
		if prefix, err := r.Uint8(offset - 4); err == nil && prefix == MarkerPrefix {
			seg.Marker = marker
		}
	}

	return seg, nil
}

// indexFrom returns the offset of the first occurrence of sep at or after from, or -1.
func indexFrom(r *bytereader.Reader, from int, sep []byte) int {
	if from > r.Len() {
		return -1
	}
	tail, err := r.Bytes(from, r.Len()-from)
	if err != nil {
		return -1
	}
	i := bytes.Index(tail, sep)
	if i < 0 {
		return -1
	}
	return from + i
}
