package tiff

import (
	"encoding/binary"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/fedragon/jpeg-metadata/bytereader"
)

// Header is a parsed TIFF header. Start is the absolute offset of the header in the buffer:
// every offset found in the TIFF stream is relative to it.
type Header struct {
	Order    binary.ByteOrder
	Start    int
	FirstIFD uint32
}

// subDirectories are the IFDs pointed to from IFD0 whose tags are merged into the result.
var subDirectories = []struct {
	pointer string
	group   Group
}{
	{pointer: "ExifIFDPointer", group: GroupExif},
	{pointer: "GPSInfoIFDPointer", group: GroupGPSInfo},
}

// DecodeExif decodes the EXIF block of an APP1 segment starting at start ("Exif\0\0" followed by a TIFF stream).
// It returns the tags of IFD0, the Exif and GPS sub-IFDs and the thumbnail, flattened into a single map.
//
// A corrupt sub-IFD or thumbnail does not prevent the rest from being returned: the returned
// error then combines every problem met, and the map is still usable.
func DecodeExif(r *bytereader.Reader, start int, logger *zap.Logger) (Tags, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	signature, err := r.Bytes(start, len(ExifSignature))
	if err != nil {
		return nil, invalidHeader("no room for signature: %v", err)
	}
	if string(signature) != ExifSignature {
		return nil, invalidHeader("unexpected signature %q", signature)
	}

	h, err := ParseHeader(r, start+ExifHeaderSize)
	if err != nil {
		return nil, err
	}

	tags, err := ReadDirectory(r, h.Order, h.Start, h.Start+int(h.FirstIFD), Tables[GroupIfd0])
	if err != nil {
		return nil, err
	}

	var errs error
	for _, sub := range subDirectories {
		pointer, ok := tags.Int(sub.pointer)
		if !ok || pointer == 0 {
			continue
		}

		subTags, err := ReadDirectory(r, h.Order, h.Start, h.Start+int(pointer), Tables[sub.group])
		if err != nil {
			logger.Warn("skipping sub-IFD", zap.Stringer("group", sub.group), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", sub.group, err))
			continue
		}

		Translate(subTags)
		for name, v := range subTags {
			tags[name] = v
		}
	}

	thumb, err := ReadThumbnail(r, h, logger)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", GroupIfd1, err))
	}
	if thumb == nil {
		thumb = &Thumbnail{}
	}
	tags["thumbnail"] = Value{Kind: KindThumbnail, Thumbnail: thumb}

	return tags, errs
}

// ParseHeader reads the TIFF header at tiffStart.
func ParseHeader(r *bytereader.Reader, tiffStart int) (Header, error) {
	header, err := r.Bytes(tiffStart, HeaderSize)
	if err != nil {
		return Header{}, invalidHeader("truncated tiff header: %v", err)
	}

	byteOrder, err := readEndianness(header[0:2])
	if err != nil {
		return Header{}, err
	}

	if err := validateMagicNumber(byteOrder, header[2:4]); err != nil {
		return Header{}, err
	}

	firstIFD := byteOrder.Uint32(header[4:8])
	if firstIFD < HeaderSize {
		return Header{}, invalidHeader("first IFD offset %d overlaps the header", firstIFD)
	}

	return Header{Order: byteOrder, Start: tiffStart, FirstIFD: firstIFD}, nil
}

// readEndianness reads and returns the endianness of the metadata.
func readEndianness(buffer []byte) (binary.ByteOrder, error) {
	// Note: the value of these 2 bytes is endianness-independent, so I can use any byte order to read them.
	value := binary.LittleEndian.Uint16(buffer)
	switch value {
	case IntelByteOrder:
		return binary.LittleEndian, nil
	case MotorolaByteOrder:
		return binary.BigEndian, nil
	default:
		return nil, invalidHeader("unknown endianness: 0x%X", value)
	}
}

// validateMagicNumber checks that the byte order mark is followed by the TIFF magic number
func validateMagicNumber(byteOrder binary.ByteOrder, buffer []byte) error {
	magicNumber := byteOrder.Uint16(buffer)
	if magicNumber != MagicNumber {
		return invalidHeader("unknown magic number: 0x%X", magicNumber)
	}
	return nil
}
