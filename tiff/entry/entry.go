package entry

import (
	"fmt"
)

type ID uint16
type DataType uint16

const (
	// Size of an IFD entry, in bytes
	Size = 12
	// InlineSize is the size of the value cell: larger values are stored elsewhere and the cell holds their offset
	InlineSize = 4

	// IFD #0

	ImageWidth                ID = 0x0100
	ImageHeight               ID = 0x0101
	Compression               ID = 0x0103
	PhotometricInterpretation ID = 0x0106
	Make                      ID = 0x010f
	Model                     ID = 0x0110
	Orientation               ID = 0x0112
	ExifIFDPointer            ID = 0x8769
	GPSInfoIFDPointer         ID = 0x8825

	// Exif sub-IFD

	ExposureTime            ID = 0x829a
	FNumber                 ID = 0x829d
	ExifVersion             ID = 0x9000
	DateTimeOriginal        ID = 0x9003
	ComponentsConfiguration ID = 0x9101
	Flash                   ID = 0x9209
	FlashpixVersion         ID = 0xa000

	// GPSInfo sub-IFD

	GPSVersionID ID = 0x0000
	GPSLatitude  ID = 0x0002
	GPSLongitude ID = 0x0004

	// IFD #1

	ThumbnailOffset ID = 0x0201 // JpegIFOffset, aka JPEGInterchangeFormat
	ThumbnailLength ID = 0x0202 // JpegIFByteCount, aka JPEGInterchangeFormatLength
)

const (
	DataType_UByte DataType = iota + 1
	DataType_String
	DataType_UShort
	DataType_ULong
	DataType_URational
	DataType_Byte
	DataType_UByte_Sequence
	DataType_Short
	DataType_Long
	DataType_Rational
	DataType_Single_Precision_IEEE_Format
	DataType_Double_Precision_IEEE_Format
)

// Width returns the size in bytes of a single element of the data type, or 0 if the type is unknown.
func (dt DataType) Width() int {
	switch dt {
	case DataType_UByte, DataType_String, DataType_Byte, DataType_UByte_Sequence:
		return 1
	case DataType_UShort, DataType_Short:
		return 2
	case DataType_ULong, DataType_Long, DataType_Single_Precision_IEEE_Format:
		return 4
	case DataType_URational, DataType_Rational, DataType_Double_Precision_IEEE_Format:
		return 8
	}
	return 0
}

func (dt DataType) String() string {
	switch dt {
	case DataType_UByte:
		return "unsigned byte"
	case DataType_String:
		return "string"
	case DataType_UShort:
		return "unsigned short 16bits"
	case DataType_ULong:
		return "unsigned long 32bits"
	case DataType_URational:
		return "unsigned rational"
	case DataType_Byte:
		return "signed byte"
	case DataType_UByte_Sequence:
		return "undefined byte sequence"
	case DataType_Short:
		return "signed short 16bits"
	case DataType_Long:
		return "signed long 32bits"
	case DataType_Rational:
		return "signed rational"
	case DataType_Single_Precision_IEEE_Format:
		return "single precision IEEE format"
	case DataType_Double_Precision_IEEE_Format:
		return "double precision IEEE format"
	}
	return "UNKNOWN"
}

// Entry represents an IFD entry
type Entry struct {
	ID       ID
	DataType DataType
	Count    uint32
	RawValue uint32 // value of the entry or offset to read the value from, depending on DataType and Count
}

// Inline reports whether the whole value fits in the entry's value cell.
func (e Entry) Inline() bool {
	return uint64(e.DataType.Width())*uint64(e.Count) <= InlineSize
}

func (e Entry) String() string {
	return fmt.Sprintf("ID: 0x%X\nDataType: %s\nCount: %d\n", e.ID, e.DataType, e.Count)
}
