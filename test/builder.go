// Package test builds synthetic byte fixtures (TIFF directories, JPEG segments, 8BIM and XMP blocks) for tests.
package test

import (
	"encoding/binary"
)

// Endianness is a byte order that can also append values.
type Endianness interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Builder appends values to a buffer in a fixed byte order.
type Builder struct {
	byteOrder Endianness
	buffer    []byte
}

func NewBuilder(order Endianness) *Builder {
	return &Builder{
		byteOrder: order,
		buffer:    make([]byte, 0),
	}
}

func (b *Builder) WithString(value string) *Builder {
	b.buffer = append(b.buffer, []byte(value)...)

	return b
}

func (b *Builder) WithBytes(values ...byte) *Builder {
	b.buffer = append(b.buffer, values...)

	return b
}

func (b *Builder) WithUints16(values ...uint16) *Builder {
	for _, value := range values {
		b.buffer = b.byteOrder.AppendUint16(b.buffer, value)
	}

	return b
}

func (b *Builder) WithUints32(values ...uint32) *Builder {
	for _, value := range values {
		b.buffer = b.byteOrder.AppendUint32(b.buffer, value)
	}

	return b
}

// WithZeros pads the buffer until it is n bytes long.
func (b *Builder) WithZeros(n int) *Builder {
	for len(b.buffer) < n {
		b.buffer = append(b.buffer, 0)
	}

	return b
}

func (b *Builder) Len() int {
	return len(b.buffer)
}

func (b *Builder) Bytes() []byte {
	return b.buffer
}

// Field is one IFD entry. When Data is set it is stored after the directory and
// the entry points to it; otherwise Value is stored inline.
type Field struct {
	ID    uint16
	Type  uint16
	Count uint32
	Value uint32
	Data  []byte
}

// Short returns an inline SHORT field holding a single value, left-justified in the value cell.
func Short(order binary.ByteOrder, id, value uint16) Field {
	cell := make([]byte, 4)
	order.PutUint16(cell, value)
	return Field{ID: id, Type: 3, Count: 1, Value: order.Uint32(cell)}
}

// Long returns an inline LONG field holding a single value.
func Long(id uint16, value uint32) Field {
	return Field{ID: id, Type: 4, Count: 1, Value: value}
}

// Inline returns a field whose value cell holds the given bytes verbatim.
func Inline(order binary.ByteOrder, id, typ uint16, count uint32, cell ...byte) Field {
	padded := make([]byte, 4)
	copy(padded, cell)
	return Field{ID: id, Type: typ, Count: count, Value: order.Uint32(padded)}
}

// ASCII returns a field holding s plus its NUL terminator, inline when it fits.
func ASCII(order binary.ByteOrder, id uint16, s string) Field {
	data := append([]byte(s), 0)
	if len(data) <= 4 {
		return Inline(order, id, 2, uint32(len(data)), data...)
	}
	return Field{ID: id, Type: 2, Count: uint32(len(data)), Data: data}
}

// Rationals returns a RATIONAL (or SRATIONAL when signed) field for numerator/denominator pairs.
func Rationals(order Endianness, id uint16, signed bool, pairs ...uint32) Field {
	data := make([]byte, 0, 4*len(pairs))
	for _, v := range pairs {
		data = order.AppendUint32(data, v)
	}
	typ := uint16(5)
	if signed {
		typ = 10
	}
	return Field{ID: id, Type: typ, Count: uint32(len(pairs) / 2), Data: data}
}

// WithDirectory writes an IFD at the current position, relative to a TIFF header
// starting at tiffStart in the same buffer. Out-of-line data follows the directory.
func (b *Builder) WithDirectory(tiffStart int, next uint32, fields ...Field) *Builder {
	dirStart := len(b.buffer)
	dataStart := dirStart + 2 + 12*len(fields) + 4

	var data []byte
	b.WithUints16(uint16(len(fields)))
	for _, f := range fields {
		value := f.Value
		if f.Data != nil {
			value = uint32(dataStart + len(data) - tiffStart)
			data = append(data, f.Data...)
			if len(data)%2 == 1 {
				data = append(data, 0)
			}
		}
		b.WithUints16(f.ID, f.Type).WithUints32(f.Count, value)
	}
	b.WithUints32(next)
	b.buffer = append(b.buffer, data...)

	return b
}

// DirectorySize returns the number of bytes WithDirectory writes for fields.
func DirectorySize(fields ...Field) int {
	size := 2 + 12*len(fields) + 4
	for _, f := range fields {
		size += len(f.Data) + len(f.Data)%2
	}
	return size
}

// TIFFHeader writes "II" or "MM", the magic number and the first IFD offset.
func (b *Builder) TIFFHeader(firstIFD uint32) *Builder {
	if b.byteOrder.String() == binary.BigEndian.String() {
		b.WithString("MM")
	} else {
		b.WithString("II")
	}

	return b.WithUints16(0x002A).WithUints32(firstIFD)
}

// JPEG returns a JPEG byte stream made of SOI, the given segments and EOI.
func JPEG(segments ...[]byte) []byte {
	out := []byte{0xFF, 0xD8}
	for _, s := range segments {
		out = append(out, s...)
	}
	return append(out, 0xFF, 0xD9)
}

// Segment wraps payload into a marker segment whose length includes the length field.
func Segment(marker byte, payload []byte) []byte {
	length := len(payload) + 2
	out := []byte{0xFF, marker, byte(length >> 8), byte(length)}
	return append(out, payload...)
}

// ExifPayload returns "Exif\0\0" followed by a TIFF stream.
func ExifPayload(tiff []byte) []byte {
	return append([]byte("Exif\x00\x00"), tiff...)
}

// IPTCRecord encodes a single IPTC dataset of record 2.
func IPTCRecord(dataset byte, value string) []byte {
	n := len(value)
	out := []byte{0x1C, 0x02, dataset, byte(n >> 8), byte(n)}
	return append(out, value...)
}

// Photoshop returns a Photoshop 3.0 APP13 payload with an empty-named 0x0404 resource holding records.
func Photoshop(records ...[]byte) []byte {
	var data []byte
	for _, r := range records {
		data = append(data, r...)
	}
	out := []byte("Photoshop 3.0\x00")
	out = append(out, "8BIM"...)
	out = append(out, 0x04, 0x04, 0x00, 0x00)
	n := len(data)
	out = append(out, byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
	out = append(out, data...)
	if n%2 == 1 {
		out = append(out, 0)
	}
	return out
}

// XMPPayload returns the APP1 payload of an XMP packet.
func XMPPayload(packet string) []byte {
	return append([]byte("http://ns.adobe.com/xap/1.0/\x00"), packet...)
}
