package tiff

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fedragon/jpeg-metadata/bytereader"
	"github.com/fedragon/jpeg-metadata/tiff/entry"
)

// Kind tells which field of a Value is set.
type Kind uint8

const (
	// KindNone is the value of an entry with an unknown data type, or whose data could not be read.
	KindNone Kind = iota
	KindInt
	KindInts
	KindText
	KindRational
	KindRationals
	KindFloat
	KindFloats
	KindThumbnail
)

// Rational is an unsigned TIFF rational. Numerator and denominator are kept so that callers can use the exact fraction.
type Rational struct {
	Num uint32
	Den uint32
}

// Float returns the quotient. A zero denominator yields +Inf or NaN.
func (r Rational) Float() float64 {
	return float64(r.Num) / float64(r.Den)
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// Value is a decoded IFD entry.
type Value struct {
	Kind      Kind
	Int       int64
	Ints      []int64
	Text      string
	Rational  Rational
	Rationals []Rational
	Float     float64
	Floats    []float64
	Thumbnail *Thumbnail
}

// Tags maps tag names to decoded values.
type Tags map[string]Value

// Int returns the value of a tag decoded as a single integer.
func (t Tags) Int(name string) (int64, bool) {
	v, ok := t[name]
	if !ok || v.Kind != KindInt {
		return 0, false
	}
	return v.Int, true
}

// Text returns the value of a tag decoded (or translated) as text.
func (t Tags) Text(name string) (string, bool) {
	v, ok := t[name]
	if !ok || v.Kind != KindText {
		return "", false
	}
	return v.Text, true
}

// Thumbnail returns the nested thumbnail entry, or nil if there is none.
func (t Tags) Thumbnail() *Thumbnail {
	v, ok := t["thumbnail"]
	if !ok || v.Kind != KindThumbnail {
		return nil
	}
	return v.Thumbnail
}

type rationalJSON struct {
	Numerator   uint32   `json:"numerator"`
	Denominator uint32   `json:"denominator"`
	Value       *float64 `json:"value"`
}

func finite(f float64) *float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return &f
}

func (r Rational) MarshalJSON() ([]byte, error) {
	return json.Marshal(rationalJSON{Numerator: r.Num, Denominator: r.Den, Value: finite(r.Float())})
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindInt:
		return json.Marshal(v.Int)
	case KindInts:
		return json.Marshal(v.Ints)
	case KindText:
		return json.Marshal(v.Text)
	case KindRational:
		return json.Marshal(v.Rational)
	case KindRationals:
		return json.Marshal(v.Rationals)
	case KindFloat:
		return json.Marshal(finite(v.Float))
	case KindFloats:
		floats := make([]*float64, len(v.Floats))
		for i, f := range v.Floats {
			floats[i] = finite(f)
		}
		return json.Marshal(floats)
	case KindThumbnail:
		return json.Marshal(v.Thumbnail)
	}
	return []byte("null"), nil
}

func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindInts:
		return joinValues(v.Ints, func(i int64) string { return strconv.FormatInt(i, 10) })
	case KindText:
		return v.Text
	case KindRational:
		return v.Rational.String()
	case KindRationals:
		return joinValues(v.Rationals, Rational.String)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindFloats:
		return joinValues(v.Floats, func(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) })
	case KindThumbnail:
		if v.Thumbnail == nil || v.Thumbnail.Format == "" {
			return "none"
		}
		return string(v.Thumbnail.Format)
	}
	return ""
}

func joinValues[T any](values []T, format func(T) string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = format(v)
	}
	return strings.Join(parts, ", ")
}

// readEntry reads the 12-byte directory entry at offset.
func readEntry(r *bytereader.Reader, order binary.ByteOrder, offset int) (entry.Entry, error) {
	raw, err := r.Bytes(offset, entry.Size)
	if err != nil {
		return entry.Entry{}, err
	}
	return entry.Entry{
		ID:       entry.ID(order.Uint16(raw[0:2])),
		DataType: entry.DataType(order.Uint16(raw[2:4])),
		Count:    order.Uint32(raw[4:8]),
		RawValue: order.Uint32(raw[8:12]),
	}, nil
}

// DecodeValue decodes the directory entry at entryOffset. Offsets stored in the entry are relative to tiffStart.
// An unknown data type yields a KindNone value and no error.
func DecodeValue(r *bytereader.Reader, order binary.ByteOrder, entryOffset, tiffStart int) (Value, error) {
	e, err := readEntry(r, order, entryOffset)
	if err != nil {
		return Value{}, err
	}
	return decode(r, order, e, entryOffset+8, tiffStart)
}

// decode reads the value of e, either from its value cell or from the offset the cell holds.
func decode(r *bytereader.Reader, order binary.ByteOrder, e entry.Entry, cell, tiffStart int) (Value, error) {
	location := cell
	if !e.Inline() {
		location = tiffStart + int(e.RawValue)
	}

	// the size is checked before any int conversion so that a huge count cannot wrap
	if size := uint64(e.DataType.Width()) * uint64(e.Count); size > uint64(r.Len()) {
		return Value{}, &bytereader.OutOfBoundsError{
			Offset: location,
			Width:  int(min(size, math.MaxInt)),
			Len:    r.Len(),
		}
	}
	count := int(e.Count)

	switch e.DataType {
	case entry.DataType_UByte, entry.DataType_UByte_Sequence:
		if count == 1 {
			v, err := r.Uint8(cell)
			if err != nil {
				return Value{}, err
			}
			return Value{Kind: KindInt, Int: int64(v)}, nil
		}
		raw, err := r.Bytes(location, count)
		if err != nil {
			return Value{}, err
		}
		ints := make([]int64, count)
		for i, b := range raw {
			ints[i] = int64(b)
		}
		return Value{Kind: KindInts, Ints: ints}, nil

	case entry.DataType_String:
		// count includes the NUL terminator
		n := max(count-1, 0)
		s, err := r.Latin1(location, n)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindText, Text: s}, nil

	case entry.DataType_UShort:
		if count == 1 {
			v, err := r.Uint16(order, cell)
			if err != nil {
				return Value{}, err
			}
			return Value{Kind: KindInt, Int: int64(v)}, nil
		}
		raw, err := r.Bytes(location, 2*count)
		if err != nil {
			return Value{}, err
		}
		ints := make([]int64, count)
		for i := range ints {
			ints[i] = int64(order.Uint16(raw[2*i:]))
		}
		return Value{Kind: KindInts, Ints: ints}, nil

	case entry.DataType_ULong, entry.DataType_Long:
		signed := e.DataType == entry.DataType_Long
		if count == 1 {
			v, err := r.Uint32(order, cell)
			if err != nil {
				return Value{}, err
			}
			return Value{Kind: KindInt, Int: long(v, signed)}, nil
		}
		raw, err := r.Bytes(location, 4*count)
		if err != nil {
			return Value{}, err
		}
		ints := make([]int64, count)
		for i := range ints {
			ints[i] = long(order.Uint32(raw[4*i:]), signed)
		}
		return Value{Kind: KindInts, Ints: ints}, nil

	case entry.DataType_URational:
		raw, err := r.Bytes(location, 8*count)
		if err != nil {
			return Value{}, err
		}
		rats := make([]Rational, count)
		for i := range rats {
			rats[i] = Rational{Num: order.Uint32(raw[8*i:]), Den: order.Uint32(raw[8*i+4:])}
		}
		if count == 1 {
			return Value{Kind: KindRational, Rational: rats[0]}, nil
		}
		return Value{Kind: KindRationals, Rationals: rats}, nil

	case entry.DataType_Rational:
		raw, err := r.Bytes(location, 8*count)
		if err != nil {
			return Value{}, err
		}
		floats := make([]float64, count)
		for i := range floats {
			num := int32(order.Uint32(raw[8*i:]))
			den := int32(order.Uint32(raw[8*i+4:]))
			floats[i] = float64(num) / float64(den)
		}
		if count == 1 {
			return Value{Kind: KindFloat, Float: floats[0]}, nil
		}
		return Value{Kind: KindFloats, Floats: floats}, nil
	}

	return Value{}, nil
}

func long(v uint32, signed bool) int64 {
	if signed {
		return int64(int32(v))
	}
	return int64(v)
}
