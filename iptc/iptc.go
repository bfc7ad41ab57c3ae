// Package iptc decodes the IPTC-NAA application record (record 2) carried in a Photoshop 8BIM resource.
package iptc

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fedragon/jpeg-metadata/bytereader"
	"github.com/fedragon/jpeg-metadata/jpeg"
)

const (
	TagMarker         = 0x1C
	ApplicationRecord = 0x02
)

// FieldNames maps the dataset numbers of record 2 that are decoded to their field name.
var FieldNames = map[byte]string{
	0x78: "caption",
	0x6E: "credit",
	0x19: "keywords",
	0x37: "dateCreated",
	0x50: "byline",
	0x55: "bylineTitle",
	0x7A: "captionWriter",
	0x69: "headline",
	0x74: "copyright",
	0x0F: "category",
}

// Field holds the values of a dataset, in the order they were found.
// A field seen once is a scalar, a repeated one is multi-valued.
type Field struct {
	Values []string
}

// Multi tells whether the field was found more than once.
func (f Field) Multi() bool {
	return len(f.Values) > 1
}

func (f Field) String() string {
	if f.Multi() {
		return strings.Join(f.Values, ", ")
	}
	if len(f.Values) == 1 {
		return f.Values[0]
	}
	return ""
}

func (f Field) MarshalJSON() ([]byte, error) {
	if f.Multi() {
		return json.Marshal(f.Values)
	}
	return json.Marshal(f.String())
}

// Fields maps field names to their values.
type Fields map[string]Field

// Add appends value to the field called name, promoting it to multi-valued on its second occurrence.
func (f Fields) Add(name, value string) {
	field := f[name]
	field.Values = append(field.Values, value)
	f[name] = field
}

// Decode scans seg byte by byte for datasets of record 2.
// Scanning is not aligned on dataset boundaries, so bytes inside a value may be matched too.
// A dataset that runs past the buffer stops the scan: the fields decoded so far are returned with the error.
func Decode(r *bytereader.Reader, seg jpeg.Segment) (Fields, error) {
	fields := make(Fields)

	end := min(seg.End(), r.Len())
	for pos := max(seg.Start, 0); pos < end; pos++ {
		marker, err := r.Bytes(pos, 2)
		if err != nil {
			break
		}
		if marker[0] != TagMarker || marker[1] != ApplicationRecord {
			continue
		}

		dataset, err := r.Uint8(pos + 2)
		if err != nil {
			return fields, fmt.Errorf("reading dataset at offset %d: %w", pos, err)
		}
		name, ok := FieldNames[dataset]
		if !ok {
			continue
		}

		size, err := r.Int16(binary.BigEndian, pos+3)
		if err != nil {
			return fields, fmt.Errorf("reading %s size at offset %d: %w", name, pos, err)
		}

		var value string
		if size > 0 {
			value, err = r.Latin1(pos+5, int(size))
			if err != nil {
				return fields, fmt.Errorf("reading %s at offset %d: %w", name, pos, err)
			}
		}
		fields.Add(name, value)
	}

	return fields, nil
}
