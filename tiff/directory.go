package tiff

import (
	"encoding/binary"

	"github.com/fedragon/jpeg-metadata/bytereader"
	"github.com/fedragon/jpeg-metadata/tiff/entry"
)

// ReadDirectory decodes every entry of the IFD at dirStart whose ID is named in table.
// Entries with no mapping are dropped. Values that cannot be read are kept as KindNone;
// an entry that cannot be read at all makes the whole directory corrupt.
func ReadDirectory(r *bytereader.Reader, order binary.ByteOrder, tiffStart, dirStart int, table TagTable) (Tags, error) {
	numEntries, err := r.Uint16(order, dirStart)
	if err != nil {
		return nil, corruptDirectory(dirStart, err)
	}

	tags := make(Tags, numEntries)
	for i := 0; i < int(numEntries); i++ {
		offset := dirStart + 2 + i*entry.Size
		e, err := readEntry(r, order, offset)
		if err != nil {
			return nil, corruptDirectory(dirStart, err)
		}

		name, ok := table[e.ID]
		if !ok {
			continue
		}

		value, err := decode(r, order, e, offset+8, tiffStart)
		if err != nil {
			value = Value{}
		}
		tags[name] = value
	}

	return tags, nil
}

// NextDirectory returns the offset, relative to the TIFF start, of the IFD chained after the one at dirStart.
// Zero means there is none.
func NextDirectory(r *bytereader.Reader, order binary.ByteOrder, dirStart int) (uint32, error) {
	numEntries, err := r.Uint16(order, dirStart)
	if err != nil {
		return 0, corruptDirectory(dirStart, err)
	}

	next, err := r.Uint32(order, dirStart+2+int(numEntries)*entry.Size)
	if err != nil {
		return 0, corruptDirectory(dirStart, err)
	}

	return next, nil
}
