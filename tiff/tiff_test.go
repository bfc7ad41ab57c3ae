package tiff

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedragon/jpeg-metadata/bytereader"
	"github.com/fedragon/jpeg-metadata/test"
)

func TestParseEndianness(t *testing.T) {
	testCases := []struct {
		name  string
		input []byte
		order binary.ByteOrder
		err   bool
	}{
		{
			name:  "IntelByteOrder",
			input: []byte{0x49, 0x49},
			order: binary.LittleEndian,
			err:   false,
		},
		{
			name:  "MotorolaByteOrder",
			input: []byte{0x4D, 0x4D},
			order: binary.BigEndian,
			err:   false,
		},
		{
			name:  "UnknownByteOrder",
			input: []byte{0x34, 0x4D},
			order: nil,
			err:   true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			order, err := readEndianness(tc.input)
			if tc.err {
				assert.ErrorIs(t, err, ErrInvalidHeader)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.order, order)
		})
	}
}

func Test_ParseMagicNumber(t *testing.T) {
	testCases := []struct {
		name      string
		byteOrder binary.ByteOrder
		input     []byte
		err       bool
	}{
		{
			name:      "TiffMagicNumberBigEndian",
			byteOrder: binary.BigEndian,
			input:     []byte{0x00, 0x2A},
			err:       false,
		},
		{
			name:      "TiffMagicNumberLittleEndian",
			byteOrder: binary.LittleEndian,
			input:     []byte{0x2A, 0x00},
			err:       false,
		},
		{
			name:      "SwappedMagicNumber",
			byteOrder: binary.BigEndian,
			input:     []byte{0x2A, 0x00},
			err:       true,
		},
		{
			name:      "OrfMagicNumber",
			byteOrder: binary.BigEndian,
			input:     []byte{0x4F, 0x52},
			err:       true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateMagicNumber(tc.byteOrder, tc.input)
			if tc.err {
				assert.ErrorIs(t, err, ErrInvalidHeader)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseHeader(t *testing.T) {
	testCases := []struct {
		name  string
		input []byte
		want  Header
		err   bool
	}{
		{
			name:  "LittleEndian",
			input: test.NewBuilder(binary.LittleEndian).TIFFHeader(8).Bytes(),
			want:  Header{Order: binary.LittleEndian, FirstIFD: 8},
		},
		{
			name:  "BigEndian",
			input: test.NewBuilder(binary.BigEndian).TIFFHeader(16).Bytes(),
			want:  Header{Order: binary.BigEndian, FirstIFD: 16},
		},
		{
			name:  "FirstIFDInsideHeader",
			input: test.NewBuilder(binary.LittleEndian).TIFFHeader(4).Bytes(),
			err:   true,
		},
		{
			name:  "Truncated",
			input: []byte{0x49, 0x49, 0x2A, 0x00, 0x08},
			err:   true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, err := ParseHeader(bytereader.New(tc.input), 0)
			if tc.err {
				assert.ErrorIs(t, err, ErrInvalidHeader)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, h)
		})
	}
}

// buildExif returns "Exif\0\0" followed by a TIFF stream with IFD0, an Exif sub-IFD and a GPS sub-IFD.
func buildExif(order test.Endianness) []byte {
	const tiffStart = 6

	ifd0 := []test.Field{
		test.Short(order, 0x0112, 6),
		test.ASCII(order, 0x010f, "Canon"),
		test.Long(0x8769, 0),
		test.Long(0x8825, 0),
		test.Short(order, 0xbeef, 1),
	}
	exif := []test.Field{
		test.Rationals(order, 0x829a, false, 1, 250),
		test.Short(order, 0x9209, 0x0019),
		test.Inline(order, 0x9000, 7, 4, '0', '2', '3', '0'),
		test.Inline(order, 0x9101, 7, 4, 1, 2, 3, 0),
		test.Short(order, 0x8822, 42),
		test.Rationals(order, 0x9204, true, 0xFFFFFFFF, 3),
	}
	gps := []test.Field{
		test.Inline(order, 0x0000, 1, 4, 2, 3, 0, 0),
		test.ASCII(order, 0x0001, "N"),
	}

	exifAt := HeaderSize + test.DirectorySize(ifd0...)
	gpsAt := exifAt + test.DirectorySize(exif...)
	ifd0[2] = test.Long(0x8769, uint32(exifAt))
	ifd0[3] = test.Long(0x8825, uint32(gpsAt))

	return test.NewBuilder(order).
		WithString("Exif\x00\x00").
		TIFFHeader(HeaderSize).
		WithDirectory(tiffStart, 0, ifd0...).
		WithDirectory(tiffStart, 0, exif...).
		WithDirectory(tiffStart, 0, gps...).
		Bytes()
}

func TestDecodeExif(t *testing.T) {
	for _, order := range []test.Endianness{binary.LittleEndian, binary.BigEndian} {
		t.Run(order.String(), func(t *testing.T) {
			tags, err := DecodeExif(bytereader.New(buildExif(order)), 0, nil)
			require.NoError(t, err)

			orientation, ok := tags.Int("Orientation")
			assert.True(t, ok)
			assert.EqualValues(t, 6, orientation)

			make_, ok := tags.Text("Make")
			assert.True(t, ok)
			assert.Equal(t, "Canon", make_)

			exposure := tags["ExposureTime"]
			assert.Equal(t, KindRational, exposure.Kind)
			assert.Equal(t, Rational{Num: 1, Den: 250}, exposure.Rational)
			assert.Equal(t, 0.004, exposure.Rational.Float())

			bias := tags["ExposureBias"]
			assert.Equal(t, KindFloat, bias.Kind)
			assert.InDelta(t, -1.0/3, bias.Float, 1e-9)

			for name, want := range map[string]string{
				"Flash":                   "Flash fired, auto mode",
				"ExifVersion":             "0230",
				"ComponentsConfiguration": "YCbCr",
				"GPSVersionID":            "2.3.0.0",
				"GPSLatitudeRef":          "N",
			} {
				got, ok := tags.Text(name)
				assert.True(t, ok, name)
				assert.Equal(t, want, got, name)
			}

			program, ok := tags.Int("ExposureProgram")
			assert.True(t, ok, "unknown codes pass through")
			assert.EqualValues(t, 42, program)

			assert.Contains(t, tags, "ExifIFDPointer")
			assert.Len(t, tags, 13, "unknown tag 0xbeef is dropped, thumbnail is added")

			thumb := tags.Thumbnail()
			require.NotNil(t, thumb)
			assert.Empty(t, thumb.Data)
			assert.Empty(t, thumb.Tags)
		})
	}
}

func TestDecodeExif_InvalidHeader(t *testing.T) {
	testCases := []struct {
		name  string
		input []byte
	}{
		{
			name:  "NotExif",
			input: append([]byte("http://ns.adobe.com/xap/1.0/\x00"), make([]byte, 16)...),
		},
		{
			name:  "UnknownByteOrder",
			input: append([]byte("Exif\x00\x00XX"), make([]byte, 16)...),
		},
		{
			name:  "BadMagic",
			input: append([]byte("Exif\x00\x00II\x2B\x00\x08\x00\x00\x00"), make([]byte, 16)...),
		},
		{
			name:  "Truncated",
			input: []byte("Exi"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tags, err := DecodeExif(bytereader.New(tc.input), 0, nil)
			assert.ErrorIs(t, err, ErrInvalidHeader)
			assert.Empty(t, tags)
		})
	}
}

func TestDecodeExif_CorruptSubDirectory(t *testing.T) {
	order := binary.LittleEndian
	data := test.NewBuilder(order).
		WithString("Exif\x00\x00").
		TIFFHeader(HeaderSize).
		WithDirectory(6, 0, test.Short(order, 0x0112, 3), test.Long(0x8769, 0xFFFF)).
		Bytes()

	tags, err := DecodeExif(bytereader.New(data), 0, nil)
	assert.ErrorIs(t, err, ErrCorruptDirectory)

	orientation, ok := tags.Int("Orientation")
	assert.True(t, ok, "IFD0 survives a corrupt sub-IFD")
	assert.EqualValues(t, 3, orientation)
	assert.NotNil(t, tags.Thumbnail())
}
