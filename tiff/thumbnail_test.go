package tiff

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fedragon/jpeg-metadata/bytereader"
	"github.com/fedragon/jpeg-metadata/test"
)

// buildThumbnail returns a TIFF stream whose IFD0 (at 8, one entry) links to an IFD1 at 26 holding ifd1.
// trailer is appended right after IFD1.
func buildThumbnail(order test.Endianness, ifd1 []test.Field, trailer ...byte) []byte {
	b := test.NewBuilder(order).
		TIFFHeader(HeaderSize)
	ifd1At := HeaderSize + test.DirectorySize(test.Short(order, 0x0112, 1))

	return b.
		WithDirectory(0, uint32(ifd1At), test.Short(order, 0x0112, 1)).
		WithDirectory(0, 0, ifd1...).
		WithBytes(trailer...).
		Bytes()
}

func newObserved() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestReadThumbnail_JPEG(t *testing.T) {
	for _, order := range []test.Endianness{binary.LittleEndian, binary.BigEndian} {
		t.Run(order.String(), func(t *testing.T) {
			ifd1 := []test.Field{
				test.Short(order, 0x0103, CompressionJPEG),
				test.Long(0x0201, 68),
				test.Long(0x0202, 4),
			}
			data := buildThumbnail(order, ifd1, 0xFF, 0xD8, 0xFF, 0xD9)
			r := bytereader.New(data)

			h, err := ParseHeader(r, 0)
			require.NoError(t, err)

			thumb, err := ReadThumbnail(r, h, nil)
			require.NoError(t, err)

			assert.Equal(t, ThumbnailJPEG, thumb.Format)
			assert.Equal(t, MediaTypeJPEG, thumb.MediaType)
			assert.Equal(t, []byte{0xFF, 0xD8, 0xFF, 0xD9}, thumb.Data)
			assert.Len(t, thumb.Tags, 3)

			data[68] = 0x00
			assert.Equal(t, byte(0xFF), thumb.Data[0], "thumbnail data is a copy")
		})
	}
}

func TestReadThumbnail_NotImplementedFormats(t *testing.T) {
	order := binary.LittleEndian

	testCases := []struct {
		name    string
		ifd1    []test.Field
		format  ThumbnailFormat
		message string
	}{
		{
			name:    "TIFF",
			ifd1:    []test.Field{test.Short(order, 0x0103, CompressionNone)},
			format:  ThumbnailTIFF,
			message: "thumbnail image format is TIFF, which is not implemented",
		},
		{
			name:    "Unknown",
			ifd1:    []test.Field{test.Short(order, 0x0103, 3)},
			format:  ThumbnailUnknown,
			message: "unknown thumbnail image format",
		},
		{
			name:    "RGB",
			ifd1:    []test.Field{test.Short(order, 0x0106, PhotometricRGB)},
			format:  ThumbnailRGB,
			message: "thumbnail image format is RGB, which is not implemented",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logger, logs := newObserved()
			r := bytereader.New(buildThumbnail(order, tc.ifd1))

			thumb, err := ReadThumbnail(r, Header{Order: order, FirstIFD: HeaderSize}, logger)
			require.NoError(t, err)

			assert.Equal(t, tc.format, thumb.Format)
			assert.Empty(t, thumb.Data)
			assert.Equal(t, 1, logs.FilterMessage(tc.message).Len())
		})
	}
}

func TestReadThumbnail_NoIFD1(t *testing.T) {
	order := binary.LittleEndian
	data := test.NewBuilder(order).
		TIFFHeader(HeaderSize).
		WithDirectory(0, 0, test.Short(order, 0x0112, 1)).
		Bytes()

	logger, logs := newObserved()
	thumb, err := ReadThumbnail(bytereader.New(data), Header{Order: order, FirstIFD: HeaderSize}, logger)
	require.NoError(t, err)

	assert.Equal(t, &Thumbnail{}, thumb)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.DebugLevel).Len())
}

func TestReadThumbnail_Corrupt(t *testing.T) {
	order := binary.LittleEndian

	t.Run("IFD1BeyondBuffer", func(t *testing.T) {
		data := test.NewBuilder(order).
			TIFFHeader(HeaderSize).
			WithDirectory(0, 0x1000, test.Short(order, 0x0112, 1)).
			Bytes()

		_, err := ReadThumbnail(bytereader.New(data), Header{Order: order, FirstIFD: HeaderSize}, nil)
		assert.ErrorIs(t, err, ErrCorruptDirectory)
	})

	t.Run("DataBeyondBuffer", func(t *testing.T) {
		ifd1 := []test.Field{
			test.Short(order, 0x0103, CompressionJPEG),
			test.Long(0x0201, 68),
			test.Long(0x0202, 400),
		}
		r := bytereader.New(buildThumbnail(order, ifd1, 0xFF, 0xD8, 0xFF, 0xD9))

		thumb, err := ReadThumbnail(r, Header{Order: order, FirstIFD: HeaderSize}, nil)
		assert.ErrorIs(t, err, bytereader.ErrOutOfBounds)
		require.NotNil(t, thumb)
		assert.Equal(t, ThumbnailJPEG, thumb.Format)
		assert.Empty(t, thumb.Data)
	})
}

func TestDecodeExif_WithThumbnail(t *testing.T) {
	order := binary.BigEndian
	ifd1 := []test.Field{
		test.Short(order, 0x0103, CompressionJPEG),
		test.Long(0x0201, 68),
		test.Long(0x0202, 4),
	}
	payload := test.ExifPayload(buildThumbnail(order, ifd1, 0xFF, 0xD8, 0xFF, 0xD9))

	tags, err := DecodeExif(bytereader.New(payload), 0, nil)
	require.NoError(t, err)

	thumb := tags.Thumbnail()
	require.NotNil(t, thumb)
	assert.Equal(t, []byte{0xFF, 0xD8, 0xFF, 0xD9}, thumb.Data)
	compression, ok := thumb.Tags.Int("Compression")
	assert.True(t, ok)
	assert.EqualValues(t, CompressionJPEG, compression)
}
