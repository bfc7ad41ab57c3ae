package tiff

import (
	"bytes"
	"fmt"

	"go.uber.org/zap"

	"github.com/fedragon/jpeg-metadata/bytereader"
)

type ThumbnailFormat string

const (
	ThumbnailJPEG    ThumbnailFormat = "jpeg"
	ThumbnailTIFF    ThumbnailFormat = "tiff"
	ThumbnailRGB     ThumbnailFormat = "rgb"
	ThumbnailUnknown ThumbnailFormat = "unknown"

	// CompressionJPEG is the IFD1 Compression value of a JPEG thumbnail
	CompressionJPEG = 6
	// CompressionNone is the IFD1 Compression value of an uncompressed (TIFF) thumbnail
	CompressionNone = 1
	// PhotometricRGB is the PhotometricInterpretation value of an RGB thumbnail
	PhotometricRGB = 2

	MediaTypeJPEG = "image/jpeg"
)

// Thumbnail is the content of IFD1. Data is only set for JPEG thumbnails; other formats are recognised but not extracted.
type Thumbnail struct {
	Tags      Tags            `json:"tags,omitempty"`
	Format    ThumbnailFormat `json:"format,omitempty"`
	MediaType string          `json:"mediaType,omitempty"`
	Data      []byte          `json:"data,omitempty"`
}

// ReadThumbnail follows the link after IFD0 to IFD1 and extracts the thumbnail it describes.
// A missing IFD1 yields an empty thumbnail.
func ReadThumbnail(r *bytereader.Reader, h Header, logger *zap.Logger) (*Thumbnail, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	next, err := NextDirectory(r, h.Order, h.Start+int(h.FirstIFD))
	if err != nil {
		return nil, err
	}
	if next == 0 {
		logger.Debug("IFD1 offset is empty, thumbnail not found")
		return &Thumbnail{}, nil
	}

	dirStart := h.Start + int(next)
	if dirStart > r.Len() {
		return nil, corruptDirectory(dirStart, nil)
	}

	tags, err := ReadDirectory(r, h.Order, h.Start, dirStart, Tables[GroupIfd1])
	if err != nil {
		return nil, err
	}

	thumb := &Thumbnail{Tags: tags}
	compression, hasCompression := tags.Int("Compression")
	switch {
	case hasCompression && compression == CompressionJPEG:
		thumb.Format = ThumbnailJPEG
		offset, okOffset := tags.Int("JpegIFOffset")
		length, okLength := tags.Int("JpegIFByteCount")
		if !okOffset || !okLength || offset == 0 || length == 0 {
			logger.Debug("JPEG thumbnail has no offset or length")
			break
		}
		data, err := r.Bytes(h.Start+int(offset), int(length))
		if err != nil {
			return thumb, fmt.Errorf("reading thumbnail data: %w", err)
		}
		thumb.Data = bytes.Clone(data)
		thumb.MediaType = MediaTypeJPEG
	case hasCompression && compression == CompressionNone:
		thumb.Format = ThumbnailTIFF
		logger.Info("thumbnail image format is TIFF, which is not implemented")
	case hasCompression && compression != 0:
		thumb.Format = ThumbnailUnknown
		logger.Info("unknown thumbnail image format", zap.Int64("compression", compression))
	default:
		if p, ok := tags.Int("PhotometricInterpretation"); ok && p == PhotometricRGB {
			thumb.Format = ThumbnailRGB
			logger.Info("thumbnail image format is RGB, which is not implemented")
		}
	}

	return thumb, nil
}
