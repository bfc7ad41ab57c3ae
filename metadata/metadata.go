// Package metadata extracts EXIF, IPTC and XMP metadata from a JPEG held in memory.
package metadata

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/fedragon/jpeg-metadata/bytereader"
	"github.com/fedragon/jpeg-metadata/iptc"
	"github.com/fedragon/jpeg-metadata/jpeg"
	"github.com/fedragon/jpeg-metadata/tiff"
	"github.com/fedragon/jpeg-metadata/xmp"
)

// Record is the metadata of one JPEG.
//
// Every block is extracted independently: a block that is missing or cannot be decoded is left
// empty (or nil for XMP) and the reason, unless the block is simply absent, is part of Problems.
type Record struct {
	Exif tiff.Tags   `json:"exif"`
	IPTC iptc.Fields `json:"iptc"`
	XMP  *xmp.Node   `json:"xmp,omitempty"`

	Problems error `json:"-"`
}

// Extract reads the metadata of the JPEG in buf. buf is never modified and is not retained
// by the record, except through the thumbnail which holds its own copy.
//
// The only error returned is jpeg.ErrNotAJpeg; any other failure is reported through Record.Problems.
func Extract(buf []byte, opts ...Option) (*Record, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := bytereader.New(buf)
	if err := jpeg.CheckSOI(r); err != nil {
		return nil, err
	}

	record := &Record{
		Exif: tiff.Tags{},
		IPTC: iptc.Fields{},
	}

	var problems error
	tags, err := extractExif(r, o.logger)
	problems = appendProblem(problems, "exif", err)
	if tags != nil {
		record.Exif = o.wanted.Filter(tags)
	}

	fields, err := extractIPTC(r)
	problems = appendProblem(problems, "iptc", err)
	if fields != nil {
		record.IPTC = fields
	}

	if o.xmp {
		node, err := extractXMP(r, o.parser)
		problems = appendProblem(problems, "xmp", err)
		record.XMP = node
	}

	for _, err := range multierr.Errors(problems) {
		o.logger.Debug("metadata block skipped", zap.Error(err))
	}
	record.Problems = problems

	return record, nil
}

func extractExif(r *bytereader.Reader, logger *zap.Logger) (tiff.Tags, error) {
	seg, err := jpeg.FindExif(r)
	if err != nil {
		if errors.Is(err, jpeg.ErrMalformedMarker) {
			logger.Warn("not a valid marker, exif skipped", zap.Error(err))
		}
		return nil, err
	}

	return tiff.DecodeExif(r, seg.Start, logger)
}

func extractIPTC(r *bytereader.Reader) (iptc.Fields, error) {
	seg, err := jpeg.FindIPTC(r)
	if err != nil {
		return nil, err
	}

	return iptc.Decode(r, seg)
}

func extractXMP(r *bytereader.Reader, parser xmp.Parser) (*xmp.Node, error) {
	if parser == nil {
		return nil, xmp.ErrParserUnavailable
	}

	seg, err := jpeg.FindXMP(r)
	if err != nil {
		return nil, err
	}

	return xmp.Extract(r, seg, parser)
}

// appendProblem adds err to problems unless it only says that the block is absent.
func appendProblem(problems error, block string, err error) error {
	if err == nil || IsAbsent(err) {
		return problems
	}
	return multierr.Append(problems, fmt.Errorf("%s: %w", block, err))
}

// IsAbsent tells whether err means that a block is not in the file, as opposed to not readable.
func IsAbsent(err error) bool {
	return errors.Is(err, jpeg.ErrNoExif) || errors.Is(err, jpeg.ErrNoIPTC) || errors.Is(err, jpeg.ErrNoXMP)
}
