package metadata

import (
	"go.uber.org/zap"

	"github.com/fedragon/jpeg-metadata/tiff"
	"github.com/fedragon/jpeg-metadata/xmp"
)

type options struct {
	xmp    bool
	parser xmp.Parser
	wanted *tiff.Wanted
	logger *zap.Logger
}

func defaultOptions() options {
	return options{
		parser: xmp.StdParser{},
		logger: zap.NewNop(),
	}
}

// Option configures Extract.
type Option func(*options)

// WithXMP enables the extraction of the XMP packet. It is disabled by default.
func WithXMP(enabled bool) Option {
	return func(o *options) {
		o.xmp = enabled
	}
}

// WithXMLParser replaces the parser used for XMP packets. Passing nil makes XMP extraction
// fail with xmp.ErrParserUnavailable.
func WithXMLParser(p xmp.Parser) Option {
	return func(o *options) {
		o.parser = p
	}
}

// WithTags restricts the EXIF tags in the result to the given names.
// Use "thumbnail" to keep the thumbnail. Without names it keeps every tag.
func WithTags(names ...string) Option {
	return func(o *options) {
		if len(names) == 0 {
			return
		}
		if o.wanted == nil {
			o.wanted = tiff.NewWanted()
		}
		for _, name := range names {
			o.wanted.Put(name)
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
