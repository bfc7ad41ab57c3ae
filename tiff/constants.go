package tiff

import "github.com/fedragon/jpeg-metadata/tiff/entry"

type (
	// Group identifies an IFD and, with it, the tag vocabulary used to name its entries.
	Group uint8

	// TagTable maps tag IDs to tag names. Entries with no mapping are dropped while reading a directory.
	TagTable map[entry.ID]string
)

const (
	GroupIfd0 Group = iota
	GroupExif
	GroupGPSInfo
	GroupIfd1

	// IntelByteOrder is the TIFF standard value to indicate Intel byte ordering (aka little-endian)
	IntelByteOrder = 0x4949
	// MotorolaByteOrder is the TIFF standard value to indicate Motorola byte ordering (aka big-endian)
	MotorolaByteOrder = 0x4D4D

	// MagicNumber must follow the byte order mark, read in the announced byte order
	MagicNumber = 0x002A

	// HeaderSize is the size of the TIFF header: the first IFD cannot start before it
	HeaderSize = 8

	// ExifSignature precedes the TIFF header in an APP1 segment ("Exif\0\0")
	ExifSignature = "Exif"
	// ExifHeaderSize is the size of the signature plus its two NUL bytes
	ExifHeaderSize = 6
)

func (g Group) String() string {
	switch g {
	case GroupIfd0:
		return "IFD0"
	case GroupExif:
		return "Exif"
	case GroupGPSInfo:
		return "GPSInfo"
	case GroupIfd1:
		return "IFD1"
	}
	return "unknown"
}

// Tables holds the tag vocabulary of each group.
var Tables = map[Group]TagTable{
	GroupIfd0:    RootTags,
	GroupExif:    ExifTags,
	GroupGPSInfo: GPSTags,
	GroupIfd1:    ThumbnailTags,
}

var RootTags = TagTable{
	0x0100: "ImageWidth",
	0x0101: "ImageHeight",
	0x8769: "ExifIFDPointer",
	0x8825: "GPSInfoIFDPointer",
	0xa005: "InteroperabilityIFDPointer",
	0x0102: "BitsPerSample",
	0x0103: "Compression",
	0x0106: "PhotometricInterpretation",
	0x0112: "Orientation",
	0x0115: "SamplesPerPixel",
	0x011c: "PlanarConfiguration",
	0x0212: "YCbCrSubSampling",
	0x0213: "YCbCrPositioning",
	0x011a: "XResolution",
	0x011b: "YResolution",
	0x0128: "ResolutionUnit",
	0x0111: "StripOffsets",
	0x0116: "RowsPerStrip",
	0x0117: "StripByteCounts",
	0x0201: "JPEGInterchangeFormat",
	0x0202: "JPEGInterchangeFormatLength",
	0x012d: "TransferFunction",
	0x013e: "WhitePoint",
	0x013f: "PrimaryChromaticities",
	0x0211: "YCbCrCoefficients",
	0x0214: "ReferenceBlackWhite",
	0x0132: "DateTime",
	0x010e: "ImageDescription",
	0x010f: "Make",
	0x0110: "Model",
	0x0131: "Software",
	0x013b: "Artist",
	0x8298: "Copyright",
}

var ExifTags = TagTable{
	// version
	0x9000: "ExifVersion",
	0xa000: "FlashpixVersion",

	// colorspace
	0xa001: "ColorSpace",

	// image configuration
	0xa002: "PixelXDimension",
	0xa003: "PixelYDimension",
	0x9101: "ComponentsConfiguration",
	0x9102: "CompressedBitsPerPixel",

	// user information
	0x927c: "MakerNote",
	0x9286: "UserComment",

	// related file
	0xa004: "RelatedSoundFile",

	// date and time
	0x9003: "DateTimeOriginal",
	0x9004: "DateTimeDigitized",
	0x9290: "SubsecTime",
	0x9291: "SubsecTimeOriginal",
	0x9292: "SubsecTimeDigitized",

	// picture-taking conditions
	0x829a: "ExposureTime",
	0x829d: "FNumber",
	0x8822: "ExposureProgram",
	0x8824: "SpectralSensitivity",
	0x8827: "ISOSpeedRatings",
	0x8828: "OECF",
	0x9201: "ShutterSpeedValue",
	0x9202: "ApertureValue",
	0x9203: "BrightnessValue",
	0x9204: "ExposureBias",
	0x9205: "MaxApertureValue",
	0x9206: "SubjectDistance",
	0x9207: "MeteringMode",
	0x9208: "LightSource",
	0x9209: "Flash",
	0x9214: "SubjectArea",
	0x920a: "FocalLength",
	0xa20b: "FlashEnergy",
	0xa20c: "SpatialFrequencyResponse",
	0xa20e: "FocalPlaneXResolution",
	0xa20f: "FocalPlaneYResolution",
	0xa210: "FocalPlaneResolutionUnit",
	0xa214: "SubjectLocation",
	0xa215: "ExposureIndex",
	0xa217: "SensingMethod",
	0xa300: "FileSource",
	0xa301: "SceneType",
	0xa302: "CFAPattern",
	0xa401: "CustomRendered",
	0xa402: "ExposureMode",
	0xa403: "WhiteBalance",
	0xa404: "DigitalZoomRation",
	0xa405: "FocalLengthIn35mmFilm",
	0xa406: "SceneCaptureType",
	0xa407: "GainControl",
	0xa408: "Contrast",
	0xa409: "Saturation",
	0xa40a: "Sharpness",
	0xa40b: "DeviceSettingDescription",
	0xa40c: "SubjectDistanceRange",

	// other
	0xa005: "InteroperabilityIFDPointer",
	0xa420: "ImageUniqueID",
}

var GPSTags = TagTable{
	0x0000: "GPSVersionID",
	0x0001: "GPSLatitudeRef",
	0x0002: "GPSLatitude",
	0x0003: "GPSLongitudeRef",
	0x0004: "GPSLongitude",
	0x0005: "GPSAltitudeRef",
	0x0006: "GPSAltitude",
	0x0007: "GPSTimeStamp",
	0x0008: "GPSSatellites",
	0x0009: "GPSStatus",
	0x000a: "GPSMeasureMode",
	0x000b: "GPSDOP",
	0x000c: "GPSSpeedRef",
	0x000d: "GPSSpeed",
	0x000e: "GPSTrackRef",
	0x000f: "GPSTrack",
	0x0010: "GPSImgDirectionRef",
	0x0011: "GPSImgDirection",
	0x0012: "GPSMapDatum",
	0x0013: "GPSDestLatitudeRef",
	0x0014: "GPSDestLatitude",
	0x0015: "GPSDestLongitudeRef",
	0x0016: "GPSDestLongitude",
	0x0017: "GPSDestBearingRef",
	0x0018: "GPSDestBearing",
	0x0019: "GPSDestDistanceRef",
	0x001a: "GPSDestDistance",
	0x001b: "GPSProcessingMethod",
	0x001c: "GPSAreaInformation",
	0x001d: "GPSDateStamp",
	0x001e: "GPSDifferential",
}

var ThumbnailTags = TagTable{
	0x0100: "ImageWidth",
	0x0101: "ImageHeight",
	0x0102: "BitsPerSample",
	0x0103: "Compression",
	0x0106: "PhotometricInterpretation",
	0x0111: "StripOffsets",
	0x0112: "Orientation",
	0x0115: "SamplesPerPixel",
	0x0116: "RowsPerStrip",
	0x0117: "StripByteCounts",
	0x011a: "XResolution",
	0x011b: "YResolution",
	0x011c: "PlanarConfiguration",
	0x0128: "ResolutionUnit",
	0x0201: "JpegIFOffset",    // aka ThumbnailOffset or JPEGInterchangeFormat
	0x0202: "JpegIFByteCount", // aka ThumbnailLength or JPEGInterchangeFormatLength
	0x0211: "YCbCrCoefficients",
	0x0212: "YCbCrSubSampling",
	0x0213: "YCbCrPositioning",
	0x0214: "ReferenceBlackWhite",
}
