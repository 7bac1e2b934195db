package geotiff

import "fmt"

const (
	littleEndian = 0x4949 // "II"
	bigEndian    = 0x4d4d // "MM"

	tiffMagic = 42
)

// Tag is a TIFF tag identifier.
type Tag uint16

// Baseline TIFF tags.
const (
	NewSubfileType            Tag = 0x00fe
	SubfileType               Tag = 0x00ff
	ImageWidth                Tag = 0x0100
	ImageLength               Tag = 0x0101
	BitsPerSample             Tag = 0x0102
	Compression               Tag = 0x0103
	PhotometricInterpretation Tag = 0x0106
	Thresholding              Tag = 0x0107
	CellWidth                 Tag = 0x0108
	CellLength                Tag = 0x0109
	FillOrder                 Tag = 0x010a
	ImageDescription          Tag = 0x010e
	Make                      Tag = 0x010f
	Model                     Tag = 0x0110
	StripOffsets              Tag = 0x0111
	Orientation               Tag = 0x0112
	SamplesPerPixel           Tag = 0x0115
	RowsPerStrip              Tag = 0x0116
	StripByteCounts           Tag = 0x0117
	MinSampleValue            Tag = 0x0118
	MaxSampleValue            Tag = 0x0119
	XResolution               Tag = 0x011a
	YResolution               Tag = 0x011b
	PlanarConfiguration       Tag = 0x011c
	FreeOffsets               Tag = 0x0120
	FreeByteCounts            Tag = 0x0121
	GrayResponseUnit          Tag = 0x0122
	GrayResponseCurve         Tag = 0x0123
	ResolutionUnit            Tag = 0x0128
	Software                  Tag = 0x0131
	DateTime                  Tag = 0x0132
	Artist                    Tag = 0x013b
	HostComputer              Tag = 0x013c
	Predictor                 Tag = 0x013d
	ColorMap                  Tag = 0x0140
	ExtraSamples              Tag = 0x0152
	SampleFormat              Tag = 0x0153
	Copyright                 Tag = 0x8298
)

// Tile tags.
const (
	TileWidth      Tag = 0x0142
	TileLength     Tag = 0x0143
	TileOffsets    Tag = 0x0144
	TileByteCounts Tag = 0x0145
)

// Colorimetry and YCbCr tags.
const (
	TransferFunction      Tag = 0x012d
	WhitePoint            Tag = 0x013e
	PrimaryChromaticities Tag = 0x013f
	TransferRange         Tag = 0x0156
	YCbCrCoefficients     Tag = 0x0211
	YCbCrSubsampling      Tag = 0x0212
	YCbCrPositioning      Tag = 0x0213
	ReferenceBlackWhite   Tag = 0x0214
)

// TIFF/EP, geo and extension tags.
const (
	XMP                    Tag = 0x02bc
	SubIFDs                Tag = 0x014a
	JPEGTables             Tag = 0x015b
	CFARepeatPatternDim    Tag = 0x828d
	BatteryLevel           Tag = 0x828f
	ModelPixelScale        Tag = 0x830e
	IPTC                   Tag = 0x83bb
	ModelTiepoint          Tag = 0x8482
	Photoshop              Tag = 0x8649
	ModelTransformation    Tag = 0x85d8
	EXIFIFD                Tag = 0x8769
	InterColorProfile      Tag = 0x8773
	GeoKeyDirectory        Tag = 0x87af
	GeoDoubleParams        Tag = 0x87b0
	GeoAsciiParams         Tag = 0x87b1
	Interlace              Tag = 0x8829
	TimeZoneOffset         Tag = 0x882a
	SelfTimerMode          Tag = 0x882b
	Noise                  Tag = 0x920d
	ImageNumber            Tag = 0x9211
	SecurityClassification Tag = 0x9212
	ImageHistory           Tag = 0x9213
	EPStandardID           Tag = 0x9216
	GDALMetadata           Tag = 0xa480
	GDALNoData             Tag = 0xa481
)

var tagToLabel = map[Tag]string{
	NewSubfileType:            "NewSubfileType",
	SubfileType:               "SubfileType",
	ImageWidth:                "ImageWidth",
	ImageLength:               "ImageLength",
	BitsPerSample:             "BitsPerSample",
	Compression:               "Compression",
	PhotometricInterpretation: "PhotometricInterpretation",
	Thresholding:              "Thresholding",
	CellWidth:                 "CellWidth",
	CellLength:                "CellLength",
	FillOrder:                 "FillOrder",
	ImageDescription:          "ImageDescription",
	Make:                      "Make",
	Model:                     "Model",
	StripOffsets:              "StripOffsets",
	Orientation:               "Orientation",
	SamplesPerPixel:           "SamplesPerPixel",
	RowsPerStrip:              "RowsPerStrip",
	StripByteCounts:           "StripByteCounts",
	MinSampleValue:            "MinSampleValue",
	MaxSampleValue:            "MaxSampleValue",
	XResolution:               "XResolution",
	YResolution:               "YResolution",
	PlanarConfiguration:       "PlanarConfiguration",
	FreeOffsets:               "FreeOffsets",
	FreeByteCounts:            "FreeByteCounts",
	GrayResponseUnit:          "GrayResponseUnit",
	GrayResponseCurve:         "GrayResponseCurve",
	ResolutionUnit:            "ResolutionUnit",
	Software:                  "Software",
	DateTime:                  "DateTime",
	Artist:                    "Artist",
	HostComputer:              "HostComputer",
	Predictor:                 "Predictor",
	ColorMap:                  "ColorMap",
	ExtraSamples:              "ExtraSamples",
	SampleFormat:              "SampleFormat",
	Copyright:                 "Copyright",
	TileWidth:                 "TileWidth",
	TileLength:                "TileLength",
	TileOffsets:               "TileOffsets",
	TileByteCounts:            "TileByteCounts",
	TransferFunction:          "TransferFunction",
	WhitePoint:                "WhitePoint",
	PrimaryChromaticities:     "PrimaryChromaticities",
	TransferRange:             "TransferRange",
	YCbCrCoefficients:         "YCbCrCoefficients",
	YCbCrSubsampling:          "YCbCrSubsampling",
	YCbCrPositioning:          "YCbCrPositioning",
	ReferenceBlackWhite:       "ReferenceBlackWhite",
	XMP:                       "XMP",
	SubIFDs:                   "SubIFDs",
	JPEGTables:                "JPEGTables",
	CFARepeatPatternDim:       "CFARepeatPatternDim",
	BatteryLevel:              "BatteryLevel",
	ModelPixelScale:           "ModelPixelScale",
	IPTC:                      "IPTC",
	ModelTiepoint:             "ModelTiepoint",
	Photoshop:                 "Photoshop",
	ModelTransformation:       "ModelTransformation",
	EXIFIFD:                   "EXIFIFD",
	InterColorProfile:         "InterColorProfile",
	GeoKeyDirectory:           "GeoKeyDirectory",
	GeoDoubleParams:           "GeoDoubleParams",
	GeoAsciiParams:            "GeoAsciiParams",
	Interlace:                 "Interlace",
	TimeZoneOffset:            "TimeZoneOffset",
	SelfTimerMode:             "SelfTimerMode",
	Noise:                     "Noise",
	ImageNumber:               "ImageNumber",
	SecurityClassification:    "SecurityClassification",
	ImageHistory:              "ImageHistory",
	EPStandardID:              "EPStandardID",
	GDALMetadata:              "GDALMetadata",
	GDALNoData:                "GDALNoData",
}

func (t Tag) String() string {
	v, ok := tagToLabel[t]
	if !ok {
		return fmt.Sprintf("%d", uint16(t))
	}
	return v
}

// decodeTag resolves a raw tag id against the recognized set.
func decodeTag(v uint16) (Tag, bool) {
	_, ok := tagToLabel[Tag(v)]
	return Tag(v), ok
}

// fieldType is a TIFF value type identifier.
type fieldType uint16

const (
	typeByte      fieldType = 1
	typeASCII     fieldType = 2
	typeShort     fieldType = 3
	typeLong      fieldType = 4
	typeRational  fieldType = 5
	typeSByte     fieldType = 6
	typeUndefined fieldType = 7
	typeSShort    fieldType = 8
	typeSLong     fieldType = 9
	typeSRational fieldType = 10
	typeFloat     fieldType = 11
	typeDouble    fieldType = 12
)

// fieldTypeLen is the length of every field type in bytes, indexed by type id.
var fieldTypeLen = [...]uint32{
	0,       // 0 (unused)
	1, 1, 2, // BYTE, ASCII, SHORT
	4, 8, 1, // LONG, RATIONAL, SBYTE
	1, 2, 4, // UNDEFINED, SSHORT, SLONG
	8, 4, 8, // SRATIONAL, FLOAT, DOUBLE
}

var fieldTypeToLabel = map[fieldType]string{
	typeByte:      "BYTE",
	typeASCII:     "ASCII",
	typeShort:     "SHORT",
	typeLong:      "LONG",
	typeRational:  "RATIONAL",
	typeSByte:     "SBYTE",
	typeUndefined: "UNDEFINED",
	typeSShort:    "SSHORT",
	typeSLong:     "SLONG",
	typeSRational: "SRATIONAL",
	typeFloat:     "FLOAT",
	typeDouble:    "DOUBLE",
}

func (f fieldType) String() string {
	v, ok := fieldTypeToLabel[f]
	if !ok {
		return fmt.Sprintf("unrecognized field type %d", uint16(f))
	}
	return v
}

// bytes returns the number of bytes an element of this type occupies.
//
// Returns 0 for unrecognized types.
func (f fieldType) bytes() uint32 {
	if f == 0 || int(f) >= len(fieldTypeLen) {
		return 0
	}
	return fieldTypeLen[f]
}

// Compression schemes. Values are recognized but no decompression is
// implemented; only CompressionNone rasters can be reconstructed.
const (
	CompressionNone     uint16 = 1
	CompressionHuffman  uint16 = 2
	CompressionLZW      uint16 = 5
	CompressionOJPEG    uint16 = 6
	CompressionJPEG     uint16 = 7
	CompressionPackBits uint16 = 32773
)

// Sample formats.
const (
	SampleFormatUint      uint16 = 1
	SampleFormatInt       uint16 = 2
	SampleFormatIEEEFloat uint16 = 3
	SampleFormatUndefined uint16 = 4
)

// Resolution units.
const (
	ResolutionNone       uint16 = 1
	ResolutionInch       uint16 = 2
	ResolutionCentimetre uint16 = 3
)

// ImageType classifies a TIFF by its colour organization. Only used by the
// optional required-tag validation helper.
type ImageType int

const (
	Bilevel ImageType = iota
	Grayscale
	PaletteColour
	RGB
	YCbCr
)
