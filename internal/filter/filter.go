package filter

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrTooLarge is returned when decompressed data exceeds the configured
// limit.
var ErrTooLarge = errors.New("decompressed data too large")

// Format identifies a compression format.
type Format uint8

const (
	FormatNone Format = iota
	FormatGzip
	FormatZlib
	FormatZstd
)

func (f Format) String() string {
	switch f {
	case FormatNone:
		return "none"
	case FormatGzip:
		return "gzip"
	case FormatZlib:
		return "zlib"
	case FormatZstd:
		return "zstd"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// Filter is the interface implemented by all decompression filters.
type Filter interface {
	// Format returns the format the filter decodes.
	Format() Format

	// Decode decompresses input. The result may not exceed limit bytes.
	Decode(input []byte, limit int64) ([]byte, error)
}

// Registry maps formats to filter constructors.
var Registry = map[Format]func() Filter{
	FormatGzip: func() Filter { return NewGzip() },
	FormatZlib: func() Filter { return NewZlib() },
	FormatZstd: func() Filter { return NewZstd() },
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// PrefixLen is the number of leading bytes Detect looks at.
const PrefixLen = 4

// Detect identifies the compression format from the first bytes of a
// stream. Uncompressed DEM text is reported as FormatNone.
func Detect(prefix []byte) Format {
	switch {
	case bytes.HasPrefix(prefix, gzipMagic):
		return FormatGzip
	case bytes.HasPrefix(prefix, zstdMagic):
		return FormatZstd
	case len(prefix) >= 2 && prefix[0] == 0x78:
		// 32K window deflate with a valid header checksum. The second byte
		// is one of the four compression levels zlib writes.
		switch prefix[1] {
		case 0x01, 0x5e, 0x9c, 0xda:
			return FormatZlib
		}
	}
	return FormatNone
}

// New creates the filter for format.
func New(format Format) (Filter, error) {
	constructor, ok := Registry[format]
	if !ok {
		return nil, fmt.Errorf("unsupported compression format: %s", format)
	}
	return constructor(), nil
}
