package filter

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// Gzip decodes gzip streams, including multi-member files.
type Gzip struct{}

// NewGzip creates a gzip filter.
func NewGzip() *Gzip {
	return &Gzip{}
}

func (f *Gzip) Format() Format {
	return FormatGzip
}

func (f *Gzip) Decode(input []byte, limit int64) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("gzip reader: %w", err)
	}
	defer r.Close()

	output, err := readLimited(r, limit)
	if err != nil {
		return nil, fmt.Errorf("gzip decompress: %w", err)
	}
	return output, nil
}

// Zlib decodes zlib-wrapped DEFLATE streams.
type Zlib struct{}

// NewZlib creates a zlib filter.
func NewZlib() *Zlib {
	return &Zlib{}
}

func (f *Zlib) Format() Format {
	return FormatZlib
}

func (f *Zlib) Decode(input []byte, limit int64) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("zlib reader: %w", err)
	}
	defer r.Close()

	output, err := readLimited(r, limit)
	if err != nil {
		return nil, fmt.Errorf("zlib decompress: %w", err)
	}
	return output, nil
}

// readLimited reads r to the end, failing with ErrTooLarge past limit bytes.
// A limit <= 0 means no limit.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	output, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(output)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	}
	return output, nil
}
