package filter

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Zstd decodes Zstandard frames.
type Zstd struct{}

// NewZstd creates a zstd filter.
func NewZstd() *Zstd {
	return &Zstd{}
}

func (f *Zstd) Format() Format {
	return FormatZstd
}

func (f *Zstd) Decode(input []byte, limit int64) ([]byte, error) {
	d, err := zstd.NewReader(bytes.NewReader(input), zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer d.Close()

	output, err := readLimited(d, limit)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	return output, nil
}
