package dem

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log/level"

	"github.com/robert-malhotra/go-dem/grid"
	"github.com/robert-malhotra/go-dem/internal/filter"
)

// File is a DEM file opened for decoding. Compressed files (gzip, zlib or
// zstd) are decompressed into memory when opened.
type File struct {
	*Decoder
	path        string
	file        *os.File // nil once the content is in memory
	compression []filter.Format
}

// Open opens a DEM file for reading. The caller must Close it.
func Open(path string, opts ...Option) (*File, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat: %w", err)
	}

	prefix := make([]byte, filter.PrefixLen)
	n, err := f.ReadAt(prefix, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		f.Close()
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	df := &File{path: path}
	if filter.Detect(prefix[:n]) == filter.FormatNone {
		df.file = f
		df.Decoder = NewDecoder(f, fi.Size(), opts...)
		return df, nil
	}

	raw, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	p := filter.NewPipeline(o.maxSize, 0)
	data, err := p.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", path, err)
	}
	df.compression = append(df.compression, p.Layers()...)
	level.Debug(o.logger).Log("msg", "decompressed input", "file", path,
		"layers", fmt.Sprint(df.compression), "compressed", len(raw), "size", len(data))

	df.Decoder = NewDecoder(bytes.NewReader(data), int64(len(data)), opts...)
	return df, nil
}

// Close releases the file. It is safe to call more than once; decoding
// after Close returns ErrClosed.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	if f.file == nil {
		return nil
	}
	return f.file.Close()
}

// Path returns the file path.
func (f *File) Path() string {
	return f.path
}

// Compression returns the compression formats removed when opening the
// file, outermost first, as names like "gzip".
func (f *File) Compression() []string {
	names := make([]string, len(f.compression))
	for i, c := range f.compression {
		names[i] = c.String()
	}
	return names
}

// ReadInfo opens path and returns its header and statistics.
func ReadInfo(path string, opts ...Option) (*Info, error) {
	f, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.Info()
}

// ReadGridFile opens path and builds its elevation grid.
func ReadGridFile(path string, opts []Option, gridOpts ...GridOption) (*grid.Grid, error) {
	f, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.ReadGrid(gridOpts...)
}
