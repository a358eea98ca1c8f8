package dem

import (
	"github.com/go-kit/log"
	"golang.org/x/text/encoding"

	"github.com/robert-malhotra/go-dem/grid"
)

// Option configures decoding.
type Option func(*options)

type options struct {
	logger   log.Logger
	metrics  *Metrics
	encoding encoding.Encoding
	maxSize  int64
}

func defaultOptions() *options {
	return &options{
		logger: log.NewNopLogger(),
	}
}

// WithLogger sets the logger for decode diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics records decode statistics in m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithTextEncoding sets the character encoding of text fields. The default
// is ISO 8859-1.
func WithTextEncoding(enc encoding.Encoding) Option {
	return func(o *options) {
		o.encoding = enc
	}
}

// WithMaxDecompressedSize limits the size of compressed input after
// decompression (default 1 GiB).
func WithMaxDecompressedSize(n int64) Option {
	return func(o *options) {
		o.maxSize = n
	}
}

// GridOption configures ReadGrid.
type GridOption func(*gridOptions)

type gridOptions struct {
	unit     grid.Unit
	mask     bool
	strict   bool
	progress func(done, total int64) bool
}

// WithUnit converts horizontal resolutions and elevations to unit. Only
// feet and meters convert; grid.Undefined keeps the file's units.
func WithUnit(unit grid.Unit) GridOption {
	return func(o *gridOptions) {
		o.unit = unit
	}
}

// WithMissingMask marks unknown cells in the grid's mask instead of
// reporting an unknown elevation value.
func WithMissingMask() GridOption {
	return func(o *gridOptions) {
		o.mask = true
	}
}

// WithStrictExtent makes a profile sample outside the grid an error. By
// default such samples are dropped and logged.
func WithStrictExtent() GridOption {
	return func(o *gridOptions) {
		o.strict = true
	}
}

// WithProgress calls fn after every profile with the number of profiles
// read and the number expected. Returning false stops the build with
// ErrCanceled.
func WithProgress(fn func(done, total int64) bool) GridOption {
	return func(o *gridOptions) {
		o.progress = fn
	}
}
