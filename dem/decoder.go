package dem

import (
	"errors"
	"io"
	"iter"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/robert-malhotra/go-dem/internal/field"
	"github.com/robert-malhotra/go-dem/internal/record"
)

// Decoder reads the records of one DEM stream.
//
// Header and Statistics may be called at any time and cache their result.
// Next and Profiles walk the profiles once, in file order. A decode error is
// final: every later call returns it again. A Decoder is not safe for
// concurrent use.
type Decoder struct {
	it     *record.Iterator
	size   int64
	opts   *options
	logger log.Logger

	headerCounted bool
	statsCounted  bool
	profiles      int
	done          bool
	failed        bool
	closed        bool
}

// NewDecoder creates a decoder over the first size bytes of r.
func NewDecoder(r io.ReaderAt, size int64, opts ...Option) *Decoder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	fr := field.NewReader(r, size)
	if o.encoding != nil {
		fr.SetTextDecoder(o.encoding.NewDecoder())
	}
	return &Decoder{
		it:     record.NewIterator(fr),
		size:   size,
		opts:   o,
		logger: o.logger,
	}
}

// Size returns the size of the decoded stream in bytes.
func (d *Decoder) Size() int64 {
	return d.size
}

// Header returns the header record.
func (d *Decoder) Header() (*Header, error) {
	if d.closed {
		return nil, ErrClosed
	}
	h, err := d.it.Header()
	if err != nil {
		return nil, d.fail(err)
	}
	if !d.headerCounted {
		d.headerCounted = true
		d.opts.metrics.record(record.KindHeader, BlockSize)
		level.Debug(d.logger).Log("msg", "header decoded", "name", h.FileName,
			"rows", h.Rows, "columns", h.Columns, "statistics", h.HasStatistics())
	}
	return h, nil
}

// Statistics returns the statistics record, or nil when the file has none.
// A statistics record announced by the header but missing from the file is
// not an error.
func (d *Decoder) Statistics() (*Statistics, error) {
	h, err := d.Header()
	if err != nil {
		return nil, err
	}
	s, err := d.it.Statistics()
	if err != nil {
		return nil, d.fail(err)
	}
	if !d.statsCounted {
		d.statsCounted = true
		switch {
		case s != nil:
			d.opts.metrics.record(record.KindStatistics, BlockSize)
		case h.HasStatistics():
			level.Warn(d.logger).Log("msg", "header announces a statistics record but the file has none",
				"size", d.size)
		}
	}
	return s, nil
}

// Info returns the header and statistics records.
func (d *Decoder) Info() (*Info, error) {
	h, err := d.Header()
	if err != nil {
		return nil, err
	}
	s, err := d.Statistics()
	if err != nil {
		return nil, err
	}
	return &Info{Header: h, Statistics: s}, nil
}

// Next returns the next profile, or io.EOF after the last one.
func (d *Decoder) Next() (*Profile, error) {
	if d.closed {
		return nil, ErrClosed
	}
	if d.it.State() < record.StateProfiles {
		// Reading the statistics first positions the iterator and
		// decides whether the last block is a trailer.
		if _, err := d.Statistics(); err != nil {
			return nil, err
		}
	}

	p, err := d.it.Next()
	if errors.Is(err, io.EOF) {
		if !d.done {
			d.done = true
			level.Debug(d.logger).Log("msg", "profiles done", "count", d.profiles)
		}
		return nil, io.EOF
	}
	if err != nil {
		return nil, d.fail(err)
	}
	d.profiles++
	d.opts.metrics.record(record.KindProfile, record.ProfileBlocks(len(p.Elevations))*BlockSize)
	return p, nil
}

// Profiles returns an iterator over the remaining profiles. Iteration stops
// after the first error, which is yielded with a nil profile.
func (d *Decoder) Profiles() iter.Seq2[*Profile, error] {
	return func(yield func(*Profile, error) bool) {
		for {
			p, err := d.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(p, err) || err != nil {
				return
			}
		}
	}
}

// fail records err once and returns it.
func (d *Decoder) fail(err error) error {
	if !d.failed {
		d.failed = true
		d.opts.metrics.failure(err)
		level.Debug(d.logger).Log("msg", "decode failed", "err", err)
	}
	return err
}
