package record

import (
	"errors"
	"fmt"
	"io"

	"github.com/robert-malhotra/go-dem/internal/field"
)

// ErrMissingHeader is returned when the stream is too short for a header or
// its first block does not decode.
var ErrMissingHeader = errors.New("missing DEM header")

// State is a position in the record sequence.
type State uint8

const (
	StateStart         State = iota // nothing read yet
	StateHeaderRead                 // header decoded, trailer not probed
	StateTrailerProbed              // statistics decoded or found absent
	StateProfiles                   // iterating profiles
	StateDone                       // terminal
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateHeaderRead:
		return "header-read"
	case StateTrailerProbed:
		return "trailer-probed"
	case StateProfiles:
		return "profiles"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Iterator sequences the records of a DEM stream: the header, the optional
// statistics trailer and then every profile in file order.
//
// Header and Statistics are one-shot accessors whose results are cached;
// Next yields profiles until it returns io.EOF. Any decode error is fatal and
// is returned again by every later call.
type Iterator struct {
	r             *field.Reader
	state         State
	header        *Header
	stats         *Statistics
	expectTrailer bool
	err           error
}

// NewIterator creates an iterator over r. The reader is repositioned as
// needed; callers should not move it while iterating.
func NewIterator(r *field.Reader) *Iterator {
	return &Iterator{r: r}
}

// State returns the current state.
func (it *Iterator) State() State {
	return it.state
}

// Err returns the error that stopped the iterator, if any.
func (it *Iterator) Err() error {
	return it.err
}

// Pos returns the byte offset of the underlying reader.
func (it *Iterator) Pos() int64 {
	return it.r.Pos()
}

// Header returns the header record, decoding it on first use.
func (it *Iterator) Header() (*Header, error) {
	if it.header != nil {
		return it.header, nil
	}
	if it.err != nil {
		return nil, it.err
	}

	if _, err := it.r.Seek(0, io.SeekStart); err != nil {
		return nil, it.fail(err)
	}
	ok, err := it.r.Fill(BlockSize)
	if err != nil {
		return nil, it.fail(err)
	}
	if !ok {
		return nil, it.fail(fmt.Errorf("%w: stream has %d bytes, header needs %d",
			ErrMissingHeader, it.r.Size(), BlockSize))
	}
	h, err := ReadHeader(it.r)
	if err != nil {
		return nil, it.fail(fmt.Errorf("%w: %w", ErrMissingHeader, err))
	}

	it.header = h
	it.expectTrailer = h.HasStatistics()
	it.state = StateHeaderRead
	return h, nil
}

// Statistics returns the trailing statistics record, or nil when the header
// does not announce one or the stream has none. A missing trailer is not an
// error.
func (it *Iterator) Statistics() (*Statistics, error) {
	if _, err := it.Header(); err != nil {
		return nil, err
	}
	if it.state == StateHeaderRead {
		if err := it.probeTrailer(); err != nil {
			return nil, err
		}
	}
	return it.stats, nil
}

func (it *Iterator) probeTrailer() error {
	if !it.expectTrailer {
		it.state = StateTrailerProbed
		return nil
	}
	if it.r.Size() < 2*BlockSize {
		it.expectTrailer = false
		it.state = StateTrailerProbed
		return nil
	}

	if _, err := it.r.Seek(-BlockSize, io.SeekEnd); err != nil {
		return it.fail(err)
	}
	stats, err := ReadStatistics(it.r)
	switch {
	case err == nil:
		it.stats = stats
	case errors.Is(err, field.ErrMalformed):
		// The last block is not a trailer; profiles run to the end.
		it.expectTrailer = false
	default:
		return it.fail(fmt.Errorf("statistics: %w", err))
	}

	if _, err := it.r.Seek(BlockSize, io.SeekStart); err != nil {
		return it.fail(err)
	}
	it.state = StateTrailerProbed
	return nil
}

// Next returns the next profile, or io.EOF after the last one.
func (it *Iterator) Next() (*Profile, error) {
	if it.state == StateDone {
		if it.err != nil {
			return nil, it.err
		}
		return nil, io.EOF
	}
	if it.state < StateProfiles {
		if _, err := it.Statistics(); err != nil {
			return nil, err
		}
		if _, err := it.r.Seek(BlockSize, io.SeekStart); err != nil {
			return nil, it.fail(err)
		}
		it.state = StateProfiles
	}

	ok, err := it.r.Fill(BlockSize)
	if err != nil {
		return nil, it.fail(err)
	}
	if !ok {
		it.state = StateDone
		return nil, io.EOF
	}
	if it.expectTrailer {
		if _, err := it.r.Fill(2 * BlockSize); err != nil {
			return nil, it.fail(err)
		}
		if it.r.Buffered() == BlockSize {
			// Only the trailer is left.
			it.state = StateDone
			return nil, io.EOF
		}
	}

	offset := it.r.Pos()
	p, err := ReadProfile(it.r)
	if err != nil {
		return nil, it.fail(fmt.Errorf("profile at offset %d: %w", offset, err))
	}
	return p, nil
}

func (it *Iterator) fail(err error) error {
	it.state = StateDone
	it.err = err
	return err
}
