package field

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// minWindow is the smallest number of bytes fetched when the lookahead
// window is replenished.
const minWindow = 4096

// Reader is a cursor over a sized byte source that decodes fixed-width
// text fields. Reads are served from a lookahead window that is refilled
// from the underlying io.ReaderAt on demand.
type Reader struct {
	r      io.ReaderAt
	size   int64
	pos    int64
	buf    []byte // lookahead window; buf[0] sits at bufPos
	bufPos int64
	text   *encoding.Decoder
}

// NewReader creates a field reader over the first size bytes of r.
// Text fields are decoded from ISO-8859-1.
func NewReader(r io.ReaderAt, size int64) *Reader {
	return &Reader{
		r:    r,
		size: size,
		text: charmap.ISO8859_1.NewDecoder(),
	}
}

// SetTextDecoder replaces the decoder used by String.
func (r *Reader) SetTextDecoder(d *encoding.Decoder) {
	if d != nil {
		r.text = d
	}
}

// Pos returns the current cursor position.
func (r *Reader) Pos() int64 {
	return r.pos
}

// Size returns the total size of the stream.
func (r *Reader) Size() int64 {
	return r.size
}

// Remaining returns the number of bytes between the cursor and the end of
// the stream.
func (r *Reader) Remaining() int64 {
	if r.pos >= r.size {
		return 0
	}
	return r.size - r.pos
}

// Buffered returns the number of bytes in the lookahead window at or after
// the cursor. It never reads from the source.
func (r *Reader) Buffered() int {
	end := r.bufPos + int64(len(r.buf))
	if r.pos < r.bufPos || r.pos > end {
		return 0
	}
	return int(end - r.pos)
}

// Fill makes sure at least n bytes are buffered ahead of the cursor.
// It returns false when the stream has fewer than n bytes left; the window
// then holds everything that remains.
func (r *Reader) Fill(n int) (bool, error) {
	if n <= 0 {
		return true, nil
	}
	if r.Buffered() >= n {
		return true, nil
	}

	want := int64(n)
	if want < minWindow {
		want = minWindow
	}
	if rem := r.Remaining(); want > rem {
		want = rem
	}
	r.bufPos = r.pos
	if want <= 0 {
		r.buf = r.buf[:0]
		return false, nil
	}

	if int64(cap(r.buf)) < want {
		r.buf = make([]byte, want)
	} else {
		r.buf = r.buf[:want]
	}
	got, err := r.r.ReadAt(r.buf, r.pos)
	if err != nil && !errors.Is(err, io.EOF) {
		r.buf = r.buf[:0]
		return false, fmt.Errorf("reading at offset %d: %w", r.pos, err)
	}
	r.buf = r.buf[:got]
	return got >= n, nil
}

// ReadField returns the next width bytes and advances the cursor by width.
// The returned slice aliases the lookahead window and is only valid until
// the next call on r.
func (r *Reader) ReadField(width int) ([]byte, error) {
	if width <= 0 {
		return nil, nil
	}
	ok, err := r.Fill(width)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %d-byte field at offset %d, %d bytes left",
			ErrTruncated, width, r.pos, r.Buffered())
	}
	start := r.pos - r.bufPos
	data := r.buf[start : start+int64(width)]
	r.pos += int64(width)
	return data, nil
}

// Skip advances the cursor by n bytes.
func (r *Reader) Skip(n int) error {
	if n <= 0 {
		return nil
	}
	if int64(n) > r.Remaining() {
		return fmt.Errorf("%w: skipping %d bytes at offset %d, %d bytes left",
			ErrTruncated, n, r.pos, r.Remaining())
	}
	r.pos += int64(n)
	return nil
}

// Seek moves the cursor relative to whence (io.SeekStart, io.SeekCurrent or
// io.SeekEnd) and discards the lookahead window.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = r.pos + offset
	case io.SeekEnd:
		abs = r.size + offset
	default:
		return r.pos, fmt.Errorf("seek: invalid whence %d", whence)
	}
	if abs < 0 || abs > r.size {
		return r.pos, fmt.Errorf("seek: offset %d outside stream of %d bytes", abs, r.size)
	}
	r.pos = abs
	r.bufPos = abs
	r.buf = r.buf[:0]
	return abs, nil
}

// Align advances the cursor to the next multiple of block. If already
// aligned, the position is unchanged. Alignment stops at the end of the
// stream.
func (r *Reader) Align(block int64) {
	if block <= 1 {
		return
	}
	if remainder := r.pos % block; remainder != 0 {
		r.pos += block - remainder
	}
	if r.pos > r.size {
		r.pos = r.size
	}
}
