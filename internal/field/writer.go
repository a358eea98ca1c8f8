package field

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Writer encodes fixed-width text fields. It is the inverse of Reader and
// produces blank-padded fields: text left-justified, numbers right-justified,
// absent values as all blanks.
type Writer struct {
	w   io.Writer
	pos int64
}

// NewWriter creates a field writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Pos returns the number of bytes written so far.
func (w *Writer) Pos() int64 {
	return w.pos
}

// WriteField writes data, which must be exactly width bytes long.
func (w *Writer) WriteField(data []byte, width int) error {
	if len(data) != width {
		return fmt.Errorf("field is %d bytes, declared width %d", len(data), width)
	}
	n, err := w.w.Write(data)
	w.pos += int64(n)
	return err
}

// Blank writes n blanks.
func (w *Writer) Blank(n int) error {
	if n <= 0 {
		return nil
	}
	return w.WriteField([]byte(strings.Repeat(" ", n)), n)
}

// Align pads with blanks up to the next multiple of block.
func (w *Writer) Align(block int64) error {
	if block <= 1 {
		return nil
	}
	if remainder := w.pos % block; remainder != 0 {
		return w.Blank(int(block - remainder))
	}
	return nil
}

// String writes s left-justified. Text longer than width is an error.
func (w *Writer) String(s string, width int) error {
	if len(s) > width {
		return fmt.Errorf("text %q does not fit in %d bytes", s, width)
	}
	return w.WriteField([]byte(s+strings.Repeat(" ", width-len(s))), width)
}

// Char writes a single byte, or a blank when absent.
func (w *Writer) Char(c Optional[byte]) error {
	v, ok := c.Get()
	if !ok {
		return w.Blank(1)
	}
	return w.WriteField([]byte{v}, 1)
}

func (w *Writer) rightJustified(text string, width int) error {
	if len(text) > width {
		return fmt.Errorf("value %s does not fit in %d bytes", text, width)
	}
	return w.WriteField([]byte(strings.Repeat(" ", width-len(text))+text), width)
}

// WriteInt writes an integer right-justified, or blanks when absent.
func WriteInt[T ~int8 | ~int16 | ~int32 | ~int64](w *Writer, v Optional[T], width int) error {
	n, ok := v.Get()
	if !ok {
		return w.Blank(width)
	}
	return w.rightJustified(strconv.FormatInt(int64(n), 10), width)
}

// WriteFloat writes a real number in Fortran D notation with prec digits
// after the decimal point, or blanks when absent.
func WriteFloat[T ~float32 | ~float64](w *Writer, v Optional[T], width, prec int) error {
	f, ok := v.Get()
	if !ok {
		return w.Blank(width)
	}
	text := strings.Replace(strconv.FormatFloat(float64(f), 'E', prec, 64), "E", "D", 1)
	return w.rightJustified(text, width)
}

// WriteFixed writes a real number in plain decimal notation with prec
// digits after the decimal point, or blanks when absent.
func WriteFixed[T ~float32 | ~float64](w *Writer, v Optional[T], width, prec int) error {
	f, ok := v.Get()
	if !ok {
		return w.Blank(width)
	}
	return w.rightJustified(strconv.FormatFloat(float64(f), 'f', prec, 64), width)
}
