package field

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// blanks are the padding characters of a fixed-width field.
const blanks = " \t\r\n\x00"

// String reads a text field of the given width. Trailing blanks are trimmed;
// an all-blank field yields "".
func (r *Reader) String(width int) (string, error) {
	raw, err := r.ReadField(width)
	if err != nil {
		return "", err
	}
	raw = bytes.TrimRight(raw, blanks)
	if len(raw) == 0 {
		return "", nil
	}
	text, err := r.text.Bytes(raw)
	if err != nil {
		// Undecodable bytes are kept as-is rather than dropping the field.
		return string(raw), nil
	}
	return string(text), nil
}

// Char reads a single-byte field.
func (r *Reader) Char() (Optional[byte], error) {
	raw, err := r.ReadField(1)
	if err != nil {
		return Optional[byte]{}, err
	}
	if bytes.IndexByte([]byte(blanks), raw[0]) >= 0 {
		return Optional[byte]{}, nil
	}
	return Some(raw[0]), nil
}

// Int8 reads a signed decimal integer field that must fit in 8 bits.
func (r *Reader) Int8(width int) (Optional[int8], error) {
	v, ok, err := r.integer(width, 8, "int8")
	if err != nil || !ok {
		return Optional[int8]{}, err
	}
	return Some(int8(v)), nil
}

// Int16 reads a signed decimal integer field that must fit in 16 bits.
func (r *Reader) Int16(width int) (Optional[int16], error) {
	v, ok, err := r.integer(width, 16, "int16")
	if err != nil || !ok {
		return Optional[int16]{}, err
	}
	return Some(int16(v)), nil
}

// Int32 reads a signed decimal integer field that must fit in 32 bits.
func (r *Reader) Int32(width int) (Optional[int32], error) {
	v, ok, err := r.integer(width, 32, "int32")
	if err != nil || !ok {
		return Optional[int32]{}, err
	}
	return Some(int32(v)), nil
}

// Float32 reads a floating-point field as a float32.
func (r *Reader) Float32(width int) (Optional[float32], error) {
	v, ok, err := r.float(width, 32, "float32")
	if err != nil || !ok {
		return Optional[float32]{}, err
	}
	return Some(float32(v)), nil
}

// Float64 reads a floating-point field as a float64.
func (r *Reader) Float64(width int) (Optional[float64], error) {
	v, ok, err := r.float(width, 64, "float64")
	if err != nil || !ok {
		return Optional[float64]{}, err
	}
	return Some(v), nil
}

func (r *Reader) integer(width, bits int, kind string) (int64, bool, error) {
	offset := r.pos
	raw, err := r.ReadField(width)
	if err != nil {
		return 0, false, err
	}
	text := bytes.Trim(raw, blanks)
	if len(text) == 0 {
		return 0, false, nil
	}
	v, err := strconv.ParseInt(string(text), 10, bits)
	if err != nil {
		return 0, false, &Error{Offset: offset, Width: width, Kind: kind, Text: string(raw), Err: err}
	}
	return v, true, nil
}

func (r *Reader) float(width, bits int, kind string) (float64, bool, error) {
	offset := r.pos
	raw, err := r.ReadField(width)
	if err != nil {
		return 0, false, err
	}
	text := bytes.Trim(raw, blanks)
	if len(text) == 0 {
		return 0, false, nil
	}
	v, err := ParseFloat(string(text), bits)
	if err != nil {
		return 0, false, &Error{Offset: offset, Width: width, Kind: kind, Text: string(raw), Err: err}
	}
	return v, true, nil
}

// ParseFloat parses a Fortran-formatted real number. Besides the usual
// "1.5E+03" it accepts a D exponent ("0.15D+04") and an exponent written as
// a bare sign after the mantissa ("1.5+03"). Only decimal notation is
// accepted: NaN, infinities, hex floats and digit separators are rejected.
func ParseFloat(s string, bitSize int) (float64, error) {
	if i := strings.IndexFunc(s, notDecimal); i >= 0 {
		return 0, fmt.Errorf("invalid character %q in decimal number %q", s[i], s)
	}
	return strconv.ParseFloat(normalizeExponent(s), bitSize)
}

func notDecimal(c rune) bool {
	switch {
	case '0' <= c && c <= '9':
		return false
	case c == '+', c == '-', c == '.', c == 'E', c == 'e', c == 'D', c == 'd':
		return false
	}
	return true
}

func normalizeExponent(s string) string {
	if strings.ContainsAny(s, "Dd") {
		s = strings.Map(func(c rune) rune {
			if c == 'D' || c == 'd' {
				return 'E'
			}
			return c
		}, s)
	}
	if strings.ContainsAny(s, "Ee") {
		return s
	}
	for i := 1; i < len(s); i++ {
		if (s[i] == '+' || s[i] == '-') && (isDigit(s[i-1]) || s[i-1] == '.') {
			return s[:i] + "E" + s[i:]
		}
	}
	return s
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
