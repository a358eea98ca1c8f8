package field

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated is returned when fewer bytes remain than a field or
	// record declares.
	ErrTruncated = errors.New("truncated input")

	// ErrMalformed is returned when a non-blank field fails to parse as its
	// declared type.
	ErrMalformed = errors.New("malformed field")
)

// Error describes a field whose content could not be decoded.
type Error struct {
	Offset int64  // byte offset of the field in the stream
	Width  int    // declared field width
	Kind   string // declared type, e.g. "int16"
	Text   string // raw field content
	Err    error  // underlying parse error, may be nil
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("malformed %s field at offset %d (width %d): %q", e.Kind, e.Offset, e.Width, e.Text)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap lets errors.Is match both ErrMalformed and the parse error.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformed}
	}
	return []error{ErrMalformed, e.Err}
}
