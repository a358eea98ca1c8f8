package dem

import (
	"errors"
	"fmt"

	"github.com/robert-malhotra/go-dem/grid"
	"github.com/robert-malhotra/go-dem/internal/field"
	"github.com/robert-malhotra/go-dem/internal/record"
)

// Decode errors. Every failure returned by this package wraps one of these
// or is a *FieldError or *ExtentError; test with errors.Is and errors.As.
var (
	// ErrTruncatedInput: fewer bytes are left than a field or record
	// declares.
	ErrTruncatedInput = field.ErrTruncated

	// ErrMalformedField: a non-blank field does not parse as its type.
	ErrMalformedField = field.ErrMalformed

	// ErrMissingHeader: the stream is shorter than one block or its first
	// block is not a header.
	ErrMissingHeader = record.ErrMissingHeader

	// ErrInvalidGridState: a grid operation on an empty or released grid.
	ErrInvalidGridState = grid.ErrInvalidGridState

	ErrCanceled = errors.New("decode canceled")
	ErrClosed   = errors.New("file is closed")
	ErrConsumed = errors.New("profiles already read")
)

// FieldError describes a malformed field with its byte offset and width.
type FieldError = field.Error

// ExtentError reports a profile sample that falls outside the grid sized
// from the header. It is only returned with WithStrictExtent.
type ExtentError struct {
	ProfileRow    int // 1-based origin of the profile
	ProfileColumn int
	Row, Column   int // grid position of the sample
	Rows, Columns int // grid extent
}

func (e *ExtentError) Error() string {
	return fmt.Sprintf("profile at (%d, %d): sample at grid position (%d, %d) outside %dx%d grid",
		e.ProfileRow, e.ProfileColumn, e.Row, e.Column, e.Rows, e.Columns)
}

func (e *ExtentError) Unwrap() error {
	return ErrMalformedField
}

// failureReason classifies err for the decode failure metric.
func failureReason(err error) string {
	var extent *ExtentError
	switch {
	case errors.As(err, &extent):
		return "extent"
	case errors.Is(err, ErrMissingHeader):
		return "missing_header"
	case errors.Is(err, ErrTruncatedInput):
		return "truncated"
	case errors.Is(err, ErrMalformedField):
		return "malformed"
	case errors.Is(err, ErrCanceled):
		return "canceled"
	default:
		return "io"
	}
}
