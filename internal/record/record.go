package record

import (
	"fmt"
	"math"

	"github.com/robert-malhotra/go-dem/internal/field"
)

// BlockSize is the size of one physical block. The header and the
// statistics record fill exactly one block each.
const BlockSize = 1024

const (
	// UnknownSample marks a void elevation sample.
	UnknownSample = -32767

	profilePreamble = 144 // bytes before the first sample of a profile
	sampleWidth     = 6
)

// Kind identifies a record type.
type Kind uint8

const (
	KindHeader     Kind = iota + 1 // type A
	KindProfile                    // type B
	KindStatistics                 // type C
)

func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindProfile:
		return "profile"
	case KindStatistics:
		return "statistics"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Record is implemented by *Header, *Profile and *Statistics.
type Record interface {
	Kind() Kind
}

// DegMinSec is an angle in degrees, minutes and seconds.
type DegMinSec struct {
	Degree int16
	Minute int16
	Second float32
}

// Degrees returns the angle in decimal degrees. The sign is taken from the
// first non-zero component.
func (d DegMinSec) Degrees() float64 {
	deg := math.Abs(float64(d.Degree)) +
		math.Abs(float64(d.Minute))/60 +
		math.Abs(float64(d.Second))/3600
	switch {
	case d.Degree < 0:
		return -deg
	case d.Degree == 0 && d.Minute < 0:
		return -deg
	case d.Degree == 0 && d.Minute == 0 && d.Second < 0:
		return -deg
	}
	return deg
}

func (d DegMinSec) String() string {
	return fmt.Sprintf("%d %d %g", d.Degree, d.Minute, d.Second)
}

// Corner is a ground coordinate of one of the quadrangle corners.
type Corner struct {
	Easting  float64
	Northing float64
}

func (c Corner) String() string {
	return fmt.Sprintf("%g %g", c.Easting, c.Northing)
}

// decoder reads a sequence of fields and keeps the first error.
type decoder struct {
	r   *field.Reader
	err error
}

func (d *decoder) skip(n int) {
	if d.err == nil {
		d.err = d.r.Skip(n)
	}
}

func (d *decoder) str(width int) string {
	if d.err != nil {
		return ""
	}
	var s string
	s, d.err = d.r.String(width)
	return s
}

func (d *decoder) char() field.Optional[byte] {
	if d.err != nil {
		return field.Optional[byte]{}
	}
	var v field.Optional[byte]
	v, d.err = d.r.Char()
	return v
}

func (d *decoder) int8(width int) field.Optional[int8] {
	if d.err != nil {
		return field.Optional[int8]{}
	}
	var v field.Optional[int8]
	v, d.err = d.r.Int8(width)
	return v
}

func (d *decoder) int16(width int) field.Optional[int16] {
	if d.err != nil {
		return field.Optional[int16]{}
	}
	var v field.Optional[int16]
	v, d.err = d.r.Int16(width)
	return v
}

func (d *decoder) int32(width int) field.Optional[int32] {
	if d.err != nil {
		return field.Optional[int32]{}
	}
	var v field.Optional[int32]
	v, d.err = d.r.Int32(width)
	return v
}

func (d *decoder) float32(width int) field.Optional[float32] {
	if d.err != nil {
		return field.Optional[float32]{}
	}
	var v field.Optional[float32]
	v, d.err = d.r.Float32(width)
	return v
}

func (d *decoder) float64(width int) field.Optional[float64] {
	if d.err != nil {
		return field.Optional[float64]{}
	}
	var v field.Optional[float64]
	v, d.err = d.r.Float64(width)
	return v
}

// required reads an int16 field that must not be blank.
func (d *decoder) required(width int, name string) int16 {
	if d.err != nil {
		return 0
	}
	offset := d.r.Pos()
	v := d.int16(width)
	if d.err != nil {
		return 0
	}
	n, ok := v.Get()
	if !ok {
		d.err = &field.Error{
			Offset: offset,
			Width:  width,
			Kind:   "int16",
			Text:   fmt.Sprintf("%*s", width, ""),
			Err:    fmt.Errorf("required %s is blank", name),
		}
	}
	return n
}

// encoder writes a sequence of fields and keeps the first error.
type encoder struct {
	w   *field.Writer
	err error
}

func (e *encoder) blank(n int) {
	if e.err == nil {
		e.err = e.w.Blank(n)
	}
}

func (e *encoder) str(s string, width int) {
	if e.err == nil {
		e.err = e.w.String(s, width)
	}
}

func (e *encoder) char(c field.Optional[byte]) {
	if e.err == nil {
		e.err = e.w.Char(c)
	}
}

func encInt[T ~int8 | ~int16 | ~int32](e *encoder, v field.Optional[T], width int) {
	if e.err == nil {
		e.err = field.WriteInt(e.w, v, width)
	}
}

func encFloat[T ~float32 | ~float64](e *encoder, v field.Optional[T], width, prec int) {
	if e.err == nil {
		e.err = field.WriteFloat(e.w, v, width, prec)
	}
}

func encFixed[T ~float32 | ~float64](e *encoder, v field.Optional[T], width, prec int) {
	if e.err == nil {
		e.err = field.WriteFixed(e.w, v, width, prec)
	}
}

func (e *encoder) align() {
	if e.err == nil {
		e.err = e.w.Align(BlockSize)
	}
}
