package record

import (
	"fmt"

	"github.com/robert-malhotra/go-dem/internal/field"
)

// Profile is the type B record: one column of elevation samples.
type Profile struct {
	Row           int16 // 1-based row of the first sample
	Column        int16 // 1-based column of the profile
	Rows          int16 // samples along the profile
	Columns       int16 // normally 1
	X             field.Optional[float64]
	Y             field.Optional[float64]
	ElevationBase field.Optional[float64] // local datum elevation
	MinElevation  field.Optional[float64]
	MaxElevation  field.Optional[float64]
	Elevations    []int32 // Rows*Columns samples, column-major
}

func (*Profile) Kind() Kind { return KindProfile }

// Sample returns the raw sample at the given offset within the profile.
func (p *Profile) Sample(column, row int) int32 {
	return p.Elevations[column*int(p.Rows)+row]
}

// ReadProfile decodes a profile record at the reader's position, which must
// be on a block boundary. The cursor ends on the next block boundary.
// Blank samples decode as UnknownSample.
func ReadProfile(r *field.Reader) (*Profile, error) {
	d := &decoder{r: r}
	p := &Profile{}

	start := r.Pos()
	p.Row = d.required(6, "row")
	p.Column = d.required(6, "column")
	p.Rows = d.required(6, "rows")
	p.Columns = d.required(6, "columns")
	p.X = d.float64(24)
	p.Y = d.float64(24)
	p.ElevationBase = d.float64(24)
	p.MinElevation = d.float64(24)
	p.MaxElevation = d.float64(24)
	if d.err != nil {
		return nil, d.err
	}

	if p.Row < 1 || p.Column < 1 {
		return nil, &field.Error{
			Offset: start,
			Width:  12,
			Kind:   "int16",
			Text:   fmt.Sprintf("%6d%6d", p.Row, p.Column),
			Err:    fmt.Errorf("profile origin (%d, %d) is not 1-based", p.Row, p.Column),
		}
	}
	if p.Rows < 0 || p.Columns < 0 {
		return nil, &field.Error{
			Offset: start + 12,
			Width:  12,
			Kind:   "int16",
			Text:   fmt.Sprintf("%6d%6d", p.Rows, p.Columns),
			Err:    fmt.Errorf("negative profile extent %dx%d", p.Rows, p.Columns),
		}
	}

	count := int64(p.Rows) * int64(p.Columns)
	if count*sampleWidth > r.Remaining() {
		return nil, fmt.Errorf("%w: profile at offset %d declares %d samples, %d bytes left",
			field.ErrTruncated, start, count, r.Remaining())
	}

	p.Elevations = make([]int32, count)
	for i := range p.Elevations {
		if r.Pos()%BlockSize+sampleWidth > BlockSize {
			r.Align(BlockSize)
		}
		v := d.int32(sampleWidth)
		if d.err != nil {
			return nil, d.err
		}
		p.Elevations[i] = v.Or(UnknownSample)
	}
	r.Align(BlockSize)
	return p, nil
}

// WriteProfile encodes p, padding the last block.
func WriteProfile(w *field.Writer, p *Profile) error {
	if want := int(p.Rows) * int(p.Columns); want != len(p.Elevations) {
		return fmt.Errorf("profile declares %d samples, has %d", want, len(p.Elevations))
	}
	e := &encoder{w: w}
	encInt(e, field.Some(p.Row), 6)
	encInt(e, field.Some(p.Column), 6)
	encInt(e, field.Some(p.Rows), 6)
	encInt(e, field.Some(p.Columns), 6)
	encFloat(e, p.X, 24, 15)
	encFloat(e, p.Y, 24, 15)
	encFloat(e, p.ElevationBase, 24, 15)
	encFloat(e, p.MinElevation, 24, 15)
	encFloat(e, p.MaxElevation, 24, 15)
	for _, v := range p.Elevations {
		if e.err == nil && w.Pos()%BlockSize+sampleWidth > BlockSize {
			e.align()
		}
		encInt(e, field.Some(v), sampleWidth)
	}
	e.align()
	return e.err
}

// ProfileBlocks returns the number of blocks occupied by a profile with n
// samples.
func ProfileBlocks(n int) int {
	first := (BlockSize - profilePreamble) / sampleWidth
	if n <= first {
		return 1
	}
	rest := BlockSize / sampleWidth
	return 1 + (n-first+rest-1)/rest
}
