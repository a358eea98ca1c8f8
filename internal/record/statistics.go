package record

import (
	"github.com/robert-malhotra/go-dem/internal/field"
)

// RMSE holds root-mean-square errors along x, y and z and the number of
// samples they were computed from.
type RMSE struct {
	X, Y, Z    int16
	SampleSize int16
}

// Statistics is the type C record: accuracy of the datum and of the DEM.
// Each group is present only when its leading count field is non-zero.
type Statistics struct {
	DatumRMSE field.Optional[RMSE]
	DEMRMSE   field.Optional[RMSE]
}

func (*Statistics) Kind() Kind { return KindStatistics }

// ReadStatistics decodes a statistics record at the reader's position.
func ReadStatistics(r *field.Reader) (*Statistics, error) {
	d := &decoder{r: r}
	s := &Statistics{
		DatumRMSE: d.rmse(),
		DEMRMSE:   d.rmse(),
	}
	d.skip(60)
	if d.err != nil {
		return nil, d.err
	}
	return s, nil
}

func (d *decoder) rmse() field.Optional[RMSE] {
	present := d.int16(6)
	x := d.int16(6)
	y := d.int16(6)
	z := d.int16(6)
	n := d.int16(6)
	if present.Or(0) == 0 {
		return field.Optional[RMSE]{}
	}
	return field.Some(RMSE{X: x.Or(0), Y: y.Or(0), Z: z.Or(0), SampleSize: n.Or(0)})
}

// WriteStatistics encodes s as one block.
func WriteStatistics(w *field.Writer, s *Statistics) error {
	e := &encoder{w: w}
	e.rmse(s.DatumRMSE)
	e.rmse(s.DEMRMSE)
	e.blank(60)
	e.align()
	return e.err
}

func (e *encoder) rmse(v field.Optional[RMSE]) {
	m, ok := v.Get()
	if !ok {
		encInt(e, field.Some(int16(0)), 6)
		e.blank(24)
		return
	}
	encInt(e, field.Some(int16(1)), 6)
	encInt(e, field.Some(m.X), 6)
	encInt(e, field.Some(m.Y), 6)
	encInt(e, field.Some(m.Z), 6)
	encInt(e, field.Some(m.SampleSize), 6)
}
