package dem

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-kit/log/level"

	"github.com/robert-malhotra/go-dem/grid"
	"github.com/robert-malhotra/go-dem/internal/record"
)

// Reference system codes of the header.
const (
	refSysGeographic = 0
	refSysUTM        = 1
	refSysStatePlane = 2
)

// UnitFromCode maps a header unit code to a grid unit. Radians and unknown
// codes map to grid.Undefined.
func UnitFromCode(code Optional[int16]) grid.Unit {
	switch code.Or(0) {
	case 1:
		return grid.Feet
	case 2:
		return grid.Meters
	case 3:
		return grid.ArcSeconds
	default:
		return grid.Undefined
	}
}

// ReadGrid decodes all profiles into an elevation grid. It must be called
// before any profile is read with Next.
//
// Profiles are columns in the file; the grid is stored with one profile per
// grid row, so a sample at profile position (row, column) lands at grid
// position (column-1, row-1). Cells no profile covers are unknown. Any decode
// error discards the grid.
func (d *Decoder) ReadGrid(opts ...GridOption) (*grid.Grid, error) {
	o := &gridOptions{}
	for _, opt := range opts {
		opt(o)
	}

	if err := d.it.Err(); err != nil {
		return nil, err
	}
	h, err := d.Header()
	if err != nil {
		return nil, err
	}
	if _, err := d.Statistics(); err != nil {
		return nil, err
	}
	if d.it.State() >= record.StateProfiles {
		return nil, ErrConsumed
	}

	b := newBuilder(h, o)
	for {
		p, err := d.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := b.add(p); err != nil {
			return nil, d.fail(err)
		}
		if clipped := b.clippedInProfile; clipped > 0 {
			level.Warn(d.logger).Log("msg", "profile samples outside grid dropped",
				"row", p.Row, "column", p.Column, "dropped", clipped,
				"rows", b.g.Rows(), "columns", b.g.Columns())
		}
		d.opts.metrics.unknown(b.unknownInProfile)
		d.opts.metrics.clipped(b.clippedInProfile)

		if o.progress != nil && !o.progress(int64(b.profiles), b.expected) {
			return nil, d.fail(fmt.Errorf("%w after %d of %d profiles", ErrCanceled, b.profiles, b.expected))
		}
	}

	level.Debug(d.logger).Log("msg", "grid built", "rows", b.g.Rows(), "columns", b.g.Columns(),
		"profiles", b.profiles, "unknown", b.unknown, "dropped", b.clipped)
	return b.finish(), nil
}

type builder struct {
	h        *Header
	opts     *gridOptions
	g        *grid.Grid
	factor   float64
	hfactor  float64
	zres     float64
	rows     int
	columns  int
	expected int64
	sized    bool

	profiles         int
	unknown          int
	clipped          int
	unknownInProfile int
	clippedInProfile int
}

func newBuilder(h *Header, o *gridOptions) *builder {
	b := &builder{h: h, opts: o, g: &grid.Grid{}}
	b.g.SetAxisOrientation(grid.CounterClockwise)

	hunit := UnitFromCode(h.HorizontalUnit)
	vunit := UnitFromCode(h.VerticalUnit)

	b.factor = 1
	if o.unit != grid.Undefined {
		if f, ok := grid.ConversionFactor(vunit, o.unit); ok {
			b.factor = f
			vunit = o.unit
		}
	}
	b.hfactor = 1
	if o.unit != grid.Undefined {
		if f, ok := grid.ConversionFactor(hunit, o.unit); ok {
			b.hfactor = f
			hunit = o.unit
		}
	}

	b.zres = float64(h.ZResolution.Or(1))
	b.g.SetRowAxis(grid.Axis{Resolution: float64(h.XResolution.Or(1)) * b.hfactor, Unit: hunit})
	b.g.SetColumnAxis(grid.Axis{Resolution: float64(h.YResolution.Or(1)) * b.hfactor, Unit: hunit})
	b.g.SetVerticalAxis(grid.Axis{Resolution: b.zres * b.factor, Unit: vunit})
	b.g.SetRotationAngle(h.RotationAngle.Or(0))

	lon, lonOK := h.Longitude.Get()
	lat, latOK := h.Latitude.Get()
	if lonOK && latOK {
		b.g.SetSphericalCoords(grid.SphericalCoords{Latitude: lat.Degrees(), Longitude: lon.Degrees()})
	}
	if h.HorizontalDatum.Valid() || h.VerticalDatum.Valid() {
		b.g.SetReferenceSystem(grid.ReferenceSystem{
			Horizontal: int(h.HorizontalDatum.Or(0)),
			Vertical:   int(h.VerticalDatum.Or(0)),
		})
	}
	if !o.mask {
		b.g.SetUnknownElevation(b.unknownValue())
	}

	b.rows = max(int(h.Columns.Or(1)), 0)
	b.expected = int64(b.rows)
	return b
}

func (b *builder) unknownValue() float64 {
	return UnknownSample * b.factor
}

// size allocates the grid on the first profile, when a degenerate header
// row count can be replaced by the profile's.
func (b *builder) size(p *Profile) {
	b.sized = true
	rows := int(b.h.Rows.Or(1))
	if rows == 1 {
		rows = int(p.Rows)
	}
	b.columns = max(rows, 0)
	b.g.Resize(b.rows, b.columns)
	b.g.MutableElevations().Fill(b.unknownValue())
	b.g.MutableUnknownElevations().Fill(b.opts.mask)
}

func (b *builder) add(p *Profile) error {
	if !b.sized {
		b.size(p)
	}
	b.profiles++
	b.unknownInProfile, b.clippedInProfile = 0, 0

	if p.Row == 1 && p.Column == 1 {
		b.setPlanarAnchor(p)
	}

	base := p.ElevationBase.Or(0)
	unknown := b.unknownValue()
	rows, columns := int(p.Rows), int(p.Columns)
	for i := 0; i < columns; i++ {
		gr := int(p.Column) - 1 + i
		for j := 0; j < rows; j++ {
			gc := int(p.Row) - 1 + j
			if gr >= b.rows || gc >= b.columns {
				if b.opts.strict {
					return &ExtentError{
						ProfileRow:    int(p.Row),
						ProfileColumn: int(p.Column),
						Row:           gr,
						Column:        gc,
						Rows:          b.rows,
						Columns:       b.columns,
					}
				}
				b.clippedInProfile++
				continue
			}

			sample := p.Elevations[i*rows+j]
			if sample == UnknownSample {
				b.unknownInProfile++
				b.g.MutableElevations().Set(gr, gc, unknown)
				b.g.SetUnknown(gr, gc, b.opts.mask)
				continue
			}
			b.g.SetElevation(gr, gc, (base+float64(sample)*b.zres)*b.factor)
		}
	}
	b.unknown += b.unknownInProfile
	b.clipped += b.clippedInProfile
	return nil
}

func (b *builder) setPlanarAnchor(p *Profile) {
	refSys := b.h.RefSys.Or(refSysGeographic)
	if refSys != refSysUTM && refSys != refSysStatePlane {
		return
	}
	x, xOK := p.X.Get()
	y, yOK := p.Y.Get()
	if !xOK || !yOK {
		return
	}
	b.g.SetPlanarCoords(grid.PlanarCoords{
		Easting:  x * b.hfactor,
		Northing: y * b.hfactor,
		Zone:     int(b.h.RefSysZone.Or(0)),
	})
}

func (b *builder) finish() *grid.Grid {
	if !b.sized {
		// No profiles: the grid keeps its header extent with every cell
		// unknown.
		b.size(&Profile{Rows: 1})
	}
	return b.g
}
