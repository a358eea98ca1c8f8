package record

import (
	"github.com/robert-malhotra/go-dem/internal/field"
)

// Header is the type A record: metadata for the whole elevation model.
// Every numeric field is optional; a blank field is absent, not zero.
type Header struct {
	FileName           string
	Text               string
	Longitude          field.Optional[DegMinSec]
	Latitude           field.Optional[DegMinSec]
	ProcessCode        field.Optional[byte]
	SectionalIndicator string
	OriginCode         string
	LevelCode          field.Optional[int16]
	ElevationPattern   field.Optional[int16]
	RefSys             field.Optional[int16] // 0 geographic, 1 UTM, 2 state plane
	RefSysZone         field.Optional[int16]
	ProjectionParams   [15]field.Optional[float64]
	HorizontalUnit     field.Optional[int16] // 0 radians, 1 feet, 2 meters, 3 arc-seconds
	VerticalUnit       field.Optional[int16] // 1 feet, 2 meters
	PolygonSides       field.Optional[int16]
	Corners            [4]field.Optional[Corner] // SW, NW, NE, SE
	MinElevation       field.Optional[float64]
	MaxElevation       field.Optional[float64]
	RotationAngle      field.Optional[float64] // radians
	ElevationAccuracy  field.Optional[int16]
	XResolution        field.Optional[float32]
	YResolution        field.Optional[float32]
	ZResolution        field.Optional[float32]
	Rows               field.Optional[int16]
	Columns            field.Optional[int16]

	LargestContourInterval      field.Optional[int16]
	LargestContourIntervalUnit  field.Optional[int8]
	SmallestContourInterval     field.Optional[int16]
	SmallestContourIntervalUnit field.Optional[int8]

	SourceYear         field.Optional[int16]
	RevisionYear       field.Optional[int16]
	InspectionFlag     field.Optional[byte]
	ValidationFlag     field.Optional[int8]
	SuspectVoidFlag    field.Optional[int8]
	VerticalDatum      field.Optional[int8]
	HorizontalDatum    field.Optional[int8]
	DataEdition        field.Optional[int16]
	PercentVoid        field.Optional[int16]
	EdgeMatchFlag      field.Optional[int32]
	VerticalDatumShift field.Optional[float64]
}

func (*Header) Kind() Kind { return KindHeader }

// HasStatistics reports whether the header announces a trailing statistics
// record. An absent validation flag counts as zero.
func (h *Header) HasStatistics() bool {
	return h.ValidationFlag.Or(0) != 0
}

// ReadHeader decodes a header record at the reader's position. On success
// the cursor is exactly one block further.
func ReadHeader(r *field.Reader) (*Header, error) {
	d := &decoder{r: r}
	h := &Header{}

	h.FileName = d.str(40)
	h.Text = d.str(40)
	d.skip(29)
	h.Longitude = d.degMinSec()
	h.Latitude = d.degMinSec()
	h.ProcessCode = d.char()
	d.skip(1)
	h.SectionalIndicator = d.str(3)
	h.OriginCode = d.str(4)
	h.LevelCode = d.int16(6)
	h.ElevationPattern = d.int16(6)
	h.RefSys = d.int16(6)
	h.RefSysZone = d.int16(6)
	for i := range h.ProjectionParams {
		h.ProjectionParams[i] = d.float64(24)
	}
	h.HorizontalUnit = d.int16(6)
	h.VerticalUnit = d.int16(6)
	h.PolygonSides = d.int16(6)
	for i := range h.Corners {
		e := d.float64(24)
		n := d.float64(24)
		if e.Valid() && n.Valid() {
			h.Corners[i] = field.Some(Corner{Easting: e.Or(0), Northing: n.Or(0)})
		}
	}
	h.MinElevation = d.float64(24)
	h.MaxElevation = d.float64(24)
	h.RotationAngle = d.float64(24)
	h.ElevationAccuracy = d.int16(6)
	h.XResolution = d.float32(12)
	h.YResolution = d.float32(12)
	h.ZResolution = d.float32(12)
	h.Rows = d.int16(6)
	h.Columns = d.int16(6)
	h.LargestContourInterval = d.int16(5)
	h.LargestContourIntervalUnit = d.int8(1)
	h.SmallestContourInterval = d.int16(5)
	h.SmallestContourIntervalUnit = d.int8(1)
	h.SourceYear = d.int16(4)
	h.RevisionYear = d.int16(4)
	h.InspectionFlag = d.char()
	h.ValidationFlag = d.int8(1)
	h.SuspectVoidFlag = d.int8(2)
	h.VerticalDatum = d.int8(2)
	h.HorizontalDatum = d.int8(2)
	h.DataEdition = d.int16(4)
	h.PercentVoid = d.int16(4)
	h.EdgeMatchFlag = d.int32(8)
	h.VerticalDatumShift = d.float64(7)
	d.skip(109)

	if d.err != nil {
		return nil, d.err
	}
	return h, nil
}

func (d *decoder) degMinSec() field.Optional[DegMinSec] {
	deg := d.int16(4)
	mins := d.int16(2)
	sec := d.float32(7)
	if !deg.Valid() || !mins.Valid() || !sec.Valid() {
		return field.Optional[DegMinSec]{}
	}
	return field.Some(DegMinSec{Degree: deg.Or(0), Minute: mins.Or(0), Second: sec.Or(0)})
}

// WriteHeader encodes h as one block.
func WriteHeader(w *field.Writer, h *Header) error {
	e := &encoder{w: w}

	e.str(h.FileName, 40)
	e.str(h.Text, 40)
	e.blank(29)
	e.degMinSec(h.Longitude)
	e.degMinSec(h.Latitude)
	e.char(h.ProcessCode)
	e.blank(1)
	e.str(h.SectionalIndicator, 3)
	e.str(h.OriginCode, 4)
	encInt(e, h.LevelCode, 6)
	encInt(e, h.ElevationPattern, 6)
	encInt(e, h.RefSys, 6)
	encInt(e, h.RefSysZone, 6)
	for _, p := range h.ProjectionParams {
		encFloat(e, p, 24, 15)
	}
	encInt(e, h.HorizontalUnit, 6)
	encInt(e, h.VerticalUnit, 6)
	encInt(e, h.PolygonSides, 6)
	for _, c := range h.Corners {
		corner, ok := c.Get()
		if !ok {
			e.blank(48)
			continue
		}
		encFloat(e, field.Some(corner.Easting), 24, 15)
		encFloat(e, field.Some(corner.Northing), 24, 15)
	}
	encFloat(e, h.MinElevation, 24, 15)
	encFloat(e, h.MaxElevation, 24, 15)
	encFloat(e, h.RotationAngle, 24, 15)
	encInt(e, h.ElevationAccuracy, 6)
	encFloat(e, h.XResolution, 12, 5)
	encFloat(e, h.YResolution, 12, 5)
	encFloat(e, h.ZResolution, 12, 5)
	encInt(e, h.Rows, 6)
	encInt(e, h.Columns, 6)
	encInt(e, h.LargestContourInterval, 5)
	encInt(e, h.LargestContourIntervalUnit, 1)
	encInt(e, h.SmallestContourInterval, 5)
	encInt(e, h.SmallestContourIntervalUnit, 1)
	encInt(e, h.SourceYear, 4)
	encInt(e, h.RevisionYear, 4)
	e.char(h.InspectionFlag)
	encInt(e, h.ValidationFlag, 1)
	encInt(e, h.SuspectVoidFlag, 2)
	encInt(e, h.VerticalDatum, 2)
	encInt(e, h.HorizontalDatum, 2)
	encInt(e, h.DataEdition, 4)
	encInt(e, h.PercentVoid, 4)
	encInt(e, h.EdgeMatchFlag, 8)
	encFixed(e, h.VerticalDatumShift, 7, 2)
	e.blank(109)

	return e.err
}

func (e *encoder) degMinSec(v field.Optional[DegMinSec]) {
	dms, ok := v.Get()
	if !ok {
		e.blank(13)
		return
	}
	encInt(e, field.Some(dms.Degree), 4)
	encInt(e, field.Some(dms.Minute), 2)
	encFixed(e, field.Some(dms.Second), 7, 2)
}
