package record

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-dem/internal/field"
)

func testHeader() *Header {
	return &Header{
		FileName:           "MOUNT RAINIER WEST",
		Text:               "7.5 MINUTE DEM",
		Longitude:          field.Some(DegMinSec{Degree: -121, Minute: 52, Second: 30}),
		Latitude:           field.Some(DegMinSec{Degree: 46, Minute: 45, Second: 0}),
		ProcessCode:        field.Some(byte('2')),
		SectionalIndicator: "F01",
		OriginCode:         "WMC",
		LevelCode:          field.Some(int16(2)),
		ElevationPattern:   field.Some(int16(1)),
		RefSys:             field.Some(int16(1)),
		RefSysZone:         field.Some(int16(10)),
		HorizontalUnit:     field.Some(int16(2)),
		VerticalUnit:       field.Some(int16(2)),
		PolygonSides:       field.Some(int16(4)),
		Corners: [4]field.Optional[Corner]{
			field.Some(Corner{Easting: 587000, Northing: 5176000}),
			field.Some(Corner{Easting: 587000, Northing: 5190000}),
			field.Some(Corner{Easting: 597000, Northing: 5190000}),
			field.Some(Corner{Easting: 597000, Northing: 5176000}),
		},
		MinElevation:       field.Some(412.5),
		MaxElevation:       field.Some(4392.25),
		RotationAngle:      field.Some(0.0),
		ElevationAccuracy:  field.Some(int16(0)),
		XResolution:        field.Some(float32(30)),
		YResolution:        field.Some(float32(30)),
		ZResolution:        field.Some(float32(1)),
		Rows:               field.Some(int16(1)),
		Columns:            field.Some(int16(3)),
		SourceYear:         field.Some(int16(1998)),
		ValidationFlag:     field.Some(int8(1)),
		VerticalDatum:      field.Some(int8(2)),
		HorizontalDatum:    field.Some(int8(4)),
		EdgeMatchFlag:      field.Some(int32(1010)),
		VerticalDatumShift: field.Some(-1.25),
	}
}

func testProfile(column, rows int16, first int32) *Profile {
	p := &Profile{
		Row:           1,
		Column:        column,
		Rows:          rows,
		Columns:       1,
		X:             field.Some(587000 + 30*float64(column-1)),
		Y:             field.Some(5176000.0),
		ElevationBase: field.Some(0.0),
		MinElevation:  field.Some(float64(first)),
		MaxElevation:  field.Some(float64(first + int32(rows) - 1)),
		Elevations:    make([]int32, rows),
	}
	for i := range p.Elevations {
		p.Elevations[i] = first + int32(i)
	}
	return p
}

func encodeFile(t *testing.T, h *Header, stats *Statistics, profiles ...*Profile) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := field.NewWriter(&buf)
	require.NoError(t, WriteHeader(w, h))
	for _, p := range profiles {
		require.NoError(t, WriteProfile(w, p))
	}
	if stats != nil {
		require.NoError(t, WriteStatistics(w, stats))
	}
	return buf.Bytes()
}

func newFieldReader(b []byte) *field.Reader {
	return field.NewReader(bytes.NewReader(b), int64(len(b)))
}

func TestHeaderRoundTrip(t *testing.T) {
	want := testHeader()

	var buf bytes.Buffer
	require.NoError(t, WriteHeader(field.NewWriter(&buf), want))
	require.Equal(t, BlockSize, buf.Len())

	r := newFieldReader(buf.Bytes())
	got, err := ReadHeader(r)
	require.NoError(t, err)
	assert.Equal(t, int64(BlockSize), r.Pos())
	assert.Equal(t, want, got)
	assert.True(t, got.HasStatistics())
	assert.Equal(t, KindHeader, got.Kind())
}

func TestReadHeaderBlankBlock(t *testing.T) {
	r := newFieldReader([]byte(strings.Repeat(" ", BlockSize)))
	h, err := ReadHeader(r)
	require.NoError(t, err)
	assert.Equal(t, int64(BlockSize), r.Pos())

	assert.Equal(t, "", h.FileName)
	assert.False(t, h.Rows.Valid())
	assert.False(t, h.Columns.Valid())
	assert.False(t, h.XResolution.Valid())
	assert.False(t, h.Longitude.Valid())
	assert.False(t, h.Corners[0].Valid())
	assert.False(t, h.HasStatistics())
}

func TestReadHeaderMalformed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHeader(field.NewWriter(&buf), testHeader()))
	b := buf.Bytes()
	// RefSys lives at offset 156.
	copy(b[156:162], "  UTM ")

	_, err := ReadHeader(newFieldReader(b))
	require.Error(t, err)
	assert.ErrorIs(t, err, field.ErrMalformed)

	var fe *field.Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, int64(156), fe.Offset)
	assert.Equal(t, 6, fe.Width)
}

func TestReadHeaderTruncated(t *testing.T) {
	_, err := ReadHeader(newFieldReader([]byte(strings.Repeat(" ", 500))))
	assert.ErrorIs(t, err, field.ErrTruncated)
}

func TestProfileBlocks(t *testing.T) {
	tests := []struct {
		samples int
		blocks  int
	}{
		{0, 1},
		{1, 1},
		{146, 1},
		{147, 2},
		{316, 2},
		{317, 3},
		{400, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.blocks, ProfileBlocks(tt.samples), "%d samples", tt.samples)
	}
}

func TestProfileSpansBlocks(t *testing.T) {
	want := testProfile(1, 400, 100)

	var buf bytes.Buffer
	require.NoError(t, WriteProfile(field.NewWriter(&buf), want))
	require.Equal(t, 3*BlockSize, buf.Len())

	b := buf.Bytes()
	// Sample 146 does not fit in the first block and starts the second.
	assert.Equal(t, "   246", string(b[BlockSize:BlockSize+6]))
	assert.Equal(t, "    ", string(b[BlockSize-4:BlockSize]))

	r := newFieldReader(b)
	got, err := ReadProfile(r)
	require.NoError(t, err)
	assert.Equal(t, int64(3*BlockSize), r.Pos())
	assert.Equal(t, want, got)
	assert.Equal(t, int32(100), got.Sample(0, 0))
	assert.Equal(t, int32(499), got.Sample(0, 399))
}

func TestReadProfileBlankSampleIsUnknown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteProfile(field.NewWriter(&buf), testProfile(2, 3, 7)))
	b := buf.Bytes()
	copy(b[profilePreamble:profilePreamble+sampleWidth], "      ")

	p, err := ReadProfile(newFieldReader(b))
	require.NoError(t, err)
	assert.Equal(t, []int32{UnknownSample, 8, 9}, p.Elevations)
}

func TestReadProfileRejectsBadOrigin(t *testing.T) {
	p := testProfile(1, 2, 0)
	p.Row = 0

	var buf bytes.Buffer
	require.NoError(t, WriteProfile(field.NewWriter(&buf), p))

	_, err := ReadProfile(newFieldReader(buf.Bytes()))
	assert.ErrorIs(t, err, field.ErrMalformed)
}

func TestReadProfileBlankOrigin(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteProfile(field.NewWriter(&buf), testProfile(1, 2, 0)))
	b := buf.Bytes()
	copy(b[6:12], "      ")

	_, err := ReadProfile(newFieldReader(b))
	require.Error(t, err)
	assert.ErrorIs(t, err, field.ErrMalformed)
	assert.Contains(t, err.Error(), "column")
}

func TestReadProfileTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteProfile(field.NewWriter(&buf), testProfile(1, 400, 0)))

	_, err := ReadProfile(newFieldReader(buf.Bytes()[:BlockSize]))
	assert.ErrorIs(t, err, field.ErrTruncated)
}

func TestWriteProfileSampleCountMismatch(t *testing.T) {
	p := testProfile(1, 3, 0)
	p.Elevations = p.Elevations[:2]
	assert.Error(t, WriteProfile(field.NewWriter(io.Discard), p))
}

func TestStatisticsRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		stats *Statistics
	}{
		{"both", &Statistics{
			DatumRMSE: field.Some(RMSE{X: 1, Y: 2, Z: 3, SampleSize: 28}),
			DEMRMSE:   field.Some(RMSE{X: 0, Y: 0, Z: 2, SampleSize: 30}),
		}},
		{"dem only", &Statistics{
			DEMRMSE: field.Some(RMSE{Z: 4, SampleSize: 12}),
		}},
		{"none", &Statistics{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteStatistics(field.NewWriter(&buf), tt.stats))
			require.Equal(t, BlockSize, buf.Len())

			got, err := ReadStatistics(newFieldReader(buf.Bytes()))
			require.NoError(t, err)
			assert.Equal(t, tt.stats, got)
		})
	}
}

func TestDegMinSec(t *testing.T) {
	tests := []struct {
		dms  DegMinSec
		want float64
	}{
		{DegMinSec{Degree: 46, Minute: 45}, 46.75},
		{DegMinSec{Degree: -121, Minute: 52, Second: 30}, -121.875},
		{DegMinSec{Minute: -30}, -0.5},
		{DegMinSec{Second: -36}, -0.01},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, tt.dms.Degrees(), 1e-9, tt.dms.String())
	}
}

func TestIteratorSequence(t *testing.T) {
	h := testHeader()
	stats := &Statistics{DEMRMSE: field.Some(RMSE{Z: 2, SampleSize: 30})}
	b := encodeFile(t, h, stats, testProfile(1, 2, 10), testProfile(2, 2, 20))
	require.Len(t, b, 4*BlockSize)

	it := NewIterator(newFieldReader(b))
	assert.Equal(t, StateStart, it.State())

	got, err := it.Header()
	require.NoError(t, err)
	assert.Equal(t, h, got)
	assert.Equal(t, StateHeaderRead, it.State())

	s, err := it.Statistics()
	require.NoError(t, err)
	assert.Equal(t, stats, s)
	assert.Equal(t, StateTrailerProbed, it.State())

	p, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, []int32{10, 11}, p.Elevations)
	assert.Equal(t, StateProfiles, it.State())

	p, err = it.Next()
	require.NoError(t, err)
	assert.Equal(t, []int32{20, 21}, p.Elevations)

	_, err = it.Next()
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, StateDone, it.State())

	_, err = it.Next()
	assert.ErrorIs(t, err, io.EOF)

	// Cached accessors keep working after the last profile.
	s, err = it.Statistics()
	require.NoError(t, err)
	assert.Equal(t, stats, s)
}

func TestIteratorNextWithoutHeaderCall(t *testing.T) {
	b := encodeFile(t, testHeader(), &Statistics{}, testProfile(1, 400, 0))

	it := NewIterator(newFieldReader(b))
	p, err := it.Next()
	require.NoError(t, err)
	assert.Len(t, p.Elevations, 400)

	_, err = it.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestIteratorWithoutTrailer(t *testing.T) {
	h := testHeader()
	h.ValidationFlag = field.Optional[int8]{}
	b := encodeFile(t, h, nil, testProfile(1, 2, 1), testProfile(2, 2, 3), testProfile(3, 2, 5))

	it := NewIterator(newFieldReader(b))
	s, err := it.Statistics()
	require.NoError(t, err)
	assert.Nil(t, s)

	var n int
	for {
		_, err := it.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		n++
	}
	assert.Equal(t, 3, n)
}

func TestIteratorTrailerOnly(t *testing.T) {
	b := encodeFile(t, testHeader(), &Statistics{})

	it := NewIterator(newFieldReader(b))
	_, err := it.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestIteratorAnnouncedTrailerMissing(t *testing.T) {
	b := encodeFile(t, testHeader(), nil)
	require.Len(t, b, BlockSize)

	it := NewIterator(newFieldReader(b))
	s, err := it.Statistics()
	require.NoError(t, err)
	assert.Nil(t, s)

	_, err = it.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestIteratorMissingHeader(t *testing.T) {
	for _, size := range []int{0, 1, BlockSize - 1} {
		t.Run(fmt.Sprint(size), func(t *testing.T) {
			it := NewIterator(newFieldReader([]byte(strings.Repeat(" ", size))))

			_, err := it.Header()
			assert.ErrorIs(t, err, ErrMissingHeader)
			assert.Equal(t, StateDone, it.State())

			_, err = it.Next()
			assert.ErrorIs(t, err, ErrMissingHeader)
		})
	}
}

func TestIteratorMalformedProfileAborts(t *testing.T) {
	h := testHeader()
	b := encodeFile(t, h, &Statistics{}, testProfile(1, 2, 10), testProfile(2, 2, 20), testProfile(3, 2, 30))
	copy(b[2*BlockSize:2*BlockSize+6], "  abc ")

	it := NewIterator(newFieldReader(b))
	_, err := it.Next()
	require.NoError(t, err)

	_, err = it.Next()
	require.Error(t, err)
	assert.ErrorIs(t, err, field.ErrMalformed)
	assert.Contains(t, err.Error(), "offset 2048")
	assert.Equal(t, StateDone, it.State())

	_, err = it.Next()
	assert.ErrorIs(t, err, field.ErrMalformed)
}
