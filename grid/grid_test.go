package grid

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridResizeKeepsMaskInLockstep(t *testing.T) {
	g := New(3, 2)
	g.SetElevation(0, 1, 10)
	g.SetElevation(2, 0, 20)
	g.SetUnknown(1, 1, true)
	g.SetUnknown(2, 1, true)

	g.Resize(3, 4)
	assert.Equal(t, 10.0, g.Elevation(0, 1))
	assert.Equal(t, 20.0, g.Elevation(2, 0))
	assert.True(t, g.Unknown(1, 1))
	assert.True(t, g.Unknown(2, 1))
	assert.False(t, g.Unknown(1, 2))
	assert.Equal(t, 2, g.UnknownElevations().Count())

	g.Resize(2, 1)
	assert.Equal(t, 0.0, g.Elevation(0, 0))
	assert.False(t, g.Unknown(1, 0))
	assert.Equal(t, 0, g.UnknownElevations().Count())
}

func TestGridUnknownElevationValue(t *testing.T) {
	g := New(1, 2)
	g.SetUnknownElevation(-32767)
	g.MutableElevations().Set(0, 1, -32767)

	assert.False(t, g.Unknown(0, 0))
	assert.True(t, g.Unknown(0, 1))
	u, ok := g.UnknownElevation()
	require.True(t, ok)
	assert.Equal(t, -32767.0, u)

	g.ClearUnknownElevation()
	assert.False(t, g.Unknown(0, 1))
}

func TestGridViews(t *testing.T) {
	g := New(3, 3)
	mv, err := g.MutableView(1, 1, 2, 2)
	require.NoError(t, err)
	mv.Fill(4)

	v, err := g.View(0, 1, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 4, 4, 4, 4}, v.Values())

	_, err = g.View(2, 2, 2, 1)
	assert.ErrorIs(t, err, ErrInvalidGridState)
	_, err = g.View(-1, 0, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidGridState)
}

func TestGridRelease(t *testing.T) {
	g := New(2, 2)
	g.SetElevation(1, 1, 3)
	g.SetRowAxis(Axis{Resolution: 30, Unit: Meters})

	data := g.Release()
	assert.Equal(t, []float64{0, 0, 0, 3}, data)
	assert.True(t, g.Empty())
	assert.Equal(t, 0, g.Rows())
	assert.Equal(t, Axis{Resolution: 30, Unit: Meters}, g.RowAxis())

	_, err := g.View(0, 0, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidGridState)
	_, err = g.Subgrid(0, 0, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidGridState)
}

func TestGridClear(t *testing.T) {
	g := New(2, 2)
	g.SetUnknownElevation(1)
	g.SetPlanarCoords(PlanarCoords{Easting: 1})
	g.Clear()

	assert.True(t, g.Empty())
	_, ok := g.UnknownElevation()
	assert.False(t, ok)
	_, ok = g.PlanarCoords()
	assert.False(t, ok)
	assert.Equal(t, CounterClockwise, g.AxisOrientation())
}

func TestSubgridAnchors(t *testing.T) {
	g := New(4, 5)
	g.SetRowAxis(Axis{Resolution: 30, Unit: Meters})
	g.SetColumnAxis(Axis{Resolution: 10, Unit: Meters})
	g.SetPlanarCoords(PlanarCoords{Easting: 1000, Northing: 2000, Zone: 10})
	g.SetSphericalCoords(SphericalCoords{Latitude: 46.75, Longitude: -121.875})
	g.SetUnknown(2, 3, true)

	origin, err := g.Subgrid(0, 0, 2, 2)
	require.NoError(t, err)
	_, ok := origin.SphericalCoords()
	assert.True(t, ok)
	p, _ := origin.PlanarCoords()
	assert.Equal(t, PlanarCoords{Easting: 1000, Northing: 2000, Zone: 10}, p)

	sub, err := g.Subgrid(2, 3, 2, 2)
	require.NoError(t, err)
	_, ok = sub.SphericalCoords()
	assert.False(t, ok)
	p, ok = sub.PlanarCoords()
	require.True(t, ok)
	assert.InDelta(t, 1060, p.Easting, 1e-9)
	assert.InDelta(t, 2030, p.Northing, 1e-9)
	assert.Equal(t, 10, p.Zone)
	assert.True(t, sub.Unknown(0, 0))
	assert.Equal(t, g, sub.Grid())
	assert.Equal(t, g.RowAxis(), sub.RowAxis())

	_, err = g.Subgrid(3, 3, 2, 2)
	assert.ErrorIs(t, err, ErrInvalidGridState)
}

func TestSubgridRotatedClockwise(t *testing.T) {
	g := New(3, 3)
	g.SetRowAxis(Axis{Resolution: 2})
	g.SetColumnAxis(Axis{Resolution: 1})
	g.SetAxisOrientation(Clockwise)
	g.SetRotationAngle(math.Pi / 2)
	g.SetPlanarCoords(PlanarCoords{})

	sub, err := g.Subgrid(1, 1, 1, 1)
	require.NoError(t, err)
	p, _ := sub.PlanarCoords()
	// Row step (0, 2); clockwise column step rotated from (0, -1) is (1, 0).
	assert.InDelta(t, 1, p.Easting, 1e-9)
	assert.InDelta(t, 2, p.Northing, 1e-9)
}

func TestUnitConversion(t *testing.T) {
	feet := Axis{Resolution: 30, Unit: Feet}
	meters := feet.ConvertTo(Meters)
	assert.Equal(t, Meters, meters.Unit)
	assert.InDelta(t, 30*MetersPerFoot, meters.Resolution, 1e-12)

	back := meters.ConvertTo(Feet)
	assert.Equal(t, Feet, back.Unit)
	assert.InDelta(t, 30, back.Resolution, 1e-9)

	arc := Axis{Resolution: 3, Unit: ArcSeconds}
	assert.Equal(t, arc, arc.ConvertTo(Meters))
	assert.Equal(t, feet, feet.ConvertTo(Undefined))

	f, ok := ConversionFactor(Meters, Meters)
	assert.True(t, ok)
	assert.Equal(t, 1.0, f)
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in   string
		want Unit
	}{
		{"m", Meters},
		{"f", Feet},
		{"r", Undefined},
		{"arc-seconds", ArcSeconds},
	}
	for _, tt := range tests {
		got, err := ParseUnit(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	_, err := ParseUnit("furlongs")
	assert.Error(t, err)
}

func TestUnitText(t *testing.T) {
	for _, u := range []Unit{Undefined, Feet, Meters, ArcSeconds} {
		text, err := u.MarshalText()
		require.NoError(t, err)
		var got Unit
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, u, got)
	}

	var d RotationDir
	require.NoError(t, d.UnmarshalText([]byte("counter-clockwise")))
	assert.Equal(t, CounterClockwise, d)
	assert.Error(t, d.UnmarshalText([]byte("widdershins")))
}

func TestGridCellAccessOutOfRange(t *testing.T) {
	cellPanic := func(fn func()) (err error) {
		defer func() {
			err, _ = recover().(error)
		}()
		fn()
		return nil
	}

	g := New(2, 3)
	err := cellPanic(func() { g.Elevation(2, 0) })
	assert.True(t, errors.Is(err, ErrInvalidGridState), "got %v", err)
	err = cellPanic(func() { g.SetUnknown(0, 3, true) })
	assert.True(t, errors.Is(err, ErrInvalidGridState), "got %v", err)

	g.Release()
	err = cellPanic(func() { g.Elevation(0, 0) })
	assert.True(t, errors.Is(err, ErrInvalidGridState), "got %v", err)
	err = cellPanic(func() { g.Unknown(0, 0) })
	assert.True(t, errors.Is(err, ErrInvalidGridState), "got %v", err)
	err = cellPanic(func() { g.SetElevation(0, 0, 1) })
	assert.True(t, errors.Is(err, ErrInvalidGridState), "got %v", err)
}
