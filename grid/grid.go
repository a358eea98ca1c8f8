package grid

import (
	"errors"
	"fmt"
)

// ErrInvalidGridState is returned by grid operations that need elevations
// when the grid is empty or has been released, and by view constructors
// whose rectangle does not fit the grid.
var ErrInvalidGridState = errors.New("invalid grid state")

// Grid is a dense elevation grid with its georeferencing metadata.
//
// Elevations are stored row-major. A parallel bit mask marks unknown cells;
// it is resized together with the elevations so both always share the same
// extent. A Grid is not safe for concurrent mutation.
type Grid struct {
	elevations Array2D[float64]
	unknown    BitArray2D

	rowAxis      Axis
	columnAxis   Axis
	verticalAxis Axis

	unknownElevation *float64
	spherical        *SphericalCoords
	planar           *PlanarCoords
	rotationAngle    float64
	orientation      RotationDir
	referenceSystem  *ReferenceSystem
}

// New returns a grid with the given extent. All elevations are zero and all
// cells are known.
func New(rows, columns int) *Grid {
	g := &Grid{orientation: CounterClockwise}
	g.Resize(rows, columns)
	return g
}

func (g *Grid) Rows() int    { return g.elevations.Rows() }
func (g *Grid) Columns() int { return g.elevations.Columns() }

// Empty reports whether the grid has no cells.
func (g *Grid) Empty() bool { return g.elevations.Empty() }

// Resize changes the extent, keeping every cell that exists in both extents
// at its (row, column) position. New cells are zero and known.
func (g *Grid) Resize(rows, columns int) {
	g.elevations.Resize(rows, columns)
	g.unknown.Resize(rows, columns)
}

// Clear removes all cells and metadata.
func (g *Grid) Clear() {
	*g = Grid{orientation: CounterClockwise}
}

// Release hands the row-major elevation buffer to the caller and leaves the
// grid empty. Metadata is kept.
func (g *Grid) Release() []float64 {
	g.unknown.Release()
	return g.elevations.Release()
}

// checkCell panics with an error wrapping ErrInvalidGridState when (row,
// column) is outside the grid, including every cell of an empty or released
// grid. View and Subgrid are the checked entry points that return the error
// instead.
func (g *Grid) checkCell(row, column int) {
	if uint(row) >= uint(g.Rows()) || uint(column) >= uint(g.Columns()) {
		panic(fmt.Errorf("%w: cell (%d, %d) outside %dx%d grid",
			ErrInvalidGridState, row, column, g.Rows(), g.Columns()))
	}
}

// Elevation returns the elevation at (row, column). It panics when the cell
// is outside the grid.
func (g *Grid) Elevation(row, column int) float64 {
	g.checkCell(row, column)
	return g.elevations.At(row, column)
}

// SetElevation stores an elevation at (row, column) and marks the cell
// known.
func (g *Grid) SetElevation(row, column int, v float64) {
	g.checkCell(row, column)
	g.elevations.Set(row, column, v)
	g.unknown.Set(row, column, false)
}

// Unknown reports whether the cell at (row, column) has no elevation: its
// mask bit is set or its value equals the unknown elevation.
func (g *Grid) Unknown(row, column int) bool {
	g.checkCell(row, column)
	if g.unknown.Get(row, column) {
		return true
	}
	u, ok := g.UnknownElevation()
	return ok && g.elevations.At(row, column) == u
}

// SetUnknown sets or clears the mask bit of the cell at (row, column).
func (g *Grid) SetUnknown(row, column int, v bool) {
	g.checkCell(row, column)
	g.unknown.Set(row, column, v)
}

// Elevations returns a read-only view of all elevations.
func (g *Grid) Elevations() ArrayView2D[float64] {
	return g.elevations.View()
}

// MutableElevations returns a writable view of all elevations.
func (g *Grid) MutableElevations() MutableArrayView2D[float64] {
	return g.elevations.MutableView()
}

// UnknownElevations returns a read-only view of the unknown mask.
func (g *Grid) UnknownElevations() BitArrayView2D {
	return g.unknown.View()
}

// MutableUnknownElevations returns a writable view of the unknown mask.
func (g *Grid) MutableUnknownElevations() MutableBitArrayView2D {
	return g.unknown.MutableView()
}

func (g *Grid) checkRect(row, column, rows, columns int) error {
	if g.Empty() {
		return fmt.Errorf("%w: grid is empty", ErrInvalidGridState)
	}
	if !fits(g.Rows(), g.Columns(), row, column, rows, columns) {
		return fmt.Errorf("%w: rectangle (%d, %d)+%dx%d outside %dx%d grid",
			ErrInvalidGridState, row, column, rows, columns, g.Rows(), g.Columns())
	}
	return nil
}

// View returns a read-only view of the elevations in the given rectangle.
func (g *Grid) View(row, column, rows, columns int) (ArrayView2D[float64], error) {
	if err := g.checkRect(row, column, rows, columns); err != nil {
		return ArrayView2D[float64]{}, err
	}
	return g.elevations.View().Subview(row, column, rows, columns), nil
}

// MutableView returns a writable view of the elevations in the given
// rectangle.
func (g *Grid) MutableView(row, column, rows, columns int) (MutableArrayView2D[float64], error) {
	if err := g.checkRect(row, column, rows, columns); err != nil {
		return MutableArrayView2D[float64]{}, err
	}
	return g.elevations.MutableView().Subview(row, column, rows, columns), nil
}

func (g *Grid) RowAxis() Axis      { return g.rowAxis }
func (g *Grid) ColumnAxis() Axis   { return g.columnAxis }
func (g *Grid) VerticalAxis() Axis { return g.verticalAxis }

func (g *Grid) SetRowAxis(a Axis)      { g.rowAxis = a }
func (g *Grid) SetColumnAxis(a Axis)   { g.columnAxis = a }
func (g *Grid) SetVerticalAxis(a Axis) { g.verticalAxis = a }

// UnknownElevation returns the value stored in cells without an elevation,
// if the grid uses one.
func (g *Grid) UnknownElevation() (float64, bool) {
	if g.unknownElevation == nil {
		return 0, false
	}
	return *g.unknownElevation, true
}

func (g *Grid) SetUnknownElevation(v float64) { g.unknownElevation = &v }
func (g *Grid) ClearUnknownElevation()        { g.unknownElevation = nil }

// SphericalCoords returns the geographic position of cell (0, 0).
func (g *Grid) SphericalCoords() (SphericalCoords, bool) {
	if g.spherical == nil {
		return SphericalCoords{}, false
	}
	return *g.spherical, true
}

func (g *Grid) SetSphericalCoords(c SphericalCoords) { g.spherical = &c }

// PlanarCoords returns the projected position of cell (0, 0).
func (g *Grid) PlanarCoords() (PlanarCoords, bool) {
	if g.planar == nil {
		return PlanarCoords{}, false
	}
	return *g.planar, true
}

func (g *Grid) SetPlanarCoords(c PlanarCoords) { g.planar = &c }

// RotationAngle returns the angle of the row axis in radians,
// counter-clockwise from due east.
func (g *Grid) RotationAngle() float64 { return g.rotationAngle }

func (g *Grid) SetRotationAngle(a float64) { g.rotationAngle = a }

// AxisOrientation returns the direction of the column axis relative to the
// row axis.
func (g *Grid) AxisOrientation() RotationDir { return g.orientation }

func (g *Grid) SetAxisOrientation(d RotationDir) { g.orientation = d }

func (g *Grid) ReferenceSystem() (ReferenceSystem, bool) {
	if g.referenceSystem == nil {
		return ReferenceSystem{}, false
	}
	return *g.referenceSystem, true
}

func (g *Grid) SetReferenceSystem(r ReferenceSystem) { g.referenceSystem = &r }

// Subgrid returns a view of the given rectangle together with the grid's
// metadata, anchored at the rectangle's first cell.
func (g *Grid) Subgrid(row, column, rows, columns int) (GridView, error) {
	if err := g.checkRect(row, column, rows, columns); err != nil {
		return GridView{}, err
	}
	v := GridView{
		grid:       g,
		elevations: g.elevations.View().Subview(row, column, rows, columns),
		unknown:    g.unknown.View().Subview(row, column, rows, columns),
	}
	if row == 0 && column == 0 {
		v.spherical = g.spherical
	}
	if g.planar != nil {
		p := g.offsetPlanar(*g.planar, row, column)
		v.planar = &p
	}
	return v, nil
}

// Whole returns a GridView of the entire grid.
func (g *Grid) Whole() (GridView, error) {
	return g.Subgrid(0, 0, g.Rows(), g.Columns())
}
