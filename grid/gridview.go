package grid

import "math"

// GridView is a read-only rectangle of a Grid with the grid's metadata.
// The geographic anchor is only kept when the rectangle starts at the grid's
// origin; the planar anchor is moved to the rectangle's first cell.
type GridView struct {
	grid       *Grid
	elevations ArrayView2D[float64]
	unknown    BitArrayView2D
	spherical  *SphericalCoords
	planar     *PlanarCoords
}

// Grid returns the grid the view belongs to.
func (v GridView) Grid() *Grid { return v.grid }

func (v GridView) Rows() int    { return v.elevations.Rows() }
func (v GridView) Columns() int { return v.elevations.Columns() }

func (v GridView) Elevations() ArrayView2D[float64] { return v.elevations }
func (v GridView) UnknownElevations() BitArrayView2D { return v.unknown }

func (v GridView) Elevation(row, column int) float64 {
	return v.elevations.At(row, column)
}

// Unknown reports whether the cell has no elevation.
func (v GridView) Unknown(row, column int) bool {
	if v.unknown.Get(row, column) {
		return true
	}
	u, ok := v.grid.UnknownElevation()
	return ok && v.elevations.At(row, column) == u
}

func (v GridView) UnknownElevation() (float64, bool) { return v.grid.UnknownElevation() }

func (v GridView) RowAxis() Axis      { return v.grid.rowAxis }
func (v GridView) ColumnAxis() Axis   { return v.grid.columnAxis }
func (v GridView) VerticalAxis() Axis { return v.grid.verticalAxis }

func (v GridView) SphericalCoords() (SphericalCoords, bool) {
	if v.spherical == nil {
		return SphericalCoords{}, false
	}
	return *v.spherical, true
}

func (v GridView) PlanarCoords() (PlanarCoords, bool) {
	if v.planar == nil {
		return PlanarCoords{}, false
	}
	return *v.planar, true
}

func (v GridView) RotationAngle() float64                   { return v.grid.rotationAngle }
func (v GridView) AxisOrientation() RotationDir             { return v.grid.orientation }
func (v GridView) ReferenceSystem() (ReferenceSystem, bool) { return v.grid.ReferenceSystem() }

// offsetPlanar moves p by row steps along the row axis and column steps
// along the column axis, both rotated by the grid's rotation angle.
func (g *Grid) offsetPlanar(p PlanarCoords, row, column int) PlanarCoords {
	if row == 0 && column == 0 {
		return p
	}
	r := g.rowAxis.Resolution
	c := g.columnAxis.Resolution
	if g.orientation == Clockwise {
		c = -c
	}
	sin, cos := math.Sincos(g.rotationAngle)
	rowE, rowN := r*cos, r*sin
	colE, colN := -c*sin, c*cos

	p.Easting += rowE*float64(row) + colE*float64(column)
	p.Northing += rowN*float64(row) + colN*float64(column)
	return p
}
