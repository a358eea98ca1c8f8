package catalog

import (
	"github.com/dhconnelly/rtreego"

	"github.com/robert-malhotra/go-dem/dem"
)

// Bounds is an axis-aligned rectangle in the ground units of a DEM: easting
// and northing for planar files, arc-seconds for geographic ones.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Contains reports whether (x, y) lies inside b, edges included.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Intersects reports whether b and other overlap or touch.
func (b Bounds) Intersects(other Bounds) bool {
	return !(other.MaxX < b.MinX ||
		other.MinX > b.MaxX ||
		other.MaxY < b.MinY ||
		other.MinY > b.MaxY)
}

// Union returns the smallest bounds containing b and other.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{
		MinX: min(b.MinX, other.MinX),
		MinY: min(b.MinY, other.MinY),
		MaxX: max(b.MaxX, other.MaxX),
		MaxY: max(b.MaxY, other.MaxY),
	}
}

// cornerBounds is the bounding box of the header's quadrangle corners.
func cornerBounds(h *dem.Header) (Bounds, bool) {
	var b Bounds
	found := false
	for _, c := range h.Corners {
		p, ok := c.Get()
		if !ok {
			continue
		}
		if !found {
			b = Bounds{MinX: p.Easting, MinY: p.Northing, MaxX: p.Easting, MaxY: p.Northing}
			found = true
			continue
		}
		b = b.Union(Bounds{MinX: p.Easting, MinY: p.Northing, MaxX: p.Easting, MaxY: p.Northing})
	}
	return b, found
}

// rect converts b to an R-tree rectangle. The tree rejects zero-length
// sides, so degenerate bounds get a minimal extent.
func (b Bounds) rect() rtreego.Rect {
	const epsilon = 1e-6
	point := rtreego.Point{b.MinX, b.MinY}
	lengths := []float64{
		max(b.MaxX-b.MinX, epsilon),
		max(b.MaxY-b.MinY, epsilon),
	}
	r, _ := rtreego.NewRect(point, lengths)
	return r
}
