package grid

import "fmt"

// MetersPerFoot is the exact length of the international foot.
const MetersPerFoot = 0.3048

// Unit is the unit of a grid axis.
type Unit uint8

const (
	Undefined Unit = iota
	Feet
	Meters
	ArcSeconds
)

func (u Unit) String() string {
	switch u {
	case Feet:
		return "feet"
	case Meters:
		return "meters"
	case ArcSeconds:
		return "arc-seconds"
	default:
		return "undefined"
	}
}

// ParseUnit parses a unit name or its one-letter abbreviation ("f", "m",
// "r" for raw). Raw and "undefined" both map to Undefined.
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "f", "ft", "feet":
		return Feet, nil
	case "m", "meters", "metres":
		return Meters, nil
	case "s", "arc-seconds", "arcseconds":
		return ArcSeconds, nil
	case "r", "raw", "", "undefined":
		return Undefined, nil
	}
	return Undefined, fmt.Errorf("unknown unit %q", s)
}

// MarshalText encodes the unit name.
func (u Unit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *Unit) UnmarshalText(text []byte) error {
	v, err := ParseUnit(string(text))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// ConversionFactor returns the factor that converts a length in from into
// a length in to. Only feet and meters convert; every other pair returns 1
// and false.
func ConversionFactor(from, to Unit) (float64, bool) {
	switch {
	case from == to:
		return 1, true
	case from == Feet && to == Meters:
		return MetersPerFoot, true
	case from == Meters && to == Feet:
		return 1 / MetersPerFoot, true
	}
	return 1, false
}

// Axis describes the sample spacing along one grid axis.
type Axis struct {
	Resolution float64 `json:"resolution"`
	Unit       Unit    `json:"unit"`
}

// ConvertTo returns the axis expressed in unit. Axes whose unit does not
// convert to unit are returned unchanged; Undefined keeps the native unit.
func (a Axis) ConvertTo(unit Unit) Axis {
	if unit == Undefined {
		return a
	}
	f, ok := ConversionFactor(a.Unit, unit)
	if !ok {
		return a
	}
	return Axis{Resolution: a.Resolution * f, Unit: unit}
}

func (a Axis) String() string {
	return fmt.Sprintf("%g %s", a.Resolution, a.Unit)
}

// RotationDir is the direction of the column axis relative to the row axis.
type RotationDir uint8

const (
	Clockwise RotationDir = iota
	CounterClockwise
)

func (d RotationDir) String() string {
	if d == Clockwise {
		return "clockwise"
	}
	return "counter-clockwise"
}

// MarshalText encodes the direction name.
func (d RotationDir) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *RotationDir) UnmarshalText(text []byte) error {
	switch string(text) {
	case "clockwise":
		*d = Clockwise
	case "counter-clockwise":
		*d = CounterClockwise
	default:
		return fmt.Errorf("unknown rotation direction %q", text)
	}
	return nil
}

// SphericalCoords is a geographic position in decimal degrees.
type SphericalCoords struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PlanarCoords is a projected position. Zone is the UTM or state plane zone.
type PlanarCoords struct {
	Easting  float64 `json:"easting"`
	Northing float64 `json:"northing"`
	Zone     int     `json:"zone"`
}

// ReferenceSystem holds the horizontal and vertical datum codes.
type ReferenceSystem struct {
	Horizontal int `json:"horizontal"`
	Vertical   int `json:"vertical"`
}
