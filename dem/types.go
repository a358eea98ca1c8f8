package dem

import (
	"github.com/robert-malhotra/go-dem/internal/field"
	"github.com/robert-malhotra/go-dem/internal/record"
)

// Record types. See the field lists on each type for the decoded layout.
type (
	Header     = record.Header
	Profile    = record.Profile
	Statistics = record.Statistics
	RMSE       = record.RMSE
	DegMinSec  = record.DegMinSec
	Corner     = record.Corner
	Kind       = record.Kind
	Record     = record.Record
)

// Optional is a decoded field that may be absent. A blank field is absent;
// it is never zero.
type Optional[T any] = field.Optional[T]

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return field.Some(v)
}

const (
	// BlockSize is the size of one physical block of a DEM file.
	BlockSize = record.BlockSize

	// UnknownSample is the raw sample value of a void elevation.
	UnknownSample = record.UnknownSample
)

const (
	KindHeader     = record.KindHeader
	KindProfile    = record.KindProfile
	KindStatistics = record.KindStatistics
)

// Info is the metadata of a DEM file: its header and, when present, its
// statistics record.
type Info struct {
	Header     *Header     `json:"header"`
	Statistics *Statistics `json:"statistics,omitempty"`
}
