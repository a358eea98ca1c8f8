package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-dem/dem"
	"github.com/robert-malhotra/go-dem/grid"
)

type gridFlags struct {
	output   string
	unit     string
	position []int
	size     []int
	mask     bool
	strict   bool
}

func newGridCmd(a *app) *cobra.Command {
	f := &gridFlags{}
	cmd := &cobra.Command{
		Use:   "grid FILE",
		Short: "Export the elevation grid as JSON",
		Long: "Builds the elevation grid of FILE and writes its metadata and the " +
			"elevations of the selected rectangle as JSON. Unknown elevations are " +
			"written as null.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.exportGrid(cmd, args[0], f)
		},
	}
	cmd.Flags().StringVarP(&f.output, "output", "o", "-", "output file, - for stdout")
	cmd.Flags().StringVarP(&f.unit, "unit", "u", "", "elevation unit: m, f, or r for raw file units")
	cmd.Flags().IntSliceVar(&f.position, "position", []int{0, 0}, "ROW,COLUMN of the first exported cell")
	cmd.Flags().IntSliceVar(&f.size, "size", nil, "ROWS,COLUMNS to export (default: the rest of the grid)")
	cmd.Flags().BoolVar(&f.mask, "mask", false, "track unknown elevations in a mask instead of a sentinel value")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "fail on samples outside the header's extent")
	return cmd
}

func (a *app) exportGrid(cmd *cobra.Command, path string, f *gridFlags) error {
	if len(f.position) != 2 {
		return fmt.Errorf("--position takes ROW,COLUMN, got %v", f.position)
	}
	if f.size != nil && len(f.size) != 2 {
		return fmt.Errorf("--size takes ROWS,COLUMNS, got %v", f.size)
	}

	var opts []dem.GridOption
	if f.unit != "" {
		u, err := grid.ParseUnit(f.unit)
		if err != nil {
			return err
		}
		opts = append(opts, dem.WithUnit(u))
	}
	if f.mask {
		opts = append(opts, dem.WithMissingMask())
	}
	if f.strict {
		opts = append(opts, dem.WithStrictExtent())
	}
	ctx := cmd.Context()
	opts = append(opts, dem.WithProgress(func(done, total int64) bool {
		return ctx.Err() == nil
	}))

	g, err := dem.ReadGridFile(path, a.demOpts, opts...)
	if err != nil {
		return err
	}

	row, column := f.position[0], f.position[1]
	rows, columns := g.Rows()-row, g.Columns()-column
	if f.size != nil {
		rows, columns = f.size[0], f.size[1]
	}
	view, err := g.Subgrid(row, column, rows, columns)
	if err != nil {
		return fmt.Errorf("selecting %dx%d cells at (%d, %d) of a %dx%d grid: %w",
			rows, columns, row, column, g.Rows(), g.Columns(), err)
	}

	doc := newGridDocument(view, row, column)
	if f.output == "-" {
		return writeJSON(cmd.OutOrStdout(), doc)
	}
	if err := writeFileAtomic(f.output, func(w io.Writer) error {
		return writeJSON(w, doc)
	}); err != nil {
		return err
	}
	level.Info(a.logger).Log("msg", "grid written", "file", f.output, "rows", rows, "columns", columns)
	return nil
}

// gridDocument is the JSON form of an exported grid rectangle.
type gridDocument struct {
	RowAxis          grid.Axis             `json:"row_axis"`
	ColumnAxis       grid.Axis             `json:"column_axis"`
	VerticalAxis     grid.Axis             `json:"vertical_axis"`
	RotationAngle    float64               `json:"rotation_angle"`
	AxisOrientation  grid.RotationDir      `json:"axis_orientation"`
	Spherical        *grid.SphericalCoords `json:"spherical_coords,omitempty"`
	Planar           *grid.PlanarCoords    `json:"planar_coords,omitempty"`
	ReferenceSystem  *grid.ReferenceSystem `json:"reference_system,omitempty"`
	UnknownElevation *float64              `json:"unknown_elevation,omitempty"`
	Position         [2]int                `json:"position"`
	Size             [2]int                `json:"size"`
	Elevations       [][]*float64          `json:"elevations"`
}

func newGridDocument(v grid.GridView, row, column int) *gridDocument {
	doc := &gridDocument{
		RowAxis:         v.RowAxis(),
		ColumnAxis:      v.ColumnAxis(),
		VerticalAxis:    v.VerticalAxis(),
		RotationAngle:   v.RotationAngle(),
		AxisOrientation: v.AxisOrientation(),
		Position:        [2]int{row, column},
		Size:            [2]int{v.Rows(), v.Columns()},
		Elevations:      make([][]*float64, v.Rows()),
	}
	if c, ok := v.SphericalCoords(); ok {
		doc.Spherical = &c
	}
	if c, ok := v.PlanarCoords(); ok {
		doc.Planar = &c
	}
	if rs, ok := v.ReferenceSystem(); ok {
		doc.ReferenceSystem = &rs
	}
	if u, ok := v.UnknownElevation(); ok {
		doc.UnknownElevation = &u
	}

	for r := range doc.Elevations {
		line := make([]*float64, v.Columns())
		values := make([]float64, v.Columns())
		for c := range line {
			if v.Unknown(r, c) {
				continue
			}
			values[c] = v.Elevation(r, c)
			line[c] = &values[c]
		}
		doc.Elevations[r] = line
	}
	return doc
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeFileAtomic writes to a temporary file next to path and renames it
// into place, so a failed write leaves no partial output.
func writeFileAtomic(path string, write func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := write(tmp); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming output: %w", err)
	}
	return nil
}
