package grid

import (
	"fmt"
	"iter"
)

// ArrayView2D is a read-only, non-owning view of a rectangle in a row-major
// buffer. Consecutive rows are stride elements apart.
//
// A view borrows the buffer of the array or grid it came from and must not be
// used after that array is resized or released.
type ArrayView2D[T any] struct {
	rows    int
	columns int
	stride  int
	data    []T // starts at element (0, 0)
}

// NewArrayView2D creates a view over a contiguous row-major buffer.
func NewArrayView2D[T any](rows, columns int, data []T) ArrayView2D[T] {
	checkExtent(rows, columns)
	if len(data) < rows*columns {
		panic(fmt.Sprintf("grid: view of %dx%d over %d elements", rows, columns, len(data)))
	}
	return ArrayView2D[T]{rows: rows, columns: columns, stride: columns, data: data}
}

func (v ArrayView2D[T]) Rows() int    { return v.rows }
func (v ArrayView2D[T]) Columns() int { return v.columns }
func (v ArrayView2D[T]) Stride() int  { return v.stride }

// Len returns rows*columns.
func (v ArrayView2D[T]) Len() int { return v.rows * v.columns }

// Empty reports whether the view has no elements.
func (v ArrayView2D[T]) Empty() bool { return v.rows == 0 || v.columns == 0 }

// Contiguous reports whether the rows follow each other without gaps.
func (v ArrayView2D[T]) Contiguous() bool { return v.stride == v.columns || v.rows <= 1 }

// At returns the element at (row, column).
func (v ArrayView2D[T]) At(row, column int) T {
	return v.data[v.index(row, column)]
}

func (v ArrayView2D[T]) index(row, column int) int {
	if uint(row) >= uint(v.rows) || uint(column) >= uint(v.columns) {
		panic(fmt.Sprintf("grid: index (%d, %d) out of range %dx%d", row, column, v.rows, v.columns))
	}
	return row*v.stride + column
}

// Row returns row r. The slice aliases the underlying buffer; its capacity
// is limited to the row.
func (v ArrayView2D[T]) Row(r int) []T {
	if uint(r) >= uint(v.rows) {
		panic(fmt.Sprintf("grid: row %d out of range %d", r, v.rows))
	}
	start := r * v.stride
	return v.data[start : start+v.columns : start+v.columns]
}

// All yields each row index with its elements.
func (v ArrayView2D[T]) All() iter.Seq2[int, []T] {
	return func(yield func(int, []T) bool) {
		for r := 0; r < v.rows; r++ {
			if !yield(r, v.Row(r)) {
				return
			}
		}
	}
}

// Values returns a row-major copy of the viewed elements.
func (v ArrayView2D[T]) Values() []T {
	out := make([]T, 0, v.Len())
	for r := 0; r < v.rows; r++ {
		out = append(out, v.Row(r)...)
	}
	return out
}

// Subview returns the rectangle of rows×columns elements starting at
// (row, column). Like slicing, it panics when the rectangle does not fit.
func (v ArrayView2D[T]) Subview(row, column, rows, columns int) ArrayView2D[T] {
	if !fits(v.rows, v.columns, row, column, rows, columns) {
		panic(fmt.Sprintf("grid: subview (%d, %d)+%dx%d out of range %dx%d",
			row, column, rows, columns, v.rows, v.columns))
	}
	if rows == 0 || columns == 0 {
		return ArrayView2D[T]{rows: rows, columns: columns, stride: v.stride}
	}
	start := row*v.stride + column
	end := (row+rows-1)*v.stride + column + columns
	return ArrayView2D[T]{rows: rows, columns: columns, stride: v.stride, data: v.data[start:end]}
}

func fits(rows, columns, row, column, nrows, ncolumns int) bool {
	return row >= 0 && column >= 0 && nrows >= 0 && ncolumns >= 0 &&
		row+nrows <= rows && column+ncolumns <= columns
}

// MutableArrayView2D is an ArrayView2D that can also modify the elements.
type MutableArrayView2D[T any] struct {
	ArrayView2D[T]
}

// NewMutableArrayView2D creates a writable view over a contiguous row-major
// buffer.
func NewMutableArrayView2D[T any](rows, columns int, data []T) MutableArrayView2D[T] {
	return MutableArrayView2D[T]{NewArrayView2D(rows, columns, data)}
}

// Set stores x at (row, column).
func (v MutableArrayView2D[T]) Set(row, column int, x T) {
	v.data[v.index(row, column)] = x
}

// Fill sets every viewed element to x.
func (v MutableArrayView2D[T]) Fill(x T) {
	for r := 0; r < v.rows; r++ {
		row := v.Row(r)
		for i := range row {
			row[i] = x
		}
	}
}

// CopyFrom copies src into the view. The extents must match.
func (v MutableArrayView2D[T]) CopyFrom(src ArrayView2D[T]) error {
	if src.rows != v.rows || src.columns != v.columns {
		return fmt.Errorf("copy from %dx%d into %dx%d", src.rows, src.columns, v.rows, v.columns)
	}
	for r := 0; r < v.rows; r++ {
		copy(v.Row(r), src.Row(r))
	}
	return nil
}

// ReadOnly returns the read-only view of the same rectangle.
func (v MutableArrayView2D[T]) ReadOnly() ArrayView2D[T] {
	return v.ArrayView2D
}

// Subview returns a writable view of the given rectangle.
func (v MutableArrayView2D[T]) Subview(row, column, rows, columns int) MutableArrayView2D[T] {
	return MutableArrayView2D[T]{v.ArrayView2D.Subview(row, column, rows, columns)}
}
