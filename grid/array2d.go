package grid

import "fmt"

// Array2D is a dense two-dimensional array stored in row-major order.
// The zero value is an empty array ready to use.
type Array2D[T any] struct {
	data    []T
	rows    int
	columns int
}

// NewArray2D returns a zero-filled array with the given extent.
func NewArray2D[T any](rows, columns int) *Array2D[T] {
	checkExtent(rows, columns)
	return &Array2D[T]{
		data:    make([]T, rows*columns),
		rows:    rows,
		columns: columns,
	}
}

// NewArray2DFrom wraps values, which must hold exactly rows*columns elements
// in row-major order. The array takes ownership of values.
func NewArray2DFrom[T any](rows, columns int, values []T) (*Array2D[T], error) {
	if rows < 0 || columns < 0 {
		return nil, fmt.Errorf("negative extent %dx%d", rows, columns)
	}
	if len(values) != rows*columns {
		return nil, fmt.Errorf("array of %dx%d needs %d values, got %d",
			rows, columns, rows*columns, len(values))
	}
	return &Array2D[T]{data: values, rows: rows, columns: columns}, nil
}

func checkExtent(rows, columns int) {
	if rows < 0 || columns < 0 {
		panic(fmt.Sprintf("grid: negative extent %dx%d", rows, columns))
	}
}

func (a *Array2D[T]) Rows() int    { return a.rows }
func (a *Array2D[T]) Columns() int { return a.columns }

// Len returns rows*columns.
func (a *Array2D[T]) Len() int { return len(a.data) }

// Empty reports whether the array has no elements.
func (a *Array2D[T]) Empty() bool { return len(a.data) == 0 }

// At returns the element at (row, column).
func (a *Array2D[T]) At(row, column int) T {
	return a.data[a.index(row, column)]
}

// Set stores v at (row, column).
func (a *Array2D[T]) Set(row, column int, v T) {
	a.data[a.index(row, column)] = v
}

func (a *Array2D[T]) index(row, column int) int {
	if uint(row) >= uint(a.rows) || uint(column) >= uint(a.columns) {
		panic(fmt.Sprintf("grid: index (%d, %d) out of range %dx%d", row, column, a.rows, a.columns))
	}
	return row*a.columns + column
}

// Data returns the underlying row-major buffer. It is invalidated by Resize
// and Release.
func (a *Array2D[T]) Data() []T { return a.data }

// Fill sets every element to v.
func (a *Array2D[T]) Fill(v T) {
	for i := range a.data {
		a.data[i] = v
	}
}

// Resize changes the extent in place. Every element keeps its (row, column)
// position when that position exists in both extents; new elements are zero.
//
// When the column count grows, rows are moved back to front and each row is
// copied from its last element to its first, since a row's new position is
// never before its old one. When it shrinks, rows are moved front to back.
// A change in row count alone only truncates or extends the buffer.
func (a *Array2D[T]) Resize(rows, columns int) {
	checkExtent(rows, columns)
	oldColumns := a.columns
	keep := min(a.rows, rows)
	n := rows * columns

	if n > len(a.data) {
		a.data = growSlice(a.data, n)
	}
	switch {
	case columns > oldColumns:
		for r := keep - 1; r >= 0; r-- {
			src, dst := r*oldColumns, r*columns
			for c := oldColumns - 1; c >= 0; c-- {
				a.data[dst+c] = a.data[src+c]
			}
			clear(a.data[dst+oldColumns : dst+columns])
		}
	case columns < oldColumns:
		for r := 1; r < keep; r++ {
			src, dst := r*oldColumns, r*columns
			for c := 0; c < columns; c++ {
				a.data[dst+c] = a.data[src+c]
			}
		}
	}
	a.data = a.data[:n]
	clear(a.data[keep*columns:])
	a.rows, a.columns = rows, columns
}

func growSlice[T any](s []T, n int) []T {
	if n <= cap(s) {
		old := len(s)
		s = s[:n]
		clear(s[old:])
		return s
	}
	grown := make([]T, n)
	copy(grown, s)
	return grown
}

// Release returns the buffer and leaves the array empty.
func (a *Array2D[T]) Release() []T {
	data := a.data
	a.data, a.rows, a.columns = nil, 0, 0
	return data
}

// Clone returns a deep copy.
func (a *Array2D[T]) Clone() *Array2D[T] {
	return &Array2D[T]{
		data:    append([]T(nil), a.data...),
		rows:    a.rows,
		columns: a.columns,
	}
}

// View returns a read-only view of the whole array.
func (a *Array2D[T]) View() ArrayView2D[T] {
	return ArrayView2D[T]{rows: a.rows, columns: a.columns, stride: a.columns, data: a.data}
}

// MutableView returns a writable view of the whole array.
func (a *Array2D[T]) MutableView() MutableArrayView2D[T] {
	return MutableArrayView2D[T]{a.View()}
}

// Subview returns a read-only view of the given rectangle.
func (a *Array2D[T]) Subview(row, column, rows, columns int) ArrayView2D[T] {
	return a.View().Subview(row, column, rows, columns)
}
