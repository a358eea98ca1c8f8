package grid

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrayView2D(t *testing.T) {
	values := []int32{
		0, 2, 0,
		3, 4, 3,
		0, 2, 0,
	}
	v := NewArrayView2D(3, 3, values)
	assert.Equal(t, values[0], v.At(0, 0))
	assert.Equal(t, values[3], v.At(1, 0))
	assert.Equal(t, values[7], v.At(2, 1))
	assert.Equal(t, values[8], v.At(2, 2))
	assert.Equal(t, []int32{3, 4, 3}, v.Row(1))
}

func TestArray2DAddRows(t *testing.T) {
	a, err := NewArray2DFrom(3, 3, []int32{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	})
	require.NoError(t, err)

	a.Resize(5, 3)
	assert.Equal(t, 5, a.Rows())
	assert.Equal(t, 3, a.Columns())
	assert.Equal(t, int32(1), a.At(0, 0))
	assert.Equal(t, int32(3), a.At(0, 2))
	assert.Equal(t, int32(7), a.At(2, 0))
	assert.Equal(t, int32(9), a.At(2, 2))
	assert.Equal(t, int32(0), a.At(3, 0))
	assert.Equal(t, int32(0), a.At(4, 2))
}

func TestArray2DRemoveColumns(t *testing.T) {
	a, err := NewArray2DFrom(4, 5, []int32{
		1, 2, 3, 4, 5,
		6, 7, 8, 9, 0,
		1, 2, 3, 4, 5,
		6, 7, 8, 9, 0,
	})
	require.NoError(t, err)

	a.Resize(3, 3)
	assert.Equal(t, 3, a.Rows())
	assert.Equal(t, 3, a.Columns())
	assert.Equal(t, []int32{
		1, 2, 3,
		6, 7, 8,
		1, 2, 3,
	}, a.Data())
}

func TestArray2DAddColumns(t *testing.T) {
	a, err := NewArray2DFrom(2, 2, []int32{
		1, 2,
		3, 4,
	})
	require.NoError(t, err)

	a.Resize(3, 4)
	assert.Equal(t, []int32{
		1, 2, 0, 0,
		3, 4, 0, 0,
		0, 0, 0, 0,
	}, a.Data())
}

func TestArray2DGrowColumnsShrinkRows(t *testing.T) {
	a, err := NewArray2DFrom(4, 2, []int32{
		1, 2,
		3, 4,
		5, 6,
		7, 8,
	})
	require.NoError(t, err)

	a.Resize(2, 3)
	assert.Equal(t, []int32{
		1, 2, 0,
		3, 4, 0,
	}, a.Data())
}

func TestArray2DShrinkColumnsGrowRows(t *testing.T) {
	a, err := NewArray2DFrom(2, 3, []int32{
		1, 2, 3,
		4, 5, 6,
	})
	require.NoError(t, err)

	a.Resize(3, 2)
	assert.Equal(t, []int32{
		1, 2,
		4, 5,
		0, 0,
	}, a.Data())
}

func TestArray2DResizeEmpty(t *testing.T) {
	var a Array2D[int32]
	a.Resize(3, 3)
	assert.Equal(t, 3, a.Rows())
	assert.Equal(t, 3, a.Columns())
	assert.Equal(t, 9, a.Len())
}

func TestArray2DResizePreservesCells(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		rows := rng.IntN(8)
		c1 := rng.IntN(9)
		c2 := rng.IntN(9)

		a := NewArray2D[int](rows, c1)
		for j := range a.Data() {
			a.Data()[j] = j + 1
		}
		orig := a.Clone()

		a.Resize(rows, c2)
		for r := 0; r < rows; r++ {
			for c := 0; c < c2; c++ {
				if c < c1 {
					require.Equal(t, orig.At(r, c), a.At(r, c), "%dx%d -> %d (%d, %d)", rows, c1, c2, r, c)
				} else {
					require.Zero(t, a.At(r, c), "grown cell %dx%d -> %d (%d, %d)", rows, c1, c2, r, c)
				}
			}
		}

		a.Resize(rows, c1)
		for r := 0; r < rows; r++ {
			for c := 0; c < c1; c++ {
				if c < c2 {
					require.Equal(t, orig.At(r, c), a.At(r, c))
				} else {
					require.Zero(t, a.At(r, c))
				}
			}
		}
	}
}

func TestArray2DRelease(t *testing.T) {
	a := NewArray2D[float64](2, 3)
	a.Set(1, 2, 5)

	data := a.Release()
	assert.Len(t, data, 6)
	assert.Equal(t, 5.0, data[5])
	assert.True(t, a.Empty())
	assert.Equal(t, 0, a.Rows())
	assert.Equal(t, 0, a.Columns())
}

func TestNewArray2DFromSizeMismatch(t *testing.T) {
	_, err := NewArray2DFrom(2, 2, []int{1, 2, 3})
	assert.Error(t, err)
}

func TestArray2DIndexPanics(t *testing.T) {
	a := NewArray2D[int](2, 2)
	assert.Panics(t, func() { a.At(2, 0) })
	assert.Panics(t, func() { a.At(0, -1) })
}

func TestSubview(t *testing.T) {
	a, err := NewArray2DFrom(3, 4, []int{
		0, 1, 2, 3,
		4, 5, 6, 7,
		8, 9, 10, 11,
	})
	require.NoError(t, err)

	v := a.Subview(1, 1, 2, 2)
	assert.Equal(t, 2, v.Rows())
	assert.Equal(t, 2, v.Columns())
	assert.Equal(t, 4, v.Stride())
	assert.False(t, v.Contiguous())
	assert.Equal(t, []int{5, 6, 9, 10}, v.Values())
	assert.Equal(t, 10, v.At(1, 1))

	inner := v.Subview(1, 0, 1, 2)
	assert.Equal(t, []int{9, 10}, inner.Row(0))

	assert.Panics(t, func() { v.Subview(1, 1, 2, 1) })

	var rows [][]int
	for _, row := range v.All() {
		rows = append(rows, row)
	}
	assert.Equal(t, [][]int{{5, 6}, {9, 10}}, rows)
}

func TestMutableSubview(t *testing.T) {
	a := NewArray2D[int](3, 3)
	m := a.MutableView().Subview(1, 1, 2, 2)
	m.Fill(7)
	m.Set(0, 0, 1)

	assert.Equal(t, []int{
		0, 0, 0,
		0, 1, 7,
		0, 7, 7,
	}, a.Data())

	src, err := NewArray2DFrom(2, 2, []int{1, 2, 3, 4})
	require.NoError(t, err)
	require.NoError(t, m.CopyFrom(src.View()))
	assert.Equal(t, []int{1, 2, 3, 4}, m.ReadOnly().Values())
	assert.Error(t, m.CopyFrom(a.View()))
}

func TestRowCannotGrowIntoNextRow(t *testing.T) {
	a, err := NewArray2DFrom(2, 2, []int{1, 2, 3, 4})
	require.NoError(t, err)

	row := a.View().Row(0)
	row = append(row, 9)
	assert.Equal(t, []int{1, 2, 9}, row)
	assert.Equal(t, 3, a.At(1, 0))
}
