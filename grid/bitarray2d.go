package grid

import (
	"fmt"
	"math/bits"
)

const wordBits = 32

// BitArray2D is a two-dimensional array of bits packed into 32-bit words in
// row-major order. It shares its indexing and resize rules with Array2D so
// that a mask stays aligned with the values it describes.
type BitArray2D struct {
	words   []uint32
	rows    int
	columns int
}

// NewBitArray2D returns an array of cleared bits.
func NewBitArray2D(rows, columns int) *BitArray2D {
	checkExtent(rows, columns)
	return &BitArray2D{
		words:   make([]uint32, wordCount(rows*columns)),
		rows:    rows,
		columns: columns,
	}
}

func wordCount(n int) int {
	return (n + wordBits - 1) / wordBits
}

func (a *BitArray2D) Rows() int    { return a.rows }
func (a *BitArray2D) Columns() int { return a.columns }
func (a *BitArray2D) Len() int     { return a.rows * a.columns }
func (a *BitArray2D) Empty() bool  { return a.Len() == 0 }

// Words returns the packed words. Bit i of the array is bit i%32 of word
// i/32.
func (a *BitArray2D) Words() []uint32 { return a.words }

// Get reports whether the bit at (row, column) is set.
func (a *BitArray2D) Get(row, column int) bool {
	return getBit(a.words, a.index(row, column))
}

// Set sets or clears the bit at (row, column).
func (a *BitArray2D) Set(row, column int, v bool) {
	setBit(a.words, a.index(row, column), v)
}

func (a *BitArray2D) index(row, column int) int {
	if uint(row) >= uint(a.rows) || uint(column) >= uint(a.columns) {
		panic(fmt.Sprintf("grid: index (%d, %d) out of range %dx%d", row, column, a.rows, a.columns))
	}
	return row*a.columns + column
}

// Fill sets or clears every bit.
func (a *BitArray2D) Fill(v bool) {
	setRange(a.words, 0, a.Len(), v)
}

// Count returns the number of set bits.
func (a *BitArray2D) Count() int {
	n := 0
	for _, w := range a.words {
		n += bits.OnesCount32(w)
	}
	return n
}

// Resize changes the extent in place using the same row sweeps as
// Array2D.Resize. New bits are cleared.
func (a *BitArray2D) Resize(rows, columns int) {
	checkExtent(rows, columns)
	oldColumns := a.columns
	keep := min(a.rows, rows)
	n := rows * columns

	if w := wordCount(n); w > len(a.words) {
		a.words = growSlice(a.words, w)
	}
	switch {
	case columns > oldColumns:
		for r := keep - 1; r >= 0; r-- {
			src, dst := r*oldColumns, r*columns
			for c := oldColumns - 1; c >= 0; c-- {
				setBit(a.words, dst+c, getBit(a.words, src+c))
			}
			setRange(a.words, dst+oldColumns, dst+columns, false)
		}
	case columns < oldColumns:
		for r := 1; r < keep; r++ {
			src, dst := r*oldColumns, r*columns
			for c := 0; c < columns; c++ {
				setBit(a.words, dst+c, getBit(a.words, src+c))
			}
		}
	}
	a.words = a.words[:wordCount(n)]
	// Clear new rows and the unused tail of the last word.
	setRange(a.words, keep*columns, len(a.words)*wordBits, false)
	a.rows, a.columns = rows, columns
}

// Release returns the packed words and leaves the array empty.
func (a *BitArray2D) Release() []uint32 {
	words := a.words
	a.words, a.rows, a.columns = nil, 0, 0
	return words
}

// View returns a read-only view of the whole array.
func (a *BitArray2D) View() BitArrayView2D {
	return BitArrayView2D{rows: a.rows, columns: a.columns, stride: a.columns, words: a.words}
}

// MutableView returns a writable view of the whole array.
func (a *BitArray2D) MutableView() MutableBitArrayView2D {
	return MutableBitArrayView2D{a.View()}
}

func getBit(words []uint32, i int) bool {
	return words[i/wordBits]&(1<<(uint(i)%wordBits)) != 0
}

func setBit(words []uint32, i int, v bool) {
	mask := uint32(1) << (uint(i) % wordBits)
	if v {
		words[i/wordBits] |= mask
	} else {
		words[i/wordBits] &^= mask
	}
}

// setRange sets or clears bits [from, to).
func setRange(words []uint32, from, to int, v bool) {
	for from < to && from%wordBits != 0 {
		setBit(words, from, v)
		from++
	}
	var fill uint32
	if v {
		fill = ^uint32(0)
	}
	for ; from+wordBits <= to; from += wordBits {
		words[from/wordBits] = fill
	}
	for ; from < to; from++ {
		setBit(words, from, v)
	}
}

// BitArrayView2D is a read-only, non-owning view of a rectangle of bits.
type BitArrayView2D struct {
	rows    int
	columns int
	stride  int
	offset  int // bit index of (0, 0)
	words   []uint32
}

func (v BitArrayView2D) Rows() int    { return v.rows }
func (v BitArrayView2D) Columns() int { return v.columns }
func (v BitArrayView2D) Len() int     { return v.rows * v.columns }
func (v BitArrayView2D) Empty() bool  { return v.rows == 0 || v.columns == 0 }

// Get reports whether the bit at (row, column) is set.
func (v BitArrayView2D) Get(row, column int) bool {
	return getBit(v.words, v.index(row, column))
}

func (v BitArrayView2D) index(row, column int) int {
	if uint(row) >= uint(v.rows) || uint(column) >= uint(v.columns) {
		panic(fmt.Sprintf("grid: index (%d, %d) out of range %dx%d", row, column, v.rows, v.columns))
	}
	return v.offset + row*v.stride + column
}

// Count returns the number of set bits in the view.
func (v BitArrayView2D) Count() int {
	n := 0
	for r := 0; r < v.rows; r++ {
		for c := 0; c < v.columns; c++ {
			if v.Get(r, c) {
				n++
			}
		}
	}
	return n
}

// Subview returns the rectangle of rows×columns bits starting at
// (row, column). It panics when the rectangle does not fit.
func (v BitArrayView2D) Subview(row, column, rows, columns int) BitArrayView2D {
	if !fits(v.rows, v.columns, row, column, rows, columns) {
		panic(fmt.Sprintf("grid: subview (%d, %d)+%dx%d out of range %dx%d",
			row, column, rows, columns, v.rows, v.columns))
	}
	return BitArrayView2D{
		rows:    rows,
		columns: columns,
		stride:  v.stride,
		offset:  v.offset + row*v.stride + column,
		words:   v.words,
	}
}

// MutableBitArrayView2D is a BitArrayView2D that can also modify the bits.
type MutableBitArrayView2D struct {
	BitArrayView2D
}

// Set sets or clears the bit at (row, column).
func (v MutableBitArrayView2D) Set(row, column int, x bool) {
	setBit(v.words, v.index(row, column), x)
}

// Fill sets or clears every bit in the view.
func (v MutableBitArrayView2D) Fill(x bool) {
	for r := 0; r < v.rows; r++ {
		start := v.offset + r*v.stride
		setRange(v.words, start, start+v.columns, x)
	}
}

// ReadOnly returns the read-only view of the same rectangle.
func (v MutableBitArrayView2D) ReadOnly() BitArrayView2D {
	return v.BitArrayView2D
}

// Subview returns a writable view of the given rectangle.
func (v MutableBitArrayView2D) Subview(row, column, rows, columns int) MutableBitArrayView2D {
	return MutableBitArrayView2D{v.BitArrayView2D.Subview(row, column, rows, columns)}
}
