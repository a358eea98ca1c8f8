// Package grid provides the dense elevation grid produced by the DEM decoder
// and the array primitives it is built on.
//
// # Storage
//
// [Array2D] stores values row-major in one flat slice and [BitArray2D] packs
// one bit per cell into 32-bit words with the same indexing. A [Grid] owns
// one of each: the elevations and a mask of unknown cells. Both are resized
// together, so a cell's value and its mask bit never drift apart.
//
// Resizing is done in place and keeps every surviving cell at its
// (row, column) position:
//
//	Change            | Sweep
//	------------------|---------------------------------------------
//	columns grow      | last row to first, each row back to front;
//	                  | new cells are zeroed
//	columns shrink    | first row to last, each row front to back
//	rows only         | truncate or extend the buffer
//
// # Views
//
// [ArrayView2D], [MutableArrayView2D], [BitArrayView2D] and
// [MutableBitArrayView2D] are non-owning (rows, columns, stride) windows into
// a buffer. They are created explicitly with View, MutableView or Subview and
// must not be kept across a Resize or Release of the array they borrow from.
//
// # Metadata
//
// A grid carries an [Axis] (resolution and [Unit]) for rows, columns and
// elevations, an optional unknown-elevation value, an optional geographic
// or planar anchor for cell (0, 0), a rotation angle, the orientation of the
// column axis and an optional [ReferenceSystem]. [Grid.Subgrid] returns a
// [GridView] whose planar anchor is moved to the subgrid's first cell.
package grid
