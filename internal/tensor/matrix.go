package tensor

import (
	"fmt"

	"github.com/born-ml/simutil/internal/parallel"
)

// Matrix is a 2-D container addressed as At(col, row) with 1-based positions.
//
// The payload holds (columns+1)*(rows+1) slots. Under ColumnMajor each column
// is a contiguous line of rows+1 slots and the index table has one entry per
// column; under RowMajor the roles swap. Logical coordinates are the same in
// both layouts.
type Matrix[T DType] struct {
	raw *RawBlock
	par parallel.Config
}

// NewMatrix creates a zeroed columns x rows matrix with DefaultOptions.
func NewMatrix[T DType](columns, rows int) (*Matrix[T], error) {
	return NewMatrixWithOptions[T](columns, rows, DefaultOptions())
}

// NewMatrixWithOptions creates a zeroed columns x rows matrix.
func NewMatrixWithOptions[T DType](columns, rows int, opts Options) (*Matrix[T], error) {
	raw, err := newRawBlock("NewMatrix", KindOf[T](), opts.Layout, opts.allocator(), 0, columns, rows)
	if err != nil {
		return nil, err
	}
	return &Matrix[T]{raw: raw, par: opts.Parallel}, nil
}

// MatrixFromArray creates a matrix from a static row-major block, block[row][col].
// Every row must have the same length.
func MatrixFromArray[T DType](block [][]T, opts Options) (*Matrix[T], error) {
	rows := len(block)
	columns := 0
	if rows > 0 {
		columns = len(block[0])
	}
	m, err := NewMatrixWithOptions[T](columns, rows, opts)
	if err != nil {
		return nil, err
	}
	if err := m.FromArray(block); err != nil {
		_ = m.Release()
		return nil, err
	}
	return m, nil
}

// MatrixFromRaw wraps an existing rank-2 block of matching kind.
func MatrixFromRaw[T DType](raw *RawBlock, opts Options) (*Matrix[T], error) {
	if raw.Released() {
		return nil, nullError("MatrixFromRaw")
	}
	if raw.header.Rank != 2 {
		return nil, dimensionError("MatrixFromRaw", "block is not rank 2", raw.header)
	}
	if raw.kind != KindOf[T]() {
		return nil, kindError("MatrixFromRaw", raw.kind, KindOf[T]())
	}
	return &Matrix[T]{raw: raw, par: opts.Parallel}, nil
}

func (m *Matrix[T]) valid() bool {
	return m != nil && !m.raw.Released()
}

// Raw returns the underlying block.
func (m *Matrix[T]) Raw() *RawBlock { return m.raw }

// Header returns the shape header.
func (m *Matrix[T]) Header() Header { return m.raw.header }

// Columns returns the number of columns.
func (m *Matrix[T]) Columns() int { return m.raw.header.Columns() }

// Rows returns the number of rows.
func (m *Matrix[T]) Rows() int { return m.raw.header.Rows() }

// Layout returns the storage layout.
func (m *Matrix[T]) Layout() Layout { return m.raw.layout }

// Kind returns the element kind.
func (m *Matrix[T]) Kind() Kind { return m.raw.kind }

// Released reports whether the matrix was released.
func (m *Matrix[T]) Released() bool { return !m.valid() }

// At returns the element at (col, row).
func (m *Matrix[T]) At(col, row int) T {
	return view[T](m.raw)[m.raw.Offset(col, row)]
}

// Set stores x at (col, row).
func (m *Matrix[T]) Set(col, row int, x T) {
	view[T](m.raw)[m.raw.Offset(col, row)] = x
}

// Line returns the contiguous storage line for leading index i as a
// zero-copy slice of the inner extent: column i under ColumnMajor, row i
// under RowMajor. Line(i)[k] is the element at inner position k+1.
func (m *Matrix[T]) Line(i int) []T {
	lead, inner := m.raw.layout.physical(m.Columns(), m.Rows())
	if i < 1 || i > lead {
		panic(fmt.Sprintf("tensor: line %d out of range [1, %d]", i, lead))
	}
	start := m.raw.lead[i]
	return view[T](m.raw)[start+1 : start+inner+1]
}

// FromArray copies a static row-major block (block[row][col]) into m.
// The block must be exactly Rows() x Columns().
func (m *Matrix[T]) FromArray(block [][]T) error {
	const op = "Matrix.FromArray"
	if !m.valid() {
		return nullError(op)
	}
	if len(block) != m.Rows() {
		return dimensionError(op, fmt.Sprintf("block has %d rows", len(block)), m.Header())
	}
	for r, line := range block {
		if len(line) != m.Columns() {
			return dimensionError(op, fmt.Sprintf("block row %d has %d columns", r, len(line)), m.Header())
		}
	}
	for r, line := range block {
		for c, x := range line {
			m.Set(c+1, r+1, x)
		}
	}
	return nil
}

// ToArray returns a row-major copy of the matrix, out[row][col].
func (m *Matrix[T]) ToArray() [][]T {
	out := make([][]T, m.Rows())
	for r := range out {
		out[r] = make([]T, m.Columns())
		for c := range out[r] {
			out[r][c] = m.At(c+1, r+1)
		}
	}
	return out
}

// Fill sets every element to c.
func (m *Matrix[T]) Fill(c T) error {
	return ScalarApply(m, c, OpAssign)
}

// Clone returns an independent copy with the same layout and allocator.
func (m *Matrix[T]) Clone() (*Matrix[T], error) {
	if !m.valid() {
		return nil, nullError("Matrix.Clone")
	}
	raw, err := m.raw.clone("Matrix.Clone")
	if err != nil {
		return nil, err
	}
	return &Matrix[T]{raw: raw, par: m.par}, nil
}

// Release frees the payload. Releasing twice returns ErrNullPointer.
func (m *Matrix[T]) Release() error {
	if m == nil {
		return nullError("Matrix.Release")
	}
	return m.raw.Release()
}

// SameShape reports whether a and b have the same (columns, rows).
func SameShape[T DType](a, b *Matrix[T]) bool {
	return a.Columns() == b.Columns() && a.Rows() == b.Rows()
}

// ShapeDiffers reports whether a and b differ in columns or rows.
func ShapeDiffers[T DType](a, b *Matrix[T]) bool {
	return !SameShape(a, b)
}

// Equal reports whether a and b have the same shape and elements. Layouts may differ.
func Equal[T DType](a, b *Matrix[T]) bool {
	if !a.valid() || !b.valid() || ShapeDiffers(a, b) {
		return false
	}
	for c := 1; c <= a.Columns(); c++ {
		for r := 1; r <= a.Rows(); r++ {
			if a.At(c, r) != b.At(c, r) {
				return false
			}
		}
	}
	return true
}
