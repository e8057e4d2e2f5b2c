package tensor

import (
	"github.com/born-ml/simutil/internal/parallel"
)

// Tensor is a 3-D container addressed as At(col, row, depth) with 1-based
// positions.
//
// The payload holds (columns+1)*(rows+1)*(depths+1) slots in one allocation.
// A two-level index table locates each depth fibre: the first level has one
// entry per leading index (columns under ColumnMajor, rows under RowMajor),
// the second one entry per (leading, middle) pair, pointing at a contiguous
// run of depths+1 slots.
type Tensor[T DType] struct {
	raw *RawBlock
	par parallel.Config
}

// NewTensor creates a zeroed columns x rows x depths tensor with DefaultOptions.
func NewTensor[T DType](columns, rows, depths int) (*Tensor[T], error) {
	return NewTensorWithOptions[T](columns, rows, depths, DefaultOptions())
}

// NewTensorWithOptions creates a zeroed columns x rows x depths tensor.
func NewTensorWithOptions[T DType](columns, rows, depths int, opts Options) (*Tensor[T], error) {
	raw, err := newRawBlock("NewTensor", KindOf[T](), opts.Layout, opts.allocator(), 0, columns, rows, depths)
	if err != nil {
		return nil, err
	}
	return &Tensor[T]{raw: raw, par: opts.Parallel}, nil
}

// TensorFromRaw wraps an existing rank-3 block of matching kind.
func TensorFromRaw[T DType](raw *RawBlock, opts Options) (*Tensor[T], error) {
	if raw.Released() {
		return nil, nullError("TensorFromRaw")
	}
	if raw.header.Rank != 3 {
		return nil, dimensionError("TensorFromRaw", "block is not rank 3", raw.header)
	}
	if raw.kind != KindOf[T]() {
		return nil, kindError("TensorFromRaw", raw.kind, KindOf[T]())
	}
	return &Tensor[T]{raw: raw, par: opts.Parallel}, nil
}

func (t *Tensor[T]) valid() bool {
	return t != nil && !t.raw.Released()
}

// Raw returns the underlying block.
func (t *Tensor[T]) Raw() *RawBlock { return t.raw }

// Header returns the shape header.
func (t *Tensor[T]) Header() Header { return t.raw.header }

// Columns returns the first extent.
func (t *Tensor[T]) Columns() int { return t.raw.header.Columns() }

// Rows returns the second extent.
func (t *Tensor[T]) Rows() int { return t.raw.header.Rows() }

// Depths returns the third extent.
func (t *Tensor[T]) Depths() int { return t.raw.header.Depths() }

// Layout returns the storage layout.
func (t *Tensor[T]) Layout() Layout { return t.raw.layout }

// Kind returns the element kind.
func (t *Tensor[T]) Kind() Kind { return t.raw.kind }

// Released reports whether the tensor was released.
func (t *Tensor[T]) Released() bool { return !t.valid() }

// At returns the element at (col, row, depth).
func (t *Tensor[T]) At(col, row, depth int) T {
	return view[T](t.raw)[t.raw.Offset(col, row, depth)]
}

// Set stores x at (col, row, depth).
func (t *Tensor[T]) Set(col, row, depth int, x T) {
	view[T](t.raw)[t.raw.Offset(col, row, depth)] = x
}

// Fibre returns the depth fibre at (col, row) as a zero-copy slice;
// Fibre(c, r)[k] is At(c, r, k+1).
func (t *Tensor[T]) Fibre(col, row int) []T {
	start := t.raw.Offset(col, row, 1) - 1
	return view[T](t.raw)[start+1 : start+t.Depths()+1]
}

// Fill sets every element to c.
func (t *Tensor[T]) Fill(c T) error {
	if !t.valid() {
		return nullError("Tensor.Fill")
	}
	if t.Depths() == 0 {
		return nil
	}
	parallel.ForRange(1, t.Columns(), func(col int) {
		for row := 1; row <= t.Rows(); row++ {
			f := t.Fibre(col, row)
			for k := range f {
				f[k] = c
			}
		}
	}, t.par)
	return nil
}

// Clone returns an independent copy with the same layout and allocator.
func (t *Tensor[T]) Clone() (*Tensor[T], error) {
	if !t.valid() {
		return nil, nullError("Tensor.Clone")
	}
	raw, err := t.raw.clone("Tensor.Clone")
	if err != nil {
		return nil, err
	}
	return &Tensor[T]{raw: raw, par: t.par}, nil
}

// Release frees the payload. Releasing twice returns ErrNullPointer.
func (t *Tensor[T]) Release() error {
	if t == nil {
		return nullError("Tensor.Release")
	}
	return t.raw.Release()
}

// SameShape3 reports whether a and b have the same (columns, rows, depths).
func SameShape3[T DType](a, b *Tensor[T]) bool {
	return a.Header().Equal(b.Header())
}

// Equal3 reports whether a and b have the same shape and elements.
func Equal3[T DType](a, b *Tensor[T]) bool {
	if !a.valid() || !b.valid() || !SameShape3(a, b) {
		return false
	}
	if a.Depths() == 0 {
		return true
	}
	for c := 1; c <= a.Columns(); c++ {
		for r := 1; r <= a.Rows(); r++ {
			fa, fb := a.Fibre(c, r), b.Fibre(c, r)
			for k := range fa {
				if fa[k] != fb[k] {
					return false
				}
			}
		}
	}
	return true
}
