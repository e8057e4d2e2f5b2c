package tensor

import (
	"fmt"

	"github.com/born-ml/simutil/internal/parallel"
)

// Vector is a growable 1-D container with 1-based element positions.
//
// Growth (Append, Resize) returns a new *Vector and invalidates the one it
// was called with: the returned handle owns the payload from then on.
type Vector[T DType] struct {
	raw *RawBlock
	par parallel.Config
}

// NewVector creates a zeroed vector of the given length with DefaultOptions.
func NewVector[T DType](length int) (*Vector[T], error) {
	return NewVectorWithOptions[T](length, DefaultOptions())
}

// NewVectorWithOptions creates a zeroed vector of the given length.
func NewVectorWithOptions[T DType](length int, opts Options) (*Vector[T], error) {
	raw, err := newRawBlock("NewVector", KindOf[T](), opts.Layout, opts.allocator(), 0, length)
	if err != nil {
		return nil, err
	}
	return &Vector[T]{raw: raw, par: opts.Parallel}, nil
}

// VectorFromSlice creates a vector holding a copy of src.
func VectorFromSlice[T DType](src []T, opts Options) (*Vector[T], error) {
	v, err := NewVectorWithOptions[T](len(src), opts)
	if err != nil {
		return nil, err
	}
	copy(v.Slice(), src)
	return v, nil
}

// VectorFromRaw wraps an existing rank-1 block of matching kind.
func VectorFromRaw[T DType](raw *RawBlock, opts Options) (*Vector[T], error) {
	if raw.Released() {
		return nil, nullError("VectorFromRaw")
	}
	if raw.header.Rank != 1 {
		return nil, dimensionError("VectorFromRaw", "block is not rank 1", raw.header)
	}
	if raw.kind != KindOf[T]() {
		return nil, kindError("VectorFromRaw", raw.kind, KindOf[T]())
	}
	return &Vector[T]{raw: raw, par: opts.Parallel}, nil
}

func (v *Vector[T]) valid() bool {
	return v != nil && !v.raw.Released()
}

// Raw returns the underlying block.
func (v *Vector[T]) Raw() *RawBlock { return v.raw }

// Header returns the shape header.
func (v *Vector[T]) Header() Header { return v.raw.header }

// Len returns the number of elements.
func (v *Vector[T]) Len() int { return v.raw.header.Columns() }

// Cap returns how many elements fit before the next reallocation.
func (v *Vector[T]) Cap() int { return v.raw.Capacity() }

// Kind returns the element kind.
func (v *Vector[T]) Kind() Kind { return v.raw.kind }

// Released reports whether the vector was released or superseded by growth.
func (v *Vector[T]) Released() bool { return !v.valid() }

// At returns the element at position i, 1 <= i <= Len().
func (v *Vector[T]) At(i int) T {
	return view[T](v.raw)[v.raw.Offset(i)]
}

// Set stores x at position i, 1 <= i <= Len().
func (v *Vector[T]) Set(i int, x T) {
	view[T](v.raw)[v.raw.Offset(i)] = x
}

// Slice returns the live elements as a zero-copy slice; Slice()[k] is At(k+1).
func (v *Vector[T]) Slice() []T {
	if !v.valid() {
		return nil
	}
	return view[T](v.raw)[1 : v.Len()+1]
}

// FromSlice copies src into v; len(src) must equal Len().
func (v *Vector[T]) FromSlice(src []T) error {
	if !v.valid() {
		return nullError("Vector.FromSlice")
	}
	if len(src) != v.Len() {
		return dimensionError("Vector.FromSlice",
			fmt.Sprintf("source has %d elements", len(src)), v.Header())
	}
	copy(v.Slice(), src)
	return nil
}

// Fill sets every element to c.
func (v *Vector[T]) Fill(c T) error {
	return ScalarApplyVector(v, c, OpAssign)
}

// Equal reports whether both vectors have the same length and elements.
func (v *Vector[T]) Equal(other *Vector[T]) bool {
	if !v.valid() || !other.valid() || v.Len() != other.Len() {
		return false
	}
	a, b := v.Slice(), other.Slice()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy allocated from the same allocator.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	if !v.valid() {
		return nil, nullError("Vector.Clone")
	}
	raw, err := v.raw.clone("Vector.Clone")
	if err != nil {
		return nil, err
	}
	return &Vector[T]{raw: raw, par: v.par}, nil
}

// Release frees the payload. Releasing twice returns ErrNullPointer.
func (v *Vector[T]) Release() error {
	if v == nil {
		return nullError("Vector.Release")
	}
	return v.raw.Release()
}

// Append returns a vector of length Len()+1 whose last element is elem and
// whose other elements are those of v, in order. v is invalidated; use the
// returned vector from now on. On error v is left untouched.
func Append[T DType](v *Vector[T], elem T) (*Vector[T], error) {
	if !v.valid() {
		return nil, nullError("Append")
	}
	n := v.Len() + 1
	if err := v.raw.reshape1("Append", n); err != nil {
		return nil, err
	}
	out := &Vector[T]{raw: v.raw.moveTo(), par: v.par}
	out.Set(n, elem)
	return out, nil
}

// Resize returns a vector of length n holding the first min(Len(), n)
// elements of v; positions past the old length are zero. Shrinking keeps the
// allocation. v is invalidated; on error it is left untouched.
func Resize[T DType](v *Vector[T], n int) (*Vector[T], error) {
	if !v.valid() {
		return nil, nullError("Resize")
	}
	if err := v.raw.reshape1("Resize", n); err != nil {
		return nil, err
	}
	return &Vector[T]{raw: v.raw.moveTo(), par: v.par}, nil
}
