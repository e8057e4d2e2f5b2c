// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"io"

	"go.uber.org/zap"

	"github.com/born-ml/simutil/internal/parallel"
	"github.com/born-ml/simutil/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for container element types.
// Supported types: int8..int64, uint8..uint64, float32, float64.
type DType = tensor.DType

// Kind is the runtime element type tag.
type Kind = tensor.Kind

// Kind constants.
const (
	Int8     Kind = tensor.Int8
	Int16    Kind = tensor.Int16
	Int32    Kind = tensor.Int32
	Int64    Kind = tensor.Int64
	Uint8    Kind = tensor.Uint8
	Uint16   Kind = tensor.Uint16
	Uint32   Kind = tensor.Uint32
	Uint64   Kind = tensor.Uint64
	Float32  Kind = tensor.Float32
	Float64  Kind = tensor.Float64
	Float128 Kind = tensor.Float128
)

// Layout selects the storage order of a container.
type Layout = tensor.Layout

// Layout constants.
const (
	ColumnMajor Layout = tensor.ColumnMajor
	RowMajor    Layout = tensor.RowMajor
)

// Options configures container construction.
type Options = tensor.Options

// ParallelConfig controls data-parallel element loops.
type ParallelConfig = parallel.Config

// Vector is a growable 1-D container.
type Vector[T DType] = tensor.Vector[T]

// Matrix is a 2-D container addressed as At(col, row).
type Matrix[T DType] = tensor.Matrix[T]

// Tensor is a 3-D container addressed as At(col, row, depth).
type Tensor[T DType] = tensor.Tensor[T]

// Configuration

// DefaultOptions returns DefaultLayout(), DefaultAllocator() and a parallel
// configuration sized to the machine.
func DefaultOptions() Options {
	return tensor.DefaultOptions()
}

// DefaultParallelConfig returns the parallel configuration used by DefaultOptions.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// SequentialConfig returns a configuration that never spawns goroutines.
func SequentialConfig() ParallelConfig {
	return parallel.Sequential()
}

// DefaultLayout returns the process-wide default layout.
func DefaultLayout() Layout {
	return tensor.DefaultLayout()
}

// SetDefaultLayout changes the process-wide default layout for new containers.
func SetDefaultLayout(l Layout) {
	tensor.SetDefaultLayout(l)
}

// ParseLayout accepts "column", "column-major", "row" and "row-major".
func ParseLayout(s string) (Layout, bool) {
	return tensor.ParseLayout(s)
}

// ParseKind converts a kind name such as "float64" to a Kind.
func ParseKind(s string) (Kind, bool) {
	return tensor.ParseKind(s)
}

// KindOf returns the Kind tag of T.
func KindOf[T DType]() Kind {
	return tensor.KindOf[T]()
}

// SetLogger installs the logger used for allocation, growth and I/O debug
// entries. nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	tensor.SetLogger(l)
}

// Creation functions

// NewVector creates a zeroed vector of the given length.
//
// Example:
//
//	v, err := tensor.NewVector[float64](3)
func NewVector[T DType](length int) (*Vector[T], error) {
	return tensor.NewVector[T](length)
}

// NewVectorWithOptions creates a zeroed vector with explicit options.
func NewVectorWithOptions[T DType](length int, opts Options) (*Vector[T], error) {
	return tensor.NewVectorWithOptions[T](length, opts)
}

// VectorFromSlice creates a vector holding a copy of src.
func VectorFromSlice[T DType](src []T, opts Options) (*Vector[T], error) {
	return tensor.VectorFromSlice(src, opts)
}

// VectorFromRaw wraps a rank-1 block.
func VectorFromRaw[T DType](raw *RawBlock, opts Options) (*Vector[T], error) {
	return tensor.VectorFromRaw[T](raw, opts)
}

// NewMatrix creates a zeroed columns x rows matrix.
//
// Example:
//
//	m, err := tensor.NewMatrix[float64](2, 3) // 2 columns, 3 rows
func NewMatrix[T DType](columns, rows int) (*Matrix[T], error) {
	return tensor.NewMatrix[T](columns, rows)
}

// NewMatrixWithOptions creates a zeroed matrix with explicit options.
func NewMatrixWithOptions[T DType](columns, rows int, opts Options) (*Matrix[T], error) {
	return tensor.NewMatrixWithOptions[T](columns, rows, opts)
}

// MatrixFromArray creates a matrix from a row-major block, block[row][col].
//
// Example:
//
//	m, err := tensor.MatrixFromArray([][]float64{{2, 3}, {1, 1}}, tensor.DefaultOptions())
func MatrixFromArray[T DType](block [][]T, opts Options) (*Matrix[T], error) {
	return tensor.MatrixFromArray(block, opts)
}

// MatrixFromRaw wraps a rank-2 block.
func MatrixFromRaw[T DType](raw *RawBlock, opts Options) (*Matrix[T], error) {
	return tensor.MatrixFromRaw[T](raw, opts)
}

// NewTensor creates a zeroed columns x rows x depths tensor.
func NewTensor[T DType](columns, rows, depths int) (*Tensor[T], error) {
	return tensor.NewTensor[T](columns, rows, depths)
}

// NewTensorWithOptions creates a zeroed tensor with explicit options.
func NewTensorWithOptions[T DType](columns, rows, depths int, opts Options) (*Tensor[T], error) {
	return tensor.NewTensorWithOptions[T](columns, rows, depths, opts)
}

// TensorFromRaw wraps a rank-3 block.
func TensorFromRaw[T DType](raw *RawBlock, opts Options) (*Tensor[T], error) {
	return tensor.TensorFromRaw[T](raw, opts)
}

// Growth

// Append returns v with elem added at the end. v is invalidated.
func Append[T DType](v *Vector[T], elem T) (*Vector[T], error) {
	return tensor.Append(v, elem)
}

// Resize returns v with length n. v is invalidated.
func Resize[T DType](v *Vector[T], n int) (*Vector[T], error) {
	return tensor.Resize(v, n)
}

// Comparison

// SameShape reports whether two matrices have the same (columns, rows).
func SameShape[T DType](a, b *Matrix[T]) bool {
	return tensor.SameShape(a, b)
}

// ShapeDiffers reports whether two matrices differ in columns or rows.
func ShapeDiffers[T DType](a, b *Matrix[T]) bool {
	return tensor.ShapeDiffers(a, b)
}

// Equal reports whether two matrices hold the same elements.
func Equal[T DType](a, b *Matrix[T]) bool {
	return tensor.Equal(a, b)
}

// SameShape3 reports whether two tensors have the same extents.
func SameShape3[T DType](a, b *Tensor[T]) bool {
	return tensor.SameShape3(a, b)
}

// Equal3 reports whether two tensors hold the same elements.
func Equal3[T DType](a, b *Tensor[T]) bool {
	return tensor.Equal3(a, b)
}

// Printing

// Style selects how containers are rendered.
type Style = tensor.Style

// Print styles.
const (
	StyleAuto      Style = tensor.StyleAuto
	StyleBracketed Style = tensor.StyleBracketed
	StylePlain     Style = tensor.StylePlain
)

// Printer renders containers through the element codec table.
type Printer = tensor.Printer

// ElementCodec is the formatter/dereferencer pair for a Kind.
type ElementCodec = tensor.ElementCodec

// ParseStyle converts "auto", "bracketed" or "plain" to a Style.
func ParseStyle(s string) (Style, bool) {
	return tensor.ParseStyle(s)
}

// Lookup resolves the codec for kind.
func Lookup(kind Kind) (ElementCodec, error) {
	return tensor.Lookup(kind)
}

// Fprint writes b to w in the automatic style.
func Fprint(w io.Writer, b *RawBlock) error {
	return tensor.Fprint(w, b)
}
