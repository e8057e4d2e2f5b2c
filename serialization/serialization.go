// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package serialization saves and loads containers in the little-endian
// binary container format.
//
// Example:
//
//	f, _ := os.Create("a.bin")
//	if err := serialization.SaveMatrix(f, m); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Later, with the element type known:
//	m, err := serialization.LoadMatrix[float64](r, tensor.DefaultOptions())
package serialization

import (
	"io"

	"github.com/born-ml/simutil/internal/serialization"
	"github.com/born-ml/simutil/tensor"
)

// FileOptions configures SaveFile.
type FileOptions = serialization.FileOptions

// FieldError names the field or row that could not be read or written.
type FieldError = serialization.FieldError

// Container ranks for ReadBlock and LoadFile.
const (
	RankVector = serialization.RankVector
	RankMatrix = serialization.RankMatrix
	RankTensor = serialization.RankTensor
)

// ErrInvalidRank is returned for ranks outside 1..3.
var ErrInvalidRank = serialization.ErrInvalidRank

// ParseRank converts "vector", "matrix" or "tensor" to a rank.
func ParseRank(s string) (int, bool) {
	return serialization.ParseRank(s)
}

// SaveVector writes v to w.
func SaveVector[T tensor.DType](w io.Writer, v *tensor.Vector[T]) error {
	return serialization.SaveVector(w, v)
}

// LoadVector reads a vector of element type T from r.
func LoadVector[T tensor.DType](r io.Reader, opts tensor.Options) (*tensor.Vector[T], error) {
	return serialization.LoadVector[T](r, opts)
}

// SaveMatrix writes m to w.
func SaveMatrix[T tensor.DType](w io.Writer, m *tensor.Matrix[T]) error {
	return serialization.SaveMatrix(w, m)
}

// LoadMatrix reads a matrix of element type T from r.
func LoadMatrix[T tensor.DType](r io.Reader, opts tensor.Options) (*tensor.Matrix[T], error) {
	return serialization.LoadMatrix[T](r, opts)
}

// SaveTensor writes t to w.
func SaveTensor[T tensor.DType](w io.Writer, t *tensor.Tensor[T]) error {
	return serialization.SaveTensor(w, t)
}

// LoadTensor reads a tensor of element type T from r.
func LoadTensor[T tensor.DType](r io.Reader, opts tensor.Options) (*tensor.Tensor[T], error) {
	return serialization.LoadTensor[T](r, opts)
}

// WriteBlock writes an untyped block to w.
func WriteBlock(w io.Writer, b *tensor.RawBlock) error {
	return serialization.WriteBlock(w, b)
}

// ReadBlock reads a block of the given rank and kind from r.
func ReadBlock(r io.Reader, rank int, kind tensor.Kind, opts tensor.Options) (*tensor.RawBlock, error) {
	return serialization.ReadBlock(r, rank, kind, opts)
}

// SaveFile writes b to path, optionally zstd-compressed.
func SaveFile(path string, b *tensor.RawBlock, opts FileOptions) error {
	return serialization.SaveFile(path, b, opts)
}

// LoadFile reads a block from path, decompressing zstd files transparently.
func LoadFile(path string, rank int, kind tensor.Kind, opts tensor.Options) (*tensor.RawBlock, error) {
	return serialization.LoadFile(path, rank, kind, opts)
}
