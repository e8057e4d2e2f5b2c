// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/simutil/internal/tensor"
)

// RawBlock is the untyped container representation.
//
// RawBlock provides:
//   - Shape, kind and layout information via Header(), Kind(), Layout()
//   - Byte-level element access via Element() and Fibre()
//   - Release of the payload back to its allocator
//
// Most users should use Vector, Matrix or Tensor instead. RawBlock is what
// serialization.ReadBlock returns when the element kind is only known at run
// time.
//
// Example:
//
//	raw, _ := tensor.NewRawBlock(tensor.Float64, tensor.ColumnMajor, nil, 3, 2)
//	m, _ := tensor.MatrixFromRaw[float64](raw, tensor.DefaultOptions())
type RawBlock = tensor.RawBlock

// Header is the shape record of a container.
type Header = tensor.Header

// Allocator hands out and takes back payload blocks.
type Allocator = tensor.Allocator

// HeapAllocator allocates on the Go heap.
type HeapAllocator = tensor.HeapAllocator

// TrackingAllocator records live blocks and can enforce a byte limit.
type TrackingAllocator = tensor.TrackingAllocator

// AllocStats is a snapshot of a TrackingAllocator.
type AllocStats = tensor.AllocStats

// MaxRank is the highest number of axes a container can have.
const MaxRank = tensor.MaxRank

// NewRawBlock allocates a zeroed block. A nil allocator means DefaultAllocator().
func NewRawBlock(kind Kind, layout Layout, alloc Allocator, extents ...int) (*RawBlock, error) {
	return tensor.NewRawBlock(kind, layout, alloc, extents...)
}

// NewHeader builds a shape header from extents (columns[, rows[, depths]]).
func NewHeader(extents ...int) (Header, error) {
	return tensor.NewHeader(extents...)
}

// NewTrackingAllocator creates a tracking allocator over the heap.
// A limit of 0 means unlimited.
func NewTrackingAllocator(limit int) *TrackingAllocator {
	return tensor.NewTrackingAllocator(limit)
}

// DefaultAllocator returns the allocator used when Options leave it unset.
func DefaultAllocator() Allocator {
	return tensor.DefaultAllocator()
}

// AllocationSize returns the payload size in bytes for kind and extents.
func AllocationSize(kind Kind, extents ...int) (int, error) {
	return tensor.AllocationSize(kind, extents...)
}

// IndexTableSize returns the bytes of index tables a matrix or tensor of the
// given layout and extents keeps beside its payload. TrackingAllocator counts
// them against its Limit.
func IndexTableSize(layout Layout, extents ...int) (int, error) {
	return tensor.IndexTableSize(layout, extents...)
}
