// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides contiguous numeric containers for simulation code.
//
// # Overview
//
// Three container types share one representation:
//   - Vector[T]: growable 1-D container, At(i)
//   - Matrix[T]: 2-D container, At(col, row)
//   - Tensor[T]: 3-D container, At(col, row, depth)
//
// Every container is one allocation holding a shape header, the elements and
// an index table derived from the header. Positions are 1-based: valid
// indices run from 1 to the extent, and slot 0 of each axis is an unused
// sentinel.
//
// # Basic Usage
//
//	import "github.com/born-ml/simutil/tensor"
//
//	func main() {
//	    a, _ := tensor.MatrixFromArray([][]float64{{2, 3}, {1, 1}}, tensor.DefaultOptions())
//	    b, _ := tensor.NewMatrix[float64](2, 2)
//	    _ = b.Fill(1)
//
//	    // Element-wise a = a + b
//	    if err := tensor.Apply(a, b, tensor.OpAdd); err != nil {
//	        log.Fatal(err)
//	    }
//	    _ = a.Print()
//	    _ = a.Release()
//	}
//
// # Layout
//
// Storage order is a per-container option. ColumnMajor (the default) keeps
// each column contiguous; RowMajor keeps each row contiguous. At, Set,
// printing and serialization use logical coordinates, so results never depend
// on the layout. SetDefaultLayout changes the process-wide default.
//
// # Supported Data Types
//
// The DType constraint admits int8..int64, uint8..uint64, float32 and float64,
// including named types based on them. The runtime Kind tag adds Float128
// (16-byte elements), which can be allocated and persisted but not printed.
//
// # Errors
//
// Operations return *Error values whose kind can be tested with errors.Is
// against ErrAllocationFailure, ErrDimensionMismatch, ErrUnsupportedElementType,
// ErrNullPointer, ErrTruncatedData and ErrInvalidOperator. A failed operation
// leaves its operands unchanged. Indexing outside the valid range panics, as
// with Go slices.
//
// # Growth
//
// Append and Resize return a new *Vector and invalidate the one passed in:
//
//	v, _ = tensor.Append(v, 4.0)
//
// Using the old handle afterwards returns ErrNullPointer.
package tensor
