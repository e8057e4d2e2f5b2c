// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/simutil/internal/tensor"
)

// Error is the structured error returned by container operations.
type Error = tensor.Error

// ErrorKind categorizes errors.
type ErrorKind = tensor.ErrorKind

// Error kinds.
const (
	KindAllocationFailure      ErrorKind = tensor.KindAllocationFailure
	KindDimensionMismatch      ErrorKind = tensor.KindDimensionMismatch
	KindUnsupportedElementType ErrorKind = tensor.KindUnsupportedElementType
	KindNullPointer            ErrorKind = tensor.KindNullPointer
	KindTruncatedData          ErrorKind = tensor.KindTruncatedData
	KindInvalidOperator        ErrorKind = tensor.KindInvalidOperator
)

// Sentinel errors for errors.Is.
var (
	ErrAllocationFailure      = tensor.ErrAllocationFailure
	ErrDimensionMismatch      = tensor.ErrDimensionMismatch
	ErrUnsupportedElementType = tensor.ErrUnsupportedElementType
	ErrNullPointer            = tensor.ErrNullPointer
	ErrTruncatedData          = tensor.ErrTruncatedData
	ErrInvalidOperator        = tensor.ErrInvalidOperator
)
