// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/simutil/internal/tensor"
)

// Op is an element-wise operator.
type Op = tensor.Op

// Operators.
const (
	OpAdd    Op = tensor.OpAdd
	OpSub    Op = tensor.OpSub
	OpMul    Op = tensor.OpMul
	OpDiv    Op = tensor.OpDiv
	OpAssign Op = tensor.OpAssign
)

// Matrix operations

// SetEqual copies source into target. Shapes must match.
func SetEqual[T DType](target, source *Matrix[T]) error {
	return tensor.SetEqual(target, source)
}

// Apply computes target = target op source element-wise.
//
// Example:
//
//	err := tensor.Apply(a, b, tensor.OpMul)
func Apply[T DType](target, source *Matrix[T], op Op) error {
	return tensor.Apply(target, source, op)
}

// ApplyInto computes target = lhs op rhs element-wise.
func ApplyInto[T DType](target, lhs, rhs *Matrix[T], op Op) error {
	return tensor.ApplyInto(target, lhs, rhs, op)
}

// SliceApply computes target = target op source inside [left, right] x [up, down].
func SliceApply[T DType](target, source *Matrix[T], op Op, left, right, up, down int) error {
	return tensor.SliceApply(target, source, op, left, right, up, down)
}

// SliceApplyLike is SliceApply over the extent of like.
func SliceApplyLike[T DType](target, source *Matrix[T], op Op, like *Matrix[T]) error {
	return tensor.SliceApplyLike(target, source, op, like)
}

// ScalarApply computes target = target op c.
func ScalarApply[T DType](target *Matrix[T], c T, op Op) error {
	return tensor.ScalarApply(target, c, op)
}

// ScalarSliceApply computes target = target op c inside [left, right] x [up, down].
func ScalarSliceApply[T DType](target *Matrix[T], c T, op Op, left, right, up, down int) error {
	return tensor.ScalarSliceApply(target, c, op, left, right, up, down)
}

// ScalarSliceApplyLike is ScalarSliceApply over the extent of like.
func ScalarSliceApplyLike[T DType](target *Matrix[T], c T, op Op, like *Matrix[T]) error {
	return tensor.ScalarSliceApplyLike(target, c, op, like)
}

// Vector operations

// ApplyVector computes target = target op source element-wise.
func ApplyVector[T DType](target, source *Vector[T], op Op) error {
	return tensor.ApplyVector(target, source, op)
}

// ApplyVectorInto computes target = lhs op rhs element-wise.
func ApplyVectorInto[T DType](target, lhs, rhs *Vector[T], op Op) error {
	return tensor.ApplyVectorInto(target, lhs, rhs, op)
}

// SliceApplyVector computes target = target op source on [left, right].
func SliceApplyVector[T DType](target, source *Vector[T], op Op, left, right int) error {
	return tensor.SliceApplyVector(target, source, op, left, right)
}

// ScalarApplyVector computes target = target op c.
func ScalarApplyVector[T DType](target *Vector[T], c T, op Op) error {
	return tensor.ScalarApplyVector(target, c, op)
}

// ScalarSliceApplyVector computes target = target op c on [left, right].
func ScalarSliceApplyVector[T DType](target *Vector[T], c T, op Op, left, right int) error {
	return tensor.ScalarSliceApplyVector(target, c, op, left, right)
}
