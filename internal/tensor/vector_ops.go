package tensor

import (
	"fmt"

	"github.com/born-ml/simutil/internal/parallel"
)

// applySpan computes dst[i] = fn(lhs[i], rhs[i] or c) for i in [lo, hi].
func applySpan[T DType](dst, lhs, rhs *Vector[T], c T, fn func(a, b T) T, lo, hi int, cfg parallel.Config) {
	d := view[T](dst.raw)
	l := view[T](lhs.raw)
	var s []T
	if rhs != nil {
		s = view[T](rhs.raw)
	}
	parallel.ForRange(lo, hi, func(i int) {
		b := c
		if s != nil {
			b = s[i]
		}
		d[i] = fn(l[i], b)
	}, cfg)
}

// ApplyVector computes target = target op source element-wise. Lengths must match.
func ApplyVector[T DType](target, source *Vector[T], op Op) error {
	const name = "ApplyVector"
	if !target.valid() || !source.valid() {
		return nullError(name)
	}
	fn, err := operator[T](name, op)
	if err != nil {
		return err
	}
	if target.Len() != source.Len() {
		return dimensionError(name, "vector dimension mismatch", target.Header(), source.Header())
	}
	applySpan(target, target, source, 0, fn, 1, target.Len(), target.par)
	return nil
}

// ApplyVectorInto computes target = lhs op rhs element-wise. All lengths must match.
func ApplyVectorInto[T DType](target, lhs, rhs *Vector[T], op Op) error {
	const name = "ApplyVectorInto"
	if !target.valid() || !lhs.valid() || !rhs.valid() {
		return nullError(name)
	}
	fn, err := operator[T](name, op)
	if err != nil {
		return err
	}
	if target.Len() != lhs.Len() || target.Len() != rhs.Len() {
		return dimensionError(name, "vector dimension mismatch",
			target.Header(), lhs.Header(), rhs.Header())
	}
	applySpan(target, lhs, rhs, 0, fn, 1, target.Len(), target.par)
	return nil
}

// SliceApplyVector computes target = target op source for positions in the
// inclusive span [left, right], which must lie within both vectors.
func SliceApplyVector[T DType](target, source *Vector[T], op Op, left, right int) error {
	const name = "SliceApplyVector"
	if !target.valid() || !source.valid() {
		return nullError(name)
	}
	fn, err := operator[T](name, op)
	if err != nil {
		return err
	}
	if left < 1 || left > right || right > target.Len() || right > source.Len() {
		return dimensionError(name, fmt.Sprintf("l,r = %d,%d", left, right),
			target.Header(), source.Header())
	}
	applySpan(target, target, source, 0, fn, left, right, target.par)
	return nil
}

// ScalarApplyVector computes target = target op c for every element.
func ScalarApplyVector[T DType](target *Vector[T], c T, op Op) error {
	const name = "ScalarApplyVector"
	if !target.valid() {
		return nullError(name)
	}
	fn, err := operator[T](name, op)
	if err != nil {
		return err
	}
	applySpan(target, target, nil, c, fn, 1, target.Len(), target.par)
	return nil
}

// ScalarSliceApplyVector computes target = target op c for positions in [left, right].
func ScalarSliceApplyVector[T DType](target *Vector[T], c T, op Op, left, right int) error {
	const name = "ScalarSliceApplyVector"
	if !target.valid() {
		return nullError(name)
	}
	fn, err := operator[T](name, op)
	if err != nil {
		return err
	}
	if left < 1 || left > right || right > target.Len() {
		return dimensionError(name, fmt.Sprintf("l,r = %d,%d", left, right), target.Header())
	}
	applySpan(target, target, nil, c, fn, left, right, target.par)
	return nil
}
