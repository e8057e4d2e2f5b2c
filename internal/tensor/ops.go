package tensor

import (
	"fmt"

	"github.com/born-ml/simutil/internal/parallel"
)

// Op is an element-wise operator.
type Op int

// Supported operators. OpAssign stores the right operand.
const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpAssign
)

// String returns the operator symbol.
func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpAssign:
		return "="
	default:
		return fmt.Sprintf("Op(%d)", int(op))
	}
}

// operator resolves op to a function once, outside the element loops.
// Division is unchecked: integer division by zero panics, float division
// yields Inf or NaN.
func operator[T DType](name string, op Op) (func(a, b T) T, error) {
	switch op {
	case OpAdd:
		return func(a, b T) T { return a + b }, nil
	case OpSub:
		return func(a, b T) T { return a - b }, nil
	case OpMul:
		return func(a, b T) T { return a * b }, nil
	case OpDiv:
		return func(a, b T) T { return a / b }, nil
	case OpAssign:
		return func(_, b T) T { return b }, nil
	default:
		return nil, &Error{Kind: KindInvalidOperator, Op: name, Detail: op.String()}
	}
}

// rect is an inclusive 1-based rectangle [left, right] x [up, down] in
// (column, row) coordinates.
type rect struct {
	left, right, up, down int
}

func fullRect(h Header) rect {
	return rect{left: 1, right: h.Columns(), up: 1, down: h.Rows()}
}

func (r rect) String() string {
	return fmt.Sprintf("l,r,u,d = %d,%d,%d,%d", r.left, r.right, r.up, r.down)
}

// inside reports whether the rectangle is non-inverted and lies within h.
func (r rect) inside(h Header) bool {
	return r.left >= 1 && r.up >= 1 &&
		r.left <= r.right && r.up <= r.down &&
		r.right <= h.Columns() && r.down <= h.Rows()
}

// applyRect computes dst = fn(lhs, rhs) over r, with rhs either a matrix or
// the scalar c when rhs is nil. Loops run by leading index of dst, so no two
// iterations write the same element.
func applyRect[T DType](dst, lhs, rhs *Matrix[T], c T, fn func(a, b T) T, r rect, cfg parallel.Config) {
	d := view[T](dst.raw)
	l := view[T](lhs.raw)
	var s []T
	if rhs != nil {
		s = view[T](rhs.raw)
	}

	lo, hi, innerLo, innerHi := r.left, r.right, r.up, r.down
	rowMajor := dst.raw.layout == RowMajor
	if rowMajor {
		lo, hi, innerLo, innerHi = r.up, r.down, r.left, r.right
	}

	parallel.ForRange(lo, hi, func(i int) {
		for j := innerLo; j <= innerHi; j++ {
			col, row := i, j
			if rowMajor {
				col, row = j, i
			}
			b := c
			if s != nil {
				b = s[rhs.raw.offset2(col, row)]
			}
			d[dst.raw.offset2(col, row)] = fn(l[lhs.raw.offset2(col, row)], b)
		}
	}, cfg)
}

// SetEqual copies every element of source into target. Shapes must match.
func SetEqual[T DType](target, source *Matrix[T]) error {
	return elementwise("SetEqual", target, source, OpAssign)
}

// Apply computes target = target op source element-wise. Shapes must match;
// on mismatch nothing is written.
func Apply[T DType](target, source *Matrix[T], op Op) error {
	return elementwise("Apply", target, source, op)
}

func elementwise[T DType](name string, target, source *Matrix[T], op Op) error {
	if !target.valid() || !source.valid() {
		return nullError(name)
	}
	fn, err := operator[T](name, op)
	if err != nil {
		return err
	}
	if ShapeDiffers(target, source) {
		return dimensionError(name, "unmatching matrix dimensions", target.Header(), source.Header())
	}
	applyRect(target, target, source, 0, fn, fullRect(target.Header()), target.par)
	return nil
}

// ApplyInto computes target = lhs op rhs element-wise. All three shapes must match.
func ApplyInto[T DType](target, lhs, rhs *Matrix[T], op Op) error {
	const name = "ApplyInto"
	if !target.valid() || !lhs.valid() || !rhs.valid() {
		return nullError(name)
	}
	fn, err := operator[T](name, op)
	if err != nil {
		return err
	}
	if ShapeDiffers(target, lhs) || ShapeDiffers(target, rhs) {
		return dimensionError(name, "unmatching matrix dimensions",
			target.Header(), lhs.Header(), rhs.Header())
	}
	applyRect(target, lhs, rhs, 0, fn, fullRect(target.Header()), target.par)
	return nil
}

// SliceApply computes target = target op source inside the inclusive
// rectangle [left, right] x [up, down]. The rectangle must lie within both
// operands; otherwise nothing is written and the error reports the requested
// bounds and both shapes.
func SliceApply[T DType](target, source *Matrix[T], op Op, left, right, up, down int) error {
	const name = "SliceApply"
	if !target.valid() || !source.valid() {
		return nullError(name)
	}
	fn, err := operator[T](name, op)
	if err != nil {
		return err
	}
	r := rect{left: left, right: right, up: up, down: down}
	if !r.inside(target.Header()) || !r.inside(source.Header()) {
		return dimensionError(name, r.String(), target.Header(), source.Header())
	}
	applyRect(target, target, source, 0, fn, r, target.par)
	return nil
}

// SliceApplyLike is SliceApply over [1, like.Columns()] x [1, like.Rows()].
// like must fit within target and source.
func SliceApplyLike[T DType](target, source *Matrix[T], op Op, like *Matrix[T]) error {
	const name = "SliceApplyLike"
	if !target.valid() || !source.valid() || !like.valid() {
		return nullError(name)
	}
	fn, err := operator[T](name, op)
	if err != nil {
		return err
	}
	if !like.Header().Fits(target.Header()) || !like.Header().Fits(source.Header()) {
		return dimensionError(name, "reference does not fit",
			target.Header(), source.Header(), like.Header())
	}
	r := fullRect(like.Header())
	if r.right == 0 || r.down == 0 {
		return nil
	}
	applyRect(target, target, source, 0, fn, r, target.par)
	return nil
}

// ScalarApply computes target = target op c for every element.
func ScalarApply[T DType](target *Matrix[T], c T, op Op) error {
	const name = "ScalarApply"
	if !target.valid() {
		return nullError(name)
	}
	fn, err := operator[T](name, op)
	if err != nil {
		return err
	}
	applyRect(target, target, nil, c, fn, fullRect(target.Header()), target.par)
	return nil
}

// ScalarSliceApply computes target = target op c inside the inclusive
// rectangle [left, right] x [up, down], which must lie within target.
func ScalarSliceApply[T DType](target *Matrix[T], c T, op Op, left, right, up, down int) error {
	const name = "ScalarSliceApply"
	if !target.valid() {
		return nullError(name)
	}
	fn, err := operator[T](name, op)
	if err != nil {
		return err
	}
	r := rect{left: left, right: right, up: up, down: down}
	if !r.inside(target.Header()) {
		return dimensionError(name, r.String(), target.Header())
	}
	applyRect(target, target, nil, c, fn, r, target.par)
	return nil
}

// ScalarSliceApplyLike is ScalarSliceApply over [1, like.Columns()] x [1, like.Rows()].
func ScalarSliceApplyLike[T DType](target *Matrix[T], c T, op Op, like *Matrix[T]) error {
	const name = "ScalarSliceApplyLike"
	if !target.valid() || !like.valid() {
		return nullError(name)
	}
	fn, err := operator[T](name, op)
	if err != nil {
		return err
	}
	if !like.Header().Fits(target.Header()) {
		return dimensionError(name, "reference does not fit", target.Header(), like.Header())
	}
	r := fullRect(like.Header())
	if r.right == 0 || r.down == 0 {
		return nil
	}
	applyRect(target, target, nil, c, fn, r, target.par)
	return nil
}
