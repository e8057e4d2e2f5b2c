package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/simutil/internal/parallel"
)

// filledMatrix builds a columns x rows matrix with At(c, r) = f(c, r).
func filledMatrix(t *testing.T, columns, rows int, opts Options, f func(c, r int) float64) *Matrix[float64] {
	t.Helper()
	m, err := NewMatrixWithOptions[float64](columns, rows, opts)
	require.NoError(t, err)
	for c := 1; c <= columns; c++ {
		for r := 1; r <= rows; r++ {
			m.Set(c, r, f(c, r))
		}
	}
	return m
}

func constant(x float64) func(c, r int) float64 {
	return func(_, _ int) float64 { return x }
}

// sentinelsZero reports whether every slot with a zero coordinate is still zero.
func sentinelsZero[T DType](m *Matrix[T]) bool {
	data := view[T](m.raw)
	for c := 0; c <= m.Columns(); c++ {
		for r := 0; r <= m.Rows(); r++ {
			if (c == 0 || r == 0) && data[m.raw.offset2(c, r)] != 0 {
				return false
			}
		}
	}
	return true
}

func TestMatrix_Layouts(t *testing.T) {
	for _, layout := range layouts {
		t.Run(layout.String(), func(t *testing.T) {
			opts, alloc := trackedOptions(layout)
			m, err := MatrixFromArray([][]int32{{1, 2, 3}, {4, 5, 6}}, opts)
			require.NoError(t, err)

			assert.Equal(t, 3, m.Columns())
			assert.Equal(t, 2, m.Rows())
			assert.Equal(t, layout, m.Layout())
			assert.Equal(t, int32(3), m.At(3, 1))
			assert.Equal(t, int32(4), m.At(1, 2))
			assert.Equal(t, [][]int32{{1, 2, 3}, {4, 5, 6}}, m.ToArray())

			if layout == ColumnMajor {
				assert.Equal(t, []int32{1, 4}, m.Line(1))
			} else {
				assert.Equal(t, []int32{1, 2, 3}, m.Line(1))
			}
			assert.True(t, sentinelsZero(m))

			require.NoError(t, m.Release())
			assert.NoError(t, alloc.Leaks())
		})
	}
}

func TestMatrix_WiringDistinctOffsets(t *testing.T) {
	for _, layout := range layouts {
		m, err := NewMatrixWithOptions[float32](4, 7, Options{Layout: layout})
		require.NoError(t, err)

		seen := make(map[int]bool)
		for c := 1; c <= 4; c++ {
			for r := 1; r <= 7; r++ {
				off := m.raw.Offset(c, r)
				assert.False(t, seen[off], "offset %d reused at (%d,%d)", off, c, r)
				assert.Less(t, off, m.Header().NumSlots())
				seen[off] = true
			}
		}
	}
}

func TestMatrix_FromArrayMismatch(t *testing.T) {
	opts, alloc := trackedOptions(ColumnMajor)
	_, err := MatrixFromArray([][]float64{{1, 2}, {3}}, opts)
	require.ErrorIs(t, err, ErrDimensionMismatch)
	assert.Zero(t, alloc.Live(), "partially built matrix is released")

	m, err := NewMatrix[float64](2, 2)
	require.NoError(t, err)
	assert.ErrorIs(t, m.FromArray([][]float64{{1, 2}}), ErrDimensionMismatch)
}

func TestApply_DimensionMismatch(t *testing.T) {
	opts, _ := trackedOptions(ColumnMajor)
	a := filledMatrix(t, 2, 2, opts, constant(1))
	b := filledMatrix(t, 3, 3, opts, constant(2))

	err := Apply(a, b, OpAdd)
	require.ErrorIs(t, err, ErrDimensionMismatch)
	assert.Contains(t, err.Error(), "Apply")
	assert.Contains(t, err.Error(), "[2, 2] vs [3, 3]")

	assert.True(t, Equal(a, filledMatrix(t, 2, 2, opts, constant(1))), "target untouched")
	assert.True(t, Equal(b, filledMatrix(t, 3, 3, opts, constant(2))), "source untouched")

	assert.ErrorIs(t, ApplyInto(a, a, b, OpAdd), ErrDimensionMismatch)
	assert.ErrorIs(t, SetEqual(a, b), ErrDimensionMismatch)
}

func TestSliceApply_OutOfBounds(t *testing.T) {
	opts, _ := trackedOptions(ColumnMajor)
	a := filledMatrix(t, 4, 4, opts, constant(1))
	b := filledMatrix(t, 4, 4, opts, constant(1))

	err := SliceApply(a, b, OpAdd, 1, 5, 1, 4)
	require.ErrorIs(t, err, ErrDimensionMismatch)
	assert.Contains(t, err.Error(), "l,r,u,d = 1,5,1,4")
	assert.Contains(t, err.Error(), "[4, 4]")
	assert.True(t, Equal(a, b), "nothing written")

	cases := [][4]int{
		{0, 2, 1, 1}, // left below 1
		{3, 2, 1, 1}, // inverted columns
		{1, 2, 3, 2}, // inverted rows
		{1, 2, 1, 5}, // below the last row
	}
	for _, c := range cases {
		assert.ErrorIs(t, SliceApply(a, b, OpAdd, c[0], c[1], c[2], c[3]), ErrDimensionMismatch, "%v", c)
		assert.ErrorIs(t, ScalarSliceApply(a, 1, OpAdd, c[0], c[1], c[2], c[3]), ErrDimensionMismatch, "%v", c)
	}

	small := filledMatrix(t, 2, 2, opts, constant(1))
	assert.ErrorIs(t, SliceApply(a, small, OpAdd, 1, 3, 1, 1), ErrDimensionMismatch,
		"rectangle must fit the source too")
}

func TestSliceApply_StaysInRectangle(t *testing.T) {
	for _, layout := range layouts {
		t.Run(layout.String(), func(t *testing.T) {
			opts, _ := trackedOptions(layout)
			target := filledMatrix(t, 5, 4, opts, constant(0))
			source := filledMatrix(t, 5, 4, opts, constant(1))

			require.NoError(t, SliceApply(target, source, OpAdd, 2, 4, 2, 3))
			for c := 1; c <= 5; c++ {
				for r := 1; r <= 4; r++ {
					want := 0.0
					if c >= 2 && c <= 4 && r >= 2 && r <= 3 {
						want = 1
					}
					assert.Equal(t, want, target.At(c, r), "(%d,%d)", c, r)
				}
			}
			assert.True(t, sentinelsZero(target))

			require.NoError(t, ScalarSliceApply(target, 5, OpAssign, 1, 1, 4, 4))
			assert.Equal(t, 5.0, target.At(1, 4))
			assert.Equal(t, 0.0, target.At(2, 4))
		})
	}
}

func TestSliceApply_FullRectangleMatchesApply(t *testing.T) {
	opts, _ := trackedOptions(ColumnMajor)
	gen := func(c, r int) float64 { return float64(c*10 + r) }

	a1 := filledMatrix(t, 6, 3, opts, gen)
	a2 := filledMatrix(t, 6, 3, opts, gen)
	b := filledMatrix(t, 6, 3, opts, func(c, r int) float64 { return float64(c - r) })

	require.NoError(t, SliceApply(a1, b, OpMul, 1, 6, 1, 3))
	require.NoError(t, Apply(a2, b, OpMul))
	assert.True(t, Equal(a1, a2))
}

func TestApply_MixedLayouts(t *testing.T) {
	gen := func(c, r int) float64 { return float64(c) + float64(r)/10 }
	col := filledMatrix(t, 3, 2, Options{Layout: ColumnMajor}, gen)
	row := filledMatrix(t, 3, 2, Options{Layout: RowMajor}, gen)

	assert.True(t, Equal(col, row), "logical contents do not depend on layout")
	require.NoError(t, Apply(col, row, OpSub))
	for c := 1; c <= 3; c++ {
		for r := 1; r <= 2; r++ {
			assert.Equal(t, 0.0, col.At(c, r))
		}
	}
}

func TestApply_ParallelMatchesSequential(t *testing.T) {
	gen := func(c, r int) float64 { return float64(c*r%17) + 0.5 }
	other := func(c, r int) float64 { return float64(c+r) / 4 }

	for _, layout := range layouts {
		seqOpts, _ := trackedOptions(layout)
		parOpts := seqOpts
		parOpts.Parallel = forcedParallel()

		seq := filledMatrix(t, 70, 65, seqOpts, gen)
		par := filledMatrix(t, 70, 65, parOpts, gen)
		src := filledMatrix(t, 70, 65, seqOpts, other)

		for _, m := range []*Matrix[float64]{seq, par} {
			require.NoError(t, Apply(m, src, OpSub))
			require.NoError(t, ScalarApply(m, 3, OpMul))
			require.NoError(t, SliceApply(m, src, OpAdd, 5, 60, 2, 64))
		}
		assert.True(t, Equal(seq, par), layout.String())
	}
}

func TestApplyInto(t *testing.T) {
	a := filledMatrix(t, 2, 3, DefaultOptions(), func(c, r int) float64 { return float64(c) })
	b := filledMatrix(t, 2, 3, DefaultOptions(), func(c, r int) float64 { return float64(r) })
	dst := filledMatrix(t, 2, 3, DefaultOptions(), constant(-1))

	require.NoError(t, ApplyInto(dst, a, b, OpAdd))
	for c := 1; c <= 2; c++ {
		for r := 1; r <= 3; r++ {
			assert.Equal(t, float64(c+r), dst.At(c, r))
		}
	}
	assert.Equal(t, 2.0, a.At(2, 3), "operands untouched")
}

func TestSliceApplyLike(t *testing.T) {
	target := filledMatrix(t, 4, 4, DefaultOptions(), constant(1))
	source := filledMatrix(t, 4, 4, DefaultOptions(), constant(2))
	like := filledMatrix(t, 2, 3, DefaultOptions(), constant(0))

	require.NoError(t, SliceApplyLike(target, source, OpAdd, like))
	assert.Equal(t, 3.0, target.At(2, 3))
	assert.Equal(t, 1.0, target.At(3, 3))
	assert.Equal(t, 1.0, target.At(2, 4))

	require.NoError(t, ScalarSliceApplyLike(target, 10, OpMul, like))
	assert.Equal(t, 30.0, target.At(1, 1))
	assert.Equal(t, 1.0, target.At(4, 4))

	big := filledMatrix(t, 5, 1, DefaultOptions(), constant(0))
	assert.ErrorIs(t, SliceApplyLike(target, source, OpAdd, big), ErrDimensionMismatch)
	assert.ErrorIs(t, ScalarSliceApplyLike(target, 1, OpAdd, big), ErrDimensionMismatch)
}

func TestScalarApply(t *testing.T) {
	m, err := MatrixFromArray([][]int64{{10, 20}, {30, 40}}, DefaultOptions())
	require.NoError(t, err)

	require.NoError(t, ScalarApply(m, 10, OpDiv))
	assert.Equal(t, [][]int64{{1, 2}, {3, 4}}, m.ToArray())

	require.NoError(t, m.Fill(7))
	assert.Equal(t, [][]int64{{7, 7}, {7, 7}}, m.ToArray())

	assert.ErrorIs(t, ScalarApply(m, 1, Op(-1)), ErrInvalidOperator)
}

func TestMatrixOps_ReleasedOperand(t *testing.T) {
	a := filledMatrix(t, 2, 2, DefaultOptions(), constant(1))
	b := filledMatrix(t, 2, 2, DefaultOptions(), constant(1))
	require.NoError(t, b.Release())

	assert.ErrorIs(t, Apply(a, b, OpAdd), ErrNullPointer)
	assert.ErrorIs(t, SliceApply(a, b, OpAdd, 1, 1, 1, 1), ErrNullPointer)
	assert.ErrorIs(t, ScalarApply(b, 1, OpAdd), ErrNullPointer)
	assert.ErrorIs(t, Apply(a, nil, OpAdd), ErrNullPointer)
	assert.Equal(t, 1.0, a.At(1, 1))
}

func TestMatrix_SetEqualClone(t *testing.T) {
	src := filledMatrix(t, 3, 3, Options{Layout: RowMajor}, func(c, r int) float64 { return float64(c * r) })
	dst := filledMatrix(t, 3, 3, Options{Layout: ColumnMajor}, constant(0))

	require.NoError(t, SetEqual(dst, src))
	assert.True(t, Equal(dst, src))

	c, err := src.Clone()
	require.NoError(t, err)
	assert.Equal(t, RowMajor, c.Layout())
	c.Set(1, 1, 100)
	assert.Equal(t, 1.0, src.At(1, 1))
	assert.True(t, SameShape(c, src))
}

func TestMatrix_EmptyShape(t *testing.T) {
	m, err := NewMatrix[float64](0, 3)
	require.NoError(t, err)
	assert.NoError(t, m.Fill(1))
	assert.Empty(t, m.ToArray()[0])
	assert.Panics(t, func() { m.At(1, 1) })
}

func TestApply_IntegerDivisionByZeroPanicsOnCaller(t *testing.T) {
	configs := map[string]parallel.Config{
		"parallel":   {Enabled: true, NumWorkers: 4, MinChunkSize: 2},
		"sequential": parallel.Sequential(),
	}
	for name, cfg := range configs {
		for _, layout := range layouts {
			t.Run(name+"/"+layout.String(), func(t *testing.T) {
				opts := Options{Layout: layout, Parallel: cfg}
				m, err := NewMatrixWithOptions[int32](200, 3, opts)
				require.NoError(t, err)
				require.NoError(t, m.Fill(7))
				zeros, err := NewMatrixWithOptions[int32](200, 3, opts)
				require.NoError(t, err)

				assert.PanicsWithError(t, "runtime error: integer divide by zero", func() {
					_ = Apply(m, zeros, OpDiv)
				})

				// The process survives and the operands stay usable.
				require.NoError(t, zeros.Fill(1))
				require.NoError(t, Apply(m, zeros, OpDiv))
				assert.Equal(t, int32(7), m.At(1, 1))
			})
		}
	}
}
