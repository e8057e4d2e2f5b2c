package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVector_Append(t *testing.T) {
	opts, alloc := trackedOptions(ColumnMajor)

	v, err := NewVectorWithOptions[float64](3, opts)
	require.NoError(t, err)
	require.NoError(t, v.FromSlice([]float64{1, 2, 3}))

	grown, err := Append(v, 4.0)
	require.NoError(t, err)

	assert.Equal(t, 4, grown.Len())
	assert.Equal(t, []float64{1, 2, 3, 4}, grown.Slice())
	assert.True(t, v.Released(), "the appended-to handle is superseded")

	require.NoError(t, grown.Release())
	assert.NoError(t, alloc.Leaks())
}

func TestVector_AppendAmortized(t *testing.T) {
	opts, alloc := trackedOptions(ColumnMajor)

	first, err := NewVectorWithOptions[int64](0, opts)
	require.NoError(t, err)

	v := first
	for i := 1; i <= 100; i++ {
		v, err = Append(v, int64(i))
		require.NoError(t, err)
		require.Equal(t, i, v.Len())
		require.Equal(t, int64(i), v.At(i))
	}

	assert.True(t, first.Released())
	assert.GreaterOrEqual(t, v.Cap(), v.Len())
	for i := 1; i <= 100; i++ {
		assert.Equal(t, int64(i), v.At(i))
	}
	assert.Less(t, alloc.Stats().Allocations, 10, "growth must double capacity")

	require.NoError(t, v.Release())
	assert.Zero(t, alloc.Live())
}

func TestVector_SupersededHandle(t *testing.T) {
	v, err := VectorFromSlice([]float32{1, 2}, DefaultOptions())
	require.NoError(t, err)
	grown, err := Append(v, 3)
	require.NoError(t, err)

	assert.ErrorIs(t, v.Fill(1), ErrNullPointer)
	_, err = Append(v, 4)
	assert.ErrorIs(t, err, ErrNullPointer)
	assert.ErrorIs(t, v.Release(), ErrNullPointer)
	assert.Panics(t, func() { v.At(1) })
	assert.Nil(t, v.Slice())

	assert.Equal(t, []float32{1, 2, 3}, grown.Slice())
}

func TestVector_Resize(t *testing.T) {
	opts, alloc := trackedOptions(ColumnMajor)
	v, err := VectorFromSlice([]int32{1, 2, 3, 4, 5}, opts)
	require.NoError(t, err)

	v, err = Resize(v, 2)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2}, v.Slice())

	v, err = Resize(v, 4)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 0, 0}, v.Slice(), "shrunk slots come back zeroed")

	v, err = Resize(v, 12)
	require.NoError(t, err)
	assert.Equal(t, 12, v.Len())
	assert.Equal(t, int32(2), v.At(2))
	assert.Equal(t, int32(0), v.At(12))

	_, err = Resize(v, -1)
	require.ErrorIs(t, err, ErrDimensionMismatch)
	assert.False(t, v.Released(), "failed resize leaves the vector usable")
	assert.Equal(t, 12, v.Len())

	require.NoError(t, v.Release())
	assert.NoError(t, alloc.Leaks())
}

func TestVector_AppendAllocationFailure(t *testing.T) {
	alloc := NewTrackingAllocator(5 * 8)
	v, err := VectorFromSlice([]float64{1, 2, 3, 4}, Options{Allocator: alloc})
	require.NoError(t, err)

	_, err = Append(v, 5)
	require.ErrorIs(t, err, ErrAllocationFailure)
	assert.False(t, v.Released())
	assert.Equal(t, []float64{1, 2, 3, 4}, v.Slice())

	require.NoError(t, v.Release())
	assert.Zero(t, alloc.Live())
}

func TestVector_AccessOutOfRange(t *testing.T) {
	v, err := NewVector[uint8](3)
	require.NoError(t, err)

	assert.Panics(t, func() { v.At(0) }, "position 0 is the sentinel")
	assert.Panics(t, func() { v.At(4) })
	assert.NotPanics(t, func() { v.Set(3, 7) })
	assert.Equal(t, uint8(7), v.At(3))
}

func TestVector_FromSliceMismatch(t *testing.T) {
	v, err := NewVector[float64](3)
	require.NoError(t, err)
	err = v.FromSlice([]float64{1, 2})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestVector_CloneEqual(t *testing.T) {
	v, err := VectorFromSlice([]int16{4, 5, 6}, DefaultOptions())
	require.NoError(t, err)
	c, err := v.Clone()
	require.NoError(t, err)

	assert.True(t, v.Equal(c))
	c.Set(1, 9)
	assert.False(t, v.Equal(c))
	assert.Equal(t, int16(4), v.At(1))
}

func TestVectorOps(t *testing.T) {
	newVec := func(xs ...float64) *Vector[float64] {
		v, err := VectorFromSlice(xs, DefaultOptions())
		require.NoError(t, err)
		return v
	}

	t.Run("apply", func(t *testing.T) {
		a, b := newVec(1, 2, 3), newVec(10, 20, 30)
		require.NoError(t, ApplyVector(a, b, OpAdd))
		assert.Equal(t, []float64{11, 22, 33}, a.Slice())
	})

	t.Run("apply mismatch", func(t *testing.T) {
		a, b := newVec(1, 2, 3), newVec(1, 2)
		err := ApplyVector(a, b, OpAdd)
		require.ErrorIs(t, err, ErrDimensionMismatch)
		assert.Equal(t, []float64{1, 2, 3}, a.Slice())
	})

	t.Run("apply into", func(t *testing.T) {
		dst, a, b := newVec(0, 0), newVec(6, 8), newVec(2, 4)
		require.NoError(t, ApplyVectorInto(dst, a, b, OpDiv))
		assert.Equal(t, []float64{3, 2}, dst.Slice())
	})

	t.Run("slice", func(t *testing.T) {
		a, b := newVec(1, 1, 1, 1), newVec(5, 5, 5, 5)
		require.NoError(t, SliceApplyVector(a, b, OpMul, 2, 3))
		assert.Equal(t, []float64{1, 5, 5, 1}, a.Slice())

		err := SliceApplyVector(a, b, OpMul, 0, 3)
		assert.ErrorIs(t, err, ErrDimensionMismatch)
		err = SliceApplyVector(a, b, OpMul, 3, 5)
		assert.ErrorIs(t, err, ErrDimensionMismatch)
		assert.Equal(t, []float64{1, 5, 5, 1}, a.Slice())
	})

	t.Run("scalar", func(t *testing.T) {
		a := newVec(1, 2, 3)
		require.NoError(t, ScalarApplyVector(a, 2, OpSub))
		assert.Equal(t, []float64{-1, 0, 1}, a.Slice())

		require.NoError(t, ScalarSliceApplyVector(a, 10, OpAdd, 3, 3))
		assert.Equal(t, []float64{-1, 0, 11}, a.Slice())
		assert.ErrorIs(t, ScalarSliceApplyVector(a, 10, OpAdd, 2, 1), ErrDimensionMismatch)
	})

	t.Run("invalid operator", func(t *testing.T) {
		a, b := newVec(1), newVec(2)
		assert.ErrorIs(t, ApplyVector(a, b, Op(42)), ErrInvalidOperator)
		assert.Equal(t, []float64{1}, a.Slice())
	})

	t.Run("parallel", func(t *testing.T) {
		n := 1000
		xs := make([]float64, n)
		for i := range xs {
			xs[i] = float64(i)
		}
		seq, err := VectorFromSlice(xs, Options{Parallel: forcedParallel()})
		require.NoError(t, err)
		require.NoError(t, ScalarApplyVector(seq, 3, OpMul))
		for i, x := range seq.Slice() {
			assert.Equal(t, float64(i)*3, x)
		}
	})
}
