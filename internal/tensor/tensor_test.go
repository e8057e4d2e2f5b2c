package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTensor_SetAt(t *testing.T) {
	for _, layout := range layouts {
		t.Run(layout.String(), func(t *testing.T) {
			opts, alloc := trackedOptions(layout)
			tt, err := NewTensorWithOptions[int32](3, 2, 4, opts)
			require.NoError(t, err)

			for c := 1; c <= 3; c++ {
				for r := 1; r <= 2; r++ {
					for d := 1; d <= 4; d++ {
						tt.Set(c, r, d, int32(100*c+10*r+d))
					}
				}
			}
			for c := 1; c <= 3; c++ {
				for r := 1; r <= 2; r++ {
					for d := 1; d <= 4; d++ {
						assert.Equal(t, int32(100*c+10*r+d), tt.At(c, r, d))
					}
				}
			}
			assert.Equal(t, []int32{321, 322, 323, 324}, tt.Fibre(3, 2))

			assert.Panics(t, func() { tt.At(0, 1, 1) })
			assert.Panics(t, func() { tt.At(1, 3, 1) })
			assert.Panics(t, func() { tt.At(1, 1, 5) })

			require.NoError(t, tt.Release())
			assert.NoError(t, alloc.Leaks())
		})
	}
}

func TestTensor_WiringDistinctOffsets(t *testing.T) {
	for _, layout := range layouts {
		tt, err := NewTensorWithOptions[float64](4, 3, 5, Options{Layout: layout})
		require.NoError(t, err)

		seen := make(map[int]bool)
		for c := 1; c <= 4; c++ {
			for r := 1; r <= 3; r++ {
				for d := 1; d <= 5; d++ {
					off := tt.raw.Offset(c, r, d)
					require.False(t, seen[off], "offset %d reused at (%d,%d,%d)", off, c, r, d)
					require.Less(t, off, tt.Header().NumSlots())
					seen[off] = true
				}
			}
		}
		assert.Len(t, seen, 4*3*5)
	}
}

func TestTensor_FillCloneEqual(t *testing.T) {
	opts, alloc := trackedOptions(RowMajor)
	opts.Parallel = forcedParallel()

	a, err := NewTensorWithOptions[float32](5, 4, 3, opts)
	require.NoError(t, err)
	require.NoError(t, a.Fill(2.5))
	assert.Equal(t, float32(2.5), a.At(5, 4, 3))

	b, err := a.Clone()
	require.NoError(t, err)
	assert.True(t, Equal3(a, b))
	assert.True(t, SameShape3(a, b))

	b.Set(1, 1, 1, 0)
	assert.False(t, Equal3(a, b))
	assert.Equal(t, float32(2.5), a.At(1, 1, 1))

	require.NoError(t, a.Release())
	require.NoError(t, b.Release())
	assert.Zero(t, alloc.Live())
	assert.ErrorIs(t, a.Fill(1), ErrNullPointer)
}

func TestTensor_ZeroDepth(t *testing.T) {
	tt, err := NewTensor[int8](2, 2, 0)
	require.NoError(t, err)
	assert.NoError(t, tt.Fill(1))
	assert.Nil(t, tt.Raw().Fibre(1, 1))

	other, err := NewTensor[int8](2, 2, 0)
	require.NoError(t, err)
	assert.True(t, Equal3(tt, other))
}

func TestFromRaw_Checks(t *testing.T) {
	raw, err := NewRawBlock(Float64, ColumnMajor, nil, 2, 2)
	require.NoError(t, err)

	_, err = VectorFromRaw[float64](raw, DefaultOptions())
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	_, err = TensorFromRaw[float64](raw, DefaultOptions())
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	_, err = MatrixFromRaw[float32](raw, DefaultOptions())
	assert.ErrorIs(t, err, ErrUnsupportedElementType)

	m, err := MatrixFromRaw[float64](raw, DefaultOptions())
	require.NoError(t, err)
	m.Set(2, 1, 4)
	assert.Equal(t, 4.0, m.At(2, 1))

	require.NoError(t, raw.Release())
	_, err = MatrixFromRaw[float64](raw, DefaultOptions())
	assert.ErrorIs(t, err, ErrNullPointer)
}

func TestNewRawBlock_Invalid(t *testing.T) {
	_, err := NewRawBlock(Kind(99), ColumnMajor, nil, 2)
	assert.ErrorIs(t, err, ErrUnsupportedElementType)

	_, err = NewRawBlock(Float32, ColumnMajor, nil, 2, -1)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = NewRawBlock(Float32, ColumnMajor, nil, 1, 1, 1, 1)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	b, err := NewRawBlock(Float128, RowMajor, nil, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 16, b.ElemSize())
	assert.Len(t, b.Bytes(), 3*4*16)
	assert.Len(t, b.Element(2, 3), 16)
}
