package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/scisoft/internal/tensor"
)

func TestTake(t *testing.T) {
	backend := newTestBackend()
	flat := arange(t, 16, tensor.Int64)
	grid := arange(t, 16, tensor.Int64, 4, 4)
	idx := fromData(t, []int64{1, 3})

	out, err := backend.Take(flat, fromData(t, []int64{2, 5}), nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 5}, ints(out))

	out, err = backend.Take(grid, idx, axis(0))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 4}, out.Shape())
	assert.Equal(t, []int64{4, 5, 6, 7, 12, 13, 14, 15}, ints(out))

	out, err = backend.Take(grid, idx, axis(1))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{4, 2}, out.Shape())
	assert.Equal(t, []int64{1, 3, 5, 7, 9, 11, 13, 15}, ints(out))

	out, err = backend.Take(grid, fromData(t, []int64{-1}), nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{15}, ints(out))

	_, err = backend.Take(flat, fromData(t, []int64{16}), nil)
	require.ErrorIs(t, err, tensor.ErrIndexOutOfRange)
	_, err = backend.Take(flat, fromData(t, []float64{1}), nil)
	require.ErrorIs(t, err, tensor.ErrInvalidIndex)
	_, err = backend.Take(grid, idx, axis(2))
	require.ErrorIs(t, err, tensor.ErrInvalidAxis)
}

func TestPut(t *testing.T) {
	backend := newTestBackend()
	values := fromData(t, []float64{-2, -5.5})

	for _, dims := range [][]int{{6}, {2, 3}} {
		x, err := tensor.ArangeFloat(0, 6, 1, tensor.Float64.DType())
		require.NoError(t, err)
		x, err = x.Reshape(dims...)
		require.NoError(t, err)

		require.NoError(t, backend.Put(x, fromData(t, []int64{2, 5}), values))
		assert.Equal(t, []float64{0, 1, -2, 3, 4, -5.5}, floats64(x))

		require.NoError(t, backend.Put(x, fromData(t, []int64{0, 4}), values))
		assert.Equal(t, []float64{-2, 1, -2, 3, -5.5, -5.5}, floats64(x))
	}
}

func TestPut_CyclesValues(t *testing.T) {
	x, err := tensor.Zeros(tensor.Shape{5}, tensor.Int64.DType())
	require.NoError(t, err)
	require.NoError(t, newTestBackend().Put(x, fromData(t, []int64{0, 1, 2, 3}), fromData(t, []int64{7, 8})))
	assert.Equal(t, []int64{7, 8, 7, 8, 0}, ints(x))
}

func TestPut_StridedTarget(t *testing.T) {
	base := arange(t, 6, tensor.Int64, 2, 3)
	tr, err := base.Transpose()
	require.NoError(t, err)

	require.NoError(t, newTestBackend().Put(tr, fromData(t, []int64{1, -1}), fromData(t, []int64{99, 77})))
	assert.Equal(t, []int64{0, 1, 2, 99, 4, 77}, ints(base))
}

func TestPut_ValidatesFirst(t *testing.T) {
	backend := newTestBackend()
	x := arange(t, 4, tensor.Int64)

	err := backend.Put(x, fromData(t, []int64{0, 4}), fromData(t, []int64{9}))
	require.ErrorIs(t, err, tensor.ErrIndexOutOfRange)
	assert.Equal(t, []int64{0, 1, 2, 3}, ints(x))

	empty, err := tensor.Zeros(tensor.Shape{0}, tensor.Int64.DType())
	require.NoError(t, err)
	require.ErrorIs(t, backend.Put(x, fromData(t, []int64{0}), empty), tensor.ErrInvalidData)
}

func TestPut_ReadOnlyTarget(t *testing.T) {
	src := fromData(t, []int64{1, 2, 3})
	v, err := src.BroadcastTo(tensor.Shape{2, 3})
	require.NoError(t, err)

	err = newTestBackend().Put(v, fromData(t, []int64{0}), fromData(t, []int64{9}))
	require.ErrorIs(t, err, tensor.ErrReadOnly)
	assert.Equal(t, []int64{1, 2, 3}, ints(src))
}

func TestWhere(t *testing.T) {
	backend := newTestBackend()
	cond := fromData(t, []bool{true, false, true})
	x := fromData(t, []int64{1, 2, 3})

	out, err := backend.Where(cond, x, scalar(t, 0))
	require.NoError(t, err)
	assert.Equal(t, tensor.Int64, out.Kind())
	assert.Equal(t, []int64{1, 0, 3}, ints(out))

	out, err = backend.Where(cond, x, scalar(t, -0.5))
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, out.Kind())
	assert.Equal(t, []float64{1, -0.5, 3}, floats64(out))

	col := fromData(t, [][]bool{{true}, {false}})
	out, err = backend.Where(col, x, scalar(t, 0))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, out.Shape())
	assert.Equal(t, []int64{1, 2, 3, 0, 0, 0}, ints(out))
}

func TestSelect(t *testing.T) {
	backend := newTestBackend()
	mm := fromData(t, [][][]int64{{{0, 2}, {6, 12}}, {{20, 30}, {42, 56}}})
	mask := fromData(t, [][][]bool{{{false, true}, {true, false}}, {{true, true}, {false, false}}})

	out, err := backend.Select([]*tensor.RawTensor{mask}, []*tensor.RawTensor{mm}, scalar(t, -2.3))
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, out.Kind())
	assert.Equal(t, tensor.Shape{2, 2, 2}, out.Shape())
	assert.Equal(t, []float64{-2.3, 2, 6, -2.3, 20, 30, -2.3, -2.3}, floats64(out))
}

func TestSelect_FirstConditionWins(t *testing.T) {
	backend := newTestBackend()
	x := fromData(t, []int64{1, 5, 9})

	small, err := backend.Compare(tensor.OpLess, x, scalar(t, 6))
	require.NoError(t, err)
	odd, err := backend.Compare(tensor.OpGreater, x, scalar(t, 0))
	require.NoError(t, err)

	out, err := backend.Select(
		[]*tensor.RawTensor{small, odd},
		[]*tensor.RawTensor{scalar(t, 10), scalar(t, 20)},
		nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 10, 20}, ints(out))

	_, err = backend.Select([]*tensor.RawTensor{small}, nil, nil)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestCast(t *testing.T) {
	out, err := newTestBackend().Cast(fromData(t, []float64{-1.5, 2.7}), tensor.Int16.DType())
	require.NoError(t, err)
	assert.Equal(t, tensor.Int16, out.Kind())
	assert.Equal(t, []int64{-1, 2}, ints(out))
}
