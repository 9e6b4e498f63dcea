package cpu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/scisoft/internal/tensor"
)

func TestReduce_SumProd(t *testing.T) {
	backend := newTestBackend()
	x := arange(t, 12, tensor.Int64, 3, 4)

	tests := []struct {
		name  string
		op    tensor.ReduceOp
		axis  *int
		shape tensor.Shape
		want  []int64
	}{
		{"sum", tensor.ReduceSum, nil, tensor.Shape{}, []int64{66}},
		{"sum axis 0", tensor.ReduceSum, axis(0), tensor.Shape{4}, []int64{12, 15, 18, 21}},
		{"sum axis 1", tensor.ReduceSum, axis(1), tensor.Shape{3}, []int64{6, 22, 38}},
		{"sum axis -1", tensor.ReduceSum, axis(-1), tensor.Shape{3}, []int64{6, 22, 38}},
		{"prod", tensor.ReduceProd, nil, tensor.Shape{}, []int64{0}},
		{"prod axis 0", tensor.ReduceProd, axis(0), tensor.Shape{4}, []int64{0, 45, 120, 231}},
		{"prod axis 1", tensor.ReduceProd, axis(1), tensor.Shape{3}, []int64{0, 840, 7920}},
		{"cumsum", tensor.ReduceCumSum, nil, tensor.Shape{12}, []int64{0, 1, 3, 6, 10, 15, 21, 28, 36, 45, 55, 66}},
		{"cumsum axis 0", tensor.ReduceCumSum, axis(0), tensor.Shape{3, 4}, []int64{0, 1, 2, 3, 4, 6, 8, 10, 12, 15, 18, 21}},
		{"cumsum axis 1", tensor.ReduceCumSum, axis(1), tensor.Shape{3, 4}, []int64{0, 1, 3, 6, 4, 9, 15, 22, 8, 17, 27, 38}},
		{"cumprod axis 0", tensor.ReduceCumProd, axis(0), tensor.Shape{3, 4}, []int64{0, 1, 2, 3, 0, 5, 12, 21, 0, 45, 120, 231}},
		{"cumprod axis 1", tensor.ReduceCumProd, axis(1), tensor.Shape{3, 4}, []int64{0, 0, 0, 0, 4, 20, 120, 840, 8, 72, 720, 7920}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := backend.Reduce(tt.op, x, tensor.ReduceOptions{Axis: tt.axis})
			require.NoError(t, err)
			assert.Equal(t, tensor.Int64, out.Kind())
			assert.Equal(t, tt.shape, out.Shape())
			assert.Equal(t, tt.want, ints(out))
		})
	}
}

func TestReduce_FloatSums(t *testing.T) {
	backend := newTestBackend()
	x, err := tensor.ArangeFloat(0, 6, 1, tensor.Float64.DType())
	require.NoError(t, err)
	x, err = x.Reshape(2, 3)
	require.NoError(t, err)

	out, err := backend.Reduce(tensor.ReduceSum, x, tensor.ReduceOptions{Axis: axis(1)})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 12}, floats64(out))

	out, err = backend.Reduce(tensor.ReduceCumProd, x, tensor.ReduceOptions{Axis: axis(0)})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2, 0, 4, 10}, floats64(out))

	out, err = backend.Reduce(tensor.ReduceProd, x, tensor.ReduceOptions{})
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, floats64(out))

	out, err = backend.Reduce(tensor.ReduceProd, x, tensor.ReduceOptions{Axis: axis(1)})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 60}, floats64(out))
}

func TestReduce_Accumulator(t *testing.T) {
	backend := newTestBackend()
	x := arange(t, 1<<20, tensor.Int32)

	out, err := backend.Reduce(tensor.ReduceSum, x, tensor.ReduceOptions{})
	require.NoError(t, err)
	assert.Equal(t, tensor.Int64, out.Kind())
	assert.Equal(t, []int64{549755289600}, ints(out))

	acc := tensor.Int32
	out, err = backend.Reduce(tensor.ReduceSum, x, tensor.ReduceOptions{DType: &acc})
	require.NoError(t, err)
	assert.Equal(t, tensor.Int32, out.Kind())
	assert.Equal(t, []int64{-524288}, ints(out))

	out, err = backend.Reduce(tensor.ReduceSum, fromDataAs(t, []int{200, 100}, tensor.Uint8.DType()), tensor.ReduceOptions{})
	require.NoError(t, err)
	assert.Equal(t, tensor.Uint64, out.Kind())
	assert.Equal(t, []int64{300}, ints(out))

	out, err = backend.Reduce(tensor.ReduceSum, fromData(t, []bool{true, false, true}), tensor.ReduceOptions{})
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ints(out))

	f := tensor.Float64
	out, err = backend.Reduce(tensor.ReduceCumSum, fromData(t, []int64{1, 2}), tensor.ReduceOptions{DType: &f})
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, out.Kind())
	assert.Equal(t, []float64{1, 3}, floats64(out))

	_, err = backend.Reduce(tensor.ReduceSum, fromData(t, []complex128{1}), tensor.ReduceOptions{DType: &f})
	require.ErrorIs(t, err, tensor.ErrDtypeConversion)
}

func TestReduce_Mean(t *testing.T) {
	backend := newTestBackend()
	x := arange(t, 10, tensor.Int64, 2, 5)

	out, err := backend.Reduce(tensor.ReduceMean, x, tensor.ReduceOptions{})
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, out.Kind())
	assert.Equal(t, []float64{4.5}, floats64(out))

	out, err = backend.Reduce(tensor.ReduceMean, x, tensor.ReduceOptions{Axis: axis(0)})
	require.NoError(t, err)
	assert.Equal(t, []float64{2.5, 3.5, 4.5, 5.5, 6.5}, floats64(out))

	out, err = backend.Reduce(tensor.ReduceMean, x, tensor.ReduceOptions{Axis: axis(1)})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 7}, floats64(out))

	out, err = backend.Reduce(tensor.ReduceMean, fromDataAs(t, []float64{1, 2}, tensor.Float32.DType()), tensor.ReduceOptions{})
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, out.Kind())

	empty, err := tensor.Zeros(tensor.Shape{0}, tensor.Float64.DType())
	require.NoError(t, err)
	out, err = backend.Reduce(tensor.ReduceMean, empty, tensor.ReduceOptions{})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(floats64(out)[0]))
}

func TestReduce_MinMax(t *testing.T) {
	backend := newTestBackend()
	x, err := tensor.ArangeFloat(0, 10, 1, tensor.Float64.DType())
	require.NoError(t, err)
	x, err = x.Reshape(2, 5)
	require.NoError(t, err)

	tests := []struct {
		name string
		op   tensor.ReduceOp
		axis *int
		want []float64
	}{
		{"min", tensor.ReduceMin, nil, []float64{0}},
		{"min axis 0", tensor.ReduceMin, axis(0), []float64{0, 1, 2, 3, 4}},
		{"min axis 1", tensor.ReduceMin, axis(1), []float64{0, 5}},
		{"argmin", tensor.ReduceArgMin, nil, []float64{0}},
		{"max", tensor.ReduceMax, nil, []float64{9}},
		{"max axis 0", tensor.ReduceMax, axis(0), []float64{5, 6, 7, 8, 9}},
		{"max axis 1", tensor.ReduceMax, axis(1), []float64{4, 9}},
		{"argmax", tensor.ReduceArgMax, nil, []float64{9}},
		{"argmax axis 0", tensor.ReduceArgMax, axis(0), []float64{1, 1, 1, 1, 1}},
		{"argmax axis 1", tensor.ReduceArgMax, axis(1), []float64{4, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := backend.Reduce(tt.op, x, tensor.ReduceOptions{Axis: tt.axis})
			require.NoError(t, err)
			assert.Equal(t, tt.want, floats64(out))
		})
	}
}

func TestReduce_ArgExtremes3D(t *testing.T) {
	backend := newTestBackend()
	ds := fromData(t, [][][]float64{
		{{1, 0, 3}, {0.5, 2.5, 2}},
		{{0, 3, 1}, {1.5, 2.5, 2}},
	})

	tests := []struct {
		name string
		op   tensor.ReduceOp
		axis *int
		want []int64
	}{
		{"argmax", tensor.ReduceArgMax, nil, []int64{2}},
		{"argmax axis 0", tensor.ReduceArgMax, axis(0), []int64{0, 1, 0, 1, 0, 0}},
		{"argmax axis 1", tensor.ReduceArgMax, axis(1), []int64{0, 1, 0, 1, 0, 1}},
		{"argmax axis 2", tensor.ReduceArgMax, axis(2), []int64{2, 1, 1, 1}},
		{"argmin", tensor.ReduceArgMin, nil, []int64{1}},
		{"argmin axis 0", tensor.ReduceArgMin, axis(0), []int64{1, 0, 1, 0, 0, 0}},
		{"argmin axis 1", tensor.ReduceArgMin, axis(1), []int64{1, 0, 1, 0, 1, 0}},
		{"argmin axis 2", tensor.ReduceArgMin, axis(2), []int64{1, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := backend.Reduce(tt.op, ds, tensor.ReduceOptions{Axis: tt.axis})
			require.NoError(t, err)
			assert.Equal(t, tensor.Int64, out.Kind())
			assert.Equal(t, tt.want, ints(out))
		})
	}
}

func TestReduce_NaN(t *testing.T) {
	backend := newTestBackend()
	x := fromData(t, []float64{1, math.NaN(), 3})

	out, err := backend.Reduce(tensor.ReduceMax, x, tensor.ReduceOptions{})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(floats64(out)[0]))

	out, err = backend.Reduce(tensor.ReduceArgMin, x, tensor.ReduceOptions{})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ints(out))

	out, err = backend.Reduce(tensor.ReduceMax, x, tensor.ReduceOptions{IgnoreNaN: true})
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, floats64(out))

	out, err = backend.Reduce(tensor.ReduceArgMin, x, tensor.ReduceOptions{IgnoreNaN: true})
	require.NoError(t, err)
	assert.Equal(t, []int64{0}, ints(out))

	allNaN := fromData(t, []float64{math.NaN(), math.NaN()})
	out, err = backend.Reduce(tensor.ReduceArgMax, allNaN, tensor.ReduceOptions{IgnoreNaN: true})
	require.NoError(t, err)
	assert.Equal(t, []int64{0}, ints(out))
}

func TestReduce_FirstOccurrence(t *testing.T) {
	backend := newTestBackend()
	x := fromData(t, []int64{3, 1, 3, 1})

	out, err := backend.Reduce(tensor.ReduceArgMax, x, tensor.ReduceOptions{})
	require.NoError(t, err)
	assert.Equal(t, []int64{0}, ints(out))

	out, err = backend.Reduce(tensor.ReduceArgMin, x, tensor.ReduceOptions{})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ints(out))
}

func TestReduce_StridedInput(t *testing.T) {
	x := arange(t, 6, tensor.Int64, 2, 3)
	tr, err := x.Transpose()
	require.NoError(t, err)

	out, err := newTestBackend().Reduce(tensor.ReduceCumSum, tr, tensor.ReduceOptions{Axis: axis(1)})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 2}, out.Shape())
	assert.Equal(t, []int64{0, 3, 1, 5, 2, 7}, ints(out))
}

func TestReduce_Errors(t *testing.T) {
	backend := newTestBackend()

	empty, err := tensor.Zeros(tensor.Shape{0}, tensor.Float64.DType())
	require.NoError(t, err)
	_, err = backend.Reduce(tensor.ReduceMin, empty, tensor.ReduceOptions{})
	require.ErrorIs(t, err, tensor.ErrEmptyReduction)

	out, err := backend.Reduce(tensor.ReduceSum, empty, tensor.ReduceOptions{})
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, floats64(out))

	_, err = backend.Reduce(tensor.ReduceSum, arange(t, 6, tensor.Int64, 2, 3), tensor.ReduceOptions{Axis: axis(2)})
	require.ErrorIs(t, err, tensor.ErrInvalidAxis)

	img, err := tensor.Zeros(tensor.Shape{2}, tensor.RGB)
	require.NoError(t, err)
	_, err = backend.Reduce(tensor.ReduceSum, img, tensor.ReduceOptions{})
	require.ErrorIs(t, err, tensor.ErrUnsupportedDtype)
}
