package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/born-ml/scisoft/internal/tensor"
)

// Helper to create test backend.
func newTestBackend() *CPUBackend {
	return New()
}

// arange returns values 0..n-1 of dtype, reshaped when dims are given.
func arange(t *testing.T, n int, dtype tensor.DataType, dims ...int) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.ArangeInt(0, int64(n), 1, dtype.DType())
	require.NoError(t, err)
	if len(dims) > 0 {
		r, err = r.Reshape(dims...)
		require.NoError(t, err)
	}
	return r
}

func fromData(t *testing.T, data any) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.FromData(data)
	require.NoError(t, err)
	return r
}

func fromDataAs(t *testing.T, data any, dtype tensor.DType) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.FromDataAs(data, dtype)
	require.NoError(t, err)
	return r
}

func scalar(t *testing.T, v any) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.Scalar(v)
	require.NoError(t, err)
	return r
}

func axis(i int) *int {
	return &i
}

func ints(r *tensor.RawTensor) []int64 {
	out := make([]int64, 0, r.NumElements())
	r.ForEachOffset(func(off int) {
		out = append(out, r.IntAt(off))
	})
	return out
}

func floats64(r *tensor.RawTensor) []float64 {
	out := make([]float64, 0, r.NumElements())
	r.ForEachOffset(func(off int) {
		out = append(out, r.FloatAt(off))
	})
	return out
}

func complexes(r *tensor.RawTensor) []complex128 {
	out := make([]complex128, 0, r.NumElements())
	r.ForEachOffset(func(off int) {
		out = append(out, r.ComplexAt(off))
	})
	return out
}

func bools(r *tensor.RawTensor) []bool {
	out := make([]bool, 0, r.NumElements())
	r.ForEachOffset(func(off int) {
		out = append(out, r.BoolAt(off))
	})
	return out
}
