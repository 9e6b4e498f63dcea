package tensor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// arange returns int64 values 0..n-1, reshaped when dims are given.
func arange(t *testing.T, n int, dims ...int) *RawTensor {
	t.Helper()
	r, err := ArangeInt(0, int64(n), 1, Int64.DType())
	require.NoError(t, err)
	if len(dims) > 0 {
		r, err = r.Reshape(dims...)
		require.NoError(t, err)
	}
	return r
}

func fromData(t *testing.T, data any) *RawTensor {
	t.Helper()
	r, err := FromData(data)
	require.NoError(t, err)
	return r
}

func fromDataAs(t *testing.T, data any, dtype DType) *RawTensor {
	t.Helper()
	r, err := FromDataAs(data, dtype)
	require.NoError(t, err)
	return r
}

func weak(t *testing.T, v any) *RawTensor {
	t.Helper()
	r, err := Scalar(v)
	require.NoError(t, err)
	return r
}

// get parses expr and reads through it.
func get(t *testing.T, r *RawTensor, expr string) *RawTensor {
	t.Helper()
	idx, err := ParseIndex(expr)
	require.NoError(t, err)
	out, err := r.Get(idx...)
	require.NoError(t, err)
	return out
}

// set parses expr and writes value through it.
func set(t *testing.T, r *RawTensor, expr string, value *RawTensor) {
	t.Helper()
	idx, err := ParseIndex(expr)
	require.NoError(t, err)
	require.NoError(t, r.Set(value, idx...))
}

func ints(r *RawTensor) []int64 {
	out := make([]int64, 0, r.NumElements())
	r.ForEachOffset(func(off int) {
		out = append(out, r.IntAt(off))
	})
	return out
}

func floats(r *RawTensor) []float64 {
	out := make([]float64, 0, r.NumElements())
	r.ForEachOffset(func(off int) {
		out = append(out, r.FloatAt(off))
	})
	return out
}

func bools(r *RawTensor) []bool {
	out := make([]bool, 0, r.NumElements())
	r.ForEachOffset(func(off int) {
		out = append(out, r.BoolAt(off))
	})
	return out
}
