package cpu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/scisoft/internal/tensor"
)

func int8Range(t *testing.T) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.ArangeInt(-4, 4, 1, tensor.Int8.DType())
	require.NoError(t, err)
	return r
}

func TestBinary_IntegerOperand(t *testing.T) {
	backend := newTestBackend()
	tests := []struct {
		name    string
		op      tensor.BinaryOp
		operand int
		want    []int64
	}{
		{"div 2", tensor.OpDiv, 2, []int64{-2, -2, -1, -1, 0, 0, 1, 1}},
		{"floordiv 2", tensor.OpFloorDiv, 2, []int64{-2, -2, -1, -1, 0, 0, 1, 1}},
		{"mod 2", tensor.OpMod, 2, []int64{0, 1, 0, 1, 0, 1, 0, 1}},
		{"div -2", tensor.OpDiv, -2, []int64{2, 1, 1, 0, 0, -1, -1, -2}},
		{"mod -2", tensor.OpMod, -2, []int64{0, -1, 0, -1, 0, -1, 0, -1}},
		{"add", tensor.OpAdd, 3, []int64{-1, 0, 1, 2, 3, 4, 5, 6}},
		{"sub", tensor.OpSub, 3, []int64{-7, -6, -5, -4, -3, -2, -1, 0}},
		{"mul", tensor.OpMul, -2, []int64{8, 6, 4, 2, 0, -2, -4, -6}},
		{"pow", tensor.OpPow, 2, []int64{16, 9, 4, 1, 0, 1, 4, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := backend.Binary(tt.op, int8Range(t), scalar(t, tt.operand))
			require.NoError(t, err)
			assert.Equal(t, tensor.Int8, out.Kind())
			assert.Equal(t, tt.want, ints(out))
		})
	}
}

func TestBinary_FloatOperand(t *testing.T) {
	backend := newTestBackend()
	tests := []struct {
		name    string
		op      tensor.BinaryOp
		operand float64
		want    []float64
	}{
		{"div 2.5", tensor.OpDiv, 2.5, []float64{-1.6, -1.2, -0.8, -0.4, 0, 0.4, 0.8, 1.2}},
		{"floordiv 2.5", tensor.OpFloorDiv, 2.5, []float64{-2, -2, -1, -1, 0, 0, 0, 1}},
		{"mod 2.5", tensor.OpMod, 2.5, []float64{1, 2, 0.5, 1.5, 0, 1, 2, 0.5}},
		{"div -2.5", tensor.OpDiv, -2.5, []float64{1.6, 1.2, 0.8, 0.4, 0, -0.4, -0.8, -1.2}},
		{"floordiv -2.5", tensor.OpFloorDiv, -2.5, []float64{1, 1, 0, 0, 0, -1, -1, -2}},
		{"mod -2.5", tensor.OpMod, -2.5, []float64{-1.5, -0.5, -2, -1, 0, -1.5, -0.5, -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := backend.Binary(tt.op, int8Range(t), scalar(t, tt.operand))
			require.NoError(t, err)
			assert.Equal(t, tensor.Float64, out.Kind())
			assert.InDeltaSlice(t, tt.want, floats64(out), 1e-12)
		})
	}
}

func TestBinary_NegativeZeroFloorDiv(t *testing.T) {
	out, err := newTestBackend().Binary(tensor.OpFloorDiv, fromData(t, []float64{0}), scalar(t, -2.5))
	require.NoError(t, err)
	assert.True(t, math.Signbit(floats64(out)[0]))
}

func TestBinary_DivisionByZero(t *testing.T) {
	backend := newTestBackend()
	a := fromData(t, []int64{1, -1, 0})

	for _, op := range []tensor.BinaryOp{tensor.OpDiv, tensor.OpFloorDiv, tensor.OpMod} {
		out, err := backend.Binary(op, a, scalar(t, 0))
		require.NoError(t, err)
		assert.Equal(t, []int64{0, 0, 0}, ints(out), op.String())
	}

	u := fromDataAs(t, []int{7}, tensor.Uint8.DType())
	out, err := backend.Binary(tensor.OpMod, u, scalar(t, 0))
	require.NoError(t, err)
	assert.Equal(t, []int64{0}, ints(out))

	f := fromData(t, []float64{1, -1})
	out, err = backend.Binary(tensor.OpDiv, f, scalar(t, 0.0))
	require.NoError(t, err)
	assert.Equal(t, []float64{math.Inf(1), math.Inf(-1)}, floats64(out))

	out, err = backend.Binary(tensor.OpMod, f, scalar(t, 0.0))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(floats64(out)[0]))
}

func TestBinary_ResultType(t *testing.T) {
	backend := newTestBackend()
	tests := []struct {
		name string
		a, b func(t *testing.T) *tensor.RawTensor
		want tensor.DataType
	}{
		{
			"int8 array with int scalar",
			func(t *testing.T) *tensor.RawTensor { return int8Range(t) },
			func(t *testing.T) *tensor.RawTensor { return scalar(t, 100) },
			tensor.Int8,
		},
		{
			"int8 with int32",
			func(t *testing.T) *tensor.RawTensor { return int8Range(t) },
			func(t *testing.T) *tensor.RawTensor { return fromDataAs(t, []int{1}, tensor.Int32.DType()) },
			tensor.Int32,
		},
		{
			"uint8 with int8",
			func(t *testing.T) *tensor.RawTensor { return fromDataAs(t, []int{1}, tensor.Uint8.DType()) },
			func(t *testing.T) *tensor.RawTensor { return int8Range(t) },
			tensor.Int16,
		},
		{
			"float32 with float scalar",
			func(t *testing.T) *tensor.RawTensor { return fromDataAs(t, []float64{1}, tensor.Float32.DType()) },
			func(t *testing.T) *tensor.RawTensor { return scalar(t, 1.5) },
			tensor.Float32,
		},
		{
			"float32 with complex scalar",
			func(t *testing.T) *tensor.RawTensor { return fromDataAs(t, []float64{1}, tensor.Float32.DType()) },
			func(t *testing.T) *tensor.RawTensor { return scalar(t, complex(1.3, 0.2)) },
			tensor.Complex64,
		},
		{
			"int16 with complex scalar",
			func(t *testing.T) *tensor.RawTensor { return fromDataAs(t, []int{1}, tensor.Int16.DType()) },
			func(t *testing.T) *tensor.RawTensor { return scalar(t, complex(1.3, 0.2)) },
			tensor.Complex128,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := backend.Binary(tensor.OpAdd, tt.a(t), tt.b(t))
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Kind())
		})
	}
}

func TestBinary_Complex(t *testing.T) {
	backend := newTestBackend()
	a := fromData(t, []int64{1, 2})
	z := scalar(t, complex(1.3, 0.2))

	out, err := backend.Binary(tensor.OpAdd, a, z)
	require.NoError(t, err)
	got := complexes(out)
	assert.InDelta(t, 2.3, real(got[0]), 1e-12)
	assert.InDelta(t, 0.2, imag(got[0]), 1e-12)
	assert.InDelta(t, 3.3, real(got[1]), 1e-12)

	out, err = backend.Binary(tensor.OpSub, a, z)
	require.NoError(t, err)
	assert.InDelta(t, -0.2, imag(complexes(out)[1]), 1e-12)

	_, err = backend.Binary(tensor.OpFloorDiv, a, z)
	require.ErrorIs(t, err, tensor.ErrUnsupportedDtype)
	_, err = backend.Binary(tensor.OpMod, z, a)
	require.ErrorIs(t, err, tensor.ErrUnsupportedDtype)
}

func TestBinary_Bool(t *testing.T) {
	backend := newTestBackend()
	a := fromData(t, []bool{true, false, false})
	b := fromData(t, []bool{true, true, false})

	out, err := backend.Binary(tensor.OpAdd, a, b)
	require.NoError(t, err)
	assert.Equal(t, tensor.Bool, out.Kind())
	assert.Equal(t, []bool{true, true, false}, bools(out))

	out, err = backend.Binary(tensor.OpMul, a, b)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false}, bools(out))

	out, err = backend.Binary(tensor.OpSub, a, b)
	require.NoError(t, err)
	assert.Equal(t, tensor.Int8, out.Kind())
	assert.Equal(t, []int64{0, -1, 0}, ints(out))
}

func TestBinary_Wraparound(t *testing.T) {
	backend := newTestBackend()

	out, err := backend.Binary(tensor.OpAdd, fromDataAs(t, []int{127}, tensor.Int8.DType()), scalar(t, 1))
	require.NoError(t, err)
	assert.Equal(t, []int64{-128}, ints(out))

	out, err = backend.Binary(tensor.OpSub, fromDataAs(t, []int{0}, tensor.Uint8.DType()), scalar(t, 1))
	require.NoError(t, err)
	assert.Equal(t, tensor.Uint8, out.Kind())
	assert.Equal(t, []int64{255}, ints(out))
}

func TestBinary_WeakIntegerOutOfRange(t *testing.T) {
	backend := newTestBackend()
	i8 := fromDataAs(t, []int{1, 2}, tensor.Int8.DType())

	tests := []struct {
		name string
		x    *tensor.RawTensor
		v    any
		ok   bool
	}{
		{"int8 max", i8, 127, true},
		{"int8 min", i8, -128, true},
		{"above int8", i8, 300, false},
		{"below int8", i8, -129, false},
		{"negative into uint8", fromDataAs(t, []int{1}, tensor.Uint8.DType()), -1, false},
		{"uint32 max", fromDataAs(t, []int{1}, tensor.Uint32.DType()), uint32(math.MaxUint32), true},
		{"huge into int64", fromData(t, []int64{1}), uint64(math.MaxUint64), false},
		{"huge into uint64", fromDataAs(t, []int{1}, tensor.Uint64.DType()), uint64(math.MaxUint64), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := backend.Binary(tensor.OpAdd, tt.x, scalar(t, tt.v))
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tensor.ErrDtypeConversion)
		})
	}

	t.Run("float result ignores range", func(t *testing.T) {
		out, err := backend.Binary(tensor.OpAdd, i8, scalar(t, 300.5))
		require.NoError(t, err)
		assert.Equal(t, []float64{301.5, 302.5}, floats64(out))
	})
}

func TestBinary_Pow(t *testing.T) {
	backend := newTestBackend()

	out, err := backend.Binary(tensor.OpPow, fromData(t, []int64{2, 1, -1, -1}), fromData(t, []int64{-1, -3, -3, -2}))
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, -1, 1}, ints(out))

	out, err = backend.Binary(tensor.OpPow, fromData(t, []float64{4, 2}), scalar(t, 0.5))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, math.Sqrt2}, floats64(out), 1e-12)
}

func TestBinary_Broadcasting(t *testing.T) {
	backend := newTestBackend()
	a := arange(t, 6, tensor.Int64, 2, 3)

	out, err := backend.Binary(tensor.OpMul, a, fromData(t, []int64{1, 10, 100}))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, out.Shape())
	assert.Equal(t, []int64{0, 10, 200, 3, 40, 500}, ints(out))

	col := fromData(t, [][]int64{{1}, {2}})
	out, err = backend.Binary(tensor.OpAdd, col, fromData(t, []int64{10, 20, 30}))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, out.Shape())
	assert.Equal(t, []int64{11, 21, 31, 12, 22, 32}, ints(out))

	_, err = backend.Binary(tensor.OpAdd, a, fromData(t, []int64{1, 2}))
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestBinary_Compound(t *testing.T) {
	img, err := tensor.Zeros(tensor.Shape{2}, tensor.RGB)
	require.NoError(t, err)
	_, err = newTestBackend().Binary(tensor.OpAdd, img, scalar(t, 1))
	require.ErrorIs(t, err, tensor.ErrUnsupportedDtype)
}

func TestBinaryInPlace(t *testing.T) {
	backend := newTestBackend()

	t.Run("truncates float results", func(t *testing.T) {
		a := fromData(t, [][]int64{{2, 3}, {4, 5}})
		require.NoError(t, backend.BinaryInPlace(tensor.OpSub, a, scalar(t, 1.2)))
		assert.Equal(t, tensor.Int64, a.Kind())
		assert.Equal(t, []int64{0, 1, 2, 3}, ints(a))
	})

	t.Run("divides int8 by float", func(t *testing.T) {
		a := int8Range(t)
		require.NoError(t, backend.BinaryInPlace(tensor.OpDiv, a, scalar(t, 1.2)))
		assert.Equal(t, tensor.Int8, a.Kind())
		assert.Equal(t, []int64{-3, -2, -1, 0, 0, 0, 1, 2}, ints(a))
	})

	t.Run("writes through views", func(t *testing.T) {
		base := arange(t, 6, tensor.Int64, 2, 3)
		row, err := base.Get(tensor.Integer(1))
		require.NoError(t, err)
		require.NoError(t, backend.BinaryInPlace(tensor.OpAdd, row, scalar(t, 10)))
		assert.Equal(t, []int64{0, 1, 2, 13, 14, 15}, ints(base))
	})

	t.Run("rejects result shape change", func(t *testing.T) {
		a := fromData(t, []int64{1, 2, 3})
		err := backend.BinaryInPlace(tensor.OpAdd, a, arange(t, 6, tensor.Int64, 2, 3))
		require.ErrorIs(t, err, tensor.ErrShapeMismatch)
		assert.Equal(t, []int64{1, 2, 3}, ints(a))
	})

	t.Run("rejects complex into real", func(t *testing.T) {
		a := fromData(t, []float64{1, 2})
		err := backend.BinaryInPlace(tensor.OpAdd, a, scalar(t, complex(1.3, 0.2)))
		require.ErrorIs(t, err, tensor.ErrDtypeConversion)
		assert.Equal(t, []float64{1, 2}, floats64(a))
	})

	t.Run("rejects read-only target", func(t *testing.T) {
		src := fromData(t, []int64{1, 2, 3})
		v, err := src.BroadcastTo(tensor.Shape{2, 3})
		require.NoError(t, err)
		require.ErrorIs(t, backend.BinaryInPlace(tensor.OpAdd, v, scalar(t, 1)), tensor.ErrReadOnly)
		assert.Equal(t, []int64{1, 2, 3}, ints(src))
	})

	t.Run("rejects out-of-range scalar", func(t *testing.T) {
		a := fromDataAs(t, []int{1, 2}, tensor.Int8.DType())
		require.ErrorIs(t, backend.BinaryInPlace(tensor.OpAdd, a, scalar(t, 300)), tensor.ErrDtypeConversion)
		assert.Equal(t, []int64{1, 2}, ints(a))
	})

	t.Run("complex target", func(t *testing.T) {
		a := fromData(t, []complex128{1, 2})
		require.NoError(t, backend.BinaryInPlace(tensor.OpMul, a, scalar(t, complex(0, 1))))
		assert.Equal(t, []complex128{complex(0, 1), complex(0, 2)}, complexes(a))
	})
}

func TestNeg(t *testing.T) {
	backend := newTestBackend()

	out, err := backend.Neg(fromDataAs(t, []int{-128, 1}, tensor.Int8.DType()))
	require.NoError(t, err)
	assert.Equal(t, []int64{-128, -1}, ints(out))

	out, err = backend.Neg(fromDataAs(t, []int{1}, tensor.Uint8.DType()))
	require.NoError(t, err)
	assert.Equal(t, []int64{255}, ints(out))

	out, err = backend.Neg(fromData(t, []complex128{complex(1, -2)}))
	require.NoError(t, err)
	assert.Equal(t, []complex128{complex(-1, 2)}, complexes(out))

	_, err = backend.Neg(fromData(t, []bool{true}))
	require.ErrorIs(t, err, tensor.ErrUnsupportedDtype)
}

func TestAbs(t *testing.T) {
	backend := newTestBackend()

	out, err := backend.Abs(fromData(t, []complex128{complex(3, 4)}))
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, out.Kind())
	assert.Equal(t, []float64{5}, floats64(out))

	out, err = backend.Abs(fromDataAs(t, []complex128{complex(3, 4)}, tensor.Complex64.DType()))
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, out.Kind())

	out, err = backend.Abs(fromData(t, []int64{-3, 3}))
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 3}, ints(out))

	out, err = backend.Abs(fromData(t, []float64{-1.5}))
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5}, floats64(out))
}
