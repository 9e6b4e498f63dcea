package cpu

import (
	"fmt"
	"math"
	"math/cmplx"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/scisoft/internal/tensor"
)

// lanes groups the byte offsets of x into the 1-D runs a reduction consumes.
// Without an axis there is a single lane over every element in row-major
// order. With an axis, lane i runs along that axis at the i-th position of
// the remaining dimensions.
type lanes struct {
	offsets []int
	length  int
	count   int
	outer   tensor.Shape // shape of the remaining dimensions
	perm    []int        // axis permutation moving the reduced axis last; nil without an axis
}

func newLanes(x *tensor.RawTensor, axis *int) (*lanes, error) {
	if axis == nil {
		n := x.NumElements()
		return &lanes{offsets: x.Offsets(), length: n, count: 1, outer: tensor.Shape{}}, nil
	}

	ndim := x.NDim()
	ax, err := tensor.NormalizeAxis(*axis, ndim)
	if err != nil {
		return nil, err
	}
	perm := make([]int, 0, ndim)
	outer := make(tensor.Shape, 0, ndim)
	for d := 0; d < ndim; d++ {
		if d != ax {
			perm = append(perm, d)
			outer = append(outer, x.Shape()[d])
		}
	}
	perm = append(perm, ax)
	t, err := x.Transpose(perm...)
	if err != nil {
		return nil, err
	}
	return &lanes{
		offsets: t.Offsets(),
		length:  x.Shape()[ax],
		count:   outer.NumElements(),
		outer:   outer,
		perm:    perm,
	}, nil
}

func (l *lanes) lane(i int) []int {
	return l.offsets[i*l.length : (i+1)*l.length]
}

// Reduce applies op over the axis in opts, or over every element when no
// axis is given (a 0-D result, or a flat 1-D result for cumulative ops).
//
// Accumulator dtypes for Sum, Prod, CumSum and CumProd default to int64 for
// bool and signed input, uint64 for unsigned input, and the input dtype
// otherwise. Each element is converted to the accumulator dtype before it is
// accumulated, so a narrow accumulator wraps exactly as it would element by
// element.
//
// Example:
//
//	x := arange(12).reshape(3, 4)
//	cpu.Reduce(tensor.ReduceSum, x, tensor.ReduceOptions{Axis: &zero})  → [12 15 18 21]
//	cpu.Reduce(tensor.ReduceArgMax, x, tensor.ReduceOptions{})           → 11
func (cpu *CPUBackend) Reduce(op tensor.ReduceOp, x *tensor.RawTensor, opts tensor.ReduceOptions) (*tensor.RawTensor, error) {
	name := op.String()
	if err := rejectCompound(name, x); err != nil {
		return nil, err
	}
	l, err := newLanes(x, opts.Axis)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	switch op {
	case tensor.ReduceSum, tensor.ReduceProd:
		acc, err := accumulatorKind(name, x, opts)
		if err != nil {
			return nil, err
		}
		return reduceAccumulate(op == tensor.ReduceProd, x, l, acc)
	case tensor.ReduceCumSum, tensor.ReduceCumProd:
		acc, err := accumulatorKind(name, x, opts)
		if err != nil {
			return nil, err
		}
		return reduceCumulative(op == tensor.ReduceCumProd, x, l, acc)
	case tensor.ReduceMean:
		return reduceMean(x, l)
	case tensor.ReduceMin, tensor.ReduceMax, tensor.ReduceArgMin, tensor.ReduceArgMax:
		return reduceExtreme(op, x, l, opts.IgnoreNaN)
	default:
		return nil, fmt.Errorf("reduce: unknown op %d", op)
	}
}

func accumulatorKind(name string, x *tensor.RawTensor, opts tensor.ReduceOptions) (tensor.DataType, error) {
	if opts.DType == nil {
		return tensor.DefaultAccumulator(x.Kind()), nil
	}
	acc := *opts.DType
	if x.Kind().Category() == tensor.CategoryComplex && acc.Category() != tensor.CategoryComplex {
		return 0, fmt.Errorf("%s: cannot accumulate %s in %s: %w", name, x.Kind(), acc, tensor.ErrDtypeConversion)
	}
	tensor.Logger().Debug("reduction accumulator override",
		zap.String("op", name),
		zap.Stringer("input", x.Kind()),
		zap.Stringer("accumulator", acc))
	return acc, nil
}

// accumulator folds values converted to one accumulator kind.
type accumulator struct {
	kind    tensor.DataType
	product bool
	i       int64
	f       float64
	z       complex128
}

func newAccumulator(kind tensor.DataType, product bool) *accumulator {
	a := &accumulator{kind: kind, product: product}
	a.reset()
	return a
}

func (a *accumulator) reset() {
	if a.product {
		a.i, a.f, a.z = 1, 1, 1
		return
	}
	a.i, a.f, a.z = 0, 0, 0
}

func (a *accumulator) add(x *tensor.RawTensor, off int) {
	switch a.kind.Category() {
	case tensor.CategoryComplex:
		v := x.ComplexAt(off)
		if a.kind == tensor.Complex64 {
			v = complex128(complex64(v))
		}
		if a.product {
			a.z *= v
		} else {
			a.z += v
		}
	case tensor.CategoryFloat:
		v := x.FloatAt(off)
		if a.kind == tensor.Float32 {
			v = float64(float32(v))
		}
		if a.product {
			a.f *= v
		} else {
			a.f += v
		}
	default:
		v := wrapInt(x.IntAt(off), a.kind)
		if a.product {
			a.i = wrapInt(a.i*v, a.kind)
		} else {
			a.i = wrapInt(a.i+v, a.kind)
		}
	}
}

func (a *accumulator) store(out *tensor.RawTensor, off int) {
	switch a.kind.Category() {
	case tensor.CategoryComplex:
		out.SetComplexAt(off, a.z)
	case tensor.CategoryFloat:
		out.SetFloatAt(off, a.f)
	default:
		out.SetIntAt(off, a.i)
	}
}

// wrapInt narrows v to the range of kind the way a fixed-width integer
// would. Bool keeps only the truth value; 64-bit kinds wrap naturally.
func wrapInt(v int64, kind tensor.DataType) int64 {
	switch kind {
	case tensor.Bool:
		return boolToInt(v != 0)
	case tensor.Int8:
		return int64(int8(v)) //nolint:gosec // G115: narrowing wraps
	case tensor.Int16:
		return int64(int16(v)) //nolint:gosec // G115: narrowing wraps
	case tensor.Int32:
		return int64(int32(v)) //nolint:gosec // G115: narrowing wraps
	case tensor.Uint8:
		return int64(uint8(v)) //nolint:gosec // G115: narrowing wraps
	case tensor.Uint16:
		return int64(uint16(v)) //nolint:gosec // G115: narrowing wraps
	case tensor.Uint32:
		return int64(uint32(v)) //nolint:gosec // G115: narrowing wraps
	default:
		return v
	}
}

func reduceAccumulate(product bool, x *tensor.RawTensor, l *lanes, kind tensor.DataType) (*tensor.RawTensor, error) {
	out, err := tensor.NewRaw(l.outer, kind.DType())
	if err != nil {
		return nil, err
	}
	size := out.ItemSize()

	if kind == tensor.Float64 {
		buf := make([]float64, l.length)
		for i := 0; i < l.count; i++ {
			for j, off := range l.lane(i) {
				buf[j] = x.FloatAt(off)
			}
			if product {
				out.SetFloatAt(i*size, floats.Prod(buf))
			} else {
				out.SetFloatAt(i*size, floats.Sum(buf))
			}
		}
		return out, nil
	}

	acc := newAccumulator(kind, product)
	for i := 0; i < l.count; i++ {
		acc.reset()
		for _, off := range l.lane(i) {
			acc.add(x, off)
		}
		acc.store(out, i*size)
	}
	return out, nil
}

func reduceCumulative(product bool, x *tensor.RawTensor, l *lanes, kind tensor.DataType) (*tensor.RawTensor, error) {
	shape := tensor.Shape{l.length}
	if l.perm != nil {
		shape = append(l.outer.Clone(), l.length)
	}
	out, err := tensor.NewRaw(shape, kind.DType())
	if err != nil {
		return nil, err
	}
	size := out.ItemSize()

	if kind == tensor.Float64 {
		src := make([]float64, l.length)
		dst := make([]float64, l.length)
		for i := 0; i < l.count; i++ {
			for j, off := range l.lane(i) {
				src[j] = x.FloatAt(off)
			}
			if product {
				floats.CumProd(dst, src)
			} else {
				floats.CumSum(dst, src)
			}
			for j, v := range dst {
				out.SetFloatAt((i*l.length+j)*size, v)
			}
		}
	} else {
		acc := newAccumulator(kind, product)
		for i := 0; i < l.count; i++ {
			acc.reset()
			for j, off := range l.lane(i) {
				acc.add(x, off)
				acc.store(out, (i*l.length+j)*size)
			}
		}
	}

	if l.perm == nil {
		return out, nil
	}
	// Undo the permutation that moved the axis last.
	inverse := make([]int, len(l.perm))
	for i, p := range l.perm {
		inverse[p] = i
	}
	back, err := out.Transpose(inverse...)
	if err != nil {
		return nil, err
	}
	return back.Copy(), nil
}

func reduceMean(x *tensor.RawTensor, l *lanes) (*tensor.RawTensor, error) {
	kind := tensor.Float64
	switch x.Kind() {
	case tensor.Float32, tensor.Complex64, tensor.Complex128:
		kind = x.Kind()
	}
	out, err := tensor.NewRaw(l.outer, kind.DType())
	if err != nil {
		return nil, err
	}
	size := out.ItemSize()
	n := float64(l.length)

	for i := 0; i < l.count; i++ {
		if kind.Category() == tensor.CategoryComplex {
			var sum complex128
			for _, off := range l.lane(i) {
				sum += x.ComplexAt(off)
			}
			if l.length == 0 {
				out.SetComplexAt(i*size, cmplx.NaN())
				continue
			}
			out.SetComplexAt(i*size, sum/complex(n, 0))
			continue
		}
		var sum float64
		for _, off := range l.lane(i) {
			sum += x.FloatAt(off)
		}
		if l.length == 0 {
			out.SetFloatAt(i*size, math.NaN())
			continue
		}
		out.SetFloatAt(i*size, sum/n)
	}
	return out, nil
}

func reduceExtreme(op tensor.ReduceOp, x *tensor.RawTensor, l *lanes, ignoreNaN bool) (*tensor.RawTensor, error) {
	arg := op == tensor.ReduceArgMin || op == tensor.ReduceArgMax
	sign := 1
	if op == tensor.ReduceMin || op == tensor.ReduceArgMin {
		sign = -1
	}

	kind := x.DType()
	if arg {
		kind = tensor.Int64.DType()
	}
	out, err := tensor.NewRaw(l.outer, kind)
	if err != nil {
		return nil, err
	}
	size := out.ItemSize()

	for i := 0; i < l.count; i++ {
		lane := l.lane(i)
		pos, err := extremeIndex(x, lane, sign, ignoreNaN)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if arg {
			out.SetIntAt(i*size, int64(pos))
		} else {
			out.CopyItem(i*size, x, lane[pos])
		}
	}
	return out, nil
}

// extremeIndex returns the position of the largest (sign 1) or smallest
// (sign -1) value in lane. The first occurrence wins. A NaN wins outright
// unless ignoreNaN is set; a lane holding only NaN then yields 0.
func extremeIndex(x *tensor.RawTensor, lane []int, sign int, ignoreNaN bool) (int, error) {
	if len(lane) == 0 {
		return 0, tensor.ErrEmptyReduction
	}
	best := -1
	for j, off := range lane {
		if isNaNAt(x, off) {
			if !ignoreNaN {
				return j, nil
			}
			continue
		}
		if best < 0 || compareOrder(x, off, lane[best])*sign > 0 {
			best = j
		}
	}
	if best < 0 {
		return 0, nil
	}
	return best, nil
}

func isNaNAt(x *tensor.RawTensor, off int) bool {
	switch x.Kind().Category() {
	case tensor.CategoryComplex:
		return cmplx.IsNaN(x.ComplexAt(off))
	case tensor.CategoryFloat:
		return math.IsNaN(x.FloatAt(off))
	default:
		return false
	}
}
