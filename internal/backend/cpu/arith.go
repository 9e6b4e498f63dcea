package cpu

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/born-ml/scisoft/internal/tensor"
)

// Binary computes a op b elementwise with broadcasting.
//
// The result dtype follows tensor.ResultType, so plain scalars (weak operands)
// never widen an array of the same category; a plain integer outside the
// range of the integer result dtype fails with tensor.ErrDtypeConversion.
// Integer division floors, and integer division or modulo by zero yields 0.
// Bool operands support + (or) and * (and); other operators compute them as
// int8.
//
// Example:
//
//	a := int8 [-4 -3 ... 3]
//	cpu.Binary(tensor.OpDiv, a, 2)   → int8 [-2 -2 -1 -1 0 0 1 1]
//	cpu.Binary(tensor.OpMod, a, 2.5) → float64 [1 2 0.5 1.5 0 1 2 0.5]
func (cpu *CPUBackend) Binary(op tensor.BinaryOp, a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	name := "binary " + op.String()
	if err := rejectCompound(name, a, b); err != nil {
		return nil, err
	}

	kind := tensor.ResultType(a.Kind(), a.IsWeak(), b.Kind(), b.IsWeak())
	if kind == tensor.Bool && op != tensor.OpAdd && op != tensor.OpMul {
		kind = tensor.Int8
	}
	if kind.Category() == tensor.CategoryComplex && (op == tensor.OpFloorDiv || op == tensor.OpMod) {
		return nil, fmt.Errorf("%s on %s: %w", name, kind, tensor.ErrUnsupportedDtype)
	}
	if err := checkWeakFits(name, kind, a, b); err != nil {
		return nil, err
	}

	out, it, err := newBroadcastResult(name, kind.DType(), a, b)
	if err != nil {
		return nil, err
	}
	size := out.ItemSize()

	switch {
	case kind == tensor.Bool:
		for it.Next() {
			x, y := a.BoolAt(it.Offsets[0]), b.BoolAt(it.Offsets[1])
			v := x || y
			if op == tensor.OpMul {
				v = x && y
			}
			out.SetIntAt(it.Index()*size, boolToInt(v))
		}
	case kind.IsUnsigned():
		fn := uintKernel(op)
		for it.Next() {
			x := uint64(a.IntAt(it.Offsets[0]))            //nolint:gosec // G115: reinterprets the stored bits
			y := uint64(b.IntAt(it.Offsets[1]))            //nolint:gosec // G115: reinterprets the stored bits
			out.SetIntAt(it.Index()*size, int64(fn(x, y))) //nolint:gosec // G115: SetIntAt narrows by wrapping
		}
	case kind.Category() == tensor.CategoryInt:
		fn := intKernel(op)
		for it.Next() {
			out.SetIntAt(it.Index()*size, fn(a.IntAt(it.Offsets[0]), b.IntAt(it.Offsets[1])))
		}
	case kind.Category() == tensor.CategoryFloat:
		fn := floatKernel(op)
		for it.Next() {
			out.SetFloatAt(it.Index()*size, fn(a.FloatAt(it.Offsets[0]), b.FloatAt(it.Offsets[1])))
		}
	default:
		fn := complexKernel(op)
		for it.Next() {
			out.SetComplexAt(it.Index()*size, fn(a.ComplexAt(it.Offsets[0]), b.ComplexAt(it.Offsets[1])))
		}
	}
	return out, nil
}

// BinaryInPlace stores a op b into a. The result must broadcast to a's shape
// and is converted to a's dtype: float results stored into integer arrays
// truncate toward zero, complex results cannot be stored into real arrays.
func (cpu *CPUBackend) BinaryInPlace(op tensor.BinaryOp, a, b *tensor.RawTensor) error {
	name := "in-place " + op.String()
	if a.IsReadOnly() {
		return fmt.Errorf("%s: %w", name, tensor.ErrReadOnly)
	}
	res, err := cpu.Binary(op, a, b)
	if err != nil {
		return err
	}
	if !res.Shape().Equal(a.Shape()) {
		return fmt.Errorf("%s: result shape %v does not match %v: %w", name, res.Shape(), a.Shape(), tensor.ErrShapeMismatch)
	}

	from, to := res.Kind().Category(), a.Kind().Category()
	if from == tensor.CategoryComplex && to != tensor.CategoryComplex {
		return fmt.Errorf("%s: cannot store %s into %s: %w", name, res.Kind(), a.Kind(), tensor.ErrDtypeConversion)
	}
	if from == tensor.CategoryFloat && to < tensor.CategoryFloat {
		tensor.Logger().Debug("truncating in-place result",
			zap.String("op", op.String()),
			zap.Stringer("from", res.Kind()),
			zap.Stringer("to", a.Kind()))
	}
	return tensor.Assign(a, res)
}

// Neg returns -x. Unsigned values wrap around; bool arrays are rejected.
func (cpu *CPUBackend) Neg(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	if err := rejectCompound("neg", x); err != nil {
		return nil, err
	}
	kind := x.Kind()
	if kind == tensor.Bool {
		return nil, fmt.Errorf("neg on bool: %w", tensor.ErrUnsupportedDtype)
	}

	out, it, err := newBroadcastResult("neg", kind.DType(), x)
	if err != nil {
		return nil, err
	}
	size := out.ItemSize()
	for it.Next() {
		off := it.Index() * size
		switch kind.Category() {
		case tensor.CategoryComplex:
			out.SetComplexAt(off, -x.ComplexAt(it.Offsets[0]))
		case tensor.CategoryFloat:
			out.SetFloatAt(off, -x.FloatAt(it.Offsets[0]))
		default:
			out.SetIntAt(off, -x.IntAt(it.Offsets[0]))
		}
	}
	return out, nil
}

// Abs returns |x|. Complex arrays yield their magnitude in the matching float
// dtype; bool and unsigned arrays are returned as copies.
func (cpu *CPUBackend) Abs(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	if err := rejectCompound("abs", x); err != nil {
		return nil, err
	}
	kind := x.Kind()
	switch {
	case kind == tensor.Bool, kind.IsUnsigned():
		return x.Copy(), nil
	case kind == tensor.Complex64:
		kind = tensor.Float32
	case kind == tensor.Complex128:
		kind = tensor.Float64
	}

	out, it, err := newBroadcastResult("abs", kind.DType(), x)
	if err != nil {
		return nil, err
	}
	size := out.ItemSize()
	for it.Next() {
		off := it.Index() * size
		switch x.Kind().Category() {
		case tensor.CategoryComplex:
			out.SetFloatAt(off, absComplex(x.ComplexAt(it.Offsets[0])))
		case tensor.CategoryFloat:
			out.SetFloatAt(off, absFloat(x.FloatAt(it.Offsets[0])))
		default:
			out.SetIntAt(off, absInt(x.IntAt(it.Offsets[0])))
		}
	}
	return out, nil
}

func boolToInt(v bool) int64 {
	if v {
		return 1
	}
	return 0
}
