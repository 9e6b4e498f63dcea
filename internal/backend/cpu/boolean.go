package cpu

import (
	"fmt"

	"github.com/born-ml/scisoft/internal/tensor"
)

// Logical operations on truth values - return bool arrays.

// Logical evaluates a op b on the truth values of a and b with broadcasting.
// Zero is false; every other value, including NaN, is true.
func (cpu *CPUBackend) Logical(op tensor.LogicalOp, a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	if err := rejectCompound("logical", a, b); err != nil {
		return nil, err
	}
	out, it, err := newBroadcastResult("logical", tensor.Bool.DType(), a, b)
	if err != nil {
		return nil, err
	}

	for it.Next() {
		x, y := a.BoolAt(it.Offsets[0]), b.BoolAt(it.Offsets[1])
		var v bool
		switch op {
		case tensor.OpAnd:
			v = x && y
		case tensor.OpOr:
			v = x || y
		case tensor.OpXor:
			v = x != y
		default:
			return nil, fmt.Errorf("logical: unknown op %d", op)
		}
		out.SetIntAt(it.Index(), boolToInt(v))
	}
	return out, nil
}

// Not returns the logical negation of x.
func (cpu *CPUBackend) Not(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	if err := rejectCompound("not", x); err != nil {
		return nil, err
	}
	out, it, err := newBroadcastResult("not", tensor.Bool.DType(), x)
	if err != nil {
		return nil, err
	}
	for it.Next() {
		out.SetIntAt(it.Index(), boolToInt(!x.BoolAt(it.Offsets[0])))
	}
	return out, nil
}
