package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/scisoft/internal/tensor"
)

// newBroadcastResult allocates the output of an elementwise operation over
// operands and returns an iterator that visits them together. The output is
// contiguous, so its byte offset is it.Index() times the item size.
func newBroadcastResult(name string, dtype tensor.DType, operands ...*tensor.RawTensor) (*tensor.RawTensor, *tensor.BroadcastIterator, error) {
	it, err := tensor.NewBroadcastIterator(operands...)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", name, err)
	}
	out, err := tensor.NewRaw(it.Shape(), dtype)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, it, nil
}

// rejectCompound fails when any operand has a compound dtype.
func rejectCompound(name string, operands ...*tensor.RawTensor) error {
	for _, op := range operands {
		if op.DType().IsCompound() {
			return fmt.Errorf("%s on %s: %w", name, op.DType(), tensor.ErrUnsupportedDtype)
		}
	}
	return nil
}

// checkWeakFits fails when a plain Go integer operand lies outside the range
// of the integer kind it would be stored as.
func checkWeakFits(name string, kind tensor.DataType, operands ...*tensor.RawTensor) error {
	if kind.Category() != tensor.CategoryInt {
		return nil
	}
	for _, x := range operands {
		if !x.IsWeak() || x.Kind().Category() != tensor.CategoryInt {
			continue
		}
		var (
			v    int64
			huge bool
		)
		x.ForEachOffset(func(off int) {
			v = x.IntAt(off)
			huge = x.Kind() == tensor.Uint64 && v < 0
		})
		if !intFits(v, huge, kind) {
			shown := fmt.Sprint(v)
			if huge {
				shown = fmt.Sprint(uint64(v)) //nolint:gosec // G115: reinterprets the stored bits
			}
			return fmt.Errorf("%s: Go integer %s out of bounds for %s: %w", name, shown, kind, tensor.ErrDtypeConversion)
		}
	}
	return nil
}

// intFits reports whether v belongs to the range of kind. huge marks uint64
// values above math.MaxInt64, stored in v with wrapped bits.
func intFits(v int64, huge bool, kind tensor.DataType) bool {
	if huge {
		return kind == tensor.Uint64
	}
	switch kind {
	case tensor.Int8:
		return v >= math.MinInt8 && v <= math.MaxInt8
	case tensor.Int16:
		return v >= math.MinInt16 && v <= math.MaxInt16
	case tensor.Int32:
		return v >= math.MinInt32 && v <= math.MaxInt32
	case tensor.Uint8:
		return v >= 0 && v <= math.MaxUint8
	case tensor.Uint16:
		return v >= 0 && v <= math.MaxUint16
	case tensor.Uint32:
		return v >= 0 && v <= math.MaxUint32
	case tensor.Uint64:
		return v >= 0
	default:
		return true
	}
}
