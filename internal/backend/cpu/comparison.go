package cpu

import (
	"cmp"
	"fmt"

	"github.com/born-ml/scisoft/internal/tensor"
)

// Comparison operations - return bool arrays.

// Compare evaluates a op b elementwise with broadcasting. Complex values are
// ordered by real part, then imaginary part. Comparisons involving NaN are
// false, except NotEqual. Compound items support Equal and NotEqual only,
// compared channel by channel.
func (cpu *CPUBackend) Compare(op tensor.CompareOp, a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	name := "compare " + compareName(op)
	compound := a.DType().IsCompound() || b.DType().IsCompound()
	if compound {
		if op != tensor.OpEqual && op != tensor.OpNotEqual {
			return nil, fmt.Errorf("%s on %s and %s: %w", name, a.DType(), b.DType(), tensor.ErrUnsupportedDtype)
		}
		if a.DType().IsCompound() && b.DType().IsCompound() && a.DType().Elements() != b.DType().Elements() {
			return nil, fmt.Errorf("%s: %s and %s: %w", name, a.DType(), b.DType(), tensor.ErrDtypeConversion)
		}
	}

	out, it, err := newBroadcastResult(name, tensor.Bool.DType(), a, b)
	if err != nil {
		return nil, err
	}
	cat := max(a.Kind().Category(), b.Kind().Category())

	if compound {
		n := max(a.DType().Elements(), b.DType().Elements())
		aStep, bStep := channelStep(a), channelStep(b)
		for it.Next() {
			equal := true
			for j := 0; j < n && equal; j++ {
				equal = compareValues(tensor.OpEqual, cat, a, it.Offsets[0]+j*aStep, b, it.Offsets[1]+j*bStep)
			}
			out.SetIntAt(it.Index(), boolToInt(equal == (op == tensor.OpEqual)))
		}
		return out, nil
	}

	for it.Next() {
		v := compareValues(op, cat, a, it.Offsets[0], b, it.Offsets[1])
		out.SetIntAt(it.Index(), boolToInt(v))
	}
	return out, nil
}

// channelStep returns the byte distance between channels of a compound item,
// or 0 for plain dtypes so a plain value is compared with every channel.
func channelStep(x *tensor.RawTensor) int {
	if !x.DType().IsCompound() {
		return 0
	}
	return x.Kind().Size()
}

// compareValues compares one value of a with one value of b in category cat.
func compareValues(op tensor.CompareOp, cat tensor.Category, a *tensor.RawTensor, ao int, b *tensor.RawTensor, bo int) bool {
	switch cat {
	case tensor.CategoryComplex:
		return compareComplex(op, a.ComplexAt(ao), b.ComplexAt(bo))
	case tensor.CategoryFloat:
		return compareFloat(op, a.FloatAt(ao), b.FloatAt(bo))
	default:
		return applyOrdering(op, compareInts(a, ao, b, bo))
	}
}

func compareFloat(op tensor.CompareOp, x, y float64) bool {
	switch op {
	case tensor.OpGreater:
		return x > y
	case tensor.OpLess:
		return x < y
	case tensor.OpGreaterEqual:
		return x >= y
	case tensor.OpLessEqual:
		return x <= y
	case tensor.OpEqual:
		return x == y
	default:
		return x != y
	}
}

func compareComplex(op tensor.CompareOp, z, w complex128) bool {
	zr, zi, wr, wi := real(z), imag(z), real(w), imag(w)
	switch op {
	case tensor.OpGreater:
		return zr > wr || (zr == wr && zi > wi)
	case tensor.OpLess:
		return zr < wr || (zr == wr && zi < wi)
	case tensor.OpGreaterEqual:
		return zr > wr || (zr == wr && zi >= wi)
	case tensor.OpLessEqual:
		return zr < wr || (zr == wr && zi <= wi)
	case tensor.OpEqual:
		return z == w
	default:
		return z != w
	}
}

// applyOrdering maps a three-way comparison result to op.
func applyOrdering(op tensor.CompareOp, c int) bool {
	switch op {
	case tensor.OpGreater:
		return c > 0
	case tensor.OpLess:
		return c < 0
	case tensor.OpGreaterEqual:
		return c >= 0
	case tensor.OpLessEqual:
		return c <= 0
	case tensor.OpEqual:
		return c == 0
	default:
		return c != 0
	}
}

// compareInts orders two integer values exactly, including uint64 values
// above MaxInt64.
func compareInts(a *tensor.RawTensor, ao int, b *tensor.RawTensor, bo int) int {
	if a.Kind() != tensor.Uint64 && b.Kind() != tensor.Uint64 {
		return cmp.Compare(a.IntAt(ao), b.IntAt(bo))
	}
	x, xNeg := unsignedAt(a, ao)
	y, yNeg := unsignedAt(b, bo)
	switch {
	case xNeg && !yNeg:
		return -1
	case !xNeg && yNeg:
		return 1
	case xNeg && yNeg:
		return cmp.Compare(a.IntAt(ao), b.IntAt(bo))
	default:
		return cmp.Compare(x, y)
	}
}

// unsignedAt reads an integer value as uint64, reporting negative values of
// signed kinds separately.
func unsignedAt(x *tensor.RawTensor, off int) (uint64, bool) {
	v := x.IntAt(off)
	if x.Kind() == tensor.Uint64 {
		return uint64(v), false //nolint:gosec // G115: reinterprets the stored bits
	}
	if v < 0 {
		return 0, true
	}
	return uint64(v), false
}

// compareOrder returns the three-way ordering of two values of x used by
// min/max reductions. NaN values must be filtered out by the caller.
func compareOrder(x *tensor.RawTensor, ao, bo int) int {
	switch x.Kind().Category() {
	case tensor.CategoryComplex:
		z, w := x.ComplexAt(ao), x.ComplexAt(bo)
		if c := cmp.Compare(real(z), real(w)); c != 0 {
			return c
		}
		return cmp.Compare(imag(z), imag(w))
	case tensor.CategoryFloat:
		return cmp.Compare(x.FloatAt(ao), x.FloatAt(bo))
	default:
		return compareInts(x, ao, x, bo)
	}
}

func compareName(op tensor.CompareOp) string {
	switch op {
	case tensor.OpGreater:
		return ">"
	case tensor.OpLess:
		return "<"
	case tensor.OpGreaterEqual:
		return ">="
	case tensor.OpLessEqual:
		return "<="
	case tensor.OpEqual:
		return "=="
	default:
		return "!="
	}
}
