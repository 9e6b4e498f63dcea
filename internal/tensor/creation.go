package tensor

import (
	"fmt"
	"math"
)

// Zeros creates an array filled with zeros.
//
// Example:
//
//	t, err := tensor.Zeros(Shape{3, 4}, Float64.DType())
func Zeros(shape Shape, dtype DType) (*RawTensor, error) {
	// Data is already zero-initialized by make()
	return NewRaw(shape, dtype)
}

// Ones creates an array filled with ones. Every channel of a compound item is set.
func Ones(shape Shape, dtype DType) (*RawTensor, error) {
	return Full(shape, dtype, 1)
}

// Full creates an array filled with a specific Go scalar value.
//
// Example:
//
//	t, err := tensor.Full(Shape{3, 3}, Float32.DType(), 3.14)
func Full(shape Shape, dtype DType, value any) (*RawTensor, error) {
	t, err := NewRaw(shape, dtype)
	if err != nil {
		return nil, err
	}
	if err := t.Fill(value); err != nil {
		return nil, err
	}
	return t, nil
}

// Fill sets every item of the view to a Go scalar value.
func (r *RawTensor) Fill(value any) error {
	if err := r.checkWritable("fill"); err != nil {
		return err
	}
	s, ok := classifyScalar(value)
	if !ok {
		return fmt.Errorf("fill: %T: %w", value, ErrInvalidData)
	}
	if s.cat == CategoryComplex && r.dtype.Category() != CategoryComplex && imag(s.z) != 0 {
		return fmt.Errorf("fill %s with %v: %w", r.dtype, value, ErrDtypeConversion)
	}
	r.ForEachOffset(func(off int) {
		r.setScalar(off, s)
	})
	return nil
}

// ArangeInt creates a 1-D array of evenly spaced integers in [start, stop).
// A negative step counts down; a zero step is rejected.
//
// Example:
//
//	t, err := tensor.ArangeInt(12, 2, -3, Int64.DType()) // [12, 9, 6, 3]
func ArangeInt(start, stop, step int64, dtype DType) (*RawTensor, error) {
	if step == 0 {
		return nil, fmt.Errorf("arange: step must be non-zero: %w", ErrInvalidData)
	}
	var n int64
	switch {
	case step > 0 && stop > start:
		n = (stop - start + step - 1) / step
	case step < 0 && stop < start:
		n = (start - stop - step - 1) / -step
	}

	t, err := NewRaw(Shape{int(n)}, dtype)
	if err != nil {
		return nil, err
	}
	itemSize := dtype.ItemSize()
	for i := int64(0); i < n; i++ {
		t.setScalar(int(i)*itemSize, scalar{cat: CategoryInt, kind: Int64, i: start + i*step, f: float64(start + i*step)})
	}
	return t, nil
}

// ArangeFloat creates a 1-D array of ceil((stop-start)/step) values
// start, start+step, ...
func ArangeFloat(start, stop, step float64, dtype DType) (*RawTensor, error) {
	if step == 0 || math.IsNaN(step) {
		return nil, fmt.Errorf("arange: step must be non-zero: %w", ErrInvalidData)
	}
	n := int(math.Max(0, math.Ceil((stop-start)/step)))

	t, err := NewRaw(Shape{n}, dtype)
	if err != nil {
		return nil, err
	}
	itemSize := dtype.ItemSize()
	for i := 0; i < n; i++ {
		v := start + float64(i)*step
		t.setScalar(i*itemSize, scalar{cat: CategoryFloat, kind: Float64, f: v, z: complex(v, 0)})
	}
	return t, nil
}

// Scalar wraps a Go scalar in a 0-D array marked weak for type promotion
// (see ResultType).
func Scalar(value any) (*RawTensor, error) {
	s, ok := classifyScalar(value)
	if !ok {
		return nil, fmt.Errorf("scalar: %T: %w", value, ErrInvalidData)
	}
	t, err := NewRaw(Shape{}, s.kind.DType())
	if err != nil {
		return nil, err
	}
	t.setScalar(0, s)
	t.weak = true
	return t, nil
}

// scalar is a Go value classified by category, with every representation the
// category allows precomputed.
type scalar struct {
	cat  Category
	kind DataType
	i    int64
	f    float64
	z    complex128
}

// classifyScalar recognises Go numeric and bool values. Plain int and uint
// map to the 64-bit kinds.
func classifyScalar(v any) (scalar, bool) {
	fromInt := func(i int64, kind DataType) scalar {
		return scalar{cat: CategoryInt, kind: kind, i: i, f: float64(i), z: complex(float64(i), 0)}
	}
	switch x := v.(type) {
	case bool:
		s := fromInt(0, Bool)
		if x {
			s = fromInt(1, Bool)
		}
		s.cat = CategoryBool
		return s, true
	case int:
		return fromInt(int64(x), Int64), true
	case int8:
		return fromInt(int64(x), Int8), true
	case int16:
		return fromInt(int64(x), Int16), true
	case int32:
		return fromInt(int64(x), Int32), true
	case int64:
		return fromInt(x, Int64), true
	case uint:
		s := fromInt(int64(x), Uint64) //nolint:gosec // G115: wraps above MaxInt64, f keeps the exact value
		s.f, s.z = float64(x), complex(float64(x), 0)
		return s, true
	case uint8:
		return fromInt(int64(x), Uint8), true
	case uint16:
		return fromInt(int64(x), Uint16), true
	case uint32:
		return fromInt(int64(x), Uint32), true
	case uint64:
		s := fromInt(int64(x), Uint64) //nolint:gosec // G115: wraps above MaxInt64, f keeps the exact value
		s.f, s.z = float64(x), complex(float64(x), 0)
		return s, true
	case float32:
		f := float64(x)
		return scalar{cat: CategoryFloat, kind: Float32, i: truncInt(f), f: f, z: complex(f, 0)}, true
	case float64:
		return scalar{cat: CategoryFloat, kind: Float64, i: truncInt(x), f: x, z: complex(x, 0)}, true
	case complex64:
		z := complex128(x)
		return scalar{cat: CategoryComplex, kind: Complex64, i: truncInt(real(z)), f: real(z), z: z}, true
	case complex128:
		return scalar{cat: CategoryComplex, kind: Complex128, i: truncInt(real(x)), f: real(x), z: x}, true
	default:
		return scalar{}, false
	}
}

// setScalar stores s into every element of the item at off.
func (r *RawTensor) setScalar(off int, s scalar) {
	step := r.dtype.kind.Size()
	for j := 0; j < r.dtype.Elements(); j++ {
		r.setValue(off+j*step, s)
	}
}

// setValue stores s into the single base value at off.
func (r *RawTensor) setValue(off int, s scalar) {
	switch s.cat {
	case CategoryComplex:
		r.SetComplexAt(off, s.z)
	case CategoryFloat:
		r.SetFloatAt(off, s.f)
	default:
		if s.kind == Uint64 && r.dtype.kind.Category() == CategoryFloat {
			r.SetFloatAt(off, s.f)
			return
		}
		r.SetIntAt(off, s.i)
	}
}
