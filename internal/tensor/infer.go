package tensor

import (
	"fmt"
	"reflect"
)

// RawProvider is implemented by array wrappers that can be nested inside
// literal data passed to FromData.
type RawProvider interface {
	Raw() *RawTensor
}

// leaf is one element of nested data: a Go scalar or a whole sub-array.
type leaf struct {
	s   scalar
	raw *RawTensor
}

type inferState struct {
	leaves []leaf
	kind   DataType
	seen   bool
}

// FromData builds an array from nested Go data: scalars, slices or arrays of
// scalars, nested slices, and sub-arrays. The dtype is inferred: any complex
// value gives a complex dtype, otherwise any float gives a float dtype,
// otherwise integers give int64 (narrower typed Go integers keep their width),
// and all-bool data gives bool. Sub-arrays contribute their own dtype.
//
// Example:
//
//	t, err := tensor.FromData([][]float64{{0, 1}, {2.5, 3}}) // float64, shape [2, 2]
func FromData(data any) (*RawTensor, error) {
	st := &inferState{}
	shape, err := st.walk(data)
	if err != nil {
		return nil, fmt.Errorf("array: %w", err)
	}
	dtype := Float64.DType()
	if st.seen {
		dtype = st.kind.DType()
	}
	if c, ok := st.commonCompound(); ok {
		dtype = c
		shape = append(shape, c.Elements())
	}
	return st.build(shape, dtype)
}

// commonCompound reports the compound dtype shared by every leaf, if the data
// consists only of compound sub-arrays of one dtype.
func (st *inferState) commonCompound() (DType, bool) {
	if len(st.leaves) == 0 {
		return DType{}, false
	}
	first := st.leaves[0].raw
	if first == nil || !first.dtype.IsCompound() {
		return DType{}, false
	}
	for _, lf := range st.leaves[1:] {
		if lf.raw == nil || lf.raw.dtype != first.dtype {
			return DType{}, false
		}
	}
	return first.dtype, true
}

// FromDataAs builds an array from nested Go data converting every value to
// dtype. Narrowing is allowed (floats truncate toward zero), but complex
// values are rejected for real dtypes. For compound dtypes an innermost axis
// whose length equals the element count supplies the channels of each item;
// otherwise each value fills every channel of its item.
func FromDataAs(data any, dtype DType) (*RawTensor, error) {
	st := &inferState{}
	shape, err := st.walk(data)
	if err != nil {
		return nil, fmt.Errorf("array: %w", err)
	}
	if st.seen && st.kind.Category() == CategoryComplex && dtype.Category() != CategoryComplex {
		return nil, fmt.Errorf("array: complex data as %s: %w", dtype, ErrDtypeConversion)
	}
	return st.build(shape, dtype)
}

func (st *inferState) merge(kind DataType) {
	if !st.seen {
		st.kind, st.seen = kind, true
		return
	}
	st.kind = Promote(st.kind, kind)
}

func (st *inferState) walk(v any) (Shape, error) {
	if p, ok := v.(RawProvider); ok {
		v = p.Raw()
	}
	if raw, ok := v.(*RawTensor); ok {
		if raw == nil {
			return nil, fmt.Errorf("nil array: %w", ErrInvalidData)
		}
		st.leaves = append(st.leaves, leaf{raw: raw})
		st.merge(raw.Kind())
		return raw.shape.Clone(), nil
	}
	if s, ok := classifyScalar(v); ok {
		st.leaves = append(st.leaves, leaf{s: s})
		st.merge(s.kind)
		return Shape{}, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%T: %w", v, ErrInvalidData)
	}

	n := rv.Len()
	if n == 0 {
		if kind, ok := kindOfType(rv.Type().Elem()); ok {
			st.merge(kind)
		}
		return Shape{0}, nil
	}

	var sub Shape
	for i := 0; i < n; i++ {
		s, err := st.walk(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		if i == 0 {
			sub = s
		} else if !sub.Equal(s) {
			return nil, fmt.Errorf("inhomogeneous nested data: %v vs %v at position %d: %w", sub, s, i, ErrShapeMismatch)
		}
	}
	return append(Shape{n}, sub...), nil
}

// kindOfType maps a Go element type to a data type for empty slices.
func kindOfType(t reflect.Type) (DataType, bool) {
	switch t.Kind() {
	case reflect.Bool:
		return Bool, true
	case reflect.Int, reflect.Int64:
		return Int64, true
	case reflect.Int8:
		return Int8, true
	case reflect.Int16:
		return Int16, true
	case reflect.Int32:
		return Int32, true
	case reflect.Uint, reflect.Uint64:
		return Uint64, true
	case reflect.Uint8:
		return Uint8, true
	case reflect.Uint16:
		return Uint16, true
	case reflect.Uint32:
		return Uint32, true
	case reflect.Float32:
		return Float32, true
	case reflect.Float64:
		return Float64, true
	case reflect.Complex64:
		return Complex64, true
	case reflect.Complex128:
		return Complex128, true
	default:
		return 0, false
	}
}

func (st *inferState) build(shape Shape, dtype DType) (*RawTensor, error) {
	n := dtype.Elements()
	channels := dtype.IsCompound() && len(shape) > 0 && shape[len(shape)-1] == n
	if channels {
		shape = shape[:len(shape)-1]
	}

	t, err := NewRaw(shape, dtype)
	if err != nil {
		return nil, err
	}

	step := dtype.kind.Size()
	pos := 0
	// spread writes one source value to every channel unless the data
	// supplies channels itself.
	spread := 1
	if dtype.IsCompound() && !channels {
		spread = n
	}

	for _, lf := range st.leaves {
		if lf.raw == nil {
			for j := 0; j < spread; j++ {
				t.setValue(pos, lf.s)
				pos += step
			}
			continue
		}

		src := lf.raw
		if src.dtype.IsCompound() {
			if src.dtype.Elements() != n {
				return nil, fmt.Errorf("array: %s item into %s: %w", src.dtype, dtype, ErrDtypeConversion)
			}
			srcStep := src.dtype.kind.Size()
			src.ForEachOffset(func(off int) {
				for j := 0; j < n; j++ {
					t.copyValue(pos, src, off+j*srcStep)
					pos += step
				}
			})
			continue
		}
		src.ForEachOffset(func(off int) {
			for j := 0; j < spread; j++ {
				t.copyValue(pos, src, off)
				pos += step
			}
		})
	}
	return t, nil
}
