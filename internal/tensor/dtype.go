// Package tensor provides the core array types for the scisoft engine: the dtype
// registry, shapes and strides, byte-buffer storage with strided views, index
// resolution and element assignment.
package tensor

import (
	"fmt"
	"strconv"
	"strings"
)

// DataType is the runtime kind of a single stored value.
type DataType int

// Supported data types.
const (
	Bool DataType = iota
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	Complex64
	Complex128
)

// Category groups data types for promotion. Categories are ordered:
// bool < integer < float < complex.
type Category int

// Data type categories.
const (
	CategoryBool Category = iota
	CategoryInt
	CategoryFloat
	CategoryComplex
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Bool, Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64, Complex64:
		return 8
	case Complex128:
		return 16
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Bool:
		return "bool"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Complex64:
		return "complex64"
	case Complex128:
		return "complex128"
	default:
		return "unknown"
	}
}

// Category returns the promotion category of the data type.
func (dt DataType) Category() Category {
	switch dt {
	case Bool:
		return CategoryBool
	case Float32, Float64:
		return CategoryFloat
	case Complex64, Complex128:
		return CategoryComplex
	default:
		return CategoryInt
	}
}

// IsSigned reports whether the data type is a signed integer.
func (dt DataType) IsSigned() bool {
	switch dt {
	case Int8, Int16, Int32, Int64:
		return true
	default:
		return false
	}
}

// IsUnsigned reports whether the data type is an unsigned integer.
func (dt DataType) IsUnsigned() bool {
	switch dt {
	case Uint8, Uint16, Uint32, Uint64:
		return true
	default:
		return false
	}
}

// DType returns the single-element DType for this kind.
func (dt DataType) DType() DType {
	return DType{kind: dt, elements: 1}
}

// DType is the element type of an array: a base kind and the number of values
// of that kind packed into each item. Ordinary arrays have one element per
// item; compound arrays (such as RGB) have several.
type DType struct {
	kind     DataType
	elements int
	rgb      bool
}

// RGB is a compound dtype of three int16 channels named red, green and blue.
var RGB = DType{kind: Int16, elements: 3, rgb: true}

// Compound returns a dtype packing n values of kind into each item.
// Only integer and floating-point kinds can be compounded.
func Compound(kind DataType, n int) (DType, error) {
	if n < 1 {
		return DType{}, fmt.Errorf("compound %s: element count %d must be positive: %w", kind, n, ErrDtypeConversion)
	}
	switch kind.Category() {
	case CategoryInt, CategoryFloat:
	default:
		return DType{}, fmt.Errorf("compound %s: kind cannot be compounded: %w", kind, ErrDtypeConversion)
	}
	return DType{kind: kind, elements: n}, nil
}

// Kind returns the base data type of each element.
func (d DType) Kind() DataType {
	return d.kind
}

// Elements returns the number of base values per item.
func (d DType) Elements() int {
	if d.elements == 0 {
		return 1
	}
	return d.elements
}

// ItemSize returns the number of bytes per item.
func (d DType) ItemSize() int {
	return d.kind.Size() * d.Elements()
}

// IsCompound reports whether items hold more than one value.
func (d DType) IsCompound() bool {
	return d.Elements() > 1
}

// IsRGB reports whether the dtype is the RGB compound.
func (d DType) IsRGB() bool {
	return d.rgb
}

// Category returns the promotion category of the base kind.
func (d DType) Category() Category {
	return d.kind.Category()
}

// String returns the dtype name, e.g. "float64", "rgb" or "cint32(2)".
func (d DType) String() string {
	switch {
	case d.rgb:
		return "rgb"
	case d.IsCompound():
		return fmt.Sprintf("c%s(%d)", d.kind, d.elements)
	default:
		return d.kind.String()
	}
}

// ParseDType parses a dtype name. Besides canonical names it accepts the
// aliases float, float_, int, int_, complex, complex_, rgb and compound
// forms such as cint32(2).
func ParseDType(name string) (DType, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	switch s {
	case "float", "float_", "double":
		return Float64.DType(), nil
	case "int", "int_", "long":
		return Int64.DType(), nil
	case "complex", "complex_":
		return Complex128.DType(), nil
	case "rgb":
		return RGB, nil
	}

	if strings.HasPrefix(s, "c") && strings.HasSuffix(s, ")") {
		open := strings.IndexByte(s, '(')
		if open < 0 {
			return DType{}, fmt.Errorf("parse dtype %q: %w", name, ErrInvalidDType)
		}
		kind, err := parseKind(s[1:open])
		if err != nil {
			return DType{}, fmt.Errorf("parse dtype %q: %w", name, err)
		}
		n, err := strconv.Atoi(s[open+1 : len(s)-1])
		if err != nil {
			return DType{}, fmt.Errorf("parse dtype %q: %w", name, ErrInvalidDType)
		}
		return Compound(kind, n)
	}

	kind, err := parseKind(s)
	if err != nil {
		return DType{}, fmt.Errorf("parse dtype %q: %w", name, err)
	}
	return kind.DType(), nil
}

func parseKind(s string) (DataType, error) {
	for dt := Bool; dt <= Complex128; dt++ {
		if dt.String() == s {
			return dt, nil
		}
	}
	return 0, ErrInvalidDType
}
