package tensor

// Promote returns the smallest data type both a and b can be converted to
// without leaving their categories.
//
// Rules:
//   - the result category is the larger of the two (bool < int < float < complex)
//   - integers of the same signedness widen to the larger size; mixed signedness
//     widens to the next signed size that holds both, capped at int64
//   - integers of 16 bits or fewer meet floats as float32, wider ones as float64
//   - complex results use complex64 only when every component fits float32
//
// Examples:
//
//	Promote(Int8, Int32)     → Int32
//	Promote(Uint8, Int8)     → Int16
//	Promote(Int32, Float32)  → Float64
//	Promote(Float32, Complex64) → Complex64
func Promote(a, b DataType) DataType {
	if a == b {
		return a
	}

	switch max(a.Category(), b.Category()) {
	case CategoryBool:
		return Bool
	case CategoryInt:
		return promoteInts(a, b)
	case CategoryFloat:
		if max(floatWidth(a), floatWidth(b)) == 4 {
			return Float32
		}
		return Float64
	default:
		if max(floatWidth(a), floatWidth(b)) == 4 {
			return Complex64
		}
		return Complex128
	}
}

// ResultType returns the dtype of a binary operation between a and b. A weak
// operand is a plain Go scalar: it never widens the other operand inside its
// own category, and when it belongs to a higher category it takes the default
// width of that category.
func ResultType(a DataType, aWeak bool, b DataType, bWeak bool) DataType {
	if aWeak == bWeak {
		return Promote(a, b)
	}

	strong, weak := a, b
	if aWeak {
		strong, weak = b, a
	}
	if weak.Category() <= strong.Category() {
		return strong
	}

	switch weak.Category() {
	case CategoryInt:
		return Int64
	case CategoryFloat:
		return Float64
	default:
		if strong == Float32 {
			return Complex64
		}
		return Complex128
	}
}

func promoteInts(a, b DataType) DataType {
	switch {
	case a == Bool:
		return b
	case b == Bool:
		return a
	case a.IsSigned() == b.IsSigned():
		if a.Size() >= b.Size() {
			return a
		}
		return b
	}

	s, u := a, b
	if u.IsSigned() {
		s, u = b, a
	}
	if s.Size() > u.Size() {
		return s
	}
	switch u {
	case Uint8:
		return Int16
	case Uint16:
		return Int32
	default:
		return Int64
	}
}

// floatWidth returns the float component width a data type needs when it is
// combined with a floating-point or complex operand.
func floatWidth(dt DataType) int {
	switch dt {
	case Bool, Int8, Uint8, Int16, Uint16, Float32, Complex64:
		return 4
	default:
		return 8
	}
}

// DefaultAccumulator returns the dtype used by sum-like reductions when no
// accumulator dtype is requested.
func DefaultAccumulator(dt DataType) DataType {
	switch {
	case dt == Bool, dt.IsSigned():
		return Int64
	case dt.IsUnsigned():
		return Uint64
	default:
		return dt
	}
}
