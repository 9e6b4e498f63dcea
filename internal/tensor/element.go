package tensor

import (
	"math"
	"unsafe"
)

// Element accessors read and write one base value at a byte offset, converting
// between the stored kind and the requested Go type. Integer narrowing wraps,
// float to integer truncates toward zero, and anything stored as bool becomes
// true when non-zero.

func (r *RawTensor) ptr(off int) unsafe.Pointer {
	//nolint:gosec // offsets are produced by view arithmetic bounded by byteExtent
	return unsafe.Pointer(&r.buffer.data[off])
}

// IntAt reads the value at off as int64.
func (r *RawTensor) IntAt(off int) int64 {
	p := r.ptr(off)
	switch r.dtype.kind {
	case Bool:
		if *(*bool)(p) {
			return 1
		}
		return 0
	case Int8:
		return int64(*(*int8)(p))
	case Int16:
		return int64(*(*int16)(p))
	case Int32:
		return int64(*(*int32)(p))
	case Int64:
		return *(*int64)(p)
	case Uint8:
		return int64(*(*uint8)(p))
	case Uint16:
		return int64(*(*uint16)(p))
	case Uint32:
		return int64(*(*uint32)(p))
	case Uint64:
		return int64(*(*uint64)(p)) //nolint:gosec // G115: values above MaxInt64 wrap
	case Float32:
		return truncInt(float64(*(*float32)(p)))
	case Float64:
		return truncInt(*(*float64)(p))
	case Complex64:
		return truncInt(float64(real(*(*complex64)(p))))
	case Complex128:
		return truncInt(real(*(*complex128)(p)))
	default:
		panic("unknown data type")
	}
}

// FloatAt reads the value at off as float64.
func (r *RawTensor) FloatAt(off int) float64 {
	p := r.ptr(off)
	switch r.dtype.kind {
	case Uint64:
		return float64(*(*uint64)(p))
	case Float32:
		return float64(*(*float32)(p))
	case Float64:
		return *(*float64)(p)
	case Complex64:
		return float64(real(*(*complex64)(p)))
	case Complex128:
		return real(*(*complex128)(p))
	default:
		return float64(r.IntAt(off))
	}
}

// ComplexAt reads the value at off as complex128.
func (r *RawTensor) ComplexAt(off int) complex128 {
	p := r.ptr(off)
	switch r.dtype.kind {
	case Complex64:
		return complex128(*(*complex64)(p))
	case Complex128:
		return *(*complex128)(p)
	default:
		return complex(r.FloatAt(off), 0)
	}
}

// BoolAt reads the value at off as a truth value.
func (r *RawTensor) BoolAt(off int) bool {
	switch r.dtype.kind.Category() {
	case CategoryComplex:
		return r.ComplexAt(off) != 0
	case CategoryFloat:
		return r.FloatAt(off) != 0
	default:
		return r.IntAt(off) != 0
	}
}

// SetIntAt stores v at off, converting to the array's kind.
func (r *RawTensor) SetIntAt(off int, v int64) {
	p := r.ptr(off)
	switch r.dtype.kind {
	case Bool:
		*(*bool)(p) = v != 0
	case Int8:
		*(*int8)(p) = int8(v) //nolint:gosec // G115: narrowing wraps
	case Int16:
		*(*int16)(p) = int16(v) //nolint:gosec // G115: narrowing wraps
	case Int32:
		*(*int32)(p) = int32(v) //nolint:gosec // G115: narrowing wraps
	case Int64:
		*(*int64)(p) = v
	case Uint8:
		*(*uint8)(p) = uint8(v) //nolint:gosec // G115: narrowing wraps
	case Uint16:
		*(*uint16)(p) = uint16(v) //nolint:gosec // G115: narrowing wraps
	case Uint32:
		*(*uint32)(p) = uint32(v) //nolint:gosec // G115: narrowing wraps
	case Uint64:
		*(*uint64)(p) = uint64(v) //nolint:gosec // G115: narrowing wraps
	case Float32:
		*(*float32)(p) = float32(v)
	case Float64:
		*(*float64)(p) = float64(v)
	case Complex64:
		*(*complex64)(p) = complex(float32(v), 0)
	case Complex128:
		*(*complex128)(p) = complex(float64(v), 0)
	default:
		panic("unknown data type")
	}
}

// SetFloatAt stores v at off, converting to the array's kind.
func (r *RawTensor) SetFloatAt(off int, v float64) {
	p := r.ptr(off)
	switch r.dtype.kind {
	case Bool:
		*(*bool)(p) = v != 0
	case Uint64:
		if v >= 0 && v < math.MaxUint64 {
			*(*uint64)(p) = uint64(v)
		} else {
			r.SetIntAt(off, truncInt(v))
		}
	case Float32:
		*(*float32)(p) = float32(v)
	case Float64:
		*(*float64)(p) = v
	case Complex64:
		*(*complex64)(p) = complex(float32(v), 0)
	case Complex128:
		*(*complex128)(p) = complex(v, 0)
	default:
		r.SetIntAt(off, truncInt(v))
	}
}

// SetComplexAt stores v at off. Real kinds keep the real part; callers reject
// lossy conversions before writing.
func (r *RawTensor) SetComplexAt(off int, v complex128) {
	p := r.ptr(off)
	switch r.dtype.kind {
	case Bool:
		*(*bool)(p) = v != 0
	case Complex64:
		*(*complex64)(p) = complex64(v)
	case Complex128:
		*(*complex128)(p) = v
	default:
		r.SetFloatAt(off, real(v))
	}
}

// copyValue copies one base value from src at srcOff into r at dstOff,
// converting through the widest type that preserves the source category.
func (r *RawTensor) copyValue(dstOff int, src *RawTensor, srcOff int) {
	switch src.dtype.kind.Category() {
	case CategoryComplex:
		r.SetComplexAt(dstOff, src.ComplexAt(srcOff))
	case CategoryFloat:
		r.SetFloatAt(dstOff, src.FloatAt(srcOff))
	default:
		if src.dtype.kind == Uint64 && r.dtype.kind.Category() == CategoryFloat {
			r.SetFloatAt(dstOff, src.FloatAt(srcOff))
			return
		}
		r.SetIntAt(dstOff, src.IntAt(srcOff))
	}
}

// truncInt converts f to int64 truncating toward zero. NaN maps to zero and
// out-of-range values saturate.
func truncInt(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(f)
	}
}

// ValueAt returns the value at off as the Go type matching the array's kind.
// Compound items are returned as a slice of that type.
func (r *RawTensor) ValueAt(off int) any {
	if r.dtype.IsCompound() {
		return r.compoundValueAt(off)
	}
	p := r.ptr(off)
	switch r.dtype.kind {
	case Bool:
		return *(*bool)(p)
	case Int8:
		return *(*int8)(p)
	case Int16:
		return *(*int16)(p)
	case Int32:
		return *(*int32)(p)
	case Int64:
		return *(*int64)(p)
	case Uint8:
		return *(*uint8)(p)
	case Uint16:
		return *(*uint16)(p)
	case Uint32:
		return *(*uint32)(p)
	case Uint64:
		return *(*uint64)(p)
	case Float32:
		return *(*float32)(p)
	case Float64:
		return *(*float64)(p)
	case Complex64:
		return *(*complex64)(p)
	case Complex128:
		return *(*complex128)(p)
	default:
		panic("unknown data type")
	}
}

func (r *RawTensor) compoundValueAt(off int) any {
	n := r.dtype.Elements()
	step := r.dtype.kind.Size()
	if r.dtype.kind.Category() == CategoryFloat {
		out := make([]float64, n)
		for j := range out {
			out[j] = r.FloatAt(off + j*step)
		}
		return out
	}
	out := make([]int64, n)
	for j := range out {
		out[j] = r.IntAt(off + j*step)
	}
	return out
}
