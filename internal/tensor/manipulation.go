package tensor

import (
	"fmt"

	"go.uber.org/zap"
)

// Copy returns a deep copy of r with independent, contiguous storage.
func (r *RawTensor) Copy() *RawTensor {
	out, _ := NewRaw(r.shape, r.dtype) // r's shape is already valid
	itemSize := r.dtype.ItemSize()
	if r.IsContiguous() {
		copy(out.buffer.data, r.buffer.data[r.offset:r.offset+len(out.buffer.data)])
		return out
	}
	pos := 0
	r.ForEachOffset(func(off int) {
		copy(out.buffer.data[pos:pos+itemSize], r.buffer.data[off:off+itemSize])
		pos += itemSize
	})
	return out
}

// Contiguous returns r itself when it is already row-major contiguous,
// otherwise a contiguous copy.
func (r *RawTensor) Contiguous() *RawTensor {
	if r.IsContiguous() {
		return r
	}
	return r.Copy()
}

// Flatten returns a 1-D copy of r in row-major order.
func (r *RawTensor) Flatten() *RawTensor {
	out := r.Copy()
	return out.reshapeView(Shape{out.NumElements()})
}

// Reshape returns r with a new shape. One dimension may be -1 and is inferred
// from the remaining ones. The result is a view when r is contiguous and a
// copy otherwise.
//
// Example:
//
//	t.Reshape(3, -1) // [12] → [3, 4]
func (r *RawTensor) Reshape(dims ...int) (*RawTensor, error) {
	shape, err := inferShape(dims, r.NumElements())
	if err != nil {
		return nil, fmt.Errorf("reshape %v to %v: %w", r.shape, dims, err)
	}
	if r.IsContiguous() {
		return r.reshapeView(shape), nil
	}
	Logger().Debug("reshape of non-contiguous view copies",
		zap.Any("from", []int(r.shape)), zap.Any("to", []int(shape)))
	return r.Copy().reshapeView(shape), nil
}

// SetShape changes r's shape in place. It fails when r is not contiguous, as
// the new shape could not be expressed with strides over the same storage.
func (r *RawTensor) SetShape(dims ...int) error {
	shape, err := inferShape(dims, r.NumElements())
	if err != nil {
		return fmt.Errorf("set shape %v to %v: %w", r.shape, dims, err)
	}
	if !r.IsContiguous() {
		return fmt.Errorf("set shape of non-contiguous view: %w", ErrShapeMismatch)
	}
	v := r.reshapeView(shape)
	r.shape, r.stride = v.shape, v.stride
	return nil
}

// reshapeView reinterprets a contiguous r with a shape of the same size.
func (r *RawTensor) reshapeView(shape Shape) *RawTensor {
	itemSize := r.dtype.ItemSize()
	stride := shape.ComputeStrides()
	for i := range stride {
		stride[i] *= itemSize
	}
	return r.newView(shape.Clone(), stride, r.offset, r.dtype)
}

// inferShape resolves a single -1 entry so that the shape holds n items.
func inferShape(dims []int, n int) (Shape, error) {
	shape := Shape(dims).Clone()
	unknown := -1
	known := 1
	for i, d := range shape {
		switch {
		case d == -1 && unknown < 0:
			unknown = i
		case d < 0:
			return nil, fmt.Errorf("invalid dimension %d: %w", d, ErrShapeMismatch)
		default:
			known *= d
		}
	}
	if unknown >= 0 {
		if known == 0 || n%known != 0 {
			return nil, fmt.Errorf("cannot infer dimension for %d items: %w", n, ErrShapeMismatch)
		}
		shape[unknown] = n / known
		known = n
	}
	if known != n {
		return nil, fmt.Errorf("%d items do not fit shape %v: %w", n, shape, ErrShapeMismatch)
	}
	return shape, nil
}

// Transpose permutes the dimensions of r and returns a view. With no axes the
// dimensions are reversed.
func (r *RawTensor) Transpose(axes ...int) (*RawTensor, error) {
	ndim := len(r.shape)
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		return nil, fmt.Errorf("transpose: %d axes for %d-dimensional array: %w", len(axes), ndim, ErrInvalidAxis)
	}

	shape := make(Shape, ndim)
	stride := make([]int, ndim)
	seen := make([]bool, ndim)
	for i, a := range axes {
		ax, err := NormalizeAxis(a, ndim)
		if err != nil {
			return nil, fmt.Errorf("transpose: %w", err)
		}
		if seen[ax] {
			return nil, fmt.Errorf("transpose: repeated axis %d: %w", a, ErrInvalidAxis)
		}
		seen[ax] = true
		shape[i], stride[i] = r.shape[ax], r.stride[ax]
	}
	return r.newView(shape, stride, r.offset, r.dtype), nil
}

// Squeeze removes every dimension of size 1 and returns a view.
func (r *RawTensor) Squeeze() *RawTensor {
	shape := make(Shape, 0, len(r.shape))
	stride := make([]int, 0, len(r.shape))
	for i, n := range r.shape {
		if n != 1 {
			shape = append(shape, n)
			stride = append(stride, r.stride[i])
		}
	}
	return r.newView(shape, stride, r.offset, r.dtype)
}

// Real returns a writable view of the real parts of a complex array.
func (r *RawTensor) Real() (*RawTensor, error) {
	part, err := complexPart(r.dtype)
	if err != nil {
		return nil, fmt.Errorf("real: %w", err)
	}
	return r.newView(r.shape.Clone(), append([]int(nil), r.stride...), r.offset, part), nil
}

// Imag returns a writable view of the imaginary parts of a complex array.
func (r *RawTensor) Imag() (*RawTensor, error) {
	part, err := complexPart(r.dtype)
	if err != nil {
		return nil, fmt.Errorf("imag: %w", err)
	}
	return r.newView(r.shape.Clone(), append([]int(nil), r.stride...), r.offset+part.kind.Size(), part), nil
}

func complexPart(dt DType) (DType, error) {
	switch dt.kind {
	case Complex64:
		return Float32.DType(), nil
	case Complex128:
		return Float64.DType(), nil
	default:
		return DType{}, fmt.Errorf("%s is not complex: %w", dt, ErrUnsupportedDtype)
	}
}

// Channel returns a writable view of element i of every compound item.
func (r *RawTensor) Channel(i int) (*RawTensor, error) {
	if !r.dtype.IsCompound() {
		return nil, fmt.Errorf("channel of %s: %w", r.dtype, ErrUnsupportedDtype)
	}
	n := r.dtype.Elements()
	if i < 0 || i >= n {
		return nil, fmt.Errorf("channel %d of %s: %w", i, r.dtype, ErrIndexOutOfRange)
	}
	off := r.offset + i*r.dtype.kind.Size()
	return r.newView(r.shape.Clone(), append([]int(nil), r.stride...), off, r.dtype.kind.DType()), nil
}

// Item returns the single value of a one-item array as its native Go type.
func (r *RawTensor) Item() (any, error) {
	if r.NumElements() != 1 {
		return nil, fmt.Errorf("item of array with %d items: %w", r.NumElements(), ErrNotScalar)
	}
	return r.ValueAt(r.offset), nil
}

// Values returns every item in row-major order as native Go values.
func (r *RawTensor) Values() []any {
	out := make([]any, 0, r.NumElements())
	r.ForEachOffset(func(off int) {
		out = append(out, r.ValueAt(off))
	})
	return out
}

// ToList returns the items as nested []any slices mirroring the shape. A 0-D
// array yields its value directly.
func (r *RawTensor) ToList() any {
	return r.toList(0, r.offset)
}

func (r *RawTensor) toList(dim, off int) any {
	if dim == len(r.shape) {
		return r.ValueAt(off)
	}
	out := make([]any, r.shape[dim])
	for i := range out {
		out[i] = r.toList(dim+1, off+i*r.stride[dim])
	}
	return out
}
