package tensor

import (
	"fmt"
)

// tensorBuffer is the shared byte storage behind one or more views.
// A buffer lives as long as any RawTensor references it.
type tensorBuffer struct {
	data []byte
}

// newTensorBuffer allocates a zero-initialised buffer.
func newTensorBuffer(size int) *tensorBuffer {
	return &tensorBuffer{
		data: make([]byte, size),
	}
}

// RawTensor is the low-level array representation: a strided view onto a
// shared buffer. Offset and strides are kept in bytes so that views with a
// different item layout (the real part of a complex array, one channel of a
// compound array) address the same storage directly.
type RawTensor struct {
	buffer *tensorBuffer // Shared buffer
	shape  Shape         // Array dimensions
	stride []int         // Byte strides per dimension
	dtype  DType         // Runtime type information
	offset int           // Byte offset of the first item
	weak   bool          // Plain Go scalar operand (see ResultType)
	// readOnly marks broadcast views, whose repeated positions alias one item.
	readOnly bool
}

// NewRaw creates a new contiguous RawTensor with the given shape and dtype.
// Memory is zero-initialised.
func NewRaw(shape Shape, dtype DType) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if dtype.elements == 0 {
		dtype.elements = 1
	}

	itemSize := dtype.ItemSize()
	stride := shape.ComputeStrides()
	for i := range stride {
		stride[i] *= itemSize
	}

	return &RawTensor{
		buffer: newTensorBuffer(shape.NumElements() * itemSize),
		shape:  shape.Clone(),
		stride: stride,
		dtype:  dtype,
	}, nil
}

// newView creates a view sharing r's buffer. It panics when the view could
// address bytes outside the buffer: views are only built by the engine.
func (r *RawTensor) newView(shape Shape, stride []int, offset int, dtype DType) *RawTensor {
	v := &RawTensor{
		buffer: r.buffer,
		shape:  shape,
		stride: stride,
		dtype:  dtype,
		offset: offset,

		readOnly: r.readOnly,
	}
	if shape.NumElements() > 0 {
		lo, hi := v.byteExtent()
		if lo < 0 || hi > len(r.buffer.data) {
			panic(fmt.Sprintf("view [%d, %d) exceeds storage of %d bytes", lo, hi, len(r.buffer.data)))
		}
	}
	return v
}

// byteExtent returns the half-open byte range addressed by the view.
func (r *RawTensor) byteExtent() (int, int) {
	lo, hi := r.offset, r.offset
	for i, n := range r.shape {
		if n == 0 {
			return r.offset, r.offset
		}
		d := (n - 1) * r.stride[i]
		if d > 0 {
			hi += d
		} else {
			lo += d
		}
	}
	return lo, hi + r.dtype.ItemSize()
}

// Shape returns the array's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// NDim returns the number of dimensions.
func (r *RawTensor) NDim() int {
	return len(r.shape)
}

// Strides returns the per-dimension steps in items.
func (r *RawTensor) Strides() []int {
	itemSize := r.dtype.ItemSize()
	out := make([]int, len(r.stride))
	for i, s := range r.stride {
		out[i] = s / itemSize
	}
	return out
}

// ByteStrides returns the per-dimension steps in bytes.
func (r *RawTensor) ByteStrides() []int {
	return r.stride
}

// Offset returns the byte offset of the first item in the buffer.
func (r *RawTensor) Offset() int {
	return r.offset
}

// DType returns the array's dtype.
func (r *RawTensor) DType() DType {
	return r.dtype
}

// Kind returns the base data type of the array's elements.
func (r *RawTensor) Kind() DataType {
	return r.dtype.kind
}

// NumElements returns the total number of items.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ItemSize returns the number of bytes per item.
func (r *RawTensor) ItemSize() int {
	return r.dtype.ItemSize()
}

// IsWeak reports whether the array stands for a plain Go scalar operand.
func (r *RawTensor) IsWeak() bool {
	return r.weak
}

// IsReadOnly reports whether writes through the view are rejected.
func (r *RawTensor) IsReadOnly() bool {
	return r.readOnly
}

// checkWritable returns ErrReadOnly for read-only views.
func (r *RawTensor) checkWritable(op string) error {
	if r.readOnly {
		return fmt.Errorf("%s: %w", op, ErrReadOnly)
	}
	return nil
}

// SharesStorage reports whether r and other are views onto the same buffer.
func (r *RawTensor) SharesStorage(other *RawTensor) bool {
	return other != nil && r.buffer == other.buffer
}

// IsContiguous reports whether the view is laid out in row-major order with
// no gaps, so that it can be reinterpreted without copying.
func (r *RawTensor) IsContiguous() bool {
	expected := r.dtype.ItemSize()
	for i := len(r.shape) - 1; i >= 0; i-- {
		if r.shape[i] == 1 {
			continue
		}
		if r.stride[i] != expected {
			return false
		}
		expected *= r.shape[i]
	}
	return true
}

// ForEachOffset calls fn with the byte offset of every item, in row-major order.
func (r *RawTensor) ForEachOffset(fn func(off int)) {
	forEachOffset(r.shape, r.stride, r.offset, fn)
}

// Offsets returns the byte offsets of every item in row-major order.
func (r *RawTensor) Offsets() []int {
	out := make([]int, 0, r.NumElements())
	r.ForEachOffset(func(off int) {
		out = append(out, off)
	})
	return out
}

// forEachOffset walks shape in row-major order, last axis fastest.
func forEachOffset(shape Shape, stride []int, offset int, fn func(off int)) {
	n := shape.NumElements()
	if n == 0 {
		return
	}
	ndim := len(shape)
	pos := make([]int, ndim)
	off := offset
	for i := 0; i < n; i++ {
		fn(off)
		for d := ndim - 1; d >= 0; d-- {
			pos[d]++
			off += stride[d]
			if pos[d] < shape[d] {
				break
			}
			off -= pos[d] * stride[d]
			pos[d] = 0
		}
	}
}

// OffsetOf returns the byte offset of the item at the given multi-index.
// Negative indices count from the end of their dimension.
func (r *RawTensor) OffsetOf(indices ...int) (int, error) {
	if len(indices) != len(r.shape) {
		return 0, fmt.Errorf("expected %d indices, got %d: %w", len(r.shape), len(indices), ErrTooManyIndices)
	}
	off := r.offset
	for i, idx := range indices {
		n := r.shape[i]
		if idx < -n || idx >= n {
			return 0, fmt.Errorf("index %d is out of bounds for axis %d with size %d: %w", idx, i, n, ErrIndexOutOfRange)
		}
		if idx < 0 {
			idx += n
		}
		off += idx * r.stride[i]
	}
	return off, nil
}
