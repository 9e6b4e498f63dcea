package tensor

import (
	"fmt"
)

// Assign copies src into dst, broadcasting src to dst's shape and converting
// to dst's dtype. Leading size-1 dimensions of src beyond dst's rank are
// dropped first. When both share storage src is snapshotted, so overlapping
// views read the values from before the write.
func Assign(dst, src *RawTensor) error {
	if err := dst.checkWritable("assign"); err != nil {
		return err
	}
	src, err := prepareSource(dst, src, dst.shape)
	if err != nil {
		return err
	}
	it, err := NewBroadcastIteratorTo(dst.shape, dst, src)
	if err != nil {
		return err
	}
	for it.Next() {
		dst.CopyItem(it.Offsets[0], src, it.Offsets[1])
	}
	return nil
}

// prepareSource validates that value can be written into items of dst and
// that it broadcasts to shape, then returns the operand to read from.
func prepareSource(dst, value *RawTensor, shape Shape) (*RawTensor, error) {
	if value == nil {
		return nil, fmt.Errorf("assign: nil value: %w", ErrInvalidData)
	}
	if err := checkAssignable(dst.dtype, value); err != nil {
		return nil, err
	}

	src := value
	for len(src.shape) > len(shape) && src.shape[0] == 1 {
		src = src.newView(src.shape[1:], src.stride[1:], src.offset, src.dtype)
	}
	if _, err := BroadcastStrides(src, shape); err != nil {
		return nil, fmt.Errorf("assign: %w", err)
	}

	if src.SharesStorage(dst) {
		src = src.Copy()
	}
	return src, nil
}

// checkAssignable rejects writes that would silently drop data: complex
// values into real storage, and compound items into plain or differently
// sized items.
func checkAssignable(dst DType, value *RawTensor) error {
	if value.dtype.Category() == CategoryComplex && dst.Category() != CategoryComplex {
		if !value.weak || imag(value.ComplexAt(value.offset)) != 0 {
			return fmt.Errorf("assign %s into %s: %w", value.dtype, dst, ErrDtypeConversion)
		}
	}
	if value.dtype.IsCompound() && value.dtype.Elements() != dst.Elements() {
		return fmt.Errorf("assign %s into %s: %w", value.dtype, dst, ErrDtypeConversion)
	}
	return nil
}

// CopyItem copies one item of src at srcOff into r at dstOff. A plain source
// value fills every channel of a compound destination.
func (r *RawTensor) CopyItem(dstOff int, src *RawTensor, srcOff int) {
	n := r.dtype.Elements()
	if n == 1 {
		r.copyValue(dstOff, src, srcOff)
		return
	}
	step := r.dtype.kind.Size()
	srcStep := 0
	if src.dtype.IsCompound() {
		srcStep = src.dtype.kind.Size()
	}
	for j := 0; j < n; j++ {
		r.copyValue(dstOff+j*step, src, srcOff+j*srcStep)
	}
}

// Cast returns a new contiguous array holding r's values converted to dtype.
// Floats truncate toward zero when cast to integers; complex values cannot be
// cast to real dtypes.
func (r *RawTensor) Cast(dtype DType) (*RawTensor, error) {
	out, err := NewRaw(r.shape, dtype)
	if err != nil {
		return nil, err
	}
	if err := Assign(out, r); err != nil {
		return nil, fmt.Errorf("cast to %s: %w", dtype, err)
	}
	return out, nil
}
