package tensor

import "fmt"

// BroadcastIterator walks several operands in lock-step over their broadcast
// shape, in row-major order. After each successful Next, Offsets[k] holds the
// byte offset of the current item of operand k. Dimensions an operand lacks or
// has with size 1 get a zero stride, so the same item is revisited.
//
// Example:
//
//	it, err := NewBroadcastIterator(a, b)
//	for it.Next() {
//	    x, y := a.FloatAt(it.Offsets[0]), b.FloatAt(it.Offsets[1])
//	    ...
//	}
type BroadcastIterator struct {
	shape   Shape
	strides [][]int
	starts  []int
	pos     []int
	count   int
	total   int

	// Offsets holds the current byte offset of every operand.
	Offsets []int
}

// NewBroadcastIterator broadcasts the operand shapes together and returns an
// iterator over the result shape.
func NewBroadcastIterator(operands ...*RawTensor) (*BroadcastIterator, error) {
	shapes := make([]Shape, len(operands))
	for i, op := range operands {
		shapes[i] = op.shape
	}
	shape, err := BroadcastAll(shapes...)
	if err != nil {
		return nil, err
	}
	return NewBroadcastIteratorTo(shape, operands...)
}

// NewBroadcastIteratorTo iterates operands broadcast to an explicit shape.
// It fails when an operand cannot be stretched to that shape.
func NewBroadcastIteratorTo(shape Shape, operands ...*RawTensor) (*BroadcastIterator, error) {
	it := &BroadcastIterator{
		shape:   shape.Clone(),
		strides: make([][]int, len(operands)),
		starts:  make([]int, len(operands)),
		pos:     make([]int, len(shape)),
		total:   shape.NumElements(),
		Offsets: make([]int, len(operands)),
	}
	for k, op := range operands {
		s, err := BroadcastStrides(op, shape)
		if err != nil {
			return nil, err
		}
		it.strides[k] = s
		it.starts[k] = op.offset
	}
	return it, nil
}

// BroadcastStrides returns byte strides that view r with the given shape,
// using stride 0 for padded and stretched dimensions.
func BroadcastStrides(r *RawTensor, shape Shape) ([]int, error) {
	out := make([]int, len(shape))
	pad := len(shape) - len(r.shape)
	if pad < 0 {
		return nil, errBroadcastTo(r.shape, shape)
	}
	for i := range shape {
		j := i - pad
		switch {
		case j < 0:
			out[i] = 0
		case r.shape[j] == shape[i]:
			out[i] = r.stride[j]
		case r.shape[j] == 1:
			out[i] = 0
		default:
			return nil, errBroadcastTo(r.shape, shape)
		}
	}
	return out, nil
}

// BroadcastTo returns a read-only view of r stretched to shape. Views derived
// from it stay read-only; Copy gives a writable array.
func (r *RawTensor) BroadcastTo(shape Shape) (*RawTensor, error) {
	stride, err := BroadcastStrides(r, shape)
	if err != nil {
		return nil, err
	}
	v := r.newView(shape.Clone(), stride, r.offset, r.dtype)
	v.weak = r.weak
	v.readOnly = true
	return v, nil
}

// Shape returns the broadcast shape being iterated.
func (it *BroadcastIterator) Shape() Shape {
	return it.shape
}

// Index returns the row-major position of the current item.
func (it *BroadcastIterator) Index() int {
	return it.count - 1
}

// Next advances to the next item. It returns false once every item has been visited.
func (it *BroadcastIterator) Next() bool {
	if it.count >= it.total {
		return false
	}
	if it.count == 0 {
		copy(it.Offsets, it.starts)
		it.count++
		return true
	}
	for d := len(it.shape) - 1; d >= 0; d-- {
		it.pos[d]++
		for k := range it.Offsets {
			it.Offsets[k] += it.strides[k][d]
		}
		if it.pos[d] < it.shape[d] {
			break
		}
		for k := range it.Offsets {
			it.Offsets[k] -= it.pos[d] * it.strides[k][d]
		}
		it.pos[d] = 0
	}
	it.count++
	return true
}

func errBroadcastTo(from, to Shape) error {
	return fmt.Errorf("could not broadcast shape %v to %v: %w", from, to, ErrShapeMismatch)
}
