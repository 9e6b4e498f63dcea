package cpu

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/born-ml/scisoft/internal/tensor"
)

// Take gathers elements of x at indices. Without an axis x is treated as
// flattened; with an axis, indices select along that axis and the result
// shape is x's shape with that dimension replaced by the indices' shape.
// Negative indices count from the end.
//
// Example:
//
//	x := arange(16).reshape(4, 4)
//	cpu.Take(x, [1 3], &one)  → [[1 3] [5 7] [9 11] [13 15]]
func (cpu *CPUBackend) Take(x, indices *tensor.RawTensor, axis *int) (*tensor.RawTensor, error) {
	if err := checkIntIndices("take", indices); err != nil {
		return nil, err
	}
	if axis == nil {
		out, err := x.Flatten().Get(tensor.ArrayIndex{Array: indices})
		if err != nil {
			return nil, fmt.Errorf("take: %w", err)
		}
		return out, nil
	}

	ax, err := tensor.NormalizeAxis(*axis, x.NDim())
	if err != nil {
		return nil, fmt.Errorf("take: %w", err)
	}
	idx := make([]tensor.Index, ax+1)
	for i := 0; i < ax; i++ {
		idx[i] = tensor.Range{}
	}
	idx[ax] = tensor.ArrayIndex{Array: indices}
	out, err := x.Get(idx...)
	if err != nil {
		return nil, fmt.Errorf("take: %w", err)
	}
	return out, nil
}

// Put writes values into x at flat (row-major) positions. Values are cycled
// when there are fewer of them than positions; repeated positions keep the
// last value. Every position is validated before anything is written.
func (cpu *CPUBackend) Put(x, indices, values *tensor.RawTensor) error {
	if x.IsReadOnly() {
		return fmt.Errorf("put: %w", tensor.ErrReadOnly)
	}
	if err := checkIntIndices("put", indices); err != nil {
		return err
	}
	if values.NumElements() == 0 {
		return fmt.Errorf("put: no values: %w", tensor.ErrInvalidData)
	}

	n := x.NumElements()
	positions := make([]int64, 0, indices.NumElements())
	var bad error
	indices.ForEachOffset(func(off int) {
		p := indices.IntAt(off)
		if p < 0 {
			p += int64(n)
		}
		if (p < 0 || p >= int64(n)) && bad == nil {
			bad = fmt.Errorf("put: index %d for size %d: %w", indices.IntAt(off), n, tensor.ErrIndexOutOfRange)
		}
		positions = append(positions, p)
	})
	if bad != nil {
		return bad
	}

	m := int64(values.NumElements())
	cycle := make([]int64, len(positions))
	for i := range cycle {
		cycle[i] = int64(i) % m
	}
	cycleIdx, err := int64Array(cycle)
	if err != nil {
		return err
	}
	src, err := values.Flatten().Get(tensor.ArrayIndex{Array: cycleIdx})
	if err != nil {
		return fmt.Errorf("put: %w", err)
	}

	if x.IsContiguous() {
		flat, err := x.Reshape(n)
		if err != nil {
			return fmt.Errorf("put: %w", err)
		}
		posIdx, err := int64Array(positions)
		if err != nil {
			return err
		}
		return flat.Set(src, tensor.ArrayIndex{Array: posIdx})
	}

	// Strided targets are addressed with one coordinate array per dimension.
	tensor.Logger().Debug("put through unravelled coordinates",
		zap.Int("count", len(positions)),
		zap.Int("ndim", x.NDim()))
	idx, err := unravel(positions, x.Shape())
	if err != nil {
		return err
	}
	return x.Set(src, idx...)
}

// Where selects x where cond is true and y elsewhere, broadcasting all three.
// The result dtype promotes x and y.
func (cpu *CPUBackend) Where(cond, x, y *tensor.RawTensor) (*tensor.RawTensor, error) {
	if err := rejectCompound("where", cond); err != nil {
		return nil, err
	}
	dtype, err := resultDType("where", x, y)
	if err != nil {
		return nil, err
	}
	out, it, err := newBroadcastResult("where", dtype, cond, x, y)
	if err != nil {
		return nil, err
	}
	size := out.ItemSize()
	for it.Next() {
		if cond.BoolAt(it.Offsets[0]) {
			out.CopyItem(it.Index()*size, x, it.Offsets[1])
		} else {
			out.CopyItem(it.Index()*size, y, it.Offsets[2])
		}
	}
	return out, nil
}

// Select returns, at every position, the choice paired with the first true
// condition, or fallback when none holds. A nil fallback means 0.
//
// Example:
//
//	cpu.Select([mask], [x], -2.3)  → x where mask, -2.3 elsewhere
func (cpu *CPUBackend) Select(conds, choices []*tensor.RawTensor, fallback *tensor.RawTensor) (*tensor.RawTensor, error) {
	if len(conds) != len(choices) {
		return nil, fmt.Errorf("select: %d conditions for %d choices: %w", len(conds), len(choices), tensor.ErrShapeMismatch)
	}
	if len(conds) == 0 {
		return nil, fmt.Errorf("select: empty condition list: %w", tensor.ErrInvalidData)
	}
	if fallback == nil {
		zero, err := tensor.Scalar(0)
		if err != nil {
			return nil, err
		}
		fallback = zero
	}

	operands := make([]*tensor.RawTensor, 0, 2*len(conds)+1)
	operands = append(operands, conds...)
	operands = append(operands, choices...)
	operands = append(operands, fallback)
	if err := rejectCompound("select", operands...); err != nil {
		return nil, err
	}

	kind, weak := fallback.Kind(), fallback.IsWeak()
	for _, c := range choices {
		kind = tensor.ResultType(kind, weak, c.Kind(), c.IsWeak())
		weak = weak && c.IsWeak()
	}

	out, it, err := newBroadcastResult("select", kind.DType(), operands...)
	if err != nil {
		return nil, err
	}
	size := out.ItemSize()
	n := len(conds)
	for it.Next() {
		off := it.Index() * size
		chosen := false
		for k, c := range conds {
			if c.BoolAt(it.Offsets[k]) {
				out.CopyItem(off, choices[k], it.Offsets[n+k])
				chosen = true
				break
			}
		}
		if !chosen {
			out.CopyItem(off, fallback, it.Offsets[2*n])
		}
	}
	return out, nil
}

// resultDType returns the dtype holding both x and y. Compound dtypes only
// combine with an identical compound dtype.
func resultDType(name string, x, y *tensor.RawTensor) (tensor.DType, error) {
	if x.DType().IsCompound() || y.DType().IsCompound() {
		if x.DType() != y.DType() {
			return tensor.DType{}, fmt.Errorf("%s: %s and %s: %w", name, x.DType(), y.DType(), tensor.ErrUnsupportedDtype)
		}
		return x.DType(), nil
	}
	return tensor.ResultType(x.Kind(), x.IsWeak(), y.Kind(), y.IsWeak()).DType(), nil
}

func checkIntIndices(name string, indices *tensor.RawTensor) error {
	if indices.Kind().Category() != tensor.CategoryInt || indices.DType().IsCompound() {
		return fmt.Errorf("%s: indices of dtype %s: %w", name, indices.DType(), tensor.ErrInvalidIndex)
	}
	return nil
}

// int64Array wraps values in a 1-D int64 array.
func int64Array(values []int64) (*tensor.RawTensor, error) {
	out, err := tensor.NewRaw(tensor.Shape{len(values)}, tensor.Int64.DType())
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		out.SetIntAt(i*8, v)
	}
	return out, nil
}

// unravel converts flat row-major positions into one coordinate array per
// dimension of shape.
func unravel(positions []int64, shape tensor.Shape) ([]tensor.Index, error) {
	coords := make([][]int64, len(shape))
	for d := range coords {
		coords[d] = make([]int64, len(positions))
	}
	for i, p := range positions {
		for d := len(shape) - 1; d >= 0; d-- {
			dim := int64(shape[d])
			coords[d][i] = p % dim
			p /= dim
		}
	}

	idx := make([]tensor.Index, len(shape))
	for d, c := range coords {
		arr, err := int64Array(c)
		if err != nil {
			return nil, err
		}
		idx[d] = tensor.ArrayIndex{Array: arr}
	}
	return idx, nil
}
