package tensor

import (
	"fmt"

	"go.uber.org/zap"
)

// Index is one token of an index expression.
//
// Implementations:
//   - Integer: selects one position and removes the dimension
//   - Range: start:stop:step, keeps the dimension
//   - Ellipsis: expands to as many full ranges as needed
//   - NewAxis: inserts a dimension of size 1
//   - ArrayIndex: integer ("fancy") or boolean mask array
type Index interface {
	indexToken()
}

// Integer selects a single position; negative values count from the end.
type Integer int

// Range selects start:stop:step. Unset bounds take the defaults for the step
// direction. An unset Step means 1; a zero Step with HasStep is rejected.
type Range struct {
	Start, Stop, Step          int
	HasStart, HasStop, HasStep bool
}

// Ellipsis stands for as many full ranges as the remaining dimensions need.
type Ellipsis struct{}

// NewAxis inserts a new dimension of size 1.
type NewAxis struct{}

// ArrayIndex selects with an integer or boolean array.
type ArrayIndex struct {
	Array *RawTensor
}

func (Integer) indexToken()    {}
func (Range) indexToken()      {}
func (Ellipsis) indexToken()   {}
func (NewAxis) indexToken()    {}
func (ArrayIndex) indexToken() {}

// StepOrDefault returns the step, treating zero as 1.
func (rg Range) StepOrDefault() int {
	if rg.Step == 0 {
		return 1
	}
	return rg.Step
}

// ResolveSlice applies rg to a dimension of length n and returns the first
// position, the step and the number of selected positions. Out-of-range bounds
// clamp, following the usual slice rules for both step directions.
//
// Example:
//
//	ResolveSlice(7, Range{Step: -2})               → 6, -2, 4  (6 4 2 0)
//	ResolveSlice(7, Range{Stop: -8, HasStop: true, Step: -2}) → 6, -2, 4
func ResolveSlice(n int, rg Range) (start, step, length int) {
	step = rg.StepOrDefault()
	norm := func(i, lo, hi int) int {
		if i < 0 {
			i += n
		}
		return min(max(i, lo), hi)
	}

	var stop int
	if step > 0 {
		start, stop = 0, n
		if rg.HasStart {
			start = norm(rg.Start, 0, n)
		}
		if rg.HasStop {
			stop = norm(rg.Stop, 0, n)
		}
		if stop > start {
			length = (stop-start-1)/step + 1
		}
	} else {
		start, stop = n-1, -1
		if rg.HasStart {
			start = norm(rg.Start, -1, n-1)
		}
		if rg.HasStop {
			stop = norm(rg.Stop, -1, n-1)
		}
		if start > stop {
			length = (start-stop-1)/(-step) + 1
		}
	}
	if length == 0 {
		start = 0
	}
	return start, step, length
}

// Selection is a resolved index expression. Basic expressions resolve to a
// View sharing the source storage; advanced ones to the byte Offsets of every
// selected item in row-major order of Shape.
type Selection struct {
	Shape   Shape
	View    *RawTensor
	Offsets []int
}

// IsView reports whether the selection is a basic view.
func (s *Selection) IsView() bool {
	return s.View != nil
}

// entry is one index token after ellipsis expansion and mask expansion.
// Every entry except newaxis consumes exactly one source dimension.
type entry struct {
	kind  entryKind
	pos   int        // integer position
	rng   Range      // range
	array *RawTensor // integer index array
}

type entryKind int

const (
	entryInt entryKind = iota
	entryRange
	entryNewAxis
	entryArray
)

// Resolve classifies and resolves an index expression against r.
func (r *RawTensor) Resolve(idx ...Index) (*Selection, error) {
	entries, advanced, err := r.expand(idx)
	if err != nil {
		return nil, err
	}
	if !advanced {
		return r.resolveBasic(entries)
	}
	return r.resolveAdvanced(entries)
}

// expand validates token counts, expands the first ellipsis, turns boolean
// masks into integer arrays and pads trailing full ranges.
func (r *RawTensor) expand(idx []Index) ([]entry, bool, error) {
	ndim := len(r.shape)
	consumed := 0
	for _, tok := range idx {
		switch t := tok.(type) {
		case Range:
			if t.HasStep && t.Step == 0 {
				return nil, false, fmt.Errorf("slice step cannot be zero: %w", ErrInvalidIndex)
			}
			consumed++
		case Integer:
			consumed++
		case ArrayIndex:
			if t.Array == nil {
				return nil, false, fmt.Errorf("nil index array: %w", ErrInvalidIndex)
			}
			if t.Array.Kind() == Bool {
				if t.Array.NDim() == 0 {
					return nil, false, fmt.Errorf("0-d boolean index: %w", ErrInvalidIndex)
				}
				consumed += t.Array.NDim()
			} else {
				consumed++
			}
		case Ellipsis, NewAxis:
		case nil:
			return nil, false, fmt.Errorf("nil index token: %w", ErrInvalidIndex)
		default:
			return nil, false, fmt.Errorf("index token %T: %w", tok, ErrInvalidIndex)
		}
	}
	if consumed > ndim {
		return nil, false, fmt.Errorf("array is %d-dimensional, but %d were indexed: %w", ndim, consumed, ErrTooManyIndices)
	}

	entries := make([]entry, 0, ndim+len(idx))
	advanced := false
	sawEllipsis := false
	dim := 0
	for _, tok := range idx {
		switch t := tok.(type) {
		case Integer:
			entries = append(entries, entry{kind: entryInt, pos: int(t)})
			dim++
		case Range:
			entries = append(entries, entry{kind: entryRange, rng: t})
			dim++
		case NewAxis:
			entries = append(entries, entry{kind: entryNewAxis})
		case Ellipsis:
			// Only the first ellipsis expands; later ones absorb no dimensions.
			if !sawEllipsis {
				sawEllipsis = true
				for i := 0; i < ndim-consumed; i++ {
					entries = append(entries, entry{kind: entryRange, rng: Range{}})
					dim++
				}
			}
		case ArrayIndex:
			advanced = true
			arr := t.Array
			if arr.Kind() == Bool {
				masked := r.shape[dim : dim+arr.NDim()]
				if !arr.shape.Equal(masked) {
					return nil, false, fmt.Errorf("boolean index shape %v does not match indexed dimensions %v: %w",
						arr.shape, masked, ErrShapeMismatch)
				}
				for _, coords := range nonzero(arr) {
					entries = append(entries, entry{kind: entryArray, array: coords})
				}
				dim += arr.NDim()
				continue
			}
			if arr.Kind().Category() != CategoryInt {
				return nil, false, fmt.Errorf("index array of dtype %s: %w", arr.dtype, ErrInvalidIndex)
			}
			entries = append(entries, entry{kind: entryArray, array: arr})
			dim++
		}
	}
	for ; dim < ndim; dim++ {
		entries = append(entries, entry{kind: entryRange, rng: Range{}})
	}
	return entries, advanced, nil
}

func (r *RawTensor) resolveBasic(entries []entry) (*Selection, error) {
	shape := make(Shape, 0, len(entries))
	stride := make([]int, 0, len(entries))
	offset := r.offset
	dim := 0
	for _, e := range entries {
		switch e.kind {
		case entryInt:
			n := r.shape[dim]
			pos := e.pos
			if pos < -n || pos >= n {
				return nil, fmt.Errorf("index %d is out of bounds for axis %d with size %d: %w", pos, dim, n, ErrIndexOutOfRange)
			}
			if pos < 0 {
				pos += n
			}
			offset += pos * r.stride[dim]
			dim++
		case entryRange:
			start, step, length := ResolveSlice(r.shape[dim], e.rng)
			offset += start * r.stride[dim]
			shape = append(shape, length)
			stride = append(stride, step*r.stride[dim])
			dim++
		case entryNewAxis:
			shape = append(shape, 1)
			stride = append(stride, 0)
		}
	}
	view := r.newView(shape, stride, offset, r.dtype)
	return &Selection{Shape: shape, View: view}, nil
}

// basicDim is one output dimension contributed by a range or newaxis entry.
type basicDim struct {
	size, stride int
}

func (r *RawTensor) resolveAdvanced(entries []entry) (*Selection, error) {
	var (
		basics   []basicDim
		advDims  []int        // source dimension of each advanced entry
		advArrs  []*RawTensor // index array of each advanced entry
		first    = -1         // number of basic dims before the first advanced entry
		last     = -1         // entry position of the last advanced entry
		adjacent = true
		offset   = r.offset
		dim      = 0
	)

	for i, e := range entries {
		switch e.kind {
		case entryRange:
			start, step, length := ResolveSlice(r.shape[dim], e.rng)
			offset += start * r.stride[dim]
			basics = append(basics, basicDim{size: length, stride: step * r.stride[dim]})
			dim++
		case entryNewAxis:
			basics = append(basics, basicDim{size: 1})
		case entryInt, entryArray:
			arr := e.array
			if e.kind == entryInt {
				var err error
				if arr, err = Scalar(e.pos); err != nil {
					return nil, err
				}
			}
			if first < 0 {
				first = len(basics)
			} else if last != i-1 {
				adjacent = false
			}
			last = i
			advDims = append(advDims, dim)
			advArrs = append(advArrs, arr)
			dim++
		}
	}

	it, err := NewBroadcastIterator(advArrs...)
	if err != nil {
		return nil, fmt.Errorf("index arrays could not be broadcast together: %w", err)
	}
	bshape := it.Shape()
	advOff := make([]int, 0, bshape.NumElements())
	for it.Next() {
		off := 0
		for k, d := range advDims {
			n := r.shape[d]
			pos := int(advArrs[k].IntAt(it.Offsets[k]))
			if pos < -n || pos >= n {
				return nil, fmt.Errorf("index %d is out of bounds for axis %d with size %d: %w", pos, d, n, ErrIndexOutOfRange)
			}
			if pos < 0 {
				pos += n
			}
			off += pos * r.stride[d]
		}
		advOff = append(advOff, off)
	}

	if !adjacent {
		first = 0
	}
	outer, inner := basics[:first], basics[first:]
	outerShape, outerStride := splitBasic(outer)
	innerShape, innerStride := splitBasic(inner)

	shape := make(Shape, 0, len(basics)+len(bshape))
	shape = append(shape, outerShape...)
	shape = append(shape, bshape...)
	shape = append(shape, innerShape...)

	offsets := make([]int, 0, shape.NumElements())
	forEachOffset(outerShape, outerStride, offset, func(o int) {
		for _, a := range advOff {
			forEachOffset(innerShape, innerStride, o+a, func(off int) {
				offsets = append(offsets, off)
			})
		}
	})
	return &Selection{Shape: shape, Offsets: offsets}, nil
}

func splitBasic(dims []basicDim) (Shape, []int) {
	shape := make(Shape, len(dims))
	stride := make([]int, len(dims))
	for i, d := range dims {
		shape[i], stride[i] = d.size, d.stride
	}
	return shape, stride
}

// nonzero returns, for every dimension of x, an int64 array with the
// coordinates of the true (non-zero) items in row-major order.
func nonzero(x *RawTensor) []*RawTensor {
	ndim := len(x.shape)
	coords := make([][]int64, ndim)
	pos := make([]int, ndim)
	x.ForEachOffset(func(off int) {
		if x.BoolAt(off) {
			for d := range coords {
				coords[d] = append(coords[d], int64(pos[d]))
			}
		}
		for d := ndim - 1; d >= 0; d-- {
			pos[d]++
			if pos[d] < x.shape[d] {
				break
			}
			pos[d] = 0
		}
	})

	out := make([]*RawTensor, ndim)
	for d, c := range coords {
		t, _ := NewRaw(Shape{len(c)}, Int64.DType())
		for i, v := range c {
			t.SetIntAt(i*8, v)
		}
		out[d] = t
	}
	return out
}

// Nonzero returns one int64 coordinate array per dimension of x listing the
// positions of its non-zero items in row-major order.
func Nonzero(x *RawTensor) []*RawTensor {
	if len(x.shape) == 0 {
		return nonzero(x.reshapeView(Shape{1}))
	}
	return nonzero(x)
}

// Get reads through an index expression. Basic expressions return a view
// sharing r's storage; advanced ones return a freshly allocated copy.
func (r *RawTensor) Get(idx ...Index) (*RawTensor, error) {
	sel, err := r.Resolve(idx...)
	if err != nil {
		return nil, err
	}
	if sel.IsView() {
		return sel.View, nil
	}
	return r.gather(sel)
}

// gather copies the selected items into a new contiguous array.
func (r *RawTensor) gather(sel *Selection) (*RawTensor, error) {
	out, err := NewRaw(sel.Shape, r.dtype)
	if err != nil {
		return nil, err
	}
	itemSize := r.dtype.ItemSize()
	for i, off := range sel.Offsets {
		copy(out.buffer.data[i*itemSize:(i+1)*itemSize], r.buffer.data[off:off+itemSize])
	}
	Logger().Debug("advanced index gather",
		zap.Int("items", len(sel.Offsets)), zap.Any("shape", []int(sel.Shape)))
	return out, nil
}

// Set writes value through an index expression into r's storage. The value is
// broadcast to the selected shape; a basic expression writes through a view
// and an advanced one scatters to the selected positions. Repeated positions
// keep the last value written. Nothing is written when validation fails.
func (r *RawTensor) Set(value *RawTensor, idx ...Index) error {
	if err := r.checkWritable("set"); err != nil {
		return err
	}
	sel, err := r.Resolve(idx...)
	if err != nil {
		return err
	}
	if sel.IsView() {
		return Assign(sel.View, value)
	}
	return r.scatter(sel, value)
}

func (r *RawTensor) scatter(sel *Selection, value *RawTensor) error {
	src, err := prepareSource(r, value, sel.Shape)
	if err != nil {
		return err
	}
	it, err := NewBroadcastIteratorTo(sel.Shape, src)
	if err != nil {
		return err
	}
	for it.Next() {
		r.CopyItem(sel.Offsets[it.Index()], src, it.Offsets[0])
	}
	Logger().Debug("advanced index scatter", zap.Int("items", len(sel.Offsets)))
	return nil
}
