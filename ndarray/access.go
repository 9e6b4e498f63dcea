// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ndarray

import (
	"fmt"

	"github.com/born-ml/scisoft/internal/tensor"
)

// Shape returns a copy of the array's dimensions.
func (a *Array) Shape() Shape {
	return a.raw.Shape().Clone()
}

// NDim returns the number of dimensions.
func (a *Array) NDim() int {
	return a.raw.NDim()
}

// DType returns the item dtype.
func (a *Array) DType() DType {
	return a.raw.DType()
}

// ItemSize returns the size of one item in bytes.
func (a *Array) ItemSize() int {
	return a.raw.ItemSize()
}

// Size returns the number of items.
func (a *Array) Size() int {
	return a.raw.NumElements()
}

// Len returns the length of the first dimension, or 0 for a 0-D array.
func (a *Array) Len() int {
	if a.raw.NDim() == 0 {
		return 0
	}
	return a.raw.Shape()[0]
}

// Strides returns the distance between neighbouring items of every
// dimension, counted in items.
func (a *Array) Strides() []int {
	return a.raw.Strides()
}

// Backend returns the backend the array dispatches to.
func (a *Array) Backend() Backend {
	return a.backend
}

// SharesStorage reports whether a and b are views of the same storage.
func (a *Array) SharesStorage(b *Array) bool {
	return a.raw.SharesStorage(b.raw)
}

// Item returns the single item of an array holding exactly one, as the Go
// type matching the dtype (compound items as a slice).
func (a *Array) Item() (any, error) {
	return a.raw.Item()
}

// At returns the item at the given position, one index per dimension.
// Negative indices count from the end.
func (a *Array) At(indices ...int) (any, error) {
	if len(indices) != a.NDim() {
		return nil, fmt.Errorf("at: %d indices for %d-dimensional array: %w", len(indices), a.NDim(), ErrInvalidIndex)
	}
	idx := make([]Index, len(indices))
	for i, v := range indices {
		idx[i] = Integer(v)
	}
	v, err := a.raw.Get(idx...)
	if err != nil {
		return nil, err
	}
	return v.Item()
}

// Float64s returns the items in row-major order converted to float64.
// Complex values keep their real part.
func (a *Array) Float64s() []float64 {
	out := make([]float64, 0, a.Size())
	a.raw.ForEachOffset(func(off int) {
		out = append(out, a.raw.FloatAt(off))
	})
	return out
}

// Int64s returns the items in row-major order converted to int64. Floats
// truncate toward zero.
func (a *Array) Int64s() []int64 {
	out := make([]int64, 0, a.Size())
	a.raw.ForEachOffset(func(off int) {
		out = append(out, a.raw.IntAt(off))
	})
	return out
}

// Complex128s returns the items in row-major order converted to complex128.
func (a *Array) Complex128s() []complex128 {
	out := make([]complex128, 0, a.Size())
	a.raw.ForEachOffset(func(off int) {
		out = append(out, a.raw.ComplexAt(off))
	})
	return out
}

// Bools returns the truth value of every item in row-major order.
func (a *Array) Bools() []bool {
	out := make([]bool, 0, a.Size())
	a.raw.ForEachOffset(func(off int) {
		out = append(out, a.raw.BoolAt(off))
	})
	return out
}

// ToList returns the items as nested []any slices mirroring the shape; a 0-D
// array yields its item.
func (a *Array) ToList() any {
	return a.raw.ToList()
}

// String formats the array with the current print options.
func (a *Array) String() string {
	return a.raw.String()
}

// Copy returns a deep copy with independent, contiguous storage.
func (a *Array) Copy() *Array {
	return a.wrap(a.raw.Copy())
}

// Flatten returns a 1-D copy of the items in row-major order.
func (a *Array) Flatten() *Array {
	return a.wrap(a.raw.Flatten())
}

// Reshape returns the items with new dimensions. One dimension may be -1 and
// is inferred. The result is a view when the data is contiguous, otherwise a
// copy.
func (a *Array) Reshape(dims ...int) (*Array, error) {
	r, err := a.raw.Reshape(dims...)
	if err != nil {
		return nil, err
	}
	return a.wrap(r), nil
}

// SetShape changes the dimensions of a in place. It fails for arrays whose
// data is not contiguous.
func (a *Array) SetShape(dims ...int) error {
	return a.raw.SetShape(dims...)
}

// Transpose returns a view with permuted axes; without arguments the axes are
// reversed.
func (a *Array) Transpose(axes ...int) (*Array, error) {
	r, err := a.raw.Transpose(axes...)
	if err != nil {
		return nil, err
	}
	return a.wrap(r), nil
}

// Squeeze returns a view without the size-1 dimensions.
func (a *Array) Squeeze() *Array {
	return a.wrap(a.raw.Squeeze())
}

// BroadcastTo returns a read-only view of a stretched to shape. Writes
// through it, or through views taken from it, fail with ErrReadOnly; use
// Copy for a writable array.
func (a *Array) BroadcastTo(shape Shape) (*Array, error) {
	r, err := a.raw.BroadcastTo(shape)
	if err != nil {
		return nil, err
	}
	return a.wrap(r), nil
}

// Astype returns a copy converted to dt.
func (a *Array) Astype(dt DType) (*Array, error) {
	r, err := a.backend.Cast(a.raw, dt)
	if err != nil {
		return nil, err
	}
	return a.wrap(r), nil
}

// Real returns a writable view of the real parts of a complex array.
func (a *Array) Real() (*Array, error) {
	r, err := a.raw.Real()
	if err != nil {
		return nil, err
	}
	return a.wrap(r), nil
}

// Imag returns a writable view of the imaginary parts of a complex array.
func (a *Array) Imag() (*Array, error) {
	r, err := a.raw.Imag()
	if err != nil {
		return nil, err
	}
	return a.wrap(r), nil
}

// SetReal overwrites the real parts of a complex array with value,
// broadcasting it.
func (a *Array) SetReal(value any) error {
	re, err := a.Real()
	if err != nil {
		return err
	}
	return re.Set(value)
}

// SetImag overwrites the imaginary parts of a complex array with value,
// broadcasting it.
func (a *Array) SetImag(value any) error {
	im, err := a.Imag()
	if err != nil {
		return err
	}
	return im.Set(value)
}

// Channel returns a writable view of element i of every compound item.
func (a *Array) Channel(i int) (*Array, error) {
	r, err := a.raw.Channel(i)
	if err != nil {
		return nil, err
	}
	return a.wrap(r), nil
}

// Red returns the red channel of an RGB array.
func (a *Array) Red() (*Array, error) {
	return a.rgbChannel(0)
}

// Green returns the green channel of an RGB array.
func (a *Array) Green() (*Array, error) {
	return a.rgbChannel(1)
}

// Blue returns the blue channel of an RGB array.
func (a *Array) Blue() (*Array, error) {
	return a.rgbChannel(2)
}

func (a *Array) rgbChannel(i int) (*Array, error) {
	if !a.DType().IsRGB() {
		return nil, fmt.Errorf("rgb channel of %s: %w", a.DType(), tensor.ErrUnsupportedDtype)
	}
	return a.Channel(i)
}
