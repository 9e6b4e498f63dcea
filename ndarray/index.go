// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ndarray

import (
	"github.com/born-ml/scisoft/internal/tensor"
)

// Index is one token of an index expression.
type Index = tensor.Index

// Integer selects one position and removes the dimension.
type Integer = tensor.Integer

// Range selects start:stop:step and keeps the dimension. The zero value
// selects everything.
type Range = tensor.Range

// Ellipsis expands to as many full ranges as the remaining dimensions need.
type Ellipsis = tensor.Ellipsis

// NewAxis inserts a dimension of size 1.
type NewAxis = tensor.NewAxis

// Slice returns the range start:stop:step with every part set. A zero step
// makes indexing fail with ErrInvalidIndex.
func Slice(start, stop, step int) Range {
	return Range{Start: start, Stop: stop, Step: step, HasStart: true, HasStop: true, HasStep: true}
}

// IndexArray uses an integer array (fancy indexing) or a boolean mask as an
// index token.
func IndexArray(a *Array) Index {
	return tensor.ArrayIndex{Array: a.raw}
}

// IndexArrays converts coordinate arrays, such as the result of Nonzero, into
// one index token per array.
//
// Example:
//
//	big, _ := a.Greater(10)
//	d, _ := a.Get(ndarray.IndexArrays(big.Nonzero())...)
func IndexArrays(arrays []*Array) []Index {
	out := make([]Index, len(arrays))
	for i, a := range arrays {
		out[i] = IndexArray(a)
	}
	return out
}

// ParseIndex parses an index expression such as "1:,::2,...,[0,1],newaxis".
func ParseIndex(expr string) ([]Index, error) {
	return tensor.ParseIndex(expr)
}

// Get reads through an index expression. Expressions made of integers,
// ranges, ellipsis and newaxis return views; expressions holding an index
// array or mask return copies.
//
// Example:
//
//	a, _ := ndarray.Arange(0, 7, 1)
//	b, _ := a.Get(ndarray.Range{Step: -2}) // [6 4 2 0], a view of a
func (a *Array) Get(idx ...Index) (*Array, error) {
	r, err := a.raw.Get(idx...)
	if err != nil {
		return nil, err
	}
	return a.wrap(r), nil
}

// Set writes value through an index expression, broadcasting it to the
// selected shape and converting it to a's dtype. With an index array,
// repeated positions keep the last value. Nothing is written on error.
func (a *Array) Set(value any, idx ...Index) error {
	v, err := operand(value)
	if err != nil {
		return err
	}
	return a.raw.Set(v, idx...)
}

// GetS is Get with a textual index expression.
func (a *Array) GetS(expr string) (*Array, error) {
	idx, err := ParseIndex(expr)
	if err != nil {
		return nil, err
	}
	return a.Get(idx...)
}

// SetS is Set with a textual index expression.
//
// Example:
//
//	mask, _ := a.Greater(11.6)
//	_ = a.Set(0, ndarray.IndexArray(mask))
//	_ = a.SetS("...,1::2", -1)
func (a *Array) SetS(expr string, value any) error {
	idx, err := ParseIndex(expr)
	if err != nil {
		return err
	}
	return a.Set(value, idx...)
}

// Take gathers items by integer position: over the flattened array, or along
// Axis when given.
func (a *Array) Take(indices any, opts ...Option) (*Array, error) {
	idx, err := operand(indices)
	if err != nil {
		return nil, err
	}
	r, err := a.backend.Take(a.raw, idx, newOptions(opts).axis)
	if err != nil {
		return nil, err
	}
	return a.wrap(r), nil
}

// Put writes values at flat row-major positions, cycling values when there
// are fewer of them than positions.
func (a *Array) Put(indices, values any) error {
	idx, err := operand(indices)
	if err != nil {
		return err
	}
	v, err := operand(values)
	if err != nil {
		return err
	}
	return a.backend.Put(a.raw, idx, v)
}

// Nonzero returns, per dimension, the int64 coordinates of the non-zero items
// in row-major order.
func (a *Array) Nonzero() []*Array {
	coords := tensor.Nonzero(a.raw)
	out := make([]*Array, len(coords))
	for i, c := range coords {
		out[i] = a.wrap(c)
	}
	return out
}
