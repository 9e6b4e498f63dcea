// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ndarray

import (
	"github.com/born-ml/scisoft/internal/tensor"
)

func (a *Array) reduce(op tensor.ReduceOp, opts []Option) (*Array, error) {
	r, err := a.backend.Reduce(op, a.raw, newOptions(opts).reduceOptions())
	if err != nil {
		return nil, err
	}
	return a.wrap(r), nil
}

// Sum returns the sum of the items.
func (a *Array) Sum(opts ...Option) (*Array, error) { return a.reduce(tensor.ReduceSum, opts) }

// Prod returns the product of the items.
func (a *Array) Prod(opts ...Option) (*Array, error) { return a.reduce(tensor.ReduceProd, opts) }

// Mean returns the arithmetic mean: float64 unless the input is float32 or
// complex.
func (a *Array) Mean(opts ...Option) (*Array, error) { return a.reduce(tensor.ReduceMean, opts) }

// Min returns the smallest item. NaN propagates unless IgnoreNaN is given.
func (a *Array) Min(opts ...Option) (*Array, error) { return a.reduce(tensor.ReduceMin, opts) }

// Max returns the largest item. NaN propagates unless IgnoreNaN is given.
func (a *Array) Max(opts ...Option) (*Array, error) { return a.reduce(tensor.ReduceMax, opts) }

// ArgMin returns the position of the first smallest item, as int64. Without
// Axis the position is a flat row-major index.
func (a *Array) ArgMin(opts ...Option) (*Array, error) {
	return a.reduce(tensor.ReduceArgMin, opts)
}

// ArgMax returns the position of the first largest item, as int64.
func (a *Array) ArgMax(opts ...Option) (*Array, error) {
	return a.reduce(tensor.ReduceArgMax, opts)
}

// CumSum returns running sums along Axis, or over the flattened items.
func (a *Array) CumSum(opts ...Option) (*Array, error) {
	return a.reduce(tensor.ReduceCumSum, opts)
}

// CumProd returns running products along Axis, or over the flattened items.
func (a *Array) CumProd(opts ...Option) (*Array, error) {
	return a.reduce(tensor.ReduceCumProd, opts)
}

// Reduce applies the reduction named op ("sum", "prod", "mean", "min",
// "max", "argmin", "argmax", "cumsum" or "cumprod").
func (a *Array) Reduce(op string, opts ...Option) (*Array, error) {
	rop, ok := tensor.ParseReduceOp(op)
	if !ok {
		return nil, &UnknownOpError{Op: op}
	}
	return a.reduce(rop, opts)
}

// UnknownOpError reports an operation name that is not recognised.
type UnknownOpError struct {
	Op string
}

func (e *UnknownOpError) Error() string {
	return "ndarray: unknown operation " + e.Op
}
