// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ndarray

import (
	"github.com/born-ml/scisoft/internal/tensor"
)

// Option configures constructors and reductions.
type Option func(*options)

type options struct {
	dtype     *DType
	axis      *int
	ignoreNaN bool
	backend   Backend
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithDType requests an explicit dtype. Constructors convert the data to it;
// Sum, Prod, CumSum and CumProd use its kind as the accumulator.
func WithDType(dt DType) Option {
	return func(o *options) {
		o.dtype = &dt
	}
}

// Axis restricts a reduction or Take to one axis. Negative values count from
// the last axis.
func Axis(axis int) Option {
	return func(o *options) {
		o.axis = &axis
	}
}

// IgnoreNaN makes Min, Max, ArgMin and ArgMax skip NaN values instead of
// propagating them.
func IgnoreNaN() Option {
	return func(o *options) {
		o.ignoreNaN = true
	}
}

// WithBackend selects the backend a new array dispatches to. Arrays derived
// from it inherit the backend.
func WithBackend(b Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

func (o *options) reduceOptions() tensor.ReduceOptions {
	ro := tensor.ReduceOptions{Axis: o.axis, IgnoreNaN: o.ignoreNaN}
	if o.dtype != nil {
		kind := o.dtype.Kind()
		ro.DType = &kind
	}
	return ro
}
