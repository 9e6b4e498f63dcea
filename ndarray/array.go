// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ndarray

import (
	"fmt"

	"github.com/born-ml/scisoft/internal/backend/cpu"
	"github.com/born-ml/scisoft/internal/tensor"
)

// Array is an n-dimensional typed array.
//
// An Array is a view: several arrays may share storage, and writes through
// any of them are visible in all. The zero value is not usable; create
// arrays with New, Zeros, Ones, Full, Arange or FromMatrix.
type Array struct {
	raw     *tensor.RawTensor
	backend Backend
}

var defaultBackend Backend = cpu.New()

func (o *options) backendOrDefault() Backend {
	if o.backend != nil {
		return o.backend
	}
	return defaultBackend
}

// wrap returns raw as an array using a's backend.
func (a *Array) wrap(raw *tensor.RawTensor) *Array {
	return &Array{raw: raw, backend: a.backend}
}

// Raw returns the underlying storage view.
func (a *Array) Raw() *tensor.RawTensor {
	return a.raw
}

// New builds an array from nested Go data: scalars, slices and arrays of
// scalars, nested slices, and *Array values. Without WithDType the dtype is
// inferred: complex beats float beats integer beats bool, Go int becomes
// int64 and sized integers keep their width.
//
// Example:
//
//	a, _ := ndarray.New([][]float64{{0, 1}, {2.5, 3}})               // float64 (2, 2)
//	b, _ := ndarray.New([]int{1, 2}, ndarray.WithDType(ndarray.Int8.DType()))
//	c, _ := ndarray.New([][]int{{1, 2, 3}}, ndarray.WithDType(ndarray.RGB)) // rgb (1,)
func New(data any, opts ...Option) (*Array, error) {
	o := newOptions(opts)
	var (
		raw *tensor.RawTensor
		err error
	)
	if o.dtype != nil {
		raw, err = tensor.FromDataAs(data, *o.dtype)
	} else {
		raw, err = tensor.FromData(data)
	}
	if err != nil {
		return nil, err
	}
	return &Array{raw: raw, backend: o.backendOrDefault()}, nil
}

// AsArray returns data as an array without copying when it already is one of
// the requested dtype.
func AsArray(data any, opts ...Option) (*Array, error) {
	a, ok := data.(*Array)
	if !ok {
		return New(data, opts...)
	}
	o := newOptions(opts)
	if o.dtype == nil || *o.dtype == a.DType() {
		return a, nil
	}
	return a.Astype(*o.dtype)
}

// Zeros returns an array of shape filled with zeros. The dtype defaults to
// float64.
func Zeros(shape Shape, opts ...Option) (*Array, error) {
	o := newOptions(opts)
	raw, err := tensor.Zeros(shape, o.dtypeOr(Float64.DType()))
	if err != nil {
		return nil, err
	}
	return &Array{raw: raw, backend: o.backendOrDefault()}, nil
}

// Ones returns an array of shape filled with ones. The dtype defaults to
// float64.
func Ones(shape Shape, opts ...Option) (*Array, error) {
	o := newOptions(opts)
	raw, err := tensor.Ones(shape, o.dtypeOr(Float64.DType()))
	if err != nil {
		return nil, err
	}
	return &Array{raw: raw, backend: o.backendOrDefault()}, nil
}

// Full returns an array of shape filled with value. The dtype defaults to the
// dtype of value.
func Full(shape Shape, value any, opts ...Option) (*Array, error) {
	o := newOptions(opts)
	v, err := tensor.Scalar(value)
	if err != nil {
		return nil, fmt.Errorf("full: %w", err)
	}
	raw, err := tensor.Full(shape, o.dtypeOr(v.DType()), value)
	if err != nil {
		return nil, err
	}
	return &Array{raw: raw, backend: o.backendOrDefault()}, nil
}

// Number is the set of Go types Arange accepts.
type Number interface {
	int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64
}

// Arange returns the 1-D array start, start+step, ... stopping before stop.
// Integer arguments give int64 and float arguments give float64 (float32 for
// float32 arguments) unless WithDType says otherwise.
//
// Example:
//
//	a, _ := ndarray.Arange(0, 7, 1)        // [0 1 2 3 4 5 6]
//	b, _ := ndarray.Arange(0.0, 1.0, 0.25) // [0. 0.25 0.5 0.75]
func Arange[T Number](start, stop, step T, opts ...Option) (*Array, error) {
	o := newOptions(opts)
	var (
		raw *tensor.RawTensor
		err error
	)
	switch any(start).(type) {
	case float32:
		raw, err = tensor.ArangeFloat(float64(start), float64(stop), float64(step), o.dtypeOr(Float32.DType()))
	case float64:
		raw, err = tensor.ArangeFloat(float64(start), float64(stop), float64(step), o.dtypeOr(Float64.DType()))
	default:
		raw, err = tensor.ArangeInt(int64(start), int64(stop), int64(step), o.dtypeOr(Int64.DType()))
	}
	if err != nil {
		return nil, err
	}
	return &Array{raw: raw, backend: o.backendOrDefault()}, nil
}

func (o *options) dtypeOr(dt DType) DType {
	if o.dtype != nil {
		return *o.dtype
	}
	return dt
}

// operand converts v to storage for a binary operation. Plain Go scalars
// become weak 0-D operands; other values go through New.
func operand(v any) (*tensor.RawTensor, error) {
	switch x := v.(type) {
	case *Array:
		if x == nil {
			return nil, fmt.Errorf("nil array: %w", ErrInvalidData)
		}
		return x.raw, nil
	case *tensor.RawTensor:
		return x, nil
	}
	if s, err := tensor.Scalar(v); err == nil {
		return s, nil
	}
	return tensor.FromData(v)
}
