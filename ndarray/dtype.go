// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ndarray

import (
	"github.com/born-ml/scisoft/internal/tensor"
)

// DType describes the item stored at every position of an array: a base
// data type, optionally repeated as a compound item.
type DType = tensor.DType

// DataType is the kind of a single stored value.
type DataType = tensor.DataType

// Data type constants.
const (
	Bool       DataType = tensor.Bool
	Int8       DataType = tensor.Int8
	Int16      DataType = tensor.Int16
	Int32      DataType = tensor.Int32
	Int64      DataType = tensor.Int64
	Uint8      DataType = tensor.Uint8
	Uint16     DataType = tensor.Uint16
	Uint32     DataType = tensor.Uint32
	Uint64     DataType = tensor.Uint64
	Float32    DataType = tensor.Float32
	Float64    DataType = tensor.Float64
	Complex64  DataType = tensor.Complex64
	Complex128 DataType = tensor.Complex128
)

// RGB is the compound dtype of three int16 channels: red, green and blue.
var RGB = tensor.RGB

// Compound returns the dtype whose items hold n values of kind.
//
// Example:
//
//	dt, _ := ndarray.Compound(ndarray.Int32, 4) // cint32(4), itemsize 16
func Compound(kind DataType, n int) (DType, error) {
	return tensor.Compound(kind, n)
}

// ParseDType resolves a dtype name such as "int8", "float", "complex128",
// "rgb" or "cint16(3)".
func ParseDType(name string) (DType, error) {
	return tensor.ParseDType(name)
}

// Promote returns the dtype both a and b convert to without losing their
// category (bool < int < float < complex).
func Promote(a, b DataType) DataType {
	return tensor.Promote(a, b)
}

// Shape represents the dimensions of an array.
// Example: Shape{2, 3, 4} represents a 3-D array with dimensions 2×3×4.
type Shape = tensor.Shape

// Backend is the compute contract arrays dispatch to.
type Backend = tensor.Backend

// Errors returned by array operations.
var (
	ErrShapeMismatch    = tensor.ErrShapeMismatch
	ErrIndexOutOfRange  = tensor.ErrIndexOutOfRange
	ErrTooManyIndices   = tensor.ErrTooManyIndices
	ErrInvalidIndex     = tensor.ErrInvalidIndex
	ErrInvalidAxis      = tensor.ErrInvalidAxis
	ErrNotScalar        = tensor.ErrNotScalar
	ErrDtypeConversion  = tensor.ErrDtypeConversion
	ErrUnsupportedDtype = tensor.ErrUnsupportedDtype
	ErrInvalidDType     = tensor.ErrInvalidDType
	ErrEmptyReduction   = tensor.ErrEmptyReduction
	ErrInvalidData      = tensor.ErrInvalidData
	ErrReadOnly         = tensor.ErrReadOnly
)
