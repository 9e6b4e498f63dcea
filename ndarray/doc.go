// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ndarray provides n-dimensional typed arrays with NumPy-style
// broadcasting, slicing and reductions.
//
// # Overview
//
// An Array is a typed, strided view over shared byte storage. The package
// provides:
//   - A closed set of dtypes: bool, signed and unsigned integers, float32/64,
//     complex64/128 and compound items such as RGB (3×int16)
//   - Dtype inference from nested Go data and a promotion lattice for mixed
//     operands, where plain Go scalars never widen an array
//   - Basic indexing (integers, slices, ellipsis, newaxis) returning views
//   - Advanced indexing (integer and boolean arrays) returning copies on read
//     and scattering on write
//   - Elementwise arithmetic, comparisons and logic with broadcasting
//   - Reductions along one axis or over all elements
//
// # Basic Usage
//
//	a, _ := ndarray.Arange(0, 12, 1)
//	a, _ = a.Reshape(3, 4)
//
//	row, _ := a.GetS("1")        // view of the second row
//	_ = row.AddInPlace(10)       // writes through to a
//
//	s, _ := a.Sum(ndarray.Axis(0))
//	fmt.Println(s)               // [22 25 28 31]
//
// # Operands
//
// Operands of arithmetic, comparison and logical methods may be arrays, plain
// Go scalars or nested Go data. Plain scalars are weak: they never widen an
// array of their own category, so an int8 array plus 3 stays int8. A plain
// integer that does not fit the integer result dtype, such as 300 against
// int8, fails with ErrDtypeConversion instead of wrapping.
//
// # Reductions
//
// Reductions run over every item, giving a 0-D array, or along Axis. Sum,
// Prod, CumSum and CumProd accumulate bool and signed input in int64,
// unsigned input in uint64 and everything else in its own dtype; WithDType
// picks another accumulator.
//
//	a, _ := ndarray.Arange(0, 12, 1)
//	a, _ = a.Reshape(3, 4)
//	s, _ := a.Sum(ndarray.Axis(1)) // [6 22 38]
//	i, _ := a.ArgMax()             // 11
//
// # Views and Copies
//
// Slices, Reshape of contiguous data, Transpose, Real, Imag and Channel return
// views sharing storage with their source; writes through a view are visible
// in every other view of the same storage. BroadcastTo returns a read-only
// view: writes through it fail with ErrReadOnly. Copy, Flatten and advanced
// indexing return independent arrays.
//
// # Errors
//
// Operations return errors wrapping the sentinels declared in this package
// (ErrShapeMismatch, ErrIndexOutOfRange, ...). Match them with errors.Is.
// A failing write leaves the target unchanged.
//
// # Concurrency
//
// Arrays are not synchronized. Concurrent writes to arrays sharing storage
// must be serialized by the caller.
package ndarray
