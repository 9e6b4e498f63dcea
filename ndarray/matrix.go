// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ndarray

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/scisoft/internal/tensor"
)

// FromMatrix copies a gonum matrix into a 2-D float64 array.
//
// Example:
//
//	m := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
//	a := ndarray.FromMatrix(m) // [[1. 2.] [3. 4.]]
func FromMatrix(m mat.Matrix, opts ...Option) *Array {
	o := newOptions(opts)
	rows, cols := m.Dims()
	raw, err := tensor.Zeros(Shape{rows, cols}, Float64.DType())
	if err != nil {
		panic(fmt.Sprintf("from matrix: %v", err))
	}
	off := 0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			raw.SetFloatAt(off, m.At(i, j))
			off += 8
		}
	}
	return &Array{raw: raw, backend: o.backendOrDefault()}
}

// ToDense copies a 1-D or 2-D real array into a gonum dense matrix. A 1-D
// array becomes a single row.
func (a *Array) ToDense() (*mat.Dense, error) {
	if a.DType().IsCompound() || a.DType().Category() == tensor.CategoryComplex {
		return nil, fmt.Errorf("to dense from %s: %w", a.DType(), ErrUnsupportedDtype)
	}
	var rows, cols int
	switch a.NDim() {
	case 1:
		rows, cols = 1, a.raw.Shape()[0]
	case 2:
		rows, cols = a.raw.Shape()[0], a.raw.Shape()[1]
	default:
		return nil, fmt.Errorf("to dense from %d-dimensional array: %w", a.NDim(), ErrShapeMismatch)
	}
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("to dense from empty shape %v: %w", a.raw.Shape(), ErrShapeMismatch)
	}
	return mat.NewDense(rows, cols, a.Float64s()), nil
}
