// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ndarray

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Fixtures shared by the scenario tests.
var (
	fixtureA  = [][][]int{{{0, 1}, {2, 3}}, {{4, 5}, {6, 7}}}
	fixtureMM = [][][]float64{{{0, 2}, {6, 12}}, {{20, 30}, {42, 56}}}
	fixtureDB = [][]float64{{0, 1}, {2.5, 3}}
	fixtureZB = [][]complex128{{0, 1}, {2.5, 3}}
)

func mustNew(t *testing.T, data any, opts ...Option) *Array {
	t.Helper()
	a, err := New(data, opts...)
	require.NoError(t, err)
	return a
}

func mustArange(t *testing.T, n int, dims ...int) *Array {
	t.Helper()
	a, err := Arange(0, n, 1)
	require.NoError(t, err)
	if len(dims) > 0 {
		a, err = a.Reshape(dims...)
		require.NoError(t, err)
	}
	return a
}

func mustGet(t *testing.T, a *Array, expr string) *Array {
	t.Helper()
	out, err := a.GetS(expr)
	require.NoError(t, err)
	return out
}

func mustItem(t *testing.T, a *Array, expr string) any {
	t.Helper()
	v, err := mustGet(t, a, expr).Item()
	require.NoError(t, err)
	return v
}

func asDType(kind DataType) Option {
	return WithDType(kind.DType())
}
