// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/scisoft/internal/backend/cpu"
	"github.com/born-ml/scisoft/ndarray"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements ndarray.Backend.
var _ ndarray.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/scisoft/backend/cpu"
//	    "github.com/born-ml/scisoft/ndarray"
//	)
//
//	func main() {
//	    a, _ := ndarray.Zeros(ndarray.Shape{2, 3}, ndarray.WithBackend(cpu.New()))
//	}
func New() *Backend {
	return internalcpu.New()
}
