// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU backend for n-dimensional arrays.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Every dtype of the registry, including complex and compound items
//   - NumPy-compatible broadcasting over strided views
//   - Exact fixed-width integer wraparound in reductions
//
// ndarray uses this backend by default; pass it explicitly with
// ndarray.WithBackend to share one instance.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/scisoft/backend/cpu"
//	    "github.com/born-ml/scisoft/ndarray"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    a, _ := ndarray.Arange(0, 6, 1, ndarray.WithBackend(backend))
//	    s, _ := a.Sum()
//	    fmt.Println(s) // 15
//	}
package cpu
