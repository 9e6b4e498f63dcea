// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ndarray

import (
	"go.uber.org/zap"

	"github.com/born-ml/scisoft/internal/tensor"
)

// SetLogger routes the engine's debug events (copying reshapes, advanced
// index gathers and scatters, truncating in-place casts, accumulator
// overrides) to l. Passing nil silences them.
func SetLogger(l *zap.Logger) {
	tensor.SetLogger(l)
}

// PrintOptions controls how String formats arrays.
type PrintOptions = tensor.PrintOptions

// DefaultPrintOptions returns the initial print options.
func DefaultPrintOptions() PrintOptions {
	return tensor.DefaultPrintOptions()
}

// SetPrintOptions replaces the print options used by String.
func SetPrintOptions(opts PrintOptions) {
	tensor.SetPrintOptions(opts)
}
