// Package cpu implements the pure Go compute backend for n-dimensional arrays.
package cpu

import (
	"github.com/born-ml/scisoft/internal/tensor"
)

// CPUBackend implements tensor.Backend on the CPU. It is stateless and safe
// for concurrent use on distinct arrays.
type CPUBackend struct {
	device tensor.Device
}

var _ tensor.Backend = (*CPUBackend)(nil)

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}
