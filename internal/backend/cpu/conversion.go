package cpu

import (
	"github.com/born-ml/scisoft/internal/tensor"
)

// Cast returns a contiguous copy of x converted to dtype. Floats truncate
// toward zero when cast to integers.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DType) (*tensor.RawTensor, error) {
	return x.Cast(dtype)
}
