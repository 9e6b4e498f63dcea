package cpu

import (
	"math"
	"math/cmplx"

	"github.com/born-ml/scisoft/internal/tensor"
)

// Float kernels compute in float64 and complex kernels in complex128; float32
// and complex64 results are rounded when stored.

func floatKernel(op tensor.BinaryOp) func(x, y float64) float64 {
	switch op {
	case tensor.OpAdd:
		return func(x, y float64) float64 { return x + y }
	case tensor.OpSub:
		return func(x, y float64) float64 { return x - y }
	case tensor.OpMul:
		return func(x, y float64) float64 { return x * y }
	case tensor.OpDiv:
		return func(x, y float64) float64 { return x / y }
	case tensor.OpFloorDiv:
		return func(x, y float64) float64 {
			d, _ := divmodFloat(x, y)
			return d
		}
	case tensor.OpMod:
		return func(x, y float64) float64 {
			_, m := divmodFloat(x, y)
			return m
		}
	case tensor.OpPow:
		return math.Pow
	default:
		panic("unknown binary op")
	}
}

func complexKernel(op tensor.BinaryOp) func(x, y complex128) complex128 {
	switch op {
	case tensor.OpAdd:
		return func(x, y complex128) complex128 { return x + y }
	case tensor.OpSub:
		return func(x, y complex128) complex128 { return x - y }
	case tensor.OpMul:
		return func(x, y complex128) complex128 { return x * y }
	case tensor.OpDiv:
		return func(x, y complex128) complex128 { return x / y }
	case tensor.OpPow:
		return cmplx.Pow
	default:
		panic("unsupported complex op")
	}
}

// divmodFloat returns the floored quotient and the remainder carrying the
// divisor's sign, such that div*y + mod == x up to rounding. A zero divisor
// yields x/y and NaN.
func divmodFloat(x, y float64) (div, mod float64) {
	if y == 0 {
		return x / y, math.NaN()
	}
	mod = math.Mod(x, y)
	div = (x - mod) / y
	if mod != 0 {
		if (y < 0) != (mod < 0) {
			mod += y
			div--
		}
	} else {
		mod = math.Copysign(0, y)
	}

	if div == 0 {
		return math.Copysign(0, x/y), mod
	}
	floor := math.Floor(div)
	if div-floor > 0.5 {
		floor++
	}
	return floor, mod
}

func absFloat(x float64) float64 {
	return math.Abs(x)
}

func absComplex(z complex128) float64 {
	return cmplx.Abs(z)
}
