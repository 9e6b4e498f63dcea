package cpu

import (
	"github.com/born-ml/scisoft/internal/tensor"
)

// Integer kernels operate on int64 (signed kinds) or uint64 (unsigned kinds);
// the result is narrowed by wrapping when stored.

func intKernel(op tensor.BinaryOp) func(x, y int64) int64 {
	switch op {
	case tensor.OpAdd:
		return func(x, y int64) int64 { return x + y }
	case tensor.OpSub:
		return func(x, y int64) int64 { return x - y }
	case tensor.OpMul:
		return func(x, y int64) int64 { return x * y }
	case tensor.OpDiv, tensor.OpFloorDiv:
		return floorDivInt
	case tensor.OpMod:
		return floorModInt
	case tensor.OpPow:
		return powInt
	default:
		panic("unknown binary op")
	}
}

func uintKernel(op tensor.BinaryOp) func(x, y uint64) uint64 {
	switch op {
	case tensor.OpAdd:
		return func(x, y uint64) uint64 { return x + y }
	case tensor.OpSub:
		return func(x, y uint64) uint64 { return x - y }
	case tensor.OpMul:
		return func(x, y uint64) uint64 { return x * y }
	case tensor.OpDiv, tensor.OpFloorDiv:
		return func(x, y uint64) uint64 {
			if y == 0 {
				return 0
			}
			return x / y
		}
	case tensor.OpMod:
		return func(x, y uint64) uint64 {
			if y == 0 {
				return 0
			}
			return x % y
		}
	case tensor.OpPow:
		return powUint
	default:
		panic("unknown binary op")
	}
}

// floorDivInt rounds the quotient toward negative infinity. Division by zero
// yields 0.
func floorDivInt(x, y int64) int64 {
	if y == 0 {
		return 0
	}
	q := x / y
	if x%y != 0 && (x < 0) != (y < 0) {
		q--
	}
	return q
}

// floorModInt returns the remainder with the sign of the divisor. Modulo by
// zero yields 0.
func floorModInt(x, y int64) int64 {
	if y == 0 {
		return 0
	}
	m := x % y
	if m != 0 && (m < 0) != (y < 0) {
		m += y
	}
	return m
}

// powInt raises x to y by squaring. Negative exponents only have integer
// results for x = ±1; every other base yields 0.
func powInt(x, y int64) int64 {
	if y < 0 {
		switch {
		case x == 1:
			return 1
		case x == -1 && y%2 == 0:
			return 1
		case x == -1:
			return -1
		default:
			return 0
		}
	}
	result := int64(1)
	for y > 0 {
		if y&1 == 1 {
			result *= x
		}
		x *= x
		y >>= 1
	}
	return result
}

func powUint(x, y uint64) uint64 {
	result := uint64(1)
	for y > 0 {
		if y&1 == 1 {
			result *= x
		}
		x *= x
		y >>= 1
	}
	return result
}

func absInt(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
