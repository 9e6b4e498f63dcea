// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ndarray

import (
	"fmt"

	"github.com/born-ml/scisoft/internal/tensor"
)

func (a *Array) binary(op tensor.BinaryOp, other any) (*Array, error) {
	b, err := operand(other)
	if err != nil {
		return nil, err
	}
	r, err := a.backend.Binary(op, a.raw, b)
	if err != nil {
		return nil, err
	}
	return a.wrap(r), nil
}

func (a *Array) binaryInPlace(op tensor.BinaryOp, other any) error {
	b, err := operand(other)
	if err != nil {
		return err
	}
	return a.backend.BinaryInPlace(op, a.raw, b)
}

// Add returns a + other.
func (a *Array) Add(other any) (*Array, error) { return a.binary(tensor.OpAdd, other) }

// Sub returns a - other.
func (a *Array) Sub(other any) (*Array, error) { return a.binary(tensor.OpSub, other) }

// Mul returns a * other.
func (a *Array) Mul(other any) (*Array, error) { return a.binary(tensor.OpMul, other) }

// Div returns a / other. Integer division floors; dividing an integer by
// zero gives 0.
func (a *Array) Div(other any) (*Array, error) { return a.binary(tensor.OpDiv, other) }

// FloorDiv returns the floored quotient of a and other.
func (a *Array) FloorDiv(other any) (*Array, error) { return a.binary(tensor.OpFloorDiv, other) }

// Mod returns the remainder of floored division; it carries the sign of other.
func (a *Array) Mod(other any) (*Array, error) { return a.binary(tensor.OpMod, other) }

// Pow returns a raised to other.
func (a *Array) Pow(other any) (*Array, error) { return a.binary(tensor.OpPow, other) }

// AddInPlace stores a + other into a, keeping a's dtype.
func (a *Array) AddInPlace(other any) error { return a.binaryInPlace(tensor.OpAdd, other) }

// SubInPlace stores a - other into a. Float results stored into an integer
// array truncate toward zero.
func (a *Array) SubInPlace(other any) error { return a.binaryInPlace(tensor.OpSub, other) }

// MulInPlace stores a * other into a.
func (a *Array) MulInPlace(other any) error { return a.binaryInPlace(tensor.OpMul, other) }

// DivInPlace stores a / other into a.
func (a *Array) DivInPlace(other any) error { return a.binaryInPlace(tensor.OpDiv, other) }

// FloorDivInPlace stores the floored quotient into a.
func (a *Array) FloorDivInPlace(other any) error {
	return a.binaryInPlace(tensor.OpFloorDiv, other)
}

// ModInPlace stores a mod other into a.
func (a *Array) ModInPlace(other any) error { return a.binaryInPlace(tensor.OpMod, other) }

// PowInPlace stores a raised to other into a.
func (a *Array) PowInPlace(other any) error { return a.binaryInPlace(tensor.OpPow, other) }

// Neg returns -a.
func (a *Array) Neg() (*Array, error) {
	r, err := a.backend.Neg(a.raw)
	if err != nil {
		return nil, err
	}
	return a.wrap(r), nil
}

// Abs returns |a|; complex arrays give their magnitudes.
func (a *Array) Abs() (*Array, error) {
	r, err := a.backend.Abs(a.raw)
	if err != nil {
		return nil, err
	}
	return a.wrap(r), nil
}

func (a *Array) compare(op tensor.CompareOp, other any) (*Array, error) {
	b, err := operand(other)
	if err != nil {
		return nil, err
	}
	r, err := a.backend.Compare(op, a.raw, b)
	if err != nil {
		return nil, err
	}
	return a.wrap(r), nil
}

// Greater returns the bool array a > other.
func (a *Array) Greater(other any) (*Array, error) { return a.compare(tensor.OpGreater, other) }

// Less returns the bool array a < other.
func (a *Array) Less(other any) (*Array, error) { return a.compare(tensor.OpLess, other) }

// GreaterEqual returns the bool array a >= other.
func (a *Array) GreaterEqual(other any) (*Array, error) {
	return a.compare(tensor.OpGreaterEqual, other)
}

// LessEqual returns the bool array a <= other.
func (a *Array) LessEqual(other any) (*Array, error) { return a.compare(tensor.OpLessEqual, other) }

// Equal returns the bool array a == other.
func (a *Array) Equal(other any) (*Array, error) { return a.compare(tensor.OpEqual, other) }

// NotEqual returns the bool array a != other.
func (a *Array) NotEqual(other any) (*Array, error) { return a.compare(tensor.OpNotEqual, other) }

func (a *Array) logical(op tensor.LogicalOp, other any) (*Array, error) {
	b, err := operand(other)
	if err != nil {
		return nil, err
	}
	r, err := a.backend.Logical(op, a.raw, b)
	if err != nil {
		return nil, err
	}
	return a.wrap(r), nil
}

// LogicalAnd returns the truth of a and other.
func (a *Array) LogicalAnd(other any) (*Array, error) { return a.logical(tensor.OpAnd, other) }

// LogicalOr returns the truth of a or other.
func (a *Array) LogicalOr(other any) (*Array, error) { return a.logical(tensor.OpOr, other) }

// LogicalXor returns the truth of a xor other.
func (a *Array) LogicalXor(other any) (*Array, error) { return a.logical(tensor.OpXor, other) }

// LogicalNot returns the negated truth of a.
func (a *Array) LogicalNot() (*Array, error) {
	r, err := a.backend.Not(a.raw)
	if err != nil {
		return nil, err
	}
	return a.wrap(r), nil
}

// Where returns x where cond is true and y elsewhere, broadcasting all three.
func Where(cond *Array, x, y any) (*Array, error) {
	xr, err := operand(x)
	if err != nil {
		return nil, err
	}
	yr, err := operand(y)
	if err != nil {
		return nil, err
	}
	r, err := cond.backend.Where(cond.raw, xr, yr)
	if err != nil {
		return nil, err
	}
	return cond.wrap(r), nil
}

// Select returns, at every position, the choice paired with the first true
// condition, or fallback when none holds. A nil fallback means 0.
//
// Example:
//
//	mask, _ := mm.Greater(0)
//	out, _ := ndarray.Select([]*ndarray.Array{mask}, []any{mm}, -2.3)
func Select(conds []*Array, choices []any, fallback any) (*Array, error) {
	if len(conds) == 0 {
		return nil, fmt.Errorf("select: empty condition list: %w", ErrInvalidData)
	}
	if len(conds) != len(choices) {
		return nil, fmt.Errorf("select: %d conditions for %d choices: %w", len(conds), len(choices), ErrShapeMismatch)
	}

	cr := make([]*tensor.RawTensor, len(conds))
	ch := make([]*tensor.RawTensor, len(choices))
	for i := range conds {
		cr[i] = conds[i].raw
		c, err := operand(choices[i])
		if err != nil {
			return nil, err
		}
		ch[i] = c
	}
	var fb *tensor.RawTensor
	if fallback != nil {
		var err error
		if fb, err = operand(fallback); err != nil {
			return nil, err
		}
	}

	r, err := conds[0].backend.Select(cr, ch, fb)
	if err != nil {
		return nil, err
	}
	return conds[0].wrap(r), nil
}

var binaryOps = map[string]tensor.BinaryOp{
	"add": tensor.OpAdd, "+": tensor.OpAdd,
	"sub": tensor.OpSub, "-": tensor.OpSub,
	"mul": tensor.OpMul, "*": tensor.OpMul,
	"div": tensor.OpDiv, "/": tensor.OpDiv,
	"floordiv": tensor.OpFloorDiv, "//": tensor.OpFloorDiv,
	"mod": tensor.OpMod, "%": tensor.OpMod,
	"pow": tensor.OpPow, "**": tensor.OpPow,
}

// Apply computes a op other for an operator given by name ("add", "sub",
// "mul", "div", "floordiv", "mod", "pow") or symbol ("+", "-", "*", "/",
// "//", "%", "**").
func (a *Array) Apply(op string, other any) (*Array, error) {
	bop, ok := binaryOps[op]
	if !ok {
		return nil, &UnknownOpError{Op: op}
	}
	return a.binary(bop, other)
}
