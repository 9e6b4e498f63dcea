package tensor

// Device identifies where a backend executes.
type Device int

// Supported devices.
const (
	CPU Device = iota
)

// String returns the device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "cpu"
	default:
		return "unknown"
	}
}

// BinaryOp enumerates the elementwise binary arithmetic operations.
type BinaryOp int

// Binary arithmetic operations.
const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpFloorDiv
	OpMod
	OpPow
)

// String returns the operator symbol.
func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpFloorDiv:
		return "//"
	case OpMod:
		return "%"
	case OpPow:
		return "**"
	default:
		return "?"
	}
}

// CompareOp enumerates the elementwise comparisons.
type CompareOp int

// Comparison operations.
const (
	OpGreater CompareOp = iota
	OpLess
	OpGreaterEqual
	OpLessEqual
	OpEqual
	OpNotEqual
)

// LogicalOp enumerates the elementwise binary logical operations.
type LogicalOp int

// Logical operations.
const (
	OpAnd LogicalOp = iota
	OpOr
	OpXor
)

// ReduceOp enumerates the reductions.
type ReduceOp int

// Reductions.
const (
	ReduceSum ReduceOp = iota
	ReduceProd
	ReduceMean
	ReduceMin
	ReduceMax
	ReduceArgMin
	ReduceArgMax
	ReduceCumSum
	ReduceCumProd
)

// String returns the reduction name.
func (op ReduceOp) String() string {
	switch op {
	case ReduceSum:
		return "sum"
	case ReduceProd:
		return "prod"
	case ReduceMean:
		return "mean"
	case ReduceMin:
		return "min"
	case ReduceMax:
		return "max"
	case ReduceArgMin:
		return "argmin"
	case ReduceArgMax:
		return "argmax"
	case ReduceCumSum:
		return "cumsum"
	case ReduceCumProd:
		return "cumprod"
	default:
		return "unknown"
	}
}

// ParseReduceOp maps a reduction name to its ReduceOp.
func ParseReduceOp(name string) (ReduceOp, bool) {
	for op := ReduceSum; op <= ReduceCumProd; op++ {
		if op.String() == name {
			return op, true
		}
	}
	return 0, false
}

// ReduceOptions configures a reduction.
type ReduceOptions struct {
	// Axis to reduce; nil reduces over every element.
	Axis *int
	// DType overrides the accumulator dtype of Sum, Prod, CumSum and CumProd.
	DType *DataType
	// IgnoreNaN skips NaN values in Min, Max, ArgMin and ArgMax.
	IgnoreNaN bool
}

// Backend defines the compute operations the array API dispatches to.
// Results are always freshly allocated unless the method says otherwise.
//
// Implementations:
//   - CPU: pure Go, internal/backend/cpu
type Backend interface {
	// Elementwise arithmetic with broadcasting and dtype promotion.
	Binary(op BinaryOp, a, b *RawTensor) (*RawTensor, error)
	// BinaryInPlace stores a op b into a, keeping a's dtype and shape.
	BinaryInPlace(op BinaryOp, a, b *RawTensor) error
	Neg(x *RawTensor) (*RawTensor, error)
	Abs(x *RawTensor) (*RawTensor, error)

	// Comparisons and logic, returning bool arrays.
	Compare(op CompareOp, a, b *RawTensor) (*RawTensor, error)
	Logical(op LogicalOp, a, b *RawTensor) (*RawTensor, error)
	Not(x *RawTensor) (*RawTensor, error)

	// Reductions.
	Reduce(op ReduceOp, x *RawTensor, opts ReduceOptions) (*RawTensor, error)

	// Gather and scatter.
	Take(x, indices *RawTensor, axis *int) (*RawTensor, error)
	Put(x, indices, values *RawTensor) error
	Where(cond, x, y *RawTensor) (*RawTensor, error)
	Select(conds, choices []*RawTensor, fallback *RawTensor) (*RawTensor, error)

	// Type conversion.
	Cast(x *RawTensor, dtype DType) (*RawTensor, error)

	// Metadata
	Name() string
	Device() Device
}
