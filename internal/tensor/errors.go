package tensor

import "errors"

// Sentinel errors returned by the engine. Callers match them with errors.Is;
// call sites wrap them with fmt.Errorf("op: %w", err) to add context.
var (
	// ErrShapeMismatch is returned when shapes cannot be broadcast together,
	// nested data is ragged, or a reshape changes the element count.
	ErrShapeMismatch = errors.New("tensor: shape mismatch")

	// ErrIndexOutOfRange is returned when a single-element or fancy index
	// falls outside [-n, n-1]. Slice bounds clamp instead.
	ErrIndexOutOfRange = errors.New("tensor: index out of range")

	// ErrTooManyIndices is returned when an index expression consumes more
	// dimensions than the array has.
	ErrTooManyIndices = errors.New("tensor: too many indices for array")

	// ErrInvalidIndex is returned for unsupported index tokens, zero slice
	// steps and non-integer index arrays.
	ErrInvalidIndex = errors.New("tensor: invalid index")

	// ErrInvalidAxis is returned when an axis lies outside [-ndim, ndim-1].
	ErrInvalidAxis = errors.New("tensor: axis out of range")

	// ErrNotScalar is returned by Item on arrays holding more than one element.
	ErrNotScalar = errors.New("tensor: can only convert an array of size 1 to a scalar")

	// ErrDtypeConversion is returned when an explicit dtype cannot hold the
	// requested values, e.g. complex data into a real dtype.
	ErrDtypeConversion = errors.New("tensor: incompatible dtype conversion")

	// ErrUnsupportedDtype is returned when an operation is undefined for a dtype.
	ErrUnsupportedDtype = errors.New("tensor: operation not supported for dtype")

	// ErrInvalidDType is returned for unknown dtype names.
	ErrInvalidDType = errors.New("tensor: unknown dtype")

	// ErrEmptyReduction is returned when min/max style reductions see no elements.
	ErrEmptyReduction = errors.New("tensor: zero-size reduction without identity")

	// ErrReadOnly is returned when writing through a broadcast view or a view
	// derived from one.
	ErrReadOnly = errors.New("tensor: assignment destination is read-only")

	// ErrInvalidData is returned for nested data holding unsupported values.
	ErrInvalidData = errors.New("tensor: unsupported data value")
)
