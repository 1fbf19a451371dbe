package sampling

import (
	"errors"
	"fmt"
)

// Domain errors for sampling operations.
var (
	// ErrInvalidSampleCount indicates a sample count that is zero or negative.
	ErrInvalidSampleCount = errors.New("sampling: sample count must be positive")

	// ErrDimensionMismatch indicates lower and upper bounds of different length.
	ErrDimensionMismatch = errors.New("sampling: dimension mismatch between bounds")

	// ErrInvalidDomain indicates an axis whose lower bound exceeds its upper bound.
	ErrInvalidDomain = errors.New("sampling: lower bound exceeds upper bound")

	// ErrInvalidDimension indicates a domain with no axes.
	ErrInvalidDimension = errors.New("sampling: dimension must be at least 1")

	// ErrUnknownSource indicates an unrecognised generator name.
	ErrUnknownSource = errors.New("sampling: unknown source")
)

// AxisError reports the axis that violates the domain invariant.
type AxisError struct {
	Axis int
	Min  float64
	Max  float64
}

func (e *AxisError) Error() string {
	return fmt.Sprintf("%v: axis %d has min %g > max %g", ErrInvalidDomain, e.Axis, e.Min, e.Max)
}

func (e *AxisError) Unwrap() error {
	return ErrInvalidDomain
}

// CheckCount reports ErrInvalidSampleCount for n <= 0.
func CheckCount(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSampleCount, n)
	}
	return nil
}
