package errors

import "math"

// ValidatePositive rejects v unless it is a finite number greater than zero.
// name identifies the parameter in the message (e.g. "encoder diameter").
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidArgument, "%s must be a finite number, got %v", name, v)
	}
	if v <= 0 {
		return New(ErrCodeInvalidArgument, "%s must be > 0, got %g", name, v)
	}
	return nil
}

// ValidateNonNegative rejects v unless it is a finite number >= 0.
func ValidateNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidArgument, "%s must be a finite number, got %v", name, v)
	}
	if v < 0 {
		return New(ErrCodeInvalidArgument, "%s must be >= 0, got %g", name, v)
	}
	return nil
}

// ValidateIntRange rejects v unless lo <= v <= hi.
func ValidateIntRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return New(ErrCodeInvalidArgument, "%s must be in [%d, %d], got %d", name, lo, hi, v)
	}
	return nil
}
