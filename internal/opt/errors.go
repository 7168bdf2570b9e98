package opt

import "errors"

// Precondition failures surfaced by the genetic operators. Callers match them
// with errors.Is; the wrapped message carries the offending sizes or values.
var (
	ErrInvalidLength      = errors.New("invalid chromosome length")
	ErrSampleSize         = errors.New("sample larger than population")
	ErrNonPermutation     = errors.New("customers are not a permutation")
	ErrNonPositiveFitness = errors.New("fitness must be positive")
	ErrMissingFitness     = errors.New("individual has no fitness")
	ErrAliasedOperands    = errors.New("operands alias the same individual")
	ErrVehicleCount       = errors.New("vehicle count must be >= 1")
	ErrRandomSource       = errors.New("random source is required")
)
