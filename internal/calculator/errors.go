package calculator

import "errors"

// Contract violations. Numeric edge cases never produce these; they yield NaN cells instead.
var (
	ErrMissingColumn   = errors.New("required column missing")
	ErrInvalidWindow   = errors.New("invalid window")
	ErrUnknownField    = errors.New("unknown price field")
	ErrUnorderedSeries = errors.New("bars not in strictly increasing time order")
)
