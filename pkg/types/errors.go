package types

import "errors"

// Jar and cookie errors. All are validation failures; none are transient.
var (
	ErrInvalidCapacity  = errors.New("capacity must be a non-negative integer")
	ErrInvalidType      = errors.New("invalid cookie type")
	ErrCapacityExceeded = errors.New("not enough space in the jar")
	ErrEmptyJar         = errors.New("not enough cookies in the jar")
	ErrTypeUnavailable  = errors.New("no cookies of that type in the jar")
	ErrNegativeQuantity = errors.New("quantity must not be negative")
	ErrInvariant        = errors.New("jar invariant violated")
)
