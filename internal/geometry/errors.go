package geometry

import (
	"errors"
	"fmt"
)

var (
	ErrDegenerateInput = errors.New("geometry: slice values sum to zero")
	ErrInvalidSlice    = errors.New("geometry: invalid slice value")
	ErrInvalidRing     = errors.New("geometry: invalid ring radii")
)

// DegenerateInputError is returned when every slice weighs zero, so no
// angle can be computed. Callers render a placeholder instead.
type DegenerateInputError struct {
	Slices int
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("geometry: %d slice(s) sum to zero, no angles can be computed", e.Slices)
}

func (e *DegenerateInputError) Is(target error) bool {
	return target == ErrDegenerateInput
}

// InvalidSliceError is returned for a negative or non-finite slice value.
// It is a caller bug; values are never clamped.
type InvalidSliceError struct {
	Index int
	Label string
	Value float64
}

func (e *InvalidSliceError) Error() string {
	return fmt.Sprintf("geometry: slice %d (%q) has invalid value %v", e.Index, e.Label, e.Value)
}

func (e *InvalidSliceError) Is(target error) bool {
	return target == ErrInvalidSlice
}

// InvalidRingError is returned when the radii do not satisfy 0 <= inner < outer.
type InvalidRingError struct {
	Inner float64
	Outer float64
}

func (e *InvalidRingError) Error() string {
	return fmt.Sprintf("geometry: need 0 <= inner < outer, got inner=%v outer=%v", e.Inner, e.Outer)
}

func (e *InvalidRingError) Is(target error) bool {
	return target == ErrInvalidRing
}
