package domain

import "fmt"

// BoundaryPolicy decides which side of a boundary value is inclusive
type BoundaryPolicy string

// Boundary policies
const (
	// LowerInclusive puts a value equal to a boundary into the band above it
	LowerInclusive BoundaryPolicy = "lower_inclusive"

	// UpperInclusive puts a value equal to a boundary into the band below it
	UpperInclusive BoundaryPolicy = "upper_inclusive"
)

// IOError is a fatal failure reading the source or writing the destination
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
