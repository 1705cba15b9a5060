// Package spaces implements descriptors for observation and action
// spaces. A Space describes the shape, bounds, and kind of the values
// that an environment consumes or produces, and can sample legal
// values from within its bounds.
//
// Spaces are immutable once constructed and are never mutated by the
// environments or preprocessing code that consume them.
package spaces

import "gonum.org/v1/gonum/mat"

// Space describes a space of actions or observations.
//
// Composite spaces (Dict, Tuple) treat their sub-spaces recursively.
// For example, calling Low() on a Dict space calls Low() on each of
// its sub-spaces and places all lower bounds in the returned slice
// sequentially.
type Space interface {
	// Shape returns the declared shape of values in the space. For
	// scalar spaces such as Discrete, Shape returns an empty slice.
	// For composite spaces, Shape returns nil since sub-spaces may
	// have differing shapes.
	Shape() []int

	// Sample takes a sample from within the space's bounds
	Sample() []*mat.VecDense

	// Contains returns whether x is in the space
	Contains(x interface{}) bool

	// Seed seeds the sampler for the space
	Seed(uint64)

	// Low returns the lower bounds of the space
	Low() []*mat.VecDense

	// High returns the upper bounds of the space
	High() []*mat.VecDense
}

func prod(ints []int) int {
	prod := 1
	for _, i := range ints {
		prod *= i
	}
	return prod
}
