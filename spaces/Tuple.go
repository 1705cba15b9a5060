package spaces

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Tuple implements a tuple (i.e., product) of simpler spaces.
//
// A Tuple treats all the spaces it contains in a recursive manner.
// For example, when calling the High() method, the Tuple calls each
// of its contained spaces' High() methods and returns a
// []*mat.VecDense resulting from the call to High() on all sub-spaces
// in recursive order.
type Tuple struct {
	spaces []Space
}

// NewTuple returns a new Tuple space holding the given sub-spaces
func NewTuple(subSpaces ...Space) (*Tuple, error) {
	if len(subSpaces) == 0 {
		return nil, fmt.Errorf("newTuple: no sub-spaces given")
	}
	for i, space := range subSpaces {
		if space == nil {
			return nil, fmt.Errorf("newTuple: nil sub-space at index %d", i)
		}
	}
	return &Tuple{spaces: append([]Space(nil), subSpaces...)}, nil
}

// Len returns the number of sub-spaces in the space
func (t *Tuple) Len() int {
	return len(t.spaces)
}

// At returns the sub-space at index i
func (t *Tuple) At(i int) Space {
	return t.spaces[i]
}

// Shape returns nil: sub-spaces of a Tuple may have differing shapes
func (t *Tuple) Shape() []int {
	return nil
}

// Seed seeds the samplers of all sub-spaces recursively
func (t *Tuple) Seed(seed uint64) {
	for _, space := range t.spaces {
		space.Seed(seed)
	}
}

// Sample takes a sample from within the bounds of each sub-space. If
// a composite space exists in the Tuple, its Sample() method is
// recursively called, and all samples are placed in the returned
// slice sequentially.
func (t *Tuple) Sample() []*mat.VecDense {
	sample := make([]*mat.VecDense, 0, t.Len())
	for _, space := range t.spaces {
		sample = append(sample, space.Sample()...)
	}
	return sample
}

// Contains returns whether in is in the space. The argument in must
// be a []interface{} with one element per sub-space, and each element
// must be compatible with the Contains method of the corresponding
// sub-space.
func (t *Tuple) Contains(in interface{}) bool {
	x, ok := in.([]interface{})
	if !ok {
		return false
	}
	if len(x) != t.Len() {
		return false
	}

	for i := range x {
		if !t.spaces[i].Contains(x[i]) {
			return false
		}
	}
	return true
}

// Low returns the lower bounds of the space. If a composite space
// exists in the Tuple, its Low() method is called recursively, and
// all lower bounds are placed in the returned slice sequentially.
func (t *Tuple) Low() []*mat.VecDense {
	low := make([]*mat.VecDense, 0, t.Len())
	for _, space := range t.spaces {
		low = append(low, space.Low()...)
	}
	return low
}

// High returns the upper bounds of the space. If a composite space
// exists in the Tuple, its High() method is called recursively, and
// all upper bounds are placed in the returned slice sequentially.
func (t *Tuple) High() []*mat.VecDense {
	high := make([]*mat.VecDense, 0, t.Len())
	for _, space := range t.spaces {
		high = append(high, space.High()...)
	}
	return high
}

// String implements the fmt.Stringer interface
func (t *Tuple) String() string {
	var builder strings.Builder
	builder.WriteString("Tuple(")
	for i, space := range t.spaces {
		if i > 0 {
			builder.WriteString(", ")
		}
		fmt.Fprintf(&builder, "%v", space)
	}
	builder.WriteString(")")
	return builder.String()
}
