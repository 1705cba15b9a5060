package spaces

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Dict implements an ordered dictionary of simpler spaces. Keys are
// held in sorted order so that the layout of a Dict space does not
// depend on construction order.
//
// A Dict treats all the spaces it contains in a recursive manner.
// For example, when calling the High() method, the Dict calls each of
// its contained spaces' High() methods and returns a []*mat.VecDense
// resulting from the call to High() on all sub-spaces in recursive
// order.
type Dict struct {
	keys   []string
	values []Space
}

// NewDict returns a new Dict space holding the given sub-spaces
func NewDict(subSpaces map[string]Space) (*Dict, error) {
	if len(subSpaces) == 0 {
		return nil, fmt.Errorf("newDict: no sub-spaces given")
	}

	keys := make([]string, 0, len(subSpaces))
	for key := range subSpaces {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	values := make([]Space, len(keys))
	for i, key := range keys {
		if subSpaces[key] == nil {
			return nil, fmt.Errorf("newDict: nil sub-space at key %v", key)
		}
		values[i] = subSpaces[key]
	}

	return &Dict{keys: keys, values: values}, nil
}

// Keys returns the keys of the Dict in sorted order
func (d *Dict) Keys() []string {
	return append([]string(nil), d.keys...)
}

// Sub returns the sub-space stored at key, or nil if no such
// sub-space exists
func (d *Dict) Sub(key string) Space {
	for i := range d.keys {
		if d.keys[i] == key {
			return d.values[i]
		}
	}
	return nil
}

// Len returns the number of sub-spaces in the space
func (d *Dict) Len() int {
	return len(d.keys)
}

// Shape returns nil: sub-spaces of a Dict may have differing shapes
func (d *Dict) Shape() []int {
	return nil
}

// Seed seeds the samplers of all sub-spaces recursively
func (d *Dict) Seed(seed uint64) {
	for _, space := range d.values {
		space.Seed(seed)
	}
}

// Sample takes a sample from within the bounds of each sub-space. If
// a composite space exists in the Dict, its Sample() method is
// recursively called, and all samples are placed in the returned
// slice sequentially.
func (d *Dict) Sample() []*mat.VecDense {
	sample := make([]*mat.VecDense, 0, d.Len())
	for _, space := range d.values {
		sample = append(sample, space.Sample()...)
	}
	return sample
}

// Contains returns whether in is in the space. The argument in must
// be a map[string]interface{}, and each value must be compatible with
// the Contains method of the sub-space at the corresponding key.
func (d *Dict) Contains(in interface{}) bool {
	x, ok := in.(map[string]interface{})
	if !ok {
		return false
	}
	if len(x) != d.Len() {
		return false
	}

	for i, key := range d.keys {
		value, ok := x[key]
		if !ok {
			return false
		}
		if !d.values[i].Contains(value) {
			return false
		}
	}
	return true
}

// Low returns the lower bounds of the space. If a composite space
// exists in the Dict, its Low() method is called recursively, and
// all lower bounds are placed in the returned slice sequentially.
func (d *Dict) Low() []*mat.VecDense {
	low := make([]*mat.VecDense, 0, d.Len())
	for _, space := range d.values {
		low = append(low, space.Low()...)
	}
	return low
}

// High returns the upper bounds of the space. If a composite space
// exists in the Dict, its High() method is called recursively, and
// all upper bounds are placed in the returned slice sequentially.
func (d *Dict) High() []*mat.VecDense {
	high := make([]*mat.VecDense, 0, d.Len())
	for _, space := range d.values {
		high = append(high, space.High()...)
	}
	return high
}

// String implements the fmt.Stringer interface
func (d *Dict) String() string {
	var builder strings.Builder
	builder.WriteString("Dict(")
	for i, key := range d.keys {
		if i > 0 {
			builder.WriteString(", ")
		}
		fmt.Fprintf(&builder, "%v: %v", key, d.values[i])
	}
	builder.WriteString(")")
	return builder.String()
}
