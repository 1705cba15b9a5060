package spaces

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"
	"gorgonia.org/tensor"
)

// Box represents a (possibly unbounded) box in R^n. Specifically, a
// Box represents the Cartesian product of n closed intervals. Each
// interval has the form of one of [a, b], (-∞, b], [a, ∞), or
// (-∞, ∞) for a, b ϵ R.
//
// The bounds of a Box are stored flattened in row-major order, so
// that the bound of element (i, j, k) of a Box with shape (I, J, K)
// is at index i*J*K + j*K + k of the bound vectors.
type Box struct {
	rand.Source
	rng       *distmv.Uniform
	shape     []int
	low, high *mat.VecDense
	dtype     tensor.Dtype
}

// NewBox returns a new Box with the given elementwise bounds, shape,
// and data type. The bound vectors must have exactly as many elements
// as the shape implies.
func NewBox(low, high *mat.VecDense, shape []int, dtype tensor.Dtype) (*Box,
	error) {
	if len(shape) == 0 {
		return nil, fmt.Errorf("newBox: no shape given")
	}
	if n := prod(shape); low.Len() != n || high.Len() != n {
		return nil, fmt.Errorf("newBox: shape %v implies %v bounds but got "+
			"(%v, %v)", shape, n, low.Len(), high.Len())
	}
	for i := 0; i < low.Len(); i++ {
		if low.AtVec(i) > high.AtVec(i) {
			return nil, fmt.Errorf("newBox: lower bound %v at index %d "+
				"exceeds upper bound %v", low.AtVec(i), i, high.AtVec(i))
		}
	}

	src := rand.NewSource(1)
	bounds := make([]r1.Interval, low.Len())
	for i := range bounds {
		bounds[i] = r1.Interval{Min: low.AtVec(i), Max: high.AtVec(i)}
	}

	return &Box{
		Source: src,
		rng:    distmv.NewUniform(bounds, src),
		shape:  append([]int(nil), shape...),
		low:    low,
		high:   high,
		dtype:  dtype,
	}, nil
}

// NewUniformBox returns a new Box whose elements share a single
// [low, high] bound.
func NewUniformBox(low, high float64, shape []int, dtype tensor.Dtype) (*Box,
	error) {
	n := prod(shape)
	if n < 1 {
		return nil, fmt.Errorf("newUniformBox: illegal shape %v", shape)
	}
	lowVec := mat.NewVecDense(n, nil)
	highVec := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		lowVec.SetVec(i, low)
		highVec.SetVec(i, high)
	}
	return NewBox(lowVec, highVec, shape, dtype)
}

// Shape returns the declared shape of the space
func (b *Box) Shape() []int {
	return append([]int(nil), b.shape...)
}

// Dtype returns the data type of values in the space
func (b *Box) Dtype() tensor.Dtype {
	return b.dtype
}

// Sample takes a sample from within the space's bounds
func (b *Box) Sample() []*mat.VecDense {
	sample := b.rng.Rand(nil)
	return []*mat.VecDense{mat.NewVecDense(len(sample), sample)}
}

// Contains returns whether in is in the space. The argument in must
// be either a []float64 or a *mat.VecDense with the flattened length
// of the space.
func (b *Box) Contains(in interface{}) bool {
	x, ok := in.([]float64)
	if !ok {
		vec, ok := in.(*mat.VecDense)
		if !ok {
			return false
		}
		x = vec.RawVector().Data
	}
	if len(x) != b.low.Len() {
		return false
	}

	for i := range x {
		if x[i] < b.low.AtVec(i) || x[i] > b.high.AtVec(i) {
			return false
		}
	}
	return true
}

// Low returns the lower bounds of the space
func (b *Box) Low() []*mat.VecDense {
	return []*mat.VecDense{b.low}
}

// High returns the upper bounds of the space
func (b *Box) High() []*mat.VecDense {
	return []*mat.VecDense{b.high}
}

// String implements the fmt.Stringer interface
func (b *Box) String() string {
	return fmt.Sprintf("Box%v", b.shape)
}
