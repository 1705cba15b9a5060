package spaces

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// MultiBinary represents a space of n binary features, each taking
// values in {0, 1}
type MultiBinary struct {
	rand.Source
	rng distuv.Bernoulli
	n   int
}

// NewMultiBinary returns a new MultiBinary space with n binary
// features
func NewMultiBinary(n int) (*MultiBinary, error) {
	if n < 1 {
		return nil, fmt.Errorf("newMultiBinary: n must be positive, got %v", n)
	}

	src := rand.NewSource(1)
	return &MultiBinary{
		Source: src,
		rng:    distuv.Bernoulli{P: 0.5, Src: src},
		n:      n,
	}, nil
}

// Shape returns the declared shape of the space
func (m *MultiBinary) Shape() []int {
	return []int{m.n}
}

// Sample takes a sample from within the space's bounds
func (m *MultiBinary) Sample() []*mat.VecDense {
	sample := make([]float64, m.n)
	for i := range sample {
		sample[i] = m.rng.Rand()
	}
	return []*mat.VecDense{mat.NewVecDense(len(sample), sample)}
}

// Contains returns whether in is in the space. The argument in must
// be a []float64 or a *mat.VecDense with one element per feature.
func (m *MultiBinary) Contains(in interface{}) bool {
	x, ok := in.([]float64)
	if !ok {
		vec, ok := in.(*mat.VecDense)
		if !ok {
			return false
		}
		x = vec.RawVector().Data
	}
	if len(x) != m.n {
		return false
	}

	for i := range x {
		if x[i] != 0.0 && x[i] != 1.0 {
			return false
		}
	}
	return true
}

// Low returns the lower bounds of the space
func (m *MultiBinary) Low() []*mat.VecDense {
	return []*mat.VecDense{mat.NewVecDense(m.n, nil)}
}

// High returns the upper bounds of the space
func (m *MultiBinary) High() []*mat.VecDense {
	high := make([]float64, m.n)
	for i := range high {
		high[i] = 1.0
	}
	return []*mat.VecDense{mat.NewVecDense(len(high), high)}
}

// String implements the fmt.Stringer interface
func (m *MultiBinary) String() string {
	return fmt.Sprintf("MultiBinary(%d)", m.n)
}
