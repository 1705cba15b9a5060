package spaces

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// MultiDiscrete represents a product of Discrete spaces. Component i
// takes values in (0, 1, ..., nvec[i]-1).
type MultiDiscrete struct {
	rand.Source
	rngs []distuv.Categorical
	nvec []int
}

// NewMultiDiscrete returns a new MultiDiscrete space with the given
// number of values per component. Every component must have at least
// one value.
func NewMultiDiscrete(nvec []int) (*MultiDiscrete, error) {
	if len(nvec) == 0 {
		return nil, fmt.Errorf("newMultiDiscrete: no components given")
	}

	src := rand.NewSource(1)
	rngs := make([]distuv.Categorical, len(nvec))
	for i, n := range nvec {
		if n < 1 {
			return nil, fmt.Errorf("newMultiDiscrete: component %d must "+
				"have a positive number of values, got %v", i, n)
		}
		weights := make([]float64, n)
		for j := range weights {
			weights[j] = 1.0
		}
		rngs[i] = distuv.NewCategorical(weights, src)
	}

	return &MultiDiscrete{
		Source: src,
		rngs:   rngs,
		nvec:   append([]int(nil), nvec...),
	}, nil
}

// Nvec returns the number of values per component
func (m *MultiDiscrete) Nvec() []int {
	return append([]int(nil), m.nvec...)
}

// Shape returns the declared shape of the space
func (m *MultiDiscrete) Shape() []int {
	return []int{len(m.nvec)}
}

// Sample takes a sample from within the space's bounds
func (m *MultiDiscrete) Sample() []*mat.VecDense {
	sample := make([]float64, len(m.nvec))
	for i := range sample {
		sample[i] = float64(int(m.rngs[i].Rand()) % m.nvec[i])
	}
	return []*mat.VecDense{mat.NewVecDense(len(sample), sample)}
}

// Contains returns whether in is in the space. The argument in must
// be a []float64 or a *mat.VecDense with one element per component.
func (m *MultiDiscrete) Contains(in interface{}) bool {
	x, ok := in.([]float64)
	if !ok {
		vec, ok := in.(*mat.VecDense)
		if !ok {
			return false
		}
		x = vec.RawVector().Data
	}
	if len(x) != len(m.nvec) {
		return false
	}

	for i := range x {
		if intX := int(x[i]); intX < 0 || intX >= m.nvec[i] {
			return false
		}
	}
	return true
}

// Low returns the lower bounds of the space
func (m *MultiDiscrete) Low() []*mat.VecDense {
	return []*mat.VecDense{mat.NewVecDense(len(m.nvec), nil)}
}

// High returns the upper bounds of the space
func (m *MultiDiscrete) High() []*mat.VecDense {
	high := make([]float64, len(m.nvec))
	for i, n := range m.nvec {
		high[i] = float64(n - 1)
	}
	return []*mat.VecDense{mat.NewVecDense(len(high), high)}
}

// String implements the fmt.Stringer interface
func (m *MultiDiscrete) String() string {
	return fmt.Sprintf("MultiDiscrete%v", m.nvec)
}
