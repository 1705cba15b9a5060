package spaces

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Discrete represents a space of discrete numbers: (0, 1, 2, ..., n-1)
type Discrete struct {
	rand.Source
	rng distuv.Categorical
	n   int
}

// NewDiscrete returns a new Discrete space with values in
// (0, 1, ..., n-1)
func NewDiscrete(n int) (*Discrete, error) {
	if n < 1 {
		return nil, fmt.Errorf("newDiscrete: n must be positive, got %v", n)
	}

	src := rand.NewSource(1)
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1.0
	}

	return &Discrete{
		Source: src,
		rng:    distuv.NewCategorical(weights, src),
		n:      n,
	}, nil
}

// N returns the number of values in the space
func (d *Discrete) N() int {
	return d.n
}

// Shape returns the declared shape of the space. Values in a
// Discrete space are scalars, so the shape is empty.
func (d *Discrete) Shape() []int {
	return []int{}
}

// Sample takes a sample from within the space's bounds
func (d *Discrete) Sample() []*mat.VecDense {
	value := float64(int(d.rng.Rand()) % d.n)
	return []*mat.VecDense{mat.NewVecDense(1, []float64{value})}
}

// Contains returns whether in is in the space. The argument in must
// be a float64, a []float64, or a *mat.VecDense holding a single
// element.
func (d *Discrete) Contains(in interface{}) bool {
	var x float64
	switch value := in.(type) {
	case float64:
		x = value
	case []float64:
		if len(value) != 1 {
			return false
		}
		x = value[0]
	case *mat.VecDense:
		if value.Len() != 1 {
			return false
		}
		x = value.AtVec(0)
	default:
		return false
	}
	intX := int(x)
	return intX >= 0 && intX < d.n
}

// Low returns the lower bounds of the space
func (d *Discrete) Low() []*mat.VecDense {
	return []*mat.VecDense{mat.NewVecDense(1, []float64{0.0})}
}

// High returns the upper bounds of the space
func (d *Discrete) High() []*mat.VecDense {
	return []*mat.VecDense{mat.NewVecDense(1, []float64{float64(d.n - 1)})}
}

// String implements the fmt.Stringer interface
func (d *Discrete) String() string {
	return fmt.Sprintf("Discrete(%d)", d.n)
}
