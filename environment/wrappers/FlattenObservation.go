package wrappers

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"

	"github.com/samuelfneumann/govecenv/environment"
	"github.com/samuelfneumann/govecenv/preprocess"
	"github.com/samuelfneumann/govecenv/spaces"
	"github.com/samuelfneumann/govecenv/utils/tensorutils"
)

// FlattenObservation wraps an environment and flattens its
// observations into a single float64 vector. Keyed observations are
// flattened component by component in the key order of the Dict
// observation space.
//
// The observation space of a FlattenObservation is always a Box.
//
// FlattenObservation itself implements the environment.Env interface
// and is therefore itself an environment.
type FlattenObservation struct {
	environment.Env
	keys     []string
	obsSpace *spaces.Box
}

// NewFlattenObservation wraps an existing environment, flattening its
// state observations
func NewFlattenObservation(env environment.Env) (*FlattenObservation,
	error) {
	inner := env.ObservationSpace()

	shape, err := preprocess.ObservationShape(inner)
	if err != nil {
		return nil, fmt.Errorf("newFlattenObservation: %v", err)
	}
	dim := shape.Size()

	low := concatBounds(inner.Low(), dim)
	high := concatBounds(inner.High(), dim)
	if low == nil || high == nil {
		return nil, fmt.Errorf("newFlattenObservation: space %v bounds do "+
			"not match flattened dimension %v", inner, dim)
	}

	obsSpace, err := spaces.NewBox(low, high, []int{dim}, tensor.Float64)
	if err != nil {
		return nil, fmt.Errorf("newFlattenObservation: could not create "+
			"observation space: %v", err)
	}

	var keys []string
	if dict, ok := inner.(*spaces.Dict); ok {
		keys = dict.Keys()
	}

	return &FlattenObservation{
		Env:      env,
		keys:     keys,
		obsSpace: obsSpace,
	}, nil
}

// ObservationSpace returns the observation space descriptor of the
// environment
func (f *FlattenObservation) ObservationSpace() spaces.Space {
	return f.obsSpace
}

// Reset resets the environment to a starting state
func (f *FlattenObservation) Reset() (environment.Observation,
	environment.Info, error) {
	obs, info, err := f.Env.Reset()
	if err != nil {
		return environment.Observation{}, nil, err
	}

	obs, err = f.observation(obs)
	return obs, info, err
}

// Step takes a single environmental step given action a
func (f *FlattenObservation) Step(a *tensor.Dense) (
	environment.Observation, float64, bool, bool, environment.Info, error) {
	obs, reward, terminated, truncated, info, err := f.Env.Step(a)
	if err != nil {
		return environment.Observation{}, 0, false, false, nil, err
	}

	obs, err = f.observation(obs)
	return obs, reward, terminated, truncated, info, err
}

// observation flattens an observation into a single float64 vector
func (f *FlattenObservation) observation(obs environment.Observation) (
	environment.Observation, error) {
	var flat []float64

	if obs.IsKeyed() {
		for _, key := range f.keys {
			component, err := obs.At(key)
			if err != nil {
				return environment.Observation{}, fmt.Errorf(
					"observation: %v", err)
			}
			data, err := tensorutils.Float64s(component)
			if err != nil {
				return environment.Observation{}, fmt.Errorf(
					"observation: %v", err)
			}
			flat = append(flat, data...)
		}
	} else {
		data, err := tensorutils.Float64s(obs.Tensor)
		if err != nil {
			return environment.Observation{}, fmt.Errorf("observation: %v",
				err)
		}
		flat = append(flat, data...)
	}

	if len(flat) != f.obsSpace.Shape()[0] {
		return environment.Observation{}, fmt.Errorf("observation: "+
			"observation has %v elements but space %v declares %v",
			len(flat), f.obsSpace, f.obsSpace.Shape()[0])
	}
	return environment.FlatObs(tensor.New(tensor.WithShape(len(flat)),
		tensor.WithBacking(flat))), nil
}

// concatBounds flattens per-component bound vectors into a single
// vector of length dim, or returns nil if the lengths do not add up
func concatBounds(bounds []*mat.VecDense, dim int) *mat.VecDense {
	out := mat.NewVecDense(dim, nil)
	i := 0
	for _, bound := range bounds {
		for j := 0; j < bound.Len(); j++ {
			if i >= dim {
				return nil
			}
			out.SetVec(i, bound.AtVec(j))
			i++
		}
	}
	if i != dim {
		return nil
	}
	return out
}

// String returns a string representation of the FlattenObservation
// environment
func (f *FlattenObservation) String() string {
	return fmt.Sprintf("FlattenObservation: %v", f.Env)
}
