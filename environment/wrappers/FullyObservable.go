package wrappers

import (
	"fmt"

	"gorgonia.org/tensor"

	"github.com/samuelfneumann/govecenv/environment"
	"github.com/samuelfneumann/govecenv/spaces"
)

// FullGridder is implemented by grid environments that can describe
// their entire grid, not just the agent-centred partial view
type FullGridder interface {
	// FullObs returns an observation of the entire grid in the
	// current environment state
	FullObs() (environment.Observation, error)

	// FullObsSpace returns the observation space of full-grid
	// observations
	FullObsSpace() spaces.Space
}

// FullyObservable wraps a grid environment and replaces its
// agent-centred partial observations with observations of the entire
// grid. The wrapped environment must implement the FullGridder
// interface.
//
// FullyObservable itself implements the environment.Env interface and
// is therefore itself an environment.
type FullyObservable struct {
	environment.Env
	grid FullGridder
}

// NewFullyObservable wraps an existing grid environment
func NewFullyObservable(env environment.Env) (*FullyObservable, error) {
	grid, ok := env.(FullGridder)
	if !ok {
		return nil, fmt.Errorf("newFullyObservable: environment %v cannot "+
			"describe its full grid", env)
	}
	return &FullyObservable{Env: env, grid: grid}, nil
}

// ObservationSpace returns the observation space descriptor of the
// environment
func (f *FullyObservable) ObservationSpace() spaces.Space {
	return f.grid.FullObsSpace()
}

// Reset resets the environment to a starting state
func (f *FullyObservable) Reset() (environment.Observation,
	environment.Info, error) {
	_, info, err := f.Env.Reset()
	if err != nil {
		return environment.Observation{}, nil, err
	}

	obs, err := f.grid.FullObs()
	return obs, info, err
}

// Step takes a single environmental step given action a
func (f *FullyObservable) Step(a *tensor.Dense) (environment.Observation,
	float64, bool, bool, environment.Info, error) {
	_, reward, terminated, truncated, info, err := f.Env.Step(a)
	if err != nil {
		return environment.Observation{}, 0, false, false, nil, err
	}

	obs, err := f.grid.FullObs()
	return obs, reward, terminated, truncated, info, err
}

// String returns a string representation of the FullyObservable
// environment
func (f *FullyObservable) String() string {
	return fmt.Sprintf("FullyObservable: %v", f.Env)
}
