// Package environment outlines the interfaces and structs needed to
// implement and wrap concrete environments
package environment

import (
	"fmt"

	"gorgonia.org/tensor"

	"github.com/samuelfneumann/govecenv/spaces"
)

// Info holds auxiliary diagnostic information returned alongside
// observations from Reset and Step
type Info map[string]interface{}

// Observation is a single observation of an environment state. An
// Observation is either flat, holding a single dense tensor, or
// keyed, holding one dense tensor per named component of a Dict
// observation space. Exactly one of Tensor and Keyed is set.
type Observation struct {
	Tensor *tensor.Dense
	Keyed  map[string]*tensor.Dense
}

// FlatObs returns a flat Observation holding t
func FlatObs(t *tensor.Dense) Observation {
	return Observation{Tensor: t}
}

// KeyedObs returns a keyed Observation holding the named components
func KeyedObs(components map[string]*tensor.Dense) Observation {
	return Observation{Keyed: components}
}

// IsKeyed returns whether the Observation holds named components
func (o Observation) IsKeyed() bool {
	return o.Keyed != nil
}

// At returns the named component of a keyed Observation. A lookup of
// a component that does not exist is an error.
func (o Observation) At(key string) (*tensor.Dense, error) {
	component, ok := o.Keyed[key]
	if !ok {
		return nil, fmt.Errorf("at: observation has no %q component", key)
	}
	return component, nil
}

// Env implements a single simulated environment.
//
// An Env is single-threaded and synchronous: every call runs to
// completion or returns an error, and the only supported mode is a
// single caller stepping the environment between episodes.
type Env interface {
	// Reset resets the environment to a starting state and returns
	// the first observation of the new episode
	Reset() (Observation, Info, error)

	// Step takes a single environmental step given an action and
	// returns the next observation, the reward, whether the episode
	// terminated, and whether the episode was truncated
	Step(action *tensor.Dense) (Observation, float64, bool, bool, Info,
		error)

	// ObservationSpace returns the observation space descriptor of
	// the environment
	ObservationSpace() spaces.Space

	// ActionSpace returns the action space descriptor of the
	// environment
	ActionSpace() spaces.Space

	// Seed seeds the random number generators of the environment and
	// its spaces
	Seed(uint64)

	// Close performs resource cleanup after the environment is no
	// longer needed
	Close() error
}
