// Package vector implements vectorized environments: batches of
// independently stepped environment instances advanced together.
package vector

import (
	"gorgonia.org/tensor"

	"github.com/samuelfneumann/govecenv/environment"
	"github.com/samuelfneumann/govecenv/spaces"
)

// VectorEnv implements a batch of N independent environment
// instances exposing reset and step over batches of size N.
//
// A VectorEnv is single-threaded and synchronous: all N
// sub-environments are stepped sequentially within one call.
type VectorEnv interface {
	// Reset resets every sub-environment and returns the batched
	// first observations with leading dimension N
	Reset() (*tensor.Dense, environment.Info, error)

	// Step steps every sub-environment with its row of the batched
	// actions and returns the batched next observations along with
	// the per-environment rewards, termination flags, and truncation
	// flags
	Step(actions *tensor.Dense) (*tensor.Dense, []float64, []bool, []bool,
		environment.Info, error)

	// SingleObservationSpace returns the observation space descriptor
	// of a single sub-environment
	SingleObservationSpace() spaces.Space

	// SingleActionSpace returns the action space descriptor of a
	// single sub-environment
	SingleActionSpace() spaces.Space

	// NumEnvs returns the number of sub-environments
	NumEnvs() int

	// Seed seeds every sub-environment, offsetting the seed by the
	// sub-environment's index
	Seed(uint64)

	// Close performs resource cleanup for every sub-environment
	Close() error
}
