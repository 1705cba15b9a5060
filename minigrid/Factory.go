package minigrid

import (
	"fmt"

	"github.com/samuelfneumann/govecenv/environment"
	"github.com/samuelfneumann/govecenv/environment/vector"
	"github.com/samuelfneumann/govecenv/environment/wrappers"
)

// MakeVecEnv constructs numEnvs independently seeded instances of the
// grid-world task registered under id, wraps them for consumption by
// a tensor-based learner, and batches them into a single vectorized
// environment with episode-statistics bookkeeping on the given
// device.
//
// When fullyObservable is true, each instance observes the entire
// grid as a channel-first image with the last frameStack frames
// stacked along the channel axis. Otherwise each instance's
// observation is flattened into a single vector.
//
// The seed of instance i is offset by i. Any construction failure for
// any instance aborts the whole call.
func MakeVecEnv(id string, numEnvs int, fullyObservable bool, seed uint64,
	frameStack int, device environment.Device) (*vector.TensorVecEnv,
	error) {
	if numEnvs < 1 {
		return nil, fmt.Errorf("makeVecEnv: number of environments must "+
			"be positive, got %v", numEnvs)
	}
	if frameStack < 1 {
		return nil, fmt.Errorf("makeVecEnv: frame stack depth must be "+
			"positive, got %v", frameStack)
	}

	envs := make([]environment.Env, numEnvs)
	for i := range envs {
		env, err := makeEnv(id, fullyObservable, seed+uint64(i), frameStack)
		if err != nil {
			return nil, fmt.Errorf("makeVecEnv: could not create "+
				"environment %d: %v", i, err)
		}
		envs[i] = env
	}

	sync, err := vector.NewSyncVectorEnv(envs)
	if err != nil {
		return nil, fmt.Errorf("makeVecEnv: %v", err)
	}

	return vector.NewTensorVecEnv(vector.NewRecordEpisodeStatistics(sync),
		device)
}

// makeEnv constructs and wraps a single grid-world instance
func makeEnv(id string, fullyObservable bool, seed uint64,
	frameStack int) (environment.Env, error) {
	base, err := Make(id)
	if err != nil {
		return nil, err
	}
	base.Seed(seed)

	if !fullyObservable {
		return wrappers.NewFlattenObservation(base)
	}

	full, err := wrappers.NewFullyObservable(base)
	if err != nil {
		return nil, err
	}

	image, err := wrappers.NewChannelFirst(full)
	if err != nil {
		return nil, err
	}

	return wrappers.NewFrameStack(image, frameStack)
}
