package vector

import (
	"fmt"

	"gorgonia.org/tensor"

	"github.com/samuelfneumann/govecenv/environment"
	"github.com/samuelfneumann/govecenv/preprocess"
	"github.com/samuelfneumann/govecenv/spaces"
	"github.com/samuelfneumann/govecenv/utils/tensorutils"
)

// FinalObservation is the info key under which SyncVectorEnv surfaces
// the final observations of sub-environments that ended during a Step
// call. The value is a []*tensor.Dense with one entry per
// sub-environment, nil for sub-environments whose episode continued.
const FinalObservation = "final_observation"

// SyncVectorEnv batches N independent environment instances and steps
// them sequentially within a single call. When a sub-environment's
// episode ends, it is reset immediately and the first observation of
// its new episode takes the ended episode's place in the returned
// batch; the final observation of the ended episode is surfaced in
// the step info under FinalObservation.
//
// All sub-environments must declare the same observation and action
// spaces as the first. Dict observation spaces cannot be batched into
// a single tensor and are rejected at construction.
type SyncVectorEnv struct {
	envs []environment.Env

	obsSpace   spaces.Space
	actSpace   spaces.Space
	obsShape   []int
	obsDtype   tensor.Dtype
	actionSize int
}

// NewSyncVectorEnv batches the given environment instances
func NewSyncVectorEnv(envs []environment.Env) (*SyncVectorEnv, error) {
	if len(envs) == 0 {
		return nil, fmt.Errorf("newSyncVectorEnv: no environments given")
	}

	obsSpace := envs[0].ObservationSpace()
	if _, ok := obsSpace.(*spaces.Dict); ok {
		return nil, fmt.Errorf("newSyncVectorEnv: %v observation space "+
			"cannot be batched into a single tensor", obsSpace)
	}

	obsShape, err := preprocess.ObservationShape(obsSpace)
	if err != nil {
		return nil, fmt.Errorf("newSyncVectorEnv: %v", err)
	}

	obsDtype := tensor.Float64
	if box, ok := obsSpace.(*spaces.Box); ok {
		obsDtype = box.Dtype()
	}

	actSpace := envs[0].ActionSpace()
	size, err := actionSize(actSpace)
	if err != nil {
		return nil, fmt.Errorf("newSyncVectorEnv: %v", err)
	}

	return &SyncVectorEnv{
		envs:       envs,
		obsSpace:   obsSpace,
		actSpace:   actSpace,
		obsShape:   obsShape.Shape,
		obsDtype:   obsDtype,
		actionSize: size,
	}, nil
}

// SingleObservationSpace returns the observation space descriptor of
// a single sub-environment
func (s *SyncVectorEnv) SingleObservationSpace() spaces.Space {
	return s.obsSpace
}

// SingleActionSpace returns the action space descriptor of a single
// sub-environment
func (s *SyncVectorEnv) SingleActionSpace() spaces.Space {
	return s.actSpace
}

// NumEnvs returns the number of sub-environments
func (s *SyncVectorEnv) NumEnvs() int {
	return len(s.envs)
}

// Seed seeds every sub-environment with seed offset by the
// sub-environment's index
func (s *SyncVectorEnv) Seed(seed uint64) {
	for i, env := range s.envs {
		env.Seed(seed + uint64(i))
	}
}

// Reset resets every sub-environment and returns the batched first
// observations
func (s *SyncVectorEnv) Reset() (*tensor.Dense, environment.Info, error) {
	batch := s.newBatch()

	for i, env := range s.envs {
		obs, _, err := env.Reset()
		if err != nil {
			return nil, nil, fmt.Errorf("reset: could not reset "+
				"environment %d: %v", i, err)
		}
		if err := tensorutils.SetRow(batch, obs.Tensor, i); err != nil {
			return nil, nil, fmt.Errorf("reset: could not batch "+
				"observation %d: %v", i, err)
		}
	}

	return batch, environment.Info{}, nil
}

// Step steps every sub-environment sequentially with its row of the
// batched actions. The actions tensor must have leading dimension N.
func (s *SyncVectorEnv) Step(actions *tensor.Dense) (*tensor.Dense,
	[]float64, []bool, []bool, environment.Info, error) {
	n := len(s.envs)
	if shape := actions.Shape(); shape[0] != n {
		return nil, nil, nil, nil, nil, fmt.Errorf("step: expected actions "+
			"with leading dimension %d, got shape %v", n, shape)
	}
	if total := actions.Shape().TotalSize(); total != n*s.actionSize {
		return nil, nil, nil, nil, nil, fmt.Errorf("step: expected %d "+
			"action elements, got %d", n*s.actionSize, total)
	}

	batch := s.newBatch()
	rewards := make([]float64, n)
	terminateds := make([]bool, n)
	truncateds := make([]bool, n)
	finals := make([]*tensor.Dense, n)
	ended := false

	for i, env := range s.envs {
		action, err := actionRow(actions, i, s.actionSize)
		if err != nil {
			return nil, nil, nil, nil, nil, fmt.Errorf("step: %v", err)
		}

		obs, reward, terminated, truncated, _, err := env.Step(action)
		if err != nil {
			return nil, nil, nil, nil, nil, fmt.Errorf("step: could not "+
				"step environment %d: %v", i, err)
		}

		// Autoreset: the first observation of the next episode takes
		// the ended episode's place in the batch
		if terminated || truncated {
			ended = true
			finals[i] = obs.Tensor
			obs, _, err = env.Reset()
			if err != nil {
				return nil, nil, nil, nil, nil, fmt.Errorf("step: could "+
					"not reset environment %d: %v", i, err)
			}
		}

		if err := tensorutils.SetRow(batch, obs.Tensor, i); err != nil {
			return nil, nil, nil, nil, nil, fmt.Errorf("step: could not "+
				"batch observation %d: %v", i, err)
		}
		rewards[i] = reward
		terminateds[i] = terminated
		truncateds[i] = truncated
	}

	info := environment.Info{}
	if ended {
		info[FinalObservation] = finals
	}

	return batch, rewards, terminateds, truncateds, info, nil
}

// Close performs resource cleanup for every sub-environment
func (s *SyncVectorEnv) Close() error {
	for i, env := range s.envs {
		if err := env.Close(); err != nil {
			return fmt.Errorf("close: could not close environment %d: %v",
				i, err)
		}
	}
	return nil
}

// newBatch allocates a zeroed observation batch with leading
// dimension N
func (s *SyncVectorEnv) newBatch() *tensor.Dense {
	shape := append([]int{len(s.envs)}, s.obsShape...)
	return tensor.New(tensor.Of(s.obsDtype), tensor.WithShape(shape...))
}

// actionRow extracts row i of the batched actions as a tensor of the
// single-environment action shape
func actionRow(actions *tensor.Dense, i, size int) (*tensor.Dense, error) {
	switch data := actions.Data().(type) {
	case []float64:
		out := make([]float64, size)
		copy(out, data[i*size:(i+1)*size])
		return tensor.New(tensor.WithShape(size),
			tensor.WithBacking(out)), nil
	case []float32:
		out := make([]float32, size)
		copy(out, data[i*size:(i+1)*size])
		return tensor.New(tensor.WithShape(size),
			tensor.WithBacking(out)), nil
	case []int:
		out := make([]int, size)
		copy(out, data[i*size:(i+1)*size])
		return tensor.New(tensor.WithShape(size),
			tensor.WithBacking(out)), nil
	default:
		return nil, fmt.Errorf("actionRow: cannot split actions with "+
			"backing data of type %T", data)
	}
}

// actionSize returns the flattened size of a single action
func actionSize(space spaces.Space) (int, error) {
	info, err := preprocess.ActionSpaceInfo(space)
	if err != nil {
		return 0, err
	}
	if info.Kind == preprocess.KindDiscrete {
		return 1, nil
	}
	return info.Dim, nil
}
