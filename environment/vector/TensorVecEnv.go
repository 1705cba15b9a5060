package vector

import (
	"fmt"

	"gorgonia.org/tensor"

	"github.com/samuelfneumann/govecenv/environment"
	"github.com/samuelfneumann/govecenv/spaces"
	"github.com/samuelfneumann/govecenv/utils/tensorutils"
)

// TensorVecEnv wraps a vectorized environment and converts its
// outputs into dense tensors materialized on a configured compute
// device. Rewards and the terminated/truncated flags are returned as
// float32 column tensors of shape (N, 1), with flags encoded as
// 1.0/0.0.
//
// TensorVecEnv performs no computation of its own: it only converts
// layout and representation.
type TensorVecEnv struct {
	env    VectorEnv
	device environment.Device
	engine tensor.Engine
}

// NewTensorVecEnv wraps an existing vectorized environment, placing
// all returned tensors on the given device. Construction fails if the
// device cannot materialize tensors in this build.
func NewTensorVecEnv(env VectorEnv, device environment.Device) (
	*TensorVecEnv, error) {
	engine, err := device.Engine()
	if err != nil {
		return nil, fmt.Errorf("newTensorVecEnv: %v", err)
	}

	return &TensorVecEnv{
		env:    env,
		device: device,
		engine: engine,
	}, nil
}

// ObservationSpace returns the observation space descriptor of a
// single sub-environment
func (t *TensorVecEnv) ObservationSpace() spaces.Space {
	return t.env.SingleObservationSpace()
}

// ActionSpace returns the action space descriptor of a single
// sub-environment
func (t *TensorVecEnv) ActionSpace() spaces.Space {
	return t.env.SingleActionSpace()
}

// NumEnvs returns the number of sub-environments
func (t *TensorVecEnv) NumEnvs() int {
	return t.env.NumEnvs()
}

// Device returns the device on which returned tensors are
// materialized
func (t *TensorVecEnv) Device() environment.Device {
	return t.device
}

// Seed seeds every sub-environment, offsetting the seed by the
// sub-environment's index
func (t *TensorVecEnv) Seed(seed uint64) {
	t.env.Seed(seed)
}

// Reset resets every sub-environment and returns the batched first
// observations on the configured device
func (t *TensorVecEnv) Reset() (*tensor.Dense, environment.Info, error) {
	obs, info, err := t.env.Reset()
	if err != nil {
		return nil, nil, fmt.Errorf("reset: %v", err)
	}
	return t.onDevice(obs), info, nil
}

// Step steps every sub-environment with the batched actions. A
// redundant trailing action dimension of size one is squeezed before
// delegating. The returned reward, terminated, and truncated tensors
// have shape (N, 1) and dtype float32.
func (t *TensorVecEnv) Step(actions *tensor.Dense) (*tensor.Dense,
	*tensor.Dense, *tensor.Dense, *tensor.Dense, environment.Info, error) {
	if actions.Dims() == 2 && actions.Shape()[1] == 1 {
		view, err := actions.Slice(nil, tensorutils.NewSlice(0, 1, 1))
		if err != nil {
			return nil, nil, nil, nil, nil, fmt.Errorf("step: could not "+
				"squeeze actions: %v", err)
		}
		squeezed, ok := view.Materialize().(*tensor.Dense)
		if !ok {
			return nil, nil, nil, nil, nil, fmt.Errorf("step: could not " +
				"materialize squeezed actions")
		}
		actions = squeezed
	}

	obs, rewards, terminateds, truncateds, info, err := t.env.Step(actions)
	if err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("step: %v", err)
	}

	return t.onDevice(obs), t.column(rewards), t.flagColumn(terminateds),
		t.flagColumn(truncateds), info, nil
}

// Close performs resource cleanup for every sub-environment
func (t *TensorVecEnv) Close() error {
	return t.env.Close()
}

// onDevice materializes a tensor on the configured device
func (t *TensorVecEnv) onDevice(batch *tensor.Dense) *tensor.Dense {
	return tensor.New(tensor.WithShape(batch.Shape()...),
		tensor.WithBacking(batch.Data()), tensor.WithEngine(t.engine))
}

// column converts per-environment values into a float32 column tensor
// of shape (N, 1) on the configured device
func (t *TensorVecEnv) column(values []float64) *tensor.Dense {
	backing := make([]float32, len(values))
	for i, v := range values {
		backing[i] = float32(v)
	}
	return tensor.New(tensor.WithShape(len(values), 1),
		tensor.WithBacking(backing), tensor.WithEngine(t.engine))
}

// flagColumn converts per-environment flags into a float32 column
// tensor of shape (N, 1) on the configured device, encoding true as
// 1.0 and false as 0.0
func (t *TensorVecEnv) flagColumn(flags []bool) *tensor.Dense {
	backing := make([]float32, len(flags))
	for i, flag := range flags {
		if flag {
			backing[i] = 1.0
		}
	}
	return tensor.New(tensor.WithShape(len(flags), 1),
		tensor.WithBacking(backing), tensor.WithEngine(t.engine))
}
