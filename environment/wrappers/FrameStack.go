package wrappers

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"

	"github.com/samuelfneumann/govecenv/environment"
	"github.com/samuelfneumann/govecenv/spaces"
	"github.com/samuelfneumann/govecenv/utils/tensorutils"
)

// FrameStack wraps an environment with image observations of shape
// (C, H, W) and concatenates the last k observations along the
// channel axis, producing observations of shape (k*C, H, W). On
// reset, the stack is filled with k copies of the first frame.
//
// FrameStack itself implements the environment.Env interface and is
// therefore itself an environment.
type FrameStack struct {
	environment.Env
	k        int
	frames   []*tensor.Dense
	obsSpace *spaces.Box
}

// NewFrameStack wraps an existing environment, which must declare a
// Box observation space of three axes, stacking the last k frames
func NewFrameStack(env environment.Env, k int) (*FrameStack, error) {
	if k < 1 {
		return nil, fmt.Errorf("newFrameStack: stack depth must be "+
			"positive, got %v", k)
	}

	box, ok := env.ObservationSpace().(*spaces.Box)
	if !ok {
		return nil, fmt.Errorf("newFrameStack: environment must have a Box "+
			"observation space, got %v", env.ObservationSpace())
	}

	shape := box.Shape()
	if len(shape) != 3 {
		return nil, fmt.Errorf("newFrameStack: image space must have 3 "+
			"axes, got shape %v", shape)
	}

	c, h, w := shape[0], shape[1], shape[2]
	low := tileBounds(box.Low()[0], k)
	high := tileBounds(box.High()[0], k)

	obsSpace, err := spaces.NewBox(low, high, []int{k * c, h, w}, box.Dtype())
	if err != nil {
		return nil, fmt.Errorf("newFrameStack: could not create "+
			"observation space: %v", err)
	}

	return &FrameStack{
		Env:      env,
		k:        k,
		frames:   make([]*tensor.Dense, k),
		obsSpace: obsSpace,
	}, nil
}

// ObservationSpace returns the observation space descriptor of the
// environment
func (f *FrameStack) ObservationSpace() spaces.Space {
	return f.obsSpace
}

// Reset resets the environment to a starting state and fills the
// frame stack with the first observation of the new episode
func (f *FrameStack) Reset() (environment.Observation, environment.Info,
	error) {
	obs, info, err := f.Env.Reset()
	if err != nil {
		return environment.Observation{}, nil, err
	}

	for i := range f.frames {
		f.frames[i] = obs.Tensor
	}

	stacked, err := f.observation()
	return stacked, info, err
}

// Step takes a single environmental step given action a, pushing the
// new frame onto the stack
func (f *FrameStack) Step(a *tensor.Dense) (environment.Observation,
	float64, bool, bool, environment.Info, error) {
	obs, reward, terminated, truncated, info, err := f.Env.Step(a)
	if err != nil {
		return environment.Observation{}, 0, false, false, nil, err
	}

	copy(f.frames, f.frames[1:])
	f.frames[f.k-1] = obs.Tensor

	stacked, err := f.observation()
	return stacked, reward, terminated, truncated, info, err
}

// observation concatenates the stacked frames along the channel axis
func (f *FrameStack) observation() (environment.Observation, error) {
	inner := f.frames[0].Shape()
	stack := tensor.New(tensor.Of(f.obsSpace.Dtype()),
		tensor.WithShape(append([]int{f.k}, inner...)...))

	for i, frame := range f.frames {
		if err := tensorutils.SetRow(stack, frame, i); err != nil {
			return environment.Observation{}, fmt.Errorf("observation: "+
				"could not stack frame %d: %v", i, err)
		}
	}

	if err := stack.Reshape(f.obsSpace.Shape()...); err != nil {
		return environment.Observation{}, fmt.Errorf("observation: could "+
			"not reshape stack: %v", err)
	}
	return environment.FlatObs(stack), nil
}

// tileBounds repeats a flattened bound vector k times
func tileBounds(bound *mat.VecDense, k int) *mat.VecDense {
	n := bound.Len()
	out := mat.NewVecDense(k*n, nil)
	for i := 0; i < k; i++ {
		for j := 0; j < n; j++ {
			out.SetVec(i*n+j, bound.AtVec(j))
		}
	}
	return out
}

// String returns a string representation of the FrameStack
// environment
func (f *FrameStack) String() string {
	return fmt.Sprintf("FrameStack(%d): %v", f.k, f.Env)
}
