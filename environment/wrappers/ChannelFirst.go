// Package wrappers provides wrappers for environments
package wrappers

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"

	"github.com/samuelfneumann/govecenv/environment"
	"github.com/samuelfneumann/govecenv/spaces"
)

// ChannelFirst wraps an environment whose observations are
// dictionaries containing an "image" component of shape (H, W, C)
// with values in [0, 255], and produces an environment whose
// observation space is a Box of shape (C, H, W) and whose
// observations are the transposed images.
//
// ChannelFirst itself implements the environment.Env interface and is
// therefore itself an environment.
type ChannelFirst struct {
	environment.Env
	obsSpace *spaces.Box
}

// NewChannelFirst wraps an existing environment, which must declare a
// Dict observation space with an "image" Box sub-space of three axes
func NewChannelFirst(env environment.Env) (*ChannelFirst, error) {
	dict, ok := env.ObservationSpace().(*spaces.Dict)
	if !ok {
		return nil, fmt.Errorf("newChannelFirst: environment must have a "+
			"Dict observation space, got %v", env.ObservationSpace())
	}

	image, ok := dict.Sub("image").(*spaces.Box)
	if !ok {
		return nil, fmt.Errorf("newChannelFirst: observation space %v has "+
			"no image Box sub-space", dict)
	}

	shape := image.Shape()
	if len(shape) != 3 {
		return nil, fmt.Errorf("newChannelFirst: image space must have 3 "+
			"axes, got shape %v", shape)
	}

	h, w, c := shape[0], shape[1], shape[2]
	low := permuteBounds(image.Low()[0], h, w, c)
	high := permuteBounds(image.High()[0], h, w, c)

	obsSpace, err := spaces.NewBox(low, high, []int{c, h, w}, image.Dtype())
	if err != nil {
		return nil, fmt.Errorf("newChannelFirst: could not create "+
			"observation space: %v", err)
	}

	return &ChannelFirst{Env: env, obsSpace: obsSpace}, nil
}

// ObservationSpace returns the observation space descriptor of the
// environment
func (c *ChannelFirst) ObservationSpace() spaces.Space {
	return c.obsSpace
}

// Reset resets the environment to a starting state
func (c *ChannelFirst) Reset() (environment.Observation, environment.Info,
	error) {
	obs, info, err := c.Env.Reset()
	if err != nil {
		return environment.Observation{}, nil, err
	}

	obs, err = c.observation(obs)
	return obs, info, err
}

// Step takes a single environmental step given action a
func (c *ChannelFirst) Step(a *tensor.Dense) (environment.Observation,
	float64, bool, bool, environment.Info, error) {
	obs, reward, terminated, truncated, info, err := c.Env.Step(a)
	if err != nil {
		return environment.Observation{}, 0, false, false, nil, err
	}

	obs, err = c.observation(obs)
	return obs, reward, terminated, truncated, info, err
}

// observation transposes the image component of a keyed observation
// from (H, W, C) to (C, H, W)
func (c *ChannelFirst) observation(obs environment.Observation) (
	environment.Observation, error) {
	image, err := obs.At("image")
	if err != nil {
		return environment.Observation{}, fmt.Errorf("observation: %v", err)
	}

	transposed, err := transposeHWC(image)
	if err != nil {
		return environment.Observation{}, fmt.Errorf("observation: %v", err)
	}
	return environment.FlatObs(transposed), nil
}

// transposeHWC transposes a (H, W, C) image tensor to (C, H, W)
func transposeHWC(image *tensor.Dense) (*tensor.Dense, error) {
	shape := image.Shape()
	if len(shape) != 3 {
		return nil, fmt.Errorf("transposeHWC: image must have 3 axes, got "+
			"shape %v", shape)
	}
	h, w, c := shape[0], shape[1], shape[2]

	switch data := image.Data().(type) {
	case []uint8:
		out := make([]uint8, len(data))
		for i := 0; i < h; i++ {
			for j := 0; j < w; j++ {
				for k := 0; k < c; k++ {
					out[k*h*w+i*w+j] = data[i*w*c+j*c+k]
				}
			}
		}
		return tensor.New(tensor.WithShape(c, h, w),
			tensor.WithBacking(out)), nil

	case []float32:
		out := make([]float32, len(data))
		for i := 0; i < h; i++ {
			for j := 0; j < w; j++ {
				for k := 0; k < c; k++ {
					out[k*h*w+i*w+j] = data[i*w*c+j*c+k]
				}
			}
		}
		return tensor.New(tensor.WithShape(c, h, w),
			tensor.WithBacking(out)), nil

	case []float64:
		out := make([]float64, len(data))
		for i := 0; i < h; i++ {
			for j := 0; j < w; j++ {
				for k := 0; k < c; k++ {
					out[k*h*w+i*w+j] = data[i*w*c+j*c+k]
				}
			}
		}
		return tensor.New(tensor.WithShape(c, h, w),
			tensor.WithBacking(out)), nil

	default:
		return nil, fmt.Errorf("transposeHWC: cannot transpose backing "+
			"data of type %T", data)
	}
}

// permuteBounds reorders a flattened (H, W, C) bound vector into the
// flattened (C, H, W) ordering
func permuteBounds(bound *mat.VecDense, h, w, c int) *mat.VecDense {
	out := mat.NewVecDense(bound.Len(), nil)
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			for k := 0; k < c; k++ {
				out.SetVec(k*h*w+i*w+j, bound.AtVec(i*w*c+j*c+k))
			}
		}
	}
	return out
}

// String returns a string representation of the ChannelFirst
// environment
func (c *ChannelFirst) String() string {
	return fmt.Sprintf("ChannelFirst: %v", c.Env)
}
