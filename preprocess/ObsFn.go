package preprocess

import (
	"fmt"

	"gorgonia.org/tensor"

	"github.com/samuelfneumann/govecenv/spaces"
	"github.com/samuelfneumann/govecenv/utils/tensorutils"
)

// ObsFunc maps a raw observation batch into the numeric tensor format
// expected by a downstream model
type ObsFunc func(*tensor.Dense) (*tensor.Dense, error)

// ObsPreprocessor selects, once per space, the preprocessing function
// for raw observation batches drawn from the space:
//
//   - image Box spaces are normalized to [0, 1] by dividing by 255
//   - other Box spaces are cast to float32
//   - Discrete(n) observations are one-hot encoded into n classes
//   - MultiDiscrete observations are one-hot encoded per component
//     and concatenated along the feature axis
//   - MultiBinary observations are cast to float32
//
// Any other space kind returns an error wrapping ErrNotImplemented.
func ObsPreprocessor(space spaces.Space) (ObsFunc, error) {
	switch s := space.(type) {
	case *spaces.Box:
		if IsImageSpace(s, false, false) {
			return normalizeImage, nil
		}
		return castFloat32, nil

	case *spaces.Discrete:
		n := s.N()
		return func(obs *tensor.Dense) (*tensor.Dense, error) {
			return oneHot(obs, n)
		}, nil

	case *spaces.MultiDiscrete:
		nvec := s.Nvec()
		return func(obs *tensor.Dense) (*tensor.Dense, error) {
			return multiOneHot(obs, nvec)
		}, nil

	case *spaces.MultiBinary:
		return castFloat32, nil

	default:
		return nil, fmt.Errorf("obsPreprocessor: %w for %v space",
			ErrNotImplemented, space)
	}
}

// normalizeImage maps image batches with values in [0, 255] to
// float32 batches with values in [0, 1]
func normalizeImage(obs *tensor.Dense) (*tensor.Dense, error) {
	data, err := tensorutils.Float32s(obs)
	if err != nil {
		return nil, fmt.Errorf("normalizeImage: %v", err)
	}

	out := make([]float32, len(data))
	for i, v := range data {
		out[i] = v / 255.0
	}
	return tensor.New(tensor.WithShape(obs.Shape()...),
		tensor.WithBacking(out)), nil
}

// castFloat32 casts a batch to float32 without further transformation
func castFloat32(obs *tensor.Dense) (*tensor.Dense, error) {
	data, err := tensorutils.Float32s(obs)
	if err != nil {
		return nil, fmt.Errorf("castFloat32: %v", err)
	}

	out := make([]float32, len(data))
	copy(out, data)
	return tensor.New(tensor.WithShape(obs.Shape()...),
		tensor.WithBacking(out)), nil
}

// oneHot encodes a batch of categorical values into one-hot rows of
// width classes. The batch may have shape (B,) or (B, 1).
func oneHot(obs *tensor.Dense, classes int) (*tensor.Dense, error) {
	values, err := tensorutils.Ints(obs)
	if err != nil {
		return nil, fmt.Errorf("oneHot: %v", err)
	}

	batch := len(values)
	out := make([]float32, batch*classes)
	for i, v := range values {
		if v < 0 || v >= classes {
			return nil, fmt.Errorf("oneHot: value %v at index %d outside "+
				"[0, %d)", v, i, classes)
		}
		out[i*classes+v] = 1.0
	}
	return tensor.New(tensor.WithShape(batch, classes),
		tensor.WithBacking(out)), nil
}

// multiOneHot encodes a batch of multi-component categorical values,
// one-hot encoding each component by its own class count and
// concatenating along the feature axis. The batch must have shape
// (B, len(nvec)); the result has shape (B, sum(nvec)).
func multiOneHot(obs *tensor.Dense, nvec []int) (*tensor.Dense, error) {
	shape := obs.Shape()
	if len(shape) != 2 || shape[1] != len(nvec) {
		return nil, fmt.Errorf("multiOneHot: batch shape %v does not match "+
			"%d components", shape, len(nvec))
	}

	values, err := tensorutils.Ints(obs)
	if err != nil {
		return nil, fmt.Errorf("multiOneHot: %v", err)
	}

	width := 0
	for _, n := range nvec {
		width += n
	}

	batch := shape[0]
	out := make([]float32, batch*width)
	for i := 0; i < batch; i++ {
		offset := 0
		for j, n := range nvec {
			v := values[i*len(nvec)+j]
			if v < 0 || v >= n {
				return nil, fmt.Errorf("multiOneHot: value %v in component "+
					"%d outside [0, %d)", v, j, n)
			}
			out[i*width+offset+v] = 1.0
			offset += n
		}
	}
	return tensor.New(tensor.WithShape(batch, width),
		tensor.WithBacking(out)), nil
}
