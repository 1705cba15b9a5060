// Package preprocess normalizes heterogeneous space descriptions into
// canonical shapes, dimensions, and types usable by neural network
// policies, and selects preprocessing functions that map raw
// observation batches into the numeric tensor format expected by a
// downstream model.
//
// All functions in this package are pure and stateless. Only two
// errors are raised deliberately: ErrUnsupportedSpace when a space
// kind cannot be described, and ErrNotImplemented when no
// preprocessing exists for a space kind. Both are fatal to the
// current call.
package preprocess

import (
	"errors"
	"fmt"

	"github.com/samuelfneumann/govecenv/spaces"
)

// ErrUnsupportedSpace is returned when a space kind cannot be
// normalized into a canonical description.
var ErrUnsupportedSpace = errors.New("space is not supported")

// ErrNotImplemented is returned when no observation preprocessing
// exists for a space kind.
var ErrNotImplemented = errors.New("preprocessing not implemented")

// Kinds of action spaces reported by ActionSpaceInfo
const (
	KindBox           string = "Box"
	KindDiscrete      string = "Discrete"
	KindMultiDiscrete string = "MultiDiscrete"
	KindMultiBinary   string = "MultiBinary"
)

// ObsShape describes the shape of observations drawn from a space.
// For flat spaces, Shape holds the observation shape and Keys is nil.
// For Dict spaces, Keys holds the shape of each sub-space and Shape
// is nil.
type ObsShape struct {
	Shape []int
	Keys  map[string]ObsShape
}

// Size returns the total number of elements in a single observation
// with this shape
func (o ObsShape) Size() int {
	if o.Keys != nil {
		size := 0
		for _, sub := range o.Keys {
			size += sub.Size()
		}
		return size
	}

	size := 1
	for _, dim := range o.Shape {
		size *= dim
	}
	return size
}

// ObservationShape returns the canonical observation shape of a
// space. Box and MultiBinary spaces keep their declared shapes,
// Discrete spaces are described as single-element vectors,
// MultiDiscrete spaces as vectors with one element per component, and
// Dict spaces are processed recursively per key.
func ObservationShape(space spaces.Space) (ObsShape, error) {
	switch s := space.(type) {
	case *spaces.Box:
		return ObsShape{Shape: s.Shape()}, nil

	case *spaces.Discrete:
		// Observations are single integers
		return ObsShape{Shape: []int{1}}, nil

	case *spaces.MultiDiscrete:
		// Number of discrete features
		return ObsShape{Shape: []int{len(s.Nvec())}}, nil

	case *spaces.MultiBinary:
		// Number of binary features
		return ObsShape{Shape: s.Shape()}, nil

	case *spaces.Dict:
		keys := make(map[string]ObsShape, s.Len())
		for _, key := range s.Keys() {
			sub, err := ObservationShape(s.Sub(key))
			if err != nil {
				return ObsShape{}, err
			}
			keys[key] = sub
		}
		return ObsShape{Keys: keys}, nil

	default:
		return ObsShape{}, fmt.Errorf("observationShape: %v observation "+
			"%w", space, ErrUnsupportedSpace)
	}
}

// ActionInfo describes an action space in the canonical form consumed
// by model-construction code: the declared shape, the action
// dimension, the kind of the space, and the value range.
type ActionInfo struct {
	Shape []int
	Dim   int
	Kind  string
	Range [2]float64
}

// ActionSpaceInfo returns the canonical description of an action
// space.
//
// For Box and MultiDiscrete spaces, only the bounds of the first
// component are reported in Range. This is a documented
// simplification, not a bug.
func ActionSpaceInfo(space spaces.Space) (ActionInfo, error) {
	switch s := space.(type) {
	case *spaces.Discrete:
		return ActionInfo{
			Shape: s.Shape(),
			Dim:   s.N(),
			Kind:  KindDiscrete,
			Range: [2]float64{0, float64(s.N() - 1)},
		}, nil

	case *spaces.Box:
		return ActionInfo{
			Shape: s.Shape(),
			Dim:   s.Low()[0].Len(),
			Kind:  KindBox,
			Range: [2]float64{s.Low()[0].AtVec(0), s.High()[0].AtVec(0)},
		}, nil

	case *spaces.MultiDiscrete:
		nvec := s.Nvec()
		return ActionInfo{
			Shape: s.Shape(),
			Dim:   len(nvec),
			Kind:  KindMultiDiscrete,
			Range: [2]float64{0, float64(nvec[0] - 1)},
		}, nil

	case *spaces.MultiBinary:
		return ActionInfo{
			Shape: s.Shape(),
			Dim:   s.Shape()[0],
			Kind:  KindMultiBinary,
			Range: [2]float64{0, 1},
		}, nil

	default:
		return ActionInfo{}, fmt.Errorf("actionSpaceInfo: %v action %w",
			space, ErrUnsupportedSpace)
	}
}

// EnvInfo packages the canonical observation and action descriptions
// of an environment
type EnvInfo struct {
	ObsShape    ObsShape
	ActionShape []int
	ActionDim   int
	ActionKind  string
	ActionRange [2]float64
}

// NewEnvInfo composes ObservationShape and ActionSpaceInfo into a
// single environment description
func NewEnvInfo(obsSpace, actionSpace spaces.Space) (EnvInfo, error) {
	obsShape, err := ObservationShape(obsSpace)
	if err != nil {
		return EnvInfo{}, fmt.Errorf("newEnvInfo: %w", err)
	}

	actionInfo, err := ActionSpaceInfo(actionSpace)
	if err != nil {
		return EnvInfo{}, fmt.Errorf("newEnvInfo: %w", err)
	}

	return EnvInfo{
		ObsShape:    obsShape,
		ActionShape: actionInfo.Shape,
		ActionDim:   actionInfo.Dim,
		ActionKind:  actionInfo.Kind,
		ActionRange: actionInfo.Range,
	}, nil
}

// FlatDim returns the dimension of an observation space when
// flattened into a single vector. MultiDiscrete spaces flatten to one
// element per class over all components; all other supported spaces
// flatten to the total element count of their canonical shape.
// FlatDim does not apply to image observation spaces.
func FlatDim(space spaces.Space) (int, error) {
	if s, ok := space.(*spaces.MultiDiscrete); ok {
		dim := 0
		for _, n := range s.Nvec() {
			dim += n
		}
		return dim, nil
	}

	shape, err := ObservationShape(space)
	if err != nil {
		return 0, fmt.Errorf("flatDim: %w", err)
	}
	return shape.Size(), nil
}
