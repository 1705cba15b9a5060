package wrappers_test

import (
	"testing"

	"gorgonia.org/tensor"

	"github.com/samuelfneumann/govecenv/environment/wrappers"
	"github.com/samuelfneumann/govecenv/minigrid"
	"github.com/samuelfneumann/govecenv/spaces"
)

// fullGridEnv returns a fully-observable grid environment for wrapper
// tests
func fullGridEnv(t *testing.T) (*minigrid.MiniGrid, *wrappers.FullyObservable) {
	t.Helper()

	base, err := minigrid.Make("MiniGrid-Empty-5x5-v0")
	if err != nil {
		t.Fatalf("make: %v", err)
	}
	base.Seed(10)

	full, err := wrappers.NewFullyObservable(base)
	if err != nil {
		t.Fatalf("newFullyObservable: %v", err)
	}
	return base, full
}

// turnLeft is a single turn-left action
func turnLeft() *tensor.Dense {
	return tensor.New(tensor.WithShape(1), tensor.WithBacking(
		[]float64{float64(minigrid.ActionTurnLeft)}))
}

func TestNewChannelFirst(t *testing.T) {
	_, full := fullGridEnv(t)

	env, err := wrappers.NewChannelFirst(full)
	if err != nil {
		t.Fatalf("newChannelFirst: %v", err)
	}

	box, ok := env.ObservationSpace().(*spaces.Box)
	if !ok {
		t.Fatalf("expected a Box observation space, got %v",
			env.ObservationSpace())
	}
	shape := box.Shape()
	if len(shape) != 3 || shape[0] != 3 || shape[1] != 5 || shape[2] != 5 {
		t.Errorf("expected shape [3 5 5], got %v", shape)
	}
	if box.Dtype() != tensor.Uint8 {
		t.Errorf("expected dtype %v, got %v", tensor.Uint8, box.Dtype())
	}
}

func TestChannelFirstObservation(t *testing.T) {
	base, full := fullGridEnv(t)

	env, err := wrappers.NewChannelFirst(full)
	if err != nil {
		t.Fatalf("newChannelFirst: %v", err)
	}

	obs, _, err := env.Reset()
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if obs.IsKeyed() {
		t.Fatal("expected a flat observation")
	}

	shape := obs.Tensor.Shape()
	if len(shape) != 3 || shape[0] != 3 || shape[1] != 5 || shape[2] != 5 {
		t.Fatalf("expected observation shape (3, 5, 5), got %v", shape)
	}

	// The transposed image must hold the same values as the grid's
	// (H, W, C) encoding
	raw, err := base.FullObs()
	if err != nil {
		t.Fatalf("fullObs: %v", err)
	}
	image, err := raw.At("image")
	if err != nil {
		t.Fatalf("at: %v", err)
	}

	in := image.Data().([]uint8)
	out := obs.Tensor.Data().([]uint8)
	h, w, c := 5, 5, 3
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			for k := 0; k < c; k++ {
				if out[k*h*w+i*w+j] != in[i*w*c+j*c+k] {
					t.Fatalf("transposed value at (%d, %d, %d) is %v, "+
						"expected %v", k, i, j, out[k*h*w+i*w+j],
						in[i*w*c+j*c+k])
				}
			}
		}
	}

	// Stepping produces transposed observations as well
	obs, _, _, _, _, err = env.Step(turnLeft())
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if !obs.Tensor.Shape().Eq(tensor.Shape{3, 5, 5}) {
		t.Errorf("expected observation shape (3, 5, 5), got %v",
			obs.Tensor.Shape())
	}
}

func TestNewChannelFirstRequiresImageDict(t *testing.T) {
	base, err := minigrid.Make("MiniGrid-Empty-5x5-v0")
	if err != nil {
		t.Fatalf("make: %v", err)
	}

	flat, err := wrappers.NewFlattenObservation(base)
	if err != nil {
		t.Fatalf("newFlattenObservation: %v", err)
	}

	if _, err := wrappers.NewChannelFirst(flat); err == nil {
		t.Error("expected an error for an environment without a Dict " +
			"observation space")
	}
}
