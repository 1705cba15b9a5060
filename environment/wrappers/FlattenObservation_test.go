package wrappers_test

import (
	"testing"

	"gorgonia.org/tensor"

	"github.com/samuelfneumann/govecenv/environment/wrappers"
	"github.com/samuelfneumann/govecenv/minigrid"
	"github.com/samuelfneumann/govecenv/spaces"
)

func TestNewFlattenObservation(t *testing.T) {
	base, err := minigrid.Make("MiniGrid-Empty-5x5-v0")
	if err != nil {
		t.Fatalf("make: %v", err)
	}
	base.Seed(10)

	env, err := wrappers.NewFlattenObservation(base)
	if err != nil {
		t.Fatalf("newFlattenObservation: %v", err)
	}

	// A 7x7x3 encoded view plus the agent's heading
	dim := 7*7*3 + 1
	box, ok := env.ObservationSpace().(*spaces.Box)
	if !ok {
		t.Fatalf("expected a Box observation space, got %v",
			env.ObservationSpace())
	}
	if shape := box.Shape(); len(shape) != 1 || shape[0] != dim {
		t.Errorf("expected shape [%v], got %v", dim, shape)
	}

	obs, _, err := env.Reset()
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if obs.IsKeyed() {
		t.Fatal("expected a flat observation")
	}
	if !obs.Tensor.Shape().Eq(tensor.Shape{dim}) {
		t.Fatalf("expected observation shape (%v), got %v", dim,
			obs.Tensor.Shape())
	}
	if _, ok := obs.Tensor.Data().([]float64); !ok {
		t.Errorf("expected float64 observations, got %T", obs.Tensor.Data())
	}

	obs, _, _, _, _, err = env.Step(turnLeft())
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if !obs.Tensor.Shape().Eq(tensor.Shape{dim}) {
		t.Errorf("expected observation shape (%v), got %v", dim,
			obs.Tensor.Shape())
	}
}

func TestFlattenObservationFullGrid(t *testing.T) {
	_, full := fullGridEnv(t)

	env, err := wrappers.NewFlattenObservation(full)
	if err != nil {
		t.Fatalf("newFlattenObservation: %v", err)
	}

	dim := 5*5*3 + 1
	obs, _, err := env.Reset()
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !obs.Tensor.Shape().Eq(tensor.Shape{dim}) {
		t.Errorf("expected observation shape (%v), got %v", dim,
			obs.Tensor.Shape())
	}
}

func TestNewFullyObservable(t *testing.T) {
	base, full := fullGridEnv(t)

	dict, ok := full.ObservationSpace().(*spaces.Dict)
	if !ok {
		t.Fatalf("expected a Dict observation space, got %v",
			full.ObservationSpace())
	}
	image, ok := dict.Sub("image").(*spaces.Box)
	if !ok {
		t.Fatalf("expected an image Box sub-space, got %v", dict)
	}
	if shape := image.Shape(); len(shape) != 3 || shape[0] != 5 ||
		shape[1] != 5 || shape[2] != 3 {
		t.Errorf("expected image shape [5 5 3], got %v", shape)
	}

	obs, _, err := full.Reset()
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !obs.IsKeyed() {
		t.Fatal("expected a keyed observation")
	}
	grid, err := obs.At("image")
	if err != nil {
		t.Fatalf("at: %v", err)
	}
	if !grid.Shape().Eq(tensor.Shape{5, 5, 3}) {
		t.Errorf("expected image shape (5, 5, 3), got %v", grid.Shape())
	}

	// The full view is larger than the base environment's partial view
	// only in extent, not structure: both keep the same keys
	baseObs, _, err := base.Reset()
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := baseObs.At("direction"); err != nil {
		t.Errorf("at: %v", err)
	}
}

func TestNewFullyObservableRequiresFullGridder(t *testing.T) {
	base, err := minigrid.Make("MiniGrid-Empty-5x5-v0")
	if err != nil {
		t.Fatalf("make: %v", err)
	}
	flat, err := wrappers.NewFlattenObservation(base)
	if err != nil {
		t.Fatalf("newFlattenObservation: %v", err)
	}

	if _, err := wrappers.NewFullyObservable(flat); err == nil {
		t.Error("expected an error for an environment that cannot " +
			"describe its full grid")
	}
}
