package minigrid_test

import (
	"testing"

	"gorgonia.org/tensor"

	"github.com/samuelfneumann/govecenv/environment"
	"github.com/samuelfneumann/govecenv/minigrid"
	"github.com/samuelfneumann/govecenv/spaces"
)

// forwardBatch returns a batch of n move-forward actions with shape
// (n, 1)
func forwardBatch(n int) *tensor.Dense {
	backing := make([]float64, n)
	for i := range backing {
		backing[i] = float64(minigrid.ActionForward)
	}
	return tensor.New(tensor.WithShape(n, 1), tensor.WithBacking(backing))
}

func TestMakeVecEnvFullyObservable(t *testing.T) {
	env, err := minigrid.MakeVecEnv("MiniGrid-Empty-5x5-v0", 4, true, 42, 2,
		environment.CPU())
	if err != nil {
		t.Fatalf("makeVecEnv: %v", err)
	}
	defer env.Close()

	if env.NumEnvs() != 4 {
		t.Errorf("expected 4 sub-environments, got %v", env.NumEnvs())
	}

	// Two stacked (3, 5, 5) channel-first frames per environment
	box, ok := env.ObservationSpace().(*spaces.Box)
	if !ok {
		t.Fatalf("expected a Box observation space, got %v",
			env.ObservationSpace())
	}
	if shape := box.Shape(); len(shape) != 3 || shape[0] != 6 ||
		shape[1] != 5 || shape[2] != 5 {
		t.Errorf("expected shape [6 5 5], got %v", shape)
	}

	obs, _, err := env.Reset()
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !obs.Shape().Eq(tensor.Shape{4, 6, 5, 5}) {
		t.Errorf("expected batch shape (4, 6, 5, 5), got %v", obs.Shape())
	}

	obs, rewards, terminateds, truncateds, _, err := env.Step(
		forwardBatch(4))
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if !obs.Shape().Eq(tensor.Shape{4, 6, 5, 5}) {
		t.Errorf("expected batch shape (4, 6, 5, 5), got %v", obs.Shape())
	}
	for name, column := range map[string]*tensor.Dense{
		"reward":     rewards,
		"terminated": terminateds,
		"truncated":  truncateds,
	} {
		if !column.Shape().Eq(tensor.Shape{4, 1}) {
			t.Errorf("expected %v shape (4, 1), got %v", name,
				column.Shape())
		}
	}
}

func TestMakeVecEnvFlattened(t *testing.T) {
	env, err := minigrid.MakeVecEnv("MiniGrid-Empty-5x5-v0", 4, false, 42, 1,
		environment.CPU())
	if err != nil {
		t.Fatalf("makeVecEnv: %v", err)
	}
	defer env.Close()

	// A flattened 7x7x3 view plus the agent's heading
	dim := 7*7*3 + 1
	obs, _, err := env.Reset()
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !obs.Shape().Eq(tensor.Shape{4, dim}) {
		t.Errorf("expected batch shape (4, %v), got %v", dim, obs.Shape())
	}
}

func TestMakeVecEnvIllegalArguments(t *testing.T) {
	if _, err := minigrid.MakeVecEnv("MiniGrid-Empty-5x5-v0", 0, true, 1, 1,
		environment.CPU()); err == nil {
		t.Error("expected an error for a batch of no environments")
	}
	if _, err := minigrid.MakeVecEnv("MiniGrid-Empty-5x5-v0", 2, true, 1, 0,
		environment.CPU()); err == nil {
		t.Error("expected an error for a non-positive frame stack depth")
	}
	if _, err := minigrid.MakeVecEnv("MiniGrid-Missing-v0", 2, true, 1, 1,
		environment.CPU()); err == nil {
		t.Error("expected an error for an unregistered identifier")
	}
}
