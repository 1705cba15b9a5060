package spaces_test

import (
	"testing"

	"github.com/samuelfneumann/govecenv/spaces"
)

func TestNewDiscrete(t *testing.T) {
	if _, err := spaces.NewDiscrete(0); err == nil {
		t.Error("expected an error for a space with no values")
	}

	d, err := spaces.NewDiscrete(3)
	if err != nil {
		t.Fatalf("newDiscrete: %v", err)
	}
	if d.N() != 3 {
		t.Errorf("expected 3 values, got %v", d.N())
	}
	if len(d.Shape()) != 0 {
		t.Errorf("expected a scalar shape, got %v", d.Shape())
	}
}

func TestDiscreteSample(t *testing.T) {
	d, err := spaces.NewDiscrete(5)
	if err != nil {
		t.Fatalf("newDiscrete: %v", err)
	}
	d.Seed(92)

	for i := 0; i < 100; i++ {
		sample := d.Sample()[0]
		value := sample.AtVec(0)
		if value != float64(int(value)) {
			t.Fatalf("expected an integer sample, got %v", value)
		}
		if !d.Contains(value) {
			t.Errorf("sample %v outside [0, 5)", value)
		}
	}
}

func TestDiscreteContains(t *testing.T) {
	d, err := spaces.NewDiscrete(4)
	if err != nil {
		t.Fatalf("newDiscrete: %v", err)
	}

	if !d.Contains(0.0) || !d.Contains(3.0) {
		t.Error("expected the bounds themselves to be in the space")
	}
	if d.Contains(4.0) {
		t.Error("expected 4 to be outside Discrete(4)")
	}
	if d.Contains(-1.0) {
		t.Error("expected -1 to be outside the space")
	}
	if d.Contains([]float64{1, 2}) {
		t.Error("expected a two-element vector to be outside the space")
	}
}

func TestDiscreteBounds(t *testing.T) {
	d, err := spaces.NewDiscrete(10)
	if err != nil {
		t.Fatalf("newDiscrete: %v", err)
	}

	if low := d.Low()[0].AtVec(0); low != 0 {
		t.Errorf("expected lower bound 0, got %v", low)
	}
	if high := d.High()[0].AtVec(0); high != 9 {
		t.Errorf("expected upper bound 9, got %v", high)
	}
}
