package spaces_test

import (
	"testing"

	"github.com/samuelfneumann/govecenv/spaces"
)

func TestNewMultiDiscrete(t *testing.T) {
	if _, err := spaces.NewMultiDiscrete(nil); err == nil {
		t.Error("expected an error for a space with no components")
	}
	if _, err := spaces.NewMultiDiscrete([]int{3, 0}); err == nil {
		t.Error("expected an error for a component with no values")
	}

	m, err := spaces.NewMultiDiscrete([]int{3, 4, 5})
	if err != nil {
		t.Fatalf("newMultiDiscrete: %v", err)
	}
	if shape := m.Shape(); len(shape) != 1 || shape[0] != 3 {
		t.Errorf("expected shape [3], got %v", shape)
	}

	nvec := m.Nvec()
	nvec[0] = 100
	if m.Nvec()[0] != 3 {
		t.Error("expected Nvec to return a copy")
	}
}

func TestMultiDiscreteSample(t *testing.T) {
	m, err := spaces.NewMultiDiscrete([]int{2, 3, 4})
	if err != nil {
		t.Fatalf("newMultiDiscrete: %v", err)
	}
	m.Seed(36)

	for i := 0; i < 100; i++ {
		sample := m.Sample()[0]
		if sample.Len() != 3 {
			t.Fatalf("expected sample of length 3, got %v", sample.Len())
		}
		if !m.Contains(sample) {
			t.Errorf("sample %v outside the space's bounds", sample)
		}
	}
}

func TestMultiDiscreteContains(t *testing.T) {
	m, err := spaces.NewMultiDiscrete([]int{2, 3})
	if err != nil {
		t.Fatalf("newMultiDiscrete: %v", err)
	}

	if !m.Contains([]float64{1, 2}) {
		t.Error("expected [1 2] to be in the space")
	}
	if m.Contains([]float64{2, 2}) {
		t.Error("expected [2 2] to be outside the space")
	}
	if m.Contains([]float64{1}) {
		t.Error("expected a short vector to be outside the space")
	}
}

func TestMultiBinary(t *testing.T) {
	if _, err := spaces.NewMultiBinary(0); err == nil {
		t.Error("expected an error for a space with no features")
	}

	m, err := spaces.NewMultiBinary(4)
	if err != nil {
		t.Fatalf("newMultiBinary: %v", err)
	}
	m.Seed(18)

	if shape := m.Shape(); len(shape) != 1 || shape[0] != 4 {
		t.Errorf("expected shape [4], got %v", shape)
	}

	for i := 0; i < 100; i++ {
		sample := m.Sample()[0]
		if !m.Contains(sample) {
			t.Errorf("sample %v outside the space's bounds", sample)
		}
	}

	if m.Contains([]float64{0, 1, 0.5, 1}) {
		t.Error("expected a non-binary vector to be outside the space")
	}
}
