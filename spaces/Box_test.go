package spaces_test

import (
	"testing"

	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"

	"github.com/samuelfneumann/govecenv/spaces"
)

func TestNewBox(t *testing.T) {
	low := mat.NewVecDense(6, []float64{0, 0, 0, 0, 0, 0})
	high := mat.NewVecDense(6, []float64{1, 1, 1, 1, 1, 1})

	box, err := spaces.NewBox(low, high, []int{2, 3}, tensor.Float64)
	if err != nil {
		t.Fatalf("newBox: %v", err)
	}

	shape := box.Shape()
	if len(shape) != 2 || shape[0] != 2 || shape[1] != 3 {
		t.Errorf("expected shape [2 3], got %v", shape)
	}
	if box.Dtype() != tensor.Float64 {
		t.Errorf("expected dtype %v, got %v", tensor.Float64, box.Dtype())
	}
}

func TestNewBoxIllegalBounds(t *testing.T) {
	// Bound length does not match the shape
	low := mat.NewVecDense(2, []float64{0, 0})
	high := mat.NewVecDense(2, []float64{1, 1})
	if _, err := spaces.NewBox(low, high, []int{3}, tensor.Float64); err == nil {
		t.Error("expected an error when bounds do not match the shape")
	}

	// Lower bound exceeds upper bound
	low = mat.NewVecDense(2, []float64{2, 0})
	high = mat.NewVecDense(2, []float64{1, 1})
	if _, err := spaces.NewBox(low, high, []int{2}, tensor.Float64); err == nil {
		t.Error("expected an error when a lower bound exceeds an upper bound")
	}
}

func TestBoxSample(t *testing.T) {
	box, err := spaces.NewUniformBox(-1, 1, []int{4}, tensor.Float64)
	if err != nil {
		t.Fatalf("newUniformBox: %v", err)
	}
	box.Seed(14)

	for i := 0; i < 100; i++ {
		sample := box.Sample()
		if len(sample) != 1 {
			t.Fatalf("expected a single sample vector, got %v", len(sample))
		}
		if sample[0].Len() != 4 {
			t.Fatalf("expected sample of length 4, got %v", sample[0].Len())
		}
		if !box.Contains(sample[0]) {
			t.Errorf("sample %v outside the space's bounds", sample[0])
		}
	}
}

func TestBoxContains(t *testing.T) {
	box, err := spaces.NewUniformBox(0, 1, []int{2}, tensor.Float64)
	if err != nil {
		t.Fatalf("newUniformBox: %v", err)
	}

	if !box.Contains([]float64{0.5, 0.5}) {
		t.Error("expected [0.5 0.5] to be in the space")
	}
	if !box.Contains([]float64{0, 1}) {
		t.Error("expected the bounds themselves to be in the space")
	}
	if box.Contains([]float64{1.5, 0.5}) {
		t.Error("expected [1.5 0.5] to be outside the space")
	}
	if box.Contains([]float64{0.5}) {
		t.Error("expected a short vector to be outside the space")
	}
	if box.Contains("not a vector") {
		t.Error("expected a non-vector to be outside the space")
	}
}

func TestBoxBounds(t *testing.T) {
	low := mat.NewVecDense(3, []float64{-1, 0, 1})
	high := mat.NewVecDense(3, []float64{1, 2, 3})

	box, err := spaces.NewBox(low, high, []int{3}, tensor.Float64)
	if err != nil {
		t.Fatalf("newBox: %v", err)
	}

	gotLow := box.Low()[0]
	gotHigh := box.High()[0]
	for i := 0; i < 3; i++ {
		if gotLow.AtVec(i) != low.AtVec(i) {
			t.Errorf("expected lower bound %v at index %d, got %v",
				low.AtVec(i), i, gotLow.AtVec(i))
		}
		if gotHigh.AtVec(i) != high.AtVec(i) {
			t.Errorf("expected upper bound %v at index %d, got %v",
				high.AtVec(i), i, gotHigh.AtVec(i))
		}
	}
}
