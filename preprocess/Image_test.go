package preprocess_test

import (
	"testing"

	"gorgonia.org/tensor"

	"github.com/samuelfneumann/govecenv/preprocess"
	"github.com/samuelfneumann/govecenv/spaces"
)

// imageBox returns a [0, 255] uint8 Box with the given shape
func imageBox(t *testing.T, shape []int) *spaces.Box {
	t.Helper()
	box, err := spaces.NewUniformBox(0, 255, shape, tensor.Uint8)
	if err != nil {
		t.Fatalf("newUniformBox: %v", err)
	}
	return box
}

func TestIsImageSpace(t *testing.T) {
	if !preprocess.IsImageSpace(imageBox(t, []int{3, 84, 84}), true, false) {
		t.Error("expected a [0, 255] uint8 (3, 84, 84) Box to be an image " +
			"space")
	}
	if !preprocess.IsImageSpace(imageBox(t, []int{84, 84, 1}), true, false) {
		t.Error("expected a grayscale channels-last Box to be an image space")
	}

	// Wrong data type
	float, err := spaces.NewUniformBox(0, 255, []int{3, 84, 84},
		tensor.Float64)
	if err != nil {
		t.Fatalf("newUniformBox: %v", err)
	}
	if preprocess.IsImageSpace(float, false, false) {
		t.Error("expected a float Box to not be an image space")
	}
	if !preprocess.IsImageSpace(float, false, true) {
		t.Error("expected a normalized float Box to be an image space")
	}

	// Wrong number of axes
	if preprocess.IsImageSpace(imageBox(t, []int{84, 84}), false, false) {
		t.Error("expected a two-axis Box to not be an image space")
	}

	// Wrong bounds
	small, err := spaces.NewUniformBox(0, 1, []int{3, 84, 84}, tensor.Uint8)
	if err != nil {
		t.Fatalf("newUniformBox: %v", err)
	}
	if preprocess.IsImageSpace(small, false, false) {
		t.Error("expected a [0, 1] Box to not be an image space")
	}

	// Illegal channel count when channels are checked
	if preprocess.IsImageSpace(imageBox(t, []int{5, 84, 84}), true, false) {
		t.Error("expected a five-channel Box to not be an image space")
	}
	if !preprocess.IsImageSpace(imageBox(t, []int{5, 84, 84}), false, false) {
		t.Error("expected the channel count to be ignored when channels " +
			"are not checked")
	}

	// Not a Box at all
	discrete, err := spaces.NewDiscrete(3)
	if err != nil {
		t.Fatalf("newDiscrete: %v", err)
	}
	if preprocess.IsImageSpace(discrete, false, false) {
		t.Error("expected a Discrete space to not be an image space")
	}
}

func TestIsImageSpaceChannelsFirst(t *testing.T) {
	if !preprocess.IsImageSpaceChannelsFirst(imageBox(t, []int{3, 84, 84})) {
		t.Error("expected (3, 84, 84) to be channels-first")
	}
	if preprocess.IsImageSpaceChannelsFirst(imageBox(t, []int{84, 84, 3})) {
		t.Error("expected (84, 84, 3) to be channels-last")
	}

	// Ambiguous layout falls back to channels-last
	if preprocess.IsImageSpaceChannelsFirst(imageBox(t, []int{84, 3, 84})) {
		t.Error("expected an ambiguous layout to be treated as channels-last")
	}
}
