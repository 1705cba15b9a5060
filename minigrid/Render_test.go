package minigrid_test

import (
	"testing"

	"github.com/samuelfneumann/govecenv/minigrid"
)

func TestRender(t *testing.T) {
	env, err := minigrid.Make("MiniGrid-Empty-5x5-v0")
	if err != nil {
		t.Fatalf("make: %v", err)
	}
	if _, _, err := env.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	img := env.Render()
	if img == nil {
		t.Fatal("expected a rendered image")
	}

	bounds := img.Bounds()
	if bounds.Dx() != bounds.Dy() {
		t.Errorf("expected a square image for a square grid, got %vx%v",
			bounds.Dx(), bounds.Dy())
	}
	if bounds.Dx()%5 != 0 {
		t.Errorf("expected the image width to be a multiple of the grid "+
			"width, got %v", bounds.Dx())
	}
}
