package minigrid

import (
	"image"

	"github.com/fogleman/gg"
)

// tilePixels is the rendered width and height of a single grid cell
const tilePixels = 24

// Render draws a human-view frame of the current environment state.
// Walls are grey, the goal is green, lava is orange, and the agent is
// a red triangle pointing along its heading.
func (m *MiniGrid) Render() image.Image {
	w, h := m.grid.Dims()
	dc := gg.NewContext(w*tilePixels, h*tilePixels)

	dc.SetRGB(0, 0, 0)
	dc.Clear()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px := float64(x * tilePixels)
			py := float64(y * tilePixels)

			switch m.grid.At(x, y) {
			case Wall:
				dc.SetRGB(0.4, 0.4, 0.4)
			case Goal:
				dc.SetRGB(0.0, 0.8, 0.0)
			case Lava:
				dc.SetRGB(1.0, 0.5, 0.0)
			default:
				dc.SetRGB(0.1, 0.1, 0.1)
			}
			dc.DrawRectangle(px, py, tilePixels, tilePixels)
			dc.Fill()
		}
	}

	// Grid lines
	dc.SetRGB(0.25, 0.25, 0.25)
	dc.SetLineWidth(1)
	for x := 0; x <= w; x++ {
		dc.DrawLine(float64(x*tilePixels), 0, float64(x*tilePixels),
			float64(h*tilePixels))
	}
	for y := 0; y <= h; y++ {
		dc.DrawLine(0, float64(y*tilePixels), float64(w*tilePixels),
			float64(y*tilePixels))
	}
	dc.Stroke()

	m.drawAgent(dc)

	return dc.Image()
}

// drawAgent draws the agent as a triangle pointing along its heading
func (m *MiniGrid) drawAgent(dc *gg.Context) {
	cx := float64(m.agentPos[0]*tilePixels) + tilePixels/2
	cy := float64(m.agentPos[1]*tilePixels) + tilePixels/2
	r := float64(tilePixels) * 0.35

	// Tip and base corners of the triangle, by heading
	var points [3][2]float64
	switch m.agentDir {
	case DirRight:
		points = [3][2]float64{{cx + r, cy}, {cx - r, cy - r}, {cx - r, cy + r}}
	case DirDown:
		points = [3][2]float64{{cx, cy + r}, {cx - r, cy - r}, {cx + r, cy - r}}
	case DirLeft:
		points = [3][2]float64{{cx - r, cy}, {cx + r, cy - r}, {cx + r, cy + r}}
	default:
		points = [3][2]float64{{cx, cy - r}, {cx - r, cy + r}, {cx + r, cy + r}}
	}

	dc.SetRGB(0.9, 0.1, 0.1)
	dc.MoveTo(points[0][0], points[0][1])
	dc.LineTo(points[1][0], points[1][1])
	dc.LineTo(points[2][0], points[2][1])
	dc.ClosePath()
	dc.Fill()
}
