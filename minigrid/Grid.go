// Package minigrid implements small grid-world environments with
// image observations, in the style of the MiniGrid suite. An agent
// with a heading moves through a walled grid toward a goal, possibly
// around lava cells, and observes an encoded image of the cells
// around it.
package minigrid

// Object enumerates the kinds of cells in a grid. The numeric values
// are the object channel of encoded image observations.
type Object uint8

const (
	Unseen Object = iota
	Empty
	Wall
	Goal
	Lava
	AgentObj
)

// Color indices of the color channel of encoded image observations
const (
	colorRed uint8 = iota
	colorGreen
	colorBlue
	colorYellow
	colorGrey
)

// objectColor returns the color channel value of an object
func objectColor(o Object) uint8 {
	switch o {
	case Wall:
		return colorGrey
	case Goal:
		return colorGreen
	case Lava:
		return colorYellow
	case AgentObj:
		return colorRed
	default:
		return colorBlue
	}
}

// Grid holds the static cells of a grid world. Cells are stored in
// row-major order. The agent is not a cell: its position and heading
// are tracked by the environment.
type Grid struct {
	width, height int
	cells         []Object
}

// NewGrid returns a new Grid of empty cells surrounded by a wall
// border
func NewGrid(width, height int) *Grid {
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Object, width*height),
	}

	for i := range g.cells {
		g.cells[i] = Empty
	}
	for x := 0; x < width; x++ {
		g.Set(x, 0, Wall)
		g.Set(x, height-1, Wall)
	}
	for y := 0; y < height; y++ {
		g.Set(0, y, Wall)
		g.Set(width-1, y, Wall)
	}
	return g
}

// Dims returns the width and height of the grid
func (g *Grid) Dims() (width, height int) {
	return g.width, g.height
}

// InBounds returns whether (x, y) is a legal cell position
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the object at cell (x, y). Positions outside the grid
// are reported as Wall.
func (g *Grid) At(x, y int) Object {
	if !g.InBounds(x, y) {
		return Wall
	}
	return g.cells[y*g.width+x]
}

// Set places an object at cell (x, y)
func (g *Grid) Set(x, y int, o Object) {
	if g.InBounds(x, y) {
		g.cells[y*g.width+x] = o
	}
}

// HorizontalWall places a wall segment of the given length starting
// at (x, y) and extending rightward
func (g *Grid) HorizontalWall(x, y, length int) {
	for i := 0; i < length; i++ {
		g.Set(x+i, y, Wall)
	}
}

// VerticalWall places a wall segment of the given length starting at
// (x, y) and extending downward
func (g *Grid) VerticalWall(x, y, length int) {
	for i := 0; i < length; i++ {
		g.Set(x, y+i, Wall)
	}
}
