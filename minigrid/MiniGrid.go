package minigrid

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gorgonia.org/tensor"

	"github.com/samuelfneumann/govecenv/environment"
	"github.com/samuelfneumann/govecenv/spaces"
	"github.com/samuelfneumann/govecenv/utils/tensorutils"
)

// Actions available in every grid world
const (
	ActionTurnLeft int = iota
	ActionTurnRight
	ActionForward
	numActions
)

// Headings of the agent. The heading is the state channel of the
// agent's cell in encoded image observations.
const (
	DirRight int = iota
	DirDown
	DirLeft
	DirUp
	numDirections
)

// DefaultViewSize is the width and height, in cells, of the agent's
// partial view of the grid
const DefaultViewSize int = 7

// Config describes a grid-world task. Build fills a freshly
// constructed grid with the task's walls, goal, and lava cells.
type Config struct {
	Name     string
	Width    int
	Height   int
	MaxSteps int
	ViewSize int
	Start    [2]int
	StartDir int
	Build    func(*Grid)
}

// MiniGrid implements a grid-world environment. An agent with a
// heading turns and moves through a walled grid; reaching the goal
// ends the episode with a reward discounted by the number of steps
// taken, stepping into lava ends the episode with no reward, and
// episodes are truncated after the task's step limit.
//
// Observations are dictionaries holding the agent's heading and an
// agent-centred partial view of the grid, encoded as an image of
// (object, color, state) byte triples. MiniGrid can also describe its
// entire grid, for use with the fully-observable wrapper.
//
// MiniGrid implements the environment.Env interface.
type MiniGrid struct {
	cfg  Config
	grid *Grid

	agentPos [2]int
	agentDir int
	steps    int
	done     bool

	src rand.Source
	rng *rand.Rand

	obsSpace  *spaces.Dict
	fullSpace *spaces.Dict
	actSpace  *spaces.Discrete
}

// New returns a new MiniGrid implementing the task described by cfg
func New(cfg Config) (*MiniGrid, error) {
	if cfg.Width < 3 || cfg.Height < 3 {
		return nil, fmt.Errorf("new: grid must be at least 3x3, got %vx%v",
			cfg.Width, cfg.Height)
	}
	if cfg.MaxSteps < 1 {
		return nil, fmt.Errorf("new: step limit must be positive, got %v",
			cfg.MaxSteps)
	}
	if cfg.ViewSize == 0 {
		cfg.ViewSize = DefaultViewSize
	}
	if cfg.ViewSize < 3 || cfg.ViewSize%2 == 0 {
		return nil, fmt.Errorf("new: view size must be an odd number of at "+
			"least 3 cells, got %v", cfg.ViewSize)
	}
	if cfg.Build == nil {
		return nil, fmt.Errorf("new: no grid builder given")
	}

	obsSpace, err := newObsSpace(cfg.ViewSize, cfg.ViewSize)
	if err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}
	fullSpace, err := newObsSpace(cfg.Height, cfg.Width)
	if err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}
	actSpace, err := spaces.NewDiscrete(numActions)
	if err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	src := rand.NewSource(1)
	m := &MiniGrid{
		cfg:       cfg,
		src:       src,
		rng:       rand.New(src),
		obsSpace:  obsSpace,
		fullSpace: fullSpace,
		actSpace:  actSpace,
	}
	m.rebuild()

	return m, nil
}

// newObsSpace returns the Dict observation space of encoded image
// views with the given number of rows and columns
func newObsSpace(rows, cols int) (*spaces.Dict, error) {
	image, err := spaces.NewUniformBox(0, 255, []int{rows, cols, 3},
		tensor.Uint8)
	if err != nil {
		return nil, err
	}
	direction, err := spaces.NewDiscrete(numDirections)
	if err != nil {
		return nil, err
	}
	return spaces.NewDict(map[string]spaces.Space{
		"image":     image,
		"direction": direction,
	})
}

// Name returns the name of the grid-world task
func (m *MiniGrid) Name() string {
	return m.cfg.Name
}

// ObservationSpace returns the observation space descriptor of the
// environment
func (m *MiniGrid) ObservationSpace() spaces.Space {
	return m.obsSpace
}

// ActionSpace returns the action space descriptor of the environment
func (m *MiniGrid) ActionSpace() spaces.Space {
	return m.actSpace
}

// FullObsSpace returns the observation space of full-grid
// observations
func (m *MiniGrid) FullObsSpace() spaces.Space {
	return m.fullSpace
}

// Seed seeds the random number generator of the environment and the
// samplers of its spaces
func (m *MiniGrid) Seed(seed uint64) {
	m.src.Seed(seed)
	m.obsSpace.Seed(seed)
	m.actSpace.Seed(seed)
	m.fullSpace.Seed(seed)
}

// Reset resets the environment to the task's starting state
func (m *MiniGrid) Reset() (environment.Observation, environment.Info,
	error) {
	m.rebuild()
	return m.observation(), environment.Info{}, nil
}

// rebuild restores the grid and the agent to the task's starting
// state
func (m *MiniGrid) rebuild() {
	m.grid = NewGrid(m.cfg.Width, m.cfg.Height)
	m.cfg.Build(m.grid)
	m.agentPos = m.cfg.Start
	m.agentDir = m.cfg.StartDir
	m.steps = 0
	m.done = false
}

// Step takes a single environmental step given action a. The action
// tensor holds a single value in (0, 1, 2): turn left, turn right, or
// move forward.
func (m *MiniGrid) Step(a *tensor.Dense) (environment.Observation, float64,
	bool, bool, environment.Info, error) {
	if m.done {
		return environment.Observation{}, 0, false, false, nil,
			fmt.Errorf("step: episode has ended, reset the environment")
	}

	values, err := tensorutils.Ints(a)
	if err != nil {
		return environment.Observation{}, 0, false, false, nil,
			fmt.Errorf("step: illegal action: %v", err)
	}
	if len(values) != 1 {
		return environment.Observation{}, 0, false, false, nil,
			fmt.Errorf("step: expected a single action, got %d", len(values))
	}

	action := values[0]
	if action < 0 || action >= numActions {
		return environment.Observation{}, 0, false, false, nil,
			fmt.Errorf("step: action %v outside [0, %d)", action, numActions)
	}

	m.steps++

	var reward float64
	var terminated bool
	switch action {
	case ActionTurnLeft:
		m.agentDir = (m.agentDir + numDirections - 1) % numDirections

	case ActionTurnRight:
		m.agentDir = (m.agentDir + 1) % numDirections

	case ActionForward:
		dx, dy := forwardDelta(m.agentDir)
		x, y := m.agentPos[0]+dx, m.agentPos[1]+dy

		switch m.grid.At(x, y) {
		case Wall:
			// Blocked: the agent stays in place
		case Goal:
			m.agentPos = [2]int{x, y}
			terminated = true
			reward = 1.0 - 0.9*float64(m.steps)/float64(m.cfg.MaxSteps)
		case Lava:
			m.agentPos = [2]int{x, y}
			terminated = true
		default:
			m.agentPos = [2]int{x, y}
		}
	}

	truncated := !terminated && m.steps >= m.cfg.MaxSteps
	m.done = terminated || truncated

	return m.observation(), reward, terminated, truncated,
		environment.Info{}, nil
}

// forwardDelta returns the cell offset of a forward move along a
// heading
func forwardDelta(dir int) (dx, dy int) {
	switch dir {
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 0, -1
	}
}

// observation returns the agent-centred partial observation of the
// current state
func (m *MiniGrid) observation() environment.Observation {
	v := m.cfg.ViewSize
	half := v / 2
	image := make([]uint8, v*v*3)

	for i := 0; i < v; i++ {
		for j := 0; j < v; j++ {
			x := m.agentPos[0] + j - half
			y := m.agentPos[1] + i - half

			object := m.grid.At(x, y)
			state := uint8(0)
			if x == m.agentPos[0] && y == m.agentPos[1] {
				object = AgentObj
				state = uint8(m.agentDir)
			}

			offset := (i*v + j) * 3
			image[offset] = uint8(object)
			image[offset+1] = objectColor(object)
			image[offset+2] = state
		}
	}

	return m.keyedObs(image, v, v)
}

// FullObs returns an observation of the entire grid in the current
// environment state
func (m *MiniGrid) FullObs() (environment.Observation, error) {
	w, h := m.grid.Dims()
	image := make([]uint8, w*h*3)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			object := m.grid.At(x, y)
			state := uint8(0)
			if x == m.agentPos[0] && y == m.agentPos[1] {
				object = AgentObj
				state = uint8(m.agentDir)
			}

			offset := (y*w + x) * 3
			image[offset] = uint8(object)
			image[offset+1] = objectColor(object)
			image[offset+2] = state
		}
	}

	return m.keyedObs(image, h, w), nil
}

// keyedObs packages an encoded image and the agent's heading into a
// keyed observation
func (m *MiniGrid) keyedObs(image []uint8, rows, cols int) (
	environment.Observation) {
	return environment.KeyedObs(map[string]*tensor.Dense{
		"image": tensor.New(tensor.WithShape(rows, cols, 3),
			tensor.WithBacking(image)),
		"direction": tensor.New(tensor.WithShape(1),
			tensor.WithBacking([]float64{float64(m.agentDir)})),
	})
}

// Close performs resource cleanup after the environment is no longer
// needed
func (m *MiniGrid) Close() error {
	return nil
}

// String returns a string representation of the environment
func (m *MiniGrid) String() string {
	return fmt.Sprintf("MiniGrid(%v)", m.cfg.Name)
}
