package minigrid

import (
	"fmt"
	"sort"
)

// registry maps environment identifiers to task configurations
var registry = map[string]Config{}

// Register makes a task configuration available to Make under its
// name. Registering a name twice is an error.
func Register(cfg Config) error {
	if cfg.Name == "" {
		return fmt.Errorf("register: configuration has no name")
	}
	if _, ok := registry[cfg.Name]; ok {
		return fmt.Errorf("register: %v is already registered", cfg.Name)
	}
	registry[cfg.Name] = cfg
	return nil
}

// IDs returns the identifiers of all registered tasks in sorted order
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Make constructs the environment registered under id
func Make(id string) (*MiniGrid, error) {
	cfg, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("make: no environment registered as %v", id)
	}

	env, err := New(cfg)
	if err != nil {
		return nil, fmt.Errorf("make: could not create %v: %v", id, err)
	}
	return env, nil
}

func init() {
	for _, cfg := range []Config{
		emptyConfig("MiniGrid-Empty-5x5-v0", 5, 5),
		emptyConfig("MiniGrid-Empty-8x8-v0", 8, 8),
		fourRoomsConfig("MiniGrid-FourRooms-v0", 9, 9),
		lavaGapConfig("MiniGrid-LavaGapS5-v0", 5, 5),
	} {
		if err := Register(cfg); err != nil {
			panic(fmt.Sprintf("init: %v", err))
		}
	}
}

// emptyConfig describes an empty walled room with the goal in the
// bottom-right corner
func emptyConfig(name string, width, height int) Config {
	return Config{
		Name:     name,
		Width:    width,
		Height:   height,
		MaxSteps: 4 * width * height,
		Start:    [2]int{1, 1},
		StartDir: DirRight,
		Build: func(g *Grid) {
			g.Set(width-2, height-2, Goal)
		},
	}
}

// fourRoomsConfig describes four connected rooms with the goal in the
// bottom-right room
func fourRoomsConfig(name string, width, height int) Config {
	midX, midY := width/2, height/2
	return Config{
		Name:     name,
		Width:    width,
		Height:   height,
		MaxSteps: 4 * width * height,
		Start:    [2]int{1, 1},
		StartDir: DirRight,
		Build: func(g *Grid) {
			g.VerticalWall(midX, 0, height)
			g.HorizontalWall(0, midY, width)

			// Openings between the rooms
			g.Set(midX, midY/2, Empty)
			g.Set(midX, midY+(height-midY)/2, Empty)
			g.Set(midX/2, midY, Empty)
			g.Set(midX+(width-midX)/2, midY, Empty)

			g.Set(width-2, height-2, Goal)
		},
	}
}

// lavaGapConfig describes a room split by a column of lava with a
// single gap
func lavaGapConfig(name string, width, height int) Config {
	gapY := height / 2
	return Config{
		Name:     name,
		Width:    width,
		Height:   height,
		MaxSteps: 4 * width * height,
		Start:    [2]int{1, 1},
		StartDir: DirRight,
		Build: func(g *Grid) {
			for y := 1; y < height-1; y++ {
				if y != gapY {
					g.Set(width/2, y, Lava)
				}
			}
			g.Set(width-2, height-2, Goal)
		},
	}
}
