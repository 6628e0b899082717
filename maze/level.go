package maze

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"mazewalker/collision"
	"mazewalker/common"
	"mazewalker/spatial"
)

// DefaultCorridor is the corridor width in world units when a manifest
// does not set one.
const DefaultCorridor = 2.0

// Palette names the colors the renderer paints walls and surfaces with.
// Values are #rrggbb strings; empty fields fall back to renderer defaults.
type Palette struct {
	Wall    string `yaml:"wall,omitempty"`
	Accent  string `yaml:"accent,omitempty"`
	Floor   string `yaml:"floor,omitempty"`
	Ceiling string `yaml:"ceiling,omitempty"`
}

// Manifest is the YAML level file: metadata plus the inline grid text.
type Manifest struct {
	Name       string  `yaml:"name"`
	Corridor   float64 `yaml:"corridor,omitempty"`
	Palette    Palette `yaml:"palette,omitempty"`
	Grid       string  `yaml:"grid"`
	Next       string  `yaml:"next,omitempty"`
	OnComplete string  `yaml:"on_complete,omitempty"`
}

// Level is a loaded level: the parsed grid plus the wall geometry derived
// from it, ready to register with a resolver and spatial grid.
type Level struct {
	Name     string
	Grid     *GridMap
	Corridor float64
	Palette  Palette
	Next     string

	// Start and Goal are world-space cell centers at floor height.
	Start common.Vec3
	Goal  common.Vec3

	walls []collision.Shape
	hook  *completionHook
}

// Load parses a YAML manifest with an inline grid and derives the level's
// wall geometry.
func Load(data []byte) (*Level, error) {
	var mf Manifest
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parse level manifest: %w", err)
	}
	if strings.TrimSpace(mf.Grid) == "" {
		return nil, fmt.Errorf("level manifest has no grid")
	}
	grid, err := ParseGrid(mf.Grid)
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", mf.Name, err)
	}
	return build(mf, grid)
}

// FromGrid wraps a bare grid (a .txt level or a generated maze) in a level
// with default metadata.
func FromGrid(name string, grid *GridMap) *Level {
	lvl, _ := build(Manifest{Name: name}, grid) // only the hook can fail, and there is none
	return lvl
}

func build(mf Manifest, grid *GridMap) (*Level, error) {
	corridor := mf.Corridor
	if corridor <= 0 {
		corridor = DefaultCorridor
	}

	lvl := &Level{
		Name:     mf.Name,
		Grid:     grid,
		Corridor: corridor,
		Palette:  mf.Palette,
		Next:     mf.Next,
		Start:    cellCenter(grid.Start, corridor),
		Goal:     cellCenter(grid.Goal, corridor),
	}

	if strings.TrimSpace(mf.OnComplete) != "" {
		hook, err := compileHook(mf.OnComplete, lvl.Name, lvl.Next)
		if err != nil {
			return nil, fmt.Errorf("level %q on_complete: %w", mf.Name, err)
		}
		lvl.hook = hook
	}

	// One wall box per solid cell that faces walkable space. Interior and
	// void-facing blocks can never be touched or seen, so they get no
	// collider.
	half := corridor / 2
	for z := 0; z < grid.Height; z++ {
		for x := 0; x < grid.Width; x++ {
			if !grid.Solid(x, z) || !facesWalkable(grid, x, z) {
				continue
			}
			center := common.Vec3{
				X: float64(x)*corridor + half,
				Y: half,
				Z: float64(z)*corridor + half,
			}
			lvl.walls = append(lvl.walls, collision.Shape{
				Kind:   collision.ShapeBox,
				Center: center,
				Size:   common.Vec3{X: corridor, Y: corridor, Z: corridor},
			})
		}
	}
	return lvl, nil
}

func facesWalkable(grid *GridMap, x, z int) bool {
	return grid.Walkable(x-1, z) || grid.Walkable(x+1, z) ||
		grid.Walkable(x, z-1) || grid.Walkable(x, z+1)
}

func cellCenter(p Point, corridor float64) common.Vec3 {
	return common.Vec3{
		X: float64(p.X)*corridor + corridor/2,
		Z: float64(p.Z)*corridor + corridor/2,
	}
}

// WorldSizeX returns the world extent along X.
func (l *Level) WorldSizeX() float64 { return float64(l.Grid.Width) * l.Corridor }

// WorldSizeZ returns the world extent along Z.
func (l *Level) WorldSizeZ() float64 { return float64(l.Grid.Height) * l.Corridor }

// WallBoxes returns the level's static wall colliders in build order.
func (l *Level) WallBoxes() []collision.Shape { return l.walls }

// Build registers the level's geometry: every wall collider goes into the
// resolver and, by handle, into a fresh spatial grid with cells twice the
// corridor width. The grid is attached to the resolver and the player
// collider is placed at the start cell. The returned grid is owned by the
// caller; the resolver only queries it.
func (l *Level) Build(res *collision.Resolver, playerRadius, playerHeight float64) *spatial.Grid {
	grid := spatial.NewGrid(2*l.Corridor, l.WorldSizeX(), l.WorldSizeZ())
	for _, handle := range res.ExtractFromLevel(l) {
		wall, _ := res.Wall(handle)
		grid.Insert(handle, wall.Center.X, wall.Center.Z)
	}
	res.SetSpatialGrid(grid)
	res.SetPlayerCollider(l.Start, playerRadius, playerHeight)
	return grid
}

// Complete runs the level's on_complete hook, if any, and returns the name
// of the next level. Without a hook (or if the hook leaves it untouched)
// this is the manifest's next field.
func (l *Level) Complete() (string, error) {
	if l.hook == nil {
		return l.Next, nil
	}
	return l.hook.run()
}
