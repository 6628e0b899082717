// Package spatial provides a uniform hash grid for broad-phase proximity
// queries over the horizontal (XZ) plane. Payloads are opaque int handles
// minted by the caller; the grid never inspects them.
package spatial

import (
	"math"
	"sort"
)

// boundsEpsilon keeps clamped coordinates strictly below the upper world
// bound so flooring never indexes past the last cell row/column.
const boundsEpsilon = 1e-9

// Grid partitions a worldSizeX x worldSizeZ region into square cells of
// cellSize. An object lives in exactly one cell at a time.
type Grid struct {
	cellSize   float64
	worldSizeX float64
	worldSizeZ float64
	numCellsX  int
	numCellsZ  int

	cells   []map[int]struct{}
	located map[int]int // object handle -> cell index it currently occupies
}

// NewGrid allocates a grid covering [0,worldSizeX) x [0,worldSizeZ).
// Cell counts round up so the far edge is always covered.
func NewGrid(cellSize, worldSizeX, worldSizeZ float64) *Grid {
	numX := int(math.Ceil(worldSizeX / cellSize))
	numZ := int(math.Ceil(worldSizeZ / cellSize))
	if numX < 1 {
		numX = 1
	}
	if numZ < 1 {
		numZ = 1
	}
	g := &Grid{
		cellSize:   cellSize,
		worldSizeX: worldSizeX,
		worldSizeZ: worldSizeZ,
		numCellsX:  numX,
		numCellsZ:  numZ,
		cells:      make([]map[int]struct{}, numX*numZ),
		located:    make(map[int]int),
	}
	for i := range g.cells {
		g.cells[i] = make(map[int]struct{})
	}
	return g
}

// CellSize returns the configured cell edge length.
func (g *Grid) CellSize() float64 { return g.cellSize }

// Dims returns the cell counts along X and Z.
func (g *Grid) Dims() (int, int) { return g.numCellsX, g.numCellsZ }

func (g *Grid) clampX(x float64) float64 {
	if x < 0 {
		return 0
	}
	if max := g.worldSizeX - boundsEpsilon; x > max {
		return max
	}
	return x
}

func (g *Grid) clampZ(z float64) float64 {
	if z < 0 {
		return 0
	}
	if max := g.worldSizeZ - boundsEpsilon; z > max {
		return max
	}
	return z
}

// CellIndex maps a world position to its flattened cell index. Out-of-bounds
// positions saturate to the boundary cell rather than failing.
func (g *Grid) CellIndex(x, z float64) int {
	cx := int(math.Floor(g.clampX(x) / g.cellSize))
	cz := int(math.Floor(g.clampZ(z) / g.cellSize))
	if cx >= g.numCellsX {
		cx = g.numCellsX - 1
	}
	if cz >= g.numCellsZ {
		cz = g.numCellsZ - 1
	}
	return cx + cz*g.numCellsX
}

// Insert places obj at the cell containing (x, z). Callers must not insert
// an already-tracked handle; use Update to relocate.
func (g *Grid) Insert(obj int, x, z float64) {
	idx := g.CellIndex(x, z)
	g.cells[idx][obj] = struct{}{}
	g.located[obj] = idx
}

// Update relocates obj to the cell containing (x, z). If obj is not
// tracked it behaves as a plain Insert.
func (g *Grid) Update(obj int, x, z float64) {
	g.Remove(obj)
	g.Insert(obj, x, z)
}

// Remove drops obj from the grid. Removing an untracked handle is a no-op.
func (g *Grid) Remove(obj int) {
	idx, ok := g.located[obj]
	if !ok {
		return
	}
	delete(g.cells[idx], obj)
	delete(g.located, obj)
}

// FindNearby returns every tracked handle whose cell intersects the square
// of half-width radius centered at (x, z). This is a broad-phase square
// approximation: it never misses objects within radius, but callers needing
// an exact circular cut must narrow-phase filter the result. Handles come
// back sorted ascending so iteration order is stable across calls.
func (g *Grid) FindNearby(x, z, radius float64) []int {
	if radius < 0 {
		radius = 0 // degenerate query: containing cell only
	}
	minCX := int(math.Floor(g.clampX(x-radius) / g.cellSize))
	maxCX := int(math.Floor(g.clampX(x+radius) / g.cellSize))
	minCZ := int(math.Floor(g.clampZ(z-radius) / g.cellSize))
	maxCZ := int(math.Floor(g.clampZ(z+radius) / g.cellSize))
	if maxCX >= g.numCellsX {
		maxCX = g.numCellsX - 1
	}
	if maxCZ >= g.numCellsZ {
		maxCZ = g.numCellsZ - 1
	}

	seen := make(map[int]struct{})
	var out []int
	for cz := minCZ; cz <= maxCZ; cz++ {
		for cx := minCX; cx <= maxCX; cx++ {
			for obj := range g.cells[cx+cz*g.numCellsX] {
				if _, dup := seen[obj]; dup {
					continue
				}
				seen[obj] = struct{}{}
				out = append(out, obj)
			}
		}
	}
	sort.Ints(out)
	return out
}

// Clear empties every cell and the tracking map. Grid dimensions are kept,
// so the grid is immediately reusable for the next level.
func (g *Grid) Clear() {
	for i := range g.cells {
		clear(g.cells[i])
	}
	clear(g.located)
}

// Len reports the number of tracked objects.
func (g *Grid) Len() int { return len(g.located) }

// Contains reports whether obj is currently tracked.
func (g *Grid) Contains(obj int) bool {
	_, ok := g.located[obj]
	return ok
}
