// Package maze loads grid-described levels and builds their wall geometry
// into the spatial grid and collision resolver.
package maze

import (
	"fmt"
	"strings"
)

// Cell is one grid square of a level description.
type Cell byte

const (
	CellOpen  Cell = '.' // open floor
	CellWall  Cell = '-' // solid block
	CellStart Cell = 'S' // player start, exactly one per level
	CellGoal  Cell = 'E' // goal, exactly one per level
	CellVoid  Cell = 'x' // void, unrendered and unreachable
)

// Point is a cell coordinate. Z is the row axis to match world space.
type Point struct {
	X, Z int
}

// GridMap is a parsed level grid: a rectangular array of cells with one
// start and one goal.
type GridMap struct {
	Width, Height int
	Start, Goal   Point

	cells []Cell
}

// ParseGrid parses the text grid format: equal-length rows of
// '.', '-', 'S', 'E' and 'x'. Blank leading/trailing lines are ignored.
func ParseGrid(text string) (*GridMap, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty grid")
	}

	m := &GridMap{
		Width:  len(lines[0]),
		Height: len(lines),
		Start:  Point{X: -1, Z: -1},
		Goal:   Point{X: -1, Z: -1},
	}
	m.cells = make([]Cell, m.Width*m.Height)

	starts, goals := 0, 0
	for z, line := range lines {
		if len(line) != m.Width {
			return nil, fmt.Errorf("row %d has %d cells, want %d", z, len(line), m.Width)
		}
		for x := 0; x < len(line); x++ {
			c := Cell(line[x])
			switch c {
			case CellOpen, CellWall, CellVoid:
			case CellStart:
				starts++
				m.Start = Point{X: x, Z: z}
			case CellGoal:
				goals++
				m.Goal = Point{X: x, Z: z}
			default:
				return nil, fmt.Errorf("row %d col %d: unknown cell %q", z, x, line[x])
			}
			m.cells[x+z*m.Width] = c
		}
	}

	if starts != 1 {
		return nil, fmt.Errorf("expected exactly one start cell, found %d", starts)
	}
	if goals != 1 {
		return nil, fmt.Errorf("expected exactly one goal cell, found %d", goals)
	}
	return m, nil
}

// At returns the cell at (x, z); out-of-bounds coordinates read as void.
func (m *GridMap) At(x, z int) Cell {
	if x < 0 || z < 0 || x >= m.Width || z >= m.Height {
		return CellVoid
	}
	return m.cells[x+z*m.Width]
}

// Solid reports whether (x, z) is a solid block.
func (m *GridMap) Solid(x, z int) bool {
	return m.At(x, z) == CellWall
}

// Walkable reports whether the player may occupy (x, z).
func (m *GridMap) Walkable(x, z int) bool {
	switch m.At(x, z) {
	case CellOpen, CellStart, CellGoal:
		return true
	}
	return false
}

// String renders the grid back to its text form.
func (m *GridMap) String() string {
	var b strings.Builder
	b.Grow((m.Width + 1) * m.Height)
	for z := 0; z < m.Height; z++ {
		b.Write(bytesOfRow(m, z))
		b.WriteByte('\n')
	}
	return b.String()
}

func bytesOfRow(m *GridMap, z int) []byte {
	row := make([]byte, m.Width)
	for x := 0; x < m.Width; x++ {
		row[x] = byte(m.cells[x+z*m.Width])
	}
	return row
}

// SetCell overwrites a cell; used by the level editor. Out of bounds is a
// no-op. Start/Goal bookkeeping is the editor's problem until re-parse.
func (m *GridMap) SetCell(x, z int, c Cell) {
	if x < 0 || z < 0 || x >= m.Width || z >= m.Height {
		return
	}
	m.cells[x+z*m.Width] = c
}
