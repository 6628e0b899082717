package maze

import "math/rand"

// Generate carves a perfect maze of roughly width x height cells with a
// recursive-backtracker walk. Dimensions round down to odd so walls and
// passages alternate cleanly. The start sits at the first carved cell and
// the goal at the carved cell farthest from it.
func Generate(width, height int, seed int64) *GridMap {
	cols := ensureOdd(width)
	rows := ensureOdd(height)
	if cols < 5 {
		cols = 5
	}
	if rows < 5 {
		rows = 5
	}

	m := &GridMap{Width: cols, Height: rows}
	m.cells = make([]Cell, cols*rows)
	for i := range m.cells {
		m.cells[i] = CellWall
	}

	rng := rand.New(rand.NewSource(seed))
	start := Point{X: 1, Z: 1}
	carve(m, start, rng)

	goal := farthestFrom(m, start)
	m.Start = start
	m.Goal = goal
	m.SetCell(start.X, start.Z, CellStart)
	m.SetCell(goal.X, goal.Z, CellGoal)
	return m
}

func ensureOdd(n int) int {
	if n%2 == 0 {
		return n - 1
	}
	return n
}

var carveDirs = [4]Point{{X: 0, Z: -2}, {X: 2, Z: 0}, {X: 0, Z: 2}, {X: -2, Z: 0}}

// carve runs an iterative depth-first walk over the odd-coordinate lattice,
// knocking out the wall between each visited pair.
func carve(m *GridMap, start Point, rng *rand.Rand) {
	m.SetCell(start.X, start.Z, CellOpen)
	stack := []Point{start}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		order := rng.Perm(4)
		moved := false
		for _, i := range order {
			d := carveDirs[i]
			next := Point{X: cur.X + d.X, Z: cur.Z + d.Z}
			if next.X < 1 || next.Z < 1 || next.X >= m.Width-1 || next.Z >= m.Height-1 {
				continue
			}
			if m.At(next.X, next.Z) != CellWall {
				continue
			}
			m.SetCell(cur.X+d.X/2, cur.Z+d.Z/2, CellOpen)
			m.SetCell(next.X, next.Z, CellOpen)
			stack = append(stack, next)
			moved = true
			break
		}
		if !moved {
			stack = stack[:len(stack)-1]
		}
	}
}

// farthestFrom returns the walkable cell with the greatest BFS distance
// from p.
func farthestFrom(m *GridMap, p Point) Point {
	dist := make([]int, m.Width*m.Height)
	for i := range dist {
		dist[i] = -1
	}
	dist[p.X+p.Z*m.Width] = 0

	queue := []Point{p}
	far := p
	farDist := 0
	steps := [4]Point{{X: 0, Z: -1}, {X: 1, Z: 0}, {X: 0, Z: 1}, {X: -1, Z: 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		d := dist[cur.X+cur.Z*m.Width]
		if d > farDist {
			farDist = d
			far = cur
		}
		for _, s := range steps {
			nx, nz := cur.X+s.X, cur.Z+s.Z
			if !m.Walkable(nx, nz) || dist[nx+nz*m.Width] >= 0 {
				continue
			}
			dist[nx+nz*m.Width] = d + 1
			queue = append(queue, Point{X: nx, Z: nz})
		}
	}
	return far
}
