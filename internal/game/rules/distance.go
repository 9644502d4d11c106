package rules

import "github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/core"

// Unreachable is the distance reported for cells a unit cannot walk to
const Unreachable = 9999

// bfsSteps is the fixed neighbour expansion order
var bfsSteps = [4]core.Coordinate{{X: 0, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: -1, Y: 0}}

// DistanceFields stores, for every live unit, the walking distance from the
// unit's cell to every cell of the grid. Buffers are sized once per game and
// refilled every tick.
type DistanceFields struct {
	grid    *core.Grid
	cells   int
	dist    []int32
	built   [core.MaxUnits]bool
	visited []bool
	queue   []int32
}

// NewDistanceFields allocates the fields for a grid
func NewDistanceFields(g *core.Grid) *DistanceFields {
	cells := g.Cells()
	return &DistanceFields{
		grid:    g,
		cells:   cells,
		dist:    make([]int32, core.MaxUnits*cells),
		visited: make([]bool, cells),
		queue:   make([]int32, 0, cells),
	}
}

// Build recomputes the field of every live unit in the world.
// Each player's move scoring reads the fields of the other side's units.
func (f *DistanceFields) Build(w *core.World) {
	for id := 0; id < core.MaxUnits; id++ {
		f.built[id] = false
		if id < w.NumUnits && w.Units[id].Alive {
			f.BuildFor(id, w.Units[id].Pos)
		}
	}
}

// BuildFor runs one breadth-first traversal from start over open cells
func (f *DistanceFields) BuildFor(id int, start core.Coordinate) {
	g := f.grid
	field := f.dist[id*f.cells : (id+1)*f.cells]
	for i := range field {
		field[i] = Unreachable
		f.visited[i] = false
	}
	f.built[id] = true
	if !g.Contains(start) {
		return
	}

	startIdx := int32(g.Idx(start.X, start.Y))
	f.queue = append(f.queue[:0], startIdx)
	f.visited[startIdx] = true
	field[startIdx] = 0

	for front := 0; front < len(f.queue); front++ {
		cur := f.queue[front]
		x, y := g.XY(int(cur))
		for _, step := range bfsSteps {
			next := core.Coordinate{X: x + step.X, Y: y + step.Y}
			if !g.Passable(next) {
				continue
			}
			ni := int32(g.Idx(next.X, next.Y))
			if f.visited[ni] {
				continue
			}
			f.visited[ni] = true
			field[ni] = field[cur] + 1
			f.queue = append(f.queue, ni)
		}
	}
}

// Distance returns the walking distance from unit id to c
func (f *DistanceFields) Distance(id int, c core.Coordinate) int {
	if id < 0 || id >= core.MaxUnits || !f.built[id] || !f.grid.Contains(c) {
		return Unreachable
	}
	return int(f.dist[id*f.cells+f.grid.Idx(c.X, c.Y)])
}

// Built reports whether unit id has a field for the current tick
func (f *DistanceFields) Built(id int) bool {
	return id >= 0 && id < core.MaxUnits && f.built[id]
}
