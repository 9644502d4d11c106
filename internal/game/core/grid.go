package core

import "fmt"

// Terrain is the static kind of a cell.
// Anything other than TerrainOpen blocks movement and gives cover.
type Terrain int8

const (
	TerrainOpen      Terrain = 0
	TerrainLowCover  Terrain = 1
	TerrainHighCover Terrain = 2
)

func (t Terrain) String() string {
	switch t {
	case TerrainOpen:
		return "open"
	case TerrainLowCover:
		return "low_cover"
	case TerrainHighCover:
		return "high_cover"
	default:
		return fmt.Sprintf("terrain(%d)", int8(t))
	}
}

// Grid is the immutable arena. T has length W*H in row-major order.
type Grid struct {
	W, H int
	T    []Terrain
}

// NewGrid creates an all-open grid
func NewGrid(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrGridSize, w, h)
	}
	return &Grid{W: w, H: h, T: make([]Terrain, w*h)}, nil
}

func (g *Grid) Idx(x, y int) int { return Coordinate{X: x, Y: y}.ToIndex(g.W) }
func (g *Grid) Cells() int       { return g.W * g.H }

func (g *Grid) XY(idx int) (int, int) {
	c := FromIndex(idx, g.W)
	return c.X, c.Y
}

// InBounds checks if coordinates are within grid boundaries
func (g *Grid) InBounds(x, y int) bool {
	return g.Contains(Coordinate{X: x, Y: y})
}

// Contains reports whether c lies on the grid
func (g *Grid) Contains(c Coordinate) bool {
	return c.IsValid(g.W, g.H)
}

// At returns the terrain at c. Out-of-bounds cells read as high cover.
func (g *Grid) At(c Coordinate) Terrain {
	if !g.Contains(c) {
		return TerrainHighCover
	}
	return g.T[g.Idx(c.X, c.Y)]
}

// Set changes the terrain at c. Only used while building a grid.
func (g *Grid) Set(c Coordinate, t Terrain) error {
	if !g.Contains(c) {
		return fmt.Errorf("%w: %s", ErrInvalidCoordinates, c)
	}
	g.T[g.Idx(c.X, c.Y)] = t
	return nil
}

// Passable reports whether a unit may stand on c
func (g *Grid) Passable(c Coordinate) bool {
	return g.Contains(c) && g.T[g.Idx(c.X, c.Y)] == TerrainOpen
}

// Glyphs used by the textual grid form
const (
	GlyphOpen      = '.'
	GlyphLowCover  = 'o'
	GlyphHighCover = '#'
)

// ParseGrid builds a grid from rows of glyphs, top row first
func ParseGrid(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrGridSize)
	}
	g, err := NewGrid(len(rows[0]), len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != g.W {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrGridSize, y, len(row), g.W)
		}
		for x := 0; x < len(row); x++ {
			var t Terrain
			switch row[x] {
			case GlyphOpen:
				t = TerrainOpen
			case GlyphLowCover:
				t = TerrainLowCover
			case GlyphHighCover:
				t = TerrainHighCover
			default:
				return nil, fmt.Errorf("%w: unknown glyph %q at (%d,%d)", ErrInvalidCoordinates, row[x], x, y)
			}
			g.T[g.Idx(x, y)] = t
		}
	}
	return g, nil
}

// Rows renders the grid in the form ParseGrid reads
func (g *Grid) Rows() []string {
	rows := make([]string, g.H)
	buf := make([]byte, g.W)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			switch g.T[g.Idx(x, y)] {
			case TerrainLowCover:
				buf[x] = GlyphLowCover
			case TerrainHighCover:
				buf[x] = GlyphHighCover
			default:
				buf[x] = GlyphOpen
			}
		}
		rows[y] = string(buf)
	}
	return rows
}
