package core

import "fmt"

// Coordinate represents a cell position on the arena
type Coordinate struct {
	X, Y int
}

// FromIndex creates a coordinate from a grid index using row-major ordering
func FromIndex(idx, width int) Coordinate {
	return Coordinate{
		X: idx % width,
		Y: idx / width,
	}
}

// IsValid checks if the coordinate is within the given bounds
func (c Coordinate) IsValid(width, height int) bool {
	return c.X >= 0 && c.X < width && c.Y >= 0 && c.Y < height
}

// ToIndex converts the coordinate to a grid index using row-major ordering
func (c Coordinate) ToIndex(width int) int {
	return c.Y*width + c.X
}

// DistanceTo calculates the Manhattan distance to another coordinate
func (c Coordinate) DistanceTo(other Coordinate) int {
	return Abs(c.X-other.X) + Abs(c.Y-other.Y)
}

// ChebyshevTo calculates the king-move distance to another coordinate.
// A splash centred on c reaches every cell with ChebyshevTo <= 1.
func (c Coordinate) ChebyshevTo(other Coordinate) int {
	dx := Abs(c.X - other.X)
	dy := Abs(c.Y - other.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// IsAdjacentTo checks if this coordinate is orthogonally adjacent to another
func (c Coordinate) IsAdjacentTo(other Coordinate) bool {
	return c.DistanceTo(other) == 1
}

// Add returns a new coordinate that is the sum of this coordinate and another
func (c Coordinate) Add(other Coordinate) Coordinate {
	return Coordinate{
		X: c.X + other.X,
		Y: c.Y + other.Y,
	}
}

// Sub returns a new coordinate that is the difference between this coordinate and another
func (c Coordinate) Sub(other Coordinate) Coordinate {
	return Coordinate{
		X: c.X - other.X,
		Y: c.Y - other.Y,
	}
}

// StepToward returns the per-axis unit step (-1, 0 or 1) leading from c to other
func (c Coordinate) StepToward(other Coordinate) Coordinate {
	return Coordinate{X: Sign(other.X - c.X), Y: Sign(other.Y - c.Y)}
}

// Equal checks if two coordinates are equal
func (c Coordinate) Equal(other Coordinate) bool {
	return c.X == other.X && c.Y == other.Y
}

// String returns a string representation of the coordinate
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction represents a single-step displacement, including staying in place
type Direction int

const (
	Stay Direction = iota
	West
	East
	North
	South
)

// MoveDirections lists the displacements a unit may take in one tick.
// Order matters: generation order is the tie-break for equally scored moves.
var MoveDirections = [...]Direction{Stay, West, East, North, South}

// DirectionVectors provides coordinate offsets for each direction
var DirectionVectors = [...]Coordinate{
	Stay:  {X: 0, Y: 0},
	West:  {X: -1, Y: 0},
	East:  {X: 1, Y: 0},
	North: {X: 0, Y: -1},
	South: {X: 0, Y: 1},
}

// Move returns a new coordinate moved one step in the given direction
func (c Coordinate) Move(direction Direction) Coordinate {
	if direction < Stay || int(direction) >= len(DirectionVectors) {
		return c
	}
	return c.Add(DirectionVectors[direction])
}

// Abs returns the absolute value of an integer
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Sign returns -1, 0 or 1 following the sign of x
func Sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}
