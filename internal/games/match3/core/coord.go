package core

import "fmt"

// Coord represents a cell position on the board.
// X is the column and increases to the right, Y is the row and increases
// downward (row 0 is the top).
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Less orders coordinates row-major (top to bottom, left to right).
func (c Coord) Less(other Coord) bool {
	if c.Y != other.Y {
		return c.Y < other.Y
	}
	return c.X < other.X
}

// Adjacent reports whether two coordinates share an edge.
func (c Coord) Adjacent(other Coord) bool {
	return c.Manhattan(other) == 1
}

// Manhattan returns the Manhattan distance to another coordinate.
func (c Coord) Manhattan(other Coord) int {
	return abs(c.X-other.X) + abs(c.Y-other.Y)
}

// Chebyshev returns the Chebyshev (king-move) distance to another coordinate.
func (c Coord) Chebyshev(other Coord) int {
	return max(abs(c.X-other.X), abs(c.Y-other.Y))
}

// Midpoint returns the cell between two coordinates, rounding toward the
// lower index on ties. It is symmetric in its arguments.
func Midpoint(a, b Coord) Coord {
	return Coord{X: floorHalf(a.X + b.X), Y: floorHalf(a.Y + b.Y)}
}

// neighbors4 lists the 4-neighbourhood offsets in scan order: up, right, down, left.
var neighbors4 = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

func floorHalf(v int) int {
	if v < 0 {
		return (v - 1) / 2
	}
	return v / 2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
