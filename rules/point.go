package rules

import "fmt"

// Point is a single cell on the board, addressed by column (X) and row (Y).
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Equal checks if 2 points are the same x,y coordinate
func (p Point) Equal(other Point) bool {
	return p.X == other.X && p.Y == other.Y
}

// Add returns the point offset by other.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Grid is the size of the board in cells.
type Grid struct {
	Width  int
	Height int
}

// NewGrid derives the board size from a window size and the size of a single
// cell, both in pixels.
func NewGrid(windowWidth, windowHeight, cellSize int) Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return Grid{
		Width:  windowWidth / cellSize,
		Height: windowHeight / cellSize,
	}
}

// Center is where a fresh snake is placed.
func (g Grid) Center() Point {
	return Point{X: g.Width / 2, Y: g.Height / 2}
}

// Contains reports whether p lies inside the board.
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Cells is the number of cells on the board.
func (g Grid) Cells() int {
	return g.Width * g.Height
}

// Wrap folds p back onto the board so that leaving one edge enters from the
// opposite edge.
func (g Grid) Wrap(p Point) Point {
	return Point{X: wrap(p.X, g.Width), Y: wrap(p.Y, g.Height)}
}

func wrap(v, size int) int {
	if size <= 0 {
		return 0
	}
	v %= size
	if v < 0 {
		v += size
	}
	return v
}
