package rules

// Direction is the heading of a snake.
type Direction int

// The four headings a snake can have.
const (
	Up Direction = iota
	Down
	Left
	Right
)

// DefaultDirection is the heading of a freshly created or reset snake.
const DefaultDirection = Right

// Directions lists every valid heading.
var Directions = []Direction{Up, Down, Left, Right}

// Valid reports whether d is one of the four headings.
func (d Direction) Valid() bool {
	switch d {
	case Up, Down, Left, Right:
		return true
	}
	return false
}

// Opposite returns the heading that would reverse the snake into itself.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	panic("rules: invalid direction")
}

// Delta is the one cell step taken when moving in d. Rows grow downwards.
func (d Direction) Delta() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -1}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	case Right:
		return Point{X: 1, Y: 0}
	}
	panic("rules: invalid direction")
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}
