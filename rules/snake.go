package rules

// Snake is the player controlled creature. Body[0] is the head.
type Snake struct {
	grid      Grid
	body      []Point
	direction Direction
	pending   Direction
	length    int
}

// NewSnake creates a single cell snake in the middle of the grid heading
// right.
func NewSnake(grid Grid) *Snake {
	s := &Snake{grid: grid}
	s.Reset()
	return s
}

// Reset puts the snake back into its initial state.
func (s *Snake) Reset() {
	s.body = []Point{s.grid.Center()}
	s.direction = DefaultDirection
	s.pending = DefaultDirection
	s.length = 1
}

// Head returns the first point in the body
func (s *Snake) Head() Point {
	if len(s.body) == 0 {
		panic("rules: snake has no body")
	}
	return s.body[0]
}

// Tail returns the last point in the body.
func (s *Snake) Tail() Point {
	if len(s.body) == 0 {
		panic("rules: snake has no body")
	}
	return s.body[len(s.body)-1]
}

// Body returns a copy of the occupied cells, head first.
func (s *Snake) Body() []Point {
	body := make([]Point, len(s.body))
	copy(body, s.body)
	return body
}

// Direction is the heading used by the last update.
func (s *Snake) Direction() Direction {
	return s.direction
}

// Pending is the heading the next update will use.
func (s *Snake) Pending() Direction {
	return s.pending
}

// Length is the target length the body grows to.
func (s *Snake) Length() int {
	return s.length
}

// SetDirection queues a new heading for the next update. Reversals are checked
// against the heading of the last update, not the pending one, and are
// ignored. The last accepted request wins.
func (s *Snake) SetDirection(d Direction) bool {
	if !d.Valid() || d == s.direction.Opposite() {
		return false
	}
	s.pending = d
	return true
}

// Update moves the snake one cell along its heading, wrapping around the
// edges of the grid. The tail is dropped unless the snake is still growing.
func (s *Snake) Update() {
	s.direction = s.pending
	next := s.grid.Wrap(s.Head().Add(s.direction.Delta()))

	s.body = append([]Point{next}, s.body...)
	if len(s.body) > s.length {
		s.body = s.body[:len(s.body)-1]
	}
}

// Grow makes the next update keep the tail, lengthening the snake by one.
func (s *Snake) Grow() {
	s.length++
}

// CollidesWithSelf reports whether the head overlaps any other body cell.
func (s *Snake) CollidesWithSelf() bool {
	head := s.Head()
	for _, b := range s.body[1:] {
		if head.Equal(b) {
			return true
		}
	}
	return false
}

// Occupies reports whether any body cell is at p.
func (s *Snake) Occupies(p Point) bool {
	for _, b := range s.body {
		if b.Equal(p) {
			return true
		}
	}
	return false
}
