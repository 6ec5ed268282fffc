package rules

// Rand is the source of randomness used to place food. *math/rand.Rand
// satisfies it.
type Rand interface {
	Intn(n int) int
}

// Food is the single item the snake is chasing.
type Food struct {
	grid     Grid
	rnd      Rand
	position Point
}

// NewFood creates food and spawns it on the grid.
func NewFood(grid Grid, rnd Rand) *Food {
	f := &Food{grid: grid, rnd: rnd}
	f.Spawn()
	return f
}

// Position returns the cell the food is on.
func (f *Food) Position() Point {
	return f.position
}

// Spawn moves the food to a cell picked uniformly from the whole grid. The
// snake's body is not excluded, so food can land underneath it.
func (f *Food) Spawn() {
	f.position = Point{
		X: f.rnd.Intn(f.grid.Width),
		Y: f.rnd.Intn(f.grid.Height),
	}
}

// SpawnAvoiding moves the food to a random cell for which occupied reports
// false. If every cell is occupied it falls back to Spawn.
func (f *Food) SpawnAvoiding(occupied func(Point) bool) {
	open := unoccupiedPoints(f.grid, occupied)
	if len(open) == 0 {
		f.Spawn()
		return
	}
	f.position = open[f.rnd.Intn(len(open))]
}

func unoccupiedPoints(grid Grid, occupied func(Point) bool) []Point {
	candidates := make([]Point, 0, grid.Cells())
	for x := 0; x < grid.Width; x++ {
		for y := 0; y < grid.Height; y++ {
			p := Point{X: x, Y: y}
			if !occupied(p) {
				candidates = append(candidates, p)
			}
		}
	}
	return candidates
}
