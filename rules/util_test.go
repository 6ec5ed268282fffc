package rules

import "time"

var commonGrid = Grid{Width: 40, Height: 30}

// scriptedRand hands out a fixed sequence of values, wrapping each into the
// requested range. Once exhausted it keeps returning zero.
type scriptedRand struct {
	values []int
	next   int
}

func (r *scriptedRand) Intn(n int) int {
	if r.next >= len(r.values) {
		return 0
	}
	v := r.values[r.next] % n
	r.next++
	return v
}

func scripted(values ...int) *scriptedRand {
	return &scriptedRand{values: values}
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestGame(rnd Rand) *Game {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	return NewGame(Options{
		Grid:             commonGrid,
		FoodScore:        10,
		ControlsDuration: 5 * time.Second,
		Rand:             rnd,
		Now:              clock.Now,
	})
}
