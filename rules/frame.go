package rules

// Frame is a snapshot of the game after a tick.
type Frame struct {
	Turn         int        `json:"turn"`
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	Snake        []Point    `json:"snake"`
	Food         Point      `json:"food"`
	Score        int        `json:"score"`
	Status       GameStatus `json:"status"`
	ShowControls bool       `json:"showControls"`
}

// Head returns the snake head, or false if the frame has no snake.
func (f *Frame) Head() (Point, bool) {
	if len(f.Snake) == 0 {
		return Point{}, false
	}
	return f.Snake[0], true
}

// GameOver reports whether the frame was taken after the snake died.
func (f *Frame) GameOver() bool {
	return f.Status == GameStatusGameOver
}
