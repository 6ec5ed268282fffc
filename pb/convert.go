package pb

import (
	"time"

	"github.com/battlesnakeio/snake/rules"
)

// Equal checks if 2 points are the same x,y coordinate
func (m *Point) Equal(other *Point) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.X == other.X && m.Y == other.Y
}

func toPoint(p rules.Point) *Point {
	return &Point{X: int32(p.X), Y: int32(p.Y)}
}

func fromPoint(p *Point) rules.Point {
	if p == nil {
		return rules.Point{}
	}
	return rules.Point{X: int(p.X), Y: int(p.Y)}
}

// NewFrame converts a game snapshot into its wire form.
func NewFrame(f *rules.Frame) *Frame {
	snake := make([]*Point, 0, len(f.Snake))
	for _, b := range f.Snake {
		snake = append(snake, toPoint(b))
	}
	return &Frame{
		Turn:         int64(f.Turn),
		Width:        int32(f.Width),
		Height:       int32(f.Height),
		Snake:        snake,
		Food:         toPoint(f.Food),
		Score:        int32(f.Score),
		Status:       string(f.Status),
		ShowControls: f.ShowControls,
	}
}

// Rules converts the wire form back into a game snapshot.
func (m *Frame) Rules() *rules.Frame {
	snake := make([]rules.Point, 0, len(m.Snake))
	for _, b := range m.Snake {
		snake = append(snake, fromPoint(b))
	}
	return &rules.Frame{
		Turn:         int(m.Turn),
		Width:        int(m.Width),
		Height:       int(m.Height),
		Snake:        snake,
		Food:         fromPoint(m.Food),
		Score:        int(m.Score),
		Status:       rules.GameStatus(m.Status),
		ShowControls: m.ShowControls,
	}
}

// Head returns the first point of the snake.
func (m *Frame) Head() *Point {
	if len(m.Snake) == 0 {
		return nil
	}
	return m.Snake[0]
}

// NewSession creates a running session for a board of the given size.
func NewSession(id string, grid rules.Grid, started time.Time) *Session {
	return &Session{
		ID:      id,
		Width:   int32(grid.Width),
		Height:  int32(grid.Height),
		Status:  string(rules.SessionStatusRunning),
		Started: started.UnixNano(),
	}
}

// Running reports whether the session is still producing frames.
func (m *Session) Running() bool {
	return m.Status == string(rules.SessionStatusRunning)
}

// StartedAt returns the start time of the session.
func (m *Session) StartedAt() time.Time {
	return time.Unix(0, m.Started)
}
