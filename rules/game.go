package rules

import (
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"
)

// Options configures a Game.
type Options struct {
	Grid Grid
	// FoodScore is added to the score for every food eaten.
	FoodScore int
	// ControlsDuration is how long after the game was created frames ask for
	// the controls to be shown.
	ControlsDuration time.Duration
	// FoodAvoidSnake spawns food only on cells the snake does not occupy.
	FoodAvoidSnake bool
	Rand           Rand
	Now            func() time.Time
}

// Action is what handling an input event did to the game.
type Action int

const (
	// ActionNone means the event was ignored.
	ActionNone Action = iota
	// ActionTurn means a new heading was queued.
	ActionTurn
	// ActionRestart means a finished game was reset.
	ActionRestart
	// ActionQuit means the player asked to leave.
	ActionQuit
)

// StepResult describes what happened during a single tick.
type StepResult struct {
	Moved bool
	Ate   bool
	Died  bool
}

// Game owns the snake, the food, the score and the state machine.
type Game struct {
	opts Options

	snake     *Snake
	food      *Food
	score     int
	status    GameStatus
	turn      int
	foodEaten int
	restarts  int
	started   time.Time
}

// NewGame creates a game in the playing state.
func NewGame(opts Options) *Game {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(opts.Now().UnixNano()))
	}
	g := &Game{
		opts:    opts,
		snake:   NewSnake(opts.Grid),
		status:  GameStatusPlaying,
		started: opts.Now(),
	}
	g.food = &Food{grid: opts.Grid, rnd: opts.Rand}
	g.spawnFood()
	return g
}

// Snake returns the game's snake.
func (g *Game) Snake() *Snake { return g.snake }

// Food returns the game's food.
func (g *Game) Food() *Food { return g.food }

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// Status returns the state machine state.
func (g *Game) Status() GameStatus { return g.status }

// Turn is the number of ticks the snake has moved in this session.
func (g *Game) Turn() int { return g.turn }

// FoodEaten is the number of food items eaten in this session.
func (g *Game) FoodEaten() int { return g.foodEaten }

// Restarts is the number of times a finished game was reset.
func (g *Game) Restarts() int { return g.restarts }

// Grid returns the board size.
func (g *Game) Grid() Grid { return g.opts.Grid }

// Handle applies a single input event. Quit is honoured in every state. While
// the game is over any key press restarts it, otherwise steering keys queue a
// new heading.
func (g *Game) Handle(ev Event) Action {
	if ev.Type == EventQuit {
		return ActionQuit
	}
	if ev.Type != EventKey {
		return ActionNone
	}

	if g.status == GameStatusGameOver {
		g.Restart()
		return ActionRestart
	}

	d, ok := ev.Key.Direction()
	if !ok {
		return ActionNone
	}
	if !g.snake.SetDirection(d) {
		return ActionNone
	}
	return ActionTurn
}

// Restart resets the snake, respawns the food and zeroes the score.
func (g *Game) Restart() {
	g.snake.Reset()
	g.spawnFood()
	g.score = 0
	g.status = GameStatusPlaying
	g.restarts++
}

// Step advances the game one tick. Nothing moves once the game is over.
func (g *Game) Step() StepResult {
	var res StepResult
	if g.status != GameStatusPlaying {
		return res
	}

	g.turn++
	g.snake.Update()
	res.Moved = true

	if g.snake.Head().Equal(g.food.Position()) {
		eaten := g.food.Position()
		g.snake.Grow()
		g.score += g.opts.FoodScore
		g.foodEaten++
		g.spawnFood()
		res.Ate = true
		log.WithFields(log.Fields{
			"Turn":  g.turn,
			"Food":  eaten,
			"Score": g.score,
		}).Debug("snake ate")
	}

	if g.snake.CollidesWithSelf() {
		g.status = GameStatusGameOver
		res.Died = true
		log.WithFields(log.Fields{
			"Turn":   g.turn,
			"Head":   g.snake.Head(),
			"Length": g.snake.Length(),
		}).Debug("snake collided with itself")
	}
	return res
}

// ShowControls reports whether the control help should still be displayed.
func (g *Game) ShowControls() bool {
	return g.opts.Now().Sub(g.started) < g.opts.ControlsDuration
}

// Frame takes a snapshot of everything a renderer needs.
func (g *Game) Frame() *Frame {
	return &Frame{
		Turn:         g.turn,
		Width:        g.opts.Grid.Width,
		Height:       g.opts.Grid.Height,
		Snake:        g.snake.Body(),
		Food:         g.food.Position(),
		Score:        g.score,
		Status:       g.status,
		ShowControls: g.ShowControls(),
	}
}

func (g *Game) spawnFood() {
	if g.opts.FoodAvoidSnake {
		g.food.SpawnAvoiding(g.snake.Occupies)
		return
	}
	g.food.Spawn()
}
