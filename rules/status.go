package rules

// GameStatus is the state of the game state machine.
type GameStatus string

const (
	// GameStatusPlaying represents a game where the snake is moving
	GameStatusPlaying GameStatus = "playing"
	// GameStatusGameOver represents a game where the snake ran into itself and
	// is waiting for a key press to restart
	GameStatusGameOver GameStatus = "game-over"
)

// SessionStatus is the lifecycle of a whole play session, which can span
// many restarts.
type SessionStatus string

const (
	// SessionStatusRunning represents a session that is still producing frames
	SessionStatusRunning SessionStatus = "running"
	// SessionStatusComplete represents a session that has quit
	SessionStatusComplete SessionStatus = "complete"
)
