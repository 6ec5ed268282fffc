package rules

// EventType distinguishes the input events the game reacts to.
type EventType int

const (
	// EventKey is a key press.
	EventKey EventType = iota
	// EventQuit asks the process to exit.
	EventQuit
)

// Key is a key the game knows about. Everything else is KeyOther.
type Key int

// Keys understood by the game. Arrows and WASD both steer. Space and Q only
// matter to replays.
const (
	KeyOther Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyW
	KeyA
	KeyS
	KeyD
	KeySpace
	KeyQ
)

// Direction maps a steering key to a heading.
func (k Key) Direction() (Direction, bool) {
	switch k {
	case KeyUp, KeyW:
		return Up, true
	case KeyDown, KeyS:
		return Down, true
	case KeyLeft, KeyA:
		return Left, true
	case KeyRight, KeyD:
		return Right, true
	}
	return 0, false
}

// Event is a single input event from the surface.
type Event struct {
	Type EventType
	Key  Key
}

// KeyPress builds a key event.
func KeyPress(k Key) Event {
	return Event{Type: EventKey, Key: k}
}

// Quit builds a quit event.
func Quit() Event {
	return Event{Type: EventQuit}
}
