package render

import (
	"sync"
	"unicode"

	"github.com/battlesnakeio/snake/rules"
	termbox "github.com/nsf/termbox-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Terminal is a termbox backed surface. Only one can be open at a time.
type Terminal struct {
	title     string
	events    chan rules.Event
	stopped   chan struct{}
	closeOnce sync.Once

	poll      func() termbox.Event
	interrupt func()
	shutdown  func()
}

// Open takes over the terminal until Close is called.
func Open(title string) (*Terminal, error) {
	if err := termbox.Init(); err != nil {
		return nil, errors.Wrap(err, "unable to initialise terminal")
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.HideCursor()

	return newTerminal(title, termbox.PollEvent, termbox.Interrupt, termbox.Close), nil
}

func newTerminal(title string, poll func() termbox.Event, interrupt, shutdown func()) *Terminal {
	t := &Terminal{
		title:     title,
		events:    make(chan rules.Event, 32),
		stopped:   make(chan struct{}),
		poll:      poll,
		interrupt: interrupt,
		shutdown:  shutdown,
	}
	go t.pollEvents()
	return t
}

// Events delivers translated key presses. It is closed by Close, or earlier
// if reading the terminal fails.
func (t *Terminal) Events() <-chan rules.Event {
	return t.events
}

// Draw paints a frame.
func (t *Terminal) Draw(f *rules.Frame) error {
	return Frame(t.title, f)
}

// Close stops reading input and gives the terminal back.
func (t *Terminal) Close() {
	t.closeOnce.Do(func() {
		select {
		case <-t.stopped:
		default:
			// Interrupt blocks until a PollEvent receives it, which never
			// happens if the poller exits on an error in the meantime.
			go t.interrupt()
		}
		<-t.stopped
		t.shutdown()
	})
}

func (t *Terminal) pollEvents() {
	defer close(t.stopped)
	defer close(t.events)
	for {
		ev := t.poll()
		switch ev.Type {
		case termbox.EventInterrupt:
			return
		case termbox.EventError:
			log.WithError(ev.Err).Warn("terminal input failed")
			return
		}

		e, ok := translate(ev)
		if !ok {
			continue
		}
		// The poller must get back to PollEvent for Interrupt to land, so a
		// full queue drops input rather than blocking.
		select {
		case t.events <- e:
		default:
			log.WithField("key", e.Key).Debug("input queue full, dropping key")
		}
	}
}

// translate maps a termbox event onto a game event.
func translate(ev termbox.Event) (rules.Event, bool) {
	if ev.Type != termbox.EventKey {
		return rules.Event{}, false
	}

	switch ev.Key {
	case termbox.KeyEsc, termbox.KeyCtrlC:
		return rules.Quit(), true
	case termbox.KeyArrowUp:
		return rules.KeyPress(rules.KeyUp), true
	case termbox.KeyArrowDown:
		return rules.KeyPress(rules.KeyDown), true
	case termbox.KeyArrowLeft:
		return rules.KeyPress(rules.KeyLeft), true
	case termbox.KeyArrowRight:
		return rules.KeyPress(rules.KeyRight), true
	case termbox.KeySpace:
		return rules.KeyPress(rules.KeySpace), true
	}

	switch unicode.ToLower(ev.Ch) {
	case 'w':
		return rules.KeyPress(rules.KeyW), true
	case 'a':
		return rules.KeyPress(rules.KeyA), true
	case 's':
		return rules.KeyPress(rules.KeyS), true
	case 'd':
		return rules.KeyPress(rules.KeyD), true
	case 'q':
		return rules.KeyPress(rules.KeyQ), true
	case ' ':
		return rules.KeyPress(rules.KeySpace), true
	}
	return rules.KeyPress(rules.KeyOther), true
}
